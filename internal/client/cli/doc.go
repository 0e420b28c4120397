// Package cli provides the interactive bioauth command-line client.
//
// It wires configuration, the gRPC API client and a REPL. Supported
// commands: register, login, biologin, setbio, whoami, logout, help and
// exit. Passwords and biometric keys are read without echo and wiped after
// use; the access token lives only in memory for the life of the process.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
