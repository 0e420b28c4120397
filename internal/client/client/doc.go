// Package client talks to the bioauth backend on behalf of the CLI.
//
// Client is the transport-agnostic contract; GRPCClient implements it over
// the JSON-coded gRPC service in package api. A successful Register, Login
// or BiometricLogin stores the returned access token in memory, and an
// interceptor attaches it as "authorization: Bearer <token>" to later
// calls. Logout only forgets the token.
//
// gRPC status codes are translated into the sentinel errors in errors.go so
// callers can match them with errors.Is.
package client
