package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("Str0ngP@ss")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("error creating user: %w", ErrorAlreadyExists)
	if !errors.Is(wrapped, ErrorAlreadyExists) {
		t.Fatalf("wrapped error must match ErrorAlreadyExists")
	}
	if errors.Is(wrapped, ErrDuplicateIdentity) {
		t.Fatalf("repository and service sentinels must stay distinct")
	}
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	// unknown email and wrong password both surface this exact value
	if ErrInvalidCredentials.Error() != "Invalid credentials" {
		t.Fatalf("unexpected message: %q", ErrInvalidCredentials.Error())
	}
}
