package core

import (
	"errors"
	"testing"
)

func TestDeserializeErrorUnwraps(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &DeserializeError{Source: "1.20.4.json", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to see through Unwrap")
	}
	if err.Error() == "" {
		t.Error("expected a non-empty message")
	}
}

func TestFsErrorMessageNamesPath(t *testing.T) {
	err := &FsError{Op: "creating", Path: "/data/versions", Err: errors.New("permission denied")}
	if got := err.Error(); got == "" {
		t.Fatal("expected non-empty message")
	}
}
