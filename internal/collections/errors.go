package collections

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrPermissionDenied means the backing store rejected a read,
	// write or subscription. It travels on a dedicated channel so UI
	// layers can render a consistent access-denied treatment.
	ErrPermissionDenied = errors.New("permission denied by backing store")

	// ErrTransport means a network or availability failure. Nothing
	// in this application retries it automatically.
	ErrTransport = errors.New("backing store unavailable")
)

// Classify maps store errors onto the application's error kinds.
// Errors that fit neither kind pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrTransport) {
		return err
	}
	switch status.Code(err) {
	case codes.PermissionDenied, codes.Unauthenticated:
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return err
}
