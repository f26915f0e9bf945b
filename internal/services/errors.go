package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks missing credentials or URLs. Fatal to the
	// dependent operation; independent work continues.
	ErrConfiguration = errors.New("configuration error")
	// ErrTransport marks network or connection failures.
	ErrTransport = errors.New("transport error")
	// ErrProtocol marks unexpected or missing response fields.
	ErrProtocol = errors.New("protocol error")
	// ErrData marks malformed snapshot or store content.
	ErrData = errors.New("data error")
	// ErrNotFound marks an operation that completed without a usable result.
	ErrNotFound = errors.New("not found")
	// ErrTimeout marks a request that exceeded its deadline.
	ErrTimeout = errors.New("timeout")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransport
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsItemFailure reports whether err should be tallied as an item-level
// failure rather than aborting the run. Everything in the taxonomy is
// item-level; only setup problems outside it abort early.
func IsItemFailure(err error) bool {
	return errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrProtocol) ||
		errors.Is(err, ErrData) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrConfiguration)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
