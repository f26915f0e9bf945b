package services_test

import (
	"errors"
	"testing"

	"comicgrabr/internal/services"
)

func TestWrapTagsMarkerAndDetail(t *testing.T) {
	cause := errors.New("connection refused")
	err := services.Wrap(services.ErrTransport, "airdcpp", "hub_search", "variant cbz", cause)

	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport classification, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive")
	}
	want := "transport error: airdcpp: hub_search: variant cbz: connection refused"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "airdcpp", "", "", nil)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected default transport marker, got %v", err)
	}
}

func TestIsItemFailure(t *testing.T) {
	for _, marker := range []error{
		services.ErrConfiguration,
		services.ErrTransport,
		services.ErrProtocol,
		services.ErrData,
		services.ErrNotFound,
		services.ErrTimeout,
	} {
		if !services.IsItemFailure(services.Wrap(marker, "c", "op", "", nil)) {
			t.Fatalf("expected %v to classify as item failure", marker)
		}
	}
	if services.IsItemFailure(errors.New("disk full")) {
		t.Fatal("expected unclassified error to not be an item failure")
	}
}
