package pulllist

import (
	"testing"
	"time"
)

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"issue marker", "Saga #72", "Saga 72"},
		{"subtitle separator", "Something: Epilogue", "Something Epilogue"},
		{"both with extra spaces", "  Monstress:  #1 ", "Monstress 1"},
		{"already clean", "Paper Girls 30", "Paper Girls 30"},
		{"collapses interior runs", "East  of   West", "East of West"},
		{"only noise", "#:", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeTitle(tc.in); got != tc.want {
				t.Fatalf("NormalizeTitle(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseReleaseDateAcceptsBothLayouts(t *testing.T) {
	want := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2026-09-02", "09/02/2026", " 2026-09-02 "} {
		got, err := ParseReleaseDate(in)
		if err != nil {
			t.Fatalf("ParseReleaseDate(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseReleaseDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseReleaseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "next wednesday", "02-09-2026"} {
		if _, err := ParseReleaseDate(in); err == nil {
			t.Fatalf("ParseReleaseDate(%q) unexpectedly succeeded", in)
		}
	}
}
