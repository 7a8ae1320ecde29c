// ABOUTME: Tests for version constants
// ABOUTME: Ensures version information is defined and the banner includes it
package version

import (
	"regexp"
	"strings"
	"testing"
)

func TestConstantsDefined(t *testing.T) {
	placeholders := []string{"TODO", "FIXME", "XXX", "placeholder"}

	tests := []struct {
		name  string
		value string
	}{
		{"Version", Version},
		{"Product", Product},
		{"Manufacturer", Manufacturer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == "" {
				t.Fatalf("%s should not be empty", tt.name)
			}
			if len(tt.value) > 100 {
				t.Errorf("%s is unreasonably long", tt.name)
			}
			for _, p := range placeholders {
				if tt.value == p {
					t.Errorf("%s should not be placeholder value: %s", tt.name, p)
				}
			}
		})
	}
}

func TestVersionIsSemver(t *testing.T) {
	if !regexp.MustCompile(`^\d+\.\d+\.\d+$`).MatchString(Version) {
		t.Errorf("Version %q is not MAJOR.MINOR.PATCH", Version)
	}
}

func TestString(t *testing.T) {
	s := String()
	for _, part := range []string{Product, Version, Manufacturer} {
		if !strings.Contains(s, part) {
			t.Errorf("banner %q missing %q", s, part)
		}
	}
}
