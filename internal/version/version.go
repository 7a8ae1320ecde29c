// ABOUTME: Version information for vertical-audio
// ABOUTME: Product, manufacturer and release version shown by the CLI
package version

import "fmt"

const (
	Version      = "0.1.0"
	Product      = "vertical-audio"
	Manufacturer = "Soundscape Community"
)

// String is the one-line banner printed by the version command
func String() string {
	return fmt.Sprintf("%s %s (%s)", Product, Version, Manufacturer)
}
