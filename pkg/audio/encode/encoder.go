// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for sample encoders
package encode

// Encoder encodes int32 samples in 24-bit range to bytes
type Encoder interface {
	// Encode converts samples to encoded audio data
	Encode(samples []int32) ([]byte, error)

	// Close releases encoder resources
	Close() error
}
