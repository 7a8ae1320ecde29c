// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Converts whole in-memory buffers and streamed chunks by linear interpolation
package resample

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
	position   float64
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
	}
}

// Resample converts a chunk of interleaved input samples into output and
// returns the number of samples written. The fractional read position
// carries over to the next chunk.
func (r *Resampler) Resample(input []int32, output []int32) int {
	if len(input) == 0 {
		return 0
	}

	inputFrames := len(input) / r.channels
	outputFrames := len(output) / r.channels

	outIdx := 0
	for outIdx < outputFrames {
		inputIdx := int(r.position)

		// Interpolation needs the following frame
		if inputIdx >= inputFrames-1 {
			break
		}

		frac := r.position - float64(inputIdx)
		for ch := 0; ch < r.channels; ch++ {
			s1 := input[inputIdx*r.channels+ch]
			s2 := input[(inputIdx+1)*r.channels+ch]
			output[outIdx*r.channels+ch] = int32(float64(s1)*(1.0-frac) + float64(s2)*frac)
		}

		outIdx++
		r.position += r.ratio
	}

	// Keep only the fractional part for the next chunk
	r.position -= float64(int(r.position))

	return outIdx * r.channels
}

// Convert resamples a complete buffer in one call. The last input frame is
// held for any output positions past the final interpolation point.
func (r *Resampler) Convert(input []int32) []int32 {
	if len(input) < r.channels || r.inputRate == r.outputRate {
		return append([]int32(nil), input...)
	}

	inputFrames := len(input) / r.channels
	outputFrames := int(float64(inputFrames) / r.ratio)
	output := make([]int32, outputFrames*r.channels)

	r.Reset()
	n := r.Resample(input, output)

	last := input[(inputFrames-1)*r.channels:]
	for i := n; i < len(output); i += r.channels {
		copy(output[i:i+r.channels], last)
	}
	r.Reset()

	return output
}

// Reset resets the resampler state
func (r *Resampler) Reset() {
	r.position = 0.0
}

// OutputSamplesNeeded calculates how many output samples will be produced from input samples
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	inputFrames := inputSamples / r.channels
	outputFrames := int(float64(inputFrames) / r.ratio)
	return outputFrames * r.channels
}

// InputSamplesNeeded calculates how many input samples are needed to produce output samples
func (r *Resampler) InputSamplesNeeded(outputSamples int) int {
	outputFrames := outputSamples / r.channels
	inputFrames := int(float64(outputFrames) * r.ratio)
	return inputFrames * r.channels
}
