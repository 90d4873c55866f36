package analysis

// Key Detection
//
// A 12-bin chroma profile is accumulated across the same frames the
// spectral extractor samples: every spectrum bin inside the melodic range
// maps to a pitch class relative to A440 and contributes its magnitude to
// that bin. The strongest bin is the tonic; the mode comes from comparing
// the major third against the minor third above it, with ties going to
// major.

import "math"

// noteNames are the canonical pitch class names starting at C.
var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

const pitchClassA = 9 // index of A in noteNames

// chromaProfile accumulates spectrum magnitudes by pitch class across the
// sampled frames. Scratch state for one extraction call.
type chromaProfile [12]float64

func (c *chromaProfile) accumulate(spec spectrum, minHz, maxHz float64) {
	for i, mag := range spec.Magnitude {
		freq := spec.Freqs[i]
		if freq < minHz || freq > maxHz {
			continue
		}
		c[pitchClass(freq)] += mag
	}
}

// pitchClass maps a frequency to its chromatic pitch class, 0 = C.
func pitchClass(freq float64) int {
	semitonesFromA := int(math.Round(12 * math.Log2(freq/440)))
	pc := (pitchClassA + semitonesFromA) % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

// detectKey infers the musical key from evenly sampled frames of the
// buffer. Degenerate buffers resolve deterministically to "C major".
func detectKey(buf SampleBuffer, cfg Config) string {
	var chroma chromaProfile
	if len(buf.Samples) > 0 && buf.SampleRate > 0 {
		analyzer := newSpectrumAnalyzer(cfg.FrameSize, buf.SampleRate)
		for _, start := range frameOffsets(len(buf.Samples), cfg.FrameSize, cfg.SpectralFrames) {
			end := start + cfg.FrameSize
			if end > len(buf.Samples) {
				end = len(buf.Samples)
			}
			spec := analyzer.analyze(buf.Samples[start:end])
			chroma.accumulate(spec, cfg.ChromaMinHz, cfg.ChromaMaxHz)
		}
	}

	tonic := 0
	for pc := 1; pc < 12; pc++ {
		if chroma[pc] > chroma[tonic] {
			tonic = pc
		}
	}

	majorThird := chroma[(tonic+4)%12]
	minorThird := chroma[(tonic+3)%12]
	mode := "major" // major wins ties
	if minorThird > majorThird {
		mode = "minor"
	}

	return noteNames[tonic] + " " + mode
}

// KeyNames returns the 24 canonical key strings the detector can emit.
func KeyNames() []string {
	keys := make([]string, 0, 24)
	for _, note := range noteNames {
		keys = append(keys, note+" major", note+" minor")
	}
	return keys
}
