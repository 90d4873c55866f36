package analysis

// Spectrum computation
//
// Two views of frame content feed the extractors:
//
// 1. Magnitude spectrum: a Hann-windowed FFT of the frame. Centroid,
//    rolloff, flatness, bandwidth, and the chroma profile are derived from
//    it. The recursive in-house transform this grew out of was replaced with
//    gonum's real-input FFT, which handles non-power-of-two frames and
//    reuses its twiddle factors across frames.
//
// 2. Binned amplitude profile: sample amplitudes bucketed into a fixed
//    number of frequency-proportional bins. The band-energy split (low /
//    vocal / high) is computed from this profile; the perceptual score
//    formulas downstream were tuned against its value distribution.

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// spectrum holds one frame's magnitude view plus the bin center frequencies.
type spectrum struct {
	Magnitude []float64 // peak-normalized bin magnitudes
	Freqs     []float64 // Hz per bin
}

// spectrumAnalyzer computes magnitude spectra for fixed-size frames,
// reusing one FFT plan across frames.
type spectrumAnalyzer struct {
	fft        *fourier.FFT
	frameSize  int
	sampleRate int
	windowed   []float64
}

func newSpectrumAnalyzer(frameSize, sampleRate int) *spectrumAnalyzer {
	return &spectrumAnalyzer{
		fft:        fourier.NewFFT(frameSize),
		frameSize:  frameSize,
		sampleRate: sampleRate,
		windowed:   make([]float64, frameSize),
	}
}

// analyze returns the Hann-windowed magnitude spectrum of the frame,
// normalized by the peak bin. Frames shorter than the plan size are
// zero-padded.
func (a *spectrumAnalyzer) analyze(frame []float64) spectrum {
	for i := range a.windowed {
		a.windowed[i] = 0
	}
	copy(a.windowed, frame)
	applyHannWindow(a.windowed)

	coeffs := a.fft.Coefficients(nil, a.windowed)
	magnitude := make([]float64, len(coeffs))
	freqs := make([]float64, len(coeffs))

	peak := 0.0
	for i, c := range coeffs {
		mag := cmplx.Abs(c)
		magnitude[i] = mag
		freqs[i] = a.fft.Freq(i) * float64(a.sampleRate)
		if mag > peak {
			peak = mag
		}
	}
	if peak > 0 {
		for i := range magnitude {
			magnitude[i] /= peak
		}
	}

	return spectrum{Magnitude: magnitude, Freqs: freqs}
}

func applyHannWindow(buffer []float64) {
	length := len(buffer)
	if length <= 1 {
		return
	}
	for i := range buffer {
		buffer[i] *= 0.5 * (1 - math.Cos((2*math.Pi*float64(i))/float64(length-1)))
	}
}

// binnedProfile buckets sample amplitudes into bins mapped proportionally
// across 0..Nyquist, normalized by the peak bin. A crude stand-in for a
// spectrum, kept because the band-energy heuristics expect its shape.
func binnedProfile(frame []float64, bins int) []float64 {
	profile := make([]float64, bins)
	if len(frame) == 0 || bins <= 0 {
		return profile
	}

	for i, s := range frame {
		bin := i * bins / len(frame)
		if bin >= bins {
			bin = bins - 1
		}
		profile[bin] += math.Abs(s)
	}

	peak := 0.0
	for _, v := range profile {
		if v > peak {
			peak = v
		}
	}
	if peak > 0 {
		for i := range profile {
			profile[i] /= peak
		}
	}
	return profile
}

// energyEnvelope splits the first windowSec seconds of the buffer into
// non-overlapping hops and returns mean power per hop.
func energyEnvelope(buf SampleBuffer, hop int, windowSec float64) []float64 {
	if hop <= 0 || buf.SampleRate <= 0 {
		return nil
	}

	limit := len(buf.Samples)
	if windowSec > 0 {
		if max := int(windowSec * float64(buf.SampleRate)); max < limit {
			limit = max
		}
	}

	frames := limit / hop
	if frames == 0 {
		return nil
	}

	envelope := make([]float64, frames)
	for i := 0; i < frames; i++ {
		start := i * hop
		var sum float64
		for _, s := range buf.Samples[start : start+hop] {
			sum += s * s
		}
		envelope[i] = sum / float64(hop)
	}
	return envelope
}
