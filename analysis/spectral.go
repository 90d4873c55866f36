package analysis

// Spectral Feature Extraction
//
// A small fixed number of frames, evenly spaced across the buffer, are
// analyzed and their statistics averaged:
//
//   - Zero crossing rate: fraction of sign changes, a pitch/noise proxy
//   - Spectral centroid: energy-weighted mean frequency ("brightness")
//   - Spectral rolloff: frequency below which 85% of energy sits
//   - Spectral flatness: geometric/arithmetic mean ratio (tonal vs noisy)
//   - Spectral bandwidth: energy-weighted spread around the centroid
//   - Band energies: binned-profile energy split into low, vocal, and high
//     bands
//
// Dynamic range is computed once from the raw samples, not per frame.

import "math"

// extractSpectralSummary analyzes evenly spaced frames and averages their
// statistics. An empty buffer yields a zero summary.
func extractSpectralSummary(buf SampleBuffer, cfg Config) spectralSummary {
	var summary spectralSummary
	if len(buf.Samples) == 0 || buf.SampleRate <= 0 {
		return summary
	}

	analyzer := newSpectrumAnalyzer(cfg.FrameSize, buf.SampleRate)
	nyquist := float64(buf.SampleRate) / 2

	frames := frameOffsets(len(buf.Samples), cfg.FrameSize, cfg.SpectralFrames)
	for _, start := range frames {
		end := start + cfg.FrameSize
		if end > len(buf.Samples) {
			end = len(buf.Samples)
		}
		frame := buf.Samples[start:end]

		spec := analyzer.analyze(frame)
		centroid := spectralCentroid(spec)

		summary.ZeroCrossingRate += zeroCrossingRate(frame)
		summary.Centroid += centroid
		summary.Rolloff += spectralRolloff(spec, cfg.RolloffFraction)
		summary.Flatness += spectralFlatness(spec.Magnitude)
		summary.Bandwidth += spectralBandwidth(spec, centroid)

		low, mid, high := bandEnergies(binnedProfile(frame, cfg.ProfileBins), nyquist, cfg.LowBandHz, cfg.HighBandHz)
		summary.LowBandEnergy += low
		summary.MidBandEnergy += mid
		summary.HighBandEnergy += high
	}

	n := float64(len(frames))
	summary.ZeroCrossingRate /= n
	summary.Centroid /= n
	summary.Rolloff /= n
	summary.Flatness /= n
	summary.Bandwidth /= n
	summary.LowBandEnergy /= n
	summary.MidBandEnergy /= n
	summary.HighBandEnergy /= n

	summary.DynamicRangeDB = dynamicRangeDB(buf.Samples)
	return summary
}

// frameOffsets returns start indices for count frames spread evenly across
// a buffer of the given length. Buffers shorter than one frame produce a
// single frame at the start.
func frameOffsets(length, frameSize, count int) []int {
	if count < 1 {
		count = 1
	}
	span := length - frameSize
	if span <= 0 || count == 1 {
		return []int{0}
	}

	offsets := make([]int, count)
	for i := range offsets {
		offsets[i] = i * span / (count - 1)
	}
	return offsets
}

func zeroCrossingRate(samples []float64) float64 {
	if len(samples) <= 1 {
		return 0
	}
	var count float64
	for i := 1; i < len(samples); i++ {
		if samples[i-1] == 0 || samples[i] == 0 {
			continue
		}
		if (samples[i-1] > 0) != (samples[i] > 0) {
			count++
		}
	}
	return count / float64(len(samples)-1)
}

func spectralCentroid(spec spectrum) float64 {
	var weightedSum float64
	var total float64
	for i := range spec.Magnitude {
		weightedSum += spec.Magnitude[i] * spec.Freqs[i]
		total += spec.Magnitude[i]
	}
	if total == 0 {
		return 0
	}
	return weightedSum / total
}

func spectralRolloff(spec spectrum, fraction float64) float64 {
	if len(spec.Magnitude) == 0 {
		return 0
	}
	if fraction <= 0 || fraction >= 1 {
		fraction = 0.85
	}

	var total float64
	for _, mag := range spec.Magnitude {
		total += mag
	}
	if total == 0 {
		return spec.Freqs[len(spec.Freqs)-1]
	}

	target := fraction * total
	var cumulative float64
	for i, mag := range spec.Magnitude {
		cumulative += mag
		if cumulative >= target {
			return spec.Freqs[i]
		}
	}
	return spec.Freqs[len(spec.Freqs)-1]
}

func spectralFlatness(magnitude []float64) float64 {
	if len(magnitude) == 0 {
		return 0
	}
	const eps = 1e-12
	var logSum float64
	var arithmetic float64

	for _, mag := range magnitude {
		value := mag + eps
		logSum += math.Log(value)
		arithmetic += value
	}

	n := float64(len(magnitude))
	geoMean := math.Exp(logSum / n)
	ariMean := arithmetic / n
	if ariMean == 0 {
		return 0
	}
	return clamp01(geoMean / ariMean)
}

func spectralBandwidth(spec spectrum, centroid float64) float64 {
	var variance float64
	var total float64
	for i := range spec.Magnitude {
		deviation := spec.Freqs[i] - centroid
		variance += spec.Magnitude[i] * deviation * deviation
		total += spec.Magnitude[i]
	}
	if total == 0 {
		return 0
	}
	return math.Sqrt(variance / total)
}

// bandEnergies splits a frequency-proportional profile into low, mid
// (vocal), and high band sums.
func bandEnergies(profile []float64, nyquist, lowHz, highHz float64) (low, mid, high float64) {
	if len(profile) == 0 || nyquist <= 0 {
		return 0, 0, 0
	}
	binWidth := nyquist / float64(len(profile))
	for i, v := range profile {
		freq := (float64(i) + 0.5) * binWidth
		switch {
		case freq < lowHz:
			low += v
		case freq <= highHz:
			mid += v
		default:
			high += v
		}
	}
	return low, mid, high
}

// dynamicRangeDB is the dB ratio between the loudest and the quietest
// nonzero sample, clamped to [0, 100].
func dynamicRangeDB(samples []float64) float64 {
	maxAbs := 0.0
	minAbs := math.Inf(1)
	for _, s := range samples {
		abs := math.Abs(s)
		if abs == 0 {
			continue
		}
		if abs > maxAbs {
			maxAbs = abs
		}
		if abs < minAbs {
			minAbs = abs
		}
	}
	if maxAbs == 0 || math.IsInf(minAbs, 1) {
		return 0
	}

	db := 20 * math.Log10(maxAbs/minAbs)
	if db < 0 {
		return 0
	}
	if db > 100 {
		return 100
	}
	return db
}
