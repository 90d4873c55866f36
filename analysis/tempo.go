package analysis

// Tempo Estimation
//
// The estimator autocorrelates an onset-strength signal instead of the raw
// waveform:
//
// 1. Energy envelope: mean power per non-overlapping hop over the opening
//    seconds of the track (intros are enough for a period estimate).
// 2. Onset strength: half-wave rectified first difference of the envelope,
//    so only energy increases count as beat evidence.
// 3. Autocorrelation over the lag range spanned by the BPM bounds, scored
//    by mean product per lag. A mean keeps short lags with few terms from
//    winning on degenerate material.
// 4. The winning lag converts back to BPM and is folded by octave halving
//    or doubling until it lands inside the bounds.

import "math"

// tempoEstimate carries the rounded BPM plus the raw pre-fold value; the
// meter classifier uses the raw value for its odd-meter fallback.
type tempoEstimate struct {
	BPM    int
	RawBPM float64
}

// estimateTempo returns the estimated tempo of the buffer. Buffers too
// short to build an onset signal fall back to the configured default.
func estimateTempo(buf SampleBuffer, cfg Config) tempoEstimate {
	fallback := tempoEstimate{BPM: cfg.DefaultTempo, RawBPM: float64(cfg.DefaultTempo)}

	envelope := energyEnvelope(buf, cfg.EnvelopeHop, cfg.TempoWindowSec)
	if len(envelope) < 2 {
		return fallback
	}

	onsets := make([]float64, len(envelope)-1)
	for i := 1; i < len(envelope); i++ {
		onsets[i-1] = math.Max(0, envelope[i]-envelope[i-1])
	}

	hopRate := float64(buf.SampleRate) / float64(cfg.EnvelopeHop) // envelope frames per second
	minLag := int(60 / cfg.MaxTempoBPM * hopRate)
	maxLag := int(60 / cfg.MinTempoBPM * hopRate)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag > len(onsets)-1 {
		maxLag = len(onsets) - 1
	}
	if minLag >= maxLag {
		return fallback
	}

	bestLag := 0
	bestScore := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var sum float64
		count := len(onsets) - lag
		for i := 0; i < count; i++ {
			sum += onsets[i] * onsets[i+lag]
		}
		score := sum / float64(count)
		if score > bestScore {
			bestScore = score
			bestLag = lag
		}
	}
	if bestLag == 0 {
		// Flat onset signal (silence or a sustained pad): nothing periodic
		// to latch onto.
		return fallback
	}

	raw := 60 * hopRate / float64(bestLag)

	bpm := raw
	for bpm > cfg.MaxTempoBPM {
		bpm /= 2
	}
	for bpm < cfg.MinTempoBPM {
		bpm *= 2
	}

	rounded := int(math.Round(bpm))
	if rounded < int(cfg.MinTempoBPM) {
		rounded = int(cfg.MinTempoBPM)
	}
	if rounded > int(cfg.MaxTempoBPM) {
		rounded = int(cfg.MaxTempoBPM)
	}
	return tempoEstimate{BPM: rounded, RawBPM: raw}
}
