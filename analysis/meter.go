package analysis

// Time-Signature Detection
//
// Beat onsets are peak-picked from an energy envelope, and each inter-onset
// interval is compared against the multiples of the mean interval that the
// three meter families would produce:
//
//   - triple meter:   thirds and halves of the mean
//   - common meter:   the mean itself and its double
//   - compound meter: two-thirds and four-thirds of the mean
//
// Compound wins outright when it out-tallies both others; triple has to
// beat common by a configurable margin; a very fast raw tempo falls back to
// 7/8; everything else is 4/4.

import "math"

// Supported time signature labels.
const (
	MeterTriple   = "3/4"
	MeterCommon   = "4/4"
	MeterCompound = "6/8"
	MeterOdd      = "7/8"
)

// detectTimeSignature classifies the meter of the buffer. rawTempoBPM is
// the unfolded tempo estimate used for the odd-meter fallback.
func detectTimeSignature(buf SampleBuffer, rawTempoBPM float64, cfg Config) string {
	envelope := energyEnvelope(buf, cfg.EnvelopeHop, cfg.MeterWindowSec)
	intervals := beatIntervals(envelope, cfg.OnsetThreshold, cfg.MaxBeatIntervals)
	return classifyIntervals(intervals, rawTempoBPM, cfg)
}

// beatIntervals peak-picks envelope frames exceeding threshold*mean and
// returns the spacing between consecutive picks, in envelope frames.
func beatIntervals(envelope []float64, threshold float64, maxIntervals int) []float64 {
	if len(envelope) < 3 {
		return nil
	}

	var mean float64
	for _, e := range envelope {
		mean += e
	}
	mean /= float64(len(envelope))
	if mean <= 0 {
		return nil
	}
	gate := threshold * mean

	var onsets []int
	for i := 1; i < len(envelope)-1; i++ {
		if envelope[i] > gate && envelope[i] > envelope[i-1] && envelope[i] >= envelope[i+1] {
			onsets = append(onsets, i)
		}
	}
	if len(onsets) < 2 {
		return nil
	}

	intervals := make([]float64, 0, len(onsets)-1)
	for i := 1; i < len(onsets); i++ {
		intervals = append(intervals, float64(onsets[i]-onsets[i-1]))
		if len(intervals) >= maxIntervals {
			break
		}
	}
	return intervals
}

// classifyIntervals tallies interval-to-mean ratios against the meter
// templates and applies the decision order documented above.
func classifyIntervals(intervals []float64, rawTempoBPM float64, cfg Config) string {
	if len(intervals) < 4 {
		return MeterCommon
	}

	var mean float64
	for _, v := range intervals {
		mean += v
	}
	mean /= float64(len(intervals))
	if mean <= 0 {
		return MeterCommon
	}

	var tripleTally, commonTally, compoundTally int
	for _, v := range intervals {
		ratio := v / mean
		switch {
		case matchesAny(ratio, cfg.RatioTolerance, 1.0/3.0, 0.5):
			tripleTally++
		case matchesAny(ratio, cfg.RatioTolerance, 2.0/3.0, 4.0/3.0):
			compoundTally++
		case matchesAny(ratio, cfg.RatioTolerance, 1.0, 2.0):
			commonTally++
		}
	}

	switch {
	case compoundTally > tripleTally && compoundTally > commonTally:
		return MeterCompound
	case float64(tripleTally) > float64(commonTally)*(1+cfg.DominanceMargin):
		return MeterTriple
	case rawTempoBPM > cfg.OddMeterTempoBPM:
		return MeterOdd
	default:
		return MeterCommon
	}
}

func matchesAny(ratio, tolerance float64, multiples ...float64) bool {
	for _, m := range multiples {
		if math.Abs(ratio-m) < tolerance {
			return true
		}
	}
	return false
}
