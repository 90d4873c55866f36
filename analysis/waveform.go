package analysis

import "math"

// silenceFloorDB is the loudness reported for true silence instead of the
// -Inf a log of zero would produce.
const silenceFloorDB = -100.0

// WaveformEnvelope downsamples the buffer into exactly `points` values, each
// the mean absolute amplitude of one contiguous block. When the sample count
// does not divide evenly the trailing remainder is dropped. Values are not
// normalized here; near-clipping audio can exceed 1 and display layers clamp
// their own scale.
func WaveformEnvelope(buf SampleBuffer, points int) []float64 {
	if points <= 0 {
		return nil
	}

	envelope := make([]float64, points)
	blockSize := len(buf.Samples) / points
	if blockSize < 1 {
		// Fewer samples than requested points: one sample per point,
		// zero-filled past the end of the buffer.
		for i := range envelope {
			if i < len(buf.Samples) {
				envelope[i] = math.Abs(buf.Samples[i])
			}
		}
		return envelope
	}

	for i := 0; i < points; i++ {
		start := i * blockSize
		var sum float64
		for _, s := range buf.Samples[start : start+blockSize] {
			sum += math.Abs(s)
		}
		envelope[i] = sum / float64(blockSize)
	}
	return envelope
}

// LoudnessDB returns the overall RMS loudness of the buffer in decibels,
// floored at silenceFloorDB so silence never yields -Inf.
func LoudnessDB(buf SampleBuffer) float64 {
	rms := rootMeanSquare(buf.Samples)
	if rms <= 0 {
		return silenceFloorDB
	}
	db := 20 * math.Log10(rms)
	if db < silenceFloorDB {
		return silenceFloorDB
	}
	return db
}

func rootMeanSquare(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// meanSquareEnergy is the average sample power, the basis of the energy score.
func meanSquareEnergy(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += v * v
	}
	return sum / float64(len(samples))
}

// clamp01 clamps a value to [0, 1] range
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
