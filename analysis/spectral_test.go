package analysis

import (
	"math"
	"testing"
)

func TestSpectralSineStatistics(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	summary := extractSpectralSummary(sineBuffer(440, 0.5, 2, 44100), cfg)

	// Sign changes of a sine happen twice per cycle.
	wantZCR := 2 * 440.0 / 44100.0
	if math.Abs(summary.ZeroCrossingRate-wantZCR) > 0.01 {
		t.Errorf("sine ZCR = %f, want about %f", summary.ZeroCrossingRate, wantZCR)
	}

	if summary.Centroid < 300 || summary.Centroid > 700 {
		t.Errorf("sine centroid = %f Hz, want near 440", summary.Centroid)
	}
	if summary.Rolloff > 1000 {
		t.Errorf("sine rolloff = %f Hz, want below 1000", summary.Rolloff)
	}
	if summary.Flatness > 0.1 {
		t.Errorf("sine flatness = %f, want near 0 (tonal)", summary.Flatness)
	}
}

func TestSpectralNoiseStatistics(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	summary := extractSpectralSummary(noiseBuffer(5, 2*44100, 44100), cfg)

	if summary.Flatness < 0.2 {
		t.Errorf("white noise flatness = %f, want well above a tonal signal", summary.Flatness)
	}
	if summary.Rolloff < 5000 {
		t.Errorf("white noise rolloff = %f Hz, want broadband", summary.Rolloff)
	}
	if summary.ZeroCrossingRate < 0.2 {
		t.Errorf("white noise ZCR = %f, want high", summary.ZeroCrossingRate)
	}
}

func TestSpectralEmptyBuffer(t *testing.T) {
	t.Parallel()

	summary := extractSpectralSummary(SampleBuffer{SampleRate: 44100}, DefaultConfig())
	if summary != (spectralSummary{}) {
		t.Errorf("empty buffer summary = %+v, want zero value", summary)
	}
}

func TestDynamicRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		samples []float64
		want    float64
	}{
		{"all zero", []float64{0, 0, 0}, 0},
		{"constant level", []float64{0.5, -0.5, 0.5}, 0},
		{"20 dB spread", []float64{1.0, 0.1}, 20},
		{"clamped at 100", []float64{1.0, 1e-9}, 100},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := dynamicRangeDB(tc.samples)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("dynamic range = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestBandEnergiesSplit(t *testing.T) {
	t.Parallel()

	profile := make([]float64, 64)
	for i := range profile {
		profile[i] = 1
	}

	low, mid, high := bandEnergies(profile, 22050, 300, 3400)
	if total := low + mid + high; math.Abs(total-64) > 1e-9 {
		t.Fatalf("band energies sum to %f, want 64", total)
	}
	if low == 0 || mid == 0 || high == 0 {
		t.Errorf("expected every band populated, got low=%f mid=%f high=%f", low, mid, high)
	}
	if !(high > mid && mid > low) {
		t.Errorf("band widths should order high > mid > low for a flat profile, got low=%f mid=%f high=%f", low, mid, high)
	}
}

func TestFrameOffsets(t *testing.T) {
	t.Parallel()

	offsets := frameOffsets(100000, 2048, 10)
	if len(offsets) != 10 {
		t.Fatalf("got %d offsets, want 10", len(offsets))
	}
	if offsets[0] != 0 {
		t.Errorf("first offset = %d, want 0", offsets[0])
	}
	if last := offsets[len(offsets)-1]; last != 100000-2048 {
		t.Errorf("last offset = %d, want %d", last, 100000-2048)
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] <= offsets[i-1] {
			t.Errorf("offsets not strictly increasing at %d: %v", i, offsets)
		}
	}

	short := frameOffsets(100, 2048, 10)
	if len(short) != 1 || short[0] != 0 {
		t.Errorf("short buffer offsets = %v, want [0]", short)
	}
}

func TestZeroCrossingRate(t *testing.T) {
	t.Parallel()

	if zcr := zeroCrossingRate([]float64{1, -1, 1, -1, 1}); math.Abs(zcr-1) > 1e-12 {
		t.Errorf("alternating signal ZCR = %f, want 1", zcr)
	}
	if zcr := zeroCrossingRate([]float64{1, 1, 1}); zcr != 0 {
		t.Errorf("constant signal ZCR = %f, want 0", zcr)
	}
	if zcr := zeroCrossingRate([]float64{0.5}); zcr != 0 {
		t.Errorf("single sample ZCR = %f, want 0", zcr)
	}
}
