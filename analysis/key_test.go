package analysis

import (
	"strings"
	"testing"
)

func TestPitchClass(t *testing.T) {
	t.Parallel()

	cases := []struct {
		freq float64
		want int
	}{
		{440, 9},     // A4
		{880, 9},     // A5
		{220, 9},     // A3
		{261.63, 0},  // C4
		{466.16, 10}, // A#4
		{329.63, 4},  // E4
		{55, 9},      // A1
	}
	for _, tc := range cases {
		if got := pitchClass(tc.freq); got != tc.want {
			t.Errorf("pitchClass(%f) = %d (%s), want %d (%s)",
				tc.freq, got, noteNames[got], tc.want, noteNames[tc.want])
		}
	}
}

func TestDetectKeyPureTones(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cases := []struct {
		freq  float64
		tonic string
	}{
		{440, "A"},
		{523.25, "C"},
		{329.63, "E"},
	}
	for _, tc := range cases {
		key := detectKey(sineBuffer(tc.freq, 0.5, 2, 44100), cfg)
		if !strings.HasPrefix(key, tc.tonic+" ") {
			t.Errorf("%f Hz tone detected as %q, want tonic %s", tc.freq, key, tc.tonic)
		}
	}
}

func TestDetectKeyAmplitudeInvariant(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	buf := sineBuffer(440, 0.8, 2, 44100)
	if loud, quiet := detectKey(buf, cfg), detectKey(scaledBuffer(buf, 0.5), cfg); loud != quiet {
		t.Errorf("key changed with amplitude: %q vs %q", loud, quiet)
	}
}

func TestDetectKeyDegenerateBuffers(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if key := detectKey(silenceBuffer(44100, 44100), cfg); key != "C major" {
		t.Errorf("silence detected as %q, want deterministic fallback \"C major\"", key)
	}
	if key := detectKey(SampleBuffer{SampleRate: 44100}, cfg); key != "C major" {
		t.Errorf("empty buffer detected as %q, want \"C major\"", key)
	}
}

func TestDetectKeyAlwaysCanonical(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	valid := make(map[string]bool, 24)
	for _, k := range KeyNames() {
		valid[k] = true
	}

	for seed := int64(0); seed < 10; seed++ {
		key := detectKey(noiseBuffer(seed, 44100, 44100), cfg)
		if !valid[key] {
			t.Errorf("seed %d: key %q is not canonical", seed, key)
		}
	}
}

func TestKeyNames(t *testing.T) {
	t.Parallel()

	keys := KeyNames()
	if len(keys) != 24 {
		t.Fatalf("got %d key names, want 24", len(keys))
	}
	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key name %q", k)
		}
		seen[k] = true
		if !strings.HasSuffix(k, " major") && !strings.HasSuffix(k, " minor") {
			t.Errorf("key name %q missing mode suffix", k)
		}
	}
}
