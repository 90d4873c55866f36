package analysis

import "testing"

func TestEstimateTempoDefaults(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cases := []struct {
		name string
		buf  SampleBuffer
	}{
		{"empty", SampleBuffer{SampleRate: 44100}},
		{"shorter than one hop", noiseBuffer(3, 100, 44100)},
		{"silence", silenceBuffer(44100, 44100)},
		{"zero sample rate", SampleBuffer{Samples: make([]float64, 44100)}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			est := estimateTempo(tc.buf, cfg)
			if est.BPM != cfg.DefaultTempo {
				t.Errorf("tempo = %d, want default %d", est.BPM, cfg.DefaultTempo)
			}
		})
	}
}

func TestEstimateTempoClickTrack(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	// 45 hops between clicks: 60 * (44100/512) / 45 ≈ 114.8 BPM.
	est := estimateTempo(clickBuffer(45*512, 10*44100, 44100), cfg)
	if est.BPM < 113 || est.BPM > 117 {
		t.Errorf("45-hop click track tempo = %d, want about 115", est.BPM)
	}

	// 30 hops between clicks: ≈ 172.3 BPM.
	est = estimateTempo(clickBuffer(30*512, 10*44100, 44100), cfg)
	if est.BPM < 170 || est.BPM > 175 {
		t.Errorf("30-hop click track tempo = %d, want about 172", est.BPM)
	}
}

func TestEstimateTempoRange(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	for seed := int64(0); seed < 10; seed++ {
		est := estimateTempo(noiseBuffer(seed, 3*44100, 44100), cfg)
		if est.BPM < int(cfg.MinTempoBPM) || est.BPM > int(cfg.MaxTempoBPM) {
			t.Errorf("seed %d: tempo %d outside [%v, %v]", seed, est.BPM, cfg.MinTempoBPM, cfg.MaxTempoBPM)
		}
	}
}

func TestEstimateTempoAmplitudeInvariant(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	buf := clickBuffer(45*512, 10*44100, 44100)
	loud := estimateTempo(buf, cfg)
	quiet := estimateTempo(scaledBuffer(buf, 0.5), cfg)
	if loud.BPM != quiet.BPM {
		t.Errorf("tempo changed with amplitude: %d vs %d", loud.BPM, quiet.BPM)
	}
}
