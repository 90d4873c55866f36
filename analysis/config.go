package analysis

// Config holds the tunable parameters of the extraction pipeline. The
// defaults reproduce the behaviour the rest of the application was tuned
// against; the meter thresholds in particular are heuristic constants that
// callers may adjust, not hard invariants.
type Config struct {
	// Waveform preprocessor
	WaveformPoints int // display envelope length, default 200

	// Envelope / tempo estimator
	EnvelopeHop    int     // samples per envelope frame, default 512
	TempoWindowSec float64 // analysis window for tempo, default 10
	MinTempoBPM    float64 // default 60
	MaxTempoBPM    float64 // default 180
	DefaultTempo   int     // fallback for degenerate buffers, default 120

	// Spectral extractor
	SpectralFrames  int // frames sampled across the buffer, default 10
	FrameSize       int // samples per frame, default 2048
	ProfileBins     int // buckets in the binned magnitude profile, default 64
	RolloffFraction float64 // cumulative-energy fraction for rolloff, default 0.85
	LowBandHz       float64 // upper edge of the low band, default 300
	HighBandHz      float64 // lower edge of the high band, default 3400

	// Key detector
	ChromaMinHz float64 // default 50
	ChromaMaxHz float64 // default 2000

	// Time-signature detector
	MeterWindowSec   float64 // default 20
	OnsetThreshold   float64 // envelope peaks above threshold*mean count as beats, default 1.5
	MaxBeatIntervals int     // cap on analysed inter-onset intervals, default 50
	RatioTolerance   float64 // tolerance band around each template multiple, default 0.2
	DominanceMargin  float64 // triple meter must beat common meter by this margin, default 0.3
	OddMeterTempoBPM float64 // raw tempo above this falls back to 7/8, default 200
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return Config{
		WaveformPoints: 200,

		EnvelopeHop:    512,
		TempoWindowSec: 10,
		MinTempoBPM:    60,
		MaxTempoBPM:    180,
		DefaultTempo:   120,

		SpectralFrames:  10,
		FrameSize:       2048,
		ProfileBins:     64,
		RolloffFraction: 0.85,
		LowBandHz:       300,
		HighBandHz:      3400,

		ChromaMinHz: 50,
		ChromaMaxHz: 2000,

		MeterWindowSec:   20,
		OnsetThreshold:   1.5,
		MaxBeatIntervals: 50,
		RatioTolerance:   0.2,
		DominanceMargin:  0.3,
		OddMeterTempoBPM: 200,
	}
}
