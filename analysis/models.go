package analysis

// SampleBuffer bundles decoded mono PCM samples together with contextual
// metadata. It is produced by an external decode step and treated as
// read-only by every stage of the extraction pipeline.
type SampleBuffer struct {
	Samples    []float64 // mono samples, nominal range [-1, 1]
	SampleRate int       // Hz
	Duration   float64   // seconds
}

// FeatureSet is the complete analysis record produced for one track. It is
// the sole artifact handed to persistence, export, and display layers, so
// every bounded field must stay inside its documented range even for
// degenerate input.
type FeatureSet struct {
	Tempo            int       `json:"tempo"`         // BPM, 60-180
	Key              string    `json:"key"`           // e.g. "A minor"
	TimeSignature    string    `json:"timeSignature"` // one of 3/4, 4/4, 6/8, 7/8
	Energy           float64   `json:"energy"`
	Danceability     float64   `json:"danceability"`
	Valence          float64   `json:"valence"`
	Acousticness     float64   `json:"acousticness"`
	Instrumentalness float64   `json:"instrumentalness"`
	Speechiness      float64   `json:"speechiness"`
	Liveness         float64   `json:"liveness"`
	Loudness         float64   `json:"loudness"` // dB, floored at -100
	Waveform         []float64 `json:"waveform"` // display envelope, values in [0, 1]
	Genres           []string  `json:"genres"`
	Moods            []string  `json:"moods"`
}

// spectralSummary carries the per-frame spectral statistics averaged across
// all sampled frames, plus the buffer-wide dynamic range. Scratch state for
// one extraction call, never persisted.
type spectralSummary struct {
	ZeroCrossingRate float64
	Centroid         float64 // Hz
	Rolloff          float64 // Hz
	Flatness         float64 // 0-1
	Bandwidth        float64 // Hz
	LowBandEnergy    float64
	MidBandEnergy    float64
	HighBandEnergy   float64
	DynamicRangeDB   float64 // 0-100
}

func (s spectralSummary) totalBandEnergy() float64 {
	return s.LowBandEnergy + s.MidBandEnergy + s.HighBandEnergy
}

// midBandRatio is the share of binned-profile energy falling in the vocal
// band. Kept as a method so the synthesizer formulas read close to their
// definitions.
func (s spectralSummary) midBandRatio() float64 {
	total := s.totalBandEnergy()
	if total <= 0 {
		return 0
	}
	return s.MidBandEnergy / total
}
