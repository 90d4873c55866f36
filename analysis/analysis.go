// Package analysis extracts musical features from decoded audio.
//
// The pipeline runs entirely on an in-memory sample buffer and is pure:
// the same buffer always produces the same FeatureSet, no state survives a
// call, and two analyses can run concurrently with zero coordination.
// Decoding audio into the buffer and doing anything with the resulting
// FeatureSet are the caller's concern.
//
// Stage order:
//
//  1. Waveform preprocessor: display envelope and RMS loudness
//  2. Tempo estimator: onset-strength autocorrelation
//  3. Spectral extractor: windowed frame statistics
//  4. Key detector: chroma profile over sampled frames
//  5. Time-signature detector: beat-interval ratio templates
//  6. Synthesizer: perceptual scores and genre/mood tags
//
// Stages 1-5 only read the buffer; the synthesizer only reads their
// outputs. Degenerate input (silence, near-empty buffers) falls back to
// documented defaults instead of propagating NaN or infinity.
package analysis

// Analyze runs the full extraction pipeline with the default
// configuration.
func Analyze(buf SampleBuffer) FeatureSet {
	return AnalyzeWithConfig(buf, DefaultConfig())
}

// AnalyzeWithConfig runs the full extraction pipeline. The returned
// FeatureSet is complete: every field is populated and inside its
// documented range, whatever the input looks like.
func AnalyzeWithConfig(buf SampleBuffer, cfg Config) FeatureSet {
	var fs FeatureSet

	fs.Waveform = clampWaveform(WaveformEnvelope(buf, cfg.WaveformPoints))
	fs.Loudness = LoudnessDB(buf)

	tempo := estimateTempo(buf, cfg)
	fs.Tempo = tempo.BPM

	spectral := extractSpectralSummary(buf, cfg)
	fs.Key = detectKey(buf, cfg)
	fs.TimeSignature = detectTimeSignature(buf, tempo.RawBPM, cfg)

	synthesizeScores(&fs, scoreInputs{
		Tempo:     fs.Tempo,
		Energy:    energyScore(buf.Samples),
		Spectral:  spectral,
		NyquistHz: float64(buf.SampleRate) / 2,
	})
	assignTags(&fs)

	return fs
}

// clampWaveform bounds envelope points to [0, 1] for the output contract.
// The raw envelope is unnormalized and can exceed 1 on near-clipping audio.
func clampWaveform(envelope []float64) []float64 {
	for i, v := range envelope {
		envelope[i] = clamp01(v)
	}
	return envelope
}
