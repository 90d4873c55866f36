package analysis

// Perceptual Score Synthesis
//
// The eight output scores are pure functions of the primitives produced by
// the other stages. Every score is clamped to [0, 1]; a NaN anywhere in a
// formula is intercepted at the point of first use, replaced with the 0.5
// neutral default, and logged as a warning. This is a heuristic engine, so
// it degrades instead of aborting.

import (
	"log/slog"
	"math"

	"song-analysis/utils"
)

// scoreInputs gathers the normalized primitives the score formulas draw on.
type scoreInputs struct {
	Tempo     int
	Energy    float64
	Spectral  spectralSummary
	NyquistHz float64
}

// synthesizeScores computes the eight perceptual scores from the stage
// outputs and writes them into the FeatureSet.
func synthesizeScores(fs *FeatureSet, in scoreInputs) {
	nyquist := in.NyquistHz
	if nyquist <= 0 {
		nyquist = 1
	}

	normCentroid := clamp01(in.Spectral.Centroid / nyquist)
	normRolloff := clamp01(in.Spectral.Rolloff / nyquist)
	normBandwidth := clamp01(in.Spectral.Bandwidth / nyquist)
	normZCR := clamp01(in.Spectral.ZeroCrossingRate)
	normDynRange := clamp01(in.Spectral.DynamicRangeDB / 100)
	flatness := clamp01(in.Spectral.Flatness)
	tonality := 1 - flatness
	midRatio := in.Spectral.midBandRatio()

	brightness := 0.0
	if total := in.Spectral.totalBandEnergy(); total > 0 {
		brightness = in.Spectral.HighBandEnergy / total
	}

	fs.Energy = safeScore("energy", in.Energy)
	fs.Danceability = safeScore("danceability",
		0.6*tempoCloseness(in.Tempo, 125)+0.4*in.Energy)
	fs.Valence = safeScore("valence",
		0.4*brightness+0.3*tonality+0.3*(1-normCentroid))
	fs.Acousticness = safeScore("acousticness",
		0.4*(1-normRolloff)+0.4*tonality+0.2*normDynRange)
	fs.Instrumentalness = safeScore("instrumentalness",
		0.7*(1-math.Min(1, 2*midRatio))+0.3*normBandwidth)
	fs.Speechiness = safeScore("speechiness",
		0.3*normZCR+0.5*midRatio+0.2*flatness)
	fs.Liveness = safeScore("liveness",
		0.4*normDynRange+0.3*flatness+0.3*normBandwidth)
}

// tempoCloseness peaks at 1 when the tempo sits on the reference BPM and
// decays linearly to 0 at twice the distance of the reference.
func tempoCloseness(tempo, reference int) float64 {
	return math.Max(0, 1-math.Abs(float64(tempo-reference))/float64(reference))
}

// energyScore is the scaled mean sample power, saturating at 1.
func energyScore(samples []float64) float64 {
	return math.Min(1, 10*meanSquareEnergy(samples))
}

// safeScore clamps a score into [0, 1] and substitutes the neutral default
// for NaN, logging a warning rather than letting NaN reach a consumer.
func safeScore(name string, value float64) float64 {
	if math.IsNaN(value) {
		utils.GetLogger().Warn("score computed as NaN, using neutral default",
			slog.String("score", name))
		return 0.5
	}
	return clamp01(value)
}

// tagRule pairs a predicate over the synthesized features with the labels
// it implies. Rules are evaluated top to bottom; the first match wins, so
// more specific rules must stay above broader ones.
type tagRule struct {
	applies func(fs FeatureSet) bool
	genres  []string
	moods   []string
}

// tagRules is the ordered decision table for genre and mood labels. The
// final rule matches everything, so tagging always yields labels.
var tagRules = []tagRule{
	{
		applies: func(fs FeatureSet) bool { return fs.Tempo > 150 && fs.Energy > 0.8 },
		genres:  []string{"Drum and Bass", "Electronic"},
		moods:   []string{"Intense", "Driving"},
	},
	{
		applies: func(fs FeatureSet) bool { return fs.Tempo > 140 && fs.Energy > 0.7 },
		genres:  []string{"Electronic", "Dance"},
		moods:   []string{"Energetic", "Euphoric"},
	},
	{
		applies: func(fs FeatureSet) bool { return fs.Acousticness > 0.7 && fs.Energy < 0.4 },
		genres:  []string{"Folk", "Acoustic"},
		moods:   []string{"Calm", "Intimate"},
	},
	{
		applies: func(fs FeatureSet) bool { return fs.Acousticness > 0.6 && fs.Valence > 0.6 },
		genres:  []string{"Indie", "Acoustic", "Pop"},
		moods:   []string{"Warm", "Hopeful"},
	},
	{
		applies: func(fs FeatureSet) bool { return fs.Valence < 0.3 && fs.Energy < 0.4 },
		genres:  []string{"Ambient", "Downtempo"},
		moods:   []string{"Melancholic", "Brooding"},
	},
	{
		applies: func(fs FeatureSet) bool { return fs.Valence < 0.35 && fs.Energy > 0.6 },
		genres:  []string{"Rock", "Alternative"},
		moods:   []string{"Restless", "Dark"},
	},
	{
		applies: func(fs FeatureSet) bool {
			return fs.Tempo >= 85 && fs.Tempo <= 110 && fs.Speechiness > 0.33
		},
		genres: []string{"Hip-Hop", "R&B"},
		moods:  []string{"Confident", "Groovy"},
	},
	{
		applies: func(fs FeatureSet) bool { return fs.Valence > 0.7 && fs.Energy > 0.5 },
		genres:  []string{"Pop", "Dance"},
		moods:   []string{"Happy", "Bright"},
	},
	{
		applies: func(fs FeatureSet) bool { return true },
		genres:  []string{"Pop", "Indie"},
		moods:   []string{"Mellow", "Reflective"},
	},
}

// assignTags fills in the genre and mood labels from the first matching rule.
func assignTags(fs *FeatureSet) {
	for _, rule := range tagRules {
		if rule.applies(*fs) {
			fs.Genres = append([]string(nil), rule.genres...)
			fs.Moods = append([]string(nil), rule.moods...)
			return
		}
	}
}
