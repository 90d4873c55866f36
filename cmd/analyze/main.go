package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"song-analysis/analysis"
	"song-analysis/db"
	"song-analysis/utils"
	"song-analysis/wav"
)

func main() {
	filePath := flag.String("file", "", "Audio file to analyze (WAV or MP3)")
	dbPath := flag.String("db", "", "SQLite database to store the result in (optional)")
	points := flag.Int("points", 0, "Waveform envelope resolution (default from config)")
	pretty := flag.Bool("pretty", true, "Pretty-print the JSON output")
	flag.Parse()

	_ = godotenv.Load()

	if *filePath == "" {
		log.Fatal("Usage: go run . -file <audio file> [-db <sqlite file>] [-points <n>]")
	}

	cfg := analysis.DefaultConfig()
	if *points > 0 {
		cfg.WaveformPoints = *points
	} else if env := utils.GetEnv("WAVEFORM_POINTS", ""); env != "" {
		n, err := strconv.Atoi(env)
		if err != nil || n < 1 {
			log.Fatalf("invalid WAVEFORM_POINTS value: %q", env)
		}
		cfg.WaveformPoints = n
	}

	buf, err := wav.DecodeFile(*filePath)
	if err != nil {
		log.Fatalf("failed to decode %s: %v", *filePath, err)
	}
	log.Printf("Decoded %s: %d samples at %d Hz (%.2fs)",
		*filePath, len(buf.Samples), buf.SampleRate, buf.Duration)

	features := analysis.AnalyzeWithConfig(buf, cfg)

	if *dbPath != "" {
		store, err := db.NewFeatureStore(*dbPath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer store.Close()

		record, err := store.SaveAnalysis(*filePath, buf, features)
		if err != nil {
			log.Fatalf("failed to store analysis: %v", err)
		}
		log.Printf("Stored analysis %s", record.ID)
	}

	var out []byte
	if *pretty {
		out, err = json.MarshalIndent(features, "", "  ")
	} else {
		out, err = json.Marshal(features)
	}
	if err != nil {
		log.Fatalf("failed to encode features: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}
