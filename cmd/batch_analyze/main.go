package main

import (
	"flag"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"song-analysis/analysis"
	"song-analysis/db"
	"song-analysis/wav"
	"song-analysis/worker"
)

func main() {
	rootDir := flag.String("dir", "", "Directory to scan for WAV/MP3 files")
	dbPath := flag.String("db", "analyses.db", "SQLite database to store results in")
	workers := flag.Int("workers", 4, "Number of concurrent analysis workers")
	flag.Parse()

	_ = godotenv.Load()

	if *rootDir == "" {
		log.Fatal("Usage: go run . -dir <directory> [-db <sqlite file>] [-workers <n>]")
	}

	files, err := collectAudioFiles(*rootDir)
	if err != nil {
		log.Fatalf("failed to scan %s: %v", *rootDir, err)
	}
	if len(files) == 0 {
		log.Fatalf("no WAV or MP3 files found in %s", *rootDir)
	}
	log.Printf("Found %d audio files in %s", len(files), *rootDir)

	store, err := db.NewFeatureStore(*dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer store.Close()

	pool := worker.NewPool(wav.DecodeFile, store, analysis.DefaultConfig(), len(files))
	pool.Start(*workers)

	queued := 0
	for _, path := range files {
		if pool.Submit(worker.Job{Path: path}) {
			queued++
		}
	}
	pool.Stop()

	log.Printf("Analyzed %d of %d files, results in %s", queued, len(files), *dbPath)
}

func collectAudioFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".wav", ".mp3":
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
