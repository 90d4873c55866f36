// Package db persists completed analyses in SQLite.
//
// The extraction core hands ownership of each FeatureSet to the caller;
// this package is the caller-side store. Scalar features map to columns so
// they can be filtered in SQL, while the waveform envelope and label lists
// are stored as JSON blobs.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver registration

	"song-analysis/analysis"
	"song-analysis/utils"
)

// AnalysisRecord is one stored analysis result.
type AnalysisRecord struct {
	ID         string              `json:"id"`
	SourcePath string              `json:"sourcePath"`
	CreatedAt  time.Time           `json:"createdAt"`
	SampleRate int                 `json:"sampleRate"`
	Duration   float64             `json:"duration"`
	Features   analysis.FeatureSet `json:"features"`
}

// FeatureStore is a SQLite-backed store of analysis records.
type FeatureStore struct {
	db *sql.DB
}

// NewFeatureStore opens (creating if needed) the store at the given DSN.
func NewFeatureStore(dataSourceName string) (*FeatureStore, error) {
	// Extract the file path before query parameters
	dbPath := dataSourceName
	if idx := strings.Index(dataSourceName, "?"); idx != -1 {
		dbPath = dataSourceName[:idx]
	}

	if dbDir := filepath.Dir(dbPath); dbDir != "." && dbDir != "" {
		if err := utils.CreateFolder(dbDir); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	// Add busy timeout param to DSN (milliseconds)
	if !strings.Contains(dataSourceName, "_busy_timeout") {
		if strings.Contains(dataSourceName, "?") {
			dataSourceName += "&_busy_timeout=5000"
		} else {
			dataSourceName += "?_busy_timeout=5000"
		}
	}

	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("error connecting to SQLite: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("error creating tables: %w", err)
	}

	return &FeatureStore{db: db}, nil
}

func createTables(db *sql.DB) error {
	createAnalysesTable := `
    CREATE TABLE IF NOT EXISTS analyses (
        id TEXT PRIMARY KEY,
        source_path TEXT NOT NULL,
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        sample_rate INTEGER NOT NULL,
        duration REAL NOT NULL,
        tempo INTEGER NOT NULL,
        key_name TEXT NOT NULL,
        time_signature TEXT NOT NULL,
        energy REAL NOT NULL,
        danceability REAL NOT NULL,
        valence REAL NOT NULL,
        acousticness REAL NOT NULL,
        instrumentalness REAL NOT NULL,
        speechiness REAL NOT NULL,
        liveness REAL NOT NULL,
        loudness REAL NOT NULL,
        waveform TEXT NOT NULL,
        genres TEXT NOT NULL,
        moods TEXT NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at);
    CREATE INDEX IF NOT EXISTS idx_analyses_source ON analyses(source_path);
    `

	if _, err := db.Exec(createAnalysesTable); err != nil {
		return fmt.Errorf("error creating analyses table: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *FeatureStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveAnalysis stores a FeatureSet for a source file and returns the
// record with its generated ID and timestamp filled in.
func (s *FeatureStore) SaveAnalysis(sourcePath string, buf analysis.SampleBuffer, fs analysis.FeatureSet) (AnalysisRecord, error) {
	record := AnalysisRecord{
		ID:         uuid.NewString(),
		SourcePath: sourcePath,
		CreatedAt:  time.Now().UTC(),
		SampleRate: buf.SampleRate,
		Duration:   buf.Duration,
		Features:   fs,
	}

	waveform, err := json.Marshal(fs.Waveform)
	if err != nil {
		return AnalysisRecord{}, fmt.Errorf("error encoding waveform: %w", err)
	}
	genres, err := json.Marshal(fs.Genres)
	if err != nil {
		return AnalysisRecord{}, fmt.Errorf("error encoding genres: %w", err)
	}
	moods, err := json.Marshal(fs.Moods)
	if err != nil {
		return AnalysisRecord{}, fmt.Errorf("error encoding moods: %w", err)
	}

	_, err = s.db.Exec(`
        INSERT INTO analyses (
            id, source_path, created_at, sample_rate, duration,
            tempo, key_name, time_signature,
            energy, danceability, valence, acousticness,
            instrumentalness, speechiness, liveness, loudness,
            waveform, genres, moods
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.SourcePath, record.CreatedAt, record.SampleRate, record.Duration,
		fs.Tempo, fs.Key, fs.TimeSignature,
		fs.Energy, fs.Danceability, fs.Valence, fs.Acousticness,
		fs.Instrumentalness, fs.Speechiness, fs.Liveness, fs.Loudness,
		string(waveform), string(genres), string(moods),
	)
	if err != nil {
		return AnalysisRecord{}, fmt.Errorf("error inserting analysis: %w", err)
	}
	return record, nil
}

// GetAnalysis loads one analysis record by ID.
func (s *FeatureStore) GetAnalysis(id string) (AnalysisRecord, error) {
	row := s.db.QueryRow(`
        SELECT id, source_path, created_at, sample_rate, duration,
            tempo, key_name, time_signature,
            energy, danceability, valence, acousticness,
            instrumentalness, speechiness, liveness, loudness,
            waveform, genres, moods
        FROM analyses WHERE id = ?`, id)
	return scanRecord(row)
}

// ListAnalyses returns the most recent analyses, newest first.
func (s *FeatureStore) ListAnalyses(limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
        SELECT id, source_path, created_at, sample_rate, duration,
            tempo, key_name, time_signature,
            energy, danceability, valence, acousticness,
            instrumentalness, speechiness, liveness, loudness,
            waveform, genres, moods
        FROM analyses ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying analyses: %w", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (AnalysisRecord, error) {
	var record AnalysisRecord
	var waveform, genres, moods string

	err := row.Scan(
		&record.ID, &record.SourcePath, &record.CreatedAt, &record.SampleRate, &record.Duration,
		&record.Features.Tempo, &record.Features.Key, &record.Features.TimeSignature,
		&record.Features.Energy, &record.Features.Danceability, &record.Features.Valence,
		&record.Features.Acousticness, &record.Features.Instrumentalness,
		&record.Features.Speechiness, &record.Features.Liveness, &record.Features.Loudness,
		&waveform, &genres, &moods,
	)
	if err != nil {
		return AnalysisRecord{}, fmt.Errorf("error scanning analysis: %w", err)
	}

	if err := json.Unmarshal([]byte(waveform), &record.Features.Waveform); err != nil {
		return AnalysisRecord{}, fmt.Errorf("error decoding waveform: %w", err)
	}
	if err := json.Unmarshal([]byte(genres), &record.Features.Genres); err != nil {
		return AnalysisRecord{}, fmt.Errorf("error decoding genres: %w", err)
	}
	if err := json.Unmarshal([]byte(moods), &record.Features.Moods); err != nil {
		return AnalysisRecord{}, fmt.Errorf("error decoding moods: %w", err)
	}
	return record, nil
}
