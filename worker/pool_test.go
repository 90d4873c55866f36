package worker

import (
	"errors"
	"sync"
	"testing"

	"song-analysis/analysis"
	"song-analysis/db"
)

type fakeStore struct {
	mu    sync.Mutex
	saved []string
}

func (f *fakeStore) SaveAnalysis(sourcePath string, buf analysis.SampleBuffer, fs analysis.FeatureSet) (db.AnalysisRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, sourcePath)
	return db.AnalysisRecord{ID: "test-id", SourcePath: sourcePath, Features: fs}, nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func testDecoder(t *testing.T) Decoder {
	t.Helper()
	return func(path string) (analysis.SampleBuffer, error) {
		samples := make([]float64, 4410)
		for i := range samples {
			samples[i] = 0.5
		}
		return analysis.SampleBuffer{
			Samples:    samples,
			SampleRate: 44100,
			Duration:   0.1,
		}, nil
	}
}

func TestPoolProcessesJobs(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	pool := NewPool(testDecoder(t), store, analysis.DefaultConfig(), 10)
	pool.Start(3)

	for i := 0; i < 5; i++ {
		if !pool.Submit(Job{Path: "track.wav"}) {
			t.Fatalf("submit %d rejected with room in the queue", i)
		}
	}
	pool.Stop()

	if got := store.count(); got != 5 {
		t.Errorf("expected 5 stored analyses, got %d", got)
	}
}

func TestPoolDropsWhenQueueFull(t *testing.T) {
	t.Parallel()

	pool := NewPool(testDecoder(t), nil, analysis.DefaultConfig(), 1)
	// Workers not started, so the queue never drains.
	if !pool.Submit(Job{Path: "a.wav"}) {
		t.Fatal("first submit should fit in the queue")
	}
	if pool.Submit(Job{Path: "b.wav"}) {
		t.Error("second submit should be dropped with a full queue")
	}
}

func TestPoolSkipsUndecodableFiles(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	decode := func(path string) (analysis.SampleBuffer, error) {
		return analysis.SampleBuffer{}, errors.New("corrupt file")
	}
	pool := NewPool(decode, store, analysis.DefaultConfig(), 4)
	pool.Start(1)
	pool.Submit(Job{Path: "broken.wav"})
	pool.Stop()

	if got := store.count(); got != 0 {
		t.Errorf("decode failures must not be stored, got %d records", got)
	}
}

func TestPoolNilStore(t *testing.T) {
	t.Parallel()

	pool := NewPool(testDecoder(t), nil, analysis.DefaultConfig(), 4)
	pool.Start(2)
	pool.Submit(Job{Path: "dry.wav"})
	pool.Stop()
}
