// Package worker runs audio analyses in the background.
//
// Each analysis is independent and shares no state, so a fixed pool of
// goroutines can drain the job queue with no coordination beyond the
// channel itself. Decoding and persistence are injected so the pool stays
// agnostic of file formats and storage backends.
package worker

import (
	"log/slog"
	"sync"

	"github.com/mdobak/go-xerrors"

	"song-analysis/analysis"
	"song-analysis/db"
	"song-analysis/utils"
)

// Job is one file queued for analysis.
type Job struct {
	Path string
}

// Decoder turns an audio file into a sample buffer.
type Decoder func(path string) (analysis.SampleBuffer, error)

// Saver persists a completed analysis.
type Saver interface {
	SaveAnalysis(sourcePath string, buf analysis.SampleBuffer, fs analysis.FeatureSet) (db.AnalysisRecord, error)
}

// Pool manages background workers for analysis jobs.
type Pool struct {
	decode Decoder
	store  Saver
	cfg    analysis.Config
	jobs   chan Job
	wg     sync.WaitGroup
}

// NewPool creates a pool using the given decoder and store. Results are
// discarded when store is nil (useful for dry runs).
func NewPool(decode Decoder, store Saver, cfg analysis.Config, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		decode: decode,
		store:  store,
		cfg:    cfg,
		jobs:   make(chan Job, queueSize),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking. A full queue drops the job and
// reports false.
func (p *Pool) Submit(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		utils.GetLogger().Warn("analysis queue full, dropping job",
			slog.String("path", job.Path))
		return false
	}
}

func (p *Pool) processJob(job Job) {
	logger := utils.GetLogger()

	buf, err := p.decode(job.Path)
	if err != nil {
		logger.Error("failed to decode audio file",
			slog.String("path", job.Path),
			slog.Any("error", xerrors.New(err)))
		return
	}

	fs := analysis.AnalyzeWithConfig(buf, p.cfg)
	logger.Info("analysis complete",
		slog.String("path", job.Path),
		slog.Int("tempo", fs.Tempo),
		slog.String("key", fs.Key),
		slog.String("timeSignature", fs.TimeSignature))

	if p.store == nil {
		return
	}
	record, err := p.store.SaveAnalysis(job.Path, buf, fs)
	if err != nil {
		logger.Error("failed to store analysis",
			slog.String("path", job.Path),
			slog.Any("error", xerrors.New(err)))
		return
	}
	logger.Info("analysis stored",
		slog.String("path", job.Path),
		slog.String("id", record.ID))
}
