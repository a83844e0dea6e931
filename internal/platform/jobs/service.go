package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task runs with the worker's context, which outlives the request that
// enqueued it.
type Task = func(ctx context.Context) error

type job struct {
	Type string
	Run  Task
}

// Service is a bounded in-process queue drained by a fixed set of workers.
// Jobs enqueued while the queue is full are dropped with a warning.
type Service struct {
	queue  chan job
	logger *slog.Logger
	wg     sync.WaitGroup
}

func New(size int, logger *slog.Logger) *Service {
	if size <= 0 {
		size = 128
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{queue: make(chan job, size), logger: logger}
}

// Start launches workers that run until ctx is cancelled. Wait blocks until
// they have returned.
func (s *Service) Start(ctx context.Context, workers int) {
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.worker(ctx)
		}()
	}
}

func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) Enqueue(jobType string, run Task) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		s.logger.Warn("job queue full", "jobType", jobType)
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run Task) error {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if err := s.runJob(ctx, j); err != nil {
				s.logger.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) error {
	start := time.Now()
	err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	s.logger.Debug("job run", "jobType", j.Type, "status", status, "durationMs", time.Since(start).Milliseconds())
	return err
}
