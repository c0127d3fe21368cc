package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vinayakrc/store-monitoring/services/api/report"
)

// Source yields a fresh dataset snapshot for one report run.
type Source interface {
	LoadDataset(ctx context.Context) (*report.Dataset, error)
}

// Runner executes report jobs on a bounded pool. Every run ends in a
// terminal registry state: Complete with the CSV artifact, or Failed with a
// diagnostic, including when the computation panics.
type Runner struct {
	registry *Registry
	pool     *Pool
	source   Source
	logger   *zap.Logger
	timeout  time.Duration
	now      func() time.Time
}

// NewRunner wires a runner over the registry, pool and dataset source.
func NewRunner(registry *Registry, pool *Pool, source Source, timeout time.Duration, logger *zap.Logger) *Runner {
	return &Runner{
		registry: registry,
		pool:     pool,
		source:   source,
		logger:   logger,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Trigger allocates a job, schedules its computation and returns the job id
// without waiting on the computation.
func (r *Runner) Trigger() string {
	id := r.registry.Create()
	r.pool.Go(func() { r.run(id) })
	return id
}

// Poll returns the job's current snapshot; ok is false for unknown ids.
func (r *Runner) Poll(id string) (Snapshot, bool) {
	return r.registry.Get(id)
}

func (r *Runner) run(id string) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("report computation panicked: %v", rec)
			if failErr := r.registry.Fail(id, err); failErr != nil {
				r.logger.Error("mark job failed", zap.String("report_id", id), zap.Error(failErr))
			}
			r.logger.Error("report panicked", zap.String("report_id", id), zap.Any("panic", rec))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	started := r.now()
	dataset, err := r.source.LoadDataset(ctx)
	if err != nil {
		if failErr := r.registry.Fail(id, err); failErr != nil {
			r.logger.Error("mark job failed", zap.String("report_id", id), zap.Error(failErr))
		}
		r.logger.Error("load dataset", zap.String("report_id", id), zap.Error(err))
		return
	}

	anchor := dataset.Anchor(r.now().UTC())
	artifact := report.NewBuilder(dataset).BuildCSV(anchor)

	if err := r.registry.Complete(id, artifact); err != nil {
		r.logger.Error("mark job complete", zap.String("report_id", id), zap.Error(err))
		return
	}

	r.logger.Info("report complete",
		zap.String("report_id", id),
		zap.Time("anchor", anchor),
		zap.Int("stores", len(dataset.Timeline.StoreIDs())),
		zap.Duration("elapsed", r.now().Sub(started)),
	)
}
