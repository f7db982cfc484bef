package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/WhackALawyer_Go/internal/worker"
)

// IntervalFunc returns the delay before the next run of a task. It is called
// after every run, so the interval may change while the task is active.
type IntervalFunc func() time.Duration

// Task is a handle on one repeating job
type Task interface {
	Name() string
	// Stop cancels future runs. It does not wait for a run in progress.
	Stop()
}

// Runner registers repeating jobs
type Runner interface {
	Schedule(name string, interval time.Duration, job worker.Job) Task
	ScheduleFunc(name string, next IntervalFunc, job worker.Job) Task
}

// Scheduler runs repeating jobs, one goroutine per task. A task's runs never
// overlap: the next delay starts only after the job returns.
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new scheduler
func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// Schedule registers a job to run at a fixed interval
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) Task {
	return s.ScheduleFunc(name, func() time.Duration { return interval }, job)
}

// ScheduleFunc registers a job whose delay is recomputed after every run
func (s *Scheduler) ScheduleFunc(name string, next IntervalFunc, job worker.Job) Task {
	ctx, cancel := context.WithCancel(s.ctx)
	t := &task{name: name, cancel: cancel}

	if ctx.Err() != nil {
		return t
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		run(ctx, name, next, job)
	}()
	return t
}

// Enqueue registers a job that is handed to the worker pool at a fixed interval
func (s *Scheduler) Enqueue(name string, interval time.Duration, pool *worker.Pool, job worker.Job) Task {
	return s.Schedule(name, interval, worker.JobFunc(func(context.Context) error {
		pool.TryEnqueue(job)
		return nil
	}))
}

// Stop cancels every task and waits for their goroutines to exit
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func run(ctx context.Context, name string, next IntervalFunc, job worker.Job) {
	log := slog.Default().With("task", name)
	log.Debug(LogMsgTaskStarted)
	defer log.Debug(LogMsgTaskStopped)

	timer := time.NewTimer(clampInterval(next()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			if err := job.Process(ctx); err != nil && ctx.Err() == nil {
				log.Error(LogMsgTaskJobFailed, "error", err)
			}
			if ctx.Err() != nil {
				return
			}
			timer.Reset(clampInterval(next()))
		}
	}
}

func clampInterval(d time.Duration) time.Duration {
	if d < MinInterval {
		return MinInterval
	}
	return d
}

type task struct {
	name   string
	cancel context.CancelFunc
}

func (t *task) Name() string { return t.name }

func (t *task) Stop() { t.cancel() }
