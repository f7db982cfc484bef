package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/WhackALawyer_Go/internal/worker"
)

// Manual is a Runner whose tasks only run when fired. Registering a name
// that is already active replaces the previous task.
type Manual struct {
	mu    sync.Mutex
	tasks map[string]*manualTask
}

// NewManual creates an empty manual scheduler
func NewManual() *Manual {
	return &Manual{tasks: make(map[string]*manualTask)}
}

// Schedule registers a fixed-interval task
func (m *Manual) Schedule(name string, interval time.Duration, job worker.Job) Task {
	return m.ScheduleFunc(name, func() time.Duration { return interval }, job)
}

// ScheduleFunc registers a task with a dynamic interval
func (m *Manual) ScheduleFunc(name string, next IntervalFunc, job worker.Job) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTask{owner: m, name: name, next: next, job: job}
	m.tasks[name] = t
	return t
}

// Fire runs the named task once if it is active. It reports whether the task ran.
func (m *Manual) Fire(name string) bool {
	m.mu.Lock()
	t, ok := m.tasks[name]
	m.mu.Unlock()
	if !ok {
		return false
	}
	_ = t.job.Process(context.Background())
	return true
}

// Active reports whether a task with the name is registered and not stopped
func (m *Manual) Active(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tasks[name]
	return ok
}

// Interval returns the delay the named task would be armed with next
func (m *Manual) Interval(name string) time.Duration {
	m.mu.Lock()
	t, ok := m.tasks[name]
	m.mu.Unlock()
	if !ok {
		return 0
	}
	return t.next()
}

type manualTask struct {
	owner *Manual
	name  string
	next  IntervalFunc
	job   worker.Job
}

func (t *manualTask) Name() string { return t.name }

func (t *manualTask) Stop() {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.owner.tasks[t.name] == t {
		delete(t.owner.tasks, t.name)
	}
}
