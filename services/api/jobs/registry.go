package jobs

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// State is the lifecycle state of a report job.
type State string

const (
	StateRunning  State = "Running"
	StateComplete State = "Complete"
	StateFailed   State = "Failed"
)

// Snapshot is a point-in-time view of a job, safe to hand to callers.
type Snapshot struct {
	ID         string
	State      State
	Artifact   string
	Diagnostic string
}

type job struct {
	state      State
	artifact   string
	diagnostic string
}

// Registry tracks every report job by its opaque identifier. Each job moves
// at most once from Running to a terminal state, written only by the
// computation that owns it. Jobs are never removed.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*job
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]*job)}
}

// Create allocates a fresh job in the Running state and returns its id.
func (r *Registry) Create() string {
	id := uuid.NewString()
	r.mu.Lock()
	r.jobs[id] = &job{state: StateRunning}
	r.mu.Unlock()
	return id
}

// Complete stores the finished artifact and marks the job Complete.
func (r *Registry) Complete(id, artifact string) error {
	return r.finish(id, StateComplete, artifact, "")
}

// Fail marks the job Failed with a diagnostic for poll to surface.
func (r *Registry) Fail(id string, cause error) error {
	return r.finish(id, StateFailed, "", cause.Error())
}

func (r *Registry) finish(id string, state State, artifact, diagnostic string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.jobs[id]
	if !ok {
		return fmt.Errorf("job %s not found", id)
	}
	if entry.state != StateRunning {
		return fmt.Errorf("job %s already %s", id, entry.state)
	}
	entry.state = state
	entry.artifact = artifact
	entry.diagnostic = diagnostic
	return nil
}

// Get looks up a job snapshot; ok is false for unknown identifiers.
func (r *Registry) Get(id string) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.jobs[id]
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{
		ID:         id,
		State:      entry.state,
		Artifact:   entry.artifact,
		Diagnostic: entry.diagnostic,
	}, true
}
