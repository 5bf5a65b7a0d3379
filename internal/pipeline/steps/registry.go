// Package steps provides step definitions, dependency validation, and status
// tracking for the craft-cover pipeline.
package steps

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Step names
const (
	StepLoadRecipes     = "load_recipes"
	StepBuildCandidates = "build_candidates"
	StepSolve           = "solve"
)

// Step categories
const (
	CategoryIngestion  = "ingestion"
	CategoryCandidates = "candidates"
	CategorySelection  = "selection"
)

// Step statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	StepLoadRecipes: {
		Name:         StepLoadRecipes,
		Category:     CategoryIngestion,
		Dependencies: []string{},
	},
	StepBuildCandidates: {
		Name:         StepBuildCandidates,
		Category:     CategoryCandidates,
		Dependencies: []string{StepLoadRecipes},
	},
	StepSolve: {
		Name:         StepSolve,
		Category:     CategorySelection,
		Dependencies: []string{StepBuildCandidates},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing dependencies: %v", e.MissingDependencies)
}

// Tracker records the status of each step within one run.
type Tracker struct {
	mu        sync.Mutex
	status    map[string]string
	durations map[string]time.Duration
	started   map[string]time.Time
}

// NewTracker creates a tracker with every registered step pending.
func NewTracker() *Tracker {
	t := &Tracker{
		status:    make(map[string]string, len(StepRegistry)),
		durations: make(map[string]time.Duration),
		started:   make(map[string]time.Time),
	}
	for name := range StepRegistry {
		t.status[name] = StatusPending
	}
	return t
}

// Status returns the current status of a step, or "" for unknown steps.
func (t *Tracker) Status(step string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status[step]
}

// Duration returns how long a finished step took.
func (t *Tracker) Duration(step string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.durations[step]
}

// ValidateDependencies checks if all required dependencies for a step are completed
func (t *Tracker) ValidateDependencies(step string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.validateLocked(step)
}

func (t *Tracker) validateLocked(step string) error {
	def, ok := StepRegistry[step]
	if !ok {
		return fmt.Errorf("unknown step: %s", step)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if t.status[dep] != StatusCompleted {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                step,
			MissingDependencies: missing,
		}
	}
	return nil
}

// Start marks a step in progress once its dependencies are completed.
func (t *Tracker) Start(step string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.validateLocked(step); err != nil {
		return err
	}
	switch t.status[step] {
	case StatusInProgress, StatusCompleted:
		return fmt.Errorf("step %s is already %s", step, t.status[step])
	}
	t.status[step] = StatusInProgress
	t.started[step] = time.Now()
	return nil
}

// Complete marks a started step completed.
func (t *Tracker) Complete(step string) {
	t.finish(step, StatusCompleted)
}

// Fail marks a started step failed.
func (t *Tracker) Fail(step string) {
	t.finish(step, StatusFailed)
}

func (t *Tracker) finish(step, status string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if start, ok := t.started[step]; ok {
		t.durations[step] = time.Since(start)
	}
	t.status[step] = status
}

// AvailableSteps returns steps that can be executed (dependencies met), sorted by name
func (t *Tracker) AvailableSteps() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var available []string
	for name := range StepRegistry {
		switch t.status[name] {
		case StatusCompleted, StatusInProgress:
			continue
		}
		if t.validateLocked(name) != nil {
			continue
		}
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

// BlockedSteps returns steps that are blocked (dependencies not met), sorted by name
func (t *Tracker) BlockedSteps() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var blocked []string
	for name := range StepRegistry {
		switch t.status[name] {
		case StatusCompleted, StatusInProgress:
			continue
		}
		if t.validateLocked(name) != nil {
			blocked = append(blocked, name)
		}
	}
	sort.Strings(blocked)
	return blocked
}
