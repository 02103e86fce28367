// Package dataflow implements the read-only debugger snapshot API
// spec.md §4.8 describes: a polling external UI (out of scope here)
// consumes a Snapshot per pipeline stage of interest.
package dataflow

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// StageKind enumerates the small set of pipeline stage shapes spec.md
// §4.8 names.
type StageKind string

const (
	KindLoad    StageKind = "Load"
	KindFilter  StageKind = "Filter"
	KindMap     StageKind = "Map"
	KindGroupBy StageKind = "GroupBy"
	KindJoin    StageKind = "Join"
	KindSelect  StageKind = "Select"
	KindSort    StageKind = "Sort"
)

// Status is a stage's lifecycle state.
type Status struct {
	Name   string // "Pending", "Running", "Completed", "Failed", "Paused"
	Reason string // set only when Name == "Failed"
}

var (
	StatusPending   = Status{Name: "Pending"}
	StatusRunning   = Status{Name: "Running"}
	StatusCompleted = Status{Name: "Completed"}
	StatusPaused    = Status{Name: "Paused"}
)

// Failed builds a Failed status carrying reason.
func Failed(reason string) Status { return Status{Name: "Failed", Reason: reason} }

// Field describes one column of an input/output schema.
type Field struct {
	Name     string
	DataType string
	Nullable bool
}

// Snapshot is the read-only view of a single pipeline stage spec.md
// §4.8 describes: stage id/name/kind, status, optional input/output
// schemas, optional execution time/memory/row count, and a free-form
// metadata map.
type Snapshot struct {
	ID     string
	Name   string
	Kind   StageKind
	Status Status

	InputSchema  []Field
	OutputSchema []Field

	ExecutionTime time.Duration
	HasExecutionTime bool
	MemoryBytes   int64
	HasMemory     bool
	RowCount      int64
	HasRowCount   bool

	Metadata map[string]string
}

// Stage is a mutable pipeline stage the interpreter's DataFrame methods
// update as they run; Snapshot() returns the read-only view an external
// UI polls.
type Stage struct {
	mu sync.RWMutex
	s  Snapshot
}

// NewStage creates a pending stage with a fresh id.
func NewStage(name string, kind StageKind) *Stage {
	return &Stage{s: Snapshot{
		ID:       uuid.NewString(),
		Name:     name,
		Kind:     kind,
		Status:   StatusPending,
		Metadata: map[string]string{},
	}}
}

func (s *Stage) SetStatus(st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.Status = st
}

func (s *Stage) SetSchemas(in, out []Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.InputSchema = in
	s.s.OutputSchema = out
}

func (s *Stage) SetExecutionTime(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.ExecutionTime = d
	s.s.HasExecutionTime = true
}

func (s *Stage) SetMemoryBytes(n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.MemoryBytes = n
	s.s.HasMemory = true
}

func (s *Stage) SetRowCount(n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.RowCount = n
	s.s.HasRowCount = true
}

func (s *Stage) SetMetadata(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.Metadata[key] = value
}

// Snapshot returns a copy of the stage's current read-only view.
func (s *Stage) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := s.s
	cp.Metadata = make(map[string]string, len(s.s.Metadata))
	for k, v := range s.s.Metadata {
		cp.Metadata[k] = v
	}
	cp.InputSchema = append([]Field(nil), s.s.InputSchema...)
	cp.OutputSchema = append([]Field(nil), s.s.OutputSchema...)
	return cp
}

// Pipeline is an ordered sequence of stages an external UI polls via
// Snapshots.
type Pipeline struct {
	mu     sync.RWMutex
	stages []*Stage
}

func NewPipeline() *Pipeline { return &Pipeline{} }

func (p *Pipeline) AddStage(name string, kind StageKind) *Stage {
	st := NewStage(name, kind)
	p.mu.Lock()
	p.stages = append(p.stages, st)
	p.mu.Unlock()
	return st
}

// Snapshots returns a read-only view of every stage in the pipeline, in
// the order they were added.
func (p *Pipeline) Snapshots() []Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Snapshot, len(p.stages))
	for i, st := range p.stages {
		out[i] = st.Snapshot()
	}
	return out
}
