package observers

import "github.com/kvanta/numint/internal/ode"

// Snapshot is a recorded (time, state) pair.
type Snapshot struct {
	Time  float64
	State ode.State
}

// History records snapshots of the trajectory, keeping at most capacity
// entries and dropping the oldest beyond that. Capacity 0 keeps everything.
type History struct {
	capacity  int
	snapshots []Snapshot
}

func NewHistory(capacity int) *History {
	return &History{capacity: capacity}
}

func (h *History) Observe(x ode.State, t float64) {
	h.snapshots = append(h.snapshots, Snapshot{Time: t, State: x.Clone()})
	if h.capacity > 0 && len(h.snapshots) > h.capacity {
		h.snapshots = h.snapshots[1:]
	}
}

func (h *History) Len() int { return len(h.snapshots) }

func (h *History) Snapshots() []Snapshot { return h.snapshots }

// Times returns the recorded time axis.
func (h *History) Times() []float64 {
	ts := make([]float64, len(h.snapshots))
	for i, s := range h.snapshots {
		ts[i] = s.Time
	}
	return ts
}

// Component returns the trace of one state component, for plotting.
func (h *History) Component(i int) []float64 {
	vals := make([]float64, 0, len(h.snapshots))
	for _, s := range h.snapshots {
		if i < len(s.State) {
			vals = append(vals, s.State[i])
		}
	}
	return vals
}
