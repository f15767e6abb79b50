package fleet

import (
	"time"

	"github.com/garagemonitor/garagemonitor/internal/compute"
	"github.com/garagemonitor/garagemonitor/internal/diagnostic"
)

// Monitor is the surface shared by Registry and Locked: producers call
// Record, reporters call Snapshot.
type Monitor interface {
	Record(carID, metric string, value float64) error
	Snapshot() Snapshot
}

// Registry owns every Car it has seen. Cars are created on their first valid
// reading and are never removed.
//
// Registry is not safe for concurrent use; wrap it with NewLocked when
// several goroutines share it.
type Registry struct {
	threshold float64
	cars      map[string]*Car
	order     []string         // first-seen order, used by Snapshot
	now       func() time.Time // injectable for deterministic tests
}

// Option configures a Registry.
type Option func(*Registry)

// WithSevereStressThreshold overrides compute.DefaultSevereStressThreshold.
func WithSevereStressThreshold(v float64) Option {
	return func(r *Registry) { r.threshold = v }
}

// WithClock sets the clock used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		threshold: compute.DefaultSevereStressThreshold,
		cars:      make(map[string]*Car),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record stores a reading for carID, creating the car if it is new.
//
// The reading is validated before anything is created: a metric outside the
// recognized set returns an error wrapping diagnostic.ErrInvalidKind, a
// non-finite value one wrapping diagnostic.ErrInvalidValue, and in both
// cases the registry is left unchanged.
func (r *Registry) Record(carID, metric string, value float64) error {
	rec, err := diagnostic.Parse(metric, value)
	if err != nil {
		return err
	}
	r.carFor(carID).put(rec)
	return nil
}

func (r *Registry) carFor(id string) *Car {
	if c, ok := r.cars[id]; ok {
		return c
	}
	c := NewCar(id)
	r.cars[id] = c
	r.order = append(r.order, id)
	return c
}

// Snapshot returns the status of every car in first-seen order. It does not
// modify the registry, and the returned diagnostics are copies.
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		TakenAt:  r.now(),
		Statuses: make([]Status, 0, len(r.order)),
	}
	for _, id := range r.order {
		c := r.cars[id]
		score, complete := c.Score()
		snap.Statuses = append(snap.Statuses, Status{
			CarID:       id,
			Complete:    complete,
			Score:       score,
			Alert:       compute.Classify(complete, score, r.threshold),
			Diagnostics: c.Diagnostics(),
		})
	}
	return snap
}

// Len returns the number of known cars.
func (r *Registry) Len() int { return len(r.order) }

// SevereStressThreshold returns the score threshold used by Snapshot.
func (r *Registry) SevereStressThreshold() float64 { return r.threshold }

// SetSevereStressThreshold changes the threshold for subsequent snapshots.
func (r *Registry) SetSevereStressThreshold(v float64) { r.threshold = v }

var _ Monitor = (*Registry)(nil)
