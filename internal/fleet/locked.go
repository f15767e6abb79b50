package fleet

import "sync"

// Locked serializes every operation on a Registry behind one mutex. It adds
// no behaviour of its own: a Snapshot taken through Locked sees either all
// or none of each concurrent Record.
//
// All exported methods are safe for concurrent use.
type Locked struct {
	mu  sync.Mutex
	reg *Registry
}

// NewLocked wraps reg. The caller must not use reg directly afterwards.
func NewLocked(reg *Registry) *Locked {
	return &Locked{reg: reg}
}

// Record is Registry.Record under the lock.
func (l *Locked) Record(carID, metric string, value float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Record(carID, metric, value)
}

// Snapshot is Registry.Snapshot under the lock.
func (l *Locked) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Snapshot()
}

// Len is Registry.Len under the lock.
func (l *Locked) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Len()
}

// SetSevereStressThreshold is Registry.SetSevereStressThreshold under the lock.
func (l *Locked) SetSevereStressThreshold(v float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reg.SetSevereStressThreshold(v)
}

var _ Monitor = (*Locked)(nil)
