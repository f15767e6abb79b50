package fleet

import (
	"time"

	"github.com/garagemonitor/garagemonitor/internal/compute"
	"github.com/garagemonitor/garagemonitor/internal/diagnostic"
)

// Snapshot is a point-in-time view of every known car.
type Snapshot struct {
	TakenAt  time.Time
	Statuses []Status // first-seen order
}

// Status is one car's entry in a Snapshot.
type Status struct {
	CarID string

	// Complete is true once every recognized kind has been reported.
	Complete bool

	// Score is the performance score. It is only meaningful when Complete;
	// use ScoreValue to read it.
	Score float64

	Alert       compute.Alert
	Diagnostics map[diagnostic.Kind]diagnostic.Record
}

// ScoreValue returns the score and true, or 0 and false for an incomplete car.
func (s Status) ScoreValue() (float64, bool) {
	if !s.Complete {
		return 0, false
	}
	return s.Score, true
}

// Len returns the number of cars in the snapshot.
func (s Snapshot) Len() int { return len(s.Statuses) }

// Get returns the status for carID.
func (s Snapshot) Get(carID string) (Status, bool) {
	for _, st := range s.Statuses {
		if st.CarID == carID {
			return st, true
		}
	}
	return Status{}, false
}

// AverageScore returns the mean score over cars that have one. ok is false
// when no car is complete.
func (s Snapshot) AverageScore() (avg float64, ok bool) {
	var total float64
	var n int
	for _, st := range s.Statuses {
		if v, scored := st.ScoreValue(); scored {
			total += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

// AlertCounts returns how many cars carry each alert. AlertNone is not counted.
func (s Snapshot) AlertCounts() map[compute.Alert]int {
	out := make(map[compute.Alert]int)
	for _, st := range s.Statuses {
		if st.Alert != compute.AlertNone {
			out[st.Alert]++
		}
	}
	return out
}
