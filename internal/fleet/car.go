package fleet

import (
	"github.com/garagemonitor/garagemonitor/internal/compute"
	"github.com/garagemonitor/garagemonitor/internal/diagnostic"
)

// Car holds the current diagnostics for one vehicle. At most one Record is
// kept per kind; a newer reading replaces the older one.
type Car struct {
	id          string
	diagnostics map[diagnostic.Kind]diagnostic.Record
}

// NewCar returns a Car with no diagnostics.
func NewCar(id string) *Car {
	return &Car{
		id:          id,
		diagnostics: make(map[diagnostic.Kind]diagnostic.Record, len(diagnostic.Kinds())),
	}
}

// ID returns the car identifier.
func (c *Car) ID() string { return c.id }

// Update validates the reading and stores it, replacing any prior reading of
// the same kind. Validation errors from diagnostic.New are returned as is
// and leave the car unchanged.
func (c *Car) Update(kind diagnostic.Kind, value float64) error {
	rec, err := diagnostic.New(kind, value)
	if err != nil {
		return err
	}
	c.put(rec)
	return nil
}

func (c *Car) put(rec diagnostic.Record) {
	c.diagnostics[rec.Kind()] = rec
}

// Complete reports whether every recognized kind has a reading. Readings are
// never removed, so once true it stays true.
func (c *Car) Complete() bool {
	for _, k := range diagnostic.Kinds() {
		if _, ok := c.diagnostics[k]; !ok {
			return false
		}
	}
	return true
}

// Score returns the performance score and true, or 0 and false if any
// recognized kind is still missing.
func (c *Car) Score() (float64, bool) {
	rpm, ok1 := c.diagnostics[diagnostic.RPM]
	load, ok2 := c.diagnostics[diagnostic.EngineLoad]
	temp, ok3 := c.diagnostics[diagnostic.CoolantTemp]
	if !ok1 || !ok2 || !ok3 {
		return 0, false
	}
	return compute.Score(compute.Input{
		RPM:         rpm.Value(),
		EngineLoad:  load.Value(),
		CoolantTemp: temp.Value(),
	}), true
}

// Diagnostics returns a copy of the stored readings keyed by kind.
func (c *Car) Diagnostics() map[diagnostic.Kind]diagnostic.Record {
	out := make(map[diagnostic.Kind]diagnostic.Record, len(c.diagnostics))
	for k, r := range c.diagnostics {
		out[k] = r
	}
	return out
}

// Len returns the number of stored readings.
func (c *Car) Len() int { return len(c.diagnostics) }
