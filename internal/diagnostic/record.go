package diagnostic

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Validation errors returned by the constructors. Returned errors wrap one
// of these with the offending input.
var (
	ErrInvalidKind  = errors.New("invalid diagnostic type")
	ErrInvalidValue = errors.New("diagnostic value must be numeric")
)

// Kind identifies one recognized diagnostic metric. The zero value is not
// a valid kind.
type Kind int

const (
	RPM Kind = iota + 1
	EngineLoad
	CoolantTemp
)

var kindNames = map[Kind]string{
	RPM:         "RPM",
	EngineLoad:  "EngineLoad",
	CoolantTemp: "CoolantTemp",
}

// Kinds returns every recognized kind in canonical order.
func Kinds() []Kind {
	return []Kind{RPM, EngineLoad, CoolantTemp}
}

// Valid reports whether k belongs to the recognized set.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// String returns the wire name of k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a metric name as it appears on the wire ("RPM",
// "EngineLoad", "CoolantTemp") to its Kind. Matching is case-sensitive.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, name)
}

// ParseValue converts numeric text into a diagnostic value. Surrounding
// whitespace is ignored. Text that is not a number, or that parses to NaN
// or an infinity, fails with ErrInvalidValue.
func ParseValue(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, text)
	}
	if err := checkValue(v); err != nil {
		return 0, err
	}
	return v, nil
}

// Record is one diagnostic reading. It is immutable once constructed; a
// newer reading of the same kind replaces it rather than modifying it.
type Record struct {
	kind  Kind
	value float64
}

// New validates kind and value and returns the Record.
func New(kind Kind, value float64) (Record, error) {
	if !kind.Valid() {
		return Record{}, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}
	if err := checkValue(value); err != nil {
		return Record{}, err
	}
	return Record{kind: kind, value: value}, nil
}

// Parse is New for a metric given by name.
func Parse(name string, value float64) (Record, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return Record{}, err
	}
	return New(kind, value)
}

// Kind returns the diagnostic kind of the reading.
func (r Record) Kind() Kind { return r.kind }

// Value returns the reported value.
func (r Record) Value() float64 { return r.value }

// String formats r as Diagnostic(type=<kind>, value=<value>).
func (r Record) String() string {
	return fmt.Sprintf("Diagnostic(type=%s, value=%s)", r.kind, strconv.FormatFloat(r.value, 'g', -1, 64))
}

func checkValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidValue, v)
	}
	return nil
}
