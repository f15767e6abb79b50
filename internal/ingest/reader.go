package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/garagemonitor/garagemonitor/internal/diagnostic"
)

// Rejection reasons reported to the Observer and counted in Result.Skipped.
const (
	ReasonMalformed    = "malformed"
	ReasonInvalidKind  = "invalid_kind"
	ReasonInvalidValue = "invalid_value"
)

// ErrMalformed is wrapped by errors for rows that are not car_id,metric,value.
var ErrMalformed = errors.New("malformed row")

// Policy selects what happens to a rejected row.
type Policy int

const (
	// Skip logs the row and continues.
	Skip Policy = iota
	// Abort stops reading and returns the row's error.
	Abort
)

// ParsePolicy maps a config value ("skip" or "abort") to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "skip", "":
		return Skip, nil
	case "abort":
		return Abort, nil
	default:
		return Skip, fmt.Errorf("ingest: unknown policy %q", s)
	}
}

// Recorder receives validated readings. fleet.Registry and fleet.Locked
// both satisfy it.
type Recorder interface {
	Record(carID, metric string, value float64) error
}

// Observer is notified of every accepted and rejected row.
type Observer interface {
	Accepted()
	Rejected(reason string)
}

// Result summarises one Read call.
type Result struct {
	Lines   int            // rows read, excluding blank lines
	Applied int            // rows recorded
	Skipped map[string]int // rejected rows by reason
}

// SkippedTotal returns the number of rejected rows across all reasons.
func (r Result) SkippedTotal() int {
	var n int
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

// Reader parses CSV rows and records them.
type Reader struct {
	rec    Recorder
	policy Policy
	obs    Observer
}

// Option configures a Reader.
type Option func(*Reader)

// WithPolicy sets the rejected-row policy. The default is Skip.
func WithPolicy(p Policy) Option {
	return func(r *Reader) { r.policy = p }
}

// WithObserver registers obs for per-row notifications.
func WithObserver(obs Observer) Option {
	return func(r *Reader) { r.obs = obs }
}

// New returns a Reader that records into rec.
func New(rec Recorder, opts ...Option) *Reader {
	r := &Reader{rec: rec, policy: Skip}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read consumes src until EOF, ctx cancellation, or (under Abort) the first
// rejected row. The Result is valid even when an error is returned.
func (r *Reader) Read(ctx context.Context, src io.Reader) (Result, error) {
	res := Result{Skipped: make(map[string]int)}

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1 // field count is checked per row
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		row, err := cr.Read()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return res, fmt.Errorf("ingest: read: %w", err)
			}
			res.Lines++
			if rerr := r.reject(&res, perr.Line, ReasonMalformed, fmt.Errorf("%w: %v", ErrMalformed, perr.Err)); rerr != nil {
				return res, rerr
			}
			continue
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue // whitespace-only line
		}
		res.Lines++
		line, _ := cr.FieldPos(0)

		reason, err := r.apply(row)
		if err != nil {
			if rerr := r.reject(&res, line, reason, err); rerr != nil {
				return res, rerr
			}
			continue
		}
		res.Applied++
		if r.obs != nil {
			r.obs.Accepted()
		}
	}
}

// apply validates one row and records it. On failure it returns the
// rejection reason alongside the error.
func (r *Reader) apply(row []string) (string, error) {
	if len(row) != 3 {
		return ReasonMalformed, fmt.Errorf("%w: want 3 fields, got %d", ErrMalformed, len(row))
	}
	carID := strings.TrimSpace(row[0])
	metric := strings.TrimSpace(row[1])
	if carID == "" {
		return ReasonMalformed, fmt.Errorf("%w: empty car id", ErrMalformed)
	}

	// Check the metric before the value so a row bad in both ways is
	// reported as an unknown metric.
	if _, err := diagnostic.ParseKind(metric); err != nil {
		return ReasonInvalidKind, err
	}
	value, err := diagnostic.ParseValue(row[2])
	if err != nil {
		return ReasonInvalidValue, err
	}

	if err := r.rec.Record(carID, metric, value); err != nil {
		return reasonFor(err), err
	}
	return "", nil
}

func (r *Reader) reject(res *Result, line int, reason string, err error) error {
	res.Skipped[reason]++
	if r.obs != nil {
		r.obs.Rejected(reason)
	}
	if r.policy == Abort {
		return fmt.Errorf("ingest: line %d: %w", line, err)
	}
	slog.Warn("ingest: row skipped", "line", line, "reason", reason, "err", err)
	return nil
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, diagnostic.ErrInvalidKind):
		return ReasonInvalidKind
	case errors.Is(err, diagnostic.ErrInvalidValue):
		return ReasonInvalidValue
	default:
		return ReasonMalformed
	}
}
