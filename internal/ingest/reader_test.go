package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/garagemonitor/garagemonitor/internal/diagnostic"
	"github.com/garagemonitor/garagemonitor/internal/fleet"
)

// countingObserver records Observer calls.
type countingObserver struct {
	accepted int
	rejected map[string]int
}

func (o *countingObserver) Accepted() { o.accepted++ }
func (o *countingObserver) Rejected(reason string) {
	if o.rejected == nil {
		o.rejected = make(map[string]int)
	}
	o.rejected[reason]++
}

func read(t *testing.T, input string, opts ...Option) (*fleet.Registry, Result, error) {
	t.Helper()
	reg := fleet.NewRegistry()
	res, err := New(reg, opts...).Read(context.Background(), strings.NewReader(input))
	return reg, res, err
}

func TestRead_ValidRows(t *testing.T) {
	input := `Car1,RPM,1000
Car1,EngineLoad,40
Car1,CoolantTemp,90
Car2, RPM , 3000
Car2,EngineLoad,60
Car2,CoolantTemp,95.0
`
	reg, res, err := read(t, input)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if res.Lines != 6 || res.Applied != 6 || res.SkippedTotal() != 0 {
		t.Errorf("Result = %+v, want 6 lines, 6 applied, 0 skipped", res)
	}

	avg, ok := reg.Snapshot().AverageScore()
	if !ok || avg != 50 {
		t.Errorf("AverageScore() = %v, %v; want 50, true", avg, ok)
	}
}

func TestRead_SkipsRejectedRows(t *testing.T) {
	input := `Car1,RPM,6500
Car1,EngineLoad
Car1,EngineLoad,95,extra
,RPM,100
Car1,Speed,80
Car1,CoolantTemp,hot
Car1,CoolantTemp,NaN
Car1,CoolantTemp,120
`
	obs := &countingObserver{}
	reg, res, err := read(t, input, WithObserver(obs))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if res.Lines != 8 {
		t.Errorf("Lines = %d, want 8", res.Lines)
	}
	if res.Applied != 2 {
		t.Errorf("Applied = %d, want 2", res.Applied)
	}
	want := map[string]int{ReasonMalformed: 3, ReasonInvalidKind: 1, ReasonInvalidValue: 2}
	for reason, n := range want {
		if res.Skipped[reason] != n {
			t.Errorf("Skipped[%s] = %d, want %d", reason, res.Skipped[reason], n)
		}
		if obs.rejected[reason] != n {
			t.Errorf("observer rejected[%s] = %d, want %d", reason, obs.rejected[reason], n)
		}
	}
	if obs.accepted != 2 {
		t.Errorf("observer accepted = %d, want 2", obs.accepted)
	}

	st, ok := reg.Snapshot().Get("Car1")
	if !ok {
		t.Fatal("Car1 missing")
	}
	if len(st.Diagnostics) != 2 {
		t.Errorf("Car1 diagnostics = %d, want 2 (RPM, CoolantTemp)", len(st.Diagnostics))
	}
}

func TestRead_BlankLinesIgnored(t *testing.T) {
	input := "\n\nCar1,RPM,1000\n   \n\nCar1,EngineLoad,40\n"
	_, res, err := read(t, input)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if res.Lines != 2 || res.Applied != 2 {
		t.Errorf("Result = %+v, want 2 lines, 2 applied", res)
	}
}

func TestRead_EmptyInput(t *testing.T) {
	reg, res, err := read(t, "")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if res.Lines != 0 {
		t.Errorf("Lines = %d, want 0", res.Lines)
	}
	if n := reg.Snapshot().Len(); n != 0 {
		t.Errorf("snapshot Len() = %d, want 0", n)
	}
}

func TestRead_AbortStopsAtFirstRejectedRow(t *testing.T) {
	input := `Car1,RPM,1000
Car1,EngineLoad,40
Car1,Oil,3
Car1,CoolantTemp,90
`
	reg, res, err := read(t, input, WithPolicy(Abort))
	if err == nil {
		t.Fatal("Read() with Abort returned nil error")
	}
	if !errors.Is(err, diagnostic.ErrInvalidKind) {
		t.Errorf("err = %v, want ErrInvalidKind", err)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("err = %q, want line number 3", err)
	}
	if res.Applied != 2 {
		t.Errorf("Applied = %d, want 2", res.Applied)
	}
	st, _ := reg.Snapshot().Get("Car1")
	if st.Complete {
		t.Error("rows after the abort were applied")
	}
}

func TestRead_AbortOnMalformed(t *testing.T) {
	_, _, err := read(t, "Car1,RPM\n", WithPolicy(Abort))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestRead_AbortOnInvalidValue(t *testing.T) {
	_, _, err := read(t, "Car1,RPM,fast\n", WithPolicy(Abort))
	if !errors.Is(err, diagnostic.ErrInvalidValue) {
		t.Errorf("err = %v, want ErrInvalidValue", err)
	}
}

func TestRead_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reg := fleet.NewRegistry()
	_, err := New(reg).Read(ctx, strings.NewReader("Car1,RPM,1000\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Len() = %d after cancelled read, want 0", reg.Len())
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"skip", Skip, false},
		{"", Skip, false},
		{"abort", Abort, false},
		{"explode", Skip, true},
	}
	for _, tc := range tests {
		got, err := ParsePolicy(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePolicy(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
