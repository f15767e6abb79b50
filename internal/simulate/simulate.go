package simulate

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/garagemonitor/garagemonitor/internal/diagnostic"
	"github.com/garagemonitor/garagemonitor/internal/fleet"
)

// Config sizes a simulation run.
type Config struct {
	Cars     int
	Updates  int           // readings per car
	Delay    time.Duration // pause between readings in concurrent mode
	MinValue float64
	MaxValue float64
	Seed     int64 // 0 seeds from the clock

	// Threshold is the severe engine stress threshold applied to the
	// registry. Zero is a real threshold, not a request for the default.
	Threshold float64
}

// Update is one planned reading.
type Update struct {
	Kind  diagnostic.Kind
	Value float64
}

// Feed is the planned reading sequence for one car.
type Feed struct {
	CarID   string
	Updates []Update
}

// Result describes a finished run.
type Result struct {
	RunID      string
	Concurrent bool
	Elapsed    time.Duration
	Updates    int // readings applied
	Snapshot   fleet.Snapshot
}

// Plan draws cfg.Updates readings for each of cfg.Cars cars named Car1..CarN.
// Kinds are drawn uniformly from the recognized set and values uniformly
// from [MinValue, MaxValue).
func Plan(cfg Config) []Feed {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	kinds := diagnostic.Kinds()
	span := cfg.MaxValue - cfg.MinValue

	feeds := make([]Feed, cfg.Cars)
	for i := range feeds {
		ups := make([]Update, cfg.Updates)
		for j := range ups {
			ups[j] = Update{
				Kind:  kinds[rng.Intn(len(kinds))],
				Value: cfg.MinValue + rng.Float64()*span,
			}
		}
		feeds[i] = Feed{CarID: fmt.Sprintf("Car%d", i+1), Updates: ups}
	}
	return feeds
}

// Run plans and applies one simulation. It returns early with ctx's error
// if ctx is cancelled while producers are still running.
func Run(ctx context.Context, cfg Config, concurrent bool) (*Result, error) {
	return Replay(ctx, Plan(cfg), cfg, concurrent)
}

// Replay applies previously planned feeds.
func Replay(ctx context.Context, feeds []Feed, cfg Config, concurrent bool) (*Result, error) {
	reg := fleet.NewRegistry(fleet.WithSevereStressThreshold(cfg.Threshold))

	res := &Result{RunID: uuid.NewString(), Concurrent: concurrent}
	log := slog.With("run", res.RunID, "concurrent", concurrent)
	log.Info("simulate: run starting", "cars", len(feeds), "updates_per_car", cfg.Updates)

	start := time.Now()
	var mon fleet.Monitor = reg
	if concurrent {
		locked := fleet.NewLocked(reg)
		mon = locked

		g, gctx := errgroup.WithContext(ctx)
		for _, f := range feeds {
			g.Go(func() error { return produce(gctx, locked, f, cfg.Delay) })
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("simulate: %w", err)
		}
	} else {
		for _, f := range feeds {
			if err := produce(ctx, reg, f, 0); err != nil {
				return nil, fmt.Errorf("simulate: %w", err)
			}
		}
	}
	res.Elapsed = time.Since(start)

	for _, f := range feeds {
		res.Updates += len(f.Updates)
	}
	res.Snapshot = mon.Snapshot()
	log.Info("simulate: run finished", "elapsed", res.Elapsed, "updates", res.Updates)
	return res, nil
}

// produce feeds one car's readings into mon, pausing delay between them.
func produce(ctx context.Context, mon fleet.Monitor, f Feed, delay time.Duration) error {
	for i, u := range f.Updates {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := mon.Record(f.CarID, u.Kind.String(), u.Value); err != nil {
			return fmt.Errorf("car %s: %w", f.CarID, err)
		}
		if delay <= 0 || i == len(f.Updates)-1 {
			continue
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}
