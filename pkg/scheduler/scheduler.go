// Package scheduler keeps widget labels fresh. Every periodic widget gets a
// goroutine driven by a ticker at its update interval; event-driven widgets
// render once and afterwards only when triggered.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/logging"
	"github.com/arthur-debert/barkeep/pkg/metrics"
	"github.com/arthur-debert/barkeep/pkg/widget"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Update is a freshly rendered widget label.
type Update struct {
	Widget  string
	ID      string
	Label   string
	Parts   []format.Part
	Visible bool
	At      time.Time
}

// Sink receives every label change. It is called from scheduler goroutines
// and must be safe for concurrent use.
type Sink func(Update)

// Scheduler runs widget updates.
type Scheduler struct {
	mu        sync.Mutex
	instances []*widget.Instance
	sink      Sink
	now       func() time.Time
	logger    zerolog.Logger

	cancel  context.CancelFunc
	group   *errgroup.Group
	running bool
}

// New creates a scheduler that reports to sink. A nil sink drops updates.
func New(sink Sink) *Scheduler {
	if sink == nil {
		sink = func(Update) {}
	}
	return &Scheduler{
		sink:   sink,
		now:    time.Now,
		logger: logging.GetLogger("scheduler"),
	}
}

// Add schedules an instance. Instances must be added before Start.
func (s *Scheduler) Add(instances ...*widget.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New(errors.ErrSchedulerState, "cannot add widgets to a running scheduler")
	}
	for _, inst := range instances {
		inst.OnChange(s.emitter(inst))
		s.instances = append(s.instances, inst)
	}
	return nil
}

func (s *Scheduler) emitter(inst *widget.Instance) widget.Listener {
	return func(name, label string) {
		s.sink(Update{
			Widget:  name,
			ID:      inst.ID(),
			Label:   label,
			Parts:   format.SplitParts(label),
			Visible: inst.Visible(),
			At:      s.now(),
		})
	}
}

// Start launches one goroutine per instance and returns immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New(errors.ErrSchedulerState, "scheduler is already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	for _, inst := range s.instances {
		g.Go(func() error {
			s.loop(ctx, inst)
			return nil
		})
	}

	s.cancel = cancel
	s.group = g
	s.running = true
	metrics.ActiveWidgets.Set(float64(len(s.instances)))

	s.logger.Info().Int("widgets", len(s.instances)).Msg("Scheduler started")
	return nil
}

// Stop cancels every update loop and waits for them to return.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	cancel, g := s.cancel, s.group
	s.running = false
	s.mu.Unlock()

	cancel()
	err := g.Wait()
	metrics.ActiveWidgets.Set(0)

	s.logger.Info().Msg("Scheduler stopped")
	return err
}

// Run starts the scheduler and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return s.Stop()
}

// Once updates every instance a single time, in order.
func (s *Scheduler) Once(ctx context.Context) {
	for _, inst := range s.snapshot() {
		s.update(ctx, inst)
	}
}

// Trigger refreshes every instance of the named widget now.
func (s *Scheduler) Trigger(ctx context.Context, name string) error {
	found := false
	for _, inst := range s.snapshot() {
		if inst.Name() == name {
			found = true
			s.update(ctx, inst)
		}
	}
	if !found {
		return errors.Newf(errors.ErrNotFound, "widget %s is not scheduled", name).
			WithDetail("widget", name)
	}
	return nil
}

// Instances returns the scheduled instances in the order they were added.
func (s *Scheduler) Instances() []*widget.Instance {
	return s.snapshot()
}

func (s *Scheduler) snapshot() []*widget.Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*widget.Instance, len(s.instances))
	copy(out, s.instances)
	return out
}

// loop renders inst right away and then on every tick of its interval.
// Widgets without an interval render once.
func (s *Scheduler) loop(ctx context.Context, inst *widget.Instance) {
	s.update(ctx, inst)

	interval, periodic := inst.Interval()
	if !periodic || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.update(ctx, inst)
		}
	}
}

func (s *Scheduler) update(ctx context.Context, inst *widget.Instance) {
	if ctx.Err() != nil {
		return
	}
	if _, err := inst.Update(ctx); err != nil {
		s.logger.Debug().Err(err).Str("widget", inst.Name()).Msg("Update failed")
	}
}
