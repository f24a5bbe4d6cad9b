// internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/pzem-monitor/internal/channel"
	"github.com/tamzrod/pzem-monitor/internal/metering"
	"github.com/tamzrod/pzem-monitor/internal/notify"
	"github.com/tamzrod/pzem-monitor/internal/poller"
	"github.com/tamzrod/pzem-monitor/internal/status"
	"github.com/tamzrod/pzem-monitor/internal/validate"
)

// MeterCount is the number of meters a scheduler drives.
const MeterCount = 2

type meter struct {
	id     string
	poller *poller.Poller
	open   channel.Factory

	state   metering.MeterState
	engine  *metering.Engine
	tracker *status.Tracker

	lastValid    metering.EnrichedReading
	hasLastValid bool
}

// Scheduler drives both meters from a single loop.
// All meter state is owned by that loop; mu only protects it from
// concurrent Report and State callers.
type Scheduler struct {
	cfg      Config
	meters   [MeterCount]*meter
	notifier notify.Notifier
	clock    Clock
	log      zerolog.Logger
	gate     *notify.ThresholdGate

	mu    sync.Mutex
	state State

	ready        bool
	started      time.Time
	lastPoll     time.Time
	lastRollover time.Time
	lastDiag     time.Time
	cycles       uint64
	cycleWindow  status.Window
}

// New validates the meter pair and builds an Idle scheduler.
func New(cfg Config, meters []Meter, n notify.Notifier, clock Clock, log zerolog.Logger) (*Scheduler, error) {
	if len(meters) != MeterCount {
		return nil, fmt.Errorf("scheduler: exactly %d meters required, got %d", MeterCount, len(meters))
	}
	if n == nil {
		n = notify.Nop{}
	}
	if clock == nil {
		clock = RealClock()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Backoff.MaxAttempts < 1 {
		return nil, errors.New("scheduler: backoff needs at least one attempt")
	}
	if cfg.RestartThreshold == 0 {
		return nil, errors.New("scheduler: restart threshold must be > 0")
	}

	s := &Scheduler{
		cfg:      cfg,
		notifier: n,
		clock:    clock,
		log:      log.With().Str("component", "scheduler").Logger(),
		gate:     notify.NewThresholdGate(cfg.AlertRetry),
		state:    Idle,
	}

	for i, mc := range meters {
		if mc.Poller == nil || mc.Open == nil {
			return nil, fmt.Errorf("scheduler: meter %d: poller and factory required", i)
		}
		if i > 0 && meters[0].Poller.Address() == mc.Poller.Address() {
			return nil, fmt.Errorf("scheduler: meters share address 0x%02X", mc.Poller.Address())
		}
		if i > 0 && meters[0].Poller.MeterID() == mc.Poller.MeterID() {
			return nil, fmt.Errorf("scheduler: meters share id %q", mc.Poller.MeterID())
		}

		m := &meter{
			id:      mc.Poller.MeterID(),
			poller:  mc.Poller,
			open:    mc.Open,
			tracker: status.NewTracker(mc.Poller.MeterID(), mc.Poller.Address()),
		}
		m.state.Address = mc.Poller.Address()
		m.engine = metering.New(&m.state, cfg.EnergyRate)
		s.meters[i] = m
	}

	return s, nil
}

// State returns the current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) setState(to State) {
	s.mu.Lock()
	from := s.state
	if from == Terminated || from == to {
		s.mu.Unlock()
		return
	}
	s.state = to
	s.mu.Unlock()

	s.cfg.Metrics.SetState(int(to))
	if s.cfg.OnStateChange != nil {
		s.cfg.OnStateChange(from, to)
	}
}

// Init opens both channels with the restart backoff.
// On failure the scheduler is Terminated.
func (s *Scheduler) Init(ctx context.Context) error {
	if s.State() == Terminated {
		return ErrRestartExhausted
	}

	now := s.clock.Now()
	s.started = now
	s.lastDiag = now

	if err := s.reopen(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.terminate(fmt.Sprintf("meter init failed: %v", err))
		return fmt.Errorf("scheduler: init: %w", err)
	}

	s.ready = true
	s.log.Info().
		Str("meter_a", s.meters[0].id).
		Str("meter_b", s.meters[1].id).
		Dur("poll_interval", s.cfg.PollInterval).
		Msg("channels open")
	return nil
}

// Run initializes if needed and loops until ctx is done or recovery is
// exhausted. Cancellation is honored between cycles only.
// Channels are closed and a summary is logged on return.
func (s *Scheduler) Run(ctx context.Context) error {
	defer s.shutdown()

	if !s.ready {
		if err := s.Init(ctx); err != nil {
			return err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := s.clock.Now()
		if err := s.Tick(ctx); err != nil {
			return err
		}
		if s.cfg.Heartbeat != nil {
			s.cfg.Heartbeat()
		}

		if err := s.clock.Sleep(ctx, s.pace(s.clock.Now().Sub(start))); err != nil {
			return err
		}
	}
}

// Tick runs one loop iteration: a poll cycle if one is due, then the
// rollover and diagnostics checks.
func (s *Scheduler) Tick(ctx context.Context) error {
	if s.State() == Terminated {
		return ErrRestartExhausted
	}

	now := s.clock.Now()
	if s.lastPoll.IsZero() || now.Sub(s.lastPoll) >= s.cfg.PollInterval {
		s.lastPoll = now
		if err := s.cycle(ctx); err != nil {
			return err
		}
	}

	s.checkRollover(s.clock.Now())
	s.maybeDiagnostics(s.clock.Now())
	return nil
}

// pace is the end-of-iteration sleep: the rest of the pacing period,
// never less than the floor.
func (s *Scheduler) pace(elapsed time.Duration) time.Duration {
	d := s.cfg.PacingPeriod - elapsed
	if d < s.cfg.PacingFloor {
		d = s.cfg.PacingFloor
	}
	return d
}

// cycle polls both meters in order and restarts the channels when a
// failure streak reaches the threshold.
func (s *Scheduler) cycle(ctx context.Context) error {
	s.setState(Polling)
	start := s.clock.Now()

	for i, m := range s.meters {
		if i > 0 {
			// Mid-cycle wait is not a cancellation point.
			_ = s.clock.Sleep(context.WithoutCancel(ctx), s.cfg.InterChannelDelay)
		}
		s.poll(m)
	}

	elapsed := s.clock.Now().Sub(start)
	s.mu.Lock()
	s.cycles++
	s.cycleWindow.Add(elapsed)
	s.mu.Unlock()
	s.cfg.Metrics.ObserveCycle(elapsed)

	for _, m := range s.meters {
		if m.tracker.Consecutive() >= s.cfg.RestartThreshold {
			return s.restart(ctx, m)
		}
	}

	s.setState(Idle)
	return nil
}

// poll runs one exchange and folds its result into meter state.
func (s *Scheduler) poll(m *meter) {
	t0 := s.clock.Now()
	res := m.poller.PollOnce()
	now := s.clock.Now()
	latency := now.Sub(t0)

	outcome := res.Classify()
	verdict := validate.Valid

	s.mu.Lock()
	var rd metering.EnrichedReading
	if res.Err == nil {
		rd = m.engine.OnReading(res.Reading, now)
		verdict = s.cfg.Limits.Check(res.Reading)
		if !verdict.Valid() {
			outcome = status.OutcomeInvalid
		}
	} else {
		rd = m.engine.OnFailure(now)
	}
	m.tracker.Observe(outcome, res.Err, latency, now)
	if outcome == status.OutcomeSuccess {
		m.lastValid = rd
		m.hasLastValid = true
	}
	consecutive := m.tracker.Consecutive()
	s.mu.Unlock()

	s.cfg.Metrics.ObservePoll(m.id, outcome.String(), latency, consecutive)
	s.cfg.Metrics.SetEnergy(m.id, rd.LifetimeEnergyKWh, rd.DailyEnergyKWh, rd.DailyCost)
	if outcome == status.OutcomeSuccess {
		s.cfg.Metrics.SetSample(m.id, rd.VoltageV, rd.PowerW)
	}

	s.logSample(m.id, rd, outcome, verdict, res.Err, latency)

	if res.Err == nil {
		s.gate.Evaluate(s.notifier, m.id, notify.AlertEnergy, rd.DailyEnergyKWh, s.cfg.DailyEnergyThreshold, now)
		s.gate.Evaluate(s.notifier, m.id, notify.AlertCost, rd.DailyCost, s.cfg.DailyCostThreshold, now)
	}

	if s.cfg.OnSample != nil {
		s.cfg.OnSample(Sample{
			MeterID:    m.id,
			Reading:    rd,
			Outcome:    outcome,
			Validation: verdict,
			Err:        res.Err,
			Latency:    latency,
		})
	}
}

// Report returns a copy of per-meter state, in meter order.
func (s *Scheduler) Report() []MeterReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]MeterReport, 0, MeterCount)
	for _, m := range s.meters {
		out = append(out, MeterReport{
			Status:       m.tracker.Snapshot(),
			Energy:       m.state,
			DailyCost:    m.engine.DailyCost(),
			LastValid:    m.lastValid,
			HasLastValid: m.hasLastValid,
		})
	}
	return out
}
