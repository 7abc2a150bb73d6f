package lifecycle

import (
	"sync"
	"time"

	"VirtualMirror/internal/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// Wiper deletes all stored user data. Implementations must be idempotent:
// a timer wipe can be followed by an explicit one against an already-empty
// store.
type Wiper interface {
	Wipe(ctx context.Context) error
}

type Config struct {
	IdleThreshold       time.Duration
	BackgroundThreshold time.Duration
	PollInterval        time.Duration
	Now                 func() time.Time
}

const (
	DefaultIdleThreshold       = 5 * time.Minute
	DefaultBackgroundThreshold = 5 * time.Minute
	DefaultPollInterval        = 15 * time.Second
)

// Machine coordinates consent gating, authentication, the active session,
// idle/screensaver, and the inactivity data wipe. All transitions run under
// one mutex; time is injected so transitions are testable via Tick.
type Machine struct {
	mu    sync.Mutex
	log   *logrus.Logger
	wiper Wiper
	clock *Clock

	state entity.SessionState
	flags entity.SessionFlags

	idleThreshold       time.Duration
	backgroundThreshold time.Duration
	pollInterval        time.Duration
	now                 func() time.Time

	// idleFired edge-triggers the idle transition: one wipe per idle
	// episode, re-armed when activity resumes.
	idleFired bool

	// backgroundAt is zero while the app is foregrounded.
	backgroundAt    time.Time
	backgroundFired bool
}

func New(log *logrus.Logger, wiper Wiper, cfg Config) *Machine {
	if cfg.IdleThreshold <= 0 {
		cfg.IdleThreshold = DefaultIdleThreshold
	}
	if cfg.BackgroundThreshold <= 0 {
		cfg.BackgroundThreshold = DefaultBackgroundThreshold
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Machine{
		log:                 log,
		wiper:               wiper,
		clock:               NewClock(cfg.Now()),
		state:               entity.StateBooting,
		idleThreshold:       cfg.IdleThreshold,
		backgroundThreshold: cfg.BackgroundThreshold,
		pollInterval:        cfg.PollInterval,
		now:                 cfg.Now,
	}
}

// ResolveInitial maps the persisted flags to the state the client should
// land on after the boot splash.
func ResolveInitial(flags entity.SessionFlags) entity.SessionState {
	switch {
	case !flags.TermsAccepted || !flags.GDPRAccepted:
		return entity.StateAwaitingConsent
	case flags.Authenticated:
		return entity.StateActive
	default:
		return entity.StateAuthenticating
	}
}

// Boot leaves Booting according to the persisted flags.
func (m *Machine) Boot(flags entity.SessionFlags) entity.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.flags = flags
	m.state = ResolveInitial(flags)
	m.clock.ReportActivity(m.now())
	m.idleFired = false

	m.log.WithFields(logrus.Fields{
		"state": m.state.String(),
	}).Info("Session booted")

	return m.state
}

func (m *Machine) State() entity.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Flags() entity.SessionFlags {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags
}

// TermsAccepted records the first consent sub-step. The state stays at
// AwaitingConsent until the signature-based consent completes.
func (m *Machine) TermsAccepted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags.TermsAccepted = true
	m.clock.ReportActivity(m.now())
}

// ConsentGranted completes the second consent sub-step and unlocks
// authentication.
func (m *Machine) ConsentGranted() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.flags.GDPRAccepted = true
	if m.flags.TermsAccepted && m.state == entity.StateAwaitingConsent {
		m.state = entity.StateAuthenticating
	}
	m.clock.ReportActivity(m.now())
}

// Authenticated moves to Active after a successful credential check.
func (m *Machine) Authenticated() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.flags.Authenticated = true
	m.state = entity.StateActive
	m.clock.ReportActivity(m.now())
	m.idleFired = false
}

// ReportActivity feeds the activity clock. A tap while the screensaver is
// showing leaves Idle; since the wipe cleared the flags this lands back on
// AwaitingConsent.
func (m *Machine) ReportActivity() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clock.ReportActivity(m.now())
	m.idleFired = false

	if m.state == entity.StateIdle {
		m.state = ResolveInitial(m.flags)
		m.log.WithFields(logrus.Fields{
			"state": m.state.String(),
		}).Info("Screensaver dismissed")
	}
}

func (m *Machine) LastActivity() time.Time {
	return m.clock.LastActivity()
}

// EnterBackground starts the OS-background wipe timer.
func (m *Machine) EnterBackground() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backgroundAt = m.now()
	m.backgroundFired = false
}

// EnterForeground cancels the background timer if it has not fired yet.
func (m *Machine) EnterForeground() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.backgroundAt = time.Time{}
	m.clock.ReportActivity(m.now())
	m.idleFired = false
}

// Tick evaluates both inactivity timers. The production loop calls it every
// poll interval; tests call it with synthetic times.
func (m *Machine) Tick(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tickIdle(now)
	m.tickBackground(now)
}

func (m *Machine) tickIdle(now time.Time) {
	if m.state != entity.StateActive {
		return
	}

	// A backgrounded app has no foreground polling, so the screensaver
	// timer is suspended and only the background timer counts down.
	if !m.backgroundAt.IsZero() {
		return
	}

	if !m.clock.IsIdle(now, m.idleThreshold) {
		m.idleFired = false
		return
	}

	if m.idleFired {
		return
	}
	m.idleFired = true

	// The wipe runs synchronously with entering idle, before the
	// screensaver state is observable.
	m.state = entity.StateWipePending
	m.runWipe("idle")
	m.state = entity.StateIdle

	m.log.WithFields(logrus.Fields{
		"idle_threshold": m.idleThreshold.String(),
	}).Info("Idle transition: data wiped, screensaver engaged")
}

func (m *Machine) tickBackground(now time.Time) {
	if m.backgroundAt.IsZero() || m.backgroundFired {
		return
	}

	if now.Sub(m.backgroundAt) < m.backgroundThreshold {
		return
	}

	m.backgroundFired = true
	m.runWipe("background")

	if m.state != entity.StateIdle {
		m.state = entity.StateAwaitingConsent
	}

	m.log.Info("Background timer elapsed: data wiped")
}

// ForceWipe runs the same wipe outside the timers (explicit logout/reset).
func (m *Machine) ForceWipe() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runWipe("manual")
	m.state = entity.StateAwaitingConsent
}

// runWipe is best-effort: errors are logged, never surfaced, and the flags
// are cleared regardless so the machine cannot resurrect a wiped session.
func (m *Machine) runWipe(reason string) {
	if m.wiper != nil {
		if err := m.wiper.Wipe(context.Background()); err != nil {
			m.log.WithFields(logrus.Fields{
				"reason": reason,
				"error":  err.Error(),
			}).Error("Data wipe failed")
		}
	}
	m.flags = entity.SessionFlags{}
}

// Run drives Tick until the context is canceled.
func (m *Machine) Run(ctx context.Context) {
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Tick(m.now())
		}
	}
}
