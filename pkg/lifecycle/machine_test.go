package lifecycle

import (
	"sync"
	"testing"
	"time"

	"VirtualMirror/internal/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

type fakeWiper struct {
	mu    sync.Mutex
	calls int
	err   error
	store map[string]string
}

func (w *fakeWiper) Wipe(_ context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	if w.store != nil {
		for k := range w.store {
			delete(w.store, k)
		}
	}
	return w.err
}

func (w *fakeWiper) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls
}

type fakeTime struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeTime() *fakeTime {
	return &fakeTime{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeTime) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeTime) advance(d time.Duration) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
	return f.t
}

func newTestMachine(wiper Wiper, ft *fakeTime) *Machine {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(log, wiper, Config{Now: ft.now})
}

func TestClockReportThenImmediateCheckIsNotIdle(t *testing.T) {
	ft := newFakeTime()
	c := NewClock(ft.now())

	c.ReportActivity(ft.now())
	assert.False(t, c.IsIdle(ft.now(), time.Millisecond))
	assert.False(t, c.IsIdle(ft.now(), 5*time.Minute))
}

func TestClockIdleAfterThreshold(t *testing.T) {
	ft := newFakeTime()
	c := NewClock(ft.now())

	later := ft.advance(5 * time.Minute)
	assert.True(t, c.IsIdle(later, 5*time.Minute))
}

func TestClockIgnoresBackwardsTimestamps(t *testing.T) {
	ft := newFakeTime()
	c := NewClock(ft.now())

	now := ft.now()
	c.ReportActivity(now)
	c.ReportActivity(now.Add(-time.Hour))
	assert.Equal(t, now, c.LastActivity())
}

func TestResolveInitial(t *testing.T) {
	assert.Equal(t, entity.StateAwaitingConsent, ResolveInitial(entity.SessionFlags{}))
	assert.Equal(t, entity.StateAwaitingConsent,
		ResolveInitial(entity.SessionFlags{TermsAccepted: true}))
	assert.Equal(t, entity.StateAuthenticating,
		ResolveInitial(entity.SessionFlags{TermsAccepted: true, GDPRAccepted: true}))
	assert.Equal(t, entity.StateActive,
		ResolveInitial(entity.SessionFlags{TermsAccepted: true, GDPRAccepted: true, Authenticated: true}))
}

func TestConsentFlowIsSequential(t *testing.T) {
	ft := newFakeTime()
	m := newTestMachine(&fakeWiper{}, ft)

	m.Boot(entity.SessionFlags{})
	require.Equal(t, entity.StateAwaitingConsent, m.State())

	// Signature consent without terms acceptance does not unlock auth.
	m.ConsentGranted()
	assert.Equal(t, entity.StateAwaitingConsent, m.State())

	m.Boot(entity.SessionFlags{})
	m.TermsAccepted()
	assert.Equal(t, entity.StateAwaitingConsent, m.State())
	m.ConsentGranted()
	assert.Equal(t, entity.StateAuthenticating, m.State())

	m.Authenticated()
	assert.Equal(t, entity.StateActive, m.State())
}

func TestIdleTransitionFiresExactlyOncePerEpisode(t *testing.T) {
	ft := newFakeTime()
	w := &fakeWiper{}
	m := newTestMachine(w, ft)

	m.Boot(entity.SessionFlags{TermsAccepted: true, GDPRAccepted: true, Authenticated: true})
	require.Equal(t, entity.StateActive, m.State())

	m.Tick(ft.advance(4 * time.Minute))
	assert.Equal(t, entity.StateActive, m.State())
	assert.Equal(t, 0, w.count())

	m.Tick(ft.advance(time.Minute))
	assert.Equal(t, entity.StateIdle, m.State())
	assert.Equal(t, 1, w.count())

	// More elapsed time without activity must not fire again.
	m.Tick(ft.advance(10 * time.Minute))
	m.Tick(ft.advance(10 * time.Minute))
	assert.Equal(t, 1, w.count())
}

func TestIdleReArmsAfterActivity(t *testing.T) {
	ft := newFakeTime()
	w := &fakeWiper{}
	m := newTestMachine(w, ft)

	m.Boot(entity.SessionFlags{TermsAccepted: true, GDPRAccepted: true, Authenticated: true})

	m.Tick(ft.advance(5 * time.Minute))
	require.Equal(t, 1, w.count())
	require.Equal(t, entity.StateIdle, m.State())

	// A tap dismisses the screensaver; credentials were wiped so the
	// session restarts at the consent gate.
	ft.advance(time.Second)
	m.ReportActivity()
	assert.Equal(t, entity.StateAwaitingConsent, m.State())

	// A fresh session that idles again triggers a second, separate wipe.
	m.TermsAccepted()
	m.ConsentGranted()
	m.Authenticated()
	m.Tick(ft.advance(5 * time.Minute))
	assert.Equal(t, 2, w.count())
}

func TestWipeErrorsAreSwallowed(t *testing.T) {
	ft := newFakeTime()
	w := &fakeWiper{err: assert.AnError}
	m := newTestMachine(w, ft)

	m.Boot(entity.SessionFlags{TermsAccepted: true, GDPRAccepted: true, Authenticated: true})
	m.Tick(ft.advance(5 * time.Minute))

	// Best-effort: the failed wipe still lands on the screensaver and the
	// flags are still cleared.
	assert.Equal(t, entity.StateIdle, m.State())
	assert.Equal(t, entity.SessionFlags{}, m.Flags())
}

func TestWipeTwiceLeavesSameEmptyState(t *testing.T) {
	store := map[string]string{"mirror:flags:authenticated": "true", "mirror:profile:photo": "s3://x"}
	w := &fakeWiper{store: store}

	require.NoError(t, w.Wipe(context.Background()))
	require.NoError(t, w.Wipe(context.Background()))
	assert.Empty(t, store)
	assert.Equal(t, 2, w.count())
}

func TestBackgroundWipeAt300Seconds(t *testing.T) {
	ft := newFakeTime()
	w := &fakeWiper{}
	m := newTestMachine(w, ft)

	m.Boot(entity.SessionFlags{TermsAccepted: true, GDPRAccepted: true, Authenticated: true})
	m.EnterBackground()

	m.Tick(ft.advance(299 * time.Second))
	assert.Equal(t, 0, w.count())

	m.Tick(ft.advance(time.Second))
	assert.Equal(t, 1, w.count())
	assert.Equal(t, entity.StateAwaitingConsent, m.State())

	// Fired once; staying backgrounded does not repeat it.
	m.Tick(ft.advance(10 * time.Minute))
	assert.Equal(t, 1, w.count())
}

func TestForegroundResumeCancelsBackgroundWipe(t *testing.T) {
	ft := newFakeTime()
	w := &fakeWiper{}
	m := newTestMachine(w, ft)

	m.Boot(entity.SessionFlags{TermsAccepted: true, GDPRAccepted: true, Authenticated: true})
	m.EnterBackground()

	ft.advance(299 * time.Second)
	m.EnterForeground()

	// Short of the idle threshold too, so any wipe here would be the
	// canceled background timer misfiring.
	m.Tick(ft.advance(200 * time.Second))
	assert.Equal(t, 0, w.count())
	assert.Equal(t, entity.StateActive, m.State())
}

func TestBackgroundSuspendsIdleTimer(t *testing.T) {
	ft := newFakeTime()
	w := &fakeWiper{store: map[string]string{"mirror:profile:photo": "s3://x"}}
	m := newTestMachine(w, ft)

	m.Boot(entity.SessionFlags{TermsAccepted: true, GDPRAccepted: true, Authenticated: true})
	m.EnterBackground()

	// Both thresholds elapse before the next poll. A backgrounded app has
	// no foreground polling, so only the background timer fires: one wipe,
	// and the session lands on the consent gate rather than the
	// screensaver.
	m.Tick(ft.advance(6 * time.Minute))
	assert.Equal(t, 1, w.count())
	assert.Empty(t, w.store)
	assert.Equal(t, entity.StateAwaitingConsent, m.State())

	// Back in the foreground the screensaver timer re-arms from resume.
	m.EnterForeground()
	m.TermsAccepted()
	m.ConsentGranted()
	m.Authenticated()
	m.Tick(ft.advance(5 * time.Minute))
	assert.Equal(t, 2, w.count())
	assert.Equal(t, entity.StateIdle, m.State())
}

func TestForceWipe(t *testing.T) {
	ft := newFakeTime()
	w := &fakeWiper{}
	m := newTestMachine(w, ft)

	m.Boot(entity.SessionFlags{TermsAccepted: true, GDPRAccepted: true, Authenticated: true})
	m.ForceWipe()

	assert.Equal(t, 1, w.count())
	assert.Equal(t, entity.StateAwaitingConsent, m.State())
	assert.Equal(t, entity.SessionFlags{}, m.Flags())
}
