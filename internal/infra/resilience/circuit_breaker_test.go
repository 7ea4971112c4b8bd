package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move past the open timeout without sleeping.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(cfg CircuitBreakerConfig) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker(cfg)
	cb.now = clock.now
	return cb, clock
}

func testConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             "newsapi",
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      30 * time.Second,
	}
}

func TestCircuitBreaker_InitialState(t *testing.T) {
	cb := NewCircuitBreaker(DefaultCircuitBreakerConfig("groq"))

	assert.Equal(t, "groq", cb.Name())
	assert.Equal(t, StateClosed, cb.State())
	assert.True(t, cb.Allow())
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb, _ := newTestBreaker(testConfig())

	for i := 0; i < 3; i++ {
		require.True(t, cb.Allow())
		cb.RecordFailure()
	}

	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb, _ := newTestBreaker(testConfig())

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, 1, cb.Stats().ConsecFailures)
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb, clock := newTestBreaker(testConfig())
	for i := 0; i < 3; i++ {
		cb.RecordFailure()
	}

	clock.advance(31 * time.Second)
	assert.Equal(t, StateHalfOpen, cb.State())
	require.True(t, cb.Allow())

	cb.RecordSuccess()
	assert.Equal(t, StateHalfOpen, cb.State())
	cb.RecordSuccess()
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(testConfig())
	for i := 0; i < 3; i++ {
		cb.RecordFailure()
	}

	clock.advance(31 * time.Second)
	require.True(t, cb.Allow())
	cb.RecordFailure()

	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	type transition struct{ from, to CircuitState }
	var seen []transition

	cfg := testConfig()
	cfg.OnStateChange = func(name string, from, to CircuitState) {
		assert.Equal(t, "newsapi", name)
		seen = append(seen, transition{from, to})
	}
	cb, clock := newTestBreaker(cfg)

	for i := 0; i < 3; i++ {
		cb.RecordFailure()
	}
	clock.advance(time.Minute)
	cb.Allow()
	cb.RecordSuccess()
	cb.RecordSuccess()

	assert.Equal(t, []transition{
		{StateClosed, StateOpen},
		{StateOpen, StateHalfOpen},
		{StateHalfOpen, StateClosed},
	}, seen)
}

func TestExecute(t *testing.T) {
	errUpstream := errors.New("upstream down")
	errCaller := errors.New("bad input")
	isUpstream := func(err error) bool { return errors.Is(err, errUpstream) }

	t.Run("success", func(t *testing.T) {
		cb, _ := newTestBreaker(testConfig())
		got, err := Execute(cb, func() (string, error) { return "ok", nil }, isUpstream)
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, int64(1), cb.Stats().TotalSuccesses)
	})

	t.Run("upstream failures open the circuit", func(t *testing.T) {
		cb, _ := newTestBreaker(testConfig())
		for i := 0; i < 3; i++ {
			_, err := Execute(cb, func() (int, error) { return 0, errUpstream }, isUpstream)
			assert.ErrorIs(t, err, errUpstream)
		}

		_, err := Execute(cb, func() (int, error) { return 1, nil }, isUpstream)
		assert.ErrorIs(t, err, ErrCircuitOpen)
	})

	t.Run("caller errors do not trip", func(t *testing.T) {
		cb, _ := newTestBreaker(testConfig())
		for i := 0; i < 5; i++ {
			_, err := Execute(cb, func() (int, error) { return 0, errCaller }, isUpstream)
			assert.ErrorIs(t, err, errCaller)
		}
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("nil classifier counts every error", func(t *testing.T) {
		cb, _ := newTestBreaker(testConfig())
		for i := 0; i < 3; i++ {
			_, _ = Execute(cb, func() (int, error) { return 0, errCaller }, nil)
		}
		assert.Equal(t, StateOpen, cb.State())
	})
}
