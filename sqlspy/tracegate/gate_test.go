package tracegate_test

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy/tracegate"
	. "github.com/AntonStoeckl/sqlspy-go/testutil/helper" //nolint:revive
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// scriptedSource returns the configured content and counts reads.
type scriptedSource struct {
	mu      sync.Mutex
	content string
	err     error
	reads   atomic.Int32
}

func (s *scriptedSource) Read() ([]byte, error) {
	s.reads.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	return []byte(s.content), nil
}

func (s *scriptedSource) Set(content string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = content
	s.err = err
}

func givenGate(t *testing.T, source tracegate.Source, clock *fakeClock, spy *LogHandlerSpy) *tracegate.Gate {
	t.Helper()

	gate, err := tracegate.NewGate(
		tracegate.WithSource(source),
		tracegate.WithClock(clock.Now),
		tracegate.WithLogger(slog.New(spy)),
	)
	require.NoError(t, err)

	return gate
}

func Test_Gate_ShouldNeverMatch_WithoutConfigFile(t *testing.T) {
	gate, err := tracegate.NewGate(tracegate.WithConfigFile(filepath.Join(t.TempDir(), "missing.properties")))
	require.NoError(t, err)

	assert.False(t, gate.Matches(""))
	assert.False(t, gate.Matches("SELECT 1 FROM t"))
	assert.False(t, gate.Snapshot().Enabled())
}

func Test_Gate_ShouldRequireFullStringMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), tracegate.DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("# trap\nmatchText=SELECT .* FROM t\n"), 0o600))

	gate, err := tracegate.NewGate(tracegate.WithConfigFile(path))
	require.NoError(t, err)

	assert.True(t, gate.Matches("SELECT 1 FROM t"))
	assert.False(t, gate.Matches("xSELECT 1 FROM t"))
	assert.False(t, gate.Matches("SELECT 1 FROM t WHERE a = 1"))
	assert.Equal(t, "SELECT .* FROM t", gate.Snapshot().MatchText)
}

func Test_Gate_ShouldNotMatchAlternationPartially(t *testing.T) {
	source := &scriptedSource{content: "matchText=a|b"}
	gate := givenGate(t, source, newFakeClock(), NewLogHandlerSpy(false))

	assert.True(t, gate.Matches("a"))
	assert.True(t, gate.Matches("b"))
	assert.False(t, gate.Matches("ab"))
}

func Test_Gate_ShouldReadSourceAtMostOncePerInterval(t *testing.T) {
	source := &scriptedSource{content: "matchText=x"}
	clock := newFakeClock()
	gate := givenGate(t, source, clock, NewLogHandlerSpy(false))

	gate.Matches("x")
	gate.Matches("x")
	assert.Equal(t, int32(1), source.reads.Load())

	clock.Advance(29 * time.Second)
	gate.Matches("x")
	assert.Equal(t, int32(1), source.reads.Load())

	clock.Advance(time.Second)
	gate.Matches("x")
	assert.Equal(t, int32(2), source.reads.Load())
}

func Test_Gate_ShouldPickUpChangedPattern_AfterInterval(t *testing.T) {
	source := &scriptedSource{content: "matchText=old"}
	clock := newFakeClock()
	gate := givenGate(t, source, clock, NewLogHandlerSpy(false))

	assert.True(t, gate.Matches("old"))

	source.Set("matchText=new", nil)
	assert.True(t, gate.Matches("old"), "still inside the throttle window")

	clock.Advance(tracegate.DefaultReloadInterval)
	assert.False(t, gate.Matches("old"))
	assert.True(t, gate.Matches("new"))
}

func Test_Gate_ShouldKeepPreviousPattern_WhenNewPatternDoesNotCompile(t *testing.T) {
	source := &scriptedSource{content: "matchText=SELECT .*"}
	clock := newFakeClock()
	spy := NewLogHandlerSpy(false)
	gate := givenGate(t, source, clock, spy)

	require.True(t, gate.Matches("SELECT 1"))
	before := gate.Snapshot()

	source.Set("matchText=SELECT (", nil)
	clock.Advance(tracegate.DefaultReloadInterval)

	assert.True(t, gate.Matches("SELECT 1"))
	after := gate.Snapshot()
	assert.Same(t, before.Pattern, after.Pattern)
	assert.Equal(t, "SELECT .*", after.MatchText)
	assert.True(t, after.LastReload.After(before.LastReload))
	assert.True(t, spy.HasWarnLogWithMessage("trace gate: invalid pattern, update skipped").
		WithAttr("match_text", "SELECT (").
		Assert())
}

func Test_Gate_ShouldStayDisabled_WhenFirstPatternDoesNotCompile(t *testing.T) {
	source := &scriptedSource{content: "matchText=[unclosed"}
	spy := NewLogHandlerSpy(false)
	gate := givenGate(t, source, newFakeClock(), spy)

	assert.False(t, gate.Matches("[unclosed"))
	assert.False(t, gate.Snapshot().Enabled())
	assert.Empty(t, gate.Snapshot().MatchText)
	assert.True(t, spy.HasWarnLogWithMessage("trace gate: invalid pattern, update skipped").Assert())
}

func Test_Gate_ShouldRejectPattern_ThatWouldEscapeTheAnchors(t *testing.T) {
	source := &scriptedSource{content: "matchText=SELECT.*)|(DROP"}
	spy := NewLogHandlerSpy(false)
	gate := givenGate(t, source, newFakeClock(), spy)

	assert.False(t, gate.Matches("SELECT 1; nope"))
	assert.False(t, gate.Matches("xx DROP"))
	assert.False(t, gate.Snapshot().Enabled())
	assert.True(t, spy.HasWarnLogWithMessage("trace gate: invalid pattern, update skipped").
		WithAttr("match_text", "SELECT.*)|(DROP").
		Assert())
}

func Test_Gate_ShouldKeepPreviousPattern_WhenNewPatternWouldEscapeTheAnchors(t *testing.T) {
	source := &scriptedSource{content: "matchText=SELECT 1"}
	clock := newFakeClock()
	gate := givenGate(t, source, clock, NewLogHandlerSpy(false))

	require.True(t, gate.Matches("SELECT 1"))

	source.Set("matchText=a)|(b", nil)
	clock.Advance(tracegate.DefaultReloadInterval)

	assert.True(t, gate.Matches("SELECT 1"))
	assert.False(t, gate.Matches("xa"))
	assert.False(t, gate.Matches("bx"))
	assert.Equal(t, "SELECT 1", gate.Snapshot().MatchText)
}

func Test_Gate_ShouldRecordWhetherTrappingIsEnabled_AfterEveryReload(t *testing.T) {
	source := &scriptedSource{content: "matchText=SELECT 1"}
	clock := newFakeClock()
	metrics := NewMetricsCollectorSpy()
	gate, err := tracegate.NewGate(
		tracegate.WithSource(source),
		tracegate.WithClock(clock.Now),
		tracegate.WithLogger(slog.New(NewLogHandlerSpy(false))),
		tracegate.WithMetrics(metrics),
	)
	require.NoError(t, err)

	gate.Matches("SELECT 1")
	gate.Matches("SELECT 1")

	source.Set("", fs.ErrNotExist)
	clock.Advance(tracegate.DefaultReloadInterval)
	gate.Matches("SELECT 1")

	records := metrics.GetValueRecords()
	require.Len(t, records, 2, "one record per reload")
	assert.Equal(t, tracegate.MetricTrapEnabled, records[0].Metric)
	assert.InDelta(t, 1.0, records[0].Value, 0.0001)
	assert.InDelta(t, 0.0, records[1].Value, 0.0001)
	assert.True(t, metrics.HasValueRecordForMetric("sqlspy_trap_enabled").WithLabel("source", "custom").Assert())
}

func Test_Gate_ShouldDisable_WhenConfigIsRemoved(t *testing.T) {
	source := &scriptedSource{content: "matchText=.*"}
	clock := newFakeClock()
	gate := givenGate(t, source, clock, NewLogHandlerSpy(false))

	require.True(t, gate.Matches("anything"))

	source.Set("", fs.ErrNotExist)
	clock.Advance(tracegate.DefaultReloadInterval)

	assert.False(t, gate.Matches("anything"))
	assert.Empty(t, gate.Snapshot().MatchText)
}

func Test_Gate_ShouldDisable_WhenKeyIsRemoved(t *testing.T) {
	source := &scriptedSource{content: "matchText=.*"}
	clock := newFakeClock()
	gate := givenGate(t, source, clock, NewLogHandlerSpy(false))

	require.True(t, gate.Matches("anything"))

	source.Set("otherKey=.*", nil)
	clock.Advance(tracegate.DefaultReloadInterval)

	assert.False(t, gate.Matches("anything"))
}

func Test_Gate_ShouldKeepState_WhenSourceCannotBeRead(t *testing.T) {
	source := &scriptedSource{content: "matchText=.*"}
	clock := newFakeClock()
	spy := NewLogHandlerSpy(false)
	gate := givenGate(t, source, clock, spy)

	require.True(t, gate.Matches("anything"))

	source.Set("", errors.New("permission denied"))
	clock.Advance(tracegate.DefaultReloadInterval)

	assert.True(t, gate.Matches("anything"))
	assert.True(t, spy.HasWarnLogWithMessage("trace gate: could not read configuration, keeping current pattern").
		WithAttr("error", "permission denied").
		Assert())

	// the failed attempt still counts for the throttle
	clock.Advance(tracegate.DefaultReloadInterval - time.Second)
	gate.Matches("anything")
	assert.Equal(t, int32(2), source.reads.Load())
}

func Test_Gate_ShouldReloadOnce_UnderConcurrentCallers(t *testing.T) {
	source := &scriptedSource{content: "matchText=SELECT .*"}
	gate := givenGate(t, source, newFakeClock(), NewLogHandlerSpy(false))

	var wg sync.WaitGroup
	var hits atomic.Int32
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if gate.Matches("SELECT 1") {
				hits.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), source.reads.Load())
	assert.Equal(t, int32(64), hits.Load())
}

func Test_NewGate_ShouldFail_WithInvalidOptions(t *testing.T) {
	testCases := []struct {
		name     string
		option   tracegate.Option
		expected error
	}{
		{name: "empty config file", option: tracegate.WithConfigFile(""), expected: tracegate.ErrEmptyConfigFile},
		{name: "zero interval", option: tracegate.WithReloadInterval(0), expected: tracegate.ErrInvalidReloadInterval},
		{name: "nil clock", option: tracegate.WithClock(nil), expected: tracegate.ErrNilClock},
		{name: "nil source", option: tracegate.WithSource(nil), expected: tracegate.ErrNilSource},
		{name: "nil logger", option: tracegate.WithLogger(nil), expected: tracegate.ErrNilLogger},
		{name: "nil metrics", option: tracegate.WithMetrics(nil), expected: tracegate.ErrNilMetrics},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tracegate.NewGate(tc.option)

			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func Test_Gate_ShouldHonourCustomReloadInterval(t *testing.T) {
	source := &scriptedSource{content: "matchText=x"}
	clock := newFakeClock()
	gate, err := tracegate.NewGate(
		tracegate.WithSource(source),
		tracegate.WithClock(clock.Now),
		tracegate.WithReloadInterval(time.Second),
	)
	require.NoError(t, err)

	gate.Matches("x")
	clock.Advance(time.Second)
	gate.Matches("x")

	assert.Equal(t, int32(2), source.reads.Load())
}
