package tracegate

import (
	"log/slog"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AntonStoeckl/sqlspy-go/sqlspy"
)

const (
	// DefaultConfigFile is read from the working directory by the process-wide gate.
	DefaultConfigFile = "sqlspy-config.properties"

	// MatchTextKey is the properties key holding the pattern.
	MatchTextKey = "matchText"

	// DefaultReloadInterval is the minimum time between two reads of the configuration source.
	DefaultReloadInterval = 30 * time.Second
)

const (
	logMsgReadFailed      = "trace gate: could not read configuration, keeping current pattern"
	logMsgCompileFailed   = "trace gate: invalid pattern, update skipped"
	logMsgPatternSet      = "trace gate: pattern updated"
	logMsgDisabled        = "trace gate: matching disabled"
	logAttrError          = "error"
	logAttrMatchText      = "match_text"
	logAttrConfigSource   = "source"
	logAttrPreviousActive = "previous_active"
)

// MetricTrapEnabled is the gauge recorded after every reload: 1 while a pattern is active, 0 otherwise.
const MetricTrapEnabled = "sqlspy_trap_enabled"

// State is an immutable snapshot of the gate configuration.
// Pattern and MatchText are either both empty or both set, MatchText being the source of Pattern.
type State struct {
	Pattern    *regexp.Regexp
	MatchText  string
	LastReload time.Time
}

// Enabled reports whether a pattern is compiled.
func (s State) Enabled() bool {
	return s.Pattern != nil
}

// Gate is a hot-reloadable full-string matcher.
// All methods are safe for concurrent use.
type Gate struct {
	source   Source
	interval time.Duration
	now      func() time.Time
	logger   sqlspy.Logger
	metrics  sqlspy.MetricsCollector

	state    atomic.Pointer[State]
	reloadMu sync.Mutex
}

// NewGate creates a Gate reading DefaultConfigFile unless configured otherwise.
// The first call to Matches reads the configuration.
func NewGate(options ...Option) (*Gate, error) {
	g := &Gate{
		source:   FileSource(DefaultConfigFile),
		interval: DefaultReloadInterval,
		now:      time.Now,
		logger:   slog.Default(),
	}

	for _, option := range options {
		if err := option(g); err != nil {
			return nil, err
		}
	}

	g.state.Store(&State{})

	return g, nil
}

// Matches reports whether text matches the configured pattern over its entire length.
// It is false whenever no pattern is configured.
func (g *Gate) Matches(text string) bool {
	g.reloadIfStale()

	state := g.state.Load()
	if state.Pattern == nil {
		return false
	}

	return state.Pattern.MatchString(text)
}

// Snapshot returns the current configuration without triggering a reload.
func (g *Gate) Snapshot() State {
	return *g.state.Load()
}

func (g *Gate) isStale(state *State) bool {
	return g.now().Sub(state.LastReload) >= g.interval
}

func (g *Gate) reloadIfStale() {
	if !g.isStale(g.state.Load()) {
		return
	}

	g.reloadMu.Lock()
	defer g.reloadMu.Unlock()

	current := g.state.Load()
	if !g.isStale(current) {
		return // another goroutine reloaded while we waited
	}

	next := g.reload(current)
	g.state.Store(next)
	g.recordEnabled(next)
}

func (g *Gate) recordEnabled(state *State) {
	if g.metrics == nil {
		return
	}

	value := 0.0
	if state.Enabled() {
		value = 1
	}

	g.metrics.RecordValue(MetricTrapEnabled, value, map[string]string{logAttrConfigSource: g.sourceName()})
}

func (g *Gate) reload(current *State) *State {
	next := *current
	next.LastReload = g.now()

	text, found, err := readMatchText(g.source)
	if err != nil {
		g.logger.Warn(logMsgReadFailed, logAttrConfigSource, g.sourceName(), logAttrError, err.Error())

		return &next
	}

	if !found {
		if current.Pattern != nil {
			g.logger.Info(logMsgDisabled, logAttrConfigSource, g.sourceName())
		}

		return &State{LastReload: next.LastReload}
	}

	if current.Pattern != nil && text == current.MatchText {
		return &next
	}

	pattern, compileErr := compileFullMatch(text)
	if compileErr != nil {
		g.logger.Warn(logMsgCompileFailed,
			logAttrMatchText, text,
			logAttrError, compileErr.Error(),
			logAttrPreviousActive, current.Pattern != nil)

		if current.Pattern == nil {
			return &State{LastReload: next.LastReload}
		}

		return &next
	}

	g.logger.Info(logMsgPatternSet, logAttrMatchText, text)

	return &State{Pattern: pattern, MatchText: text, LastReload: next.LastReload}
}

// compileFullMatch compiles text anchored at both ends.
// text must be a valid expression on its own, so unbalanced groups cannot escape the anchors.
func compileFullMatch(text string) (*regexp.Regexp, error) {
	if _, err := regexp.Compile(text); err != nil {
		return nil, err
	}

	return regexp.Compile(`^(?:` + text + `)$`)
}

func (g *Gate) sourceName() string {
	if f, ok := g.source.(FileSource); ok {
		return string(f)
	}

	return "custom"
}
