package investigation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/sentinel/internal/alert"
	"github.com/linnemanlabs/sentinel/internal/audio"
)

// State is the session's position in the analysis lifecycle.
type State string

const (
	// StateIdle means no alert is selected.
	StateIdle State = "IDLE"

	// StateLoading means an analysis request is in flight.
	StateLoading State = "LOADING"

	// StateReady means a result is held and the view is usable.
	StateReady State = "READY"

	// StateError means the last request failed; the analyst chooses
	// between retry and synthetic fallback.
	StateError State = "ERROR"
)

// PlaybackState is the nested briefing sub-state, meaningful in READY.
type PlaybackState string

const (
	PlaybackStopped PlaybackState = "STOPPED"
	PlaybackPlaying PlaybackState = "PLAYING"
)

// DefaultAnalysisTimeout bounds one analysis round-trip. Timeouts surface
// as service errors.
const DefaultAnalysisTimeout = 60 * time.Second

// ErrorDescriptor is the failure surfaced to the analyst. RateLimited
// selects the "wait or run the fallback" recovery hint over plain retry.
type ErrorDescriptor struct {
	Message     string `json:"message"`
	RateLimited bool   `json:"rateLimited"`
}

// Narrator generates narrated audio for a briefing text; empty audio means
// the feature is unavailable.
type Narrator interface {
	Briefing(ctx context.Context, text string) (string, error)
}

type noNarrator struct{}

func (noNarrator) Briefing(context.Context, string) (string, error) { return "", nil }

// Options tune session timing. Zero values pick the defaults.
type Options struct {
	AnalysisTimeout time.Duration
	FallbackDelay   time.Duration
	SampleRate      int
}

func (o Options) withDefaults() Options {
	if o.AnalysisTimeout <= 0 {
		o.AnalysisTimeout = DefaultAnalysisTimeout
	}
	if o.FallbackDelay <= 0 {
		o.FallbackDelay = DefaultFallbackDelay
	}
	if o.SampleRate <= 0 {
		o.SampleRate = audio.DefaultSampleRate
	}
	return o
}

// Snapshot is a point-in-time copy of the session for rendering.
type Snapshot struct {
	State    State            `json:"state"`
	AlertID  string           `json:"alertId,omitempty"`
	Result   *Result          `json:"result,omitempty"`
	Err      *ErrorDescriptor `json:"error,omitempty"`
	Playback PlaybackState    `json:"playback"`
}

// Session is the state machine for one analyst's investigation view. All
// transitions are serialized under its mutex; async completions carry the
// request epoch they were dispatched under, and completions from a stale
// epoch are discarded so a slow response for a previously selected alert
// can never overwrite the current view.
type Session struct {
	analyzer Analyzer
	narrator Narrator
	logger   log.Logger
	metrics  *Metrics
	opts     Options

	mu       sync.Mutex
	state    State
	current  *alert.Alert
	epoch    uint64
	result   *Result
	errDesc  *ErrorDescriptor
	playback PlaybackState
}

// NewSession creates a session. The analyzer is required; a nil narrator
// disables briefings.
func NewSession(analyzer Analyzer, narrator Narrator, logger log.Logger, m *Metrics, opts Options) *Session {
	if analyzer == nil {
		panic(xerrors.New("analyzer is required"))
	}
	if narrator == nil {
		narrator = noNarrator{}
	}
	if logger == nil {
		logger = log.Nop()
	}
	if m == nil {
		m = NopMetrics()
	}
	return &Session{
		analyzer: analyzer,
		narrator: narrator,
		logger:   logger,
		metrics:  m,
		opts:     opts.withDefaults(),
		state:    StateIdle,
		playback: PlaybackStopped,
	}
}

// Select makes the alert the session's subject and dispatches its analysis.
// Any in-flight request for a previous selection is abandoned: its result
// will arrive under an old epoch and be dropped.
func (s *Session) Select(ctx context.Context, al *alert.Alert) {
	s.metrics.SelectionsTotal.Inc()

	s.mu.Lock()
	s.current = al.Clone()
	s.beginLoadingLocked()
	e := s.epoch
	snapshot := s.current.Clone()
	s.mu.Unlock()

	s.logger.Info(ctx, "analysis dispatched", "alert_id", snapshot.ID, "epoch", e)
	go s.dispatch(context.WithoutCancel(ctx), e, snapshot)
}

// Retry re-dispatches the identical request. Only valid from ERROR.
func (s *Session) Retry(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateError {
		s.mu.Unlock()
		return fmt.Errorf("retry requires an errored session, state is %s", s.state)
	}
	s.beginLoadingLocked()
	e := s.epoch
	snapshot := s.current.Clone()
	s.mu.Unlock()

	s.metrics.RetriesTotal.Inc()
	s.logger.Info(ctx, "analysis retry dispatched", "alert_id", snapshot.ID, "epoch", e)
	go s.dispatch(context.WithoutCancel(ctx), e, snapshot)
	return nil
}

// Fallback serves a synthetic analysis after the fixed delay, bypassing
// the external service. Only valid from ERROR; the session stays in ERROR
// until the result lands, then moves directly to READY. The fallback never
// mutates the alert itself.
func (s *Session) Fallback(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateError {
		s.mu.Unlock()
		return fmt.Errorf("fallback requires an errored session, state is %s", s.state)
	}
	s.epoch++
	e := s.epoch
	snapshot := s.current.Clone()
	s.mu.Unlock()

	s.metrics.FallbacksTotal.Inc()
	s.logger.Info(ctx, "synthetic fallback scheduled", "alert_id", snapshot.ID, "delay", s.opts.FallbackDelay)

	go func() {
		timer := time.NewTimer(s.opts.FallbackDelay)
		defer timer.Stop()
		<-timer.C

		s.mu.Lock()
		defer s.mu.Unlock()
		if e != s.epoch {
			s.metrics.StaleDropsTotal.Inc()
			return
		}
		s.state = StateReady
		s.result = SyntheticResult(snapshot)
		s.errDesc = nil
	}()
	return nil
}

// PlayBriefing requests narrated audio for the held reasoning text. Valid
// only in READY; a play request while already playing is ignored. All
// narration failures degrade silently to "no audio".
func (s *Session) PlayBriefing(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateReady || s.result == nil {
		s.mu.Unlock()
		return fmt.Errorf("briefing requires a completed analysis, state is %s", s.state)
	}
	if s.playback == PlaybackPlaying {
		s.mu.Unlock()
		return nil
	}
	s.playback = PlaybackPlaying
	e := s.epoch
	text := s.result.Reasoning
	s.mu.Unlock()

	go s.runBriefing(context.WithoutCancel(ctx), e, text)
	return nil
}

// ConfirmDraft hands the current (alert, analysis) pair to the caller for
// report composition. Read-only: session state does not change. Only valid
// from READY.
func (s *Session) ConfirmDraft() (*alert.Alert, *Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady || s.result == nil {
		return nil, nil, fmt.Errorf("draft requires a completed analysis, state is %s", s.state)
	}
	s.metrics.EscalationsTotal.Inc()
	return s.current.Clone(), s.result.Clone(), nil
}

// Snapshot returns a copy of the session for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{State: s.state, Playback: s.playback}
	if s.current != nil {
		snap.AlertID = s.current.ID
	}
	if s.result != nil {
		snap.Result = s.result.Clone()
	}
	if s.errDesc != nil {
		cp := *s.errDesc
		snap.Err = &cp
	}
	return snap
}

// beginLoadingLocked bumps the epoch and clears held outcomes. LOADING
// holds neither a result nor an error.
func (s *Session) beginLoadingLocked() {
	s.epoch++
	s.state = StateLoading
	s.result = nil
	s.errDesc = nil
	s.playback = PlaybackStopped
}

func (s *Session) dispatch(ctx context.Context, e uint64, al *alert.Alert) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.opts.AnalysisTimeout)
	defer cancel()

	res, err := s.analyzer.Analyze(ctx, al)
	s.apply(ctx, e, al.ID, res, err, time.Since(start))
}

func (s *Session) apply(ctx context.Context, e uint64, alertID string, res *Result, err error, dur time.Duration) {
	s.mu.Lock()
	if e != s.epoch {
		s.mu.Unlock()
		s.metrics.StaleDropsTotal.Inc()
		s.logger.Info(ctx, "discarded stale analysis response", "alert_id", alertID, "epoch", e)
		return
	}

	outcome := "success"
	if err != nil {
		kind, msg := Classify(err)
		outcome = string(kind)
		s.state = StateError
		s.errDesc = &ErrorDescriptor{Message: msg, RateLimited: kind == FailRateLimited}
		s.result = nil
	} else {
		s.state = StateReady
		s.result = res
		s.errDesc = nil
	}
	s.mu.Unlock()

	s.metrics.AnalysesTotal.WithLabelValues(outcome).Inc()
	s.metrics.AnalysisDuration.WithLabelValues(outcome).Observe(dur.Seconds())

	if err != nil {
		s.logger.Error(ctx, err, "analysis failed", "alert_id", alertID, "outcome", outcome, "duration", dur.Seconds())
		return
	}
	s.logger.Info(ctx, "analysis complete", "alert_id", alertID, "duration", dur.Seconds())
}

func (s *Session) runBriefing(ctx context.Context, e uint64, text string) {
	b64, err := s.narrator.Briefing(ctx, text)
	if err != nil {
		s.logger.Warn(ctx, "narration request failed", "error", err)
		s.metrics.BriefingsTotal.WithLabelValues("error").Inc()
		s.stopPlayback(e)
		return
	}
	if b64 == "" {
		s.metrics.BriefingsTotal.WithLabelValues("unavailable").Inc()
		s.stopPlayback(e)
		return
	}

	raw, err := audio.DecodeBase64(b64)
	if err != nil {
		s.logger.Warn(ctx, "narration payload undecodable", "error", err)
		s.metrics.BriefingsTotal.WithLabelValues("error").Inc()
		s.stopPlayback(e)
		return
	}
	clip, err := audio.DecodePCM16(raw, s.opts.SampleRate, 1)
	if err != nil {
		s.logger.Warn(ctx, "narration pcm decode failed", "error", err)
		s.metrics.BriefingsTotal.WithLabelValues("error").Inc()
		s.stopPlayback(e)
		return
	}

	s.metrics.BriefingsTotal.WithLabelValues("played").Inc()

	// hold PLAYING for the clip's length, then stop
	timer := time.NewTimer(clip.Duration())
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
	s.stopPlayback(e)
}

func (s *Session) stopPlayback(e uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e == s.epoch && s.playback == PlaybackPlaying {
		s.playback = PlaybackStopped
	}
}
