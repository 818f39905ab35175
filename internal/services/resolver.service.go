package services

import (
	"context"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"civic/config"
	"civic/internal/clients/essentials"
	"civic/internal/database"
	"civic/internal/logger"
	. "civic/internal/models"
)

// WarmingTimeoutMessage is the user-facing message for bounded-retry
// exhaustion, distinct from transport errors.
const WarmingTimeoutMessage = "Request timed out. The server may still be fetching data - please try again in a moment."

var zipRe = regexp.MustCompile(`^\d{5}$`)

// ParseQuery normalizes a raw location query exactly once at the
// resolver boundary. Everything downstream dispatches on Kind, never
// on the regex.
func ParseQuery(raw string) LocationQuery {
	text := strings.TrimSpace(raw)
	switch {
	case text == "":
		return LocationQuery{Kind: QueryInvalid}
	case zipRe.MatchString(text):
		return LocationQuery{Kind: QueryZip, Text: text}
	}
	return LocationQuery{Kind: QueryFreeForm, Text: text}
}

// Backend is the slice of the essentials client the resolver needs.
type Backend interface {
	FetchByZip(ctx context.Context, zip string, attempt int) (essentials.ZipResult, error)
	Search(ctx context.Context, query string) (SearchResult, error)
}

// LookupRecorder persists terminal resolutions for the recent-searches
// view. Recording is best-effort and never fails a resolution.
type LookupRecorder interface {
	RecordLookup(ctx context.Context, query LocationQuery, state FetchState)
}

// RetryPolicy bounds the ZIP polling loop. Timeout is an attempt
// count, not a wall clock: predictable retry count beats unpredictable
// wall-clock bounds under variable per-attempt backoff.
type RetryPolicy struct {
	MaxAttempts     int
	RetryAfterFloor time.Duration
	RetryAfterCeil  time.Duration
	DefaultRetry    time.Duration
	JitterMax       time.Duration
}

func PolicyFromConfig(config config.Config) RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     config.ResolveMaxAttempts,
		RetryAfterFloor: config.ResolveRetryAfterFloor,
		RetryAfterCeil:  config.ResolveRetryAfterCeil,
		DefaultRetry:    config.ResolveDefaultRetry,
		JitterMax:       config.ResolveJitterMax,
	}
}

// ResolverService holds the shared dependencies for query resolution.
// Each consumer gets its own session so superseding one consumer's
// query never cancels another's.
type ResolverService struct {
	backend        Backend
	resultCache    database.CacheClient
	resultCacheTTL time.Duration
	policy         RetryPolicy
	lookups        LookupRecorder
	log            logger.Logger
}

func NewResolverService(backend Backend, resultCache database.CacheClient, ttl time.Duration, policy RetryPolicy, lookups LookupRecorder) *ResolverService {
	return &ResolverService{
		backend:        backend,
		resultCache:    resultCache,
		resultCacheTTL: ttl,
		policy:         policy,
		lookups:        lookups,
		log:            logger.New("resolverService"),
	}
}

func (s *ResolverService) NewSession() *ResolverSession {
	return &ResolverSession{
		svc: s,
		log: s.log.Function("session"),
	}
}

// ResolverSession owns one consumer's resolution state: the generation
// counter, the cancel handle for the in-flight sequence, and the
// current FetchState. The generation guard makes the active sequence
// the only writer; a superseded sequence's late responses are dropped
// before any state mutation.
type ResolverSession struct {
	svc *ResolverService
	log logger.Logger

	gen     atomic.Uint64
	mu      sync.Mutex
	cancel  context.CancelFunc
	state   FetchState
	lastKey string
}

type ResolveOptions struct {
	Enabled   bool
	ForceKey  string
	SkipCache bool
}

// Resolution is one live sequence. Updates streams every FetchState
// the sequence publishes; the channel closes when the sequence reaches
// a terminal phase or is superseded.
type Resolution struct {
	updates chan FetchState
	done    chan struct{}

	mu    sync.Mutex
	final FetchState
}

func (r *Resolution) Updates() <-chan FetchState {
	return r.updates
}

// Final blocks until the sequence ends and returns its last state.
func (r *Resolution) Final() FetchState {
	<-r.done
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.final
}

// Resolve starts a new resolution sequence, superseding any in-flight
// one for this session. A disabled or empty query resets to idle
// without issuing any network call.
func (sess *ResolverSession) Resolve(ctx context.Context, rawQuery string, opts ResolveOptions) *Resolution {
	// Same query and force key while a fresh result is held: replay it
	// instead of superseding the sequence that produced it.
	seqKey := rawQuery + "\x00" + opts.ForceKey
	sess.mu.Lock()
	if opts.Enabled && seqKey == sess.lastKey && sess.state.Phase == PhaseFresh {
		state := sess.state
		sess.mu.Unlock()
		res := &Resolution{
			updates: make(chan FetchState, 1),
			done:    make(chan struct{}),
		}
		res.final = state
		res.updates <- state
		res.close()
		return res
	}
	sess.lastKey = seqKey
	sess.mu.Unlock()

	gen := sess.gen.Add(1)

	sess.mu.Lock()
	if sess.cancel != nil {
		sess.cancel()
	}
	seqCtx, cancel := context.WithCancel(ctx)
	sess.cancel = cancel
	sess.mu.Unlock()

	// Bounded update count: loading + one per attempt + terminal.
	res := &Resolution{
		updates: make(chan FetchState, sess.svc.policy.MaxAttempts+4),
		done:    make(chan struct{}),
	}

	query := ParseQuery(rawQuery)
	if !opts.Enabled || query.Kind == QueryInvalid {
		sess.publish(gen, res, FetchState{Phase: PhaseIdle})
		res.close()
		cancel()
		return res
	}

	go sess.run(seqCtx, gen, query, opts, res)
	return res
}

// Current returns the session's last published state.
func (sess *ResolverSession) Current() FetchState {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state
}

// publish writes a state update if this sequence is still current.
// Returns false when the sequence has been superseded.
func (sess *ResolverSession) publish(gen uint64, res *Resolution, state FetchState) bool {
	if sess.gen.Load() != gen {
		return false
	}

	sess.mu.Lock()
	sess.state = state
	sess.mu.Unlock()

	res.mu.Lock()
	res.final = state
	res.mu.Unlock()

	select {
	case res.updates <- state:
	default:
		// Buffer is sized to the sequence's bounded update count;
		// overflow means a misbehaving consumer, not lost terminal
		// state (Final carries it).
	}
	return true
}

func (r *Resolution) close() {
	close(r.updates)
	close(r.done)
}

func (sess *ResolverSession) run(ctx context.Context, gen uint64, query LocationQuery, opts ResolveOptions, res *Resolution) {
	defer res.close()
	log := sess.log.Function("run")

	if !opts.SkipCache {
		if cached, ok := sess.svc.cachedResult(ctx, query); ok {
			sess.publish(gen, res, cached)
			return
		}
	}

	var final FetchState
	switch query.Kind {
	case QueryZip:
		final = sess.resolveZip(ctx, gen, query, res)
	default:
		final = sess.resolveSearch(ctx, gen, query, res)
	}

	// Cancellation silently terminates the sequence; nothing below
	// runs for a superseded generation either.
	if ctx.Err() != nil || final.Phase == "" {
		return
	}

	if !sess.publish(gen, res, final) {
		return
	}

	if final.Phase == PhaseFresh {
		sess.svc.cacheResult(ctx, query, final)
	}

	if sess.svc.lookups != nil {
		sess.svc.lookups.RecordLookup(ctx, query, final)
	}

	log.Debug("resolution finished", "query", query.Text, "phase", final.Phase, "results", len(final.Data))
}

// resolveZip drives the polling loop against the per-ZIP resource.
// Returns the terminal state, or a zero state on cancellation or
// supersession.
func (sess *ResolverSession) resolveZip(ctx context.Context, gen uint64, query LocationQuery, res *Resolution) FetchState {
	policy := sess.svc.policy

	if !sess.publish(gen, res, FetchState{Phase: PhaseLoading}) {
		return FetchState{}
	}

	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return FetchState{}
		}

		once, err := sess.svc.backend.FetchByZip(ctx, query.Text, attempt)
		if ctx.Err() != nil {
			return FetchState{}
		}
		if err != nil {
			return FetchState{Phase: PhaseError, Error: err.Error()}
		}

		if once.Warming {
			if !sess.publish(gen, res, FetchState{Phase: PhaseWarming, Attempt: attempt + 1}) {
				return FetchState{}
			}
			if !sess.sleep(ctx, policy.backoff(once.RetryAfter)) {
				return FetchState{}
			}
			continue
		}

		if once.Status.Terminal() {
			return FetchState{Phase: PhaseFresh, Data: once.Data, DataStatus: once.Status}
		}

		// 200 without a recognized freshness signal: keep polling on
		// the default interval, like a warming response.
		if !sess.sleep(ctx, policy.backoff(0)) {
			return FetchState{}
		}
	}

	return FetchState{Phase: PhaseError, Error: WarmingTimeoutMessage}
}

func (sess *ResolverSession) resolveSearch(ctx context.Context, gen uint64, query LocationQuery, res *Resolution) FetchState {
	if !sess.publish(gen, res, FetchState{Phase: PhaseLoading}) {
		return FetchState{}
	}

	result, err := sess.svc.backend.Search(ctx, query.Text)
	if ctx.Err() != nil {
		return FetchState{}
	}
	if err != nil {
		return FetchState{Phase: PhaseError, Error: err.Error()}
	}

	return FetchState{
		Phase:            PhaseFresh,
		Data:             result.Data,
		DataStatus:       result.Status,
		FormattedAddress: result.FormattedAddress,
	}
}

// sleep waits for the backoff interval, returning false on cancellation.
func (sess *ResolverSession) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// backoff clamps the server-suggested retry interval and adds jitter
// so synchronized clients don't stampede a warming cache.
func (p RetryPolicy) backoff(retryAfter time.Duration) time.Duration {
	d := retryAfter
	if d <= 0 {
		d = p.DefaultRetry
	}
	if d < p.RetryAfterFloor {
		d = p.RetryAfterFloor
	}
	if d > p.RetryAfterCeil {
		d = p.RetryAfterCeil
	}
	if p.JitterMax > 0 {
		d += time.Duration(rand.Int63n(int64(p.JitterMax)))
	}
	return d
}

func (s *ResolverService) resultCacheKey(query LocationQuery) string {
	return "result:" + strings.ToLower(query.Text)
}

func (s *ResolverService) cachedResult(ctx context.Context, query LocationQuery) (FetchState, bool) {
	if s.resultCache == nil {
		return FetchState{}, false
	}

	var state FetchState
	found, err := database.NewCacheBuilder(s.resultCache, s.resultCacheKey(query)).
		WithContext(ctx).
		Get(&state)
	if err != nil || !found {
		return FetchState{}, false
	}

	state.Phase = PhaseFresh
	return state, true
}

func (s *ResolverService) cacheResult(ctx context.Context, query LocationQuery, state FetchState) {
	if s.resultCache == nil {
		return
	}

	if err := database.NewCacheBuilder(s.resultCache, s.resultCacheKey(query)).
		WithStruct(state).
		WithTTL(s.resultCacheTTL).
		WithContext(ctx).
		Set(); err != nil {
		s.log.Function("cacheResult").Warn("failed to cache result", "query", query.Text, "error", err)
	}
}
