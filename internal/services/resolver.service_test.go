package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"civic/internal/clients/essentials"
	. "civic/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend scripts per-attempt ZIP responses and records calls.
type fakeBackend struct {
	mu         sync.Mutex
	zipScript  []essentials.ZipResult
	zipErr     error
	zipCalls   int
	zipDelay   time.Duration
	searchFn   func(query string) (SearchResult, error)
	searchable int
}

func (f *fakeBackend) FetchByZip(ctx context.Context, zip string, attempt int) (essentials.ZipResult, error) {
	f.mu.Lock()
	call := f.zipCalls
	f.zipCalls++
	delay := f.zipDelay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return essentials.ZipResult{}, ctx.Err()
		case <-time.After(delay):
		}
	}

	if f.zipErr != nil {
		return essentials.ZipResult{}, f.zipErr
	}
	if call < len(f.zipScript) {
		return f.zipScript[call], nil
	}
	// Script exhausted: keep warming.
	return essentials.ZipResult{Warming: true}, nil
}

func (f *fakeBackend) Search(ctx context.Context, query string) (SearchResult, error) {
	f.mu.Lock()
	f.searchable++
	f.mu.Unlock()
	if f.searchFn != nil {
		return f.searchFn(query)
	}
	return SearchResult{}, errors.New("no search scripted")
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.zipCalls
}

type fakeRecorder struct {
	mu      sync.Mutex
	queries []LocationQuery
	states  []FetchState
}

func (f *fakeRecorder) RecordLookup(ctx context.Context, query LocationQuery, state FetchState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	f.states = append(f.states, state)
}

// fastPolicy keeps polling tests in the millisecond range.
func fastPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		RetryAfterFloor: time.Millisecond,
		RetryAfterCeil:  5 * time.Millisecond,
		DefaultRetry:    2 * time.Millisecond,
	}
}

func newTestService(backend Backend, policy RetryPolicy, recorder LookupRecorder) *ResolverService {
	return NewResolverService(backend, nil, time.Minute, policy, recorder)
}

func collect(res *Resolution) []FetchState {
	var states []FetchState
	for state := range res.Updates() {
		states = append(states, state)
	}
	return states
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected LocationQuery
	}{
		{"Five digit ZIP", "47401", LocationQuery{Kind: QueryZip, Text: "47401"}},
		{"ZIP with surrounding spaces", "  84057 ", LocationQuery{Kind: QueryZip, Text: "84057"}},
		{"Street address", "123 Main St, Orem, UT 84057", LocationQuery{Kind: QueryFreeForm, Text: "123 Main St, Orem, UT 84057"}},
		{"Four digits is free-form", "4740", LocationQuery{Kind: QueryFreeForm, Text: "4740"}},
		{"Six digits is free-form", "474011", LocationQuery{Kind: QueryFreeForm, Text: "474011"}},
		{"ZIP+4 is free-form", "47401-1234", LocationQuery{Kind: QueryFreeForm, Text: "47401-1234"}},
		{"Empty", "", LocationQuery{Kind: QueryInvalid}},
		{"Whitespace only", "   ", LocationQuery{Kind: QueryInvalid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseQuery(tt.raw))
		})
	}
}

func TestResolve_ZipWarmingThenFresh(t *testing.T) {
	officials := []Politician{
		{FirstName: "Todd", LastName: "Young", DistrictType: NationalUpper},
		{FirstName: "Erin", LastName: "Houchin", DistrictType: NationalLower},
	}
	backend := &fakeBackend{
		zipScript: []essentials.ZipResult{
			{Warming: true, RetryAfter: time.Millisecond},
			{Data: officials, Status: StatusFresh},
		},
	}
	recorder := &fakeRecorder{}
	sess := newTestService(backend, fastPolicy(), recorder).NewSession()

	res := sess.Resolve(context.Background(), "47401", ResolveOptions{Enabled: true})
	states := collect(res)

	require.Len(t, states, 3)
	assert.Equal(t, PhaseLoading, states[0].Phase)
	assert.Equal(t, PhaseWarming, states[1].Phase)
	assert.Equal(t, 1, states[1].Attempt)
	assert.Equal(t, PhaseFresh, states[2].Phase)
	assert.Equal(t, StatusFresh, states[2].DataStatus)
	assert.Len(t, states[2].Data, 2)

	final := res.Final()
	assert.Equal(t, PhaseFresh, final.Phase)
	assert.Equal(t, 2, backend.calls())

	require.Len(t, recorder.queries, 1)
	assert.Equal(t, QueryZip, recorder.queries[0].Kind)
	assert.Equal(t, PhaseFresh, recorder.states[0].Phase)
}

func TestResolve_ZipExhaustsAttempts(t *testing.T) {
	backend := &fakeBackend{} // always warming
	sess := newTestService(backend, fastPolicy(), nil).NewSession()

	res := sess.Resolve(context.Background(), "47401", ResolveOptions{Enabled: true})
	final := res.Final()

	assert.Equal(t, PhaseError, final.Phase)
	assert.Equal(t, WarmingTimeoutMessage, final.Error)
	assert.Empty(t, final.Data)
	assert.Equal(t, 3, backend.calls())
}

func TestResolve_ZipBackendError(t *testing.T) {
	backend := &fakeBackend{zipErr: errors.New("502 Bad Gateway")}
	sess := newTestService(backend, fastPolicy(), nil).NewSession()

	res := sess.Resolve(context.Background(), "47401", ResolveOptions{Enabled: true})
	final := res.Final()

	assert.Equal(t, PhaseError, final.Phase)
	assert.Equal(t, "502 Bad Gateway", final.Error)
	assert.Equal(t, 1, backend.calls())
}

func TestResolve_ZipStaleResponseKeepsPolling(t *testing.T) {
	// A 200 without a terminal freshness signal repolls like warming.
	backend := &fakeBackend{
		zipScript: []essentials.ZipResult{
			{Data: []Politician{{LastName: "Old"}}, Status: "unknown-signal"},
			{Data: []Politician{{LastName: "New"}}, Status: StatusWarmed},
		},
	}
	sess := newTestService(backend, fastPolicy(), nil).NewSession()

	res := sess.Resolve(context.Background(), "47401", ResolveOptions{Enabled: true})
	final := res.Final()

	assert.Equal(t, PhaseFresh, final.Phase)
	assert.Equal(t, StatusWarmed, final.DataStatus)
	require.Len(t, final.Data, 1)
	assert.Equal(t, "New", final.Data[0].LastName)
}

func TestResolve_FreeFormSearch(t *testing.T) {
	backend := &fakeBackend{
		searchFn: func(query string) (SearchResult, error) {
			assert.Equal(t, "123 Main St, Orem, UT 84057", query)
			return SearchResult{
				Data:             []Politician{{FirstName: "Spencer", LastName: "Cox", DistrictType: StateExec}},
				Status:           StatusNoGeofence,
				FormattedAddress: "123 Main St, Orem, UT 84057, USA",
			}, nil
		},
	}
	recorder := &fakeRecorder{}
	sess := newTestService(backend, fastPolicy(), recorder).NewSession()

	res := sess.Resolve(context.Background(), "123 Main St, Orem, UT 84057", ResolveOptions{Enabled: true})
	states := collect(res)

	require.Len(t, states, 2)
	assert.Equal(t, PhaseLoading, states[0].Phase)
	assert.Equal(t, PhaseFresh, states[1].Phase)
	assert.Equal(t, StatusNoGeofence, states[1].DataStatus)
	assert.Equal(t, "123 Main St, Orem, UT 84057, USA", states[1].FormattedAddress)
	assert.Zero(t, backend.calls(), "free-form queries never hit the ZIP resource")

	require.Len(t, recorder.queries, 1)
	assert.Equal(t, QueryFreeForm, recorder.queries[0].Kind)
}

func TestResolve_DisabledAndInvalidGoIdle(t *testing.T) {
	backend := &fakeBackend{}
	sess := newTestService(backend, fastPolicy(), nil).NewSession()

	disabled := sess.Resolve(context.Background(), "47401", ResolveOptions{Enabled: false})
	assert.Equal(t, PhaseIdle, disabled.Final().Phase)

	empty := sess.Resolve(context.Background(), "   ", ResolveOptions{Enabled: true})
	assert.Equal(t, PhaseIdle, empty.Final().Phase)

	assert.Zero(t, backend.calls())
}

func TestResolve_SupersededSequenceNeverWrites(t *testing.T) {
	backend := &fakeBackend{
		zipDelay: 20 * time.Millisecond,
		zipScript: []essentials.ZipResult{
			{Data: []Politician{{LastName: "FromA"}}, Status: StatusFresh},
			{Data: []Politician{{LastName: "FromB"}}, Status: StatusFresh},
		},
	}
	sess := newTestService(backend, fastPolicy(), nil).NewSession()

	first := sess.Resolve(context.Background(), "47401", ResolveOptions{Enabled: true})
	time.Sleep(5 * time.Millisecond)
	second := sess.Resolve(context.Background(), "47403", ResolveOptions{Enabled: true})

	final := second.Final()
	collect(first)

	require.Equal(t, PhaseFresh, final.Phase)
	require.Len(t, final.Data, 1)

	// The session's visible state belongs to the second sequence; the
	// superseded one was cancelled before its response could land.
	current := sess.Current()
	assert.Equal(t, PhaseFresh, current.Phase)
	require.Len(t, current.Data, 1)
	assert.Equal(t, current.Data[0].LastName, final.Data[0].LastName)
}

func TestResolve_CancellationIsNotAnError(t *testing.T) {
	backend := &fakeBackend{zipDelay: 50 * time.Millisecond}
	recorder := &fakeRecorder{}
	sess := newTestService(backend, fastPolicy(), recorder).NewSession()

	ctx, cancel := context.WithCancel(context.Background())
	res := sess.Resolve(ctx, "47401", ResolveOptions{Enabled: true})
	time.Sleep(5 * time.Millisecond)
	cancel()

	states := collect(res)
	for _, state := range states {
		assert.NotEqual(t, PhaseError, state.Phase, "cancellation must not surface as an error state")
	}
	assert.Empty(t, recorder.queries, "cancelled sequences are not recorded")
}

func TestResolve_ReplaysFreshStateForSameQuery(t *testing.T) {
	backend := &fakeBackend{
		zipScript: []essentials.ZipResult{
			{Data: []Politician{{LastName: "Young"}}, Status: StatusFresh},
		},
	}
	sess := newTestService(backend, fastPolicy(), nil).NewSession()

	first := sess.Resolve(context.Background(), "47401", ResolveOptions{Enabled: true})
	require.Equal(t, PhaseFresh, first.Final().Phase)
	require.Equal(t, 1, backend.calls())

	second := sess.Resolve(context.Background(), "47401", ResolveOptions{Enabled: true})
	final := second.Final()

	assert.Equal(t, PhaseFresh, final.Phase)
	require.Len(t, final.Data, 1)
	assert.Equal(t, 1, backend.calls(), "replay must not refetch")
}

func TestResolve_ForceKeyBypassesReplay(t *testing.T) {
	backend := &fakeBackend{
		zipScript: []essentials.ZipResult{
			{Data: []Politician{{LastName: "Young"}}, Status: StatusFresh},
			{Data: []Politician{{LastName: "Young"}}, Status: StatusFresh},
		},
	}
	sess := newTestService(backend, fastPolicy(), nil).NewSession()

	first := sess.Resolve(context.Background(), "47401", ResolveOptions{Enabled: true})
	require.Equal(t, PhaseFresh, first.Final().Phase)

	second := sess.Resolve(context.Background(), "47401", ResolveOptions{Enabled: true, ForceKey: "retry-1"})
	require.Equal(t, PhaseFresh, second.Final().Phase)

	assert.Equal(t, 2, backend.calls(), "a new force key starts a real sequence")
}

func TestRetryPolicy_Backoff(t *testing.T) {
	policy := RetryPolicy{
		RetryAfterFloor: 2 * time.Second,
		RetryAfterCeil:  8 * time.Second,
		DefaultRetry:    3 * time.Second,
		JitterMax:       500 * time.Millisecond,
	}

	tests := []struct {
		name       string
		retryAfter time.Duration
		min        time.Duration
		max        time.Duration
	}{
		{"Zero uses the default interval", 0, 3 * time.Second, 3*time.Second + 500*time.Millisecond},
		{"Below floor clamps up", time.Second, 2 * time.Second, 2*time.Second + 500*time.Millisecond},
		{"Above ceiling clamps down", time.Minute, 8 * time.Second, 8*time.Second + 500*time.Millisecond},
		{"In range passes through", 5 * time.Second, 5 * time.Second, 5*time.Second + 500*time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				d := policy.backoff(tt.retryAfter)
				assert.GreaterOrEqual(t, d, tt.min)
				assert.LessOrEqual(t, d, tt.max)
			}
		})
	}
}
