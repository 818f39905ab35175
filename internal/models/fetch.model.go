package models

// FetchPhase is the resolver state machine's current state.
type FetchPhase string

const (
	PhaseIdle    FetchPhase = "idle"
	PhaseLoading FetchPhase = "loading"
	PhaseWarming FetchPhase = "warming"
	PhaseFresh   FetchPhase = "fresh"
	PhaseError   FetchPhase = "error"
)

// FetchState is one observable snapshot of a resolution sequence.
type FetchState struct {
	Data             []Politician `json:"data"`
	Phase            FetchPhase   `json:"phase"`
	Error            string       `json:"error,omitempty"`
	DataStatus       DataStatus   `json:"dataStatus,omitempty"`
	FormattedAddress string       `json:"formattedAddress,omitempty"`
	Attempt          int          `json:"attempt,omitempty"`
}

// QueryKind tags a normalized location query.
type QueryKind int

const (
	QueryInvalid QueryKind = iota
	QueryZip
	QueryFreeForm
)

// LocationQuery is a user query after boundary normalization; the
// ZIP-vs-address decision happens exactly once, here.
type LocationQuery struct {
	Kind QueryKind
	Text string
}

// SearchResult is the unified search response body.
type SearchResult struct {
	Data             []Politician `json:"data"`
	Status           DataStatus   `json:"status"`
	FormattedAddress string       `json:"formattedAddress,omitempty"`
}
