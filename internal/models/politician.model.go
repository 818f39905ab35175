package models

// DistrictType is the backend's enum for an office's jurisdiction level.
type DistrictType string

const (
	NationalUpper DistrictType = "NATIONAL_UPPER"
	NationalLower DistrictType = "NATIONAL_LOWER"
	NationalExec  DistrictType = "NATIONAL_EXEC"
	StateUpper    DistrictType = "STATE_UPPER"
	StateLower    DistrictType = "STATE_LOWER"
	StateExec     DistrictType = "STATE_EXEC"
	Local         DistrictType = "LOCAL"
	LocalExec     DistrictType = "LOCAL_EXEC"
	County        DistrictType = "COUNTY"
	School        DistrictType = "SCHOOL"
	Judicial      DistrictType = "JUDICIAL"
)

// VacantName is the sentinel first name the backend uses for an empty
// seat. Valid on the wire, never displayed.
const VacantName = "VACANT"

type PoliticianImage struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Politician is one officeholder or candidate as served by the remote
// backend. Field names follow the backend's wire format.
type Politician struct {
	ID                string            `json:"id"`
	ExternalID        string            `json:"external_id,omitempty"`
	FirstName         string            `json:"first_name"`
	LastName          string            `json:"last_name"`
	PreferredName     string            `json:"preferred_name,omitempty"`
	Party             string            `json:"party,omitempty"`
	DistrictType      DistrictType      `json:"district_type"`
	OfficeTitle       string            `json:"office_title,omitempty"`
	ChamberName       string            `json:"chamber_name,omitempty"`
	ChamberNameFormal string            `json:"chamber_name_formal,omitempty"`
	GovernmentName    string            `json:"government_name,omitempty"`
	RepresentingState string            `json:"representing_state,omitempty"`
	RepresentingCity  string            `json:"representing_city,omitempty"`
	DistrictID        string            `json:"district_id,omitempty"`
	DistrictLabel     string            `json:"district_label,omitempty"`
	IsElected         bool              `json:"is_elected"`
	IsCandidate       bool              `json:"is_candidate"`
	ElectionDate      string            `json:"election_date,omitempty"`
	ElectionName      string            `json:"election_name,omitempty"`
	PhotoOriginURL    string            `json:"photo_origin_url,omitempty"`
	Images            []PoliticianImage `json:"images,omitempty"`
	Notes             string            `json:"notes,omitempty"`
}

// Vacant reports whether this record denotes an empty seat.
func (p Politician) Vacant() bool {
	return p.FirstName == VacantName
}

// DataStatus is the backend's freshness signal, carried in the
// X-Data-Status header for ZIP fetches and the status body field for
// searches.
type DataStatus string

const (
	StatusFresh      DataStatus = "fresh"
	StatusStale      DataStatus = "stale"
	StatusWarmed     DataStatus = "warmed"
	StatusNoGeofence DataStatus = "no-geofence-data"
)

// Terminal reports whether the status means data is ready to render.
func (s DataStatus) Terminal() bool {
	switch s {
	case StatusFresh, StatusStale, StatusWarmed:
		return true
	}
	return false
}
