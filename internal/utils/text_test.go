package utils

import (
	"testing"

	. "civic/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNotes(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"Literal CRLF", "Line one\r\nLine two", "Line one Line two"},
		{"Escaped newline", `First term.\nSecond term.`, "First term. Second term."},
		{"Escaped CRLF", `Bio.\r\nMore bio.`, "Bio. More bio."},
		{"Escaped tab", `Name:\tValue`, "Name: Value"},
		{"Clean text untouched", "Served since 2019.", "Served since 2019."},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeNotes(tt.in))
		})
	}
}

func TestStripTrailingISODate(t *testing.T) {
	assert.Equal(t, "County Commissioner", StripTrailingISODate("County Commissioner 2024-11-05"))
	assert.Equal(t, "Judge", StripTrailingISODate("Judge 2022-05-03 "))
	assert.Equal(t, "Elected 2024-11-05 to office", StripTrailingISODate("Elected 2024-11-05 to office"))
	assert.Equal(t, "Mayor", StripTrailingISODate("Mayor"))
}

func TestStripRetainSuffix(t *testing.T) {
	assert.Equal(t, "Appellate Court Judge", StripRetainSuffix("Appellate Court Judge (Retain Jane Doe?)"))
	assert.Equal(t, "Supreme Court Justice", StripRetainSuffix("Supreme Court Justice (Retain P. Rivera?)"))
	assert.Equal(t, "Circuit Judge", StripRetainSuffix("Circuit Judge"))
}

func TestCardHeading(t *testing.T) {
	tests := []struct {
		name             string
		pol              Politician
		expectedTitle    string
		expectedSubtitle string
	}{
		{
			name:             "Dash split wins",
			pol:              Politician{OfficeTitle: "Bloomington City Common Council - At Large", ChamberName: "Bloomington City Common Council"},
			expectedTitle:    "Bloomington City Common Council",
			expectedSubtitle: "At Large",
		},
		{
			name:             "District number from dash split",
			pol:              Politician{OfficeTitle: "Council Member - District 3"},
			expectedTitle:    "Council Member",
			expectedSubtitle: "District 3",
		},
		{
			name:             "Chamber with numeric district id",
			pol:              Politician{OfficeTitle: "Senator", ChamberName: "Indiana State Senate", DistrictID: "40"},
			expectedTitle:    "Indiana State Senate",
			expectedSubtitle: "District 40",
		},
		{
			name:             "Geographic district id yields no subtitle",
			pol:              Politician{OfficeTitle: "Senator", ChamberName: "United States Senate", DistrictID: "IN"},
			expectedTitle:    "United States Senate",
			expectedSubtitle: "",
		},
		{
			name:             "Title only",
			pol:              Politician{OfficeTitle: "Mayor"},
			expectedTitle:    "Mayor",
			expectedSubtitle: "",
		},
		{
			name:             "Retain suffix stripped before split",
			pol:              Politician{OfficeTitle: "Appellate Court Judge (Retain Jane Doe?)"},
			expectedTitle:    "Appellate Court Judge",
			expectedSubtitle: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, subtitle := CardHeading(tt.pol)
			assert.Equal(t, tt.expectedTitle, title)
			assert.Equal(t, tt.expectedSubtitle, subtitle)
		})
	}
}
