package utils

import (
	"regexp"
	"strings"

	. "civic/internal/models"
)

var (
	escapedBreaksRe   = regexp.MustCompile(`\\r\\n|\\n|\\t`)
	trailingISODateRe = regexp.MustCompile(`\s?\b\d{4}-\d{2}-\d{2}\b\s*$`)
	retainSuffixRe    = regexp.MustCompile(`\s*\(Retain\s+.+?\?\)`)
	digitsOnlyRe      = regexp.MustCompile(`^\d+$`)
)

// NormalizeNotes flattens literal and escaped line breaks in biography
// text into spaces.
func NormalizeNotes(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return escapedBreaksRe.ReplaceAllString(s, " ")
}

// StripTrailingISODate removes a trailing YYYY-MM-DD stamp some data
// providers append to office titles.
func StripTrailingISODate(s string) string {
	return trailingISODateRe.ReplaceAllString(s, "")
}

// StripRetainSuffix removes "(Retain <Name>?)" retention-election
// artifacts from BallotReady titles.
func StripRetainSuffix(s string) string {
	return retainSuffixRe.ReplaceAllString(s, "")
}

// CardHeading splits an office title into a display title and subtitle.
// "Bloomington City Common Council - At Large" becomes title
// "Bloomington City Common Council", subtitle "At Large". The dash
// split wins over chamber_name, which may equal office_title for LOCAL
// records; "District N" subtitles only appear for actual numbered
// districts, never geographic names like "CA" or "UNITED STATES".
func CardHeading(pol Politician) (title, subtitle string) {
	cleanTitle := StripRetainSuffix(pol.OfficeTitle)
	cleanChamber := StripRetainSuffix(pol.ChamberName)

	if idx := strings.LastIndex(cleanTitle, " - "); idx > 0 {
		return cleanTitle[:idx], cleanTitle[idx+3:]
	}

	title = cleanChamber
	if title == "" {
		title = cleanTitle
	}

	if cleanChamber != "" && digitsOnlyRe.MatchString(pol.DistrictID) {
		subtitle = "District " + pol.DistrictID
	}
	return title, subtitle
}
