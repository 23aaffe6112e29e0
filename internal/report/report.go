// Package report assembles the per-city ValidationReport returned by the
// public API: expected-vs-found counts, unused-entrance and network
// tallies, and the severity-ranked diagnostic list in insertion order.
package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/theoremus-urban-solutions/subway-validator/internal/diagnostics"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Counts is a found-vs-expected pair for one metric (stations, lines,
// interchanges, ...).
type Counts struct {
	Expected int `json:"expected"`
	Found    int `json:"found"`
}

// NoticeCounts tallies diagnostics by severity.
type NoticeCounts struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Notices  int `json:"notices"`
	Total    int `json:"total"`
}

// ValidationReport is the structured result of validating one city.
type ValidationReport struct {
	RunID            string                  `json:"runId"`
	GeneratedAt      string                  `json:"generatedAt"`
	CityID           int                     `json:"cityId"`
	CityName         string                  `json:"cityName"`
	Stations         Counts                  `json:"stations"`
	Interchanges     Counts                  `json:"interchanges,omitempty"`
	Lines            map[string]Counts       `json:"lines"`
	UnusedEntrances  int                     `json:"unusedEntrances"`
	EntrancesNotInStopAreas int              `json:"entrancesNotInStopAreas"`
	Networks         map[string]int          `json:"networks,omitempty"`
	Counts           NoticeCounts            `json:"counts"`
	Diagnostics      []DiagnosticEntry       `json:"diagnostics"`
	IsGood           bool                    `json:"isGood"`
}

// DiagnosticEntry is one rendered diagnostic line for console/JSON
// display; its message's first letter is title-cased with
// golang.org/x/text/cases.
type DiagnosticEntry struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

var titleCaser = cases.Title(language.English)

// Generator builds ValidationReports for one run (all cities processed by
// it share a RunID).
type Generator struct {
	runID string
}

// NewGenerator returns a Generator with a fresh run id.
func NewGenerator() *Generator {
	return &Generator{runID: uuid.NewString()}
}

// Generate builds the report for one city from its accumulated
// diagnostics and counts.
func (g *Generator) Generate(cityId int, cityName string, diag *diagnostics.Collector,
	stations, interchanges Counts, lines map[string]Counts,
	unusedEntrances, entrancesNotInStopAreas int, networks map[string]int) *ValidationReport {

	severityCounts := diag.Counts()
	entries := make([]DiagnosticEntry, 0, len(diag.All()))
	for _, d := range diag.All() {
		entries = append(entries, DiagnosticEntry{
			Severity: d.Severity.String(),
			Message:  titleCaseFirstWord(d.Text()),
		})
	}

	return &ValidationReport{
		RunID:                   g.runID,
		GeneratedAt:             time.Now().UTC().Format(time.RFC3339),
		CityID:                  cityId,
		CityName:                cityName,
		Stations:                stations,
		Interchanges:            interchanges,
		Lines:                   lines,
		UnusedEntrances:         unusedEntrances,
		EntrancesNotInStopAreas: entrancesNotInStopAreas,
		Networks:                networks,
		Counts: NoticeCounts{
			Errors:   severityCounts[diagnostics.Error],
			Warnings: severityCounts[diagnostics.Warning],
			Notices:  severityCounts[diagnostics.Notice],
			Total:    len(diag.All()),
		},
		Diagnostics: entries,
		IsGood:      !diag.HasErrors(),
	}
}

func titleCaseFirstWord(message string) string {
	if message == "" {
		return message
	}
	r := []rune(message)
	head := titleCaser.String(string(r[0]))
	return head + string(r[1:])
}

// ToJSON renders the report as indented JSON.
func (r *ValidationReport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
