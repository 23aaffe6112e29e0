package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	subwayvalidator "github.com/theoremus-urban-solutions/subway-validator"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func printConsole(out io.Writer, result *subwayvalidator.CityResult) {
	r := result.Report
	fmt.Fprintln(out, headingStyle.Render(fmt.Sprintf("%s — validation report", r.CityName)))
	fmt.Fprintf(out, "Stations:     %d found / %d expected\n", r.Stations.Found, r.Stations.Expected)
	if r.Interchanges.Expected > 0 || r.Interchanges.Found > 0 {
		fmt.Fprintf(out, "Interchanges: %d found / %d expected\n", r.Interchanges.Found, r.Interchanges.Expected)
	}
	for name, c := range r.Lines {
		fmt.Fprintf(out, "Lines[%s]:    %d found / %d expected\n", name, c.Found, c.Expected)
	}
	fmt.Fprintf(out, "Unused entrances: %d\n\n", r.UnusedEntrances)

	fmt.Fprintln(out, headingStyle.Render("Diagnostics"))
	for _, d := range r.Diagnostics {
		switch d.Severity {
		case "ERROR":
			fmt.Fprintln(out, errorStyle.Render("ERROR   "+d.Message))
		case "WARNING":
			fmt.Fprintln(out, warningStyle.Render("WARNING "+d.Message))
		default:
			fmt.Fprintln(out, noticeStyle.Render("NOTICE  "+d.Message))
		}
	}

	fmt.Fprintf(out, "\n%d errors, %d warnings, %d notices\n",
		r.Counts.Errors, r.Counts.Warnings, r.Counts.Notices)

	if r.IsGood {
		fmt.Fprintln(out, goodStyle.Render("PASSED"))
	} else {
		fmt.Fprintln(out, badStyle.Render("FAILED"))
	}
}
