// Package diagnostics accumulates the notice/warning/error messages a city
// validation produces: an ordered, queryable sink of plain messages with
// an optional element reference, rather than a closed notice-code
// catalog. One city is validated synchronously by one goroutine, so no
// locking is needed around the slice.
package diagnostics

import "fmt"

// ElementRef identifies the dataset element a diagnostic is attached to,
// for rendering the "(kind id, \"name\")" suffix. Kind is a display string
// ("node", "way", "relation") rather than elementindex.Kind so this package
// has no dependency on elementindex; elementindex.Element.Ref builds one.
type ElementRef struct {
	Kind string
	Ref  int64
	Name string
}

func (r ElementRef) String() string {
	return fmt.Sprintf("%s %d, %q", r.Kind, r.Ref, r.Name)
}

// Diagnostic is a single accumulated message.
type Diagnostic struct {
	Severity Severity
	Message  string
	Element  *ElementRef
}

// Text renders the message the way it is displayed: the bare message, or
// the message suffixed with "(kind id, \"name\")" when an element is
// attached.
func (d Diagnostic) Text() string {
	if d.Element == nil {
		return d.Message
	}
	return fmt.Sprintf("%s (%s)", d.Message, d.Element.String())
}

// Collector accumulates diagnostics for one city validation run, in
// insertion order, and answers the has_errors validity predicate.
type Collector struct {
	diagnostics []Diagnostic
	hasErrors   bool
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) add(sev Severity, message string, el *ElementRef) {
	c.diagnostics = append(c.diagnostics, Diagnostic{Severity: sev, Message: message, Element: el})
	if sev == Error {
		c.hasErrors = true
	}
}

// Notice records a hint-level message; el may be nil.
func (c *Collector) Notice(message string, el *ElementRef) {
	c.add(Notice, message, el)
}

// Warn records a warning-level message; el may be nil.
func (c *Collector) Warn(message string, el *ElementRef) {
	c.add(Warning, message, el)
}

// Error records an error-level message; el may be nil.
func (c *Collector) Error(message string, el *ElementRef) {
	c.add(Error, message, el)
}

// HasErrors is the validity predicate: a city with any error-level
// diagnostic is invalid.
func (c *Collector) HasErrors() bool {
	return c.hasErrors
}

// All returns every diagnostic in insertion order.
func (c *Collector) All() []Diagnostic {
	return c.diagnostics
}

// BySeverity returns only the diagnostics at the given severity, in
// insertion order.
func (c *Collector) BySeverity(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// Counts returns the number of diagnostics at each severity.
func (c *Collector) Counts() map[Severity]int {
	counts := make(map[Severity]int, 3)
	for _, d := range c.diagnostics {
		counts[d.Severity]++
	}
	return counts
}

// Merge appends another collector's diagnostics in order, preserving
// has_errors. Used when a sub-component (a Route, a StopArea) collects
// into its own Collector before folding into the city-wide one.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	c.diagnostics = append(c.diagnostics, other.diagnostics...)
	if other.hasErrors {
		c.hasErrors = true
	}
}

func (c *Collector) String() string {
	counts := c.Counts()
	return fmt.Sprintf("Collector{errors: %d, warnings: %d, notices: %d}",
		counts[Error], counts[Warning], counts[Notice])
}
