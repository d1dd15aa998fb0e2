package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rometsch/tue-bus-monitor/internal/models"
)

// TableOptions configures the table output
type TableOptions struct {
	Colors *Colors
	Lines  []string // Only show departures of these lines; empty shows all
}

// FilterDepartures keeps the departures whose line is one of lines, in their original order.
// Matching is exact. An empty line set keeps everything.
func FilterDepartures(deps []models.Departure, lines []string) []models.Departure {
	if len(lines) == 0 {
		return deps
	}

	filtered := make([]models.Departure, 0, len(deps))
	for _, d := range deps {
		if d.HasLine(lines) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// RenderStop renders the header and departure table of one stop
func RenderStop(w io.Writer, result models.StopResult, opts TableOptions) {
	c := opts.Colors
	if c == nil {
		c = NewColors(ColorNever)
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", c.Label("Bus stop :"), c.Stop("%s", result.Stop.Name))
	_, _ = fmt.Fprintf(w, "%s %s\n", c.Label("Platform :"), result.Stop.Platform)
	_, _ = fmt.Fprintf(w, "%s %s\n", c.Label("Stop id  :"), c.Muted("%s", result.Stop.ID))

	for _, dep := range FilterDepartures(result.Departures, opts.Lines) {
		// LINE   DESTINATION       TIME
		_, _ = fmt.Fprintf(w, "%-3s   %-15s   %-8s\n", dep.Line, dep.Destination, dep.Time)
	}
}

// RenderStops renders every stop followed by a blank line
func RenderStops(w io.Writer, results []models.StopResult, opts TableOptions) {
	for _, r := range results {
		RenderStop(w, r, opts)
		_, _ = fmt.Fprintln(w)
	}
}

// RenderJSON writes the filtered results as indented JSON
func RenderJSON(w io.Writer, results []models.StopResult, lines []string) error {
	filtered := make([]models.StopResult, 0, len(results))
	for _, r := range results {
		filtered = append(filtered, models.StopResult{
			Stop:       r.Stop,
			Departures: FilterDepartures(r.Departures, lines),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(filtered)
}
