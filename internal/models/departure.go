package models

// Departure represents a single row of a stop's departure board
type Departure struct {
	Line        string `json:"line"`
	Destination string `json:"destination"`
	Time        string `json:"time"` // Minutes until departure or clock time, as shown on the board
}

// HasLine reports whether the departure serves one of the given lines.
// An empty line set matches every departure.
func (d *Departure) HasLine(lines []string) bool {
	if len(lines) == 0 {
		return true
	}
	for _, l := range lines {
		if d.Line == l {
			return true
		}
	}
	return false
}
