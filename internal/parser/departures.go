// Package parser extracts departures from swtue.de departure board pages.
//
// The board lists each departure as a table row, but the cells are collected
// as three independent lists (line, destination, time) by their class and
// zipped back together by position. When the lists differ in length the
// surplus cells of the longer lists are dropped without notice.
package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rometsch/tue-bus-monitor/internal/models"
	"golang.org/x/net/html"
)

// Markers of the departure board markup
const (
	TableSelector       = "div#vdfimain"
	LineSelector        = "td.linie"
	DestinationSelector = "td.richtung"
	TimeSelector        = "td.abfahrt"
)

// ErrUnexpectedPage indicates a page without the departure board container
var ErrUnexpectedPage = errors.New("unexpected page shape: departure table not found")

// Parse reads a departure board page and returns its departures
func Parse(r io.Reader) ([]models.Departure, error) {
	table, err := ExtractTable(r)
	if err != nil {
		return nil, err
	}
	return ParseDepartures(table), nil
}

// ExtractTable parses the page and returns the departure board container
func ExtractTable(r io.Reader) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	table := doc.Find(TableSelector).First()
	if table.Length() == 0 {
		return nil, ErrUnexpectedPage
	}
	return table, nil
}

// ParseDepartures zips the line, destination and time cells of the table into departures
func ParseDepartures(table *goquery.Selection) []models.Departure {
	lines := cellTexts(table.Find(LineSelector))
	dests := cellTexts(table.Find(DestinationSelector))
	times := cellTexts(table.Find(TimeSelector))

	n := min(len(lines), len(dests), len(times))
	departures := make([]models.Departure, 0, n)
	for i := 0; i < n; i++ {
		departures = append(departures, models.Departure{
			Line:        lines[i],
			Destination: dests[i],
			Time:        times[i],
		})
	}
	return departures
}

func cellTexts(cells *goquery.Selection) []string {
	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, cellText(cell))
	})
	return texts
}

// cellText returns the trimmed text of the cell's first child node, or "" for an empty cell
func cellText(cell *goquery.Selection) string {
	first := cell.Contents().First()
	if first.Length() == 0 {
		return ""
	}
	if node := first.Get(0); node.Type == html.TextNode {
		return strings.TrimSpace(node.Data)
	}
	return strings.TrimSpace(first.Text())
}
