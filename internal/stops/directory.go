package stops

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/rometsch/tue-bus-monitor/internal/models"
)

// ErrUnknownStop indicates a stop id that is not part of the directory
var ErrUnknownStop = errors.New("unknown stop identifier")

// bundledData is the stop list extracted from https://www.swtue.de/abfahrt.html
//
//go:embed busstop_data.json
var bundledData []byte

// Directory maps stop ids to their metadata. It is read-only after loading
// and safe for concurrent use.
type Directory struct {
	stops map[string]models.StopMetadata
}

// LoadDefault loads the stop list bundled with the binary
func LoadDefault() (*Directory, error) {
	return Load(bytes.NewReader(bundledData))
}

// LoadFile loads a stop list from a JSON file
func LoadFile(path string) (*Directory, error) {
	// #nosec G304 -- path is supplied by the user on the command line
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stop data: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Load parses a JSON array of stop records
func Load(r io.Reader) (*Directory, error) {
	var records []models.StopMetadata
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse stop data: %w", err)
	}

	v := validator.New()
	d := &Directory{stops: make(map[string]models.StopMetadata, len(records))}
	for i, rec := range records {
		if err := v.Struct(rec); err != nil {
			return nil, fmt.Errorf("invalid stop record %d: %w", i, err)
		}
		if _, dup := d.stops[rec.ID]; dup {
			return nil, fmt.Errorf("duplicate stop id %q", rec.ID)
		}
		d.stops[rec.ID] = rec
	}

	return d, nil
}

// Resolve returns the metadata for a stop id
func (d *Directory) Resolve(id string) (models.StopMetadata, error) {
	meta, ok := d.stops[id]
	if !ok {
		return models.StopMetadata{}, fmt.Errorf("%w: %q", ErrUnknownStop, id)
	}
	return meta, nil
}

// Len returns the number of known stops
func (d *Directory) Len() int {
	return len(d.stops)
}

// All returns every known stop ordered by id
func (d *Directory) All() []models.StopMetadata {
	all := make([]models.StopMetadata, 0, len(d.stops))
	for _, s := range d.stops {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
