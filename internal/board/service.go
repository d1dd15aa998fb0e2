package board

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"github.com/rometsch/tue-bus-monitor/internal/models"
	"github.com/rometsch/tue-bus-monitor/internal/parser"
)

// Fetcher downloads the departure board page of a stop
type Fetcher interface {
	Fetch(ctx context.Context, stopID string) ([]byte, error)
}

// Resolver looks up stop metadata by id
type Resolver interface {
	Resolve(id string) (models.StopMetadata, error)
}

// Service builds departure boards for stops
type Service struct {
	stops   Resolver
	fetcher Fetcher
	workers int
}

// Option configures the Service
type Option func(*Service)

// WithWorkers limits the number of stops processed in parallel.
// Values below one fall back to the number of usable CPUs.
func WithWorkers(n int) Option {
	return func(s *Service) {
		s.workers = n
	}
}

// NewService creates a new board service
func NewService(stops Resolver, fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		stops:   stops,
		fetcher: fetcher,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}

	return s
}

// Workers returns the size of the worker pool
func (s *Service) Workers() int {
	return s.workers
}

// Aggregate fetches and parses the board of one stop and attaches its metadata.
//
// An unknown stop returns a nil result before any request is made. When the
// page cannot be fetched or parsed, the result still carries the stop's
// metadata with no departures alongside the error.
func (s *Service) Aggregate(ctx context.Context, stopID string) (*models.StopResult, error) {
	meta, err := s.stops.Resolve(stopID)
	if err != nil {
		return nil, err
	}

	result := &models.StopResult{
		Stop:       meta,
		Departures: []models.Departure{},
	}

	page, err := s.fetcher.Fetch(ctx, stopID)
	if err != nil {
		return result, fmt.Errorf("failed to fetch departures: %w", err)
	}

	deps, err := parser.Parse(bytes.NewReader(page))
	if err != nil {
		return result, fmt.Errorf("failed to read departures: %w", err)
	}

	result.Departures = deps
	return result, nil
}
