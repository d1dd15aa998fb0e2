package board

import (
	"context"

	"github.com/rometsch/tue-bus-monitor/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/iter"
)

// Outcome is the result of processing one requested stop.
// Result is nil only when the stop id is unknown; on fetch or parse
// failures it holds the stop's metadata with no departures.
type Outcome struct {
	ID     string
	Result *models.StopResult
	Err    error
}

// OK reports whether the stop was processed without error
func (o Outcome) OK() bool {
	return o.Err == nil
}

// RunAll aggregates every stop on a bounded worker pool and blocks until all
// are done. Outcomes are returned in the order of ids, regardless of the
// order in which the requests complete.
func (s *Service) RunAll(ctx context.Context, ids []string) []Outcome {
	mapper := iter.Mapper[string, Outcome]{MaxGoroutines: s.workers}

	return mapper.Map(ids, func(id *string) Outcome {
		result, err := s.Aggregate(ctx, *id)
		if err != nil {
			log.Debug().Err(err).Str("stop", *id).Msg("Stop failed")
		} else {
			log.Debug().Str("stop", *id).Int("departures", len(result.Departures)).Msg("Stop done")
		}
		return Outcome{ID: *id, Result: result, Err: err}
	})
}
