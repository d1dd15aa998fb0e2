package board

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rometsch/tue-bus-monitor/internal/api"
	"github.com/rometsch/tue-bus-monitor/internal/stops"
	"github.com/rometsch/tue-bus-monitor/internal/testutil"
)

// slowFetcher answers later ids sooner so completion order differs from request order
type slowFetcher struct {
	delays  map[string]time.Duration
	running atomic.Int32
	peak    atomic.Int32
}

func (f *slowFetcher) Fetch(ctx context.Context, stopID string) ([]byte, error) {
	n := f.running.Add(1)
	defer f.running.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	select {
	case <-time.After(f.delays[stopID]):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	page := fmt.Sprintf(`<div id="vdfimain"><table><tr>
<td class="linie">%s</td><td class="richtung">to %s</td><td class="abfahrt">1 min</td>
</tr></table></div>`, stopID, stopID)
	return []byte(page), nil
}

func TestRunAll_PreservesOrder(t *testing.T) {
	fetcher := &slowFetcher{delays: map[string]time.Duration{
		"100": 60 * time.Millisecond,
		"200": 40 * time.Millisecond,
		"300": 20 * time.Millisecond,
		"400": 0,
	}}
	svc := NewService(newTestDirectory(t), fetcher, WithWorkers(4))

	ids := []string{"100", "200", "300", "400"}
	outcomes := svc.RunAll(context.Background(), ids)

	testutil.AssertLen(t, outcomes, len(ids))
	for i, o := range outcomes {
		testutil.AssertEqual(t, o.ID, ids[i])
		testutil.AssertTrue(t, o.OK())
		testutil.AssertEqual(t, o.Result.Stop.ID, ids[i])
		testutil.AssertEqual(t, o.Result.Departures[0].Line, ids[i])
	}
}

func TestRunAll_BoundedWorkers(t *testing.T) {
	delays := map[string]time.Duration{}
	ids := []string{}
	for _, id := range []string{"100", "200", "300", "400"} {
		for i := 0; i < 3; i++ {
			delays[id] = 20 * time.Millisecond
			ids = append(ids, id)
		}
	}
	fetcher := &slowFetcher{delays: delays}
	svc := NewService(newTestDirectory(t), fetcher, WithWorkers(2))

	outcomes := svc.RunAll(context.Background(), ids)
	testutil.AssertLen(t, outcomes, len(ids))
	testutil.AssertTrue(t, fetcher.peak.Load() <= 2)
	testutil.AssertTrue(t, fetcher.peak.Load() >= 1)
}

func TestRunAll_DuplicateIDs(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"100": testutil.SampleBoardPage}}
	svc := NewService(newTestDirectory(t), fetcher)

	outcomes := svc.RunAll(context.Background(), []string{"100", "100"})
	testutil.AssertLen(t, outcomes, 2)
	testutil.AssertEqual(t, outcomes[0].ID, "100")
	testutil.AssertEqual(t, outcomes[1].ID, "100")
}

func TestRunAll_Empty(t *testing.T) {
	svc := NewService(newTestDirectory(t), &fakeFetcher{})
	outcomes := svc.RunAll(context.Background(), nil)
	testutil.AssertLen(t, outcomes, 0)
}

func TestRunAll_PerStopFailuresDoNotStopBatch(t *testing.T) {
	ms := testutil.NewBoardServer(map[string]string{
		"100": testutil.SampleBoardPage,
		"300": testutil.SampleNoTablePage,
		"400": testutil.SampleMismatchedPage,
	})
	defer ms.Close()

	client := api.NewClient(api.WithBaseURL(ms.URL))
	svc := NewService(newTestDirectory(t), client, WithWorkers(3))

	ids := []string{"100", "999", "200", "300", "400"}
	outcomes := svc.RunAll(context.Background(), ids)
	testutil.AssertLen(t, outcomes, 5)

	testutil.AssertTrue(t, outcomes[0].OK())
	testutil.AssertLen(t, outcomes[0].Result.Departures, 3)

	testutil.AssertErrorIs(t, outcomes[1].Err, stops.ErrUnknownStop)
	testutil.AssertTrue(t, outcomes[1].Result == nil)

	testutil.AssertErrorIs(t, outcomes[2].Err, api.ErrNotFound)
	testutil.AssertEqual(t, outcomes[2].Result.Stop.Name, "Sand")

	testutil.AssertFalse(t, outcomes[3].OK())
	testutil.AssertEqual(t, outcomes[3].Result.Stop.Name, "Morgenstelle")

	testutil.AssertTrue(t, outcomes[4].OK())
	testutil.AssertLen(t, outcomes[4].Result.Departures, 2)

	// The unknown stop is never requested
	testutil.AssertEqual(t, ms.RequestCount(), 4)
}

func TestRunAll_Cancelled(t *testing.T) {
	fetcher := &slowFetcher{delays: map[string]time.Duration{
		"100": time.Minute,
		"200": time.Minute,
	}}
	svc := NewService(newTestDirectory(t), fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	var outcomes []Outcome
	go func() {
		defer wg.Done()
		outcomes = svc.RunAll(ctx, []string{"100", "200"})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	wg.Wait()

	testutil.AssertLen(t, outcomes, 2)
	for _, o := range outcomes {
		testutil.AssertErrorIs(t, o.Err, context.Canceled)
	}
}
