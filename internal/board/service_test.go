package board

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/rometsch/tue-bus-monitor/internal/api"
	"github.com/rometsch/tue-bus-monitor/internal/models"
	"github.com/rometsch/tue-bus-monitor/internal/parser"
	"github.com/rometsch/tue-bus-monitor/internal/stops"
	"github.com/rometsch/tue-bus-monitor/internal/testutil"
)

const testStops = `[
	{"id": "100", "stop": "Hauptbahnhof", "plattform": "Steig A1"},
	{"id": "200", "stop": "Sand", "plattform": "Richtung Stadtmitte"},
	{"id": "300", "stop": "Morgenstelle", "plattform": ""},
	{"id": "400", "stop": "Derendingen", "plattform": "Steig 2"}
]`

// fakeFetcher serves pages from memory and records requested ids
type fakeFetcher struct {
	mu      sync.Mutex
	pages   map[string]string
	errs    map[string]error
	fetched []string
}

func (f *fakeFetcher) Fetch(_ context.Context, stopID string) ([]byte, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, stopID)
	f.mu.Unlock()

	if err, ok := f.errs[stopID]; ok {
		return nil, err
	}
	return []byte(f.pages[stopID]), nil
}

func newTestDirectory(t *testing.T) *stops.Directory {
	t.Helper()
	dir, err := stops.Load(strings.NewReader(testStops))
	testutil.AssertNil(t, err)
	return dir
}

func TestNewService_DefaultWorkers(t *testing.T) {
	svc := NewService(newTestDirectory(t), &fakeFetcher{})
	testutil.AssertEqual(t, svc.Workers(), runtime.GOMAXPROCS(0))

	svc = NewService(newTestDirectory(t), &fakeFetcher{}, WithWorkers(3))
	testutil.AssertEqual(t, svc.Workers(), 3)

	svc = NewService(newTestDirectory(t), &fakeFetcher{}, WithWorkers(-1))
	testutil.AssertEqual(t, svc.Workers(), runtime.GOMAXPROCS(0))
}

func TestAggregate_Success(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"100": testutil.SampleBoardPage}}
	svc := NewService(newTestDirectory(t), fetcher)

	result, err := svc.Aggregate(context.Background(), "100")
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, result.Stop, models.StopMetadata{ID: "100", Name: "Hauptbahnhof", Platform: "Steig A1"})
	testutil.AssertLen(t, result.Departures, 3)
	testutil.AssertEqual(t, result.Departures[0].Line, "5")
}

func TestAggregate_UnknownStop(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"999": testutil.SampleBoardPage}}
	svc := NewService(newTestDirectory(t), fetcher)

	result, err := svc.Aggregate(context.Background(), "999")
	testutil.AssertError(t, err)
	testutil.AssertErrorIs(t, err, stops.ErrUnknownStop)
	testutil.AssertTrue(t, result == nil)
	testutil.AssertLen(t, fetcher.fetched, 0)
}

func TestAggregate_FetchError(t *testing.T) {
	fetchErr := api.NewAPIError(500, "500 Internal Server Error", api.EndpointDepartures)
	fetcher := &fakeFetcher{errs: map[string]error{"200": fetchErr}}
	svc := NewService(newTestDirectory(t), fetcher)

	result, err := svc.Aggregate(context.Background(), "200")
	testutil.AssertError(t, err)
	testutil.AssertErrorIs(t, err, api.ErrServerError)

	// No data for the stop, but its metadata is still known
	testutil.AssertTrue(t, result != nil)
	testutil.AssertEqual(t, result.Stop.Name, "Sand")
	testutil.AssertTrue(t, result.Departures != nil)
	testutil.AssertLen(t, result.Departures, 0)
}

func TestAggregate_UnexpectedPage(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{"300": testutil.SampleNoTablePage}}
	svc := NewService(newTestDirectory(t), fetcher)

	result, err := svc.Aggregate(context.Background(), "300")
	testutil.AssertErrorIs(t, err, parser.ErrUnexpectedPage)
	testutil.AssertEqual(t, result.Stop.Name, "Morgenstelle")
	testutil.AssertLen(t, result.Departures, 0)
}

func TestAggregate_WithAPIClient(t *testing.T) {
	ms := testutil.NewBoardServer(map[string]string{
		"100": testutil.SampleBoardPage,
	})
	defer ms.Close()

	client := api.NewClient(api.WithBaseURL(ms.URL))
	svc := NewService(newTestDirectory(t), client)

	result, err := svc.Aggregate(context.Background(), "100")
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, result.Departures, 3)

	// The mock site has no page for 200
	result, err = svc.Aggregate(context.Background(), "200")
	testutil.AssertErrorIs(t, err, api.ErrNotFound)
	testutil.AssertEqual(t, result.Stop.ID, "200")

	testutil.AssertSliceEqual(t, ms.RequestedStops(), []string{"100", "200"})
}

func TestAggregate_ErrorMessageNamesCause(t *testing.T) {
	fetcher := &fakeFetcher{errs: map[string]error{"100": errors.New("boom")}}
	svc := NewService(newTestDirectory(t), fetcher)

	_, err := svc.Aggregate(context.Background(), "100")
	testutil.AssertContains(t, err.Error(), "failed to fetch departures")
	testutil.AssertContains(t, err.Error(), "boom")
}
