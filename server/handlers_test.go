package server_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/subwaylabs/subway-arrivals/arrivals"
	"github.com/subwaylabs/subway-arrivals/config"
	"github.com/subwaylabs/subway-arrivals/fetch"
	"github.com/subwaylabs/subway-arrivals/formatter"
	"github.com/subwaylabs/subway-arrivals/gtfs"
	"github.com/subwaylabs/subway-arrivals/server"
)

func buildScheduleZip(t *testing.T, tables map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range tables {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip member %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write zip member %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func newTestIndex(t *testing.T) *gtfs.ScheduleIndex {
	t.Helper()
	data := buildScheduleZip(t, map[string]string{
		"routes.txt": "route_id,route_short_name,route_long_name\n" +
			"1,1,Broadway - 7 Avenue Local\n" +
			"L,L,14 St-Canarsie Local\n",
		"trips.txt": "route_id,service_id,trip_id,trip_headsign\n" +
			"1,Weekday,123456_1..S03R,South Ferry\n" +
			"1,Weekday,654321_1..S03R,South Ferry\n",
		"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
			"101,Van Cortlandt Park-242 St,40.889248,-73.898583\n" +
			"101N,Van Cortlandt Park-242 St,40.889248,-73.898583\n" +
			"101S,Van Cortlandt Park-242 St,40.889248,-73.898583\n" +
			"103N,238 St,40.884667,-73.90087\n" +
			"103S,238 St,40.884667,-73.90087\n" +
			"104,231 St,40.878856,-73.904834\n" +
			"104N,231 St,40.878856,-73.904834\n" +
			"104S,231 St,40.878856,-73.904834\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"123456_1..S03R,06:00:00,06:00:30,101S,1\n" +
			"123456_1..S03R,06:03:00,06:03:30,103S,2\n" +
			"123456_1..S03R,06:05:00,06:05:30,104S,3\n",
	})
	idx, err := gtfs.NewScheduleIndexFromBytes(data)
	if err != nil {
		t.Fatalf("build schedule index: %v", err)
	}
	return idx
}

// feedPayload builds a realtime feed with two southbound trains: the one in
// feed position one arrives later than the one in feed position two.
func feedPayload(t *testing.T, base int64) []byte {
	t.Helper()
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(uint64(base)),
		},
		Entity: []*gtfsrtpb.FeedEntity{
			{
				Id: proto.String("1"),
				TripUpdate: &gtfsrtpb.TripUpdate{
					Trip: &gtfsrtpb.TripDescriptor{
						TripId:  proto.String("123456_1..S03R"),
						RouteId: proto.String("1"),
					},
					StopTimeUpdate: []*gtfsrtpb.TripUpdate_StopTimeUpdate{
						{StopId: proto.String("101S"), Arrival: &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(base + 600)}},
						{StopId: proto.String("104S"), Arrival: &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(base + 900)}},
					},
				},
			},
			{
				Id: proto.String("2"),
				TripUpdate: &gtfsrtpb.TripUpdate{
					Trip: &gtfsrtpb.TripDescriptor{
						TripId:  proto.String("654321_1..S03R"),
						RouteId: proto.String("1"),
					},
					StopTimeUpdate: []*gtfsrtpb.TripUpdate_StopTimeUpdate{
						{StopId: proto.String("101S"), Arrival: &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(base + 300)}},
						{StopId: proto.String("104S"), Arrival: &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(base + 720)}},
					},
				},
			},
		},
	}
	data, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("marshal test feed: %v", err)
	}
	return data
}

type stubFetcher struct {
	payload []byte
	err     error
	calls   int
}

func (f *stubFetcher) Get(location string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func testConfig(ttlSec int) config.AppConfig {
	return config.AppConfig{
		Server: config.ServerConfig{Port: 8090, SnapshotTTLSec: ttlSec},
		Feeds: []config.FeedGroup{
			{Name: "1-2-3", URL: "http://feeds.test/gtfs"},
			{Name: "L", URL: "http://feeds.test/gtfs-l"},
		},
	}
}

func newTestServer(t *testing.T, ttlSec int, f server.Fetcher) *server.Server {
	t.Helper()
	return server.NewServer(testConfig(ttlSec), newTestIndex(t), f)
}

func doGET(t *testing.T, s *server.Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func arrivalsTarget(line, from, to, sort string) string {
	q := url.Values{"line": {line}, "from": {from}, "to": {to}}
	if sort != "" {
		q.Set("sort", sort)
	}
	return "/api/arrivals?" + q.Encode()
}

func TestLinesEndpoint(t *testing.T) {
	s := newTestServer(t, 30, &stubFetcher{})
	rec := doGET(t, s, "/api/lines")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var resp formatter.LinesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"1-2-3", "L"}
	if len(resp.Lines) != len(want) || resp.Lines[0] != want[0] || resp.Lines[1] != want[1] {
		t.Errorf("expected lines %v, got %v", want, resp.Lines)
	}
}

func TestStopsEndpoint(t *testing.T) {
	s := newTestServer(t, 30, &stubFetcher{})
	rec := doGET(t, s, "/api/stops?line=1-2-3")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp formatter.StopsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Line != "1-2-3" {
		t.Errorf("expected line 1-2-3, got %s", resp.Line)
	}
	want := []string{"231 St", "238 St", "Van Cortlandt Park-242 St"}
	if len(resp.Stops) != len(want) {
		t.Fatalf("expected %d stops, got %d", len(want), len(resp.Stops))
	}
	for i, name := range want {
		if resp.Stops[i].Name != name {
			t.Errorf("stop %d: expected %s, got %s", i, name, resp.Stops[i].Name)
		}
	}
}

func TestStopsEndpoint_CanonicalizesLabel(t *testing.T) {
	s := newTestServer(t, 30, &stubFetcher{})
	rec := doGET(t, s, "/api/stops?line=l")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for case-insensitive label, got %d", rec.Code)
	}
	var resp formatter.StopsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Line != "L" {
		t.Errorf("expected canonical label L, got %s", resp.Line)
	}
	if resp.Stops == nil || len(resp.Stops) != 0 {
		t.Errorf("expected empty stop list for a line with no scheduled trips, got %v", resp.Stops)
	}
}

func TestStopsEndpoint_Validation(t *testing.T) {
	s := newTestServer(t, 30, &stubFetcher{})

	rec := doGET(t, s, "/api/stops")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing line, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "You must provide a line.") {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}

	rec = doGET(t, s, "/api/stops?line=Q")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown line, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No such line: Q.") {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}
}

func TestArrivalsEndpoint(t *testing.T) {
	base := time.Now().Unix()
	s := newTestServer(t, 30, &stubFetcher{payload: feedPayload(t, base)})
	rec := doGET(t, s, arrivalsTarget("1-2-3", "Van Cortlandt Park-242 St", "231 St", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp formatter.ArrivalsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(resp.Records))
	}
	if resp.Records[0].TripID != "123456_1..S03R" {
		t.Errorf("expected feed order by default, got %s first", resp.Records[0].TripID)
	}
	if resp.Records[0].StartArrival != base+600 || resp.Records[0].EndArrival != base+900 {
		t.Errorf("unexpected arrivals: %+v", resp.Records[0])
	}
	if resp.Records[0].From != "Van Cortlandt Park-242 St" || resp.Records[0].To != "231 St" {
		t.Errorf("unexpected endpoints: %+v", resp.Records[0])
	}
	if resp.Warning != "" {
		t.Errorf("expected no warning with records present, got %q", resp.Warning)
	}
}

func TestArrivalsEndpoint_SortSoonest(t *testing.T) {
	base := time.Now().Unix()
	s := newTestServer(t, 30, &stubFetcher{payload: feedPayload(t, base)})
	rec := doGET(t, s, arrivalsTarget("1-2-3", "Van Cortlandt Park-242 St", "231 St", "soonest"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp formatter.ArrivalsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Records) != 2 || resp.Records[0].TripID != "654321_1..S03R" {
		t.Errorf("expected the sooner train first, got %+v", resp.Records)
	}

	rec = doGET(t, s, arrivalsTarget("1-2-3", "Van Cortlandt Park-242 St", "231 St", "latest"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unsupported sort, got %d", rec.Code)
	}
}

func TestArrivalsEndpoint_NoResults(t *testing.T) {
	base := time.Now().Unix()
	s := newTestServer(t, 30, &stubFetcher{payload: feedPayload(t, base)})

	// Reversed direction: the 231 St arrival is after the Van Cortlandt one.
	rec := doGET(t, s, arrivalsTarget("1-2-3", "231 St", "Van Cortlandt Park-242 St", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp formatter.ArrivalsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Records) != 0 {
		t.Errorf("expected no records, got %d", len(resp.Records))
	}
	if resp.Warning != arrivals.NoResultsWarning {
		t.Errorf("expected the no-results warning, got %q", resp.Warning)
	}
	if !strings.Contains(rec.Body.String(), `"records":[]`) {
		t.Errorf("expected an empty records array, got %s", rec.Body.String())
	}
}

func TestArrivalsEndpoint_UnknownStation(t *testing.T) {
	base := time.Now().Unix()
	s := newTestServer(t, 30, &stubFetcher{payload: feedPayload(t, base)})
	rec := doGET(t, s, arrivalsTarget("1-2-3", "Narnia", "231 St", ""))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "not found in the schedule") {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}
}

func TestArrivalsEndpoint_MissingParams(t *testing.T) {
	s := newTestServer(t, 30, &stubFetcher{})

	rec := doGET(t, s, "/api/arrivals?line=1-2-3&to=231+St")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing from, got %d", rec.Code)
	}
	rec = doGET(t, s, "/api/arrivals?line=1-2-3&from=231+St")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing to, got %d", rec.Code)
	}
}

func TestArrivalsEndpoint_FetchFailure(t *testing.T) {
	s := newTestServer(t, 30, &stubFetcher{
		err: &fetch.FetchError{URL: "http://feeds.test/gtfs", StatusCode: 503},
	})
	rec := doGET(t, s, arrivalsTarget("1-2-3", "Van Cortlandt Park-242 St", "231 St", ""))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for an upstream failure, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestArrivalsEndpoint_MalformedFeed(t *testing.T) {
	s := newTestServer(t, 30, &stubFetcher{payload: []byte("not a protobuf message")})
	rec := doGET(t, s, arrivalsTarget("1-2-3", "Van Cortlandt Park-242 St", "231 St", ""))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for a malformed feed, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSnapshotReuseAcrossRequests(t *testing.T) {
	base := time.Now().Unix()
	f := &stubFetcher{payload: feedPayload(t, base)}
	s := newTestServer(t, 30, f)

	rec := doGET(t, s, arrivalsTarget("1-2-3", "Van Cortlandt Park-242 St", "231 St", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("arrivals request failed: %d %s", rec.Code, rec.Body.String())
	}

	// The drill-down must see the same snapshot the arrivals came from.
	rec = doGET(t, s, "/api/trip-path?line=1-2-3&trip=123456_1..S03R")
	if rec.Code != http.StatusOK {
		t.Fatalf("trip-path request failed: %d %s", rec.Code, rec.Body.String())
	}
	var path formatter.TripPathResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &path); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(path.Stops) != 2 {
		t.Fatalf("expected 2 path stops, got %d", len(path.Stops))
	}
	if path.Stops[0].StopName != "Van Cortlandt Park-242 St" || path.Stops[1].StopName != "231 St" {
		t.Errorf("unexpected path stops: %+v", path.Stops)
	}

	rec = doGET(t, s, arrivalsTarget("1-2-3", "Van Cortlandt Park-242 St", "231 St", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("second arrivals request failed: %d", rec.Code)
	}

	if f.calls != 1 {
		t.Errorf("expected a single upstream fetch across requests within the TTL, got %d", f.calls)
	}
}

func TestSnapshotReuseDisabled(t *testing.T) {
	base := time.Now().Unix()
	f := &stubFetcher{payload: feedPayload(t, base)}
	s := newTestServer(t, 0, f)

	for i := 0; i < 2; i++ {
		rec := doGET(t, s, arrivalsTarget("1-2-3", "Van Cortlandt Park-242 St", "231 St", ""))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d failed: %d", i, rec.Code)
		}
	}
	if f.calls != 2 {
		t.Errorf("expected one fetch per request with a zero TTL, got %d", f.calls)
	}
}

func TestTripPathEndpoint_AbsentTrip(t *testing.T) {
	base := time.Now().Unix()
	s := newTestServer(t, 30, &stubFetcher{payload: feedPayload(t, base)})
	rec := doGET(t, s, "/api/trip-path?line=1-2-3&trip=ghost")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for an absent trip, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"stops":[]`) {
		t.Errorf("expected an empty stops array, got %s", rec.Body.String())
	}
}

func TestTripPathEndpoint_MissingTrip(t *testing.T) {
	s := newTestServer(t, 30, &stubFetcher{})
	rec := doGET(t, s, "/api/trip-path?line=1-2-3")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing trip ID, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	base := time.Now().Unix()
	s := newTestServer(t, 30, &stubFetcher{payload: feedPayload(t, base)})

	rec := doGET(t, s, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var before struct {
		Status              string `json:"status"`
		LatestSnapshotEpoch int64  `json:"latest_snapshot_epoch"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &before); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if before.Status != "ok" {
		t.Errorf("expected status ok, got %s", before.Status)
	}
	if before.LatestSnapshotEpoch != 0 {
		t.Errorf("expected zero epoch before any fetch, got %d", before.LatestSnapshotEpoch)
	}

	doGET(t, s, arrivalsTarget("1-2-3", "Van Cortlandt Park-242 St", "231 St", ""))

	rec = doGET(t, s, "/api/health")
	var after struct {
		LatestSnapshotEpoch int64 `json:"latest_snapshot_epoch"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if after.LatestSnapshotEpoch < base {
		t.Errorf("expected the health epoch to track the snapshot, got %d", after.LatestSnapshotEpoch)
	}
}
