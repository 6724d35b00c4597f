package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/subwaylabs/subway-arrivals/arrivals"
	"github.com/subwaylabs/subway-arrivals/config"
	"github.com/subwaylabs/subway-arrivals/fetch"
	"github.com/subwaylabs/subway-arrivals/formatter"
	"github.com/subwaylabs/subway-arrivals/gtfs"
	"github.com/subwaylabs/subway-arrivals/gtfsrt"
	"github.com/subwaylabs/subway-arrivals/internal"
	"github.com/subwaylabs/subway-arrivals/server"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (optional)")
	line := flag.String("line", "", "feed-group label, e.g. 1-2-3 or L (default: first configured)")
	from := flag.String("from", "", "start station name")
	to := flag.String("to", "", "end station name")
	trip := flag.String("trip", "", "trip ID to show the predicted path for")
	sortOrder := flag.String("sort", "", "record order: empty keeps feed order, soonest sorts by next arrival")
	format := flag.String("format", "table", "table|json")
	staticCache := flag.String("staticCache", "", "path for the serialized schedule index (overrides config)")
	serve := flag.Bool("serve", false, "start the HTTP API instead of a oneshot lookup")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	internal.InitLogging()

	if *format != "table" && *format != "json" {
		log.Fatalf("unsupported format %q", *format)
	}
	if *sortOrder != "" && *sortOrder != "soonest" {
		log.Fatalf("unsupported sort %q", *sortOrder)
	}

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *staticCache != "" {
		cfg.Static.CachePath = *staticCache
	}

	client := fetch.NewClient(time.Duration(cfg.HTTP.TimeoutMS) * time.Millisecond)

	static, err := loadScheduleIndex(cfg, client)
	if err != nil {
		log.Fatalf("load schedule: %v", err)
	}

	if *serve {
		srv := server.NewServer(cfg, static, client)
		srv.StartServer()
		srv.HandleGracefulShutdown()
		return
	}

	group, ok := cfg.SelectFeedGroup(*line)
	if !ok {
		log.Printf("unknown line %q, using %s", *line, group.Name)
	}

	switch {
	case *from != "" && *to != "":
		runArrivals(static, client, group, *from, *to, *trip, *sortOrder, *format)
	case *trip != "":
		snap := loadSnapshot(client, group)
		printTripPath(static, snap, group, *trip, *format)
	default:
		runStops(static, group, *format)
	}
}

func runStops(static *gtfs.ScheduleIndex, group config.FeedGroup, format string) {
	stops := static.StopsForLine(group.Name)
	if format == "json" {
		fmt.Println(string(formatter.ToJSONIndent(formatter.BuildStopsResponse(group.Name, stops))))
		return
	}
	formatter.WriteStopsTable(os.Stdout, stops)
}

func runArrivals(static *gtfs.ScheduleIndex, client *fetch.Client, group config.FeedGroup, from, to, trip, sortOrder, format string) {
	snap := loadSnapshot(client, group)

	m := arrivals.NewMatcher(static)
	records, err := m.Match(snap, from, to)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if sortOrder == "soonest" {
		arrivals.SortBySoonest(records)
	}
	m.Warnings.LogAll(group.Name)

	if format == "json" {
		fmt.Println(string(formatter.ToJSONIndent(formatter.BuildArrivalsResponse(group.Name, from, to, snap.Now(), records))))
	} else if len(records) == 0 {
		fmt.Println(arrivals.NoResultsWarning)
	} else {
		formatter.WriteArrivalsTable(os.Stdout, records)
	}

	// The drill-down reads the snapshot already fetched above, never a
	// second fetch, so the path always belongs to a train in the listing.
	if trip != "" {
		printTripPath(static, snap, group, trip, format)
	}
}

func printTripPath(static *gtfs.ScheduleIndex, snap *arrivals.Snapshot, group config.FeedGroup, tripID, format string) {
	m := arrivals.NewMatcher(static)
	stops := m.TripPath(snap, tripID)
	m.Warnings.LogAll(group.Name)

	if format == "json" {
		fmt.Println(string(formatter.ToJSONIndent(formatter.BuildTripPathResponse(group.Name, tripID, snap.Now(), stops))))
		return
	}
	if len(stops) == 0 {
		fmt.Printf("No stops reported for trip %s.\n", tripID)
		return
	}
	formatter.WriteTripPathTable(os.Stdout, stops)
}

// loadSnapshot fetches and decodes the group's realtime feed. A fetch
// failure aborts; a malformed payload is reported and degrades to an empty
// snapshot, which downstream renders as no upcoming trains.
func loadSnapshot(client *fetch.Client, group config.FeedGroup) *arrivals.Snapshot {
	raw, err := client.Get(group.URL)
	if err != nil {
		log.Fatalf("fetch realtime feed for %s: %v", group.Name, err)
	}
	feed, err := gtfsrt.Decode(raw)
	if err != nil {
		log.Printf("realtime feed for %s unusable: %v", group.Name, err)
		feed = &gtfsrt.Feed{}
	}
	return arrivals.NewSnapshot(feed, time.Now())
}
