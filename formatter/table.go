package formatter

import (
	"io"

	"github.com/rodaine/table"

	"github.com/subwaylabs/subway-arrivals/arrivals"
	"github.com/subwaylabs/subway-arrivals/gtfs"
	"github.com/subwaylabs/subway-arrivals/utils"
)

// WriteArrivalsTable renders match records as an aligned text table, one row
// per upcoming train. Clock readings are New York local time.
func WriteArrivalsTable(w io.Writer, records []arrivals.Record) {
	tbl := table.New("Train", "From", "To", "Arrival Time", "Arriving In", "Destination Arrival Time", "Status", "Trip ID").WithWriter(w)
	for _, r := range records {
		tbl.AddRow(
			r.Train,
			r.From,
			r.To,
			utils.NYCClockFromUnixSeconds(r.StartArrival),
			utils.PresentableArrival(r.MinutesAway),
			utils.NYCClockFromUnixSeconds(r.EndArrival),
			r.Status,
			r.TripID,
		)
	}
	tbl.Print()
}

// WriteTripPathTable renders a trip's predicted path, one row per stop the
// feed still reports for it.
func WriteTripPathTable(w io.Writer, stops []arrivals.PathStop) {
	tbl := table.New("Stop", "Arrival Time", "Arriving In", "Lat", "Lon").WithWriter(w)
	for _, s := range stops {
		tbl.AddRow(
			s.StopName,
			utils.NYCClockFromUnixSeconds(s.Arrival),
			utils.PresentableArrival(s.MinutesAway),
			s.Lat,
			s.Lon,
		)
	}
	tbl.Print()
}

// WriteStopsTable renders the stations a line serves, in the order the
// schedule resolver returns them.
func WriteStopsTable(w io.Writer, stops []gtfs.Stop) {
	tbl := table.New("Stop", "Stop ID", "Lat", "Lon").WithWriter(w)
	for _, s := range stops {
		tbl.AddRow(s.Name, s.ID, s.Lat, s.Lon)
	}
	tbl.Print()
}
