package formatter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/subwaylabs/subway-arrivals/arrivals"
	"github.com/subwaylabs/subway-arrivals/formatter"
)

func TestWriteArrivalsTable(t *testing.T) {
	var buf bytes.Buffer
	formatter.WriteArrivalsTable(&buf, sampleRecords())
	out := buf.String()

	// 16:05 and 16:30 UTC on 2024-07-15 are 12:05 PM and 12:30 PM in New York.
	for _, want := range []string{
		"Train", "Arriving In", "Destination Arrival Time",
		"South Ferry", "12:05:00 PM", "12:30:00 PM", "5 min", "On Time", "123456_1..S03R",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("expected header plus one row, got %d lines:\n%s", len(lines), out)
	}
}

func TestWriteArrivalsTable_NoRecords(t *testing.T) {
	var buf bytes.Buffer
	formatter.WriteArrivalsTable(&buf, nil)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Errorf("expected header only, got %d lines:\n%s", len(lines), buf.String())
	}
}

func TestWriteTripPathTable(t *testing.T) {
	stops := []arrivals.PathStop{
		{StopName: "238 St", Lat: 40.884667, Lon: -73.90087, Arrival: testGeneratedAt + 240, MinutesAway: 4},
		{StopName: "231 St", Lat: 40.878856, Lon: -73.904834, Arrival: testGeneratedAt - 60, MinutesAway: -1},
	}

	var buf bytes.Buffer
	formatter.WriteTripPathTable(&buf, stops)
	out := buf.String()

	for _, want := range []string{"238 St", "4 min", "due", "40.884667", "-73.904834", "12:04:00 PM"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
