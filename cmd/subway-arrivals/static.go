package main

import (
	"errors"
	"log"
	"os"

	"github.com/subwaylabs/subway-arrivals/config"
	"github.com/subwaylabs/subway-arrivals/fetch"
	"github.com/subwaylabs/subway-arrivals/gtfs"
)

// loadScheduleIndex returns the parsed schedule, preferring the serialized
// cache when one is configured. An unreadable cache falls back to the zip
// source and gets rewritten.
func loadScheduleIndex(cfg config.AppConfig, client *fetch.Client) (*gtfs.ScheduleIndex, error) {
	if p := cfg.Static.CachePath; p != "" {
		idx, err := gtfs.DeserializeIndexFromFile(p)
		if err == nil {
			log.Printf("loaded schedule index from cache %s", p)
			return idx, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("schedule cache %s unusable, refetching: %v", p, err)
		}
	}

	raw, err := client.Get(cfg.Static.URL)
	if err != nil {
		return nil, err
	}
	idx, err := gtfs.NewScheduleIndexFromBytes(raw)
	if err != nil {
		return nil, err
	}
	log.Printf("parsed schedule: %d routes, %d trips, %d stops",
		idx.RouteCount(), idx.TripCount(), idx.StopCount())

	if p := cfg.Static.CachePath; p != "" {
		if err := gtfs.SerializeIndexToFile(idx, p); err != nil {
			log.Printf("write schedule cache %s: %v", p, err)
		} else {
			log.Printf("wrote schedule cache %s", p)
		}
	}
	return idx, nil
}
