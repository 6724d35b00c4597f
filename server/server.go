package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bluele/gcache"

	"github.com/subwaylabs/subway-arrivals/config"
	"github.com/subwaylabs/subway-arrivals/gtfs"
)

// Fetcher pulls raw bytes for a feed location. fetch.Client implements it;
// tests substitute a stub.
type Fetcher interface {
	Get(location string) ([]byte, error)
}

// Server hosts the JSON API over one immutable schedule index. Handlers run
// concurrently; each request either reuses a cached realtime snapshot within
// its TTL or fetches its own, so no request ever observes a half-updated
// feed.
type Server struct {
	cfg     config.AppConfig
	static  *gtfs.ScheduleIndex
	fetcher Fetcher

	snapshots gcache.Cache
	stopLists map[string][]gtfs.Stop

	mu            sync.Mutex
	lastSnapEpoch int64

	httpServer *http.Server
}

// NewServer wires the API over a loaded schedule index. Stop lists for every
// configured line are resolved once here, since the index never changes
// after load.
func NewServer(cfg config.AppConfig, static *gtfs.ScheduleIndex, fetcher Fetcher) *Server {
	s := &Server{
		cfg:       cfg,
		static:    static,
		fetcher:   fetcher,
		snapshots: newSnapshotCache(time.Duration(cfg.Server.SnapshotTTLSec) * time.Second),
		stopLists: make(map[string][]gtfs.Stop, len(cfg.Feeds)),
	}
	for _, f := range cfg.Feeds {
		s.stopLists[f.Name] = static.StopsForLine(f.Name)
	}
	return s
}

// Handler returns the API routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/lines", s.handleLines)
	mux.HandleFunc("/api/stops", s.handleStops)
	mux.HandleFunc("/api/arrivals", s.handleArrivals)
	mux.HandleFunc("/api/trip-path", s.handleTripPath)
	return mux
}

// StartServer begins serving in the background. Callers follow with
// HandleGracefulShutdown to block until a termination signal.
func (s *Server) StartServer() {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM, then drains
// in-flight requests for up to ten seconds.
func (s *Server) HandleGracefulShutdown() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Printf("server shutdown error: %v", err)
		} else {
			log.Printf("server shut down successfully")
		}
	}
}

func (s *Server) noteSnapshot(epoch int64) {
	s.mu.Lock()
	if epoch > s.lastSnapEpoch {
		s.lastSnapEpoch = epoch
	}
	s.mu.Unlock()
}

func (s *Server) latestSnapshotEpoch() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSnapEpoch
}
