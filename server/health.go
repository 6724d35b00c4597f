package server

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status              string `json:"status"`
	LatestSnapshotEpoch int64  `json:"latest_snapshot_epoch"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status:              "ok",
		LatestSnapshotEpoch: s.latestSnapshotEpoch(),
	}
	_ = json.NewEncoder(w).Encode(resp)
}
