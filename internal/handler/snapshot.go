package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/Lilac-Rose/gametracker/internal/model"
	"github.com/Lilac-Rose/gametracker/internal/snapshot"
	"github.com/Lilac-Rose/gametracker/internal/store"
)

type SnapshotHandler struct {
	snapshotStore *store.SnapshotStore
	scheduler     *snapshot.Scheduler
}

func NewSnapshotHandler(ss *store.SnapshotStore, sched *snapshot.Scheduler) *SnapshotHandler {
	return &SnapshotHandler{snapshotStore: ss, scheduler: sched}
}

// GetDay returns the per-game hour gains recorded for one calendar day,
// most-played first. Days without a snapshot read as 404 rather than an
// empty list so the client can tell "nothing tracked yet" from "no play".
func (h *SnapshotHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	total, err := h.snapshotStore.GetTotal(date)
	if err != nil {
		log.Printf("failed to get snapshot: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get snapshot"})
		return
	}
	if total == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no snapshot for that date"})
		return
	}

	deltas, err := h.snapshotStore.BreakdownForDate(date)
	if err != nil {
		log.Printf("failed to get snapshot breakdown: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get snapshot breakdown"})
		return
	}
	if deltas == nil {
		deltas = []model.GameHoursDelta{}
	}

	writeJSON(w, http.StatusOK, deltas)
}

// Capture forces a snapshot for today instead of waiting for the scheduler.
func (h *SnapshotHandler) Capture(w http.ResponseWriter, r *http.Request) {
	date, err := h.scheduler.CaptureNow()
	if err != nil {
		log.Printf("failed to capture snapshot: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to capture snapshot"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"date": date})
}
