package snapshot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Lilac-Rose/gametracker/internal/store"
	"github.com/Lilac-Rose/gametracker/internal/websocket"
)

const lastRunKey = "last_snapshot_date"

// Scheduler captures a daily playtime snapshot once the configured UTC hour
// has passed. The last capture date is persisted, so restarts never produce
// a second snapshot for the same day.
type Scheduler struct {
	mu        sync.RWMutex
	snapshots *store.SnapshotStore
	settings  *store.SettingsStore
	hub       *websocket.Hub
	logger    *slog.Logger
	interval  time.Duration
	hour      int
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewScheduler creates a snapshot scheduler that fires at or after the given
// UTC hour each day.
func NewScheduler(snapshots *store.SnapshotStore, settings *store.SettingsStore, hub *websocket.Hub, logger *slog.Logger, hour int) *Scheduler {
	return &Scheduler{
		snapshots: snapshots,
		settings:  settings,
		hub:       hub,
		logger:    logger.With("component", "snapshot"),
		interval:  time.Hour,
		hour:      hour,
	}
}

// Start begins the scheduler loop. A tick also runs immediately, so a server
// that was down at the capture hour catches up on boot.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.tick()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) tick() {
	now := time.Now().UTC()
	if now.Hour() < s.hour {
		return
	}
	s.capture(now.Format("2006-01-02"))
}

func (s *Scheduler) capture(date string) {
	last, err := s.settings.GetDefault(lastRunKey, "")
	if err != nil {
		s.logger.Error("read last snapshot date", "error", err)
		return
	}
	if last == date {
		return
	}

	if err := s.snapshots.Record(date); err != nil {
		s.logger.Error("record snapshot", "date", date, "error", err)
		return
	}
	if err := s.settings.Set(lastRunKey, date); err != nil {
		s.logger.Error("store last snapshot date", "error", err)
		return
	}

	s.hub.Broadcast(websocket.NewMessage(websocket.EntitySnapshot, websocket.ActionCreated, 0, map[string]any{"date": date}))
	s.logger.Info("daily snapshot recorded", "date", date)
}

// CaptureNow records a snapshot for today regardless of the schedule, used by
// the manual snapshot endpoint. It returns the snapshot date.
func (s *Scheduler) CaptureNow() (string, error) {
	date := time.Now().UTC().Format("2006-01-02")
	if err := s.snapshots.Record(date); err != nil {
		return "", err
	}
	if err := s.settings.Set(lastRunKey, date); err != nil {
		return "", err
	}
	s.hub.Broadcast(websocket.NewMessage(websocket.EntitySnapshot, websocket.ActionCreated, 0, map[string]any{"date": date}))
	s.logger.Info("manual snapshot recorded", "date", date)
	return date, nil
}
