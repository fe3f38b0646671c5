package clicksink

import (
	"context"
	"encoding/json"
	"time"

	"github.com/linkdeck/core/internal/models"
	redisc "github.com/linkdeck/core/internal/pkg/redis"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	keyPending    = "ld:clicks:pending"
	flushInterval = 2 * time.Second
	flushBatch    = 256
)

// Event is one tracked click waiting to be persisted.
type Event struct {
	UserID  string    `json:"user_id"`
	LinkID  string    `json:"link_id"`
	IP      string    `json:"ip"`
	UA      string    `json:"ua"`
	Referer string    `json:"referer"`
	At      time.Time `json:"at"`
}

// Sink buffers click events in Redis and batch-inserts them off the request
// path. When Redis is unavailable the event is written to the DB directly so
// no click is dropped.
type Sink struct {
	db     *gorm.DB
	rc     *redisc.Client
	logger *zap.Logger
}

func New(db *gorm.DB, rc *redisc.Client, logger *zap.Logger) *Sink {
	return &Sink{db: db, rc: rc, logger: logger.Named("ClickSink")}
}

// Record enqueues one click event.
func (s *Sink) Record(ctx context.Context, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if s.rc != nil {
		if err := s.rc.Raw().LPush(ctx, keyPending, payload).Err(); err == nil {
			return
		}
	}
	s.insert([]Event{ev})
}

// Run drains the buffer until the context is cancelled, with one final flush
// on shutdown.
func (s *Sink) Run(ctx context.Context) {
	if s.rc == nil {
		return
	}
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Flush(context.Background())
			return
		case <-ticker.C:
			s.Flush(ctx)
		}
	}
}

// Flush pops and persists pending events. Returns the number written.
func (s *Sink) Flush(ctx context.Context) int {
	if s.rc == nil {
		return 0
	}
	written := 0
	for {
		raw, err := s.rc.Raw().RPopCount(ctx, keyPending, flushBatch).Result()
		if err == redis.Nil || len(raw) == 0 {
			return written
		}
		if err != nil {
			s.logger.Warn("flush pop failed", zap.Error(err))
			return written
		}

		events := make([]Event, 0, len(raw))
		for _, item := range raw {
			var ev Event
			if err := json.Unmarshal([]byte(item), &ev); err != nil {
				continue
			}
			events = append(events, ev)
		}
		if err := s.insert(events); err != nil {
			// Requeue so a transient DB failure does not lose clicks.
			for _, item := range raw {
				s.rc.Raw().LPush(ctx, keyPending, item)
			}
			s.logger.Warn("flush insert failed", zap.Error(err))
			return written
		}
		written += len(events)
		if len(raw) < flushBatch {
			return written
		}
	}
}

func (s *Sink) insert(events []Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]models.ClickEventModel, 0, len(events))
	for _, ev := range events {
		rows = append(rows, models.ClickEventModel{
			Base:    models.Base{CreatedAt: ev.At, UpdatedAt: ev.At},
			UserID:  ev.UserID,
			LinkID:  ev.LinkID,
			IP:      ev.IP,
			UA:      ev.UA,
			Referer: ev.Referer,
		})
	}
	return s.db.CreateInBatches(rows, flushBatch).Error
}
