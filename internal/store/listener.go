package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"plumbfam/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

const familiesChannel = "plumbing_families_changes"

// Listener holds one dedicated connection LISTENing on the
// plumbing_families change channel and fans decoded events out to
// subscribers. Subscribers that fall behind are skipped, never waited on.
type Listener struct {
	databaseURL string
	logger      *logrus.Logger

	mu     sync.Mutex
	subs   map[int]chan types.ChangeEvent
	nextID int
}

func NewListener(databaseURL string, logger *logrus.Logger) *Listener {
	return &Listener{
		databaseURL: databaseURL,
		logger:      logger,
		subs:        make(map[int]chan types.ChangeEvent),
	}
}

// Subscribe registers a new subscriber. The returned cancel func tears the
// subscription down; after it returns no further events are delivered.
func (l *Listener) Subscribe() (<-chan types.ChangeEvent, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++

	events := make(chan types.ChangeEvent, 8)
	l.subs[id] = events

	cancel := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if ch, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(ch)
		}
	}

	return events, cancel
}

// Run blocks until ctx is done, reconnecting with a short backoff whenever
// the listening connection drops.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil && ctx.Err() == nil {
			l.logger.WithError(err).Error("change listener disconnected")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+familiesChannel); err != nil {
		return err
	}

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var event types.ChangeEvent
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			l.logger.WithError(err).WithField("payload", notification.Payload).
				Warn("discarding undecodable change notification")
			continue
		}

		l.broadcast(event)
	}
}

func (l *Listener) broadcast(event types.ChangeEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, ch := range l.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
