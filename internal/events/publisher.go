package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rocketscienceinc/laprace-backend/internal/entity"
)

const (
	subjectPrefix = "laprace.games."

	connectTimeout = 10 * time.Second
	reconnectWait  = 2 * time.Second
	maxReconnects  = 5
)

const (
	EventRollResolved = "roll_resolved"
	EventGameReset    = "game_reset"
	EventGameFinished = "game_finished"
)

// Publisher fans game events out to anyone watching the stream. The game
// loop never depends on a delivery; publishing is fire-and-forget.
type Publisher interface {
	Publish(event string, game *entity.Game) error
	Close()
}

type Event struct {
	Event string       `json:"event"`
	Game  *entity.Game `json:"game"`
}

type natsPublisher struct {
	conn *nats.Conn
}

func Connect(url string) (Publisher, error) {
	opts := []nats.Option{
		nats.Name("laprace-backend"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return &natsPublisher{conn: conn}, nil
}

func (that *natsPublisher) Publish(event string, game *entity.Game) error {
	payload, err := json.Marshal(Event{Event: event, Game: game})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err = that.conn.Publish(subjectPrefix+game.ID, payload); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (that *natsPublisher) Close() {
	that.conn.Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ string, _ *entity.Game) error { return nil }

func (NoopPublisher) Close() {}
