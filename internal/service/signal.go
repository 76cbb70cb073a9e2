package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/vidstream/vidstream"
)

// eventChannel is the single redis pub/sub channel events travel on.
// Listeners filter client-side by the channel ids they asked for.
const eventChannel = "vidstream:events"

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, event vidstream.Event) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, eventChannel, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Realtime streams events to output until ctx is cancelled. Values read
// from input replace the set of channel ids the caller listens to; an
// empty set means everything.
func (s *SignalService) Realtime(ctx context.Context, input <-chan []string, output chan<- vidstream.Event) {

	pubsub := s.rdb.Subscribe(ctx, eventChannel)
	defer pubsub.Close()

	messages := pubsub.Channel()
	listening := map[string]bool{}

	for {
		select {
		case <-ctx.Done():
			return
		case channels, ok := <-input:
			if !ok {
				return
			}
			listening = map[string]bool{}
			for _, id := range channels {
				listening[id] = true
			}
		case msg, ok := <-messages:
			if !ok {
				return
			}

			var event vidstream.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.ErrorContext(
					ctx, "failed to decode event",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}

			if len(listening) > 0 && !listening[event.ChannelID] {
				continue
			}

			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
