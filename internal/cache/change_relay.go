package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/terraincognita07/wellnest/internal/services"
	"go.uber.org/zap"
)

const ChangeChannel = "wellnest:changes"

// ChangeRelay forwards change events from the in-process hub to a redis
// channel so other processes sharing the database can react to them.
type ChangeRelay struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

func NewChangeRelay(client *redis.Client, logger *zap.Logger) *ChangeRelay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChangeRelay{
		client:  client,
		channel: ChangeChannel,
		logger:  logger,
	}
}

// Attach relays every event published on notifier until the returned func is
// called. Relay failures are logged and never reach the publisher.
func (relay *ChangeRelay) Attach(notifier services.ChangeNotifier) func() {
	return notifier.Subscribe(func(event services.ChangeEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
		defer cancel()
		if err := relay.Publish(ctx, event); err != nil {
			relay.logger.Warn("change relay publish failed",
				zap.String("event_id", event.ID),
				zap.Uint("owner_id", event.OwnerID),
				zap.Error(err),
			)
		}
	})
}

func (relay *ChangeRelay) Publish(ctx context.Context, event services.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	return relay.client.Publish(ctx, relay.channel, payload).Err()
}

// Listen delivers events received on the redis channel to handler until ctx
// is cancelled. Undecodable messages are skipped.
func (relay *ChangeRelay) Listen(ctx context.Context, handler func(services.ChangeEvent)) error {
	subscription := relay.client.Subscribe(ctx, relay.channel)
	defer subscription.Close()

	if _, err := subscription.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", relay.channel, err)
	}

	messages := subscription.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case message, ok := <-messages:
			if !ok {
				return nil
			}
			var event services.ChangeEvent
			if err := json.Unmarshal([]byte(message.Payload), &event); err != nil {
				relay.logger.Warn("skipping malformed change event", zap.Error(err))
				continue
			}
			handler(event)
		}
	}
}
