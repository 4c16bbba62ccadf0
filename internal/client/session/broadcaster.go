package session

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/dmitrijs2005/gastroglobe/internal/client/models"
	"github.com/dmitrijs2005/gastroglobe/internal/logging"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Topic is the watermill topic session changes are published on.
const Topic = "auth_change"

type ChangeType string

const (
	ChangeLogin  ChangeType = "login"
	ChangeLogout ChangeType = "logout"
	ChangeUpdate ChangeType = "update"
)

// Change is one session transition. User is nil after a logout.
type Change struct {
	Type ChangeType   `json:"type"`
	User *models.User `json:"user"`
}

// SubscriberBuffer is how many changes a subscriber may leave unread.
// Further changes are dropped for that subscriber.
const SubscriberBuffer = 16

// Broadcaster fans session changes out to every subscriber in publish
// order. Messages published while nobody listens are dropped.
type Broadcaster struct {
	pubsub *gochannel.GoChannel
	log    logging.Logger
}

func NewBroadcaster(log logging.Logger) *Broadcaster {
	ps := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            SubscriberBuffer,
		BlockPublishUntilSubscriberAck: true,
	}, watermill.NopLogger{})

	return &Broadcaster{pubsub: ps, log: log.With("component", "session")}
}

// Publish hands c to the current subscribers. It returns once each has
// queued or dropped it, so a subscriber that stopped reading never holds
// up the publisher. Errors are logged, not returned.
func (b *Broadcaster) Publish(ctx context.Context, c Change) {
	data, err := json.Marshal(c)
	if err != nil {
		b.log.Error(ctx, "encode session change", "error", err)
		return
	}

	msg := message.NewMessage(uuid.NewString(), data)
	if err := b.pubsub.Publish(Topic, msg); err != nil {
		b.log.Error(ctx, "publish session change", "type", c.Type, "error", err)
		return
	}
	b.log.Debug(ctx, "session change published", "type", c.Type, "message_id", msg.UUID)
}

// Subscribe returns a channel of changes that is closed once ctx is done.
func (b *Broadcaster) Subscribe(ctx context.Context) (<-chan Change, error) {
	msgs, err := b.pubsub.Subscribe(ctx, Topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", Topic, err)
	}

	out := make(chan Change, SubscriberBuffer)
	go func() {
		defer close(out)
		for msg := range msgs {
			var c Change
			if err := json.Unmarshal(msg.Payload, &c); err != nil {
				b.log.Warn(ctx, "drop malformed session change", "message_id", msg.UUID, "error", err)
				msg.Ack()
				continue
			}
			select {
			case out <- c:
			case <-ctx.Done():
			default:
				b.log.Warn(ctx, "subscriber buffer full, session change dropped", "type", c.Type, "message_id", msg.UUID)
			}
			msg.Ack()
		}
	}()
	return out, nil
}

func (b *Broadcaster) Close() error {
	return b.pubsub.Close()
}
