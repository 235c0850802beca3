// Package events publishes activity events (follows, likes, comments,
// posts) to Kafka for downstream consumers such as a notification service.
// Publishing is best-effort; the request path never fails on broker errors.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	kgo "github.com/segmentio/kafka-go"
)

const (
	UserFollowed   = "user.followed"
	UserUnfollowed = "user.unfollowed"
	PostCreated    = "post.created"
	PostLiked      = "post.liked"
	PostCommented  = "post.commented"
)

type Event struct {
	Type       string    `json:"type"`
	ActorID    string    `json:"actor_id"`
	SubjectID  string    `json:"subject_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type kafkaPublisher struct {
	w *kgo.Writer
}

// NewKafka creates a publisher over the given comma-separated broker list.
func NewKafka(brokers, topic string) Publisher {
	addrs := strings.Split(brokers, ",")
	for i := range addrs {
		addrs[i] = strings.TrimSpace(addrs[i])
	}
	w := &kgo.Writer{
		Addr:         kgo.TCP(addrs...),
		Topic:        topic,
		Balancer:     &kgo.LeastBytes{},
		RequiredAcks: kgo.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &kafkaPublisher{w: w}
}

func (p *kafkaPublisher) Publish(ctx context.Context, e Event) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kgo.Message{
		Key:   []byte(e.ActorID),
		Value: b,
		Time:  e.OccurredAt,
	})
}

func (p *kafkaPublisher) Close() error { return p.w.Close() }

type nopPublisher struct{}

// NewNop returns the publisher used when no broker is configured.
func NewNop() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, Event) error { return nil }
func (nopPublisher) Close() error                         { return nil }
