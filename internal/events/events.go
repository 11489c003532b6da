package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	nats "github.com/nats-io/nats.go"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

type Kind string

const (
	KindUpvoted   Kind = "upvoted"
	KindCommented Kind = "commented"
)

// Event describes a change applied to an article.
type Event struct {
	Kind    Kind           `json:"kind"`
	Name    string         `json:"name"`
	Upvotes int64          `json:"upvotes"`
	Comment *model.Comment `json:"comment,omitempty"`
	At      time.Time      `json:"at"`
}

func Upvoted(a *model.Article) Event {
	return Event{Kind: KindUpvoted, Name: a.Name, Upvotes: a.Upvotes, At: time.Now().UTC()}
}

func Commented(a *model.Article, c model.Comment) Event {
	return Event{Kind: KindCommented, Name: a.Name, Upvotes: a.Upvotes, Comment: &c, At: time.Now().UTC()}
}

func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func (e *Event) Unmarshal(data []byte) error {
	return json.Unmarshal(data, e)
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)

	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Event(nil), r.events...)
}

// NatsPublisher sends events to "<prefix>.<kind>" subjects.
type NatsPublisher struct {
	conn   *nats.Conn
	prefix string
}

func Connect(url, prefix string) (*NatsPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("blog"),
		nats.Timeout(10*time.Second),
		nats.RetryOnFailedConnect(true),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats %s: %w", url, err)
	}

	return NewNatsPublisher(conn, prefix), nil
}

func NewNatsPublisher(conn *nats.Conn, prefix string) *NatsPublisher {
	return &NatsPublisher{conn: conn, prefix: prefix}
}

func Subject(prefix string, kind Kind) string {
	return prefix + "." + string(kind)
}

func (p *NatsPublisher) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := e.Marshal()
	if err != nil {
		return err
	}

	return p.conn.Publish(Subject(p.prefix, e.Kind), data)
}

// Close flushes pending messages before closing the connection.
func (p *NatsPublisher) Close() error {
	return p.conn.Drain()
}
