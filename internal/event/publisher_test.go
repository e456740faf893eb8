package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/CodyCMAC/texas-lead-roper/internal/form"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type fakeChannel struct {
	exchange, key string
	msgs          []amqp.Publishing
	err           error
	closed        bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	f.exchange, f.key = exchange, key
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestObserverPublishesEvent(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "crm.events", routingKey: "crm.record.created"}

	ev := form.Event{
		Entity:      "lead",
		ID:          uuid.New(),
		WorkspaceID: uuid.New(),
		UserID:      uuid.New(),
		OccurredAt:  time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	p.Observer()(context.Background(), ev)

	if len(ch.msgs) != 1 {
		t.Fatalf("published %d messages, want 1", len(ch.msgs))
	}
	if ch.exchange != "crm.events" || ch.key != "crm.record.created" {
		t.Errorf("routed to %s/%s", ch.exchange, ch.key)
	}
	msg := ch.msgs[0]
	if msg.ContentType != "application/json" || msg.Type != "lead.created" || msg.DeliveryMode != amqp.Persistent {
		t.Errorf("message headers = %+v", msg)
	}
	var got form.Event
	if err := json.Unmarshal(msg.Body, &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != ev.ID || got.WorkspaceID != ev.WorkspaceID || got.Entity != "lead" {
		t.Errorf("body = %+v", got)
	}
}

func TestObserverSwallowsPublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := &Publisher{ch: ch}

	p.Observer()(context.Background(), form.Event{Entity: "task", ID: uuid.New()})

	if err := p.Close(); err != nil || !ch.closed {
		t.Errorf("Close() error = %v, closed = %v", err, ch.closed)
	}
}
