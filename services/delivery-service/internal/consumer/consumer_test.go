package consumer

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeInbox struct {
	recorded  []string
	discarded []string
	duplicate bool
	recordErr error
}

func (f *fakeInbox) Record(ctx context.Context, eventID, eventType string) (bool, error) {
	if f.recordErr != nil {
		return false, f.recordErr
	}
	if f.duplicate {
		return false, nil
	}
	f.recorded = append(f.recorded, eventID)
	return true, nil
}

func (f *fakeInbox) Discard(ctx context.Context, eventID string) error {
	f.discarded = append(f.discarded, eventID)
	return nil
}

func eventMessage(id string) kafka.Message {
	return kafka.Message{
		Topic: TopicOrderPlaced,
		Key:   []byte(id),
		Value: []byte("{}"),
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(id)},
			{Key: "event_type", Value: []byte(TopicOrderPlaced)},
		},
	}
}

func TestProcessHandledMessage(t *testing.T) {
	inboxFake := &fakeInbox{}
	var handled int
	c := &Consumer{
		logger: testLogger(),
		inbox:  inboxFake,
		handler: func(ctx context.Context, msg kafka.Message) error {
			handled++
			return nil
		},
	}

	if !c.process(context.Background(), eventMessage("evt-1")) {
		t.Fatal("process = false, want true")
	}
	if handled != 1 {
		t.Fatalf("handler called %d times, want 1", handled)
	}
	if len(inboxFake.discarded) != 0 {
		t.Fatalf("discarded = %v, want none", inboxFake.discarded)
	}
}

// A handler failure must give the inbox claim back so the redelivered
// message is retried rather than dropped as a duplicate.
func TestProcessReleasesClaimOnHandlerError(t *testing.T) {
	inboxFake := &fakeInbox{}
	c := &Consumer{
		logger: testLogger(),
		inbox:  inboxFake,
		handler: func(ctx context.Context, msg kafka.Message) error {
			return errors.New("db unavailable")
		},
	}

	if c.process(context.Background(), eventMessage("evt-1")) {
		t.Fatal("process = true for a failed handler, want false")
	}
	if len(inboxFake.discarded) != 1 || inboxFake.discarded[0] != "evt-1" {
		t.Fatalf("discarded = %v, want [evt-1]", inboxFake.discarded)
	}
}

func TestProcessSkipsDuplicate(t *testing.T) {
	inboxFake := &fakeInbox{duplicate: true}
	c := &Consumer{
		logger: testLogger(),
		inbox:  inboxFake,
		handler: func(ctx context.Context, msg kafka.Message) error {
			t.Fatal("handler called for a duplicate")
			return nil
		},
	}

	if !c.process(context.Background(), eventMessage("evt-1")) {
		t.Fatal("process = false for a duplicate, want true so the offset advances")
	}
}

func TestProcessRetriesOnInboxError(t *testing.T) {
	inboxFake := &fakeInbox{recordErr: errors.New("db unavailable")}
	c := &Consumer{
		logger: testLogger(),
		inbox:  inboxFake,
		handler: func(ctx context.Context, msg kafka.Message) error {
			t.Fatal("handler called without an inbox claim")
			return nil
		},
	}

	if c.process(context.Background(), eventMessage("evt-1")) {
		t.Fatal("process = true after an inbox failure, want false")
	}
}
