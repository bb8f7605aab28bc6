package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type ackResult struct {
	acked   bool
	nacked  bool
	requeue bool
}

type fakeAcker struct {
	mu      sync.Mutex
	results map[uint64]ackResult
}

func newFakeAcker() *fakeAcker { return &fakeAcker{results: map[uint64]ackResult{}} }

func (a *fakeAcker) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results[tag] = ackResult{acked: true}
	return nil
}

func (a *fakeAcker) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results[tag] = ackResult{nacked: true, requeue: requeue}
	return nil
}

func (a *fakeAcker) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *fakeAcker) result(tag uint64) ackResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.results[tag]
}

type sentMail struct {
	to, subject, text, html string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (s *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{to, subject, text, html})
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func delivery(t *testing.T, acker amqp.Acknowledger, tag uint64, body any) amqp.Delivery {
	t.Helper()
	var b []byte
	switch v := body.(type) {
	case []byte:
		b = v
	default:
		var err error
		b, err = json.Marshal(v)
		require.NoError(t, err)
	}
	return amqp.Delivery{Acknowledger: acker, DeliveryTag: tag, Body: b}
}

func TestWorkerSendsRawJob(t *testing.T) {
	acker := newFakeAcker()
	sender := &fakeSender{}
	w := NewWorker(sender, quietLogger())

	w.Handle(context.Background(), delivery(t, acker, 1, EmailJob{To: "a@example.com", Subject: "Hi", Text: "body"}))

	assert.True(t, acker.result(1).acked)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, sentMail{to: "a@example.com", subject: "Hi", text: "body"}, sender.sent[0])
}

func TestWorkerRendersTemplate(t *testing.T) {
	acker := newFakeAcker()
	sender := &fakeSender{}
	w := NewWorker(sender, quietLogger())

	job := EmailJob{
		To:       "family1@example.com",
		Template: "announcement",
		Data: map[string]any{
			"Name":        "Family Name 1",
			"CompanyName": "Sunrise",
			"Title":       "Garden party",
			"Description": "Lemonade on the lawn.",
			"RoomName":    "Room 2",
		},
	}
	w.Handle(context.Background(), delivery(t, acker, 7, job))

	assert.True(t, acker.result(7).acked)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Sunrise: Garden party", sender.sent[0].subject)
	assert.Contains(t, sender.sent[0].text, "Lemonade on the lawn.")
	assert.Contains(t, sender.sent[0].html, "Room 2")
}

func TestWorkerDropsBadMessages(t *testing.T) {
	acker := newFakeAcker()
	sender := &fakeSender{}
	w := NewWorker(sender, quietLogger())

	w.Handle(context.Background(), delivery(t, acker, 1, []byte("{not json")))
	w.Handle(context.Background(), delivery(t, acker, 2, EmailJob{Subject: "no recipient", Text: "x"}))
	w.Handle(context.Background(), delivery(t, acker, 3, EmailJob{To: "a@example.com", Template: "missing"}))

	for _, tag := range []uint64{1, 2, 3} {
		res := acker.result(tag)
		assert.True(t, res.nacked, "tag %d", tag)
		assert.False(t, res.requeue, "tag %d", tag)
	}
	assert.Empty(t, sender.sent)
}

func TestWorkerRequeuesOnSendFailure(t *testing.T) {
	acker := newFakeAcker()
	w := NewWorker(&fakeSender{err: errors.New("mailgun down")}, quietLogger())

	w.Handle(context.Background(), delivery(t, acker, 4, EmailJob{To: "a@example.com", Subject: "Hi", Text: "x"}))

	res := acker.result(4)
	assert.True(t, res.nacked)
	assert.True(t, res.requeue)
}

func TestWorkerRunStopsWhenChannelCloses(t *testing.T) {
	acker := newFakeAcker()
	sender := &fakeSender{}
	w := NewWorker(sender, quietLogger())

	msgs := make(chan amqp.Delivery, 3)
	for i := uint64(1); i <= 3; i++ {
		msgs <- delivery(t, acker, i, EmailJob{To: "a@example.com", Subject: "Hi", Text: "x"})
	}
	close(msgs)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background(), msgs)
		close(done)
	}()
	<-done

	assert.Len(t, sender.sent, 3)
}

func TestWorkerRunStopsOnCancel(t *testing.T) {
	w := NewWorker(&fakeSender{}, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	msgs := make(chan amqp.Delivery)

	done := make(chan struct{})
	go func() {
		w.Run(ctx, msgs)
		close(done)
	}()
	cancel()
	<-done
}
