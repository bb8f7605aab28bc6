package mailer

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	mailtpl "github.com/oksasatya/carehome-admin/pkg/mailer/templates"
)

// Worker turns queued EmailJobs into sent mail. Malformed or unrenderable
// jobs are dropped; jobs whose send fails are requeued.
type Worker struct {
	Sender      Sender
	Logger      *logrus.Logger
	SendTimeout time.Duration
}

func NewWorker(sender Sender, logger *logrus.Logger) *Worker {
	return &Worker{Sender: sender, Logger: logger, SendTimeout: 15 * time.Second}
}

// Run handles deliveries until msgs is closed or ctx is done.
func (w *Worker) Run(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			w.Handle(ctx, msg)
		}
	}
}

func (w *Worker) Handle(ctx context.Context, msg amqp.Delivery) {
	log := w.logger().WithField("delivery_tag", msg.DeliveryTag)

	var job EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		log.WithError(err).Warn("bad message")
		_ = msg.Nack(false, false)
		return
	}
	if err := job.Validate(); err != nil {
		log.WithError(err).Warn("invalid job")
		_ = msg.Nack(false, false)
		return
	}
	job.EnsureRecipient()

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			log.WithError(err).WithField("template", job.Template).Warn("render failed")
			_ = msg.Nack(false, false)
			return
		}
		subject, text, html = s, t, h
	}

	c, cancel := context.WithTimeout(ctx, w.timeout())
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		log.WithError(err).Warn("send failed")
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
	log.WithField("template", job.Template).Debug("email sent")
}

func (w *Worker) timeout() time.Duration {
	if w.SendTimeout <= 0 {
		return 15 * time.Second
	}
	return w.SendTimeout
}

func (w *Worker) logger() *logrus.Logger {
	if w.Logger == nil {
		return logrus.StandardLogger()
	}
	return w.Logger
}
