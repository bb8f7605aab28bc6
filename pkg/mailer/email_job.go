package mailer

import (
	"errors"
	"strings"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template with Data, or a raw Subject with Text and/or HTML.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "announcement"
	Data     map[string]any `json:"data,omitempty"`
}

var ErrInvalidJob = errors.New("invalid email job")

// Validate checks that the job can be rendered and addressed.
func (j *EmailJob) Validate() error {
	if strings.TrimSpace(j.To) == "" {
		return errors.Join(ErrInvalidJob, errors.New("missing recipient"))
	}
	if j.Template == "" && (j.Subject == "" || (j.Text == "" && j.HTML == "")) {
		return errors.Join(ErrInvalidJob, errors.New("either template or subject with text/html is required"))
	}
	return nil
}

// EnsureRecipient copies To into Data so templates can address the reader.
func (j *EmailJob) EnsureRecipient() {
	if j.Data == nil {
		j.Data = map[string]any{}
	}
	if v, ok := j.Data["RecipientEmail"].(string); !ok || v == "" {
		j.Data["RecipientEmail"] = j.To
	}
}
