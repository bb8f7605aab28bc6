package templates

import (
	"strings"
	"time"

	"github.com/oksasatya/carehome-admin/config"
)

// Option pattern
type Option func(*EmailData)

func WithAnnouncement(title, description string, date time.Time, roomName string) Option {
	return func(d *EmailData) {
		d.Title = title
		d.Description = description
		if !date.IsZero() {
			d.DateText = date.UTC().Format("02 January 2006")
		}
		d.RoomName = strings.TrimSpace(roomName)
	}
}

// NewBaseEmailData fills the facility fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, name, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		RecipientEmail: recipient,
		Type:           typ,

		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,

		LogoURL:      cfg.LogoURL,
		SupportURL:   cfg.SupportURL,
		DashboardURL: cfg.DashboardURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewAnnouncementData(cfg *config.Config, name, recipient string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, Announcement, name, recipient, opts...))
}
