package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/carehome-admin/config"
	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/repository"
	"github.com/oksasatya/carehome-admin/pkg/mailer"
	mailtpl "github.com/oksasatya/carehome-admin/pkg/mailer/templates"
)

// Publisher puts a JSON job on the notification queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// NotificationService fans announcements out to family members as email jobs.
type NotificationService struct {
	Families repository.FamilyMemberRepository
	Pub      Publisher
	Cfg      *config.Config
	Logger   *logrus.Logger
}

func NewNotificationService(families repository.FamilyMemberRepository, pub Publisher, cfg *config.Config, logger *logrus.Logger) *NotificationService {
	return &NotificationService{Families: families, Pub: pub, Cfg: cfg, Logger: logger}
}

func (s *NotificationService) enabled() bool {
	return s != nil && s.Pub != nil && s.Cfg != nil && s.Cfg.NotifyAnnouncements && s.Cfg.MailSendEnabled
}

// AnnouncementCreated enqueues one email per family member with an address.
// A room announcement only reaches families of residents in that room. It
// returns the number of jobs published.
func (s *NotificationService) AnnouncementCreated(ctx context.Context, a *entity.Announcement) (int, error) {
	if !s.enabled() {
		return 0, nil
	}
	contacts, err := s.Families.ContactsForRoom(ctx, a.RoomID)
	if err != nil {
		return 0, fromRepo(err)
	}
	sent := 0
	for _, f := range contacts {
		if strings.TrimSpace(f.Email) == "" {
			continue
		}
		name := strings.TrimSpace(f.Name + " " + f.Surname)
		job := mailer.EmailJob{
			To:       f.Email,
			Template: mailtpl.Announcement,
			Data: mailtpl.NewAnnouncementData(s.Cfg, name, f.Email,
				mailtpl.WithAnnouncement(a.Title, a.Description, a.Date, a.RoomName)),
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil {
			return sent, err
		}
		sent++
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"announcement_id": a.ID, "jobs": sent}).Info("announcement emails enqueued")
	}
	return sent, nil
}
