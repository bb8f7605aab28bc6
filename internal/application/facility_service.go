package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/internal/domain/repository"
)

func NewRoomService(d Deps, repo repository.RoomRepository) *Service[entity.Room] {
	return newService[entity.Room](d, queryfilter.KindRoom, repo, numericRemove(repo.Delete),
		numericID(func(r *entity.Room, id int64) { r.ID = id }),
		Hooks[entity.Room]{
			Prepare: func(_ context.Context, _ entity.Identity, _, in *entity.Room) error {
				in.Name = strings.TrimSpace(in.Name)
				if in.Name == "" {
					return invalid("name", "is required")
				}
				if in.Capacity <= 0 {
					return invalid("capacity", "must be greater than 0")
				}
				return nil
			},
		})
}

func NewEventService(d Deps, repo repository.EventRepository) *Service[entity.Event] {
	return newService[entity.Event](d, queryfilter.KindEvent, repo, numericRemove(repo.Delete),
		numericID(func(e *entity.Event, id int64) { e.ID = id }),
		Hooks[entity.Event]{
			Prepare: func(_ context.Context, _ entity.Identity, _, in *entity.Event) error {
				if strings.TrimSpace(in.Title) == "" {
					return invalid("title", "is required")
				}
				if !in.EndTime.After(in.StartTime) {
					return invalid("end_time", "must be after start_time")
				}
				return nil
			},
		})
}

// NewAnnouncementService wires announcements. A newly created announcement is
// mailed to family members through notify.
func NewAnnouncementService(d Deps, repo repository.AnnouncementRepository, notify *NotificationService) *Service[entity.Announcement] {
	return newService[entity.Announcement](d, queryfilter.KindAnnouncement, repo, numericRemove(repo.Delete),
		numericID(func(a *entity.Announcement, id int64) { a.ID = id }),
		Hooks[entity.Announcement]{
			Prepare: func(_ context.Context, _ entity.Identity, _, in *entity.Announcement) error {
				if strings.TrimSpace(in.Title) == "" {
					return invalid("title", "is required")
				}
				return nil
			},
			AfterWrite: func(ctx context.Context, a *entity.Announcement, created bool) {
				if !created {
					return
				}
				if sent, err := notify.AnnouncementCreated(ctx, a); err != nil && d.Logger != nil {
					d.Logger.WithError(err).WithFields(logrus.Fields{"announcement_id": a.ID, "jobs": sent}).
						Error("announcement notification failed")
				}
			},
		})
}
