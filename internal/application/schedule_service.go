package application

import (
	"context"
	"time"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/internal/domain/repository"
	"github.com/oksasatya/carehome-admin/internal/domain/schedule"
)

// maxFamilyCalendars caps how many residents a family schedule covers.
const maxFamilyCalendars = 100

// Calendar is one labelled week of routine events.
type Calendar struct {
	Label      string           `json:"label"`
	ResidentID string           `json:"resident_id,omitempty"`
	Events     []schedule.Event `json:"events"`
}

// ScheduleService builds week calendars from care routines, always inside the
// caller's care-routine scope.
type ScheduleService struct {
	Routines  repository.CareRoutineRepository
	Residents repository.ResidentRepository
	Resolver  *queryfilter.Resolver
	Now       func() time.Time
}

func NewScheduleService(routines repository.CareRoutineRepository, residents repository.ResidentRepository, resolver *queryfilter.Resolver) *ScheduleService {
	return &ScheduleService{Routines: routines, Residents: residents, Resolver: resolver, Now: time.Now}
}

// Filtered returns the calendar for a staff member or a room. staffID wins
// when both are set; with neither, every routine in scope is used.
func (s *ScheduleService) Filtered(ctx context.Context, caller entity.Identity, staffID, roomID string) (Calendar, error) {
	var extra []queryfilter.Predicate
	label := "All routines"
	switch {
	case staffID != "":
		extra = append(extra, queryfilter.Eq("staffId", staffID))
		label = "Staff " + staffID
	case roomID != "":
		extra = append(extra, queryfilter.Eq("roomId", roomID))
		label = "Room " + roomID
	}
	events, err := s.week(ctx, caller, extra...)
	if err != nil {
		return Calendar{}, err
	}
	return Calendar{Label: label, Events: events}, nil
}

// Mine returns the caller's own schedule. A family member gets one calendar
// per linked resident; everyone else gets a single calendar.
func (s *ScheduleService) Mine(ctx context.Context, caller entity.Identity) ([]Calendar, error) {
	if caller.Role != entity.RoleFamily {
		events, err := s.week(ctx, caller)
		if err != nil {
			return nil, err
		}
		return []Calendar{{Label: "My schedule", Events: events}}, nil
	}

	p, err := s.Resolver.Scope(queryfilter.KindResident, caller)
	if err != nil {
		return nil, err
	}
	if p.IsFalse() {
		return []Calendar{}, nil
	}
	residents, _, err := s.Residents.List(ctx, queryfilter.Resolved{
		Kind: queryfilter.KindResident, Predicate: p, Page: 1, Limit: maxFamilyCalendars,
	})
	if err != nil {
		return nil, fromRepo(err)
	}
	out := make([]Calendar, 0, len(residents))
	for _, r := range residents {
		events, err := s.week(ctx, caller, queryfilter.Eq("room.residentId", r.ID))
		if err != nil {
			return nil, err
		}
		out = append(out, Calendar{Label: r.FullName, ResidentID: r.ID, Events: events})
	}
	return out, nil
}

func (s *ScheduleService) week(ctx context.Context, caller entity.Identity, extra ...queryfilter.Predicate) ([]schedule.Event, error) {
	p, err := s.Resolver.Scope(queryfilter.KindCareRoutine, caller, extra...)
	if err != nil {
		return nil, err
	}
	if p.IsFalse() {
		return []schedule.Event{}, nil
	}
	routines, err := s.Routines.Matching(ctx, p)
	if err != nil {
		return nil, fromRepo(err)
	}
	slots := make([]schedule.Slot, len(routines))
	for i, r := range routines {
		slots[i] = schedule.Slot{Title: r.Name, Day: r.Day, Start: r.StartTime, End: r.EndTime}
	}
	return schedule.AdjustToCurrentWeek(slots, s.now()), nil
}

func (s *ScheduleService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
