package schedule

import (
	"sort"
	"time"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
)

// Slot is a recurring weekly entry as stored.
type Slot struct {
	Title string
	Day   entity.Weekday
	Start time.Time
	End   time.Time
}

// Event is a slot placed on a concrete date.
type Event struct {
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// StartOfWeek returns midnight of the Monday on or before now, in now's
// location.
func StartOfWeek(now time.Time) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -daysSinceMonday(now.Weekday()))
}

func daysSinceMonday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// AdjustToCurrentWeek moves every slot into the week containing now. The
// weekday comes from the slot's Day when set, otherwise from its start time.
// Clock times are kept; an end clock at or before the start clock rolls over
// to the next day. The result is sorted by start time.
func AdjustToCurrentWeek(slots []Slot, now time.Time) []Event {
	loc := now.Location()
	monday := StartOfWeek(now)

	out := make([]Event, 0, len(slots))
	for _, s := range slots {
		start := s.Start.In(loc)
		end := s.End.In(loc)

		offset, ok := s.Day.Offset()
		if !ok {
			offset = daysSinceMonday(start.Weekday())
		}
		day := monday.AddDate(0, 0, offset)

		adjStart := atClock(day, start)
		adjEnd := atClock(day, end)
		if !adjEnd.After(adjStart) {
			adjEnd = adjEnd.AddDate(0, 0, 1)
		}
		out = append(out, Event{Title: s.Title, Start: adjStart, End: adjEnd})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func atClock(day, clock time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), clock.Second(), 0, day.Location())
}
