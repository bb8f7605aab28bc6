package entity

import (
	"strings"
	"time"
)

// Weekday is a routine day. Care routines only run Monday to Friday.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
)

var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

func (d Weekday) Valid() bool {
	_, ok := d.Offset()
	return ok
}

// Offset returns the number of days between Monday and d.
func (d Weekday) Offset() (int, bool) {
	for i, w := range Weekdays {
		if strings.EqualFold(string(d), string(w)) {
			return i, true
		}
	}
	return 0, false
}

// DefaultRoutineCategory is stored when a routine is created without one.
const DefaultRoutineCategory = "General"

type CarePlan struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	ResidentID   string    `json:"resident_id"`
	ResidentName string    `json:"resident_name,omitempty"`
	StaffID      *string   `json:"staff_id,omitempty"`
	StaffName    string    `json:"staff_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Assessment struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Score            int       `json:"score"`
	Notes            string    `json:"notes,omitempty"`
	Date             time.Time `json:"date"`
	ResidentID       string    `json:"resident_id"`
	ResidentName     string    `json:"resident_name,omitempty"`
	RoomName         string    `json:"room_name,omitempty"`
	CareProviderID   *string   `json:"care_provider_id,omitempty"`
	CareProviderName string    `json:"care_provider_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type MedicalRecord struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Date         time.Time `json:"date"`
	ResidentID   string    `json:"resident_id"`
	ResidentName string    `json:"resident_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CareRoutine is a recurring weekly slot, optionally tied to a room and to
// the staff member who runs it.
type CareRoutine struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Day       Weekday   `json:"day"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	RoomID    *int64    `json:"room_id,omitempty"`
	RoomName  string    `json:"room_name,omitempty"`
	StaffID   *string   `json:"staff_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
