package handlers

import (
	"strings"
	"time"

	"github.com/oksasatya/carehome-admin/internal/application"
	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/pkg/validation"
)

// payload is a bound request body that converts into an entity.
type payload[T any] interface {
	toEntity() (*T, error)
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(validation.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &application.ValidationError{Field: field, Message: "must be a date formatted as YYYY-MM-DD"}
	}
	return t, nil
}

type ResidentRequest struct {
	FullName              string  `json:"full_name" binding:"required,max=120"`
	Email                 string  `json:"email" binding:"omitempty,email"`
	Phone                 string  `json:"phone" binding:"omitempty,phone"`
	Address               string  `json:"address"`
	BloodType             string  `json:"blood_type" binding:"required,max=8"`
	DateOfBirth           string  `json:"date_of_birth" binding:"required,date"`
	CareLevel             string  `json:"care_level" binding:"required,carelevel"`
	EmergencyContactName  string  `json:"emergency_contact_name"`
	EmergencyContactPhone string  `json:"emergency_contact_phone" binding:"omitempty,phone"`
	EmergencyContactEmail string  `json:"emergency_contact_email" binding:"omitempty,email"`
	FamilyID              *string `json:"family_id"`
	RoomID                *int64  `json:"room_id"`
}

func (r ResidentRequest) toEntity() (*entity.Resident, error) {
	dob, err := parseDate("date_of_birth", r.DateOfBirth)
	if err != nil {
		return nil, err
	}
	return &entity.Resident{
		FullName:              r.FullName,
		Email:                 r.Email,
		Phone:                 r.Phone,
		Address:               r.Address,
		BloodType:             r.BloodType,
		DateOfBirth:           dob,
		CareLevel:             entity.CareLevel(r.CareLevel),
		EmergencyContactName:  r.EmergencyContactName,
		EmergencyContactPhone: r.EmergencyContactPhone,
		EmergencyContactEmail: r.EmergencyContactEmail,
		FamilyID:              r.FamilyID,
		RoomID:                r.RoomID,
	}, nil
}

type CarePlanRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date" binding:"required,date"`
	EndDate     string  `json:"end_date" binding:"required,date"`
	ResidentID  string  `json:"resident_id" binding:"required"`
	StaffID     *string `json:"staff_id"`
}

func (r CarePlanRequest) toEntity() (*entity.CarePlan, error) {
	start, err := parseDate("start_date", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", r.EndDate)
	if err != nil {
		return nil, err
	}
	return &entity.CarePlan{
		Title:       r.Title,
		Description: r.Description,
		StartDate:   start,
		EndDate:     end,
		ResidentID:  r.ResidentID,
		StaffID:     r.StaffID,
	}, nil
}

type AssessmentRequest struct {
	Title          string  `json:"title" binding:"required,max=200"`
	Score          int     `json:"score" binding:"gte=0,lte=100"`
	Notes          string  `json:"notes"`
	Date           string  `json:"date" binding:"required,date"`
	ResidentID     string  `json:"resident_id" binding:"required"`
	CareProviderID *string `json:"care_provider_id"`
}

func (r AssessmentRequest) toEntity() (*entity.Assessment, error) {
	d, err := parseDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	return &entity.Assessment{
		Title:          r.Title,
		Score:          r.Score,
		Notes:          r.Notes,
		Date:           d,
		ResidentID:     r.ResidentID,
		CareProviderID: r.CareProviderID,
	}, nil
}

type MedicalRecordRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required,date"`
	ResidentID  string `json:"resident_id" binding:"required"`
}

func (r MedicalRecordRequest) toEntity() (*entity.MedicalRecord, error) {
	d, err := parseDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	return &entity.MedicalRecord{Title: r.Title, Description: r.Description, Date: d, ResidentID: r.ResidentID}, nil
}

type CareRoutineRequest struct {
	Name      string    `json:"name" binding:"required,max=120"`
	Category  string    `json:"category" binding:"max=60"`
	Day       string    `json:"day" binding:"required,weekday"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	RoomID    *int64    `json:"room_id"`
	StaffID   *string   `json:"staff_id"`
}

func (r CareRoutineRequest) toEntity() (*entity.CareRoutine, error) {
	return &entity.CareRoutine{
		Name:      r.Name,
		Category:  r.Category,
		Day:       entity.Weekday(r.Day),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		RoomID:    r.RoomID,
		StaffID:   r.StaffID,
	}, nil
}

type EventRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	RoomID      *int64    `json:"room_id"`
}

func (r EventRequest) toEntity() (*entity.Event, error) {
	return &entity.Event{
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		RoomID:      r.RoomID,
	}, nil
}

type AnnouncementRequest struct {
	Title       string    `json:"title" binding:"required,max=200"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
	RoomID      *int64    `json:"room_id"`
}

func (r AnnouncementRequest) toEntity() (*entity.Announcement, error) {
	return &entity.Announcement{Title: r.Title, Description: r.Description, Date: r.Date, RoomID: r.RoomID}, nil
}

type RoomRequest struct {
	Name     string `json:"name" binding:"required,max=60"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

func (r RoomRequest) toEntity() (*entity.Room, error) {
	return &entity.Room{Name: r.Name, Capacity: r.Capacity}, nil
}

type StaffRequest struct {
	Username string `json:"username" binding:"required,username"`
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
	Address  string `json:"address"`
	Role     string `json:"role" binding:"required,staffrole"`
	Password string `json:"password" binding:"omitempty,pwd"`
}

func (r StaffRequest) toEntity() (*entity.Staff, error) {
	return &entity.Staff{
		Username: r.Username,
		Name:     r.Name,
		Surname:  r.Surname,
		Email:    r.Email,
		Phone:    r.Phone,
		Address:  r.Address,
		Role:     entity.StaffRole(r.Role),
		Password: r.Password,
	}, nil
}

type FamilyMemberRequest struct {
	Username    string   `json:"username" binding:"omitempty,username"`
	Name        string   `json:"name" binding:"required"`
	Surname     string   `json:"surname" binding:"required"`
	Email       string   `json:"email" binding:"omitempty,email"`
	Phone       string   `json:"phone" binding:"omitempty,phone"`
	Address     string   `json:"address"`
	Password    string   `json:"password" binding:"omitempty,pwd"`
	ResidentIDs []string `json:"resident_ids"`
}

func (r FamilyMemberRequest) toEntity() (*entity.FamilyMember, error) {
	return &entity.FamilyMember{
		Username:    r.Username,
		Name:        r.Name,
		Surname:     r.Surname,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		Password:    r.Password,
		ResidentIDs: r.ResidentIDs,
	}, nil
}

type AdminRequest struct {
	Username string `json:"username" binding:"required,username"`
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"omitempty,phone"`
}

func (r AdminRequest) toEntity() (*entity.Admin, error) {
	return &entity.Admin{Username: r.Username, Name: r.Name, Surname: r.Surname, Email: r.Email, Phone: r.Phone}, nil
}
