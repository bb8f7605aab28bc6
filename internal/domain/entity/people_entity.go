package entity

import "time"

// CareLevel is the resident's assessed level of care.
type CareLevel string

const (
	CareLevelLow    CareLevel = "LOW"
	CareLevelMedium CareLevel = "MEDIUM"
	CareLevelHigh   CareLevel = "HIGH"
)

// CareLevels is the fixed display order used by the care-level chart.
var CareLevels = []CareLevel{CareLevelLow, CareLevelMedium, CareLevelHigh}

func (l CareLevel) Valid() bool {
	switch l {
	case CareLevelLow, CareLevelMedium, CareLevelHigh:
		return true
	}
	return false
}

// StaffRole is the job role recorded on a staff member. It is not the access
// role carried by an Identity.
type StaffRole string

const (
	StaffRoleAdmin     StaffRole = "ADMIN"
	StaffRoleNurse     StaffRole = "NURSE"
	StaffRoleCaregiver StaffRole = "CAREGIVER"
)

func (r StaffRole) Valid() bool {
	switch r {
	case StaffRoleAdmin, StaffRoleNurse, StaffRoleCaregiver:
		return true
	}
	return false
}

// Resident lives in the facility. FamilyID and RoomID are optional links.
type Resident struct {
	ID                    string    `json:"id"`
	FullName              string    `json:"full_name"`
	Email                 string    `json:"email,omitempty"`
	Phone                 string    `json:"phone,omitempty"`
	Address               string    `json:"address,omitempty"`
	BloodType             string    `json:"blood_type,omitempty"`
	DateOfBirth           time.Time `json:"date_of_birth"`
	CareLevel             CareLevel `json:"care_level"`
	EmergencyContactName  string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string    `json:"emergency_contact_phone,omitempty"`
	EmergencyContactEmail string    `json:"emergency_contact_email,omitempty"`
	FamilyID              *string   `json:"family_id,omitempty"`
	RoomID                *int64    `json:"room_id,omitempty"`
	RoomName              string    `json:"room_name,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Staff is a nurse, caregiver or administrative employee.
type Staff struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Role         StaffRole `json:"role"`
	Password     string    `json:"-"` // plain text on write only
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FamilyMember is a relative linked to one or more residents.
type FamilyMember struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Password     string    `json:"-"` // plain text on write only
	PasswordHash string    `json:"-"`
	ResidentIDs  []string  `json:"resident_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Admin is a facility administrator record.
type Admin struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
