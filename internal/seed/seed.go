// Package seed loads a demo facility: an admin, staff, rooms, families with
// their residents, events, announcements and a week of care routines.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/pkg/helpers"
)

// DefaultPassword is set on every seeded staff and family account.
const DefaultPassword = "password123"

const (
	Rooms         = 6
	Families      = 25
	Residents     = 50
	StaffCount    = 4
	Events        = 5
	Announcements = 5
	Routines      = 30
)

var (
	staffRoles = []entity.StaffRole{entity.StaffRoleNurse, entity.StaffRoleCaregiver}
	categories = []string{entity.DefaultRoutineCategory, "Medication", "Mobility", "Hygiene", "Nutrition"}
	careLevels = []entity.CareLevel{entity.CareLevelLow, entity.CareLevelMedium, entity.CareLevelHigh}
)

// Run upserts the demo data in one transaction and, when jwt is set, prints
// a development token for each role to out. Running it twice is a no-op
// apart from refreshed timestamps.
func Run(ctx context.Context, db *sql.DB, out io.Writer, jwt *helpers.JWTManager) error {
	return RunAt(ctx, db, out, jwt, time.Now())
}

// RunAt is Run with event and routine dates anchored on the week of now.
func RunAt(ctx context.Context, db *sql.DB, out io.Writer, jwt *helpers.JWTManager, now time.Time) error {
	hash, err := helpers.HashPassword(DefaultPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	s := seeder{tx: tx, hash: hash, monday: monday(now)}
	if err := s.load(ctx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	fmt.Fprintf(out, "seeded %d rooms, %d staff, %d families, %d residents, %d routines (password=%s)\n",
		Rooms, StaffCount, Families, Residents, Routines, DefaultPassword)

	if jwt == nil {
		return nil
	}
	for _, acct := range []entity.Identity{
		{ID: "admin1", Role: entity.RoleAdmin},
		{ID: staffID(1), Role: entity.RoleNurse},
		{ID: residentID(1), Role: entity.RoleResident},
		{ID: familyID(1), Role: entity.RoleFamily},
	} {
		tok, _, err := jwt.GenerateAccessToken(acct.ID, acct.Role.String())
		if err != nil {
			return fmt.Errorf("token for %s: %w", acct.ID, err)
		}
		fmt.Fprintf(out, "%-8s %-10s %s\n", acct.Role, acct.ID, tok)
	}
	return nil
}

func staffID(i int) string    { return fmt.Sprintf("staff%d", i) }
func familyID(i int) string   { return fmt.Sprintf("family%d", i) }
func residentID(i int) string { return fmt.Sprintf("resident%d", i) }

func monday(now time.Time) time.Time {
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
}

type seeder struct {
	tx     *sql.Tx
	hash   string
	monday time.Time
	rooms  []int64
}

func (s *seeder) exec(ctx context.Context, what, query string, args ...any) error {
	if _, err := s.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed %s: %w", what, err)
	}
	return nil
}

// room returns the id of the i-th seeded room, 1-based and wrapping.
func (s *seeder) room(i int) int64 { return s.rooms[(i-1)%len(s.rooms)] }

func (s *seeder) load(ctx context.Context) error {
	if err := s.exec(ctx, "admin admin1", `
		INSERT INTO admins (id, username, name, surname, email)
		VALUES ('admin1', 'admin1', 'Ada', 'Admin', 'admin1@carehome.local')
		ON CONFLICT (id) DO UPDATE SET updated_at = now()
	`); err != nil {
		return err
	}

	for i := 1; i <= Rooms; i++ {
		var id int64
		if err := s.tx.QueryRowContext(ctx, `
			INSERT INTO rooms (name, capacity) VALUES ($1, 10)
			ON CONFLICT (name) DO UPDATE SET updated_at = now()
			RETURNING id
		`, fmt.Sprintf("Room %d", i)).Scan(&id); err != nil {
			return fmt.Errorf("seed room %d: %w", i, err)
		}
		s.rooms = append(s.rooms, id)
	}

	for i := 1; i <= StaffCount; i++ {
		id := staffID(i)
		if err := s.exec(ctx, "staff "+id, `
			INSERT INTO staff (id, username, name, surname, email, role, password_hash)
			VALUES ($1, $1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET role = EXCLUDED.role, updated_at = now()
		`, id, fmt.Sprintf("Staff %d", i), "Member", id+"@carehome.local", string(staffRoles[(i-1)%len(staffRoles)]), s.hash); err != nil {
			return err
		}
	}

	for i := 1; i <= Families; i++ {
		id := familyID(i)
		if err := s.exec(ctx, "family member "+id, `
			INSERT INTO family_members (id, username, name, surname, email, phone, password_hash)
			VALUES ($1, $1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET updated_at = now()
		`, id, fmt.Sprintf("Family %d", i), "Member", id+"@carehome.local", fmt.Sprintf("555-01%02d", i), s.hash); err != nil {
			return err
		}
	}

	for i := 1; i <= Residents; i++ {
		id := residentID(i)
		dob := time.Date(1935+i%20, time.Month(i%12+1), i%28+1, 0, 0, 0, 0, time.UTC)
		if err := s.exec(ctx, "resident "+id, `
			INSERT INTO residents (id, full_name, blood_type, date_of_birth, care_level, family_id, room_id)
			VALUES ($1, $2, 'A+', $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET care_level = EXCLUDED.care_level, family_id = EXCLUDED.family_id,
				room_id = EXCLUDED.room_id, updated_at = now()
		`, id, fmt.Sprintf("Resident %d", i), dob, string(careLevels[i%3]), familyID((i+1)/2), s.room(i%Rooms+1)); err != nil {
			return err
		}
	}

	for i := 1; i <= Events; i++ {
		start := s.monday.AddDate(0, 0, i-1).Add(14 * time.Hour)
		if err := s.exec(ctx, fmt.Sprintf("event %d", i), `
			INSERT INTO events (title, description, start_time, end_time, room_id)
			SELECT $1, $2, $3, $4, $5
			WHERE NOT EXISTS (SELECT 1 FROM events WHERE title = $1)
		`, fmt.Sprintf("Event %d", i), "Afternoon activity", start, start.Add(2*time.Hour), s.room(i)); err != nil {
			return err
		}
	}

	for i := 1; i <= Announcements; i++ {
		if err := s.exec(ctx, fmt.Sprintf("announcement %d", i), `
			INSERT INTO announcements (title, description, date, room_id)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (SELECT 1 FROM announcements WHERE title = $1)
		`, fmt.Sprintf("Announcement %d", i), "Visiting hours update", s.monday.AddDate(0, 0, i-1), s.room(i)); err != nil {
			return err
		}
	}

	for i := 1; i <= Routines; i++ {
		offset := (i - 1) % len(entity.Weekdays)
		day := entity.Weekdays[offset]
		start := s.monday.AddDate(0, 0, offset).Add(time.Duration(8+(i-1)/5) * time.Hour)
		if err := s.exec(ctx, fmt.Sprintf("care routine %d", i), `
			INSERT INTO care_routines (name, category, day, start_time, end_time, room_id, staff_id)
			SELECT $1, $2, $3, $4, $5, $6, $7
			WHERE NOT EXISTS (SELECT 1 FROM care_routines WHERE name = $1)
		`, fmt.Sprintf("Routine %d", i), categories[(i-1)%len(categories)], string(day),
			start, start.Add(45*time.Minute), s.room(i), staffID((i-1)%StaffCount+1)); err != nil {
			return err
		}
	}

	return s.exec(ctx, "care plan", `
		INSERT INTO care_plans (title, description, start_date, end_date, resident_id, staff_id)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE NOT EXISTS (SELECT 1 FROM care_plans WHERE title = $1 AND resident_id = $5)
	`, "Mobility support", "Assisted walk twice a day", s.monday, s.monday.AddDate(0, 3, 0), residentID(1), staffID(1))
}
