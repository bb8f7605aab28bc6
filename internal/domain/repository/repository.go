package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
)

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate")
	// ErrReference is returned when a write points at a row that does not exist.
	ErrReference = errors.New("referenced row does not exist")
)

// Lister reads rows of one kind through a resolved predicate.
type Lister[T any] interface {
	// List returns one page of rows and the total number of matching rows.
	List(ctx context.Context, q queryfilter.Resolved) ([]T, int, error)
	// Find returns the first row matching p, or ErrNotFound.
	Find(ctx context.Context, p queryfilter.Predicate) (*T, error)
}

type ResidentRepository interface {
	Lister[entity.Resident]
	Create(ctx context.Context, r *entity.Resident) error
	Update(ctx context.Context, r *entity.Resident) error
	Delete(ctx context.Context, id string) error
	CountByCareLevel(ctx context.Context) (map[entity.CareLevel]int, error)
}

type StaffRepository interface {
	Lister[entity.Staff]
	Create(ctx context.Context, s *entity.Staff) error
	Update(ctx context.Context, s *entity.Staff) error
	Delete(ctx context.Context, id string) error
}

type FamilyMemberRepository interface {
	Lister[entity.FamilyMember]
	// Create inserts the member and links the given residents to it.
	Create(ctx context.Context, f *entity.FamilyMember) error
	// Update rewrites the member and, when ResidentIDs is non-nil, replaces
	// the set of linked residents.
	Update(ctx context.Context, f *entity.FamilyMember) error
	Delete(ctx context.Context, id string) error
	// ContactsForRoom returns members with an email address. A nil roomID
	// returns every such member; otherwise only families of residents in that
	// room.
	ContactsForRoom(ctx context.Context, roomID *int64) ([]entity.FamilyMember, error)
}

type AdminRepository interface {
	Lister[entity.Admin]
	Create(ctx context.Context, a *entity.Admin) error
	Update(ctx context.Context, a *entity.Admin) error
	Delete(ctx context.Context, id string) error
}

type RoomRepository interface {
	Lister[entity.Room]
	Create(ctx context.Context, r *entity.Room) error
	Update(ctx context.Context, r *entity.Room) error
	Delete(ctx context.Context, id int64) error
}

type CarePlanRepository interface {
	Lister[entity.CarePlan]
	Create(ctx context.Context, p *entity.CarePlan) error
	Update(ctx context.Context, p *entity.CarePlan) error
	Delete(ctx context.Context, id int64) error
}

type AssessmentRepository interface {
	Lister[entity.Assessment]
	Create(ctx context.Context, a *entity.Assessment) error
	Update(ctx context.Context, a *entity.Assessment) error
	Delete(ctx context.Context, id int64) error
}

type MedicalRecordRepository interface {
	Lister[entity.MedicalRecord]
	Create(ctx context.Context, m *entity.MedicalRecord) error
	Update(ctx context.Context, m *entity.MedicalRecord) error
	Delete(ctx context.Context, id int64) error
}

type CareRoutineRepository interface {
	Lister[entity.CareRoutine]
	Create(ctx context.Context, r *entity.CareRoutine) error
	Update(ctx context.Context, r *entity.CareRoutine) error
	Delete(ctx context.Context, id int64) error
	// Matching returns every routine matching p, unpaged.
	Matching(ctx context.Context, p queryfilter.Predicate) ([]entity.CareRoutine, error)
}

type EventRepository interface {
	Lister[entity.Event]
	Create(ctx context.Context, e *entity.Event) error
	Update(ctx context.Context, e *entity.Event) error
	Delete(ctx context.Context, id int64) error
}

type AnnouncementRepository interface {
	Lister[entity.Announcement]
	Create(ctx context.Context, a *entity.Announcement) error
	Update(ctx context.Context, a *entity.Announcement) error
	Delete(ctx context.Context, id int64) error
}
