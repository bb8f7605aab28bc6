package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/internal/domain/repository"
)

var residents = table[entity.Resident]{
	from: "residents r LEFT JOIN rooms rm ON rm.id = r.room_id",
	selects: `r.id, r.full_name, COALESCE(r.email, ''), COALESCE(r.phone, ''), r.address, r.blood_type,
		r.date_of_birth, r.care_level, r.emergency_contact_name, r.emergency_contact_phone,
		COALESCE(r.emergency_contact_email, ''), r.family_id, r.room_id, COALESCE(rm.name, ''),
		r.created_at, r.updated_at`,
	orderBy: "r.full_name, r.id",
	fields: columns{
		"id":        "r.id",
		"fullName":  "r.full_name",
		"roomId":    "r.room_id::text",
		"familyId":  "r.family_id",
		"careLevel": "r.care_level",
	},
	scan: func(row pgx.Row) (entity.Resident, error) {
		var r entity.Resident
		err := row.Scan(&r.ID, &r.FullName, &r.Email, &r.Phone, &r.Address, &r.BloodType,
			&r.DateOfBirth, &r.CareLevel, &r.EmergencyContactName, &r.EmergencyContactPhone,
			&r.EmergencyContactEmail, &r.FamilyID, &r.RoomID, &r.RoomName,
			&r.CreatedAt, &r.UpdatedAt)
		return r, err
	},
}

type ResidentRepository struct {
	db DB
}

func NewResidentRepository(db DB) *ResidentRepository {
	return &ResidentRepository{db: db}
}

func (r *ResidentRepository) List(ctx context.Context, q queryfilter.Resolved) ([]entity.Resident, int, error) {
	return residents.list(ctx, r.db, q)
}

func (r *ResidentRepository) Find(ctx context.Context, p queryfilter.Predicate) (*entity.Resident, error) {
	return residents.find(ctx, r.db, p)
}

func (r *ResidentRepository) Create(ctx context.Context, res *entity.Resident) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO residents (id, full_name, email, phone, address, blood_type, date_of_birth, care_level,
			emergency_contact_name, emergency_contact_phone, emergency_contact_email, family_id, room_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING COALESCE((SELECT name FROM rooms WHERE rooms.id = residents.room_id), ''), created_at, updated_at
	`, res.ID, res.FullName, nullString(res.Email), nullString(res.Phone), res.Address, res.BloodType,
		res.DateOfBirth, res.CareLevel, res.EmergencyContactName, res.EmergencyContactPhone,
		nullString(res.EmergencyContactEmail), res.FamilyID, res.RoomID)
	return mapError(row.Scan(&res.RoomName, &res.CreatedAt, &res.UpdatedAt))
}

func (r *ResidentRepository) Update(ctx context.Context, res *entity.Resident) error {
	row := r.db.QueryRow(ctx, `
		UPDATE residents
		SET full_name = $2, email = $3, phone = $4, address = $5, blood_type = $6, date_of_birth = $7,
			care_level = $8, emergency_contact_name = $9, emergency_contact_phone = $10,
			emergency_contact_email = $11, family_id = $12, room_id = $13, updated_at = now()
		WHERE id = $1
		RETURNING COALESCE((SELECT name FROM rooms WHERE rooms.id = residents.room_id), ''), created_at, updated_at
	`, res.ID, res.FullName, nullString(res.Email), nullString(res.Phone), res.Address, res.BloodType,
		res.DateOfBirth, res.CareLevel, res.EmergencyContactName, res.EmergencyContactPhone,
		nullString(res.EmergencyContactEmail), res.FamilyID, res.RoomID)
	return mapError(row.Scan(&res.RoomName, &res.CreatedAt, &res.UpdatedAt))
}

func (r *ResidentRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, `DELETE FROM residents WHERE id = $1`, id)
}

func (r *ResidentRepository) CountByCareLevel(ctx context.Context) (map[entity.CareLevel]int, error) {
	rows, err := r.db.Query(ctx, `SELECT care_level, count(*) FROM residents GROUP BY care_level`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make(map[entity.CareLevel]int, len(entity.CareLevels))
	for rows.Next() {
		var (
			level entity.CareLevel
			n     int
		)
		if err := rows.Scan(&level, &n); err != nil {
			return nil, err
		}
		out[level] = n
	}
	return out, rows.Err()
}

var _ repository.ResidentRepository = (*ResidentRepository)(nil)
