package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/internal/domain/repository"
)

var careRoutines = table[entity.CareRoutine]{
	from: "care_routines cr LEFT JOIN rooms rm ON rm.id = cr.room_id",
	selects: `cr.id, cr.name, cr.category, cr.day, cr.start_time, cr.end_time, cr.room_id, COALESCE(rm.name, ''),
		cr.staff_id, cr.created_at, cr.updated_at`,
	orderBy: "cr.start_time, cr.id",
	fields: columns{
		"id":              "cr.id::text",
		"name":            "cr.name",
		"category":        "cr.category",
		"day":             "cr.day",
		"staffId":         "cr.staff_id",
		"roomId":          "cr.room_id::text",
		"room.residentId": "cr.room_id IN (SELECT room_id FROM residents WHERE id = ?)",
		"room.familyId":   "cr.room_id IN (SELECT room_id FROM residents WHERE family_id = ?)",
	},
	scan: func(row pgx.Row) (entity.CareRoutine, error) {
		var c entity.CareRoutine
		err := row.Scan(&c.ID, &c.Name, &c.Category, &c.Day, &c.StartTime, &c.EndTime, &c.RoomID,
			&c.RoomName, &c.StaffID, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	},
}

type CareRoutineRepository struct {
	db DB
}

func NewCareRoutineRepository(db DB) *CareRoutineRepository {
	return &CareRoutineRepository{db: db}
}

func (r *CareRoutineRepository) List(ctx context.Context, q queryfilter.Resolved) ([]entity.CareRoutine, int, error) {
	return careRoutines.list(ctx, r.db, q)
}

func (r *CareRoutineRepository) Find(ctx context.Context, p queryfilter.Predicate) (*entity.CareRoutine, error) {
	return careRoutines.find(ctx, r.db, p)
}

func (r *CareRoutineRepository) Matching(ctx context.Context, p queryfilter.Predicate) ([]entity.CareRoutine, error) {
	return careRoutines.all(ctx, r.db, p)
}

func (r *CareRoutineRepository) Create(ctx context.Context, c *entity.CareRoutine) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO care_routines (name, category, day, start_time, end_time, room_id, staff_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, COALESCE((SELECT name FROM rooms WHERE rooms.id = care_routines.room_id), ''), created_at, updated_at
	`, c.Name, c.Category, c.Day, c.StartTime, c.EndTime, c.RoomID, c.StaffID)
	return mapError(row.Scan(&c.ID, &c.RoomName, &c.CreatedAt, &c.UpdatedAt))
}

func (r *CareRoutineRepository) Update(ctx context.Context, c *entity.CareRoutine) error {
	row := r.db.QueryRow(ctx, `
		UPDATE care_routines
		SET name = $2, category = $3, day = $4, start_time = $5, end_time = $6, room_id = $7, staff_id = $8,
			updated_at = now()
		WHERE id = $1
		RETURNING COALESCE((SELECT name FROM rooms WHERE rooms.id = care_routines.room_id), ''), created_at, updated_at
	`, c.ID, c.Name, c.Category, c.Day, c.StartTime, c.EndTime, c.RoomID, c.StaffID)
	return mapError(row.Scan(&c.RoomName, &c.CreatedAt, &c.UpdatedAt))
}

func (r *CareRoutineRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM care_routines WHERE id = $1`, id)
}

var _ repository.CareRoutineRepository = (*CareRoutineRepository)(nil)
