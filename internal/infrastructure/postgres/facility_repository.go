package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/internal/domain/repository"
)

var rooms = table[entity.Room]{
	from: "rooms rm",
	selects: `rm.id, rm.name, rm.capacity, (SELECT count(*) FROM residents x WHERE x.room_id = rm.id),
		rm.created_at, rm.updated_at`,
	orderBy: "rm.name, rm.id",
	fields: columns{
		"id":                 "rm.id::text",
		"name":               "rm.name",
		"residents.id":       "rm.id IN (SELECT room_id FROM residents WHERE id = ?)",
		"residents.familyId": "rm.id IN (SELECT room_id FROM residents WHERE family_id = ?)",
	},
	scan: func(row pgx.Row) (entity.Room, error) {
		var r entity.Room
		err := row.Scan(&r.ID, &r.Name, &r.Capacity, &r.ResidentCount, &r.CreatedAt, &r.UpdatedAt)
		return r, err
	},
}

type RoomRepository struct {
	db DB
}

func NewRoomRepository(db DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) List(ctx context.Context, q queryfilter.Resolved) ([]entity.Room, int, error) {
	return rooms.list(ctx, r.db, q)
}

func (r *RoomRepository) Find(ctx context.Context, p queryfilter.Predicate) (*entity.Room, error) {
	return rooms.find(ctx, r.db, p)
}

func (r *RoomRepository) Create(ctx context.Context, room *entity.Room) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO rooms (name, capacity) VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, room.Name, room.Capacity)
	return mapError(row.Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt))
}

func (r *RoomRepository) Update(ctx context.Context, room *entity.Room) error {
	row := r.db.QueryRow(ctx, `
		UPDATE rooms SET name = $2, capacity = $3, updated_at = now()
		WHERE id = $1
		RETURNING (SELECT count(*) FROM residents WHERE room_id = $1), created_at, updated_at
	`, room.ID, room.Name, room.Capacity)
	return mapError(row.Scan(&room.ResidentCount, &room.CreatedAt, &room.UpdatedAt))
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM rooms WHERE id = $1`, id)
}

var events = table[entity.Event]{
	from: "events e LEFT JOIN rooms rm ON rm.id = e.room_id",
	selects: `e.id, e.title, e.description, e.start_time, e.end_time, e.room_id, COALESCE(rm.name, ''),
		e.created_at, e.updated_at`,
	orderBy: "e.start_time DESC, e.id DESC",
	fields: columns{
		"id":     "e.id::text",
		"title":  "e.title",
		"roomId": "e.room_id::text",
	},
	scan: func(row pgx.Row) (entity.Event, error) {
		var e entity.Event
		err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartTime, &e.EndTime, &e.RoomID, &e.RoomName,
			&e.CreatedAt, &e.UpdatedAt)
		return e, err
	},
}

type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context, q queryfilter.Resolved) ([]entity.Event, int, error) {
	return events.list(ctx, r.db, q)
}

func (r *EventRepository) Find(ctx context.Context, p queryfilter.Predicate) (*entity.Event, error) {
	return events.find(ctx, r.db, p)
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO events (title, description, start_time, end_time, room_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, COALESCE((SELECT name FROM rooms WHERE rooms.id = events.room_id), ''), created_at, updated_at
	`, e.Title, e.Description, e.StartTime, e.EndTime, e.RoomID)
	return mapError(row.Scan(&e.ID, &e.RoomName, &e.CreatedAt, &e.UpdatedAt))
}

func (r *EventRepository) Update(ctx context.Context, e *entity.Event) error {
	row := r.db.QueryRow(ctx, `
		UPDATE events
		SET title = $2, description = $3, start_time = $4, end_time = $5, room_id = $6, updated_at = now()
		WHERE id = $1
		RETURNING COALESCE((SELECT name FROM rooms WHERE rooms.id = events.room_id), ''), created_at, updated_at
	`, e.ID, e.Title, e.Description, e.StartTime, e.EndTime, e.RoomID)
	return mapError(row.Scan(&e.RoomName, &e.CreatedAt, &e.UpdatedAt))
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM events WHERE id = $1`, id)
}

var announcements = table[entity.Announcement]{
	from: "announcements an LEFT JOIN rooms rm ON rm.id = an.room_id",
	selects: `an.id, an.title, an.description, an.date, an.room_id, COALESCE(rm.name, ''),
		an.created_at, an.updated_at`,
	orderBy: "an.date DESC, an.id DESC",
	fields: columns{
		"id":     "an.id::text",
		"title":  "an.title",
		"roomId": "an.room_id::text",
	},
	scan: func(row pgx.Row) (entity.Announcement, error) {
		var a entity.Announcement
		err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Date, &a.RoomID, &a.RoomName,
			&a.CreatedAt, &a.UpdatedAt)
		return a, err
	},
}

type AnnouncementRepository struct {
	db DB
}

func NewAnnouncementRepository(db DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) List(ctx context.Context, q queryfilter.Resolved) ([]entity.Announcement, int, error) {
	return announcements.list(ctx, r.db, q)
}

func (r *AnnouncementRepository) Find(ctx context.Context, p queryfilter.Predicate) (*entity.Announcement, error) {
	return announcements.find(ctx, r.db, p)
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *entity.Announcement) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO announcements (title, description, date, room_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, COALESCE((SELECT name FROM rooms WHERE rooms.id = announcements.room_id), ''), created_at, updated_at
	`, a.Title, a.Description, a.Date, a.RoomID)
	return mapError(row.Scan(&a.ID, &a.RoomName, &a.CreatedAt, &a.UpdatedAt))
}

func (r *AnnouncementRepository) Update(ctx context.Context, a *entity.Announcement) error {
	row := r.db.QueryRow(ctx, `
		UPDATE announcements
		SET title = $2, description = $3, date = $4, room_id = $5, updated_at = now()
		WHERE id = $1
		RETURNING COALESCE((SELECT name FROM rooms WHERE rooms.id = announcements.room_id), ''), created_at, updated_at
	`, a.ID, a.Title, a.Description, a.Date, a.RoomID)
	return mapError(row.Scan(&a.RoomName, &a.CreatedAt, &a.UpdatedAt))
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM announcements WHERE id = $1`, id)
}

var (
	_ repository.RoomRepository         = (*RoomRepository)(nil)
	_ repository.EventRepository        = (*EventRepository)(nil)
	_ repository.AnnouncementRepository = (*AnnouncementRepository)(nil)
)
