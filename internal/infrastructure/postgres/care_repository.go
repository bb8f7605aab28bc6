package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/internal/domain/repository"
)

var carePlans = table[entity.CarePlan]{
	from: `care_plans cp
		JOIN residents r ON r.id = cp.resident_id
		LEFT JOIN staff s ON s.id = cp.staff_id`,
	selects: `cp.id, cp.title, cp.description, cp.start_date, cp.end_date, cp.resident_id, r.full_name,
		cp.staff_id, COALESCE(s.name || ' ' || s.surname, ''), cp.created_at, cp.updated_at`,
	orderBy: "cp.start_date DESC, cp.id DESC",
	fields: columns{
		"id":                "cp.id::text",
		"title":             "cp.title",
		"residentId":        "cp.resident_id",
		"staffId":           "cp.staff_id",
		"resident.fullName": "r.full_name",
		"resident.familyId": "r.family_id",
	},
	scan: func(row pgx.Row) (entity.CarePlan, error) {
		var p entity.CarePlan
		err := row.Scan(&p.ID, &p.Title, &p.Description, &p.StartDate, &p.EndDate, &p.ResidentID,
			&p.ResidentName, &p.StaffID, &p.StaffName, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	},
}

type CarePlanRepository struct {
	db DB
}

func NewCarePlanRepository(db DB) *CarePlanRepository {
	return &CarePlanRepository{db: db}
}

func (r *CarePlanRepository) List(ctx context.Context, q queryfilter.Resolved) ([]entity.CarePlan, int, error) {
	return carePlans.list(ctx, r.db, q)
}

func (r *CarePlanRepository) Find(ctx context.Context, p queryfilter.Predicate) (*entity.CarePlan, error) {
	return carePlans.find(ctx, r.db, p)
}

func (r *CarePlanRepository) Create(ctx context.Context, p *entity.CarePlan) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO care_plans (title, description, start_date, end_date, resident_id, staff_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, (SELECT full_name FROM residents WHERE id = care_plans.resident_id),
			COALESCE((SELECT name || ' ' || surname FROM staff WHERE id = care_plans.staff_id), ''),
			created_at, updated_at
	`, p.Title, p.Description, p.StartDate, p.EndDate, p.ResidentID, p.StaffID)
	return mapError(row.Scan(&p.ID, &p.ResidentName, &p.StaffName, &p.CreatedAt, &p.UpdatedAt))
}

func (r *CarePlanRepository) Update(ctx context.Context, p *entity.CarePlan) error {
	row := r.db.QueryRow(ctx, `
		UPDATE care_plans
		SET title = $2, description = $3, start_date = $4, end_date = $5, resident_id = $6, staff_id = $7,
			updated_at = now()
		WHERE id = $1
		RETURNING (SELECT full_name FROM residents WHERE id = care_plans.resident_id),
			COALESCE((SELECT name || ' ' || surname FROM staff WHERE id = care_plans.staff_id), ''),
			created_at, updated_at
	`, p.ID, p.Title, p.Description, p.StartDate, p.EndDate, p.ResidentID, p.StaffID)
	return mapError(row.Scan(&p.ResidentName, &p.StaffName, &p.CreatedAt, &p.UpdatedAt))
}

func (r *CarePlanRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM care_plans WHERE id = $1`, id)
}

var assessments = table[entity.Assessment]{
	from: `assessments a
		JOIN residents r ON r.id = a.resident_id
		LEFT JOIN rooms rm ON rm.id = r.room_id
		LEFT JOIN staff s ON s.id = a.care_provider_id`,
	selects: `a.id, a.title, a.score, a.notes, a.date, a.resident_id, r.full_name, COALESCE(rm.name, ''),
		a.care_provider_id, COALESCE(s.name || ' ' || s.surname, ''), a.created_at, a.updated_at`,
	orderBy: "a.date DESC, a.id DESC",
	fields: columns{
		"id":                "a.id::text",
		"title":             "a.title",
		"residentId":        "a.resident_id",
		"careProviderId":    "a.care_provider_id",
		"resident.fullName": "r.full_name",
		"resident.familyId": "r.family_id",
	},
	scan: func(row pgx.Row) (entity.Assessment, error) {
		var a entity.Assessment
		err := row.Scan(&a.ID, &a.Title, &a.Score, &a.Notes, &a.Date, &a.ResidentID, &a.ResidentName,
			&a.RoomName, &a.CareProviderID, &a.CareProviderName, &a.CreatedAt, &a.UpdatedAt)
		return a, err
	},
}

type AssessmentRepository struct {
	db DB
}

func NewAssessmentRepository(db DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) List(ctx context.Context, q queryfilter.Resolved) ([]entity.Assessment, int, error) {
	return assessments.list(ctx, r.db, q)
}

func (r *AssessmentRepository) Find(ctx context.Context, p queryfilter.Predicate) (*entity.Assessment, error) {
	return assessments.find(ctx, r.db, p)
}

func (r *AssessmentRepository) Create(ctx context.Context, a *entity.Assessment) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO assessments (title, score, notes, date, resident_id, care_provider_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, (SELECT full_name FROM residents WHERE id = assessments.resident_id),
			COALESCE((SELECT rm.name FROM residents x JOIN rooms rm ON rm.id = x.room_id
				WHERE x.id = assessments.resident_id), ''),
			COALESCE((SELECT name || ' ' || surname FROM staff WHERE id = assessments.care_provider_id), ''),
			created_at, updated_at
	`, a.Title, a.Score, a.Notes, a.Date, a.ResidentID, a.CareProviderID)
	return mapError(row.Scan(&a.ID, &a.ResidentName, &a.RoomName, &a.CareProviderName, &a.CreatedAt, &a.UpdatedAt))
}

func (r *AssessmentRepository) Update(ctx context.Context, a *entity.Assessment) error {
	row := r.db.QueryRow(ctx, `
		UPDATE assessments
		SET title = $2, score = $3, notes = $4, date = $5, resident_id = $6, care_provider_id = $7,
			updated_at = now()
		WHERE id = $1
		RETURNING (SELECT full_name FROM residents WHERE id = assessments.resident_id),
			COALESCE((SELECT rm.name FROM residents x JOIN rooms rm ON rm.id = x.room_id
				WHERE x.id = assessments.resident_id), ''),
			COALESCE((SELECT name || ' ' || surname FROM staff WHERE id = assessments.care_provider_id), ''),
			created_at, updated_at
	`, a.ID, a.Title, a.Score, a.Notes, a.Date, a.ResidentID, a.CareProviderID)
	return mapError(row.Scan(&a.ResidentName, &a.RoomName, &a.CareProviderName, &a.CreatedAt, &a.UpdatedAt))
}

func (r *AssessmentRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM assessments WHERE id = $1`, id)
}

var medicalRecords = table[entity.MedicalRecord]{
	from:    "medical_records mr JOIN residents r ON r.id = mr.resident_id",
	selects: "mr.id, mr.title, mr.description, mr.date, mr.resident_id, r.full_name, mr.created_at, mr.updated_at",
	orderBy: "mr.date DESC, mr.id DESC",
	fields: columns{
		"id":                "mr.id::text",
		"title":             "mr.title",
		"residentId":        "mr.resident_id",
		"resident.fullName": "r.full_name",
		"resident.familyId": "r.family_id",
	},
	scan: func(row pgx.Row) (entity.MedicalRecord, error) {
		var m entity.MedicalRecord
		err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Date, &m.ResidentID, &m.ResidentName,
			&m.CreatedAt, &m.UpdatedAt)
		return m, err
	},
}

type MedicalRecordRepository struct {
	db DB
}

func NewMedicalRecordRepository(db DB) *MedicalRecordRepository {
	return &MedicalRecordRepository{db: db}
}

func (r *MedicalRecordRepository) List(ctx context.Context, q queryfilter.Resolved) ([]entity.MedicalRecord, int, error) {
	return medicalRecords.list(ctx, r.db, q)
}

func (r *MedicalRecordRepository) Find(ctx context.Context, p queryfilter.Predicate) (*entity.MedicalRecord, error) {
	return medicalRecords.find(ctx, r.db, p)
}

func (r *MedicalRecordRepository) Create(ctx context.Context, m *entity.MedicalRecord) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO medical_records (title, description, date, resident_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, (SELECT full_name FROM residents WHERE id = medical_records.resident_id), created_at, updated_at
	`, m.Title, m.Description, m.Date, m.ResidentID)
	return mapError(row.Scan(&m.ID, &m.ResidentName, &m.CreatedAt, &m.UpdatedAt))
}

func (r *MedicalRecordRepository) Update(ctx context.Context, m *entity.MedicalRecord) error {
	row := r.db.QueryRow(ctx, `
		UPDATE medical_records
		SET title = $2, description = $3, date = $4, resident_id = $5, updated_at = now()
		WHERE id = $1
		RETURNING (SELECT full_name FROM residents WHERE id = medical_records.resident_id), created_at, updated_at
	`, m.ID, m.Title, m.Description, m.Date, m.ResidentID)
	return mapError(row.Scan(&m.ResidentName, &m.CreatedAt, &m.UpdatedAt))
}

func (r *MedicalRecordRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM medical_records WHERE id = $1`, id)
}

var (
	_ repository.CarePlanRepository      = (*CarePlanRepository)(nil)
	_ repository.AssessmentRepository    = (*AssessmentRepository)(nil)
	_ repository.MedicalRecordRepository = (*MedicalRecordRepository)(nil)
)
