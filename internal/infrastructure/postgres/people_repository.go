package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/internal/domain/repository"
)

var staffTable = table[entity.Staff]{
	from: "staff s",
	selects: `s.id, s.username, s.name, s.surname, COALESCE(s.email, ''), COALESCE(s.phone, ''), s.address,
		s.role, s.password_hash, s.created_at, s.updated_at`,
	orderBy: "s.surname, s.name, s.id",
	fields: columns{
		"id":      "s.id",
		"name":    "s.name",
		"surname": "s.surname",
		"role":    "s.role",
	},
	scan: func(row pgx.Row) (entity.Staff, error) {
		var s entity.Staff
		err := row.Scan(&s.ID, &s.Username, &s.Name, &s.Surname, &s.Email, &s.Phone, &s.Address,
			&s.Role, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	},
}

type StaffRepository struct {
	db DB
}

func NewStaffRepository(db DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) List(ctx context.Context, q queryfilter.Resolved) ([]entity.Staff, int, error) {
	return staffTable.list(ctx, r.db, q)
}

func (r *StaffRepository) Find(ctx context.Context, p queryfilter.Predicate) (*entity.Staff, error) {
	return staffTable.find(ctx, r.db, p)
}

func (r *StaffRepository) Create(ctx context.Context, s *entity.Staff) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO staff (id, username, name, surname, email, phone, address, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, s.ID, s.Username, s.Name, s.Surname, nullString(s.Email), nullString(s.Phone), s.Address, s.Role,
		s.PasswordHash)
	return mapError(row.Scan(&s.CreatedAt, &s.UpdatedAt))
}

// Update keeps the stored password hash when s.PasswordHash is empty.
func (r *StaffRepository) Update(ctx context.Context, s *entity.Staff) error {
	row := r.db.QueryRow(ctx, `
		UPDATE staff
		SET username = $2, name = $3, surname = $4, email = $5, phone = $6, address = $7, role = $8,
			password_hash = COALESCE(NULLIF($9, ''), password_hash), updated_at = now()
		WHERE id = $1
		RETURNING password_hash, created_at, updated_at
	`, s.ID, s.Username, s.Name, s.Surname, nullString(s.Email), nullString(s.Phone), s.Address, s.Role,
		s.PasswordHash)
	return mapError(row.Scan(&s.PasswordHash, &s.CreatedAt, &s.UpdatedAt))
}

func (r *StaffRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, `DELETE FROM staff WHERE id = $1`, id)
}

var familyMembers = table[entity.FamilyMember]{
	from: "family_members fm",
	selects: `fm.id, fm.username, fm.name, fm.surname, COALESCE(fm.email, ''), COALESCE(fm.phone, ''),
		fm.address, fm.password_hash, ARRAY(SELECT x.id FROM residents x WHERE x.family_id = fm.id ORDER BY x.id),
		fm.created_at, fm.updated_at`,
	orderBy: "fm.surname, fm.name, fm.id",
	fields: columns{
		"id":           "fm.id",
		"name":         "fm.name",
		"surname":      "fm.surname",
		"residents.id": "fm.id IN (SELECT family_id FROM residents WHERE id = ?)",
	},
	scan: func(row pgx.Row) (entity.FamilyMember, error) {
		var f entity.FamilyMember
		err := row.Scan(&f.ID, &f.Username, &f.Name, &f.Surname, &f.Email, &f.Phone, &f.Address,
			&f.PasswordHash, &f.ResidentIDs, &f.CreatedAt, &f.UpdatedAt)
		return f, err
	},
}

type FamilyMemberRepository struct {
	db DB
}

func NewFamilyMemberRepository(db DB) *FamilyMemberRepository {
	return &FamilyMemberRepository{db: db}
}

func (r *FamilyMemberRepository) List(ctx context.Context, q queryfilter.Resolved) ([]entity.FamilyMember, int, error) {
	return familyMembers.list(ctx, r.db, q)
}

func (r *FamilyMemberRepository) Find(ctx context.Context, p queryfilter.Predicate) (*entity.FamilyMember, error) {
	return familyMembers.find(ctx, r.db, p)
}

func (r *FamilyMemberRepository) Create(ctx context.Context, f *entity.FamilyMember) error {
	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO family_members (id, username, name, surname, email, phone, address, password_hash)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at, updated_at
		`, f.ID, f.Username, f.Name, f.Surname, nullString(f.Email), nullString(f.Phone), f.Address,
			f.PasswordHash)
		if err := row.Scan(&f.CreatedAt, &f.UpdatedAt); err != nil {
			return err
		}
		return linkResidents(ctx, tx, f)
	})
	return mapError(err)
}

// Update keeps the stored password hash when f.PasswordHash is empty and
// leaves resident links alone when f.ResidentIDs is nil.
func (r *FamilyMemberRepository) Update(ctx context.Context, f *entity.FamilyMember) error {
	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE family_members
			SET username = $2, name = $3, surname = $4, email = $5, phone = $6, address = $7,
				password_hash = COALESCE(NULLIF($8, ''), password_hash), updated_at = now()
			WHERE id = $1
			RETURNING password_hash, created_at, updated_at
		`, f.ID, f.Username, f.Name, f.Surname, nullString(f.Email), nullString(f.Phone), f.Address,
			f.PasswordHash)
		if err := row.Scan(&f.PasswordHash, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return err
		}
		if f.ResidentIDs == nil {
			return tx.QueryRow(ctx, `SELECT ARRAY(SELECT id FROM residents WHERE family_id = $1 ORDER BY id)`,
				f.ID).Scan(&f.ResidentIDs)
		}
		if _, err := tx.Exec(ctx, `
			UPDATE residents SET family_id = NULL, updated_at = now()
			WHERE family_id = $1 AND NOT (id = ANY($2))
		`, f.ID, f.ResidentIDs); err != nil {
			return err
		}
		return linkResidents(ctx, tx, f)
	})
	return mapError(err)
}

// linkResidents points every resident in f.ResidentIDs at f. Unknown
// resident ids are rejected.
func linkResidents(ctx context.Context, tx pgx.Tx, f *entity.FamilyMember) error {
	if f.ResidentIDs == nil {
		f.ResidentIDs = []string{}
	}
	if len(f.ResidentIDs) == 0 {
		return nil
	}
	tag, err := tx.Exec(ctx, `
		UPDATE residents SET family_id = $1, updated_at = now() WHERE id = ANY($2)
	`, f.ID, f.ResidentIDs)
	if err != nil {
		return err
	}
	if int(tag.RowsAffected()) != len(f.ResidentIDs) {
		return repository.ErrReference
	}
	return nil
}

func (r *FamilyMemberRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, `DELETE FROM family_members WHERE id = $1`, id)
}

func (r *FamilyMemberRepository) ContactsForRoom(ctx context.Context, roomID *int64) ([]entity.FamilyMember, error) {
	var rows pgx.Rows
	var err error
	if roomID == nil {
		rows, err = r.db.Query(ctx, "SELECT "+familyMembers.selects+" FROM "+familyMembers.from+
			" WHERE fm.email IS NOT NULL ORDER BY "+familyMembers.orderBy)
	} else {
		rows, err = r.db.Query(ctx, "SELECT "+familyMembers.selects+" FROM "+familyMembers.from+
			" WHERE fm.email IS NOT NULL AND fm.id IN (SELECT family_id FROM residents WHERE room_id = $1)"+
			" ORDER BY "+familyMembers.orderBy, *roomID)
	}
	if err != nil {
		return nil, mapError(err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.FamilyMember, error) {
		return familyMembers.scan(row)
	})
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

var admins = table[entity.Admin]{
	from: "admins ad",
	selects: `ad.id, ad.username, ad.name, ad.surname, COALESCE(ad.email, ''), COALESCE(ad.phone, ''),
		ad.created_at, ad.updated_at`,
	orderBy: "ad.surname, ad.name, ad.id",
	fields: columns{
		"id":      "ad.id",
		"name":    "ad.name",
		"surname": "ad.surname",
	},
	scan: func(row pgx.Row) (entity.Admin, error) {
		var a entity.Admin
		err := row.Scan(&a.ID, &a.Username, &a.Name, &a.Surname, &a.Email, &a.Phone, &a.CreatedAt, &a.UpdatedAt)
		return a, err
	},
}

type AdminRepository struct {
	db DB
}

func NewAdminRepository(db DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) List(ctx context.Context, q queryfilter.Resolved) ([]entity.Admin, int, error) {
	return admins.list(ctx, r.db, q)
}

func (r *AdminRepository) Find(ctx context.Context, p queryfilter.Predicate) (*entity.Admin, error) {
	return admins.find(ctx, r.db, p)
}

func (r *AdminRepository) Create(ctx context.Context, a *entity.Admin) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO admins (id, username, name, surname, email, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, a.ID, a.Username, a.Name, a.Surname, nullString(a.Email), nullString(a.Phone))
	return mapError(row.Scan(&a.CreatedAt, &a.UpdatedAt))
}

func (r *AdminRepository) Update(ctx context.Context, a *entity.Admin) error {
	row := r.db.QueryRow(ctx, `
		UPDATE admins
		SET username = $2, name = $3, surname = $4, email = $5, phone = $6, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, a.ID, a.Username, a.Name, a.Surname, nullString(a.Email), nullString(a.Phone))
	return mapError(row.Scan(&a.CreatedAt, &a.UpdatedAt))
}

func (r *AdminRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, `DELETE FROM admins WHERE id = $1`, id)
}

var (
	_ repository.StaffRepository        = (*StaffRepository)(nil)
	_ repository.FamilyMemberRepository = (*FamilyMemberRepository)(nil)
	_ repository.AdminRepository        = (*AdminRepository)(nil)
)
