package application

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/internal/domain/repository"
	"github.com/oksasatya/carehome-admin/pkg/helpers"
)

// hashInitialPassword replaces a plain password with its bcrypt hash. An
// empty password leaves the stored hash untouched.
func hashInitialPassword(plain string, hash *string) error {
	if plain == "" {
		*hash = ""
		return nil
	}
	h, err := helpers.HashPassword(plain)
	if err != nil {
		return err
	}
	*hash = h
	return nil
}

func NewStaffService(d Deps, repo repository.StaffRepository) *Service[entity.Staff] {
	return newService[entity.Staff](d, queryfilter.KindStaff, repo, repo.Delete,
		stringID(func(s *entity.Staff, id string) { s.ID = id }),
		Hooks[entity.Staff]{
			Prepare: func(_ context.Context, _ entity.Identity, existing, in *entity.Staff) error {
				if existing == nil {
					in.ID = uuid.NewString()
				}
				if !in.Role.Valid() {
					return invalid("role", "must be one of ADMIN, NURSE, CAREGIVER")
				}
				err := hashInitialPassword(in.Password, &in.PasswordHash)
				in.Password = ""
				return err
			},
		})
}

// NewFamilyMemberService wires family members. ResidentIDs links the given
// residents to the member.
func NewFamilyMemberService(d Deps, repo repository.FamilyMemberRepository) *Service[entity.FamilyMember] {
	return newService[entity.FamilyMember](d, queryfilter.KindFamilyMember, repo, repo.Delete,
		stringID(func(f *entity.FamilyMember, id string) { f.ID = id }),
		Hooks[entity.FamilyMember]{
			Prepare: func(_ context.Context, _ entity.Identity, existing, in *entity.FamilyMember) error {
				if existing == nil {
					in.ID = uuid.NewString()
				}
				if in.Username == "" && existing != nil {
					in.Username = existing.Username
				}
				if in.Username == "" {
					in.Username = in.ID
				}
				in.ResidentIDs = dedupe(in.ResidentIDs)
				err := hashInitialPassword(in.Password, &in.PasswordHash)
				in.Password = ""
				return err
			},
		})
}

func NewAdminService(d Deps, repo repository.AdminRepository) *Service[entity.Admin] {
	return newService[entity.Admin](d, queryfilter.KindAdmin, repo, repo.Delete,
		stringID(func(a *entity.Admin, id string) { a.ID = id }),
		Hooks[entity.Admin]{
			Prepare: func(_ context.Context, _ entity.Identity, existing, in *entity.Admin) error {
				if existing == nil {
					in.ID = uuid.NewString()
				}
				return nil
			},
		})
}

// dedupe drops blank and repeated ids, keeping nil as nil.
func dedupe(ids []string) []string {
	if ids == nil {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
