package application

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/internal/domain/repository"
)

// NewResidentService wires resident CRUD. Writes invalidate the care-level
// chart and keep the directory index current.
func NewResidentService(d Deps, repo repository.ResidentRepository, stats *StatsService, dir *DirectoryService) *Service[entity.Resident] {
	return newService[entity.Resident](d, queryfilter.KindResident, repo, repo.Delete,
		stringID(func(r *entity.Resident, id string) { r.ID = id }),
		Hooks[entity.Resident]{
			Prepare: func(_ context.Context, _ entity.Identity, existing, in *entity.Resident) error {
				if existing == nil {
					in.ID = uuid.NewString()
				}
				in.FullName = strings.TrimSpace(in.FullName)
				if in.FullName == "" {
					return invalid("full_name", "is required")
				}
				if !in.CareLevel.Valid() {
					return invalid("care_level", "must be one of LOW, MEDIUM, HIGH")
				}
				if in.FamilyID != nil && strings.TrimSpace(*in.FamilyID) == "" {
					in.FamilyID = nil
				}
				return nil
			},
			AfterWrite: func(ctx context.Context, r *entity.Resident, _ bool) {
				stats.Invalidate(ctx)
				_ = dir.IndexResident(ctx, r)
			},
			AfterDelete: func(ctx context.Context, r *entity.Resident) {
				stats.Invalidate(ctx)
				_ = dir.RemoveResident(ctx, r.ID)
			},
		})
}
