package application

import (
	"context"
	"strings"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/internal/domain/repository"
)

// NewCarePlanService wires care plans. A nurse may only write plans assigned
// to themselves.
func NewCarePlanService(d Deps, repo repository.CarePlanRepository) *Service[entity.CarePlan] {
	return newService[entity.CarePlan](d, queryfilter.KindCarePlan, repo, numericRemove(repo.Delete),
		numericID(func(p *entity.CarePlan, id int64) { p.ID = id }),
		Hooks[entity.CarePlan]{
			Prepare: func(_ context.Context, caller entity.Identity, _, in *entity.CarePlan) error {
				if strings.TrimSpace(in.Title) == "" {
					return invalid("title", "is required")
				}
				if in.EndDate.Before(in.StartDate) {
					return invalid("end_date", "must not be before start_date")
				}
				return claim(caller, "staff_id", &in.StaffID)
			},
		})
}

// NewAssessmentService wires assessments. A nurse may only record
// assessments as the care provider.
func NewAssessmentService(d Deps, repo repository.AssessmentRepository) *Service[entity.Assessment] {
	return newService[entity.Assessment](d, queryfilter.KindAssessment, repo, numericRemove(repo.Delete),
		numericID(func(a *entity.Assessment, id int64) { a.ID = id }),
		Hooks[entity.Assessment]{
			Prepare: func(_ context.Context, caller entity.Identity, _, in *entity.Assessment) error {
				if strings.TrimSpace(in.Title) == "" {
					return invalid("title", "is required")
				}
				return claim(caller, "care_provider_id", &in.CareProviderID)
			},
		})
}

func NewMedicalRecordService(d Deps, repo repository.MedicalRecordRepository) *Service[entity.MedicalRecord] {
	return newService[entity.MedicalRecord](d, queryfilter.KindMedicalRecord, repo, numericRemove(repo.Delete),
		numericID(func(m *entity.MedicalRecord, id int64) { m.ID = id }),
		Hooks[entity.MedicalRecord]{
			Prepare: func(_ context.Context, _ entity.Identity, _, in *entity.MedicalRecord) error {
				if strings.TrimSpace(in.Title) == "" {
					return invalid("title", "is required")
				}
				return nil
			},
		})
}

// NewCareRoutineService wires care routines. Category falls back to
// entity.DefaultRoutineCategory and a nurse may only own their routines.
func NewCareRoutineService(d Deps, repo repository.CareRoutineRepository) *Service[entity.CareRoutine] {
	return newService[entity.CareRoutine](d, queryfilter.KindCareRoutine, repo, numericRemove(repo.Delete),
		numericID(func(r *entity.CareRoutine, id int64) { r.ID = id }),
		Hooks[entity.CareRoutine]{
			Prepare: func(_ context.Context, caller entity.Identity, _, in *entity.CareRoutine) error {
				if strings.TrimSpace(in.Name) == "" {
					return invalid("name", "is required")
				}
				in.Day = entity.Weekday(strings.ToUpper(string(in.Day)))
				if !in.Day.Valid() {
					return invalid("day", "must be a weekday from MONDAY to FRIDAY")
				}
				if strings.TrimSpace(in.Category) == "" {
					in.Category = entity.DefaultRoutineCategory
				}
				return claim(caller, "staff_id", &in.StaffID)
			},
		})
}
