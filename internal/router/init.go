package router

import (
	"github.com/oksasatya/carehome-admin/internal/application"
	"github.com/oksasatya/carehome-admin/internal/container"
	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	pginfra "github.com/oksasatya/carehome-admin/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/carehome-admin/internal/interface/http"
	"github.com/oksasatya/carehome-admin/internal/router/modules"
	"github.com/oksasatya/carehome-admin/pkg/helpers"
)

// Services is every application service the HTTP layer talks to.
type Services struct {
	Residents      *application.Service[entity.Resident]
	Staff          *application.Service[entity.Staff]
	FamilyMembers  *application.Service[entity.FamilyMember]
	Admins         *application.Service[entity.Admin]
	Rooms          *application.Service[entity.Room]
	CarePlans      *application.Service[entity.CarePlan]
	Assessments    *application.Service[entity.Assessment]
	MedicalRecords *application.Service[entity.MedicalRecord]
	CareRoutines   *application.Service[entity.CareRoutine]
	Events         *application.Service[entity.Event]
	Announcements  *application.Service[entity.Announcement]

	Schedule  *application.ScheduleService
	Stats     *application.StatsService
	Directory *application.DirectoryService
}

func buildServices() Services {
	pool := container.GetPGPool()
	cfg := container.GetConfig()
	logger := container.GetLogger()
	d := application.Deps{
		Resolver: container.GetResolver(),
		Tables:   container.GetAccess(),
		Logger:   logger,
	}

	residents := pginfra.NewResidentRepository(pool)
	families := pginfra.NewFamilyMemberRepository(pool)
	routines := pginfra.NewCareRoutineRepository(pool)

	stats := application.NewStatsService(residents, helpers.RedisCache{RDB: container.GetRedis()}, cfg.StatsCacheTTL, logger)
	dir := application.NewDirectoryService(container.GetES(), cfg.ESResidentsIndex, logger)

	var notify *application.NotificationService
	if pub := container.GetRabbitPub(); pub != nil {
		notify = application.NewNotificationService(families, pub, cfg, logger)
	}

	return Services{
		Residents:      application.NewResidentService(d, residents, stats, dir),
		Staff:          application.NewStaffService(d, pginfra.NewStaffRepository(pool)),
		FamilyMembers:  application.NewFamilyMemberService(d, families),
		Admins:         application.NewAdminService(d, pginfra.NewAdminRepository(pool)),
		Rooms:          application.NewRoomService(d, pginfra.NewRoomRepository(pool)),
		CarePlans:      application.NewCarePlanService(d, pginfra.NewCarePlanRepository(pool)),
		Assessments:    application.NewAssessmentService(d, pginfra.NewAssessmentRepository(pool)),
		MedicalRecords: application.NewMedicalRecordService(d, pginfra.NewMedicalRecordRepository(pool)),
		CareRoutines:   application.NewCareRoutineService(d, routines),
		Events:         application.NewEventService(d, pginfra.NewEventRepository(pool)),
		Announcements:  application.NewAnnouncementService(d, pginfra.NewAnnouncementRepository(pool), notify),

		Schedule:  application.NewScheduleService(routines, residents, d.Resolver),
		Stats:     stats,
		Directory: dir,
	}
}

// InitModules builds every service and registers its module with the registry.
// Call once during startup, after the container is populated.
func InitModules(r *Registry) {
	s := buildServices()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	guard := modules.Guard{
		JWT:       container.GetJWT(),
		Tables:    container.GetAccess(),
		Redis:     container.GetRedis(),
		PerMinute: cfg.RateLimitPerMinute,
	}

	r.Engine.GET("/healthz", handlers.Healthz(container.GetPGPool()))

	r.Add(modules.NewResourceModule(guard,
		modules.Mount{Path: "/admins", Handler: handlers.NewResourceHandler[entity.Admin, handlers.AdminRequest](s.Admins, "admin", logger)},
		modules.Mount{Path: "/staff", Handler: handlers.NewResourceHandler[entity.Staff, handlers.StaffRequest](s.Staff, "staff", logger)},
		modules.Mount{Path: "/residents", Handler: handlers.NewResourceHandler[entity.Resident, handlers.ResidentRequest](s.Residents, "resident", logger)},
		modules.Mount{Path: "/family-members", Handler: handlers.NewResourceHandler[entity.FamilyMember, handlers.FamilyMemberRequest](s.FamilyMembers, "family member", logger)},
		modules.Mount{Path: "/rooms", Handler: handlers.NewResourceHandler[entity.Room, handlers.RoomRequest](s.Rooms, "room", logger)},
		modules.Mount{Path: "/care-plans", Handler: handlers.NewResourceHandler[entity.CarePlan, handlers.CarePlanRequest](s.CarePlans, "care plan", logger)},
		modules.Mount{Path: "/assessments", Handler: handlers.NewResourceHandler[entity.Assessment, handlers.AssessmentRequest](s.Assessments, "assessment", logger)},
		modules.Mount{Path: "/medical-records", Handler: handlers.NewResourceHandler[entity.MedicalRecord, handlers.MedicalRecordRequest](s.MedicalRecords, "medical record", logger)},
		modules.Mount{Path: "/care-routines", Handler: handlers.NewResourceHandler[entity.CareRoutine, handlers.CareRoutineRequest](s.CareRoutines, "care routine", logger)},
		modules.Mount{Path: "/events", Handler: handlers.NewResourceHandler[entity.Event, handlers.EventRequest](s.Events, "event", logger)},
		modules.Mount{Path: "/announcements", Handler: handlers.NewResourceHandler[entity.Announcement, handlers.AnnouncementRequest](s.Announcements, "announcement", logger)},
	))
	r.Add(modules.NewCareModule(guard,
		handlers.NewMeHandler(container.GetAccess(), s.Residents, s.Schedule, logger),
		handlers.NewInsightHandler(s.Stats, s.Directory, logger),
	))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetRedis()))
	}
}
