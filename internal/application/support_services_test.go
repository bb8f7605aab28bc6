package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/carehome-admin/config"
	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/pkg/mailer"
	mailtpl "github.com/oksasatya/carehome-admin/pkg/mailer/templates"
)

func TestCareLevels_CachesSummary(t *testing.T) {
	repo := &fakeResidents{counts: map[entity.CareLevel]int{
		entity.CareLevelLow: 17, entity.CareLevelMedium: 17, entity.CareLevelHigh: 16,
	}}
	cache := newFakeCache()
	svc := NewStatsService(repo, cache, time.Minute, quietLogger())

	got, err := svc.CareLevels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, got.Total)
	require.Len(t, got.Levels, 3)
	assert.Equal(t, entity.CareLevelLow, got.Levels[0].Level)
	assert.Equal(t, 34.0, got.Levels[0].Percent)
	assert.Equal(t, 32.0, got.Levels[2].Percent)

	again, err := svc.CareLevels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Equal(t, 1, repo.counted)

	svc.Invalidate(context.Background())
	_, err = svc.CareLevels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.counted)
}

func TestSummarize_EmptyHasZeroPercent(t *testing.T) {
	got := summarize(nil)
	assert.Equal(t, 0, got.Total)
	require.Len(t, got.Levels, 3)
	for _, l := range got.Levels {
		assert.Zero(t, l.Percent)
	}
}

func TestInvalidate_NilSafe(t *testing.T) {
	var s *StatsService
	assert.NotPanics(t, func() { s.Invalidate(context.Background()) })
}

func TestSchedule_FamilyGetsCalendarPerResident(t *testing.T) {
	residents := &fakeResidents{}
	residents.items = []entity.Resident{{ID: "r1", FullName: "Resident 1"}, {ID: "r2", FullName: "Resident 2"}}
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	routines := &fakeRoutines{byQuery: func(p queryfilter.Predicate) []entity.CareRoutine {
		if p.Implies(queryfilter.Eq("room.residentId", "r1")) {
			return []entity.CareRoutine{{Name: "Walk", Day: entity.Wednesday, StartTime: start, EndTime: start.Add(time.Hour)}}
		}
		return nil
	}}
	svc := NewScheduleService(routines, residents, queryfilter.NewResolver(10))
	svc.Now = func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }

	cals, err := svc.Mine(context.Background(), who(entity.RoleFamily, "family1"))
	require.NoError(t, err)
	require.Len(t, cals, 2)
	assert.Equal(t, "Resident 1", cals[0].Label)
	require.Len(t, cals[0].Events, 1)
	assert.Equal(t, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC), cals[0].Events[0].Start)
	assert.Empty(t, cals[1].Events)

	require.Len(t, residents.listed, 1)
	assert.True(t, residents.listed[0].Predicate.Implies(queryfilter.Eq("familyId", "family1")))
	for _, p := range routines.matched {
		assert.True(t, p.Implies(queryfilter.Eq("room.familyId", "family1")))
	}
}

func TestSchedule_NurseSeesOwnRoutines(t *testing.T) {
	routines := &fakeRoutines{}
	svc := NewScheduleService(routines, &fakeResidents{}, queryfilter.NewResolver(10))

	cals, err := svc.Mine(context.Background(), who(entity.RoleNurse, "staff2"))
	require.NoError(t, err)
	require.Len(t, cals, 1)
	require.Len(t, routines.matched, 1)
	assert.True(t, routines.matched[0].Equal(queryfilter.Eq("staffId", "staff2")))
}

func TestSchedule_DeniedCallerSkipsStore(t *testing.T) {
	routines := &fakeRoutines{}
	svc := NewScheduleService(routines, &fakeResidents{}, queryfilter.NewResolver(10))

	cal, err := svc.Filtered(context.Background(), who(entity.RoleNone, ""), "staff1", "")
	require.NoError(t, err)
	assert.Empty(t, cal.Events)
	assert.Empty(t, routines.matched)
}

func TestSchedule_FilteredByRoom(t *testing.T) {
	routines := &fakeRoutines{}
	svc := NewScheduleService(routines, &fakeResidents{}, queryfilter.NewResolver(10))

	cal, err := svc.Filtered(context.Background(), who(entity.RoleAdmin, "admin1"), "", "3")
	require.NoError(t, err)
	assert.Equal(t, "Room 3", cal.Label)
	require.Len(t, routines.matched, 1)
	assert.True(t, routines.matched[0].Equal(queryfilter.Eq("roomId", "3")))
}

func TestAnnouncementCreated_PublishesPerContact(t *testing.T) {
	families := &fakeFamilies{contacts: []entity.FamilyMember{
		{ID: "f1", Name: "Family Name 1", Surname: "Family Surname 1", Email: "family1@example.com"},
		{ID: "f2", Name: "No", Surname: "Mail"},
	}}
	pub := &fakePublisher{}
	cfg := &config.Config{NotifyAnnouncements: true, MailSendEnabled: true, CompanyName: "Sunrise"}
	svc := NewNotificationService(families, pub, cfg, quietLogger())

	room := int64(2)
	n, err := svc.AnnouncementCreated(context.Background(), &entity.Announcement{ID: 1, Title: "Flu shots", RoomID: &room})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, families.rooms, 1)
	assert.Equal(t, &room, families.rooms[0])

	require.Len(t, pub.jobs, 1)
	job, ok := pub.jobs[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "family1@example.com", job.To)
	assert.Equal(t, mailtpl.Announcement, job.Template)
	assert.Equal(t, "Family Name 1 Family Surname 1", job.Data["Name"])
	assert.Equal(t, "Flu shots", job.Data["Title"])
}

func TestAnnouncementCreated_Disabled(t *testing.T) {
	families := &fakeFamilies{contacts: []entity.FamilyMember{{Email: "a@example.com"}}}
	pub := &fakePublisher{}
	svc := NewNotificationService(families, pub, &config.Config{NotifyAnnouncements: true}, nil)

	n, err := svc.AnnouncementCreated(context.Background(), &entity.Announcement{Title: "x"})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, families.rooms)
}

func TestAnnouncementCreated_PublishError(t *testing.T) {
	families := &fakeFamilies{contacts: []entity.FamilyMember{{Email: "a@example.com"}}}
	pub := &fakePublisher{err: errors.New("channel closed")}
	cfg := &config.Config{NotifyAnnouncements: true, MailSendEnabled: true}
	svc := NewNotificationService(families, pub, cfg, quietLogger())

	n, err := svc.AnnouncementCreated(context.Background(), &entity.Announcement{Title: "x"})
	assert.EqualError(t, err, "channel closed")
	assert.Zero(t, n)
}

func TestAnnouncementService_NotifiesOnCreateOnly(t *testing.T) {
	families := &fakeFamilies{contacts: []entity.FamilyMember{{Email: "a@example.com"}}}
	pub := &fakePublisher{}
	cfg := &config.Config{NotifyAnnouncements: true, MailSendEnabled: true}
	repo := &fakeAnnouncements{}
	repo.found = &entity.Announcement{ID: 3, Title: "Old"}
	svc := NewAnnouncementService(testDeps(t), repo, NewNotificationService(families, pub, cfg, nil))

	admin := who(entity.RoleAdmin, "admin1")
	require.NoError(t, svc.Create(context.Background(), admin, &entity.Announcement{Title: "Party"}))
	require.NoError(t, svc.Update(context.Background(), admin, "3", &entity.Announcement{Title: "Party!"}))
	assert.Len(t, pub.jobs, 1)
}

func TestAnnouncementService_MailCarriesRoomName(t *testing.T) {
	families := &fakeFamilies{contacts: []entity.FamilyMember{{Name: "Fay", Email: "fay@example.com"}}}
	pub := &fakePublisher{}
	cfg := &config.Config{NotifyAnnouncements: true, MailSendEnabled: true}
	repo := &fakeAnnouncements{}
	repo.returning = func(a *entity.Announcement) { a.ID, a.RoomName = 9, "Room 3" }
	svc := NewAnnouncementService(testDeps(t), repo, NewNotificationService(families, pub, cfg, nil))

	in := &entity.Announcement{Title: "Lift service", RoomID: ptr(int64(3))}
	require.NoError(t, svc.Create(context.Background(), who(entity.RoleAdmin, "admin1"), in))

	require.Len(t, pub.jobs, 1)
	job := pub.jobs[0].(mailer.EmailJob)
	assert.Equal(t, "Room 3", job.Data["RoomName"])
}

func TestAnnouncementService_LogsNotificationFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	families := &fakeFamilies{contacts: []entity.FamilyMember{{Email: "a@example.com"}}}
	pub := &fakePublisher{err: errors.New("channel closed")}
	cfg := &config.Config{NotifyAnnouncements: true, MailSendEnabled: true}
	d := testDeps(t)
	d.Logger = logger
	svc := NewAnnouncementService(d, &fakeAnnouncements{}, NewNotificationService(families, pub, cfg, logger))

	require.NoError(t, svc.Create(context.Background(), who(entity.RoleAdmin, "admin1"), &entity.Announcement{Title: "Party"}))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "announcement notification failed", entry.Message)
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "channel closed")
}

type fakeAnnouncements struct {
	fakeStore[entity.Announcement]
}

func (f *fakeAnnouncements) Delete(context.Context, int64) error { return nil }

type esStub struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
}

func (s *esStub) handler(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	s.bodies = append(s.bodies, string(b))
	s.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	case http.MethodPost:
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_source":{"id":"r1","full_name":"Resident 1","care_level":"LOW","updated_at":""}}]}}`))
	default:
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}
}

func newDirectory(t *testing.T) (*DirectoryService, *esStub) {
	t.Helper()
	stub := &esStub{}
	srv := httptest.NewServer(http.HandlerFunc(stub.handler))
	t.Cleanup(srv.Close)
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewDirectoryService(es, "residents", quietLogger()), stub
}

func TestDirectory_IndexSearchRemove(t *testing.T) {
	dir, stub := newDirectory(t)
	ctx := context.Background()

	require.NoError(t, dir.IndexResident(ctx, &entity.Resident{ID: "r1", FullName: "Resident 1", CareLevel: entity.CareLevelLow}))
	hits, err := dir.Search(ctx, "resident", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Resident 1", hits[0].FullName)
	require.NoError(t, dir.RemoveResident(ctx, "r1"))

	require.Len(t, stub.requests, 3)
	assert.Equal(t, "PUT /residents/_doc/r1", stub.requests[0])
	assert.Equal(t, "POST /residents/_search", stub.requests[1])
	assert.Equal(t, "DELETE /residents/_doc/r1", stub.requests[2])

	var doc DirectoryEntry
	require.NoError(t, json.Unmarshal([]byte(stub.bodies[0]), &doc))
	assert.Equal(t, "Resident 1", doc.FullName)

	var query map[string]any
	require.NoError(t, json.Unmarshal([]byte(stub.bodies[1]), &query))
	assert.EqualValues(t, 10, query["size"])
}

func TestResidentService_IndexesRoomName(t *testing.T) {
	dir, stub := newDirectory(t)
	repo := &fakeResidents{}
	repo.returning = func(r *entity.Resident) { r.RoomName = "Room 3" }
	svc := NewResidentService(testDeps(t), repo, nil, dir)

	in := &entity.Resident{FullName: "Ann Bell", CareLevel: entity.CareLevelLow, RoomID: ptr(int64(3))}
	require.NoError(t, svc.Create(context.Background(), who(entity.RoleAdmin, "admin1"), in))

	require.Len(t, stub.bodies, 1)
	var doc DirectoryEntry
	require.NoError(t, json.Unmarshal([]byte(stub.bodies[0]), &doc))
	assert.Equal(t, "Room 3", doc.RoomName)
	assert.Equal(t, "Ann Bell", doc.FullName)
}

func TestDirectory_DisabledWithoutClient(t *testing.T) {
	dir := NewDirectoryService(nil, "residents", nil)
	hits, err := dir.Search(context.Background(), "x", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.NoError(t, dir.IndexResident(context.Background(), &entity.Resident{ID: "r1"}))
	assert.NoError(t, dir.RemoveResident(context.Background(), "r1"))
}
