package application

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/carehome-admin/internal/domain/access"
	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/internal/domain/repository"
)

type fakeStore[T any] struct {
	items     []T
	total     int
	found     *T
	findErr   error
	listErr   error
	createErr error
	updateErr error
	// returning fills the columns a real store reads back after a write.
	returning func(v *T)

	listed  []queryfilter.Resolved
	finds   []queryfilter.Predicate
	created []*T
	updated []*T
}

func (f *fakeStore[T]) List(_ context.Context, q queryfilter.Resolved) ([]T, int, error) {
	f.listed = append(f.listed, q)
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.items, f.total, nil
}

func (f *fakeStore[T]) Find(_ context.Context, p queryfilter.Predicate) (*T, error) {
	f.finds = append(f.finds, p)
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.found == nil {
		return nil, repository.ErrNotFound
	}
	v := *f.found
	return &v, nil
}

func (f *fakeStore[T]) Create(_ context.Context, v *T) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.returning != nil {
		f.returning(v)
	}
	f.created = append(f.created, v)
	return nil
}

func (f *fakeStore[T]) Update(_ context.Context, v *T) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.returning != nil {
		f.returning(v)
	}
	f.updated = append(f.updated, v)
	return nil
}

type fakeResidents struct {
	fakeStore[entity.Resident]
	deleted []string
	counts  map[entity.CareLevel]int
	counted int
}

func (f *fakeResidents) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeResidents) CountByCareLevel(context.Context) (map[entity.CareLevel]int, error) {
	f.counted++
	return f.counts, nil
}

type fakeCarePlans struct {
	fakeStore[entity.CarePlan]
	deleted []int64
}

func (f *fakeCarePlans) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRoutines struct {
	fakeStore[entity.CareRoutine]
	matched []queryfilter.Predicate
	byQuery func(p queryfilter.Predicate) []entity.CareRoutine
}

func (f *fakeRoutines) Delete(context.Context, int64) error { return nil }

func (f *fakeRoutines) Matching(_ context.Context, p queryfilter.Predicate) ([]entity.CareRoutine, error) {
	f.matched = append(f.matched, p)
	if f.byQuery != nil {
		return f.byQuery(p), nil
	}
	return f.items, nil
}

type fakeFamilies struct {
	fakeStore[entity.FamilyMember]
	contacts []entity.FamilyMember
	rooms    []*int64
}

func (f *fakeFamilies) Delete(context.Context, string) error { return nil }

func (f *fakeFamilies) ContactsForRoom(_ context.Context, roomID *int64) ([]entity.FamilyMember, error) {
	f.rooms = append(f.rooms, roomID)
	return f.contacts, nil
}

type fakeStaff struct {
	fakeStore[entity.Staff]
}

func (f *fakeStaff) Delete(context.Context, string) error { return nil }

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	dels int
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (c *fakeCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = b
	c.mu.Unlock()
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.data, key)
	c.dels++
	c.mu.Unlock()
	return nil
}

type fakePublisher struct {
	jobs []any
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func testDeps(t *testing.T) Deps {
	t.Helper()
	tables, err := access.Default()
	require.NoError(t, err)
	return Deps{Resolver: queryfilter.NewResolver(10), Tables: tables, Logger: quietLogger()}
}

func who(role entity.Role, id string) entity.Identity {
	return entity.Identity{ID: id, Role: role}
}

func ptr[T any](v T) *T { return &v }
