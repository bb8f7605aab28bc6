package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/carehome-admin/internal/domain/access"
	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
	"github.com/oksasatya/carehome-admin/internal/domain/repository"
)

// Page is one page of a role-scoped listing.
type Page[T any] struct {
	Items []T
	Page  int
	Limit int
	Total int
}

// Store is the persistence a Service needs for one kind.
type Store[T any] interface {
	repository.Lister[T]
	Create(ctx context.Context, v *T) error
	Update(ctx context.Context, v *T) error
}

// Hooks customise a Service for one kind. Every hook is optional.
type Hooks[T any] struct {
	// Prepare validates and normalises in before it is written. existing is
	// nil on create.
	Prepare func(ctx context.Context, caller entity.Identity, existing, in *T) error
	// AfterWrite runs once a create or update has been stored.
	AfterWrite func(ctx context.Context, v *T, created bool)
	// AfterDelete runs once a row has been removed.
	AfterDelete func(ctx context.Context, v *T)
}

// Service lists, reads and writes one entity kind on behalf of a caller.
// Every read goes through the resolver, so a caller only ever sees rows
// inside its role scope, and writes additionally need the kind's write
// permission.
type Service[T any] struct {
	Kind     queryfilter.Kind
	Store    Store[T]
	Resolver *queryfilter.Resolver
	Tables   *access.Tables
	Logger   *logrus.Logger

	remove func(ctx context.Context, id string) error
	setID  func(v *T, id string) error
	hooks  Hooks[T]
}

// List returns the page of rows caller may see for req.
func (s *Service[T]) List(ctx context.Context, caller entity.Identity, req queryfilter.Request) (Page[T], error) {
	q, err := s.Resolver.Resolve(s.Kind, caller, req)
	if err != nil {
		return Page[T]{}, err
	}
	if q.Predicate.IsFalse() {
		return Page[T]{Items: []T{}, Page: q.Page, Limit: q.Limit}, nil
	}
	items, total, err := s.Store.List(ctx, q)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("kind", s.Kind).Error("list failed")
		}
		return Page[T]{}, fromRepo(err)
	}
	return Page[T]{Items: items, Page: q.Page, Limit: q.Limit, Total: total}, nil
}

// Get returns the row with id when it lies inside caller's scope.
func (s *Service[T]) Get(ctx context.Context, caller entity.Identity, id string) (*T, error) {
	p, err := s.Resolver.Scope(s.Kind, caller, queryfilter.Eq("id", id))
	if err != nil {
		return nil, err
	}
	if p.IsFalse() {
		return nil, ErrNotFound
	}
	v, err := s.Store.Find(ctx, p)
	if err != nil {
		return nil, fromRepo(err)
	}
	return v, nil
}

func (s *Service[T]) Create(ctx context.Context, caller entity.Identity, in *T) error {
	if err := s.authorize(caller); err != nil {
		return err
	}
	if s.hooks.Prepare != nil {
		if err := s.hooks.Prepare(ctx, caller, nil, in); err != nil {
			return err
		}
	}
	if err := s.Store.Create(ctx, in); err != nil {
		return fromRepo(err)
	}
	if s.hooks.AfterWrite != nil {
		s.hooks.AfterWrite(ctx, in, true)
	}
	return nil
}

// Update replaces the row with id. The row must be visible to caller before
// the write, and must still be owned by caller afterwards.
func (s *Service[T]) Update(ctx context.Context, caller entity.Identity, id string, in *T) error {
	if err := s.authorize(caller); err != nil {
		return err
	}
	existing, err := s.Get(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.setID(in, id); err != nil {
		return err
	}
	if s.hooks.Prepare != nil {
		if err := s.hooks.Prepare(ctx, caller, existing, in); err != nil {
			return err
		}
	}
	if err := s.Store.Update(ctx, in); err != nil {
		return fromRepo(err)
	}
	if s.hooks.AfterWrite != nil {
		s.hooks.AfterWrite(ctx, in, false)
	}
	return nil
}

func (s *Service[T]) Delete(ctx context.Context, caller entity.Identity, id string) error {
	if err := s.authorize(caller); err != nil {
		return err
	}
	existing, err := s.Get(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.remove(ctx, id); err != nil {
		return fromRepo(err)
	}
	if s.hooks.AfterDelete != nil {
		s.hooks.AfterDelete(ctx, existing)
	}
	return nil
}

// CanWrite reports whether caller may write rows of this kind at all.
func (s *Service[T]) CanWrite(caller entity.Identity) bool {
	return s.Tables.CanWrite(s.Kind, caller.Role)
}

func (s *Service[T]) authorize(caller entity.Identity) error {
	if !s.CanWrite(caller) {
		return ErrForbidden
	}
	return nil
}

// Deps carries what every Service shares.
type Deps struct {
	Resolver *queryfilter.Resolver
	Tables   *access.Tables
	Logger   *logrus.Logger
}

func newService[T any](d Deps, kind queryfilter.Kind, store Store[T], remove func(context.Context, string) error, setID func(*T, string) error, hooks Hooks[T]) *Service[T] {
	return &Service[T]{
		Kind:     kind,
		Store:    store,
		Resolver: d.Resolver,
		Tables:   d.Tables,
		Logger:   d.Logger,
		remove:   remove,
		setID:    setID,
		hooks:    hooks,
	}
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrNotFound
	}
	return n, nil
}

// numericRemove adapts an int64 delete to a path id.
func numericRemove(del func(context.Context, int64) error) func(context.Context, string) error {
	return func(ctx context.Context, id string) error {
		n, err := parseID(id)
		if err != nil {
			return err
		}
		return del(ctx, n)
	}
}

func numericID[T any](set func(*T, int64)) func(*T, string) error {
	return func(v *T, id string) error {
		n, err := parseID(id)
		if err != nil {
			return err
		}
		set(v, n)
		return nil
	}
}

func stringID[T any](set func(*T, string)) func(*T, string) error {
	return func(v *T, id string) error {
		set(v, id)
		return nil
	}
}

// claim makes caller the owner of a row it writes. Admins may assign any
// owner; everyone else may only leave it unset or name themselves.
func claim(caller entity.Identity, field string, owner **string) error {
	if *owner != nil && strings.TrimSpace(**owner) == "" {
		*owner = nil
	}
	if caller.Role == entity.RoleAdmin {
		return nil
	}
	if *owner == nil {
		id := caller.ID
		*owner = &id
		return nil
	}
	if **owner != caller.ID {
		return fmt.Errorf("%w: %s must be the caller", ErrForbidden, field)
	}
	return nil
}
