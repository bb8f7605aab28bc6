package queryfilter

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
)

// DefaultPageSize is the number of rows per list page.
const DefaultPageSize = 10

// ErrUnknownKind is returned when a caller asks for a kind that is not in the
// registry. It indicates a wiring bug, not bad user input.
var ErrUnknownKind = errors.New("queryfilter: unknown entity kind")

func unknownKind(k Kind) error {
	return fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
}

// Request is the raw, untrusted list request.
type Request struct {
	Page   string
	Params map[string]string
}

// RequestFromValues builds a Request from URL query values. Only the first
// value of a repeated key is kept.
func RequestFromValues(v url.Values) Request {
	req := Request{Page: v.Get("page"), Params: make(map[string]string, len(v))}
	for k, vals := range v {
		if k == "page" || len(vals) == 0 {
			continue
		}
		req.Params[k] = vals[0]
	}
	return req
}

// Resolved is a ready-to-run list query.
type Resolved struct {
	Kind      Kind
	Predicate Predicate
	Page      int
	Offset    int
	Limit     int
}

// Resolver turns list requests into Resolved queries. It holds no mutable
// state and is safe for concurrent use.
type Resolver struct {
	pageSize int
}

// NewResolver returns a resolver paging by pageSize rows. A non-positive
// size falls back to DefaultPageSize.
func NewResolver(pageSize int) *Resolver {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Resolver{pageSize: pageSize}
}

func (r *Resolver) PageSize() int { return r.pageSize }

// Resolve builds the predicate and page window for caller listing kind k.
// User filters come first and the role fragment is always conjoined last.
func (r *Resolver) Resolve(k Kind, caller entity.Identity, req Request) (Resolved, error) {
	ks, ok := registry[k]
	if !ok {
		return Resolved{}, unknownKind(k)
	}

	terms := make([]Predicate, 0, len(ks.params)+1)
	for _, p := range ks.params {
		v := strings.TrimSpace(req.Params[p.key])
		if v == "" {
			continue
		}
		terms = append(terms, p.build(v))
	}

	role, err := RoleRule(k, caller)
	if err != nil {
		return Resolved{}, err
	}
	terms = append(terms, role)

	page := r.page(req.Page)
	return Resolved{
		Kind:      k,
		Predicate: And(terms...),
		Page:      page,
		Offset:    r.pageSize * (page - 1),
		Limit:     r.pageSize,
	}, nil
}

// Scope returns the role fragment conjoined with extra, for single-row
// lookups and writes that must stay inside the caller's visibility.
func (r *Resolver) Scope(k Kind, caller entity.Identity, extra ...Predicate) (Predicate, error) {
	role, err := RoleRule(k, caller)
	if err != nil {
		return Predicate{}, err
	}
	terms := make([]Predicate, 0, len(extra)+1)
	terms = append(terms, extra...)
	return And(append(terms, role)...), nil
}

// page parses raw into a page number. Anything that is not a positive
// integer with a representable offset is page 1.
func (r *Resolver) page(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if n-1 > math.MaxInt/r.pageSize {
		return 1
	}
	return n
}
