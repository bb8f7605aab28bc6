package access

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
)

//go:embed access.yaml
var defaultTables []byte

type fileRoute struct {
	Prefix string   `yaml:"prefix"`
	Roles  []string `yaml:"roles"`
}

type fileMenuItem struct {
	Label   string   `yaml:"label"`
	Href    string   `yaml:"href"`
	Kind    string   `yaml:"kind"`
	Visible []string `yaml:"visible"`
}

type fileMenuSection struct {
	Title string         `yaml:"title"`
	Items []fileMenuItem `yaml:"items"`
}

type file struct {
	Routes []fileRoute         `yaml:"routes"`
	Menu   []fileMenuSection   `yaml:"menu"`
	Writes map[string][]string `yaml:"writes"`
}

type route struct {
	prefix string
	roles  []entity.Role
}

type menuItem struct {
	label   string
	href    string
	kind    queryfilter.Kind
	visible []entity.Role
}

type menuSection struct {
	title string
	items []menuItem
}

// Tables holds the route access map, the menu and per-kind write roles.
// It is never modified after Parse returns.
type Tables struct {
	routes []route
	menu   []menuSection
	writes map[queryfilter.Kind][]entity.Role
}

// MenuItem is a menu entry as shown to one caller.
type MenuItem struct {
	Label     string `json:"label"`
	Href      string `json:"href"`
	CanCreate bool   `json:"can_create"`
}

// MenuSection groups visible menu entries.
type MenuSection struct {
	Title string     `json:"title"`
	Items []MenuItem `json:"items"`
}

var loadDefault = sync.OnceValues(func() (*Tables, error) {
	return Parse(defaultTables)
})

// Default returns the tables embedded in the binary, parsed once.
func Default() (*Tables, error) { return loadDefault() }

// Parse decodes YAML access tables. Unknown roles or kinds are rejected so a
// typo cannot silently grant or drop access.
func Parse(data []byte) (*Tables, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("access: decode tables: %w", err)
	}

	t := &Tables{writes: make(map[queryfilter.Kind][]entity.Role, len(f.Writes))}
	for _, r := range f.Routes {
		prefix := strings.TrimRight(strings.TrimSpace(r.Prefix), "/")
		if prefix == "" {
			return nil, fmt.Errorf("access: route with empty prefix")
		}
		roles, err := parseRoles(r.Roles)
		if err != nil {
			return nil, fmt.Errorf("access: route %s: %w", prefix, err)
		}
		t.routes = append(t.routes, route{prefix: prefix, roles: roles})
	}
	// longest prefix first
	sort.SliceStable(t.routes, func(i, j int) bool {
		return len(t.routes[i].prefix) > len(t.routes[j].prefix)
	})

	for _, s := range f.Menu {
		sec := menuSection{title: s.Title}
		for _, it := range s.Items {
			roles, err := parseRoles(it.Visible)
			if err != nil {
				return nil, fmt.Errorf("access: menu %s: %w", it.Label, err)
			}
			kind := queryfilter.Kind(it.Kind)
			if kind != "" {
				if _, err := queryfilter.RecognizedKeys(kind); err != nil {
					return nil, fmt.Errorf("access: menu %s: %w", it.Label, err)
				}
			}
			sec.items = append(sec.items, menuItem{label: it.Label, href: it.Href, kind: kind, visible: roles})
		}
		t.menu = append(t.menu, sec)
	}

	for k, rs := range f.Writes {
		kind := queryfilter.Kind(k)
		if _, err := queryfilter.RecognizedKeys(kind); err != nil {
			return nil, fmt.Errorf("access: writes: %w", err)
		}
		roles, err := parseRoles(rs)
		if err != nil {
			return nil, fmt.Errorf("access: writes %s: %w", k, err)
		}
		t.writes[kind] = roles
	}
	return t, nil
}

func parseRoles(raw []string) ([]entity.Role, error) {
	out := make([]entity.Role, 0, len(raw))
	for _, s := range raw {
		r := entity.ParseRole(s)
		if r == entity.RoleNone {
			return nil, fmt.Errorf("unknown role %q", s)
		}
		out = append(out, r)
	}
	return out, nil
}

// RouteRoles returns the roles allowed on path. ok is false when no prefix
// covers the path.
func (t *Tables) RouteRoles(path string) (roles []entity.Role, ok bool) {
	path = strings.TrimRight(path, "/")
	for _, r := range t.routes {
		if path == r.prefix || strings.HasPrefix(path, r.prefix+"/") {
			return slices.Clone(r.roles), true
		}
	}
	return nil, false
}

// CanAccess reports whether role may call path. Uncovered paths are open to
// any authenticated caller.
func (t *Tables) CanAccess(path string, role entity.Role) bool {
	roles, ok := t.RouteRoles(path)
	if !ok {
		return true
	}
	return slices.Contains(roles, role)
}

// CanWrite reports whether role may create, update or delete rows of kind.
func (t *Tables) CanWrite(kind queryfilter.Kind, role entity.Role) bool {
	return slices.Contains(t.writes[kind], role)
}

// Menu returns the sections and items visible to role. Empty sections are
// left out.
func (t *Tables) Menu(role entity.Role) []MenuSection {
	out := make([]MenuSection, 0, len(t.menu))
	for _, s := range t.menu {
		sec := MenuSection{Title: s.title}
		for _, it := range s.items {
			if !slices.Contains(it.visible, role) {
				continue
			}
			sec.Items = append(sec.Items, MenuItem{
				Label:     it.label,
				Href:      it.href,
				CanCreate: it.kind != "" && t.CanWrite(it.kind, role),
			})
		}
		if len(sec.Items) > 0 {
			out = append(out, sec)
		}
	}
	return out
}
