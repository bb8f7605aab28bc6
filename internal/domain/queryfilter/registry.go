package queryfilter

import (
	"strings"

	"github.com/oksasatya/carehome-admin/internal/domain/entity"
)

// Kind names a listable entity type.
type Kind string

const (
	KindResident      Kind = "resident"
	KindCarePlan      Kind = "carePlan"
	KindAssessment    Kind = "assessment"
	KindMedicalRecord Kind = "medicalRecord"
	KindEvent         Kind = "event"
	KindAnnouncement  Kind = "announcement"
	KindCareRoutine   Kind = "careRoutine"
	KindFamilyMember  Kind = "familyMember"
	KindRoom          Kind = "room"
	KindStaff         Kind = "staff"
	KindAdmin         Kind = "admin"
)

// param is one recognized query parameter and the fragment it produces.
type param struct {
	key   string
	build func(value string) Predicate
}

// roleRule produces the mandatory fragment for a caller with the given id.
type roleRule func(callerID string) Predicate

type kindSpec struct {
	params []param
	roles  map[entity.Role]roleRule
}

func exact(field string) func(string) Predicate {
	return func(v string) Predicate { return Eq(field, v) }
}

// exactUpper matches enum columns, which are stored upper case.
func exactUpper(field string) func(string) Predicate {
	return func(v string) Predicate { return Eq(field, strings.ToUpper(v)) }
}

func search(fields ...string) func(string) Predicate {
	return func(v string) Predicate {
		terms := make([]Predicate, len(fields))
		for i, f := range fields {
			terms[i] = Contains(f, v)
		}
		return Or(terms...)
	}
}

func allow(string) Predicate { return True() }
func deny(string) Predicate  { return False() }

func callerIs(field string) roleRule {
	return func(id string) Predicate {
		if strings.TrimSpace(id) == "" {
			return False()
		}
		return Eq(field, id)
	}
}

// registry is read-only after package init. Params are listed in the order
// their fragments are composed, which keeps resolution deterministic.
var registry = map[Kind]kindSpec{
	KindResident: {
		params: []param{
			{"search", search("fullName")},
			{"roomId", exact("roomId")},
			{"familyId", exact("familyId")},
			{"careLevel", exactUpper("careLevel")},
		},
		roles: map[entity.Role]roleRule{
			entity.RoleAdmin:    allow,
			entity.RoleNurse:    allow,
			entity.RoleResident: callerIs("id"),
			entity.RoleFamily:   callerIs("familyId"),
		},
	},
	KindCarePlan: {
		params: []param{
			{"residentId", exact("residentId")},
			{"staffId", exact("staffId")},
			{"search", search("title", "resident.fullName")},
		},
		roles: map[entity.Role]roleRule{
			entity.RoleAdmin:    allow,
			entity.RoleNurse:    callerIs("staffId"),
			entity.RoleResident: callerIs("residentId"),
			entity.RoleFamily:   callerIs("resident.familyId"),
		},
	},
	KindAssessment: {
		params: []param{
			{"residentId", exact("residentId")},
			{"search", search("title", "resident.fullName")},
		},
		roles: map[entity.Role]roleRule{
			entity.RoleAdmin:    allow,
			entity.RoleNurse:    callerIs("careProviderId"),
			entity.RoleResident: callerIs("residentId"),
			entity.RoleFamily:   callerIs("resident.familyId"),
		},
	},
	KindMedicalRecord: {
		params: []param{
			{"residentId", exact("residentId")},
			{"search", search("title", "resident.fullName")},
		},
		roles: map[entity.Role]roleRule{
			entity.RoleAdmin:    allow,
			entity.RoleNurse:    allow,
			entity.RoleResident: callerIs("residentId"),
			entity.RoleFamily:   callerIs("resident.familyId"),
		},
	},
	KindEvent: {
		params: []param{
			{"search", search("title")},
		},
		roles: map[entity.Role]roleRule{
			entity.RoleAdmin:    allow,
			entity.RoleNurse:    allow,
			entity.RoleResident: allow,
			entity.RoleFamily:   allow,
			entity.RoleNone:     allow,
		},
	},
	KindAnnouncement: {
		params: []param{
			{"search", search("title")},
		},
		roles: map[entity.Role]roleRule{
			entity.RoleAdmin:    allow,
			entity.RoleNurse:    allow,
			entity.RoleResident: allow,
			entity.RoleFamily:   allow,
			entity.RoleNone:     allow,
		},
	},
	KindCareRoutine: {
		params: []param{
			{"staffId", exact("staffId")},
			{"roomId", exact("roomId")},
			{"day", exactUpper("day")},
			{"search", search("name", "category")},
		},
		roles: map[entity.Role]roleRule{
			entity.RoleAdmin:    allow,
			entity.RoleNurse:    callerIs("staffId"),
			entity.RoleResident: callerIs("room.residentId"),
			entity.RoleFamily:   callerIs("room.familyId"),
		},
	},
	KindFamilyMember: {
		params: []param{
			{"residentId", exact("residents.id")},
			{"search", search("name", "surname")},
		},
		roles: map[entity.Role]roleRule{
			entity.RoleAdmin:    allow,
			entity.RoleNurse:    allow,
			entity.RoleResident: callerIs("residents.id"),
			entity.RoleFamily:   callerIs("id"),
		},
	},
	KindRoom: {
		params: []param{
			{"search", search("name")},
		},
		roles: map[entity.Role]roleRule{
			entity.RoleAdmin:    allow,
			entity.RoleNurse:    allow,
			entity.RoleResident: callerIs("residents.id"),
			entity.RoleFamily:   callerIs("residents.familyId"),
		},
	},
	KindStaff: {
		params: []param{
			{"search", search("name", "surname")},
			{"role", exactUpper("role")},
		},
		roles: map[entity.Role]roleRule{
			entity.RoleAdmin: allow,
			entity.RoleNurse: allow,
		},
	},
	KindAdmin: {
		params: []param{
			{"search", search("name", "surname")},
		},
		roles: map[entity.Role]roleRule{
			entity.RoleAdmin: allow,
		},
	},
}

// Kinds returns every registered kind.
func Kinds() []Kind {
	return []Kind{
		KindResident, KindCarePlan, KindAssessment, KindMedicalRecord,
		KindEvent, KindAnnouncement, KindCareRoutine, KindFamilyMember,
		KindRoom, KindStaff, KindAdmin,
	}
}

// RecognizedKeys returns the query parameters that filter kind k.
func RecognizedKeys(k Kind) ([]string, error) {
	ks, ok := registry[k]
	if !ok {
		return nil, unknownKind(k)
	}
	keys := make([]string, len(ks.params))
	for i, p := range ks.params {
		keys[i] = p.key
	}
	return keys, nil
}

// RoleRule returns the mandatory fragment for caller on kind k. Roles with
// no entry in the table are denied everything.
func RoleRule(k Kind, caller entity.Identity) (Predicate, error) {
	ks, ok := registry[k]
	if !ok {
		return Predicate{}, unknownKind(k)
	}
	rule, ok := ks.roles[caller.Role]
	if !ok {
		rule = deny
	}
	return rule(caller.ID), nil
}
