package queryfilter

import (
	"strconv"
	"strings"
)

// Op identifies the shape of a Predicate node.
type Op int

const (
	OpTrue Op = iota
	OpFalse
	OpEq
	OpContains
	OpAnd
	OpOr
)

// Predicate is a boolean filter over logical entity fields. Fields are
// dotted paths such as "staffId" or "resident.familyId"; the persistence
// layer decides how each path maps onto its storage.
//
// Predicates are values. Build them with the constructors below so that And
// and Or stay flat and free of redundant constants.
type Predicate struct {
	Op    Op
	Field string
	Value string
	Terms []Predicate
}

func True() Predicate  { return Predicate{Op: OpTrue} }
func False() Predicate { return Predicate{Op: OpFalse} }

// Eq matches rows whose field equals value exactly.
func Eq(field, value string) Predicate {
	return Predicate{Op: OpEq, Field: field, Value: value}
}

// Contains matches rows whose field contains value, ignoring case.
func Contains(field, value string) Predicate {
	return Predicate{Op: OpContains, Field: field, Value: value}
}

// And conjoins terms. Nested conjunctions are flattened and True terms are
// dropped. A False term makes the whole conjunction False.
func And(terms ...Predicate) Predicate {
	out := make([]Predicate, 0, len(terms))
	for _, t := range terms {
		switch t.Op {
		case OpTrue:
			continue
		case OpFalse:
			return False()
		case OpAnd:
			out = append(out, t.Terms...)
		default:
			out = append(out, t)
		}
	}
	switch len(out) {
	case 0:
		return True()
	case 1:
		return out[0]
	}
	return Predicate{Op: OpAnd, Terms: out}
}

// Or disjoins terms. Nested disjunctions are flattened and False terms are
// dropped. A True term makes the whole disjunction True.
func Or(terms ...Predicate) Predicate {
	out := make([]Predicate, 0, len(terms))
	for _, t := range terms {
		switch t.Op {
		case OpFalse:
			continue
		case OpTrue:
			return True()
		case OpOr:
			out = append(out, t.Terms...)
		default:
			out = append(out, t)
		}
	}
	switch len(out) {
	case 0:
		return False()
	case 1:
		return out[0]
	}
	return Predicate{Op: OpOr, Terms: out}
}

func (p Predicate) IsTrue() bool  { return p.Op == OpTrue }
func (p Predicate) IsFalse() bool { return p.Op == OpFalse }

// Conjuncts returns the top-level AND terms of p. A non-conjunction is its
// own single conjunct, and True has none.
func (p Predicate) Conjuncts() []Predicate {
	switch p.Op {
	case OpTrue:
		return nil
	case OpAnd:
		return p.Terms
	}
	return []Predicate{p}
}

// Equal reports whether p and q have the same structure.
func (p Predicate) Equal(q Predicate) bool {
	if p.Op != q.Op || p.Field != q.Field || p.Value != q.Value || len(p.Terms) != len(q.Terms) {
		return false
	}
	for i := range p.Terms {
		if !p.Terms[i].Equal(q.Terms[i]) {
			return false
		}
	}
	return true
}

// Implies reports whether every row matched by p is matched by frag, judged
// syntactically: frag is True, p is False, or frag is one of p's conjuncts.
func (p Predicate) Implies(frag Predicate) bool {
	if frag.IsTrue() || p.IsFalse() {
		return true
	}
	for _, c := range p.Conjuncts() {
		if c.Equal(frag) {
			return true
		}
	}
	return false
}

func (p Predicate) String() string {
	var b strings.Builder
	p.write(&b, false)
	return b.String()
}

func (p Predicate) write(b *strings.Builder, nested bool) {
	switch p.Op {
	case OpTrue:
		b.WriteString("TRUE")
	case OpFalse:
		b.WriteString("FALSE")
	case OpEq:
		b.WriteString(p.Field)
		b.WriteString(" = ")
		b.WriteString(strconv.Quote(p.Value))
	case OpContains:
		b.WriteString(p.Field)
		b.WriteString(" contains ")
		b.WriteString(strconv.Quote(p.Value))
	case OpAnd, OpOr:
		sep := " AND "
		if p.Op == OpOr {
			sep = " OR "
		}
		if nested {
			b.WriteByte('(')
		}
		for i, t := range p.Terms {
			if i > 0 {
				b.WriteString(sep)
			}
			t.write(b, true)
		}
		if nested {
			b.WriteByte(')')
		}
	}
}
