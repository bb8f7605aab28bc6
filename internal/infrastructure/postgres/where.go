package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
)

// columns maps logical predicate fields to SQL. A plain expression is
// compared with "=" or ILIKE. An expression containing "?" is a complete
// condition and the placeholder receives the value; such fields support
// equality only.
type columns map[string]string

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// where renders p as a SQL condition. Placeholders continue numbering after
// the args already present.
func (c columns) where(p queryfilter.Predicate, args []any) (string, []any, error) {
	var b strings.Builder
	args, err := c.write(&b, p, args)
	if err != nil {
		return "", nil, err
	}
	return b.String(), args, nil
}

func (c columns) write(b *strings.Builder, p queryfilter.Predicate, args []any) ([]any, error) {
	switch p.Op {
	case queryfilter.OpTrue:
		b.WriteString("TRUE")
	case queryfilter.OpFalse:
		b.WriteString("FALSE")
	case queryfilter.OpEq, queryfilter.OpContains:
		expr, ok := c[p.Field]
		if !ok {
			return nil, fmt.Errorf("postgres: no column for field %q", p.Field)
		}
		value := p.Value
		if p.Op == queryfilter.OpContains {
			value = "%" + likeEscaper.Replace(value) + "%"
		}
		args = append(args, value)
		ph := "$" + strconv.Itoa(len(args))
		switch {
		case strings.Contains(expr, "?"):
			if p.Op != queryfilter.OpEq {
				return nil, fmt.Errorf("postgres: field %q supports equality only", p.Field)
			}
			b.WriteString(strings.Replace(expr, "?", ph, 1))
		case p.Op == queryfilter.OpEq:
			b.WriteString(expr + " = " + ph)
		default:
			b.WriteString(expr + " ILIKE " + ph)
		}
	case queryfilter.OpAnd, queryfilter.OpOr:
		sep := " AND "
		if p.Op == queryfilter.OpOr {
			sep = " OR "
		}
		b.WriteByte('(')
		for i, t := range p.Terms {
			if i > 0 {
				b.WriteString(sep)
			}
			var err error
			if args, err = c.write(b, t, args); err != nil {
				return nil, err
			}
		}
		b.WriteByte(')')
	default:
		return nil, fmt.Errorf("postgres: unsupported predicate op %d", p.Op)
	}
	return args, nil
}
