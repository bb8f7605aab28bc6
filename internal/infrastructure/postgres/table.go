package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/carehome-admin/internal/domain/queryfilter"
)

// table describes how one entity kind is read: the FROM clause with its
// joins, the selected columns, a stable order and the predicate field map.
type table[T any] struct {
	from    string
	selects string
	orderBy string
	fields  columns
	scan    func(row pgx.Row) (T, error)
}

// list counts the matching rows and reads one page of them inside a single
// read-only transaction, so total and page come from the same snapshot.
func (t table[T]) list(ctx context.Context, db DB, q queryfilter.Resolved) ([]T, int, error) {
	where, args, err := t.fields.where(q.Predicate, nil)
	if err != nil {
		return nil, 0, err
	}

	items := []T{}
	total := 0
	err = pgx.BeginTxFunc(ctx, db, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, "SELECT count(*) FROM "+t.from+" WHERE "+where, args...).Scan(&total); err != nil {
			return err
		}
		if total == 0 || q.Offset >= total {
			return nil
		}
		n := len(args)
		sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
			t.selects, t.from, where, t.orderBy, n+1, n+2)
		rows, err := tx.Query(ctx, sql, append(args, q.Limit, q.Offset)...)
		if err != nil {
			return err
		}
		items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) { return t.scan(row) })
		return err
	})
	if err != nil {
		return nil, 0, mapError(err)
	}
	return items, total, nil
}

// find returns the first row matching p.
func (t table[T]) find(ctx context.Context, db DB, p queryfilter.Predicate) (*T, error) {
	where, args, err := t.fields.where(p, nil)
	if err != nil {
		return nil, err
	}
	sql := "SELECT " + t.selects + " FROM " + t.from + " WHERE " + where + " ORDER BY " + t.orderBy + " LIMIT 1"
	v, err := t.scan(db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return &v, nil
}

// all returns every row matching p.
func (t table[T]) all(ctx context.Context, db DB, p queryfilter.Predicate) ([]T, error) {
	where, args, err := t.fields.where(p, nil)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, "SELECT "+t.selects+" FROM "+t.from+" WHERE "+where+" ORDER BY "+t.orderBy, args...)
	if err != nil {
		return nil, mapError(err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) { return t.scan(row) })
	if err != nil {
		return nil, mapError(err)
	}
	return items, nil
}

func idText(id int64) string { return strconv.FormatInt(id, 10) }
