package repo

import (
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
)

// psql builds queries with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *Repository[T]) insertQuery(values map[string]any) (string, []any, error) {
	if len(values) == 0 {
		return "", nil, fmt.Errorf("repo: insert into %s with no values", r.table)
	}
	return psql.
		Insert(r.table).
		SetMap(values).
		Suffix("RETURNING " + r.columnList()).
		ToSql()
}

func (r *Repository[T]) insertManyQuery(rows []map[string]any) (string, []any, error) {
	columns := sortedKeys(rows[0])
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("repo: insert into %s with no values", r.table)
	}

	builder := psql.Insert(r.table).Columns(columns...)
	for _, row := range rows {
		if len(row) != len(columns) {
			return "", nil, fmt.Errorf("repo: insert into %s with uneven rows", r.table)
		}
		vals := make([]any, len(columns))
		for i, col := range columns {
			v, ok := row[col]
			if !ok {
				return "", nil, fmt.Errorf("repo: insert into %s missing column %s", r.table, col)
			}
			vals[i] = v
		}
		builder = builder.Values(vals...)
	}
	return builder.ToSql()
}

func (r *Repository[T]) selectQuery(cond sq.Sqlizer, limit, offset uint64, orderBy ...string) (string, []any, error) {
	builder := psql.Select(r.columns...).From(r.table)
	if cond != nil {
		builder = builder.Where(cond)
	}
	if len(orderBy) > 0 {
		builder = builder.OrderBy(orderBy...)
	}
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	if offset > 0 {
		builder = builder.Offset(offset)
	}
	return builder.ToSql()
}

func (r *Repository[T]) countQuery(cond sq.Sqlizer) (string, []any, error) {
	builder := psql.Select("COUNT(*)").From(r.table)
	if cond != nil {
		builder = builder.Where(cond)
	}
	return builder.ToSql()
}

func (r *Repository[T]) updateQuery(id any, set map[string]any) (string, []any, error) {
	if len(set) == 0 {
		return "", nil, fmt.Errorf("repo: update %s with no values", r.table)
	}
	return psql.
		Update(r.table).
		SetMap(set).
		Where(sq.Eq{r.idColumn: id}).
		Suffix("RETURNING " + r.columnList()).
		ToSql()
}

func (r *Repository[T]) deleteQuery(id any) (string, []any, error) {
	return psql.
		Delete(r.table).
		Where(sq.Eq{r.idColumn: id}).
		ToSql()
}

func (r *Repository[T]) columnList() string {
	out := ""
	for i, col := range r.columns {
		if i > 0 {
			out += ", "
		}
		out += col
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
