package repo

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/backendlab/httpkit/pkg/pagination"
)

// ErrNotFound is returned when a lookup matches no rows. Map it onto the
// NotFound taxonomy variant with httpkit.RedefineIs.
var ErrNotFound = errors.New("repo: record not found")

// Querier is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx,
// so a Repository works inside and outside transactions.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository binds an entity type to a table. Columns must match the
// entity's db struct tags; rows are scanned with pgx.RowToStructByName.
type Repository[T any] struct {
	db       Querier
	table    string
	columns  []string
	idColumn string
}

// Option configures a Repository.
type Option[T any] func(*Repository[T])

// WithIDColumn overrides the primary key column. Default: id.
func WithIDColumn[T any](column string) Option[T] {
	return func(r *Repository[T]) {
		if column != "" {
			r.idColumn = column
		}
	}
}

// New creates a Repository for the given table and column set.
func New[T any](db Querier, table string, columns []string, opts ...Option[T]) *Repository[T] {
	r := &Repository[T]{
		db:       db,
		table:    table,
		columns:  columns,
		idColumn: "id",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *Repository[T]) WithTx(tx pgx.Tx) *Repository[T] {
	clone := *r
	clone.db = tx
	return &clone
}

// Create inserts a row and returns the stored entity.
func (r *Repository[T]) Create(ctx context.Context, values map[string]any) (T, error) {
	var zero T
	query, args, err := r.insertQuery(values)
	if err != nil {
		return zero, err
	}
	return r.queryOne(ctx, query, args)
}

// CreateMany inserts multiple rows in one statement. All rows must share the
// same key set.
func (r *Repository[T]) CreateMany(ctx context.Context, rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}
	query, args, err := r.insertManyQuery(rows)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, query, args...)
	return err
}

// Get fetches an entity by primary key. Returns ErrNotFound when absent.
func (r *Repository[T]) Get(ctx context.Context, id any) (T, error) {
	return r.GetOneBy(ctx, sq.Eq{r.idColumn: id})
}

// GetOneBy fetches the single entity matching the condition.
func (r *Repository[T]) GetOneBy(ctx context.Context, cond sq.Sqlizer) (T, error) {
	var zero T
	query, args, err := r.selectQuery(cond, 1, 0)
	if err != nil {
		return zero, err
	}
	return r.queryOne(ctx, query, args)
}

// List fetches entities matching the condition, ordered by orderBy when
// given. A nil condition matches everything; limit 0 means no limit.
func (r *Repository[T]) List(ctx context.Context, cond sq.Sqlizer, limit, offset uint64, orderBy ...string) ([]T, error) {
	query, args, err := r.selectQuery(cond, limit, offset, orderBy...)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

// ListPage fetches one page of entities plus the total count, packaged for
// the wire.
func (r *Repository[T]) ListPage(ctx context.Context, cond sq.Sqlizer, limit, offset uint64, orderBy ...string) (pagination.Page[T], error) {
	total, err := r.Count(ctx, cond)
	if err != nil {
		return pagination.Page[T]{}, err
	}

	items, err := r.List(ctx, cond, limit, offset, orderBy...)
	if err != nil {
		return pagination.Page[T]{}, err
	}

	return pagination.New(items, int(total), int(limit), int(offset)), nil
}

// Count returns how many rows match the condition.
func (r *Repository[T]) Count(ctx context.Context, cond sq.Sqlizer) (int64, error) {
	query, args, err := r.countQuery(cond)
	if err != nil {
		return 0, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowTo[int64])
}

// Update changes the given columns on the entity with the given id and
// returns the stored result. Returns ErrNotFound when the id matches nothing.
func (r *Repository[T]) Update(ctx context.Context, id any, set map[string]any) (T, error) {
	var zero T
	query, args, err := r.updateQuery(id, set)
	if err != nil {
		return zero, err
	}
	return r.queryOne(ctx, query, args)
}

// Delete removes the entity with the given id. Returns ErrNotFound when the
// id matches nothing.
func (r *Repository[T]) Delete(ctx context.Context, id any) error {
	query, args, err := r.deleteQuery(id)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository[T]) queryOne(ctx context.Context, query string, args []any) (T, error) {
	var zero T
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return zero, err
	}

	entity, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	return entity, nil
}
