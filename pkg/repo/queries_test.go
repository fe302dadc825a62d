package repo

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

func testRepo() *Repository[account] {
	return New[account](nil, "accounts", []string{"id", "email", "created_at"})
}

func TestInsertQuery(t *testing.T) {
	t.Parallel()

	query, args, err := testRepo().insertQuery(map[string]any{
		"id":    "a-1",
		"email": "bob@example.com",
	})
	require.NoError(t, err)

	// SetMap orders columns alphabetically.
	assert.Equal(t,
		"INSERT INTO accounts (email,id) VALUES ($1,$2) RETURNING id, email, created_at",
		query)
	assert.Equal(t, []any{"bob@example.com", "a-1"}, args)
}

func TestInsertQueryEmpty(t *testing.T) {
	t.Parallel()

	_, _, err := testRepo().insertQuery(nil)
	assert.Error(t, err)
}

func TestInsertManyQuery(t *testing.T) {
	t.Parallel()

	query, args, err := testRepo().insertManyQuery([]map[string]any{
		{"id": "a-1", "email": "bob@example.com"},
		{"id": "a-2", "email": "eve@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO accounts (email,id) VALUES ($1,$2),($3,$4)",
		query)
	assert.Equal(t, []any{"bob@example.com", "a-1", "eve@example.com", "a-2"}, args)
}

func TestInsertManyQueryUnevenRows(t *testing.T) {
	t.Parallel()

	_, _, err := testRepo().insertManyQuery([]map[string]any{
		{"id": "a-1", "email": "bob@example.com"},
		{"id": "a-2"},
	})
	assert.Error(t, err)
}

func TestSelectQuery(t *testing.T) {
	t.Parallel()

	t.Run("by condition with paging", func(t *testing.T) {
		t.Parallel()

		query, args, err := testRepo().selectQuery(sq.Eq{"email": "bob@example.com"}, 10, 20, "created_at DESC")
		require.NoError(t, err)

		assert.Equal(t,
			"SELECT id, email, created_at FROM accounts WHERE email = $1 ORDER BY created_at DESC LIMIT 10 OFFSET 20",
			query)
		assert.Equal(t, []any{"bob@example.com"}, args)
	})

	t.Run("no condition no paging", func(t *testing.T) {
		t.Parallel()

		query, args, err := testRepo().selectQuery(nil, 0, 0)
		require.NoError(t, err)

		assert.Equal(t, "SELECT id, email, created_at FROM accounts", query)
		assert.Empty(t, args)
	})

	t.Run("in condition", func(t *testing.T) {
		t.Parallel()

		query, args, err := testRepo().selectQuery(sq.Eq{"id": []string{"a-1", "a-2"}}, 0, 0)
		require.NoError(t, err)

		assert.Equal(t, "SELECT id, email, created_at FROM accounts WHERE id IN ($1,$2)", query)
		assert.Equal(t, []any{"a-1", "a-2"}, args)
	})
}

func TestCountQuery(t *testing.T) {
	t.Parallel()

	query, args, err := testRepo().countQuery(sq.Gt{"created_at": "2024-01-01"})
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM accounts WHERE created_at > $1", query)
	assert.Equal(t, []any{"2024-01-01"}, args)
}

func TestUpdateQuery(t *testing.T) {
	t.Parallel()

	query, args, err := testRepo().updateQuery("a-1", map[string]any{
		"email": "new@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE accounts SET email = $1 WHERE id = $2 RETURNING id, email, created_at",
		query)
	assert.Equal(t, []any{"new@example.com", "a-1"}, args)
}

func TestUpdateQueryEmpty(t *testing.T) {
	t.Parallel()

	_, _, err := testRepo().updateQuery("a-1", nil)
	assert.Error(t, err)
}

func TestDeleteQuery(t *testing.T) {
	t.Parallel()

	query, args, err := testRepo().deleteQuery("a-1")
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM accounts WHERE id = $1", query)
	assert.Equal(t, []any{"a-1"}, args)
}

func TestCustomIDColumn(t *testing.T) {
	t.Parallel()

	r := New[account](nil, "accounts", []string{"id", "email"}, WithIDColumn[account]("account_id"))

	query, _, err := r.deleteQuery("a-1")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM accounts WHERE account_id = $1", query)
}
