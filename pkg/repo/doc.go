// Package repo provides a generic PostgreSQL repository over pgx and
// squirrel. A Repository binds an entity type to a table and column set and
// covers the usual CRUD plus paginated listing; anything more specific
// belongs in a hand-written query next to it.
//
//	type Account struct {
//	    ID        string    `db:"id"`
//	    Email     string    `db:"email"`
//	    CreatedAt time.Time `db:"created_at"`
//	}
//
//	accounts := repo.New[Account](pool, "accounts", []string{"id", "email", "created_at"})
//	acc, err := accounts.Get(ctx, id)
package repo
