package store

import (
	"errors"

	"footballadmin/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx stdlib driver for sqlx
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

type Store struct {
	db     *sqlx.DB
	logger *observability.Logger
}

func New(connectionString string, logger *observability.Logger) (Store, error) {
	db, err := sqlx.Open("pgx", connectionString)
	if err != nil {
		return Store{}, err
	}
	return Store{db: db, logger: logger}, nil
}

// DB returns the underlying database connection
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close releases the connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

// isUniqueViolation reports whether err is a unique-index violation.
// Case-insensitive name uniqueness is enforced by indexes on lower(name),
// so duplicate detection happens here rather than with a pre-insert lookup.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
