package repositories

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SqBuilder emits "?" placeholders; gorm rebinds them for postgres when the
// built query runs through db.Raw.
var SqBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var ErrBadQuery = errors.New("bad query")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
