package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned by services when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// NotFound translates pgx.ErrNoRows into ErrNotFound and passes other errors through.
func NotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
