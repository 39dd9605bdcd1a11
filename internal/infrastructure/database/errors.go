package database

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

// IsNoRows reports a lookup that matched nothing. A malformed uuid parameter
// counts as a miss since no row can carry it.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || hasCode(err, codeInvalidText)
}

func IsUniqueViolation(err error) bool { return hasCode(err, codeUniqueViolation) }

func IsForeignKeyViolation(err error) bool { return hasCode(err, codeForeignKeyViolation) }

func IsCheckViolation(err error) bool { return hasCode(err, codeCheckViolation) }

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
