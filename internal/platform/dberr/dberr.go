// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// Package dberr translates low-level database driver errors into
// transport-agnostic application errors.
//
// Store implementations never leak pgx or SQLSTATE details upward; the
// service layer only ever sees apperr values.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Ukj0ng/bookstore-api/internal/platform/apperr"
)

/*
Translate maps a database error to the matching application error.

Rules:
  - pgx.ErrNoRows becomes a 404 with the supplied notFoundMessage.
  - SQLSTATE 23505 (unique_violation) becomes a 409 with conflictMessage.
  - SQLSTATE 23503 (foreign_key_violation) becomes a 400 since it means
    the client referenced a row that does not exist.
  - Anything else is wrapped as an opaque internal error.

Parameters:
  - err: The raw error returned by pgx.
  - notFoundMessage: Client-facing message for the no-rows case.
  - conflictMessage: Client-facing message for the unique-violation case.

Returns:
  - error: An *apperr.AppError, or nil when err is nil.
*/
func Translate(err error, notFoundMessage, conflictMessage string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(notFoundMessage)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(conflictMessage)
		case pgerrcode.ForeignKeyViolation:
			return apperr.InvalidInput("Referenced resource does not exist")
		}
	}

	return apperr.Internal(err)
}

// IsNotFound reports whether err translates to a missing-row condition.
func IsNotFound(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var appError *apperr.AppError
	return errors.As(err, &appError) && appError.Code == apperr.CodeNotFound
}
