package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/Taichi-iskw/ytmeta/internal/errors"
)

// SQLSTATE codes the archive schema can raise
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateNotNullViolation    = "23502"
	sqlStateInvalidText         = "22P02"
	sqlStateUndefinedTable      = "42P01"
)

// constraintMessages describes the named constraints of the channels and videos tables
var constraintMessages = map[string]string{
	"channels_pkey":                    "channel is already archived",
	"channels_uploads_playlist_id_key": "another archived channel uses the same uploads playlist",
	"videos_pkey":                      "video is already archived",
	"videos_channel_id_fkey":           "video belongs to a channel that is not archived",
}

// HandlePostgreSQLError maps a database error raised during operation to an AppError.
// The PostgreSQL error stays in the cause chain.
func HandlePostgreSQLError(err error, operation string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperrors.Wrap(err, apperrors.CodeInternal, operation)
	}

	code, detail := classify(pgErr)
	return apperrors.Wrap(pgErr, code, operation+": "+detail)
}

func classify(pgErr *pgconn.PgError) (code, detail string) {
	switch pgErr.Code {
	case sqlStateUniqueViolation:
		return apperrors.CodeConflict, constraintDetail(pgErr, "duplicate key")
	case sqlStateForeignKeyViolation:
		return apperrors.CodeDependency, constraintDetail(pgErr, "missing referenced row")
	case sqlStateNotNullViolation:
		return apperrors.CodeInvalidArg, "column " + pgErr.ColumnName + " must not be null"
	case sqlStateInvalidText:
		return apperrors.CodeInvalidArg, "invalid value for column type"
	case sqlStateUndefinedTable:
		return apperrors.CodeInternal, "archive tables are missing, run 'ytmeta db migrate'"
	}
	return apperrors.CodeInternal, "database error (PostgreSQL code: " + pgErr.Code + ")"
}

func constraintDetail(pgErr *pgconn.PgError, fallback string) string {
	if message, ok := constraintMessages[pgErr.ConstraintName]; ok {
		return message
	}
	if pgErr.ConstraintName != "" {
		return fallback + " (" + pgErr.ConstraintName + ")"
	}
	return fallback
}
