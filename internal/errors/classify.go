package errors

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// MySQL server error numbers
const (
	mysqlDuplicateEntry     = 1062
	mysqlRowIsReferenced    = 1451
	mysqlNoReferencedRow    = 1452
	mysqlRowIsReferencedOld = 1217
	mysqlNoReferencedRowOld = 1216
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// jwtValidationErrors are the token failures classified as "invalid token".
var jwtValidationErrors = []error{
	jwt.ErrTokenMalformed,
	jwt.ErrTokenUnverifiable,
	jwt.ErrTokenSignatureInvalid,
	jwt.ErrTokenRequiredClaimMissing,
	jwt.ErrTokenInvalidAudience,
	jwt.ErrTokenUsedBeforeIssued,
	jwt.ErrTokenInvalidIssuer,
	jwt.ErrTokenInvalidSubject,
	jwt.ErrTokenNotValidYet,
	jwt.ErrTokenInvalidId,
	jwt.ErrTokenInvalidClaims,
	jwt.ErrInvalidType,
	jwt.ErrInvalidKey,
	jwt.ErrInvalidKeyType,
}

// Classify maps any error onto the taxonomy. AppErrors found anywhere in the
// chain are returned as-is; known foreign shapes get a fixed status and a
// message safe for display; everything else is an internal error.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	if classified := classifyToken(err); classified != nil {
		return classified
	}
	if classified := classifyPersistence(err); classified != nil {
		return classified
	}
	if classified := classifyDecoding(err); classified != nil {
		return classified
	}

	return Internal(MsgInternalError)
}

// StatusCode returns the HTTP status Classify would assign to err
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return Classify(err).StatusCode
}

func classifyToken(err error) *AppError {
	if stderrors.Is(err, jwt.ErrTokenExpired) {
		return Unauthorized(MsgTokenExpired)
	}
	for _, target := range jwtValidationErrors {
		if stderrors.Is(err, target) {
			return Unauthorized(MsgInvalidToken)
		}
	}
	return nil
}

func classifyPersistence(err error) *AppError {
	switch {
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(MsgNotFound)
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict(MsgDuplicate)
	case stderrors.Is(err, gorm.ErrForeignKeyViolated):
		return BadRequest(MsgInvalidRef)
	}

	var mysqlErr *mysql.MySQLError
	if stderrors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlDuplicateEntry:
			return Conflict(MsgDuplicate)
		case mysqlNoReferencedRow, mysqlNoReferencedRowOld:
			return BadRequest(MsgInvalidRef)
		case mysqlRowIsReferenced, mysqlRowIsReferencedOld:
			return Conflict(MsgResourceInUse)
		}
		return nil
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Conflict(MsgDuplicate)
		case pgForeignKeyViolation:
			if strings.Contains(pgErr.Detail, "still referenced") {
				return Conflict(MsgResourceInUse)
			}
			return BadRequest(MsgInvalidRef)
		}
		return nil
	}

	// SQLite reports the same extended code for both sides of a foreign key
	// violation; delete paths check references before reaching the store.
	var sqliteErr sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return Conflict(MsgDuplicate)
		case sqlite3.ErrConstraintForeignKey:
			return BadRequest(MsgInvalidRef)
		}
	}

	return nil
}

func classifyDecoding(err error) *AppError {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var validationErrs validator.ValidationErrors

	switch {
	case stderrors.As(err, &syntaxErr),
		stderrors.As(err, &typeErr),
		stderrors.As(err, &validationErrs),
		stderrors.Is(err, io.EOF),
		stderrors.Is(err, io.ErrUnexpectedEOF):
		return BadRequest(MsgInvalidBody)
	}
	return nil
}
