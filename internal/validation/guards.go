package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/schedule-api/internal/constants"
	apierrors "github.com/yukikurage/schedule-api/internal/errors"
	"github.com/yukikurage/schedule-api/internal/models"
	"github.com/yukikurage/schedule-api/internal/utils"
)

const (
	MsgInvalidEmail    = "invalid email format"
	MsgWeakPassword    = "password must be at least 8 characters with a digit and a symbol"
	MsgInvalidID       = "invalid id"
	MsgInvalidPage     = "page must be an integer greater than or equal to 1"
	MsgInvalidLimit    = "limit must be an integer between 1 and 100"
	msgRequiredFields  = "the following fields are required: %s"
	msgEmptyField      = "field %s is empty"
	msgInvalidParam    = "%s invalid"
	msgInvalidDate     = "%s has invalid format"
	msgParamNotAllowed = "parameters not allowed: %s; valid: %s"
)

// MsgInvalidStatus names every accepted task status
var MsgInvalidStatus = "invalid status, must be one of: " + models.TaskStatusList()

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	integerPattern = regexp.MustCompile(`^[0-9]+$`)
)

// RequiredFields rejects the request unless every field is present and not
// falsy (null, empty string, false or zero).
func RequiredFields(fields ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		loadBody(c, func(body map[string]any) *apierrors.AppError {
			var missing []string
			for _, field := range fields {
				if value, ok := body[field]; !ok || isFalsy(value) {
					missing = append(missing, field)
				}
			}
			if len(missing) > 0 {
				return apierrors.BadRequest(fmt.Sprintf(msgRequiredFields, strings.Join(missing, ", ")))
			}
			return nil
		})
	}
}

// NotEmptyStrings rejects any top-level string field that is blank, apart
// from the fields listed in except
func NotEmptyStrings(except ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		loadBody(c, func(body map[string]any) *apierrors.AppError {
			keys := make([]string, 0, len(body))
			for key := range body {
				if !slices.Contains(except, key) {
					keys = append(keys, key)
				}
			}
			sort.Strings(keys)

			for _, key := range keys {
				if s, ok := body[key].(string); ok && strings.TrimSpace(s) == "" {
					return apierrors.BadRequest(fmt.Sprintf(msgEmptyField, key))
				}
			}
			return nil
		})
	}
}

// EmailFormat checks field against a basic address shape when it is supplied
func EmailFormat(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		loadBody(c, func(body map[string]any) *apierrors.AppError {
			value, present, isString := stringField(body, field)
			if !isString || (present && !emailPattern.MatchString(value)) {
				return apierrors.BadRequest(MsgInvalidEmail)
			}
			return nil
		})
	}
}

// PasswordStrength requires at least 8 characters, a digit and one of !@#$%^&*
func PasswordStrength(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		loadBody(c, func(body map[string]any) *apierrors.AppError {
			value, present, isString := stringField(body, field)
			if !isString || (present && !IsStrongPassword(value)) {
				return apierrors.BadRequest(MsgWeakPassword)
			}
			return nil
		})
	}
}

// IsStrongPassword reports whether password satisfies the credential policy
func IsStrongPassword(password string) bool {
	if utf8.RuneCountInString(password) < constants.MinPasswordLength {
		return false
	}

	var hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(constants.PasswordSymbols, r):
			hasSymbol = true
		}
	}
	return hasDigit && hasSymbol
}

// IdentifierFormat validates the named path parameter as a positive integer
// or a lowercase canonical UUID.
func IdentifierFormat(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsIdentifier(c.Param(param)) {
			reject(c, apierrors.BadRequest(MsgInvalidID))
			return
		}
		c.Next()
	}
}

// IsIdentifier reports whether value is a positive integer or a lowercase
// canonical UUID
func IsIdentifier(value string) bool {
	if IsPositiveInteger(value) {
		return true
	}
	if len(value) != 36 || value != strings.ToLower(value) {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

// IsPositiveInteger reports whether value is a base-10 integer >= 1
func IsPositiveInteger(value string) bool {
	if !integerPattern.MatchString(value) {
		return false
	}
	n, err := strconv.ParseUint(value, 10, 64)
	return err == nil && n > 0
}

// NumericParam validates the named path parameter as a positive integer
func NumericParam(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsPositiveInteger(c.Param(name)) {
			reject(c, apierrors.BadRequest(fmt.Sprintf(msgInvalidParam, name)))
			return
		}
		c.Next()
	}
}

// StatusEnum checks field against the task status set when it is supplied.
// Matching is case-sensitive.
func StatusEnum(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		loadBody(c, func(body map[string]any) *apierrors.AppError {
			value, present, isString := stringField(body, field)
			if !isString || (present && !models.TaskStatus(value).IsValid()) {
				return apierrors.BadRequest(MsgInvalidStatus)
			}
			return nil
		})
	}
}

// DateFormat checks that field parses to an instant when it is supplied
func DateFormat(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		loadBody(c, func(body map[string]any) *apierrors.AppError {
			value, present, isString := stringField(body, field)
			if !isString || (present && !utils.IsValidDateFormat(value)) {
				return apierrors.BadRequest(fmt.Sprintf(msgInvalidDate, field))
			}
			return nil
		})
	}
}

// Pagination validates the page and limit query parameters when present
func Pagination() gin.HandlerFunc {
	return func(c *gin.Context) {
		if page, ok := c.GetQuery("page"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(page))
			if err != nil || n < constants.MinPageSize {
				reject(c, apierrors.BadRequest(MsgInvalidPage))
				return
			}
		}
		if limit, ok := c.GetQuery("limit"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(limit))
			if err != nil || n < constants.MinPageSize || n > constants.MaxPageSize {
				reject(c, apierrors.BadRequest(MsgInvalidLimit))
				return
			}
		}
		c.Next()
	}
}

// AllowedQueryParams rejects any query parameter outside keys
func AllowedQueryParams(keys ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		allowed[key] = struct{}{}
	}

	return func(c *gin.Context) {
		if unknown := unknownParams(c.Request.URL.Query(), allowed); len(unknown) > 0 {
			reject(c, apierrors.BadRequest(fmt.Sprintf(msgParamNotAllowed,
				strings.Join(unknown, ", "), strings.Join(keys, ", "))))
			return
		}
		c.Next()
	}
}

func unknownParams(query url.Values, allowed map[string]struct{}) []string {
	var unknown []string
	for key := range query {
		if _, ok := allowed[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}
