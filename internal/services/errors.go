package services

import (
	apierrors "github.com/yukikurage/schedule-api/internal/errors"
	"github.com/yukikurage/schedule-api/internal/validation"
)

// Expected failures. Callers can match them with errors.Is.
var (
	ErrEmailRegistered    = apierrors.Conflict("email already registered")
	ErrEmailInUse         = apierrors.Conflict("email already in use")
	ErrInvalidCredentials = apierrors.Unauthorized("invalid credentials")
	ErrAccountNotFound    = apierrors.NotFound("account not found")

	ErrEventNotFound       = apierrors.NotFound("event not found")
	ErrEventFieldsRequired = apierrors.BadRequest("title, description, date, location and responsible are required")
	ErrInvalidLatitude     = apierrors.BadRequest("latitude must be between -90 and 90")
	ErrInvalidLongitude    = apierrors.BadRequest("longitude must be between -180 and 180")
	ErrInvalidStartDate    = apierrors.BadRequest("start_date has invalid format")
	ErrInvalidEndDate      = apierrors.BadRequest("end_date has invalid format")
	ErrInvalidDateRange    = apierrors.BadRequest("start_date must be before or equal to end_date")

	ErrTaskNotFound       = apierrors.NotFound("task not found")
	ErrTaskFieldsRequired = apierrors.BadRequest("title, description and date are required")
	ErrInvalidStatus      = apierrors.BadRequest(validation.MsgInvalidStatus)
	ErrInvalidAccount     = apierrors.BadRequest("invalid account")
	ErrInvalidEvent       = apierrors.BadRequest("invalid event")

	ErrInvalidDate   = apierrors.BadRequest("date has invalid format")
	ErrResourceInUse = apierrors.Conflict(apierrors.MsgResourceInUse)
)
