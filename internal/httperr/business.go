package httperr

import "errors"

// ===============================
// Business error codes
// ===============================

const (
	CodeInvalidDuration      = "invalid_duration"
	CodeInvalidTransition    = "invalid_transition"
	CodeInvalidStatus        = "invalid_status"
	CodeAlreadyReleased      = "already_released"
	CodeStatusChanged        = "status_changed"
	CodeMissingReleasePerson = "missing_release_person"
	CodeInvalidPickupDate    = "invalid_pickup_date"
	CodeRescheduleCompleted  = "reschedule_completed"
	CodeInvalidDateOrTime    = "invalid_date_or_time"
	CodeClientRequired       = "client_required"
	CodeAppointmentNotFound  = "appointment_not_found"
	CodeDepositNotFound      = "deposit_not_found"
)

var (
	ErrInvalidDuration      = ErrBusiness(CodeInvalidDuration)
	ErrInvalidTransition    = ErrBusiness(CodeInvalidTransition)
	ErrInvalidStatus        = ErrBusiness(CodeInvalidStatus)
	ErrAlreadyReleased      = ErrBusiness(CodeAlreadyReleased)
	ErrStatusChanged        = ErrBusiness(CodeStatusChanged)
	ErrMissingReleasePerson = ErrBusiness(CodeMissingReleasePerson)
	ErrInvalidPickupDate    = ErrBusiness(CodeInvalidPickupDate)
	ErrRescheduleCompleted  = ErrBusiness(CodeRescheduleCompleted)
	ErrInvalidDateOrTime    = ErrBusiness(CodeInvalidDateOrTime)
	ErrClientRequired       = ErrBusiness(CodeClientRequired)
	ErrAppointmentNotFound  = ErrBusiness(CodeAppointmentNotFound)
	ErrDepositNotFound      = ErrBusiness(CodeDepositNotFound)
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// CodeOf returns the business code carried by err, or "" for any other error.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
