package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	// Conflicts lists the bookings a refused save overlaps.
	Conflicts any `json:"conflicts,omitempty"`
}

var messages = map[string]string{
	CodeInvalidDuration:      "Duration must be a positive number of minutes.",
	CodeInvalidTransition:    "Status change is not allowed.",
	CodeInvalidStatus:        "Unknown status filter.",
	CodeAlreadyReleased:      "Deposit has already been released.",
	CodeStatusChanged:        "Deposit status was changed meanwhile. Reload and retry.",
	CodeMissingReleasePerson: "Receiving person is required.",
	CodeInvalidPickupDate:    "Pickup date cannot be before the deposit date.",
	CodeRescheduleCompleted:  "A completed appointment cannot be rescheduled.",
	CodeInvalidDateOrTime:    "Invalid date or time.",
	CodeClientRequired:       "Client is required.",
	CodeAppointmentNotFound:  "Appointment not found.",
	CodeDepositNotFound:      "Deposit not found.",
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

// Conflict reports a 409 together with the overlapping bookings.
func Conflict(c *gin.Context, code, message string, conflicts any) {
	c.JSON(http.StatusConflict, HTTPError{
		Code:      code,
		Message:   message,
		Conflicts: conflicts,
	})
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusFor maps a business code to the HTTP status it is reported with.
func StatusFor(code string) int {
	switch code {
	case CodeAppointmentNotFound, CodeDepositNotFound:
		return http.StatusNotFound
	case CodeInvalidTransition, CodeAlreadyReleased, CodeStatusChanged, CodeRescheduleCompleted:
		return http.StatusConflict
	case "":
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// FromError writes err as a JSON error. Unknown errors become 500 with fallbackCode.
func FromError(c *gin.Context, err error, fallbackCode string) {
	code := CodeOf(err)
	if code == "" {
		Internal(c, fallbackCode, "Internal error.")
		return
	}

	msg, ok := messages[code]
	if !ok {
		msg = code
	}
	Write(c, StatusFor(code), code, msg)
}
