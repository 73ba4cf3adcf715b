package appointment

import (
	"errors"
	"fmt"
)

// Service error codes.
const (
	CodeInvalidConfig           = "invalidConfig"
	CodePastDate                = "pastDate"
	CodeStorageError            = "storageError"
	CodeSlotUnavailable         = "slotUnavailable"
	CodeFeeMismatch             = "feeMismatch"
	CodeInvalidConsultationType = "invalidConsultationType"
	CodeNotFound                = "notFound"
	CodeNotBooked               = "notBooked"
	CodeCannotDeleteBooked      = "cannotDeleteBooked"
)

// Error carries a machine-readable code alongside the human-readable message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// HasCode reports whether err is a service Error carrying the given code.
func HasCode(err error, code string) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == code
}
