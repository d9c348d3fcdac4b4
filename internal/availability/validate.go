package availability

import "github.com/suntravels/callcenter/internal/model"

// DateRangeError reports an illegal chronological relationship between a
// check-in and check-out pair.  It is fatal to the current request only.
type DateRangeError struct {
	Message string
}

func (e *DateRangeError) Error() string { return e.Message }

// ValidateStay verifies that a check-in/check-out pair is chronologically
// sane relative to the clock's "today": neither date may be in the past and
// check-out may not precede check-in.  It is used both when recording a new
// contract (start/end window) and when validating a search window.
func ValidateStay(clock Clock, checkIn, checkOut model.Date) error {
	today := clock.Today()
	if checkIn.Before(today) {
		return &DateRangeError{Message: "Check-in Date cannot be in the past"}
	}
	if checkOut.Before(checkIn) {
		return &DateRangeError{Message: "Checkout Date must be after Check-in Date"}
	}
	if checkOut.Before(today) {
		return &DateRangeError{Message: "Checkout Date cannot be in the past"}
	}
	return nil
}
