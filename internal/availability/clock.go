package availability

import (
	"time"

	"github.com/suntravels/callcenter/internal/model"
)

// Clock supplies "today" to date validation.  Injecting it keeps the
// validator deterministic in tests; production code uses SystemClock.
type Clock interface {
	Today() model.Date
}

// SystemClock reads the current calendar date from the wall clock.
type SystemClock struct{}

func (SystemClock) Today() model.Date { return model.DateOf(time.Now()) }

// FixedClock always reports the same date.  Used in tests.
type FixedClock struct {
	Date model.Date
}

func (c FixedClock) Today() model.Date { return c.Date }
