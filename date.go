package pbrates

import (
	"fmt"
	"time"

	"github.com/robotomize/pbrates/provider"
)

const (
	MinDays = 1
	MaxDays = 10
)

var ErrDayCount = fmt.Errorf("day count must be between %d and %d", MinDays, MaxDays)

// DayCount is the number of past days to fetch, today included
type DayCount int

func NewDayCount(n int) (DayCount, error) {
	if n < MinDays || n > MaxDays {
		return 0, fmt.Errorf("%w: got %d", ErrDayCount, n)
	}

	return DayCount(n), nil
}

// DateKeys returns n dates counting backward from now: element 0 is today, element n-1 the oldest.
// Days are stepped in the calendar of now's location, so DST shifts do not skip or repeat a date
func DateKeys(now time.Time, n DayCount) []provider.DateKey {
	keys := make([]provider.DateKey, n)
	for i := range keys {
		keys[i] = provider.NewDateKey(now.AddDate(0, 0, -i))
	}

	return keys
}
