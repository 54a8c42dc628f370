package availability

import (
	"fmt"
	"time"
)

// All availability decisions are made on the IST wall clock regardless of
// host timezone. A fixed zone avoids a tzdata dependency in containers.
var ISTLocation = time.FixedZone("IST", 5*3600+30*60)

const DateLayout = "2006-01-02"

type Clock interface {
	// Now returns the current instant in IST.
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().In(ISTLocation)
}

// ParseDate parses a YYYY-MM-DD string as midnight IST. Parsing it in UTC
// would shift the calendar day for evening requests, so don't.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, ISTLocation)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// SameDate reports whether a and b fall on the same IST calendar day.
func SameDate(a, b time.Time) bool {
	a, b = a.In(ISTLocation), b.In(ISTLocation)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MinutesOfDay returns minutes since midnight IST.
func MinutesOfDay(t time.Time) int {
	t = t.In(ISTLocation)
	return t.Hour()*60 + t.Minute()
}
