package usecase

import (
	"time"

	"github.com/fastygo/spideplan/domain"
)

// Clock supplies "now" and the zone that defines the user's calendar day.
type Clock struct {
	Location *time.Location
	NowFunc  func() time.Time
}

// OrDefault fills unset fields with the system clock and local zone.
func (c Clock) OrDefault() Clock {
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.NowFunc == nil {
		c.NowFunc = time.Now
	}
	return c
}

// Now returns the current instant in the clock's zone.
func (c Clock) Now() time.Time {
	return c.NowFunc().In(c.Location)
}

// Today is the local calendar date.
func (c Clock) Today() domain.Date {
	return domain.DateOf(c.Now())
}

// UntilMidnight is the time left in the local day.
func (c Clock) UntilMidnight() time.Duration {
	now := c.Now()
	return c.Today().AddDays(1).Start(c.Location).Sub(now)
}

// FixedClock always reports at, interpreted in at's location.
func FixedClock(at time.Time) Clock {
	return Clock{Location: at.Location(), NowFunc: func() time.Time { return at }}
}
