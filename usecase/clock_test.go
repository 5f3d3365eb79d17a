package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/spideplan/domain"
)

func TestClockUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	instant := time.Date(2024, time.August, 1, 20, 30, 0, 0, time.UTC)
	clock := Clock{Location: tokyo, NowFunc: func() time.Time { return instant }}

	assert.Equal(t, domain.NewDate(2024, time.August, 2), clock.Today())
	assert.Equal(t, 5, clock.Now().Hour())
	assert.Equal(t, 18*time.Hour+30*time.Minute, clock.UntilMidnight())
}

func TestClockDefaults(t *testing.T) {
	clock := Clock{}.OrDefault()
	assert.Equal(t, time.Local, clock.Location)
	assert.WithinDuration(t, time.Now(), clock.Now(), time.Second)
}
