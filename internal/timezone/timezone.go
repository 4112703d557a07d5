package timezone

import "time"

const DefaultTimezone = "Europe/Warsaw"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ShopClock reads the current time in the shop's timezone, so that the
// wall-clock date it reports is the shop's calendar date.
type ShopClock struct {
	loc *time.Location
}

func NewShopClock(tz string) ShopClock {
	return ShopClock{loc: Location(tz)}
}

func (c ShopClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c ShopClock) Location() *time.Location {
	return c.loc
}
