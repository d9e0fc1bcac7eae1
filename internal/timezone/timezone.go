package timezone

import "time"

const (
	DefaultTimezone = "UTC"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var configured = DefaultTimezone

// Configure sets the portal-wide timezone used by Now. Invalid names are ignored.
func Configure(tz string) {
	if IsValid(tz) {
		configured = tz
	}
}

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

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(configured))
}

func Today() string {
	return Now().Format(DateLayout)
}

// IsDate reports whether s is a calendar date in YYYY-MM-DD form.
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// IsSlotTime reports whether s is a slot time in HH:MM form.
func IsSlotTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}
