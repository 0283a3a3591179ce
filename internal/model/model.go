package model

import "time"

// Presenter is the person giving a talk. Bio is nil when the feed
// omitted the field or sent an explicit null; both mean "no bio".
type Presenter struct {
	Name string
	Bio  *string
}

// Talk represents one schedule entry as decoded from the feed. Most
// text fields are opaque to this program and carried for display only.
type Talk struct {
	ID int

	Title string
	Body  string
	Level string
	Room  string
	URL   string

	// Tags is the ordered token sequence derived from the feed's
	// comma-joined tags string. Never contains empty strings;
	// duplicates from the feed are preserved.
	Tags []string

	// StartsAt / EndsAt are nil when the feed value was absent, null,
	// or unparseable. All other fields are strict; only timestamps
	// degrade to "no value".
	StartsAt *time.Time
	EndsAt   *time.Time

	// CreatedAt / UpdatedAt are carried as raw text for passthrough.
	CreatedAt string
	UpdatedAt string

	Presenter Presenter
}

// Day returns the calendar day-of-month the talk starts on, in the
// given location. Talks without a parsed start time report day 0, a
// sentinel distinct from any real conference day, so they drop out of
// every specific day selection.
func (t Talk) Day(loc *time.Location) int {
	if t.StartsAt == nil {
		return 0
	}
	return t.StartsAt.In(loc).Day()
}
