package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for stay dates.
const DateLayout = "2006-01-02"

// StayRange is a half-open night range [CheckIn, CheckOut). A guest checking
// out on day D does not overlap a guest checking in on day D.
type StayRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func NewStayRange(checkIn, checkOut time.Time) StayRange {
	return StayRange{CheckIn: Date(checkIn), CheckOut: Date(checkOut)}
}

func (r StayRange) Valid() bool {
	return r.CheckIn.Before(r.CheckOut)
}

func (r StayRange) Overlaps(o StayRange) bool {
	return r.CheckIn.Before(o.CheckOut) && o.CheckIn.Before(r.CheckOut)
}

// Covers reports whether a guest is in the room on the night of day.
func (r StayRange) Covers(day time.Time) bool {
	d := Date(day)
	return !d.Before(r.CheckIn) && d.Before(r.CheckOut)
}

// Nights is the billable night count, never less than one.
func (r StayRange) Nights() int {
	n := int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

func (r StayRange) Total(nightly decimal.Decimal) decimal.Decimal {
	return nightly.Mul(decimal.NewFromInt(int64(r.Nights())))
}
