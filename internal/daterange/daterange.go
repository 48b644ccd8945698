package daterange

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("check-in must be before check-out")

const day = 24 * time.Hour

// Range is a stay expressed as UTC millisecond epochs. The check-out instant
// is exclusive: a guest leaving at T frees the site for a guest arriving at T.
type Range struct {
	CheckIn  int64
	CheckOut int64
}

func New(checkIn, checkOut int64) (Range, error) {
	r := Range{CheckIn: checkIn, CheckOut: checkOut}
	if !r.Valid() {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

func (r Range) Valid() bool {
	return r.CheckIn < r.CheckOut
}

func (r Range) Overlaps(o Range) bool {
	return Overlaps(r.CheckIn, r.CheckOut, o.CheckIn, o.CheckOut)
}

// Nights counts started 24h periods between check-in and check-out.
func (r Range) Nights() int {
	if !r.Valid() {
		return 0
	}
	d := time.Duration(r.CheckOut-r.CheckIn) * time.Millisecond
	n := int(d / day)
	if d%day != 0 {
		n++
	}
	return n
}

func (r Range) Start() time.Time { return time.UnixMilli(r.CheckIn).UTC() }
func (r Range) End() time.Time   { return time.UnixMilli(r.CheckOut).UTC() }

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share an instant.
func Overlaps(aStart, aEnd, bStart, bEnd int64) bool {
	return aStart < bEnd && bStart < aEnd
}
