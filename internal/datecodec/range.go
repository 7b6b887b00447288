package datecodec

import (
	"fmt"
	"time"
)

// Range is a half-open [Start, End) window of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseRange parses both tokens. The end must be strictly after the start.
func ParseRange(startToken, endToken string) (Range, error) {
	start, err := ParseTime(startToken)
	if err != nil {
		return Range{}, err
	}
	end, err := ParseTime(endToken)
	if err != nil {
		return Range{}, err
	}
	if !end.After(start) {
		return Range{}, fmt.Errorf("%w: %s to %s", ErrEmptyRange, start.Format(isoLayout), end.Format(isoLayout))
	}
	return Range{Start: start, End: end}, nil
}

// StartDate returns the ISO form of the start.
func (r Range) StartDate() string { return r.Start.Format(isoLayout) }

// EndDate returns the ISO form of the end.
func (r Range) EndDate() string { return r.End.Format(isoLayout) }
