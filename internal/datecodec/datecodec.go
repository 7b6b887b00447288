// Package datecodec converts the compact MMDDYYYY tokens accepted by the
// tools into ISO calendar dates.
package datecodec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-module/carbon"
)

const (
	tokenLayout = "01022006"
	isoLayout   = "2006-01-02"
)

// ErrEmptyRange is returned when the end date does not fall after the start date.
var ErrEmptyRange = errors.New("end date must be after start date")

// InvalidDateFormatError reports a token that is not a real MMDDYYYY date.
type InvalidDateFormatError struct {
	Input string
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("Invalid date format: %s. Expected mmddyyyy format.", e.Input)
}

// Parse converts an MMDDYYYY token into YYYY-MM-DD.
func Parse(token string) (string, error) {
	// year zero is not a calendar year
	if len(token) != 8 || !allDigits(token) || token[4:] == "0000" {
		return "", &InvalidDateFormatError{Input: token}
	}
	c := carbon.ParseByLayout(token, tokenLayout, "UTC")
	if c.Error != nil {
		return "", &InvalidDateFormatError{Input: token}
	}
	return c.ToDateString(), nil
}

// ParseTime is Parse returning midnight UTC of the date.
func ParseTime(token string) (time.Time, error) {
	iso, err := Parse(token)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(isoLayout, iso)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
