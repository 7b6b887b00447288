package analysis

import (
	"encoding/json"
	"errors"
	"fmt"

	"StockMCP/internal/calculator"
	"StockMCP/internal/datecodec"
	"StockMCP/internal/model"
)

const (
	compareFailure = "Failed to get data for one or both stocks"
	legOK          = "No error"
)

// StockDataResult is either Stats or Err, discriminated by Kind.
// An empty Kind means success.
type StockDataResult struct {
	Kind  model.ErrorKind
	Stats *model.StockStats
	Err   *model.StatsError
}

// OK reports whether stats were produced.
func (r StockDataResult) OK() bool { return r.Kind == "" && r.Stats != nil }

// JSON encodes the stats or the error object.
func (r StockDataResult) JSON() string {
	if r.OK() {
		return mustJSON(r.Stats)
	}
	return mustJSON(r.Err)
}

// ComparisonOutcome is either Result or Failure.
type ComparisonOutcome struct {
	Result  *model.ComparisonResult
	Failure *model.ComparisonFailure
}

// OK reports whether both legs succeeded.
func (o ComparisonOutcome) OK() bool { return o.Result != nil }

// JSON encodes the comparison or the failure object.
func (o ComparisonOutcome) JSON() string {
	if o.OK() {
		return mustJSON(o.Result)
	}
	return mustJSON(o.Failure)
}

// Classify maps an operation error to its kind.
func Classify(err error) model.ErrorKind {
	var dateErr *datecodec.InvalidDateFormatError
	var noData *calculator.NoDataError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &dateErr), errors.Is(err, datecodec.ErrEmptyRange):
		return model.KindInvalidDateFormat
	case errors.As(err, &noData):
		return model.KindNoData
	default:
		return model.KindUpstream
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(b)
}
