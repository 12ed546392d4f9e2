package models

import (
	"time"

	"github.com/guttosm/offsetcal/internal/datetime"
	"github.com/guttosm/offsetcal/internal/offsets"
)

// OffsetQuery is a single "apply freq to value" request.
//
// Calendar names the holiday set used by the custom business families
// ("C", "CBMS", "CBME"); empty selects the configured default.
type OffsetQuery struct {
	Freq      string
	Value     datetime.DateTime
	Calendar  string
	Timezone  *time.Location
	Normalize bool
	Policy    datetime.Policy
}

// OffsetResult is the outcome of an OffsetQuery.
type OffsetResult struct {
	Input    datetime.DateTime
	Output   datetime.DateTime
	Freq     string
	Name     string
	OnOffset bool
}

// ColumnQuery applies one frequency to a whole column of values.
type ColumnQuery struct {
	Freq      string
	Calendar  string
	Normalize bool
	Policy    datetime.Policy
	Values    []datetime.DateTime
}

// BatchItem pairs one query of a batch with its outcome. Err is set instead
// of Result when that single query failed.
type BatchItem struct {
	Index  int
	Result *OffsetResult
	Err    error
}

// RangeQuery mirrors offsets.RangeSpec with the frequency still as text.
type RangeQuery struct {
	Start     datetime.DateTime
	End       datetime.DateTime
	Periods   *int64
	Freq      string
	Calendar  string
	Location  *time.Location
	Policy    datetime.Policy
	Normalize bool
	Inclusive offsets.Inclusive
}

// RangeResult holds generated range values.
type RangeResult struct {
	Freq   string
	Values []datetime.DateTime
}
