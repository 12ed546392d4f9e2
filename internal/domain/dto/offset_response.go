package dto

import (
	"github.com/guttosm/offsetcal/internal/datetime"
	"github.com/guttosm/offsetcal/internal/market"
)

// OffsetResponse is returned by GET /api/v1/offset.
type OffsetResponse struct {
	Input    datetime.DateTime `json:"input" swaggertype:"string" example:"2024-01-15T00:00:00"`
	Output   datetime.DateTime `json:"output" swaggertype:"string" example:"2024-01-31T00:00:00"`
	Freq     string            `json:"freq" example:"ME"`
	Name     string            `json:"name" example:"MonthEnd"`
	OnOffset bool              `json:"on_offset" example:"false"`
}

// OffsetRequest is one element of a batch request.
type OffsetRequest struct {
	Freq        string `json:"freq" example:"2BMS"`
	Value       string `json:"value" example:"2024-01-15T10:30:00"`
	Calendar    string `json:"calendar,omitempty" example:"NYSE"`
	Timezone    string `json:"tz,omitempty" example:"America/New_York"`
	Normalize   bool   `json:"normalize,omitempty"`
	Ambiguous   string `json:"ambiguous,omitempty" example:"raise"`
	Nonexistent string `json:"nonexistent,omitempty" example:"shift_forward"`
}

// BatchRequest is the body of POST /api/v1/offset/batch.
type BatchRequest struct {
	Items []OffsetRequest `json:"items" binding:"required"`
}

// BatchItemResponse carries either a result or the error of one batch item.
type BatchItemResponse struct {
	Index  int             `json:"index"`
	Result *OffsetResponse `json:"result,omitempty"`
	Error  *ErrorResponse  `json:"error,omitempty"`
}

// BatchResponse is returned by POST /api/v1/offset/batch.
type BatchResponse struct {
	Items  []BatchItemResponse `json:"items"`
	Failed int                 `json:"failed"`
}

// RangeResponse is returned by GET /api/v1/range.
type RangeResponse struct {
	Freq   string              `json:"freq" example:"B"`
	Count  int                 `json:"count" example:"3"`
	Values []datetime.DateTime `json:"values" swaggertype:"array,string"`
}

// BusDayCountResponse is returned by GET /api/v1/busdays/count.
type BusDayCountResponse struct {
	Calendar string        `json:"calendar" example:"NYSE"`
	Begin    datetime.Date `json:"begin" swaggertype:"string" example:"2023-07-03"`
	End      datetime.Date `json:"end" swaggertype:"string" example:"2023-07-10"`
	Count    int64         `json:"count" example:"4"`
}

// BusDayOffsetResponse is returned by GET /api/v1/busdays/offset.
type BusDayOffsetResponse struct {
	Calendar string        `json:"calendar" example:"NYSE"`
	Date     datetime.Date `json:"date" swaggertype:"string" example:"2023-07-03"`
	N        int64         `json:"n" example:"1"`
	Roll     string        `json:"roll" example:"following"`
	Result   datetime.Date `json:"result" swaggertype:"string" example:"2023-07-05"`
}

// ScheduleResponse is returned by GET /api/v1/markets/{code}/schedule.
type ScheduleResponse struct {
	Market   string           `json:"market" example:"XNYS"`
	Sessions []market.Session `json:"sessions"`
}

// CalendarsResponse is returned by GET /api/v1/calendars.
type CalendarsResponse struct {
	Calendars []string `json:"calendars"`
	Markets   []string `json:"markets"`
}

// BusDayLastResponse is returned by GET /api/v1/busdays/last.
type BusDayLastResponse struct {
	Calendar string          `json:"calendar" example:"NYSE"`
	Date     datetime.Date   `json:"date" swaggertype:"string" example:"2023-07-05"`
	N        int             `json:"n" example:"3"`
	Days     []datetime.Date `json:"days" swaggertype:"array,string"`
}

// SearchSortedResponse is returned by the searchsorted endpoints. Index is
// the insertion point of Value that keeps the column sorted.
type SearchSortedResponse struct {
	Value string `json:"value" example:"2024-01-10"`
	Side  string `json:"side" example:"left"`
	Index int    `json:"index" example:"7"`
}

// ValidDaysResponse is returned by GET /api/v1/markets/{code}/days.
type ValidDaysResponse struct {
	Market string          `json:"market" example:"XNYS"`
	Count  int             `json:"count" example:"4"`
	Days   []datetime.Date `json:"days" swaggertype:"array,string"`
}

// TradingIndexResponse is returned by GET /api/v1/markets/{code}/trading-index.
type TradingIndexResponse struct {
	Market string              `json:"market" example:"XHKG"`
	Freq   string              `json:"freq" example:"h"`
	Count  int                 `json:"count" example:"6"`
	Values []datetime.DateTime `json:"values" swaggertype:"array,string"`
}

// MarketOpenResponse is returned by GET /api/v1/markets/{code}/open.
type MarketOpenResponse struct {
	Market string            `json:"market" example:"XNYS"`
	At     datetime.DateTime `json:"at" swaggertype:"string" example:"2024-01-02T10:00:00-05:00"`
	Open   bool              `json:"open" example:"true"`
}

// ReloadResponse is returned by POST /api/v1/calendars/{name}/reload.
type ReloadResponse struct {
	Calendar string `json:"calendar" example:"HKEX"`
	Reloaded bool   `json:"reloaded" example:"true"`
}
