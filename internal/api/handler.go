package api

import (
	"net/http"
	"strings"

	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/gin-gonic/gin"

	"github.com/guttosm/offsetcal/internal/busday"
	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/columnar"
	"github.com/guttosm/offsetcal/internal/domain/dto"
	"github.com/guttosm/offsetcal/internal/domain/models"
	"github.com/guttosm/offsetcal/internal/market"
	"github.com/guttosm/offsetcal/internal/middleware"
	"github.com/guttosm/offsetcal/internal/offsets"
	"github.com/guttosm/offsetcal/internal/service"
)

const (
	// maxBatchItems bounds POST /api/v1/offset/batch.
	maxBatchItems = 1000
	// maxArrowBody bounds the stream accepted by POST /api/v1/offset/arrow.
	maxArrowBody = 32 << 20
	// maxLastDays bounds n of GET /api/v1/busdays/last.
	maxLastDays = 10000
)

// Handler provides HTTP handlers for the calendar endpoints.
//
// Responsibilities:
//   - Validate query parameters and request bodies
//   - Delegate computation to the CalendarService
//   - Translate results into response DTOs
//   - Map calendar errors to HTTP status codes
type Handler struct {
	svc service.CalendarService
	mem memory.Allocator
}

// NewHandler constructs a Handler backed by svc.
func NewHandler(svc service.CalendarService) *Handler {
	return &Handler{svc: svc, mem: memory.DefaultAllocator}
}

func fail(c *gin.Context, message string, err error) {
	middleware.AbortWithError(c, middleware.StatusFor(err), message, err)
}

func toOffsetResponse(r *models.OffsetResult) dto.OffsetResponse {
	return dto.OffsetResponse{
		Input:    r.Input,
		Output:   r.Output,
		Freq:     r.Freq,
		Name:     r.Name,
		OnOffset: r.OnOffset,
	}
}

func offsetQuery(req dto.OffsetRequest) (models.OffsetQuery, error) {
	if strings.TrimSpace(req.Freq) == "" {
		return models.OffsetQuery{}, calerr.Precondition("freq is required")
	}
	if strings.TrimSpace(req.Value) == "" {
		return models.OffsetQuery{}, calerr.Precondition("value is required")
	}
	loc, err := loadLocation(req.Timezone)
	if err != nil {
		return models.OffsetQuery{}, err
	}
	policy, err := parsePolicy(req.Ambiguous, req.Nonexistent)
	if err != nil {
		return models.OffsetQuery{}, err
	}
	value, err := parseValue(req.Value, loc, policy)
	if err != nil {
		return models.OffsetQuery{}, err
	}
	return models.OffsetQuery{
		Freq:      req.Freq,
		Value:     value,
		Calendar:  req.Calendar,
		Timezone:  loc,
		Normalize: req.Normalize,
		Policy:    policy,
	}, nil
}

// GetOffset godoc
// @Summary      Apply a date offset
// @Description  Applies a frequency such as "2BMS", "W-MON" or "QE-DEC" to a datetime
// @Tags         offsets
// @Produce      json
// @Param        freq         query     string  true   "Frequency string" example(BME)
// @Param        value        query     string  true   "Datetime literal" example(2024-01-15T10:30:00)
// @Param        calendar     query     string  false  "Holiday calendar for C/CBMS/CBME" example(NYSE)
// @Param        tz           query     string  false  "IANA timezone" example(America/New_York)
// @Param        normalize    query     bool    false  "Truncate the result to midnight"
// @Param        ambiguous    query     string  false  "raise|earliest|latest"
// @Param        nonexistent  query     string  false  "raise|shift_forward|shift_backward"
// @Success      200          {object}  dto.OffsetResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      422          {object}  dto.ErrorResponse
// @Failure      500          {object}  dto.ErrorResponse
// @Router       /api/v1/offset [get]
func (h *Handler) GetOffset(c *gin.Context) {
	normalize, err := parseBool("normalize", c.Query("normalize"))
	if err != nil {
		fail(c, "invalid normalize", err)
		return
	}
	q, err := offsetQuery(dto.OffsetRequest{
		Freq:        c.Query("freq"),
		Value:       c.Query("value"),
		Calendar:    c.Query("calendar"),
		Timezone:    c.Query("tz"),
		Normalize:   normalize,
		Ambiguous:   c.Query("ambiguous"),
		Nonexistent: c.Query("nonexistent"),
	})
	if err != nil {
		fail(c, "invalid offset request", err)
		return
	}

	res, err := h.svc.ApplyOffset(c.Request.Context(), q)
	if err != nil {
		fail(c, "failed to apply offset", err)
		return
	}
	c.JSON(http.StatusOK, toOffsetResponse(res))
}

// PostOffsetBatch godoc
// @Summary      Apply many offsets
// @Description  Applies each item concurrently; failures are reported per item
// @Tags         offsets
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BatchRequest  true  "Batch of offset requests"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/v1/offset/batch [post]
func (h *Handler) PostOffsetBatch(c *gin.Context) {
	var req dto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid batch body", err)
		return
	}
	if len(req.Items) > maxBatchItems {
		fail(c, "batch too large", calerr.Precondition("at most %d items per batch, got %d", maxBatchItems, len(req.Items)))
		return
	}

	resp := dto.BatchResponse{Items: make([]dto.BatchItemResponse, len(req.Items))}
	var (
		queries []models.OffsetQuery
		origin  []int
	)
	for i, item := range req.Items {
		resp.Items[i].Index = i
		q, err := offsetQuery(item)
		if err != nil {
			e := itemError(err)
			resp.Items[i].Error = &e
			continue
		}
		queries = append(queries, q)
		origin = append(origin, i)
	}

	results, err := h.svc.ApplyBatch(c.Request.Context(), queries)
	if err != nil {
		fail(c, "batch aborted", err)
		return
	}
	for _, r := range results {
		i := origin[r.Index]
		if r.Err != nil {
			e := itemError(r.Err)
			resp.Items[i].Error = &e
			continue
		}
		out := toOffsetResponse(r.Result)
		resp.Items[i].Result = &out
	}
	for _, it := range resp.Items {
		if it.Error != nil {
			resp.Failed++
		}
	}
	c.JSON(http.StatusOK, resp)
}

// PostOffsetArrow godoc
// @Summary      Apply an offset to an Arrow column
// @Description  Reads an Arrow IPC stream whose first column is a timestamp array and answers with the shifted column. Nulls stay null
// @Tags         offsets
// @Accept       application/vnd.apache.arrow.stream
// @Produce      application/vnd.apache.arrow.stream
// @Param        freq         query     string  true   "Frequency string" example(BME)
// @Param        calendar     query     string  false  "Holiday calendar for C/CBMS/CBME"
// @Param        normalize    query     bool    false  "Truncate results to midnight"
// @Param        ambiguous    query     string  false  "raise|earliest|latest"
// @Param        nonexistent  query     string  false  "raise|shift_forward|shift_backward"
// @Success      200          {file}    binary
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      422          {object}  dto.ErrorResponse
// @Router       /api/v1/offset/arrow [post]
func (h *Handler) PostOffsetArrow(c *gin.Context) {
	freq := c.Query("freq")
	if strings.TrimSpace(freq) == "" {
		fail(c, "invalid offset request", calerr.Precondition("freq is required"))
		return
	}
	normalize, err := parseBool("normalize", c.Query("normalize"))
	if err != nil {
		fail(c, "invalid normalize", err)
		return
	}
	policy, err := parsePolicy(c.Query("ambiguous"), c.Query("nonexistent"))
	if err != nil {
		fail(c, "invalid offset request", err)
		return
	}
	values, err := columnar.ReadTimestampStream(http.MaxBytesReader(c.Writer, c.Request.Body, maxArrowBody), h.mem)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid arrow stream", err)
		return
	}

	out, err := h.svc.OffsetColumn(c.Request.Context(), models.ColumnQuery{
		Freq:      freq,
		Calendar:  c.Query("calendar"),
		Normalize: normalize,
		Policy:    policy,
		Values:    values,
	})
	if err != nil {
		fail(c, "failed to apply offset", err)
		return
	}
	arr, err := columnar.TimestampArray(h.mem, out)
	if err != nil {
		fail(c, "failed to encode column", err)
		return
	}
	defer arr.Release()
	c.Header("Content-Type", columnar.StreamContentType)
	c.Status(http.StatusOK)
	if err := columnar.WriteStream(c.Writer, h.mem, "value", arr); err != nil {
		_ = c.Error(err)
	}
}

func itemError(err error) dto.ErrorResponse {
	e := dto.NewErrorResponse("offset failed", err)
	e.Kind = calerr.Kind(err)
	return e
}

// GetRange godoc
// @Summary      Generate a date range
// @Description  Exactly two of start, end and periods must be given. format=arrow returns an Arrow IPC stream
// @Tags         offsets
// @Produce      json
// @Produce      application/vnd.apache.arrow.stream
// @Param        start        query     string  false  "Start datetime" example(2024-01-01)
// @Param        end          query     string  false  "End datetime" example(2024-03-31)
// @Param        periods      query     int     false  "Number of values"
// @Param        freq         query     string  false  "Frequency, default D" example(BME)
// @Param        calendar     query     string  false  "Holiday calendar for C/CBMS/CBME"
// @Param        tz           query     string  false  "IANA timezone"
// @Param        normalize    query     bool    false  "Normalize endpoints to midnight"
// @Param        inclusive    query     string  false  "both|neither|left|right"
// @Param        ambiguous    query     string  false  "raise|earliest|latest"
// @Param        nonexistent  query     string  false  "raise|shift_forward|shift_backward"
// @Param        format       query     string  false  "json|arrow"
// @Success      200          {object}  dto.RangeResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      422          {object}  dto.ErrorResponse
// @Router       /api/v1/range [get]
func (h *Handler) GetRange(c *gin.Context) {
	q, err := rangeQuery(c)
	if err != nil {
		fail(c, "invalid range request", err)
		return
	}

	switch format := c.DefaultQuery("format", "json"); format {
	case "json":
		res, err := h.svc.DateRange(c.Request.Context(), q)
		if err != nil {
			fail(c, "failed to build range", err)
			return
		}
		c.JSON(http.StatusOK, dto.RangeResponse{Freq: res.Freq, Count: len(res.Values), Values: res.Values})
	case "arrow":
		arr, err := h.svc.DateRangeArray(c.Request.Context(), h.mem, q)
		if err != nil {
			fail(c, "failed to build range", err)
			return
		}
		defer arr.Release()
		c.Header("Content-Type", columnar.StreamContentType)
		c.Status(http.StatusOK)
		if err := columnar.WriteStream(c.Writer, h.mem, "value", arr); err != nil {
			_ = c.Error(err)
		}
	default:
		fail(c, "invalid format", calerr.Precondition("format must be json or arrow, got %q", format))
	}
}

func rangeQuery(c *gin.Context) (models.RangeQuery, error) {
	var q models.RangeQuery
	loc, err := loadLocation(c.Query("tz"))
	if err != nil {
		return q, err
	}
	policy, err := parsePolicy(c.Query("ambiguous"), c.Query("nonexistent"))
	if err != nil {
		return q, err
	}
	normalize, err := parseBool("normalize", c.Query("normalize"))
	if err != nil {
		return q, err
	}
	inclusive, err := offsets.ParseInclusive(c.Query("inclusive"))
	if err != nil {
		return q, err
	}
	q = models.RangeQuery{
		Freq:      c.DefaultQuery("freq", "D"),
		Calendar:  c.Query("calendar"),
		Location:  loc,
		Policy:    policy,
		Normalize: normalize,
		Inclusive: inclusive,
	}
	if s := c.Query("start"); s != "" {
		if q.Start, err = parseValue(s, loc, policy); err != nil {
			return q, err
		}
	}
	if s := c.Query("end"); s != "" {
		if q.End, err = parseValue(s, loc, policy); err != nil {
			return q, err
		}
	}
	if s := c.Query("periods"); s != "" {
		n, err := parseInt("periods", s)
		if err != nil {
			return q, err
		}
		q.Periods = &n
	}
	return q, nil
}

// GetRangeSearchSorted godoc
// @Summary      Locate a value in a date range
// @Description  Index at which value would be inserted into the range built from the same parameters as /api/v1/range
// @Tags         offsets
// @Produce      json
// @Param        value        query     string  true   "Datetime to locate" example(2024-01-10)
// @Param        side         query     string  false  "left|right"
// @Param        start        query     string  false  "Start datetime" example(2024-01-01)
// @Param        end          query     string  false  "End datetime" example(2024-01-31)
// @Param        periods      query     int     false  "Number of values"
// @Param        freq         query     string  false  "Frequency, default D" example(B)
// @Param        calendar     query     string  false  "Holiday calendar for C/CBMS/CBME"
// @Param        tz           query     string  false  "IANA timezone"
// @Param        inclusive    query     string  false  "both|neither|left|right"
// @Success      200          {object}  dto.SearchSortedResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      422          {object}  dto.ErrorResponse
// @Router       /api/v1/range/searchsorted [get]
func (h *Handler) GetRangeSearchSorted(c *gin.Context) {
	q, err := rangeQuery(c)
	if err != nil {
		fail(c, "invalid range request", err)
		return
	}
	raw := c.Query("value")
	if strings.TrimSpace(raw) == "" {
		fail(c, "invalid value", calerr.Precondition("value is required"))
		return
	}
	v, err := parseValue(raw, q.Location, q.Policy)
	if err != nil {
		fail(c, "invalid value", err)
		return
	}
	side, err := columnar.ParseSide(c.Query("side"))
	if err != nil {
		fail(c, "invalid side", err)
		return
	}
	i, err := h.svc.SearchRange(c.Request.Context(), h.mem, q, v, side)
	if err != nil {
		fail(c, "failed to search range", err)
		return
	}
	c.JSON(http.StatusOK, dto.SearchSortedResponse{Value: raw, Side: side.String(), Index: i})
}

// GetBusDayCount godoc
// @Summary      Count business days
// @Description  Counts valid days in [begin, end); negative when begin is after end
// @Tags         busdays
// @Produce      json
// @Param        calendar  query     string  false  "Holiday calendar" example(NYSE)
// @Param        begin     query     string  true   "Begin date" example(2023-07-03)
// @Param        end       query     string  true   "End date" example(2023-07-10)
// @Success      200       {object}  dto.BusDayCountResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/v1/busdays/count [get]
func (h *Handler) GetBusDayCount(c *gin.Context) {
	begin, err := requireDate("begin", c.Query("begin"))
	if err != nil {
		fail(c, "invalid begin", err)
		return
	}
	end, err := requireDate("end", c.Query("end"))
	if err != nil {
		fail(c, "invalid end", err)
		return
	}
	calendar := strings.ToUpper(c.Query("calendar"))
	n, err := h.svc.CountBusinessDays(c.Request.Context(), calendar, begin, end)
	if err != nil {
		fail(c, "failed to count business days", err)
		return
	}
	c.JSON(http.StatusOK, dto.BusDayCountResponse{Calendar: calendar, Begin: begin, End: end, Count: n})
}

// GetBusDayOffset godoc
// @Summary      Offset by business days
// @Description  Rolls date onto a valid day with roll, then moves n valid days
// @Tags         busdays
// @Produce      json
// @Param        calendar  query     string  false  "Holiday calendar" example(NYSE)
// @Param        date      query     string  true   "Start date" example(2023-07-03)
// @Param        n         query     int     false  "Business days to move, default 0"
// @Param        roll      query     string  false  "raise|following|preceding|modifiedfollowing|modifiedpreceding|forward|backward"
// @Success      200       {object}  dto.BusDayOffsetResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      422       {object}  dto.ErrorResponse
// @Router       /api/v1/busdays/offset [get]
func (h *Handler) GetBusDayOffset(c *gin.Context) {
	d, err := requireDate("date", c.Query("date"))
	if err != nil {
		fail(c, "invalid date", err)
		return
	}
	var n int64
	if s := c.Query("n"); s != "" {
		if n, err = parseInt("n", s); err != nil {
			fail(c, "invalid n", err)
			return
		}
	}
	roll, err := busday.ParseRoll(c.DefaultQuery("roll", "following"))
	if err != nil {
		fail(c, "invalid roll", err)
		return
	}
	calendar := strings.ToUpper(c.Query("calendar"))
	out, err := h.svc.OffsetBusinessDays(c.Request.Context(), calendar, d, n, roll)
	if err != nil {
		fail(c, "failed to offset business days", err)
		return
	}
	c.JSON(http.StatusOK, dto.BusDayOffsetResponse{Calendar: calendar, Date: d, N: n, Roll: roll.String(), Result: out})
}

// GetBusDayLast godoc
// @Summary      Last business days
// @Description  The n business days on or before date, most recent first
// @Tags         busdays
// @Produce      json
// @Param        calendar  query     string  false  "Holiday calendar" example(NYSE)
// @Param        date      query     string  true   "Reference date" example(2023-07-05)
// @Param        n         query     int     false  "How many days, default 1"
// @Success      200       {object}  dto.BusDayLastResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      422       {object}  dto.ErrorResponse
// @Router       /api/v1/busdays/last [get]
func (h *Handler) GetBusDayLast(c *gin.Context) {
	d, err := requireDate("date", c.Query("date"))
	if err != nil {
		fail(c, "invalid date", err)
		return
	}
	n := int64(1)
	if s := c.Query("n"); s != "" {
		if n, err = parseInt("n", s); err != nil {
			fail(c, "invalid n", err)
			return
		}
	}
	if n > maxLastDays {
		fail(c, "invalid n", calerr.Precondition("n must be at most %d, got %d", maxLastDays, n))
		return
	}
	calendar := strings.ToUpper(c.Query("calendar"))
	days, err := h.svc.LastBusinessDays(c.Request.Context(), calendar, int(n), d)
	if err != nil {
		fail(c, "failed to list business days", err)
		return
	}
	c.JSON(http.StatusOK, dto.BusDayLastResponse{Calendar: calendar, Date: d, N: int(n), Days: days})
}

// GetSchedule godoc
// @Summary      Market schedule
// @Description  Sessions (open, close, breaks) of a builtin exchange calendar
// @Tags         markets
// @Produce      json
// @Param        code   path      string  true  "Exchange code" example(XNYS)
// @Param        start  query     string  true  "Start date" example(2023-11-20)
// @Param        end    query     string  true  "End date" example(2023-11-24)
// @Success      200    {object}  dto.ScheduleResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/v1/markets/{code}/schedule [get]
func (h *Handler) GetSchedule(c *gin.Context) {
	start, err := requireDate("start", c.Query("start"))
	if err != nil {
		fail(c, "invalid start", err)
		return
	}
	end, err := requireDate("end", c.Query("end"))
	if err != nil {
		fail(c, "invalid end", err)
		return
	}
	code := strings.ToUpper(c.Param("code"))
	sessions, err := h.svc.Schedule(c.Request.Context(), code, start, end)
	if err != nil {
		fail(c, "failed to build schedule", err)
		return
	}
	if sessions == nil {
		sessions = []market.Session{}
	}
	c.JSON(http.StatusOK, dto.ScheduleResponse{Market: code, Sessions: sessions})
}

// GetCalendars godoc
// @Summary      List calendars
// @Description  Holiday calendars (builtin and stored) and builtin exchange codes
// @Tags         busdays
// @Produce      json
// @Success      200  {object}  dto.CalendarsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/calendars [get]
func (h *Handler) GetCalendars(c *gin.Context) {
	names, err := h.svc.Calendars(c.Request.Context())
	if err != nil {
		fail(c, "failed to list calendars", err)
		return
	}
	c.JSON(http.StatusOK, dto.CalendarsResponse{Calendars: names, Markets: market.Codes()})
}

// PostReload godoc
// @Summary      Reload a calendar
// @Description  Drops the cached holiday calendar and the market calendars built on it; the next request reads storage again
// @Tags         busdays
// @Produce      json
// @Param        name  path      string  true  "Holiday calendar" example(HKEX)
// @Success      200   {object}  dto.ReloadResponse
// @Router       /api/v1/calendars/{name}/reload [post]
func (h *Handler) PostReload(c *gin.Context) {
	name := strings.ToUpper(strings.TrimSpace(c.Param("name")))
	h.svc.Reload(name)
	c.JSON(http.StatusOK, dto.ReloadResponse{Calendar: name, Reloaded: true})
}
