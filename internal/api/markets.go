package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/columnar"
	"github.com/guttosm/offsetcal/internal/datetime"
	"github.com/guttosm/offsetcal/internal/domain/dto"
)

// dateSpan reads the required start and end query dates.
func dateSpan(c *gin.Context) (datetime.Date, datetime.Date, error) {
	start, err := requireDate("start", c.Query("start"))
	if err != nil {
		return datetime.Date{}, datetime.Date{}, err
	}
	end, err := requireDate("end", c.Query("end"))
	if err != nil {
		return datetime.Date{}, datetime.Date{}, err
	}
	return start, end, nil
}

// GetValidDays godoc
// @Summary      Market trading days
// @Description  Trading days of a builtin exchange from start to end inclusive. format=arrow returns a date32 Arrow IPC stream
// @Tags         markets
// @Produce      json
// @Produce      application/vnd.apache.arrow.stream
// @Param        code    path      string  true   "Exchange code" example(XNYS)
// @Param        start   query     string  true   "Start date" example(2023-11-20)
// @Param        end     query     string  true   "End date" example(2023-11-24)
// @Param        format  query     string  false  "json|arrow"
// @Success      200     {object}  dto.ValidDaysResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/v1/markets/{code}/days [get]
func (h *Handler) GetValidDays(c *gin.Context) {
	start, end, err := dateSpan(c)
	if err != nil {
		fail(c, "invalid date span", err)
		return
	}
	code := strings.ToUpper(c.Param("code"))

	switch format := c.DefaultQuery("format", "json"); format {
	case "json":
		days, err := h.svc.ValidDays(c.Request.Context(), code, start, end)
		if err != nil {
			fail(c, "failed to list trading days", err)
			return
		}
		if days == nil {
			days = []datetime.Date{}
		}
		c.JSON(http.StatusOK, dto.ValidDaysResponse{Market: code, Count: len(days), Days: days})
	case "arrow":
		arr, err := h.svc.ValidDaysArray(c.Request.Context(), h.mem, code, start, end)
		if err != nil {
			fail(c, "failed to list trading days", err)
			return
		}
		defer arr.Release()
		c.Header("Content-Type", columnar.StreamContentType)
		c.Status(http.StatusOK)
		if err := columnar.WriteStream(c.Writer, h.mem, "date", arr); err != nil {
			_ = c.Error(err)
		}
	default:
		fail(c, "invalid format", calerr.Precondition("format must be json or arrow, got %q", format))
	}
}

// GetValidDaysSearchSorted godoc
// @Summary      Locate a date among trading days
// @Description  Index at which date would be inserted into the trading days from start to end
// @Tags         markets
// @Produce      json
// @Param        code   path      string  true   "Exchange code" example(XNYS)
// @Param        start  query     string  true   "Start date" example(2024-01-01)
// @Param        end    query     string  true   "End date" example(2024-01-31)
// @Param        date   query     string  true   "Date to locate" example(2024-01-15)
// @Param        side   query     string  false  "left|right"
// @Success      200    {object}  dto.SearchSortedResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/v1/markets/{code}/days/searchsorted [get]
func (h *Handler) GetValidDaysSearchSorted(c *gin.Context) {
	start, end, err := dateSpan(c)
	if err != nil {
		fail(c, "invalid date span", err)
		return
	}
	d, err := requireDate("date", c.Query("date"))
	if err != nil {
		fail(c, "invalid date", err)
		return
	}
	side, err := columnar.ParseSide(c.Query("side"))
	if err != nil {
		fail(c, "invalid side", err)
		return
	}
	code := strings.ToUpper(c.Param("code"))
	i, err := h.svc.SearchValidDays(c.Request.Context(), h.mem, code, start, end, d, side)
	if err != nil {
		fail(c, "failed to search trading days", err)
		return
	}
	c.JSON(http.StatusOK, dto.SearchSortedResponse{Value: d.String(), Side: side.String(), Index: i})
}

// GetTradingIndex godoc
// @Summary      Intraday trading index
// @Description  Values of a tick frequency from each session open to its close, skipping breaks
// @Tags         markets
// @Produce      json
// @Param        code   path      string  true   "Exchange code" example(XHKG)
// @Param        start  query     string  true   "Start date" example(2024-01-02)
// @Param        end    query     string  true   "End date" example(2024-01-02)
// @Param        freq   query     string  false  "Tick frequency, default h" example(30min)
// @Success      200    {object}  dto.TradingIndexResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/v1/markets/{code}/trading-index [get]
func (h *Handler) GetTradingIndex(c *gin.Context) {
	start, end, err := dateSpan(c)
	if err != nil {
		fail(c, "invalid date span", err)
		return
	}
	code := strings.ToUpper(c.Param("code"))
	freq := c.DefaultQuery("freq", "h")
	values, err := h.svc.TradingIndex(c.Request.Context(), code, start, end, freq)
	if err != nil {
		fail(c, "failed to build trading index", err)
		return
	}
	if values == nil {
		values = []datetime.DateTime{}
	}
	c.JSON(http.StatusOK, dto.TradingIndexResponse{Market: code, Freq: freq, Count: len(values), Values: values})
}

// GetMarketOpen godoc
// @Summary      Is the market open
// @Description  Whether a builtin exchange trades at a moment. A naive at is read on the exchange's wall clock unless tz is given
// @Tags         markets
// @Produce      json
// @Param        code  path      string  true   "Exchange code" example(XNYS)
// @Param        at    query     string  true   "Datetime" example(2024-01-02T10:00:00)
// @Param        tz    query     string  false  "IANA timezone of a naive at"
// @Success      200   {object}  dto.MarketOpenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/markets/{code}/open [get]
func (h *Handler) GetMarketOpen(c *gin.Context) {
	raw := c.Query("at")
	if strings.TrimSpace(raw) == "" {
		fail(c, "invalid at", calerr.Precondition("at is required"))
		return
	}
	loc, err := loadLocation(c.Query("tz"))
	if err != nil {
		fail(c, "invalid tz", err)
		return
	}
	at, err := parseValue(raw, loc, datetime.Policy{})
	if err != nil {
		fail(c, "invalid at", err)
		return
	}
	code := strings.ToUpper(c.Param("code"))
	open, checked, err := h.svc.IsOpen(c.Request.Context(), code, at)
	if err != nil {
		fail(c, "failed to check market hours", err)
		return
	}
	c.JSON(http.StatusOK, dto.MarketOpenResponse{Market: code, At: checked, Open: open})
}
