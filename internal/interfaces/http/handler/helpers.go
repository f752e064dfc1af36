package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/interfaces/http/dto"
)

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return id, nil
}

// parseRecordFilter builds a record filter from the common list query
// parameters (from, to, page, page_size)
func parseRecordFilter(c *gin.Context) (ledger.RecordFilter, error) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return ledger.RecordFilter{}, err
	}

	filter := ledger.RecordFilter{}

	if req.From != "" {
		from, err := ledger.ParseDate(req.From)
		if err != nil {
			return ledger.RecordFilter{}, err
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := ledger.ParseDate(req.To)
		if err != nil {
			return ledger.RecordFilter{}, err
		}
		filter.To = &to
	}

	if req.PageSize > 0 {
		filter.Limit = req.PageSize
		page := req.Page
		if page < 1 {
			page = 1
		}
		filter.Offset = (page - 1) * req.PageSize
	}

	return filter, nil
}

// parseDateRange parses the required from/to query parameters
func parseDateRange(c *gin.Context) (ledger.DateRange, error) {
	var req dto.RangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return ledger.DateRange{}, err
	}

	from, err := ledger.ParseDate(req.From)
	if err != nil {
		return ledger.DateRange{}, err
	}
	to, err := ledger.ParseDate(req.To)
	if err != nil {
		return ledger.DateRange{}, err
	}

	return ledger.NewDateRange(from, to), nil
}

// parseMonthParam parses the :month path parameter as YYYY-MM
func parseMonthParam(c *gin.Context) (ledger.YearMonth, error) {
	return ledger.ParseYearMonth(c.Param("month"))
}
