package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"battery_cycling/internal/repository"
	"battery_cycling/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid  = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid    = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errLimitInvalid = "invalid 'limit'; use a non-negative integer"
	errLoadRuns     = "failed to load runs"
	errRunNotFound  = "run not found"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List simulation runs
// @Description  Newest first. Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive.
// @Tags         runs
// @Produce      json
// @Param        from    query   string  false  "Start of range"  example(2025-08-01)
// @Param        to      query   string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        status  query   string  false  "Run status"  Enums(ok,error)
// @Param        limit   query   int     false  "Maximum number of runs"
// @Success      200   {object}  map[string]interface{}  "count, runs"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/runs [get]
// @Security     BearerAuth
func (h *Handler) listRuns(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		from   time.Time
		to     time.Time
		limit  int
		status = c.Query("status")
		err    error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if qs := c.Query("limit"); qs != "" {
		limit, err = strconv.Atoi(qs)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
			return
		}
	}

	runs, err := h.services.RunLog.List(ctx, service.RunFilter{
		From:   from,
		To:     to,
		Status: status,
		Limit:  limit,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidFilter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadRuns, "runs_list_failed", err,
			"user_id", userIDFrom(c), "from", from, "to", to, "status", status)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(runs),
		"runs":  runs,
	})
}

// @Summary      Get a simulation run
// @Tags         runs
// @Produce      json
// @Param        id   path      string  true  "Run id (X-Run-ID of the simulate response)"
// @Success      200  {object}  models.SimulationRun
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/runs/{id} [get]
// @Security     BearerAuth
func (h *Handler) getRun(c *gin.Context) {
	id := c.Param("id")
	run, err := h.services.RunLog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errRunNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadRuns, "runs_get_failed", err,
			"user_id", userIDFrom(c), "run_id", id)
		return
	}
	c.JSON(http.StatusOK, run)
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
