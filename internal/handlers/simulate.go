package handlers

import (
	"net/http"

	"battery_cycling/internal/service"
	"battery_cycling/internal/simulation"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	runIDHeader        = "X-Run-ID"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// SimulateRequest is the body of POST /simulate.
type SimulateRequest struct {
	// C-rate used for both charge and discharge
	Current float64 `json:"current" example:"0.5"`
	Cycles  int     `json:"cycles" example:"2"`
	// CC, CV or CCCV
	Mode string `json:"mode" binding:"required" example:"CC"`
	// Optional SEI sub-model, e.g. "solvent-diffusion limited"
	SEIModel  *string `json:"sei_model,omitempty"`
	XVariable string  `json:"x_variable" binding:"required" example:"Time [s]"`
	YVariable string  `json:"y_variable" binding:"required" example:"Voltage [V]"`
}

func (r SimulateRequest) toRunnerRequest() simulation.Request {
	return simulation.Request{
		Current:   r.Current,
		Cycles:    r.Cycles,
		Mode:      r.Mode,
		SEIModel:  r.SEIModel,
		XVariable: r.XVariable,
		YVariable: r.YVariable,
	}
}

// SimulateError is the failure body of POST /simulate.
type SimulateError struct {
	Error string `json:"error" example:"'Foo' is not a valid y-axis variable."`
	Kind  string `json:"kind" example:"invalid_variable"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Run a cycling simulation
// @Description  Builds the experiment for the given mode, solves it with the DFN model and returns the requested series. Also served at /simulate.
// @Tags         simulation
// @Accept       json
// @Produce      json
// @Param        body  body      SimulateRequest  true  "Simulation request"
// @Success      200   {object}  simulation.Result
// @Header       200   {string}  X-Run-ID  "Run log id"
// @Failure      400   {object}  SimulateError
// @Failure      422   {object}  SimulateError
// @Failure      500   {object}  SimulateError
// @Router       /api/v1/simulate [post]
func (h *Handler) simulate(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if h.log != nil {
			h.log.Infow("simulate_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, SimulateError{
			Error: errInvalidBodyPref + err.Error(),
			Kind:  simulation.KindInvalidRequest.String(),
		})
		return
	}

	report, err := h.services.Simulate(c.Request.Context(), req.toRunnerRequest())
	if report != nil && report.RunID != "" {
		c.Header(runIDHeader, report.RunID)
	}
	if err != nil {
		h.simulationError(c, err, "run_id", runIDOf(report), "mode", req.Mode, "y_variable", req.YVariable)
		return
	}
	c.JSON(http.StatusOK, report.Result)
}

// simulationError logs err and writes it with the status of its kind.
func (h *Handler) simulationError(c *gin.Context, err error, kv ...interface{}) {
	kind := simulation.KindOf(err)
	if h.log != nil {
		fields := append([]interface{}{"kind", kind.String(), "err", err}, kv...)
		if kind == simulation.KindSolverFailure || kind == simulation.KindUnknown {
			h.log.Errorw("simulate_failed", fields...)
		} else {
			h.log.Infow("simulate_rejected", fields...)
		}
	}
	c.JSON(h.statusFor(kind), SimulateError{Error: err.Error(), Kind: kind.String()})
}

// statusFor maps an error kind to an HTTP status.
func (h *Handler) statusFor(kind simulation.Kind) int {
	if h.opts.LegacyErrorStatus {
		return http.StatusOK
	}
	switch kind {
	case simulation.KindInvalidRequest, simulation.KindInvalidMode, simulation.KindInvalidVariable:
		return http.StatusBadRequest
	case simulation.KindMissingOutputKey:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func runIDOf(r *service.SimulationReport) string {
	if r == nil {
		return ""
	}
	return r.RunID
}
