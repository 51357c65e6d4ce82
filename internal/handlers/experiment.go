package handlers

import (
	"errors"
	"net/http"

	"battery_cycling/internal/experiment"
	"battery_cycling/internal/service"
	"battery_cycling/internal/simulation"

	"github.com/gin-gonic/gin"
)

// ExperimentRequest describes a caller-defined cycling protocol. Zero
// voltages and rest fall back to the simulation defaults; a zero discharge
// rate reuses the charge rate.
type ExperimentRequest struct {
	ChargeCRate    float64 `json:"charge_c_rate" binding:"gt=0" example:"0.5"`
	DischargeCRate float64 `json:"discharge_c_rate" binding:"gte=0" example:"1"`
	VMax           float64 `json:"v_max" binding:"gte=0" example:"4.2"`
	VMin           float64 `json:"v_min" binding:"gte=0" example:"3.0"`
	RestMinutes    int     `json:"rest_minutes" binding:"gte=0" example:"5"`
	Cycles         int     `json:"cycles" example:"2"`
	Mode           string  `json:"mode" binding:"required" example:"CCCV"`
}

func (r ExperimentRequest) toPreviewParams() service.PreviewParams {
	p := service.PreviewParams{
		ChargeCRate:    r.ChargeCRate,
		DischargeCRate: r.DischargeCRate,
		VMax:           r.VMax,
		VMin:           r.VMin,
		RestMinutes:    r.RestMinutes,
		Cycles:         r.Cycles,
		Mode:           r.Mode,
	}
	if p.DischargeCRate == 0 {
		p.DischargeCRate = p.ChargeCRate
	}
	if p.VMax == 0 {
		p.VMax = simulation.VMax
	}
	if p.VMin == 0 {
		p.VMin = simulation.VMin
	}
	if p.RestMinutes == 0 {
		p.RestMinutes = simulation.RestMinutes
	}
	return p
}

// ExperimentPreview is the response of POST /api/v1/experiment.
type ExperimentPreview struct {
	Mode          string            `json:"mode"`
	Cycles        int               `json:"cycles"`
	StepsPerCycle int               `json:"steps_per_cycle"`
	Count         int               `json:"count"`
	Steps         []experiment.Step `json:"steps"`
}

// @Summary      List y-axis variables
// @Description  Output series accepted as y_variable by /simulate.
// @Tags         simulation
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, variables"
// @Router       /api/v1/variables [get]
func (h *Handler) listVariables(c *gin.Context) {
	vars := h.services.Experiment.Variables()
	c.JSON(http.StatusOK, gin.H{
		"count":     len(vars),
		"variables": vars,
	})
}

// @Summary      Preview an experiment
// @Description  Returns the step sequence a protocol expands to, without solving it.
// @Tags         simulation
// @Accept       json
// @Produce      json
// @Param        body  body      ExperimentRequest  true  "Protocol"
// @Success      200   {object}  ExperimentPreview
// @Failure      400   {object}  SimulateError
// @Router       /api/v1/experiment [post]
func (h *Handler) previewExperiment(c *gin.Context) {
	var req ExperimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if h.log != nil {
			h.log.Infow("experiment_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, SimulateError{
			Error: errInvalidBodyPref + err.Error(),
			Kind:  simulation.KindInvalidRequest.String(),
		})
		return
	}

	steps, err := h.services.Experiment.Preview(req.toPreviewParams())
	if err != nil {
		kind := simulation.KindInvalidRequest
		if errors.Is(err, experiment.ErrUnsupportedMode) {
			kind = simulation.KindInvalidMode
		}
		c.JSON(http.StatusBadRequest, SimulateError{Error: err.Error(), Kind: kind.String()})
		return
	}

	perCycle, _ := experiment.StepsPerCycle(req.Mode)
	c.JSON(http.StatusOK, ExperimentPreview{
		Mode:          req.Mode,
		Cycles:        req.Cycles,
		StepsPerCycle: perCycle,
		Count:         len(steps),
		Steps:         steps,
	})
}
