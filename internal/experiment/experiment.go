// Package experiment builds cycling protocols as ordered step descriptors
// understood by the external battery solver.
package experiment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Mode is the shape of one charge/discharge cycle.
type Mode string

const (
	ModeCC   Mode = "CC"
	ModeCV   Mode = "CV"
	ModeCCCV Mode = "CCCV"
)

// Modes lists the supported cycling modes in display order.
var Modes = []Mode{ModeCC, ModeCV, ModeCCCV}

// Action is the kind of instruction a step carries.
type Action string

const (
	ActionCharge    Action = "charge"
	ActionDischarge Action = "discharge"
	ActionHold      Action = "hold"
	ActionRest      Action = "rest"
)

var (
	ErrUnsupportedMode = errors.New("unsupported mode: choose from CC, CV, CCCV")
	ErrInvalidCycles   = errors.New("cycles must be at least 1")
)

// Step is a single instruction of an experiment.
type Step struct {
	Action      Action `json:"action" yaml:"action"`
	Instruction string `json:"instruction" yaml:"instruction"`
}

func (s Step) String() string { return s.Instruction }

// Params describes a cycling protocol.
type Params struct {
	ChargeCRate    float64
	DischargeCRate float64
	VMax           float64
	VMin           float64
	RestMinutes    int
	Cycles         int
	Mode           string
}

// Build returns the per-cycle block for p.Mode repeated p.Cycles times.
func Build(p Params) ([]Step, error) {
	block, err := cycleBlock(p)
	if err != nil {
		return nil, err
	}
	if p.Cycles < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCycles, p.Cycles)
	}

	steps := make([]Step, 0, len(block)*p.Cycles)
	for i := 0; i < p.Cycles; i++ {
		steps = append(steps, block...)
	}
	return steps, nil
}

// StepsPerCycle reports how many steps one cycle of mode contains.
func StepsPerCycle(mode string) (int, error) {
	block, err := cycleBlock(Params{Mode: mode})
	if err != nil {
		return 0, err
	}
	return len(block), nil
}

// Instructions flattens steps into the strings handed to the solver.
func Instructions(steps []Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Instruction
	}
	return out
}

func cycleBlock(p Params) ([]Step, error) {
	var (
		charge    = chargeStep(p.ChargeCRate, p.VMax)
		hold      = holdStep(p.VMax)
		discharge = dischargeStep(p.DischargeCRate, p.VMin)
		rest      = restStep(p.RestMinutes)
	)

	switch Mode(p.Mode) {
	case ModeCC:
		return []Step{charge, rest, discharge, rest}, nil
	case ModeCV:
		return []Step{charge, hold, rest, discharge, rest}, nil
	case ModeCCCV:
		return []Step{discharge, rest, charge, hold, rest}, nil
	default:
		return nil, fmt.Errorf("%w (got %q)", ErrUnsupportedMode, p.Mode)
	}
}

func chargeStep(cRate, vMax float64) Step {
	return Step{
		Action:      ActionCharge,
		Instruction: fmt.Sprintf("Charge at %sC until %sV", formatFloat(cRate), formatFloat(vMax)),
	}
}

func holdStep(v float64) Step {
	return Step{
		Action:      ActionHold,
		Instruction: fmt.Sprintf("Hold at %sV until C/50", formatFloat(v)),
	}
}

func dischargeStep(cRate, vMin float64) Step {
	return Step{
		Action:      ActionDischarge,
		Instruction: fmt.Sprintf("Discharge at %sC until %sV", formatFloat(cRate), formatFloat(vMin)),
	}
}

func restStep(minutes int) Step {
	return Step{
		Action:      ActionRest,
		Instruction: fmt.Sprintf("Rest for %d minutes", minutes),
	}
}

// formatFloat prints the shortest round-tripping form and keeps a trailing
// ".0" on integral values, so 3 renders as "3.0" and 0.5 as "0.5".
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
