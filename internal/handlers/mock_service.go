package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"battery_cycling/internal/experiment"
	"battery_cycling/internal/models"
	"battery_cycling/internal/service"
	"battery_cycling/internal/simulation"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSimulation struct {
	mu sync.Mutex

	runID  string
	result *simulation.Result
	err    error
	// block, when set, holds Simulate until it is closed or ctx ends.
	block chan struct{}

	calls   int
	lastReq simulation.Request
}

func (m *mockSimulation) Simulate(ctx context.Context, req simulation.Request) (*service.SimulationReport, error) {
	m.mu.Lock()
	m.calls++
	m.lastReq = req
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return &service.SimulationReport{RunID: m.runID}, &simulation.Error{Kind: simulation.KindSolverFailure, Err: ctx.Err()}
		}
	}
	if m.err != nil {
		return &service.SimulationReport{RunID: m.runID}, m.err
	}
	return &service.SimulationReport{RunID: m.runID, Result: m.result}, nil
}

func (m *mockSimulation) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockExperiment struct {
	steps      []experiment.Step
	err        error
	vars       []string
	lastParams service.PreviewParams
}

func (m *mockExperiment) Preview(p service.PreviewParams) ([]experiment.Step, error) {
	m.lastParams = p
	return m.steps, m.err
}
func (m *mockExperiment) Variables() []string { return m.vars }

type mockRunLog struct {
	resp       []models.SimulationRun
	run        models.SimulationRun
	err        error
	lastFilter service.RunFilter
	lastID     string
}

func (m *mockRunLog) List(ctx context.Context, f service.RunFilter) ([]models.SimulationRun, error) {
	m.lastFilter = f
	return m.resp, m.err
}
func (m *mockRunLog) Get(ctx context.Context, id string) (models.SimulationRun, error) {
	m.lastID = id
	return m.run, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWithOptions(s, Options{})
}

func newTestRouterWithOptions(s *service.Service, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func sampleResult() *simulation.Result {
	return &simulation.Result{
		XVariable: "Time [s]",
		YVariable: "Voltage [V]",
		XData:     []float64{0, 10, 20},
		YData:     []float64{4.2, 4.1, 4.0},
	}
}

func sampleRun(id string, at time.Time) models.SimulationRun {
	return models.SimulationRun{
		ID:        id,
		StartedAt: at,
		Current:   0.5,
		Cycles:    1,
		Mode:      "CC",
		XVariable: "Time [s]",
		YVariable: "Voltage [V]",
		Status:    models.RunStatusOK,
		Points:    3,
	}
}
