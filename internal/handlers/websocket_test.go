package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"battery_cycling/internal/service"
	"battery_cycling/internal/simulation"

	"github.com/gorilla/websocket"
)

type testEnvelope struct {
	Type  string          `json:"type"`
	ID    string          `json:"id"`
	RunID string          `json:"run_id"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Kind  string          `json:"kind"`
}

func dialSimulateWS(t *testing.T, s *service.Service) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(newTestRouter(s))
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws/simulate"

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) testEnvelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env testEnvelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env
}

func TestWebSocket_SimulateRunningThenResult(t *testing.T) {
	sim := &mockSimulation{runID: "run-ws", result: sampleResult()}
	conn := dialSimulateWS(t, &service.Service{Simulation: sim})

	msg := `{"id":"a1","request":` + validSimulateBody + `}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}

	env := readEnvelope(t, conn)
	if env.Type != "running" || env.ID != "a1" {
		t.Fatalf("expected running envelope, got %+v", env)
	}
	env = readEnvelope(t, conn)
	if env.Type != "result" || env.ID != "a1" || env.RunID != "run-ws" {
		t.Fatalf("expected result envelope, got %+v", env)
	}
	var res simulation.Result
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if res.YVariable != "Voltage [V]" || len(res.YData) != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestWebSocket_SimulateErrorCarriesKind(t *testing.T) {
	sim := &mockSimulation{runID: "run-bad", err: &simulation.Error{Kind: simulation.KindInvalidVariable, Key: "Foo"}}
	conn := dialSimulateWS(t, &service.Service{Simulation: sim})

	msg := `{"id":"b2","request":{"current":1,"cycles":1,"mode":"CC","x_variable":"Time [s]","y_variable":"Foo"}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}

	_ = readEnvelope(t, conn) // running
	env := readEnvelope(t, conn)
	if env.Type != "error" || env.ID != "b2" || env.Kind != "invalid_variable" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Error != "'Foo' is not a valid y-axis variable." {
		t.Fatalf("unexpected message: %q", env.Error)
	}
}

func TestWebSocket_InvalidMessagesKeepConnection(t *testing.T) {
	sim := &mockSimulation{runID: "r", result: sampleResult()}
	conn := dialSimulateWS(t, &service.Service{Simulation: sim})

	_ = conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
	env := readEnvelope(t, conn)
	if env.Type != "error" || env.Kind != "invalid_request" {
		t.Fatalf("expected error for garbage, got %+v", env)
	}

	_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"id":"c3","request":{"current":1,"cycles":1}}`))
	env = readEnvelope(t, conn)
	if env.Type != "error" || env.ID != "c3" || env.Kind != "invalid_request" {
		t.Fatalf("expected validation error, got %+v", env)
	}
	if sim.callCount() != 0 {
		t.Fatalf("service called for invalid messages")
	}

	// the connection is still usable
	_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"id":"c4","request":`+validSimulateBody+`}`))
	if env := readEnvelope(t, conn); env.Type != "running" {
		t.Fatalf("expected running, got %+v", env)
	}
	if env := readEnvelope(t, conn); env.Type != "result" || env.ID != "c4" {
		t.Fatalf("expected result, got %+v", env)
	}
}

func TestWebSocket_InflightCap(t *testing.T) {
	sim := &mockSimulation{runID: "r", result: sampleResult(), block: make(chan struct{})}
	conn := dialSimulateWS(t, &service.Service{Simulation: sim})
	defer close(sim.block)

	for i := 0; i < maxInflight; i++ {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"id":"q","request":`+validSimulateBody+`}`))
		if env := readEnvelope(t, conn); env.Type != "running" {
			t.Fatalf("message %d: expected running, got %+v", i, env)
		}
	}

	_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"id":"over","request":`+validSimulateBody+`}`))
	env := readEnvelope(t, conn)
	if env.Type != "error" || env.ID != "over" {
		t.Fatalf("expected rejection over the cap, got %+v", env)
	}
}
