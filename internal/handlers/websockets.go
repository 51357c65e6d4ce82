package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"battery_cycling/internal/simulation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = (pongWait * 9) / 10
	maxMsgSize  = 1 << 12 // 4 KB
	maxInflight = 4       // concurrent solves per connection
)

// Envelope types sent by /ws/simulate.
const (
	wsTypeRunning = "running"
	wsTypeResult  = "result"
	wsTypeError   = "error"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	ID    string      `json:"id,omitempty"`
	RunID string      `json:"run_id,omitempty"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
	Kind  string      `json:"kind,omitempty"`
}

// wsSimulateMessage is one client request. ID is echoed in every reply.
type wsSimulateMessage struct {
	ID      string          `json:"id"`
	Request SimulateRequest `json:"request"`
}

type wsInbound struct {
	msg wsSimulateMessage
	err error
}

// Origins are checked by the CORS layer for plain HTTP; websocket clients
// come from the same front-ends.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Simulate over WebSocket
// @Description  Send {"id": "...", "request": SimulateRequest}. Replies are envelopes of type running, result or error carrying the same id.
// @Tags         simulation
// @Router       /ws/simulate [get]
func (h *Handler) wsSimulate(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Solves belong to the connection: closing it cancels them.
	ctx, cancel := context.WithCancel(c.Request.Context())
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	inbound := make(chan wsInbound)
	done := make(chan struct{})
	go h.startReader(ctx, conn, inbound, done)

	replies := make(chan wsEnvelope, maxInflight)
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	inflight := 0
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case in := <-inbound:
			env, start := h.acceptMessage(in, inflight)
			if err := h.writeEnvelope(conn, env); err != nil {
				return
			}
			if !start {
				continue
			}
			inflight++
			wg.Add(1)
			go func(msg wsSimulateMessage) {
				defer wg.Done()
				select {
				case replies <- h.solveMessage(ctx, msg):
				case <-ctx.Done():
				}
			}(in.msg)
		case env := <-replies:
			inflight--
			if err := h.writeEnvelope(conn, env); err != nil {
				return
			}
		}
	}
}

// acceptMessage validates an inbound message and returns the envelope to send
// right away and whether a solve should start.
func (h *Handler) acceptMessage(in wsInbound, inflight int) (wsEnvelope, bool) {
	if in.err != nil {
		return wsEnvelope{
			Type:  wsTypeError,
			Error: errInvalidBodyPref + in.err.Error(),
			Kind:  simulation.KindInvalidRequest.String(),
		}, false
	}
	if err := binding.Validator.ValidateStruct(&in.msg.Request); err != nil {
		return wsEnvelope{
			Type:  wsTypeError,
			ID:    in.msg.ID,
			Error: errInvalidBodyPref + err.Error(),
			Kind:  simulation.KindInvalidRequest.String(),
		}, false
	}
	if inflight >= maxInflight {
		return wsEnvelope{
			Type:  wsTypeError,
			ID:    in.msg.ID,
			Error: "too many simulations in flight on this connection",
			Kind:  simulation.KindInvalidRequest.String(),
		}, false
	}
	return wsEnvelope{Type: wsTypeRunning, ID: in.msg.ID}, true
}

func (h *Handler) solveMessage(ctx context.Context, msg wsSimulateMessage) wsEnvelope {
	report, err := h.services.Simulate(ctx, msg.Request.toRunnerRequest())
	runID := runIDOf(report)
	if err != nil {
		kind := simulation.KindOf(err)
		if h.log != nil {
			h.log.Infow("ws_simulate_failed", "id", msg.ID, "run_id", runID, "kind", kind.String(), "err", err)
		}
		return wsEnvelope{Type: wsTypeError, ID: msg.ID, RunID: runID, Error: err.Error(), Kind: kind.String()}
	}
	return wsEnvelope{Type: wsTypeResult, ID: msg.ID, RunID: runID, Data: report.Result}
}

func (h *Handler) writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(env); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed", "type", env.Type, "err", err)
		}
		return err
	}
	return nil
}

// startReader decodes client messages until the connection closes.
func (h *Handler) startReader(ctx context.Context, conn *websocket.Conn, inbound chan<- wsInbound, done chan<- struct{}) {
	defer close(done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		var in wsInbound
		in.err = json.Unmarshal(data, &in.msg)
		select {
		case inbound <- in:
		case <-ctx.Done():
			return
		}
	}
}
