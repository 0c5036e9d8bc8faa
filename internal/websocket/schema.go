package websocket

import "github.com/kryptaroid/lms-career-shiksha/internal/engine"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAnswer Action = "answer"
	ActionNext   Action = "next"
	ActionPrev   Action = "prev"
	ActionFinish Action = "finish"
	ActionReset  Action = "reset"
	ActionPing   Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// AnswerRequest locks in an option for one question. The index is the
// zero-based question position; the option is the chosen option text.
type AnswerRequest struct {
	Action Action `json:"action"`
	Index  int    `json:"index"`
	Option string `json:"option"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventState    Event = "state"
	EventAnswered Event = "answered"
	EventResult   Event = "result"
	EventError    Event = "error"
	EventPong     Event = "pong"
)

// StateResponse carries the current session view after every
// navigation and on connect.
type StateResponse struct {
	Event Event           `json:"event"`
	State engine.Snapshot `json:"state"`
}

// AnsweredResponse acknowledges a locked-in answer with the running tallies.
type AnsweredResponse struct {
	Event   Event          `json:"event"`
	Index   int            `json:"index"`
	Tallies engine.Tallies `json:"tallies"`
}

// ResultResponse delivers the one-shot summary once the session finalizes.
type ResultResponse struct {
	Event  Event                `json:"event"`
	Result engine.ResultSummary `json:"result"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
