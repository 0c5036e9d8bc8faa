package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kryptaroid/lms-career-shiksha/internal/engine"
	"github.com/kryptaroid/lms-career-shiksha/internal/middleware"
	"github.com/kryptaroid/lms-career-shiksha/internal/service"
	ws "github.com/kryptaroid/lms-career-shiksha/internal/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// wsConn serializes all writes to one WebSocket connection. The result
// event can arrive from the ticker goroutine while the read loop is
// answering a navigation action, so every write goes through the mutex.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (w *wsConn) write(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return ws.WriteTyped(w.conn, v)
}

func (w *wsConn) writeError(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ws.WriteError(w.conn, msg)
}

// sessionReporter fans one finalized summary out to the result queues
// and to the live connection. Implements engine.Reporter.
type sessionReporter struct {
	queue *service.QueueReporter
	conn  *wsConn
	log   zerolog.Logger
}

func (r *sessionReporter) Report(summary engine.ResultSummary) {
	r.queue.Report(summary)
	if err := r.conn.write(ws.ResultResponse{Event: ws.EventResult, Result: summary}); err != nil {
		r.log.Debug().Err(err).Msg("Result push failed, client gone")
	}
}

// WSHandler handles the WebSocket quiz session stream.
type WSHandler struct {
	quizService *service.QuizService
	userService *service.UserService
	manager     *service.SessionManager
	newReporter func(profileID int, name, email string) *service.QueueReporter
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(
	quizService *service.QuizService,
	userService *service.UserService,
	manager *service.SessionManager,
	newReporter func(profileID int, name, email string) *service.QueueReporter,
	log zerolog.Logger,
	allowedOrigins []string,
) *WSHandler {
	return &WSHandler{
		quizService: quizService,
		userService: userService,
		manager:     manager,
		newReporter: newReporter,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// QuizSessionStream godoc
// WS /ws/v1/learn/quizzes/:quiz_id/session
// Upgrades to WebSocket and drives one quiz-taking session end to end:
// answers, navigation, the countdown, and the one-shot result.
func (h *WSHandler) QuizSessionStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz ID"})
		return
	}

	rawConn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer rawConn.Close()

	conn := &wsConn{conn: rawConn}
	userID := claims.UserID
	ctx := context.Background()

	quiz, err := h.quizService.GetByID(ctx, quizID)
	if err != nil {
		conn.writeError("quiz not available")
		return
	}
	enrolled, err := h.userService.IsEnrolled(ctx, userID, quiz.CourseID)
	if err != nil || !enrolled {
		conn.writeError("not enrolled in this course")
		return
	}

	def, err := h.quizService.GetQuizDefinition(ctx, quizID)
	if err != nil {
		conn.writeError("quiz not available")
		return
	}

	profile, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		conn.writeError("profile unavailable")
		return
	}

	wsLog := h.log.With().
		Int("user_id", userID).
		Str("quiz_id", quizID.String()).
		Logger()

	reporter := &sessionReporter{
		queue: h.newReporter(profile.ID, profile.Name, profile.Email),
		conn:  conn,
		log:   wsLog,
	}

	session := h.manager.Start(userID, *def, reporter)
	defer h.manager.Release(userID, quizID.String())

	wsLog.Info().Msg("Learner connected")

	conn.write(ws.StateResponse{Event: ws.EventState, State: session.Snapshot()})

	for {
		rawConn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		_, raw, err := rawConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		var envelope ws.RequestEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			conn.writeError("invalid message")
			continue
		}

		switch envelope.Action {
		case ws.ActionAnswer:
			h.handleAnswer(conn, session, raw)
		case ws.ActionNext:
			session.Advance(engine.Forward)
			h.pushState(conn, session)
		case ws.ActionPrev:
			session.Advance(engine.Backward)
			h.pushState(conn, session)
		case ws.ActionFinish:
			session.Finalize(engine.CauseNavigation)
		case ws.ActionReset:
			session = h.manager.Start(userID, *def, reporter)
			conn.write(ws.StateResponse{Event: ws.EventState, State: session.Snapshot()})
			wsLog.Info().Msg("Session reset")
		case ws.ActionPing:
			conn.write(ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(envelope.Action)).Msg("Unknown action")
			conn.writeError("unknown action: " + string(envelope.Action))
		}
	}
}

// handleAnswer locks in one option. First write wins; a second answer
// for the same question is acknowledged with the unchanged tallies.
func (h *WSHandler) handleAnswer(conn *wsConn, session *engine.Session, raw []byte) {
	var req ws.AnswerRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		conn.writeError("invalid answer payload")
		return
	}
	if req.Option == "" {
		conn.writeError("option is required")
		return
	}
	if session.Phase() != engine.PhaseRunning {
		conn.writeError("session already finalized")
		return
	}

	tallies := session.SubmitAnswer(req.Index, req.Option)
	conn.write(ws.AnsweredResponse{
		Event:   ws.EventAnswered,
		Index:   req.Index,
		Tallies: tallies,
	})
}

// pushState sends the current snapshot unless the session finalized,
// in which case the reporter already pushed the result event.
func (h *WSHandler) pushState(conn *wsConn, session *engine.Session) {
	if session.Phase() != engine.PhaseRunning {
		return
	}
	conn.write(ws.StateResponse{Event: ws.EventState, State: session.Snapshot()})
}
