package server

import (
	"context"
	"errors"
	"net/http"
	"othello/agent"
	"othello/engine"
	"othello/game"
	"othello/learner"
	"othello/session"
	"slices"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	sessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "othello_server_sessions_created_total",
		Help: "Sessions created over HTTP.",
	})
	inputsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "othello_server_inputs_total",
		Help: "Session inputs received over HTTP, by result.",
	}, []string{"result"})
)

// Server hosts sessions over HTTP. mu guards the session table only; each
// session serializes its own inputs, so an opponent waiting out its delay in
// one session never blocks another. An agent shared between the sessions and
// mover must be wrapped with agent.Synchronized.
type Server struct {
	mu         sync.Mutex
	sessions   map[string]*entry
	newSession func() *session.Session
	mover      agent.Agent // Answers move requests from remote engines
}

type entry struct {
	mu      sync.Mutex
	session *session.Session
}

func New(newSession func() *session.Session, mover agent.Agent) *Server {
	if mover != nil {
		mover = agent.Synchronized(mover)
	}
	return &Server{
		sessions:   map[string]*entry{},
		newSession: newSession,
		mover:      mover,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	sessions := router.Group("/sessions")
	sessions.POST("", s.create)
	sessions.GET("/:id", s.withSession(s.snapshot))
	sessions.DELETE("/:id", s.withSession(s.remove))
	sessions.POST("/:id/input", s.withSession(s.input))
	sessions.GET("/:id/query/:key", s.withSession(s.query))
	sessions.GET("/:id/actions", s.withSession(s.actions))

	router.POST("/agent/move", s.move)
	return router
}

func (s *Server) create(c *gin.Context) {
	id := uuid.NewString()
	sess := s.newSession()

	s.mu.Lock()
	s.sessions[id] = &entry{session: sess}
	s.mu.Unlock()
	sessionsCreated.Inc()
	log.Info().Str("session", id).Msg("session created")

	c.JSON(http.StatusCreated, gin.H{"id": id, "snapshot": sess.Snapshot()})
}

// withSession looks up the session named in the path and runs handler with
// that session's lock held.
func (s *Server) withSession(handler func(*gin.Context, string, *session.Session)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		s.mu.Lock()
		e, ok := s.sessions[id]
		s.mu.Unlock()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such session"})
			return
		}

		e.mu.Lock()
		defer e.mu.Unlock()
		handler(c, id, e.session)
	}
}

func (s *Server) snapshot(c *gin.Context, _ string, sess *session.Session) {
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (s *Server) remove(c *gin.Context, id string, _ *session.Session) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	log.Info().Str("session", id).Msg("session removed")
	c.Status(http.StatusNoContent)
}

type inputRequest struct {
	session.Input
	Action *int `json:"action" binding:"omitempty,min=0,max=9"`
}

func (s *Server) input(c *gin.Context, id string, sess *session.Session) {
	var req inputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		inputsTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := req.Input
	if req.Action != nil {
		action := session.Action(*req.Action)
		if !allowed(action, sess.Diagonal()) {
			inputsTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "action " + action.String() + " is not in the legal action set"})
			return
		}
		in = action.Input()
	}

	err := sess.Update(c.Request.Context(), in)
	status := statusOf(err)
	if err != nil {
		inputsTotal.WithLabelValues("rejected").Inc()
		log.Debug().Err(err).Str("session", id).Msg("input rejected")
		c.JSON(status, gin.H{"error": err.Error(), "snapshot": sess.Snapshot()})
		return
	}
	inputsTotal.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusOK, sess.Snapshot())
}

func allowed(action session.Action, diagonal bool) bool {
	return slices.Contains(session.LegalActionSet(diagonal), action)
}

func statusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, game.ErrIllegalMove), errors.Is(err, game.ErrOutOfRange), errors.Is(err, session.ErrNotYourTurn):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) query(c *gin.Context, _ string, sess *session.Session) {
	value, err := sess.Query(c.Param("key"))
	if errors.Is(err, session.ErrNoSuchQuery) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(value))
}

func (s *Server) actions(c *gin.Context, _ string, sess *session.Session) {
	c.JSON(http.StatusOK, gin.H{"actions": session.LegalActionSet(sess.Diagonal())})
}

// move answers a remote engine with the configured agent's move for the posted state.
func (s *Server) move(c *gin.Context) {
	var req engine.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.mover == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "no agent configured"})
		return
	}

	move, _, err := s.mover.FindMove(req.State)
	if errors.Is(err, learner.ErrNoLegalMoves) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, engine.MoveResponse{Move: move})
}
