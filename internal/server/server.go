package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/nubank/unibot/internal"
	"github.com/nubank/unibot/internal/chat"
	"github.com/nubank/unibot/internal/store"
)

const sessionCookie = "unibot_session"

type Config struct {
	Addr          string
	AllowedOrigin string
	Suggestions   []string
}

type Server struct {
	config   Config
	chat     *chat.Service
	sessions *store.Sessions
	logger   *log.Logger
	started  time.Time
	router   *gin.Engine
}

func New(cfg Config, svc *chat.Service, sessions *store.Sessions, logger *log.Logger) *Server {
	r := gin.New()
	s := &Server{
		config:   cfg,
		chat:     svc,
		sessions: sessions,
		logger:   logger,
		started:  time.Now(),
		router:   r,
	}

	r.Use(gin.Recovery(), s.requestLogger(), s.cors())

	r.GET("/health", s.handleHealth)
	r.GET("/api/model", s.handleModel)
	r.GET("/api/suggestions", s.handleSuggestions)
	r.GET("/api/messages", s.handleListMessages)
	r.POST("/api/messages", s.handleSendMessage)
	r.POST("/api/reset", s.handleReset)

	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Run() error {
	s.logger.Info("starting API server", "listen", s.config.Addr, "model", s.chat.Model())
	return s.router.Run(s.config.Addr)
}

// CORS with credentials so the page can keep its session cookie.
func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", s.config.AllowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// session returns the caller's conversation log without opening one.
func (s *Server) session(c *gin.Context) (*store.MemoryStore, bool) {
	id, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	return s.sessions.Get(id)
}

// openSession is session for requests that write to the log: unknown callers
// get a new session and a cookie.
func (s *Server) openSession(c *gin.Context) *store.MemoryStore {
	current, _ := c.Cookie(sessionCookie)
	id, mem, created := s.sessions.GetOrCreate(current)
	if created {
		s.logger.Debug("session opened", "session", id, "active", s.sessions.Len())
		sameSite, secure := s.cookieMode()
		c.SetSameSite(sameSite)
		c.SetCookie(sessionCookie, id, 0, "/", "", secure, true)
	}
	return mem
}

// cookieMode picks cookie attributes for the configured page origin. An https
// page may live on another site, and browsers only send such cookies with
// SameSite=None, which in turn requires Secure.
func (s *Server) cookieMode() (http.SameSite, bool) {
	u, err := url.Parse(s.config.AllowedOrigin)
	if err == nil && u.Scheme == "https" {
		return http.SameSiteNoneMode, true
	}
	return http.SameSiteLaxMode, false
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "uptime": time.Since(s.started).Round(time.Second).String()})
}

func (s *Server) handleModel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"model": s.chat.Model()})
}

func (s *Server) handleSuggestions(c *gin.Context) {
	suggestions := s.config.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	c.JSON(http.StatusOK, internal.SuggestionsResponse{Suggestions: suggestions})
}

func (s *Server) handleListMessages(c *gin.Context) {
	msgs := []internal.Message{}
	if mem, ok := s.session(c); ok {
		msgs = mem.All()
	}
	resp := internal.ChatHistory{Messages: msgs}
	if len(msgs) == 0 {
		resp.Greeting = internal.Greeting
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSendMessage(c *gin.Context) {
	var req internal.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": chat.ErrEmptyInput.Error()})
		return
	}

	mem := s.openSession(c)
	reply, topic, err := s.chat.Exchange(c.Request.Context(), mem, req.Content)
	switch {
	case errors.Is(err, chat.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		s.logger.Error("reply failed", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	s.logger.Debug("answered", "topic", topic, "turns", mem.Len())
	c.JSON(http.StatusOK, internal.SendMessageResponse{
		Reply: reply,
		Model: s.chat.Model(),
		Topic: topic,
	})
}

func (s *Server) handleReset(c *gin.Context) {
	if mem, ok := s.session(c); ok {
		mem.Reset()
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
