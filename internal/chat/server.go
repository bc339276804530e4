package chat

import (
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"intellidoc/internal/models"
	"intellidoc/internal/services"
)

//go:embed page.html
var pageHTML []byte

// Server binds the chat adapter to a local request/response loop. One
// process, one instance, bound to a local port.
type Server struct {
	adapter *Adapter
	runs    services.RunService
	addr    string
	logger  *slog.Logger
}

func NewServer(adapter *Adapter, runs services.RunService, addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	return &Server{adapter: adapter, runs: runs, addr: addr, logger: logger}
}

// Handler builds the gin engine. Split from Start so tests can drive it
// through httptest without a listening socket.
func (s *Server) Handler() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", pageHTML)
	})

	router.POST("/api/chat", func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ChatResponse{Error: "invalid request body"})
			return
		}

		answer, err := s.adapter.Answer(c.Request.Context(), req.Question)
		if err != nil {
			s.logger.Warn("chat answer failed", "error", err)
			c.JSON(http.StatusOK, models.ChatResponse{Error: "answer unavailable: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, models.ChatResponse{Answer: answer})
	})

	router.GET("/api/runs", func(c *gin.Context) {
		if s.runs == nil {
			c.JSON(http.StatusOK, []models.Run{})
			return
		}
		runs, err := s.runs.ListRecent(20)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list runs"})
			return
		}
		c.JSON(http.StatusOK, runs)
	})

	return router
}

// Start serves until the listener fails or the process exits.
func (s *Server) Start() error {
	s.logger.Info("chat interface listening", "addr", "http://"+s.addr)
	return s.Handler().Run(s.addr)
}
