package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Shoyas/chatline-server/internal/config"
	"github.com/Shoyas/chatline-server/internal/core"
)

// NewServer builds the HTTP server: REST surface plus the websocket endpoint.
func NewServer(hub *core.Hub, svc *core.Service, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))

	handlers := NewChatHandlers(hub, svc, logger)

	router.GET("/health", healthHandler)
	router.GET("/contacts", handlers.ListContacts)
	router.GET("/messages/:userA/:userB", handlers.GetThread)
	router.GET("/threads/:userID", handlers.ListThreads)
	router.POST("/threads/:userID/read/:otherID", handlers.MarkThreadRead)
	router.GET("/presence/:userID", handlers.GetPresence)

	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
