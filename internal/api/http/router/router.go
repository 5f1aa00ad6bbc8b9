package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abriand/user-registry-server/internal/api/http/handler"
	"github.com/abriand/user-registry-server/internal/api/http/middleware"
	"github.com/abriand/user-registry-server/internal/logger"
	"github.com/abriand/user-registry-server/internal/service"
)

// Router assembles the gin engine for the user registry.
type Router struct {
	registryService *service.Registry
	corsOrigin      string
	logger          *logger.Logger
}

// New creates new Router instance.
func New(registryService *service.Registry, corsOrigin string, logger *logger.Logger) *Router {
	return &Router{
		registryService: registryService,
		corsOrigin:      corsOrigin,
		logger:          logger,
	}
}

// Register sets up middleware and routes and returns the engine.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)

	e := gin.New()
	e.Use(gin.Recovery())
	e.Use(logging.Handle())
	e.Use(cors.New(cors.Config{
		AllowOrigins: []string{r.corsOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	infoHandler := handler.NewInfo()
	userHandler := handler.NewUser(r.registryService, r.logger)

	e.GET("/", infoHandler.Hello)
	e.GET("/users", userHandler.ListUsers)
	e.POST("/users", userHandler.CreateUser)
	e.DELETE("/users/:userId", userHandler.DeleteUser)

	return e
}
