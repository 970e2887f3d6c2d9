// Package gatewaystub serves the remote gateway endpoints from memory. It backs
// cmd/devgateway and the client tests.
package gatewaystub

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"messenger-client/internal/common/middleware"
	"messenger-client/internal/platform/gateway"
)

// NewRouter собирает gin-движок с middleware и маршрутами шлюза.
// origin "*" разрешает любой источник.
func NewRouter(store *Store, origin string) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	corsConfig := cors.DefaultConfig()
	if origin == "" || origin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{origin}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept", "X-User-Id", "X-Auth-Token", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	router.Use(cors.New(corsConfig))

	NewHandler(store).RegisterRoutes(router)

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, middleware.ErrorResponse{Error: "Method not allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: "Not found"})
	})

	return router
}

// EndpointsFor возвращает адреса функций шлюза, обслуживаемого NewRouter по baseURL
func EndpointsFor(baseURL string) gateway.Endpoints {
	base := strings.TrimRight(baseURL, "/")
	return gateway.Endpoints{
		Auth:     base + "/auth",
		Users:    base + "/users",
		Contacts: base + "/contacts",
		Messages: base + "/messages",
	}
}
