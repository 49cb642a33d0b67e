// Package api exposes the catalog, auth and per-user ledgers over HTTP.
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/reelrent/reelrent/auth"
	"github.com/reelrent/reelrent/catalog"
	"github.com/reelrent/reelrent/config"
)

// Server is the HTTP front of the application.
type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	catalog   *catalog.Catalog
	auth      *auth.Service
}

// New creates a server over the catalog and auth service.
func New(cfg *config.Config, cat *catalog.Catalog, authSvc *auth.Service) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	return &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
		catalog:   cat,
		auth:      authSvc,
	}, nil
}

func (s *Server) setupRoutes() {
	api := s.ginEngine.Group("/api")

	api.GET("/popular/:kind", s.popular)
	api.GET("/content/:kind/:id", s.contentDetails)
	api.POST("/content/:kind/:id/favorite", s.toggleFavorite)
	api.POST("/content/:kind/:id/watched", s.setWatched)
	api.GET("/favorites", s.favorites)
	api.GET("/search", s.search)
	api.GET("/search-history", s.searchHistory)
	api.DELETE("/search-history", s.clearSearchHistory)
	api.GET("/genres", s.genres)
	api.GET("/stats", s.stats)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.POST("/logout", s.logout)
	authGroup.GET("/me", s.currentUser)
	authGroup.PUT("/profile", s.updateProfile)

	users := api.Group("/users/:userID")
	users.GET("/rentals", s.listRentals)
	users.POST("/rentals", s.addRental)
	users.DELETE("/rentals/:rentalID", s.removeRental)
	users.GET("/cart", s.cart)
	users.POST("/cart", s.addCartLine)
	users.DELETE("/cart/:lineID", s.removeCartLine)
	users.POST("/cart/checkout", s.checkout)
	users.GET("/history", s.history)
	users.POST("/history", s.addHistory)
	users.DELETE("/history/:contentID", s.removeHistory)
	users.GET("/favorites", s.userFavorites)
	users.POST("/favorites", s.addUserFavorite)
	users.DELETE("/favorites/:kind/:contentID", s.removeUserFavorite)
}

// Run starts the HTTP server on the configured listen address.
func (s *Server) Run() error {
	s.setupRoutes()
	return s.ginEngine.Run(s.cfg.Listen)
}
