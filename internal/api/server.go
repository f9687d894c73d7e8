package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"tastetrail/internal/config"
	"tastetrail/internal/favorites"
	"tastetrail/internal/geocoding"
	"tastetrail/internal/restaurants"
	"tastetrail/internal/ws"
)

type Server struct {
	Config           *config.Config
	Service          *restaurants.Service
	Geocoder         *geocoding.Client
	Favorites        *favorites.Store
	WebsocketManager *ws.Manager
	logger           *slog.Logger
}

func NewServer(config *config.Config, service *restaurants.Service, geocoder *geocoding.Client, favorites *favorites.Store, wsManager *ws.Manager, logger *slog.Logger) *Server {
	return &Server{
		Config:           config,
		Service:          service,
		Geocoder:         geocoder,
		Favorites:        favorites,
		WebsocketManager: wsManager,
		logger:           logger,
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Add("Cache-Control", "no-cache, no-store, must-revalidate;")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("API server is started.")); err != nil {
		s.logger.Error(fmt.Sprintf("Error writing response: %v", err))
	}
}

func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.Handle("GET /restaurants", s.searchHandler())
	mux.Handle("GET /restaurants/surprise", s.surpriseHandler())
	mux.Handle("GET /geocode", s.geocodeHandler())
	mux.Handle("GET /favorites", s.listFavoritesHandler())
	mux.Handle("POST /favorites", s.addFavoriteHandler())
	mux.Handle("DELETE /favorites/{id}", s.removeFavoriteHandler())
	mux.Handle("GET /ws", s.wsHandler())

	server := &http.Server{
		Addr:    net.JoinHostPort(s.Config.APIServerHost, s.Config.APIServerPort),
		Handler: mux,
	}

	go func() {
		s.logger.Info("API server is running", "port", s.Config.APIServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("API server failed to listen and serve", "error", err)
		}
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("API server failed to shutdown", "error", err)
		}
	}()

	wg.Wait()
	return nil
}
