package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/matheodrd/httphelper/handler"

	"tastetrail/internal/geocoding"
	"tastetrail/internal/restaurants"
)

func (s *Server) searchHandler() http.HandlerFunc {
	return handler.Handler(func(w http.ResponseWriter, r *http.Request) error {
		location, filters, err := parseSearchQuery(r)
		if err != nil {
			return handler.NewErrWithStatus(http.StatusBadRequest, err)
		}

		results, err := s.Service.Search(r.Context(), location, filters)
		if err != nil {
			return searchError(err)
		}
		return writeJSON(w, http.StatusOK, results)
	})
}

func (s *Server) surpriseHandler() http.HandlerFunc {
	return handler.Handler(func(w http.ResponseWriter, r *http.Request) error {
		location, filters, err := parseSearchQuery(r)
		if err != nil {
			return handler.NewErrWithStatus(http.StatusBadRequest, err)
		}

		pick, err := s.Service.Surprise(r.Context(), location, filters)
		if err != nil {
			return searchError(err)
		}
		if pick == nil {
			return handler.NewErrWithStatus(http.StatusNotFound, errors.New("no restaurants to pick from"))
		}
		return writeJSON(w, http.StatusOK, pick)
	})
}

func (s *Server) geocodeHandler() http.HandlerFunc {
	return handler.Handler(func(w http.ResponseWriter, r *http.Request) error {
		address := r.URL.Query().Get("address")
		if address == "" {
			return handler.NewErrWithStatus(http.StatusBadRequest, errors.New("missing address"))
		}

		location, err := s.Geocoder.Geocode(r.Context(), address)
		if err != nil {
			switch {
			case errors.Is(err, geocoding.ErrNotFound):
				return handler.NewErrWithStatus(http.StatusNotFound, errors.New("location not found, try a different area or town name"))
			case errors.Is(err, geocoding.ErrDenied):
				return handler.NewErrWithStatus(http.StatusBadGateway, err)
			default:
				return handler.NewErrWithStatus(http.StatusBadGateway, fmt.Errorf("geocoding failed: %w", err))
			}
		}
		return writeJSON(w, http.StatusOK, location)
	})
}

func (s *Server) listFavoritesHandler() http.HandlerFunc {
	return handler.Handler(func(w http.ResponseWriter, r *http.Request) error {
		return writeJSON(w, http.StatusOK, s.Favorites.List())
	})
}

func (s *Server) addFavoriteHandler() http.HandlerFunc {
	return handler.Handler(func(w http.ResponseWriter, r *http.Request) error {
		var restaurant restaurants.Restaurant
		if err := json.NewDecoder(r.Body).Decode(&restaurant); err != nil {
			return handler.NewErrWithStatus(http.StatusBadRequest, fmt.Errorf("invalid body: %w", err))
		}
		if restaurant.ID == "" {
			return handler.NewErrWithStatus(http.StatusBadRequest, errors.New("missing restaurant id"))
		}

		s.Favorites.Add(r.Context(), restaurant)
		return writeJSON(w, http.StatusCreated, s.Favorites.List())
	})
}

func (s *Server) removeFavoriteHandler() http.HandlerFunc {
	return handler.Handler(func(w http.ResponseWriter, r *http.Request) error {
		id := r.PathValue("id")
		if id == "" {
			return handler.NewErrWithStatus(http.StatusBadRequest, errors.New("missing restaurant id"))
		}

		s.Favorites.Remove(r.Context(), id)
		return writeJSON(w, http.StatusOK, s.Favorites.List())
	})
}

func (s *Server) wsHandler() http.HandlerFunc {
	return handler.Handler(func(w http.ResponseWriter, r *http.Request) error {
		clientID := r.URL.Query().Get("client_id")
		if clientID == "" {
			clientID = uuid.NewString()
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return handler.NewErrWithStatus(http.StatusInternalServerError, fmt.Errorf("websocket accept: %w", err))
		}

		s.WebsocketManager.HandleNewConnection(clientID, conn)
		return nil
	})
}

// parseSearchQuery reads the location and filter configuration from query
// parameters. lat/lng are required; every filter field is optional.
func parseSearchQuery(r *http.Request) (*restaurants.Location, restaurants.FilterConfig, error) {
	query := r.URL.Query()
	var filters restaurants.FilterConfig

	latStr, lngStr := query.Get("lat"), query.Get("lng")
	if latStr == "" || lngStr == "" {
		return nil, filters, errors.New("missing lat/lng")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, filters, fmt.Errorf("invalid lat: %w", err)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, filters, fmt.Errorf("invalid lng: %w", err)
	}

	filters.Cuisine = query.Get("cuisine")
	filters.Search = query.Get("search")
	if v := query.Get("price"); v != "" {
		price, err := strconv.Atoi(v)
		if err != nil {
			return nil, filters, fmt.Errorf("invalid price: %w", err)
		}
		filters.Price = price
	}
	if v := query.Get("rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, filters, fmt.Errorf("invalid rating: %w", err)
		}
		filters.Rating = rating
	}
	if v := query.Get("radius"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, filters, fmt.Errorf("invalid radius: %w", err)
		}
		filters.RadiusKm = radius
	}

	return &restaurants.Location{Lat: lat, Lng: lng}, filters, nil
}

// searchError maps the service's error kinds to HTTP statuses.
func searchError(err error) error {
	switch {
	case errors.Is(err, restaurants.ErrInvalidInput):
		return handler.NewErrWithStatus(http.StatusBadRequest, err)
	case errors.Is(err, restaurants.ErrQuotaExceeded):
		return handler.NewErrWithStatus(http.StatusTooManyRequests, err)
	case errors.Is(err, restaurants.ErrAuthDenied):
		return handler.NewErrWithStatus(http.StatusBadGateway, err)
	case errors.Is(err, restaurants.ErrProviderUnavailable):
		return handler.NewErrWithStatus(http.StatusServiceUnavailable, err)
	default:
		return handler.NewErrWithStatus(http.StatusInternalServerError, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	return nil
}
