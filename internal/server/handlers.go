package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"lol-overlay/internal/constants"
	"lol-overlay/internal/repository"
	"lol-overlay/internal/scheduler"
	"lol-overlay/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Server exposes the pipeline and the overlay store as a JSON API.
type Server struct {
	leaderboard *service.LeaderboardService
	gameData    *service.GameDataService
	match       *service.MatchService
	overlays    *repository.OverlayRepository
	scheduler   *scheduler.Scheduler
	logger      zerolog.Logger
}

func New(
	leaderboard *service.LeaderboardService,
	gameData *service.GameDataService,
	match *service.MatchService,
	overlays *repository.OverlayRepository,
	sched *scheduler.Scheduler,
	logger zerolog.Logger,
) *Server {
	return &Server{
		leaderboard: leaderboard,
		gameData:    gameData,
		match:       match,
		overlays:    overlays,
		scheduler:   sched,
		logger:      logger,
	}
}

func (s *Server) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/lol", func(r chi.Router) {
			r.Get("/leaderboard", s.handleLeaderboard)
			r.Get("/leaderboard/roster", s.handleRosterLeaderboard)
			r.Get("/versions/latest", s.handleLatestVersion)
			r.Get("/{version}/champions", s.handleChampions)
		})

		r.Get("/match/current", s.handleCurrentMatch)

		r.Route("/overlay", func(r chi.Router) {
			r.Post("/", s.handleCreateOverlay)
			r.Post("/admin", s.handleAdminCleanup)
			r.Get("/{id}", s.handleGetOverlay)
			r.Put("/{id}", s.handleUpdateOverlay)
			r.Delete("/{id}", s.handleDeleteOverlay)
		})
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	leaderboard, err := s.leaderboard.GetLeaderboard(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get leaderboard")
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch LoL leaderboard")
		return
	}
	s.writeJSON(w, http.StatusOK, leaderboard)
}

func (s *Server) handleRosterLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.leaderboard.GetRosterLeaderboard(r.Context()))
}

func (s *Server) handleLatestVersion(w http.ResponseWriter, r *http.Request) {
	version, err := s.gameData.GetLatestVersion(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "Failed to fetch latest version")
		return
	}
	s.writeJSON(w, http.StatusOK, version)
}

func (s *Server) handleChampions(w http.ResponseWriter, r *http.Request) {
	version := chi.URLParam(r, "version")

	champions, err := s.gameData.GetChampions(r.Context(), version)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "Failed to fetch champions")
		return
	}
	s.writeJSON(w, http.StatusOK, champions)
}

func (s *Server) handleCurrentMatch(w http.ResponseWriter, r *http.Request) {
	gameName := r.URL.Query().Get("gameName")
	tagLine := r.URL.Query().Get("tagLine")
	if gameName == "" || tagLine == "" {
		s.writeError(w, http.StatusBadRequest, "gameName and tagLine are required")
		return
	}

	participants, err := s.match.GetCurrentMatch(r.Context(), gameName, tagLine)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "Failed to fetch current match")
		return
	}
	s.writeJSON(w, http.StatusOK, participants)
}

type overlayRequest struct {
	Data            json.RawMessage `json:"data"`
	ExpirationHours int             `json:"expirationHours"`
}

func (req *overlayRequest) expiry() time.Duration {
	if req.ExpirationHours <= 0 {
		return constants.DefaultOverlayExpiry
	}
	return time.Duration(req.ExpirationHours) * time.Hour
}

func (s *Server) decodeOverlayRequest(w http.ResponseWriter, r *http.Request) (*overlayRequest, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}

	var req overlayRequest
	if err := json.Unmarshal(body, &req); err != nil || len(req.Data) == 0 {
		s.writeError(w, http.StatusBadRequest, "invalid overlay payload")
		return nil, false
	}
	return &req, true
}

func (s *Server) handleCreateOverlay(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeOverlayRequest(w, r)
	if !ok {
		return
	}

	id, err := s.overlays.Create(r.Context(), string(req.Data), req.expiry())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to create overlay")
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGetOverlay(w http.ResponseWriter, r *http.Request) {
	overlay, err := s.overlays.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrOverlayNotFound) {
			s.writeError(w, http.StatusNotFound, "overlay not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "failed to get overlay")
		return
	}
	s.writeJSON(w, http.StatusOK, overlay)
}

func (s *Server) handleUpdateOverlay(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeOverlayRequest(w, r)
	if !ok {
		return
	}

	updated, err := s.overlays.Update(r.Context(), chi.URLParam(r, "id"), string(req.Data), req.expiry())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to update overlay")
		return
	}
	if !updated {
		s.writeError(w, http.StatusNotFound, "overlay not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (s *Server) handleDeleteOverlay(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.overlays.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to delete overlay")
		return
	}
	if !deleted {
		s.writeError(w, http.StatusNotFound, "overlay not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// handleAdminCleanup triggers the cleanup jobs outside their schedule.
func (s *Server) handleAdminCleanup(w http.ResponseWriter, r *http.Request) {
	cleaned := s.scheduler.RunNow(r.Context())

	resp := map[string]any{
		"success":      true,
		"cleanedCount": cleaned,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	}

	active, err := s.overlays.Stats(r.Context())
	if err != nil {
		// Cleanup already ran; report it and just omit the stats.
		s.logger.Warn().Err(err).Int("cleaned", cleaned).Msg("cleanup ran but stats unavailable")
		s.writeJSON(w, http.StatusOK, resp)
		return
	}
	resp["stats"] = map[string]int{"active": active}

	s.logger.Info().Int("cleaned", cleaned).Int("active", active).Msg("manual cleanup completed")
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	active, err := s.overlays.Stats(r.Context())
	if err != nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"error":     "Database connection failed",
		})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"database":       "connected",
		"activeOverlays": active,
	})
}
