package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"charter/internal/config"
	"charter/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	cfg  config.APIConfig
	log  *slog.Logger
	game *game.Service
	mux  *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, gameSvc *game.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:  cfg,
		log:  logger,
		game: gameSvc,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions", s.handleListSessions)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleSessionView)
			r.Get("/market", s.handleMarket)
			r.Get("/log", s.handleLog)
			r.Post("/companies", s.handleAssignCompany)
			r.Post("/corporations", s.handleFormCorporation)

			r.Route("/corporations/{charter}", func(r chi.Router) {
				r.Get("/", s.handleCorporationView)
				r.Get("/income", s.handleIncome)
				r.Post("/buy", s.handleBuyShare)
				r.Post("/sell", s.handleSellShare)
				r.Post("/issue", s.handleIssueShare)
				r.Post("/dividend", s.handleDividend)
			})
		})
	})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	sess, err := s.game.Session(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Players      []string `json:"players"`
		StartingCash int      `json:"starting_cash"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.StartingCash == 0 {
		in.StartingCash = s.cfg.DefaultCash
	}
	sess, err := s.game.CreateSession(in.Players, in.StartingCash)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, sess.View())
}

func (s *Server) handleListSessions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sessions": s.game.ListSessions()})
}

func (s *Server) handleSessionView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"market": sess.Market()})
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"log": sess.Log()})
}

func (s *Server) handleAssignCompany(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var in struct {
		Company string `json:"company"`
		Player  string `json:"player"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := sess.AssignCompany(in.Company, in.Player); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

func (s *Server) handleFormCorporation(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var in struct {
		Charter   string `json:"charter"`
		Player    string `json:"player"`
		Company   string `json:"company"`
		CellIndex int    `json:"cell_index"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := sess.FormCorporation(in.Charter, in.Player, in.Company, in.CellIndex); err != nil {
		writeDomainError(w, err)
		return
	}
	corp, err := sess.CorporationView(in.Charter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, corp)
}

func (s *Server) handleCorporationView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	corp, err := sess.CorporationView(chi.URLParam(r, "charter"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, corp)
}

func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	base := 0
	if raw := r.URL.Query().Get("base"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid base")
			return
		}
		base = n
	}
	income, err := sess.Income(chi.URLParam(r, "charter"), base)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"income": income})
}

func (s *Server) handleBuyShare(w http.ResponseWriter, r *http.Request) {
	s.handleShareTrade(w, r, func(sess *game.Session, charter, player string) error {
		return sess.BuyShare(charter, player)
	})
}

func (s *Server) handleSellShare(w http.ResponseWriter, r *http.Request) {
	s.handleShareTrade(w, r, func(sess *game.Session, charter, player string) error {
		return sess.SellShare(charter, player)
	})
}

func (s *Server) handleShareTrade(w http.ResponseWriter, r *http.Request, trade func(*game.Session, string, string) error) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var in struct {
		Player string `json:"player"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	charter := chi.URLParam(r, "charter")
	if err := trade(sess, charter, in.Player); err != nil {
		writeDomainError(w, err)
		return
	}
	corp, err := sess.CorporationView(charter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, corp)
}

func (s *Server) handleIssueShare(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	charter := chi.URLParam(r, "charter")
	if err := sess.IssueShare(charter); err != nil {
		writeDomainError(w, err)
		return
	}
	corp, err := sess.CorporationView(charter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, corp)
}

func (s *Server) handleDividend(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var in struct {
		Amount int `json:"amount"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	charter := chi.URLParam(r, "charter")
	if err := sess.PayDividend(charter, in.Amount); err != nil {
		writeDomainError(w, err)
		return
	}
	corp, err := sess.CorporationView(charter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, corp)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrSessionNotFound),
		errors.Is(err, game.ErrPlayerNotFound),
		errors.Is(err, game.ErrCompanyNotFound),
		errors.Is(err, game.ErrCorporationNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrPriceTaken), errors.Is(err, game.ErrCharterTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrCompanyNotOwned):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, game.ErrInvalidFoundingPrice),
		errors.Is(err, game.ErrInvalidCharterName),
		errors.Is(err, game.ErrBadCellIndex),
		errors.Is(err, game.ErrNoShareAvailable),
		errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrCannotSell),
		errors.Is(err, game.ErrCannotIssue),
		errors.Is(err, game.ErrNegativeDividend),
		errors.Is(err, game.ErrUnaffordableDividend):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
