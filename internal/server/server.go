package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openfund/crowdsale-ledger-system/internal/crowdsale"
	interfaces "github.com/openfund/crowdsale-ledger-system/internal/interfaces"
	"github.com/shopspring/decimal"
)

// Server exposes the crowdsale ledger over HTTP. The caller identity on the
// mutating endpoints comes from the request body; authenticating it is the
// surrounding environment's job, not the ledger's.
type Server struct {
	sale   *crowdsale.Crowdsale
	store  interfaces.SaleStore
	logger *slog.Logger
}

func New(sale *crowdsale.Crowdsale, store interfaces.SaleStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		sale:   sale,
		store:  store,
		logger: logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.health)
	r.Get("/status", s.status)
	r.Get("/contributions/{contributor}", s.contribution)
	r.Get("/entries", s.entries)

	r.Post("/invest", s.invest)
	r.Post("/finalize", s.finalize)
	r.Post("/refund", s.refund)

	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sale.Status())
}

func (s *Server) contribution(w http.ResponseWriter, r *http.Request) {
	contributor := chi.URLParam(r, "contributor")
	if contributor == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "contributor is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"contributor":  contributor,
		"contribution": s.sale.ContributionOf(contributor),
	})
}

func (s *Server) entries(w http.ResponseWriter, _ *http.Request) {
	entries, err := s.store.GetLedgerEntries()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) invest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Contributor string          `json:"contributor"`
		Amount      decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.Contributor == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "contributor is required")
		return
	}

	if err := s.sale.Invest(r.Context(), req.Contributor, req.Amount); err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "investment recorded"})
}

func (s *Server) finalize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Caller string `json:"caller"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	if err := s.sale.Finalize(r.Context(), req.Caller); err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.sale.Status())
}

func (s *Server) refund(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Caller string `json:"caller"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.Caller == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "caller is required")
		return
	}

	if err := s.sale.Refund(r.Context(), req.Caller); err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refund issued"})
}

func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, crowdsale.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT"
	case errors.Is(err, crowdsale.ErrNotOwner):
		return http.StatusForbidden, "NOT_OWNER"
	case errors.Is(err, crowdsale.ErrAlreadyFinalized):
		return http.StatusConflict, "ALREADY_FINALIZED"
	case errors.Is(err, crowdsale.ErrRefundNotAllowed):
		return http.StatusConflict, "REFUND_NOT_ALLOWED"
	case errors.Is(err, crowdsale.ErrNoFundsToRefund):
		return http.StatusConflict, "NO_FUNDS_TO_REFUND"
	case errors.Is(err, crowdsale.ErrTransferFailed):
		return http.StatusBadGateway, "TRANSFER_FAILED"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}
