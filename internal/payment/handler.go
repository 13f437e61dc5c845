package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Handler manages payment and payment split routes.
type Handler struct {
	Repo *Repository
	// OnChange is called after any write that affects a deal's payout view.
	OnChange func(dealID uint)
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) notifyChange(dealID uint) {
	if h.OnChange != nil {
		h.OnChange(dealID)
	}
}

// Generate handles POST /deals/{id}/payments/generate. A guard violation
// (existing payments, missing splits) maps to 409 and writes nothing.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	dealID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	// Pre-check outside the transaction; the guard inside Generate
	// remains authoritative.
	if exists, err := h.Repo.HasPayments(uint(dealID)); err == nil && exists {
		http.Error(w, "payments already exist for this deal; delete them before regenerating", http.StatusConflict)
		return
	}

	result, err := Generate(h.Repo.DB, uint(dealID))
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentsExist):
			http.Error(w, "payments already exist for this deal; delete them before regenerating", http.StatusConflict)
		case errors.Is(err, ErrNoSplits):
			http.Error(w, "deal has no commission splits", http.StatusConflict)
		case errors.Is(err, ErrNoInstallment):
			http.Error(w, "deal has no installment count configured", http.StatusConflict)
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "deal not found", http.StatusNotFound)
		default:
			log.Error().Err(err).Int("deal_id", dealID).Msg("payment generation failed")
			http.Error(w, "payment generation failed", http.StatusInternalServerError)
		}
		return
	}
	h.notifyChange(uint(dealID))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": result.Message(),
		"result":  result,
	})
}

// List handles GET /deals/{id}/payments.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	dealID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	payments, err := h.Repo.ListByDeal(uint(dealID))
	if err != nil {
		http.Error(w, "could not list payments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payments)
}

// DeleteForDeal handles DELETE /deals/{id}/payments, clearing the batch so
// generation can run again.
func (h *Handler) DeleteForDeal(w http.ResponseWriter, r *http.Request) {
	dealID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	deleted, err := h.Repo.DeleteByDeal(uint(dealID))
	if err != nil {
		http.Error(w, "could not delete payments", http.StatusInternalServerError)
		return
	}
	h.notifyChange(uint(dealID))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": fmt.Sprintf("deleted %d payments", deleted),
	})
}

// UpdateReceived handles PATCH /payments/{pid}/received.
func (h *Handler) UpdateReceived(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.Atoi(mux.Vars(r)["pid"])
	if err != nil {
		http.Error(w, "invalid payment id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Received bool `json:"received"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}

	if err := h.Repo.SetReceived(uint(pid), payload.Received, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "payment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update payment", http.StatusInternalServerError)
		return
	}

	p, err := h.Repo.FindByID(uint(pid))
	if err != nil {
		http.Error(w, "could not reload payment", http.StatusInternalServerError)
		return
	}
	h.notifyChange(p.DealID)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// UpdateSplitPaid handles PATCH /payment-splits/{sid}/paid.
func (h *Handler) UpdateSplitPaid(w http.ResponseWriter, r *http.Request) {
	sid, err := strconv.Atoi(mux.Vars(r)["sid"])
	if err != nil {
		http.Error(w, "invalid payment split id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Paid bool `json:"paid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}

	if err := h.Repo.SetSplitPaid(uint(sid), payload.Paid, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "payment split not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update payment split", http.StatusInternalServerError)
		return
	}

	s, err := h.Repo.FindSplitByID(uint(sid))
	if err != nil {
		http.Error(w, "could not reload payment split", http.StatusInternalServerError)
		return
	}
	if p, err := h.Repo.FindByID(s.PaymentID); err == nil {
		h.notifyChange(p.DealID)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}
