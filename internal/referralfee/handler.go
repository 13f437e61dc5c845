package referralfee

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler manages referral fee routes.
type Handler struct {
	Repo *Repository
	// OnChange is called after any write that affects a deal's payout view.
	OnChange func(dealID uint)
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

type createReferralFeeDTO struct {
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

// Create handles POST /deals/{id}/referral-fee.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	dealID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	var dto createReferralFeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if dto.Recipient == "" {
		http.Error(w, "recipient is required", http.StatusBadRequest)
		return
	}

	f := ReferralFee{
		DealID:    uint(dealID),
		Recipient: dto.Recipient,
		Amount:    dto.Amount,
	}
	if err := h.Repo.Create(&f); err != nil {
		http.Error(w, "could not save referral fee (the deal may already have one)", http.StatusConflict)
		return
	}
	if h.OnChange != nil {
		h.OnChange(uint(dealID))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(f)
}

// Get handles GET /deals/{id}/referral-fee.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	dealID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	f, err := h.Repo.FindByDeal(uint(dealID))
	if err != nil {
		http.Error(w, "referral fee not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(f)
}

// UpdatePaid handles PATCH /referral-fees/{rid}/paid.
func (h *Handler) UpdatePaid(w http.ResponseWriter, r *http.Request) {
	rid, err := strconv.Atoi(mux.Vars(r)["rid"])
	if err != nil {
		http.Error(w, "invalid referral fee id", http.StatusBadRequest)
		return
	}

	var payload struct {
		Paid bool `json:"paid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}

	if err := h.Repo.SetPaid(uint(rid), payload.Paid, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "referral fee not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update referral fee", http.StatusInternalServerError)
		return
	}

	f, err := h.Repo.FindByID(uint(rid))
	if err != nil {
		http.Error(w, "could not reload referral fee", http.StatusInternalServerError)
		return
	}
	if h.OnChange != nil {
		h.OnChange(f.DealID)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(f)
}

// Delete handles DELETE /referral-fees/{rid}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	rid, err := strconv.Atoi(mux.Vars(r)["rid"])
	if err != nil {
		http.Error(w, "invalid referral fee id", http.StatusBadRequest)
		return
	}

	f, err := h.Repo.FindByID(uint(rid))
	if err != nil {
		http.Error(w, "referral fee not found", http.StatusNotFound)
		return
	}

	if err := h.Repo.Delete(uint(rid)); err != nil {
		http.Error(w, "could not delete referral fee", http.StatusInternalServerError)
		return
	}
	if h.OnChange != nil {
		h.OnChange(f.DealID)
	}

	w.WriteHeader(http.StatusNoContent)
}
