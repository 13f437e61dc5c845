package deal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/ovis-crm/api-brokerage/internal/auth"
	"github.com/ovis-crm/api-brokerage/internal/commissionsplit"
)

// Handler manages deal routes.
type Handler struct {
	Repo      *Repository
	SplitRepo *commissionsplit.Repository
	// OnChange is called after any write that affects a deal's payout view.
	OnChange func(dealID uint)
}

func NewHandler(repo *Repository, splitRepo *commissionsplit.Repository) *Handler {
	return &Handler{Repo: repo, SplitRepo: splitRepo}
}

func (h *Handler) notifyChange(dealID uint) {
	if h.OnChange != nil {
		h.OnChange(dealID)
	}
}

// Create handles POST /deals.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	brokerID, ok := auth.BrokerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	var dto CreateDealDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if dto.Name == "" {
		http.Error(w, "deal name is required", http.StatusBadRequest)
		return
	}
	if dto.NumberOfPayments <= 0 {
		dto.NumberOfPayments = 1
	}

	d := Deal{
		Name:             dto.Name,
		Stage:            dto.Stage,
		BrokerID:         brokerID,
		NumberOfPayments: dto.NumberOfPayments,
	}
	in := CommissionInputs{
		DealValue:          dto.DealValue,
		CommissionPercent:  dto.CommissionPercent,
		ReferralFeePercent: dto.ReferralFeePercent,
		HousePercent:       dto.HousePercent,
		OriginationPercent: dto.OriginationPercent,
		SitePercent:        dto.SitePercent,
		DealPercent:        dto.DealPercent,
		FlatFeeOverride:    dto.FlatFeeOverride,
	}
	d.ApplyCommissionInputs(in)

	if err := h.Repo.Create(&d); err != nil {
		http.Error(w, "could not save deal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(UpdateCommissionResponse{Deal: &d, Warnings: CommissionWarnings(in)})
}

// List handles GET /deals. Admins see everything, brokers see their own.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	brokerID, ok := auth.BrokerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)

	var (
		list []Deal
		err  error
	)
	if isAdmin {
		list, err = h.Repo.List()
	} else {
		list, err = h.Repo.ListByBroker(brokerID)
	}
	if err != nil {
		http.Error(w, "could not list deals", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Get handles GET /deals/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	d, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "deal not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(d)
}

// UpdateCommission handles PUT /deals/{id}/commission. It merges the partial
// payload over the stored inputs, re-runs the full commission chain, writes
// with a version check, and refreshes the split ledger amounts from the new
// pools. Warnings are advisory and never block the save.
func (h *Handler) UpdateCommission(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	d, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "deal not found", http.StatusNotFound)
		return
	}

	var dto UpdateCommissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}

	in := dto.Merge(d.Inputs())
	d.ApplyCommissionInputs(in)
	if dto.NumberOfPayments != nil {
		if *dto.NumberOfPayments <= 0 {
			http.Error(w, "number of payments must be positive", http.StatusBadRequest)
			return
		}
		d.NumberOfPayments = *dto.NumberOfPayments
	}

	if err := h.Repo.UpdateCommission(d, dto.Version); err != nil {
		if errors.Is(err, ErrStaleDeal) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":   "stale_deal",
				"message": "the deal was modified by another session; reload and retry",
			})
			return
		}
		http.Error(w, "could not update commission", http.StatusInternalServerError)
		return
	}

	// The split ledger caches dollar shares of the category pools, so a new
	// AGCI invalidates them.
	if err := h.SplitRepo.RecomputeAmounts(d.ID, d.OriginationUSD, d.SiteUSD, d.DealUSD); err != nil {
		http.Error(w, "could not recompute commission splits", http.StatusInternalServerError)
		return
	}
	h.notifyChange(d.ID)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(UpdateCommissionResponse{Deal: d, Warnings: CommissionWarnings(in)})
}

// Delete handles DELETE /deals/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	d, err := h.Repo.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "deal not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not load deal", http.StatusInternalServerError)
		return
	}

	if err := h.Repo.Delete(d); err != nil {
		http.Error(w, "could not delete deal", http.StatusInternalServerError)
		return
	}
	h.notifyChange(d.ID)

	w.WriteHeader(http.StatusNoContent)
}
