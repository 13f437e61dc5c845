package commissionsplit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// Handler manages commission split routes.
type Handler struct {
	Repo *Repository
	// OnChange is called after any write that affects a deal's payout view.
	OnChange func(dealID uint)
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// SplitImportDTO is one row of a split import payload.
type SplitImportDTO struct {
	BrokerID                uint    `json:"brokerId"`
	SplitOriginationPercent float64 `json:"splitOriginationPercent"`
	SplitSitePercent        float64 `json:"splitSitePercent"`
	SplitDealPercent        float64 `json:"splitDealPercent"`
}

// ImportResult reports the outcome of one imported row.
type ImportResult struct {
	BrokerID uint   `json:"brokerId"`
	Created  bool   `json:"created"`
	Error    string `json:"error,omitempty"`
}

// ImportResponse is the full import outcome plus the ledger validation.
type ImportResponse struct {
	Created    int             `json:"created"`
	Results    []ImportResult  `json:"results"`
	Validation SplitValidation `json:"validation"`
}

// dealPools holds the deal columns the import needs.
type dealPools struct {
	OriginationUSD float64
	SiteUSD        float64
	DealUSD        float64
}

// Import handles POST /deals/{id}/commission-splits. Rows are processed
// best-effort: a failed row is recorded and the loop moves on. The response
// carries the per-row outcomes and the advisory percentage validation.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	dealID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	var rows []SplitImportDTO
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if len(rows) == 0 {
		http.Error(w, "no split rows provided", http.StatusBadRequest)
		return
	}

	var pools dealPools
	err = h.Repo.DB.Table("deals").
		Select("origination_usd, site_usd, deal_usd").
		Where("id = ? AND deleted_at IS NULL", dealID).
		Take(&pools).Error
	if err != nil {
		http.Error(w, "deal not found", http.StatusNotFound)
		return
	}

	resp := ImportResponse{Results: make([]ImportResult, 0, len(rows))}
	for _, row := range rows {
		result := ImportResult{BrokerID: row.BrokerID}

		eligible, err := h.Repo.brokerEligible(row.BrokerID)
		if err != nil {
			log.Error().Err(err).Uint("broker_id", row.BrokerID).Msg("split import: broker lookup failed")
			result.Error = "broker lookup failed"
			resp.Results = append(resp.Results, result)
			continue
		}
		if !eligible {
			result.Error = fmt.Sprintf("broker %d is not active", row.BrokerID)
			resp.Results = append(resp.Results, result)
			continue
		}

		s := CommissionSplit{
			DealID:                  uint(dealID),
			BrokerID:                row.BrokerID,
			SplitOriginationPercent: row.SplitOriginationPercent,
			SplitSitePercent:        row.SplitSitePercent,
			SplitDealPercent:        row.SplitDealPercent,
		}
		s.RecomputeAmounts(pools.OriginationUSD, pools.SiteUSD, pools.DealUSD)

		if err := h.Repo.Create(&s); err != nil {
			log.Error().Err(err).Uint("broker_id", row.BrokerID).Msg("split import: insert failed")
			result.Error = "insert failed"
			resp.Results = append(resp.Results, result)
			continue
		}
		result.Created = true
		resp.Results = append(resp.Results, result)
		resp.Created++
	}

	all, err := h.Repo.ListByDeal(uint(dealID))
	if err != nil {
		http.Error(w, "could not reload splits", http.StatusInternalServerError)
		return
	}
	resp.Validation = ValidateSplitPercentages(all)

	if h.OnChange != nil {
		h.OnChange(uint(dealID))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}

// List handles GET /deals/{id}/commission-splits.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	dealID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	rows, err := h.Repo.ListByDealWithBrokers(uint(dealID))
	if err != nil {
		http.Error(w, "could not list commission splits", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

// Validate handles GET /deals/{id}/commission-splits/validation.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	dealID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	splits, err := h.Repo.ListByDeal(uint(dealID))
	if err != nil {
		http.Error(w, "could not load commission splits", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ValidateSplitPercentages(splits))
}
