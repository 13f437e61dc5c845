package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler serves the payment dashboard read side.
type Handler struct {
	Aggregator *Aggregator
}

func NewHandler(aggregator *Aggregator) *Handler {
	return &Handler{Aggregator: aggregator}
}

// DealDashboard handles GET /deals/{id}/payment-dashboard.
func (h *Handler) DealDashboard(w http.ResponseWriter, r *http.Request) {
	dealID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	rows, err := h.Aggregator.DealDashboard(uint(dealID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "deal not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not build payment dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

// BrokerDashboard handles GET /brokers/{id}/payment-dashboard.
func (h *Handler) BrokerDashboard(w http.ResponseWriter, r *http.Request) {
	brokerID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid broker id", http.StatusBadRequest)
		return
	}

	rows, err := h.Aggregator.BrokerDashboard(uint(brokerID))
	if err != nil {
		http.Error(w, "could not build payment dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}
