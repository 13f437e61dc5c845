package broker

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ovis-crm/api-brokerage/internal/auth"
	"github.com/ovis-crm/api-brokerage/internal/utils"
)

// request DTOs
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createBrokerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	IsAdmin   bool   `json:"isAdmin"`
}

type updateBrokerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Active    *bool  `json:"active"`
}

// Handler manages broker routes.
type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Login issues a JWT for valid credentials.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}

	b, err := h.Repo.FindByEmail(req.Email)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !utils.CheckPassword(b.Password, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(b.ID, b.IsAdmin)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// Create registers a new broker.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBrokerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "could not process password", http.StatusInternalServerError)
		return
	}

	b := Broker{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  hash,
		Active:    true,
		IsAdmin:   req.IsAdmin,
	}
	if err := h.Repo.Create(&b); err != nil {
		http.Error(w, "could not save broker (email may already be in use)", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(b)
}

// List returns every broker.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List()
	if err != nil {
		http.Error(w, "could not list brokers", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Get returns one broker.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid broker id", http.StatusBadRequest)
		return
	}

	b, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "broker not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(b)
}

// Update edits a broker's profile and active flag.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid broker id", http.StatusBadRequest)
		return
	}

	b, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "broker not found", http.StatusNotFound)
		return
	}

	var req updateBrokerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}

	if req.FirstName != "" {
		b.FirstName = req.FirstName
	}
	if req.LastName != "" {
		b.LastName = req.LastName
	}
	if req.Phone != "" {
		b.Phone = req.Phone
	}
	if req.Active != nil {
		b.Active = *req.Active
	}

	if err := h.Repo.Update(b); err != nil {
		http.Error(w, "could not update broker", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(b)
}

// Delete removes a broker.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid broker id", http.StatusBadRequest)
		return
	}

	b, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "broker not found", http.StatusNotFound)
		return
	}

	if err := h.Repo.Delete(b); err != nil {
		http.Error(w, "could not delete broker", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
