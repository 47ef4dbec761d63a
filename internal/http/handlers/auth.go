package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mcamac38/stock-trader-simulator/internal/auth"
	"github.com/mcamac38/stock-trader-simulator/internal/http/respond"
	"github.com/mcamac38/stock-trader-simulator/internal/models"
	"github.com/mcamac38/stock-trader-simulator/internal/models/dto"
	"github.com/mcamac38/stock-trader-simulator/internal/storage"
)

// AuthHandler owns the register and login endpoints.
type AuthHandler struct {
	store          storage.UserStore
	tokens         *auth.TokenManager
	initialBalance decimal.Decimal
}

// NewAuthHandler constructs the handler. initialBalance seeds new accounts.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager, initialBalance decimal.Decimal) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, initialBalance: initialBalance}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST /auth/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" || username == "" || email == "" || req.Password == "" {
		respond.Detail(w, http.StatusBadRequest, "All fields are required")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		respond.Detail(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		Role:         models.RoleUser,
		CashBalance:  h.initialBalance,
		PasswordHash: passwordHash,
	}
	created, err := h.store.CreateUser(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Detail(w, http.StatusBadRequest, capitalize(err.Error()))
		default:
			log.Printf("create user error: %v", err)
			respond.Detail(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	token, err := h.tokens.Generate(created.Username)
	if err != nil {
		respond.Detail(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusCreated, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	username := strings.TrimSpace(req.Username)

	// Unknown user and wrong password answer identically.
	user, err := h.store.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Detail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("login: fetch user %q: %v", username, err)
		respond.Detail(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		respond.Detail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user.Username)
	if err != nil {
		respond.Detail(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respond.JSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
