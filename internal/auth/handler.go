package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	revoker Revoker
}

func NewHandler(service *Service, revoker Revoker) *Handler {
	return &Handler{service: service, revoker: revoker}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --------------------------------------------------
// POST /signup
// --------------------------------------------------
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	_, err := h.service.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// --------------------------------------------------
// POST /login
// --------------------------------------------------
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// --------------------------------------------------
// POST /logout
// --------------------------------------------------
// Revokes the presented token by jti. The revocation entry lives exactly
// as long as the token would have.
func (h *Handler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	claims, err := ValidateToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	ttl := time.Until(claims.ExpiresAt)
	if err := h.revoker.Revoke(c.Request.Context(), claims.TokenID, ttl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// --------------------------------------------------
// GET /is_logged_in
// --------------------------------------------------
func (h *Handler) IsLoggedIn(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "User is authenticated"})
}

// --------------------------------------------------
// GET /dashboard
// --------------------------------------------------
func (h *Handler) Dashboard(c *gin.Context) {
	email := c.GetString("userEmail")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Welcome " + email + "!"})
}

type medicalHistoryRequest struct {
	Email          string   `json:"email"`
	MedicalHistory []string `json:"medical_history"`
}

// --------------------------------------------------
// POST /update_medical_history
// --------------------------------------------------
func (h *Handler) UpdateMedicalHistory(c *gin.Context) {
	var req medicalHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
		return
	}

	if req.Email == "" || len(req.MedicalHistory) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
		return
	}

	updated, err := h.service.UpdateMedicalHistory(req.Email, req.MedicalHistory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Medical history updated successfully"})
}
