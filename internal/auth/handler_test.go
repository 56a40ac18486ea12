package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupAuthRouter(revoker Revoker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	service := NewService(NewInMemoryUserRepository())
	handler := NewHandler(service, revoker)

	r.POST("/signup", handler.Signup)
	r.POST("/login", handler.Login)
	r.POST("/logout", handler.Logout)
	r.POST("/update_medical_history", handler.UpdateMedicalHistory)

	return r
}

func TestSignupLoginFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	router := setupAuthRouter(NewInMemoryRevocationStore())

	signupBody := `{"name":"Test User","email":"test@example.com","password":"Password@123"}`
	req := httptest.NewRequest("POST", "/signup", strings.NewReader(signupBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	loginBody := `{"email":"test@example.com","password":"Password@123"}`
	req = httptest.NewRequest("POST", "/login", strings.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token in the login response")
	}
	if resp.User.Email != "test@example.com" {
		t.Errorf("unexpected user in response: %+v", resp.User)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	revoker := NewInMemoryRevocationStore()
	router := setupAuthRouter(revoker)

	token, err := GenerateToken("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest("POST", "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	revoked, _ := revoker.IsRevoked(req.Context(), claims.TokenID)
	if !revoked {
		t.Fatal("expected token to be revoked after logout")
	}
}

func TestUpdateMedicalHistoryEndpoint(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	router := setupAuthRouter(NewInMemoryRevocationStore())

	signupBody := `{"name":"Test User","email":"test@example.com","password":"Password@123"}`
	req := httptest.NewRequest("POST", "/signup", strings.NewReader(signupBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	historyBody := `{"email":"test@example.com","medical_history":["asthma","penicillin allergy"]}`
	req = httptest.NewRequest("POST", "/update_medical_history", strings.NewReader(historyBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Medical history updated successfully") {
		t.Errorf("unexpected response: %s", w.Body.String())
	}
}

func TestUpdateMedicalHistoryEndpoint_MissingDataIs400(t *testing.T) {
	router := setupAuthRouter(NewInMemoryRevocationStore())

	req := httptest.NewRequest("POST", "/update_medical_history",
		strings.NewReader(`{"email":"test@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateMedicalHistoryEndpoint_UnknownUserIs404(t *testing.T) {
	router := setupAuthRouter(NewInMemoryRevocationStore())

	body := `{"email":"nobody@example.com","medical_history":["asthma"]}`
	req := httptest.NewRequest("POST", "/update_medical_history", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDashboard_WelcomesUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	service := NewService(NewInMemoryUserRepository())
	handler := NewHandler(service, NewInMemoryRevocationStore())

	// Stand-in for the auth middleware.
	r.Use(func(c *gin.Context) {
		c.Set("userEmail", "test@example.com")
		c.Next()
	})
	r.GET("/dashboard", handler.Dashboard)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Welcome test@example.com!") {
		t.Errorf("unexpected response: %s", w.Body.String())
	}
}

func TestLogin_BadCredentialsIs401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	router := setupAuthRouter(NewInMemoryRevocationStore())

	loginBody := `{"email":"nobody@example.com","password":"nope"}`
	req := httptest.NewRequest("POST", "/login", strings.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
