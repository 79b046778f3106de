package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"servitec/internal/adapter/http/handlers/mocks"
	"servitec/internal/adapter/http/middleware"
	"servitec/internal/domain/entities"
	"servitec/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestAuthHandler_StaffLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/staff/login", h.StaffLogin)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/staff/login", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/staff/login", h.StaffLogin)

		uc.EXPECT().StaffLogin(gomock.Any(), "tech@shop.ec", "wrong").Return("", entities.Staff{}, usecase.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/staff/login", bytes.NewBufferString(`{"email":"tech@shop.ec","password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "INVALID_CREDENTIALS") {
			t.Fatalf("expected INVALID_CREDENTIALS in body, got %s", w.Body.String())
		}
	})

	t.Run("inactive account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/staff/login", h.StaffLogin)

		uc.EXPECT().StaffLogin(gomock.Any(), "tech@shop.ec", "right").Return("", entities.Staff{}, usecase.ErrStaffInactive)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/staff/login", bytes.NewBufferString(`{"email":"tech@shop.ec","password":"right"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "ACCOUNT_INACTIVE") {
			t.Fatalf("expected ACCOUNT_INACTIVE in body, got %s", w.Body.String())
		}
	})

	t.Run("success returns token and staff", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/staff/login", h.StaffLogin)

		uc.EXPECT().StaffLogin(gomock.Any(), "tech@shop.ec", "right").Return("signed-token", entities.Staff{
			ID:    7,
			Email: "tech@shop.ec",
			Roles: []string{"technician"},
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/staff/login", bytes.NewBufferString(`{"email":"tech@shop.ec","password":"right"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var body map[string]json.RawMessage
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if string(body["token"]) != `"signed-token"` {
			t.Fatalf("unexpected token field: %s", body["token"])
		}
	})
}

func TestAuthHandler_RegisterStaff(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unknown role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/staff", h.RegisterStaff)

		uc.EXPECT().RegisterStaff(gomock.Any(), "marta@shop.ec", "Marta", "password123", []string{"superuser"}).
			Return(entities.Staff{}, usecase.ErrUnknownRole)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/staff",
			bytes.NewBufferString(`{"email":"marta@shop.ec","full_name":"Marta","password":"password123","roles":["superuser"]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "UNKNOWN_ROLE") {
			t.Fatalf("expected UNKNOWN_ROLE in body, got %s", w.Body.String())
		}
	})

	t.Run("missing roles fail binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/staff", h.RegisterStaff)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/staff",
			bytes.NewBufferString(`{"email":"marta@shop.ec","full_name":"Marta","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("email taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/staff", h.RegisterStaff)

		uc.EXPECT().RegisterStaff(gomock.Any(), "marta@shop.ec", "Marta", "password123", []string{"sales"}).
			Return(entities.Staff{}, usecase.ErrEmailTaken)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/staff",
			bytes.NewBufferString(`{"email":"marta@shop.ec","full_name":"Marta","password":"password123","roles":["sales"]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/staff", h.RegisterStaff)

		uc.EXPECT().RegisterStaff(gomock.Any(), "marta@shop.ec", "Marta", "password123", []string{"sales", "receptionist"}).
			Return(entities.Staff{
				ID:       12,
				Email:    "marta@shop.ec",
				FullName: "Marta",
				Roles:    []string{"sales", "receptionist"},
				Active:   true,
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/staff",
			bytes.NewBufferString(`{"email":"marta@shop.ec","full_name":"Marta","password":"password123","roles":["sales","receptionist"]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"id":12`) {
			t.Fatalf("expected staff id in body, got %s", w.Body.String())
		}
	})
}

func TestAuthHandler_RegisterClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("email taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/clients/register", h.RegisterClient)

		uc.EXPECT().RegisterClient(gomock.Any(), "ana@mail.ec", "Ana", "", "password123").Return(entities.Client{}, usecase.ErrEmailTaken)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/clients/register", bytes.NewBufferString(`{"email":"ana@mail.ec","full_name":"Ana","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "EMAIL_TAKEN") {
			t.Fatalf("expected EMAIL_TAKEN in body, got %s", w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/clients/register", h.RegisterClient)

		uc.EXPECT().RegisterClient(gomock.Any(), "ana@mail.ec", "Ana", "0991234567", "password123").Return(entities.Client{
			ID:       4,
			Email:    "ana@mail.ec",
			FullName: "Ana",
			Phone:    "0991234567",
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/clients/register", bytes.NewBufferString(`{"email":"ana@mail.ec","full_name":"Ana","phone":"0991234567","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})
}

func TestAuthHandler_ClientLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success sets the session cookie", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/clients/login", h.ClientLogin)

		uc.EXPECT().ClientLogin(gomock.Any(), "ana@mail.ec", "password123").Return("sess-abc", entities.Client{ID: 4, Email: "ana@mail.ec"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/clients/login", bytes.NewBufferString(`{"email":"ana@mail.ec","password":"password123"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var sessionCookie *http.Cookie
		for _, cookie := range w.Result().Cookies() {
			if cookie.Name == middleware.SessionCookieName {
				sessionCookie = cookie
			}
		}
		if sessionCookie == nil {
			t.Fatal("expected the session cookie to be set")
		}
		if sessionCookie.Value != "sess-abc" || !sessionCookie.HttpOnly {
			t.Fatalf("unexpected cookie: %+v", sessionCookie)
		}
	})

	t.Run("invalid credentials never set a cookie", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/clients/login", h.ClientLogin)

		uc.EXPECT().ClientLogin(gomock.Any(), "ana@mail.ec", "wrong").Return("", entities.Client{}, usecase.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/clients/login", bytes.NewBufferString(`{"email":"ana@mail.ec","password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if len(w.Result().Cookies()) != 0 {
			t.Fatalf("expected no cookies, got %v", w.Result().Cookies())
		}
	})
}

func TestAuthHandler_ClientLogout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("deletes the session and clears the cookie", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/clients/logout", h.ClientLogout)

		uc.EXPECT().ClientLogout(gomock.Any(), "sess-abc").Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/clients/logout", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "sess-abc"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}

		var cleared *http.Cookie
		for _, cookie := range w.Result().Cookies() {
			if cookie.Name == middleware.SessionCookieName {
				cleared = cookie
			}
		}
		if cleared == nil || cleared.MaxAge >= 0 || cleared.Value != "" {
			t.Fatalf("expected the cookie to be cleared, got %+v", cleared)
		}
	})

	t.Run("no cookie is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/clients/logout", h.ClientLogout)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/clients/logout", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc, 3600)

		r := gin.New()
		r.POST("/v1/auth/clients/logout", h.ClientLogout)

		uc.EXPECT().ClientLogout(gomock.Any(), "sess-abc").Return(errors.New("redis down"))

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/clients/logout", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "sess-abc"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
