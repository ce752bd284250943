package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cristianccgg/letranido-backend/internal/api/middleware"
	"github.com/cristianccgg/letranido-backend/internal/dto"
	"github.com/cristianccgg/letranido-backend/internal/service"
	"github.com/cristianccgg/letranido-backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── mock services ──

type mockNewsletterService struct {
	subscribeResp *dto.SubscribeResponse
	subscribeErr  error
	unsubUser     *dto.UserResponse
	unsubErr      error
	lastEmail     string
}

func (m *mockNewsletterService) Subscribe(_ context.Context, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	m.lastEmail = req.Email
	return m.subscribeResp, m.subscribeErr
}

func (m *mockNewsletterService) Unsubscribe(_ context.Context, req *dto.UnsubscribeRequest) (*dto.UserResponse, error) {
	m.lastEmail = req.Email
	return m.unsubUser, m.unsubErr
}

type mockMaintenanceService struct {
	state       *dto.MaintenanceStateResponse
	err         error
	lastAdmin   string
	lastRequest *dto.ToggleMaintenanceRequest
}

func (m *mockMaintenanceService) Status(_ context.Context) (*dto.MaintenanceStateResponse, error) {
	return m.state, m.err
}

func (m *mockMaintenanceService) Toggle(_ context.Context, req *dto.ToggleMaintenanceRequest, adminEmail string) (*dto.MaintenanceStateResponse, error) {
	m.lastRequest = req
	m.lastAdmin = adminEmail
	return m.state, m.err
}

// ── helpers ──

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response envelope: %v", err)
	}
	return &resp
}

// ── newsletter handler ──

func newsletterRouter(svc service.NewsletterService) *gin.Engine {
	h := NewNewsletterHandler(svc)
	r := gin.New()
	r.POST("/newsletter/subscribe", h.Subscribe)
	r.POST("/newsletter/unsubscribe", h.Unsubscribe)
	return r
}

func TestNewsletterHandler_Subscribe_Success(t *testing.T) {
	svc := &mockNewsletterService{
		subscribeResp: &dto.SubscribeResponse{
			Message:           "¡Gracias por suscribirte!",
			IsNewSubscription: true,
		},
	}
	r := newsletterRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/newsletter/subscribe", dto.SubscribeRequest{Email: "ana@ejemplo.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	if data["isNewSubscription"] != true {
		t.Errorf("expected isNewSubscription=true, got %v", data["isNewSubscription"])
	}
	if svc.lastEmail != "ana@ejemplo.com" {
		t.Errorf("service received email %q", svc.lastEmail)
	}
}

func TestNewsletterHandler_Subscribe_InvalidEmail(t *testing.T) {
	svc := &mockNewsletterService{subscribeErr: service.ErrInvalidEmail}
	r := newsletterRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/newsletter/subscribe", dto.SubscribeRequest{Email: "no-es-un-email"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 13001 {
		t.Errorf("expected code 13001, got %d", resp.Code)
	}
	if resp.Message != "Por favor ingresa un email válido" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestNewsletterHandler_Subscribe_MissingEmail(t *testing.T) {
	svc := &mockNewsletterService{}
	r := newsletterRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/newsletter/subscribe", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if svc.lastEmail != "" {
		t.Error("service must not be called on a binding failure")
	}
}

func TestNewsletterHandler_Subscribe_InternalError(t *testing.T) {
	svc := &mockNewsletterService{subscribeErr: errors.New("db down")}
	r := newsletterRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/newsletter/subscribe", dto.SubscribeRequest{Email: "ana@ejemplo.com"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 50000 {
		t.Errorf("expected code 50000, got %d", resp.Code)
	}
}

func TestNewsletterHandler_Unsubscribe_Success(t *testing.T) {
	svc := &mockNewsletterService{
		unsubUser: &dto.UserResponse{ID: "u1", Email: "ana@ejemplo.com"},
	}
	r := newsletterRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/newsletter/unsubscribe", dto.UnsubscribeRequest{Email: "ana@ejemplo.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	if data["newsletter_contests"] != false {
		t.Errorf("expected newsletter_contests=false, got %v", data["newsletter_contests"])
	}
}

func TestNewsletterHandler_Unsubscribe_UnknownEmail(t *testing.T) {
	svc := &mockNewsletterService{unsubErr: service.ErrProfileNotFound}
	r := newsletterRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/newsletter/unsubscribe", dto.UnsubscribeRequest{Email: "nadie@ejemplo.com"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 13002 {
		t.Errorf("expected code 13002, got %d", resp.Code)
	}
}

// ── maintenance handler ──

func maintenanceRouter(svc service.MaintenanceService, adminEmail string) *gin.Engine {
	h := NewMaintenanceHandler(svc)
	r := gin.New()
	r.GET("/maintenance", h.Status)
	r.POST("/maintenance/toggle", func(c *gin.Context) {
		c.Set(middleware.CtxUserEmail, adminEmail)
		h.Toggle(c)
	})
	return r
}

func TestMaintenanceHandler_Status(t *testing.T) {
	svc := &mockMaintenanceService{
		state: &dto.MaintenanceStateResponse{
			IsActive:          true,
			Message:           "Volvemos pronto",
			EstimatedDuration: "30 minutos",
		},
	}
	r := maintenanceRouter(svc, "")

	w := doJSON(t, r, http.MethodGet, "/maintenance", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	if data["is_active"] != true {
		t.Errorf("expected is_active=true, got %v", data["is_active"])
	}
}

func TestMaintenanceHandler_Toggle_RecordsAdmin(t *testing.T) {
	svc := &mockMaintenanceService{
		state: &dto.MaintenanceStateResponse{IsActive: true, ActivatedBy: "admin@letranido.com"},
	}
	r := maintenanceRouter(svc, "admin@letranido.com")

	w := doJSON(t, r, http.MethodPost, "/maintenance/toggle", dto.ToggleMaintenanceRequest{
		Active:  true,
		Message: "Migración de base de datos",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.lastAdmin != "admin@letranido.com" {
		t.Errorf("expected admin email forwarded, got %q", svc.lastAdmin)
	}
	if svc.lastRequest == nil || !svc.lastRequest.Active {
		t.Error("expected toggle request with active=true")
	}
}

func TestMaintenanceHandler_Toggle_ServiceError(t *testing.T) {
	svc := &mockMaintenanceService{err: errors.New("db down")}
	r := maintenanceRouter(svc, "admin@letranido.com")

	w := doJSON(t, r, http.MethodPost, "/maintenance/toggle", dto.ToggleMaintenanceRequest{Active: true})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
