package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cristianccgg/letranido-backend/internal/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubMaintenanceService struct {
	state *dto.MaintenanceStateResponse
	err   error
	calls int
}

func (s *stubMaintenanceService) Status(context.Context) (*dto.MaintenanceStateResponse, error) {
	s.calls++
	return s.state, s.err
}

func (s *stubMaintenanceService) Toggle(context.Context, *dto.ToggleMaintenanceRequest, string) (*dto.MaintenanceStateResponse, error) {
	return s.state, s.err
}

func gateRouter(g *MaintenanceGate) *gin.Engine {
	r := gin.New()
	r.GET("/contests", g.Handler(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestMaintenanceGate_PassesWhenInactive(t *testing.T) {
	svc := &stubMaintenanceService{state: &dto.MaintenanceStateResponse{IsActive: false}}
	g := NewMaintenanceGate(context.Background(), svc, nil, zap.NewNop())
	r := gateRouter(g)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contests", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestMaintenanceGate_BlocksWhenActive(t *testing.T) {
	svc := &stubMaintenanceService{state: &dto.MaintenanceStateResponse{
		IsActive: true,
		Message:  "Mantenimiento en curso",
	}}
	g := NewMaintenanceGate(context.Background(), svc, nil, zap.NewNop())
	r := gateRouter(g)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contests", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestMaintenanceGate_CachesAcrossRequests(t *testing.T) {
	svc := &stubMaintenanceService{state: &dto.MaintenanceStateResponse{IsActive: false}}
	g := NewMaintenanceGate(context.Background(), svc, nil, zap.NewNop())
	r := gateRouter(g)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contests", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
	if svc.calls != 1 {
		t.Errorf("expected a single status fetch within the TTL, got %d", svc.calls)
	}
}

func TestMaintenanceGate_InvalidateForcesRefetch(t *testing.T) {
	svc := &stubMaintenanceService{state: &dto.MaintenanceStateResponse{IsActive: false}}
	g := NewMaintenanceGate(context.Background(), svc, nil, zap.NewNop())
	r := gateRouter(g)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contests", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	svc.state = &dto.MaintenanceStateResponse{IsActive: true, Message: "Mantenimiento"}
	g.invalidate()

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contests", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 after invalidation, got %d", w.Code)
	}
	if svc.calls != 2 {
		t.Errorf("expected a refetch after invalidation, got %d fetches", svc.calls)
	}
}

func TestMaintenanceGate_KeepsStateOnReadFailure(t *testing.T) {
	svc := &stubMaintenanceService{state: &dto.MaintenanceStateResponse{IsActive: true, Message: "Mantenimiento"}}
	g := NewMaintenanceGate(context.Background(), svc, nil, zap.NewNop())
	r := gateRouter(g)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contests", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}

	svc.err = errors.New("db down")
	g.invalidate()

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contests", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected the gate to keep blocking on a read failure, got %d", w.Code)
	}
}
