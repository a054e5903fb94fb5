package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/legaldesk/analytics/internal/config"
	reportingdomain "github.com/legaldesk/analytics/internal/reporting/domain"
)

type stubService struct {
	kpis      reportingdomain.KPIVector
	periods   []reportingdomain.PeriodOrders
	frequency []reportingdomain.ProductFrequency
	refreshed int

	lastBucket reportingdomain.Bucket
	lastTopN   int
}

func (s *stubService) Overview(ctx context.Context) (reportingdomain.Overview, error) {
	return reportingdomain.Overview{FactRowCount: 2}, nil
}

func (s *stubService) KPIs(ctx context.Context) (reportingdomain.KPIVector, error) {
	return s.kpis, nil
}

func (s *stubService) OrdersByPeriod(ctx context.Context, bucket reportingdomain.Bucket) ([]reportingdomain.PeriodOrders, error) {
	s.lastBucket = bucket
	return s.periods, nil
}

func (s *stubService) ProductFrequency(ctx context.Context, topN int) ([]reportingdomain.ProductFrequency, error) {
	s.lastTopN = topN
	return s.frequency, nil
}

func (s *stubService) CustomerValue(ctx context.Context) ([]reportingdomain.CustomerValue, error) {
	return nil, nil
}

func (s *stubService) CategoryPerformance(ctx context.Context) ([]reportingdomain.CategoryPerformance, error) {
	return nil, nil
}

func (s *stubService) TopProductsByRevenue(ctx context.Context, topN int) ([]reportingdomain.ProductRevenue, error) {
	s.lastTopN = topN
	return nil, nil
}

func (s *stubService) Refresh(ctx context.Context) error {
	s.refreshed++
	return nil
}

func newTestServer(t *testing.T) (*Server, *stubService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub := &stubService{
		kpis: reportingdomain.KPIVector{TotalCustomers: 2, TotalOrders: 3, TotalRevenue: 200},
		periods: []reportingdomain.PeriodOrders{
			{PeriodStart: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Orders: 2},
		},
		frequency: []reportingdomain.ProductFrequency{
			{ProductName: "NDA Agreement", Orders: 2},
		},
	}

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())
	srv := NewServer(ServerParams{
		Gin:          engine,
		Cfg:          config.Config{DashboardTopN: 10},
		ReportingSvc: stub,
	})
	return srv, stub
}

func doRequest(srv *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	resp := httptest.NewRecorder()
	srv.Engine().ServeHTTP(resp, req)
	return resp
}

func TestGetKPIs(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(srv, http.MethodGet, "/api/dashboard/kpis")
	assert.Equal(t, http.StatusOK, resp.Code)

	var kpis reportingdomain.KPIVector
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &kpis))
	assert.Equal(t, int64(200), kpis.TotalRevenue)
}

func TestGetOrdersByPeriodDefaultsToWeek(t *testing.T) {
	srv, stub := newTestServer(t)

	resp := doRequest(srv, http.MethodGet, "/api/dashboard/orders-by-period")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, reportingdomain.BucketWeek, stub.lastBucket)
}

func TestGetOrdersByPeriodMonth(t *testing.T) {
	srv, stub := newTestServer(t)

	resp := doRequest(srv, http.MethodGet, "/api/dashboard/orders-by-period?bucket=month")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, reportingdomain.BucketMonth, stub.lastBucket)
}

func TestGetOrdersByPeriodRejectsUnknownBucket(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doRequest(srv, http.MethodGet, "/api/dashboard/orders-by-period?bucket=quarter")
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var body errorResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Type)
}

func TestGetProductFrequencyDefaultTopN(t *testing.T) {
	srv, stub := newTestServer(t)

	resp := doRequest(srv, http.MethodGet, "/api/dashboard/products/frequency")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 10, stub.lastTopN)
}

func TestGetProductFrequencyExplicitTopN(t *testing.T) {
	srv, stub := newTestServer(t)

	resp := doRequest(srv, http.MethodGet, "/api/dashboard/products/frequency?top_n=3")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 3, stub.lastTopN)
}

func TestGetProductFrequencyRejectsBadTopN(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, raw := range []string{"0", "-1", "abc"} {
		resp := doRequest(srv, http.MethodGet, "/api/dashboard/products/frequency?top_n="+raw)
		assert.Equal(t, http.StatusBadRequest, resp.Code, "top_n=%s", raw)
	}
}

func TestRefreshSnapshot(t *testing.T) {
	srv, stub := newTestServer(t)

	resp := doRequest(srv, http.MethodPost, "/api/dashboard/refresh")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, stub.refreshed)
}
