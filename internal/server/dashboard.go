package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	reportingdomain "github.com/legaldesk/analytics/internal/reporting/domain"
)

type listResponse[T any] struct {
	Data []T `json:"data"`
}

func (s *Server) GetOverview(c *gin.Context) {
	overview, err := s.reportingSvc.Overview(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (s *Server) GetKPIs(c *gin.Context) {
	kpis, err := s.reportingSvc.KPIs(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, kpis)
}

func (s *Server) GetOrdersByPeriod(c *gin.Context) {
	bucket, err := parseBucket(c.Query("bucket"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	periods, err := s.reportingSvc.OrdersByPeriod(c.Request.Context(), bucket)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[reportingdomain.PeriodOrders]{Data: periods})
}

func (s *Server) GetProductFrequency(c *gin.Context) {
	topN, err := parseTopN(c.Query("top_n"), s.cfg.DashboardTopN)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	products, err := s.reportingSvc.ProductFrequency(c.Request.Context(), topN)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[reportingdomain.ProductFrequency]{Data: products})
}

func (s *Server) GetCustomerValue(c *gin.Context) {
	customers, err := s.reportingSvc.CustomerValue(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[reportingdomain.CustomerValue]{Data: customers})
}

func (s *Server) GetCategoryPerformance(c *gin.Context) {
	categories, err := s.reportingSvc.CategoryPerformance(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[reportingdomain.CategoryPerformance]{Data: categories})
}

func (s *Server) GetTopProductsByRevenue(c *gin.Context) {
	topN, err := parseTopN(c.Query("top_n"), s.cfg.DashboardTopN)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	products, err := s.reportingSvc.TopProductsByRevenue(c.Request.Context(), topN)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse[reportingdomain.ProductRevenue]{Data: products})
}

func (s *Server) RefreshSnapshot(c *gin.Context) {
	if err := s.reportingSvc.Refresh(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}
