// Package report exposes the admin analytics and order endpoints.
package report

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	v "github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/zenthra/zenthra-manager/internal/dependency"
	"github.com/zenthra/zenthra-manager/internal/entity"
	gerr "github.com/zenthra/zenthra-manager/internal/errors"
)

const dateLayout = "2006-01-02"

// Server implements handlers for the admin report surface.
type Server struct {
	analytics dependency.Analytics
	orders    dependency.Orders
}

// New creates a new server with report handlers.
func New(a dependency.Analytics, o dependency.Orders) *Server {
	return &Server{analytics: a, orders: o}
}

// ProductSales handles GET /analytics/products with optional
// startDate/endDate (YYYY-MM-DD) bounds pushed down to the store.
func (s *Server) ProductSales(w http.ResponseWriter, r *http.Request) {
	var filter entity.OrderFilter
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			http.Error(w, "invalid startDate", http.StatusBadRequest)
			return
		}
		filter.CreatedFrom = sql.NullTime{Time: t, Valid: true}
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			http.Error(w, "invalid endDate", http.StatusBadRequest)
			return
		}
		filter.CreatedTo = sql.NullTime{Time: t, Valid: true}
	}

	summary, err := s.analytics.ProductSalesSummary(r.Context(), filter)
	if err != nil {
		s.internalError(w, r, "can't get product sales summary", err)
		return
	}
	writeJSON(w, r, summary)
}

// Customers handles GET /analytics/customers.
func (s *Server) Customers(w http.ResponseWriter, r *http.Request) {
	res, err := s.analytics.CustomerOrderAnalytics(r.Context())
	if err != nil {
		s.internalError(w, r, "can't get customer analytics", err)
		return
	}
	writeJSON(w, r, res)
}

// AbandonedCarts handles GET /analytics/abandoned.
func (s *Server) AbandonedCarts(w http.ResponseWriter, r *http.Request) {
	res, err := s.analytics.AbandonedCartAnalytics(r.Context())
	if err != nil {
		s.internalError(w, r, "can't get abandoned cart analytics", err)
		return
	}
	writeJSON(w, r, res)
}

// Dashboard handles GET /analytics/dashboard.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	res, err := s.analytics.DashboardMetrics(r.Context())
	if err != nil {
		s.internalError(w, r, "can't get dashboard metrics", err)
		return
	}
	writeJSON(w, r, res)
}

// MonthlyRevenue handles GET /analytics/revenue/monthly.
func (s *Server) MonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	res, err := s.analytics.MonthlyRevenue(r.Context())
	if err != nil {
		s.internalError(w, r, "can't get monthly revenue", err)
		return
	}
	writeJSON(w, r, res)
}

// GetOrder handles GET /orders/{id}.
func (s *Server) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, err := s.orders.GetOrderByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, gerr.OrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		s.internalError(w, r, "can't get order", err)
		return
	}
	writeJSON(w, r, order)
}

type createOrderRequest struct {
	AccountID     string          `json:"accountId"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	Total         string          `json:"total"`
	Products      json.RawMessage `json:"products"`
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	orderNew, err := req.toEntity()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := v.ValidateStruct(orderNew); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := s.orders.CreateOrder(r.Context(), orderNew)
	if err != nil {
		s.internalError(w, r, "can't create order", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]string{"id": id}); err != nil {
		slog.Default().ErrorContext(r.Context(), "can't write response",
			slog.String("err", err.Error()),
		)
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PUT /orders/{id}/status.
func (s *Server) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := s.orders.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		s.internalError(w, r, "can't update order status", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type trackingRequest struct {
	TrackingCode string `json:"trackingCode"`
	TrackingURL  string `json:"trackingUrl"`
}

// SetOrderTracking handles PUT /orders/{id}/tracking. The order is marked
// shipped as a side effect, matching the admin console flow.
func (s *Server) SetOrderTracking(w http.ResponseWriter, r *http.Request) {
	var req trackingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TrackingCode == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := s.orders.SetOrderTracking(r.Context(), chi.URLParam(r, "id"), req.TrackingCode, req.TrackingURL); err != nil {
		s.internalError(w, r, "can't set order tracking", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (req *createOrderRequest) toEntity() (*entity.OrderNew, error) {
	orderNew := &entity.OrderNew{
		AccountID:     req.AccountID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		Products:      req.Products,
	}
	if req.Total != "" {
		total, err := decimal.NewFromString(req.Total)
		if err != nil {
			return nil, err
		}
		orderNew.Total = total
	}
	return orderNew, nil
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Default().ErrorContext(r.Context(), msg,
		slog.String("err", err.Error()),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, r *http.Request, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().ErrorContext(r.Context(), "can't write response",
			slog.String("err", err.Error()),
		)
	}
}
