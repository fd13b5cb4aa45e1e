package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/fieldops-docs/internal/http/middleware"
	"github.com/nurpe/fieldops-docs/internal/model"
	"github.com/nurpe/fieldops-docs/internal/pricing"
	"github.com/nurpe/fieldops-docs/internal/service"
)

type Documents interface {
	CreateClient(ctx context.Context, p model.Principal, input service.CreateClientInput) (*model.Client, error)
	GetClient(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Client, error)
	ListClients(ctx context.Context, p model.Principal) ([]model.Client, error)
	CreateEquipment(ctx context.Context, p model.Principal, input service.CreateEquipmentInput) (*model.Equipment, error)
	ListEquipment(ctx context.Context, p model.Principal, clientID uuid.UUID) ([]model.Equipment, error)

	CreateOrder(ctx context.Context, p model.Principal, input service.OrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context, p model.Principal, filter model.OrderFilter) ([]model.Order, error)
	UpdateOrder(ctx context.Context, p model.Principal, id uuid.UUID, input service.OrderInput) (*model.Order, error)
	CloseOrder(ctx context.Context, p model.Principal, id uuid.UUID, result string) (*model.Order, error)
	DeleteOrder(ctx context.Context, p model.Principal, id uuid.UUID) error

	AddWorkSession(ctx context.Context, p model.Principal, orderID uuid.UUID, input service.WorkSessionInput) (*model.WorkSession, error)
	ListWorkSessions(ctx context.Context, p model.Principal, orderID uuid.UUID) ([]model.WorkSession, error)
	DeleteWorkSession(ctx context.Context, p model.Principal, orderID, sessionID uuid.UUID) error
	OrderSummary(ctx context.Context, p model.Principal, orderID uuid.UUID) (*service.OrderSummary, error)

	PreviewBudget(p model.Principal, input service.BudgetInput) (*pricing.Summary, error)
	CreateBudget(ctx context.Context, p model.Principal, input service.BudgetInput) (*model.Budget, error)
	GetBudget(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Budget, error)
	ListBudgets(ctx context.Context, p model.Principal, orderID *uuid.UUID) ([]model.Budget, error)

	GenerateBudgetPDF(ctx context.Context, p model.Principal, budgetID uuid.UUID) (*service.FileResult, error)
	GenerateOrderPDF(ctx context.Context, p model.Principal, orderID uuid.UUID) (*service.FileResult, error)
	ExportWorkdays(ctx context.Context, p model.Principal, orderID uuid.UUID) (*service.FileResult, error)
}

type Handler struct {
	docs Documents
	log  zerolog.Logger
}

func NewHandler(docs Documents, log zerolog.Logger) *Handler {
	return &Handler{docs: docs, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/clients", h.createClient)
	protected.GET("/clients", h.listClients)
	protected.GET("/clients/:id", h.getClient)
	protected.POST("/clients/:id/equipment", h.createEquipment)
	protected.GET("/clients/:id/equipment", h.listEquipment)

	protected.POST("/orders", h.createOrder)
	protected.GET("/orders", h.listOrders)
	protected.GET("/orders/:id", h.getOrder)
	protected.PUT("/orders/:id", h.updateOrder)
	protected.POST("/orders/:id/close", h.closeOrder)
	protected.DELETE("/orders/:id", h.deleteOrder)
	protected.GET("/orders/:id/summary", h.orderSummary)
	protected.GET("/orders/:id/pdf", h.orderPDF)
	protected.GET("/orders/:id/workdays/export", h.exportWorkdays)

	protected.POST("/orders/:id/sessions", h.addWorkSession)
	protected.GET("/orders/:id/sessions", h.listWorkSessions)
	protected.DELETE("/orders/:id/sessions/:sessionId", h.deleteWorkSession)

	protected.POST("/budgets/preview", h.previewBudget)
	protected.POST("/budgets", h.createBudget)
	protected.GET("/budgets", h.listBudgets)
	protected.GET("/budgets/:id", h.getBudget)
	protected.GET("/budgets/:id/pdf", h.budgetPDF)
}

type clientRequest struct {
	Name    string `json:"name" binding:"required"`
	TaxID   string `json:"tax_id" binding:"max=32"`
	Address string `json:"address"`
	Phone   string `json:"phone" binding:"max=32"`
	Email   string `json:"email" binding:"omitempty,email"`
}

type equipmentRequest struct {
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	Description  string `json:"description"`
}

type orderRequest struct {
	ClientID    string          `json:"client_id"`
	EquipmentID *string         `json:"equipment_id"`
	ServiceType string          `json:"service_type"`
	Priority    string          `json:"priority" binding:"omitempty,oneof=low normal high"`
	Result      string          `json:"result"`
	Notes       string          `json:"notes"`
	Checklist   model.Checklist `json:"checklist"`
}

type closeOrderRequest struct {
	Result string `json:"result"`
}

type workSessionRequest struct {
	Date              string `json:"date" binding:"required"`
	OutboundDeparture string `json:"outbound_departure" binding:"omitempty,clock"`
	OutboundArrival   string `json:"outbound_arrival" binding:"omitempty,clock"`
	WorkStart         string `json:"work_start" binding:"omitempty,clock"`
	WorkEnd           string `json:"work_end" binding:"omitempty,clock"`
	ReturnDeparture   string `json:"return_departure" binding:"omitempty,clock"`
	ReturnArrival     string `json:"return_arrival" binding:"omitempty,clock"`
	Pause             string `json:"pause" binding:"omitempty,hm"`
	OutboundKm        string `json:"outbound_km" binding:"max=16,amount"`
	ReturnKm          string `json:"return_km" binding:"max=16,amount"`
}

type priceEntryRequest struct {
	Price    string `json:"price" binding:"max=32,amount"`
	Quantity string `json:"quantity" binding:"max=32,amount"`
}

type lineItemRequest struct {
	Description string              `json:"description"`
	Kind        model.ItemKind      `json:"kind"`
	Multiple    bool                `json:"multiple"`
	Entries     []priceEntryRequest `json:"entries" binding:"dive"`
}

func (r lineItemRequest) toModel() model.LineItem {
	item := model.LineItem{Description: r.Description, Kind: r.Kind, Multiple: r.Multiple}
	for _, e := range r.Entries {
		item.Entries = append(item.Entries, model.PriceEntry{Price: e.Price, Quantity: e.Quantity})
	}
	return item
}

type budgetRequest struct {
	OrderID  *string          `json:"order_id"`
	ClientID string           `json:"client_id"`
	Items    []lineItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxRate  *string          `json:"tax_rate"`
	ShowTax  *bool            `json:"show_tax"`
	Notes    string           `json:"notes"`
}

func (h *Handler) createClient(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.docs.CreateClient(c.Request.Context(), principal, service.CreateClientInput{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *Handler) listClients(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	clients, err := h.docs.ListClients(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": clients})
}

func (h *Handler) getClient(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := h.docs.GetClient(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) createEquipment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	equipment, err := h.docs.CreateEquipment(c.Request.Context(), principal, service.CreateEquipmentInput{
		ClientID:     clientID,
		Brand:        req.Brand,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Description:  req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, equipment)
}

func (h *Handler) listEquipment(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}
	equipment, err := h.docs.ListEquipment(c.Request.Context(), principal, clientID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": equipment})
}

func (h *Handler) createOrder(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ClientID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_id is required"})
		return
	}

	order, err := h.docs.CreateOrder(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) listOrders(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	filter := model.OrderFilter{Search: c.Query("q")}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := model.OrderStatus(strings.ToLower(raw))
		filter.Status = &status
	}
	if raw := strings.TrimSpace(c.Query("priority")); raw != "" {
		priority := model.Priority(strings.ToLower(raw))
		filter.Priority = &priority
	}
	if raw := strings.TrimSpace(c.Query("client_id")); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client_id"})
			return
		}
		filter.ClientID = &clientID
	}
	var err error
	if filter.Limit, err = parseUint(c.Query("limit")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	if filter.Offset, err = parseUint(c.Query("offset")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}

	orders, err := h.docs.ListOrders(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

func (h *Handler) getOrder(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.docs.GetOrder(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) updateOrder(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.docs.UpdateOrder(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) closeOrder(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req closeOrderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	order, err := h.docs.CloseOrder(c.Request.Context(), principal, id, req.Result)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) deleteOrder(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.docs.DeleteOrder(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) orderSummary(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	summary, err := h.docs.OrderSummary(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) addWorkSession(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req workSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	session, err := h.docs.AddWorkSession(c.Request.Context(), principal, orderID, service.WorkSessionInput{
		Date:              date,
		OutboundDeparture: req.OutboundDeparture,
		OutboundArrival:   req.OutboundArrival,
		WorkStart:         req.WorkStart,
		WorkEnd:           req.WorkEnd,
		ReturnDeparture:   req.ReturnDeparture,
		ReturnArrival:     req.ReturnArrival,
		Pause:             req.Pause,
		OutboundKm:        req.OutboundKm,
		ReturnKm:          req.ReturnKm,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *Handler) listWorkSessions(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	sessions, err := h.docs.ListWorkSessions(c.Request.Context(), principal, orderID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sessions})
}

func (h *Handler) deleteWorkSession(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	sessionID, ok := pathID(c, "sessionId")
	if !ok {
		return
	}
	if err := h.docs.DeleteWorkSession(c.Request.Context(), principal, orderID, sessionID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) previewBudget(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	input, ok := bindBudget(c)
	if !ok {
		return
	}
	summary, err := h.docs.PreviewBudget(principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) createBudget(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	input, ok := bindBudget(c)
	if !ok {
		return
	}
	budget, err := h.docs.CreateBudget(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, budget)
}

func (h *Handler) listBudgets(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var orderID *uuid.UUID
	if raw := strings.TrimSpace(c.Query("order_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order_id"})
			return
		}
		orderID = &id
	}
	budgets, err := h.docs.ListBudgets(c.Request.Context(), principal, orderID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": budgets})
}

func (h *Handler) getBudget(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	budget, err := h.docs.GetBudget(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

func (h *Handler) budgetPDF(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.docs.GenerateBudgetPDF(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, result)
}

func (h *Handler) orderPDF(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.docs.GenerateOrderPDF(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, result)
}

func (h *Handler) exportWorkdays(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.docs.ExportWorkdays(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, result)
}

func (h *Handler) principal(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return principal, ok
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOrderClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func sendFile(c *gin.Context, result *service.FileResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func bindBudget(c *gin.Context) (service.BudgetInput, bool) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.BudgetInput{}, false
	}

	input := service.BudgetInput{ShowTax: req.ShowTax, Notes: req.Notes}
	for _, item := range req.Items {
		input.Items = append(input.Items, item.toModel())
	}
	if req.OrderID != nil && strings.TrimSpace(*req.OrderID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*req.OrderID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order_id"})
			return service.BudgetInput{}, false
		}
		input.OrderID = &id
	}
	if raw := strings.TrimSpace(req.ClientID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client_id"})
			return service.BudgetInput{}, false
		}
		input.ClientID = id
	}
	if req.TaxRate != nil {
		rate, err := pricing.ParseTaxRate(*req.TaxRate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tax_rate"})
			return service.BudgetInput{}, false
		}
		input.TaxRate = &rate
	}
	return input, true
}

func (r orderRequest) toInput() (service.OrderInput, error) {
	input := service.OrderInput{
		ServiceType: r.ServiceType,
		Priority:    model.Priority(r.Priority),
		Result:      r.Result,
		Notes:       r.Notes,
		Checklist:   r.Checklist,
	}
	if raw := strings.TrimSpace(r.ClientID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return input, errors.New("invalid client_id")
		}
		input.ClientID = id
	}
	if r.EquipmentID != nil && strings.TrimSpace(*r.EquipmentID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*r.EquipmentID))
		if err != nil {
			return input, errors.New("invalid equipment_id")
		}
		input.EquipmentID = &id
	}
	return input, nil
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func parseUint(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseUint(raw, 10, 64)
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"02/01/2006",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
