package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nurpe/fieldops-docs/internal/cache"
	"github.com/nurpe/fieldops-docs/internal/excel"
	"github.com/nurpe/fieldops-docs/internal/model"
	"github.com/nurpe/fieldops-docs/internal/pdf"
	"github.com/nurpe/fieldops-docs/internal/timecalc"
)

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	clients  *MockClientStore
	orders   *MockOrderStore
	sessions *MockWorkSessionStore
	budgets  *MockBudgetStore
	cache    *MockCache
	sink     *MockSink
	logs     *bytes.Buffer
	svc      *DocumentService
}

func newFixture(t *testing.T, policy timecalc.PausePolicy) *fixture {
	t.Helper()
	layout := pdf.DefaultLayout()
	layout.Compress = false
	generator, err := pdf.NewGenerator(pdf.Options{CompanyName: "Frio Norte", Layout: layout}, zerolog.Nop())
	require.NoError(t, err)

	f := &fixture{
		clients:  new(MockClientStore),
		orders:   new(MockOrderStore),
		sessions: new(MockWorkSessionStore),
		budgets:  new(MockBudgetStore),
		cache:    new(MockCache),
		sink:     new(MockSink),
		logs:     &bytes.Buffer{},
	}
	f.svc = NewDocumentService(Deps{
		Clients:  f.clients,
		Orders:   f.orders,
		Sessions: f.sessions,
		Budgets:  f.budgets,
		PDF:      generator,
		Excel:    excel.NewGenerator(),
		Cache:    f.cache,
		Sink:     f.sink,
	}, Settings{DefaultTaxRate: 23, PausePolicy: policy}, zerolog.New(f.logs))
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func technician() model.Principal {
	return model.Principal{UserID: uuid.New(), Role: model.RoleTechnician}
}

func admin() model.Principal {
	return model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
}

func TestUnknownPrincipalIsDenied(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	_, err := f.svc.ListClients(context.Background(), model.Principal{})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.svc.ListClients(context.Background(), model.Principal{UserID: uuid.New(), Role: "driver"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreateClient(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()

	_, err := f.svc.CreateClient(ctx, technician(), CreateClientInput{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.CreateClient(ctx, technician(), CreateClientInput{Name: "Hotel", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.clients.On("CreateClient", ctx, mock.MatchedBy(func(c *model.Client) bool {
		return c.Name == "Hotel Mar" && c.TaxID == "501234567"
	})).Return(nil)

	client, err := f.svc.CreateClient(ctx, technician(), CreateClientInput{Name: " Hotel Mar ", TaxID: "501234567"})
	require.NoError(t, err)
	assert.Equal(t, "Hotel Mar", client.Name)
	f.clients.AssertExpectations(t)
}

func TestCreateEquipmentRequiresClient(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	clientID := uuid.New()
	f.clients.On("GetClient", ctx, clientID).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.CreateEquipment(ctx, technician(), CreateEquipmentInput{ClientID: clientID, Brand: "Daikin"})
	assert.ErrorIs(t, err, ErrNotFound)
	f.clients.AssertNotCalled(t, "CreateEquipment", mock.Anything, mock.Anything)
}

func TestCreateOrderDefaultsPriority(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	clientID := uuid.New()
	f.clients.On("GetClient", ctx, clientID).Return(&model.Client{ID: clientID, Name: "Hotel Mar"}, nil)
	f.orders.On("CreateOrder", ctx, mock.AnythingOfType("*model.Order")).Run(func(args mock.Arguments) {
		order := args.Get(1).(*model.Order)
		order.ID = uuid.New()
		order.Number = 41
	}).Return(nil)

	order, err := f.svc.CreateOrder(ctx, technician(), OrderInput{ClientID: clientID, ServiceType: "Reparação"})
	require.NoError(t, err)
	assert.Equal(t, model.PriorityNormal, order.Priority)
	assert.Equal(t, model.OrderStatusOpen, order.Status)
	assert.Equal(t, int64(41), order.Number)

	_, err = f.svc.CreateOrder(ctx, technician(), OrderInput{ClientID: clientID, Priority: "urgent"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateOrderRejectsForeignEquipment(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	clientID, equipmentID := uuid.New(), uuid.New()
	f.clients.On("GetClient", ctx, clientID).Return(&model.Client{ID: clientID}, nil)
	f.clients.On("GetEquipment", ctx, equipmentID).Return(&model.Equipment{ID: equipmentID, ClientID: uuid.New()}, nil)

	_, err := f.svc.CreateOrder(ctx, technician(), OrderInput{ClientID: clientID, EquipmentID: &equipmentID})
	assert.ErrorIs(t, err, ErrInvalidInput)
	f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestCloseOrder(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	openID, closedID := uuid.New(), uuid.New()
	f.orders.On("GetOrder", ctx, openID).Return(&model.Order{ID: openID, Status: model.OrderStatusOpen}, nil)
	f.orders.On("GetOrder", ctx, closedID).Return(&model.Order{ID: closedID, Status: model.OrderStatusClosed}, nil)
	f.orders.On("CloseOrder", ctx, openID, "Substituído o compressor.", fixedNow).Return(nil)

	order, err := f.svc.CloseOrder(ctx, technician(), openID, " Substituído o compressor. ")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusClosed, order.Status)
	require.NotNil(t, order.ClosedAt)
	assert.Equal(t, fixedNow, *order.ClosedAt)

	_, err = f.svc.CloseOrder(ctx, technician(), closedID, "again")
	assert.ErrorIs(t, err, ErrOrderClosed)
	f.orders.AssertExpectations(t)
}

func TestDeleteOrderIsAdminOnly(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	id, missing := uuid.New(), uuid.New()

	err := f.svc.DeleteOrder(ctx, technician(), id)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	f.orders.AssertNotCalled(t, "DeleteOrder", mock.Anything, mock.Anything)

	f.orders.On("DeleteOrder", ctx, id).Return(nil)
	f.orders.On("DeleteOrder", ctx, missing).Return(gorm.ErrRecordNotFound)
	require.NoError(t, f.svc.DeleteOrder(ctx, admin(), id))
	assert.ErrorIs(t, f.svc.DeleteOrder(ctx, admin(), missing), ErrNotFound)
}

func TestListOrdersValidatesFilter(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	bad := model.OrderStatus("archived")
	_, err := f.svc.ListOrders(ctx, technician(), model.OrderFilter{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)

	open := model.OrderStatusOpen
	filter := model.OrderFilter{Status: &open}
	f.orders.On("ListOrders", ctx, filter).Return([]model.Order{{Number: 1}}, nil)
	orders, err := f.svc.ListOrders(ctx, technician(), filter)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestAddWorkSessionValidatesClocks(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	orderID := uuid.New()

	_, err := f.svc.AddWorkSession(ctx, technician(), orderID, WorkSessionInput{Date: fixedNow, WorkStart: "25:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.AddWorkSession(ctx, technician(), orderID, WorkSessionInput{Date: fixedNow, Pause: "abc"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.AddWorkSession(ctx, technician(), orderID, WorkSessionInput{WorkStart: "08:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.orders.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
	f.sessions.AssertNotCalled(t, "CreateWorkSession", mock.Anything, mock.Anything)
}

func TestAddWorkSession(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	orderID := uuid.New()
	f.orders.On("GetOrder", ctx, orderID).Return(&model.Order{ID: orderID, Status: model.OrderStatusOpen}, nil)
	f.sessions.On("CreateWorkSession", ctx, mock.MatchedBy(func(s *model.WorkSession) bool {
		return s.OrderID == orderID && s.WorkStart == "08:00" && s.Pause == "1:00" &&
			s.Date.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	})).Return(nil)

	session, err := f.svc.AddWorkSession(ctx, technician(), orderID, WorkSessionInput{
		Date:      fixedNow,
		WorkStart: "08:00",
		WorkEnd:   "17:00",
		Pause:     "1:00",
		ReturnKm:  "12,5",
	})
	require.NoError(t, err)
	assert.Equal(t, "12,5", session.ReturnKm)
	f.sessions.AssertExpectations(t)
}

func TestAddWorkSessionPausePolicy(t *testing.T) {
	orderID := uuid.New()
	input := WorkSessionInput{Date: fixedNow, WorkStart: "08:00", WorkEnd: "09:00", Pause: "2:00"}

	strict := newFixture(t, timecalc.PauseReject)
	_, err := strict.svc.AddWorkSession(context.Background(), technician(), orderID, input)
	assert.ErrorIs(t, err, ErrInvalidInput)

	lenient := newFixture(t, timecalc.PauseClamp)
	lenient.orders.On("GetOrder", mock.Anything, orderID).Return(&model.Order{ID: orderID, Status: model.OrderStatusOpen}, nil)
	lenient.sessions.On("CreateWorkSession", mock.Anything, mock.Anything).Return(nil)
	_, err = lenient.svc.AddWorkSession(context.Background(), technician(), orderID, input)
	require.NoError(t, err)
}

func TestAddWorkSessionToClosedOrder(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	orderID := uuid.New()
	f.orders.On("GetOrder", mock.Anything, orderID).Return(&model.Order{ID: orderID, Status: model.OrderStatusClosed}, nil)

	_, err := f.svc.AddWorkSession(context.Background(), technician(), orderID, WorkSessionInput{Date: fixedNow})
	assert.ErrorIs(t, err, ErrOrderClosed)
}

func TestOrderSummary(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	orderID := uuid.New()
	f.orders.On("GetOrder", ctx, orderID).Return(&model.Order{ID: orderID, Number: 7}, nil)
	f.sessions.On("ListWorkSessions", ctx, orderID).Return([]model.WorkSession{
		{WorkStart: "08:00", WorkEnd: "17:00", Pause: "1:00", OutboundKm: "10", ReturnKm: "15"},
		{WorkStart: "22:00", WorkEnd: "02:00", OutboundDeparture: "21:00", OutboundArrival: "21:45", OutboundKm: "5", ReturnKm: "5"},
	}, nil)

	summary, err := f.svc.OrderSummary(ctx, technician(), orderID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), summary.Order.Number)
	assert.Equal(t, 12.0, summary.Totals.WorkHours)
	assert.Equal(t, 0.75, summary.Totals.TravelHours)
	assert.Equal(t, 35.0, summary.Totals.DistanceKm)
	assert.Equal(t, 2, summary.Totals.Days)
}

func TestPreviewBudget(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	items := []model.LineItem{
		{Description: "Mão de obra", Entries: []model.PriceEntry{{Price: "10", Quantity: "3"}}},
	}

	summary, err := f.svc.PreviewBudget(technician(), BudgetInput{Items: items})
	require.NoError(t, err)
	assert.Equal(t, 30.0, summary.Subtotal)
	assert.InDelta(t, 36.9, summary.Total, 1e-9)

	hidden := false
	summary, err = f.svc.PreviewBudget(technician(), BudgetInput{Items: items, ShowTax: &hidden})
	require.NoError(t, err)
	assert.Equal(t, 30.0, summary.Total)

	negative := -1.0
	_, err = f.svc.PreviewBudget(technician(), BudgetInput{Items: items, TaxRate: &negative})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.PreviewBudget(technician(), BudgetInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.PreviewBudget(technician(), BudgetInput{Items: []model.LineItem{{Description: "x", Kind: "gift", Entries: items[0].Entries}}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateBudgetFromOrder(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	p := technician()
	clientID, orderID, equipmentID := uuid.New(), uuid.New(), uuid.New()

	f.orders.On("GetOrder", ctx, orderID).Return(&model.Order{ID: orderID, Number: 41, ClientID: clientID, EquipmentID: &equipmentID}, nil)
	f.clients.On("GetEquipment", ctx, equipmentID).Return(&model.Equipment{ID: equipmentID, ClientID: clientID, Brand: "Daikin", Model: "FTX"}, nil)
	f.clients.On("GetClient", ctx, clientID).Return(&model.Client{ID: clientID, Name: "Hotel Mar", TaxID: "501", Address: "Rua A"}, nil)
	f.budgets.On("CreateBudget", ctx, mock.AnythingOfType("*model.Budget")).Run(func(args mock.Arguments) {
		b := args.Get(1).(*model.Budget)
		b.ID = uuid.New()
		b.Number = 3
	}).Return(nil)

	rate := 23.0
	budget, err := f.svc.CreateBudget(ctx, p, BudgetInput{
		OrderID: &orderID,
		TaxRate: &rate,
		Items: []model.LineItem{
			{Description: "Peças", Kind: model.ItemKindExpense, Multiple: true, Entries: []model.PriceEntry{{Price: "2", Quantity: "3"}, {Price: "4", Quantity: "1"}}},
			{Description: "Mão de obra", Entries: []model.PriceEntry{{Price: "10", Quantity: "3"}, {Price: "99", Quantity: "99"}}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), budget.Number)
	assert.Equal(t, "Hotel Mar", budget.ClientName)
	assert.Equal(t, "501", budget.ClientTaxID)
	assert.Equal(t, "Daikin FTX", budget.Equipment)
	require.NotNil(t, budget.OrderNumber)
	assert.Equal(t, int64(41), *budget.OrderNumber)
	assert.Equal(t, p.UserID, budget.CreatedBy)
	assert.Len(t, budget.Items[1].Entries, 1, "single-entry items keep only their first entry")
	assert.Equal(t, 40.0, budget.Subtotal)
	assert.InDelta(t, 49.2, budget.Total, 1e-9)
	assert.NotContains(t, f.logs.String(), "non-preset tax rate")
}

func TestCreateBudgetCustomRateAndNonNumericAmounts(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	clientID := uuid.New()

	f.clients.On("GetClient", ctx, clientID).Return(&model.Client{ID: clientID, Name: "Hotel Mar"}, nil)
	f.budgets.On("CreateBudget", ctx, mock.AnythingOfType("*model.Budget")).Return(nil)

	rate := 21.0
	budget, err := f.svc.CreateBudget(ctx, technician(), BudgetInput{
		ClientID: clientID,
		TaxRate:  &rate,
		Items: []model.LineItem{
			{Description: "Mão de obra", Entries: []model.PriceEntry{{Price: "10", Quantity: "2"}}},
			{Description: "Inválido", Entries: []model.PriceEntry{{Price: "NaN", Quantity: "1"}}},
			{Description: "Excedente", Entries: []model.PriceEntry{{Price: "1e308", Quantity: "10"}}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, budget.Subtotal)
	assert.InDelta(t, 24.2, budget.Total, 1e-9)
	assert.Contains(t, f.logs.String(), "non-preset tax rate")
}

func TestCreateBudgetRequiresClient(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	_, err := f.svc.CreateBudget(context.Background(), technician(), BudgetInput{
		Items: []model.LineItem{{Description: "x", Entries: []model.PriceEntry{{Price: "1", Quantity: "1"}}}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	f.budgets.AssertNotCalled(t, "CreateBudget", mock.Anything, mock.Anything)
}

func savedBudget() *model.Budget {
	return &model.Budget{
		ID:         uuid.New(),
		Number:     12,
		ClientName: "Pastelaria São João",
		TaxRate:    23,
		ShowTax:    true,
		Items: []model.LineItem{
			{Description: "Mão de obra", Kind: model.ItemKindService, Entries: []model.PriceEntry{{Price: "10", Quantity: "3"}}},
		},
	}
}

func TestGenerateBudgetPDFCachesAndArchives(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	budget := savedBudget()
	key := cache.BudgetPDFKey(budget.ID)

	f.budgets.On("GetBudget", ctx, budget.ID).Return(budget, nil)
	f.cache.On("Get", ctx, key).Return(nil, cache.ErrMiss).Once()
	f.cache.On("Set", ctx, key, mock.AnythingOfType("[]uint8")).Return(nil).Once()
	f.sink.On("Save", ctx, "Orcamento_Pastelaria-Sao-Joao_12.pdf", mock.AnythingOfType("[]uint8")).
		Return("/archive/Orcamento_Pastelaria-Sao-Joao_12.pdf", nil)

	result, err := f.svc.GenerateBudgetPDF(ctx, technician(), budget.ID)
	require.NoError(t, err)
	assert.Equal(t, "Orcamento_Pastelaria-Sao-Joao_12.pdf", result.FileName)
	assert.Equal(t, ContentTypePDF, result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Content, []byte("%PDF-")))
	assert.Contains(t, string(result.Content), "gina 1/1)")
	assert.Equal(t, "/archive/Orcamento_Pastelaria-Sao-Joao_12.pdf", result.ArchivePath)
	f.cache.AssertExpectations(t)
	f.sink.AssertExpectations(t)
}

func TestGenerateBudgetPDFServesCachedCopy(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	budget := savedBudget()
	cached := []byte("%PDF-cached")

	f.budgets.On("GetBudget", ctx, budget.ID).Return(budget, nil)
	f.cache.On("Get", ctx, cache.BudgetPDFKey(budget.ID)).Return(cached, nil)

	result, err := f.svc.GenerateBudgetPDF(ctx, technician(), budget.ID)
	require.NoError(t, err)
	assert.Equal(t, cached, result.Content)
	f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	f.sink.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateBudgetPDFEvictsCorruptCachedCopy(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	budget := savedBudget()
	key := cache.BudgetPDFKey(budget.ID)

	f.budgets.On("GetBudget", ctx, budget.ID).Return(budget, nil)
	f.cache.On("Get", ctx, key).Return([]byte("truncated"), nil).Once()
	f.cache.On("Delete", ctx, key).Return(nil).Once()
	f.cache.On("Set", ctx, key, mock.AnythingOfType("[]uint8")).Return(nil).Once()
	f.sink.On("Save", ctx, mock.Anything, mock.Anything).Return("/archive/x.pdf", nil)

	result, err := f.svc.GenerateBudgetPDF(ctx, technician(), budget.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(result.Content, []byte("%PDF-")))
	assert.Contains(t, f.logs.String(), "evicting corrupt cached budget pdf")
	f.cache.AssertExpectations(t)
}

func TestGenerateBudgetPDFToleratesCacheFailure(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	ctx := context.Background()
	budget := savedBudget()

	f.budgets.On("GetBudget", ctx, budget.ID).Return(budget, nil)
	f.cache.On("Get", ctx, mock.Anything).Return(nil, errors.New("connection refused"))
	f.cache.On("Set", ctx, mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	f.sink.On("Save", ctx, mock.Anything, mock.Anything).Return("", errors.New("disk full"))

	result, err := f.svc.GenerateBudgetPDF(ctx, technician(), budget.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Content)
	assert.Empty(t, result.ArchivePath)
	assert.Contains(t, f.logs.String(), "budget pdf cache lookup failed")
	assert.Contains(t, f.logs.String(), "archive failed")
}

func TestGenerateBudgetPDFNotFound(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	id := uuid.New()
	f.budgets.On("GetBudget", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.GenerateBudgetPDF(context.Background(), technician(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func orderFixture(f *fixture, sessions int) uuid.UUID {
	orderID, clientID := uuid.New(), uuid.New()
	f.orders.On("GetOrder", mock.Anything, orderID).Return(&model.Order{
		ID:       orderID,
		Number:   41,
		ClientID: clientID,
		Status:   model.OrderStatusOpen,
		Priority: model.PriorityNormal,
	}, nil)
	f.clients.On("GetClient", mock.Anything, clientID).Return(&model.Client{ID: clientID, Name: "Hotel Mar"}, nil)

	list := make([]model.WorkSession, 0, sessions)
	for i := 0; i < sessions; i++ {
		list = append(list, model.WorkSession{
			Date:       time.Date(2024, 5, 1+i%28, 0, 0, 0, 0, time.UTC),
			WorkStart:  "08:00",
			WorkEnd:    "12:00",
			OutboundKm: "10",
		})
	}
	f.sessions.On("ListWorkSessions", mock.Anything, orderID).Return(list, nil)
	return orderID
}

func TestGenerateOrderPDF(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	orderID := orderFixture(f, 40)
	f.svc.logo = staticLogo{err: errors.New("no such file")}
	f.sink.On("Save", mock.Anything, "OrdemServico_Hotel-Mar_41.pdf", mock.Anything).Return("", nil)

	result, err := f.svc.GenerateOrderPDF(context.Background(), technician(), orderID)
	require.NoError(t, err)
	assert.Equal(t, "OrdemServico_Hotel-Mar_41.pdf", result.FileName)
	assert.Contains(t, string(result.Content), "(160:00)")
	assert.Contains(t, f.logs.String(), "logo unavailable")
	f.clients.AssertNotCalled(t, "GetEquipment", mock.Anything, mock.Anything)
}

func TestExportWorkdays(t *testing.T) {
	f := newFixture(t, timecalc.PauseClamp)
	orderID := orderFixture(f, 3)
	f.sink.On("Save", mock.Anything, "Dias_Hotel-Mar_41.xlsx", mock.Anything).Return("", nil)

	result, err := f.svc.ExportWorkdays(context.Background(), technician(), orderID)
	require.NoError(t, err)
	assert.Equal(t, "Dias_Hotel-Mar_41.xlsx", result.FileName)
	assert.Equal(t, ContentTypeXLSX, result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Content, []byte("PK")))
}
