package service

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/fieldops-docs/internal/model"
	"github.com/nurpe/fieldops-docs/internal/pdf"
	"github.com/nurpe/fieldops-docs/internal/timecalc"
	"github.com/nurpe/fieldops-docs/internal/workday"
)

type ClientStore interface {
	CreateClient(ctx context.Context, client *model.Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error)
	ListClients(ctx context.Context) ([]model.Client, error)
	CreateEquipment(ctx context.Context, equipment *model.Equipment) error
	GetEquipment(ctx context.Context, id uuid.UUID) (*model.Equipment, error)
	ListEquipment(ctx context.Context, clientID uuid.UUID) ([]model.Equipment, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	UpdateOrder(ctx context.Context, order *model.Order) error
	CloseOrder(ctx context.Context, id uuid.UUID, result string, closedAt time.Time) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

type WorkSessionStore interface {
	CreateWorkSession(ctx context.Context, session *model.WorkSession) error
	ListWorkSessions(ctx context.Context, orderID uuid.UUID) ([]model.WorkSession, error)
	DeleteWorkSession(ctx context.Context, orderID, id uuid.UUID) error
}

type BudgetStore interface {
	CreateBudget(ctx context.Context, budget *model.Budget) error
	GetBudget(ctx context.Context, id uuid.UUID) (*model.Budget, error)
	ListBudgets(ctx context.Context, orderID *uuid.UUID) ([]model.Budget, error)
}

type PDFGenerator interface {
	Budget(in pdf.BudgetInput) (*pdf.Document, error)
	ServiceOrder(in pdf.OrderInput) (*pdf.Document, error)
}

type ExcelGenerator interface {
	Workdays(doc model.OrderDocument, totals workday.Totals) ([]byte, error)
}

type DocumentCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

type FileSink interface {
	Save(ctx context.Context, name string, content []byte) (string, error)
}

type LogoSource interface {
	Logo() ([]byte, error)
}

// FileLogo reads the logo from disk on every call so a replaced file is
// picked up without a restart. An empty path means no logo.
type FileLogo string

func (p FileLogo) Logo() ([]byte, error) {
	if p == "" {
		return nil, nil
	}
	return os.ReadFile(string(p))
}

type Settings struct {
	DefaultTaxRate float64
	PausePolicy    timecalc.PausePolicy
}

type Deps struct {
	Clients  ClientStore
	Orders   OrderStore
	Sessions WorkSessionStore
	Budgets  BudgetStore
	PDF      PDFGenerator
	Excel    ExcelGenerator
	Cache    DocumentCache
	Sink     FileSink
	Logo     LogoSource
}

type DocumentService struct {
	clients  ClientStore
	orders   OrderStore
	sessions WorkSessionStore
	budgets  BudgetStore
	pdf      PDFGenerator
	excel    ExcelGenerator
	cache    DocumentCache
	sink     FileSink
	logo     LogoSource
	settings Settings
	log      zerolog.Logger
	now      func() time.Time
}

func NewDocumentService(deps Deps, settings Settings, log zerolog.Logger) *DocumentService {
	if deps.Logo == nil {
		deps.Logo = FileLogo("")
	}
	return &DocumentService{
		clients:  deps.Clients,
		orders:   deps.Orders,
		sessions: deps.Sessions,
		budgets:  deps.Budgets,
		pdf:      deps.PDF,
		excel:    deps.Excel,
		cache:    deps.Cache,
		sink:     deps.Sink,
		logo:     deps.Logo,
		settings: settings,
		log:      log,
		now:      time.Now,
	}
}

func authorize(p model.Principal) error {
	if p.UserID == uuid.Nil || !(p.IsAdmin() || p.IsTechnician()) {
		return ErrPermissionDenied
	}
	return nil
}
