package posService

import (
	"EnergyPalace/internal/api/pos"
	sheetService "EnergyPalace/internal/api/sheet/service"
	"EnergyPalace/internal/entity"
	"EnergyPalace/pkg/kv"
	"EnergyPalace/pkg/sheets"
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	cartKey = "pos:carts"

	// productCacheTTL bounds how stale the in-memory product list may get
	// before the sheet backend is consulted again.
	productCacheTTL = 5 * time.Minute

	defaultPayMode     = "Cash"
	defaultRatePerPct  = 4.5
	defaultRatePerUnit = 15.0
)

type IPosService interface {
	GetProducts(ctx context.Context, forceRefresh bool) (pos.ProductListResponse, error)
	FindProduct(ctx context.Context, spoken string) (entity.Product, bool, error)
	GetInsights(ctx context.Context) ([][]string, error)

	GetCarts(ctx context.Context) (pos.CartState, error)
	AddOrder(ctx context.Context) (pos.CartState, error)
	RemoveOrder(ctx context.Context, index int) (pos.CartState, error)
	SwitchOrder(ctx context.Context, index int) (pos.CartState, error)
	AddToCart(ctx context.Context, name string, qty int) (pos.CartState, error)
	RemoveFromCart(ctx context.Context, name string) (pos.CartState, error)
	UpdateQuantity(ctx context.Context, name string, qty int) (pos.CartState, error)
	SetPayMode(ctx context.Context, mode string) (pos.CartState, error)

	SubmitOrder(ctx context.Context) (pos.CartState, error)
	SubmitExpense(ctx context.Context, req pos.SubmitExpenseRequest) (entity.ExpenseRecord, error)
	SubmitDeposit(ctx context.Context, req pos.SubmitDepositRequest) (entity.DepositRecord, error)
	SubmitCharging(ctx context.Context, req pos.SubmitChargingRequest) (entity.ChargingRecord, error)
}

type productCache struct {
	sheetID   string
	products  []entity.Product
	fetchedAt time.Time
}

type posService struct {
	log    *logrus.Logger
	store  kv.IKV
	client sheets.ItfSheets
	sheet  sheetService.ISheetService

	ratePerPct  float64
	ratePerUnit float64

	// calcSheetID points at the published calculations sheet used as the
	// CSV-export fallback when the web app cannot serve insights.
	calcSheetID string

	mu     sync.Mutex
	cache  productCache
	carts  pos.CartState
	loaded bool
}

func NewPosService(
	log *logrus.Logger,
	store kv.IKV,
	client sheets.ItfSheets,
	sheet sheetService.ISheetService,
) IPosService {
	return &posService{
		log:         log,
		store:       store,
		client:      client,
		sheet:       sheet,
		ratePerPct:  envFloat("CHARGING_RATE_PER_PERCENT", defaultRatePerPct),
		ratePerUnit: envFloat("CHARGING_RATE_PER_UNIT", defaultRatePerUnit),
		calcSheetID: os.Getenv("INSIGHTS_SHEET_ID"),
	}
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}
