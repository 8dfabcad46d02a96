package posService

import (
	"EnergyPalace/internal/api/pos"
	"EnergyPalace/internal/entity"
	"EnergyPalace/pkg/kv"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return value, nil
}

func (m *memKV) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type submittedOrder struct {
	item    entity.CartItem
	payMode string
}

type fakeSheets struct {
	mu       sync.Mutex
	products []entity.Product
	fetchErr error

	insightsErr error
	exportRows  [][]string
	exportErr   error

	orderStarted chan struct{}
	orderBlock   chan struct{}
	startOnce    sync.Once

	orders    []submittedOrder
	expenses  []entity.ExpenseRecord
	deposits  []entity.DepositRecord
	chargings []entity.ChargingRecord
	fetches   int
}

func (f *fakeSheets) GetProducts(ctx context.Context, baseURL string) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.products, nil
}

func (f *fakeSheets) GetInsights(ctx context.Context, baseURL string) ([][]string, error) {
	if f.insightsErr != nil {
		return nil, f.insightsErr
	}
	return [][]string{{"BEP", "120"}}, nil
}

func (f *fakeSheets) SubmitOrder(ctx context.Context, baseURL string, date string, item entity.CartItem, payMode string) error {
	if f.orderStarted != nil {
		f.startOnce.Do(func() { close(f.orderStarted) })
	}
	if f.orderBlock != nil {
		<-f.orderBlock
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, submittedOrder{item: item, payMode: payMode})
	return nil
}

func (f *fakeSheets) SubmitExpense(ctx context.Context, baseURL string, rec entity.ExpenseRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expenses = append(f.expenses, rec)
	return nil
}

func (f *fakeSheets) SubmitDeposit(ctx context.Context, baseURL string, rec entity.DepositRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deposits = append(f.deposits, rec)
	return nil
}

func (f *fakeSheets) SubmitCharging(ctx context.Context, baseURL string, rec entity.ChargingRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chargings = append(f.chargings, rec)
	return nil
}

func (f *fakeSheets) TestConnection(ctx context.Context, baseURL string) error {
	return nil
}

func (f *fakeSheets) ExportCSV(ctx context.Context, sheetID string) ([][]string, error) {
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return f.exportRows, nil
}

type fakeSheetService struct {
	active entity.Sheet
}

func (f *fakeSheetService) GetSheets(ctx context.Context) ([]entity.Sheet, error) {
	return []entity.Sheet{f.active}, nil
}

func (f *fakeSheetService) GetActive(ctx context.Context) (entity.Sheet, error) {
	return f.active, nil
}

func (f *fakeSheetService) AddSheet(ctx context.Context, name string, url string) (entity.Sheet, error) {
	return entity.Sheet{}, nil
}

func (f *fakeSheetService) RemoveSheet(ctx context.Context, id string) error {
	return nil
}

func (f *fakeSheetService) ActivateSheet(ctx context.Context, id string) (entity.Sheet, error) {
	return entity.Sheet{}, nil
}

func (f *fakeSheetService) TestSheet(ctx context.Context, id string) error {
	return nil
}

func catalog() []entity.Product {
	return []entity.Product{
		{Name: "Milk Tea", Rate: 25, Category: "Drinks"},
		{Name: "Black Coffee", Rate: 40, Category: "Drinks"},
		{Name: "Chicken Burger", Rate: 150, Category: "Food"},
	}
}

func newTestPosService(store kv.IKV, client *fakeSheets) IPosService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	sheetSvc := &fakeSheetService{
		active: entity.Sheet{ID: "main", URL: "https://script.example/main", IsActive: true},
	}
	return NewPosService(logger, store, client, sheetSvc)
}

func TestGetProductsCaches(t *testing.T) {
	client := &fakeSheets{products: catalog()}
	svc := newTestPosService(newMemKV(), client)

	first, err := svc.GetProducts(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Len(t, first.Products, 3)

	second, err := svc.GetProducts(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, client.fetches)
}

func TestGetProductsForceRefresh(t *testing.T) {
	client := &fakeSheets{products: catalog()}
	svc := newTestPosService(newMemKV(), client)

	_, err := svc.GetProducts(context.Background(), false)
	require.NoError(t, err)
	_, err = svc.GetProducts(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 2, client.fetches)
}

func TestGetProductsFallsBackToPersistedCopy(t *testing.T) {
	store := newMemKV()

	online := &fakeSheets{products: catalog()}
	svc := newTestPosService(store, online)
	_, err := svc.GetProducts(context.Background(), false)
	require.NoError(t, err)

	offline := &fakeSheets{fetchErr: errors.New("unreachable")}
	svc = newTestPosService(store, offline)
	resp, err := svc.GetProducts(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, resp.Cached)
	assert.Len(t, resp.Products, 3)
}

func TestGetProductsFetchFailureWithoutCopy(t *testing.T) {
	client := &fakeSheets{fetchErr: errors.New("unreachable")}
	svc := newTestPosService(newMemKV(), client)

	_, err := svc.GetProducts(context.Background(), false)
	assert.ErrorIs(t, err, pos.ErrProductsFetch)
}

func TestFindProductFuzzyMatch(t *testing.T) {
	client := &fakeSheets{products: catalog()}
	svc := newTestPosService(newMemKV(), client)

	// Spoken text contained in the product name.
	p, found, err := svc.FindProduct(context.Background(), "tea")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Milk Tea", p.Name)

	// Product name contained in the spoken text.
	p, found, err = svc.FindProduct(context.Background(), "one large black coffee please")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Black Coffee", p.Name)

	_, found, err = svc.FindProduct(context.Background(), "pizza")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAddToCartMergesQuantities(t *testing.T) {
	client := &fakeSheets{products: catalog()}
	svc := newTestPosService(newMemKV(), client)

	_, err := svc.AddToCart(context.Background(), "tea", 2)
	require.NoError(t, err)
	state, err := svc.AddToCart(context.Background(), "milk tea", 1)
	require.NoError(t, err)

	require.Len(t, state.Orders[0].Items, 1)
	assert.Equal(t, "Milk Tea", state.Orders[0].Items[0].Name)
	assert.Equal(t, 3, state.Orders[0].Items[0].Qty)
	assert.Equal(t, 25.0, state.Orders[0].Items[0].Rate)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	client := &fakeSheets{products: catalog()}
	svc := newTestPosService(newMemKV(), client)

	_, err := svc.AddToCart(context.Background(), "pizza", 1)
	assert.ErrorIs(t, err, pos.ErrProductNotFound)
}

func TestUpdateQuantity(t *testing.T) {
	client := &fakeSheets{products: catalog()}
	svc := newTestPosService(newMemKV(), client)

	_, err := svc.AddToCart(context.Background(), "burger", 1)
	require.NoError(t, err)

	state, err := svc.UpdateQuantity(context.Background(), "Chicken Burger", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, state.Orders[0].Items[0].Qty)

	_, err = svc.UpdateQuantity(context.Background(), "Chicken Burger", 0)
	assert.ErrorIs(t, err, pos.ErrInvalidQuantity)

	_, err = svc.UpdateQuantity(context.Background(), "missing", 2)
	assert.ErrorIs(t, err, pos.ErrItemNotInCart)
}

func TestRemoveFromCart(t *testing.T) {
	client := &fakeSheets{products: catalog()}
	svc := newTestPosService(newMemKV(), client)

	_, err := svc.AddToCart(context.Background(), "tea", 1)
	require.NoError(t, err)

	state, err := svc.RemoveFromCart(context.Background(), "Milk Tea")
	require.NoError(t, err)
	assert.Empty(t, state.Orders[0].Items)

	_, err = svc.RemoveFromCart(context.Background(), "Milk Tea")
	assert.ErrorIs(t, err, pos.ErrItemNotInCart)
}

func TestOrderTabs(t *testing.T) {
	client := &fakeSheets{products: catalog()}
	svc := newTestPosService(newMemKV(), client)

	state, err := svc.AddOrder(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.Orders, 2)
	assert.Equal(t, 1, state.Active)

	state, err = svc.SwitchOrder(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Active)

	_, err = svc.SwitchOrder(context.Background(), 5)
	assert.ErrorIs(t, err, pos.ErrOrderNotFound)

	state, err = svc.RemoveOrder(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, state.Orders, 1)

	_, err = svc.RemoveOrder(context.Background(), 0)
	assert.ErrorIs(t, err, pos.ErrLastOrder)
}

func TestSetPayMode(t *testing.T) {
	client := &fakeSheets{products: catalog()}
	svc := newTestPosService(newMemKV(), client)

	state, err := svc.SetPayMode(context.Background(), "Fonepay")
	require.NoError(t, err)
	assert.Equal(t, "Fonepay", state.Orders[0].PaymentMode)
}

func TestSubmitOrderSendsEveryLineItem(t *testing.T) {
	client := &fakeSheets{products: catalog()}
	svc := newTestPosService(newMemKV(), client)

	_, err := svc.AddToCart(context.Background(), "tea", 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(context.Background(), "burger", 1)
	require.NoError(t, err)
	_, err = svc.SetPayMode(context.Background(), "Esewa")
	require.NoError(t, err)

	state, err := svc.SubmitOrder(context.Background())
	require.NoError(t, err)

	require.Len(t, client.orders, 2)
	for _, o := range client.orders {
		assert.Equal(t, "Esewa", o.payMode)
	}

	// Active tab resets after submission.
	assert.Empty(t, state.Orders[state.Active].Items)
}

func TestSubmitOrderResetsSubmittedTab(t *testing.T) {
	client := &fakeSheets{
		products:     catalog(),
		orderStarted: make(chan struct{}),
		orderBlock:   make(chan struct{}),
	}
	svc := newTestPosService(newMemKV(), client)

	_, err := svc.AddToCart(context.Background(), "tea", 2)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := svc.SubmitOrder(context.Background())
		done <- err
	}()

	<-client.orderStarted

	// The operator opens a fresh tab while the submission is in flight;
	// the reset must land on the tab that was submitted.
	_, err = svc.AddOrder(context.Background())
	require.NoError(t, err)

	close(client.orderBlock)
	require.NoError(t, <-done)

	state, err := svc.GetCarts(context.Background())
	require.NoError(t, err)
	require.Len(t, state.Orders, 2)
	assert.Empty(t, state.Orders[0].Items)
	assert.Equal(t, 1, state.Active)
}

func TestSubmitOrderEmptyCart(t *testing.T) {
	client := &fakeSheets{products: catalog()}
	svc := newTestPosService(newMemKV(), client)

	_, err := svc.SubmitOrder(context.Background())
	assert.ErrorIs(t, err, pos.ErrEmptyCart)
}

func TestSubmitExpenseDefaults(t *testing.T) {
	client := &fakeSheets{}
	svc := newTestPosService(newMemKV(), client)

	rec, err := svc.SubmitExpense(context.Background(), pos.SubmitExpenseRequest{
		Description: "Electricity",
		Amount:      500,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, rec.Date)
	assert.Equal(t, "Cash", rec.PaymentMode)
	assert.Equal(t, "General", rec.Category)
	require.Len(t, client.expenses, 1)

	_, err = svc.SubmitExpense(context.Background(), pos.SubmitExpenseRequest{Description: "x"})
	assert.ErrorIs(t, err, pos.ErrInvalidAmount)
}

func TestSubmitDepositDefaults(t *testing.T) {
	client := &fakeSheets{}
	svc := newTestPosService(newMemKV(), client)

	rec, err := svc.SubmitDeposit(context.Background(), pos.SubmitDepositRequest{Amount: 1000})
	require.NoError(t, err)

	assert.Equal(t, "Cash", rec.Mode)
	assert.Equal(t, "Counter", rec.DepositedBy)
	require.Len(t, client.deposits, 1)
}

func TestSubmitChargingComputesAmount(t *testing.T) {
	client := &fakeSheets{}
	svc := newTestPosService(newMemKV(), client)

	rec, err := svc.SubmitCharging(context.Background(), pos.SubmitChargingRequest{
		StartPercent: 20,
		EndPercent:   80,
		RatePerPct:   5,
		Kcal:         2,
		RatePerUnit:  10,
	})
	require.NoError(t, err)

	// (80-20)*5 + 2*10
	assert.Equal(t, 320.0, rec.Amount)
	require.Len(t, client.chargings, 1)
}

func TestSubmitChargingDefaultsTariffs(t *testing.T) {
	client := &fakeSheets{}
	svc := newTestPosService(newMemKV(), client)

	rec, err := svc.SubmitCharging(context.Background(), pos.SubmitChargingRequest{
		StartPercent: 50,
		EndPercent:   100,
	})
	require.NoError(t, err)

	assert.Equal(t, defaultRatePerPct, rec.RatePerPct)
	assert.Equal(t, defaultRatePerUnit, rec.RatePerUnit)
	assert.Equal(t, 50*defaultRatePerPct, rec.Amount)
}

func TestSubmitChargingRejectsBadRange(t *testing.T) {
	client := &fakeSheets{}
	svc := newTestPosService(newMemKV(), client)

	_, err := svc.SubmitCharging(context.Background(), pos.SubmitChargingRequest{
		StartPercent: 80,
		EndPercent:   20,
	})
	assert.ErrorIs(t, err, pos.ErrInvalidCharging)
}

func TestGetInsights(t *testing.T) {
	client := &fakeSheets{}
	svc := newTestPosService(newMemKV(), client)

	rows, err := svc.GetInsights(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"BEP", "120"}, rows[0])
}

func TestGetInsightsFallsBackToCSVExport(t *testing.T) {
	t.Setenv("INSIGHTS_SHEET_ID", "calc-sheet-doc")

	client := &fakeSheets{
		insightsErr: errors.New("script timeout"),
		exportRows:  [][]string{{"Break Even", "1500"}},
	}
	svc := newTestPosService(newMemKV(), client)

	rows, err := svc.GetInsights(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Break Even", "1500"}, rows[0])
}

func TestGetInsightsFailureWithoutFallback(t *testing.T) {
	t.Setenv("INSIGHTS_SHEET_ID", "")

	client := &fakeSheets{insightsErr: errors.New("script timeout")}
	svc := newTestPosService(newMemKV(), client)

	_, err := svc.GetInsights(context.Background())
	assert.ErrorIs(t, err, pos.ErrInsightsFetch)
}

func TestCartStateSurvivesRestart(t *testing.T) {
	store := newMemKV()
	client := &fakeSheets{products: catalog()}

	first := newTestPosService(store, client)
	_, err := first.AddToCart(context.Background(), "tea", 2)
	require.NoError(t, err)

	second := newTestPosService(store, client)
	state, err := second.GetCarts(context.Background())
	require.NoError(t, err)
	require.Len(t, state.Orders[0].Items, 1)
	assert.Equal(t, 2, state.Orders[0].Items[0].Qty)
}
