package sheetService

import (
	"EnergyPalace/internal/api/sheet"
	"EnergyPalace/internal/entity"
	"EnergyPalace/pkg/kv"
	"EnergyPalace/pkg/utils"
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

type fakeSheets struct {
	connectErr error
}

func (f *fakeSheets) GetProducts(ctx context.Context, baseURL string) ([]entity.Product, error) {
	return nil, nil
}

func (f *fakeSheets) GetInsights(ctx context.Context, baseURL string) ([][]string, error) {
	return nil, nil
}

func (f *fakeSheets) SubmitOrder(ctx context.Context, baseURL string, date string, item entity.CartItem, payMode string) error {
	return nil
}

func (f *fakeSheets) SubmitExpense(ctx context.Context, baseURL string, rec entity.ExpenseRecord) error {
	return nil
}

func (f *fakeSheets) SubmitDeposit(ctx context.Context, baseURL string, rec entity.DepositRecord) error {
	return nil
}

func (f *fakeSheets) SubmitCharging(ctx context.Context, baseURL string, rec entity.ChargingRecord) error {
	return nil
}

func (f *fakeSheets) TestConnection(ctx context.Context, baseURL string) error {
	return f.connectErr
}

func (f *fakeSheets) ExportCSV(ctx context.Context, sheetID string) ([][]string, error) {
	return nil, nil
}

func newTestSheetService(store kv.IKV, client *fakeSheets) ISheetService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	if client == nil {
		client = &fakeSheets{}
	}
	return NewSheetService(logger, store, client, utils.New(), "https://script.example/main")
}

func TestSeedsMainSheet(t *testing.T) {
	svc := newTestSheetService(newMemKV(), nil)

	sheets, err := svc.GetSheets(context.Background())
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	assert.Equal(t, mainSheetID, sheets[0].ID)
	assert.Equal(t, "https://script.example/main", sheets[0].URL)
	assert.True(t, sheets[0].IsActive)

	active, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mainSheetID, active.ID)
}

func TestAddSheetStartsInactive(t *testing.T) {
	svc := newTestSheetService(newMemKV(), nil)

	added, err := svc.AddSheet(context.Background(), "Branch", "https://script.example/branch")
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.False(t, added.IsActive)

	active, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mainSheetID, active.ID)
}

func TestAddSheetRejectsDuplicateName(t *testing.T) {
	svc := newTestSheetService(newMemKV(), nil)

	_, err := svc.AddSheet(context.Background(), "Branch", "https://script.example/branch")
	require.NoError(t, err)

	_, err = svc.AddSheet(context.Background(), "branch", "https://script.example/other")
	assert.ErrorIs(t, err, sheet.ErrDuplicateSheetName)
}

func TestActivateSheetDropsSupersededSnapshot(t *testing.T) {
	store := newMemKV()
	require.NoError(t, store.Set(context.Background(), productSnapshotPrefix+mainSheetID, `[{"name":"Milk Tea"}]`))

	svc := newTestSheetService(store, nil)

	added, err := svc.AddSheet(context.Background(), "Branch", "https://script.example/branch")
	require.NoError(t, err)

	_, err = svc.ActivateSheet(context.Background(), added.ID)
	require.NoError(t, err)

	// The old active sheet's offline product copy is gone.
	_, err = store.Get(context.Background(), productSnapshotPrefix+mainSheetID)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestActivateSheet(t *testing.T) {
	svc := newTestSheetService(newMemKV(), nil)

	added, err := svc.AddSheet(context.Background(), "Branch", "https://script.example/branch")
	require.NoError(t, err)

	activated, err := svc.ActivateSheet(context.Background(), added.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	active, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, added.ID, active.ID)

	_, err = svc.ActivateSheet(context.Background(), "missing")
	assert.ErrorIs(t, err, sheet.ErrSheetNotFound)
}

func TestRemoveSheetProtectsMain(t *testing.T) {
	svc := newTestSheetService(newMemKV(), nil)

	err := svc.RemoveSheet(context.Background(), mainSheetID)
	assert.ErrorIs(t, err, sheet.ErrSheetProtected)
}

func TestRemoveActiveSheetFallsBackToMain(t *testing.T) {
	svc := newTestSheetService(newMemKV(), nil)

	added, err := svc.AddSheet(context.Background(), "Branch", "https://script.example/branch")
	require.NoError(t, err)
	_, err = svc.ActivateSheet(context.Background(), added.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveSheet(context.Background(), added.ID))

	active, err := svc.GetActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mainSheetID, active.ID)
}

func TestRemoveUnknownSheet(t *testing.T) {
	svc := newTestSheetService(newMemKV(), nil)

	assert.ErrorIs(t, svc.RemoveSheet(context.Background(), "missing"), sheet.ErrSheetNotFound)
}

func TestCatalogSurvivesRestart(t *testing.T) {
	store := newMemKV()

	first := newTestSheetService(store, nil)
	added, err := first.AddSheet(context.Background(), "Branch", "https://script.example/branch")
	require.NoError(t, err)
	_, err = first.ActivateSheet(context.Background(), added.ID)
	require.NoError(t, err)

	second := newTestSheetService(store, nil)
	active, err := second.GetActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, added.ID, active.ID)
}

func TestTestSheet(t *testing.T) {
	okClient := &fakeSheets{}
	svc := newTestSheetService(newMemKV(), okClient)
	assert.NoError(t, svc.TestSheet(context.Background(), mainSheetID))

	badClient := &fakeSheets{connectErr: errors.New("timeout")}
	svc = newTestSheetService(newMemKV(), badClient)
	assert.ErrorIs(t, svc.TestSheet(context.Background(), mainSheetID), sheet.ErrSheetUnreachable)

	assert.ErrorIs(t, svc.TestSheet(context.Background(), "missing"), sheet.ErrSheetNotFound)
}
