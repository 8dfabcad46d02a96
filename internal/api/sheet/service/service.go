package sheetService

import (
	"EnergyPalace/internal/entity"
	"EnergyPalace/pkg/kv"
	"EnergyPalace/pkg/sheets"
	"EnergyPalace/pkg/utils"
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	catalogKey = "sheets:catalog"
	activeKey  = "sheets:active"

	// mainSheetID is the built-in sheet every deployment starts with.
	// It cannot be removed, only deactivated by activating another.
	mainSheetID   = "energy-palace-main"
	mainSheetName = "Energy Palace Main"

	// productSnapshotPrefix must match the key the point of sale persists
	// its offline product copies under.
	productSnapshotPrefix = "pos:products:"
)

type ISheetService interface {
	GetSheets(ctx context.Context) ([]entity.Sheet, error)
	GetActive(ctx context.Context) (entity.Sheet, error)
	AddSheet(ctx context.Context, name string, url string) (entity.Sheet, error)
	RemoveSheet(ctx context.Context, id string) error
	ActivateSheet(ctx context.Context, id string) (entity.Sheet, error)
	TestSheet(ctx context.Context, id string) error
}

type sheetService struct {
	log    *logrus.Logger
	store  kv.IKV
	client sheets.ItfSheets
	utils  utils.IUtils

	// mainURL comes from configuration and seeds the built-in sheet.
	mainURL string

	mu      sync.Mutex
	catalog []entity.Sheet
	loaded  bool
}

func NewSheetService(
	log *logrus.Logger,
	store kv.IKV,
	client sheets.ItfSheets,
	utils utils.IUtils,
	mainURL string,
) ISheetService {
	return &sheetService{
		log:     log,
		store:   store,
		client:  client,
		utils:   utils,
		mainURL: mainURL,
	}
}
