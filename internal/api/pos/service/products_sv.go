package posService

import (
	"EnergyPalace/internal/api/pos"
	"EnergyPalace/internal/entity"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *posService) GetProducts(ctx context.Context, forceRefresh bool) (pos.ProductListResponse, error) {
	active, err := s.sheet.GetActive(ctx)
	if err != nil {
		return pos.ProductListResponse{}, err
	}

	s.mu.Lock()
	fresh := s.cache.sheetID == active.ID &&
		time.Since(s.cache.fetchedAt) < productCacheTTL &&
		len(s.cache.products) > 0
	if fresh && !forceRefresh {
		resp := pos.ProductListResponse{
			Products: append([]entity.Product(nil), s.cache.products...),
			SheetID:  active.ID,
			Cached:   true,
		}
		s.mu.Unlock()
		return resp, nil
	}
	s.mu.Unlock()

	products, err := s.client.GetProducts(ctx, active.URL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"sheet_id": active.ID,
			"error":    err.Error(),
		}).Warn("Product fetch failed, trying persisted copy")

		cached, cacheErr := s.loadPersistedProducts(ctx, active.ID)
		if cacheErr != nil {
			return pos.ProductListResponse{}, pos.ErrProductsFetch
		}
		return pos.ProductListResponse{
			Products: cached,
			SheetID:  active.ID,
			Cached:   true,
		}, nil
	}

	s.mu.Lock()
	s.cache = productCache{
		sheetID:   active.ID,
		products:  products,
		fetchedAt: time.Now(),
	}
	s.mu.Unlock()

	s.persistProducts(ctx, active.ID, products)

	return pos.ProductListResponse{
		Products: products,
		SheetID:  active.ID,
		Cached:   false,
	}, nil
}

// FindProduct resolves a spoken item name against the catalog. A product
// matches when either name contains the other, ignoring case. The first
// match in catalog order wins.
func (s *posService) FindProduct(ctx context.Context, spoken string) (entity.Product, bool, error) {
	resp, err := s.GetProducts(ctx, false)
	if err != nil {
		return entity.Product{}, false, err
	}

	needle := strings.ToLower(strings.TrimSpace(spoken))
	if needle == "" {
		return entity.Product{}, false, nil
	}

	for _, p := range resp.Products {
		name := strings.ToLower(p.Name)
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return p, true, nil
		}
	}

	return entity.Product{}, false, nil
}

func (s *posService) GetInsights(ctx context.Context) ([][]string, error) {
	active, err := s.sheet.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.client.GetInsights(ctx, active.URL)
	if err == nil {
		return rows, nil
	}

	s.log.WithFields(logrus.Fields{
		"sheet_id": active.ID,
		"error":    err.Error(),
	}).Warn("Insights fetch failed")

	// The published calculations sheet stays readable through the CSV
	// export even when the web app is down.
	if s.calcSheetID != "" {
		rows, exportErr := s.client.ExportCSV(ctx, s.calcSheetID)
		if exportErr == nil {
			return rows, nil
		}
		s.log.WithFields(logrus.Fields{
			"calc_sheet_id": s.calcSheetID,
			"error":         exportErr.Error(),
		}).Warn("Insights CSV export fallback failed")
	}

	return nil, pos.ErrInsightsFetch
}

func (s *posService) loadPersistedProducts(ctx context.Context, sheetID string) ([]entity.Product, error) {
	raw, err := s.store.Get(ctx, "pos:products:"+sheetID)
	if err != nil {
		return nil, err
	}

	var products []entity.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// persistProducts is best effort. A write failure only means the next cold
// start without connectivity has no offline copy.
func (s *posService) persistProducts(ctx context.Context, sheetID string, products []entity.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, "pos:products:"+sheetID, string(raw)); err != nil {
		s.log.WithFields(logrus.Fields{
			"sheet_id": sheetID,
			"error":    err.Error(),
		}).Debug("Could not persist product snapshot")
	}
}
