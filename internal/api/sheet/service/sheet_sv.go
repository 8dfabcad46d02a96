package sheetService

import (
	"EnergyPalace/internal/api/sheet"
	"EnergyPalace/internal/entity"
	"EnergyPalace/pkg/kv"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *sheetService) GetSheets(ctx context.Context) ([]entity.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	out := make([]entity.Sheet, len(s.catalog))
	copy(out, s.catalog)
	return out, nil
}

func (s *sheetService) GetActive(ctx context.Context) (entity.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return entity.Sheet{}, err
	}

	for _, sh := range s.catalog {
		if sh.IsActive {
			return sh, nil
		}
	}

	// The catalog always contains the main sheet, so an empty active set
	// means state drifted. Repair by reactivating the main sheet.
	for i := range s.catalog {
		if s.catalog[i].ID == mainSheetID {
			s.catalog[i].IsActive = true
			if err := s.persist(ctx); err != nil {
				return entity.Sheet{}, err
			}
			return s.catalog[i], nil
		}
	}

	return entity.Sheet{}, sheet.ErrSheetNotFound
}

func (s *sheetService) AddSheet(ctx context.Context, name string, url string) (entity.Sheet, error) {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return entity.Sheet{}, err
	}

	for _, sh := range s.catalog {
		if strings.EqualFold(sh.Name, name) {
			return entity.Sheet{}, sheet.ErrDuplicateSheetName
		}
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return entity.Sheet{}, err
	}

	added := entity.Sheet{
		ID:       id,
		Name:     name,
		URL:      strings.TrimSpace(url),
		IsActive: false,
	}

	s.catalog = append(s.catalog, added)
	if err := s.persist(ctx); err != nil {
		return entity.Sheet{}, err
	}

	return added, nil
}

func (s *sheetService) RemoveSheet(ctx context.Context, id string) error {
	if id == mainSheetID {
		return sheet.ErrSheetProtected
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	kept := s.catalog[:0]
	removedActive := false
	found := false
	for _, sh := range s.catalog {
		if sh.ID == id {
			found = true
			removedActive = sh.IsActive
			continue
		}
		kept = append(kept, sh)
	}
	if !found {
		return sheet.ErrSheetNotFound
	}

	s.catalog = kept

	// Removing the active sheet falls back to the main sheet so the
	// point of sale never loses its backend.
	if removedActive {
		for i := range s.catalog {
			s.catalog[i].IsActive = s.catalog[i].ID == mainSheetID
		}
	}

	return s.persist(ctx)
}

func (s *sheetService) ActivateSheet(ctx context.Context, id string) (entity.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return entity.Sheet{}, err
	}

	var activated *entity.Sheet
	previousID := ""
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			activated = &s.catalog[i]
		}
		if s.catalog[i].IsActive {
			previousID = s.catalog[i].ID
		}
	}
	if activated == nil {
		return entity.Sheet{}, sheet.ErrSheetNotFound
	}

	for i := range s.catalog {
		s.catalog[i].IsActive = s.catalog[i].ID == id
	}

	if err := s.persist(ctx); err != nil {
		return entity.Sheet{}, err
	}

	// The superseded sheet's product snapshot is stale the moment another
	// sheet takes over; dropping it keeps the offline fallback honest.
	if previousID != "" && previousID != id {
		if err := s.store.Delete(ctx, productSnapshotPrefix+previousID); err != nil {
			s.log.WithFields(logrus.Fields{
				"sheet_id": previousID,
				"error":    err.Error(),
			}).Debug("Could not drop superseded product snapshot")
		}
	}

	return *activated, nil
}

func (s *sheetService) TestSheet(ctx context.Context, id string) error {
	s.mu.Lock()

	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return err
	}

	var url string
	found := false
	for _, sh := range s.catalog {
		if sh.ID == id {
			url = sh.URL
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return sheet.ErrSheetNotFound
	}

	if err := s.client.TestConnection(ctx, url); err != nil {
		s.log.WithFields(logrus.Fields{
			"sheet_id": id,
			"error":    err.Error(),
		}).Warn("Sheet connection test failed")
		return sheet.ErrSheetUnreachable
	}

	return nil
}

// ensureLoaded reads the persisted catalog, seeding the main sheet on first
// run. Callers must hold s.mu.
func (s *sheetService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	raw, err := s.store.Get(ctx, catalogKey)
	if errors.Is(err, kv.ErrNotFound) {
		s.catalog = []entity.Sheet{{
			ID:       mainSheetID,
			Name:     mainSheetName,
			URL:      s.mainURL,
			IsActive: true,
		}}
		s.loaded = true
		return s.persist(ctx)
	}
	if err != nil {
		return err
	}

	var catalog []entity.Sheet
	if err := json.Unmarshal([]byte(raw), &catalog); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Stored sheet catalog is corrupt, reseeding main sheet")
		s.catalog = []entity.Sheet{{
			ID:       mainSheetID,
			Name:     mainSheetName,
			URL:      s.mainURL,
			IsActive: true,
		}}
		s.loaded = true
		return s.persist(ctx)
	}

	s.catalog = catalog
	s.loaded = true
	return nil
}

func (s *sheetService) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.catalog)
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, catalogKey, string(raw)); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to persist sheet catalog")
		return err
	}

	activeID := mainSheetID
	for _, sh := range s.catalog {
		if sh.IsActive {
			activeID = sh.ID
			break
		}
	}

	return s.store.Set(ctx, activeKey, activeID)
}
