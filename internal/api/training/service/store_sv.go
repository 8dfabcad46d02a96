package trainingService

import (
	"EnergyPalace/internal/api/training"
	"EnergyPalace/internal/entity"
	"EnergyPalace/pkg/kv"
	"EnergyPalace/pkg/nlp"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *trainingService) GetCommands(ctx context.Context) ([]entity.CommandTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	out := make([]entity.CommandTemplate, len(s.catalog))
	copy(out, s.catalog)
	return out, nil
}

// GetActiveCommands is the parser-facing view of the catalog: inactive
// templates are retained but never offered as match candidates.
func (s *trainingService) GetActiveCommands(ctx context.Context) ([]entity.CommandTemplate, error) {
	all, err := s.GetCommands(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]entity.CommandTemplate, 0, len(all))
	for _, cmd := range all {
		if cmd.IsActive {
			active = append(active, cmd)
		}
	}
	return active, nil
}

func (s *trainingService) AddCommand(ctx context.Context, req training.AddCommandRequest) (entity.CommandTemplate, error) {
	phrase := strings.TrimSpace(req.Phrase)
	if phrase == "" {
		return entity.CommandTemplate{}, training.ErrEmptyPhrase
	}

	examples := trimmed(req.Examples)
	examplesNe := trimmed(req.ExamplesNe)
	if len(examples) == 0 && len(examplesNe) == 0 {
		return entity.CommandTemplate{}, training.ErrNoExamples
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return entity.CommandTemplate{}, err
	}

	cmd := entity.CommandTemplate{
		ID:         id,
		Phrase:     phrase,
		PhraseNe:   strings.TrimSpace(req.PhraseNe),
		Intent:     req.Intent,
		Parameters: req.Parameters,
		Examples:   examples,
		ExamplesNe: examplesNe,
		Confidence: newTemplateConfidence,
		IsActive:   true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return entity.CommandTemplate{}, err
	}

	s.catalog = append(s.catalog, cmd)
	if err := s.persist(ctx); err != nil {
		return entity.CommandTemplate{}, err
	}

	return cmd, nil
}

func (s *trainingService) DeleteCommand(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	kept := s.catalog[:0]
	found := false
	for _, cmd := range s.catalog {
		if cmd.ID == id {
			found = true
			continue
		}
		kept = append(kept, cmd)
	}
	if !found {
		return training.ErrCommandNotFound
	}

	s.catalog = kept
	return s.persist(ctx)
}

func (s *trainingService) ToggleCommand(ctx context.Context, id string) (entity.CommandTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return entity.CommandTemplate{}, err
	}

	for i := range s.catalog {
		if s.catalog[i].ID != id {
			continue
		}
		s.catalog[i].IsActive = !s.catalog[i].IsActive
		if err := s.persist(ctx); err != nil {
			return entity.CommandTemplate{}, err
		}
		return s.catalog[i], nil
	}

	return entity.CommandTemplate{}, training.ErrCommandNotFound
}

func (s *trainingService) AddExample(ctx context.Context, id string, language string, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return training.ErrEmptyExample
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	for i := range s.catalog {
		if s.catalog[i].ID != id {
			continue
		}
		if language == nlp.LanguageNepali {
			s.catalog[i].ExamplesNe = append(s.catalog[i].ExamplesNe, text)
		} else {
			s.catalog[i].Examples = append(s.catalog[i].Examples, text)
		}
		return s.persist(ctx)
	}

	return training.ErrCommandNotFound
}

func (s *trainingService) TestCommand(ctx context.Context, id string, language string) (string, error) {
	s.mu.Lock()

	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return "", err
	}

	var example string
	found := false
	for _, cmd := range s.catalog {
		if cmd.ID != id {
			continue
		}
		found = true
		if language == nlp.LanguageNepali && len(cmd.ExamplesNe) > 0 {
			example = cmd.ExamplesNe[0]
		} else if len(cmd.Examples) > 0 {
			example = cmd.Examples[0]
		} else if len(cmd.ExamplesNe) > 0 {
			example = cmd.ExamplesNe[0]
		}
		break
	}
	s.mu.Unlock()

	if !found {
		return "", training.ErrCommandNotFound
	}

	if example != "" {
		if err := s.speaker.Speak(ctx, example, language); err != nil {
			s.log.WithFields(logrus.Fields{
				"command_id": id,
				"error":      err.Error(),
			}).Debug("Speech synthesis unavailable for test playback")
		}
	}

	return example, nil
}

// ensureLoaded reads the persisted catalog, seeding and persisting the
// defaults on first run. Callers must hold s.mu.
func (s *trainingService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	raw, err := s.store.Get(ctx, storageKey)
	if errors.Is(err, kv.ErrNotFound) {
		s.catalog = defaultTemplates()
		s.loaded = true
		return s.persist(ctx)
	}
	if err != nil {
		return err
	}

	var catalog []entity.CommandTemplate
	if err := json.Unmarshal([]byte(raw), &catalog); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Stored training catalog is corrupt, reseeding defaults")
		s.catalog = defaultTemplates()
		s.loaded = true
		return s.persist(ctx)
	}

	s.catalog = catalog
	s.loaded = true
	return nil
}

// persist writes the whole catalog before the mutation returns. On failure the
// in-memory state keeps the optimistic update; the next successful write
// reconverges. Callers must hold s.mu.
func (s *trainingService) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.catalog)
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, storageKey, string(raw)); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to persist training catalog")
		return err
	}

	return nil
}

func trimmed(in []string) []string {
	var out []string
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func defaultTemplates() []entity.CommandTemplate {
	return []entity.CommandTemplate{
		{
			ID:         "1",
			Phrase:     "Order {quantity} {item}",
			PhraseNe:   "{quantity} {item} अर्डर गर्नुहोस्",
			Intent:     entity.IntentOrder,
			Parameters: map[string]string{"quantity": "number", "item": "string"},
			Examples: []string{
				"Order 2 cups of tea",
				"Order one sandwich",
				"Add 3 burgers to cart",
			},
			ExamplesNe: []string{
				"दुई कप चिया अर्डर गर्नुहोस्",
				"एक स्यान्डविच अर्डर गर्नुहोस्",
				"तीन बर्गर कार्टमा थप्नुहोस्",
			},
			Confidence: 0.9,
			IsActive:   true,
		},
		{
			ID:         "2",
			Phrase:     "Add expense of {amount} for {description}",
			PhraseNe:   "{description} को लागि {amount} खर्च थप्नुहोस्",
			Intent:     entity.IntentExpense,
			Parameters: map[string]string{"amount": "number", "description": "string"},
			Examples: []string{
				"Add expense of 500 for electricity",
				"Record expense 1000 rupees for rent",
				"Spent 250 on fuel",
			},
			ExamplesNe: []string{
				"बिजुलीको लागि ५०० खर्च थप्नुहोस्",
				"भाडाको लागि १००० रुपैयाँ खर्च रेकर्ड गर्नुहोस्",
				"इन्धनमा २५० खर्च भयो",
			},
			Confidence: 0.85,
			IsActive:   true,
		},
		{
			ID:         "3",
			Phrase:     "Record deposit of {amount} via {method}",
			PhraseNe:   "{method} मार्फत {amount} जम्मा रेकर्ड गर्नुहोस्",
			Intent:     entity.IntentDeposit,
			Parameters: map[string]string{"amount": "number", "method": "string"},
			Examples: []string{
				"Record deposit of 1000 via Fonepay",
				"Add deposit 500 rupees cash",
				"Received 2000 through Esewa",
			},
			ExamplesNe: []string{
				"फोनपे मार्फत १००० जम्मा रेकर्ड गर्नुहोस्",
				"नगदमा ५०० रुपैयाँ जम्मा थप्नुहोस्",
				"इसेवा मार्फत २००० प्राप्त भयो",
			},
			Confidence: 0.8,
			IsActive:   true,
		},
		{
			ID:         "4",
			Phrase:     "Start charging from {start} to {end} percent",
			PhraseNe:   "{start} देखि {end} प्रतिशत चार्जिङ सुरु गर्नुहोस्",
			Intent:     entity.IntentCharging,
			Parameters: map[string]string{"start": "number", "end": "number"},
			Examples: []string{
				"Start charging from 20 to 80 percent",
				"Charge from 50 to 100 percent",
				"Begin charging 30 to 90 percent",
			},
			ExamplesNe: []string{
				"२० देखि ८० प्रतिशत चार्जिङ सुरु गर्नुहोस्",
				"५० देखि १०० प्रतिशत चार्ज गर्नुहोस्",
				"३० देखि ९० प्रतिशत चार्जिङ सुरु गर्नुहोस्",
			},
			Confidence: 0.85,
			IsActive:   true,
		},
	}
}
