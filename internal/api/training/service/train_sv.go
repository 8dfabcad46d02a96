package trainingService

import (
	"EnergyPalace/internal/api/training"
	"EnergyPalace/internal/entity"
	"EnergyPalace/pkg/nlp"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// sessionGrace is how long a finished session stays readable before it is
// cleared, so a client polling GetSession can observe the final status.
const sessionGrace = 2 * time.Second

func (s *trainingService) TrainCommand(ctx context.Context, id string, language string) (entity.TrainingSession, error) {
	s.mu.Lock()

	if s.isTraining {
		s.mu.Unlock()
		return entity.TrainingSession{}, training.ErrTrainingInProgress
	}

	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return entity.TrainingSession{}, err
	}

	idx := -1
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return entity.TrainingSession{}, training.ErrCommandNotFound
	}

	examples := s.catalog[idx].Examples
	if language == nlp.LanguageNepali {
		examples = s.catalog[idx].ExamplesNe
	}
	if len(examples) == 0 {
		s.mu.Unlock()
		return entity.TrainingSession{}, training.ErrNoExamples
	}

	session := entity.TrainingSession{
		CommandID: id,
		Language:  language,
		Status:    entity.TrainingRunning,
		StartedAt: time.Now(),
	}
	s.isTraining = true
	s.session = &session
	s.mu.Unlock()

	trainErr := s.trainer.Train(ctx, id, examples, language)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.isTraining = false

	if trainErr != nil {
		session.Status = entity.TrainingFailed
		s.session = &session
		s.scheduleSessionClear(session)
		s.log.WithFields(logrus.Fields{
			"command_id": id,
			"language":   language,
			"error":      trainErr.Error(),
		}).Error("Training run failed")
		return session, training.ErrTrainingFailed
	}

	// The catalog may have been mutated while the trainer ran, so the
	// template must be located again. It may be gone entirely.
	idx = -1
	for i := range s.catalog {
		if s.catalog[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		session.Status = entity.TrainingFailed
		s.session = &session
		s.scheduleSessionClear(session)
		s.log.WithFields(logrus.Fields{
			"command_id": id,
			"language":   language,
		}).Warn("Template deleted while its training run was in flight")
		return session, training.ErrCommandNotFound
	}

	s.catalog[idx].Confidence += trainStep
	if s.catalog[idx].Confidence > maxConfidence {
		s.catalog[idx].Confidence = maxConfidence
	}

	if err := s.persist(ctx); err != nil {
		s.log.WithFields(logrus.Fields{
			"command_id": id,
		}).Warn("Trained confidence not persisted, will reconverge on next write")
	}

	session.Status = entity.TrainingCompleted
	s.session = &session
	s.scheduleSessionClear(session)

	return session, nil
}

func (s *trainingService) GetSession(ctx context.Context) (entity.TrainingSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return entity.TrainingSession{}, false
	}
	return *s.session, true
}

// scheduleSessionClear drops the finished session after the grace window
// unless a newer run has replaced it. Callers must hold s.mu.
func (s *trainingService) scheduleSessionClear(finished entity.TrainingSession) {
	go func() {
		time.Sleep(sessionGrace)

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.session != nil && *s.session == finished {
			s.session = nil
		}
	}()
}
