package trainingService

import (
	"EnergyPalace/internal/api/training"
	"EnergyPalace/internal/entity"
	"EnergyPalace/pkg/kv"
	"EnergyPalace/pkg/speech"
	"EnergyPalace/pkg/utils"
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// storageKey is the fixed key under which the whole catalog is persisted.
const storageKey = "voice:training:commands"

const (
	newTemplateConfidence = 0.5
	trainStep             = 0.05
	maxConfidence         = 0.95
)

type ITrainingService interface {
	GetCommands(ctx context.Context) ([]entity.CommandTemplate, error)
	GetActiveCommands(ctx context.Context) ([]entity.CommandTemplate, error)
	AddCommand(ctx context.Context, req training.AddCommandRequest) (entity.CommandTemplate, error)
	DeleteCommand(ctx context.Context, id string) error
	ToggleCommand(ctx context.Context, id string) (entity.CommandTemplate, error)
	AddExample(ctx context.Context, id string, language string, text string) error
	TrainCommand(ctx context.Context, id string, language string) (entity.TrainingSession, error)
	GetSession(ctx context.Context) (entity.TrainingSession, bool)
	TestCommand(ctx context.Context, id string, language string) (string, error)
}

type trainingService struct {
	log     *logrus.Logger
	store   kv.IKV
	trainer speech.ItfTrainer
	speaker speech.ItfSynthesizer
	utils   utils.IUtils

	mu         sync.Mutex
	catalog    []entity.CommandTemplate
	loaded     bool
	isTraining bool
	session    *entity.TrainingSession
}

func NewTrainingService(
	log *logrus.Logger,
	store kv.IKV,
	trainer speech.ItfTrainer,
	speaker speech.ItfSynthesizer,
	utils utils.IUtils,
) ITrainingService {
	return &trainingService{
		log:     log,
		store:   store,
		trainer: trainer,
		speaker: speaker,
		utils:   utils,
	}
}
