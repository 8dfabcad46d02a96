package voiceService

import (
	"EnergyPalace/internal/api/pos"
	"EnergyPalace/internal/api/voice"
	voiceRepository "EnergyPalace/internal/api/voice/repository"
	"EnergyPalace/internal/entity"
	"EnergyPalace/pkg/nlp"
	"EnergyPalace/pkg/speech"
	"EnergyPalace/pkg/utils"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addCall struct {
	name string
	qty  int
}

type fakePos struct {
	mu        sync.Mutex
	known     []string
	adds      []addCall
	expenses  []pos.SubmitExpenseRequest
	deposits  []pos.SubmitDepositRequest
	chargings []pos.SubmitChargingRequest
}

func (f *fakePos) GetProducts(ctx context.Context, forceRefresh bool) (pos.ProductListResponse, error) {
	return pos.ProductListResponse{}, nil
}

func (f *fakePos) FindProduct(ctx context.Context, spoken string) (entity.Product, bool, error) {
	return entity.Product{}, false, nil
}

func (f *fakePos) GetInsights(ctx context.Context) ([][]string, error) {
	return nil, nil
}

func (f *fakePos) GetCarts(ctx context.Context) (pos.CartState, error) {
	return pos.CartState{}, nil
}

func (f *fakePos) AddOrder(ctx context.Context) (pos.CartState, error) {
	return pos.CartState{}, nil
}

func (f *fakePos) RemoveOrder(ctx context.Context, index int) (pos.CartState, error) {
	return pos.CartState{}, nil
}

func (f *fakePos) SwitchOrder(ctx context.Context, index int) (pos.CartState, error) {
	return pos.CartState{}, nil
}

func (f *fakePos) AddToCart(ctx context.Context, name string, qty int) (pos.CartState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range f.known {
		if k == name {
			f.adds = append(f.adds, addCall{name: name, qty: qty})
			return pos.CartState{}, nil
		}
	}
	return pos.CartState{}, pos.ErrProductNotFound
}

func (f *fakePos) RemoveFromCart(ctx context.Context, name string) (pos.CartState, error) {
	return pos.CartState{}, nil
}

func (f *fakePos) UpdateQuantity(ctx context.Context, name string, qty int) (pos.CartState, error) {
	return pos.CartState{}, nil
}

func (f *fakePos) SetPayMode(ctx context.Context, mode string) (pos.CartState, error) {
	return pos.CartState{}, nil
}

func (f *fakePos) SubmitOrder(ctx context.Context) (pos.CartState, error) {
	return pos.CartState{}, nil
}

func (f *fakePos) SubmitExpense(ctx context.Context, req pos.SubmitExpenseRequest) (entity.ExpenseRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expenses = append(f.expenses, req)
	return entity.ExpenseRecord{}, nil
}

func (f *fakePos) SubmitDeposit(ctx context.Context, req pos.SubmitDepositRequest) (entity.DepositRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deposits = append(f.deposits, req)
	return entity.DepositRecord{}, nil
}

func (f *fakePos) SubmitCharging(ctx context.Context, req pos.SubmitChargingRequest) (entity.ChargingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chargings = append(f.chargings, req)
	return entity.ChargingRecord{}, nil
}

type fakeHistory struct {
	mu       sync.Mutex
	commands []entity.VoiceCommand
	intents  []voice.IntentStat
	langs    []voice.LanguageStat
}

func (f *fakeHistory) CreateCommand(c context.Context, cmd entity.VoiceCommand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
	return nil
}

func (f *fakeHistory) GetCommands(c context.Context, limit int, offset int) ([]entity.VoiceCommand, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commands, len(f.commands), nil
}

func (f *fakeHistory) GetIntentStats(c context.Context) ([]voice.IntentStat, error) {
	return f.intents, nil
}

func (f *fakeHistory) GetLanguageStats(c context.Context) ([]voice.LanguageStat, error) {
	return f.langs, nil
}

type fakeRepo struct {
	history *fakeHistory
}

func (f *fakeRepo) NewClient(tx bool) (voiceRepository.Client, error) {
	return voiceRepository.Client{
		History:  f.history,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type stubSpeaker struct {
	mu     sync.Mutex
	spoken []string
	err    error
}

func (s *stubSpeaker) Speak(ctx context.Context, text string, language string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
	return s.err
}

type blockingRecognizer struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (b *blockingRecognizer) Listen(ctx context.Context, language string) (string, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return "order 1 tea", nil
}

func (b *blockingRecognizer) Transcribe(ctx context.Context, filePath string, language string) (string, error) {
	return b.Listen(ctx, language)
}

type harness struct {
	svc     IVoiceService
	pos     *fakePos
	history *fakeHistory
	speaker *stubSpeaker
}

func newTestVoiceService(recognizer speech.ItfRecognizer) harness {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	p := &fakePos{known: []string{"tea", "coffee", "burger", "two cups of tea"}}
	h := &fakeHistory{}
	sp := &stubSpeaker{}

	svc := NewVoiceService(
		logger,
		&fakeRepo{history: h},
		p,
		nlp.NewParser(),
		nlp.NewResponder(),
		recognizer,
		sp,
		utils.New(),
	)

	return harness{svc: svc, pos: p, history: h, speaker: sp}
}

func TestProcessTextOrder(t *testing.T) {
	h := newTestVoiceService(speech.NewSimulatedRecognizer(0))

	resp, err := h.svc.ProcessText(context.Background(), "Order 2 cups of tea", "en", false)
	require.NoError(t, err)

	assert.Equal(t, voice.StatusExecuted, resp.Status)
	assert.Equal(t, entity.IntentOrder, resp.Intent)
	assert.Equal(t, "Order added successfully.", resp.Message)
	assert.InDelta(t, 0.8, resp.Confidence, 0.001)

	require.Len(t, h.pos.adds, 1)
	assert.Equal(t, "tea", h.pos.adds[0].name)
	assert.Equal(t, 2, h.pos.adds[0].qty)
}

func TestProcessTextRecordsHistory(t *testing.T) {
	h := newTestVoiceService(speech.NewSimulatedRecognizer(0))

	_, err := h.svc.ProcessText(context.Background(), "order 1 tea", "en", false)
	require.NoError(t, err)

	require.Len(t, h.history.commands, 1)
	cmd := h.history.commands[0]
	assert.True(t, cmd.Success)
	assert.Equal(t, entity.IntentOrder, cmd.Intent)
	assert.NotEmpty(t, cmd.ID)
	assert.Equal(t, "tea", cmd.Metadata["item"])
}

func TestProcessTextUnknownProduct(t *testing.T) {
	h := newTestVoiceService(speech.NewSimulatedRecognizer(0))

	resp, err := h.svc.ProcessText(context.Background(), "order pizza", "en", false)
	require.NoError(t, err)

	assert.Equal(t, voice.StatusNoMatch, resp.Status)
	assert.Equal(t, "Sorry, I didn't understand that. Please try again.", resp.Message)

	require.Len(t, h.history.commands, 1)
	assert.False(t, h.history.commands[0].Success)
}

func TestProcessTextNoMatch(t *testing.T) {
	h := newTestVoiceService(speech.NewSimulatedRecognizer(0))

	resp, err := h.svc.ProcessText(context.Background(), "hello there", "en", false)
	require.NoError(t, err)

	assert.Equal(t, voice.StatusNoMatch, resp.Status)
	assert.Equal(t, nlp.IntentNone, resp.Intent)
	assert.Equal(t, "Sorry, I didn't understand that. Please try again.", resp.Message)
}

func TestProcessTextEmpty(t *testing.T) {
	h := newTestVoiceService(speech.NewSimulatedRecognizer(0))

	_, err := h.svc.ProcessText(context.Background(), "   ", "en", false)
	assert.ErrorIs(t, err, voice.ErrEmptyTranscript)
}

func TestProcessTextExpense(t *testing.T) {
	h := newTestVoiceService(speech.NewSimulatedRecognizer(0))

	resp, err := h.svc.ProcessText(context.Background(), "expense 500 electricity bill", "en", false)
	require.NoError(t, err)

	assert.Equal(t, voice.StatusExecuted, resp.Status)
	require.Len(t, h.pos.expenses, 1)
	assert.Equal(t, 500.0, h.pos.expenses[0].Amount)
	assert.Equal(t, "electricity bill", h.pos.expenses[0].Description)
	assert.Equal(t, "Voice", h.pos.expenses[0].Category)
}

func TestProcessTextDeposit(t *testing.T) {
	h := newTestVoiceService(speech.NewSimulatedRecognizer(0))

	resp, err := h.svc.ProcessText(context.Background(), "deposit 1000 via fonepay", "en", false)
	require.NoError(t, err)

	assert.Equal(t, voice.StatusExecuted, resp.Status)
	require.Len(t, h.pos.deposits, 1)
	assert.Equal(t, 1000.0, h.pos.deposits[0].Amount)
	assert.Equal(t, "Fonepay", h.pos.deposits[0].Mode)
	assert.Equal(t, "Voice Assistant", h.pos.deposits[0].DepositedBy)
}

func TestProcessTextCharging(t *testing.T) {
	h := newTestVoiceService(speech.NewSimulatedRecognizer(0))

	resp, err := h.svc.ProcessText(context.Background(), "charging from 20 to 80", "en", false)
	require.NoError(t, err)

	assert.Equal(t, voice.StatusExecuted, resp.Status)
	require.Len(t, h.pos.chargings, 1)
	assert.Equal(t, 20.0, h.pos.chargings[0].StartPercent)
	assert.Equal(t, 80.0, h.pos.chargings[0].EndPercent)
}

func TestProcessTextNepaliOrder(t *testing.T) {
	h := newTestVoiceService(speech.NewSimulatedRecognizer(0))
	h.pos.known = append(h.pos.known, "चिया")

	resp, err := h.svc.ProcessText(context.Background(), "२ कप चिया", "ne", false)
	require.NoError(t, err)

	assert.Equal(t, voice.StatusExecuted, resp.Status)
	assert.Equal(t, "अर्डर थपियो।", resp.Message)
	require.Len(t, h.pos.adds, 1)
	assert.Equal(t, 2, h.pos.adds[0].qty)
}

func TestProcessTextSpeaks(t *testing.T) {
	h := newTestVoiceService(speech.NewSimulatedRecognizer(0))

	_, err := h.svc.ProcessText(context.Background(), "order 1 tea", "en", true)
	require.NoError(t, err)

	require.Len(t, h.speaker.spoken, 1)
	assert.Equal(t, "Order added successfully.", h.speaker.spoken[0])
}

func TestProcessTextSpeakFailureIsIgnored(t *testing.T) {
	h := newTestVoiceService(speech.NewSimulatedRecognizer(0))
	h.speaker.err = errors.New("no audio device")

	resp, err := h.svc.ProcessText(context.Background(), "order 1 tea", "en", true)
	require.NoError(t, err)
	assert.Equal(t, voice.StatusExecuted, resp.Status)
}

func TestListenAndProcess(t *testing.T) {
	h := newTestVoiceService(speech.NewSimulatedRecognizer(0))

	// The simulated recognizer starts its rotation with an order phrase.
	resp, err := h.svc.ListenAndProcess(context.Background(), "en", false)
	require.NoError(t, err)

	assert.Equal(t, "Order two cups of tea", resp.Transcript)
	assert.Equal(t, entity.IntentOrder, resp.Intent)
	assert.Equal(t, voice.StatusExecuted, resp.Status)
}

func TestListenAndProcessSingleSession(t *testing.T) {
	recognizer := &blockingRecognizer{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	h := newTestVoiceService(recognizer)

	done := make(chan error, 1)
	go func() {
		_, err := h.svc.ListenAndProcess(context.Background(), "en", false)
		done <- err
	}()

	<-recognizer.started

	_, err := h.svc.ListenAndProcess(context.Background(), "en", false)
	assert.ErrorIs(t, err, voice.ErrListening)

	close(recognizer.release)
	require.NoError(t, <-done)

	// The gate clears once the first session finishes.
	_, err = h.svc.ListenAndProcess(context.Background(), "en", false)
	require.NoError(t, err)
}

func TestGetHistory(t *testing.T) {
	h := newTestVoiceService(speech.NewSimulatedRecognizer(0))

	_, err := h.svc.ProcessText(context.Background(), "order 1 tea", "en", false)
	require.NoError(t, err)

	resp, err := h.svc.GetHistory(context.Background(), 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Commands, 1)
}

func TestGetAnalytics(t *testing.T) {
	h := newTestVoiceService(speech.NewSimulatedRecognizer(0))
	h.history.intents = []voice.IntentStat{
		{Intent: "order", Total: 8, Succeeded: 6, Rate: 0.75},
		{Intent: "expense", Total: 2, Succeeded: 2, Rate: 1},
	}
	h.history.langs = []voice.LanguageStat{
		{Language: "en", Total: 7, Succeeded: 6},
		{Language: "ne", Total: 3, Succeeded: 2},
	}

	resp, err := h.svc.GetAnalytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, resp.Total)
	assert.Equal(t, 8, resp.Succeeded)
	assert.InDelta(t, 0.8, resp.SuccessRate, 0.001)
	assert.Len(t, resp.ByIntent, 2)
	assert.Len(t, resp.ByLanguage, 2)
}
