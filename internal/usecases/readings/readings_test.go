package readings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
)

type fakeProfileRepo struct {
	profiles      map[uuid.UUID]*domain.Profile
	pendingUsers  map[uuid.UUID]bool
	statusHistory []domain.ReadingStatus
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles:     make(map[uuid.UUID]*domain.Profile),
		pendingUsers: make(map[uuid.UUID]bool),
	}
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) SetLongTermStatus(ctx context.Context, userID uuid.UUID, status domain.ReadingStatus) error {
	f.statusHistory = append(f.statusHistory, status)
	if status != domain.ReadingStatusPending {
		f.pendingUsers[userID] = false
	}
	return nil
}

func (f *fakeProfileRepo) TryMarkPending(ctx context.Context, userID uuid.UUID) (bool, error) {
	if f.pendingUsers[userID] {
		return false, nil
	}
	f.pendingUsers[userID] = true
	f.statusHistory = append(f.statusHistory, domain.ReadingStatusPending)
	return true, nil
}

func (f *fakeProfileRepo) ListWithBirthData(ctx context.Context) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range f.profiles {
		if p.DateOfBirth != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeReadingRepo struct {
	readings []domain.Reading
}

func (f *fakeReadingRepo) Create(ctx context.Context, r *domain.Reading) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	f.readings = append(f.readings, *r)
	return nil
}

func (f *fakeReadingRepo) GetLiveByUserAndType(ctx context.Context, userID uuid.UUID, rt domain.ReadingType) (*domain.Reading, error) {
	for i := len(f.readings) - 1; i >= 0; i-- {
		r := f.readings[i]
		if r.UserID == userID && r.ReadingType == rt && !r.IsDeleted {
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeReadingRepo) ListLiveLongTerm(ctx context.Context, userID uuid.UUID) ([]domain.Reading, error) {
	var out []domain.Reading
	for _, r := range f.readings {
		if r.UserID == userID && r.ReadingType != domain.ReadingToday && !r.IsDeleted {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReadingRepo) ListLiveTypes(ctx context.Context, userID uuid.UUID) ([]domain.ReadingType, error) {
	var out []domain.ReadingType
	for _, r := range f.readings {
		if r.UserID == userID && !r.IsDeleted {
			out = append(out, r.ReadingType)
		}
	}
	return out, nil
}

func (f *fakeReadingRepo) SoftDeleteLive(ctx context.Context, userID uuid.UUID, rt domain.ReadingType) error {
	for i := range f.readings {
		if f.readings[i].UserID == userID && f.readings[i].ReadingType == rt {
			f.readings[i].IsDeleted = true
		}
	}
	return nil
}

func (f *fakeReadingRepo) SoftDeleteAllGenerated(ctx context.Context, userID uuid.UUID) error {
	for i := range f.readings {
		if f.readings[i].UserID == userID {
			f.readings[i].IsDeleted = true
		}
	}
	return nil
}

// fakeGateway: threadErr отключает тредовый режим, completeReply отдаётся
// из Complete
type fakeGateway struct {
	threadErr     error
	threadReply   domain.ModelReply
	completeReply domain.ModelReply
	completeCalls int
	threadOpens   int
}

func (f *fakeGateway) Complete(ctx context.Context, messages []domain.ChatMessage) domain.ModelReply {
	f.completeCalls++
	return f.completeReply
}

func (f *fakeGateway) OpenThread(ctx context.Context) (string, error) {
	f.threadOpens++
	if f.threadErr != nil {
		return "", f.threadErr
	}
	return "thread_1", nil
}

func (f *fakeGateway) Post(ctx context.Context, threadID, content string) error {
	return nil
}

func (f *fakeGateway) AwaitReply(ctx context.Context, threadID string) domain.ModelReply {
	return f.threadReply
}

func newService(profiles *fakeProfileRepo, readingsRepo *fakeReadingRepo, gw *fakeGateway) *Service {
	return New(profiles, readingsRepo, gw, slog.Default())
}

func seedProfile(profiles *fakeProfileRepo, withChart bool) uuid.UUID {
	userID := uuid.New()
	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	p := &domain.Profile{
		ID:                uuid.New(),
		UserID:            userID,
		DateOfBirth:       &dob,
		PreferredLanguage: "English",
		LongTermStatus:    domain.ReadingStatusIdle,
	}
	if withChart {
		p.BirthChart = domain.ChartJSON(`{"ascendant": {"degree": 15.5, "sign": "Leo"}}`)
	}
	profiles.profiles[userID] = p
	return userID
}

func TestPromptTemplatesAreTotal(t *testing.T) {
	for _, rt := range domain.AllReadingTypes() {
		tpl, err := PromptFor(rt)
		if err != nil {
			t.Errorf("no prompt for %s: %v", rt, err)
		}
		if tpl == "" {
			t.Errorf("empty prompt for %s", rt)
		}
	}

	if _, err := PromptFor(domain.ReadingType("nonsense")); err == nil {
		t.Error("expected error for unknown reading type")
	}
}

func TestLanguageInstructionCoversKeys(t *testing.T) {
	got := languageInstruction("Hindi")
	if !strings.Contains(got, "strictly in Hindi language") {
		t.Errorf("instruction does not name the language: %q", got)
	}
	if !strings.Contains(got, "translated JSON keys") {
		t.Errorf("instruction does not ask for translated keys: %q", got)
	}

	if got := languageInstruction(""); !strings.Contains(got, "English") {
		t.Errorf("empty language must default to English: %q", got)
	}
}

func TestGenerateReadingStructured(t *testing.T) {
	profiles := newFakeProfileRepo()
	readingsRepo := &fakeReadingRepo{}
	gw := &fakeGateway{
		threadErr:     errors.New("no assistant configured"),
		completeReply: domain.StructuredReply(json.RawMessage(`{"traits": ["curious"]}`)),
	}
	svc := newService(profiles, readingsRepo, gw)
	userID := seedProfile(profiles, true)

	reading, err := svc.GenerateReading(context.Background(), userID, domain.ReadingPersonality)
	if err != nil {
		t.Fatalf("GenerateReading: %v", err)
	}
	if reading.ReadingType != domain.ReadingPersonality {
		t.Errorf("reading type = %s", reading.ReadingType)
	}

	var content map[string]any
	if err := json.Unmarshal(reading.Content, &content); err != nil {
		t.Fatalf("content is not JSON: %v", err)
	}
	if _, ok := content["traits"]; !ok {
		t.Errorf("unexpected content: %v", content)
	}
}

func TestGenerateReadingAlwaysReturnsWithDeadBackend(t *testing.T) {
	profiles := newFakeProfileRepo()
	readingsRepo := &fakeReadingRepo{}
	gw := &fakeGateway{
		threadErr:     errors.New("connection refused"),
		completeReply: domain.UnavailableReply("Sorry, I'm having trouble generating your reading. Please try again later."),
	}
	svc := newService(profiles, readingsRepo, gw)
	userID := seedProfile(profiles, true)

	reading, err := svc.GenerateReading(context.Background(), userID, domain.ReadingCareer)
	if err != nil {
		t.Fatalf("GenerateReading must not fail on model outage: %v", err)
	}

	var content map[string]any
	if err := json.Unmarshal(reading.Content, &content); err != nil {
		t.Fatalf("content is not JSON: %v", err)
	}
	if _, ok := content["raw"]; !ok {
		t.Errorf("expected raw-wrapped apology, got %v", content)
	}
}

func TestGenerateReadingWithoutChartUsesPlaceholder(t *testing.T) {
	profiles := newFakeProfileRepo()
	readingsRepo := &fakeReadingRepo{}
	gw := &fakeGateway{
		threadErr:     errors.New("disabled"),
		completeReply: domain.StructuredReply(json.RawMessage(`{"general_insights": "calm"}`)),
	}
	svc := newService(profiles, readingsRepo, gw)
	userID := seedProfile(profiles, false)

	if _, err := svc.GenerateReading(context.Background(), userID, domain.ReadingToday); err != nil {
		t.Fatalf("GenerateReading without chart: %v", err)
	}
}

func TestGenerateReadingSupersedesPrevious(t *testing.T) {
	profiles := newFakeProfileRepo()
	readingsRepo := &fakeReadingRepo{}
	gw := &fakeGateway{
		threadErr:     errors.New("disabled"),
		completeReply: domain.StructuredReply(json.RawMessage(`{"v": 2}`)),
	}
	svc := newService(profiles, readingsRepo, gw)
	userID := seedProfile(profiles, true)

	if _, err := svc.GenerateReading(context.Background(), userID, domain.ReadingHealth); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GenerateReading(context.Background(), userID, domain.ReadingHealth); err != nil {
		t.Fatal(err)
	}

	var live int
	for _, r := range readingsRepo.readings {
		if r.ReadingType == domain.ReadingHealth && !r.IsDeleted {
			live++
		}
	}
	if live != 1 {
		t.Errorf("expected exactly one live reading, got %d", live)
	}
}

func TestGenerateReadingPrefersThreadedMode(t *testing.T) {
	profiles := newFakeProfileRepo()
	readingsRepo := &fakeReadingRepo{}
	gw := &fakeGateway{
		threadReply: domain.StructuredReply(json.RawMessage(`{"from": "thread"}`)),
	}
	svc := newService(profiles, readingsRepo, gw)
	userID := seedProfile(profiles, true)

	reading, err := svc.GenerateReading(context.Background(), userID, domain.ReadingChallenges)
	if err != nil {
		t.Fatal(err)
	}
	if gw.completeCalls != 0 {
		t.Errorf("completion fallback used although thread succeeded")
	}
	var content map[string]any
	json.Unmarshal(reading.Content, &content)
	if content["from"] != "thread" {
		t.Errorf("unexpected content: %v", content)
	}
}

func TestRunMissingReadingsGeneratesAll(t *testing.T) {
	profiles := newFakeProfileRepo()
	readingsRepo := &fakeReadingRepo{}
	gw := &fakeGateway{
		threadErr:     errors.New("disabled"),
		completeReply: domain.StructuredReply(json.RawMessage(`{"ok": true}`)),
	}
	svc := newService(profiles, readingsRepo, gw)
	userID := seedProfile(profiles, true)

	if err := svc.RunMissingReadings(context.Background(), userID); err != nil {
		t.Fatalf("RunMissingReadings: %v", err)
	}

	missing, err := svc.MissingLongTermTypes(context.Background(), userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 0 {
		t.Errorf("still missing after run: %v", missing)
	}

	last := profiles.statusHistory[len(profiles.statusHistory)-1]
	if last != domain.ReadingStatusCompleted {
		t.Errorf("final status = %s, want completed", last)
	}
}

func TestRunMissingReadingsCollapsesConcurrentTriggers(t *testing.T) {
	profiles := newFakeProfileRepo()
	readingsRepo := &fakeReadingRepo{}
	gw := &fakeGateway{
		threadErr:     errors.New("disabled"),
		completeReply: domain.StructuredReply(json.RawMessage(`{"ok": true}`)),
	}
	svc := newService(profiles, readingsRepo, gw)
	userID := seedProfile(profiles, true)

	profiles.pendingUsers[userID] = true // другой запуск уже в работе

	if err := svc.RunMissingReadings(context.Background(), userID); err != nil {
		t.Fatalf("RunMissingReadings: %v", err)
	}
	if len(readingsRepo.readings) != 0 {
		t.Errorf("second trigger generated %d readings, want 0", len(readingsRepo.readings))
	}
}

func TestRunMissingReadingsNoopWhenComplete(t *testing.T) {
	profiles := newFakeProfileRepo()
	readingsRepo := &fakeReadingRepo{}
	gw := &fakeGateway{
		threadErr:     errors.New("disabled"),
		completeReply: domain.StructuredReply(json.RawMessage(`{"ok": true}`)),
	}
	svc := newService(profiles, readingsRepo, gw)
	userID := seedProfile(profiles, true)

	for _, rt := range domain.LongTermReadingTypes() {
		readingsRepo.Create(context.Background(), &domain.Reading{
			UserID:      userID,
			ReadingType: rt,
			Content:     json.RawMessage(`{}`),
		})
	}

	if err := svc.RunMissingReadings(context.Background(), userID); err != nil {
		t.Fatal(err)
	}
	if len(profiles.statusHistory) != 0 {
		t.Errorf("status touched on no-op run: %v", profiles.statusHistory)
	}
}

func TestTodayReadingReturnsFreshReading(t *testing.T) {
	profiles := newFakeProfileRepo()
	readingsRepo := &fakeReadingRepo{}
	gw := &fakeGateway{
		threadErr:     errors.New("disabled"),
		completeReply: domain.StructuredReply(json.RawMessage(`{"new": true}`)),
	}
	svc := newService(profiles, readingsRepo, gw)
	userID := seedProfile(profiles, true)

	fresh := &domain.Reading{
		UserID:      userID,
		ReadingType: domain.ReadingToday,
		Content:     json.RawMessage(`{"cached": true}`),
	}
	readingsRepo.Create(context.Background(), fresh)

	got, err := svc.TodayReading(context.Background(), userID)
	if err != nil {
		t.Fatal(err)
	}
	if gw.completeCalls != 0 {
		t.Error("fresh reading regenerated")
	}
	if got.ID != fresh.ID {
		t.Errorf("got %s, want cached %s", got.ID, fresh.ID)
	}
}

func TestTodayReadingRegeneratesStale(t *testing.T) {
	profiles := newFakeProfileRepo()
	readingsRepo := &fakeReadingRepo{}
	gw := &fakeGateway{
		threadErr:     errors.New("disabled"),
		completeReply: domain.StructuredReply(json.RawMessage(`{"new": true}`)),
	}
	svc := newService(profiles, readingsRepo, gw)
	userID := seedProfile(profiles, true)

	stale := &domain.Reading{
		UserID:      userID,
		ReadingType: domain.ReadingToday,
		Content:     json.RawMessage(`{"cached": true}`),
		CreatedAt:   time.Now().UTC().Add(-48 * time.Hour),
	}
	readingsRepo.Create(context.Background(), stale)

	got, err := svc.TodayReading(context.Background(), userID)
	if err != nil {
		t.Fatal(err)
	}
	if gw.completeCalls == 0 {
		t.Error("stale reading not regenerated")
	}
	var content map[string]any
	json.Unmarshal(got.Content, &content)
	if content["new"] != true {
		t.Errorf("unexpected content: %v", content)
	}
}

func TestTodayReadingNeverWaitsOnThread(t *testing.T) {
	profiles := newFakeProfileRepo()
	readingsRepo := &fakeReadingRepo{}
	gw := &fakeGateway{
		threadReply:   domain.StructuredReply(json.RawMessage(`{"from": "thread"}`)),
		completeReply: domain.StructuredReply(json.RawMessage(`{"from": "completion"}`)),
	}
	svc := newService(profiles, readingsRepo, gw)
	userID := seedProfile(profiles, true)

	stale := &domain.Reading{
		UserID:      userID,
		ReadingType: domain.ReadingToday,
		Content:     json.RawMessage(`{"cached": true}`),
		CreatedAt:   time.Now().UTC().Add(-48 * time.Hour),
	}
	readingsRepo.Create(context.Background(), stale)

	got, err := svc.TodayReading(context.Background(), userID)
	if err != nil {
		t.Fatal(err)
	}
	if gw.threadOpens != 0 {
		t.Errorf("thread opened %d times on request path, want 0", gw.threadOpens)
	}
	if gw.completeCalls != 1 {
		t.Errorf("completeCalls = %d, want 1", gw.completeCalls)
	}
	var content map[string]any
	json.Unmarshal(got.Content, &content)
	if content["from"] != "completion" {
		t.Errorf("unexpected content: %v", content)
	}
}

func TestGenerateDailyForAllUsers(t *testing.T) {
	profiles := newFakeProfileRepo()
	readingsRepo := &fakeReadingRepo{}
	gw := &fakeGateway{
		threadErr:     errors.New("disabled"),
		completeReply: domain.StructuredReply(json.RawMessage(`{"ok": true}`)),
	}
	svc := newService(profiles, readingsRepo, gw)

	seedProfile(profiles, true)
	seedProfile(profiles, true)

	// профиль без данных рождения не участвует
	bare := uuid.New()
	profiles.profiles[bare] = &domain.Profile{ID: uuid.New(), UserID: bare}

	count, err := svc.GenerateDailyForAllUsers(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("generated = %d, want 2", count)
	}
}
