package assistant

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
)

type fakeConversationRepo struct {
	conversations map[uuid.UUID]*domain.Conversation
	messages      map[uuid.UUID][]domain.ConversationMessage
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[uuid.UUID]*domain.Conversation),
		messages:      make(map[uuid.UUID][]domain.ConversationMessage),
	}
}

func (f *fakeConversationRepo) Create(_ context.Context, conv *domain.Conversation) error {
	conv.ID = uuid.New()
	conv.CreatedAt = time.Now().UTC()
	f.conversations[conv.ID] = conv
	return nil
}

func (f *fakeConversationRepo) GetActive(_ context.Context, userID uuid.UUID, sessionID string) (*domain.Conversation, error) {
	for _, conv := range f.conversations {
		if conv.UserID == userID && conv.SessionID == sessionID && conv.IsActive && !conv.IsDeleted {
			return conv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeConversationRepo) SetThreadID(_ context.Context, id uuid.UUID, threadID string) error {
	conv, ok := f.conversations[id]
	if !ok {
		return domain.ErrNotFound
	}
	conv.ThreadID = &threadID
	return nil
}

func (f *fakeConversationRepo) Deactivate(_ context.Context, userID uuid.UUID) error {
	for _, conv := range f.conversations {
		if conv.UserID == userID {
			conv.IsActive = false
		}
	}
	return nil
}

func (f *fakeConversationRepo) AddMessage(_ context.Context, msg *domain.ConversationMessage) error {
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now().UTC()
	f.messages[msg.ConversationID] = append(f.messages[msg.ConversationID], *msg)
	return nil
}

func (f *fakeConversationRepo) ListMessages(_ context.Context, conversationID uuid.UUID) ([]domain.ConversationMessage, error) {
	return f.messages[conversationID], nil
}

type fakeProfileRepo struct {
	profile *domain.Profile
}

func (f *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) error { return nil }

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if f.profile == nil || f.profile.UserID != userID {
		return nil, domain.ErrNotFound
	}
	cp := *f.profile
	return &cp, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *domain.Profile) error { return nil }

func (f *fakeProfileRepo) SetLongTermStatus(_ context.Context, _ uuid.UUID, _ domain.ReadingStatus) error {
	return nil
}

func (f *fakeProfileRepo) TryMarkPending(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeProfileRepo) ListWithBirthData(_ context.Context) ([]domain.Profile, error) {
	return nil, nil
}

type fakeGateway struct {
	threads map[string][]string
	reply   domain.ModelReply
	opened  int
}

func newFakeGateway(reply domain.ModelReply) *fakeGateway {
	return &fakeGateway{threads: make(map[string][]string), reply: reply}
}

func (f *fakeGateway) Complete(_ context.Context, _ []domain.ChatMessage) domain.ModelReply {
	return f.reply
}

func (f *fakeGateway) OpenThread(_ context.Context) (string, error) {
	f.opened++
	id := "thread_" + uuid.NewString()
	f.threads[id] = nil
	return id, nil
}

func (f *fakeGateway) Post(_ context.Context, threadID, content string) error {
	f.threads[threadID] = append(f.threads[threadID], content)
	return nil
}

func (f *fakeGateway) AwaitReply(_ context.Context, _ string) domain.ModelReply {
	return f.reply
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedProfile(userID uuid.UUID) *domain.Profile {
	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	tob := time.Date(0, 1, 1, 12, 30, 0, 0, time.UTC)
	place := "Mumbai, India"
	lat, lon := 19.076, 72.8777
	chart, _ := json.Marshal(map[string]any{"planets": map[string]any{}})
	return &domain.Profile{
		ID:                uuid.New(),
		UserID:            userID,
		DateOfBirth:       &dob,
		TimeOfBirth:       &tob,
		PlaceOfBirth:      &place,
		Latitude:          &lat,
		Longitude:         &lon,
		PreferredLanguage: "Hindi",
		BirthChart:        chart,
	}
}

func TestChatSeedsNewThreadWithBirthContext(t *testing.T) {
	userID := uuid.New()
	convRepo := newFakeConversationRepo()
	gateway := newFakeGateway(domain.ModelReply{Kind: domain.ReplyRaw, Text: "Namaste!"})
	svc := New(convRepo, &fakeProfileRepo{profile: seedProfile(userID)}, gateway, "asst_123", testLogger())

	res, err := svc.Chat(context.Background(), userID, "session-1", "Tell me about my career")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if res.Reply != "Namaste!" {
		t.Errorf("reply = %q", res.Reply)
	}
	if gateway.opened != 1 {
		t.Fatalf("opened threads = %d, want 1", gateway.opened)
	}

	conv, err := convRepo.GetActive(context.Background(), userID, "session-1")
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if conv.ThreadID == nil {
		t.Fatal("thread id not persisted")
	}
	posted := gateway.threads[*conv.ThreadID]
	if len(posted) != 3 {
		t.Fatalf("posted %d messages, want birth info + chart + user input", len(posted))
	}
	if !strings.Contains(posted[0], "Birth Date: 1990-06-15") {
		t.Errorf("first seed message missing birth date: %q", posted[0])
	}
	if !strings.Contains(posted[0], "strictly in Hindi language") {
		t.Errorf("first seed message missing language instruction: %q", posted[0])
	}
	if !strings.Contains(posted[1], "birth chart") {
		t.Errorf("second seed message missing chart: %q", posted[1])
	}
	if posted[2] != "Tell me about my career" {
		t.Errorf("user input not posted last: %q", posted[2])
	}
}

func TestChatReusesActiveThread(t *testing.T) {
	userID := uuid.New()
	convRepo := newFakeConversationRepo()
	gateway := newFakeGateway(domain.ModelReply{Kind: domain.ReplyRaw, Text: "ok"})
	svc := New(convRepo, &fakeProfileRepo{profile: seedProfile(userID)}, gateway, "asst_123", testLogger())

	if _, err := svc.Chat(context.Background(), userID, "session-1", "first"); err != nil {
		t.Fatalf("first Chat: %v", err)
	}
	if _, err := svc.Chat(context.Background(), userID, "session-1", "second"); err != nil {
		t.Fatalf("second Chat: %v", err)
	}
	if gateway.opened != 1 {
		t.Errorf("opened threads = %d, want 1", gateway.opened)
	}
	if len(convRepo.conversations) != 1 {
		t.Errorf("conversations = %d, want 1", len(convRepo.conversations))
	}
}

func TestChatStoresBothSides(t *testing.T) {
	userID := uuid.New()
	convRepo := newFakeConversationRepo()
	reply := domain.ModelReply{Kind: domain.ReplyStructured, Value: json.RawMessage(`{"answer": "soon"}`)}
	svc := New(convRepo, &fakeProfileRepo{profile: seedProfile(userID)}, newFakeGateway(reply), "asst_123", testLogger())

	res, err := svc.Chat(context.Background(), userID, "session-1", "When will I marry?")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	msgs, err := svc.Messages(context.Background(), userID, "session-1")
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("stored %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Content != "When will I marry?" {
		t.Errorf("user message = %+v", msgs[0])
	}
	if msgs[1].Role != "assistant" || msgs[1].Content != `{"answer": "soon"}` {
		t.Errorf("assistant message = %+v", msgs[1])
	}
	if msgs[1].ConversationID != res.ConversationID {
		t.Error("messages stored under wrong conversation")
	}
}

func TestChatWithoutProfileSeedsBareThread(t *testing.T) {
	userID := uuid.New()
	convRepo := newFakeConversationRepo()
	gateway := newFakeGateway(domain.ModelReply{Kind: domain.ReplyRaw, Text: "hello"})
	svc := New(convRepo, &fakeProfileRepo{}, gateway, "asst_123", testLogger())

	if _, err := svc.Chat(context.Background(), userID, "session-1", "hi"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	conv, _ := convRepo.GetActive(context.Background(), userID, "session-1")
	if got := len(gateway.threads[*conv.ThreadID]); got != 1 {
		t.Errorf("posted %d messages, want only the user input", got)
	}
}

func TestChatUnavailableReplyIsApology(t *testing.T) {
	userID := uuid.New()
	convRepo := newFakeConversationRepo()
	reply := domain.UnavailableReply("Sorry, I'm having trouble generating your reading. Please try again later.")
	svc := New(convRepo, &fakeProfileRepo{profile: seedProfile(userID)}, newFakeGateway(reply), "asst_123", testLogger())

	res, err := svc.Chat(context.Background(), userID, "session-1", "hi")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.Contains(res.Reply, "trouble") {
		t.Errorf("reply = %q, want apology text", res.Reply)
	}
}

func TestResetStartsFreshConversation(t *testing.T) {
	userID := uuid.New()
	convRepo := newFakeConversationRepo()
	gateway := newFakeGateway(domain.ModelReply{Kind: domain.ReplyRaw, Text: "ok"})
	svc := New(convRepo, &fakeProfileRepo{profile: seedProfile(userID)}, gateway, "asst_123", testLogger())

	first, err := svc.Chat(context.Background(), userID, "session-1", "one")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if err := svc.Reset(context.Background(), userID); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	second, err := svc.Chat(context.Background(), userID, "session-1", "two")
	if err != nil {
		t.Fatalf("Chat after reset: %v", err)
	}
	if first.ConversationID == second.ConversationID {
		t.Error("expected a new conversation after reset")
	}
	if gateway.opened != 2 {
		t.Errorf("opened threads = %d, want 2", gateway.opened)
	}
}
