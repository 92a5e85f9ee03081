package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mhd0331/JinanCampaign/internal/domain"
	"github.com/mhd0331/JinanCampaign/internal/trainingctx"
)

// ----- Fake completer -----

type fakeCompleter struct {
	out   string
	err   error
	calls int

	gotSystem   string
	gotUser     string
	hadDeadline bool
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.gotSystem, f.gotUser = system, user
	_, f.hadDeadline = ctx.Deadline()
	return f.out, f.err
}

func staticLoader(docs ...domain.AiTrainingDoc) trainingctx.Loader {
	return func(context.Context) ([]domain.AiTrainingDoc, error) { return docs, nil }
}

// ----- Tests -----

func TestChat_Answer_MissingFields(t *testing.T) {
	db := newTestDB(t)
	fc := &fakeCompleter{out: `{"response":"x","confidence":1}`}
	svc := NewChatService(db, fc, nil)

	for _, tc := range []struct{ msg, sid string }{
		{"", "s1"},
		{"   ", "s1"},
		{"hello", ""},
		{"hello", "  "},
	} {
		if _, err := svc.Answer(context.Background(), tc.msg, tc.sid); !errors.Is(err, ErrMissingChatFields) {
			t.Fatalf("Answer(%q,%q) = %v, want ErrMissingChatFields", tc.msg, tc.sid, err)
		}
	}
	if fc.calls != 0 {
		t.Fatalf("completer must not be called, got %d calls", fc.calls)
	}
	var n int64
	db.Model(&domain.ChatMessage{}).Count(&n)
	if n != 0 {
		t.Fatalf("no row expected, got %d", n)
	}
}

func TestChat_Answer_Unconfigured(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db, nil, nil)

	reply, err := svc.Answer(context.Background(), "공약이 뭔가요?", "s1")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if reply.Confidence != FallbackConfidence {
		t.Fatalf("confidence = %v, want %v", reply.Confidence, FallbackConfidence)
	}
	if !strings.Contains(reply.Response, "설정되지 않았습니다") || !strings.Contains(reply.Response, DefaultContactChannel) {
		t.Fatalf("unexpected not-configured text: %q", reply.Response)
	}
	if reply.MessageID == "" {
		t.Fatalf("exchange must be persisted")
	}
}

func TestChat_Answer_OK(t *testing.T) {
	db := newTestDB(t)
	fc := &fakeCompleter{out: "```json\n{\"response\":\"지역화폐를 발행합니다.\",\"confidence\":0.92}\n```"}
	cache := trainingctx.New(staticLoader(
		domain.AiTrainingDoc{ID: "p1", Category: domain.CategoryPolicy, Content: "지역화폐 발행(1인당 50만원)", IsActive: true},
	), time.Minute)
	svc := NewChatService(db, fc, cache)

	reply, err := svc.Answer(context.Background(), "  지역화폐 공약은?  ", "sess-1")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if reply.Response != "지역화폐를 발행합니다." || reply.Confidence != 0.92 {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if fc.gotUser != "지역화폐 공약은?" {
		t.Fatalf("user message not trimmed: %q", fc.gotUser)
	}
	if !strings.Contains(fc.gotSystem, "1. 지역화폐 발행(1인당 50만원)") {
		t.Fatalf("system prompt misses policy section:\n%s", fc.gotSystem)
	}
	if !fc.hadDeadline {
		t.Fatalf("completion must run under a deadline")
	}

	var row domain.ChatMessage
	if err := db.First(&row, "id = ?", reply.MessageID).Error; err != nil {
		t.Fatalf("load row: %v", err)
	}
	if row.SessionID != "sess-1" || row.AIResponse != reply.Response || row.Confidence != 0.92 {
		t.Fatalf("row mismatch: %+v", row)
	}
}

func TestChat_Answer_FallbackOnError(t *testing.T) {
	db := newTestDB(t)
	fc := &fakeCompleter{err: errors.New("upstream 503")}
	svc := NewChatService(db, fc, nil)
	svc.ContactChannel = "캠프(02-000-0000)"

	reply, err := svc.Answer(context.Background(), "hi", "s1")
	if err != nil {
		t.Fatalf("AI failure must not surface: %v", err)
	}
	if reply.Confidence != FallbackConfidence || !strings.Contains(reply.Response, "일시적인 문제") {
		t.Fatalf("expected fallback apology, got %+v", reply)
	}
	if !strings.Contains(reply.Response, "캠프(02-000-0000)") {
		t.Fatalf("fallback must name the configured contact: %q", reply.Response)
	}
	if n := countChatRows(t, svc, "s1"); n != 1 {
		t.Fatalf("chat rows=%d, want 1", n)
	}
}

// hangingCompleter blocks until its context ends.
type hangingCompleter struct{}

func (hangingCompleter) Complete(ctx context.Context, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestChat_Answer_TimeoutFallsBack(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db, hangingCompleter{}, nil)
	svc.Timeout = 50 * time.Millisecond

	start := time.Now()
	reply, err := svc.Answer(context.Background(), "버스 공영화는 언제?", "s-slow")
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if elapsed > 2*time.Second {
		t.Fatalf("Answer took %v, timeout not enforced", elapsed)
	}
	if reply.Confidence != FallbackConfidence || !strings.Contains(reply.Response, "일시적인 문제") {
		t.Fatalf("expected fallback apology, got %+v", reply)
	}
	if n := countChatRows(t, svc, "s-slow"); n != 1 {
		t.Fatalf("chat rows=%d, want 1", n)
	}
}

func countChatRows(t *testing.T, svc *ChatService, sessionID string) int {
	t.Helper()
	hist, err := svc.History(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	return len(hist)
}

func TestChat_Answer_FallbackOnGarbage(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db, &fakeCompleter{out: "not json at all"}, nil)

	reply, err := svc.Answer(context.Background(), "hi", "s1")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if reply.Confidence != FallbackConfidence {
		t.Fatalf("confidence = %v, want fallback", reply.Confidence)
	}
}

func TestChat_Answer_ClampsAndDefaults(t *testing.T) {
	db := newTestDB(t)
	fc := &fakeCompleter{out: `{"response":"ok","confidence":7}`}
	svc := NewChatService(db, fc, nil)

	reply, _ := svc.Answer(context.Background(), "q", "s")
	if reply.Confidence != 1 {
		t.Fatalf("confidence not clamped: %v", reply.Confidence)
	}

	fc.out = `{"response":""}`
	reply, _ = svc.Answer(context.Background(), "q", "s")
	if reply.Response != "죄송합니다. 답변을 생성할 수 없습니다." || reply.Confidence != 0.5 {
		t.Fatalf("defaults not applied: %+v", reply)
	}
}

func TestChat_Answer_CacheErrorDegrades(t *testing.T) {
	db := newTestDB(t)
	fc := &fakeCompleter{out: `{"response":"ok","confidence":0.8}`}
	cache := trainingctx.New(func(context.Context) ([]domain.AiTrainingDoc, error) {
		return nil, errors.New("db down")
	}, time.Minute)
	svc := NewChatService(db, fc, cache)

	reply, err := svc.Answer(context.Background(), "q", "s")
	if err != nil || reply.Confidence != 0.8 {
		t.Fatalf("expected normal answer without context, got %+v, %v", reply, err)
	}
	if strings.Contains(fc.gotSystem, "**핵심 공약 및 정책:**") {
		t.Fatalf("no policy section expected")
	}
}

func TestChat_Answer_PersistsAfterCancel(t *testing.T) {
	db := newTestDB(t)
	fc := &fakeCompleter{err: context.Canceled}
	svc := NewChatService(db, fc, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reply, err := svc.Answer(ctx, "q", "s")
	if err != nil {
		t.Fatalf("exchange must be stored even when the caller left: %v", err)
	}
	if reply.Confidence != FallbackConfidence {
		t.Fatalf("expected fallback, got %+v", reply)
	}
}

func TestChat_History(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db, &fakeCompleter{out: `{"response":"a","confidence":0.9}`}, nil)
	ctx := context.Background()

	for _, q := range []string{"first", "second", "third"} {
		if _, err := svc.Answer(ctx, q, "s1"); err != nil {
			t.Fatalf("Answer: %v", err)
		}
	}
	if _, err := svc.Answer(ctx, "other", "s2"); err != nil {
		t.Fatalf("Answer: %v", err)
	}

	hist, err := svc.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 3 {
		t.Fatalf("len = %d, want 3", len(hist))
	}
	for i, want := range []string{"first", "second", "third"} {
		if hist[i].UserMessage != want {
			t.Fatalf("hist[%d] = %q, want %q", i, hist[i].UserMessage, want)
		}
	}

	if _, err := svc.History(ctx, " "); !errors.Is(err, ErrMissingChatFields) {
		t.Fatalf("blank session: %v", err)
	}
	if empty, err := svc.History(ctx, "unknown"); err != nil || len(empty) != 0 {
		t.Fatalf("unknown session: %v %v", empty, err)
	}
}

func TestChat_Message(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db, nil, nil)
	reply, err := svc.Answer(context.Background(), "q", "s")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	m, err := svc.Message(context.Background(), reply.MessageID)
	if err != nil || m.UserMessage != "q" {
		t.Fatalf("Message: %+v %v", m, err)
	}
}

func TestChat_ReplayAndRemember(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db, &fakeCompleter{out: `{"response":"답변","confidence":0.8}`}, nil)
	ctx := context.Background()

	if r, err := svc.Replay(ctx, "k1"); err != nil || r != nil {
		t.Fatalf("unknown key: reply=%v err=%v", r, err)
	}

	first, err := svc.Answer(ctx, "질문", "s1")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	svc.Remember(ctx, "k1", first.MessageID)
	svc.Remember(ctx, "k1", "ignored-duplicate")

	got, err := svc.Replay(ctx, "k1")
	if err != nil || got == nil {
		t.Fatalf("Replay: reply=%v err=%v", got, err)
	}
	if got.MessageID != first.MessageID || got.Response != "답변" || got.Confidence != 0.8 {
		t.Fatalf("replayed %+v, want %+v", got, first)
	}

	// Expired keys no longer replay.
	svc.IdempotencyTTL = time.Nanosecond
	svc.Remember(ctx, "k2", first.MessageID)
	time.Sleep(time.Millisecond)
	if r, _ := svc.Replay(ctx, "k2"); r != nil {
		t.Fatalf("expired key replayed: %+v", r)
	}
}
