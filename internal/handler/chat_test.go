package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"brandchat/internal/config"
	"brandchat/internal/handler"
	"brandchat/internal/model"
	"brandchat/internal/repository"
	"brandchat/internal/service"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(_ context.Context, _ []model.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

var testChatCfg = config.ChatConfig{
	BrandName:        "Verve Threads",
	WelcomeMessage:   "Hi there!",
	MaxMessageLength: 50,
	TypingDelay:      1500,
}

func newTestRouter(t *testing.T, completer service.Completer, store repository.ConversationStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	chatSvc := service.NewChatService(completer, store)
	cfg := testChatCfg

	engine := gin.New()
	api := engine.Group("/api")
	api.POST("/chat", handler.NewChatHandler(chatSvc, &cfg).Chat)
	api.GET("/health", handler.NewHealthHandler().Health)
	api.GET("/config", handler.NewConfigHandler(&cfg).Config)
	api.DELETE("/conversations/:id", handler.NewConversationHandler(chatSvc).Delete)

	return engine
}

func postChat(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChat_Success(t *testing.T) {
	store := repository.NewMemoryStore()
	router := newTestRouter(t, &stubCompleter{reply: "Sizes XS to XXL."}, store)

	w := postChat(t, router, `{"message": "What sizes do you carry?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp model.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("expected status success, got %q", resp.Status)
	}
	if resp.Response == "" {
		t.Error("expected non-empty response text")
	}
	if resp.ConversationID == "" {
		t.Error("expected a conversation id")
	}
	if resp.Timestamp == "" {
		t.Error("expected a timestamp")
	}
}

func TestChat_SequentialTurnsKeepOrder(t *testing.T) {
	store := repository.NewMemoryStore()
	router := newTestRouter(t, &stubCompleter{reply: "reply"}, store)

	w := postChat(t, router, `{"message": "first"}`)
	var first model.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	body := `{"message": "second", "conversation_id": "` + first.ConversationID + `"}`
	w = postChat(t, router, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	history, err := store.History(context.Background(), first.ConversationID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(history))
	}
	if history[0].Content != "first" || history[2].Content != "second" {
		t.Errorf("transcript out of order: %+v", history)
	}
}

func TestChat_ValidationErrors(t *testing.T) {
	store := repository.NewMemoryStore()
	router := newTestRouter(t, &stubCompleter{reply: "reply"}, store)

	// Pre-create a conversation so we can prove validation failures do not
	// touch the transcript.
	convID, _ := store.CreateOrGet(context.Background(), "")

	cases := []struct {
		name string
		body string
	}{
		{"missing message", `{}`},
		{"empty message", `{"message": "", "conversation_id": "` + convID + `"}`},
		{"whitespace message", `{"message": "   ", "conversation_id": "` + convID + `"}`},
		{"oversized message", `{"message": "` + string(bytes.Repeat([]byte("x"), 51)) + `"}`},
		{"malformed json", `{"message": `},
		{"wrong message type", `{"message": 42}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postChat(t, router, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d, body=%s", w.Code, w.Body.String())
			}

			var resp model.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid error body: %v", err)
			}
			if resp.Status != "error" {
				t.Errorf("expected status error, got %q", resp.Status)
			}
			if resp.Error == "" {
				t.Error("expected an error message")
			}
		})
	}

	history, err := store.History(context.Background(), convID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("validation failures mutated the store: %+v", history)
	}
}

func TestChat_UpstreamFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	router := newTestRouter(t, &stubCompleter{err: errors.New("timeout")}, store)

	w := postChat(t, router, `{"message": "hello?"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}

	var resp model.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp.Status != "error" {
		t.Errorf("expected status error, got %q", resp.Status)
	}
	if resp.Error != "AI service unavailable" {
		t.Errorf("unexpected error message: %q", resp.Error)
	}
}

func TestChat_UserContextAccepted(t *testing.T) {
	store := repository.NewMemoryStore()
	router := newTestRouter(t, &stubCompleter{reply: "ok"}, store)

	w := postChat(t, router, `{"message": "hi", "user_context": {"page": "/products/7", "locale": "en-GB"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, &stubCompleter{err: errors.New("upstream down")}, repository.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp model.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	// Healthy even though the stub upstream would fail: no dependency check.
	if resp.Status != "healthy" {
		t.Errorf("expected healthy, got %q", resp.Status)
	}
	if resp.Timestamp == "" || resp.Service == "" {
		t.Errorf("incomplete health payload: %+v", resp)
	}
}

func TestConfig(t *testing.T) {
	router := newTestRouter(t, &stubCompleter{reply: "ok"}, repository.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp model.ConfigResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.MaxMessageLength != testChatCfg.MaxMessageLength {
		t.Errorf("expected max_message_length %d, got %d", testChatCfg.MaxMessageLength, resp.MaxMessageLength)
	}
	if resp.BrandName != testChatCfg.BrandName {
		t.Errorf("expected brand_name %q, got %q", testChatCfg.BrandName, resp.BrandName)
	}
	if resp.WelcomeMessage != testChatCfg.WelcomeMessage {
		t.Errorf("expected welcome_message %q, got %q", testChatCfg.WelcomeMessage, resp.WelcomeMessage)
	}
	if resp.TypingDelay != testChatCfg.TypingDelay {
		t.Errorf("expected typing_delay %d, got %d", testChatCfg.TypingDelay, resp.TypingDelay)
	}
}

func TestDeleteConversation(t *testing.T) {
	store := repository.NewMemoryStore()
	router := newTestRouter(t, &stubCompleter{reply: "ok"}, store)

	w := postChat(t, router, `{"message": "hello"}`)
	var chatResp model.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &chatResp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}

	deleteOnce := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/conversations/"+chatResp.ConversationID, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := deleteOnce()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp model.DeleteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("expected success, got %q", resp.Status)
	}

	if _, err := store.History(context.Background(), chatResp.ConversationID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Idempotent: a second delete reports success too.
	rec = deleteOnce()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeated delete, got %d", rec.Code)
	}
}
