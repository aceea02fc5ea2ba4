package handler

import (
    "io"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-admin/internal/config"
)

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    if err := h.Chat(e.NewContext(req, rec)); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    return rec
}

func TestChatForwardsToUpstream(t *testing.T) {
    var gotAuth, gotBody string
    upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        gotAuth = r.Header.Get("Authorization")
        buf, _ := io.ReadAll(r.Body)
        gotBody = string(buf)
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"reply":"Checkout is at 11:00."}`))
    }))
    defer upstream.Close()

    h := NewChatHandler(config.Config{ChatAPIURL: upstream.URL, ChatAPIKey: "k-123"})
    rec := postChat(t, h, `{"messages":[{"role":"user","content":"checkout time?"}]}`)

    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200", rec.Code)
    }
    if gotAuth != "Bearer k-123" {
        t.Fatalf("auth header = %q", gotAuth)
    }
    if !strings.Contains(gotBody, "checkout time?") {
        t.Fatalf("upstream body = %q, missing user message", gotBody)
    }
    if !strings.Contains(rec.Body.String(), "Checkout is at 11:00.") {
        t.Fatalf("response = %q, upstream reply not relayed", rec.Body.String())
    }
}

func TestChatRelaysUpstreamStatus(t *testing.T) {
    upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusTooManyRequests)
        _, _ = w.Write([]byte(`{"error":"quota"}`))
    }))
    defer upstream.Close()

    h := NewChatHandler(config.Config{ChatAPIURL: upstream.URL})
    rec := postChat(t, h, `{"messages":[{"role":"user","content":"hi"}]}`)
    if rec.Code != http.StatusTooManyRequests {
        t.Fatalf("status = %d, want upstream 429 relayed", rec.Code)
    }
}

func TestChatValidation(t *testing.T) {
    h := NewChatHandler(config.Config{ChatAPIURL: "http://localhost:1"})

    rec := postChat(t, h, `{"messages":[]}`)
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("empty messages: status = %d, want 400", rec.Code)
    }

    rec = postChat(t, h, `{"messages":[{"role":"user","content":""}]}`)
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("blank content: status = %d, want 400", rec.Code)
    }
}

func TestChatUnconfigured(t *testing.T) {
    h := NewChatHandler(config.Config{})
    rec := postChat(t, h, `{"messages":[{"role":"user","content":"hi"}]}`)
    if rec.Code != http.StatusServiceUnavailable {
        t.Fatalf("status = %d, want 503 when LLM_API_URL unset", rec.Code)
    }
}
