package handler

import (
    "bytes"
    "encoding/json"
    "io"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-admin/internal/config"
)

// ChatHandler proxies the staff concierge chat to an external LLM
// endpoint.  The server keeps the API key out of the browser: the
// frontend talks to this handler and the handler attaches the bearer
// key when forwarding.
type ChatHandler struct {
    Cfg    config.Config
    Client *http.Client
}

// NewChatHandler builds the handler with a dedicated HTTP client.  Ten
// seconds covers slow LLM completions without pinning desk requests
// forever.
func NewChatHandler(cfg config.Config) *ChatHandler {
    return &ChatHandler{
        Cfg:    cfg,
        Client: &http.Client{Timeout: 10 * time.Second},
    }
}

type chatMessage struct {
    Role    string `json:"role"`
    Content string `json:"content"`
}

type chatReq struct {
    Messages []chatMessage `json:"messages"`
}

// Chat handles POST /v1/chat.  The message list is forwarded verbatim
// and the upstream JSON is relayed with its original status code.
func (h *ChatHandler) Chat(c echo.Context) error {
    if h.Cfg.ChatAPIURL == "" {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "chat is not configured"})
    }
    var req chatReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if len(req.Messages) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "messages required"})
    }
    for _, m := range req.Messages {
        if m.Role == "" || m.Content == "" {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "each message needs role and content"})
        }
    }

    body, err := json.Marshal(req)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encode request failed"})
    }

    upstream, err := http.NewRequestWithContext(c.Request().Context(), http.MethodPost, h.Cfg.ChatAPIURL, bytes.NewReader(body))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build upstream request failed"})
    }
    upstream.Header.Set("Content-Type", "application/json")
    if h.Cfg.ChatAPIKey != "" {
        upstream.Header.Set("Authorization", "Bearer "+h.Cfg.ChatAPIKey)
    }

    resp, err := h.Client.Do(upstream)
    if err != nil {
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "chat upstream unreachable"})
    }
    defer resp.Body.Close()

    payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
    if err != nil {
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "read upstream response failed"})
    }
    return c.Blob(resp.StatusCode, "application/json", payload)
}
