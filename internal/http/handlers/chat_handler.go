// Chat HTTP handlers.
//
//   - POST /api/chat               (ask the assistant)
//   - GET  /api/chat/{sessionId}   (transcript, oldest first)
//
// Idempotency:
// When the client repeats POST /api/chat with the same Idempotency-Key, the
// stored reply is returned with `Idempotency-Replayed: true` and the model is
// not called again.
//
// Sessions:
// After a successful answer the chat session id is written to the signed
// cookie session. Every request must still carry sessionId in its body.
package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/mhd0331/JinanCampaign/internal/http/middleware"
	"github.com/mhd0331/JinanCampaign/internal/services"
)

// chatSessionKey is the cookie-session key holding the chat session id.
const chatSessionKey = "chat_session_id"

// ChatRequest is the JSON payload of POST /api/chat.
type ChatRequest struct {
	Message   string `json:"message"   example:"진안군 교통 공약이 궁금합니다"`
	SessionID string `json:"sessionId" example:"session_1718000000000_ab12cd"`
}

// ChatResponse is the body of POST /api/chat.
type ChatResponse struct {
	Success    bool    `json:"success"    example:"true"`
	Response   string  `json:"response"`
	Confidence float64 `json:"confidence" example:"0.85"`
	MessageID  string  `json:"messageId"`
}

func chatResponse(r *services.ChatReply) ChatResponse {
	return ChatResponse{Success: true, Response: r.Response, Confidence: r.Confidence, MessageID: r.MessageID}
}

// PostChat godoc
// @ID          postChat
// @Summary     Ask the campaign assistant
// @Description Builds a prompt from the training documents and asks the model. Model failures yield a fallback reply with confidence 0.1, never an error.
// @Description Supports idempotency via the Idempotency-Key header (same key → same reply).
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header    string              false  "Idempotency key for safe retries"
// @Param       body             body      handlers.ChatRequest true  "Question"
// @Success     200              {object}  handlers.ChatResponse
// @Header      200              {string}  Idempotency-Replayed  "true when served from a previous request"
// @Failure     400              {object}  handlers.ErrorResponse
// @Failure     429              {object}  handlers.ErrorResponse
// @Failure     500              {object}  handlers.ErrorResponse
// @Router      /api/chat [post]
func (h *Handlers) PostChat(c *gin.Context) {
	ctx := c.Request.Context()

	key, hasKey := middleware.GetIdempotencyKey(c)
	if hasKey && middleware.IsReplay(c) {
		prev, err := h.chat.Replay(ctx, key)
		if err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("chat replay lookup failed")
		}
		if prev != nil {
			c.Header(middleware.HeaderIdempotencyReplayed, "true")
			c.JSON(http.StatusOK, chatResponse(prev))
			return
		}
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	reply, err := h.chat.Answer(ctx, req.Message, req.SessionID)
	if err != nil {
		respond(c, err, "AI 상담 서비스에 문제가 발생했습니다.")
		return
	}
	if hasKey {
		h.chat.Remember(ctx, key, reply.MessageID)
	}
	if sess := chatSession(c); sess != nil {
		sess.Set(chatSessionKey, req.SessionID)
		if err := sess.Save(); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("save chat session")
		}
	}
	c.JSON(http.StatusOK, chatResponse(reply))
}

// ChatHistory godoc
// @ID          chatHistory
// @Summary     Chat transcript
// @Tags        Chat
// @Produce     json
// @Param       sessionId  path      string  true  "Chat session id"
// @Success     200        {object}  map[string]interface{}  "{success, history}"
// @Failure     400        {object}  handlers.ErrorResponse
// @Failure     500        {object}  handlers.ErrorResponse
// @Router      /api/chat/{sessionId} [get]
func (h *Handlers) ChatHistory(c *gin.Context) {
	items, err := h.chat.History(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respond(c, err, "failed to load chat history")
		return
	}
	ok(c, http.StatusOK, "history", items)
}

// chatSession returns the cookie session, or nil when the sessions
// middleware is not installed.
func chatSession(c *gin.Context) sessions.Session {
	if _, exists := c.Get(sessions.DefaultKey); !exists {
		return nil
	}
	return sessions.Default(c)
}
