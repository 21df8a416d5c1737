package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"agent-platform/services/agent-api/internal/config"
	"agent-platform/services/agent-api/internal/domain/chat"
	"agent-platform/services/agent-api/internal/interfaces/httpserver/requests"
	"agent-platform/services/agent-api/internal/interfaces/httpserver/responses"
	"agent-platform/services/agent-api/internal/utils/platformerrors"
)

const transcriptionHeaderLimit = 200

// MessageHandler exposes the text and voice conversation endpoints.
type MessageHandler struct {
	cfg     *config.Config
	service *chat.Service
	log     zerolog.Logger
}

func NewMessageHandler(cfg *config.Config, service *chat.Service, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		cfg:     cfg,
		service: service,
		log:     log.With().Str("component", "message-handler").Logger(),
	}
}

// SendText godoc
// @Summary      Send a text message
// @Description  Generates an assistant reply for the session and stores both turns.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        request  body      requests.TextMessageRequest  true  "Message"
// @Success      201      {object}  responses.TextMessageResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Failure      502      {object}  responses.ErrorResponse
// @Router       /v1/messages/text [post]
func (h *MessageHandler) SendText(c *gin.Context) {
	var req requests.TextMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(),
			"c9e3a7d1-5b8f-44c2-a0e6-3d5b7f9a1c40")
		return
	}

	userMsg, assistantMsg, err := h.service.SendText(c.Request.Context(), req.SessionID, req.Content)
	if err != nil {
		responses.HandleError(c, err, "text pipeline failed")
		return
	}

	c.JSON(http.StatusCreated, responses.TextMessageResponse{
		UserMessage:      responses.NewMessageResponse(userMsg),
		AssistantMessage: responses.NewMessageResponse(assistantMsg),
	})
}

// SendVoice godoc
// @Summary      Send a voice message
// @Description  Transcribes the uploaded audio, generates a reply, and streams it back as speech.
// @Tags         messages
// @Accept       multipart/form-data
// @Produce      audio/mpeg
// @Param        session_id  formData  string  true  "Session ID (sess_xxx)"
// @Param        audio       formData  file    true  "Audio recording"
// @Success      200  {file}    binary
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      502  {object}  responses.ErrorResponse
// @Router       /v1/messages/voice [post]
func (h *MessageHandler) SendVoice(c *gin.Context) {
	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		sessionID = c.Query("session_id")
	}
	if sessionID == "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "session_id is required",
			"d1f5b9e3-7a0c-48d6-b2e4-5f7a9c1e3b44")
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "audio file is required",
			"e3a7c1f5-9b2d-40e8-a4c6-7b9d1f3a5c48")
		return
	}
	if fileHeader.Size > h.cfg.MaxAudioBytes {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("audio file exceeds %d bytes", h.cfg.MaxAudioBytes),
			"f5b9e3a7-1c4d-42f0-b6e8-9d1f3b5a7c52")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "failed to read audio file",
			"a1c5e9b3-7d0f-44a2-b8c4-1f3b5d7e9a56")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxAudioBytes+1))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "failed to read audio file",
			"b3d7f1c5-9e2a-46b4-a0d6-3f5b7d9e1a60")
		return
	}
	if int64(len(audio)) > h.cfg.MaxAudioBytes {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("audio file exceeds %d bytes", h.cfg.MaxAudioBytes),
			"c5e9a3d7-1f4b-48c6-b2e8-5d7f9b1c3a64")
		return
	}

	if len(audio) > 0 {
		if detected := mimetype.Detect(audio); !plausibleAudio(detected) {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
				"uploaded file does not look like audio",
				"d7f1b5c9-3e6a-40d4-b8f2-7b9d1f3e5a68")
			return
		}
	}

	exchange, err := h.service.SendVoice(c.Request.Context(), sessionID, audio, audioFilename(fileHeader.Filename, audio))
	if err != nil {
		responses.HandleError(c, err, "voice pipeline failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename=response.mp3`)
	c.Header("X-Transcription", headerSafe(exchange.Transcription, transcriptionHeaderLimit))
	c.Data(http.StatusOK, "audio/mpeg", exchange.Audio)
}

// plausibleAudio accepts anything that sniffs as audio or a media
// container; unrecognized binary passes through for the provider to judge,
// only clearly textual or image content is rejected.
func plausibleAudio(detected *mimetype.MIME) bool {
	for mt := detected; mt != nil; mt = mt.Parent() {
		s := mt.String()
		if strings.HasPrefix(s, "audio/") || strings.HasPrefix(s, "video/") {
			return true
		}
		if strings.HasPrefix(s, "text/") || strings.HasPrefix(s, "image/") {
			return false
		}
	}
	return true
}

// audioFilename returns the upload's own name when present, otherwise a
// name derived from the sniffed content type so the transcription provider
// sees a meaningful extension.
func audioFilename(name string, audio []byte) string {
	if name != "" {
		return name
	}
	if len(audio) == 0 {
		return "audio.webm"
	}
	return "audio" + mimetype.Detect(audio).Extension()
}

// headerSafe truncates a value and strips characters illegal in headers.
func headerSafe(value string, limit int) string {
	value = strings.NewReplacer("\r", " ", "\n", " ").Replace(value)
	runes := []rune(value)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return value
}
