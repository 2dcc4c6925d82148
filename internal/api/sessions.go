// internal/api/sessions.go
package api

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"report-writer/internal/common/errors"
	"report-writer/internal/models"
	"report-writer/internal/report/clipboard"
	"report-writer/internal/report/session"
)

// ClipboardReaderFunc returns the clipboard a session copies into, or nil when
// the configured clipboard cannot be read back over HTTP.
type ClipboardReaderFunc func(sessionID string) clipboard.Reader

type SessionHandler struct {
	registry  *session.Registry
	clipboard ClipboardReaderFunc
}

func NewSessionHandler(registry *session.Registry, clipboard ClipboardReaderFunc) *SessionHandler {
	return &SessionHandler{registry: registry, clipboard: clipboard}
}

type selectTemplateRequest struct {
	Template string `json:"template" binding:"required"`
}

type patchFieldsRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (h *SessionHandler) session(c *gin.Context) (*session.Session, bool) {
	s, err := h.registry.Get(c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return nil, false
	}
	return s, true
}

// POST /api/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	s := h.registry.Create()
	c.JSON(http.StatusCreated, gin.H{"session": s.View()})
}

// GET /api/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	RespondOK(c, gin.H{"session": s.View()})
}

// DELETE /api/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.registry.Delete(c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /api/sessions/:id/template
func (h *SessionHandler) SelectTemplate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req selectTemplateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := s.SelectTemplate(models.TemplateID(req.Template)); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"session": s.View()})
}

// PATCH /api/sessions/:id/fields
func (h *SessionHandler) PatchFields(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req patchFieldsRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := s.SetFields(req.Fields); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"session": s.View()})
}

// PUT /api/sessions/:id/notes
func (h *SessionHandler) PutNotes(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req notesRequest
	if !bindJSON(c, &req) {
		return
	}
	s.SetNotes(req.Notes)
	RespondOK(c, gin.H{"session": s.View()})
}

// GET /api/sessions/:id/prompt
func (h *SessionHandler) Prompt(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	p, err := s.Prompt()
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"prompt": p})
}

// POST /api/sessions/:id/generate
func (h *SessionHandler) Generate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	report, err := s.Generate(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"report": report, "session": s.View()})
}

// POST /api/sessions/:id/copy
func (h *SessionHandler) Copy(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.CopyReport(c.Request.Context()); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"session": s.View()})
}

// GET /api/sessions/:id/clipboard
func (h *SessionHandler) Clipboard(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var reader clipboard.Reader
	if h.clipboard != nil {
		reader = h.clipboard(s.ID())
	}
	if reader == nil {
		RespondError(c, errors.NewInvalidRequestError("clipboard is not readable for this deployment"))
		return
	}

	text, err := reader.Read(c.Request.Context())
	if stderrors.Is(err, clipboard.ErrEmpty) {
		RespondError(c, errors.NewNoReportError())
		return
	}
	if err != nil {
		RespondError(c, errors.NewClipboardFailedError(err))
		return
	}
	RespondOK(c, gin.H{"text": text})
}
