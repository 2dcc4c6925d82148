// internal/api/templates.go
package api

import (
	"github.com/gin-gonic/gin"

	"report-writer/internal/common/errors"
	"report-writer/internal/common/validation"
	"report-writer/internal/models"
	"report-writer/internal/report/form"
	"report-writer/internal/report/generator"
	"report-writer/internal/report/prompt"
	"report-writer/internal/report/schema"
)

type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// GET /api/templates
func (h *TemplateHandler) List(c *gin.Context) {
	RespondOK(c, gin.H{"templates": models.Templates()})
}

type templateSchemaResponse struct {
	Template   models.TemplateDescriptor `json:"template"`
	Fields     []form.FieldView          `json:"fields"`
	JSONSchema validation.JSONSchema     `json:"jsonSchema"`
}

// GET /api/templates/:id/schema
func (h *TemplateHandler) Schema(c *gin.Context) {
	id, err := models.ParseTemplateID(c.Param("id"))
	if err != nil {
		RespondError(c, errors.NewTemplateNotFoundError(c.Param("id")))
		return
	}
	sch := schema.MustFor(id)
	desc, _ := models.Descriptor(id)

	RespondOK(c, templateSchemaResponse{
		Template:   desc,
		Fields:     form.New(sch, nil).Fields(),
		JSONSchema: sch.JSONSchema(),
	})
}

// POST /api/prompt
//
// Returns the prompt the generator would build for a wire request.
func (h *TemplateHandler) Prompt(c *gin.Context) {
	req, ok := bindWireRequest(c)
	if !ok {
		return
	}
	RespondOK(c, gin.H{
		"template": req.TemplateID,
		"prompt":   prompt.Assemble(req.Fields, req.Notes),
	})
}

// bindWireRequest decodes a generation request body, answering 400 when the
// template, a field name or a choice value is not recognised.
func bindWireRequest(c *gin.Context) (generator.Request, bool) {
	var body generator.WireRequest
	if !bindJSON(c, &body) {
		return generator.Request{}, false
	}
	if !models.TemplateID(body.Template).IsValid() {
		RespondError(c, errors.NewTemplateNotFoundError(body.Template))
		return generator.Request{}, false
	}
	req, err := generator.FromWire(body)
	if err != nil {
		if !errors.IsStandardError(err) {
			err = errors.NewInvalidRequestError(err.Error())
		}
		RespondError(c, err)
		return generator.Request{}, false
	}
	return req, true
}
