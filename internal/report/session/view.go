// internal/report/session/view.go
package session

import (
	"time"

	"report-writer/internal/models"
	"report-writer/internal/report/form"
)

// View is a point-in-time copy of a session for rendering.
type View struct {
	ID         string            `json:"id"`
	State      State             `json:"state"`
	Template   models.TemplateID `json:"template,omitempty"`
	Fields     []form.FieldView  `json:"fields,omitempty"`
	Values     map[string]string `json:"values,omitempty"`
	Complete   bool              `json:"complete"`
	Notes      string            `json:"notes"`
	Report     string            `json:"report,omitempty"`
	LastError  string            `json:"lastError,omitempty"`
	Busy       bool              `json:"busy"`
	Copied     bool              `json:"copied"`
	LastActive time.Time         `json:"lastActive"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:         s.id,
		State:      s.state,
		Notes:      s.notes,
		Report:     s.report,
		LastError:  s.lastError,
		Busy:       s.busy,
		Copied:     s.copied,
		LastActive: s.lastActive,
	}
	if s.form != nil {
		v.Template = s.form.Template()
		v.Fields = s.form.Fields()
		v.Complete = s.form.Complete()
	}
	if s.fields != nil {
		v.Values = s.fields.Values()
	}
	return v
}
