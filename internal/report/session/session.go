// internal/report/session/session.go
package session

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"report-writer/internal/common/errors"
	"report-writer/internal/common/logger"
	"report-writer/internal/common/metrics"
	"report-writer/internal/models"
	"report-writer/internal/report/audit"
	"report-writer/internal/report/clipboard"
	"report-writer/internal/report/form"
	"report-writer/internal/report/generator"
	"report-writer/internal/report/notify"
	"report-writer/internal/report/prompt"
	"report-writer/internal/report/schema"
)

type State string

const (
	StateIdle       State = "idle"
	StateEditing    State = "editing"
	StateGenerating State = "generating"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

const (
	DefaultTimeout          = 120 * time.Second
	DefaultCopyConfirmDelay = 2 * time.Second

	FallbackFailureMessage = "Failed to generate report. Please try again."

	clipboardClearTimeout = 2 * time.Second
)

// Sentinels for errors.Is; returned errors carry their own details.
var (
	ErrPrecondition         = errors.NewGenerationPreconditionError("")
	ErrGenerationInProgress = errors.NewGenerationInProgressError()
	ErrNoReport             = errors.NewNoReportError()

	errDiscarded = stderrors.New("template changed while the report was being generated")
)

// Options tune one session.
type Options struct {
	// RequireComplete refuses generation until every required field is filled.
	RequireComplete  bool
	Timeout          time.Duration
	CopyConfirmDelay time.Duration
	// Backend and ClipboardBackend label metrics and audit rows.
	Backend          string
	ClipboardBackend string
}

// Deps are the collaborators a session talks to.
type Deps struct {
	Generator generator.Generator
	Notifier  notify.Notifier
	Clipboard clipboard.Writer
	Audit     audit.Recorder
	Logger    logger.Logger
}

// Session owns the template, field values, notes and generated report of one
// report writing session. All methods are safe for concurrent use.
type Session struct {
	id        string
	opts      Options
	generator generator.Generator
	notifier  notify.Notifier
	clipboard clipboard.Writer
	audit     audit.Recorder
	logger    logger.Logger

	mu         sync.Mutex
	state      State
	form       *form.Form
	fields     models.FieldSet
	notes      string
	report     string
	lastError  string
	busy       bool
	copied     bool
	copySeq    uint64
	copyTimer  *time.Timer
	epoch      uint64
	lastActive time.Time
}

func New(id string, deps Deps, opts Options) *Session {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CopyConfirmDelay <= 0 {
		opts.CopyConfirmDelay = DefaultCopyConfirmDelay
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.With(map[string]interface{}{"sessionId": id})
	if deps.Notifier == nil {
		deps.Notifier = notify.NewLogNotifier(log)
	}
	if deps.Audit == nil {
		deps.Audit = audit.Nop{}
	}
	return &Session{
		id:         id,
		opts:       opts,
		generator:  deps.Generator,
		notifier:   deps.Notifier,
		clipboard:  deps.Clipboard,
		audit:      deps.Audit,
		logger:     log,
		state:      StateIdle,
		lastActive: time.Now(),
	}
}

func (s *Session) ID() string {
	return s.id
}

// SelectTemplate mounts an empty form for id. The previous template's values
// and report are dropped and any in-flight generation for it is discarded.
func (s *Session) SelectTemplate(id models.TemplateID) error {
	sch, err := schema.For(id)
	if err != nil {
		return errors.NewTemplateNotFoundError(string(id))
	}
	empty, err := models.EmptyFieldSet(id)
	if err != nil {
		return errors.NewTemplateNotFoundError(string(id))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.form = form.New(sch, s.fieldsChanged)
	s.fields = empty
	s.report = ""
	s.lastError = ""
	s.resetCopiedLocked()
	s.state = StateEditing
	s.lastActive = time.Now()

	s.logger.Info("template selected", map[string]interface{}{"templateId": string(id)})
	return nil
}

// fieldsChanged receives the form's emissions; s.mu is already held.
func (s *Session) fieldsChanged(fs models.FieldSet) {
	s.fields = fs
}

// SetField updates one value. From Done or Failed the session returns to
// Editing while the last report stays visible.
func (s *Session) SetField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.form == nil {
		return errors.NewInvalidRequestError("select a template before editing fields")
	}
	if err := s.form.Set(name, value); err != nil {
		return err
	}
	s.editedLocked()
	return nil
}

// SetFields applies several values at once; nothing changes if one is rejected.
func (s *Session) SetFields(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.form == nil {
		return errors.NewInvalidRequestError("select a template before editing fields")
	}
	if err := s.form.SetMany(values); err != nil {
		return err
	}
	s.editedLocked()
	return nil
}

func (s *Session) SetNotes(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = notes
	s.editedLocked()
}

func (s *Session) editedLocked() {
	if s.state == StateDone || s.state == StateFailed {
		s.state = StateEditing
	}
	s.lastActive = time.Now()
}

// Generate sends the current template, fields and notes to the generator and
// returns the report. Exactly one outbound call is made per accepted request.
// A refused request changes nothing and makes no call.
func (s *Session) Generate(ctx context.Context) (string, error) {
	// the attempt outlives a caller that goes away; only the timeout ends it
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	if s.generator == nil {
		s.mu.Unlock()
		metrics.GenerationsRejected.WithLabelValues("no_generator").Inc()
		s.logger.Error("generate called on a session without a generator", nil)
		return "", errors.NewGenerationPreconditionError("no generator configured")
	}
	if s.form == nil || s.fields == nil {
		s.mu.Unlock()
		metrics.GenerationsRejected.WithLabelValues("precondition").Inc()
		s.notify(ctx, notify.Notification{
			Level:    notify.LevelWarning,
			Title:    "Missing information",
			Message:  "Please select a template and fill in the form before generating a report.",
			Blocking: true,
		})
		return "", errors.NewGenerationPreconditionError("no template selected")
	}
	if s.busy {
		s.mu.Unlock()
		metrics.GenerationsRejected.WithLabelValues("in_progress").Inc()
		return "", errors.NewGenerationInProgressError()
	}
	if s.opts.RequireComplete && !s.form.Complete() {
		fieldErrs := s.form.Errors()
		s.mu.Unlock()
		metrics.GenerationsRejected.WithLabelValues("incomplete").Inc()
		s.notify(ctx, notify.Notification{
			Level:    notify.LevelWarning,
			Title:    "Missing information",
			Message:  "Please complete all required fields before generating a report.",
			Blocking: true,
		})
		return "", errors.NewFormValidationFailedError(fieldErrs)
	}

	req := generator.Request{
		TemplateID: s.form.Template(),
		Fields:     s.fields,
		Notes:      s.notes,
		RequestID:  uuid.NewString(),
	}
	epoch := s.epoch
	s.busy = true
	s.state = StateGenerating
	s.lastActive = time.Now()
	s.mu.Unlock()

	log := s.logger.With(map[string]interface{}{
		"templateId": string(req.TemplateID),
		"requestId":  req.RequestID,
	})
	log.Info("generating report", nil)

	callCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	start := time.Now()
	res, err := s.generator.Generate(callCtx, req)
	cancel()
	s.record(ctx, req, start, err)

	s.mu.Lock()
	s.busy = false
	s.lastActive = time.Now()
	if epoch != s.epoch {
		s.mu.Unlock()
		log.Warn("discarding result for a replaced template", nil)
		return "", errors.NewGenerationFailedError(errDiscarded)
	}

	if err != nil {
		msg := generator.Message(err)
		if msg == "" {
			msg = FallbackFailureMessage
		}
		s.state = StateFailed
		s.lastError = msg
		s.mu.Unlock()

		log.Error("report generation failed", map[string]interface{}{
			"error":    err,
			"duration": time.Since(start).String(),
		})
		s.notify(ctx, notify.Notification{
			Level:   notify.LevelError,
			Title:   "Generation failed",
			Message: msg,
		})
		var se *errors.StandardError
		if stderrors.Is(err, generator.ErrGenerationTimeout) {
			se = errors.NewGenerationTimeoutError(s.opts.Timeout)
		} else {
			se = errors.NewGenerationFailedError(err)
		}
		se.Message = msg
		return "", se
	}

	s.report = res.Report
	s.lastError = ""
	s.state = StateDone
	s.resetCopiedLocked()
	s.mu.Unlock()

	log.Info("report generated", map[string]interface{}{
		"length":   len(res.Report),
		"duration": time.Since(start).String(),
	})
	s.notify(ctx, notify.Notification{
		Level:   notify.LevelSuccess,
		Title:   "Report generated",
		Message: "Your report is ready.",
	})
	return res.Report, nil
}

func (s *Session) record(ctx context.Context, req generator.Request, start time.Time, err error) {
	status := audit.StatusSucceeded
	if err != nil {
		status = audit.StatusFailed
	}
	attempt := audit.Attempt{
		RequestID: req.RequestID,
		SessionID: s.id,
		Template:  string(req.TemplateID),
		Backend:   s.opts.Backend,
		Status:    status,
		ErrorCode: generator.ErrorCode(err),
		Duration:  time.Since(start),
		HasNotes:  req.Notes != "",
		StartedAt: start,
	}
	if err := s.audit.Record(ctx, attempt); err != nil {
		s.logger.Warn("audit record failed", map[string]interface{}{"requestId": req.RequestID, "error": err})
	}
}

// CopyReport writes the displayed report, verbatim, to the clipboard. Edits
// made since it was generated do not affect what is copied.
func (s *Session) CopyReport(ctx context.Context) error {
	s.mu.Lock()
	report := s.report
	s.lastActive = time.Now()
	s.mu.Unlock()

	if report == "" {
		return errors.NewNoReportError()
	}
	if s.clipboard == nil {
		return errors.NewClipboardFailedError(stderrors.New("no clipboard configured"))
	}
	if err := s.clipboard.Write(ctx, report); err != nil {
		metrics.ClipboardCopies.WithLabelValues(s.opts.ClipboardBackend, "failed").Inc()
		s.logger.Error("copy to clipboard failed", map[string]interface{}{"error": err})
		s.notify(ctx, notify.Notification{
			Level:   notify.LevelError,
			Title:   "Copy failed",
			Message: "Could not copy the report to the clipboard.",
		})
		return errors.NewClipboardFailedError(err)
	}
	metrics.ClipboardCopies.WithLabelValues(s.opts.ClipboardBackend, "ok").Inc()

	s.mu.Lock()
	s.resetCopiedLocked()
	s.copied = true
	seq := s.copySeq
	s.copyTimer = time.AfterFunc(s.opts.CopyConfirmDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.copySeq == seq {
			s.copied = false
		}
	})
	s.mu.Unlock()

	s.notify(ctx, notify.Notification{
		Level:   notify.LevelSuccess,
		Title:   "Copied",
		Message: "Report copied to clipboard.",
	})
	return nil
}

func (s *Session) resetCopiedLocked() {
	s.copySeq++
	s.copied = false
	if s.copyTimer != nil {
		s.copyTimer.Stop()
		s.copyTimer = nil
	}
}

func (s *Session) notify(ctx context.Context, n notify.Notification) {
	n.SessionID = s.id
	n.At = time.Now().UTC()
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("notification not delivered", map[string]interface{}{
			"title": n.Title,
			"error": err,
		})
	}
}

// Busy reports whether a generation call is pending.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// FieldSet returns the latest field set emitted by the form, or nil in Idle.
func (s *Session) FieldSet() models.FieldSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields
}

// Prompt assembles what the generator would receive for the current state.
func (s *Session) Prompt() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fields == nil {
		return "", errors.NewGenerationPreconditionError("no template selected")
	}
	return prompt.Assemble(s.fields, s.notes), nil
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Close stops the copy confirmation timer.
// clearer is implemented by clipboard backends that keep per-session state.
type clearer interface {
	Clear(ctx context.Context) error
}

func (s *Session) Close() {
	s.mu.Lock()
	s.resetCopiedLocked()
	s.mu.Unlock()

	c, ok := s.clipboard.(clearer)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), clipboardClearTimeout)
	defer cancel()
	if err := c.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear clipboard entry", map[string]interface{}{"error": err})
	}
}
