// Package action implements the action modal: a bounded form that is
// seeded, validated, optionally confirmed, and submitted as exactly one
// mutation.
//
// Phases move closed -> editing -> validating -> [confirming] -> submitting
// and back to editing on failure, or to closed on success.
package action

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"rental-admin-backend/internal/metrics"
	"rental-admin-backend/internal/notification"
	"rental-admin-backend/internal/restclient"
)

// Phase is the state of a modal.
type Phase string

const (
	Closed     Phase = "closed"
	Editing    Phase = "editing"
	Validating Phase = "validating"
	Confirming Phase = "confirming"
	Submitting Phase = "submitting"
)

var (
	ErrNotOpen       = errors.New("action is not open")
	ErrBusy          = errors.New("action is already submitting")
	ErrReadOnlyField = errors.New("field is read-only")
	ErrNotConfirming = errors.New("action is not awaiting confirmation")
	ErrInvalidEdit   = errors.New("invalid edit")
)

// Definition declares one action. F is the form struct; its json names are
// the field names and its validate tags are the rules.
type Definition[F any] struct {
	Name     string
	Vertical string
	Title    string

	// Defaults seeds create flows.
	Defaults func() F
	// Messages maps field names to the message shown when they are invalid.
	Messages map[string]string
	// ReadOnly lists fields the user cannot set.
	ReadOnly []string
	// Derive recomputes read-only fields after every edit.
	Derive func(*F)
	// Check runs cross-field rules after tag validation.
	Check func(F) map[string]string
	// Load seeds edit flows from the target entity and returns its
	// human-readable identifier. Create flows leave it nil.
	Load func(ctx context.Context, id int64) (F, string, error)
	// Confirm, when set, makes the action destructive: it returns the prompt
	// shown before the mutation fires, naming the target.
	Confirm func(form F, target string) string

	Submit func(ctx context.Context, form F) error

	SuccessMessage string
	FailureMessage string
}

// State is a render-ready snapshot of a modal.
type State[F any] struct {
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Phase       Phase             `json:"phase"`
	Form        F                 `json:"form"`
	Target      string            `json:"target,omitempty"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	Error       string            `json:"error,omitempty"`
	Prompt      string            `json:"prompt,omitempty"`
	SubmitLabel string            `json:"submit_label"`
	ReadOnly    []string          `json:"read_only,omitempty"`
}

// Outcome reports what Submit did.
type Outcome string

const (
	NeedsConfirmation Outcome = "needs_confirmation"
	Succeeded         Outcome = "succeeded"
)

// Handle is the type-erased surface of a Modal.
type Handle interface {
	Name() string
	OpenFor(ctx context.Context, id int64) error
	Edit(patch json.RawMessage) error
	Submit(ctx context.Context) (Outcome, error)
	Confirm(ctx context.Context) (Outcome, error)
	CancelConfirm() error
	Close() error
	Snapshot() any
}

var _ Handle = (*Modal[struct{}])(nil)

// Modal runs one Definition. It holds at most one form at a time.
type Modal[F any] struct {
	def        Definition[F]
	notifier   notification.Notifier
	onComplete func()

	mu          sync.Mutex
	phase       Phase
	form        F
	target      string
	fieldErrors map[string]string
	lastError   string
	prompt      string
}

// New creates a closed modal. onComplete runs after every successful
// submission, before the modal resets.
func New[F any](def Definition[F], notifier notification.Notifier, onComplete func()) *Modal[F] {
	if def.FailureMessage == "" {
		def.FailureMessage = fmt.Sprintf("Failed to %s", def.Title)
	}
	if def.SuccessMessage == "" {
		def.SuccessMessage = fmt.Sprintf("%s succeeded", def.Title)
	}
	m := &Modal[F]{def: def, notifier: notifier, onComplete: onComplete}
	m.resetLocked()
	return m
}

func (m *Modal[F]) defaults() F {
	if m.def.Defaults != nil {
		return m.def.Defaults()
	}
	var zero F
	return zero
}

func (m *Modal[F]) resetLocked() {
	m.phase = Closed
	m.form = m.defaults()
	m.target = ""
	m.fieldErrors = nil
	m.lastError = ""
	m.prompt = ""
}

// Name returns the action name.
func (m *Modal[F]) Name() string {
	return m.def.Name
}

// Open seeds the form and enters editing. A nil seed uses the defaults,
// otherwise the seed carries the target's current values. target is the
// human-readable identifier of the entity being acted on.
func (m *Modal[F]) Open(seed *F, target string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == Submitting {
		return ErrBusy
	}
	m.resetLocked()
	if seed != nil {
		m.form = *seed
	}
	m.target = target
	m.derive()
	m.phase = Editing
	return nil
}

// OpenFor opens the modal for entity id, loading its current values when
// the action edits an existing entity.
func (m *Modal[F]) OpenFor(ctx context.Context, id int64) error {
	if m.def.Load == nil {
		return m.Open(nil, "")
	}
	form, target, err := m.def.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load %s target %d: %w", m.def.Name, id, err)
	}
	return m.Open(&form, target)
}

func (m *Modal[F]) derive() {
	if m.def.Derive != nil {
		m.def.Derive(&m.form)
	}
}

// Edit merges a JSON object of field values into the form. Read-only fields
// are rejected; derived fields are recomputed.
func (m *Modal[F]) Edit(patch json.RawMessage) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEdit, err)
	}
	// json matches keys case-insensitively, so the check must too.
	for key := range fields {
		for _, name := range m.def.ReadOnly {
			if strings.EqualFold(key, name) {
				return fmt.Errorf("%w: %s", ErrReadOnlyField, name)
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.phase {
	case Closed:
		return ErrNotOpen
	case Submitting:
		return ErrBusy
	}

	next := m.form
	if err := json.Unmarshal(patch, &next); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEdit, err)
	}
	m.form = next
	m.derive()
	m.phase = Editing
	m.prompt = ""
	for name := range fields {
		delete(m.fieldErrors, name)
	}
	return nil
}

// Submit validates the form and fires the mutation. Destructive actions
// stop at the confirmation step and report NeedsConfirmation; call Confirm
// to proceed.
func (m *Modal[F]) Submit(ctx context.Context) (Outcome, error) {
	m.mu.Lock()
	switch m.phase {
	case Closed:
		m.mu.Unlock()
		return "", ErrNotOpen
	case Submitting:
		m.mu.Unlock()
		return "", ErrBusy
	}

	m.phase = Validating
	form := m.form
	if err := m.validate(form); err != nil {
		m.phase = Editing
		m.mu.Unlock()
		metrics.ActionOutcomes.WithLabelValues(m.def.Name, "invalid").Inc()
		m.notify(ctx, notification.Notice{
			Kind:    notification.KindValidation,
			Title:   m.def.Title,
			Message: "Please correct the highlighted fields",
		})
		return "", err
	}
	m.fieldErrors = nil

	if m.def.Confirm != nil {
		m.phase = Confirming
		m.prompt = m.def.Confirm(form, m.target)
		m.mu.Unlock()
		return NeedsConfirmation, nil
	}
	return m.submitLocked(ctx, form)
}

// Confirm fires a destructive action awaiting confirmation.
func (m *Modal[F]) Confirm(ctx context.Context) (Outcome, error) {
	m.mu.Lock()
	switch m.phase {
	case Submitting:
		m.mu.Unlock()
		return "", ErrBusy
	case Confirming:
	default:
		m.mu.Unlock()
		return "", ErrNotConfirming
	}
	return m.submitLocked(ctx, m.form)
}

// CancelConfirm dismisses the confirmation and returns to editing.
func (m *Modal[F]) CancelConfirm() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != Confirming {
		return ErrNotConfirming
	}
	m.phase = Editing
	m.prompt = ""
	return nil
}

func (m *Modal[F]) validate(form F) error {
	err := validateForm(form, m.def.Messages)
	var verr *ValidationError
	if err != nil && !errors.As(err, &verr) {
		return err
	}
	if m.def.Check != nil {
		if extra := m.def.Check(form); len(extra) > 0 {
			if verr == nil {
				verr = &ValidationError{Fields: map[string]string{}}
			}
			for k, v := range extra {
				if _, ok := verr.Fields[k]; !ok {
					verr.Fields[k] = v
				}
			}
		}
	}
	if verr != nil {
		m.fieldErrors = verr.Fields
		return verr
	}
	return nil
}

// submitLocked is entered with m.mu held and releases it for the network call.
func (m *Modal[F]) submitLocked(ctx context.Context, form F) (Outcome, error) {
	m.phase = Submitting
	m.prompt = ""
	m.lastError = ""
	m.mu.Unlock()

	err := m.def.Submit(ctx, form)

	if err != nil {
		msg := restclient.MessageOr(err, m.def.FailureMessage)
		log.Printf("Action %s failed: %v", m.def.Name, err)
		metrics.ActionOutcomes.WithLabelValues(m.def.Name, "failure").Inc()

		m.mu.Lock()
		m.phase = Editing
		m.lastError = msg
		m.mu.Unlock()

		m.notify(ctx, notification.Notice{
			Kind:     notification.KindError,
			Blocking: true,
			Title:    m.def.Title,
			Message:  msg,
		})
		return "", &SubmitError{Message: msg, cause: err}
	}

	metrics.ActionOutcomes.WithLabelValues(m.def.Name, "success").Inc()
	m.notify(ctx, notification.Notice{
		Kind:    notification.KindSuccess,
		Title:   m.def.Title,
		Message: m.def.SuccessMessage,
	})
	if m.onComplete != nil {
		m.onComplete()
	}

	m.mu.Lock()
	m.resetLocked()
	m.mu.Unlock()
	return Succeeded, nil
}

func (m *Modal[F]) notify(ctx context.Context, n notification.Notice) {
	if m.notifier == nil {
		return
	}
	n.Vertical = m.def.Vertical
	n.Action = m.def.Name
	m.notifier.Notify(ctx, n)
}

// Close discards the form. Reopening always starts from a fresh seed.
func (m *Modal[F]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == Submitting {
		return ErrBusy
	}
	m.resetLocked()
	return nil
}

// State returns a snapshot of the modal.
func (m *Modal[F]) State() State[F] {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := State[F]{
		Name:        m.def.Name,
		Title:       m.def.Title,
		Phase:       m.phase,
		Form:        m.form,
		Target:      m.target,
		Error:       m.lastError,
		Prompt:      m.prompt,
		SubmitLabel: "Save",
		ReadOnly:    m.def.ReadOnly,
	}
	if len(m.fieldErrors) > 0 {
		s.FieldErrors = make(map[string]string, len(m.fieldErrors))
		for k, v := range m.fieldErrors {
			s.FieldErrors[k] = v
		}
	}
	if m.phase == Submitting {
		s.SubmitLabel = "Saving..."
	}
	return s
}

// Snapshot returns State as an untyped value.
func (m *Modal[F]) Snapshot() any {
	return m.State()
}

// SubmitError is a mutation failure with the message shown to the user.
type SubmitError struct {
	Message string
	cause   error
}

func (e *SubmitError) Error() string { return e.Message }

func (e *SubmitError) Unwrap() error { return e.cause }
