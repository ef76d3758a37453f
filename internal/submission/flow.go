// Package submission implements the finite state machine behind the site's
// forms. A Flow collects validated fields, performs the required primary
// write, fires an optional best-effort secondary notification, optionally
// refreshes a read view, and resolves to a terminal Success or Error phase
// with user-facing messaging.
package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Phase is the lifecycle state of a single form.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
	PhaseError      Phase = "error"
)

const defaultTimeout = 15 * time.Second

var (
	// ErrMissingPrimaryWriter indicates the flow was built without its
	// required collaborator.
	ErrMissingPrimaryWriter = errors.New("submission: primary writer is required")
	// ErrSubmissionInFlight is returned when Submit is called while a prior
	// submission is still running; the call is a no-op.
	ErrSubmissionInFlight = errors.New("submission: a submission is already in flight")
	// ErrInvalidFields wraps validation refusals; no state transition and no
	// network call happens for these.
	ErrInvalidFields = errors.New("submission: invalid fields")
)

// Fields is the validated field payload captured at submit time.
type Fields map[string]string

func (f Fields) clone() Fields {
	if f == nil {
		return nil
	}
	copied := make(Fields, len(f))
	for key, value := range f {
		copied[key] = value
	}
	return copied
}

// PrimaryWriter performs the durable write that alone determines the
// submission outcome.
type PrimaryWriter interface {
	Write(ctx context.Context, fields Fields) error
}

// Notifier delivers the best-effort secondary notification. Its outcome
// never affects the flow's phase.
type Notifier interface {
	Notify(ctx context.Context, fields Fields) error
}

// Refresher re-reads the authoritative view after a successful write so the
// caller renders the just-created record instead of a local echo.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// UserMessager lets collaborator errors carry a message that is safe to show
// to the person submitting the form.
type UserMessager interface {
	UserMessage() string
}

// Config wires a Flow's collaborators.
type Config struct {
	Primary   PrimaryWriter
	Notifier  Notifier
	Refresher Refresher
	// Validate refuses a payload before any transition or network call.
	Validate func(fields Fields) error
	// Timeout bounds the primary write and refresh. Zero applies the 15s
	// default; negative disables the deadline.
	Timeout time.Duration
	// FallbackMessage replaces collaborator errors that carry no user-safe
	// text.
	FallbackMessage string
	Clock           func() time.Time
	Logger          *zap.Logger
}

// Flow is the state machine for one form instance. At most one submission is
// in flight at a time; concurrent Submit calls while submitting are ignored.
type Flow struct {
	primary   PrimaryWriter
	notifier  Notifier
	refresher Refresher
	validate  func(Fields) error
	timeout   time.Duration
	fallback  string
	clock     func() time.Time
	logger    *zap.Logger

	stateMu      sync.Mutex
	phase        Phase
	errorMessage string
	snapshot     Fields
	submittedAt  time.Time
}

// Snapshot is an observable copy of the flow state.
type Snapshot struct {
	Phase        Phase
	ErrorMessage string
	Fields       Fields
	SubmittedAt  time.Time
}

// NewFlow constructs a Flow in the Idle phase.
func NewFlow(cfg Config) (*Flow, error) {
	if cfg.Primary == nil {
		return nil, ErrMissingPrimaryWriter
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	if timeout < 0 {
		timeout = 0
	}
	fallback := cfg.FallbackMessage
	if fallback == "" {
		fallback = "The system encountered an unexpected error."
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{
		primary:   cfg.Primary,
		notifier:  cfg.Notifier,
		refresher: cfg.Refresher,
		validate:  cfg.Validate,
		timeout:   timeout,
		fallback:  fallback,
		clock:     clock,
		logger:    logger,
		phase:     PhaseIdle,
	}, nil
}

// State returns a snapshot of the current phase, error message and captured
// fields.
func (f *Flow) State() Snapshot {
	f.stateMu.Lock()
	defer f.stateMu.Unlock()
	return Snapshot{
		Phase:        f.phase,
		ErrorMessage: f.errorMessage,
		Fields:       f.snapshot.clone(),
		SubmittedAt:  f.submittedAt,
	}
}

// Submit runs one submission to a terminal phase. It returns
// ErrSubmissionInFlight when a prior submission has not resolved, and a
// validation error (wrapping ErrInvalidFields) when the payload is refused
// before any transition. In both cases the flow state is untouched. All
// other outcomes, including a failed primary write, are reported through the
// resulting phase rather than the return value.
func (f *Flow) Submit(ctx context.Context, fields Fields) error {
	f.stateMu.Lock()
	if f.phase == PhaseSubmitting {
		f.stateMu.Unlock()
		return ErrSubmissionInFlight
	}
	if f.validate != nil {
		if err := f.validate(fields); err != nil {
			f.stateMu.Unlock()
			return fmt.Errorf("%w: %w", ErrInvalidFields, err)
		}
	}
	f.phase = PhaseSubmitting
	f.errorMessage = ""
	f.snapshot = fields.clone()
	f.submittedAt = f.clock()
	f.stateMu.Unlock()

	writeCtx := ctx
	cancel := func() {}
	if f.timeout > 0 {
		writeCtx, cancel = context.WithTimeout(ctx, f.timeout)
	}
	defer cancel()

	if err := f.primary.Write(writeCtx, fields); err != nil {
		message := f.fallback
		var messager UserMessager
		if errors.As(err, &messager) && messager.UserMessage() != "" {
			message = messager.UserMessage()
		}
		f.logger.Error("primary write failed", zap.Error(err))
		f.setError(message)
		return nil
	}

	if f.notifier != nil {
		// Detached from the request deadline: the notification must not
		// gate or delay the Success transition.
		notifyCtx := context.WithoutCancel(ctx)
		if err := f.notifier.Notify(notifyCtx, fields); err != nil {
			f.logger.Warn("secondary notification failed, submission already recorded", zap.Error(err))
		}
	}

	if f.refresher != nil {
		if err := f.refresher.Refresh(writeCtx); err != nil {
			f.logger.Warn("post-write refresh failed", zap.Error(err))
		}
	}

	f.setPhase(PhaseSuccess)
	return nil
}

// Reset returns a terminal flow to Idle, clearing the error message and the
// captured fields. Resetting while a submission is in flight is a no-op.
func (f *Flow) Reset() {
	f.stateMu.Lock()
	defer f.stateMu.Unlock()
	if f.phase == PhaseSubmitting {
		return
	}
	f.phase = PhaseIdle
	f.errorMessage = ""
	f.snapshot = nil
}

func (f *Flow) setPhase(phase Phase) {
	f.stateMu.Lock()
	f.phase = phase
	f.stateMu.Unlock()
}

func (f *Flow) setError(message string) {
	f.stateMu.Lock()
	f.phase = PhaseError
	f.errorMessage = message
	f.stateMu.Unlock()
}

// RequireFields returns a validator that refuses payloads with missing or
// blank values for any of the named fields.
func RequireFields(names ...string) func(Fields) error {
	return func(fields Fields) error {
		for _, name := range names {
			if isBlank(fields[name]) {
				return fmt.Errorf("field %q is required", name)
			}
		}
		return nil
	}
}

func isBlank(value string) bool {
	for _, r := range value {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
