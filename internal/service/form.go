package service

import (
	"context"
	"errors"
	"sync"

	"webinar-token-service/internal/domain"
	"webinar-token-service/internal/logger"
)

var (
	ErrSubmitInFlight = errors.New("a token request is already in flight")
	ErrFormClosed     = errors.New("form is closed")
)

// Form holds the state of one token request form: the two inputs and the
// outcome of the last submission. At most one request is in flight at a
// time. Closing the form cancels that request and discards its result.
type Form struct {
	svc TokenService

	mu      sync.Mutex
	input   domain.FormInput
	outcome domain.FormOutcome
	issued  *domain.IssuedToken
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewForm(svc TokenService) *Form {
	ctx, cancel := context.WithCancel(context.Background())
	return &Form{
		svc:     svc,
		outcome: domain.FormOutcome{Status: domain.FormStatusIdle},
		ctx:     ctx,
		cancel:  cancel,
	}
}

// UpdateRoomName stores the raw room name. An empty string clears it.
func (f *Form) UpdateRoomName(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input.RoomName = value
}

// UpdateUsername stores the raw username. An empty string clears it.
func (f *Form) UpdateUsername(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input.Username = value
}

// Submit requests a token for the current inputs and blocks until the
// request settles. ctx bounds the wait; Close also aborts it.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFormClosed
	}
	if f.outcome.Status == domain.FormStatusPending {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	in := f.input
	if !in.Complete() {
		err := domain.NewValidationError()
		f.fail(err)
		f.mu.Unlock()
		return err
	}
	f.outcome = domain.FormOutcome{Status: domain.FormStatusPending}

	reqCtx, cancel := context.WithCancel(f.ctx)
	stop := context.AfterFunc(ctx, cancel)
	f.mu.Unlock()

	issued, result, err := f.svc.IssueAdminToken(reqCtx, in)
	stop()
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		logger.Debug("Dropping token result for closed form", "room", in.RoomName)
		return ErrFormClosed
	}
	if err != nil {
		f.fail(err)
		return err
	}

	f.outcome = domain.FormOutcome{Status: domain.FormStatusSuccess, Result: result}
	f.issued = issued
	return nil
}

// fail records err as the outcome. Callers hold f.mu.
func (f *Form) fail(err error) {
	f.outcome = domain.FormOutcome{
		Status:    domain.FormStatusFailure,
		ErrorKind: domain.KindOf(err),
		Message:   domain.UserMessage(err),
	}
	f.issued = nil
}

// Clear drops a successful result and empties both inputs. A failure
// message stays. Calling it twice is the same as calling it once.
func (f *Form) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.outcome.Status == domain.FormStatusSuccess {
		f.outcome = domain.FormOutcome{Status: domain.FormStatusIdle}
		f.issued = nil
	}
	f.input = domain.FormInput{}
}

// Close cancels any in-flight request. The form rejects further submits.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	f.cancel()
}

func (f *Form) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Form) Outcome() domain.FormOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcome
}

func (f *Form) Input() domain.FormInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// Snapshot returns what the page should show right now.
func (f *Form) Snapshot() domain.FormView {
	f.mu.Lock()
	defer f.mu.Unlock()

	view := domain.FormView{
		Input:          f.input,
		Status:         f.outcome.Status,
		SubmitDisabled: f.outcome.Status == domain.FormStatusPending,
	}
	switch f.outcome.Status {
	case domain.FormStatusFailure:
		view.ErrorMessage = f.outcome.Message
	case domain.FormStatusSuccess:
		if f.issued != nil {
			view.Link = f.issued.Link
			view.Username = f.issued.Username
		}
	}
	return view
}
