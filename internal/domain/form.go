package domain

type FormInput struct {
	RoomName string `json:"room_name"`
	Username string `json:"username"`
}

// Complete reports whether both fields are non-empty. Whitespace counts as
// content.
func (in FormInput) Complete() bool {
	return in.RoomName != "" && in.Username != ""
}

type FormStatus string

const (
	FormStatusIdle    FormStatus = "IDLE"
	FormStatusPending FormStatus = "PENDING"
	FormStatusSuccess FormStatus = "SUCCESS"
	FormStatusFailure FormStatus = "FAILURE"
)

type SubmissionStatus string

const (
	SubmissionIdle       SubmissionStatus = "IDLE"
	SubmissionSubmitting SubmissionStatus = "SUBMITTING"
)

// FormOutcome is the tagged result of the last submission. Result is set
// only for FormStatusSuccess; ErrorKind and Message only for
// FormStatusFailure.
type FormOutcome struct {
	Status    FormStatus
	Result    *TokenResult
	ErrorKind ErrorKind
	Message   string
}

func (o FormOutcome) Submission() SubmissionStatus {
	if o.Status == FormStatusPending {
		return SubmissionSubmitting
	}
	return SubmissionIdle
}

// FormView is an immutable snapshot of a form used for rendering.
type FormView struct {
	Input          FormInput
	Status         FormStatus
	SubmitDisabled bool
	ErrorMessage   string
	Link           string
	Username       string
}

func (v FormView) HasError() bool  { return v.Status == FormStatusFailure }
func (v FormView) HasResult() bool { return v.Status == FormStatusSuccess }
func (v FormView) Pending() bool   { return v.Status == FormStatusPending }
