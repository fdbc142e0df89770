package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/aidosk/devfolio-api/internal/entity"
)

// Wizard step numbers, one per submission section.
const (
	StepClient   = 1
	StepAudience = 2
	StepMetrics  = 3
	StepContact  = 4

	stepCount = 4
)

type WizardPhase int

const (
	PhaseIdle WizardPhase = iota
	PhaseStep
	PhaseValidating
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

// WizardState is a tagged union over the wizard lifecycle: exactly the
// fields matching the phase are meaningful. Step is set for PhaseStep,
// FieldErrors after a failed validation, SubmissionID for PhaseSucceeded,
// Err for PhaseFailed.
type WizardState struct {
	Phase        WizardPhase
	Step         int
	FieldErrors  []FieldError
	SubmissionID string
	Err          error
}

type briefSubmitter interface {
	Execute(ctx context.Context, input SubmitBriefInput) (*SubmitBriefOutput, error)
}

// Wizard drives a single submission through the step-gated flow:
// idle → step1..4 → validating → submitting → succeeded|failed.
// Forward navigation requires the current step's section to validate;
// backward navigation is always allowed and never discards entered data.
// One submission at a time: Submit while submitting is rejected.
type Wizard struct {
	state     WizardState
	draft     entity.BriefSubmission
	submitter briefSubmitter
}

func NewWizard(submitter briefSubmitter) *Wizard {
	return &Wizard{
		state:     WizardState{Phase: PhaseIdle},
		submitter: submitter,
	}
}

func (w *Wizard) State() WizardState {
	return w.state
}

func (w *Wizard) Draft() entity.BriefSubmission {
	return w.draft
}

func (w *Wizard) Start() {
	if w.state.Phase == PhaseIdle {
		w.state = WizardState{Phase: PhaseStep, Step: StepClient}
	}
}

func (w *Wizard) SetClient(s entity.ClientSection)     { w.draft.Client = s }
func (w *Wizard) SetAudience(s entity.AudienceSection) { w.draft.Audience = s }
func (w *Wizard) SetMetrics(s entity.MetricsSection)   { w.draft.Metrics = s }
func (w *Wizard) SetContact(s entity.ContactSection)   { w.draft.Contact = s }

// Next validates the current step's section and advances on success.
// On failure it stays put and returns the field errors.
func (w *Wizard) Next() []FieldError {
	if w.state.Phase != PhaseStep {
		return nil
	}
	if errs := ValidateStep(w.draft, w.state.Step); len(errs) > 0 {
		w.state.FieldErrors = errs
		return errs
	}
	w.state.FieldErrors = nil
	if w.state.Step < stepCount {
		w.state.Step++
	}
	return nil
}

// Back moves one step backwards without validating anything.
func (w *Wizard) Back() {
	if w.state.Phase == PhaseStep && w.state.Step > StepClient {
		w.state = WizardState{Phase: PhaseStep, Step: w.state.Step - 1}
		return
	}
	// A failed submission can be reopened at the last step.
	if w.state.Phase == PhaseFailed {
		w.state = WizardState{Phase: PhaseStep, Step: StepContact}
	}
}

// Submit freezes the draft and runs it through the pipeline. On validation
// failure the wizard returns to the last step owning an invalid field,
// keeping everything already entered. A downstream failure lands in
// PhaseFailed with the draft intact for resubmission.
func (w *Wizard) Submit(ctx context.Context) (string, error) {
	if w.state.Phase == PhaseSubmitting {
		return "", errors.New("a submission is already in flight")
	}
	if w.state.Phase != PhaseStep || w.state.Step != StepContact {
		return "", errors.New("wizard is not at the final step")
	}

	w.state = WizardState{Phase: PhaseValidating}
	if errs := ValidateBrief(w.draft); len(errs) > 0 {
		w.state = WizardState{Phase: PhaseStep, Step: lastInvalidStep(errs), FieldErrors: errs}
		return "", &DomainError{Code: CodeValidation, Message: "brief validation failed", Fields: errs}
	}

	w.state = WizardState{Phase: PhaseSubmitting}
	out, err := w.submitter.Execute(ctx, SubmitBriefInput{Data: w.draft})
	if err != nil {
		var de *DomainError
		if errors.As(err, &de) && len(de.Fields) > 0 {
			w.state = WizardState{Phase: PhaseStep, Step: lastInvalidStep(de.Fields), FieldErrors: de.Fields}
		} else {
			w.state = WizardState{Phase: PhaseFailed, Err: err}
		}
		return "", err
	}

	w.state = WizardState{Phase: PhaseSucceeded, SubmissionID: out.ID}
	return out.ID, nil
}

func lastInvalidStep(errs []FieldError) int {
	step := StepClient
	for _, e := range errs {
		if s := stepOfField(e.Field); s > step {
			step = s
		}
	}
	return step
}

func stepOfField(path string) int {
	switch {
	case strings.HasPrefix(path, "client."):
		return StepClient
	case strings.HasPrefix(path, "audience."):
		return StepAudience
	case strings.HasPrefix(path, "metrics."):
		return StepMetrics
	case strings.HasPrefix(path, "contact."):
		return StepContact
	default:
		return StepClient
	}
}
