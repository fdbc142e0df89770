package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aidosk/devfolio-api/internal/entity"
	"github.com/aidosk/devfolio-api/internal/infra/mail"
	"github.com/aidosk/devfolio-api/internal/infra/queue"
)

type AttachmentInput struct {
	Name    string `json:"name"`
	Content string `json:"content"` // base64
}

type SubmitBriefInput struct {
	Data       entity.BriefSubmission `json:"data"`
	Attachment *AttachmentInput       `json:"attachment,omitempty"`
}

type SubmitBriefOutput struct {
	ID string `json:"id"`
}

type SubmitBriefUseCase struct {
	Repo        BriefRepository
	Renderer    PDFRenderer
	Mailer      EmailSender
	Uploader    AttachmentUploader
	Publisher   EventPublisher
	NotifyEmail string
	NotifyName  string
	Log         *slog.Logger
}

func NewSubmitBriefUseCase(
	repo BriefRepository,
	renderer PDFRenderer,
	mailer EmailSender,
	uploader AttachmentUploader,
	publisher EventPublisher,
	notifyEmail, notifyName string,
	log *slog.Logger,
) *SubmitBriefUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &SubmitBriefUseCase{
		Repo:        repo,
		Renderer:    renderer,
		Mailer:      mailer,
		Uploader:    uploader,
		Publisher:   publisher,
		NotifyEmail: notifyEmail,
		NotifyName:  notifyName,
		Log:         log,
	}
}

// Execute runs the whole pipeline for one submission: validate, upload the
// optional attachment, persist, render the PDF report, email it. A render or
// email failure rolls the persisted record back so no success is implied that
// did not fully happen. The queue publish is fire-and-forget after success.
func (uc *SubmitBriefUseCase) Execute(ctx context.Context, input SubmitBriefInput) (*SubmitBriefOutput, error) {
	if errs := ValidateBrief(input.Data); len(errs) > 0 {
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: "brief validation failed",
			Fields:  errs,
		}
	}

	brief := &entity.Brief{
		ID:         uuid.New().String(),
		Submission: input.Data,
		CreatedAt:  time.Now(),
	}

	if input.Attachment != nil {
		url, err := uc.uploadAttachment(ctx, brief.ID, input.Attachment)
		if err != nil {
			return nil, err
		}
		brief.AttachmentURL = url
	}

	var report []byte

	txn := NewTransaction(uc.Log)

	txn.AddOperation("persist_brief", func(ctx context.Context) error {
		if err := uc.Repo.Create(ctx, brief); err != nil {
			return &TechnicalError{Code: CodeDatabase, Message: "failed to persist brief", Cause: err}
		}
		return nil
	})
	txn.AddCompensation("delete_brief", func(ctx context.Context) error {
		return uc.Repo.Delete(ctx, brief.ID)
	})

	// The email step must never run without the report, so the render sits
	// between persistence and dispatch and aborts the whole submission.
	txn.AddOperation("render_report", func(ctx context.Context) error {
		b, err := uc.Renderer.Render(brief.Submission, brief.ID, brief.AttachmentURL)
		if err != nil {
			return &TechnicalError{Code: CodeRenderFailed, Message: "failed to render brief report", Cause: err}
		}
		report = b
		return nil
	})

	txn.AddOperation("send_notification", func(ctx context.Context) error {
		msg, err := notificationMessage(brief, uc.NotifyEmail, uc.NotifyName, report)
		if err != nil {
			return &TechnicalError{Code: CodeEmailFailed, Message: "failed to build notification", Cause: err}
		}
		if err := uc.Mailer.Send(ctx, msg); err != nil {
			return &TechnicalError{Code: CodeEmailFailed, Message: "failed to send notification", Cause: err}
		}
		return nil
	})

	if err := txn.Execute(ctx); err != nil {
		uc.Log.Error("brief submission failed", "brief_id", brief.ID, "error", err)
		return nil, unwrapStage(err)
	}

	if uc.Publisher != nil {
		evt := queue.BriefSubmittedEvent{
			BriefID:      brief.ID,
			ContactName:  brief.Submission.Contact.ContactName,
			ContactEmail: brief.Submission.Contact.ContactEmail,
			SubmittedAt:  brief.CreatedAt,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := uc.Publisher.PublishSubmitted(ctx, evt); err != nil {
				uc.Log.Warn("failed to publish brief.submitted", "brief_id", evt.BriefID, "error", err)
			}
		}()
	}

	uc.Log.Info("brief submitted", "brief_id", brief.ID, "contact", brief.Submission.Contact.ContactEmail)

	return &SubmitBriefOutput{ID: brief.ID}, nil
}

func (uc *SubmitBriefUseCase) uploadAttachment(ctx context.Context, briefID string, att *AttachmentInput) (string, error) {
	if uc.Uploader == nil {
		return "", &TechnicalError{Code: CodeStorageFailed, Message: "attachment storage is not configured"}
	}
	content, err := base64.StdEncoding.DecodeString(att.Content)
	if err != nil {
		return "", &DomainError{Code: CodeValidation, Message: "attachment content is not valid base64", Fields: []FieldError{
			{Field: "attachment.content", Kind: "invalid_encoding", Message: "must be base64 encoded"},
		}}
	}
	url, err := uc.Uploader.Upload(ctx, fmt.Sprintf("briefs/%s/%s", briefID, att.Name), content)
	if err != nil {
		return "", &TechnicalError{Code: CodeStorageFailed, Message: "failed to store attachment", Cause: err}
	}
	return url, nil
}

// unwrapStage surfaces the stage-specific TechnicalError hidden inside the
// transaction wrapper, so callers can tell which dependency broke.
func unwrapStage(err error) error {
	var te *TechnicalError
	if errors.As(err, &te) {
		return te
	}
	return &TechnicalError{Code: "SUBMISSION_FAILED", Message: "brief submission failed", Cause: err}
}

func notificationMessage(brief *entity.Brief, notifyEmail, notifyName string, report []byte) (mail.Message, error) {
	html, err := renderNotificationHTML(brief)
	if err != nil {
		return mail.Message{}, err
	}
	return mail.Message{
		To:      []mail.Recipient{{Email: notifyEmail, Name: notifyName}},
		Subject: "New project brief from " + brief.Submission.Contact.ContactName,
		HTML:    html,
		ReplyTo: &mail.Recipient{
			Email: brief.Submission.Contact.ContactEmail,
			Name:  brief.Submission.Contact.ContactName,
		},
		Attachments: []mail.Attachment{
			{Name: "brief-" + brief.ID + ".pdf", Content: report},
		},
	}, nil
}
