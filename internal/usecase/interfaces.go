package usecase

import (
	"context"

	"github.com/aidosk/devfolio-api/internal/entity"
	"github.com/aidosk/devfolio-api/internal/infra/mail"
	"github.com/aidosk/devfolio-api/internal/infra/queue"
)

type BriefRepository interface {
	Create(ctx context.Context, b *entity.Brief) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Brief, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Brief, error)
	MarkSynced(ctx context.Context, id string) error
}

type PDFRenderer interface {
	Render(sub entity.BriefSubmission, id, attachmentURL string) ([]byte, error)
}

type EmailSender interface {
	Send(ctx context.Context, msg mail.Message) error
}

// AttachmentUploader stores a client-provided attachment and returns its
// public URL. Optional dependency: a nil uploader rejects attachments.
type AttachmentUploader interface {
	Upload(ctx context.Context, name string, content []byte) (string, error)
}

// EventPublisher pushes the after-success side channel. Optional: when nil
// the pipeline simply skips publishing.
type EventPublisher interface {
	PublishSubmitted(ctx context.Context, evt queue.BriefSubmittedEvent) error
}
