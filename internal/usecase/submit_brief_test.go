package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aidosk/devfolio-api/internal/entity"
	"github.com/aidosk/devfolio-api/internal/infra/mail"
	"github.com/aidosk/devfolio-api/internal/infra/queue"
)

// MockBriefRepository
type MockBriefRepository struct {
	mock.Mock
}

func (m *MockBriefRepository) Create(ctx context.Context, b *entity.Brief) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBriefRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBriefRepository) FindByID(ctx context.Context, id string) (*entity.Brief, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Brief), args.Error(1)
}

func (m *MockBriefRepository) List(ctx context.Context, limit, offset int) ([]*entity.Brief, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Brief), args.Error(1)
}

func (m *MockBriefRepository) MarkSynced(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRenderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(sub entity.BriefSubmission, id, attachmentURL string) ([]byte, error) {
	args := m.Called(sub, id, attachmentURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockMailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockUploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, name string, content []byte) (string, error) {
	args := m.Called(ctx, name, content)
	return args.String(0), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishSubmitted(ctx context.Context, evt queue.BriefSubmittedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func newUseCase(repo *MockBriefRepository, renderer *MockRenderer, mailer *MockMailer) *SubmitBriefUseCase {
	return NewSubmitBriefUseCase(repo, renderer, mailer, nil, nil, "admin@aidosk.dev", "Aidos", nil)
}

func TestSubmitBriefSuccess(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBriefRepository)
	renderer := new(MockRenderer)
	mailer := new(MockMailer)

	report := []byte("%PDF-1.4 fake report")
	repo.On("Create", ctx, mock.Anything).Return(nil)
	renderer.On("Render", mock.Anything, mock.Anything, "").Return(report, nil)
	mailer.On("Send", ctx, mock.Anything).Return(nil)

	uc := newUseCase(repo, renderer, mailer)
	out, err := uc.Execute(ctx, SubmitBriefInput{Data: validBrief()})

	assert.NoError(t, err)
	assert.NotEmpty(t, out.ID)

	repo.AssertCalled(t, "Create", ctx, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	// The email carries the rendered report as its attachment.
	sent := mailer.Calls[0].Arguments.Get(1).(mail.Message)
	assert.Equal(t, "admin@aidosk.dev", sent.To[0].Email)
	assert.Len(t, sent.Attachments, 1)
	assert.Equal(t, report, sent.Attachments[0].Content)
	assert.Equal(t, "dana@acme.kz", sent.ReplyTo.Email)
}

func TestSubmitBriefValidationFailureHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBriefRepository)
	renderer := new(MockRenderer)
	mailer := new(MockMailer)

	sub := validBrief()
	sub.Contact.ContactEmail = ""

	uc := newUseCase(repo, renderer, mailer)
	out, err := uc.Execute(ctx, SubmitBriefInput{Data: sub})

	assert.Nil(t, out)
	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	assert.Equal(t, CodeValidation, dErr.Code)
	assert.Equal(t, "contact.contactEmail", dErr.Fields[0].Field)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmitBriefRenderFailureAbortsBeforeEmail(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBriefRepository)
	renderer := new(MockRenderer)
	mailer := new(MockMailer)

	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("Delete", ctx, mock.Anything).Return(nil)
	renderer.On("Render", mock.Anything, mock.Anything, "").Return(nil, errors.New("stream error"))

	uc := newUseCase(repo, renderer, mailer)
	out, err := uc.Execute(ctx, SubmitBriefInput{Data: validBrief()})

	assert.Nil(t, out)
	var tErr *TechnicalError
	assert.ErrorAs(t, err, &tErr)
	assert.Equal(t, CodeRenderFailed, tErr.Code)

	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	repo.AssertCalled(t, "Delete", ctx, mock.Anything)
}

func TestSubmitBriefEmailFailureRollsBackPersistence(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBriefRepository)
	renderer := new(MockRenderer)
	mailer := new(MockMailer)

	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("Delete", ctx, mock.Anything).Return(nil)
	renderer.On("Render", mock.Anything, mock.Anything, "").Return([]byte("pdf"), nil)
	mailer.On("Send", ctx, mock.Anything).Return(errors.New("provider down"))

	uc := newUseCase(repo, renderer, mailer)
	_, err := uc.Execute(ctx, SubmitBriefInput{Data: validBrief()})

	var tErr *TechnicalError
	assert.ErrorAs(t, err, &tErr)
	assert.Equal(t, CodeEmailFailed, tErr.Code)
	repo.AssertCalled(t, "Delete", ctx, mock.Anything)
}

func TestSubmitBriefPersistFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBriefRepository)
	renderer := new(MockRenderer)
	mailer := new(MockMailer)

	repo.On("Create", ctx, mock.Anything).Return(errors.New("connection refused"))

	uc := newUseCase(repo, renderer, mailer)
	_, err := uc.Execute(ctx, SubmitBriefInput{Data: validBrief()})

	var tErr *TechnicalError
	assert.ErrorAs(t, err, &tErr)
	assert.Equal(t, CodeDatabase, tErr.Code)
	renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmitBriefUploadsAttachment(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBriefRepository)
	renderer := new(MockRenderer)
	mailer := new(MockMailer)
	uploader := new(MockUploader)

	content := []byte("logo bytes")
	uploaded := "https://cdn.example.com/briefs/x/logo.png"
	uploader.On("Upload", ctx, mock.Anything, content).Return(uploaded, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	renderer.On("Render", mock.Anything, mock.Anything, uploaded).Return([]byte("pdf"), nil)
	mailer.On("Send", ctx, mock.Anything).Return(nil)

	uc := NewSubmitBriefUseCase(repo, renderer, mailer, uploader, nil, "admin@aidosk.dev", "", nil)
	out, err := uc.Execute(ctx, SubmitBriefInput{
		Data: validBrief(),
		Attachment: &AttachmentInput{
			Name:    "logo.png",
			Content: base64.StdEncoding.EncodeToString(content),
		},
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	uploader.AssertCalled(t, "Upload", ctx, mock.Anything, content)
}

func TestSubmitBriefRejectsBadAttachmentEncoding(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBriefRepository)
	renderer := new(MockRenderer)
	mailer := new(MockMailer)
	uploader := new(MockUploader)

	uc := NewSubmitBriefUseCase(repo, renderer, mailer, uploader, nil, "admin@aidosk.dev", "", nil)
	_, err := uc.Execute(ctx, SubmitBriefInput{
		Data:       validBrief(),
		Attachment: &AttachmentInput{Name: "logo.png", Content: "not base64!!!"},
	})

	var dErr *DomainError
	assert.ErrorAs(t, err, &dErr)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
