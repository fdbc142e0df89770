package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aidosk/devfolio-api/internal/infra/http/middleware"
	"github.com/aidosk/devfolio-api/internal/usecase"
)

// BriefSubmitter runs the submission pipeline; satisfied by
// usecase.SubmitBriefUseCase and substitutable in tests.
type BriefSubmitter interface {
	Execute(ctx context.Context, input usecase.SubmitBriefInput) (*usecase.SubmitBriefOutput, error)
}

type BriefHandler struct {
	submitter   BriefSubmitter
	rateLimiter *RateLimiter
}

func NewBriefHandler(submitter BriefSubmitter) *BriefHandler {
	return &BriefHandler{
		submitter:   submitter,
		rateLimiter: NewRateLimiter(10, time.Minute),
	}
}

func (h *BriefHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error:   "rate_limited",
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.SubmitBriefInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_json", Message: "Invalid JSON"})
		return
	}

	output, err := h.submitter.Execute(r.Context(), input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	middleware.RecordBriefSubmission("succeeded")
	writeJSON(w, http.StatusOK, output)
}

// respondError keeps validation failures distinguishable from downstream
// ones: 400 with the field breakdown vs 502 with a retry-prompting message.
func (h *BriefHandler) respondError(w http.ResponseWriter, err error) {
	var dErr *usecase.DomainError
	if errors.As(err, &dErr) {
		middleware.RecordBriefSubmission("rejected")
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "validation_failed",
			Message: dErr.Message,
			Fields:  dErr.Fields,
		})
		return
	}

	middleware.RecordBriefSubmission("failed")

	var tErr *usecase.TechnicalError
	if errors.As(err, &tErr) {
		middleware.RecordIntegrationError(serviceOf(tErr.Code))
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:   "submission_failed",
			Message: "Something went wrong on our side. Your answers are kept — please try again.",
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: "Something went wrong on our side. Your answers are kept — please try again.",
	})
}

func serviceOf(code string) string {
	switch code {
	case usecase.CodeDatabase:
		return "database"
	case usecase.CodeEmailFailed:
		return "email"
	case usecase.CodeRenderFailed:
		return "pdf"
	case usecase.CodeStorageFailed:
		return "storage"
	default:
		return "unknown"
	}
}
