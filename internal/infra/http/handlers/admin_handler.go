package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aidosk/devfolio-api/internal/entity"
	"github.com/aidosk/devfolio-api/internal/infra/auth"
	"github.com/aidosk/devfolio-api/internal/infra/http/middleware"
	"github.com/aidosk/devfolio-api/internal/infra/mail"
	"github.com/aidosk/devfolio-api/internal/usecase"
)

type AdminHandler struct {
	repo     usecase.BriefRepository
	renderer usecase.PDFRenderer
	magic    *auth.MagicLink
	mailer   mail.Sender
	baseURL  string
	log      *slog.Logger
}

func NewAdminHandler(
	repo usecase.BriefRepository,
	renderer usecase.PDFRenderer,
	magic *auth.MagicLink,
	mailer mail.Sender,
	baseURL string,
	log *slog.Logger,
) *AdminHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AdminHandler{
		repo:     repo,
		renderer: renderer,
		magic:    magic,
		mailer:   mailer,
		baseURL:  baseURL,
		log:      log,
	}
}

type loginRequest struct {
	Email string `json:"email"`
}

// HandleLogin emails a magic link to the admin. The response is the same
// for unknown addresses so the endpoint does not leak who the admin is.
func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_json", Message: "Invalid JSON"})
		return
	}

	token, err := h.magic.IssueLoginToken(req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUnknownEmail) {
			h.log.Warn("magic link requested for unknown email", "email", req.Email)
			writeJSON(w, http.StatusOK, map[string]bool{"success": true})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
		return
	}

	link := fmt.Sprintf("%s/admin/verify?token=%s", h.baseURL, url.QueryEscape(token))
	msg := mail.Message{
		To:      []mail.Recipient{{Email: req.Email}},
		Subject: "Your sign-in link",
		HTML: fmt.Sprintf(
			`<p>Click to sign in to the admin panel:</p><p><a href="%s">Sign in</a></p><p>The link expires in 15 minutes.</p>`,
			link,
		),
	}
	if err := h.mailer.Send(r.Context(), msg); err != nil {
		h.log.Error("failed to send magic link", "error", err)
		middleware.RecordIntegrationError("email")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "email_failed", Message: "Could not send the sign-in link. Please try again."})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	session, err := h.magic.ExchangeLoginToken(token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid_token", Message: "The sign-in link is invalid or expired."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": session})
}

func (h *AdminHandler) HandleListBriefs(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	briefs, err := h.repo.List(r.Context(), limit, offset)
	if err != nil {
		h.log.Error("failed to list briefs", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
		return
	}
	if briefs == nil {
		briefs = []*entity.Brief{}
	}
	writeJSON(w, http.StatusOK, briefs)
}

func (h *AdminHandler) HandleGetPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	brief, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found"})
		return
	}

	start := time.Now()
	report, err := h.renderer.Render(brief.Submission, brief.ID, brief.AttachmentURL)
	if err != nil {
		h.log.Error("failed to render brief report", "brief_id", id, "error", err)
		middleware.RecordIntegrationError("pdf")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "render_failed"})
		return
	}
	middleware.ObserveReportRender(time.Since(start).Seconds())

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=brief-%s.pdf", id))
	w.WriteHeader(http.StatusOK)
	w.Write(report)
}

func pagination(r *http.Request) (limit, offset int) {
	limit = 50
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
