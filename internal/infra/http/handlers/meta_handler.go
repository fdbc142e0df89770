package handlers

import (
	"net/http"
	"strconv"

	"github.com/aidosk/devfolio-api/internal/locale"
	"github.com/aidosk/devfolio-api/internal/seo"
)

// MetaHandler serves the locale-aware helpers the frontend consumes: page
// metadata and localized price strings.
type MetaHandler struct {
	gen *seo.Generator
}

func NewMetaHandler(gen *seo.Generator) *MetaHandler {
	return &MetaHandler{gen: gen}
}

func (h *MetaHandler) HandleMetadata(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := seo.Params{
		Title:       q.Get("title"),
		Description: q.Get("description"),
		Image:       q.Get("image"),
		Path:        q.Get("path"),
		Locale:      locale.Resolve(q.Get("locale")),
		Type:        q.Get("type"),
		Author:      q.Get("author"),
	}

	writeJSON(w, http.StatusOK, h.gen.Build(params))
}

type priceResponse struct {
	Display string `json:"display"`
	Locale  string `json:"locale"`
}

func (h *MetaHandler) HandlePrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil || amount < 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "invalid_amount",
			Message: "amount must be a non-negative number",
		})
		return
	}

	loc := locale.Resolve(q.Get("locale"))
	writeJSON(w, http.StatusOK, priceResponse{
		Display: locale.FormatPrice(amount, loc),
		Locale:  string(loc),
	})
}
