package seo

import (
	"strings"
	"time"

	"github.com/aidosk/devfolio-api/internal/locale"
)

// Fixed site identity. The generator only varies per page and per locale.
const (
	SiteName           = "Aidos Kadyrov — Web Development"
	DefaultDescription = "Freelance full-stack developer. Marketing sites, web apps and integrations for businesses in Kazakhstan and beyond."
	DefaultImage       = "/og/default.png"
	TwitterCreator     = "@aidosk_dev"

	TypeWebsite = "website"
	TypeArticle = "article"
)

var ogLocales = map[locale.Locale]string{
	locale.RU: "ru_RU",
	locale.EN: "en_US",
	locale.KK: "kk_KZ",
}

// Params describes one page. Everything is optional except the locale; the
// generator fills the gaps with the site defaults.
type Params struct {
	Title       string
	Description string
	Image       string
	Path        string // page path starting with "/", "" means the root
	Canonical   string // overrides the computed canonical when set
	Locale      locale.Locale
	Type        string // TypeWebsite or TypeArticle
	Published   *time.Time
	Modified    *time.Time
	Author      string
}

type ImageDescriptor struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Alt    string `json:"alt,omitempty"`
}

type OpenGraph struct {
	Type        string          `json:"type"`
	Locale      string          `json:"locale"`
	URL         string          `json:"url"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	SiteName    string          `json:"siteName"`
	Image       ImageDescriptor `json:"image"`
	Published   *time.Time      `json:"publishedTime,omitempty"`
	Modified    *time.Time      `json:"modifiedTime,omitempty"`
	Author      string          `json:"author,omitempty"`
}

type TwitterCard struct {
	Card        string `json:"card"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Creator     string `json:"creator"`
}

type Robots struct {
	Index           bool   `json:"index"`
	Follow          bool   `json:"follow"`
	MaxSnippet      int    `json:"maxSnippet"`
	MaxImagePreview string `json:"maxImagePreview"`
	MaxVideoPreview int    `json:"maxVideoPreview"`
}

// Metadata is the per-request SEO descriptor the frontend renders into
// <head>. Never persisted.
type Metadata struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Canonical   string                   `json:"canonical"`
	Alternates  map[locale.Locale]string `json:"alternates"`
	OpenGraph   OpenGraph                `json:"openGraph"`
	Twitter     TwitterCard              `json:"twitter"`
	Robots      Robots                   `json:"robots"`
}

type Generator struct {
	baseURL string
}

func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/")}
}

// Build assembles the full metadata block for one page. Pure function of the
// params and the fixed site constants.
func (g *Generator) Build(p Params) Metadata {
	loc := locale.Resolve(string(p.Locale))

	title := SiteName
	if p.Title != "" {
		title = p.Title + " | " + SiteName
	}

	description := p.Description
	if description == "" {
		description = DefaultDescription
	}

	image := p.Image
	if image == "" {
		image = g.baseURL + DefaultImage
	}

	pageType := p.Type
	if pageType != TypeArticle {
		pageType = TypeWebsite
	}

	canonical := p.Canonical
	if canonical == "" {
		canonical = g.PageURL(loc, p.Path)
	}

	// Always advertise every locale variant, whichever one was requested.
	alternates := make(map[locale.Locale]string, len(locale.Supported))
	for _, l := range locale.Supported {
		alternates[l] = g.PageURL(l, p.Path)
	}

	return Metadata{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		Alternates:  alternates,
		OpenGraph: OpenGraph{
			Type:        pageType,
			Locale:      ogLocales[loc],
			URL:         canonical,
			Title:       title,
			Description: description,
			SiteName:    SiteName,
			Image:       ImageDescriptor{URL: image, Width: 1200, Height: 630, Alt: title},
			Published:   p.Published,
			Modified:    p.Modified,
			Author:      p.Author,
		},
		Twitter: TwitterCard{
			Card:        "summary_large_image",
			Title:       title,
			Description: description,
			Image:       image,
			Creator:     TwitterCreator,
		},
		Robots: Robots{
			Index:           true,
			Follow:          true,
			MaxSnippet:      -1,
			MaxImagePreview: "large",
			MaxVideoPreview: -1,
		},
	}
}

// PageURL builds the public URL of a page: the default locale lives at the
// bare path, the others under a /{locale} prefix.
func (g *Generator) PageURL(l locale.Locale, path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path == "/" {
		path = ""
	}
	if l == locale.Default {
		if path == "" {
			return g.baseURL
		}
		return g.baseURL + path
	}
	return g.baseURL + "/" + string(l) + path
}
