package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidosk/devfolio-api/internal/entity"
)

func sampleSubmission() entity.BriefSubmission {
	return entity.BriefSubmission{
		Client: entity.ClientSection{
			Name:          "Acme Coffee",
			Industry:      "Food and Beverage",
			Geography:     []string{"Almaty", "Astana"},
			Languages:     []string{"ru", "kk"},
			BusinessGoals: []string{"wholesale leads", "brand awareness"},
		},
		Audience: entity.AudienceSection{
			TargetAudience:   "cafe owners 25-45",
			Channels:         []string{"instagram", "2gis"},
			ValueProposition: "fresh beans next day",
			Integrations:     []string{"kaspi pay", "amocrm"},
		},
		Metrics: entity.MetricsSection{
			KPI:            "100 leads per month",
			HasBrandbook:   true,
			BrandbookLink:  "https://example.com/brandbook.pdf",
			BrandToneScore: 62,
		},
		Contact: entity.ContactSection{
			ContactName:      "Dana",
			ContactEmail:     "dana@acme.kz",
			ContactPhone:     "+7 701 000 00 00",
			PreferredChannel: "telegram",
			TeamRoles:        "owner",
		},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	out, err := NewRenderer().Render(sampleSubmission(), "brief-123", "")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderContainsSubmittedValues(t *testing.T) {
	out, err := NewRenderer().Render(sampleSubmission(), "brief-123", "https://cdn.example.com/logo.png")
	require.NoError(t, err)

	// Text streams are uncompressed, so submitted values appear literally.
	for _, want := range []string{
		"Project Brief",
		"brief-123",
		"Client & Business",
		"Audience & Product",
		"Metrics & Brand",
		"Contacts",
		"Acme Coffee",
		"cafe owners 25-45",
		"fresh beans next day",
		"100 leads per month",
		"dana@acme.kz",
		"https://cdn.example.com/logo.png",
		"62/100",
	} {
		assert.True(t, bytes.Contains(out, []byte(want)), "missing %q", want)
	}
}

func TestRenderJoinsListsWithCommaSpace(t *testing.T) {
	out, err := NewRenderer().Render(sampleSubmission(), "id", "")
	require.NoError(t, err)

	assert.True(t, bytes.Contains(out, []byte("Almaty, Astana")))
	assert.True(t, bytes.Contains(out, []byte("kaspi pay, amocrm")))
}

func TestRenderEmptyOptionalsBecomeDash(t *testing.T) {
	sub := sampleSubmission()
	sub.Audience.Integrations = nil
	sub.Metrics.BrandbookLink = ""

	out, err := NewRenderer().Render(sub, "id", "")
	require.NoError(t, err)

	// The em-dash is cp1252 0x97 in the page stream; empty rows render it,
	// they are never dropped.
	assert.True(t, bytes.Contains(out, []byte{'(', 0x97, ')'}))
	assert.True(t, bytes.Contains(out, []byte("Integrations: ")))
	assert.True(t, bytes.Contains(out, []byte("Brandbook link: ")))
}

func TestRenderDeterministicLayoutLabels(t *testing.T) {
	out, err := NewRenderer().Render(sampleSubmission(), "id", "")
	require.NoError(t, err)

	for _, label := range []string{
		"Name: ", "Industry: ", "Geography: ", "Languages: ", "Business goals: ",
		"Target audience: ", "Channels: ", "Value proposition: ", "Integrations: ",
		"KPI: ", "Brandbook: ", "Brandbook link: ", "Brand tone: ",
		"Email: ", "Phone: ", "Preferred channel: ", "Team & roles: ", "Attachment: ",
	} {
		assert.True(t, bytes.Contains(out, []byte(label)), "missing label %q", label)
	}
}
