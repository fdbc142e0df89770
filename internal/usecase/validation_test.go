package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aidosk/devfolio-api/internal/entity"
)

func validBrief() entity.BriefSubmission {
	return entity.BriefSubmission{
		Client: entity.ClientSection{
			Name:          "Acme Coffee",
			Industry:      "Food & Beverage",
			Geography:     []string{"Almaty", "Astana"},
			Languages:     []string{"ru", "kk"},
			BusinessGoals: []string{"more wholesale leads"},
		},
		Audience: entity.AudienceSection{
			TargetAudience:   "cafe owners 25-45",
			Channels:         []string{"instagram", "2gis"},
			ValueProposition: "freshly roasted beans delivered next day",
			Integrations:     []string{"kaspi pay"},
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
			TeamRoles:        "owner + smm manager",
		},
	}
}

func TestValidateBriefAccepts(t *testing.T) {
	assert.Empty(t, ValidateBrief(validBrief()))
}

func TestValidateBriefMissingContactEmail(t *testing.T) {
	sub := validBrief()
	sub.Contact.ContactEmail = ""

	errs := ValidateBrief(sub)

	assert.Len(t, errs, 1)
	assert.Equal(t, "contact.contactEmail", errs[0].Field)
	assert.Equal(t, "required", errs[0].Kind)
	assert.NotEmpty(t, errs[0].Message)
}

func TestValidateBriefBadEmailFormat(t *testing.T) {
	sub := validBrief()
	sub.Contact.ContactEmail = "not-an-email"

	errs := ValidateBrief(sub)

	assert.Len(t, errs, 1)
	assert.Equal(t, "contact.contactEmail", errs[0].Field)
	assert.Equal(t, "invalid_email", errs[0].Kind)
}

func TestValidateBriefBrandToneOutOfRange(t *testing.T) {
	sub := validBrief()
	sub.Metrics.BrandToneScore = 150

	errs := ValidateBrief(sub)

	assert.Len(t, errs, 1)
	assert.Equal(t, "metrics.brandToneScore", errs[0].Field)
	assert.Equal(t, "out_of_range", errs[0].Kind)
}

func TestValidateBriefCollectsAcrossSections(t *testing.T) {
	sub := validBrief()
	sub.Client.Name = ""
	sub.Audience.TargetAudience = ""
	sub.Contact.ContactEmail = ""

	errs := ValidateBrief(sub)

	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	assert.Contains(t, fields, "client.name")
	assert.Contains(t, fields, "audience.targetAudience")
	assert.Contains(t, fields, "contact.contactEmail")
}

func TestValidateStepScopesToSection(t *testing.T) {
	sub := validBrief()
	sub.Client.Name = ""
	sub.Contact.ContactEmail = ""

	assert.Len(t, ValidateStep(sub, StepClient), 1)
	assert.Empty(t, ValidateStep(sub, StepAudience))
	assert.Empty(t, ValidateStep(sub, StepMetrics))
	assert.Len(t, ValidateStep(sub, StepContact), 1)
}

func TestValidateOptionalListsMayBeEmpty(t *testing.T) {
	sub := validBrief()
	sub.Client.Geography = nil
	sub.Audience.Integrations = []string{}
	sub.Metrics.BrandbookLink = ""

	assert.Empty(t, ValidateBrief(sub))
}
