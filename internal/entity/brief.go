package entity

import "time"

// BriefSubmission is the client-intake aggregate collected by the frontend
// wizard. It is assembled step by step, frozen at submission time and never
// mutated after creation. List fields keep insertion order; duplicates are
// allowed.
type BriefSubmission struct {
	Client   ClientSection   `json:"client"`
	Audience AudienceSection `json:"audience"`
	Metrics  MetricsSection  `json:"metrics"`
	Contact  ContactSection  `json:"contact"`
}

type ClientSection struct {
	Name          string   `json:"name" validate:"required,min=2,max=200"`
	Industry      string   `json:"industry" validate:"required"`
	Geography     []string `json:"geography"`
	Languages     []string `json:"languages"`
	BusinessGoals []string `json:"businessGoals"`
}

type AudienceSection struct {
	TargetAudience   string   `json:"targetAudience" validate:"required"`
	Channels         []string `json:"channels"`
	ValueProposition string   `json:"valueProposition" validate:"required"`
	Integrations     []string `json:"integrations"`
}

type MetricsSection struct {
	KPI            string `json:"kpi" validate:"required"`
	HasBrandbook   bool   `json:"hasBrandbook"`
	BrandbookLink  string `json:"brandbookLink" validate:"omitempty,url"`
	BrandToneScore int    `json:"brandToneScore" validate:"min=0,max=100"`
}

type ContactSection struct {
	ContactName      string `json:"contactName" validate:"required"`
	ContactEmail     string `json:"contactEmail" validate:"required,email"`
	ContactPhone     string `json:"contactPhone"`
	PreferredChannel string `json:"preferredChannel"`
	TeamRoles        string `json:"teamRoles"`
}

// Brief is the persisted record: the frozen submission plus the identifier
// generated by the pipeline.
type Brief struct {
	ID            string          `json:"id"`
	Submission    BriefSubmission `json:"submission"`
	AttachmentURL string          `json:"attachmentUrl,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	SyncedAt      *time.Time      `json:"syncedAt,omitempty"`
}
