package usecase

import (
	"bytes"
	"html/template"

	"github.com/aidosk/devfolio-api/internal/entity"
)

var notificationTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #1a1a1a;">
    <h2>New project brief</h2>
    <p><b>{{.Contact.ContactName}}</b> ({{.Contact.ContactEmail}}) submitted a brief.</p>
    <table cellpadding="4">
      <tr><td><b>Company</b></td><td>{{.Client.Name}}</td></tr>
      <tr><td><b>Industry</b></td><td>{{.Client.Industry}}</td></tr>
      <tr><td><b>Value proposition</b></td><td>{{.Audience.ValueProposition}}</td></tr>
      <tr><td><b>KPI</b></td><td>{{.Metrics.KPI}}</td></tr>
      {{if .Contact.ContactPhone}}<tr><td><b>Phone</b></td><td>{{.Contact.ContactPhone}}</td></tr>{{end}}
    </table>
    <p>The full report is attached as PDF (id {{.ID}}).</p>
  </body>
</html>`))

type notificationData struct {
	ID string
	entity.BriefSubmission
}

func renderNotificationHTML(brief *entity.Brief) (string, error) {
	var body bytes.Buffer
	err := notificationTmpl.Execute(&body, notificationData{ID: brief.ID, BriefSubmission: brief.Submission})
	if err != nil {
		return "", err
	}
	return body.String(), nil
}
