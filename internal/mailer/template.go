package mailer

import (
	"bytes"
	"html/template"
)

var reportReviewedTmpl = template.Must(template.New("report_reviewed").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Your report has been reviewed</h2>
  <p>Hi {{.ReporterName}},</p>
  <p>Thanks for helping keep Bondsio safe. Your report about the bond
  <strong>{{.BondName}}</strong> has been reviewed by our team.</p>
  <p>New status: <strong>{{.Status}}</strong></p>
  <p>The Bondsio Team</p>
</body>
</html>`))

// ReportReviewedBody renders the notification sent to a reporter after a
// bond report review.
func ReportReviewedBody(reporterName, bondName, status string) (string, error) {
	var buf bytes.Buffer
	err := reportReviewedTmpl.Execute(&buf, struct {
		ReporterName string
		BondName     string
		Status       string
	}{reporterName, bondName, status})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
