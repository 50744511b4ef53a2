package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/alert"
)

var alertEmailTmpl = template.Must(template.New("alert").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2 style="color: {{.Color}};">{{.Heading}}</h2>
  <p><strong>Sensor:</strong> {{.Alert.SensorID}}<br>
     <strong>Location:</strong> {{.Alert.Location.Village}}, {{.Alert.Location.District}}<br>
     <strong>Time:</strong> {{.Timestamp}}</p>
  <table border="1" cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
    <tr style="background: #f0f0f0;">
      <th>Parameter</th><th>Value</th><th>Issue</th><th>Recommended Action</th>
    </tr>
    {{range .Findings}}
    <tr>
      <td>{{.Parameter}}</td>
      <td>{{printf "%.2f" .Value}}</td>
      <td>{{.Message}}</td>
      <td>{{.Action}}</td>
    </tr>
    {{end}}
  </table>
  <p style="color: #666; font-size: 12px;">Alert {{.Alert.ID}} - AquaAlert community water quality monitoring</p>
</body>
</html>`))

var summaryEmailTmpl = template.Must(template.New("summary").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Daily Water Quality Summary</h2>
  <p><strong>Window:</strong> {{.WindowStart}} to {{.WindowEnd}}</p>
  <ul>
    <li>Readings collected: {{.TotalReadings}}</li>
    <li>Active sensors: {{.ActiveSensors}}</li>
    <li>Alerts raised: {{.TotalAlerts}} ({{.CriticalAlerts}} critical, {{.WarningAlerts}} warning)</li>
  </ul>
  {{if .Alerts}}
  <h3>Recent Alerts</h3>
  <table border="1" cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
    <tr style="background: #f0f0f0;"><th>Time</th><th>Sensor</th><th>Severity</th><th>Findings</th></tr>
    {{range .Alerts}}
    <tr>
      <td>{{.Timestamp.Format "15:04"}}</td>
      <td>{{.SensorID}}</td>
      <td>{{.Severity}}</td>
      <td>{{len .Findings}}</td>
    </tr>
    {{end}}
  </table>
  {{end}}
  <p style="color: #666; font-size: 12px;">AquaAlert community water quality monitoring</p>
</body>
</html>`))

type alertEmailData struct {
	Alert     *alert.Alert
	Findings  []alert.Finding
	Heading   string
	Color     string
	Timestamp string
}

// renderAlertEmail renders the subject and HTML body for one severity
// batch of findings.
func renderAlertEmail(severity string, a *alert.Alert, findings []alert.Finding) (subject, body string, err error) {
	data := alertEmailData{
		Alert:     a,
		Findings:  findings,
		Timestamp: a.Timestamp.Format(time.RFC1123),
	}

	if severity == alert.SeverityCritical {
		subject = fmt.Sprintf("CRITICAL: Water contamination at %s (%s)", a.Location.Village, a.SensorID)
		data.Heading = "Critical Water Quality Alert"
		data.Color = "#c0392b"
	} else {
		subject = fmt.Sprintf("Warning: Water quality advisory at %s (%s)", a.Location.Village, a.SensorID)
		data.Heading = "Water Quality Warning"
		data.Color = "#e67e22"
	}

	var buf bytes.Buffer
	if err := alertEmailTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render alert email: %w", err)
	}
	return subject, buf.String(), nil
}

type summaryEmailData struct {
	WindowStart    string
	WindowEnd      string
	TotalReadings  int
	ActiveSensors  int
	TotalAlerts    int
	CriticalAlerts int
	WarningAlerts  int
	Alerts         []*alert.Alert
}

// renderSummaryEmail renders the subject and HTML body of the digest
func renderSummaryEmail(stats SummaryStats, alerts []*alert.Alert) (subject, body string, err error) {
	subject = fmt.Sprintf("AquaAlert daily summary: %d readings, %d alerts", stats.TotalReadings, stats.TotalAlerts)

	data := summaryEmailData{
		WindowStart:    stats.WindowStart.Format(time.RFC1123),
		WindowEnd:      stats.WindowEnd.Format(time.RFC1123),
		TotalReadings:  stats.TotalReadings,
		ActiveSensors:  stats.ActiveSensors,
		TotalAlerts:    stats.TotalAlerts,
		CriticalAlerts: stats.CriticalAlerts,
		WarningAlerts:  stats.WarningAlerts,
		Alerts:         alerts,
	}

	var buf bytes.Buffer
	if err := summaryEmailTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render summary email: %w", err)
	}
	return subject, buf.String(), nil
}
