package services

import (
	"context"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/alert"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/mail"
	"github.com/sreepuli/AquaAlert-sub000/internal/domain/official"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/metrics"
)

// Dispatcher delivers alert notifications through the mailer. Findings
// are split into a critical batch and a non-critical batch, so a single
// reading can produce up to two separate emails. Every send is
// individually fault-isolated; a failure never aborts sibling sends.
type Dispatcher struct {
	mailer   mail.Mailer
	resolver *RecipientResolver
	from     string
	cc       []string
	logger   *logger.Logger
}

// NewDispatcher creates a new notification dispatcher
func NewDispatcher(mailer mail.Mailer, resolver *RecipientResolver, from string, cc []string, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		mailer:   mailer,
		resolver: resolver,
		from:     from,
		cc:       cc,
		logger:   log,
	}
}

// SendOutcome reports one batch send
type SendOutcome struct {
	Severity   string `json:"severity"`
	Recipients int    `json:"recipients"`
	MessageID  string `json:"message_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// DispatchResult aggregates the outcome of one alert dispatch
type DispatchResult struct {
	Success        bool          `json:"success"`
	RecipientCount int           `json:"recipient_count"`
	Sends          []SendOutcome `json:"sends,omitempty"`
}

// Dispatch resolves recipients per severity batch and sends one
// formatted message per non-empty batch.
func (d *Dispatcher) Dispatch(ctx context.Context, a *alert.Alert, findings []alert.Finding) DispatchResult {
	var critical, other []alert.Finding
	for _, f := range findings {
		if f.Kind == alert.KindCritical {
			critical = append(critical, f)
		} else {
			other = append(other, f)
		}
	}

	result := DispatchResult{Success: true}

	if len(critical) > 0 {
		result.merge(d.sendBatch(ctx, a, critical, alert.SeverityCritical))
	}
	if len(other) > 0 {
		result.merge(d.sendBatch(ctx, a, other, alert.SeverityWarning))
	}

	return result
}

// sendBatch renders and delivers one severity batch
func (d *Dispatcher) sendBatch(ctx context.Context, a *alert.Alert, findings []alert.Finding, severity string) SendOutcome {
	recipients := d.resolver.Resolve(ctx, severity, a.Location.District)
	to := emails(recipients)

	subject, body, err := renderAlertEmail(severity, a, findings)
	if err != nil {
		d.logger.ErrorWithErr(err, "Failed to render alert email")
		metrics.RecordEmail(severity, "render_error")
		return SendOutcome{Severity: severity, Error: err.Error()}
	}

	priority := mail.PriorityNormal
	if severity == alert.SeverityCritical {
		priority = mail.PriorityHigh
	}

	msg := &mail.Message{
		From:     d.from,
		To:       to,
		CC:       d.cc,
		Subject:  subject,
		Body:     body,
		HTML:     true,
		Priority: priority,
	}

	sent, err := d.mailer.Send(ctx, msg)
	if err != nil {
		d.logger.WithFields(map[string]interface{}{
			"alert_id": a.ID,
			"severity": severity,
		}).ErrorWithErr(err, "Failed to send alert notification")
		metrics.RecordEmail(severity, "failed")
		return SendOutcome{Severity: severity, Recipients: len(to), Error: err.Error()}
	}

	d.logger.WithFields(map[string]interface{}{
		"alert_id":   a.ID,
		"severity":   severity,
		"recipients": len(to),
	}).Info("Alert notification sent")
	metrics.RecordEmail(severity, "sent")

	return SendOutcome{Severity: severity, Recipients: len(to), MessageID: sent.MessageID}
}

// merge folds one send outcome into the dispatch result
func (r *DispatchResult) merge(o SendOutcome) {
	r.Sends = append(r.Sends, o)
	r.RecipientCount += o.Recipients
	if o.Error != "" {
		r.Success = false
	}
}

func emails(officials []*official.Official) []string {
	out := make([]string, 0, len(officials))
	for _, o := range officials {
		out = append(out, o.Email)
	}
	return out
}
