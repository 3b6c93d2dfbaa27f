package worker

// email_worker.go
// Processes email jobs from QueueEmail: sends the invoice PDF to the
// customer via SMTP. Sends run through the circuit breaker so a downed
// mail server does not stall the pool.

import (
	"context"
	"encoding/json"

	"garagedesk/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb}
}

// Process sends an email with the invoice PDF attached.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	send := func() error {
		return w.mailer.SendInvoice(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
	}
	var err error
	if w.cb != nil {
		err = w.cb.Execute(send)
	} else {
		err = send()
	}
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: invoice sent")
}
