package worker

// invoice_worker.go
// Processes invoice jobs from QueueInvoice: draws an invoice number from the
// Postgres sequence, renders the PDF, marks the invoice issued, and enqueues
// an email job when the customer has an address on file. Failures leave the
// invoice pending with a next_retry_at so the retry cron picks it up.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"garagedesk/internal/infra"
	"garagedesk/internal/model"
	"garagedesk/internal/money"
	"garagedesk/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxInvoiceRetries caps automatic re-attempts before a job goes to the DLQ.
const MaxInvoiceRetries = 3

// InvoiceJobPayload is the job envelope sent to QueueInvoice.
type InvoiceJobPayload struct {
	RepairOrderID string `json:"repair_order_id"`
}

type InvoiceWorker struct {
	invoiceRepo    repository.InvoiceRepository
	orderRepo      repository.RepairOrderRepository
	settingsRepo   repository.SettingsRepository
	dispatcher     *Dispatcher
	qr             *infra.VietQR
	pdfStoragePath string
}

func NewInvoiceWorker(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.RepairOrderRepository,
	settingsRepo repository.SettingsRepository,
	dispatcher *Dispatcher,
	qr *infra.VietQR,
	pdfStoragePath string,
) *InvoiceWorker {
	return &InvoiceWorker{
		invoiceRepo:    invoiceRepo,
		orderRepo:      orderRepo,
		settingsRepo:   settingsRepo,
		dispatcher:     dispatcher,
		qr:             qr,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single invoice job:
//  1. Parse InvoiceJobPayload from the job envelope
//  2. Fetch the order with items, vehicle, and customer
//  3. Find or create the invoice row, drawing a number from the sequence
//  4. Render the PDF (with a VietQR block when a balance remains)
//  5. Mark the invoice issued; schedule a retry on failure
//  6. Enqueue an email job when the customer has an email on file
func (w *InvoiceWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload InvoiceJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("invoice_worker: invalid payload")
		return
	}

	orderID, err := uuid.Parse(payload.RepairOrderID)
	if err != nil {
		log.Error().Str("repair_order_id", payload.RepairOrderID).Msg("invoice_worker: invalid repair_order_id")
		return
	}

	order, err := w.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("repair_order_id", payload.RepairOrderID).Msg("invoice_worker: order not found")
		return
	}
	if order.Status != model.StatusCompleted {
		log.Warn().Str("repair_order_id", payload.RepairOrderID).Str("status", order.Status).
			Msg("invoice_worker: order is not completed — skipping")
		return
	}

	inv, err := w.invoiceRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		number, err := w.invoiceRepo.NextNumber(ctx, nil)
		if err != nil {
			log.Error().Err(err).Msg("invoice_worker: failed to draw invoice number")
			return
		}
		inv = &model.Invoice{
			RepairOrderID: orderID,
			Number:        number,
			Status:        model.InvoicePending,
		}
		if err := w.invoiceRepo.Create(ctx, inv); err != nil {
			log.Error().Err(err).Str("repair_order_id", payload.RepairOrderID).
				Msg("invoice_worker: failed to create invoice")
			return
		}
	}
	if inv.Status == model.InvoiceIssued {
		log.Info().Int("number", inv.Number).Msg("invoice_worker: already issued — skipping")
		return
	}

	data := infra.InvoicePDFData{
		Order:    order,
		Number:   inv.Number,
		ShopName: w.setting(ctx, "shop_name"),
		ShopAddr: w.setting(ctx, "shop_address"),
		ShopTel:  w.setting(ctx, "shop_phone"),
	}

	// VietQR block for whatever is still owed on the vehicle
	if w.qr != nil && order.Vehicle != nil {
		outstanding := order.TotalAmount.Sub(order.Vehicle.TotalPaid)
		if outstanding.IsPositive() {
			if png, err := w.qr.PNG(outstanding, fmt.Sprintf("Invoice %d", inv.Number), 256); err == nil {
				data.QRPNG = png
			}
		}
	}

	pdfPath, pdfErr := infra.GenerateInvoicePDF(data, w.pdfStoragePath)
	if pdfErr != nil {
		w.scheduleRetry(ctx, inv, pdfErr)
		return
	}

	inv.Status = model.InvoiceIssued
	inv.PDFPath = &pdfPath
	inv.NextRetryAt = nil
	inv.LastError = nil
	if err := w.invoiceRepo.Update(ctx, inv); err != nil {
		log.Error().Err(err).Int("number", inv.Number).Msg("invoice_worker: failed to mark issued")
		return
	}
	log.Info().Int("number", inv.Number).Str("pdf", pdfPath).Msg("invoice_worker: invoice issued")

	w.maybeEnqueueEmail(ctx, order, inv, pdfPath)
}

func (w *InvoiceWorker) maybeEnqueueEmail(ctx context.Context, order *model.RepairOrder, inv *model.Invoice, pdfPath string) {
	if w.dispatcher == nil || order.Vehicle == nil || order.Vehicle.Customer == nil {
		return
	}
	customer := order.Vehicle.Customer
	if customer.Email == nil || *customer.Email == "" {
		return
	}

	job := EmailJobPayload{
		ToEmail: *customer.Email,
		Subject: fmt.Sprintf("Invoice #%d — %s", inv.Number, order.Vehicle.LicensePlate),
		Body: fmt.Sprintf("Your vehicle %s is ready for pickup.\nTotal: %s",
			order.Vehicle.LicensePlate, money.FormatCurrency(order.TotalAmount)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, job); err != nil {
		log.Warn().Err(err).Str("email", *customer.Email).Msg("invoice_worker: failed to enqueue email")
		return
	}
	log.Info().Str("email", *customer.Email).Msg("invoice_worker: email job enqueued")
}

func (w *InvoiceWorker) scheduleRetry(ctx context.Context, inv *model.Invoice, cause error) {
	inv.RetryCount++
	errMsg := cause.Error()
	inv.LastError = &errMsg
	if inv.RetryCount >= MaxInvoiceRetries {
		inv.Status = model.InvoiceFailed
		inv.NextRetryAt = nil
		log.Error().Err(cause).Int("number", inv.Number).Int("retries", inv.RetryCount).
			Msg("invoice_worker: max retries exceeded")
	} else {
		next := time.Now().Add(computeRetryBackoff(inv.RetryCount))
		inv.NextRetryAt = &next
		log.Warn().Err(cause).Int("number", inv.Number).Time("next_retry_at", next).
			Msg("invoice_worker: scheduled retry")
	}
	_ = w.invoiceRepo.Update(ctx, inv)
}

// setting fetches one shop setting, tolerating a missing row.
func (w *InvoiceWorker) setting(ctx context.Context, key string) string {
	if w.settingsRepo == nil {
		return ""
	}
	v, err := w.settingsRepo.Get(ctx, key)
	if err != nil {
		return ""
	}
	return v
}

// computeRetryBackoff returns the wait before the next attempt: 1m, 2m, 4m …
func computeRetryBackoff(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	return time.Duration(1<<uint(retryCount-1)) * time.Minute
}
