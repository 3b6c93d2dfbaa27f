package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues invoices stuck in
// status='pending' with a next_retry_at in the past.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"garagedesk/internal/model"
	"garagedesk/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	InvoiceRepo repository.InvoiceRepository
	Dispatcher  *Dispatcher
	RDB         *redis.Client
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries pending invoices past their retry time, and pushes them back onto
// the invoice queue. It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	now := time.Now()
	invoices, err := cfg.InvoiceRepo.ListPendingRetry(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(invoices) == 0 {
		return
	}

	log.Info().Int("count", len(invoices)).Msg("retry_cron: re-enqueueing pending invoices")

	for i := range invoices {
		inv := &invoices[i]

		if inv.RetryCount >= MaxInvoiceRetries {
			inv.Status = model.InvoiceFailed
			inv.NextRetryAt = nil
			_ = cfg.InvoiceRepo.Update(ctx, inv)

			payload, _ := json.Marshal(InvoiceJobPayload{RepairOrderID: inv.RepairOrderID.String()})
			reason := fmt.Sprintf("max retries (%d) exceeded", MaxInvoiceRetries)
			if inv.LastError != nil {
				reason += ": " + *inv.LastError
			}
			SendToDLQ(ctx, cfg.RDB, QueueInvoice, "invoice", payload, reason, inv.RetryCount)
			continue
		}

		// Clear next_retry_at before re-enqueueing so a slow worker does not
		// cause the same invoice to be picked up twice.
		inv.NextRetryAt = nil
		if err := cfg.InvoiceRepo.Update(ctx, inv); err != nil {
			log.Error().Err(err).Str("invoice_id", inv.ID.String()).Msg("retry_cron: failed to claim invoice")
			continue
		}

		if err := cfg.Dispatcher.EnqueueInvoice(ctx, InvoiceJobPayload{
			RepairOrderID: inv.RepairOrderID.String(),
		}); err != nil {
			log.Error().Err(err).Str("invoice_id", inv.ID.String()).Msg("retry_cron: enqueue failed")
			continue
		}
		log.Info().Int("number", inv.Number).Int("retry_count", inv.RetryCount).
			Msg("retry_cron: invoice re-enqueued")
	}
}
