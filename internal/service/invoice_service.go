package service

import (
	"context"
	"errors"

	"garagedesk/internal/dto"
	"garagedesk/internal/model"
	"garagedesk/internal/repository"
	"garagedesk/internal/worker"

	"github.com/google/uuid"
)

type InvoiceService interface {
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*dto.InvoiceResponse, error)
	PDFPath(ctx context.Context, orderID uuid.UUID) (string, error)
	Retry(ctx context.Context, orderID uuid.UUID) (*dto.InvoiceResponse, error)
}

type invoiceService struct {
	repo       repository.InvoiceRepository
	dispatcher *worker.Dispatcher
}

func NewInvoiceService(repo repository.InvoiceRepository, dispatcher *worker.Dispatcher) InvoiceService {
	return &invoiceService{repo: repo, dispatcher: dispatcher}
}

func (s *invoiceService) GetByOrder(ctx context.Context, orderID uuid.UUID) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, errors.New("invoice not found")
	}
	resp := invoiceToResponse(inv)
	return &resp, nil
}

// PDFPath returns the rendered PDF location for an issued invoice.
func (s *invoiceService) PDFPath(ctx context.Context, orderID uuid.UUID) (string, error) {
	inv, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return "", errors.New("invoice not found")
	}
	if inv.Status != model.InvoiceIssued || inv.PDFPath == nil || *inv.PDFPath == "" {
		return "", errors.New("invoice PDF not available yet")
	}
	return *inv.PDFPath, nil
}

// Retry re-enqueues a failed invoice manually, resetting the retry budget.
func (s *invoiceService) Retry(ctx context.Context, orderID uuid.UUID) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, errors.New("invoice not found")
	}
	if inv.Status == model.InvoiceIssued {
		return nil, errors.New("invoice already issued")
	}

	inv.Status = model.InvoicePending
	inv.RetryCount = 0
	inv.NextRetryAt = nil
	inv.LastError = nil
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueInvoice(ctx, worker.InvoiceJobPayload{
			RepairOrderID: orderID.String(),
		}); err != nil {
			return nil, err
		}
	}

	resp := invoiceToResponse(inv)
	return &resp, nil
}

func invoiceToResponse(inv *model.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:            inv.ID.String(),
		RepairOrderID: inv.RepairOrderID.String(),
		Number:        inv.Number,
		Status:        inv.Status,
		PDFPath:       inv.PDFPath,
		RetryCount:    inv.RetryCount,
		LastError:     inv.LastError,
		CreatedAt:     inv.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
