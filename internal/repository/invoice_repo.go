package repository

import (
	"context"
	"time"

	"garagedesk/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *model.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Invoice, error)
	Update(ctx context.Context, inv *model.Invoice) error

	// NextNumber draws from the invoice_number_seq Postgres sequence.
	NextNumber(ctx context.Context, tx *gorm.DB) (int, error)

	// ListPendingRetry returns pending invoices whose next_retry_at has
	// passed — the retry cron's work list.
	ListPendingRetry(ctx context.Context, now time.Time, limit int) ([]model.Invoice, error)
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).First(&inv, id).Error
	return &inv, err
}

func (r *invoiceRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).Where("repair_order_id = ?", orderID).First(&inv).Error
	return &inv, err
}

func (r *invoiceRepo) Update(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *invoiceRepo) NextNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	db := tx
	if db == nil {
		db = r.db.WithContext(ctx)
	}
	var n int
	err := db.Raw("SELECT nextval('invoice_number_seq')").Scan(&n).Error
	return n, err
}

func (r *invoiceRepo) ListPendingRetry(ctx context.Context, now time.Time, limit int) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", model.InvoicePending, now).
		Order("next_retry_at ASC").Limit(limit).Find(&invoices).Error
	return invoices, err
}
