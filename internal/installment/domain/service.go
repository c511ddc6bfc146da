package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/railpos/internal/errkind"
)

type ListInstallmentRequest struct {
	InvoiceID  *snowflake.ID
	CustomerID *snowflake.ID
	Status     Status
}

// Service reads installments. Reads reconcile overdue statuses first so the
// returned statuses match today's date.
type Service interface {
	Get(ctx context.Context, id snowflake.ID) (*Installment, error)
	List(ctx context.Context, req ListInstallmentRequest) ([]Installment, error)
}

var ErrInstallmentNotFound = errkind.New("installment_not_found", errkind.ErrNotFound)
