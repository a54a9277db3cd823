package interfaces

import (
	"context"
	"errors"
	"yelagiri_booking/internal/domain/entities"
)

//go:generate mockgen -source=invoice_repository_interface.go -destination=mocks/invoice_repository_interface.go -package=mock_interfaces

// ErrAlreadyExists is returned by repositories when a conditional create
// finds the key already taken.
var ErrAlreadyExists = errors.New("item already exists")

// IInvoiceRepository abstracts DynamoDB persistence for Invoice.
type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
}
