package interfaces

import (
	"context"

	"servitec/internal/domain/entities"
)

// IDocumentRenderer turns an issued invoice into client-facing documents.
// Rendering receives only the computed fields; layout is not this system's
// concern. The PDF side is an external collaborator and may be absent in a
// deployment, in which case the invoice is issued without a PDF.
type IDocumentRenderer interface {
	RenderInvoiceXML(ctx context.Context, inv entities.Invoice, order entities.ServiceOrder) ([]byte, error)
	RenderInvoicePDF(ctx context.Context, inv entities.Invoice, order entities.ServiceOrder) ([]byte, error)
}
