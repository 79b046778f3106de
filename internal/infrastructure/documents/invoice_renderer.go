package documents

import (
	"context"
	"encoding/xml"
	"errors"
	"time"

	"servitec/internal/domain/entities"
	"servitec/internal/usecase/interfaces"
)

// ErrPDFRendererNotConfigured is returned when no PDF backend is wired.
// Invoice issuance treats a missing PDF as non-fatal.
var ErrPDFRendererNotConfigured = errors.New("pdf renderer not configured")

type invoiceLineXML struct {
	Description string  `xml:"description"`
	Quantity    int     `xml:"quantity"`
	UnitPrice   float64 `xml:"unitPrice"`
}

type invoiceXML struct {
	XMLName   xml.Name `xml:"invoice"`
	Number    string   `xml:"number"`
	AccessKey string   `xml:"accessKey"`
	OrderTag  string   `xml:"orderTag"`
	ClientID  int64    `xml:"clientId"`
	IssuedAt  string   `xml:"issuedAt"`

	Lines []invoiceLineXML `xml:"lines>line"`

	SubTotal    float64 `xml:"totals>subTotal"`
	Tax         float64 `xml:"totals>tax"`
	TotalAmount float64 `xml:"totals>totalAmount"`
}

// InvoiceRenderer produces the XML representation of an issued invoice.
// PDF rendering requires an external backend; when none is configured the
// renderer reports that instead of guessing at a layout.
type InvoiceRenderer struct{}

var _ interfaces.IDocumentRenderer = (*InvoiceRenderer)(nil)

func NewInvoiceRenderer() *InvoiceRenderer {
	return &InvoiceRenderer{}
}

func (r *InvoiceRenderer) RenderInvoiceXML(_ context.Context, inv entities.Invoice, order entities.ServiceOrder) ([]byte, error) {
	doc := invoiceXML{
		Number:      inv.Number,
		AccessKey:   inv.AccessKey,
		OrderTag:    order.Tag,
		ClientID:    order.ClientID,
		IssuedAt:    inv.IssuedAt.UTC().Format(time.RFC3339),
		SubTotal:    inv.SubTotal,
		Tax:         inv.Tax,
		TotalAmount: inv.TotalAmount,
	}
	for _, p := range order.Parts {
		doc.Lines = append(doc.Lines, invoiceLineXML{
			Description: p.Name,
			Quantity:    p.Quantity,
			UnitPrice:   p.Price,
		})
	}

	b, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), b...), nil
}

func (r *InvoiceRenderer) RenderInvoicePDF(_ context.Context, _ entities.Invoice, _ entities.ServiceOrder) ([]byte, error) {
	return nil, ErrPDFRendererNotConfigured
}
