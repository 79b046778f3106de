package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"servitec/internal/domain/entities"
	"servitec/internal/domain/fiscal"
	"servitec/internal/usecase/interfaces"
)

var (
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvoiceAlreadyIssued = errors.New("invoice already issued for order")
	ErrInvoiceAlreadyPaid   = errors.New("invoice already paid")
	// ErrSequenceConflict signals a detected race while reserving the invoice
	// number. Unlike every other error in this flow it is retryable as-is.
	ErrSequenceConflict = errors.New("invoice sequence conflict")
)

// GeneratedInvoice bundles the persisted invoice with its rendered
// documents. XML or PDF may be nil when the corresponding renderer is not
// configured in this deployment.
type GeneratedInvoice struct {
	Invoice entities.Invoice
	XML     []byte
	PDF     []byte
}

// IInvoiceUseCase issues the fiscal invoice when an order becomes billable
// and charges it through the payment gateway.
type IInvoiceUseCase interface {
	Generate(ctx context.Context, orderID int64, actorID *int64) (GeneratedInvoice, error)
	GetByOrderID(ctx context.Context, orderID int64) (entities.Invoice, error)
	Pay(ctx context.Context, orderID int64, payload json.RawMessage) (entities.Payment, error)
	ListPayments(ctx context.Context, orderID int64) ([]entities.Payment, error)
}

type InvoiceUseCase struct {
	invoices interfaces.IInvoiceRepository
	orders   interfaces.IServiceOrderRepository
	payments interfaces.IPaymentRepository
	counters interfaces.ICounterRepository
	gateway  interfaces.IPaymentGateway
	renderer interfaces.IDocumentRenderer
	issuer   fiscal.Issuer
	taxRate  float64
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(
	invoices interfaces.IInvoiceRepository,
	orders interfaces.IServiceOrderRepository,
	payments interfaces.IPaymentRepository,
	counters interfaces.ICounterRepository,
	gateway interfaces.IPaymentGateway,
	renderer interfaces.IDocumentRenderer,
	issuer fiscal.Issuer,
	taxRate float64,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoices: invoices,
		orders:   orders,
		payments: payments,
		counters: counters,
		gateway:  gateway,
		renderer: renderer,
		issuer:   issuer,
		taxRate:  taxRate,
	}
}

func (u *InvoiceUseCase) counterScope() string {
	return fmt.Sprintf("invoice#%s-%s", u.issuer.Establishment, u.issuer.EmissionPoint)
}

// Generate issues the invoice for a completed, proforma-approved order and
// moves the order into invoiced. The invoice row is written before the
// status move: keying invoices by order id makes the write an at-most-once
// latch, so a concurrent duplicate request loses at the store instead of
// double-invoicing.
func (u *InvoiceUseCase) Generate(ctx context.Context, orderID int64, actorID *int64) (GeneratedInvoice, error) {
	if orderID <= 0 {
		return GeneratedInvoice{}, ErrInvalidOrderInput
	}

	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return GeneratedInvoice{}, err
	}
	if o.ID == 0 {
		return GeneratedInvoice{}, ErrOrderNotFound
	}
	if err := entities.ValidateTransition(o, entities.StatusInvoiced); err != nil {
		return GeneratedInvoice{}, err
	}

	if existing, err := u.invoices.GetByOrderID(ctx, orderID); err != nil {
		return GeneratedInvoice{}, err
	} else if existing.OrderID != 0 {
		return GeneratedInvoice{}, ErrInvoiceAlreadyIssued
	}

	inv, err := u.issueInvoice(ctx, o)
	if err != nil {
		return GeneratedInvoice{}, err
	}

	cmd := interfaces.TransitionCommand{
		OrderID:            o.ID,
		From:               o.Status,
		To:                 entities.StatusInvoiced,
		ProformaStatus:     o.ProformaStatus,
		ExpectedHistorySeq: o.HistorySeq,
		Notes:              fmt.Sprintf("invoice %s issued", inv.Number),
		ChangedBy:          actorID,
	}
	if _, err := u.orders.TransitionStatus(ctx, cmd); err != nil {
		return GeneratedInvoice{}, err
	}
	log.Printf("[invoice][usecase] issued order_id=%d number=%s access_key=%s", o.ID, inv.Number, inv.AccessKey)

	out := GeneratedInvoice{Invoice: inv}
	if u.renderer == nil {
		// Renderer is optional. Issue without documents.
		log.Printf("[invoice][usecase] document renderer not configured order_id=%d", o.ID)
		return out, nil
	}
	if out.XML, err = u.renderer.RenderInvoiceXML(ctx, inv, o); err != nil {
		log.Printf("[invoice][usecase] xml render failed order_id=%d err=%v", o.ID, err)
		return GeneratedInvoice{}, err
	}
	if out.PDF, err = u.renderer.RenderInvoicePDF(ctx, inv, o); err != nil {
		// PDF layout is an external collaborator; its absence must not undo
		// an already-issued fiscal document.
		log.Printf("[invoice][usecase] pdf render unavailable order_id=%d err=%v", o.ID, err)
		out.PDF = nil
	}
	return out, nil
}

// issueInvoice allocates the sequential number, derives the access key and
// persists the invoice. A number-marker collision is retried once with a
// freshly allocated sequence; a second collision surfaces ErrSequenceConflict
// to the caller, for whom re-running the generation is safe.
func (u *InvoiceUseCase) issueInvoice(ctx context.Context, o entities.ServiceOrder) (entities.Invoice, error) {
	const allocAttempts = 2

	for attempt := 1; ; attempt++ {
		seq, err := u.counters.Next(ctx, u.counterScope())
		if err != nil {
			return entities.Invoice{}, err
		}
		number, err := fiscal.FormatNumber(u.issuer.Establishment, u.issuer.EmissionPoint, seq)
		if err != nil {
			return entities.Invoice{}, err
		}

		now := time.Now().UTC()
		accessKey, err := fiscal.NewAccessKey(u.issuer, now, seq)
		if err != nil {
			return entities.Invoice{}, err
		}

		subTotal := round2(o.TotalPrice)
		tax := round2(subTotal * u.taxRate)
		inv := entities.Invoice{
			OrderID:     o.ID,
			Number:      number,
			AccessKey:   accessKey,
			SubTotal:    subTotal,
			Tax:         tax,
			TotalAmount: round2(subTotal + tax),
			Status:      entities.InvoiceStatusIssued,
			IssuedAt:    now,
			UpdatedAt:   now,
		}

		created, err := u.invoices.Create(ctx, inv)
		switch {
		case err == nil:
			return created, nil
		case errors.Is(err, interfaces.ErrInvoiceExists):
			return entities.Invoice{}, ErrInvoiceAlreadyIssued
		case errors.Is(err, interfaces.ErrNumberTaken):
			if attempt < allocAttempts {
				log.Printf("[invoice][usecase] number collision number=%s attempt=%d", number, attempt)
				continue
			}
			return entities.Invoice{}, fmt.Errorf("%w: %s", ErrSequenceConflict, number)
		default:
			return entities.Invoice{}, err
		}
	}
}

func (u *InvoiceUseCase) GetByOrderID(ctx context.Context, orderID int64) (entities.Invoice, error) {
	if orderID <= 0 {
		return entities.Invoice{}, ErrInvalidOrderInput
	}
	inv, err := u.invoices.GetByOrderID(ctx, orderID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.OrderID == 0 {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

// Pay charges the invoice total through the payment gateway. The amount
// always comes from the stored invoice, never from the request payload.
func (u *InvoiceUseCase) Pay(ctx context.Context, orderID int64, payload json.RawMessage) (entities.Payment, error) {
	inv, err := u.GetByOrderID(ctx, orderID)
	if err != nil {
		return entities.Payment{}, err
	}
	if inv.Status == entities.InvoiceStatusPaid {
		return entities.Payment{}, ErrInvoiceAlreadyPaid
	}
	if u.gateway == nil {
		return entities.Payment{}, errors.New("payment gateway not configured")
	}

	if len(payload) == 0 || !json.Valid(payload) {
		payload = json.RawMessage("{}")
	}
	var reqMap map[string]any
	if err := json.Unmarshal(payload, &reqMap); err != nil {
		reqMap = map[string]any{}
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = inv.Number
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Invoice %s", inv.Number)
	}
	reqMap["transaction_amount"] = inv.TotalAmount
	enriched, err := json.Marshal(reqMap)
	if err != nil {
		return entities.Payment{}, err
	}

	providerID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, enriched)
	if err != nil {
		log.Printf("[invoice][usecase] payment gateway failed order_id=%d err=%v", orderID, err)
		return entities.Payment{}, err
	}

	status := entities.PaymentStatusApproved
	if providerStatus != "" && providerStatus != "approved" {
		status = entities.PaymentStatusDenied
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[invoice][usecase] provider response unmarshal failed order_id=%d err=%v", orderID, err)
	}

	p := entities.Payment{
		ID:                 providerID,
		OrderID:            orderID,
		InvoiceNumber:      inv.Number,
		Amount:             inv.TotalAmount,
		Date:               time.Now().UTC(),
		Status:             status,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	created, err := u.payments.Create(ctx, p)
	if err != nil {
		return entities.Payment{}, err
	}

	if status == entities.PaymentStatusApproved {
		if _, err := u.invoices.MarkPaid(ctx, orderID); err != nil {
			log.Printf("[invoice][usecase] mark paid failed order_id=%d err=%v", orderID, err)
			return entities.Payment{}, err
		}
	}
	log.Printf("[invoice][usecase] payment recorded order_id=%d payment_id=%s status=%s", orderID, created.ID, created.Status)
	return created, nil
}

// ListPayments returns every payment attempt recorded for the order's
// invoice, approved and denied alike, oldest first as stored.
func (u *InvoiceUseCase) ListPayments(ctx context.Context, orderID int64) ([]entities.Payment, error) {
	if orderID <= 0 {
		return nil, ErrInvalidOrderInput
	}
	return u.payments.ListByOrderID(ctx, orderID)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
