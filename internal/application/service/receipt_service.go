package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/pkg/apperror"
	"github.com/chalkboard-id/chalkboard-api/pkg/logger"
	"github.com/chalkboard-id/chalkboard-api/pkg/printer"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const receiptTimeLayout = "02/01/2006 15:04"

// ReceiptService renders payments as ESC/POS receipts and sends them to the
// hall printer
type ReceiptService struct {
	billing *BillingService
	printer printer.Printer
	header  string
	width   int
}

// NewReceiptService creates a new receipt service
func NewReceiptService(billing *BillingService, p printer.Printer, header string, width int) *ReceiptService {
	return &ReceiptService{
		billing: billing,
		printer: p,
		header:  header,
		width:   width,
	}
}

// Render builds the receipt of a payment. Cancelled payments have no receipt.
func (s *ReceiptService) Render(ctx context.Context, paymentID uuid.UUID) ([]byte, error) {
	detail, err := s.billing.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if detail.Payment.Status == enum.PaymentStatusCancelled {
		return nil, apperror.NewStateConflictError("Payment %s is cancelled", detail.Payment.TransactionNumber)
	}

	return renderReceipt(detail, s.header, s.width), nil
}

// Print renders the receipt and sends it to the printer
func (s *ReceiptService) Print(ctx context.Context, paymentID uuid.UUID) error {
	if s.printer.Kind() == "none" {
		return apperror.NewBadRequestError("No receipt printer is configured")
	}

	data, err := s.Render(ctx, paymentID)
	if err != nil {
		return err
	}

	if err := s.printer.Print(ctx, data); err != nil {
		logger.WithFields(logrus.Fields{
			"payment_id": paymentID,
			"printer":    s.printer.Kind(),
		}).WithError(err).Error("Failed to print receipt")
		return apperror.NewAppError(apperror.KindInternal, http.StatusBadGateway, "Receipt printer is unreachable")
	}
	return nil
}

func renderReceipt(detail *PaymentDetail, header string, width int) []byte {
	p := detail.Payment
	r := printer.NewReceipt(width)

	r.Align(printer.AlignCenter).Bold(true).FontSize(printer.FontDouble).Line(header)
	r.FontSize(printer.FontNormal).Bold(false).Line(p.TransactionNumber)
	r.Line(p.CreatedAt.Format(receiptTimeLayout))
	r.Align(printer.AlignLeft).Separator('-')

	if p.CustomerName != nil {
		r.Columns("Customer", *p.CustomerName)
	}

	if session := detail.Session; session != nil {
		tableName := "-"
		if session.Table != nil {
			tableName = session.Table.Name
		}
		r.Columns("Table", tableName)
		r.Columns("Start", session.StartTime.Format(receiptTimeLayout))
		if session.ActualDuration != nil {
			r.Columns("Duration", fmt.Sprintf("%d min", *session.ActualDuration))
		}
		if session.TotalCost != nil {
			r.Columns("Table charge", printer.Rupiah(*session.TotalCost))
		}
		r.Separator('-')
	}

	for _, order := range detail.Orders {
		for _, line := range order.Items {
			name := "Item"
			if line.Item != nil {
				name = line.Item.Name
			}
			r.Columns(fmt.Sprintf("%dx %s", line.Quantity, name), printer.Rupiah(line.Subtotal))
		}
	}
	if len(detail.Orders) > 0 {
		r.Separator('-')
	}

	r.Columns("Table total", printer.Rupiah(p.TableAmount))
	r.Columns("F&B", printer.Rupiah(p.FnbAmount))
	if p.TaxAmount.IsPositive() {
		r.Columns("Tax (incl.)", printer.Rupiah(p.TaxAmount))
	}
	r.Bold(true).Columns("TOTAL", printer.Rupiah(p.TotalAmount)).Bold(false)

	for _, method := range p.PaymentMethods {
		r.Columns(method.Type, printer.Rupiah(method.Amount))
	}
	r.Columns("Status", string(p.Status))

	r.Separator('-').Align(printer.AlignCenter).Line("Thank you").Cut()
	return r.Bytes()
}
