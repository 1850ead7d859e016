package billing

import (
	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Breakdown is the reconciled bill of one session
type Breakdown struct {
	Minutes       int               `json:"minutes"`
	DurationType  enum.DurationType `json:"duration_type"`
	BillableHours int               `json:"billable_hours,omitempty"`
	Rate          decimal.Decimal   `json:"rate"`
	TableCost     decimal.Decimal   `json:"table_cost"`
	TableTax      decimal.Decimal   `json:"table_tax"`
	TableAmount   decimal.Decimal   `json:"table_amount"`
	FnbAmount     decimal.Decimal   `json:"fnb_amount"`
	FnbTax        decimal.Decimal   `json:"fnb_tax"`
	TaxAmount     decimal.Decimal   `json:"tax_amount"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
}

// Reconcile combines the table charge with the F&B totals already carried
// by the attached orders. fnbTotal includes fnbTax.
func Reconcile(minutes int, mode enum.DurationType, rc RateCard, tax TaxSettings, fnbTotal, fnbTax decimal.Decimal) Breakdown {
	tableCost := ComputeTableCost(minutes, mode, rc)
	tableTax := CalculateTax(tableCost, tax, true)
	tableAmount := tableCost.Add(tableTax)

	b := Breakdown{
		Minutes:      minutes,
		DurationType: mode,
		Rate:         rc.Rate(mode),
		TableCost:    tableCost,
		TableTax:     tableTax,
		TableAmount:  tableAmount,
		FnbAmount:    fnbTotal,
		FnbTax:       fnbTax,
		TaxAmount:    tableTax.Add(fnbTax),
		TotalAmount:  tableAmount.Add(fnbTotal),
	}
	if mode == enum.DurationTypeHourly {
		b.BillableHours = BillableHours(minutes)
	}
	return b
}
