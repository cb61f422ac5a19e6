package calculation

import (
	"github.com/rpgo/asset-projector/internal/domain"
	"github.com/rpgo/asset-projector/pkg/finmath"
	"github.com/shopspring/decimal"
)

// residualBalance is the point below which an amortizing balance is treated
// as paid off.
var residualBalance = decimal.RequireFromString("0.000001")

// Mortgage is the carry-over amortization state of a fixed-rate loan.
// Balance only ever moves by P&I amortization; OtherFeesPayment is paid
// alongside but never reduces principal.
type Mortgage struct {
	LoanAmount          decimal.Decimal
	MonthlyRate         decimal.Decimal
	TermMonths          int
	CalculatedPI        decimal.Decimal
	TotalMonthlyPayment decimal.Decimal
	OtherFeesPayment    decimal.Decimal
	Balance             decimal.Decimal
	MonthsPaid          int
}

// NewMortgage sets up the loan for a property at origination.
func NewMortgage(in domain.PropertyInputs) *Mortgage {
	loan := finmath.FloorZero(in.LoanAmount())
	term := in.LoanTerm * 12
	if term < 0 {
		term = 0
	}
	pi := finmath.AmortizedPayment(loan, in.InterestRate, term)
	total := pi
	if in.UserMonthlyPayment.IsPositive() {
		total = in.UserMonthlyPayment
	}
	return &Mortgage{
		LoanAmount:          loan,
		MonthlyRate:         finmath.MonthlyRate(finmath.FloorZero(in.InterestRate)),
		TermMonths:          term,
		CalculatedPI:        pi,
		TotalMonthlyPayment: total,
		OtherFeesPayment:    finmath.FloorZero(total.Sub(pi)),
		Balance:             loan,
	}
}

// PaidOff reports whether the balance has reached zero.
func (m *Mortgage) PaidOff() bool {
	return !m.Balance.IsPositive()
}

// CurrentPI is the P&I due per month right now: zero once paid off.
func (m *Mortgage) CurrentPI() decimal.Decimal {
	if m.PaidOff() {
		return decimal.Zero
	}
	return m.CalculatedPI
}

// CurrentMonthlyPayment is P&I (while the loan is open) plus other fees.
func (m *Mortgage) CurrentMonthlyPayment() decimal.Decimal {
	return m.CurrentPI().Add(m.OtherFeesPayment)
}

// FastForward applies months of P&I payments made before the projection
// starts.
func (m *Mortgage) FastForward(months int) {
	m.Pay(months)
}

// Pay applies months of P&I payments and returns the principal and interest
// actually paid. After payoff no interest accrues and nothing is paid. A loan
// without a term has no schedule and its balance is held.
func (m *Mortgage) Pay(months int) (principal, interest decimal.Decimal) {
	principal, interest = decimal.Zero, decimal.Zero
	if m.TermMonths <= 0 {
		return principal, interest
	}
	for i := 0; i < months; i++ {
		if m.PaidOff() {
			break
		}
		monthInterest := finmath.Bound(m.Balance.Mul(m.MonthlyRate))
		monthPrincipal := finmath.FloorZero(m.CalculatedPI.Sub(monthInterest))
		m.MonthsPaid++
		if monthPrincipal.GreaterThan(m.Balance) || m.MonthsPaid >= m.TermMonths {
			monthPrincipal = m.Balance
		}
		m.Balance = finmath.Bound(m.Balance.Sub(monthPrincipal))
		if m.Balance.LessThan(residualBalance) {
			m.Balance = decimal.Zero
		}
		principal = principal.Add(monthPrincipal)
		interest = interest.Add(monthInterest)
	}
	return principal, interest
}
