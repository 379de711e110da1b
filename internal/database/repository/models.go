package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account types.
const (
	AccountChecking = "checking"
	AccountSavings  = "savings"
	AccountOther    = "other"
)

// Commitment statuses.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
	StatusPartial = "partial"
)

// Commitment kinds.
const (
	KindDebt        = "debt"
	KindInstallment = "installment"
	KindFinancing   = "financing"
	KindLoan        = "loan"
	KindOther       = "other"
)

// Category kinds.
const (
	CategoryExpense    = "expense"
	CategoryIncome     = "income"
	CategoryInvestment = "investment"
)

// Account represents an account row.
type Account struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	AccountType string          `json:"account_type"`
	Institution string          `json:"institution"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Expense represents an expense row. Amount is strictly positive; Date is a
// calendar date, not a timestamp.
type Expense struct {
	ID            int64           `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Category      string          `json:"category"`
	Recurring     bool            `json:"recurring"`
	TaxDeductible bool            `json:"tax_deductible"`
}

// Income represents an income row.
type Income struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Recurring   bool            `json:"recurring"`
}

// Goal represents a savings goal. Progress may overshoot the target.
type Goal struct {
	ID           int64           `json:"id"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     time.Time       `json:"deadline"`
	Progress     decimal.Decimal `json:"progress"`
	Category     string          `json:"category"`
}

// Commitment is the unified representation of a debt or installment
// obligation. A pure debt carries InstallmentsTotal = 1.
type Commitment struct {
	ID                 int64           `json:"id"`
	Description        string          `json:"description"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	InstallmentAmount  decimal.Decimal `json:"installment_amount"`
	DueDate            time.Time       `json:"due_date"`
	Status             string          `json:"status"`
	Kind               string          `json:"kind"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	InstallmentsTotal  int64           `json:"installments_total"`
	InstallmentCurrent int64           `json:"installment_current"`
}

// Investment represents an investment row.
type Investment struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	InvestType     string          `json:"invest_type"`
	AmountInvested decimal.Decimal `json:"amount_invested"`
	CurrentValue   decimal.Decimal `json:"current_value"`
	StartDate      time.Time       `json:"start_date"`
	Institution    string          `json:"institution"`
}

// Yield is the percentage gain over the invested amount, 0 when nothing was
// invested.
func (i Investment) Yield() decimal.Decimal {
	if i.AmountInvested.IsZero() {
		return decimal.Zero
	}
	one := decimal.NewFromInt(1)
	return i.CurrentValue.Div(i.AmountInvested).Sub(one).Mul(decimal.NewFromInt(100))
}

// Budget represents a planned amount for a category in a given month. At
// most one row exists per (category, month, year).
type Budget struct {
	ID            int64           `json:"id"`
	Category      string          `json:"category"`
	PlannedAmount decimal.Decimal `json:"planned_amount"`
	Month         string          `json:"month"` // YYYY-MM
	Year          int             `json:"year"`
}

// Category represents a category row.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Notification represents a notification row.
type Notification struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	Read    bool      `json:"read"`
	Kind    string    `json:"kind"`
}

// DebtView reshapes a unified commitment back into the legacy debt field
// set for consumers still written against the old schema. Read-only.
type DebtView struct {
	ID           int64
	Description  string
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	TermMonths   int64
}

// InstallmentView reshapes a unified commitment back into the legacy
// installment field set. Read-only.
type InstallmentView struct {
	ID          int64
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
	Status      string
}
