// Package burnrate models operating expenses and the burn and runway figures
// derived from them.
package burnrate

import "time"

// Categories are the expense categories offered by the dashboard. Any other
// non-empty category is accepted as free text.
var Categories = []string{
	"Salaries & Benefits",
	"Software & Tools",
	"Marketing",
	"Office & Operations",
	"Legal & Professional",
	"Research & Development",
	"Travel & Entertainment",
	"Other",
}

// Expense is one cost line. Date is a calendar date (YYYY-MM-DD).
type Expense struct {
	ID          string    `json:"id" bson:"id"`
	Category    string    `json:"category" bson:"category"`
	Amount      float64   `json:"amount" bson:"amount"`
	Description string    `json:"description" bson:"description"`
	Date        string    `json:"date" bson:"date"`
	Recurring   bool      `json:"recurring" bson:"recurring"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (e Expense) RecordID() string { return e.ID }

// ExpenseInput is the payload of Add. An empty Date means today.
type ExpenseInput struct {
	Category    string   `json:"category"`
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
	Date        string   `json:"date,omitempty"`
	Recurring   bool     `json:"recurring"`
}

// ExpensePatch is the payload of Update; nil fields are left unchanged.
type ExpensePatch struct {
	Category    *string  `json:"category,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Description *string  `json:"description,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Recurring   *bool    `json:"recurring,omitempty"`
}

// Runway is the number of whole months the cash lasts at the current burn.
// With no recurring burn Months is nil and Infinite is set.
type Runway struct {
	Months   *int64 `json:"months"`
	Infinite bool   `json:"infinite"`
}

// CategoryTotal is the recurring spend of one category and its share of the
// monthly burn, rounded to the nearest percent.
type CategoryTotal struct {
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	PercentOfBurn int     `json:"percentOfBurn"`
}

type Summary struct {
	MonthlyBurn    float64         `json:"monthlyBurn"`
	OneTimeTotal   float64         `json:"oneTimeTotal"`
	Expenses       int             `json:"expenses"`
	RecurringCount int             `json:"recurringCount"`
	Cash           float64         `json:"cash"`
	Runway         Runway          `json:"runway"`
	Categories     []CategoryTotal `json:"categories"`
}
