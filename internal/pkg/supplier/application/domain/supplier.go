package supplier

import (
	"sort"
	"strings"
	"time"

	"go-wedding/internal/pkg/platform/apperr"
	"go-wedding/internal/pkg/platform/phone"
)

var ErrSupplierNotFound = apperr.New(apperr.ErrNotFound, "supplier: not found")

// Supplier is a vendor hired for an event. Amounts are in cents.
type Supplier struct {
	ID          string    `db:"id"`
	EventID     string    `db:"event_id"`
	Name        string    `db:"name"`
	Category    string    `db:"category"`
	Phone       string    `db:"phone"`
	Email       string    `db:"email"`
	AgreedCents int64     `db:"agreed_cents"`
	PaidCents   int64     `db:"paid_cents"`
	Notes       string    `db:"notes"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Validate normalizes text fields and checks the amounts.
func (s *Supplier) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	s.Category = strings.ToLower(strings.TrimSpace(s.Category))
	s.Email = strings.TrimSpace(s.Email)
	if s.Name == "" {
		return apperr.Validation("supplier name is required")
	}
	if s.AgreedCents < 0 || s.PaidCents < 0 {
		return apperr.Validation("amounts must not be negative")
	}
	if s.PaidCents > s.AgreedCents {
		return apperr.Validation("paid amount cannot exceed the agreed amount")
	}
	if strings.TrimSpace(s.Phone) != "" {
		p, ok := phone.Parse(s.Phone)
		if !ok {
			return apperr.Validationf("phone %q is not a valid international number", s.Phone)
		}
		s.Phone = p
	} else {
		s.Phone = ""
	}
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		return apperr.Validation("email is invalid")
	}
	return nil
}

// Patch is a partial supplier update.
type Patch struct {
	Name        *string
	Category    *string
	Phone       *string
	Email       *string
	AgreedCents *int64
	PaidCents   *int64
	Notes       *string
}

func (p Patch) Apply(s Supplier) (Supplier, error) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.AgreedCents != nil {
		s.AgreedCents = *p.AgreedCents
	}
	if p.PaidCents != nil {
		s.PaidCents = *p.PaidCents
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	return s, s.Validate()
}

// CategoryTotal sums the suppliers of one category.
type CategoryTotal struct {
	Category    string `json:"category"`
	Suppliers   int    `json:"suppliers"`
	AgreedCents int64  `json:"agreed_cents"`
	PaidCents   int64  `json:"paid_cents"`
}

// Budget compares an event's budget with what its suppliers cost.
type Budget struct {
	BudgetCents      int64           `json:"budget_cents"`
	AgreedCents      int64           `json:"agreed_cents"`
	PaidCents        int64           `json:"paid_cents"`
	OutstandingCents int64           `json:"outstanding_cents"`
	RemainingCents   int64           `json:"remaining_cents"`
	ByCategory       []CategoryTotal `json:"by_category"`
}

const uncategorized = "other"

// Summarize totals suppliers against budget. RemainingCents goes negative
// when commitments exceed the budget.
func Summarize(budgetCents int64, suppliers []Supplier) Budget {
	b := Budget{BudgetCents: budgetCents, ByCategory: []CategoryTotal{}}
	idx := map[string]int{}
	for _, s := range suppliers {
		b.AgreedCents += s.AgreedCents
		b.PaidCents += s.PaidCents
		cat := s.Category
		if cat == "" {
			cat = uncategorized
		}
		i, ok := idx[cat]
		if !ok {
			i = len(b.ByCategory)
			idx[cat] = i
			b.ByCategory = append(b.ByCategory, CategoryTotal{Category: cat})
		}
		b.ByCategory[i].Suppliers++
		b.ByCategory[i].AgreedCents += s.AgreedCents
		b.ByCategory[i].PaidCents += s.PaidCents
	}
	b.OutstandingCents = b.AgreedCents - b.PaidCents
	b.RemainingCents = b.BudgetCents - b.AgreedCents
	sort.Slice(b.ByCategory, func(i, j int) bool { return b.ByCategory[i].Category < b.ByCategory[j].Category })
	return b
}
