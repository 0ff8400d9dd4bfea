package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumLines totals the debit and credit columns of canonical lines.
func SumLines(lines []domain.CanonicalLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// ValidateBalance checks that total debit equals total credit and is greater
// than zero. An entry that moves no money is not balanced.
func ValidateBalance(debit, credit decimal.Decimal) error {
	if !debit.Equal(credit) {
		return fmt.Errorf("total debit %s must equal total credit %s", debit, credit)
	}
	if !debit.IsPositive() {
		return fmt.Errorf("total debit %s must be greater than zero", debit)
	}
	return nil
}
