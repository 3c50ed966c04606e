package domain

import (
	"time"

	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
)

// TransactionType enumerates the two kinds of financial events
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"  // Adds to the wallet balance
	TransactionTypeExpense TransactionType = "expense" // Subtracts from the wallet balance
)

// Valid reports whether t is one of the enumerated transaction types
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction Model
type Transaction struct {
	ID          uint            `gorm:"primaryKey"`                  // Primary key
	WalletID    uint            `gorm:"index;not null"`              // Foreign key to Wallet
	Type        TransactionType `gorm:"size:16;not null"`            // Transaction type: income or expense
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"` // Always positive; sign implied by Type
	Category    string          `gorm:"size:255;not null"`           // Category label, e.g. salary, food
	Description *string         `gorm:"size:255"`                    // Optional free-text note
	Date        time.Time       `gorm:"not null"`                    // Calendar date of the event
	CreatedAt   time.Time       // Timestamp of creation
	UpdatedAt   time.Time       // Timestamp of last update
}
