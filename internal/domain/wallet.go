package domain

import (
	"time"

	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
)

// Wallet Model
type Wallet struct {
	ID             uint            `gorm:"primaryKey"`                  // Primary key
	UserID         uint            `gorm:"index;not null"`              // Foreign key to User
	Name           string          `gorm:"size:255;not null"`           // Display name
	CurrentBalance decimal.Decimal `gorm:"type:decimal(10,2);not null"` // Running balance
	Transactions   []Transaction   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Transactions against this wallet
	CreatedAt      time.Time       // Timestamp of creation
	UpdatedAt      time.Time       // Timestamp of last update
}
