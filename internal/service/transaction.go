package service

import (
	"errors" // Sentinel error checks
	"fmt"    // Message formatting
	"time"   // Date parsing

	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
	"github.com/sirupsen/logrus"    // Structured logging
	"gorm.io/gorm"                  // GORM ORM library

	"lifetrack/internal/domain" // Domain models
)

// DateLayout is the wire format for transaction and task dates
const DateLayout = "2006-01-02"

// CreateTransactionRequest carries the input of the balance-adjustment
// operation. Amount is a pointer so a missing amount can be told apart from an
// explicit zero.
type CreateTransactionRequest struct {
	WalletID    uint             `json:"wallet_id" binding:"required"` // Target wallet
	Type        string           `json:"type"`                         // income or expense
	Amount      *decimal.Decimal `json:"amount"`                       // Event amount, >= 0
	Category    string           `json:"category"`                     // Required category label
	Description *string          `json:"description"`                  // Optional note
	Date        string           `json:"date"`                         // Calendar date, YYYY-MM-DD
}

// validate checks every field and collects per-field problems so the caller
// can display all of them at once. It returns the parsed date on success.
func (r *CreateTransactionRequest) validate() (time.Time, *ValidationError) {
	fields := map[string]string{}
	if r.WalletID == 0 {
		fields["wallet_id"] = "is required"
	}
	if !domain.TransactionType(r.Type).Valid() {
		fields["type"] = "must be income or expense"
	}
	if r.Amount == nil {
		fields["amount"] = "is required"
	} else if r.Amount.IsNegative() {
		fields["amount"] = "must not be negative"
	}
	if r.Category == "" {
		fields["category"] = "is required"
	}
	var date time.Time
	if r.Date == "" {
		fields["date"] = "is required"
	} else {
		var err error
		date, err = time.Parse(DateLayout, r.Date)
		if err != nil {
			fields["date"] = "must be a date in YYYY-MM-DD format"
		}
	}
	if len(fields) > 0 {
		return time.Time{}, &ValidationError{Fields: fields}
	}
	return date, nil
}

// CreateTransaction records a financial event and adjusts the wallet's running
// balance. The row insert and the balance update happen inside one database
// transaction: either both persist or neither does. The balance column is
// updated with a SQL expression so concurrent adjustments against the same
// wallet serialize at the row instead of losing an update.
//
// Validation and the ownership check run before the transaction opens, so any
// ValidationError, NotFoundError or AuthorizationError implies nothing was
// written. A zero amount is accepted and leaves the balance unchanged.
func (s *Service) CreateTransaction(actingUserID uint, req CreateTransactionRequest) (*domain.Transaction, *domain.Wallet, error) {
	date, verr := req.validate()
	if verr != nil {
		return nil, nil, verr
	}

	// Resolve and authorize the wallet before any write
	var wallet domain.Wallet
	if err := s.db.First(&wallet, req.WalletID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &NotFoundError{Resource: "wallet", ID: req.WalletID}
		}
		return nil, nil, &StorageError{Err: err}
	}
	if wallet.UserID != actingUserID {
		return nil, nil, &AuthorizationError{Resource: "wallet", ID: req.WalletID}
	}

	txn := domain.Transaction{
		WalletID:    wallet.ID,
		Type:        domain.TransactionType(req.Type),
		Amount:      *req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}

	// Atomic unit: insert the row, then shift the balance
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err // Return error to rollback
		}
		delta := signedAmount(txn.Type, txn.Amount)
		if err := tx.Model(&domain.Wallet{}).Where("id = ?", wallet.ID).
			Update("current_balance", gorm.Expr("current_balance + ?", delta)).Error; err != nil {
			return err // Return error to rollback
		}
		// Re-read inside the transaction so the returned wallet carries the
		// committed balance
		return tx.First(&wallet, wallet.ID).Error
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id":   actingUserID,
			"wallet_id": wallet.ID,
			"type":      req.Type,
			"amount":    req.Amount.String(),
			"error":     err.Error(),
		}).Error("Transaction create failed")
		return nil, nil, &StorageError{Err: err}
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        actingUserID,
		"wallet_id":      wallet.ID,
		"transaction_id": txn.ID,
		"type":           txn.Type,
		"amount":         txn.Amount.String(),
		"balance":        wallet.CurrentBalance.String(),
	}).Info("Transaction recorded")
	return &txn, &wallet, nil
}

// signedAmount maps a stored (always positive) amount to the delta it applies
// to the owning wallet's balance
func signedAmount(t domain.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if t == domain.TransactionTypeExpense {
		return amount.Neg()
	}
	return amount
}

// ListWalletTransactions returns up to limit transactions of one wallet,
// ordered by date (descending unless order is "asc"). The wallet must belong
// to the acting user.
func (s *Service) ListWalletTransactions(actingUserID, walletID uint, limit int, order string) ([]domain.Transaction, error) {
	var wallet domain.Wallet
	if err := s.db.First(&wallet, walletID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "wallet", ID: walletID}
		}
		return nil, &StorageError{Err: err}
	}
	if wallet.UserID != actingUserID {
		return nil, &AuthorizationError{Resource: "wallet", ID: walletID}
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	direction := "desc"
	if order == "asc" {
		direction = "asc"
	}
	var txns []domain.Transaction
	if err := s.db.Where("wallet_id = ?", walletID).
		Order("date " + direction).Order("id " + direction).
		Limit(limit).Find(&txns).Error; err != nil {
		return nil, &StorageError{Err: err}
	}
	return txns, nil
}

// TransactionFilters narrows ListTransactions. Zero values mean "no filter".
type TransactionFilters struct {
	WalletID uint   // Restrict to one wallet
	Type     string // income or expense
	From     string // Inclusive start date, YYYY-MM-DD
	To       string // Inclusive end date, YYYY-MM-DD
}

// ListTransactions returns a page of the acting user's transactions across all
// their wallets, newest first, plus the total row count for pagination.
func (s *Service) ListTransactions(actingUserID uint, f TransactionFilters, page, pageSize int) ([]domain.Transaction, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	query := s.db.Model(&domain.Transaction{}).
		Joins("JOIN wallets ON wallets.id = transactions.wallet_id").
		Where("wallets.user_id = ?", actingUserID)
	if f.WalletID != 0 {
		query = query.Where("transactions.wallet_id = ?", f.WalletID)
	}
	if f.Type != "" {
		query = query.Where("transactions.type = ?", f.Type)
	}
	if f.From != "" {
		query = query.Where("transactions.date >= ?", f.From)
	}
	if f.To != "" {
		query = query.Where("transactions.date <= ?", f.To)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, &StorageError{Err: err}
	}
	var txns []domain.Transaction
	if err := query.Order("transactions.date desc").Order("transactions.id desc").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&txns).Error; err != nil {
		return nil, 0, &StorageError{Err: err}
	}
	return txns, total, nil
}

// DeleteTransaction removes one transaction and reverses its effect on the
// owning wallet's balance, inside one database transaction. Reversal keeps the
// balance equal to the sum of the remaining transactions.
func (s *Service) DeleteTransaction(actingUserID, transactionID uint) error {
	var txn domain.Transaction
	if err := s.db.First(&txn, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "transaction", ID: transactionID}
		}
		return &StorageError{Err: err}
	}
	return s.DeleteTransactions(actingUserID, []uint{transactionID})
}

// DeleteTransactions removes a batch of transactions. Every id must reference
// an existing transaction on one of the acting user's wallets; if any id
// fails that check the whole batch is rejected before anything is deleted.
// Each deleted transaction's balance effect is reversed on its wallet.
func (s *Service) DeleteTransactions(actingUserID uint, ids []uint) error {
	if len(ids) == 0 {
		return NewValidationError("ids", "must not be empty")
	}

	var txns []domain.Transaction
	if err := s.db.Where("id IN ?", ids).Find(&txns).Error; err != nil {
		return &StorageError{Err: err}
	}
	byID := make(map[uint]domain.Transaction, len(txns))
	for _, t := range txns {
		byID[t.ID] = t
	}
	// Reject the whole batch on the first unknown id
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return NewValidationError("ids", fmt.Sprintf("transaction %d not found", id))
		}
	}

	// Ownership runs through the wallet; load each referenced wallet once
	wallets := map[uint]domain.Wallet{}
	for _, t := range byID {
		if _, ok := wallets[t.WalletID]; ok {
			continue
		}
		var w domain.Wallet
		if err := s.db.First(&w, t.WalletID).Error; err != nil {
			return &StorageError{Err: err}
		}
		wallets[t.WalletID] = w
	}
	for _, t := range byID {
		if wallets[t.WalletID].UserID != actingUserID {
			return &AuthorizationError{Resource: "transaction", ID: t.ID}
		}
	}

	// Net balance reversal per wallet
	deltas := map[uint]decimal.Decimal{}
	for _, t := range byID {
		deltas[t.WalletID] = deltas[t.WalletID].Sub(signedAmount(t.Type, t.Amount))
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Transaction{}, "id IN ?", ids).Error; err != nil {
			return err // Return error to rollback
		}
		for walletID, delta := range deltas {
			if err := tx.Model(&domain.Wallet{}).Where("id = ?", walletID).
				Update("current_balance", gorm.Expr("current_balance + ?", delta)).Error; err != nil {
				return err // Return error to rollback
			}
		}
		return nil // Commit transaction
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": actingUserID,
			"count":   len(ids),
			"error":   err.Error(),
		}).Error("Transaction delete failed")
		return &StorageError{Err: err}
	}

	s.log.WithFields(logrus.Fields{
		"user_id": actingUserID,
		"count":   len(ids),
	}).Info("Transactions deleted")
	return nil
}
