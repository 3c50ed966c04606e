package service

import (
	"errors" // Sentinel error checks

	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
	"github.com/sirupsen/logrus"    // Structured logging
	"gorm.io/gorm"                  // GORM ORM library

	"lifetrack/internal/domain" // Domain models
)

// CreateWalletRequest carries the input for creating a wallet
type CreateWalletRequest struct {
	Name           string           `json:"name"`            // Required, at most 255 chars
	CurrentBalance *decimal.Decimal `json:"current_balance"` // Optional opening balance, defaults to 0
}

// UpdateWalletRequest carries a partial wallet edit. Nil fields are untouched.
// Editing the balance here is a direct owner correction, not a financial
// event; it does not create a transaction.
type UpdateWalletRequest struct {
	Name           *string          `json:"name"`            // New display name
	CurrentBalance *decimal.Decimal `json:"current_balance"` // New balance
}

// CreateWallet creates a wallet for the acting user with an optional opening
// balance.
func (s *Service) CreateWallet(actingUserID uint, req CreateWalletRequest) (*domain.Wallet, error) {
	if req.Name == "" {
		return nil, NewValidationError("name", "is required")
	}
	if len(req.Name) > 255 {
		return nil, NewValidationError("name", "must be at most 255 characters")
	}
	balance := decimal.Zero
	if req.CurrentBalance != nil {
		balance = *req.CurrentBalance
	}
	wallet := domain.Wallet{UserID: actingUserID, Name: req.Name, CurrentBalance: balance}
	if err := s.db.Create(&wallet).Error; err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": actingUserID,
			"error":   err.Error(),
		}).Error("Failed to create wallet")
		return nil, &StorageError{Err: err}
	}
	s.log.WithFields(logrus.Fields{
		"user_id":   actingUserID,
		"wallet_id": wallet.ID,
		"name":      wallet.Name,
	}).Info("Wallet created")
	return &wallet, nil
}

// ListWallets returns all wallets of the acting user
func (s *Service) ListWallets(actingUserID uint) ([]domain.Wallet, error) {
	var wallets []domain.Wallet
	if err := s.db.Where("user_id = ?", actingUserID).Order("id").Find(&wallets).Error; err != nil {
		return nil, &StorageError{Err: err}
	}
	return wallets, nil
}

// GetWallet returns one wallet of the acting user together with its most
// recent transactions (date descending, capped at recentLimit).
func (s *Service) GetWallet(actingUserID, walletID uint, recentLimit int) (*domain.Wallet, []domain.Transaction, error) {
	wallet, err := s.ownedWallet(actingUserID, walletID)
	if err != nil {
		return nil, nil, err
	}
	if recentLimit <= 0 || recentLimit > 100 {
		recentLimit = 5
	}
	var txns []domain.Transaction
	if err := s.db.Where("wallet_id = ?", walletID).
		Order("date desc").Order("id desc").
		Limit(recentLimit).Find(&txns).Error; err != nil {
		return nil, nil, &StorageError{Err: err}
	}
	return wallet, txns, nil
}

// UpdateWallet applies a partial edit to a wallet of the acting user
func (s *Service) UpdateWallet(actingUserID, walletID uint, req UpdateWalletRequest) (*domain.Wallet, error) {
	wallet, err := s.ownedWallet(actingUserID, walletID)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, NewValidationError("name", "is required")
		}
		if len(*req.Name) > 255 {
			return nil, NewValidationError("name", "must be at most 255 characters")
		}
		updates["name"] = *req.Name
	}
	if req.CurrentBalance != nil {
		updates["current_balance"] = *req.CurrentBalance
	}
	if len(updates) == 0 {
		return wallet, nil
	}
	if err := s.db.Model(wallet).Updates(updates).Error; err != nil {
		return nil, &StorageError{Err: err}
	}
	s.log.WithFields(logrus.Fields{
		"user_id":   actingUserID,
		"wallet_id": wallet.ID,
	}).Info("Wallet updated")
	return wallet, nil
}

// DeleteWallet removes a wallet of the acting user and all its transactions
// in one database transaction. No balance bookkeeping is needed since the
// aggregate and its details go together.
func (s *Service) DeleteWallet(actingUserID, walletID uint) error {
	wallet, err := s.ownedWallet(actingUserID, walletID)
	if err != nil {
		return err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Transaction{}, "wallet_id = ?", wallet.ID).Error; err != nil {
			return err // Return error to rollback
		}
		return tx.Delete(wallet).Error
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id":   actingUserID,
			"wallet_id": walletID,
			"error":     err.Error(),
		}).Error("Wallet delete failed")
		return &StorageError{Err: err}
	}
	s.log.WithFields(logrus.Fields{
		"user_id":   actingUserID,
		"wallet_id": walletID,
	}).Info("Wallet deleted")
	return nil
}

// ownedWallet resolves a wallet and verifies the acting user owns it
func (s *Service) ownedWallet(actingUserID, walletID uint) (*domain.Wallet, error) {
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
	return &wallet, nil
}
