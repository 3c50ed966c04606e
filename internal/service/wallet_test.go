package service

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifetrack/internal/domain"
)

func TestCreateWalletDefaults(t *testing.T) {
	svc, db := newTestService(t)
	userID := createUser(t, db, "alice")

	// Opening balance defaults to zero when omitted
	wallet, err := svc.CreateWallet(userID, CreateWalletRequest{Name: "Cash"})
	require.NoError(t, err)
	assert.Equal(t, "Cash", wallet.Name)
	assert.True(t, wallet.CurrentBalance.IsZero())
	assert.Equal(t, userID, wallet.UserID)
}

func TestCreateWalletValidation(t *testing.T) {
	svc, db := newTestService(t)
	userID := createUser(t, db, "alice")

	var verr *ValidationError
	_, err := svc.CreateWallet(userID, CreateWalletRequest{Name: ""})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	_, err = svc.CreateWallet(userID, CreateWalletRequest{Name: strings.Repeat("x", 256)})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
}

func TestGetWalletRecentTransactions(t *testing.T) {
	svc, db := newTestService(t)
	userID := createUser(t, db, "alice")
	wallet := createWallet(t, svc, userID, "Cash", "0")

	dates := []string{"2025-07-01", "2025-07-02", "2025-07-03", "2025-07-04", "2025-07-05", "2025-07-06"}
	for _, date := range dates {
		_, _, err := svc.CreateTransaction(userID, CreateTransactionRequest{
			WalletID: wallet.ID, Type: "income", Amount: amount("1"), Category: "x", Date: date,
		})
		require.NoError(t, err)
	}

	got, txns, err := svc.GetWallet(userID, wallet.ID, 5)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(decimal.NewFromInt(6)))
	require.Len(t, txns, 5, "detail view caps at the most recent transactions")
	assert.Equal(t, "2025-07-06", txns[0].Date.Format(DateLayout))
}

func TestGetWalletForeignOwner(t *testing.T) {
	svc, db := newTestService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	wallet := createWallet(t, svc, alice, "Cash", "0")

	var az *AuthorizationError
	_, _, err := svc.GetWallet(bob, wallet.ID, 5)
	require.ErrorAs(t, err, &az)

	var nf *NotFoundError
	_, _, err = svc.GetWallet(alice, 999, 5)
	require.ErrorAs(t, err, &nf)
}

func TestUpdateWalletPartial(t *testing.T) {
	svc, db := newTestService(t)
	userID := createUser(t, db, "alice")
	wallet := createWallet(t, svc, userID, "Cash", "10")

	name := "Savings"
	updated, err := svc.UpdateWallet(userID, wallet.ID, UpdateWalletRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Savings", updated.Name)

	// Direct balance edit does not create a transaction
	newBalance := decimal.RequireFromString("75.50")
	_, err = svc.UpdateWallet(userID, wallet.ID, UpdateWalletRequest{CurrentBalance: &newBalance})
	require.NoError(t, err)
	var fresh domain.Wallet
	require.NoError(t, db.First(&fresh, wallet.ID).Error)
	assert.True(t, fresh.CurrentBalance.Equal(newBalance))
	var count int64
	require.NoError(t, db.Model(&domain.Transaction{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestListWalletsScopedToOwner(t *testing.T) {
	svc, db := newTestService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	createWallet(t, svc, alice, "Cash", "0")
	createWallet(t, svc, alice, "Savings", "0")
	createWallet(t, svc, bob, "Cash", "0")

	wallets, err := svc.ListWallets(alice)
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	for _, w := range wallets {
		assert.Equal(t, alice, w.UserID)
	}
}

func TestDeleteWalletCascades(t *testing.T) {
	svc, db := newTestService(t)
	userID := createUser(t, db, "alice")
	wallet := createWallet(t, svc, userID, "Cash", "0")
	keep := createWallet(t, svc, userID, "Savings", "0")

	for _, cat := range []string{"a", "b"} {
		_, _, err := svc.CreateTransaction(userID, CreateTransactionRequest{
			WalletID: wallet.ID, Type: "income", Amount: amount("10"), Category: cat, Date: "2025-07-01",
		})
		require.NoError(t, err)
	}
	_, _, err := svc.CreateTransaction(userID, CreateTransactionRequest{
		WalletID: keep.ID, Type: "income", Amount: amount("10"), Category: "c", Date: "2025-07-01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteWallet(userID, wallet.ID))

	// Wallet and its transactions are gone; the other wallet is untouched
	var nf *NotFoundError
	_, _, err = svc.GetWallet(userID, wallet.ID, 5)
	require.ErrorAs(t, err, &nf)
	var count int64
	require.NoError(t, db.Model(&domain.Transaction{}).Where("wallet_id = ?", wallet.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, db.Model(&domain.Transaction{}).Where("wallet_id = ?", keep.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteWalletForeignOwner(t *testing.T) {
	svc, db := newTestService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	wallet := createWallet(t, svc, alice, "Cash", "0")

	var az *AuthorizationError
	require.ErrorAs(t, svc.DeleteWallet(bob, wallet.ID), &az)

	var count int64
	require.NoError(t, db.Model(&domain.Wallet{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
