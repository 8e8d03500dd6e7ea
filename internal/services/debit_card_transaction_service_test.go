package services

import (
	"debitcard-backend/internal/database"
	"debitcard-backend/internal/models"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDebitCardTransactions(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	bob := createUser(t, "bob@example.com")

	card, err := CreateDebitCard(alice.ID, "Visa")
	require.NoError(t, err)
	other, err := CreateDebitCard(bob.ID, "Visa")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := CreateDebitCardTransaction(alice.ID, card.ID, decimal.NewFromInt(10000), models.CurrencyIDR)
		require.NoError(t, err)
	}
	_, err = CreateDebitCardTransaction(bob.ID, other.ID, decimal.NewFromInt(5), models.CurrencySGD)
	require.NoError(t, err)

	transactions, err := ListDebitCardTransactions(alice.ID, card.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	for _, tx := range transactions {
		assert.True(t, decimal.NewFromInt(10000).Equal(tx.Amount))
		assert.Equal(t, models.CurrencyIDR, tx.CurrencyCode)
	}

	_, err = ListDebitCardTransactions(alice.ID, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateDebitCardTransactionOnForeignCard(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	bob := createUser(t, "bob@example.com")

	other, err := CreateDebitCard(bob.ID, "Visa")
	require.NoError(t, err)

	_, err = CreateDebitCardTransaction(alice.ID, other.ID, decimal.NewFromInt(100), models.CurrencySGD)
	assert.ErrorIs(t, err, ErrForbidden)

	var count int64
	database.DB.Model(&models.DebitCardTransaction{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetDebitCardTransaction(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "alice@example.com")
	bob := createUser(t, "bob@example.com")

	card, err := CreateDebitCard(alice.ID, "Visa")
	require.NoError(t, err)
	created, err := CreateDebitCardTransaction(alice.ID, card.ID, decimal.RequireFromString("12.50"), models.CurrencySGD)
	require.NoError(t, err)

	got, err := GetDebitCardTransaction(alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.DebitCardID)
	assert.Equal(t, alice.ID, got.DebitCard.UserID)
	assert.True(t, decimal.RequireFromString("12.5").Equal(got.Amount))

	_, err = GetDebitCardTransaction(bob.ID, created.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = GetDebitCardTransaction(alice.ID, created.ID+1)
	assert.ErrorIs(t, err, ErrForbidden)
}
