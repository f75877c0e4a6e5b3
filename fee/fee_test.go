package fee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeeAmount_Total(t *testing.T) {
	fa := FeeAmount{Transaction: 10000, AccountBalances: 2039280}
	assert.Equal(t, uint64(2049280), fa.Total())
}

func TestFeeAmount_SubtractAccountBalances(t *testing.T) {
	fa := FeeAmount{Transaction: 5000, AccountBalances: 2039280}
	fa.SubtractAccountBalances(2039280)
	assert.Equal(t, uint64(0), fa.AccountBalances)
	assert.Equal(t, uint64(5000), fa.Transaction)

	// clamped, never underflows
	fa = FeeAmount{AccountBalances: 100}
	fa.SubtractAccountBalances(2039280)
	assert.Equal(t, uint64(0), fa.AccountBalances)
}

func TestUsageStatus_IsFreeTransactionFeeAvailable(t *testing.T) {
	us := UsageStatus{
		MaxUsage:     100,
		CurrentUsage: 10,
		MaxAmount:    10000000,
		AmountUsed:   1000,
	}
	assert.True(t, us.IsFreeTransactionFeeAvailable(10000))

	// usage count exhausted
	us.CurrentUsage = 100
	assert.False(t, us.IsFreeTransactionFeeAvailable(10000))

	// amount budget exhausted
	us.CurrentUsage = 10
	us.AmountUsed = 9999999
	assert.False(t, us.IsFreeTransactionFeeAvailable(10000))

	// exactly at the budget edge
	us.AmountUsed = 10000000 - 10000
	assert.True(t, us.IsFreeTransactionFeeAvailable(10000))
}

func TestUsageStatus_IsFreeTokenAccountCreationAvailable(t *testing.T) {
	us := UsageStatus{
		MaxTokenAccountCreationCount:  10,
		TokenAccountCreationCountUsed: 10,
	}
	assert.False(t, us.IsFreeTokenAccountCreationAvailable(2039280))

	us.TokenAccountCreationCountUsed = 1
	us.MaxTokenAccountCreationAmount = 10000000
	assert.True(t, us.IsFreeTokenAccountCreationAvailable(2039280))
}
