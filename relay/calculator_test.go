package relay

import (
	"testing"

	"github.com/egaotan/solana-relay/config"
	"github.com/egaotan/solana-relay/fee"
	"github.com/egaotan/solana-relay/program"
	"github.com/stretchr/testify/assert"
)

func testContext(status AccountStatus, usage fee.UsageStatus) *Context {
	return &Context{
		MinimumTokenAccountBalance: 2039280,
		MinimumRelayAccountBalance: 890880,
		LamportsPerSignature:       5000,
		RelayAccountStatus:         status,
		UsageStatus:                usage,
	}
}

func freeUsage() fee.UsageStatus {
	return fee.UsageStatus{
		MaxUsage:     100,
		CurrentUsage: 10,
		MaxAmount:    10000000,
		AmountUsed:   0,
	}
}

func exhaustedUsage() fee.UsageStatus {
	usage := freeUsage()
	usage.CurrentUsage = usage.MaxUsage
	return usage
}

func TestExpectedTopUpFee_RelayAccountNotYetCreated(t *testing.T) {
	ctx := testContext(AccountNotYetCreated(), freeUsage())
	assert.Equal(t, uint64(890880+2039280), ExpectedTopUpFee(ctx))
}

func TestExpectedTopUpFee_RelayAccountCreated(t *testing.T) {
	ctx := testContext(AccountCreated(890880), freeUsage())
	assert.Equal(t, uint64(2039280), ExpectedTopUpFee(ctx))
}

func TestExpectedTopUpFee_FreeQuotaExhausted(t *testing.T) {
	ctx := testContext(AccountCreated(890880), exhaustedUsage())
	assert.Equal(t, uint64(2039280+2*5000), ExpectedTopUpFee(ctx))
}

func TestExpectedTopUpFee_Idempotent(t *testing.T) {
	ctx := testContext(AccountNotYetCreated(), freeUsage())
	assert.Equal(t, ExpectedTopUpFee(ctx), ExpectedTopUpFee(ctx))
}

func TestNeededTopUpAmount_PayingNative(t *testing.T) {
	ctx := testContext(AccountNotYetCreated(), freeUsage())
	expectedFee := fee.FeeAmount{Transaction: 10000, AccountBalances: 2039280}
	needed := NeededTopUpAmount(ctx, expectedFee, program.WrappedSOL)
	assert.Equal(t, uint64(0), needed.Transaction)
	assert.Equal(t, expectedFee.AccountBalances, needed.AccountBalances)
}

func TestNeededTopUpAmount_BalanceCoversEverything(t *testing.T) {
	expectedFee := fee.FeeAmount{Transaction: 10000, AccountBalances: 2039280}
	ctx := testContext(AccountCreated(890880+expectedFee.Total()), freeUsage())
	needed := NeededTopUpAmount(ctx, expectedFee, program.USDC)
	assert.True(t, needed.IsZero())
}

func TestNeededTopUpAmount_RelayAccountNotYetCreated(t *testing.T) {
	ctx := testContext(AccountNotYetCreated(), freeUsage())
	expectedFee := fee.FeeAmount{Transaction: 10000, AccountBalances: 2039280}
	needed := NeededTopUpAmount(ctx, expectedFee, program.USDC)
	// the first top up funds the deposit floor on top of the expected fee
	assert.Equal(t, uint64(10000+890880), needed.Transaction)
	assert.Equal(t, uint64(2039280), needed.AccountBalances)
}

func TestNeededTopUpAmount_PartialBalance(t *testing.T) {
	// 100000 above the floor, applied against the transaction component first
	ctx := testContext(AccountCreated(890880+100000), freeUsage())
	expectedFee := fee.FeeAmount{Transaction: 150000, AccountBalances: 2039280}
	needed := NeededTopUpAmount(ctx, expectedFee, program.USDC)
	assert.Equal(t, uint64(50000), needed.Transaction)
	assert.Equal(t, uint64(2039280), needed.AccountBalances)
}

func TestNeededTopUpAmount_BalanceBelowFloor(t *testing.T) {
	ctx := testContext(AccountCreated(890880-1000), freeUsage())
	expectedFee := fee.FeeAmount{Transaction: 10000, AccountBalances: 0}
	needed := NeededTopUpAmount(ctx, expectedFee, program.USDC)
	assert.Equal(t, uint64(10000+1000), needed.Transaction)
}

func TestNeededTopUpAmount_QuotaExhausted(t *testing.T) {
	ctx := testContext(AccountCreated(890880), exhaustedUsage())
	expectedFee := fee.FeeAmount{Transaction: 10000, AccountBalances: 0}
	needed := NeededTopUpAmount(ctx, expectedFee, program.USDC)
	assert.Equal(t, uint64(10000+2*5000), needed.Transaction)
}

func TestNeededTopUpAmount_RoundedUpToMinimum(t *testing.T) {
	ctx := testContext(AccountCreated(890880), freeUsage())
	expectedFee := fee.FeeAmount{Transaction: 200, AccountBalances: 0}
	needed := NeededTopUpAmount(ctx, expectedFee, program.USDC)
	assert.Equal(t, config.MinimumTopUpAmount, needed.Total())
}

func TestContext_Equals(t *testing.T) {
	a := testContext(AccountCreated(890880), freeUsage())
	b := testContext(AccountCreated(890880), freeUsage())
	assert.True(t, a.Equals(b))
	b.RelayAccountStatus = AccountCreated(890881)
	assert.False(t, a.Equals(b))
	assert.False(t, a.Equals(nil))
}
