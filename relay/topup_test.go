package relay

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/egaotan/solana-relay/backend"
	"github.com/egaotan/solana-relay/config"
	"github.com/egaotan/solana-relay/fee"
	"github.com/egaotan/solana-relay/program"
	"github.com/egaotan/solana-relay/tokenswap"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topUpBackend(t *testing.T) *backend.Backend {
	config.LogPath = t.TempDir() + "/"
	be := backend.NewBackend(context.Background(), []*config.Node{{Rpc: "http://127.0.0.1:8899", Usable: true}})
	be.SetRecentBlockHash(solana.Hash(solana.MustPublicKeyFromBase58("7H4ShpibmzrKS8yPJX9wi1ZyrRYzw5tLym7RjWvAxcHA")), 5000)
	return be
}

func topUpContext(status AccountStatus, usage fee.UsageStatus) *Context {
	ctx := testContext(status, usage)
	ctx.FeePayer = solana.NewWallet().PublicKey()
	return ctx
}

func solUsdcPool() *tokenswap.Pool {
	return &tokenswap.Pool{
		Address:             solana.MustPublicKeyFromBase58("EGZ7tiLeH62TPV1gL8WwbXGzEPa9zmcpVnnkPKKnrE2U"),
		ProgramId:           program.TokenSwap,
		TokenAMint:          program.WrappedSOL,
		TokenBMint:          program.USDC,
		TokenAAccount:       solana.MustPublicKeyFromBase58("Hnct2T3JmcNKNpBwRQcjBW298PqXFqhuBVbyey8fqy5m"),
		TokenBAccount:       solana.MustPublicKeyFromBase58("7ruSLu3QHNqviyN6tCPReCrDy6XTeZzR8chNRZShM7Zr"),
		PoolTokenMint:       solana.MustPublicKeyFromBase58("9EQMEzJdE2LDAY1hw1RytpufdwAXzatYfQ3M2UuT9b88"),
		FeeAccount:          solana.MustPublicKeyFromBase58("HhUVfHYvGby6k7zHrAcmA52YQLB7sWD41wkcb1WyUw8Z"),
		TradeFeeNumerator:   25,
		TradeFeeDenominator: 10000,
		AmountA:             1000000000000,
		AmountB:             40000000000,
	}
}

func TestBuildTopUp_Native(t *testing.T) {
	be := topUpBackend(t)
	ctx := topUpContext(AccountNotYetCreated(), freeUsage())
	owner := solana.NewWallet()

	trx, err := BuildTopUp(be, ctx, TopUpInput{
		Owner:         owner.PrivateKey,
		SourceAddress: owner.PublicKey(),
		SourceMint:    program.WrappedSOL,
		AmountIn:      1000000,
	})
	require.NoError(t, err)
	require.Len(t, trx.Transaction.Message.Instructions, 1)
	instruction := trx.Transaction.Message.Instructions[0]
	assert.Equal(t, byte(2), instruction.Data[0])
	assert.Equal(t, uint64(1000000), binary.LittleEndian.Uint64(instruction.Data[1:]))
	assert.Equal(t, ctx.FeePayer, trx.Transaction.Message.AccountKeys[0])
	// the first top up carries the deposit account rent, nothing else
	assert.Equal(t, ctx.MinimumRelayAccountBalance, trx.ExpectedFee.AccountBalances)
	assert.Equal(t, uint64(0), trx.ExpectedFee.Transaction)
}

func TestBuildTopUp_SwapFromToken(t *testing.T) {
	be := topUpBackend(t)
	ctx := topUpContext(AccountCreated(890880), freeUsage())
	owner := solana.NewWallet()

	trx, err := BuildTopUp(be, ctx, TopUpInput{
		Owner:         owner.PrivateKey,
		SourceAddress: solana.NewWallet().PublicKey(),
		SourceMint:    program.USDC,
		Pool:          solUsdcPool(),
		AmountIn:      1000000,
		Slippage:      0.01,
	})
	require.NoError(t, err)
	require.Len(t, trx.Transaction.Message.Instructions, 1)
	instruction := trx.Transaction.Message.Instructions[0]
	assert.Equal(t, byte(5), instruction.Data[0])
	assert.Equal(t, uint64(1000000), binary.LittleEndian.Uint64(instruction.Data[1:]))
	assert.True(t, binary.LittleEndian.Uint64(instruction.Data[9:]) > 0)
	// the fee payer and the owner both sign
	assert.Equal(t, uint8(2), trx.Transaction.Message.Header.NumRequiredSignatures)
	assert.Equal(t, ctx.MinimumTokenAccountBalance, trx.ExpectedFee.AccountBalances)
	assert.Equal(t, uint64(0), trx.ExpectedFee.Transaction)
}

func TestBuildTopUp_QuotaExhausted(t *testing.T) {
	be := topUpBackend(t)
	ctx := topUpContext(AccountCreated(890880), exhaustedUsage())
	owner := solana.NewWallet()

	trx, err := BuildTopUp(be, ctx, TopUpInput{
		Owner:         owner.PrivateKey,
		SourceAddress: owner.PublicKey(),
		SourceMint:    program.WrappedSOL,
		AmountIn:      1000000,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2*5000), trx.ExpectedFee.Transaction)
	assert.Equal(t, uint64(0), trx.ExpectedFee.AccountBalances)
}

func TestBuildTopUp_Preconditions(t *testing.T) {
	be := topUpBackend(t)
	ctx := topUpContext(AccountCreated(890880), freeUsage())
	owner := solana.NewWallet()
	valid := TopUpInput{
		Owner:         owner.PrivateKey,
		SourceAddress: solana.NewWallet().PublicKey(),
		SourceMint:    program.USDC,
		Pool:          solUsdcPool(),
		AmountIn:      1000000,
		Slippage:      0.01,
	}

	_, err := BuildTopUp(be, nil, valid)
	assert.ErrorIs(t, err, ErrContextMissing)

	input := valid
	input.AmountIn = 0
	_, err = BuildTopUp(be, ctx, input)
	assert.ErrorIs(t, err, ErrInvalidTopUpAmount)

	input = valid
	input.Slippage = 1
	_, err = BuildTopUp(be, ctx, input)
	assert.ErrorIs(t, err, ErrInvalidTopUpAmount)

	input = valid
	input.Pool = nil
	_, err = BuildTopUp(be, ctx, input)
	assert.ErrorIs(t, err, ErrNoTopUpRoute)

	// the pool must pair the paying token against the native asset
	input = valid
	input.SourceMint = program.USDT
	_, err = BuildTopUp(be, ctx, input)
	assert.ErrorIs(t, err, ErrNoTopUpRoute)
}
