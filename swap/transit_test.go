package swap

import (
	"testing"

	"github.com/egaotan/solana-relay/feerelayer"
	"github.com/egaotan/solana-relay/program"
	"github.com/egaotan/solana-relay/tokenswap"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitManager_SingleHop(t *testing.T) {
	manager := NewTransitTokenAccountManager(newFakeChain())
	transit, err := manager.Resolve(solana.NewWallet().PublicKey(), tokenswap.PoolsPair{solUsdcPool()}, program.WrappedSOL)
	require.NoError(t, err)
	assert.Nil(t, transit)
}

func TestTransitManager_TwoHop(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	route := tokenswap.PoolsPair{solUsdcPool(), usdcUsdtPool()}
	address, err := feerelayer.TransitTokenAddress(owner, program.USDC)
	require.NoError(t, err)

	chain := newFakeChain()
	manager := NewTransitTokenAccountManager(chain)

	transit, err := manager.Resolve(owner, route, program.WrappedSOL)
	require.NoError(t, err)
	require.NotNil(t, transit)
	assert.Equal(t, program.USDC, transit.Mint)
	assert.Equal(t, address, transit.Address)
	assert.True(t, transit.NeedsCreation)

	chain.put(t, address, program.Token, 2039280, tokenAccountData(t, program.USDC, owner, 0))
	transit, err = manager.Resolve(owner, route, program.WrappedSOL)
	require.NoError(t, err)
	assert.False(t, transit.NeedsCreation)
}

func TestTransitManager_WrongMintOnChain(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	route := tokenswap.PoolsPair{solUsdcPool(), usdcUsdtPool()}
	address, err := feerelayer.TransitTokenAddress(owner, program.USDC)
	require.NoError(t, err)

	chain := newFakeChain()
	chain.put(t, address, program.Token, 2039280, tokenAccountData(t, program.USDT, owner, 0))
	manager := NewTransitTokenAccountManager(chain)

	_, err = manager.Resolve(owner, route, program.WrappedSOL)
	assert.Error(t, err)
}

func TestTransitManager_NoSharedMint(t *testing.T) {
	// paying in usdc the first hop outputs sol, which the second pool
	// does not trade
	route := tokenswap.PoolsPair{solUsdcPool(), usdcUsdtPool()}
	manager := NewTransitTokenAccountManager(newFakeChain())

	_, err := manager.Resolve(solana.NewWallet().PublicKey(), route, program.USDC)
	assert.ErrorIs(t, err, ErrTransitTokenMintNotFound)
}
