package swap

import (
	"github.com/egaotan/solana-relay/tokenswap"
	"github.com/gagliardetto/solana-go"
)

// SwapData is the closed set of swap shapes the relay understands: one pool
// hop or two. Nothing else implements it, a type switch over it has no open
// fallback.
type SwapData interface {
	isSwapData()
}

type DirectSwapData struct {
	Program           solana.PublicKey
	Account           solana.PublicKey
	Authority         solana.PublicKey
	TransferAuthority solana.PublicKey
	Source            solana.PublicKey
	Destination       solana.PublicKey
	PoolTokenMint     solana.PublicKey
	PoolFeeAccount    solana.PublicKey
	AmountIn          uint64
	MinimumAmountOut  uint64
}

func (DirectSwapData) isSwapData() {}

type TransitiveSwapData struct {
	From                           DirectSwapData
	To                             DirectSwapData
	TransitTokenMint               solana.PublicKey
	TransitTokenAccount            solana.PublicKey
	NeedsCreateTransitTokenAccount bool
}

func (TransitiveSwapData) isSwapData() {}

func directSwapData(pool *tokenswap.Pool, sourceMint solana.PublicKey, transferAuthority solana.PublicKey, amountIn uint64, slippage float64) (DirectSwapData, solana.PublicKey, error) {
	authority, _, err := solana.FindProgramAddress([][]byte{pool.Address.Bytes()}, pool.ProgramId)
	if err != nil {
		return DirectSwapData{}, solana.PublicKey{}, err
	}
	poolSource, poolDestination, err := pool.SwapAccounts(sourceMint)
	if err != nil {
		return DirectSwapData{}, solana.PublicKey{}, err
	}
	destinationMint, err := pool.OtherMint(sourceMint)
	if err != nil {
		return DirectSwapData{}, solana.PublicKey{}, err
	}
	estimated, err := pool.EstimateAmountOut(sourceMint, amountIn)
	if err != nil {
		return DirectSwapData{}, solana.PublicKey{}, err
	}
	return DirectSwapData{
		Program:           pool.ProgramId,
		Account:           pool.Address,
		Authority:         authority,
		TransferAuthority: transferAuthority,
		Source:            poolSource,
		Destination:       poolDestination,
		PoolTokenMint:     pool.PoolTokenMint,
		PoolFeeAccount:    pool.FeeAccount,
		AmountIn:          amountIn,
		MinimumAmountOut:  tokenswap.MinimumAmountOut(estimated, slippage),
	}, destinationMint, nil
}

// BuildSwapData turns a route into the swap shape instruction composition
// consumes. For a two hop route the first hop is quoted to feed the second.
func BuildSwapData(route tokenswap.PoolsPair, sourceMint solana.PublicKey, transferAuthority solana.PublicKey, transit *TransitAccount, amountIn uint64, slippage float64) (SwapData, error) {
	switch len(route) {
	case 1:
		data, _, err := directSwapData(route[0], sourceMint, transferAuthority, amountIn, slippage)
		if err != nil {
			return nil, err
		}
		return data, nil
	case 2:
		if transit == nil {
			return nil, ErrTransitTokenMintNotFound
		}
		from, transitMint, err := directSwapData(route[0], sourceMint, transferAuthority, amountIn, slippage)
		if err != nil {
			return nil, err
		}
		transitAmount, err := route[0].EstimateAmountOut(sourceMint, amountIn)
		if err != nil {
			return nil, err
		}
		to, _, err := directSwapData(route[1], transitMint, transferAuthority, transitAmount, slippage)
		if err != nil {
			return nil, err
		}
		return TransitiveSwapData{
			From:                           from,
			To:                             to,
			TransitTokenMint:               transit.Mint,
			TransitTokenAccount:            transit.Address,
			NeedsCreateTransitTokenAccount: transit.NeedsCreation,
		}, nil
	default:
		return nil, ErrSwapPoolsNotFound
	}
}
