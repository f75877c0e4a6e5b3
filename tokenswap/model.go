package tokenswap

import (
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

type Pool struct {
	Address             solana.PublicKey `json:"address"`
	ProgramId           solana.PublicKey `json:"program_id"`
	TokenAMint          solana.PublicKey `json:"token_a_mint"`
	TokenBMint          solana.PublicKey `json:"token_b_mint"`
	TokenAAccount       solana.PublicKey `json:"token_a_account"`
	TokenBAccount       solana.PublicKey `json:"token_b_account"`
	PoolTokenMint       solana.PublicKey `json:"pool_token_mint"`
	FeeAccount          solana.PublicKey `json:"fee_account"`
	TradeFeeNumerator   uint64           `json:"trade_fee_numerator"`
	TradeFeeDenominator uint64           `json:"trade_fee_denominator"`
	AmountA             uint64           `json:"-"`
	AmountB             uint64           `json:"-"`
}

func (p *Pool) HasPair(source solana.PublicKey, destination solana.PublicKey) bool {
	if p.TokenAMint == source && p.TokenBMint == destination {
		return true
	}
	if p.TokenBMint == source && p.TokenAMint == destination {
		return true
	}
	return false
}

func (p *Pool) HasMint(mint solana.PublicKey) bool {
	return p.TokenAMint == mint || p.TokenBMint == mint
}

// OtherMint is the pool mint paired against the given one.
func (p *Pool) OtherMint(mint solana.PublicKey) (solana.PublicKey, error) {
	if p.TokenAMint == mint {
		return p.TokenBMint, nil
	}
	if p.TokenBMint == mint {
		return p.TokenAMint, nil
	}
	return solana.PublicKey{}, fmt.Errorf("mint is not in pool pair - (%s %s)", p.Address, mint)
}

// SwapAccounts orients the pool holding accounts for a swap paying in the
// given source mint.
func (p *Pool) SwapAccounts(sourceMint solana.PublicKey) (solana.PublicKey, solana.PublicKey, error) {
	if sourceMint == p.TokenAMint {
		return p.TokenAAccount, p.TokenBAccount, nil
	}
	if sourceMint == p.TokenBMint {
		return p.TokenBAccount, p.TokenAAccount, nil
	}
	return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("mint is not in pool pair - (%s %s)", p.Address, sourceMint)
}

func (p *Pool) reserves(sourceMint solana.PublicKey) (uint64, uint64, error) {
	if sourceMint == p.TokenAMint {
		return p.AmountA, p.AmountB, nil
	}
	if sourceMint == p.TokenBMint {
		return p.AmountB, p.AmountA, nil
	}
	return 0, 0, fmt.Errorf("mint is not in pool pair - (%s %s)", p.Address, sourceMint)
}

// EstimateAmountOut quotes a constant product swap of amountIn paying in
// sourceMint, trade fee deducted from the input side.
func (p *Pool) EstimateAmountOut(sourceMint solana.PublicKey, amountIn uint64) (uint64, error) {
	reserveIn, reserveOut, err := p.reserves(sourceMint)
	if err != nil {
		return 0, err
	}
	if reserveIn == 0 || reserveOut == 0 {
		return 0, fmt.Errorf("pool(%s) has no liquidity", p.Address)
	}
	tradeFee := p.tradingFee(amountIn)
	amountLessFees := new(big.Int).Sub(new(big.Int).SetUint64(amountIn), tradeFee)
	if amountLessFees.Cmp(new(big.Int).SetUint64(0)) <= 0 {
		return 0, fmt.Errorf("amount is too small")
	}
	invariant := new(big.Int).Mul(new(big.Int).SetUint64(reserveIn), new(big.Int).SetUint64(reserveOut))
	newReserveIn := new(big.Int).Add(new(big.Int).SetUint64(reserveIn), amountLessFees)
	newReserveOut := new(big.Int).Div(invariant, newReserveIn)
	amountOut := new(big.Int).Sub(new(big.Int).SetUint64(reserveOut), newReserveOut)
	return amountOut.Uint64(), nil
}

func (p *Pool) tradingFee(amount uint64) *big.Int {
	if p.TradeFeeNumerator == 0 || amount == 0 {
		return new(big.Int).SetUint64(0)
	}
	fee := new(big.Int).Div(
		new(big.Int).Mul(
			new(big.Int).SetUint64(amount),
			new(big.Int).SetUint64(p.TradeFeeNumerator),
		),
		new(big.Int).SetUint64(p.TradeFeeDenominator),
	)
	if fee.Cmp(new(big.Int).SetUint64(0)) == 0 {
		return new(big.Int).SetUint64(1)
	}
	return fee
}

// MinimumAmountOut applies the slippage tolerance to an estimate.
func MinimumAmountOut(estimatedAmountOut uint64, slippage float64) uint64 {
	amount := decimal.NewFromBigInt(new(big.Int).SetUint64(estimatedAmountOut), 0)
	minimum := amount.Mul(decimal.NewFromFloat(1).Sub(decimal.NewFromFloat(slippage)))
	return minimum.BigInt().Uint64()
}

// PoolsPair is an ordered route of one or two pool hops.
type PoolsPair []*Pool

// TransitMint is the intermediate mint of a two hop route: the output of the
// first pool that the second pool accepts.
func (pp PoolsPair) TransitMint(sourceMint solana.PublicKey) (solana.PublicKey, error) {
	if len(pp) != 2 {
		return solana.PublicKey{}, fmt.Errorf("route has %d pools, transit mint needs 2", len(pp))
	}
	transit, err := pp[0].OtherMint(sourceMint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if !pp[1].HasMint(transit) {
		return solana.PublicKey{}, fmt.Errorf("pools do not share a transit mint - (%s %s)", pp[0].Address, pp[1].Address)
	}
	return transit, nil
}
