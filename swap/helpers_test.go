package swap

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/egaotan/solana-relay/backend"
	"github.com/egaotan/solana-relay/fee"
	"github.com/egaotan/solana-relay/program"
	"github.com/egaotan/solana-relay/relay"
	"github.com/egaotan/solana-relay/spltoken"
	"github.com/egaotan/solana-relay/tokenswap"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"
)

type fakeChain struct {
	accounts map[solana.PublicKey]*backend.Account
}

func newFakeChain() *fakeChain {
	return &fakeChain{accounts: make(map[solana.PublicKey]*backend.Account)}
}

func (f *fakeChain) put(t *testing.T, pubkey solana.PublicKey, owner solana.PublicKey, lamports uint64, data []byte) {
	var accountData rpc.DataBytesOrJSON
	encoded := fmt.Sprintf(`["%s","base64"]`, base64.StdEncoding.EncodeToString(data))
	require.NoError(t, json.Unmarshal([]byte(encoded), &accountData))
	f.accounts[pubkey] = &backend.Account{
		PubKey: pubkey,
		Account: &rpc.Account{
			Lamports: lamports,
			Owner:    owner,
			Data:     &accountData,
		},
	}
}

func (f *fakeChain) Account(pubkey solana.PublicKey) (*backend.Account, error) {
	if account, ok := f.accounts[pubkey]; ok {
		return account, nil
	}
	return &backend.Account{PubKey: pubkey}, nil
}

func tokenAccountData(t *testing.T, mint solana.PublicKey, owner solana.PublicKey, amount uint64) []byte {
	user := spltoken.UserLayout{Mint: mint, Owner: owner, Amount: amount}
	buf := new(bytes.Buffer)
	require.NoError(t, binary.Write(buf, binary.LittleEndian, &user))
	return buf.Bytes()
}

func testRelayContext(feePayer solana.PublicKey) *relay.Context {
	return &relay.Context{
		MinimumTokenAccountBalance: 2039280,
		MinimumRelayAccountBalance: 890880,
		FeePayer:                   feePayer,
		LamportsPerSignature:       5000,
		RelayAccountStatus:         relay.AccountCreated(10000000),
		UsageStatus:                fee.UsageStatus{MaxUsage: 100, MaxAmount: 10000000},
	}
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

func usdcUsdtPool() *tokenswap.Pool {
	return &tokenswap.Pool{
		Address:             solana.MustPublicKeyFromBase58("YAkoNb6HKmSxQN9L8hiBE5tPJRsniSSMzND1boHmZxe"),
		ProgramId:           program.TokenSwap,
		TokenAMint:          program.USDC,
		TokenBMint:          program.USDT,
		TokenAAccount:       solana.MustPublicKeyFromBase58("6oGsL2puUgySccKzn9XA9afqF217LfxP5ocq4B3LWsjy"),
		TokenBAccount:       solana.MustPublicKeyFromBase58("HxkQdUnrPdHwXP5T9kewEXs3ApgvbufuTfdw9v1nApFd"),
		PoolTokenMint:       solana.MustPublicKeyFromBase58("Lee1XZJfJ9Hm2K1qTyeCz1LXNc1YBZaKZszvNY4KCDw"),
		FeeAccount:          solana.MustPublicKeyFromBase58("9wFFyRfZBsuAha4YcuxcXLKwMxJR43S7fPfQLusDBzvT"),
		TradeFeeNumerator:   25,
		TradeFeeDenominator: 10000,
		AmountA:             50000000000,
		AmountB:             50000000000,
	}
}
