package backend

import (
	"github.com/egaotan/solana-relay/fee"
	"github.com/gagliardetto/solana-go"
)

// PreparedTransaction is a signed transaction ready to hand to the relay,
// together with the fee breakdown it was built against. Immutable after Prepare.
type PreparedTransaction struct {
	Transaction *solana.Transaction
	Signers     []solana.PrivateKey
	ExpectedFee fee.FeeAmount
}

// Prepare builds and signs a transaction with the cached recent block hash.
// Signers are searched first, then the imported wallets.
func (backend *Backend) Prepare(ins []solana.Instruction, signers []solana.PrivateKey, feePayer solana.PublicKey, expectedFee fee.FeeAmount) (*PreparedTransaction, error) {
	builder := solana.NewTransactionBuilder()
	for _, i := range ins {
		builder.AddInstruction(i)
	}
	builder.SetRecentBlockHash(backend.GetRecentBlockHash())
	builder.SetFeePayer(feePayer)
	trx, err := builder.Build()
	if err != nil {
		backend.logger.Printf("build err: %s", err.Error())
		return nil, err
	}
	trx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for i := range signers {
			if signers[i].PublicKey() == key {
				return &signers[i]
			}
		}
		if wallet := backend.getWallet(key); len(*wallet) > 0 {
			return wallet
		}
		// the relay fee payer signs server side, its slot carries a
		// placeholder signature the relay replaces
		backend.logger.Printf("no local key for signer %s, placeholder signature", key)
		return &solana.NewWallet().PrivateKey
	})
	if len(trx.Signatures) > 0 {
		backend.txLogger.Printf("%s", trx.Signatures[0].String())
	}
	return &PreparedTransaction{
		Transaction: trx,
		Signers:     signers,
		ExpectedFee: expectedFee,
	}, nil
}
