package backend

import (
	"errors"
	"fmt"

	"github.com/egaotan/solana-relay/program"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const (
	MultipleAccountSliceSize = 100
)

type Account struct {
	PubKey  solana.PublicKey
	Account *rpc.Account
	Height  uint64
}

func (backend *Backend) Accounts(pubkeys []solana.PublicKey) ([]*Account, error) {
	accounts := make([]*Account, 0)
	index, end := 0, 0
	for index < len(pubkeys) {
		if end = index + MultipleAccountSliceSize; end > len(pubkeys) {
			end = len(pubkeys)
		}
		getMultipleAccountsRsp, err := backend.rpcClient.GetMultipleAccountsWithOpts(backend.ctx, pubkeys[index:end],
			&rpc.GetMultipleAccountsOpts{Encoding: solana.EncodingBase64})
		if err != nil {
			return nil, err
		}
		if len(getMultipleAccountsRsp.Value) != end-index {
			return nil, fmt.Errorf("get accounts err, some account is missing")
		}
		for i, account := range getMultipleAccountsRsp.Value {
			accounts = append(accounts, &Account{
				PubKey:  pubkeys[index+i],
				Height:  getMultipleAccountsRsp.Context.Slot,
				Account: account,
			})
		}
		index = end
	}
	return accounts, nil
}

func (backend *Backend) Account(pubkey solana.PublicKey) (*Account, error) {
	response, err := backend.rpcClient.GetAccountInfo(backend.ctx, pubkey)
	if err != nil {
		// the rpc reports an absent account as an error, callers expect an
		// account value with no chain state
		if errors.Is(err, rpc.ErrNotFound) {
			return &Account{PubKey: pubkey}, nil
		}
		return nil, err
	}
	return &Account{
		PubKey:  pubkey,
		Height:  response.Context.Slot,
		Account: response.Value,
	}, nil
}

func (backend *Backend) Balance(pubkey solana.PublicKey) (uint64, error) {
	account, err := backend.Account(pubkey)
	if err != nil {
		return 0, err
	}
	if account.Account == nil {
		return 0, nil
	}
	return account.Account.Lamports, nil
}

func (backend *Backend) GetMinimumBalanceForRentExemption(size uint64) (uint64, error) {
	return backend.rpcClient.GetMinimumBalanceForRentExemption(backend.ctx, size, rpc.CommitmentFinalized)
}

func (backend *Backend) HasAccount(pubkey solana.PublicKey) bool {
	account, err := backend.Account(pubkey)
	if err != nil {
		return false
	}
	return account.Account != nil
}

func FindAssociatedTokenAddress(owner solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := solana.FindProgramAddress(
		[][]byte{owner.Bytes(), program.Token.Bytes(), mint.Bytes()},
		program.AssociatedToken)
	return address, err
}
