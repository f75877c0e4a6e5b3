package feerelayer

import (
	"github.com/egaotan/solana-relay/program"
	"github.com/gagliardetto/solana-go"
)

// UserRelayAddress is the user's relay deposit account, owned by the relay
// program. Created by the first top up.
func UserRelayAddress(owner solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := solana.FindProgramAddress(
		[][]byte{owner.Bytes(), []byte("relay")},
		program.FeeRelayer)
	return address, err
}

// TransitTokenAddress is the intermediate holding account used only while a
// two hop swap executes.
func TransitTokenAddress(owner solana.PublicKey, mint solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := solana.FindProgramAddress(
		[][]byte{owner.Bytes(), mint.Bytes(), []byte("transit")},
		program.FeeRelayer)
	return address, err
}
