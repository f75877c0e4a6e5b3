package feerelayer

import (
	"encoding/binary"
	"testing"

	"github.com/egaotan/solana-relay/program"
	"github.com/gagliardetto/solana-go"
)

func TestUserRelayAddress(t *testing.T) {
	owner := solana.MustPublicKeyFromBase58("HhUVfHYvGby6k7zHrAcmA52YQLB7sWD41wkcb1WyUw8Z")
	address, err := UserRelayAddress(owner)
	if err != nil {
		t.Fatal(err)
	}
	if address.IsZero() {
		t.Fatalf("relay address is zero")
	}
	// derivation is deterministic
	address2, _ := UserRelayAddress(owner)
	if address != address2 {
		t.Fatalf("relay address is not deterministic")
	}
}

func TestTransitTokenAddress(t *testing.T) {
	owner := solana.MustPublicKeyFromBase58("HhUVfHYvGby6k7zHrAcmA52YQLB7sWD41wkcb1WyUw8Z")
	address, err := TransitTokenAddress(owner, program.USDC)
	if err != nil {
		t.Fatal(err)
	}
	other, err := TransitTokenAddress(owner, program.USDT)
	if err != nil {
		t.Fatal(err)
	}
	if address == other {
		t.Fatalf("transit address does not depend on mint")
	}
}

func TestInstructionTransferSOL(t *testing.T) {
	owner := solana.MustPublicKeyFromBase58("HhUVfHYvGby6k7zHrAcmA52YQLB7sWD41wkcb1WyUw8Z")
	feePayer := solana.MustPublicKeyFromBase58("7H4ShpibmzrKS8yPJX9wi1ZyrRYzw5tLym7RjWvAxcHA")
	instruction, err := InstructionTransferSOL(owner, feePayer, 890880)
	if err != nil {
		t.Fatal(err)
	}
	if instruction.ProgramID() != program.FeeRelayer {
		t.Fatalf("program id is not fee relayer")
	}
	data, _ := instruction.Data()
	if data[0] != 2 {
		t.Fatalf("command is not transfer sol, actual: %d", data[0])
	}
	if binary.LittleEndian.Uint64(data[1:]) != 890880 {
		t.Fatalf("amount is not valid")
	}
	if !instruction.Accounts()[0].IsSigner {
		t.Fatalf("user authority is not a signer")
	}
}

func TestInstructionTopUpWithSwap(t *testing.T) {
	owner := solana.MustPublicKeyFromBase58("HhUVfHYvGby6k7zHrAcmA52YQLB7sWD41wkcb1WyUw8Z")
	feePayer := solana.MustPublicKeyFromBase58("7H4ShpibmzrKS8yPJX9wi1ZyrRYzw5tLym7RjWvAxcHA")
	relayAccount, err := UserRelayAddress(owner)
	if err != nil {
		t.Fatal(err)
	}
	hop := &SwapAccounts{
		Program:         program.TokenSwap,
		Account:         solana.MustPublicKeyFromBase58("EGZ7tiLeH62TPV1gL8WwbXGzEPa9zmcpVnnkPKKnrE2U"),
		Authority:       solana.MustPublicKeyFromBase58("9EQMEzJdE2LDAY1hw1RytpufdwAXzatYfQ3M2UuT9b88"),
		PoolSource:      solana.MustPublicKeyFromBase58("Hnct2T3JmcNKNpBwRQcjBW298PqXFqhuBVbyey8fqy5m"),
		PoolDestination: solana.MustPublicKeyFromBase58("7ruSLu3QHNqviyN6tCPReCrDy6XTeZzR8chNRZShM7Zr"),
		PoolTokenMint:   solana.MustPublicKeyFromBase58("Dqk7mHQBx2ZWExmyrR2S8X6UG75CrbbpK2FSBZsNYsw6"),
		FeeAccount:      solana.MustPublicKeyFromBase58("9wFFyRfZBsuAha4YcuxcXLKwMxJR43S7fPfQLusDBzvT"),
	}
	instruction, err := InstructionTopUpWithSwap(feePayer, owner, relayAccount, hop.PoolSource, hop, 1000000, 990000)
	if err != nil {
		t.Fatal(err)
	}
	if instruction.ProgramID() != program.FeeRelayer {
		t.Fatalf("program id is not fee relayer")
	}
	data, _ := instruction.Data()
	if data[0] != 5 {
		t.Fatalf("command is not top up with swap, actual: %d", data[0])
	}
	if binary.LittleEndian.Uint64(data[1:]) != 1000000 {
		t.Fatalf("amount in is not valid")
	}
	if binary.LittleEndian.Uint64(data[9:]) != 990000 {
		t.Fatalf("minimum amount out is not valid")
	}
	accounts := instruction.Accounts()
	if len(accounts) != 14 {
		t.Fatalf("accounts size is not valid, actual: %d", len(accounts))
	}
	if !accounts[0].IsSigner || !accounts[1].IsSigner {
		t.Fatalf("fee payer and user authority both sign")
	}
	if accounts[2].PublicKey != relayAccount {
		t.Fatalf("relay account is not valid")
	}
}

func TestInstructionRelaySwap(t *testing.T) {
	owner := solana.MustPublicKeyFromBase58("HhUVfHYvGby6k7zHrAcmA52YQLB7sWD41wkcb1WyUw8Z")
	feePayer := solana.MustPublicKeyFromBase58("7H4ShpibmzrKS8yPJX9wi1ZyrRYzw5tLym7RjWvAxcHA")
	hop := &SwapAccounts{
		Program:         program.TokenSwap,
		Account:         solana.MustPublicKeyFromBase58("EGZ7tiLeH62TPV1gL8WwbXGzEPa9zmcpVnnkPKKnrE2U"),
		Authority:       solana.MustPublicKeyFromBase58("9EQMEzJdE2LDAY1hw1RytpufdwAXzatYfQ3M2UuT9b88"),
		PoolSource:      solana.MustPublicKeyFromBase58("Hnct2T3JmcNKNpBwRQcjBW298PqXFqhuBVbyey8fqy5m"),
		PoolDestination: solana.MustPublicKeyFromBase58("7ruSLu3QHNqviyN6tCPReCrDy6XTeZzR8chNRZShM7Zr"),
		PoolTokenMint:   solana.MustPublicKeyFromBase58("Dqk7mHQBx2ZWExmyrR2S8X6UG75CrbbpK2FSBZsNYsw6"),
		FeeAccount:      solana.MustPublicKeyFromBase58("9wFFyRfZBsuAha4YcuxcXLKwMxJR43S7fPfQLusDBzvT"),
	}
	instruction, err := InstructionRelaySwap(feePayer, owner, hop.PoolSource, hop.PoolDestination, hop.PoolTokenMint, hop, hop, 1000000, 990000, 980000)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := instruction.Data()
	if data[0] != 4 {
		t.Fatalf("command is not relay swap, actual: %d", data[0])
	}
	if binary.LittleEndian.Uint64(data[17:]) != 980000 {
		t.Fatalf("minimum amount out is not valid")
	}
	if len(instruction.Accounts()) != 20 {
		t.Fatalf("accounts size is not valid, actual: %d", len(instruction.Accounts()))
	}
}
