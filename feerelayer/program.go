package feerelayer

import (
	"encoding/binary"

	"github.com/egaotan/solana-relay/program"
	"github.com/gagliardetto/solana-go"
)

// SwapAccounts is one pool hop as the relay program wants it spelled out.
type SwapAccounts struct {
	Program         solana.PublicKey
	Account         solana.PublicKey
	Authority       solana.PublicKey
	PoolSource      solana.PublicKey
	PoolDestination solana.PublicKey
	PoolTokenMint   solana.PublicKey
	FeeAccount      solana.PublicKey
}

// InstructionTransferSOL pays lamports from the user to the relay fee payer.
func InstructionTransferSOL(userAuthority solana.PublicKey, recipient solana.PublicKey, amount uint64) (solana.Instruction, error) {
	data := make([]byte, 9)
	data[0] = 2
	binary.LittleEndian.PutUint64(data[1:], amount)
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: userAuthority, IsSigner: true, IsWritable: true},
			{PublicKey: recipient, IsSigner: false, IsWritable: true},
			{PublicKey: program.System, IsSigner: false, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: program.FeeRelayer,
	}
	return instruction, nil
}

// InstructionTopUpWithSwap swaps from the user's token account straight into
// the relay deposit account. The fee payer fronts the rent and signature cost,
// the relay program settles them out of the swapped amount.
func InstructionTopUpWithSwap(feePayer solana.PublicKey, userAuthority solana.PublicKey, userRelayAccount solana.PublicKey, userSource solana.PublicKey, swap *SwapAccounts, amountIn uint64, minimumAmountOut uint64) (solana.Instruction, error) {
	data := make([]byte, 17)
	data[0] = 5
	binary.LittleEndian.PutUint64(data[1:], amountIn)
	binary.LittleEndian.PutUint64(data[9:], minimumAmountOut)
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: feePayer, IsSigner: true, IsWritable: true},
			{PublicKey: userAuthority, IsSigner: true, IsWritable: true},
			{PublicKey: userRelayAccount, IsSigner: false, IsWritable: true},
			{PublicKey: userSource, IsSigner: false, IsWritable: true},
			{PublicKey: swap.Program, IsSigner: false, IsWritable: false},
			{PublicKey: swap.Account, IsSigner: false, IsWritable: false},
			{PublicKey: swap.Authority, IsSigner: false, IsWritable: false},
			{PublicKey: swap.PoolSource, IsSigner: false, IsWritable: true},
			{PublicKey: swap.PoolDestination, IsSigner: false, IsWritable: true},
			{PublicKey: swap.PoolTokenMint, IsSigner: false, IsWritable: true},
			{PublicKey: swap.FeeAccount, IsSigner: false, IsWritable: true},
			{PublicKey: program.Token, IsSigner: false, IsWritable: false},
			{PublicKey: program.SysRent, IsSigner: false, IsWritable: false},
			{PublicKey: program.System, IsSigner: false, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: program.FeeRelayer,
	}
	return instruction, nil
}

// InstructionCreateTransitTokenAccount creates the intermediate holding
// account a two hop swap passes value through. The fee payer funds the rent.
func InstructionCreateTransitTokenAccount(feePayer solana.PublicKey, userAuthority solana.PublicKey, transitAccount solana.PublicKey, transitMint solana.PublicKey) (solana.Instruction, error) {
	data := make([]byte, 1)
	data[0] = 3
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: transitAccount, IsSigner: false, IsWritable: true},
			{PublicKey: transitMint, IsSigner: false, IsWritable: false},
			{PublicKey: userAuthority, IsSigner: true, IsWritable: true},
			{PublicKey: feePayer, IsSigner: true, IsWritable: true},
			{PublicKey: program.Token, IsSigner: false, IsWritable: false},
			{PublicKey: program.SysRent, IsSigner: false, IsWritable: false},
			{PublicKey: program.System, IsSigner: false, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: program.FeeRelayer,
	}
	return instruction, nil
}

// InstructionRelaySwap is the two hop swap executed inside the relay program:
// source -> transit on the first pool, transit -> destination on the second.
func InstructionRelaySwap(feePayer solana.PublicKey, userTransferAuthority solana.PublicKey, userSource solana.PublicKey, transitAccount solana.PublicKey, userDestination solana.PublicKey, from *SwapAccounts, to *SwapAccounts, amountIn uint64, transitMinimumAmount uint64, minimumAmountOut uint64) (solana.Instruction, error) {
	data := make([]byte, 25)
	data[0] = 4
	binary.LittleEndian.PutUint64(data[1:], amountIn)
	binary.LittleEndian.PutUint64(data[9:], transitMinimumAmount)
	binary.LittleEndian.PutUint64(data[17:], minimumAmountOut)
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: feePayer, IsSigner: true, IsWritable: true},
			{PublicKey: userTransferAuthority, IsSigner: true, IsWritable: false},
			{PublicKey: userSource, IsSigner: false, IsWritable: true},
			{PublicKey: transitAccount, IsSigner: false, IsWritable: true},
			{PublicKey: userDestination, IsSigner: false, IsWritable: true},
			{PublicKey: from.Program, IsSigner: false, IsWritable: false},
			{PublicKey: from.Account, IsSigner: false, IsWritable: false},
			{PublicKey: from.Authority, IsSigner: false, IsWritable: false},
			{PublicKey: from.PoolSource, IsSigner: false, IsWritable: true},
			{PublicKey: from.PoolDestination, IsSigner: false, IsWritable: true},
			{PublicKey: from.PoolTokenMint, IsSigner: false, IsWritable: true},
			{PublicKey: from.FeeAccount, IsSigner: false, IsWritable: true},
			{PublicKey: to.Program, IsSigner: false, IsWritable: false},
			{PublicKey: to.Account, IsSigner: false, IsWritable: false},
			{PublicKey: to.Authority, IsSigner: false, IsWritable: false},
			{PublicKey: to.PoolSource, IsSigner: false, IsWritable: true},
			{PublicKey: to.PoolDestination, IsSigner: false, IsWritable: true},
			{PublicKey: to.PoolTokenMint, IsSigner: false, IsWritable: true},
			{PublicKey: to.FeeAccount, IsSigner: false, IsWritable: true},
			{PublicKey: program.Token, IsSigner: false, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: program.FeeRelayer,
	}
	return instruction, nil
}
