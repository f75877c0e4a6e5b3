package system

import (
	"encoding/binary"

	"github.com/egaotan/solana-relay/program"
	"github.com/gagliardetto/solana-go"
)

func InstructionCreateAccount(from solana.PublicKey, newAccount solana.PublicKey, lamports uint64, space uint64, owner solana.PublicKey) (solana.Instruction, error) {
	data := make([]byte, 52)
	binary.LittleEndian.PutUint32(data[0:], 0)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	binary.LittleEndian.PutUint64(data[12:], space)
	copy(data[20:], owner.Bytes())
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: from, IsSigner: true, IsWritable: true},
			{PublicKey: newAccount, IsSigner: true, IsWritable: true},
		},
		IsData:      data,
		IsProgramID: program.System,
	}
	return instruction, nil
}

func InstructionTransfer(from solana.PublicKey, to solana.PublicKey, lamports uint64) (solana.Instruction, error) {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:], 2)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: from, IsSigner: true, IsWritable: true},
			{PublicKey: to, IsSigner: false, IsWritable: true},
		},
		IsData:      data,
		IsProgramID: program.System,
	}
	return instruction, nil
}
