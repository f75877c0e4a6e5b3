package spltoken

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/egaotan/solana-relay/backend"
	"github.com/egaotan/solana-relay/program"
	"github.com/gagliardetto/solana-go"
)

// ParseUser decodes a token holding account. Errors if the account is missing
// or not owned by the token program.
func ParseUser(account *backend.Account) (UserLayout, error) {
	user := UserLayout{}
	if account.Account == nil {
		return user, fmt.Errorf("account(%s) is missing", account.PubKey)
	}
	if account.Account.Owner != program.Token {
		return user, fmt.Errorf("account(%s) is not spl token program account, expected: %s, actual: %s", account.PubKey, program.Token, account.Account.Owner)
	}
	userData := account.Account.Data.GetBinary()
	if len(userData) != TokenLayoutSize {
		return user, fmt.Errorf("spl token account(%s) data size is not valid, expected: %d, actual: %d", account.PubKey, TokenLayoutSize, len(userData))
	}
	buf := bytes.NewReader(userData)
	err := binary.Read(buf, binary.LittleEndian, &user)
	if err != nil {
		return user, fmt.Errorf("spl token account(%s) data is not valid, err: %s", account.PubKey, err)
	}
	return user, nil
}

func InstructionInitAccount(account solana.PublicKey, mint solana.PublicKey, owner solana.PublicKey) (solana.Instruction, error) {
	data := make([]byte, 1)
	data[0] = 1
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: account, IsSigner: false, IsWritable: true},
			{PublicKey: mint, IsSigner: false, IsWritable: false},
			{PublicKey: owner, IsSigner: false, IsWritable: false},
			{PublicKey: program.SysRent, IsSigner: false, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: program.Token,
	}
	return instruction, nil
}

func InstructionTransfer(source solana.PublicKey, destination solana.PublicKey, owner solana.PublicKey, amount uint64) (solana.Instruction, error) {
	data := make([]byte, 9)
	data[0] = 3
	binary.LittleEndian.PutUint64(data[1:], amount)
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: source, IsSigner: false, IsWritable: true},
			{PublicKey: destination, IsSigner: false, IsWritable: true},
			{PublicKey: owner, IsSigner: true, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: program.Token,
	}
	return instruction, nil
}

func InstructionApprove(source solana.PublicKey, delegate solana.PublicKey, owner solana.PublicKey, amount uint64) (solana.Instruction, error) {
	data := make([]byte, 9)
	data[0] = 4
	binary.LittleEndian.PutUint64(data[1:], amount)
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: source, IsSigner: false, IsWritable: true},
			{PublicKey: delegate, IsSigner: false, IsWritable: false},
			{PublicKey: owner, IsSigner: true, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: program.Token,
	}
	return instruction, nil
}

func InstructionCloseAccount(account solana.PublicKey, destination solana.PublicKey, owner solana.PublicKey) (solana.Instruction, error) {
	data := make([]byte, 1)
	data[0] = 9
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: account, IsSigner: false, IsWritable: true},
			{PublicKey: destination, IsSigner: false, IsWritable: true},
			{PublicKey: owner, IsSigner: true, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: program.Token,
	}
	return instruction, nil
}

func InstructionCreateAssociatedAccount(payer solana.PublicKey, owner solana.PublicKey, mint solana.PublicKey) (solana.Instruction, error) {
	associated, err := backend.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, err
	}
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: payer, IsSigner: true, IsWritable: true},
			{PublicKey: associated, IsSigner: false, IsWritable: true},
			{PublicKey: owner, IsSigner: false, IsWritable: false},
			{PublicKey: mint, IsSigner: false, IsWritable: false},
			{PublicKey: program.System, IsSigner: false, IsWritable: false},
			{PublicKey: program.Token, IsSigner: false, IsWritable: false},
			{PublicKey: program.SysRent, IsSigner: false, IsWritable: false},
		},
		IsData:      []byte{},
		IsProgramID: program.AssociatedToken,
	}
	return instruction, nil
}
