package swap

import (
	"fmt"
	"log"

	"github.com/badgerodon/collections/stack"
	"github.com/egaotan/solana-relay/backend"
	"github.com/egaotan/solana-relay/config"
	"github.com/egaotan/solana-relay/fee"
	"github.com/egaotan/solana-relay/feerelayer"
	"github.com/egaotan/solana-relay/program"
	"github.com/egaotan/solana-relay/relay"
	"github.com/egaotan/solana-relay/spltoken"
	"github.com/egaotan/solana-relay/system"
	"github.com/egaotan/solana-relay/tokenswap"
	"github.com/egaotan/solana-relay/utils"
	"github.com/gagliardetto/solana-go"
)

// Input is one swap request. Source is the declared user source token account,
// for a native paying swap its address is the owner's wallet itself.
type Input struct {
	Owner                     solana.PrivateKey
	Source                    TokenAccount
	DestinationMint           solana.PublicKey
	DestinationAddress        *solana.PublicKey
	InputAmount               uint64
	Slippage                  float64
	Route                     tokenswap.PoolsPair
	DelegateTransferAuthority bool
}

// Output carries the prepared transactions in submission order and the rent
// the caller still owes the relay for the synthesized source account, which
// is not visible in any transaction's account balances fee.
type Output struct {
	Transactions         []*backend.PreparedTransaction
	AdditionalPaybackFee uint64
}

// Builder composes a swap into one or two signed transactions. Stages run
// strictly in order, each appends onto the accumulating instruction set.
type Builder struct {
	backend *backend.Backend
	chain   ChainQuery
	finder  *DestinationFinder
	transit *TransitTokenAccountManager
	log     *log.Logger
}

func NewBuilder(be *backend.Backend, chain ChainQuery) *Builder {
	return &Builder{
		backend: be,
		chain:   chain,
		finder:  NewDestinationFinder(chain),
		transit: NewTransitTokenAccountManager(chain),
		log:     log.Default(),
	}
}

func (b *Builder) Start() error {
	b.log = utils.NewLog(config.LogPath, config.SwapLog)
	b.log.Printf("start swap transaction builder......")
	return nil
}

func (b *Builder) Finder() *DestinationFinder {
	return b.finder
}

// Build runs the swap pipeline. Every precondition is checked before the
// first instruction is appended, a partial instruction set is never returned.
func (b *Builder) Build(relayContext *relay.Context, input Input) (*Output, error) {
	if relayContext == nil {
		return nil, ErrRelayContextMissing
	}
	if input.InputAmount == 0 {
		return nil, ErrInvalidAmount
	}
	if input.Slippage < 0 || input.Slippage >= 1 {
		return nil, ErrInvalidSlippage
	}
	if len(input.Route) == 0 || len(input.Route) > 2 {
		return nil, ErrSwapPoolsNotFound
	}
	sourceMint := input.Source.Mint
	if !input.Route[0].HasMint(sourceMint) {
		return nil, ErrSwapPoolsNotFound
	}
	// the route must actually terminate at the requested mint
	terminalMint, err := routeTerminalMint(input.Route, sourceMint)
	if err != nil {
		return nil, err
	}
	if terminalMint != input.DestinationMint {
		return nil, ErrSwapPoolsNotFound
	}
	owner := input.Owner.PublicKey()

	// the fee payer's own holding account is never a user source
	feePayerAssociated, err := backend.FindAssociatedTokenAddress(relayContext.FeePayer, sourceMint)
	if err != nil {
		return nil, err
	}
	if input.Source.Address == feePayerAssociated {
		return nil, ErrWrongAddress
	}

	transit, err := b.transit.Resolve(owner, input.Route, sourceMint)
	if err != nil {
		return nil, err
	}

	instructions := make([]solana.Instruction, 0)
	secondaryInstructions := make([]solana.Instruction, 0)
	cleanup := stack.New()
	signers := []solana.PrivateKey{input.Owner}
	accountCreationFee := fee.FeeAmount{}
	additionalPaybackFee := uint64(0)

	// source stage: paying from the native wallet balance wraps it into a
	// throwaway token account, funded through the fee payer
	userSource := input.Source.Address
	var tempSource *solana.Wallet
	if sourceMint == program.WrappedSOL && input.Source.Address == owner {
		tempSource = solana.NewWallet()
		transferIn, err := system.InstructionTransfer(owner, relayContext.FeePayer, input.InputAmount)
		if err != nil {
			return nil, err
		}
		createIn, err := system.InstructionCreateAccount(relayContext.FeePayer, tempSource.PublicKey(),
			relayContext.MinimumTokenAccountBalance+input.InputAmount, uint64(spltoken.TokenLayoutSize), program.Token)
		if err != nil {
			return nil, err
		}
		initIn, err := spltoken.InstructionInitAccount(tempSource.PublicKey(), program.WrappedSOL, owner)
		if err != nil {
			return nil, err
		}
		closeIn, err := spltoken.InstructionCloseAccount(tempSource.PublicKey(), owner, owner)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, transferIn, createIn, initIn)
		cleanup.Push(closeIn)
		signers = append(signers, tempSource.PrivateKey)
		userSource = tempSource.PublicKey()
		additionalPaybackFee += relayContext.MinimumTokenAccountBalance
	}

	// destination stage
	found, err := b.finder.FindRealDestination(owner, input.DestinationMint, input.DestinationAddress)
	if err != nil {
		return nil, err
	}
	userDestination := found.Destination.Address
	var tempDestination *solana.Wallet
	if found.NeedsCreation {
		if input.DestinationMint == program.WrappedSOL {
			tempDestination = solana.NewWallet()
			createIn, err := system.InstructionCreateAccount(relayContext.FeePayer, tempDestination.PublicKey(),
				relayContext.MinimumTokenAccountBalance, uint64(spltoken.TokenLayoutSize), program.Token)
			if err != nil {
				return nil, err
			}
			initIn, err := spltoken.InstructionInitAccount(tempDestination.PublicKey(), program.WrappedSOL, owner)
			if err != nil {
				return nil, err
			}
			paybackIn, err := system.InstructionTransfer(owner, relayContext.FeePayer, relayContext.MinimumTokenAccountBalance)
			if err != nil {
				return nil, err
			}
			closeIn, err := spltoken.InstructionCloseAccount(tempDestination.PublicKey(), owner, owner)
			if err != nil {
				return nil, err
			}
			instructions = append(instructions, createIn, initIn)
			cleanup.Push(paybackIn)
			cleanup.Push(closeIn)
			signers = append(signers, tempDestination.PrivateKey)
			userDestination = tempDestination.PublicKey()
			accountCreationFee.AddAccountBalances(relayContext.MinimumTokenAccountBalance)
		} else {
			createIn, err := spltoken.InstructionCreateAssociatedAccount(relayContext.FeePayer, owner, input.DestinationMint)
			if err != nil {
				return nil, err
			}
			// with a synthesized source the combined set would not fit in
			// one transaction, the create moves into its own
			if tempSource != nil {
				secondaryInstructions = append(secondaryInstructions, createIn)
			} else {
				instructions = append(instructions, createIn)
			}
			accountCreationFee.AddAccountBalances(relayContext.MinimumTokenAccountBalance)
		}
	}

	// swap stage
	transferAuthority := owner
	if input.DelegateTransferAuthority {
		wallet := solana.NewWallet()
		signers = append(signers, wallet.PrivateKey)
		transferAuthority = wallet.PublicKey()
	}
	swapData, err := BuildSwapData(input.Route, sourceMint, transferAuthority, transit, input.InputAmount, input.Slippage)
	if err != nil {
		return nil, err
	}
	switch data := swapData.(type) {
	case DirectSwapData:
		if input.DelegateTransferAuthority {
			approveIn, err := spltoken.InstructionApprove(userSource, data.TransferAuthority, owner, data.AmountIn)
			if err != nil {
				return nil, err
			}
			instructions = append(instructions, approveIn)
		}
		swapIn, err := tokenswap.InstructionSwapRaw(data.Program, data.Account, data.Authority, data.TransferAuthority,
			userSource, data.Source, data.Destination, userDestination,
			data.PoolTokenMint, data.PoolFeeAccount, data.AmountIn, data.MinimumAmountOut)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, swapIn)
	case TransitiveSwapData:
		if input.DelegateTransferAuthority {
			approveIn, err := spltoken.InstructionApprove(userSource, data.From.TransferAuthority, owner, data.From.AmountIn)
			if err != nil {
				return nil, err
			}
			instructions = append(instructions, approveIn)
		}
		if data.NeedsCreateTransitTokenAccount {
			createIn, err := feerelayer.InstructionCreateTransitTokenAccount(relayContext.FeePayer, owner,
				data.TransitTokenAccount, data.TransitTokenMint)
			if err != nil {
				return nil, err
			}
			instructions = append(instructions, createIn)
		}
		from := &feerelayer.SwapAccounts{
			Program:         data.From.Program,
			Account:         data.From.Account,
			Authority:       data.From.Authority,
			PoolSource:      data.From.Source,
			PoolDestination: data.From.Destination,
			PoolTokenMint:   data.From.PoolTokenMint,
			FeeAccount:      data.From.PoolFeeAccount,
		}
		to := &feerelayer.SwapAccounts{
			Program:         data.To.Program,
			Account:         data.To.Account,
			Authority:       data.To.Authority,
			PoolSource:      data.To.Source,
			PoolDestination: data.To.Destination,
			PoolTokenMint:   data.To.PoolTokenMint,
			FeeAccount:      data.To.PoolFeeAccount,
		}
		swapIn, err := feerelayer.InstructionRelaySwap(relayContext.FeePayer, data.From.TransferAuthority,
			userSource, data.TransitTokenAccount, userDestination, from, to,
			data.From.AmountIn, data.From.MinimumAmountOut, data.To.MinimumAmountOut)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, swapIn)
	default:
		panic(fmt.Sprintf("unsupported swap data %T", swapData))
	}

	// cleanup stage: close the throwaway accounts, destination first
	for cleanup.Len() > 0 {
		instructions = append(instructions, cleanup.Pop().(solana.Instruction))
	}
	if tempDestination != nil {
		// the owner repays the rent advance directly, it is no longer a net cost
		accountCreationFee.SubtractAccountBalances(relayContext.MinimumTokenAccountBalance)
	}

	// finalize
	mainFee := fee.FeeAmount{Transaction: signatureCount(instructions, relayContext.FeePayer) * relayContext.LamportsPerSignature}
	secondaryFee := fee.FeeAmount{}
	if len(secondaryInstructions) > 0 {
		secondaryFee.Transaction = signatureCount(secondaryInstructions, relayContext.FeePayer) * relayContext.LamportsPerSignature
		secondaryFee.AccountBalances = accountCreationFee.AccountBalances
	} else {
		mainFee.AccountBalances = accountCreationFee.AccountBalances
	}

	transactions := make([]*backend.PreparedTransaction, 0, 2)
	mainTrx, err := b.backend.Prepare(instructions, signers, relayContext.FeePayer, mainFee)
	if err != nil {
		return nil, err
	}
	transactions = append(transactions, mainTrx)
	if len(secondaryInstructions) > 0 {
		secondaryTrx, err := b.backend.Prepare(secondaryInstructions, nil, relayContext.FeePayer, secondaryFee)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, secondaryTrx)
	}
	b.log.Printf("built swap, transactions: %d, fee: %d + %d, payback: %d",
		len(transactions), mainFee.Total(), secondaryFee.Total(), additionalPaybackFee)
	return &Output{
		Transactions:         transactions,
		AdditionalPaybackFee: additionalPaybackFee,
	}, nil
}

func routeTerminalMint(route tokenswap.PoolsPair, sourceMint solana.PublicKey) (solana.PublicKey, error) {
	if len(route) == 1 {
		return route[0].OtherMint(sourceMint)
	}
	transitMint, err := route.TransitMint(sourceMint)
	if err != nil {
		return solana.PublicKey{}, ErrTransitTokenMintNotFound
	}
	return route[1].OtherMint(transitMint)
}

// signatureCount is the distinct signer count of an instruction set, the fee
// payer always signs.
func signatureCount(ins []solana.Instruction, feePayer solana.PublicKey) uint64 {
	seen := make(map[solana.PublicKey]bool)
	seen[feePayer] = true
	for _, in := range ins {
		for _, meta := range in.Accounts() {
			if meta.IsSigner {
				seen[meta.PublicKey] = true
			}
		}
	}
	return uint64(len(seen))
}
