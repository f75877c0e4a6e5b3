package program

import "github.com/gagliardetto/solana-go"

var (
	System          = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")
	Token           = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	AssociatedToken = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	TokenSwap       = solana.MustPublicKeyFromBase58("SwaPpA9LAaLfeLi3a68M4DjnLqgtticKg6CnyNwgAC8")
	FeeRelayer      = solana.MustPublicKeyFromBase58("12YKFL4mnZz6CBEGePrf293mEzueQM3h8VLPUJsKpGs9")
	SysRent         = solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
	SysClock        = solana.MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111")
)

var (
	WrappedSOL = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	USDT       = solana.MustPublicKeyFromBase58("Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB")
	USDC       = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
)
