package app

type SwapRequest struct {
	SourceAddress      string  `json:"source_address"`
	SourceMint         string  `json:"source_mint"`
	DestinationMint    string  `json:"destination_mint"`
	DestinationAddress string  `json:"destination_address,omitempty"`
	Amount             uint64  `json:"amount"`
	Slippage           float64 `json:"slippage"`
	Delegate           bool    `json:"delegate"`
}

type SwapResponse struct {
	Signatures      []string `json:"signatures"`
	TransactionFee  uint64   `json:"transaction_fee"`
	AccountBalances uint64   `json:"account_balances"`
	PaybackFee      uint64   `json:"payback_fee"`
}

type TopUpRequest struct {
	SourceAddress string  `json:"source_address"`
	SourceMint    string  `json:"source_mint"`
	Amount        uint64  `json:"amount"`
	Slippage      float64 `json:"slippage"`
}

type TopUpResponse struct {
	Signature       string `json:"signature"`
	TransactionFee  uint64 `json:"transaction_fee"`
	AccountBalances uint64 `json:"account_balances"`
}

type TopUpFeeResponse struct {
	ExpectedTopUpFee      uint64 `json:"expected_top_up_fee"`
	NeededTransaction     uint64 `json:"needed_transaction"`
	NeededAccountBalances uint64 `json:"needed_account_balances"`
}

type SwapFeeResponse struct {
	Transaction     uint64 `json:"transaction"`
	AccountBalances uint64 `json:"account_balances"`
}
