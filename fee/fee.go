package fee

// FeeAmount splits an expected fee into the part burnt as transaction fee
// and the part deposited into accounts as rent.
type FeeAmount struct {
	Transaction     uint64 `json:"transaction"`
	AccountBalances uint64 `json:"account_balances"`
}

func (fa FeeAmount) Total() uint64 {
	return fa.Transaction + fa.AccountBalances
}

func (fa FeeAmount) IsZero() bool {
	return fa.Transaction == 0 && fa.AccountBalances == 0
}

// AddTransaction never overflows in practice, fees are tiny against uint64.
func (fa *FeeAmount) AddTransaction(amount uint64) {
	fa.Transaction += amount
}

func (fa *FeeAmount) AddAccountBalances(amount uint64) {
	fa.AccountBalances += amount
}

// SubtractAccountBalances clamps at zero, a reclaimed rent deposit can not
// make the fee negative.
func (fa *FeeAmount) SubtractAccountBalances(amount uint64) {
	if amount > fa.AccountBalances {
		fa.AccountBalances = 0
		return
	}
	fa.AccountBalances -= amount
}

// UsageStatus is the free tier quota the relay service grants a user.
type UsageStatus struct {
	MaxUsage                       uint64 `json:"max_usage"`
	CurrentUsage                   uint64 `json:"current_usage"`
	MaxAmount                      uint64 `json:"max_amount"`
	AmountUsed                     uint64 `json:"amount_used"`
	MaxTokenAccountCreationAmount  uint64 `json:"max_token_account_creation_amount"`
	MaxTokenAccountCreationCount   uint64 `json:"max_token_account_creation_count"`
	TokenAccountCreationAmountUsed uint64 `json:"token_account_creation_amount_used"`
	TokenAccountCreationCountUsed  uint64 `json:"token_account_creation_count_used"`
}

func (us UsageStatus) IsFreeTransactionFeeAvailable(transactionFee uint64) bool {
	return us.CurrentUsage < us.MaxUsage && us.AmountUsed+transactionFee <= us.MaxAmount
}

func (us UsageStatus) IsFreeTokenAccountCreationAvailable(amount uint64) bool {
	return us.TokenAccountCreationCountUsed < us.MaxTokenAccountCreationCount &&
		us.TokenAccountCreationAmountUsed+amount <= us.MaxTokenAccountCreationAmount
}
