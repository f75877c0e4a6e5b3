package store

type RelaySwapStep struct {
	Program          string `gorm:"type:varchar(48);not null"`
	Pool             string `gorm:"type:varchar(48);not null"`
	TokenIn          string `gorm:"type:varchar(48);not null"`
	AmountIn         uint64 `gorm:"type:bigint(20);not null"`
	TokenOut         string `gorm:"type:varchar(48);not null"`
	MinimumAmountOut uint64 `gorm:"type:bigint(20);not null"`
	RelaySwapId      uint64 `gorm:"type:bigint(20);not null"`
}

type RelaySwap struct {
	Id               uint64           `gorm:"primaryKey;type:bigint(20);not null"`
	Owner            string           `gorm:"type:varchar(48);not null"`
	SourceMint       string           `gorm:"type:varchar(48);not null"`
	DestinationMint  string           `gorm:"type:varchar(48);not null"`
	AmountIn         uint64           `gorm:"type:bigint(20);not null"`
	TransactionCount int              `gorm:"type:bigint(20);not null"`
	TransactionFee   uint64           `gorm:"type:bigint(20);not null"`
	AccountBalances  uint64           `gorm:"type:bigint(20);not null"`
	PaybackFee       uint64           `gorm:"type:bigint(20);not null"`
	Signature        string           `gorm:"type:varchar(120);not null"`
	SendTime         uint64           `gorm:"type:bigint(20);not null"`
	FinishTime       uint64           `gorm:"type:bigint(20);not null"`
	Succeed          bool             `gorm:"not null"`
	RelaySwapSteps   []*RelaySwapStep `gorm:"foreignKey:RelaySwapId;references:Id"`
}

type UsageRecord struct {
	Id           uint64 `gorm:"primaryKey;type:bigint(20);not null"`
	Owner        string `gorm:"type:varchar(48);not null"`
	CurrentUsage uint64 `gorm:"type:bigint(20);not null"`
	AmountUsed   uint64 `gorm:"type:bigint(20);not null"`
	Time         uint64 `gorm:"type:bigint(20);not null"`
}
