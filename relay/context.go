package relay

import (
	"github.com/egaotan/solana-relay/fee"
	"github.com/gagliardetto/solana-go"
)

// AccountStatus is the state of the user's on chain relay deposit account.
// The account does not exist until the first top up executes.
type AccountStatus struct {
	Created bool
	Balance uint64
}

func AccountNotYetCreated() AccountStatus {
	return AccountStatus{}
}

func AccountCreated(balance uint64) AccountStatus {
	return AccountStatus{Created: true, Balance: balance}
}

// Context is a snapshot of relay relevant chain and service state, consistent
// as of one fetch instant. A refresh produces a new instance, fields are
// never mutated in place.
type Context struct {
	MinimumTokenAccountBalance uint64
	MinimumRelayAccountBalance uint64
	FeePayer                   solana.PublicKey
	LamportsPerSignature       uint64
	RelayAccountStatus         AccountStatus
	UsageStatus                fee.UsageStatus
}

// Equals reports whether two snapshots carry identical state. Used to detect
// staleness against a fresh fetch.
func (c *Context) Equals(other *Context) bool {
	if other == nil {
		return false
	}
	return c.MinimumTokenAccountBalance == other.MinimumTokenAccountBalance &&
		c.MinimumRelayAccountBalance == other.MinimumRelayAccountBalance &&
		c.FeePayer == other.FeePayer &&
		c.LamportsPerSignature == other.LamportsPerSignature &&
		c.RelayAccountStatus == other.RelayAccountStatus &&
		c.UsageStatus == other.UsageStatus
}
