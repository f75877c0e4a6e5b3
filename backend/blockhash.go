package backend

import (
	"sync/atomic"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

func (backend *Backend) CacheRecentBlockHash() {
	defer backend.wg.Done()
	ticker := time.NewTicker(time.Second * 2)
	defer ticker.Stop()
	index := 0
	backend.refreshBlockHash(index)
	for {
		select {
		case <-ticker.C:
			index = backend.refreshBlockHash(index)
		case <-backend.ctx.Done():
			backend.logger.Printf("recent block hash cache exit")
			return
		}
	}
}

func (backend *Backend) refreshBlockHash(index int) int {
	var getRecentBlockHashResult *rpc.GetRecentBlockhashResult
	var err error
	for i := 0; i < len(backend.clients); i++ {
		getRecentBlockHashResult, err = backend.clients[index].GetRecentBlockhash(backend.ctx, rpc.CommitmentFinalized)
		if err != nil {
			backend.logger.Printf("GetRecentBlockhash, %d err: %s", index, err.Error())
			index++
			index = index % len(backend.clients)
		} else {
			break
		}
	}
	if err != nil {
		backend.logger.Printf("GetRecentBlockhash, all err: %s", err.Error())
		return index
	}
	for !atomic.CompareAndSwapInt32(&backend.lock, 0, 1) {
		continue
	}
	backend.cachedBlockHash = getRecentBlockHashResult.Value.Blockhash
	backend.lamportsPerSignature = getRecentBlockHashResult.Value.FeeCalculator.LamportsPerSignature
	atomic.StoreInt32(&backend.lock, 0)
	return index
}

// SetRecentBlockHash seeds the cache directly, used when building before the
// refresh loop has run.
func (backend *Backend) SetRecentBlockHash(hash solana.Hash, lamportsPerSignature uint64) {
	defer atomic.StoreInt32(&backend.lock, 0)
	for !atomic.CompareAndSwapInt32(&backend.lock, 0, 1) {
		continue
	}
	backend.cachedBlockHash = hash
	backend.lamportsPerSignature = lamportsPerSignature
}

func (backend *Backend) GetRecentBlockHash() solana.Hash {
	defer atomic.StoreInt32(&backend.lock, 0)
	for !atomic.CompareAndSwapInt32(&backend.lock, 0, 1) {
		continue
	}
	return backend.cachedBlockHash
}

// GetFeeRate is the current lamports per signature, refreshed together with
// the recent block hash.
func (backend *Backend) GetFeeRate() uint64 {
	defer atomic.StoreInt32(&backend.lock, 0)
	for !atomic.CompareAndSwapInt32(&backend.lock, 0, 1) {
		continue
	}
	return backend.lamportsPerSignature
}
