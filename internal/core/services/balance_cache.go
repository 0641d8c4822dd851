package services

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shopspring/decimal"
)

// cachedBalance is a folded balance tagged with the position of the newest
// entry it includes.
type cachedBalance struct {
	balance decimal.Decimal
	seq     int64
}

// balanceCache holds folded balances keyed by account. A hit is only used when
// its seq still equals the account's latest committed seq, so writes made by
// other processes sharing the database are never hidden by a stale value.
type balanceCache struct {
	cache *lru.Cache[string, cachedBalance]
}

// newBalanceCache returns nil when size is not positive, which disables caching.
func newBalanceCache(size int) *balanceCache {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[string, cachedBalance](size)
	if err != nil {
		return nil
	}
	return &balanceCache{cache: c}
}

func (b *balanceCache) get(accountID string, latestSeq int64) (decimal.Decimal, bool) {
	if b == nil {
		return decimal.Zero, false
	}
	v, ok := b.cache.Get(accountID)
	if !ok || v.seq != latestSeq {
		return decimal.Zero, false
	}
	return v.balance, true
}

// put keeps the newer of the stored and offered values.
func (b *balanceCache) put(accountID string, balance decimal.Decimal, seq int64) {
	if b == nil {
		return
	}
	if v, ok := b.cache.Peek(accountID); ok && v.seq > seq {
		return
	}
	b.cache.Add(accountID, cachedBalance{balance: balance, seq: seq})
}

func (b *balanceCache) invalidate(accountID string) {
	if b == nil {
		return
	}
	b.cache.Remove(accountID)
}
