// Package report aggregates the transaction collection into KPIs, monthly
// buckets, category totals and the DRE income statement.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fluxo-dev/fluxo/internal/cache"
	"github.com/fluxo-dev/fluxo/internal/model"
)

// KPIs are the headline totals over the whole collection.
type KPIs struct {
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetResult     decimal.Decimal
	Count         int
}

// ComputeKPIs sums revenue and expenses over all transactions in one pass.
func ComputeKPIs(transactions []*model.Transaction) KPIs {
	k := KPIs{
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
		Count:         len(transactions),
	}
	for _, t := range transactions {
		k.TotalRevenue = k.TotalRevenue.Add(t.AmountIn)
		k.TotalExpenses = k.TotalExpenses.Add(t.AmountOut)
	}
	k.NetResult = k.TotalRevenue.Sub(k.TotalExpenses)
	return k
}

const kpiCacheKey = "kpis"

// DefaultKPITTL is the staleness window for the cached KPI view.
const DefaultKPITTL = 10 * time.Second

// KPIService memoizes ComputeKPIs behind a coarse TTL. Results are
// indistinguishable from a fresh computation apart from staleness within
// the window.
type KPIService struct {
	cache *cache.TTL[KPIs]
}

// NewKPIService creates a KPIService with the given staleness window.
func NewKPIService(ttl time.Duration) *KPIService {
	return &KPIService{cache: cache.New[KPIs](ttl)}
}

// KPIs returns the cached totals, recomputing on miss.
func (s *KPIService) KPIs(transactions []*model.Transaction) KPIs {
	if k, ok := s.cache.Get(kpiCacheKey); ok {
		return k
	}
	k := ComputeKPIs(transactions)
	s.cache.Set(kpiCacheKey, k)
	return k
}

// Invalidate drops the cached view after a mutation.
func (s *KPIService) Invalidate() {
	s.cache.Invalidate(kpiCacheKey)
}
