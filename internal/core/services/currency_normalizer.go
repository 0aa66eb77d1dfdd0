package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_approvals/internal/apperrors"
	portsrepo "github.com/SscSPs/expense_approvals/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// displayPrecision is the number of decimals amounts are shown with everywhere.
const displayPrecision = 2

type currencyNormalizer struct {
	BaseService
	source portsrepo.RateSource
	rates  *expirable.LRU[string, decimal.Decimal]
	group  singleflight.Group
}

// NormalizerOption is a functional option for configuring the currency normalizer
type NormalizerOption func(*currencyNormalizer)

// WithRateCache memoizes rates per (from, to, UTC day). A non-positive size disables it.
func WithRateCache(size int, ttl time.Duration) NormalizerOption {
	return func(n *currencyNormalizer) {
		if size <= 0 {
			n.rates = nil
			return
		}
		n.rates = expirable.NewLRU[string, decimal.Decimal](size, nil, ttl)
	}
}

// WithNormalizerClock replaces the clock used to derive the memo day.
func WithNormalizerClock(now func() time.Time) NormalizerOption {
	return func(n *currencyNormalizer) {
		n.now = now
	}
}

// NewCurrencyNormalizer creates a normalizer backed by source.
func NewCurrencyNormalizer(source portsrepo.RateSource, options ...NormalizerOption) portssvc.CurrencyNormalizerSvc {
	n := &currencyNormalizer{source: source}
	for _, option := range options {
		option(n)
	}
	return n
}

var _ portssvc.CurrencyNormalizerSvc = (*currencyNormalizer)(nil)

// Normalize converts amount from one currency to another, truncating to two decimals. Equal
// currencies short-circuit without consulting the rate source. Any rate failure is returned
// as a dependency error; callers decide how to degrade.
func (n *currencyNormalizer) Normalize(ctx context.Context, amount decimal.Decimal, fromCurrencyCode, toCurrencyCode string) (decimal.Decimal, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCurrencyCode))
	to := strings.ToUpper(strings.TrimSpace(toCurrencyCode))
	if from == "" || to == "" {
		return decimal.Zero, apperrors.NewValidationError("currency codes are required")
	}
	if from == to {
		return amount, nil
	}

	rate, err := n.rate(ctx, from, to)
	if err != nil {
		n.LogWarn(ctx, "Exchange rate lookup failed",
			slog.String("from", from), slog.String("to", to), slog.String("error", err.Error()))
		return decimal.Zero, err
	}
	return amount.Mul(rate).Truncate(displayPrecision), nil
}

func (n *currencyNormalizer) rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	key := fmt.Sprintf("%s:%s:%s", from, to, n.Now().Format(time.DateOnly))
	if n.rates != nil {
		if r, ok := n.rates.Get(key); ok {
			n.LogDebug(ctx, "Exchange rate served from memo", slog.String("key", key))
			return r, nil
		}
	}

	v, err, _ := n.group.Do(key, func() (any, error) {
		r, err := n.source.Rate(ctx, from, to)
		if err != nil {
			return nil, err
		}
		if !r.IsPositive() {
			return nil, fmt.Errorf("non-positive rate %s", r)
		}
		if n.rates != nil {
			n.rates.Add(key, r)
		}
		return r, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDependency) {
			return decimal.Zero, err
		}
		return decimal.Zero, apperrors.NewDependencyError(fmt.Sprintf("exchange rate %s->%s unavailable", from, to), err)
	}
	return v.(decimal.Decimal), nil
}
