// Package sale holds the storefront's domain layer: per-field read bindings
// over the sale contract and the purchase state machine.
package sale

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"sync"

	"github.com/salefront/salefront/internal/amount"
)

// Reader is the read-call capability the bindings consume.
// contract.Caller satisfies it; tests substitute fakes.
type Reader interface {
	CallOne(ctx context.Context, funcName string, args ...string) (string, error)
}

// Binding is one independently-refreshable contract field. Failure or
// staleness of one binding never blocks another.
type Binding[T any] struct {
	fetch func(ctx context.Context) (T, error)

	mu     sync.Mutex
	value  T
	loaded bool
	err    error
}

func newBinding[T any](fetch func(ctx context.Context) (T, error)) *Binding[T] {
	return &Binding[T]{fetch: fetch}
}

// Refresh re-queries the field. The previous value is kept on error.
func (b *Binding[T]) Refresh(ctx context.Context) error {
	v, err := b.fetch(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = err
	if err != nil {
		return err
	}
	b.value = v
	b.loaded = true
	return nil
}

// Value returns the decoded field and whether it has ever loaded.
func (b *Binding[T]) Value() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value, b.loaded
}

// Err returns the error from the most recent refresh, if any.
func (b *Binding[T]) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Readings bundles every read binding the storefront displays.
type Readings struct {
	CurrentPrice  *Binding[*big.Int]
	NormalPrice   *Binding[*big.Int]
	PresalePrice  *Binding[*big.Int]
	PresaleActive *Binding[bool]
	TotalSupply   *Binding[*big.Int]
	Decimals      *Binding[int]
	Name          *Binding[string]
	Symbol        *Binding[string]
}

// NewReadings builds the binding set over a contract reader.
func NewReadings(r Reader) *Readings {
	return &Readings{
		CurrentPrice:  newBinding(fetchBig(r, "getCurrentPrice")),
		NormalPrice:   newBinding(fetchBig(r, "normalPrice")),
		PresalePrice:  newBinding(fetchBig(r, "presalePrice")),
		TotalSupply:   newBinding(fetchBig(r, "totalSupply")),
		PresaleActive: newBinding(fetchBool(r, "presaleActive")),
		Name:          newBinding(fetchString(r, "name")),
		Symbol:        newBinding(fetchString(r, "symbol")),
		Decimals:      newBinding(fetchDecimals(r)),
	}
}

// RefreshAll refreshes every binding, continuing past individual failures.
// Returns the first error encountered, for reporting only.
func (r *Readings) RefreshAll(ctx context.Context) error {
	var first error
	refresh := func(f func(context.Context) error) {
		if err := f(ctx); err != nil && first == nil {
			first = err
		}
	}
	refresh(r.CurrentPrice.Refresh)
	refresh(r.NormalPrice.Refresh)
	refresh(r.PresalePrice.Refresh)
	refresh(r.PresaleActive.Refresh)
	refresh(r.TotalSupply.Refresh)
	refresh(r.Decimals.Refresh)
	refresh(r.Name.Refresh)
	refresh(r.Symbol.Refresh)
	return first
}

// EffectivePrice is the price a purchase would pay right now: the presale
// price while the presale is active, otherwise the dynamic current price.
// Returns nil until the relevant bindings have loaded.
func (r *Readings) EffectivePrice() *big.Int {
	if active, ok := r.PresaleActive.Value(); ok && active {
		if p, ok := r.PresalePrice.Value(); ok {
			return p
		}
		return nil
	}
	p, ok := r.CurrentPrice.Value()
	if !ok {
		return nil
	}
	return p
}

// DecimalsOrDefault returns the contract-reported decimals, falling back to
// the conventional 18 when the read has not resolved.
func (r *Readings) DecimalsOrDefault() int {
	if d, ok := r.Decimals.Value(); ok {
		return d
	}
	return amount.DefaultDecimals
}

// --- field decoders ---

func fetchBig(r Reader, funcName string) func(ctx context.Context) (*big.Int, error) {
	return func(ctx context.Context) (*big.Int, error) {
		raw, err := r.CallOne(ctx, funcName)
		if err != nil {
			return nil, err
		}
		n, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			return nil, fmt.Errorf("%s: could not parse %q as integer", funcName, raw)
		}
		return n, nil
	}
}

func fetchBool(r Reader, funcName string) func(ctx context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		raw, err := r.CallOne(ctx, funcName)
		if err != nil {
			return false, err
		}
		return raw == "true", nil
	}
}

func fetchString(r Reader, funcName string) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		return r.CallOne(ctx, funcName)
	}
}

func fetchDecimals(r Reader) func(ctx context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		raw, err := r.CallOne(ctx, "decimals")
		if err != nil {
			return 0, err
		}
		d, err := strconv.Atoi(raw)
		if err != nil || d < 0 || d > 77 {
			return 0, fmt.Errorf("decimals: implausible value %q", raw)
		}
		return d, nil
	}
}
