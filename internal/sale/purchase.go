package sale

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/salefront/salefront/internal/amount"
	"github.com/salefront/salefront/internal/chain"
)

// State is the lifecycle of one purchase submission.
type State int

const (
	Idle State = iota
	Submitting
	AwaitingConfirmation
	Confirmed
	Failed
	CancelledByUser
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case AwaitingConfirmation:
		return "awaiting confirmation"
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	case CancelledByUser:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the submission has finished, one way or another.
func (s State) Terminal() bool {
	return s == Confirmed || s == Failed || s == CancelledByUser
}

// ErrInvalidPayment rejects a submit call before anything reaches the chain.
var ErrInvalidPayment = errors.New("payment amount must be a positive decimal")

// Submitter signs and broadcasts a contract write call, returning the
// transaction hash. contract.Sender satisfies it.
type Submitter interface {
	Send(ctx context.Context, funcName string, value *big.Int, args ...string) (string, error)
}

// ConfirmationWaiter blocks until a transaction is mined. chain.Client
// satisfies it.
type ConfirmationWaiter interface {
	WaitForReceipt(ctx context.Context, hash string, pollInterval time.Duration) (*chain.Receipt, error)
}

// Status is a snapshot of the current submission.
type Status struct {
	State  State
	TxHash string
	Err    error
}

// Purchase drives one buyTokens transaction at a time through
// submit → pending → mined. Each Submit starts a fresh submission; a stale
// in-flight submission's late result is discarded rather than applied.
type Purchase struct {
	submitter Submitter
	waiter    ConfirmationWaiter
	readings  *Readings // refreshed on confirmation; may be nil
	poll      time.Duration

	mu     sync.Mutex
	gen    uint64
	status Status
}

// NewPurchase creates the orchestrator. readings may be nil when there is
// nothing to refresh after a confirmed buy.
func NewPurchase(submitter Submitter, waiter ConfirmationWaiter, readings *Readings) *Purchase {
	return &Purchase{
		submitter: submitter,
		waiter:    waiter,
		readings:  readings,
		poll:      2 * time.Second,
	}
}

// SetPollInterval overrides the confirmation poll interval.
func (p *Purchase) SetPollInterval(d time.Duration) { p.poll = d }

// Status returns the current submission's snapshot.
func (p *Purchase) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Submit buys tokens with paymentHuman (a decimal string in whole payment
// units) and blocks until the submission reaches a terminal state. The
// returned Status is the final state of THIS submission even if a newer
// Submit has since taken over the shared snapshot.
func (p *Purchase) Submit(ctx context.Context, paymentHuman string) Status {
	valueWei, err := amount.ToBaseUnits(paymentHuman, amount.DefaultDecimals)
	if err != nil || valueWei.Sign() <= 0 {
		return Status{State: Failed, Err: ErrInvalidPayment}
	}

	gen := p.begin()

	// The payable value is exactly the user-entered amount; display
	// fallbacks never reach this call.
	hash, err := p.submitter.Send(ctx, "buyTokens", valueWei)
	if err != nil {
		if isUserRejection(err) {
			// A normal abort, never surfaced as Failed.
			final := Status{State: CancelledByUser}
			p.apply(gen, final)
			return final
		}
		final := Status{State: Failed, Err: fmt.Errorf("signing failed: %w", err)}
		p.apply(gen, final)
		return final
	}

	p.apply(gen, Status{State: AwaitingConfirmation, TxHash: hash})

	if _, err := p.waiter.WaitForReceipt(ctx, hash, p.poll); err != nil {
		final := Status{State: Failed, TxHash: hash, Err: fmt.Errorf("confirmation failed: %w", err)}
		p.apply(gen, final)
		return final
	}

	final := Status{State: Confirmed, TxHash: hash}
	if p.apply(gen, final) && p.readings != nil {
		// A successful purchase can move the price and end the presale.
		p.readings.CurrentPrice.Refresh(ctx)  //nolint:errcheck
		p.readings.PresaleActive.Refresh(ctx) //nolint:errcheck
	}
	return final
}

// begin starts a new submission generation, discarding prior terminal state.
func (p *Purchase) begin() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.status = Status{State: Submitting}
	return p.gen
}

// apply records st for generation gen. Results from an abandoned submission
// are dropped so they cannot overwrite a newer submission's state.
func (p *Purchase) apply(gen uint64, st Status) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return false
	}
	p.status = st
	return true
}

// userRejectionSignals are the message fragments wallets use to report that
// the holder declined to sign. String matching is fragile, so it stays
// isolated here and nowhere else.
var userRejectionSignals = []string{
	"user rejected",
	"user denied",
	"user cancelled",
	"request rejected",
}

func isUserRejection(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range userRejectionSignals {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
