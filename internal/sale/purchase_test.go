package sale

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salefront/salefront/internal/chain"
)

// fakeSubmitter returns a fresh hash per call, or a fixed error.
type fakeSubmitter struct {
	mu     sync.Mutex
	err    error
	n      int
	values []*big.Int
}

func (f *fakeSubmitter) Send(_ context.Context, _ string, value *big.Int, _ ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.n++
	f.values = append(f.values, new(big.Int).Set(value))
	return fmt.Sprintf("0xhash%d", f.n), nil
}

// fakeWaiter resolves receipts per hash. A hash with a gate channel blocks
// until the gate is closed, which lets tests force out-of-order resolution.
type fakeWaiter struct {
	mu      sync.Mutex
	errs    map[string]error
	gates   map[string]chan struct{}
	entered map[string]chan struct{}
}

func newFakeWaiter() *fakeWaiter {
	return &fakeWaiter{
		errs:    map[string]error{},
		gates:   map[string]chan struct{}{},
		entered: map[string]chan struct{}{},
	}
}

func (f *fakeWaiter) gate(hash string) (gate, entered chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gates[hash] = make(chan struct{})
	f.entered[hash] = make(chan struct{})
	return f.gates[hash], f.entered[hash]
}

func (f *fakeWaiter) WaitForReceipt(_ context.Context, hash string, _ time.Duration) (*chain.Receipt, error) {
	f.mu.Lock()
	gate := f.gates[hash]
	entered := f.entered[hash]
	err := f.errs[hash]
	f.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return &chain.Receipt{Hash: hash, Status: 1}, nil
}

func newTestPurchase(sub Submitter, w ConfirmationWaiter, r *Readings) *Purchase {
	p := NewPurchase(sub, w, r)
	p.SetPollInterval(time.Millisecond)
	return p
}

func TestSubmitHappyPath(t *testing.T) {
	sub := &fakeSubmitter{}
	p := newTestPurchase(sub, newFakeWaiter(), nil)

	st := p.Submit(context.Background(), "0.001")
	assert.Equal(t, Confirmed, st.State)
	assert.Equal(t, "0xhash1", st.TxHash)
	assert.NoError(t, st.Err)

	// The payable value is the user-entered amount, converted exactly.
	require.Len(t, sub.values, 1)
	assert.Equal(t, "1000000000000000", sub.values[0].String())
}

func TestSubmitRejectsMalformedPayment(t *testing.T) {
	for _, payment := range []string{"", "0", "abc", "-1", "0.0"} {
		st := newTestPurchase(&fakeSubmitter{}, newFakeWaiter(), nil).Submit(context.Background(), payment)
		assert.Equal(t, Failed, st.State, "payment %q", payment)
		assert.ErrorIs(t, st.Err, ErrInvalidPayment)
	}
}

// A wallet-holder rejection is a silent abort, never a failure.
func TestSubmitUserRejectionIsCancelledNotFailed(t *testing.T) {
	rejections := []string{
		"User rejected the request.",
		"MetaMask Tx Signature: User denied transaction signature",
		"request rejected by user",
	}
	for _, msg := range rejections {
		sub := &fakeSubmitter{err: errors.New(msg)}
		st := newTestPurchase(sub, newFakeWaiter(), nil).Submit(context.Background(), "1")

		assert.Equal(t, CancelledByUser, st.State, msg)
		assert.NotEqual(t, Failed, st.State)
		assert.NoError(t, st.Err, "cancellation carries no user-visible error")
	}
}

func TestSubmitOtherSigningErrorIsFailed(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("insufficient funds for gas")}
	st := newTestPurchase(sub, newFakeWaiter(), nil).Submit(context.Background(), "1")

	assert.Equal(t, Failed, st.State)
	require.Error(t, st.Err)
	assert.Contains(t, st.Err.Error(), "signing failed")
}

func TestSubmitConfirmationFailure(t *testing.T) {
	w := newFakeWaiter()
	w.errs["0xhash1"] = errors.New("transaction reverted")

	st := newTestPurchase(&fakeSubmitter{}, w, nil).Submit(context.Background(), "1")
	assert.Equal(t, Failed, st.State)
	assert.Equal(t, "0xhash1", st.TxHash)
	assert.Contains(t, st.Err.Error(), "confirmation failed")
}

// Confirmation refreshes the price and presale-flag bindings: a successful
// purchase can cross a price tier or end the presale.
func TestConfirmedRefreshesPriceBindings(t *testing.T) {
	reader := newFakeReader()
	readings := NewReadings(reader)

	p := newTestPurchase(&fakeSubmitter{}, newFakeWaiter(), readings)
	st := p.Submit(context.Background(), "1")
	require.Equal(t, Confirmed, st.State)

	assert.Equal(t, 1, reader.calls["getCurrentPrice"])
	assert.Equal(t, 1, reader.calls["presaleActive"])
	assert.Zero(t, reader.calls["normalPrice"], "unrelated bindings stay untouched")
}

// A stale in-flight submission must not overwrite a newer submission's
// state, even when the two resolve out of order.
func TestOverlappingSubmissionsResolveOutOfOrder(t *testing.T) {
	sub := &fakeSubmitter{}
	w := newFakeWaiter()
	gate1, entered1 := w.gate("0xhash1")
	w.errs["0xhash1"] = errors.New("stale submission reverted")

	p := newTestPurchase(sub, w, nil)

	first := make(chan Status, 1)
	go func() { first <- p.Submit(context.Background(), "1") }()

	// First submission is now pending confirmation.
	<-entered1
	assert.Equal(t, AwaitingConfirmation, p.Status().State)

	// Second submission runs to completion while the first is stuck.
	st2 := p.Submit(context.Background(), "2")
	require.Equal(t, Confirmed, st2.State)
	require.Equal(t, "0xhash2", st2.TxHash)

	// Now let the abandoned first submission fail.
	close(gate1)
	st1 := <-first
	assert.Equal(t, Failed, st1.State, "the caller of the stale submit still sees its own outcome")

	// The shared snapshot belongs to the newer submission, untouched.
	assert.Equal(t, Confirmed, p.Status().State)
	assert.Equal(t, "0xhash2", p.Status().TxHash)
}

func TestStateStringAndTerminal(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "cancelled", CancelledByUser.String())
	assert.False(t, Submitting.Terminal())
	assert.False(t, AwaitingConfirmation.Terminal())
	assert.True(t, Confirmed.Terminal())
	assert.True(t, Failed.Terminal())
	assert.True(t, CancelledByUser.Terminal())
}

func TestIsUserRejection(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"metamask denied", errors.New("MetaMask Tx Signature: User denied transaction signature"), true},
		{"viem rejected", errors.New("User rejected the request."), true},
		{"uppercase", errors.New("USER REJECTED"), true},
		{"gas error", errors.New("insufficient funds for gas"), false},
		{"nonce error", errors.New("nonce too low"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isUserRejection(tt.err))
		})
	}
}
