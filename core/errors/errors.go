// Package errors collects the sentinel errors the fee-distribution core
// returns. Every error here is structural: it signals the inputs do not
// describe a legal transaction, or that the engine has diverged from one
// of its own invariants. None are retried or recovered from internally.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/genlayerlabs/fee-simulator/core/types"
)

var (
	// ErrInvalidRoundIndex signals a bond request for an odd, negative, or
	// out-of-range normal round index.
	ErrInvalidRoundIndex = stderrors.New("feesim: invalid round index for bond computation")

	// ErrLabelDispatchMiss signals a round label with no registered
	// per-label transformer; it can only arise from a bug in the labeler.
	ErrLabelDispatchMiss = stderrors.New("feesim: no fee transformer registered for round label")

	// ErrUnknownAddress signals an emission target not present in the
	// initialised address pool.
	ErrUnknownAddress = stderrors.New("feesim: address not present in initialised pool")
)

// ConservationError is returned when the sender refund computation would
// produce a negative refund (sender_cost - paid_out < 0), indicating a
// bug in a per-label transformer upstream. Per the spec's error-handling
// design, the full partial event log is carried on the error to aid
// diagnosis.
type ConservationError struct {
	SenderCost uint64
	PaidOut    uint64
	Events     []types.FeeEvent
}

func (e *ConservationError) Error() string {
	return fmt.Sprintf(
		"feesim: conservation violated: sender_cost=%d paid_out=%d (refund would be negative) over %d events",
		e.SenderCost, e.PaidOut, len(e.Events),
	)
}

// NewConservationError constructs a ConservationError carrying the full
// event log produced so far, so a caller can log the complete ledger at
// the point of failure.
func NewConservationError(senderCost, paidOut uint64, events []types.FeeEvent) *ConservationError {
	return &ConservationError{SenderCost: senderCost, PaidOut: paidOut, Events: events}
}
