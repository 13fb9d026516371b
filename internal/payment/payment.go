// Package payment routes a chosen payment method to one of three
// confirmation flows (cash, card, bank transfer).  The confirmers are
// in-process collaborators standing in for the presentation layer's
// confirmation dialogs: each opened confirmation is either completed,
// which fires its callback exactly once, or dismissed, which fires
// nothing.  No gateway is involved and there is no concept of partial
// payment, payment failure or refund.
package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/iliyamo/vehicle-rental-reservation/internal/model"
)

// ErrUnknownMethod is returned by Route for a method outside
// {cash, card, transfer}.
var ErrUnknownMethod = errors.New("unknown payment method")

// ErrUnknownConfirmation is returned when completing or dismissing a
// token that was never opened, already completed or already dismissed.
var ErrUnknownConfirmation = errors.New("unknown confirmation token")

// CompleteFunc is invoked exactly once when a confirmation completes.
// For reservation flows it finalizes the reservation.
type CompleteFunc func(ctx context.Context) error

// Confirmation describes an opened, not yet resolved confirmation.
type Confirmation struct {
	Token    string              `json:"token"`
	Method   model.PaymentMethod `json:"method"`
	Amount   float64             `json:"amount"`
	Code     string              `json:"code"`
	OpenedAt time.Time           `json:"opened_at"`
}

// Confirmer is one payment confirmation flow.  Each of the three
// supported methods gets its own instance so the flows stay independent.
type Confirmer struct {
	method  model.PaymentMethod
	mu      sync.Mutex
	pending map[string]pendingConfirmation
}

type pendingConfirmation struct {
	conf       Confirmation
	onComplete CompleteFunc
}

// NewConfirmer returns a confirmation flow for the given method.
func NewConfirmer(method model.PaymentMethod) *Confirmer {
	return &Confirmer{method: method, pending: make(map[string]pendingConfirmation)}
}

// Method returns the payment method this confirmer handles.
func (cf *Confirmer) Method() model.PaymentMethod { return cf.method }

// Open registers a confirmation for the given amount and reservation
// code and returns it.  The dialog stays open until Complete or Dismiss
// is called with its token; there is no timeout.
func (cf *Confirmer) Open(amount float64, code string, onComplete CompleteFunc) (Confirmation, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return Confirmation{}, err
	}
	conf := Confirmation{
		Token:    hex.EncodeToString(buf),
		Method:   cf.method,
		Amount:   amount,
		Code:     code,
		OpenedAt: time.Now().UTC(),
	}
	cf.mu.Lock()
	cf.pending[conf.Token] = pendingConfirmation{conf: conf, onComplete: onComplete}
	cf.mu.Unlock()
	return conf, nil
}

// Complete resolves the confirmation and fires its callback.  The entry
// is removed before the callback runs, so a second Complete with the
// same token fails with ErrUnknownConfirmation instead of firing twice.
func (cf *Confirmer) Complete(ctx context.Context, token string) error {
	cf.mu.Lock()
	p, ok := cf.pending[token]
	if ok {
		delete(cf.pending, token)
	}
	cf.mu.Unlock()
	if !ok {
		return ErrUnknownConfirmation
	}
	if p.onComplete == nil {
		return nil
	}
	return p.onComplete(ctx)
}

// Dismiss closes the confirmation without completing it.  No callback
// fires and no state transition happens anywhere; the reservation flow
// stays in its payment step.
func (cf *Confirmer) Dismiss(token string) error {
	cf.mu.Lock()
	defer cf.mu.Unlock()
	if _, ok := cf.pending[token]; !ok {
		return ErrUnknownConfirmation
	}
	delete(cf.pending, token)
	return nil
}
