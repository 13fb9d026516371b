package payment

import (
	"context"
	"sync"

	"github.com/iliyamo/vehicle-rental-reservation/internal/model"
)

// Router picks the confirmation flow matching a payment method.  It
// keeps an index from confirmation token to confirmer so callers can
// complete or dismiss by token alone.  The router itself never touches
// the reservation store; completion only fires the callback handed to
// Route.
type Router struct {
	mu         sync.Mutex
	confirmers map[model.PaymentMethod]*Confirmer
	byToken    map[string]*Confirmer
}

// NewRouter builds a router with one confirmer per supported method.
func NewRouter() *Router {
	r := &Router{
		confirmers: make(map[model.PaymentMethod]*Confirmer, 3),
		byToken:    make(map[string]*Confirmer),
	}
	for _, m := range []model.PaymentMethod{model.PayCash, model.PayCard, model.PayTransfer} {
		r.confirmers[m] = NewConfirmer(m)
	}
	return r
}

// Route opens exactly one confirmation flow for the given method.
// onComplete runs when the user confirms; it is not retried and not
// branched further.
func (r *Router) Route(method model.PaymentMethod, amount float64, code string, onComplete CompleteFunc) (Confirmation, error) {
	r.mu.Lock()
	cf, ok := r.confirmers[method]
	r.mu.Unlock()
	if !ok {
		return Confirmation{}, ErrUnknownMethod
	}
	conf, err := cf.Open(amount, code, onComplete)
	if err != nil {
		return Confirmation{}, err
	}
	r.mu.Lock()
	r.byToken[conf.Token] = cf
	r.mu.Unlock()
	return conf, nil
}

// Complete resolves the confirmation identified by token.
func (r *Router) Complete(ctx context.Context, token string) error {
	cf := r.takeToken(token)
	if cf == nil {
		return ErrUnknownConfirmation
	}
	return cf.Complete(ctx, token)
}

// Dismiss closes the confirmation identified by token without
// completing it.
func (r *Router) Dismiss(token string) error {
	cf := r.takeToken(token)
	if cf == nil {
		return ErrUnknownConfirmation
	}
	return cf.Dismiss(token)
}

func (r *Router) takeToken(token string) *Confirmer {
	r.mu.Lock()
	defer r.mu.Unlock()
	cf, ok := r.byToken[token]
	if !ok {
		return nil
	}
	delete(r.byToken, token)
	return cf
}
