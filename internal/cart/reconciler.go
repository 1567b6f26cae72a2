// Package cart maintains a local, low-latency mirror of the remote cart.
// The backend stays the source of truth; each operation declares its own
// consistency contract. Quantity nudges mutate the mirror first and treat
// remote failure as an observability event only; removal and checkout
// confirm against the backend before touching local state.
package cart

import (
	"bytes"
	"context"

	"github.com/apotekhub/storefront/internal/api"
	"github.com/apotekhub/storefront/internal/logging"
	"github.com/apotekhub/storefront/internal/models"
)

// MirrorState tracks the fetch lifecycle of one mounted cart view.
type MirrorState int

const (
	Uninitialized MirrorState = iota
	Syncing
	Ready
)

// FailurePolicy decides what a failed remote submission does to the local
// mutation that preceded it.
type FailurePolicy int

const (
	// FailureIgnored keeps the local mutation and only logs the failure.
	// Local and remote state may diverge briefly; the next fetch is the
	// eventual-consistency backstop.
	FailureIgnored FailurePolicy = iota

	// FailureSurfaced returns the error to the caller; the caller must not
	// have applied the local mutation yet.
	FailureSurfaced
)

// Remote is the slice of the backend API the reconciler needs.
type Remote interface {
	Cart(ctx context.Context) ([]models.CartLine, error)
	UpdateCartQuantity(ctx context.Context, productID int64, delta int) error
	RemoveFromCart(ctx context.Context, productID int64) error
	Checkout(ctx context.Context, in api.CheckoutInput) error
}

// CheckoutForm carries the shipping fields and the proof-of-payment
// attachment. All fields except Notes are required.
type CheckoutForm struct {
	Address     string
	PostCode    string
	PhoneNumber string
	City        string
	Notes       string
	ProofName   string
	Proof       []byte
}

// Reconciler is the cart mirror plus its mutation protocol. It is owned by
// a single mounted cart view and, like all view state, is driven from one
// goroutine; it is not safe for concurrent use.
type Reconciler struct {
	remote Remote
	log    logging.Logger

	state      MirrorState
	lines      []models.CartLine
	total      int64
	inCheckout bool
}

func New(remote Remote, log logging.Logger) *Reconciler {
	if log == nil {
		log = logging.Nop()
	}
	return &Reconciler{remote: remote, log: log, state: Uninitialized}
}

// Load performs the authoritative fetch on view mount. A fetch failure
// degrades to an empty Ready mirror rather than blocking the view; the
// error is returned for display but the mirror is usable either way.
func (r *Reconciler) Load(ctx context.Context) error {
	r.state = Syncing
	lines, err := r.remote.Cart(ctx)
	if err != nil {
		r.log.Warn(ctx, "cart fetch failed, showing empty cart", "error", err)
		lines = nil
	}
	r.lines = lines
	r.state = Ready
	r.recompute()
	return err
}

func (r *Reconciler) State() MirrorState { return r.state }

// Lines returns a copy of the mirrored line set.
func (r *Reconciler) Lines() []models.CartLine {
	out := make([]models.CartLine, len(r.lines))
	copy(out, r.lines)
	return out
}

// Total is the derived sum of quantity times unit price over all lines.
// It is recomputed from the line set after every mutation, never mutated
// independently.
func (r *Reconciler) Total() int64 { return r.total }

func (r *Reconciler) recompute() {
	var total int64
	for _, l := range r.lines {
		total += l.Subtotal()
	}
	r.total = total
}

// Has reports whether the mirror holds a line for the product.
func (r *Reconciler) Has(productID int64) bool {
	return r.find(productID) >= 0
}

func (r *Reconciler) find(productID int64) int {
	for i := range r.lines {
		if r.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// IncreaseQuantity bumps the line's quantity optimistically, then submits
// a +1 delta to the backend. Returns false when no line matches.
func (r *Reconciler) IncreaseQuantity(ctx context.Context, productID int64) bool {
	i := r.find(productID)
	if i < 0 {
		return false
	}
	r.lines[i].Quantity++
	r.recompute()

	_ = r.submit(ctx, FailureIgnored, "increase", func(ctx context.Context) error {
		return r.remote.UpdateCartQuantity(ctx, productID, 1)
	})
	return true
}

// DecreaseQuantity lowers the line's quantity optimistically and submits a
// -1 delta. A line at quantity 1 is left untouched and no remote call is
// issued; removal requires an explicit Remove. Returns false when nothing
// changed.
func (r *Reconciler) DecreaseQuantity(ctx context.Context, productID int64) bool {
	i := r.find(productID)
	if i < 0 || r.lines[i].Quantity <= 1 {
		return false
	}
	r.lines[i].Quantity--
	r.recompute()

	_ = r.submit(ctx, FailureIgnored, "decrease", func(ctx context.Context) error {
		return r.remote.UpdateCartQuantity(ctx, productID, -1)
	})
	return true
}

// Remove deletes a line. Unlike quantity nudges this confirms against the
// backend first: an erroneous removal is harder for a user to notice and
// undo than a one-unit quantity drift. On failure the mirror is unchanged.
func (r *Reconciler) Remove(ctx context.Context, productID int64) error {
	i := r.find(productID)
	if i < 0 {
		return api.ErrNotFound
	}
	err := r.submit(ctx, FailureSurfaced, "remove", func(ctx context.Context) error {
		return r.remote.RemoveFromCart(ctx, productID)
	})
	if err != nil {
		return err
	}
	r.lines = append(r.lines[:i], r.lines[i+1:]...)
	r.recompute()
	return nil
}

// Checkout validates required fields locally, then submits the multipart
// order. On success the mirror is cleared; a validation failure or any
// other error leaves both the mirror and the form untouched so the user
// can correct and resubmit. This is the only operation with an in-flight
// guard: it is destructive and remote-authoritative, so the user waits.
func (r *Reconciler) Checkout(ctx context.Context, form CheckoutForm) error {
	if ve := form.missingFields(); ve != nil {
		return ve
	}
	if r.inCheckout {
		return api.ErrUnavailable
	}
	r.inCheckout = true
	defer func() { r.inCheckout = false }()

	in := api.CheckoutInput{
		Address:     form.Address,
		PostCode:    form.PostCode,
		PhoneNumber: form.PhoneNumber,
		City:        form.City,
		Notes:       form.Notes,
		ProofName:   form.ProofName,
	}
	if len(form.Proof) > 0 {
		in.Proof = bytes.NewReader(form.Proof)
	}

	err := r.submit(ctx, FailureSurfaced, "checkout", func(ctx context.Context) error {
		return r.remote.Checkout(ctx, in)
	})
	if err != nil {
		return err
	}

	r.lines = nil
	r.recompute()
	return nil
}

// CheckoutInFlight reports whether a checkout submission is running, so the
// view can disable resubmission.
func (r *Reconciler) CheckoutInFlight() bool { return r.inCheckout }

// submit is the remote half of the two-phase mutation protocol. With
// FailureIgnored the error is demoted to a warning log; completions are
// never used to overwrite local quantities, which avoids a stale response
// clobbering fresher local state.
func (r *Reconciler) submit(ctx context.Context, policy FailurePolicy, op string, fn func(context.Context) error) error {
	err := fn(ctx)
	if err == nil {
		return nil
	}
	if policy == FailureIgnored {
		r.log.Warn(ctx, "cart sync failed", "op", op, "error", err)
		return nil
	}
	return err
}

func (f CheckoutForm) missingFields() *api.ValidationError {
	var missing []string
	if f.Address == "" {
		missing = append(missing, "address")
	}
	if f.PostCode == "" {
		missing = append(missing, "post_code")
	}
	if f.PhoneNumber == "" {
		missing = append(missing, "phone_number")
	}
	if f.City == "" {
		missing = append(missing, "city")
	}
	if len(f.Proof) == 0 {
		missing = append(missing, "proof")
	}
	if len(missing) == 0 {
		return nil
	}
	return api.RequiredError(missing...)
}
