package cart

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apotekhub/storefront/internal/api"
	"github.com/apotekhub/storefront/internal/models"
)

// fakeRemote records every call and fails on demand, per operation.
type fakeRemote struct {
	lines    []models.CartLine
	cartErr  error
	updates  []string // "productID:delta"
	updErr   error
	removed  []int64
	rmErr    error
	checkout []api.CheckoutInput
	coErr    error
}

func (f *fakeRemote) Cart(ctx context.Context) ([]models.CartLine, error) {
	if f.cartErr != nil {
		return nil, f.cartErr
	}
	out := make([]models.CartLine, len(f.lines))
	copy(out, f.lines)
	return out, nil
}

func (f *fakeRemote) UpdateCartQuantity(ctx context.Context, productID int64, delta int) error {
	f.updates = append(f.updates, fmt.Sprintf("%d:%d", productID, delta))
	return f.updErr
}

func (f *fakeRemote) RemoveFromCart(ctx context.Context, productID int64) error {
	f.removed = append(f.removed, productID)
	return f.rmErr
}

func (f *fakeRemote) Checkout(ctx context.Context, in api.CheckoutInput) error {
	f.checkout = append(f.checkout, in)
	return f.coErr
}

func twoLines() []models.CartLine {
	return []models.CartLine{
		{ProductID: 1, Quantity: 2, UnitPrice: 15000},
		{ProductID: 2, Quantity: 1, UnitPrice: 40000},
	}
}

func loaded(t *testing.T, remote *fakeRemote) *Reconciler {
	t.Helper()
	r := New(remote, nil)
	require.NoError(t, r.Load(context.Background()))
	require.Equal(t, Ready, r.State())
	return r
}

func validForm() CheckoutForm {
	return CheckoutForm{
		Address:     "Jl. Melati 5",
		PostCode:    "40115",
		PhoneNumber: "0812000111",
		City:        "Bandung",
		ProofName:   "proof.jpg",
		Proof:       []byte{0xff, 0xd8},
	}
}

func TestLoad(t *testing.T) {
	t.Run("fetch populates mirror and total", func(t *testing.T) {
		r := loaded(t, &fakeRemote{lines: twoLines()})
		assert.Len(t, r.Lines(), 2)
		assert.Equal(t, int64(2*15000+40000), r.Total())
	})

	t.Run("fetch failure degrades to empty ready mirror", func(t *testing.T) {
		r := New(&fakeRemote{cartErr: api.ErrUnavailable}, nil)
		err := r.Load(context.Background())
		assert.ErrorIs(t, err, api.ErrUnavailable)
		assert.Equal(t, Ready, r.State())
		assert.Empty(t, r.Lines())
		assert.Zero(t, r.Total())
	})
}

func TestIncreaseQuantity(t *testing.T) {
	t.Run("bumps line and submits delta", func(t *testing.T) {
		remote := &fakeRemote{lines: twoLines()}
		r := loaded(t, remote)

		assert.True(t, r.IncreaseQuantity(context.Background(), 1))
		assert.Equal(t, 3, r.Lines()[0].Quantity)
		assert.Equal(t, int64(3*15000+40000), r.Total())
		assert.Equal(t, []string{"1:1"}, remote.updates)
	})

	t.Run("remote failure keeps local mutation", func(t *testing.T) {
		remote := &fakeRemote{lines: twoLines(), updErr: api.ErrUnavailable}
		r := loaded(t, remote)

		assert.True(t, r.IncreaseQuantity(context.Background(), 1))
		assert.Equal(t, 3, r.Lines()[0].Quantity)
		assert.Equal(t, int64(3*15000+40000), r.Total())
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		remote := &fakeRemote{lines: twoLines()}
		r := loaded(t, remote)

		assert.False(t, r.IncreaseQuantity(context.Background(), 99))
		assert.Empty(t, remote.updates)
	})
}

func TestDecreaseQuantity(t *testing.T) {
	t.Run("lowers line and submits delta", func(t *testing.T) {
		remote := &fakeRemote{lines: twoLines()}
		r := loaded(t, remote)

		assert.True(t, r.DecreaseQuantity(context.Background(), 1))
		assert.Equal(t, 1, r.Lines()[0].Quantity)
		assert.Equal(t, int64(15000+40000), r.Total())
		assert.Equal(t, []string{"1:-1"}, remote.updates)
	})

	t.Run("line at quantity one is untouched, no remote call", func(t *testing.T) {
		remote := &fakeRemote{lines: twoLines()}
		r := loaded(t, remote)

		assert.False(t, r.DecreaseQuantity(context.Background(), 2))
		assert.Equal(t, 1, r.Lines()[1].Quantity)
		assert.Empty(t, remote.updates)
		// Has lets the caller tell this apart from a missing line.
		assert.True(t, r.Has(2))
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		remote := &fakeRemote{lines: twoLines()}
		r := loaded(t, remote)

		assert.False(t, r.DecreaseQuantity(context.Background(), 99))
		assert.False(t, r.Has(99))
		assert.Empty(t, remote.updates)
	})
}

func TestQuantityRoundTrip(t *testing.T) {
	remote := &fakeRemote{lines: []models.CartLine{{ProductID: 7, Quantity: 2, UnitPrice: 15000}}}
	r := loaded(t, remote)
	ctx := context.Background()

	assert.Equal(t, int64(30000), r.Total())
	r.IncreaseQuantity(ctx, 7)
	assert.Equal(t, int64(45000), r.Total())
	r.DecreaseQuantity(ctx, 7)
	assert.Equal(t, int64(30000), r.Total())
}

func TestRemove(t *testing.T) {
	t.Run("confirms remotely then splices line", func(t *testing.T) {
		remote := &fakeRemote{lines: twoLines()}
		r := loaded(t, remote)

		require.NoError(t, r.Remove(context.Background(), 1))
		assert.Equal(t, []int64{1}, remote.removed)
		require.Len(t, r.Lines(), 1)
		assert.Equal(t, int64(2), r.Lines()[0].ProductID)
		assert.Equal(t, int64(40000), r.Total())
	})

	t.Run("remote failure leaves mirror unchanged", func(t *testing.T) {
		remote := &fakeRemote{lines: twoLines(), rmErr: api.ErrServer}
		r := loaded(t, remote)

		assert.ErrorIs(t, r.Remove(context.Background(), 1), api.ErrServer)
		assert.Len(t, r.Lines(), 2)
		assert.Equal(t, int64(2*15000+40000), r.Total())
	})

	t.Run("unknown product reports not found without remote call", func(t *testing.T) {
		remote := &fakeRemote{lines: twoLines()}
		r := loaded(t, remote)

		assert.ErrorIs(t, r.Remove(context.Background(), 99), api.ErrNotFound)
		assert.Empty(t, remote.removed)
	})
}

func TestCheckout(t *testing.T) {
	t.Run("missing fields block before any network call", func(t *testing.T) {
		remote := &fakeRemote{lines: twoLines()}
		r := loaded(t, remote)

		err := r.Checkout(context.Background(), CheckoutForm{Address: "Jl. Melati 5"})
		var ve *api.ValidationError
		require.ErrorAs(t, err, &ve)
		for _, f := range []string{"post_code", "phone_number", "city", "proof"} {
			assert.Contains(t, ve.Errors, f)
		}
		assert.NotContains(t, ve.Errors, "address")
		assert.Empty(t, remote.checkout)
		assert.Len(t, r.Lines(), 2)
	})

	t.Run("success submits form and clears mirror", func(t *testing.T) {
		remote := &fakeRemote{lines: twoLines()}
		r := loaded(t, remote)

		require.NoError(t, r.Checkout(context.Background(), validForm()))
		require.Len(t, remote.checkout, 1)
		in := remote.checkout[0]
		assert.Equal(t, "Jl. Melati 5", in.Address)
		assert.Equal(t, "proof.jpg", in.ProofName)
		assert.NotNil(t, in.Proof)
		assert.Empty(t, r.Lines())
		assert.Zero(t, r.Total())
		assert.False(t, r.CheckoutInFlight())
	})

	t.Run("rejected submission leaves mirror intact", func(t *testing.T) {
		remote := &fakeRemote{
			lines: twoLines(),
			coErr: &api.ValidationError{Errors: map[string][]string{"proof": {"The proof must be an image."}}},
		}
		r := loaded(t, remote)

		err := r.Checkout(context.Background(), validForm())
		var ve *api.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Len(t, r.Lines(), 2)
		assert.False(t, r.CheckoutInFlight())
	})

	t.Run("in-flight guard rejects concurrent submission", func(t *testing.T) {
		r := loaded(t, &fakeRemote{lines: twoLines()})
		r.inCheckout = true
		assert.ErrorIs(t, r.Checkout(context.Background(), validForm()), api.ErrUnavailable)
	})
}

func TestLinesIsACopy(t *testing.T) {
	r := loaded(t, &fakeRemote{lines: twoLines()})
	lines := r.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 2, r.Lines()[0].Quantity)
}

func TestSubmitPolicies(t *testing.T) {
	r := New(&fakeRemote{}, nil)
	boom := errors.New("boom")

	assert.NoError(t, r.submit(context.Background(), FailureIgnored, "op", func(context.Context) error { return boom }))
	assert.ErrorIs(t, r.submit(context.Background(), FailureSurfaced, "op", func(context.Context) error { return boom }), boom)
}
