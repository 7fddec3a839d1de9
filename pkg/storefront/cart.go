package storefront

import (
	"context"
	"sync"

	"freshcart/internal/models"
)

// CartStore is a cart regardless of where it lives. Signed-in sessions keep
// their cart on the server; guests keep it in process memory.
type CartStore interface {
	Items(ctx context.Context) ([]models.CartItem, error)
	Add(ctx context.Context, productID string, quantity int) error
	SetQuantity(ctx context.Context, productID string, quantity int) error
	Remove(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
}

// NewCartStore picks the cart backing for session: the server cart when the
// client carries a token, a local cart otherwise.
func NewCartStore(session *Client) CartStore {
	if session != nil && session.Authenticated() {
		return &RemoteCart{client: session}
	}
	return NewLocalCart()
}

// RemoteCart is the server cart of an authenticated session.
type RemoteCart struct {
	client *Client
}

func (r *RemoteCart) Items(ctx context.Context) ([]models.CartItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	view, err := r.client.Cart()
	if err != nil {
		return nil, err
	}
	items := make([]models.CartItem, 0, len(view.Items))
	for _, line := range view.Items {
		items = append(items, models.CartItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return items, nil
}

func (r *RemoteCart) Add(ctx context.Context, productID string, quantity int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.client.AddToCart(productID, quantity)
	return err
}

func (r *RemoteCart) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.client.UpdateCartItem(productID, quantity)
	return err
}

func (r *RemoteCart) Remove(ctx context.Context, productID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.client.RemoveFromCart(productID)
	return err
}

func (r *RemoteCart) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.client.ClearCart()
}

// LocalCart is a guest cart held in memory. It applies the same line rules
// as the server cart.
type LocalCart struct {
	mu   sync.Mutex
	cart *models.Cart
}

func NewLocalCart() *LocalCart {
	return &LocalCart{cart: models.NewCart("")}
}

func (l *LocalCart) Items(context.Context) ([]models.CartItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.CartItem{}, l.cart.Items...), nil
}

func (l *LocalCart) Add(_ context.Context, productID string, quantity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cart.AddItem(productID, quantity)
}

func (l *LocalCart) SetQuantity(_ context.Context, productID string, quantity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cart.SetQuantity(productID, quantity)
}

func (l *LocalCart) Remove(_ context.Context, productID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cart.RemoveItem(productID)
	return nil
}

func (l *LocalCart) Clear(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cart.Clear()
	return nil
}

// MergeCart adds every line of src to dst and clears src. It is used to move
// a guest cart onto the server after sign-in.
func MergeCart(ctx context.Context, dst, src CartStore) error {
	items, err := src.Items(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := dst.Add(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return src.Clear(ctx)
}
