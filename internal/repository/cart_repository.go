package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartcore/internal/db"
	"github.com/nikolayk812/cartcore/internal/domain"
	"github.com/nikolayk812/cartcore/internal/port"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q  *db.Queries
	tx pgx.Tx
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q: db.New(pool),
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:  db.New(tx),
		tx: tx,
	}
}

type cartStore struct {
	pool *pgxpool.Pool
}

func NewCartStore(pool *pgxpool.Pool) port.CartStore {
	return &cartStore{pool: pool}
}

func (s *cartStore) WithinTx(ctx context.Context, fn func(repo port.CartRepository) error) error {
	_, err := withTx(ctx, s.pool, func(tx pgx.Tx) (struct{}, error) {
		return struct{}{}, fn(NewCartWithTx(tx))
	})
	return err
}

func (r *cartRepository) GetCart(ctx context.Context, cartID uuid.UUID) (domain.Cart, bool, error) {
	row, err := r.q.GetCart(ctx, cartID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Cart{}, false, nil
	}
	if err != nil {
		return domain.Cart{}, false, fmt.Errorf("q.GetCart: %w", err)
	}

	return r.loadItems(ctx, row)
}

func (r *cartRepository) GetActiveCart(ctx context.Context, storeID uuid.UUID, owner domain.Actor) (domain.Cart, bool, error) {
	return r.GetCartByStatus(ctx, storeID, owner, domain.CartStatusActive)
}

func (r *cartRepository) GetCartByStatus(ctx context.Context, storeID uuid.UUID, owner domain.Actor, status domain.CartStatus) (domain.Cart, bool, error) {
	if owner.IsZero() {
		return domain.Cart{}, false, fmt.Errorf("owner is empty")
	}

	var (
		row db.Cart
		err error
	)

	userID, guestID := owner.Columns()
	switch owner.Kind() {
	case domain.ActorUser:
		row, err = r.q.GetCartByUser(ctx, db.GetCartByUserParams{
			StoreID: storeID,
			UserID:  userID,
			Status:  string(status),
		})
	case domain.ActorGuest:
		row, err = r.q.GetCartByGuest(ctx, db.GetCartByGuestParams{
			StoreID: storeID,
			GuestID: guestID,
			Status:  string(status),
		})
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Cart{}, false, nil
	}
	if err != nil {
		return domain.Cart{}, false, fmt.Errorf("q.GetCartBy%s: %w", owner.Kind(), err)
	}

	return r.loadItems(ctx, row)
}

func (r *cartRepository) CreateCart(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if cart.Owner.IsZero() {
		return domain.Cart{}, fmt.Errorf("owner is empty")
	}

	userID, guestID := cart.Owner.Columns()

	var row db.Cart
	err := withSavepoint(ctx, r.tx, r.q, func(q *db.Queries) (err error) {
		row, err = q.CreateCart(ctx, db.CreateCartParams{
			ID:        cart.ID,
			StoreID:   cart.StoreID,
			UserID:    userID,
			GuestID:   guestID,
			Status:    string(cart.Status),
			CreatedAt: cart.CreatedAt,
		})
		return err
	})
	if isUniqueViolation(err) {
		return domain.Cart{}, fmt.Errorf("q.CreateCart: %w", domain.ErrDuplicate)
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.CreateCart: %w", err)
	}

	return mapCartRowToDomain(row, nil)
}

func (r *cartRepository) SetOwner(ctx context.Context, cartID uuid.UUID, owner domain.Actor, at time.Time) error {
	if owner.IsZero() {
		return fmt.Errorf("owner is empty")
	}

	userID, guestID := owner.Columns()

	var rowsAffected int64
	err := withSavepoint(ctx, r.tx, r.q, func(q *db.Queries) (err error) {
		rowsAffected, err = q.SetCartOwner(ctx, db.SetCartOwnerParams{
			ID:        cartID,
			UserID:    userID,
			GuestID:   guestID,
			UpdatedAt: at,
		})
		return err
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("q.SetCartOwner: %w", domain.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("q.SetCartOwner: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("cart[%s]: %w", cartID, domain.ErrCartNotFound)
	}

	return nil
}

func (r *cartRepository) SetStatus(ctx context.Context, cartID uuid.UUID, from, to domain.CartStatus, at time.Time) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}

	rowsAffected, err := r.q.SetCartStatus(ctx, db.SetCartStatusParams{
		ToStatus:   string(to),
		UpdatedAt:  at,
		ID:         cartID,
		FromStatus: string(from),
	})
	if err != nil {
		return fmt.Errorf("q.SetCartStatus: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("cart[%s] is not %s: %w", cartID, from, domain.ErrInvalidTransition)
	}

	return nil
}

func (r *cartRepository) Touch(ctx context.Context, cartID uuid.UUID, at time.Time) error {
	if err := r.q.TouchCart(ctx, db.TouchCartParams{ID: cartID, UpdatedAt: at}); err != nil {
		return fmt.Errorf("q.TouchCart: %w", err)
	}
	return nil
}

func (r *cartRepository) GetLine(ctx context.Context, cartID, productID uuid.UUID, variantID uuid.NullUUID) (domain.CartItem, bool, error) {
	row, err := r.q.GetCartLine(ctx, db.GetCartLineParams{
		CartID:    cartID,
		ProductID: productID,
		VariantID: variantID,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartItem{}, false, nil
	}
	if err != nil {
		return domain.CartItem{}, false, fmt.Errorf("q.GetCartLine: %w", err)
	}

	item, err := mapCartItemRowToDomain(row)
	if err != nil {
		return domain.CartItem{}, false, fmt.Errorf("mapCartItemRowToDomain: %w", err)
	}

	return item, true, nil
}

func (r *cartRepository) GetItem(ctx context.Context, cartID, itemID uuid.UUID) (domain.CartItem, bool, error) {
	row, err := r.q.GetCartItem(ctx, db.GetCartItemParams{CartID: cartID, ID: itemID})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartItem{}, false, nil
	}
	if err != nil {
		return domain.CartItem{}, false, fmt.Errorf("q.GetCartItem: %w", err)
	}

	item, err := mapCartItemRowToDomain(row)
	if err != nil {
		return domain.CartItem{}, false, fmt.Errorf("mapCartItemRowToDomain: %w", err)
	}

	return item, true, nil
}

func (r *cartRepository) InsertItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	if item.Quantity < 1 {
		return domain.CartItem{}, fmt.Errorf("quantity[%d]: %w", item.Quantity, domain.ErrInvalidQuantity)
	}

	var row db.CartItem
	err := withSavepoint(ctx, r.tx, r.q, func(q *db.Queries) (err error) {
		row, err = q.InsertCartItem(ctx, db.InsertCartItemParams{
			ID:            item.ID,
			CartID:        item.CartID,
			ProductID:     item.ProductID,
			VariantID:     item.VariantID,
			Quantity:      int32(item.Quantity),
			PriceAmount:   item.Price.Amount,
			PriceCurrency: item.Price.Currency.String(),
			ProductName:   item.Snapshot.Name,
			VariantSku:    nullString(item.Snapshot.SKU),
			VariantSize:   nullString(item.Snapshot.Size),
			VariantColor:  nullString(item.Snapshot.Color),
			ImageUrl:      nullString(item.Snapshot.ImageURL),
			CreatedAt:     item.CreatedAt,
		})
		return err
	})
	if isUniqueViolation(err) {
		return domain.CartItem{}, fmt.Errorf("q.InsertCartItem: %w", domain.ErrDuplicate)
	}
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("q.InsertCartItem: %w", err)
	}

	inserted, err := mapCartItemRowToDomain(row)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("mapCartItemRowToDomain: %w", err)
	}

	return inserted, nil
}

func (r *cartRepository) UpdateItem(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	if item.Quantity < 1 {
		return domain.CartItem{}, fmt.Errorf("quantity[%d]: %w", item.Quantity, domain.ErrInvalidQuantity)
	}

	row, err := r.q.UpdateCartItem(ctx, db.UpdateCartItemParams{
		ID:            item.ID,
		Quantity:      int32(item.Quantity),
		PriceAmount:   item.Price.Amount,
		PriceCurrency: item.Price.Currency.String(),
		ProductName:   item.Snapshot.Name,
		VariantSku:    nullString(item.Snapshot.SKU),
		VariantSize:   nullString(item.Snapshot.Size),
		VariantColor:  nullString(item.Snapshot.Color),
		ImageUrl:      nullString(item.Snapshot.ImageURL),
		UpdatedAt:     item.UpdatedAt,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartItem{}, fmt.Errorf("item[%s]: %w", item.ID, domain.ErrItemNotFound)
	}
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("q.UpdateCartItem: %w", err)
	}

	updated, err := mapCartItemRowToDomain(row)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("mapCartItemRowToDomain: %w", err)
	}

	return updated, nil
}

func (r *cartRepository) MoveItem(ctx context.Context, itemID, fromCartID, toCartID uuid.UUID, at time.Time) error {
	rowsAffected, err := r.q.MoveCartItem(ctx, db.MoveCartItemParams{
		ToCartID:   toCartID,
		UpdatedAt:  at,
		ID:         itemID,
		FromCartID: fromCartID,
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("q.MoveCartItem: %w", domain.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("q.MoveCartItem: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("item[%s]: %w", itemID, domain.ErrItemNotFound)
	}

	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error) {
	rowsAffected, err := r.q.DeleteCartItem(ctx, db.DeleteCartItemParams{
		CartID: cartID,
		ID:     itemID,
	})
	if err != nil {
		return false, fmt.Errorf("q.DeleteCartItem: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) loadItems(ctx context.Context, row db.Cart) (domain.Cart, bool, error) {
	itemRows, err := r.q.ListCartItems(ctx, row.ID)
	if err != nil {
		return domain.Cart{}, false, fmt.Errorf("q.ListCartItems: %w", err)
	}

	cart, err := mapCartRowToDomain(row, itemRows)
	if err != nil {
		return domain.Cart{}, false, fmt.Errorf("mapCartRowToDomain: %w", err)
	}

	return cart, true, nil
}

func mapCartRowToDomain(row db.Cart, itemRows []db.CartItem) (domain.Cart, error) {
	owner, err := domain.ActorFromColumns(row.UserID, row.GuestID)
	if err != nil {
		return domain.Cart{}, err
	}

	status, err := domain.ParseCartStatus(row.Status)
	if err != nil {
		return domain.Cart{}, err
	}

	items, err := mapCartItemRowsToDomain(itemRows)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapCartItemRowsToDomain: %w", err)
	}

	return domain.Cart{
		ID:        row.ID,
		StoreID:   row.StoreID,
		Owner:     owner,
		Status:    status,
		Items:     items,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func mapCartItemRowToDomain(row db.CartItem) (domain.CartItem, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.CartItem{
		ID:        row.ID,
		CartID:    row.CartID,
		ProductID: row.ProductID,
		VariantID: row.VariantID,
		Quantity:  int(row.Quantity),
		Price:     domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Snapshot: domain.ItemSnapshot{
			Name:     row.ProductName,
			SKU:      deref(row.VariantSku),
			Size:     deref(row.VariantSize),
			Color:    deref(row.VariantColor),
			ImageURL: deref(row.ImageUrl),
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func mapCartItemRowsToDomain(rows []db.CartItem) ([]domain.CartItem, error) {
	var items []domain.CartItem

	for _, row := range rows {
		item, err := mapCartItemRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapCartItemRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
