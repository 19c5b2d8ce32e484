package cart_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_catalog.up.sql",
			"../migrations/02_carts.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

var mxn = currency.MustParseISO("MXN")

func mxnMoney(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), Currency: mxn}
}

// fakeCatalog is an in-memory catalog keyed by product and variant id.
type fakeCatalog struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
	variants map[uuid.UUID]domain.Variant
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: make(map[uuid.UUID]domain.Product),
		variants: make(map[uuid.UUID]domain.Variant),
	}
}

func (c *fakeCatalog) addProduct(storeID uuid.UUID, name, price string) domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := domain.Product{
		ID:           uuid.New(),
		StoreID:      storeID,
		Name:         name,
		Active:       true,
		BasePrice:    mxnMoney(price),
		MainImageURL: "https://cdn.example/" + name + ".png",
	}
	c.products[p.ID] = p
	return p
}

func (c *fakeCatalog) addVariant(productID uuid.UUID, sku, delta string, stock int) domain.Variant {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.products[productID]
	p.HasVariants = true
	c.products[productID] = p

	v := domain.Variant{
		ID:         uuid.New(),
		ProductID:  productID,
		PriceDelta: mxnMoney(delta),
		Stock:      stock,
		SKU:        sku,
		Size:       "M",
		Color:      "black",
	}
	c.variants[v.ID] = v
	return v
}

func (c *fakeCatalog) update(productID uuid.UUID, fn func(p *domain.Product)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.products[productID]
	fn(&p)
	c.products[productID] = p
}

func (c *fakeCatalog) setStock(variantID uuid.UUID, stock int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.variants[variantID]
	v.Stock = stock
	c.variants[variantID] = v
}

func (c *fakeCatalog) removeVariant(variantID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.variants, variantID)
}

func (c *fakeCatalog) GetStoreBySlug(_ context.Context, slug string) (domain.Store, error) {
	return domain.Store{}, fmt.Errorf("store[%s]: %w", slug, domain.ErrStoreNotFound)
}

func (c *fakeCatalog) GetProductForCart(_ context.Context, storeID, productID uuid.UUID) (domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[productID]
	if !ok || p.StoreID != storeID {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrProductNotFound)
	}
	return p, nil
}

func (c *fakeCatalog) GetVariant(_ context.Context, productID, variantID uuid.UUID) (domain.Variant, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.variants[variantID]
	if !ok || v.ProductID != productID {
		return domain.Variant{}, fmt.Errorf("variant[%s]: %w", variantID, domain.ErrVariantInvalid)
	}
	return v, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.CartEvent
}

func (p *recordingPublisher) Publish(_ context.Context, key string, event any) error {
	e, ok := event.(domain.CartEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}
	if key != e.CartID.String() {
		return fmt.Errorf("key[%s] is not cart id[%s]", key, e.CartID)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

func (p *recordingPublisher) types() []domain.CartEventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	var result []domain.CartEventType
	for _, e := range p.events {
		result = append(result, e.Type)
	}
	return result
}
