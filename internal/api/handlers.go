package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/cartcore/internal/actor"
	"github.com/nikolayk812/cartcore/internal/cart"
	"github.com/nikolayk812/cartcore/internal/domain"
	"github.com/nikolayk812/cartcore/internal/presenter"
	"go.uber.org/zap"
)

type CartService interface {
	GetActiveCart(ctx context.Context, storeID uuid.UUID, actor domain.Actor) (presenter.CartView, error)
	AddItem(ctx context.Context, storeID uuid.UUID, actor domain.Actor, in cart.AddItemInput) (presenter.CartView, error)
	UpdateItem(ctx context.Context, storeID uuid.UUID, actor domain.Actor, itemID uuid.UUID, quantity int) (presenter.CartView, error)
	RemoveItem(ctx context.Context, storeID uuid.UUID, actor domain.Actor, itemID uuid.UUID) (presenter.CartView, error)
	MergeGuestIntoUser(ctx context.Context, storeID uuid.UUID, userID, guestToken string) (presenter.CartView, error)
	BeginCheckout(ctx context.Context, storeID uuid.UUID, actor domain.Actor) (domain.Cart, error)
	CompleteCheckout(ctx context.Context, storeID uuid.UUID, owner domain.Actor) (domain.Cart, error)
	AbandonCart(ctx context.Context, cartID uuid.UUID) (domain.Cart, error)
}

type Handlers struct {
	carts           CartService
	logger          *zap.Logger
	maxLineQuantity int
}

func NewHandlers(carts CartService, logger *zap.Logger, maxLineQuantity int) *Handlers {
	return &Handlers{
		carts:           carts,
		logger:          logger,
		maxLineQuantity: maxLineQuantity,
	}
}

type cartResponse struct {
	presenter.CartView
	StoreSlug string  `json:"storeSlug"`
	GuestID   *string `json:"guestId"`
}

type addItemRequest struct {
	ProductID uuid.UUID  `json:"productId"`
	VariantID *uuid.UUID `json:"variantId"`
	Quantity  *int       `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

type completeCheckoutRequest struct {
	UserID  string `json:"userId"`
	GuestID string `json:"guestId"`
}

func (h *Handlers) respondCart(c *gin.Context, view presenter.CartView, guestID string) {
	resp := cartResponse{
		CartView:  view,
		StoreSlug: currentStore(c).Slug,
	}
	if guestID != "" {
		resp.GuestID = &guestID
	}
	c.JSON(http.StatusOK, resp)
}

// guestIDFor returns the token to echo in the body: only guests see it.
func guestIDFor(res actor.Resolution) string {
	if res.Actor.Kind() == domain.ActorGuest {
		return res.GuestToken
	}
	return ""
}

func (h *Handlers) clamp(qty int) int {
	if qty > h.maxLineQuantity {
		return h.maxLineQuantity
	}
	return qty
}

func (h *Handlers) GetCart(c *gin.Context) {
	res := resolution(c)

	view, err := h.carts.GetActiveCart(c.Request.Context(), currentStore(c).ID, res.Actor)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	h.respondCart(c, view, guestIDFor(res))
}

func (h *Handlers) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ProductID == uuid.Nil {
		respondError(c, http.StatusBadRequest, "productId is required")
		return
	}

	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if qty < 1 {
		respondError(c, http.StatusBadRequest, domain.ErrInvalidQuantity.Error())
		return
	}

	in := cart.AddItemInput{
		ProductID: req.ProductID,
		Quantity:  h.clamp(qty),
	}
	if req.VariantID != nil {
		in.VariantID = uuid.NullUUID{UUID: *req.VariantID, Valid: true}
	}

	res := resolution(c)

	view, err := h.carts.AddItem(c.Request.Context(), currentStore(c).ID, res.Actor, in)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	h.respondCart(c, view, guestIDFor(res))
}

func (h *Handlers) UpdateItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid itemId")
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Quantity == nil || *req.Quantity < 0 {
		respondError(c, http.StatusBadRequest, domain.ErrInvalidQuantity.Error())
		return
	}

	res := resolution(c)

	view, err := h.carts.UpdateItem(c.Request.Context(), currentStore(c).ID, res.Actor, itemID, h.clamp(*req.Quantity))
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	h.respondCart(c, view, guestIDFor(res))
}

func (h *Handlers) RemoveItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid itemId")
		return
	}

	res := resolution(c)

	view, err := h.carts.RemoveItem(c.Request.Context(), currentStore(c).ID, res.Actor, itemID)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	h.respondCart(c, view, guestIDFor(res))
}

func (h *Handlers) Merge(c *gin.Context) {
	token := guestToken(c)
	if token == "" {
		respondError(c, http.StatusBadRequest, "missing "+GuestHeader+" header")
		return
	}

	view, err := h.carts.MergeGuestIntoUser(c.Request.Context(), currentStore(c).ID, userID(c), token)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	h.respondCart(c, view, "")
}

func (h *Handlers) BeginCheckout(c *gin.Context) {
	res := resolution(c)

	checkoutCart, err := h.carts.BeginCheckout(c.Request.Context(), currentStore(c).ID, res.Actor)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	h.respondCart(c, presenter.Present(&checkoutCart), guestIDFor(res))
}

func (h *Handlers) CompleteCheckout(c *gin.Context) {
	var req completeCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var owner domain.Actor
	switch {
	case req.UserID != "":
		owner = domain.User(req.UserID)
	case req.GuestID != "":
		owner = domain.Guest(req.GuestID)
	default:
		respondError(c, http.StatusBadRequest, "userId or guestId is required")
		return
	}

	completed, err := h.carts.CompleteCheckout(c.Request.Context(), currentStore(c).ID, owner)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	h.respondCart(c, presenter.Present(&completed), "")
}

func (h *Handlers) AbandonCart(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("cartId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid cartId")
		return
	}

	abandoned, err := h.carts.AbandonCart(c.Request.Context(), cartID)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, presenter.Present(&abandoned))
}
