package public

import (
	"strings"

	"github.com/ecom-cart/internal/http/response"
	"github.com/ecom-cart/internal/models"
	"github.com/ecom-cart/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID productIDField `json:"productId"`
	Quantity  *float64       `json:"quantity"`
	Name      string         `json:"name"`
	Price     models.Money   `json:"price"`
	Image     string         `json:"image"`
}

// UpdateCartItemRequest 更新购物车数量请求
type UpdateCartItemRequest struct {
	Quantity *float64 `json:"quantity"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	view, err := h.CartService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch cart", err)
		return
	}
	response.Success(c, view)
}

// AddToCart 加入购物车
func (h *Handler) AddToCart(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgInvalidBody, nil)
		return
	}

	input := service.AddCartItemInput{
		ProductID: req.ProductID.String(),
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
	}
	if req.Quantity != nil {
		qty, ok := positiveInt(req.Quantity)
		if !ok {
			respondWithMappedError(c, service.ErrQuantityInvalid, cartAddErrorRules, response.CodeBadRequest, msgInvalidBody)
			return
		}
		input.Quantity = &qty
	}

	item, err := h.CartService.Add(c.Request.Context(), input)
	if err != nil {
		respondWithMappedError(c, err, cartAddErrorRules, response.CodeInternal, "Failed to add item to cart")
		return
	}
	response.Success(c, item)
}

// UpdateCartItem 覆盖购物车项数量，路径参数为商品ID
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgInvalidBody, nil)
		return
	}
	qty, ok := positiveInt(req.Quantity)
	if !ok {
		respondWithMappedError(c, service.ErrQuantityInvalid, cartUpdateErrorRules, response.CodeBadRequest, msgInvalidBody)
		return
	}

	item, err := h.CartService.UpdateQuantity(c.Request.Context(), strings.TrimSpace(c.Param("id")), qty)
	if err != nil {
		respondWithMappedError(c, err, cartUpdateErrorRules, response.CodeInternal, "Failed to update cart item")
		return
	}
	response.Success(c, item)
}

// RemoveFromCart 移除购物车项，路径参数为商品ID
func (h *Handler) RemoveFromCart(c *gin.Context) {
	if err := h.CartService.Remove(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		respondWithMappedError(c, err, cartRemoveErrorRules, response.CodeInternal, "Failed to remove item from cart")
		return
	}
	response.Message(c, "Item removed from cart")
}
