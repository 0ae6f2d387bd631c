package public

import (
	"github.com/ecom-cart/internal/http/response"
	"github.com/ecom-cart/internal/models"
	"github.com/ecom-cart/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutLineRequest 结算行
type CheckoutLineRequest struct {
	ProductID productIDField `json:"productId"`
	Name      string         `json:"name"`
	Price     models.Money   `json:"price"`
	Quantity  *float64       `json:"quantity"`
	Image     string         `json:"image"`
}

// CheckoutRequest 结算请求
// cartItems 缺省或为 null 时使用服务端购物车，不返回 400 "Cart items are required"；[] 视为空购物车。
type CheckoutRequest struct {
	CartItems    []CheckoutLineRequest `json:"cartItems"`
	CustomerInfo *models.CustomerInfo  `json:"customerInfo"`
}

// Checkout 结算
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, msgInvalidBody, nil)
		return
	}

	input := service.CheckoutInput{}
	if req.CustomerInfo != nil {
		input.CustomerInfo = *req.CustomerInfo
	}
	if req.CartItems != nil {
		input.CartItems = make([]service.CheckoutLine, 0, len(req.CartItems))
		for _, line := range req.CartItems {
			qty, ok := positiveInt(line.Quantity)
			if !ok {
				respondCheckoutError(c, service.ErrQuantityInvalid)
				return
			}
			input.CartItems = append(input.CartItems, service.CheckoutLine{
				ProductID: line.ProductID.String(),
				Name:      line.Name,
				Price:     line.Price,
				Quantity:  qty,
				Image:     line.Image,
			})
		}
	}

	receipt, err := h.CheckoutService.Checkout(c.Request.Context(), input)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, receipt)
}
