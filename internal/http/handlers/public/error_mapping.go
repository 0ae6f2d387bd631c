package public

import (
	"errors"

	handlershared "github.com/ecom-cart/internal/http/handlers/shared"
	"github.com/ecom-cart/internal/http/response"
	"github.com/ecom-cart/internal/repository"
	"github.com/ecom-cart/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

const msgInvalidBody = "Invalid request body"

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var conflictErrorRules = []mappedHandlerError{
	{target: repository.ErrDuplicateKey, code: response.CodeConflict, msg: "Duplicate entry"},
}

var cartAddErrorRules = []mappedHandlerError{
	{target: service.ErrCartItemInvalid, code: response.CodeBadRequest, msg: "Product ID, name, and price are required"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, msg: "Quantity must be a positive integer"},
}

var cartUpdateErrorRules = []mappedHandlerError{
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, msg: "Valid quantity is required"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "Cart item not found"},
}

var cartRemoveErrorRules = []mappedHandlerError{
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "Cart item not found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "Cart is empty"},
	{target: service.ErrCustomerInfoRequired, code: response.CodeBadRequest, msg: "Customer name and email are required"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "Valid email address is required"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, msg: "Quantity must be a positive integer"},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrOrderFieldsRequired, code: response.CodeBadRequest, msg: "Missing required fields"},
	{target: service.ErrCustomerInfoMissing, code: response.CodeBadRequest, msg: "Missing customer information"},
	{target: service.ErrOrderItemsRequired, code: response.CodeBadRequest, msg: "Items must be a non-empty array"},
}

var orderFetchErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "Order not found"},
}

var orderStatusErrorRules = []mappedHandlerError{
	{target: service.ErrOrderStatusRequired, code: response.CodeBadRequest, msg: "Status is required"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, msg: "Invalid status"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "Order not found"},
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(checkoutErrorRules, conflictErrorRules), response.CodeInternal, "Checkout failed")
}

func respondOrderCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(orderCreateErrorRules, conflictErrorRules), response.CodeInternal, "Failed to create order")
}
