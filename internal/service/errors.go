package service

import "errors"

// 参数校验错误
var (
	ErrCartItemInvalid      = errors.New("cart item product id, name and price are required")
	ErrQuantityInvalid      = errors.New("quantity must be a positive integer")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrCustomerInfoRequired = errors.New("customer name and email are required")
	ErrInvalidEmail         = errors.New("customer email is invalid")
	ErrOrderFieldsRequired  = errors.New("order required fields missing")
	ErrCustomerInfoMissing  = errors.New("order customer information incomplete")
	ErrOrderItemsRequired   = errors.New("order items must be non-empty")
	ErrOrderStatusRequired  = errors.New("order status is required")
	ErrOrderStatusInvalid   = errors.New("order status is invalid")
)

// 资源不存在
var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
)
