package repository

import "errors"

// ErrDuplicateKey 唯一键冲突
var ErrDuplicateKey = errors.New("duplicate key")

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Email string // 按客户邮箱精确匹配，空值表示不过滤
}
