package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// CustomerInfo 下单客户信息
type CustomerInfo struct {
	Name    string `gorm:"column:name" json:"name" bson:"name"`          // 姓名
	Email   string `gorm:"column:email;index" json:"email" bson:"email"` // 邮箱
	Address string `gorm:"column:address" json:"address" bson:"address"` // 地址
	Phone   string `gorm:"column:phone" json:"phone" bson:"phone"`       // 电话
}

// ShippingInfo 物流信息
type ShippingInfo struct {
	TrackingNumber    string     `json:"trackingNumber,omitempty" bson:"trackingNumber,omitempty"`       // 运单号
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty" bson:"estimatedDelivery,omitempty"` // 预计送达时间
	Carrier           string     `json:"carrier,omitempty" bson:"carrier,omitempty"`                     // 承运商
}

// Value 实现 driver.Valuer 接口
func (s ShippingInfo) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *ShippingInfo) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = ShippingInfo{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported shipping info value")
	}
}

// Order 订单记录
type Order struct {
	ID           uint          `gorm:"primarykey" json:"-" bson:"-"`                                                // 主键
	OrderID      string        `gorm:"uniqueIndex;not null;type:varchar(64)" json:"orderId" bson:"orderId"`         // 订单编号
	CustomerInfo CustomerInfo  `gorm:"embedded;embeddedPrefix:customer_" json:"customerInfo" bson:"customerInfo"`   // 客户信息
	Items        []OrderItem   `gorm:"foreignKey:OrderRefID" json:"items" bson:"items"`                             // 订单项
	TotalAmount  Money         `gorm:"type:decimal(20,2);not null;default:0" json:"totalAmount" bson:"totalAmount"` // 订单金额
	Status       string        `gorm:"index;not null" json:"status" bson:"status"`                                  // 订单状态
	OrderDate    time.Time     `gorm:"index" json:"orderDate" bson:"orderDate"`                                     // 下单时间
	ShippingInfo *ShippingInfo `gorm:"type:json" json:"shippingInfo,omitempty" bson:"shippingInfo,omitempty"`       // 物流信息
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`                                                  // 创建时间
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`                                                  // 更新时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项快照
type OrderItem struct {
	ID          uint   `gorm:"primarykey" json:"-" bson:"-"`                                    // 主键
	OrderRefID  uint   `gorm:"index;not null" json:"-" bson:"-"`                                // 所属订单主键
	ProductID   string `gorm:"not null;type:varchar(128)" json:"productId" bson:"productId"`    // 商品ID
	ProductName string `gorm:"not null" json:"productName" bson:"productName"`                  // 商品名称快照
	Price       Money  `gorm:"type:decimal(20,4);not null;default:0" json:"price" bson:"price"` // 单价
	Quantity    int    `gorm:"not null" json:"quantity" bson:"quantity"`                        // 数量
	Image       string `json:"image,omitempty" bson:"image,omitempty"`                          // 商品图片
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// Clone 深拷贝订单，避免调用方修改存储中的数据
func (o Order) Clone() Order {
	cloned := o
	if o.Items != nil {
		cloned.Items = make([]OrderItem, len(o.Items))
		copy(cloned.Items, o.Items)
	}
	if o.ShippingInfo != nil {
		info := *o.ShippingInfo
		if o.ShippingInfo.EstimatedDelivery != nil {
			at := *o.ShippingInfo.EstimatedDelivery
			info.EstimatedDelivery = &at
		}
		cloned.ShippingInfo = &info
	}
	return cloned
}
