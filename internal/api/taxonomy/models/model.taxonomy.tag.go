package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TagScope phạm vi áp dụng của tag
const (
	TagScopeProduct = "product"
	TagScopeSeller  = "seller"
	TagScopeOrder   = "order"
)

// TagDefaultColor màu mặc định khi client không gửi màu
const TagDefaultColor = "#6b7280"

// Tag là nhãn phẳng gắn vào sản phẩm/người bán/đơn hàng để lọc.
// Tag có CategoryID là tag cục bộ của danh mục đó; không có CategoryID là tag toàn cục.
// Tag hệ thống (IsSystem) do platform seed, client không thể sửa hay xóa.
type Tag struct {
	_Relationships      struct{}            `relationship:"collection:catalog_products,field:tagIds,message:Không thể xóa tag vì có %d sản phẩm đang sử dụng tag này."`
	ID                  primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Name                string              `json:"name" bson:"name" index:"single:1"`
	Slug                string              `json:"slug" bson:"slug" index:"single:1"`
	Scope               string              `json:"scope" bson:"scope" index:"single:1"`
	CategoryID          *primitive.ObjectID `json:"categoryId,omitempty" bson:"categoryId,omitempty" index:"single:1"`
	Description         string              `json:"description,omitempty" bson:"description,omitempty"`
	Color               string              `json:"color,omitempty" bson:"color,omitempty"`
	IsSystem            bool                `json:"isSystem" bson:"isSystem" index:"single:1"`
	IsActive            bool                `json:"isActive" bson:"isActive" index:"single:1"`
	SortOrder           int                 `json:"sortOrder" bson:"sortOrder"`
	TotalProducts       int64               `json:"totalProducts" bson:"totalProducts"`
	LastUsed            int64               `json:"lastUsed,omitempty" bson:"lastUsed,omitempty"`
	OwnerOrganizationID primitive.ObjectID  `json:"ownerOrganizationId,omitempty" bson:"ownerOrganizationId,omitempty" index:"single:1"`
	CreatedAt           int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt           int64               `json:"updatedAt" bson:"updatedAt"`
}
