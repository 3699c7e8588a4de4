// Package catalogdto chứa các DTO đầu vào cho domain catalog.
package catalogdto

// ProductCreateInput đầu vào khi tạo sản phẩm.
// CategoryID bắt buộc và phải là danh mục của cùng organization.
type ProductCreateInput struct {
	Name                string   `json:"name" validate:"required,min=2,max=200"`
	Slug                string   `json:"slug,omitempty"`
	SKU                 string   `json:"sku,omitempty"`
	Description         string   `json:"description,omitempty"`
	Price               int64    `json:"price" validate:"gte=0"`
	Currency            string   `json:"currency,omitempty"`
	CategoryID          string   `json:"categoryId" validate:"required"`
	TagIDs              []string `json:"tagIds,omitempty"`
	Images              []string `json:"images,omitempty"`
	IsActive            *bool    `json:"isActive,omitempty"`
	OwnerOrganizationID string   `json:"ownerOrganizationId,omitempty" transform:"str_objectid,optional"`
}

// ProductUpdateInput đầu vào khi cập nhật sản phẩm (patch).
type ProductUpdateInput struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Slug        *string   `json:"slug,omitempty"`
	SKU         *string   `json:"sku,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *int64    `json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency    *string   `json:"currency,omitempty"`
	CategoryID  *string   `json:"categoryId,omitempty"`
	TagIDs      *[]string `json:"tagIds,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	IsActive    *bool     `json:"isActive,omitempty"`
}
