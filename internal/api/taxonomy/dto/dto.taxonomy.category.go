// Package taxdto chứa các DTO đầu vào cho domain taxonomy.
package taxdto

// ParentRootSentinel là giá trị đặc biệt của parentCategory nghĩa là "danh mục gốc".
// Client gửi "root" (hoặc để trống) khi tạo/chuyển danh mục lên gốc.
const ParentRootSentinel = "root"

// CategoryCreateInput đầu vào khi tạo danh mục.
// ParentCategory là ObjectID hex của danh mục cha; rỗng hoặc "root" là danh mục gốc.
type CategoryCreateInput struct {
	Name                string `json:"name" validate:"required,min=2,max=100"`
	Slug                string `json:"slug,omitempty"`
	Description         string `json:"description,omitempty"`
	ShortDescription    string `json:"shortDescription,omitempty"`
	Image               string `json:"image,omitempty"`
	Icon                string `json:"icon,omitempty"`
	Color               string `json:"color,omitempty"`
	ParentCategory      string `json:"parentCategory,omitempty"`
	SortOrder           int    `json:"sortOrder"`
	IsActive            *bool  `json:"isActive,omitempty"`
	IsVisible           *bool  `json:"isVisible,omitempty"`
	IsFeatured          *bool  `json:"isFeatured,omitempty"`
	SEOTitle            string `json:"seoTitle,omitempty"`
	SEODescription      string `json:"seoDescription,omitempty"`
	SEOKeywords         string `json:"seoKeywords,omitempty"`
	OwnerOrganizationID string `json:"ownerOrganizationId,omitempty" transform:"str_objectid,optional"`
}

// CategoryUpdateInput đầu vào khi cập nhật danh mục (patch, chỉ field non-nil/non-zero được áp dụng).
// ParentCategory: "" = không đổi; "root" = chuyển lên gốc; ObjectID hex = chuyển cha.
type CategoryUpdateInput struct {
	Name             *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Slug             *string `json:"slug,omitempty"`
	Description      *string `json:"description,omitempty"`
	ShortDescription *string `json:"shortDescription,omitempty"`
	Image            *string `json:"image,omitempty"`
	Icon             *string `json:"icon,omitempty"`
	Color            *string `json:"color,omitempty"`
	ParentCategory   *string `json:"parentCategory,omitempty"`
	SortOrder        *int    `json:"sortOrder,omitempty"`
	IsActive         *bool   `json:"isActive,omitempty"`
	IsVisible        *bool   `json:"isVisible,omitempty"`
	IsFeatured       *bool   `json:"isFeatured,omitempty"`
	SEOTitle         *string `json:"seoTitle,omitempty"`
	SEODescription   *string `json:"seoDescription,omitempty"`
	SEOKeywords      *string `json:"seoKeywords,omitempty"`
}

// CategoryListQuery tham số lọc khi liệt kê danh mục.
// ParentCategory: "" = mọi danh mục; "root" = chỉ danh mục gốc; ObjectID hex = con trực tiếp của danh mục đó.
type CategoryListQuery struct {
	ParentCategory  string `query:"parentCategory"`
	Level           *int   `query:"level"`
	Search          string `query:"search"`
	IncludeInactive bool   `query:"includeInactive"`
	Page            int64  `query:"page"`
	Limit           int64  `query:"limit"`
}
