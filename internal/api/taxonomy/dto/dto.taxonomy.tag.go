package taxdto

// TagGlobalSentinel là giá trị đặc biệt của categoryId khi lọc: chỉ lấy tag toàn cục.
const TagGlobalSentinel = "global"

// TagCreateInput đầu vào khi tạo tag.
// CategoryID rỗng là tag toàn cục; có giá trị là tag cục bộ của danh mục đó.
type TagCreateInput struct {
	Name                string `json:"name" validate:"required,min=2,max=50"`
	Slug                string `json:"slug,omitempty"`
	Scope               string `json:"scope" validate:"required,oneof=product seller order"`
	CategoryID          string `json:"categoryId,omitempty"`
	Description         string `json:"description,omitempty"`
	Color               string `json:"color,omitempty"`
	SortOrder           int    `json:"sortOrder"`
	IsActive            *bool  `json:"isActive,omitempty"`
	OwnerOrganizationID string `json:"ownerOrganizationId,omitempty" transform:"str_objectid,optional"`
}

// TagUpdateInput đầu vào khi cập nhật tag (patch).
// Tag hệ thống từ chối mọi patch với lỗi 403, kể cả patch rỗng.
type TagUpdateInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Slug        *string `json:"slug,omitempty"`
	Scope       *string `json:"scope,omitempty" validate:"omitempty,oneof=product seller order"`
	CategoryID  *string `json:"categoryId,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// TagListQuery tham số lọc khi liệt kê tag.
// CategoryID: "" = mọi tag; "global" = chỉ tag toàn cục; ObjectID hex = tag của danh mục đó (kèm tag toàn cục nếu IncludeGlobal).
type TagListQuery struct {
	Scope           string `query:"scope" validate:"omitempty,oneof=product seller order"`
	CategoryID      string `query:"categoryId"`
	IncludeGlobal   bool   `query:"includeGlobal"`
	Search          string `query:"search"`
	IncludeInactive bool   `query:"includeInactive"`
	Page            int64  `query:"page"`
	Limit           int64  `query:"limit"`
}
