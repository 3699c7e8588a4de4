// Package models - Category và Tag thuộc domain taxonomy.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryMaxLevel là độ sâu tối đa của cây danh mục (0 cho gốc, tối đa 3 → 4 tầng).
const CategoryMaxLevel = 3

// Category đại diện một nút trong cây danh mục sản phẩm.
// Level luôn được tính lại từ parent tại thời điểm ghi, không tin giá trị client gửi lên.
type Category struct {
	_Relationships   struct{}            `relationship:"collection:taxonomy_categories,field:parentCategory,message:Không thể xóa danh mục vì có %d danh mục con. Vui lòng xóa hoặc di chuyển các danh mục con trước.;collection:catalog_products,field:categoryId,message:Không thể xóa danh mục vì có %d sản phẩm đang thuộc danh mục này."`
	ID               primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Name             string              `json:"name" bson:"name" index:"single:1"`
	Slug             string              `json:"slug" bson:"slug" index:"single:1"`
	Description      string              `json:"description,omitempty" bson:"description,omitempty"`
	ShortDescription string              `json:"shortDescription,omitempty" bson:"shortDescription,omitempty"`
	Image            string              `json:"image,omitempty" bson:"image,omitempty"`
	Icon             string              `json:"icon,omitempty" bson:"icon,omitempty"`
	Color            string              `json:"color,omitempty" bson:"color,omitempty"`
	ParentID         *primitive.ObjectID `json:"parentCategory,omitempty" bson:"parentCategory,omitempty" index:"single:1"`
	Level            int                 `json:"level" bson:"level" index:"single:1"`
	SortOrder        int                 `json:"sortOrder" bson:"sortOrder"`
	IsActive         bool                `json:"isActive" bson:"isActive" index:"single:1"`
	IsVisible        bool                `json:"isVisible" bson:"isVisible"`
	IsFeatured       bool                `json:"isFeatured" bson:"isFeatured"`
	SEOTitle         string              `json:"seoTitle,omitempty" bson:"seoTitle,omitempty"`
	SEODescription   string              `json:"seoDescription,omitempty" bson:"seoDescription,omitempty"`
	SEOKeywords      string              `json:"seoKeywords,omitempty" bson:"seoKeywords,omitempty"`
	// ProductCount là số sản phẩm thuộc danh mục, denormalized — worker tính lại định kỳ, không phải nguồn sự thật.
	ProductCount        int64              `json:"productCount" bson:"productCount"`
	OwnerOrganizationID primitive.ObjectID `json:"ownerOrganizationId,omitempty" bson:"ownerOrganizationId,omitempty" index:"single:1"`
	CreatedAt           int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt           int64              `json:"updatedAt" bson:"updatedAt"`
}

// CategoryTreeNode là một nút trong forest danh mục trả về cho client (danh mục + con đệ quy).
type CategoryTreeNode struct {
	Category `bson:",inline"`
	Children []*CategoryTreeNode `json:"children"`
}
