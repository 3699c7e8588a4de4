// Package models - Product thuộc domain catalog.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product là sản phẩm trong catalog, gắn vào một danh mục và nhiều tag.
// Domain taxonomy dựa vào categoryId/tagIds để chặn xóa danh mục/tag đang
// được sử dụng và để worker tính lại số sản phẩm.
type Product struct {
	ID                  primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name                string               `json:"name" bson:"name" index:"single:1"`
	Slug                string               `json:"slug" bson:"slug" index:"single:1"`
	SKU                 string               `json:"sku,omitempty" bson:"sku,omitempty" index:"single:1"`
	Description         string               `json:"description,omitempty" bson:"description,omitempty"`
	Price               int64                `json:"price" bson:"price"`
	Currency            string               `json:"currency,omitempty" bson:"currency,omitempty"`
	CategoryID          primitive.ObjectID   `json:"categoryId" bson:"categoryId" index:"single:1"`
	TagIDs              []primitive.ObjectID `json:"tagIds" bson:"tagIds" index:"single:1"`
	Images              []string             `json:"images,omitempty" bson:"images,omitempty"`
	IsActive            bool                 `json:"isActive" bson:"isActive" index:"single:1"`
	OwnerOrganizationID primitive.ObjectID   `json:"ownerOrganizationId,omitempty" bson:"ownerOrganizationId,omitempty" index:"single:1"`
	CreatedAt           int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt           int64                `json:"updatedAt" bson:"updatedAt"`
}
