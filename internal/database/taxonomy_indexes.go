// Package database - Index bổ sung cho Taxonomy (compound unique, collation) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"meta_market/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateTaxonomyAdditionalIndexes tạo các index bổ sung cho Taxonomy và Catalog.
// Gọi sau CreateIndexes cho từng collection.
func CreateTaxonomyAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	// taxonomy_categories: (ownerOrganizationId, parentCategory, slug) unique — chống trùng slug giữa các danh mục cùng cha
	categories := db.Collection(global.MongoDB_ColNames.Categories)
	if _, err := categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerOrganizationId", Value: 1},
			{Key: "parentCategory", Value: 1},
			{Key: "slug", Value: 1},
		},
		Options: options.Index().SetName("category_org_parent_slug_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// taxonomy_categories: (ownerOrganizationId, name) unique với collation strength 2
	// — tên danh mục không phân biệt hoa thường trong toàn bộ organization
	if _, err := categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerOrganizationId", Value: 1},
			{Key: "name", Value: 1},
		},
		Options: options.Index().
			SetName("category_org_name_unique").
			SetUnique(true).
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// taxonomy_categories: (ownerOrganizationId, level) — filter theo cấp trong list
	if _, err := categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerOrganizationId", Value: 1},
			{Key: "level", Value: 1},
		},
		Options: options.Index().SetName("category_org_level"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// taxonomy_tags: (ownerOrganizationId, scope, slug) unique
	tags := db.Collection(global.MongoDB_ColNames.Tags)
	if _, err := tags.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerOrganizationId", Value: 1},
			{Key: "scope", Value: 1},
			{Key: "slug", Value: 1},
		},
		Options: options.Index().SetName("tag_org_scope_slug_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// taxonomy_tags: (ownerOrganizationId, scope, name) unique với collation strength 2
	// — tên tag không phân biệt hoa thường trong cùng scope
	if _, err := tags.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerOrganizationId", Value: 1},
			{Key: "scope", Value: 1},
			{Key: "name", Value: 1},
		},
		Options: options.Index().
			SetName("tag_org_scope_name_unique").
			SetUnique(true).
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// catalog_products: (ownerOrganizationId, categoryId) — đếm sản phẩm theo danh mục, check xóa danh mục
	products := db.Collection(global.MongoDB_ColNames.Products)
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerOrganizationId", Value: 1},
			{Key: "categoryId", Value: 1},
		},
		Options: options.Index().SetName("product_org_category").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// catalog_products: (ownerOrganizationId, tagIds) multikey — check tag đang được sử dụng
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerOrganizationId", Value: 1},
			{Key: "tagIds", Value: 1},
		},
		Options: options.Index().SetName("product_org_tags"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
