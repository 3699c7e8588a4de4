// Package catalogsvc - service sản phẩm thuộc domain catalog.
package catalogsvc

import (
	"context"
	"fmt"
	"time"

	basesvc "meta_market/internal/api/base/service"
	catalogdto "meta_market/internal/api/catalog/dto"
	models "meta_market/internal/api/catalog/models"
	taxsvc "meta_market/internal/api/taxonomy/service"
	"meta_market/internal/common"
	"meta_market/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductService là cấu trúc chứa các phương thức liên quan đến sản phẩm
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[models.Product]
}

// NewProductService tạo mới ProductService
func NewProductService() (*ProductService, error) {
	productCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}
	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Product](productCollection),
	}, nil
}

// validateCategory kiểm tra danh mục tồn tại trong cùng organization.
func (s *ProductService) validateCategory(ctx context.Context, orgID, categoryID primitive.ObjectID) error {
	categoryCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !exist {
		return common.ErrNotFound
	}
	count, err := categoryCollection.CountDocuments(ctx, bson.M{"_id": categoryID, "ownerOrganizationId": orgID})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if count == 0 {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Không tìm thấy danh mục với ID: %s", categoryID.Hex()),
			common.StatusNotFound,
			nil,
		)
	}
	return nil
}

// validateTags kiểm tra mọi tag tồn tại, active và thuộc cùng organization
// hoặc là tag hệ thống. Chỉ tag scope "product" gắn được vào sản phẩm.
func (s *ProductService) validateTags(ctx context.Context, orgID primitive.ObjectID, tagIDs []primitive.ObjectID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	tagCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Tags)
	if !exist {
		return common.ErrNotFound
	}

	filter := bson.M{
		"_id":   bson.M{"$in": tagIDs},
		"scope": "product",
		"$or": []bson.M{
			{"ownerOrganizationId": orgID},
			{"isSystem": true},
		},
	}
	count, err := tagCollection.CountDocuments(ctx, filter)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if count != int64(len(tagIDs)) {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Có %d/%d tag không hợp lệ: tag phải tồn tại, scope 'product' và thuộc organization của sản phẩm (hoặc tag hệ thống).", int64(len(tagIDs))-count, len(tagIDs)),
			common.StatusBadRequest,
			nil,
		)
	}

	// Cập nhật lastUsed cho các tag vừa được gắn
	_, _ = tagCollection.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": tagIDs}}, bson.M{"$set": bson.M{"lastUsed": time.Now().UnixMilli()}})
	return nil
}

// InsertOne override: chuẩn hóa slug, kiểm tra danh mục và tag trước khi insert.
func (s *ProductService) InsertOne(ctx context.Context, data models.Product) (models.Product, error) {
	if data.Slug == "" {
		data.Slug = taxsvc.ToSlug(data.Name)
	} else {
		data.Slug = taxsvc.ToSlug(data.Slug)
	}

	if data.CategoryID.IsZero() {
		return data, common.NewError(
			common.ErrCodeValidationInput,
			"Sản phẩm phải thuộc một danh mục (categoryId bắt buộc).",
			common.StatusBadRequest,
			nil,
		)
	}
	if err := s.validateCategory(ctx, data.OwnerOrganizationID, data.CategoryID); err != nil {
		return data, err
	}
	if err := s.validateTags(ctx, data.OwnerOrganizationID, data.TagIDs); err != nil {
		return data, err
	}
	if data.TagIDs == nil {
		data.TagIDs = []primitive.ObjectID{}
	}

	return s.BaseServiceMongoImpl.InsertOne(ctx, data)
}

// UpdateProduct cập nhật sản phẩm theo kiểu patch. Đổi danh mục/tag đều
// được kiểm tra như khi tạo mới.
func (s *ProductService) UpdateProduct(ctx context.Context, id primitive.ObjectID, input *catalogdto.ProductUpdateInput) (models.Product, error) {
	var zero models.Product
	current, err := s.BaseServiceMongoImpl.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}

	set := make(map[string]interface{})

	if input.Name != nil && *input.Name != current.Name {
		set["name"] = *input.Name
		if input.Slug == nil {
			set["slug"] = taxsvc.ToSlug(*input.Name)
		}
	}
	if input.Slug != nil {
		set["slug"] = taxsvc.ToSlug(*input.Slug)
	}
	if input.SKU != nil && *input.SKU != current.SKU {
		set["sku"] = *input.SKU
	}
	if input.Description != nil && *input.Description != current.Description {
		set["description"] = *input.Description
	}
	if input.Price != nil && *input.Price != current.Price {
		set["price"] = *input.Price
	}
	if input.Currency != nil && *input.Currency != current.Currency {
		set["currency"] = *input.Currency
	}
	if input.IsActive != nil && *input.IsActive != current.IsActive {
		set["isActive"] = *input.IsActive
	}
	if input.Images != nil {
		set["images"] = *input.Images
	}

	if input.CategoryID != nil {
		categoryID, err := primitive.ObjectIDFromHex(*input.CategoryID)
		if err != nil {
			return zero, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("categoryId không hợp lệ: '%s' không phải ObjectID.", *input.CategoryID),
				common.StatusBadRequest,
				err,
			)
		}
		if categoryID != current.CategoryID {
			if err := s.validateCategory(ctx, current.OwnerOrganizationID, categoryID); err != nil {
				return zero, err
			}
			set["categoryId"] = categoryID
		}
	}

	if input.TagIDs != nil {
		tagIDs := make([]primitive.ObjectID, 0, len(*input.TagIDs))
		for _, ref := range *input.TagIDs {
			tagID, err := primitive.ObjectIDFromHex(ref)
			if err != nil {
				return zero, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("tagIds chứa giá trị không hợp lệ: '%s' không phải ObjectID.", ref),
					common.StatusBadRequest,
					err,
				)
			}
			tagIDs = append(tagIDs, tagID)
		}
		if err := s.validateTags(ctx, current.OwnerOrganizationID, tagIDs); err != nil {
			return zero, err
		}
		set["tagIds"] = tagIDs
	}

	if len(set) == 0 {
		return current, nil
	}

	return s.BaseServiceMongoImpl.UpdateById(ctx, id, &basesvc.UpdateData{Set: set})
}
