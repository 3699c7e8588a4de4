package taxsvc

import (
	"context"
	"fmt"
	"regexp"

	basemodels "meta_market/internal/api/base/models"
	basesvc "meta_market/internal/api/base/service"
	taxdto "meta_market/internal/api/taxonomy/dto"
	models "meta_market/internal/api/taxonomy/models"
	"meta_market/internal/common"
	"meta_market/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TagService là cấu trúc chứa các phương thức liên quan đến tag
type TagService struct {
	*basesvc.BaseServiceMongoImpl[models.Tag]
}

// NewTagService tạo mới TagService
func NewTagService() (*TagService, error) {
	tagCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Tags)
	if !exist {
		return nil, fmt.Errorf("failed to get tags collection: %v", common.ErrNotFound)
	}
	return &TagService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Tag](tagCollection),
	}, nil
}

// tagScopeFilter tạo filter chọn các tag cùng phạm vi uniqueness:
// cùng org, cùng scope, cùng danh mục (hoặc cùng là tag toàn cục).
func tagScopeFilter(orgID primitive.ObjectID, scope string, categoryID *primitive.ObjectID) bson.M {
	filter := bson.M{
		"ownerOrganizationId": orgID,
		"scope":               scope,
	}
	if categoryID == nil {
		filter["categoryId"] = bson.M{"$exists": false}
	} else {
		filter["categoryId"] = *categoryID
	}
	return filter
}

// validateTagUnique kiểm tra tên (không phân biệt hoa thường) và slug không
// trùng trong cùng (org, scope, danh mục). excludeID bỏ qua tag đang sửa.
func (s *TagService) validateTagUnique(ctx context.Context, orgID primitive.ObjectID, scope string, categoryID *primitive.ObjectID, name, slug string, excludeID *primitive.ObjectID) error {
	nameFilter := tagScopeFilter(orgID, scope, categoryID)
	nameFilter["name"] = name
	if excludeID != nil {
		nameFilter["_id"] = bson.M{"$ne": *excludeID}
	}
	nameOpts := options.FindOne().SetCollation(caseInsensitiveCollation())
	if _, err := s.BaseServiceMongoImpl.FindOne(ctx, nameFilter, nameOpts); err == nil {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Tag '%s' đã tồn tại trong cùng phạm vi. Tên tag không phân biệt hoa thường.", name),
			common.StatusConflict,
			nil,
		)
	} else if err != common.ErrNotFound {
		return err
	}

	slugFilter := tagScopeFilter(orgID, scope, categoryID)
	slugFilter["slug"] = slug
	if excludeID != nil {
		slugFilter["_id"] = bson.M{"$ne": *excludeID}
	}
	if _, err := s.BaseServiceMongoImpl.FindOne(ctx, slugFilter, nil); err == nil {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Slug '%s' đã tồn tại trong cùng phạm vi.", slug),
			common.StatusConflict,
			nil,
		)
	} else if err != common.ErrNotFound {
		return err
	}
	return nil
}

// resolveTagCategory kiểm tra danh mục gắn tag tồn tại trong cùng organization.
func (s *TagService) resolveTagCategory(ctx context.Context, orgID primitive.ObjectID, ref string) (*primitive.ObjectID, error) {
	if ref == "" {
		return nil, nil
	}
	categoryID, err := primitive.ObjectIDFromHex(ref)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("categoryId không hợp lệ: '%s' không phải ObjectID.", ref),
			common.StatusBadRequest,
			err,
		)
	}

	categoryCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !exist {
		return nil, common.ErrNotFound
	}
	count, err := categoryCollection.CountDocuments(ctx, bson.M{"_id": categoryID, "ownerOrganizationId": orgID})
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if count == 0 {
		return nil, common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Không tìm thấy danh mục với ID: %s", categoryID.Hex()),
			common.StatusNotFound,
			nil,
		)
	}
	return &categoryID, nil
}

// InsertOne override: chuẩn hóa slug, gán màu mặc định, kiểm tra tên/slug
// không trùng trong cùng (org, scope, danh mục) trước khi insert.
func (s *TagService) InsertOne(ctx context.Context, data models.Tag) (models.Tag, error) {
	if data.Slug == "" {
		data.Slug = ToSlug(data.Name)
	} else {
		data.Slug = ToSlug(data.Slug)
	}
	if data.Slug == "" {
		return data, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Không tạo được slug từ tên '%s'. Tên phải chứa ít nhất một chữ cái hoặc chữ số.", data.Name),
			common.StatusBadRequest,
			nil,
		)
	}
	if data.Color == "" {
		data.Color = models.TagDefaultColor
	}

	if data.CategoryID != nil {
		resolved, err := s.resolveTagCategory(ctx, data.OwnerOrganizationID, data.CategoryID.Hex())
		if err != nil {
			return data, err
		}
		data.CategoryID = resolved
	}

	if err := s.validateTagUnique(ctx, data.OwnerOrganizationID, data.Scope, data.CategoryID, data.Name, data.Slug, nil); err != nil {
		return data, err
	}

	return s.BaseServiceMongoImpl.InsertOne(ctx, data)
}

// GuardSystemTag chặn mọi thao tác sửa/xóa trên tag hệ thống. Chạy trước mọi
// validation khác để 403 luôn thắng các lỗi khác, kể cả với patch rỗng.
func GuardSystemTag(tag models.Tag) error {
	if !tag.IsSystem {
		return nil
	}
	return common.NewError(
		common.ErrCodeBusinessOperation,
		fmt.Sprintf("Tag hệ thống '%s' không thể sửa hay xóa.", tag.Name),
		common.StatusForbidden,
		nil,
	)
}

// UpdateTag cập nhật tag theo kiểu patch. Tag hệ thống bị chặn 403
// bất kể nội dung patch, trước khi đụng tới payload còn lại.
func (s *TagService) UpdateTag(ctx context.Context, id primitive.ObjectID, input *taxdto.TagUpdateInput) (models.Tag, error) {
	var zero models.Tag
	current, err := s.BaseServiceMongoImpl.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}

	if err := GuardSystemTag(current); err != nil {
		return zero, err
	}

	set := make(map[string]interface{})
	unset := make(map[string]interface{})

	newName := current.Name
	if input.Name != nil && *input.Name != current.Name {
		newName = *input.Name
		set["name"] = newName
	}

	newSlug := current.Slug
	switch {
	case input.Slug != nil:
		newSlug = ToSlug(*input.Slug)
	case newName != current.Name:
		newSlug = ToSlug(newName)
	}
	if newSlug == "" {
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Không tạo được slug từ tên '%s'. Tên phải chứa ít nhất một chữ cái hoặc chữ số.", newName),
			common.StatusBadRequest,
			nil,
		)
	}
	if newSlug != current.Slug {
		set["slug"] = newSlug
	}

	newScope := current.Scope
	if input.Scope != nil && *input.Scope != current.Scope {
		newScope = *input.Scope
		set["scope"] = newScope
	}

	newCategoryID := current.CategoryID
	categoryChanged := false
	if input.CategoryID != nil {
		ref := *input.CategoryID
		if ref == "" || ref == taxdto.TagGlobalSentinel {
			if current.CategoryID != nil {
				newCategoryID = nil
				categoryChanged = true
				unset["categoryId"] = ""
			}
		} else {
			resolved, err := s.resolveTagCategory(ctx, current.OwnerOrganizationID, ref)
			if err != nil {
				return zero, err
			}
			if !oidPtrEqual(resolved, current.CategoryID) {
				newCategoryID = resolved
				categoryChanged = true
				set["categoryId"] = *resolved
			}
		}
	}

	if newName != current.Name || newSlug != current.Slug || newScope != current.Scope || categoryChanged {
		if err := s.validateTagUnique(ctx, current.OwnerOrganizationID, newScope, newCategoryID, newName, newSlug, &current.ID); err != nil {
			return zero, err
		}
	}

	applyStringField(set, "description", input.Description, current.Description)
	applyStringField(set, "color", input.Color, current.Color)
	if input.SortOrder != nil && *input.SortOrder != current.SortOrder {
		set["sortOrder"] = *input.SortOrder
	}
	if input.IsActive != nil && *input.IsActive != current.IsActive {
		set["isActive"] = *input.IsActive
	}

	if len(set) == 0 && len(unset) == 0 {
		return current, nil
	}

	return s.BaseServiceMongoImpl.UpdateById(ctx, id, &basesvc.UpdateData{Set: set, Unset: unset})
}

// ListTags liệt kê tag với filter và phân trang. baseFilter là filter đã giới
// hạn theo organization của caller; tag hệ thống luôn nằm trong kết quả dù
// thuộc System Organization. CategoryID "global" chỉ lấy tag toàn cục;
// ObjectID hex lấy tag của danh mục đó, kèm tag toàn cục nếu IncludeGlobal.
func (s *TagService) ListTags(ctx context.Context, query *taxdto.TagListQuery, baseFilter map[string]interface{}) (*basemodels.PaginateResult[models.Tag], error) {
	and := make([]bson.M, 0, 4)
	if len(baseFilter) > 0 {
		and = append(and, bson.M{"$or": []bson.M{bson.M(baseFilter), {"isSystem": true}}})
	}

	if query.Scope != "" {
		and = append(and, bson.M{"scope": query.Scope})
	}

	switch {
	case query.CategoryID == taxdto.TagGlobalSentinel:
		and = append(and, bson.M{"categoryId": bson.M{"$exists": false}})
	case query.CategoryID != "":
		categoryID, err := primitive.ObjectIDFromHex(query.CategoryID)
		if err != nil {
			return nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("categoryId không hợp lệ: '%s' không phải ObjectID.", query.CategoryID),
				common.StatusBadRequest,
				err,
			)
		}
		if query.IncludeGlobal {
			and = append(and, bson.M{"$or": []bson.M{
				{"categoryId": categoryID},
				{"categoryId": bson.M{"$exists": false}},
			}})
		} else {
			and = append(and, bson.M{"categoryId": categoryID})
		}
	}

	if query.Search != "" {
		and = append(and, bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(query.Search), "$options": "i"}})
	}
	if !query.IncludeInactive {
		and = append(and, bson.M{"isActive": true})
	}

	filter := bson.M{}
	if len(and) > 0 {
		filter["$and"] = and
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "name", Value: 1}}).
		SetCollation(caseInsensitiveCollation())

	return s.BaseServiceMongoImpl.FindWithPagination(ctx, filter, page, limit, opts)
}
