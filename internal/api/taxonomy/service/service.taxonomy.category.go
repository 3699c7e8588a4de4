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

// CategoryService là cấu trúc chứa các phương thức liên quan đến danh mục
type CategoryService struct {
	*basesvc.BaseServiceMongoImpl[models.Category]
}

// NewCategoryService tạo mới CategoryService
func NewCategoryService() (*CategoryService, error) {
	categoryCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !exist {
		return nil, fmt.Errorf("failed to get categories collection: %v", common.ErrNotFound)
	}
	return &CategoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Category](categoryCollection),
	}, nil
}

// caseInsensitiveCollation dùng cho so sánh tên không phân biệt hoa thường,
// khớp với collation của unique index trên (org, name).
func caseInsensitiveCollation() *options.Collation {
	return &options.Collation{Locale: "en", Strength: 2}
}

// siblingFilter tạo filter chọn các danh mục cùng tầng (cùng org, cùng cha).
// Danh mục gốc không lưu field parentCategory nên phải match bằng $exists.
func siblingFilter(orgID primitive.ObjectID, parentID *primitive.ObjectID) bson.M {
	filter := bson.M{"ownerOrganizationId": orgID}
	if parentID == nil {
		filter["parentCategory"] = bson.M{"$exists": false}
	} else {
		filter["parentCategory"] = *parentID
	}
	return filter
}

func oidPtrEqual(a, b *primitive.ObjectID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ResolveParentRef chuyển tham chiếu cha từ client thành ObjectID.
// Chuỗi rỗng hoặc "root" nghĩa là danh mục gốc (trả về nil).
// Tham chiếu không phải ObjectID hex hợp lệ trả lỗi 400, cha không tồn tại
// trong cùng organization trả lỗi 404.
func (s *CategoryService) ResolveParentRef(ctx context.Context, orgID primitive.ObjectID, ref string) (*models.Category, error) {
	if ref == "" || ref == taxdto.ParentRootSentinel {
		return nil, nil
	}
	parentID, err := primitive.ObjectIDFromHex(ref)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("parentCategory không hợp lệ: '%s' không phải ObjectID.", ref),
			common.StatusBadRequest,
			err,
		)
	}
	parent, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"_id": parentID, "ownerOrganizationId": orgID}, nil)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.NewError(
				common.ErrCodeBusinessHierarchy,
				fmt.Sprintf("Không tìm thấy danh mục cha với ID: %s", parentID.Hex()),
				common.StatusNotFound,
				err,
			)
		}
		return nil, err
	}
	return &parent, nil
}

// validateCategoryUnique kiểm tra tên không trùng (không phân biệt hoa thường)
// trong toàn bộ organization và slug không trùng với anh em cùng tầng.
// excludeID bỏ qua chính danh mục đang sửa.
func (s *CategoryService) validateCategoryUnique(ctx context.Context, orgID primitive.ObjectID, parentID *primitive.ObjectID, name, slug string, excludeID *primitive.ObjectID) error {
	nameFilter := bson.M{"ownerOrganizationId": orgID, "name": name}
	if excludeID != nil {
		nameFilter["_id"] = bson.M{"$ne": *excludeID}
	}
	nameOpts := options.FindOne().SetCollation(caseInsensitiveCollation())
	if _, err := s.BaseServiceMongoImpl.FindOne(ctx, nameFilter, nameOpts); err == nil {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Danh mục '%s' đã tồn tại trong organization. Tên danh mục không phân biệt hoa thường.", name),
			common.StatusConflict,
			nil,
		)
	} else if err != common.ErrNotFound {
		return err
	}

	slugFilter := siblingFilter(orgID, parentID)
	slugFilter["slug"] = slug
	if excludeID != nil {
		slugFilter["_id"] = bson.M{"$ne": *excludeID}
	}
	if _, err := s.BaseServiceMongoImpl.FindOne(ctx, slugFilter, nil); err == nil {
		return common.NewError(
			common.ErrCodeBusinessOperation,
			fmt.Sprintf("Slug '%s' đã tồn tại trong cùng cấp.", slug),
			common.StatusConflict,
			nil,
		)
	} else if err != common.ErrNotFound {
		return err
	}
	return nil
}

// loadOrgSnapshot load toàn bộ danh mục của một organization vào memory.
// Cây tối đa 4 tầng nên snapshot luôn nhỏ, dùng cho kiểm tra chu trình và độ sâu.
func (s *CategoryService) loadOrgSnapshot(ctx context.Context, orgID primitive.ObjectID) ([]models.Category, error) {
	cats, err := s.BaseServiceMongoImpl.Find(ctx, bson.M{"ownerOrganizationId": orgID}, nil)
	if err != nil {
		if err == common.ErrNotFound {
			return []models.Category{}, nil
		}
		return nil, err
	}
	return cats, nil
}

// InsertOne override: chuẩn hóa slug, tính level từ cha và kiểm tra
// giới hạn độ sâu, tên không trùng trong org, slug không trùng anh em trước khi insert.
// Level luôn tính lại tại đây, bỏ qua giá trị client gửi lên.
func (s *CategoryService) InsertOne(ctx context.Context, data models.Category) (models.Category, error) {
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

	if data.ParentID != nil && !data.ParentID.IsZero() {
		parent, err := s.ResolveParentRef(ctx, data.OwnerOrganizationID, data.ParentID.Hex())
		if err != nil {
			return data, err
		}
		data.Level = parent.Level + 1
		if data.Level > models.CategoryMaxLevel {
			return data, common.NewError(
				common.ErrCodeBusinessHierarchy,
				fmt.Sprintf("Vượt quá độ sâu tối đa của cây danh mục (%d cấp). Danh mục cha '%s' đang ở cấp %d.", models.CategoryMaxLevel+1, parent.Name, parent.Level),
				common.StatusBadRequest,
				nil,
			)
		}
	} else {
		data.ParentID = nil
		data.Level = 0
	}

	if err := s.validateCategoryUnique(ctx, data.OwnerOrganizationID, data.ParentID, data.Name, data.Slug, nil); err != nil {
		return data, err
	}

	return s.BaseServiceMongoImpl.InsertOne(ctx, data)
}

// UpdateCategory cập nhật danh mục theo kiểu patch: chỉ field non-nil được áp dụng.
// Đổi tên tự sinh lại slug trừ khi client gửi slug tường minh. Đổi cha kiểm tra
// chu trình trên toàn bộ chuỗi tổ tiên, kiểm tra độ sâu của cả cây con tại vị trí
// mới, rồi tính lại level cho mọi hậu duệ.
func (s *CategoryService) UpdateCategory(ctx context.Context, id primitive.ObjectID, input *taxdto.CategoryUpdateInput) (models.Category, error) {
	var zero models.Category
	current, err := s.BaseServiceMongoImpl.FindOneById(ctx, id)
	if err != nil {
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

	newParentID := current.ParentID
	parentChanged := false
	var descendantLevels map[primitive.ObjectID]int

	// ParentCategory: nil hoặc "" = không đổi; "root" = chuyển lên gốc; ObjectID hex = chuyển cha
	if input.ParentCategory != nil && *input.ParentCategory != "" {
		ref := *input.ParentCategory
		var desired *primitive.ObjectID
		if ref != taxdto.ParentRootSentinel {
			oid, err := primitive.ObjectIDFromHex(ref)
			if err != nil {
				return zero, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("parentCategory không hợp lệ: '%s' không phải ObjectID.", ref),
					common.StatusBadRequest,
					err,
				)
			}
			desired = &oid
		}

		if !oidPtrEqual(desired, current.ParentID) {
			parentChanged = true
			newParentID = desired

			snapshot, err := s.loadOrgSnapshot(ctx, current.OwnerOrganizationID)
			if err != nil {
				return zero, err
			}
			byID := categoriesByID(snapshot)
			byParent := categoriesByParent(snapshot)

			newLevel := 0
			if desired != nil {
				parent, ok := byID[*desired]
				if !ok {
					return zero, common.NewError(
						common.ErrCodeBusinessHierarchy,
						fmt.Sprintf("Không tìm thấy danh mục cha với ID: %s", desired.Hex()),
						common.StatusNotFound,
						nil,
					)
				}
				if WouldCreateCycle(byID, current.ID, *desired) {
					return zero, common.NewError(
						common.ErrCodeBusinessHierarchy,
						fmt.Sprintf("Không thể chuyển danh mục '%s' vào '%s' vì sẽ tạo chu trình trong cây danh mục.", current.Name, parent.Name),
						common.StatusBadRequest,
						nil,
					)
				}
				newLevel = parent.Level + 1
			}

			if newLevel+SubtreeHeight(byParent, current.ID) > models.CategoryMaxLevel {
				return zero, common.NewError(
					common.ErrCodeBusinessHierarchy,
					fmt.Sprintf("Không thể chuyển danh mục '%s': cây con tại vị trí mới vượt quá độ sâu tối đa (%d cấp).", current.Name, models.CategoryMaxLevel+1),
					common.StatusBadRequest,
					nil,
				)
			}

			if desired != nil {
				set["parentCategory"] = *desired
			} else {
				unset["parentCategory"] = ""
			}
			set["level"] = newLevel

			descendantLevels = RecomputeSubtreeLevels(byParent, current.ID, newLevel)
			delete(descendantLevels, current.ID)
		}
	}

	if newName != current.Name || newSlug != current.Slug || parentChanged {
		if err := s.validateCategoryUnique(ctx, current.OwnerOrganizationID, newParentID, newName, newSlug, &current.ID); err != nil {
			return zero, err
		}
	}

	applyStringField(set, "description", input.Description, current.Description)
	applyStringField(set, "shortDescription", input.ShortDescription, current.ShortDescription)
	applyStringField(set, "image", input.Image, current.Image)
	applyStringField(set, "icon", input.Icon, current.Icon)
	applyStringField(set, "color", input.Color, current.Color)
	applyStringField(set, "seoTitle", input.SEOTitle, current.SEOTitle)
	applyStringField(set, "seoDescription", input.SEODescription, current.SEODescription)
	applyStringField(set, "seoKeywords", input.SEOKeywords, current.SEOKeywords)
	if input.SortOrder != nil && *input.SortOrder != current.SortOrder {
		set["sortOrder"] = *input.SortOrder
	}
	if input.IsActive != nil && *input.IsActive != current.IsActive {
		set["isActive"] = *input.IsActive
	}
	if input.IsVisible != nil && *input.IsVisible != current.IsVisible {
		set["isVisible"] = *input.IsVisible
	}
	if input.IsFeatured != nil && *input.IsFeatured != current.IsFeatured {
		set["isFeatured"] = *input.IsFeatured
	}

	if len(set) == 0 && len(unset) == 0 {
		return current, nil
	}

	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, id, &basesvc.UpdateData{Set: set, Unset: unset})
	if err != nil {
		return zero, err
	}

	// Ghi level mới cho hậu duệ theo từng nhóm cùng level
	if len(descendantLevels) > 0 {
		byLevel := make(map[int][]primitive.ObjectID)
		for descID, level := range descendantLevels {
			byLevel[level] = append(byLevel[level], descID)
		}
		for level, ids := range byLevel {
			_, err := s.BaseServiceMongoImpl.UpdateMany(ctx,
				bson.M{"_id": bson.M{"$in": ids}},
				&basesvc.UpdateData{Set: map[string]interface{}{"level": level}},
				nil,
			)
			if err != nil {
				return zero, err
			}
		}
	}

	return updated, nil
}

// applyStringField thêm field vào $set nếu client gửi giá trị khác hiện tại.
func applyStringField(set map[string]interface{}, key string, input *string, current string) {
	if input != nil && *input != current {
		set[key] = *input
	}
}

// ListCategories liệt kê danh mục với filter và phân trang, sort ổn định
// theo sortOrder rồi tên. baseFilter là filter đã giới hạn theo organization
// của caller, các điều kiện của query được AND thêm vào.
func (s *CategoryService) ListCategories(ctx context.Context, query *taxdto.CategoryListQuery, baseFilter map[string]interface{}) (*basemodels.PaginateResult[models.Category], error) {
	filter := bson.M{}
	for k, v := range baseFilter {
		filter[k] = v
	}

	switch {
	case query.ParentCategory == taxdto.ParentRootSentinel:
		filter["parentCategory"] = bson.M{"$exists": false}
	case query.ParentCategory != "":
		parentID, err := primitive.ObjectIDFromHex(query.ParentCategory)
		if err != nil {
			return nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("parentCategory không hợp lệ: '%s' không phải ObjectID.", query.ParentCategory),
				common.StatusBadRequest,
				err,
			)
		}
		filter["parentCategory"] = parentID
	}

	if query.Level != nil {
		filter["level"] = *query.Level
	}
	if query.Search != "" {
		re := bson.M{"$regex": regexp.QuoteMeta(query.Search), "$options": "i"}
		filter["$or"] = []bson.M{{"name": re}, {"description": re}}
	}
	if !query.IncludeInactive {
		filter["isActive"] = true
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

// GetTree trả về forest danh mục của organization theo baseFilter.
// Load phẳng một lượt rồi lắp cây trong memory.
func (s *CategoryService) GetTree(ctx context.Context, baseFilter map[string]interface{}, includeInactive bool) ([]*models.CategoryTreeNode, error) {
	filter := bson.M{}
	for k, v := range baseFilter {
		filter[k] = v
	}
	if !includeInactive {
		filter["isActive"] = true
	}

	cats, err := s.BaseServiceMongoImpl.Find(ctx, filter, nil)
	if err != nil {
		if err == common.ErrNotFound {
			return []*models.CategoryTreeNode{}, nil
		}
		return nil, err
	}
	return BuildCategoryTree(cats), nil
}
