// Package taxhdl xử lý các request thuộc domain taxonomy.
package taxhdl

import (
	"context"
	"fmt"

	authsvc "meta_market/internal/api/auth/service"
	basehdl "meta_market/internal/api/base/handler"
	taxdto "meta_market/internal/api/taxonomy/dto"
	models "meta_market/internal/api/taxonomy/models"
	taxsvc "meta_market/internal/api/taxonomy/service"
	"meta_market/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryHandler xử lý các request liên quan đến danh mục.
// Shadow InsertOne/UpdateById của base để chạy qua các kiểm tra cây danh mục
// (cha tồn tại, độ sâu, chu trình, tên/slug không trùng anh em).
type CategoryHandler struct {
	*basehdl.BaseHandler[models.Category, taxdto.CategoryCreateInput, taxdto.CategoryUpdateInput]
	CategoryService *taxsvc.CategoryService
}

// NewCategoryHandler tạo mới CategoryHandler
func NewCategoryHandler() (*CategoryHandler, error) {
	categoryService, err := taxsvc.NewCategoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %v", err)
	}
	base := basehdl.NewBaseHandler[models.Category, taxdto.CategoryCreateInput, taxdto.CategoryUpdateInput](categoryService)
	return &CategoryHandler{
		BaseHandler:     base,
		CategoryService: categoryService,
	}, nil
}

// requestContext gắn userID từ Locals vào context để service check admin.
func requestContext(c fiber.Ctx) context.Context {
	ctx := c.Context()
	if userIDStr, ok := c.Locals("user_id").(string); ok && userIDStr != "" {
		if userID, err := primitive.ObjectIDFromHex(userIDStr); err == nil {
			ctx = authsvc.SetUserIDToContext(ctx, userID)
		}
	}
	return ctx
}

// resolveOwnerOrg xác định organization sở hữu cho thao tác ghi:
// ưu tiên ownerOrganizationId trong request (có kiểm tra quyền),
// không có thì dùng active organization từ context.
func (h *CategoryHandler) resolveOwnerOrg(c fiber.Ctx, fromRequest string) (primitive.ObjectID, error) {
	if fromRequest != "" {
		orgID, err := primitive.ObjectIDFromHex(fromRequest)
		if err != nil {
			return primitive.NilObjectID, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ownerOrganizationId không hợp lệ: '%s' không phải ObjectID.", fromRequest),
				common.StatusBadRequest,
				err,
			)
		}
		if err := h.ValidateUserHasAccessToOrg(c, orgID); err != nil {
			return primitive.NilObjectID, err
		}
		return orgID, nil
	}

	activeOrgID := h.GetActiveOrganizationID(c)
	if activeOrgID == nil || activeOrgID.IsZero() {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationInput,
			"Thiếu organization context. Chọn organization đang hoạt động hoặc gửi ownerOrganizationId.",
			common.StatusBadRequest,
			nil,
		)
	}
	return *activeOrgID, nil
}

// InsertOne tạo danh mục mới (shadow base InsertOne).
// ParentCategory nhận ObjectID hex, "root" hoặc rỗng (danh mục gốc).
func (h *CategoryHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input taxdto.CategoryCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		orgID, err := h.resolveOwnerOrg(c, input.OwnerOrganizationID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ctx := requestContext(c)

		parent, err := h.CategoryService.ResolveParentRef(ctx, orgID, input.ParentCategory)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var parentID *primitive.ObjectID
		if parent != nil {
			parentID = &parent.ID
		}

		model := taxsvc.CategoryFromCreateInput(input, orgID, parentID)
		data, err := h.CategoryService.InsertOne(ctx, model)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// UpdateById cập nhật danh mục theo kiểu patch (shadow base UpdateById).
// Đổi cha sẽ kiểm tra chu trình/độ sâu và tính lại level cho cả cây con.
func (h *CategoryHandler) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := h.GetIDFromContext(c)
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		if err := h.ValidateOrganizationAccess(c, id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input taxdto.CategoryUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu cập nhật không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		oid, _ := primitive.ObjectIDFromHex(id)
		data, err := h.CategoryService.UpdateCategory(requestContext(c), oid, &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleList liệt kê danh mục với filter theo cha/level/tên và phân trang.
func (h *CategoryHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var query taxdto.CategoryListQuery
		if err := h.ParseRequestQuery(c, &query); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Query không hợp lệ: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		baseFilter := h.ApplyOrganizationFilter(c, map[string]interface{}{})
		data, err := h.CategoryService.ListCategories(c.Context(), &query, baseFilter)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleTree trả về forest danh mục của organization: load phẳng một lượt,
// lắp cây trong memory, anh em sort theo sortOrder rồi tên.
func (h *CategoryHandler) HandleTree(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var query taxdto.CategoryListQuery
		if err := h.ParseRequestQuery(c, &query); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Query không hợp lệ: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		baseFilter := h.ApplyOrganizationFilter(c, map[string]interface{}{})
		data, err := h.CategoryService.GetTree(c.Context(), baseFilter, query.IncludeInactive)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleImport import danh mục hàng loạt, đối chiếu theo slug trong cùng (org, cha).
// Mỗi dòng xử lý độc lập, dòng lỗi không chặn các dòng còn lại.
func (h *CategoryHandler) HandleImport(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input taxdto.TaxonomyImportInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu import không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		orgID, err := h.resolveOwnerOrg(c, "")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.CategoryService.ImportCategories(requestContext(c), orgID, &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}
