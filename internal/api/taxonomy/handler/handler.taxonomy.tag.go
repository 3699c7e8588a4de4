package taxhdl

import (
	"fmt"

	basehdl "meta_market/internal/api/base/handler"
	taxdto "meta_market/internal/api/taxonomy/dto"
	models "meta_market/internal/api/taxonomy/models"
	taxsvc "meta_market/internal/api/taxonomy/service"
	"meta_market/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TagHandler xử lý các request liên quan đến tag.
// Shadow InsertOne/UpdateById của base để chạy qua kiểm tra uniqueness theo
// (org, scope, danh mục) và bảo vệ tag hệ thống.
type TagHandler struct {
	*basehdl.BaseHandler[models.Tag, taxdto.TagCreateInput, taxdto.TagUpdateInput]
	TagService *taxsvc.TagService
}

// NewTagHandler tạo mới TagHandler
func NewTagHandler() (*TagHandler, error) {
	tagService, err := taxsvc.NewTagService()
	if err != nil {
		return nil, fmt.Errorf("failed to create tag service: %v", err)
	}
	base := basehdl.NewBaseHandler[models.Tag, taxdto.TagCreateInput, taxdto.TagUpdateInput](tagService)
	return &TagHandler{
		BaseHandler: base,
		TagService:  tagService,
	}, nil
}

func (h *TagHandler) resolveOwnerOrg(c fiber.Ctx, fromRequest string) (primitive.ObjectID, error) {
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

// InsertOne tạo tag mới (shadow base InsertOne).
// CategoryID rỗng là tag toàn cục, ObjectID hex là tag cục bộ của danh mục đó.
func (h *TagHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input taxdto.TagCreateInput
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

		model := models.Tag{
			Name:                input.Name,
			Slug:                input.Slug,
			Scope:               input.Scope,
			Description:         input.Description,
			Color:               input.Color,
			SortOrder:           input.SortOrder,
			IsActive:            true,
			OwnerOrganizationID: orgID,
		}
		if input.IsActive != nil {
			model.IsActive = *input.IsActive
		}
		if input.CategoryID != "" {
			categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
			if err != nil {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("categoryId không hợp lệ: '%s' không phải ObjectID.", input.CategoryID),
					common.StatusBadRequest,
					err,
				))
				return nil
			}
			model.CategoryID = &categoryID
		}

		data, err := h.TagService.InsertOne(requestContext(c), model)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// UpdateById cập nhật tag theo kiểu patch (shadow base UpdateById).
// Tag hệ thống từ chối mọi patch với lỗi 403.
func (h *TagHandler) UpdateById(c fiber.Ctx) error {
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

		var input taxdto.TagUpdateInput
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
		data, err := h.TagService.UpdateTag(requestContext(c), oid, &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleList liệt kê tag với filter theo scope/danh mục/tên và phân trang.
func (h *TagHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var query taxdto.TagListQuery
		if err := h.ParseRequestQuery(c, &query); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Query không hợp lệ: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&query); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		baseFilter := h.ApplyOrganizationFilter(c, map[string]interface{}{})
		data, err := h.TagService.ListTags(c.Context(), &query, baseFilter)
		h.HandleResponse(c, data, err)
		return nil
	})
}
