// Package cataloghdl xử lý các request thuộc domain catalog.
package cataloghdl

import (
	"context"
	"fmt"

	authsvc "meta_market/internal/api/auth/service"
	basehdl "meta_market/internal/api/base/handler"
	catalogdto "meta_market/internal/api/catalog/dto"
	models "meta_market/internal/api/catalog/models"
	catalogsvc "meta_market/internal/api/catalog/service"
	"meta_market/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductHandler xử lý các request liên quan đến sản phẩm.
// Shadow InsertOne/UpdateById của base để kiểm tra danh mục/tag trước khi ghi.
type ProductHandler struct {
	*basehdl.BaseHandler[models.Product, catalogdto.ProductCreateInput, catalogdto.ProductUpdateInput]
	ProductService *catalogsvc.ProductService
}

// NewProductHandler tạo mới ProductHandler
func NewProductHandler() (*ProductHandler, error) {
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}
	base := basehdl.NewBaseHandler[models.Product, catalogdto.ProductCreateInput, catalogdto.ProductUpdateInput](productService)
	return &ProductHandler{
		BaseHandler:    base,
		ProductService: productService,
	}, nil
}

func requestContext(c fiber.Ctx) context.Context {
	ctx := c.Context()
	if userIDStr, ok := c.Locals("user_id").(string); ok && userIDStr != "" {
		if userID, err := primitive.ObjectIDFromHex(userIDStr); err == nil {
			ctx = authsvc.SetUserIDToContext(ctx, userID)
		}
	}
	return ctx
}

// InsertOne tạo sản phẩm mới (shadow base InsertOne).
func (h *ProductHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input catalogdto.ProductCreateInput
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

		var orgID primitive.ObjectID
		if input.OwnerOrganizationID != "" {
			oid, err := primitive.ObjectIDFromHex(input.OwnerOrganizationID)
			if err != nil {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("ownerOrganizationId không hợp lệ: '%s' không phải ObjectID.", input.OwnerOrganizationID),
					common.StatusBadRequest,
					err,
				))
				return nil
			}
			if err := h.ValidateUserHasAccessToOrg(c, oid); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			orgID = oid
		} else {
			activeOrgID := h.GetActiveOrganizationID(c)
			if activeOrgID == nil || activeOrgID.IsZero() {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationInput,
					"Thiếu organization context. Chọn organization đang hoạt động hoặc gửi ownerOrganizationId.",
					common.StatusBadRequest,
					nil,
				))
				return nil
			}
			orgID = *activeOrgID
		}

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

		tagIDs := make([]primitive.ObjectID, 0, len(input.TagIDs))
		for _, ref := range input.TagIDs {
			tagID, err := primitive.ObjectIDFromHex(ref)
			if err != nil {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("tagIds chứa giá trị không hợp lệ: '%s' không phải ObjectID.", ref),
					common.StatusBadRequest,
					err,
				))
				return nil
			}
			tagIDs = append(tagIDs, tagID)
		}

		model := models.Product{
			Name:                input.Name,
			Slug:                input.Slug,
			SKU:                 input.SKU,
			Description:         input.Description,
			Price:               input.Price,
			Currency:            input.Currency,
			CategoryID:          categoryID,
			TagIDs:              tagIDs,
			Images:              input.Images,
			IsActive:            true,
			OwnerOrganizationID: orgID,
		}
		if input.IsActive != nil {
			model.IsActive = *input.IsActive
		}

		data, err := h.ProductService.InsertOne(requestContext(c), model)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// UpdateById cập nhật sản phẩm theo kiểu patch (shadow base UpdateById).
func (h *ProductHandler) UpdateById(c fiber.Ctx) error {
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

		var input catalogdto.ProductUpdateInput
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
		data, err := h.ProductService.UpdateProduct(requestContext(c), oid, &input)
		h.HandleResponse(c, data, err)
		return nil
	})
}
