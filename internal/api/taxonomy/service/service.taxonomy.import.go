package taxsvc

import (
	"context"
	"fmt"

	taxdto "meta_market/internal/api/taxonomy/dto"
	models "meta_market/internal/api/taxonomy/models"
	"meta_market/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryFromCreateInput dựng model từ input tạo danh mục. Các flag không
// gửi mặc định bật (danh mục mới active và hiển thị).
func CategoryFromCreateInput(row taxdto.CategoryCreateInput, orgID primitive.ObjectID, parentID *primitive.ObjectID) models.Category {
	cat := models.Category{
		Name:                row.Name,
		Slug:                row.Slug,
		Description:         row.Description,
		ShortDescription:    row.ShortDescription,
		Image:               row.Image,
		Icon:                row.Icon,
		Color:               row.Color,
		ParentID:            parentID,
		SortOrder:           row.SortOrder,
		IsActive:            true,
		IsVisible:           true,
		SEOTitle:            row.SEOTitle,
		SEODescription:      row.SEODescription,
		SEOKeywords:         row.SEOKeywords,
		OwnerOrganizationID: orgID,
	}
	if row.IsActive != nil {
		cat.IsActive = *row.IsActive
	}
	if row.IsVisible != nil {
		cat.IsVisible = *row.IsVisible
	}
	if row.IsFeatured != nil {
		cat.IsFeatured = *row.IsFeatured
	}
	return cat
}

// updateInputFromImportRow dựng patch từ một dòng import khi chế độ update.
// Chỉ các field có giá trị mới được đưa vào patch, field rỗng giữ nguyên.
func updateInputFromImportRow(row taxdto.CategoryCreateInput) *taxdto.CategoryUpdateInput {
	input := &taxdto.CategoryUpdateInput{
		Name:       &row.Name,
		IsActive:   row.IsActive,
		IsVisible:  row.IsVisible,
		IsFeatured: row.IsFeatured,
	}
	if row.Slug != "" {
		input.Slug = &row.Slug
	}
	if row.Description != "" {
		input.Description = &row.Description
	}
	if row.ShortDescription != "" {
		input.ShortDescription = &row.ShortDescription
	}
	if row.Image != "" {
		input.Image = &row.Image
	}
	if row.Icon != "" {
		input.Icon = &row.Icon
	}
	if row.Color != "" {
		input.Color = &row.Color
	}
	if row.SEOTitle != "" {
		input.SEOTitle = &row.SEOTitle
	}
	if row.SEODescription != "" {
		input.SEODescription = &row.SEODescription
	}
	if row.SEOKeywords != "" {
		input.SEOKeywords = &row.SEOKeywords
	}
	if row.SortOrder != 0 {
		input.SortOrder = &row.SortOrder
	}
	return input
}

// ImportCategories import danh mục hàng loạt, mỗi dòng xử lý độc lập.
// Dòng được đối chiếu theo slug trong cùng (org, cha): chưa có thì tạo mới,
// đã có thì bỏ qua hoặc cập nhật tùy Mode. Mỗi dòng đi qua đúng các kiểm tra
// của create/update đơn lẻ; dòng lỗi không chặn các dòng còn lại.
func (s *CategoryService) ImportCategories(ctx context.Context, orgID primitive.ObjectID, input *taxdto.TaxonomyImportInput) (*taxdto.TaxonomyImportResult, error) {
	mode := input.Mode
	if mode == "" {
		mode = taxdto.ImportModeSkip
	}

	result := &taxdto.TaxonomyImportResult{
		Rows: make([]taxdto.ImportRowResult, 0, len(input.Rows)),
	}

	for i, row := range input.Rows {
		slug := row.Slug
		if slug == "" {
			slug = ToSlug(row.Name)
		} else {
			slug = ToSlug(slug)
		}

		rowResult := taxdto.ImportRowResult{Row: i, Slug: slug}

		if slug == "" {
			rowResult.Outcome = taxdto.ImportOutcomeError
			rowResult.Error = fmt.Sprintf("Không tạo được slug từ tên '%s'.", row.Name)
			result.Errors++
			result.Rows = append(result.Rows, rowResult)
			continue
		}

		parent, err := s.ResolveParentRef(ctx, orgID, row.ParentCategory)
		if err != nil {
			rowResult.Outcome = taxdto.ImportOutcomeError
			rowResult.Error = err.Error()
			result.Errors++
			result.Rows = append(result.Rows, rowResult)
			continue
		}
		var parentID *primitive.ObjectID
		if parent != nil {
			parentID = &parent.ID
		}

		// Đối chiếu theo slug trong cùng (org, cha)
		existingFilter := siblingFilter(orgID, parentID)
		existingFilter["slug"] = slug
		existing, err := s.BaseServiceMongoImpl.FindOne(ctx, existingFilter, nil)

		switch {
		case err == common.ErrNotFound:
			cat := CategoryFromCreateInput(row, orgID, parentID)
			cat.Slug = slug
			if _, err := s.InsertOne(ctx, cat); err != nil {
				rowResult.Outcome = taxdto.ImportOutcomeError
				rowResult.Error = err.Error()
				result.Errors++
			} else {
				rowResult.Outcome = taxdto.ImportOutcomeCreated
				result.Created++
			}

		case err != nil:
			rowResult.Outcome = taxdto.ImportOutcomeError
			rowResult.Error = err.Error()
			result.Errors++

		case mode == taxdto.ImportModeSkip:
			rowResult.Outcome = taxdto.ImportOutcomeSkipped
			result.Skipped++

		default:
			if _, err := s.UpdateCategory(ctx, existing.ID, updateInputFromImportRow(row)); err != nil {
				rowResult.Outcome = taxdto.ImportOutcomeError
				rowResult.Error = err.Error()
				result.Errors++
			} else {
				rowResult.Outcome = taxdto.ImportOutcomeUpdated
				result.Updated++
			}
		}

		result.Rows = append(result.Rows, rowResult)
	}

	return result, nil
}
