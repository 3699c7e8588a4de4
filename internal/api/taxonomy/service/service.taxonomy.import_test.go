// Package taxsvc - Test dựng model/patch từ dòng import.
package taxsvc

import (
	"testing"

	taxdto "meta_market/internal/api/taxonomy/dto"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCategoryFromCreateInput_MacDinhActiveVaVisible(t *testing.T) {
	orgID := primitive.NewObjectID()
	cat := CategoryFromCreateInput(taxdto.CategoryCreateInput{Name: "Books"}, orgID, nil)

	if !cat.IsActive {
		t.Error("danh mục mới phải mặc định isActive = true")
	}
	if !cat.IsVisible {
		t.Error("danh mục mới phải mặc định isVisible = true")
	}
	if cat.IsFeatured {
		t.Error("danh mục mới không được mặc định isFeatured")
	}
	if cat.OwnerOrganizationID != orgID {
		t.Error("ownerOrganizationId không được gán đúng")
	}
	if cat.ParentID != nil {
		t.Error("không gửi cha thì phải là danh mục gốc")
	}
}

func TestCategoryFromCreateInput_FlagGuiLenThangMacDinh(t *testing.T) {
	f := false
	cat := CategoryFromCreateInput(taxdto.CategoryCreateInput{Name: "Books", IsActive: &f, IsVisible: &f}, primitive.NewObjectID(), nil)

	if cat.IsActive {
		t.Error("isActive gửi false phải được giữ nguyên")
	}
	if cat.IsVisible {
		t.Error("isVisible gửi false phải được giữ nguyên")
	}
}

func TestUpdateInputFromImportRow_ChiFieldCoGiaTri(t *testing.T) {
	input := updateInputFromImportRow(taxdto.CategoryCreateInput{
		Name:        "Books",
		Description: "Sách các loại",
	})

	if input.Name == nil || *input.Name != "Books" {
		t.Error("name phải luôn có trong patch")
	}
	if input.Description == nil || *input.Description != "Sách các loại" {
		t.Error("description có giá trị phải vào patch")
	}
	if input.Image != nil {
		t.Error("field rỗng không được vào patch")
	}
	if input.Slug != nil {
		t.Error("slug rỗng không được vào patch")
	}
	if input.SortOrder != nil {
		t.Error("sortOrder 0 không được vào patch")
	}
}
