// Package taxsvc - Test các invariant cần database thật: tên trùng, chặn xóa,
// giới hạn độ sâu, chu trình, bảo vệ tag hệ thống.
// Đặt MONGODB_TEST_URI trỏ tới một MongoDB đang chạy để bật các test này.
package taxsvc

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	basesvc "meta_market/internal/api/base/service"
	taxdto "meta_market/internal/api/taxonomy/dto"
	models "meta_market/internal/api/taxonomy/models"
	"meta_market/internal/common"
	"meta_market/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setupTaxonomyDB kết nối MongoDB test, đăng ký collections vào registry và
// tạo services. Database dùng tên duy nhất theo thời gian và bị drop khi test xong.
func setupTaxonomyDB(t *testing.T) (context.Context, *CategoryService, *TagService, *mongo.Database) {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("Bỏ qua: đặt MONGODB_TEST_URI trỏ tới MongoDB để chạy test này")
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("không kết nối được MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("không ping được MongoDB: %v", err)
	}

	db := client.Database(fmt.Sprintf("taxonomy_test_%d", time.Now().UnixNano()))

	global.MongoDB_ColNames.Categories = "taxonomy_categories"
	global.MongoDB_ColNames.Tags = "taxonomy_tags"
	global.MongoDB_ColNames.Products = "catalog_products"
	for _, name := range []string{
		global.MongoDB_ColNames.Categories,
		global.MongoDB_ColNames.Tags,
		global.MongoDB_ColNames.Products,
	} {
		if _, err := global.RegistryCollections.Register(name, db.Collection(name)); err != nil {
			t.Fatalf("không đăng ký được collection %s: %v", name, err)
		}
	}

	categoryService, err := NewCategoryService()
	if err != nil {
		t.Fatalf("không tạo được CategoryService: %v", err)
	}
	tagService, err := NewTagService()
	if err != nil {
		t.Fatalf("không tạo được TagService: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return ctx, categoryService, tagService, db
}

// wantStatus kiểm tra err là *common.Error với HTTP status mong muốn.
func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("muốn lỗi status %d, không có lỗi", status)
	}
	cerr, ok := err.(*common.Error)
	if !ok {
		t.Fatalf("muốn *common.Error, có %T: %v", err, err)
	}
	if cerr.StatusCode != status {
		t.Fatalf("muốn status %d, có %d (%s)", status, cerr.StatusCode, cerr.Message)
	}
}

func mustInsertCategory(t *testing.T, ctx context.Context, s *CategoryService, orgID primitive.ObjectID, name string, parentID *primitive.ObjectID) models.Category {
	t.Helper()
	cat, err := s.InsertOne(ctx, models.Category{
		Name:                name,
		ParentID:            parentID,
		OwnerOrganizationID: orgID,
		IsActive:            true,
	})
	if err != nil {
		t.Fatalf("không tạo được danh mục '%s': %v", name, err)
	}
	return cat
}

func TestCategoryService_TenTrungKhongPhanBietHoaThuongToanOrg(t *testing.T) {
	ctx, categoryService, _, _ := setupTaxonomyDB(t)
	orgID := primitive.NewObjectID()

	electronics := mustInsertCategory(t, ctx, categoryService, orgID, "Electronics", nil)
	furniture := mustInsertCategory(t, ctx, categoryService, orgID, "Furniture", nil)
	mustInsertCategory(t, ctx, categoryService, orgID, "Laptops", &electronics.ID)

	// Tên trùng (chỉ khác hoa thường) dưới cha KHÁC vẫn phải bị chặn: unique toàn org
	_, err := categoryService.InsertOne(ctx, models.Category{
		Name:                "laptops",
		ParentID:            &furniture.ID,
		OwnerOrganizationID: orgID,
		IsActive:            true,
	})
	wantStatus(t, err, common.StatusConflict)

	// Org khác thì không bị ảnh hưởng
	otherOrg := primitive.NewObjectID()
	if _, err := categoryService.InsertOne(ctx, models.Category{
		Name:                "Laptops",
		OwnerOrganizationID: otherOrg,
		IsActive:            true,
	}); err != nil {
		t.Fatalf("org khác phải tạo được tên trùng: %v", err)
	}
}

func TestCategoryService_XoaDanhMucBiChanKhiCoConHoacSanPham(t *testing.T) {
	ctx, categoryService, _, db := setupTaxonomyDB(t)
	orgID := primitive.NewObjectID()

	parent := mustInsertCategory(t, ctx, categoryService, orgID, "Cha", nil)
	child := mustInsertCategory(t, ctx, categoryService, orgID, "Con", &parent.ID)

	// Có danh mục con: chặn xóa
	wantStatus(t, categoryService.DeleteById(ctx, parent.ID), common.StatusConflict)

	// Có sản phẩm thuộc danh mục: chặn xóa
	products := db.Collection(global.MongoDB_ColNames.Products)
	if _, err := products.InsertOne(ctx, bson.M{
		"name":                "Bàn phím cơ",
		"categoryId":          child.ID,
		"ownerOrganizationId": orgID,
	}); err != nil {
		t.Fatalf("không tạo được sản phẩm: %v", err)
	}
	wantStatus(t, categoryService.DeleteById(ctx, child.ID), common.StatusConflict)

	// Gỡ sản phẩm xong thì xóa được, rồi xóa nốt cha
	if _, err := products.DeleteMany(ctx, bson.M{"categoryId": child.ID}); err != nil {
		t.Fatalf("không xóa được sản phẩm: %v", err)
	}
	if err := categoryService.DeleteById(ctx, child.ID); err != nil {
		t.Fatalf("danh mục hết sản phẩm phải xóa được: %v", err)
	}
	if err := categoryService.DeleteById(ctx, parent.ID); err != nil {
		t.Fatalf("danh mục hết con phải xóa được: %v", err)
	}
}

func TestCategoryService_VuotGioiHanDoSau(t *testing.T) {
	ctx, categoryService, _, _ := setupTaxonomyDB(t)
	orgID := primitive.NewObjectID()

	// Chuỗi đủ 4 tầng (level 0..3)
	var parentID *primitive.ObjectID
	for i := 0; i <= models.CategoryMaxLevel; i++ {
		cat := mustInsertCategory(t, ctx, categoryService, orgID, fmt.Sprintf("Tầng %d", i), parentID)
		if cat.Level != i {
			t.Fatalf("tầng %d phải có level %d, có %d", i, i, cat.Level)
		}
		id := cat.ID
		parentID = &id
	}

	// Tầng thứ 5 vượt giới hạn
	_, err := categoryService.InsertOne(ctx, models.Category{
		Name:                "Tầng quá sâu",
		ParentID:            parentID,
		OwnerOrganizationID: orgID,
		IsActive:            true,
	})
	wantStatus(t, err, common.StatusBadRequest)
}

func TestCategoryService_ChuyenVaoHauDueBiChan(t *testing.T) {
	ctx, categoryService, _, _ := setupTaxonomyDB(t)
	orgID := primitive.NewObjectID()

	a := mustInsertCategory(t, ctx, categoryService, orgID, "A", nil)
	b := mustInsertCategory(t, ctx, categoryService, orgID, "B", &a.ID)
	c := mustInsertCategory(t, ctx, categoryService, orgID, "C", &b.ID)

	// Chuyển A vào hậu duệ gián tiếp C: chu trình hai bước phải bị phát hiện
	ref := c.ID.Hex()
	_, err := categoryService.UpdateCategory(ctx, a.ID, &taxdto.CategoryUpdateInput{ParentCategory: &ref})
	wantStatus(t, err, common.StatusBadRequest)

	// Chuyển B lên gốc thì hợp lệ, level của B và C được tính lại
	root := taxdto.ParentRootSentinel
	updated, err := categoryService.UpdateCategory(ctx, b.ID, &taxdto.CategoryUpdateInput{ParentCategory: &root})
	if err != nil {
		t.Fatalf("chuyển lên gốc phải hợp lệ: %v", err)
	}
	if updated.Level != 0 {
		t.Errorf("B sau khi lên gốc phải có level 0, có %d", updated.Level)
	}
	cAfter, err := categoryService.FindOneById(ctx, c.ID)
	if err != nil {
		t.Fatalf("không đọc lại được C: %v", err)
	}
	if cAfter.Level != 1 {
		t.Errorf("C phải được tính lại level 1, có %d", cAfter.Level)
	}
}

func TestCategoryService_ParentRongNghiaLaKhongDoi(t *testing.T) {
	ctx, categoryService, _, _ := setupTaxonomyDB(t)
	orgID := primitive.NewObjectID()

	parent := mustInsertCategory(t, ctx, categoryService, orgID, "Cha", nil)
	child := mustInsertCategory(t, ctx, categoryService, orgID, "Con", &parent.ID)

	empty := ""
	desc := "mô tả mới"
	updated, err := categoryService.UpdateCategory(ctx, child.ID, &taxdto.CategoryUpdateInput{
		ParentCategory: &empty,
		Description:    &desc,
	})
	if err != nil {
		t.Fatalf("patch với parentCategory rỗng phải hợp lệ: %v", err)
	}
	if updated.ParentID == nil || *updated.ParentID != parent.ID {
		t.Error("parentCategory rỗng phải giữ nguyên cha hiện tại, không chuyển lên gốc")
	}
	if updated.Level != 1 {
		t.Errorf("level phải giữ nguyên 1, có %d", updated.Level)
	}
}

func TestCategoryService_SearchTheoTenVaMoTa(t *testing.T) {
	ctx, categoryService, _, _ := setupTaxonomyDB(t)
	orgID := primitive.NewObjectID()

	_, err := categoryService.InsertOne(ctx, models.Category{
		Name:                "Peripherals",
		Description:         "mechanical keyboards and accessories",
		OwnerOrganizationID: orgID,
		IsActive:            true,
	})
	if err != nil {
		t.Fatalf("không tạo được danh mục: %v", err)
	}

	result, err := categoryService.ListCategories(ctx,
		&taxdto.CategoryListQuery{Search: "keyboard"},
		map[string]interface{}{"ownerOrganizationId": orgID},
	)
	if err != nil {
		t.Fatalf("list lỗi: %v", err)
	}
	if result.ItemCount != 1 {
		t.Errorf("search phải match trên cả mô tả, muốn 1 kết quả, có %d", result.ItemCount)
	}
}

func TestTagService_TagHeThongTuChoiMoiPatchVaXoa(t *testing.T) {
	ctx, _, tagService, _ := setupTaxonomyDB(t)
	orgID := primitive.NewObjectID()

	initCtx := basesvc.WithSystemDataInsertAllowed(ctx)
	systemTag, err := tagService.InsertOne(initCtx, models.Tag{
		Name:                "Clearance",
		Scope:               models.TagScopeProduct,
		IsSystem:            true,
		IsActive:            true,
		OwnerOrganizationID: orgID,
	})
	if err != nil {
		t.Fatalf("không seed được tag hệ thống: %v", err)
	}

	// Đổi tên: 403
	name := "Sale"
	_, err = tagService.UpdateTag(ctx, systemTag.ID, &taxdto.TagUpdateInput{Name: &name})
	wantStatus(t, err, common.StatusForbidden)

	// Bật/tắt isActive cũng là 403
	off := false
	_, err = tagService.UpdateTag(ctx, systemTag.ID, &taxdto.TagUpdateInput{IsActive: &off})
	wantStatus(t, err, common.StatusForbidden)

	// Patch rỗng vẫn là 403
	_, err = tagService.UpdateTag(ctx, systemTag.ID, &taxdto.TagUpdateInput{})
	wantStatus(t, err, common.StatusForbidden)

	// Xóa: 403
	wantStatus(t, tagService.DeleteById(ctx, systemTag.ID), common.StatusForbidden)

	// Tag thường cùng scope vẫn sửa/xóa bình thường
	normalTag, err := tagService.InsertOne(ctx, models.Tag{
		Name:                "Summer",
		Scope:               models.TagScopeProduct,
		IsActive:            true,
		OwnerOrganizationID: orgID,
	})
	if err != nil {
		t.Fatalf("không tạo được tag thường: %v", err)
	}
	newName := "Winter"
	if _, err := tagService.UpdateTag(ctx, normalTag.ID, &taxdto.TagUpdateInput{Name: &newName}); err != nil {
		t.Fatalf("tag thường phải sửa được: %v", err)
	}
	if err := tagService.DeleteById(ctx, normalTag.ID); err != nil {
		t.Fatalf("tag thường phải xóa được: %v", err)
	}
}
