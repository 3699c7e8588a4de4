// Package taxsvc - Test các hàm snapshot: lắp cây, kiểm tra chu trình, tính level.
package taxsvc

import (
	"testing"

	models "meta_market/internal/api/taxonomy/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCat(name string, parentID *primitive.ObjectID, level, sortOrder int) models.Category {
	return models.Category{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Slug:      ToSlug(name),
		ParentID:  parentID,
		Level:     level,
		SortOrder: sortOrder,
	}
}

// buildChain tạo chuỗi cha-con: root → c1 → c2 → ... theo độ dài yêu cầu.
func buildChain(depth int) []models.Category {
	cats := make([]models.Category, 0, depth)
	var parent *primitive.ObjectID
	for i := 0; i < depth; i++ {
		c := newCat("node", parent, i, 0)
		cats = append(cats, c)
		id := c.ID
		parent = &id
	}
	return cats
}

func TestBuildCategoryTree_LapCayDungCauTruc(t *testing.T) {
	root := newCat("Electronics", nil, 0, 0)
	child1 := newCat("Phones", &root.ID, 1, 1)
	child2 := newCat("Laptops", &root.ID, 1, 0)
	grandchild := newCat("Android", &child1.ID, 2, 0)

	roots := BuildCategoryTree([]models.Category{grandchild, child1, root, child2})

	if len(roots) != 1 {
		t.Fatalf("muốn 1 root, có %d", len(roots))
	}
	if roots[0].Name != "Electronics" {
		t.Errorf("root sai: %s", roots[0].Name)
	}
	if len(roots[0].Children) != 2 {
		t.Fatalf("root phải có 2 con, có %d", len(roots[0].Children))
	}
	// Anh em sort theo sortOrder: Laptops (0) trước Phones (1)
	if roots[0].Children[0].Name != "Laptops" || roots[0].Children[1].Name != "Phones" {
		t.Errorf("thứ tự con sai: %s, %s", roots[0].Children[0].Name, roots[0].Children[1].Name)
	}
	phones := roots[0].Children[1]
	if len(phones.Children) != 1 || phones.Children[0].Name != "Android" {
		t.Errorf("cháu không được nối đúng vào Phones")
	}
}

func TestBuildCategoryTree_SortTrungSortOrderTheoTen(t *testing.T) {
	root := newCat("Root", nil, 0, 0)
	b := newCat("banana", &root.ID, 1, 5)
	a := newCat("Apple", &root.ID, 1, 5)

	roots := BuildCategoryTree([]models.Category{root, b, a})
	children := roots[0].Children
	if len(children) != 2 {
		t.Fatalf("muốn 2 con, có %d", len(children))
	}
	// Trùng sortOrder thì sort theo tên không phân biệt hoa thường
	if children[0].Name != "Apple" || children[1].Name != "banana" {
		t.Errorf("thứ tự sai khi trùng sortOrder: %s, %s", children[0].Name, children[1].Name)
	}
}

func TestBuildCategoryTree_ParentMatTichNangLenGoc(t *testing.T) {
	missingID := primitive.NewObjectID()
	orphan := newCat("Orphan", &missingID, 1, 0)
	root := newCat("Root", nil, 0, 0)

	roots := BuildCategoryTree([]models.Category{orphan, root})
	if len(roots) != 2 {
		t.Fatalf("danh mục có parent mất tích phải được nâng lên gốc, muốn 2 roots, có %d", len(roots))
	}
}

func TestBuildCategoryTree_RongTraVeRong(t *testing.T) {
	roots := BuildCategoryTree([]models.Category{})
	if len(roots) != 0 {
		t.Errorf("snapshot rỗng phải trả về forest rỗng, có %d roots", len(roots))
	}
}

func TestWouldCreateCycle_TuTroVaoMinh(t *testing.T) {
	c := newCat("Self", nil, 0, 0)
	byID := categoriesByID([]models.Category{c})
	if !WouldCreateCycle(byID, c.ID, c.ID) {
		t.Error("tự trỏ vào mình phải bị coi là chu trình")
	}
}

func TestWouldCreateCycle_ChuyenVaoHauDue(t *testing.T) {
	chain := buildChain(4) // root → c1 → c2 → c3
	byID := categoriesByID(chain)

	// Chuyển root vào c3 (hậu duệ sâu nhất) phải bị phát hiện qua cả chuỗi tổ tiên
	if !WouldCreateCycle(byID, chain[0].ID, chain[3].ID) {
		t.Error("chuyển node vào hậu duệ sâu phải bị coi là chu trình")
	}
	// Chuyển c1 vào c3 cũng là chu trình (c3 là hậu duệ của c1)
	if !WouldCreateCycle(byID, chain[1].ID, chain[3].ID) {
		t.Error("chuyển node vào hậu duệ gián tiếp phải bị coi là chu trình")
	}
}

func TestWouldCreateCycle_ChuyenSangNhanhKhac(t *testing.T) {
	root := newCat("Root", nil, 0, 0)
	a := newCat("A", &root.ID, 1, 0)
	b := newCat("B", &root.ID, 1, 0)
	byID := categoriesByID([]models.Category{root, a, b})

	if WouldCreateCycle(byID, a.ID, b.ID) {
		t.Error("chuyển sang nhánh anh em không phải chu trình")
	}
	if WouldCreateCycle(byID, a.ID, root.ID) {
		t.Error("chuyển về gốc không phải chu trình")
	}
}

func TestWouldCreateCycle_DuLieuHongTuLap(t *testing.T) {
	// Hai node trỏ vào nhau sẵn trong dữ liệu cũ
	aID := primitive.NewObjectID()
	bID := primitive.NewObjectID()
	a := models.Category{ID: aID, Name: "A", ParentID: &bID}
	b := models.Category{ID: bID, Name: "B", ParentID: &aID}
	byID := categoriesByID([]models.Category{a, b})

	other := primitive.NewObjectID()
	// Đi ngược chuỗi tổ tiên không được lặp vô hạn
	if !WouldCreateCycle(byID, other, aID) {
		t.Error("chuỗi tổ tiên tự lặp phải bị coi là chu trình")
	}
}

func TestSubtreeHeight(t *testing.T) {
	chain := buildChain(3) // root → c1 → c2
	leaf := newCat("Leaf", nil, 0, 0)
	all := append(chain, leaf)
	byParent := categoriesByParent(all)

	if h := SubtreeHeight(byParent, leaf.ID); h != 0 {
		t.Errorf("lá phải có chiều cao 0, có %d", h)
	}
	if h := SubtreeHeight(byParent, chain[0].ID); h != 2 {
		t.Errorf("chuỗi 3 tầng phải có chiều cao 2 từ gốc, có %d", h)
	}
	if h := SubtreeHeight(byParent, chain[1].ID); h != 1 {
		t.Errorf("tầng giữa phải có chiều cao 1, có %d", h)
	}
}

func TestRecomputeSubtreeLevels(t *testing.T) {
	root := newCat("Root", nil, 0, 0)
	child := newCat("Child", &root.ID, 1, 0)
	grandchild := newCat("Grandchild", &child.ID, 2, 0)
	byParent := categoriesByParent([]models.Category{root, child, grandchild})

	// Giả lập chuyển root xuống làm con của node level 0 khác: root nhận level 1
	levels := RecomputeSubtreeLevels(byParent, root.ID, 1)

	if len(levels) != 3 {
		t.Fatalf("phải tính lại level cho cả 3 nút, có %d", len(levels))
	}
	if levels[root.ID] != 1 {
		t.Errorf("gốc cây con phải có level 1, có %d", levels[root.ID])
	}
	if levels[child.ID] != 2 {
		t.Errorf("con phải có level 2, có %d", levels[child.ID])
	}
	if levels[grandchild.ID] != 3 {
		t.Errorf("cháu phải có level 3, có %d", levels[grandchild.ID])
	}
}

func TestRecomputeSubtreeLevels_KiemTraGioiHanDoSau(t *testing.T) {
	// Chuỗi 3 tầng chuyển vào dưới node level 1: cháu sẽ vượt CategoryMaxLevel
	chain := buildChain(3)
	byParent := categoriesByParent(chain)

	newRootLevel := 2
	if newRootLevel+SubtreeHeight(byParent, chain[0].ID) <= models.CategoryMaxLevel {
		t.Fatal("tình huống test phải vượt giới hạn độ sâu")
	}

	levels := RecomputeSubtreeLevels(byParent, chain[0].ID, newRootLevel)
	if levels[chain[2].ID] != 4 {
		t.Errorf("node cuối phải có level 4 (vượt giới hạn), có %d", levels[chain[2].ID])
	}
}

func TestSubtreeHeight_DuLieuHongTuLap(t *testing.T) {
	// Hai node trỏ vào nhau sẵn trong dữ liệu cũ: duyệt phải dừng, không tràn stack
	aID := primitive.NewObjectID()
	bID := primitive.NewObjectID()
	a := models.Category{ID: aID, Name: "A", ParentID: &bID}
	b := models.Category{ID: bID, Name: "B", ParentID: &aID}
	byParent := categoriesByParent([]models.Category{a, b})

	// a → b (+1) và b → a đã thăm (+1): chiều cao 2, quan trọng là duyệt phải dừng
	if h := SubtreeHeight(byParent, aID); h != 2 {
		t.Errorf("chu trình 2 nút phải cho chiều cao 2, có %d", h)
	}
}

func TestRecomputeSubtreeLevels_DuLieuHongTuLap(t *testing.T) {
	aID := primitive.NewObjectID()
	bID := primitive.NewObjectID()
	a := models.Category{ID: aID, Name: "A", ParentID: &bID}
	b := models.Category{ID: bID, Name: "B", ParentID: &aID}
	byParent := categoriesByParent([]models.Category{a, b})

	levels := RecomputeSubtreeLevels(byParent, aID, 0)
	if len(levels) != 2 {
		t.Fatalf("chu trình 2 nút: mỗi nút chỉ được gán level một lần, muốn 2 entries, có %d", len(levels))
	}
	if levels[aID] != 0 || levels[bID] != 1 {
		t.Errorf("level sai trong dữ liệu tự lặp: a=%d b=%d", levels[aID], levels[bID])
	}
}

func TestCountDescendants(t *testing.T) {
	root := newCat("Root", nil, 0, 0)
	a := newCat("A", &root.ID, 1, 0)
	b := newCat("B", &root.ID, 1, 1)
	c := newCat("C", &a.ID, 2, 0)

	roots := BuildCategoryTree([]models.Category{root, a, b, c})
	if n := CountDescendants(roots[0]); n != 3 {
		t.Errorf("root phải có 3 hậu duệ, có %d", n)
	}
}

func TestFlattenTree_PreOrder(t *testing.T) {
	root := newCat("Root", nil, 0, 0)
	a := newCat("A", &root.ID, 1, 0)
	b := newCat("B", &root.ID, 1, 1)
	c := newCat("C", &a.ID, 2, 0)

	roots := BuildCategoryTree([]models.Category{b, c, a, root})
	flat := FlattenTree(roots)

	want := []string{"Root", "A", "C", "B"}
	if len(flat) != len(want) {
		t.Fatalf("muốn %d phần tử, có %d", len(want), len(flat))
	}
	for i, name := range want {
		if flat[i].Name != name {
			t.Errorf("vị trí %d: muốn %s, có %s", i, name, flat[i].Name)
		}
	}
}
