package taxsvc

import (
	"sort"
	"strings"

	models "meta_market/internal/api/taxonomy/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các hàm trong file này thao tác trên snapshot danh mục của một organization
// (đã load hết vào memory), không chạm database. Cây danh mục tối đa 4 tầng
// nên full-snapshot luôn đủ nhỏ.

// categoriesByID index snapshot theo _id.
func categoriesByID(cats []models.Category) map[primitive.ObjectID]models.Category {
	byID := make(map[primitive.ObjectID]models.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	return byID
}

// categoriesByParent index snapshot theo parent. Key NilObjectID chứa các danh mục gốc.
func categoriesByParent(cats []models.Category) map[primitive.ObjectID][]models.Category {
	byParent := make(map[primitive.ObjectID][]models.Category, len(cats))
	for _, c := range cats {
		key := primitive.NilObjectID
		if c.ParentID != nil {
			key = *c.ParentID
		}
		byParent[key] = append(byParent[key], c)
	}
	return byParent
}

// WouldCreateCycle kiểm tra việc gán newParentID làm cha của categoryID có tạo
// chu trình không. Đi ngược toàn bộ chuỗi tổ tiên từ newParentID lên gốc: gặp
// lại categoryID ở bất kỳ tầng nào (kể cả tự trỏ vào mình) là có chu trình.
// Giới hạn số bước theo kích thước snapshot để không lặp vô hạn khi dữ liệu
// cũ đã hỏng sẵn.
func WouldCreateCycle(byID map[primitive.ObjectID]models.Category, categoryID, newParentID primitive.ObjectID) bool {
	if categoryID == newParentID {
		return true
	}
	current := newParentID
	for steps := 0; steps <= len(byID); steps++ {
		node, ok := byID[current]
		if !ok || node.ParentID == nil {
			return false
		}
		if *node.ParentID == categoryID {
			return true
		}
		current = *node.ParentID
	}
	// Đi quá số nút trong snapshot nghĩa là chuỗi tổ tiên tự lặp
	return true
}

// SubtreeHeight tính chiều cao của cây con gốc rootID: 0 nếu là lá,
// 1 nếu có con nhưng không có cháu, v.v. Mỗi nút chỉ đi qua một lần
// để dữ liệu hỏng sẵn (parent tự lặp) không làm đệ quy chạy vô hạn.
func SubtreeHeight(byParent map[primitive.ObjectID][]models.Category, rootID primitive.ObjectID) int {
	visited := make(map[primitive.ObjectID]bool)
	var walk func(id primitive.ObjectID) int
	walk = func(id primitive.ObjectID) int {
		if visited[id] {
			return 0
		}
		visited[id] = true
		height := 0
		for _, child := range byParent[id] {
			if h := walk(child.ID) + 1; h > height {
				height = h
			}
		}
		return height
	}
	return walk(rootID)
}

// RecomputeSubtreeLevels tính lại level cho toàn bộ cây con gốc rootID khi gốc
// chuyển sang level mới. Trả về map id → level mới cho mọi nút của cây con
// (kể cả gốc), caller chịu trách nhiệm ghi xuống database.
// Nút đã có level trong kết quả không được duyệt lại, nên dữ liệu hỏng sẵn
// (parent tự lặp) cũng không làm đệ quy chạy vô hạn.
func RecomputeSubtreeLevels(byParent map[primitive.ObjectID][]models.Category, rootID primitive.ObjectID, rootLevel int) map[primitive.ObjectID]int {
	levels := make(map[primitive.ObjectID]int)
	var walk func(id primitive.ObjectID, level int)
	walk = func(id primitive.ObjectID, level int) {
		if _, seen := levels[id]; seen {
			return
		}
		levels[id] = level
		for _, child := range byParent[id] {
			walk(child.ID, level+1)
		}
	}
	walk(rootID, rootLevel)
	return levels
}

// sortSiblings sắp xếp một tầng anh em: sortOrder tăng dần, trùng sortOrder thì
// theo tên (không phân biệt hoa thường) để kết quả ổn định giữa các lần gọi.
func sortSiblings(nodes []*models.CategoryTreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
}

// BuildCategoryTree lắp forest từ danh sách phẳng, hai lượt O(n):
// lượt 1 tạo node cho mọi danh mục, lượt 2 nối con vào cha.
// Danh mục có parent không còn tồn tại trong snapshot được nâng lên làm gốc
// thay vì biến mất khỏi kết quả.
func BuildCategoryTree(cats []models.Category) []*models.CategoryTreeNode {
	nodes := make(map[primitive.ObjectID]*models.CategoryTreeNode, len(cats))
	for _, c := range cats {
		nodes[c.ID] = &models.CategoryTreeNode{Category: c, Children: []*models.CategoryTreeNode{}}
	}

	roots := make([]*models.CategoryTreeNode, 0)
	for _, c := range cats {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	var sortTree func(nodes []*models.CategoryTreeNode)
	sortTree = func(nodes []*models.CategoryTreeNode) {
		sortSiblings(nodes)
		for _, n := range nodes {
			sortTree(n.Children)
		}
	}
	sortTree(roots)
	return roots
}

// CountDescendants đếm tổng số nút con (đệ quy) của một node trong forest.
func CountDescendants(node *models.CategoryTreeNode) int {
	count := len(node.Children)
	for _, child := range node.Children {
		count += CountDescendants(child)
	}
	return count
}

// FlattenTree duyệt forest theo thứ tự pre-order, trả về danh sách phẳng.
func FlattenTree(roots []*models.CategoryTreeNode) []models.Category {
	flat := make([]models.Category, 0)
	var walk func(node *models.CategoryTreeNode)
	walk = func(node *models.CategoryTreeNode) {
		flat = append(flat, node.Category)
		for _, child := range node.Children {
			walk(child)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return flat
}
