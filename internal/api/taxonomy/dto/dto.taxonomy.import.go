package taxdto

// Các chế độ xử lý khi slug đã tồn tại trong cùng org/parent khi import.
const (
	ImportModeSkip   = "skip"   // Bỏ qua dòng đã tồn tại
	ImportModeUpdate = "update" // Cập nhật record đã tồn tại
)

// Kết quả của từng dòng import.
const (
	ImportOutcomeCreated = "created"
	ImportOutcomeUpdated = "updated"
	ImportOutcomeSkipped = "skipped"
	ImportOutcomeError   = "error"
)

// TaxonomyImportInput đầu vào import danh mục hàng loạt.
// Mỗi dòng đi qua đúng contract create/update của danh mục đơn lẻ, không có invariant riêng.
type TaxonomyImportInput struct {
	Mode string                `json:"mode" validate:"omitempty,oneof=skip update"`
	Rows []CategoryCreateInput `json:"rows" validate:"required,min=1,max=500,dive"`
}

// ImportRowResult kết quả xử lý một dòng import, key theo slug của dòng.
type ImportRowResult struct {
	Row     int    `json:"row"`
	Slug    string `json:"slug"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

// TaxonomyImportResult tổng hợp kết quả import.
type TaxonomyImportResult struct {
	Created int               `json:"created"`
	Updated int               `json:"updated"`
	Skipped int               `json:"skipped"`
	Errors  int               `json:"errors"`
	Rows    []ImportRowResult `json:"rows"`
}
