package global

import (
	"meta_market/config"
	"meta_market/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users           string // Tên collection cho người dùng
	Permissions     string // Tên collection cho quyền
	Roles           string // Tên collection cho vai trò
	RolePermissions string // Tên collection cho vai trò và quyền
	UserRoles       string // Tên collection cho người dùng và vai trò
	Organizations   string // Tên collection cho tổ chức

	// Taxonomy Module Collections (tiền tố taxonomy_)
	Categories string // Tên collection cho danh mục sản phẩm
	Tags       string // Tên collection cho tag

	// Catalog Module Collections (tiền tố catalog_)
	Products string // Tên collection cho sản phẩm
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName    // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
