package main

import (
	"context"
	"meta_market/config"
	authmodels "meta_market/internal/api/auth/models"
	catalogmodels "meta_market/internal/api/catalog/models"
	taxmodels "meta_market/internal/api/taxonomy/models"
	"meta_market/internal/database"
	"meta_market/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
// Lưu ý: các tên này đồng thời là key trong RegistryCollections, nên phải khớp
// với các collection name trong relationship tag của model (user_roles, taxonomy_categories, ...)
func initColNames() {
	// Auth Module Collections
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Permissions = "permissions"
	global.MongoDB_ColNames.Roles = "roles"
	global.MongoDB_ColNames.RolePermissions = "role_permissions"
	global.MongoDB_ColNames.UserRoles = "user_roles"
	global.MongoDB_ColNames.Organizations = "organizations"

	// Taxonomy Module Collections (tiền tố taxonomy_)
	global.MongoDB_ColNames.Categories = "taxonomy_categories"
	global.MongoDB_ColNames.Tags = "taxonomy_tags"

	// Catalog Module Collections (tiền tố catalog_)
	global.MongoDB_ColNames.Products = "catalog_products"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, exists, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khởi tạo các index cho các collection (đọc từ tag `index` trong model)
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Users), authmodels.User{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Permissions), authmodels.Permission{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Roles), authmodels.Role{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.UserRoles), authmodels.UserRole{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.RolePermissions), authmodels.RolePermission{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Organizations), authmodels.Organization{})

	// Taxonomy Module Indexes
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Categories), taxmodels.Category{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Tags), taxmodels.Tag{})

	// Catalog Module Indexes
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Products), catalogmodels.Product{})

	// Index compound unique + collation cho taxonomy/catalog (không định nghĩa được qua model tag)
	if err := database.CreateTaxonomyAdditionalIndexes(context.TODO(), db); err != nil {
		logrus.Fatalf("Failed to create taxonomy indexes: %v", err)
	}
	logrus.Info("Created indexes for all collections")
}
