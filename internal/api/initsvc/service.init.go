// Package initsvc chứa InitService dùng để khởi tạo dữ liệu ban đầu (permissions, roles, org, system tags).
// Tách ra package riêng để tránh import cycle giữa auth/service và các domain khác.
package initsvc

import (
	"context"
	"fmt"

	authmodels "meta_market/internal/api/auth/models"
	authsvc "meta_market/internal/api/auth/service"
	basesvc "meta_market/internal/api/base/service"
	taxmodels "meta_market/internal/api/taxonomy/models"
	taxsvc "meta_market/internal/api/taxonomy/service"
	"meta_market/internal/common"
	"meta_market/internal/logger"

	"golang.org/x/crypto/bcrypt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InitService là cấu trúc chứa các phương thức khởi tạo dữ liệu ban đầu cho hệ thống
// Bao gồm khởi tạo người dùng, vai trò, quyền, tổ chức gốc và các tag hệ thống
type InitService struct {
	userService           *authsvc.UserService           // Service xử lý người dùng
	roleService           *authsvc.RoleService           // Service xử lý vai trò
	permissionService     *authsvc.PermissionService     // Service xử lý quyền
	rolePermissionService *authsvc.RolePermissionService // Service xử lý quan hệ vai trò-quyền
	userRoleService       *authsvc.UserRoleService       // Service xử lý quan hệ người dùng-vai trò
	organizationService   *authsvc.OrganizationService   // Service xử lý tổ chức
	tagService            *taxsvc.TagService             // Service xử lý tag (seed tag hệ thống)
}

// NewInitService tạo mới một đối tượng InitService
// Khởi tạo các service con cần thiết để xử lý các tác vụ liên quan
// Returns:
//   - *InitService: Instance mới của InitService
//   - error: Lỗi nếu có trong quá trình khởi tạo
func NewInitService() (*InitService, error) {
	// Khởi tạo các auth services (từ domain auth)
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}

	roleService, err := authsvc.NewRoleService()
	if err != nil {
		return nil, fmt.Errorf("failed to create role service: %v", err)
	}

	permissionService, err := authsvc.NewPermissionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create permission service: %v", err)
	}

	rolePermissionService, err := authsvc.NewRolePermissionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create role permission service: %v", err)
	}

	userRoleService, err := authsvc.NewUserRoleService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user role service: %v", err)
	}

	organizationService, err := authsvc.NewOrganizationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create organization service: %v", err)
	}

	tagService, err := taxsvc.NewTagService()
	if err != nil {
		return nil, fmt.Errorf("failed to create tag service: %v", err)
	}

	// Đăng ký callback kiểm tra admin cho base service (tránh import cycle services -> auth)
	basesvc.SetIsAdminFromContextFunc(authsvc.IsUserAdministratorFromContext)

	return &InitService{
		userService:           userService,
		roleService:           roleService,
		permissionService:     permissionService,
		rolePermissionService: rolePermissionService,
		userRoleService:       userRoleService,
		organizationService:   organizationService,
		tagService:            tagService,
	}, nil
}

// InitialPermissions định nghĩa danh sách các quyền mặc định của hệ thống
// Được chia thành các module: Auth (Xác thực), Taxonomy (Danh mục và Tag) và Catalog (Sản phẩm)
var InitialPermissions = []authmodels.Permission{
	// ====================================  AUTH MODULE =============================================
	// Quản lý người dùng: Thêm, xem, sửa, xóa, khóa và phân quyền
	{Name: "User.Insert", Describe: "Quyền tạo người dùng", Group: "Auth", Category: "User"},
	{Name: "User.Read", Describe: "Quyền xem danh sách người dùng", Group: "Auth", Category: "User"},
	{Name: "User.Update", Describe: "Quyền cập nhật thông tin người dùng", Group: "Auth", Category: "User"},
	{Name: "User.Delete", Describe: "Quyền xóa người dùng", Group: "Auth", Category: "User"},
	{Name: "User.Block", Describe: "Quyền khóa/mở khóa người dùng", Group: "Auth", Category: "User"},
	{Name: "User.SetRole", Describe: "Quyền phân quyền cho người dùng", Group: "Auth", Category: "User"},

	// Quản lý tổ chức: Thêm, xem, sửa, xóa
	{Name: "Organization.Insert", Describe: "Quyền tạo tổ chức", Group: "Auth", Category: "Organization"},
	{Name: "Organization.Read", Describe: "Quyền xem danh sách tổ chức", Group: "Auth", Category: "Organization"},
	{Name: "Organization.Update", Describe: "Quyền cập nhật tổ chức", Group: "Auth", Category: "Organization"},
	{Name: "Organization.Delete", Describe: "Quyền xóa tổ chức", Group: "Auth", Category: "Organization"},

	// Quản lý vai trò: Thêm, xem, sửa, xóa vai trò
	{Name: "Role.Insert", Describe: "Quyền tạo vai trò", Group: "Auth", Category: "Role"},
	{Name: "Role.Read", Describe: "Quyền xem danh sách vai trò", Group: "Auth", Category: "Role"},
	{Name: "Role.Update", Describe: "Quyền cập nhật vai trò", Group: "Auth", Category: "Role"},
	{Name: "Role.Delete", Describe: "Quyền xóa vai trò", Group: "Auth", Category: "Role"},

	// Quản lý quyền: Thêm, xem, sửa, xóa quyền
	{Name: "Permission.Insert", Describe: "Quyền tạo quyền", Group: "Auth", Category: "Permission"},
	{Name: "Permission.Read", Describe: "Quyền xem danh sách quyền", Group: "Auth", Category: "Permission"},
	{Name: "Permission.Update", Describe: "Quyền cập nhật quyền", Group: "Auth", Category: "Permission"},
	{Name: "Permission.Delete", Describe: "Quyền xóa quyền", Group: "Auth", Category: "Permission"},

	// Quản lý phân quyền cho vai trò: Thêm, xem, sửa, xóa phân quyền
	{Name: "RolePermission.Insert", Describe: "Quyền tạo phân quyền cho vai trò", Group: "Auth", Category: "RolePermission"},
	{Name: "RolePermission.Read", Describe: "Quyền xem phân quyền của vai trò", Group: "Auth", Category: "RolePermission"},
	{Name: "RolePermission.Update", Describe: "Quyền cập nhật phân quyền của vai trò", Group: "Auth", Category: "RolePermission"},
	{Name: "RolePermission.Delete", Describe: "Quyền xóa phân quyền của vai trò", Group: "Auth", Category: "RolePermission"},

	// Quản lý phân vai trò cho người dùng: Thêm, xem, sửa, xóa phân vai trò
	{Name: "UserRole.Insert", Describe: "Quyền phân công vai trò cho người dùng", Group: "Auth", Category: "UserRole"},
	{Name: "UserRole.Read", Describe: "Quyền xem vai trò của người dùng", Group: "Auth", Category: "UserRole"},
	{Name: "UserRole.Update", Describe: "Quyền cập nhật vai trò của người dùng", Group: "Auth", Category: "UserRole"},
	{Name: "UserRole.Delete", Describe: "Quyền xóa vai trò của người dùng", Group: "Auth", Category: "UserRole"},

	// Quản lý khởi tạo hệ thống: Thiết lập administrator và đồng bộ quyền
	{Name: "Init.SetAdmin", Describe: "Quyền thiết lập administrator và đồng bộ quyền cho Administrator", Group: "Auth", Category: "Init"},

	// ==================================== TAXONOMY MODULE ===========================================
	// Quản lý danh mục sản phẩm: Thêm, xem, sửa, xóa
	{Name: "Category.Insert", Describe: "Quyền tạo danh mục sản phẩm", Group: "Taxonomy", Category: "Category"},
	{Name: "Category.Read", Describe: "Quyền xem danh sách danh mục sản phẩm", Group: "Taxonomy", Category: "Category"},
	{Name: "Category.Update", Describe: "Quyền cập nhật danh mục sản phẩm", Group: "Taxonomy", Category: "Category"},
	{Name: "Category.Delete", Describe: "Quyền xóa danh mục sản phẩm", Group: "Taxonomy", Category: "Category"},

	// Quản lý tag: Thêm, xem, sửa, xóa
	{Name: "Tag.Insert", Describe: "Quyền tạo tag", Group: "Taxonomy", Category: "Tag"},
	{Name: "Tag.Read", Describe: "Quyền xem danh sách tag", Group: "Taxonomy", Category: "Tag"},
	{Name: "Tag.Update", Describe: "Quyền cập nhật tag", Group: "Taxonomy", Category: "Tag"},
	{Name: "Tag.Delete", Describe: "Quyền xóa tag", Group: "Taxonomy", Category: "Tag"},

	// Import taxonomy hàng loạt từ file
	{Name: "Taxonomy.Import", Describe: "Quyền import danh mục hàng loạt", Group: "Taxonomy", Category: "Taxonomy"},

	// ==================================== CATALOG MODULE ===========================================
	// Quản lý sản phẩm: Thêm, xem, sửa, xóa
	{Name: "Product.Insert", Describe: "Quyền tạo sản phẩm", Group: "Catalog", Category: "Product"},
	{Name: "Product.Read", Describe: "Quyền xem danh sách sản phẩm", Group: "Catalog", Category: "Product"},
	{Name: "Product.Update", Describe: "Quyền cập nhật sản phẩm", Group: "Catalog", Category: "Product"},
	{Name: "Product.Delete", Describe: "Quyền xóa sản phẩm", Group: "Catalog", Category: "Product"},
}

// InitPermission khởi tạo các quyền mặc định cho hệ thống
// Chỉ tạo mới các quyền chưa tồn tại trong database
// Returns:
//   - error: Lỗi nếu có trong quá trình khởi tạo
func (h *InitService) InitPermission() error {
	// Duyệt qua danh sách quyền mặc định
	for _, permission := range InitialPermissions {
		// Kiểm tra quyền đã tồn tại chưa
		filter := bson.M{"name": permission.Name}
		_, err := h.permissionService.BaseServiceMongoImpl.FindOne(context.TODO(), filter, nil)

		// Bỏ qua nếu có lỗi khác ErrNotFound
		if err != nil && err != common.ErrNotFound {
			continue
		}

		// Tạo mới quyền nếu chưa tồn tại
		if err == common.ErrNotFound {
			// Set IsSystem = true cho tất cả permissions được tạo trong init
			permission.IsSystem = true
			// Sử dụng context cho phép insert system data trong quá trình init
			initCtx := basesvc.WithSystemDataInsertAllowed(context.TODO())
			_, err = h.permissionService.BaseServiceMongoImpl.InsertOne(initCtx, permission)
			if err != nil {
				return fmt.Errorf("failed to insert permission %s: %v", permission.Name, err)
			}
		}
	}
	return nil
}

// InitRootOrganization khởi tạo Organization System (Level -1)
// System organization là tổ chức cấp cao nhất, chứa Administrator và dữ liệu hệ thống,
// không có parent, không thể xóa
// Returns:
//   - error: Lỗi nếu có trong quá trình khởi tạo
func (h *InitService) InitRootOrganization() error {
	log := logger.GetAppLogger()

	// Kiểm tra System Organization đã tồn tại chưa
	systemFilter := bson.M{
		"type":  authmodels.OrganizationTypeSystem,
		"level": -1,
		"code":  "SYSTEM",
	}

	_, err := h.organizationService.BaseServiceMongoImpl.FindOne(context.TODO(), systemFilter, nil)
	if err != nil && err != common.ErrNotFound {
		log.Errorf("Failed to check system organization: %v", err)
		return fmt.Errorf("failed to check system organization: %v", err)
	}

	// Nếu đã tồn tại, không cần tạo mới
	if err == nil {
		log.Info("System Organization already exists, skipping creation")
		return nil
	}

	// Tạo mới System Organization
	systemOrgModel := authmodels.Organization{
		Name:     "Hệ Thống",
		Code:     "SYSTEM",
		Type:     authmodels.OrganizationTypeSystem,
		ParentID: nil, // System không có parent
		Path:     "/system",
		Level:    -1,
		IsActive: true,
		IsSystem: true, // Đánh dấu là dữ liệu hệ thống
	}

	// Sử dụng context cho phép insert system data trong quá trình init
	initCtx := basesvc.WithSystemDataInsertAllowed(context.TODO())
	_, err = h.organizationService.BaseServiceMongoImpl.InsertOne(initCtx, systemOrgModel)
	if err != nil {
		log.Errorf("Failed to create system organization: %v", err)
		return fmt.Errorf("failed to create system organization: %v", err)
	}

	log.Info("System Organization created successfully")
	return nil
}

// GetRootOrganization lấy System Organization (Level -1) - tổ chức cấp cao nhất
// Returns:
//   - *authmodels.Organization: System Organization
//   - error: Lỗi nếu có
func (h *InitService) GetRootOrganization() (*authmodels.Organization, error) {
	filter := bson.M{
		"type":  authmodels.OrganizationTypeSystem,
		"level": -1,
		"code":  "SYSTEM",
	}
	org, err := h.organizationService.BaseServiceMongoImpl.FindOne(context.TODO(), filter, nil)
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// InitRole khởi tạo vai trò Administrator thuộc System Organization
// Đảm bảo vai trò Administrator có đầy đủ tất cả permissions với Scope = 1
// Returns:
//   - error: Lỗi nếu có trong quá trình khởi tạo
func (h *InitService) InitRole() error {
	// Lấy System Organization (Level -1)
	rootOrg, err := h.GetRootOrganization()
	if err != nil {
		return fmt.Errorf("failed to get system organization: %v", err)
	}

	// Kiểm tra vai trò Administrator đã tồn tại chưa
	adminRole, err := h.roleService.BaseServiceMongoImpl.FindOne(context.TODO(), bson.M{"name": "Administrator"}, nil)
	if err != nil && err != common.ErrNotFound {
		return err
	}

	if err == common.ErrNotFound {
		// Nếu chưa tồn tại, tạo mới vai trò Administrator
		newAdminRole := authmodels.Role{
			Name:                "Administrator",
			Describe:            "Vai trò quản trị hệ thống",
			OwnerOrganizationID: rootOrg.ID, // Phân quyền dữ liệu + Logic business
			IsSystem:            true,       // Đánh dấu là dữ liệu hệ thống
		}

		// Sử dụng context cho phép insert system data trong quá trình init
		initCtx := basesvc.WithSystemDataInsertAllowed(context.TODO())
		adminRole, err = h.roleService.BaseServiceMongoImpl.InsertOne(initCtx, newAdminRole)
		if err != nil {
			return fmt.Errorf("failed to create administrator role: %v", err)
		}
	} else if adminRole.OwnerOrganizationID.IsZero() {
		// Nếu đã tồn tại nhưng chưa có OwnerOrganizationID, cập nhật
		updateData := bson.M{"ownerOrganizationId": rootOrg.ID}
		adminRole, err = h.roleService.BaseServiceMongoImpl.UpdateOne(context.TODO(), bson.M{"_id": adminRole.ID}, bson.M{"$set": updateData}, nil)
		if err != nil {
			return fmt.Errorf("failed to update administrator role with organization: %v", err)
		}
	}

	// Đảm bảo role Administrator có đầy đủ tất cả permissions
	return h.syncAdministratorPermissions(adminRole.ID)
}

// syncAdministratorPermissions gán tất cả permissions cho role Administrator với Scope = 1
// (Tổ chức đó và tất cả các tổ chức con - vì thuộc Root, sẽ xem tất cả)
func (h *InitService) syncAdministratorPermissions(roleID primitive.ObjectID) error {
	// Lấy danh sách tất cả các quyền
	permissions, err := h.permissionService.BaseServiceMongoImpl.Find(context.TODO(), bson.M{}, nil)
	if err != nil {
		return fmt.Errorf("failed to get permissions: %v", err)
	}

	for _, permission := range permissions {
		// Kiểm tra quyền đã được gán chưa
		filter := bson.M{
			"roleId":       roleID,
			"permissionId": permission.ID,
		}

		existingRP, err := h.rolePermissionService.BaseServiceMongoImpl.FindOne(context.TODO(), filter, nil)
		if err != nil && err != common.ErrNotFound {
			continue // Bỏ qua nếu có lỗi khác ErrNotFound
		}

		if err == common.ErrNotFound {
			// Nếu chưa có quyền, thêm mới với Scope = 1
			rolePermission := authmodels.RolePermission{
				RoleID:       roleID,
				PermissionID: permission.ID,
				Scope:        1,
			}
			_, err = h.rolePermissionService.BaseServiceMongoImpl.InsertOne(context.TODO(), rolePermission)
			if err != nil {
				continue // Bỏ qua nếu insert thất bại
			}
		} else if existingRP.Scope == 0 {
			// Nếu đã có với scope 0, cập nhật thành 1 (để admin có quyền xem tất cả)
			updateData := bson.M{"$set": bson.M{"scope": 1}}
			_, err = h.rolePermissionService.BaseServiceMongoImpl.UpdateOne(context.TODO(), bson.M{"_id": existingRP.ID}, updateData, nil)
			if err != nil {
				continue
			}
		}
	}

	return nil
}

// CheckPermissionForAdministrator kiểm tra và cập nhật quyền cho vai trò Administrator
// Đảm bảo vai trò Administrator có đầy đủ tất cả các quyền trong hệ thống
func (h *InitService) CheckPermissionForAdministrator() (err error) {
	// Kiểm tra vai trò Administrator có tồn tại không
	role, err := h.roleService.BaseServiceMongoImpl.FindOne(context.TODO(), bson.M{"name": "Administrator"}, nil)
	if err != nil && err != common.ErrNotFound {
		return err
	}
	// Nếu chưa có vai trò Administrator, tạo mới
	if err == common.ErrNotFound {
		return h.InitRole()
	}

	return h.syncAdministratorPermissions(role.ID)
}

// SetAdministrator gán quyền Administrator cho một người dùng
// Trả về lỗi nếu người dùng không tồn tại hoặc đã có quyền Administrator
func (h *InitService) SetAdministrator(userID primitive.ObjectID) (result interface{}, err error) {
	// Kiểm tra user có tồn tại không
	user, err := h.userService.BaseServiceMongoImpl.FindOneById(context.TODO(), userID)
	if err != nil {
		return nil, err
	}

	// Kiểm tra role Administrator có tồn tại không
	role, err := h.roleService.BaseServiceMongoImpl.FindOne(context.TODO(), bson.M{"name": "Administrator"}, nil)
	if err != nil && err != common.ErrNotFound {
		return nil, err
	}

	// Nếu chưa có role Administrator, tạo mới
	if err == common.ErrNotFound {
		err = h.InitRole()
		if err != nil {
			return nil, err
		}

		role, err = h.roleService.BaseServiceMongoImpl.FindOne(context.TODO(), bson.M{"name": "Administrator"}, nil)
		if err != nil {
			return nil, err
		}
	}

	// Kiểm tra userRole đã tồn tại chưa
	_, err = h.userRoleService.BaseServiceMongoImpl.FindOne(context.TODO(), bson.M{"userId": user.ID, "roleId": role.ID}, nil)
	if err == nil {
		// Nếu không có lỗi, tức là đã tìm thấy userRole, trả về lỗi đã định nghĩa
		return nil, common.ErrUserAlreadyAdmin
	}

	// Xử lý các lỗi khác ngoài ErrNotFound
	if err != common.ErrNotFound {
		return nil, err
	}

	// Nếu userRole chưa tồn tại, tạo mới
	userRole := authmodels.UserRole{
		UserID: user.ID,
		RoleID: role.ID,
	}
	result, err = h.userRoleService.BaseServiceMongoImpl.InsertOne(context.TODO(), userRole)
	if err != nil {
		return nil, err
	}

	// Đảm bảo role Administrator có đầy đủ tất cả các quyền trong hệ thống
	err = h.CheckPermissionForAdministrator()
	if err != nil {
		// Log lỗi nhưng không fail việc set administrator
		// Vì role đã được gán, chỉ là quyền có thể chưa được cập nhật đầy đủ
		logger.GetAppLogger().Warnf("Failed to check permissions for administrator: %v", err)
	}

	return result, nil
}

// InitAdminUser tạo user admin tự động từ email và mật khẩu (nếu có config)
// Sử dụng khi có ADMIN_EMAIL và ADMIN_PASSWORD trong config
// User sẽ được tạo với mật khẩu đã băm và tự động gán role Administrator
func (h *InitService) InitAdminUser(email string, password string) error {
	if email == "" {
		return nil // Không có config, bỏ qua
	}
	if password == "" {
		return fmt.Errorf("admin password is required when admin email is set")
	}

	// Kiểm tra user đã tồn tại chưa
	filter := bson.M{"email": email}
	existingUser, err := h.userService.BaseServiceMongoImpl.FindOne(context.TODO(), filter, nil)
	if err != nil && err != common.ErrNotFound {
		return fmt.Errorf("failed to check existing admin user: %v", err)
	}

	var userID primitive.ObjectID

	// Nếu user chưa tồn tại, tạo mới với mật khẩu đã băm
	if err == common.ErrNotFound {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %v", err)
		}

		newUser := authmodels.User{
			Name:     "Administrator",
			Email:    email,
			Password: string(hashed),
			IsBlock:  false,
			Tokens:   []authmodels.Token{},
		}

		createdUser, err := h.userService.BaseServiceMongoImpl.InsertOne(context.TODO(), newUser)
		if err != nil {
			return fmt.Errorf("failed to create admin user: %v", err)
		}

		userID = createdUser.ID
	} else {
		// User đã tồn tại
		userID = existingUser.ID
	}

	// Gán role Administrator cho user
	_, err = h.SetAdministrator(userID)
	if err != nil && err != common.ErrUserAlreadyAdmin {
		return fmt.Errorf("failed to set administrator role: %v", err)
	}

	return nil
}

// initialSystemTags định nghĩa các tag hệ thống được seed khi khởi tạo.
// Tag hệ thống thuộc System Organization, client không thể sửa/xóa.
var initialSystemTags = []taxmodels.Tag{
	{Name: "Featured", Slug: "featured", Scope: taxmodels.TagScopeProduct, Description: "Sản phẩm nổi bật trên trang chủ"},
	{Name: "New Arrival", Slug: "new-arrival", Scope: taxmodels.TagScopeProduct, Description: "Sản phẩm mới về"},
	{Name: "Verified", Slug: "verified", Scope: taxmodels.TagScopeSeller, Description: "Người bán đã được xác minh"},
}

// InitSystemTags seed các tag hệ thống (featured, new-arrival, verified) thuộc System Organization
// Chỉ tạo mới các tag chưa tồn tại
// Returns:
//   - error: Lỗi nếu có trong quá trình khởi tạo
func (h *InitService) InitSystemTags() error {
	rootOrg, err := h.GetRootOrganization()
	if err != nil {
		return fmt.Errorf("failed to get system organization: %v", err)
	}

	initCtx := basesvc.WithSystemDataInsertAllowed(context.TODO())
	for _, tag := range initialSystemTags {
		filter := bson.M{
			"ownerOrganizationId": rootOrg.ID,
			"scope":               tag.Scope,
			"slug":                tag.Slug,
		}
		_, err := h.tagService.BaseServiceMongoImpl.FindOne(context.TODO(), filter, nil)
		if err != nil && err != common.ErrNotFound {
			continue
		}

		if err == common.ErrNotFound {
			tag.OwnerOrganizationID = rootOrg.ID
			tag.IsSystem = true
			tag.IsActive = true
			_, err = h.tagService.BaseServiceMongoImpl.InsertOne(initCtx, tag)
			if err != nil {
				return fmt.Errorf("failed to insert system tag %s: %v", tag.Slug, err)
			}
		}
	}
	return nil
}

// GetInitStatus kiểm tra trạng thái khởi tạo hệ thống
// Trả về thông tin về các đơn vị cơ bản đã được khởi tạo chưa
func (h *InitService) GetInitStatus() (map[string]interface{}, error) {
	status := make(map[string]interface{})

	// Kiểm tra Organization Root
	_, err := h.GetRootOrganization()
	status["organization"] = map[string]interface{}{
		"initialized": err == nil,
		"error": func() string {
			if err != nil {
				return err.Error()
			}
			return ""
		}(),
	}

	// Kiểm tra Permissions
	permissions, err := h.permissionService.BaseServiceMongoImpl.Find(context.TODO(), bson.M{}, nil)
	permissionCount := 0
	if err == nil {
		permissionCount = len(permissions)
	}
	status["permissions"] = map[string]interface{}{
		"initialized": err == nil && permissionCount > 0,
		"count":       permissionCount,
		"error": func() string {
			if err != nil {
				return err.Error()
			}
			return ""
		}(),
	}

	// Kiểm tra Role Administrator và admin users
	adminRole, err := h.roleService.BaseServiceMongoImpl.FindOne(context.TODO(), bson.M{"name": "Administrator"}, nil)
	status["roles"] = map[string]interface{}{
		"initialized": err == nil,
		"error": func() string {
			if err != nil && err != common.ErrNotFound {
				return err.Error()
			}
			return ""
		}(),
	}
	adminUserCount := 0
	if err == nil {
		userRoles, err := h.userRoleService.BaseServiceMongoImpl.Find(context.TODO(), bson.M{"roleId": adminRole.ID}, nil)
		if err == nil {
			adminUserCount = len(userRoles)
		}
	}
	status["adminUsers"] = map[string]interface{}{
		"count":    adminUserCount,
		"hasAdmin": adminUserCount > 0,
	}

	return status, nil
}

// HasAnyAdministrator kiểm tra xem hệ thống đã có administrator chưa
// Returns:
//   - bool: true nếu đã có ít nhất một administrator
//   - error: Lỗi nếu có
func (h *InitService) HasAnyAdministrator() (bool, error) {
	// Kiểm tra role Administrator có tồn tại không
	adminRole, err := h.roleService.BaseServiceMongoImpl.FindOne(context.TODO(), bson.M{"name": "Administrator"}, nil)
	if err != nil {
		if err == common.ErrNotFound {
			return false, nil // Chưa có role Administrator
		}
		return false, err
	}

	// Kiểm tra có user nào có role Administrator không
	userRoles, err := h.userRoleService.BaseServiceMongoImpl.Find(context.TODO(), bson.M{"roleId": adminRole.ID}, nil)
	if err != nil {
		return false, err
	}

	return len(userRoles) > 0, nil
}
