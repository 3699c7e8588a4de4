package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "meta_market/internal/api/auth/models"
	authsvc "meta_market/internal/api/auth/service"
	"meta_market/internal/common"
	"meta_market/internal/logger"
	"meta_market/internal/utility"
)

// AuthManager quản lý xác thực và phân quyền người dùng
type AuthManager struct {
	UserCRUD           *authsvc.UserService
	RoleCRUD           *authsvc.RoleService
	PermissionCRUD     *authsvc.PermissionService
	RolePermissionCRUD *authsvc.RolePermissionService
	UserRoleCRUD       *authsvc.UserRoleService
	Cache              *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	newManager := new(AuthManager)

	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	newManager.UserCRUD = userService

	roleService, err := authsvc.NewRoleService()
	if err != nil {
		return nil, fmt.Errorf("failed to create role service: %v", err)
	}
	newManager.RoleCRUD = roleService

	permissionService, err := authsvc.NewPermissionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create permission service: %v", err)
	}
	newManager.PermissionCRUD = permissionService

	rolePermissionService, err := authsvc.NewRolePermissionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create role permission service: %v", err)
	}
	newManager.RolePermissionCRUD = rolePermissionService

	userRoleService, err := authsvc.NewUserRoleService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user role service: %v", err)
	}
	newManager.UserRoleCRUD = userRoleService

	// Cache permissions 5 phút, dọn dẹp mỗi 10 phút
	newManager.Cache = utility.NewCache(5*time.Minute, 10*time.Minute)

	return newManager, nil
}

// getUserPermissions lấy danh sách permissions của user từ cache hoặc database.
// Nếu activeRoleID được cung cấp, chỉ lấy permissions từ role đó (role context).
// Nếu activeRoleID là nil, lấy permissions từ tất cả roles của user.
func (am *AuthManager) getUserPermissions(userID string, activeRoleID *primitive.ObjectID) (map[string]byte, error) {
	var cacheKey string
	if activeRoleID != nil {
		cacheKey = fmt.Sprintf("user_permissions:%s:role:%s", userID, activeRoleID.Hex())
	} else {
		cacheKey = "user_permissions:" + userID
	}

	if cached, found := am.Cache.Get(cacheKey); found {
		return cached.(map[string]byte), nil
	}

	permissions := make(map[string]byte)

	if activeRoleID != nil {
		// Validate user có role này không
		_, err := am.UserRoleCRUD.FindOne(context.TODO(), bson.M{
			"userId": utility.String2ObjectID(userID),
			"roleId": *activeRoleID,
		}, nil)
		if err != nil {
			am.Cache.Set(cacheKey, permissions)
			return permissions, nil
		}

		findRolePermissions, err := am.RolePermissionCRUD.Find(context.TODO(), bson.M{"roleId": *activeRoleID}, nil)
		if err != nil {
			am.Cache.Set(cacheKey, permissions)
			return permissions, nil
		}

		for _, rolePermission := range findRolePermissions {
			permission, err := am.PermissionCRUD.FindOneById(context.TODO(), rolePermission.PermissionID)
			if err != nil {
				continue
			}
			permissions[permission.Name] = rolePermission.Scope
		}
	} else {
		findRoles, err := am.UserRoleCRUD.Find(context.TODO(), bson.M{"userId": utility.String2ObjectID(userID)}, nil)
		if err != nil {
			return nil, common.ConvertMongoError(err)
		}

		for _, userRole := range findRoles {
			findRolePermissions, err := am.RolePermissionCRUD.Find(context.TODO(), bson.M{"roleId": userRole.RoleID}, nil)
			if err != nil {
				continue
			}

			for _, rolePermission := range findRolePermissions {
				permission, err := am.PermissionCRUD.FindOneById(context.TODO(), rolePermission.PermissionID)
				if err != nil {
					continue
				}
				permissions[permission.Name] = rolePermission.Scope
			}
		}
	}

	am.Cache.Set(cacheKey, permissions)
	return permissions, nil
}

// AuthMiddleware middleware xác thực cho Fiber.
// requirePermission rỗng nghĩa là chỉ cần đăng nhập, không cần permission cụ thể.
func AuthMiddleware(requirePermission string) fiber.Handler {
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token := parts[1]

		// Tìm user có token: ưu tiên field "token" (token mới nhất, cập nhật mỗi lần login),
		// không có thì tìm trong array "tokens" (token theo hwid)
		var user models.User
		var err error

		user, err = authManager.UserCRUD.FindOne(context.Background(), bson.M{"token": token}, nil)
		if err != nil {
			user, err = authManager.UserCRUD.FindOne(context.Background(), bson.M{"tokens.jwtToken": token}, nil)
		}
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token not found in database")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		if user.IsBlock {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthCredentials,
				"Tài khoản đã bị khóa: "+user.BlockNote,
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		c.Locals("user_id", user.ID.Hex())
		c.Locals("user", user)

		// Không yêu cầu permission cụ thể: chỉ cần xác thực (ví dụ /auth/roles)
		if requirePermission == "" {
			return c.Next()
		}

		// Route có require permission PHẢI có header X-Active-Role-ID để chỉ định role context
		activeRoleIDStr := c.Get("X-Active-Role-ID")
		if activeRoleIDStr == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":    user.ID.Hex(),
				"user_email": user.Email,
				"path":       c.Path(),
				"permission": requirePermission,
			}).Warn("❌ [AUTH] Missing X-Active-Role-ID header")
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthRole,
				"Thiếu header X-Active-Role-ID. Vui lòng chọn role để làm việc.",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		roleID, err := primitive.ObjectIDFromHex(activeRoleIDStr)
		if err != nil {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeValidationFormat,
				"X-Active-Role-ID không đúng định dạng",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		userRoles, err := authManager.UserRoleCRUD.Find(context.Background(), bson.M{"userId": user.ID}, nil)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id": user.ID.Hex(),
				"error":   err.Error(),
				"path":    c.Path(),
			}).Error("❌ [AUTH] Failed to get user roles")
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthRole,
				"Không thể kiểm tra quyền truy cập",
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		if len(userRoles) == 0 {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthRole,
				"Người dùng chưa được gán vai trò. Vui lòng liên hệ quản trị viên để được cấp quyền truy cập.",
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		hasRole := false
		for _, userRole := range userRoles {
			if userRole.RoleID == roleID {
				hasRole = true
				break
			}
		}

		// User không có role này: reject và trả về role IDs hợp lệ để frontend refresh role list
		if !hasRole {
			validRoleIDs := make([]string, 0, len(userRoles))
			for _, userRole := range userRoles {
				validRoleIDs = append(validRoleIDs, userRole.RoleID.Hex())
			}

			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":        user.ID.Hex(),
				"active_role_id": roleID.Hex(),
				"valid_role_ids": validRoleIDs,
				"path":           c.Path(),
			}).Warn("⚠️ [AUTH] User does not have this role, rejecting request")

			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthRole,
				"Người dùng không có quyền sử dụng role này. Vui lòng chọn role khác hoặc liên hệ quản trị viên.",
				common.StatusForbidden,
				map[string]interface{}{
					"invalidRoleId": roleID.Hex(),
					"validRoleIds":  validRoleIDs,
					"errorCode":     "ROLE_CONTEXT_INVALID",
				},
			))
			return nil
		}

		permissions, err := authManager.getUserPermissions(user.ID.Hex(), &roleID)
		if err != nil {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthRole,
				"Không thể lấy thông tin quyền",
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		scope, hasPermission := permissions[requirePermission]
		if !hasPermission {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":             user.ID.Hex(),
				"user_email":          user.Email,
				"active_role_id":      roleID.Hex(),
				"required_permission": requirePermission,
				"path":                c.Path(),
			}).Warn("❌ [AUTH] User does not have required permission")
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthRole,
				"Không có quyền truy cập. Vui lòng kiểm tra lại role context hoặc liên hệ quản trị viên.",
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		// Lưu scope tối thiểu và permission name vào context để handler sử dụng
		c.Locals("minScope", scope)
		c.Locals("permission_name", requirePermission)
		return c.Next()
	}
}
