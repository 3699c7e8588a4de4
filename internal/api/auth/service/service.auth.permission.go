// Package authsvc - service quyền (Permission).
package authsvc

import (
	"fmt"
	models "meta_market/internal/api/auth/models"
	basesvc "meta_market/internal/api/base/service"
	"meta_market/internal/common"
	"meta_market/internal/global"
)

// PermissionService là cấu trúc chứa các phương thức liên quan đến quyền
type PermissionService struct {
	*basesvc.BaseServiceMongoImpl[models.Permission]
}

// NewPermissionService tạo mới PermissionService
func NewPermissionService() (*PermissionService, error) {
	permissionCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Permissions)
	if !exist {
		return nil, fmt.Errorf("failed to get permissions collection: %v", common.ErrNotFound)
	}

	return &PermissionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Permission](permissionCollection),
	}, nil
}
