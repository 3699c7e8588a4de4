package main

import (
	"meta_market/internal/api/initsvc"
	"meta_market/internal/global"
	"meta_market/internal/logger"
)

func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	initService, err := initsvc.NewInitService()
	if err != nil {
		log.Fatalf("Failed to initialize init service: %v", err)
	}

	// 1. Khởi tạo Organization System (PHẢI LÀM TRƯỚC)
	log.Info("🔄 [INIT] Step 1: Initializing system organization...")
	if err := initService.InitRootOrganization(); err != nil {
		log.Fatalf("Failed to initialize system organization: %v", err)
	}
	log.Info("✅ [INIT] Step 1: System organization initialized")

	// 2. Khởi tạo Permissions (tạo các quyền mới nếu chưa có: Category, Tag, Product, ...)
	log.Info("🔄 [INIT] Step 2: Initializing permissions...")
	if err := initService.InitPermission(); err != nil {
		log.Fatalf("Failed to initialize permissions: %v", err)
	}
	log.Info("✅ [INIT] Step 2: Permissions initialized/updated successfully")

	// 3. Tạo Role Administrator (nếu chưa có) + Đảm bảo đầy đủ Permission cho Administrator
	// Tự động gán tất cả quyền trong hệ thống (bao gồm quyền mới) cho role Administrator
	if err := initService.CheckPermissionForAdministrator(); err != nil {
		log.Warnf("Failed to check permissions for administrator: %v", err)
	} else {
		log.Info("Administrator role permissions synchronized successfully")
	}

	// 4. Tạo user admin tự động từ ADMIN_EMAIL/ADMIN_PASSWORD (nếu có config) - Tùy chọn
	cfg := global.MongoDB_ServerConfig
	if cfg.AdminEmail != "" {
		if err := initService.InitAdminUser(cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Warnf("Failed to initialize admin user: %v", err)
		} else {
			log.Info("Admin user initialized successfully")
		}
	} else {
		log.Info("ADMIN_EMAIL not set, skipping admin user creation")
	}

	// 5. Seed các tag hệ thống (featured, new-arrival, verified) thuộc System Organization
	log.Info("🔄 [INIT] Step 5: Initializing system tags...")
	if err := initService.InitSystemTags(); err != nil {
		log.WithError(err).Error("❌ [INIT] Step 5: Failed to initialize system tags")
		log.Warnf("Failed to initialize system tags: %v", err)
	} else {
		log.Info("✅ [INIT] Step 5: System tags initialized successfully")
	}

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}
