// Package router đăng ký các route thuộc domain taxonomy: Category, Tag.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"meta_market/internal/api/middleware"
	apirouter "meta_market/internal/api/router"
	taxhdl "meta_market/internal/api/taxonomy/handler"
)

// Register đăng ký tất cả route taxonomy (category, tag) lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerCategoryRoutes(v1, r); err != nil {
		return err
	}
	if err := registerTagRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerCategoryRoutes(router fiber.Router, r *apirouter.Router) error {
	categoryHandler, err := taxhdl.NewCategoryHandler()
	if err != nil {
		return fmt.Errorf("failed to create category handler: %w", err)
	}

	readMiddleware := middleware.AuthMiddleware("Category.Read")
	orgContextMiddleware := middleware.OrganizationContextMiddleware()
	apirouter.RegisterRouteWithMiddleware(router, "/category", "GET", "/tree", []fiber.Handler{readMiddleware, orgContextMiddleware}, categoryHandler.HandleTree)
	apirouter.RegisterRouteWithMiddleware(router, "/category", "GET", "/list", []fiber.Handler{readMiddleware, orgContextMiddleware}, categoryHandler.HandleList)

	importMiddleware := middleware.AuthMiddleware("Taxonomy.Import")
	apirouter.RegisterRouteWithMiddleware(router, "/category", "POST", "/import", []fiber.Handler{importMiddleware, orgContextMiddleware}, categoryHandler.HandleImport)

	r.RegisterCRUDRoutes(router, "/category", categoryHandler, apirouter.ReadWriteConfig, "Category")
	return nil
}

func registerTagRoutes(router fiber.Router, r *apirouter.Router) error {
	tagHandler, err := taxhdl.NewTagHandler()
	if err != nil {
		return fmt.Errorf("failed to create tag handler: %w", err)
	}

	readMiddleware := middleware.AuthMiddleware("Tag.Read")
	orgContextMiddleware := middleware.OrganizationContextMiddleware()
	apirouter.RegisterRouteWithMiddleware(router, "/tag", "GET", "/list", []fiber.Handler{readMiddleware, orgContextMiddleware}, tagHandler.HandleList)

	r.RegisterCRUDRoutes(router, "/tag", tagHandler, apirouter.ReadWriteConfig, "Tag")
	return nil
}
