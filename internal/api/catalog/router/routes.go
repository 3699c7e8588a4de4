// Package router đăng ký các route thuộc domain catalog: Product.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	cataloghdl "meta_market/internal/api/catalog/handler"
	apirouter "meta_market/internal/api/router"
)

// Register đăng ký tất cả route catalog lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	productHandler, err := cataloghdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("failed to create product handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/product", productHandler, apirouter.ReadWriteConfig, "Product")
	return nil
}
