// Package taxsvc - service cho domain taxonomy (danh mục và tag).
package taxsvc

import (
	"strings"
)

// ToSlug sinh slug từ tên hiển thị: chữ thường, bỏ ký tự không phải chữ/số
// (giữ khoảng trắng và gạch ngang), khoảng trắng thành gạch ngang, gộp gạch
// ngang liên tiếp, cắt gạch ngang đầu/cuối. Hàm idempotent: ToSlug(ToSlug(x)) == ToSlug(x).
func ToSlug(name string) string {
	lower := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteRune(r)
		}
	}

	slug := strings.ReplaceAll(b.String(), " ", "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}
