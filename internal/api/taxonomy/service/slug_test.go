// Package taxsvc - Test sinh slug từ tên danh mục/tag.
package taxsvc

import "testing"

func TestToSlug(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"chữ thường", "Electronics", "electronics"},
		{"khoảng trắng thành gạch ngang", "Home Appliances", "home-appliances"},
		{"bỏ ký tự đặc biệt", "Laptops & PCs!", "laptops-pcs"},
		{"gộp gạch ngang liên tiếp", "a  -  b", "a-b"},
		{"cắt gạch ngang đầu cuối", " - phones - ", "phones"},
		{"giữ chữ số", "Top 10 Deals", "top-10-deals"},
		{"tên toàn ký tự đặc biệt", "!!!", ""},
		{"chuỗi rỗng", "", ""},
	}
	for _, tc := range cases {
		if got := ToSlug(tc.in); got != tc.want {
			t.Errorf("%s: ToSlug(%q) = %q, muốn %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestToSlug_Idempotent(t *testing.T) {
	inputs := []string{"Home Appliances", "Laptops & PCs!", "Top 10 Deals", "a  -  b"}
	for _, in := range inputs {
		once := ToSlug(in)
		twice := ToSlug(once)
		if once != twice {
			t.Errorf("ToSlug không idempotent với %q: lần 1 %q, lần 2 %q", in, once, twice)
		}
	}
}
