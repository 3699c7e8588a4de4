// Package taxsvc - Test bảo vệ tag hệ thống.
package taxsvc

import (
	"testing"

	models "meta_market/internal/api/taxonomy/models"
	"meta_market/internal/common"
)

func TestGuardSystemTag_ChanTagHeThong(t *testing.T) {
	err := GuardSystemTag(models.Tag{Name: "Featured", IsSystem: true})
	if err == nil {
		t.Fatal("tag hệ thống phải bị chặn sửa/xóa")
	}
	cerr, ok := err.(*common.Error)
	if !ok {
		t.Fatalf("lỗi phải là *common.Error, có %T", err)
	}
	if cerr.StatusCode != common.StatusForbidden {
		t.Errorf("tag hệ thống phải trả 403, có %d", cerr.StatusCode)
	}
}

func TestGuardSystemTag_ChoPhepTagThuong(t *testing.T) {
	if err := GuardSystemTag(models.Tag{Name: "Sale"}); err != nil {
		t.Errorf("tag thường không được bị chặn: %v", err)
	}
}
