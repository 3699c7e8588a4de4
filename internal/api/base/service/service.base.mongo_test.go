// Package basesvc - Test các helper reflection của base service.
package basesvc

import (
	"reflect"
	"testing"
)

type sparseTestModel struct {
	Name    string `json:"name" bson:"name" index:"single:1"`
	Email   string `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty" index:"unique,sparse"`
	Age     int    `json:"age" bson:"age" index:"unique,sparse"`
	NoIndex string `json:"note" bson:"note"`
}

func TestGetSparseUniqueStringFields(t *testing.T) {
	fields := getSparseUniqueStringFields(reflect.TypeOf(sparseTestModel{}))
	if len(fields) != 2 {
		t.Fatalf("muốn 2 field string có index unique+sparse, có %d (%v)", len(fields), fields)
	}
	if fields[0] != "email" || fields[1] != "phone" {
		t.Errorf("tên bson sai: %v", fields)
	}
}

func TestGetSparseUniqueStringFields_KhongPhaiStruct(t *testing.T) {
	if fields := getSparseUniqueStringFields(reflect.TypeOf("text")); fields != nil {
		t.Errorf("kiểu không phải struct phải trả về nil, có %v", fields)
	}
	if fields := getSparseUniqueStringFields(nil); fields != nil {
		t.Errorf("type nil phải trả về nil, có %v", fields)
	}
}
