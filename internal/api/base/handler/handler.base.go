package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	authsvc "meta_market/internal/api/auth/service"
	basesvc "meta_market/internal/api/base/service"
	"meta_market/internal/common"
	"meta_market/internal/global"
	"meta_market/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// FilterOptions cấu hình cho việc validate filter
type FilterOptions struct {
	DeniedFields     []string // Các trường bị cấm filter
	AllowedOperators []string // Các operator MongoDB được phép
	MaxFields        int      // Số lượng field tối đa trong một filter
}

// BaseHandler là base handler cho các Fiber handler, cung cấp các chức năng CRUD cơ bản.
// Struct này sử dụng Generic Type để có thể tái sử dụng cho nhiều loại model khác nhau.
//
// Type parameters:
// - T: Kiểu dữ liệu của model
// - CreateInput: Kiểu dữ liệu của input khi tạo mới
// - UpdateInput: Kiểu dữ liệu của input khi cập nhật
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService   basesvc.BaseServiceMongo[T] // Service xử lý logic nghiệp vụ với MongoDB
	filterOptions FilterOptions               // Cấu hình validate filter
}

// NewBaseHandler tạo mới một BaseHandler với BaseService được cung cấp
func NewBaseHandler[T any, CreateInput any, UpdateInput any](baseService basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: baseService,
		filterOptions: FilterOptions{
			DeniedFields: []string{
				"password",
				"token",
				"secret",
				"key",
				"hash",
			},
			AllowedOperators: []string{
				"$eq",
				"$gt",
				"$gte",
				"$lt",
				"$lte",
				"$in",
				"$nin",
				"$exists",
			},
			MaxFields: 10,
		},
	}
}

// SetFilterOptions thay cấu hình validate filter (denied fields, operators, max fields)
func (h *BaseHandler[T, CreateInput, UpdateInput]) SetFilterOptions(opts FilterOptions) {
	h.filterOptions = opts
}

// ====================================
// ORGANIZATION HELPER FUNCTIONS
// ====================================

// hasOrganizationIDField kiểm tra model có field OwnerOrganizationID không (dùng reflection)
// Field này dùng cho phân quyền dữ liệu (data authorization) - xác định dữ liệu thuộc về tổ chức nào
func (h *BaseHandler[T, CreateInput, UpdateInput]) hasOrganizationIDField() bool {
	var zero T
	val := reflect.ValueOf(zero)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return false
	}

	field := val.FieldByName("OwnerOrganizationID")
	return field.IsValid()
}

// GetActiveOrganizationID lấy active organization ID từ context (đã được middleware set)
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetActiveOrganizationID(c fiber.Ctx) *primitive.ObjectID {
	orgIDStr, ok := c.Locals("active_organization_id").(string)
	if !ok || orgIDStr == "" {
		return nil
	}
	orgID, err := primitive.ObjectIDFromHex(orgIDStr)
	if err != nil {
		return nil
	}
	return &orgID
}

// SetOrganizationID tự động gán ownerOrganizationId vào model (dùng reflection)
// CHỈ gán nếu model có field OwnerOrganizationID và chưa có giá trị (ưu tiên giá trị từ request body)
func (h *BaseHandler[T, CreateInput, UpdateInput]) SetOrganizationID(model interface{}, orgID primitive.ObjectID) {
	if !h.hasOrganizationIDField() {
		return
	}
	if orgID.IsZero() {
		return
	}

	val := reflect.ValueOf(model)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	field := val.FieldByName("OwnerOrganizationID")
	if !field.IsValid() || !field.CanSet() {
		return
	}

	if field.Kind() == reflect.Ptr {
		if !field.IsNil() {
			currentOrgIDPtr := field.Interface().(*primitive.ObjectID)
			if currentOrgIDPtr != nil && !currentOrgIDPtr.IsZero() {
				return // Đã có giá trị hợp lệ, không override
			}
		}
		field.Set(reflect.ValueOf(&orgID))
	} else {
		currentOrgID := field.Interface().(primitive.ObjectID)
		if !currentOrgID.IsZero() {
			return // Đã có giá trị hợp lệ từ request body, không override
		}
		field.Set(reflect.ValueOf(orgID))
	}
}

// GetOwnerOrganizationIDFromModel lấy ownerOrganizationId từ model hoặc DTO (dùng reflection)
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetOwnerOrganizationIDFromModel(model interface{}) *primitive.ObjectID {
	val := reflect.ValueOf(model)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	field := val.FieldByName("OwnerOrganizationID")
	if !field.IsValid() {
		return nil
	}

	// Xử lý cả primitive.ObjectID và *primitive.ObjectID
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return nil
		}
		orgID := field.Interface().(*primitive.ObjectID)
		if orgID != nil && !orgID.IsZero() {
			return orgID
		}
	} else if field.Type() == reflect.TypeOf(primitive.ObjectID{}) {
		orgID := field.Interface().(primitive.ObjectID)
		if !orgID.IsZero() {
			return &orgID
		}
	}

	return nil
}

// getPermissionNameFromRoute lấy permission name từ context (đã được set bởi middleware AuthMiddleware)
func (h *BaseHandler[T, CreateInput, UpdateInput]) getPermissionNameFromRoute(c fiber.Ctx) string {
	if permissionName, ok := c.Locals("permission_name").(string); ok && permissionName != "" {
		return permissionName
	}
	return ""
}

// ValidateUserHasAccessToOrg validate user có quyền với organization không.
// Dùng khi create/update với ownerOrganizationId từ request.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateUserHasAccessToOrg(c fiber.Ctx, orgID primitive.ObjectID) error {
	activeRoleIDStr, ok := c.Locals("active_role_id").(string)
	if !ok || activeRoleIDStr == "" {
		return common.NewError(common.ErrCodeAuthRole, "Không có role context", common.StatusUnauthorized, nil)
	}
	activeRoleID, err := primitive.ObjectIDFromHex(activeRoleIDStr)
	if err != nil {
		return common.NewError(common.ErrCodeAuthRole, "Role ID không hợp lệ", common.StatusUnauthorized, err)
	}

	permissionName := h.getPermissionNameFromRoute(c)

	allowedOrgIDs, err := authsvc.GetAllowedOrganizationIDsFromRole(c.Context(), activeRoleID, permissionName)
	if err != nil {
		return err
	}

	for _, allowedOrgID := range allowedOrgIDs {
		if allowedOrgID == orgID {
			return nil
		}
	}

	return common.NewError(common.ErrCodeAuthRole, "Không có quyền với organization này", common.StatusForbidden, nil)
}

// applyOrganizationFilter tự động thêm filter ownerOrganizationId theo scope của active role.
// CHỈ áp dụng nếu model có field OwnerOrganizationID (phân quyền dữ liệu).
func (h *BaseHandler[T, CreateInput, UpdateInput]) applyOrganizationFilter(c fiber.Ctx, baseFilter map[string]interface{}) map[string]interface{} {
	if !h.hasOrganizationIDField() {
		return baseFilter
	}

	activeRoleIDStr, ok := c.Locals("active_role_id").(string)
	if !ok || activeRoleIDStr == "" {
		return baseFilter // Không có active role, không filter
	}
	activeRoleID, err := primitive.ObjectIDFromHex(activeRoleIDStr)
	if err != nil {
		return baseFilter
	}

	permissionName := h.getPermissionNameFromRoute(c)

	allowedOrgIDs, err := authsvc.GetAllowedOrganizationIDsFromRole(c.Context(), activeRoleID, permissionName)
	if err != nil || len(allowedOrgIDs) == 0 {
		return baseFilter
	}

	orgFilter := bson.M{"ownerOrganizationId": bson.M{"$in": allowedOrgIDs}}

	if len(baseFilter) == 0 {
		return orgFilter
	}

	return bson.M{
		"$and": []bson.M{
			baseFilter,
			orgFilter,
		},
	}
}

// ApplyOrganizationFilter giới hạn filter theo các organization mà active role
// được phép truy cập. Dùng cho các custom handler ngoài package base.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ApplyOrganizationFilter(c fiber.Ctx, baseFilter map[string]interface{}) map[string]interface{} {
	return h.applyOrganizationFilter(c, baseFilter)
}

// ValidateOrganizationAccess validate user có quyền truy cập document này không.
// CHỈ validate nếu model có field OwnerOrganizationID (phân quyền dữ liệu).
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateOrganizationAccess(c fiber.Ctx, documentID string) error {
	if !h.hasOrganizationIDField() {
		return nil
	}

	id, err := primitive.ObjectIDFromHex(documentID)
	if err != nil {
		return common.NewError(common.ErrCodeValidationInput, "ID không hợp lệ", common.StatusBadRequest, err)
	}

	doc, err := h.BaseService.FindOneById(c.Context(), id)
	if err != nil {
		return err
	}

	docOrgID := h.GetOwnerOrganizationIDFromModel(doc)
	if docOrgID == nil {
		return nil // Không có organizationId, không cần validate
	}

	activeRoleIDStr, ok := c.Locals("active_role_id").(string)
	if !ok || activeRoleIDStr == "" {
		return common.NewError(common.ErrCodeAuthRole, "Không có role context", common.StatusUnauthorized, nil)
	}
	activeRoleID, err := primitive.ObjectIDFromHex(activeRoleIDStr)
	if err != nil {
		return common.NewError(common.ErrCodeAuthRole, "Role ID không hợp lệ", common.StatusUnauthorized, err)
	}

	permissionName := h.getPermissionNameFromRoute(c)

	allowedOrgIDs, err := authsvc.GetAllowedOrganizationIDsFromRole(c.Context(), activeRoleID, permissionName)
	if err != nil {
		return err
	}

	for _, allowedOrgID := range allowedOrgIDs {
		if allowedOrgID == *docOrgID {
			return nil
		}
	}

	return common.NewError(common.ErrCodeAuthRole, "Không có quyền truy cập", common.StatusForbidden, nil)
}

// ====================================
// PARSE / VALIDATE INPUT
// ====================================

// ValidateInput thực hiện validate chi tiết dữ liệu đầu vào
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	val := reflect.ValueOf(input)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if field.Kind() == reflect.String {
			if maxTag := fieldType.Tag.Get("maxLength"); maxTag != "" {
				maxLen, err := strconv.Atoi(maxTag)
				if err == nil && len(field.String()) > maxLen {
					return common.NewError(
						common.ErrCodeValidationInput,
						fmt.Sprintf("Trường %s vượt quá độ dài cho phép (%d ký tự)", fieldType.Name, maxLen),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}

		if field.Kind() == reflect.Int || field.Kind() == reflect.Int64 {
			if minTag := fieldType.Tag.Get("min"); minTag != "" {
				min, err := strconv.ParseInt(minTag, 10, 64)
				if err == nil && field.Int() < min {
					return common.NewError(
						common.ErrCodeValidationInput,
						fmt.Sprintf("Trường %s phải lớn hơn hoặc bằng %d", fieldType.Name, min),
						common.StatusBadRequest,
						nil,
					)
				}
			}
			if maxTag := fieldType.Tag.Get("max"); maxTag != "" {
				max, err := strconv.ParseInt(maxTag, 10, 64)
				if err == nil && field.Int() > max {
					return common.NewError(
						common.ErrCodeValidationInput,
						fmt.Sprintf("Trường %s phải nhỏ hơn hoặc bằng %d", fieldType.Name, max),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}

	return nil
}

// ParseRequestBody parse và validate dữ liệu từ request body.
// Sử dụng json.Decoder với UseNumber() để xử lý chính xác các số.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	reader := bytes.NewReader(body)
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	if err := h.ValidateInput(input); err != nil {
		return err
	}

	return nil
}

// ParseRequestQuery parse và validate dữ liệu từ query string (encode dưới dạng JSON).
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestQuery(c fiber.Ctx, input interface{}) error {
	query := c.Query("query", "")

	reader := bytes.NewReader([]byte(query))
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	return nil
}

// ParseRequestParams parse và validate các tham số từ URI.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestParams(c fiber.Ctx, input interface{}) error {
	if err := c.Bind().URI(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	return nil
}

// ====================================
// FILTER / OPTIONS
// ====================================

// ProcessFilter xử lý và validate filter từ query string
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (map[string]interface{}, error) {
	var filter map[string]interface{}

	filterStr := c.Query("filter", "{}")
	if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter không đúng định dạng JSON. Chi tiết lỗi: %v. Giá trị filter nhận được: %s", err, filterStr),
			common.StatusBadRequest,
			err,
		)
	}

	// Normalize filter: chuyển đổi các string ObjectId thành ObjectID
	filter = h.normalizeFilter(filter)

	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}

	return filter, nil
}

// normalizeFilter chuyển đổi các string có format ObjectId thành ObjectID trong filter.
// Hỗ trợ các trường có tên kết thúc bằng "Id" hoặc "ID".
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilter(filter map[string]interface{}) map[string]interface{} {
	if filter == nil {
		return filter
	}

	normalized := make(map[string]interface{})
	for field, value := range filter {
		fieldLower := strings.ToLower(field)
		isIDField := strings.HasSuffix(fieldLower, "id") && len(fieldLower) > 2

		normalized[field] = h.normalizeFilterValue(value, isIDField)
	}

	return normalized
}

// normalizeFilterValue chuyển đổi giá trị trong filter, hỗ trợ nested structures
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilterValue(value interface{}, isIDField bool) interface{} {
	if value == nil {
		return value
	}

	// Hỗ trợ MongoDB Extended JSON format: {"$oid": "..."}
	if mapValue, ok := value.(map[string]interface{}); ok {
		if oidValue, hasOid := mapValue["$oid"]; hasOid {
			if oidStr, ok := oidValue.(string); ok {
				if primitive.IsValidObjectID(oidStr) {
					objID, err := primitive.ObjectIDFromHex(oidStr)
					if err == nil {
						return objID
					}
				}
			}
			return value
		}
	}

	if strValue, ok := value.(string); ok && isIDField {
		if primitive.IsValidObjectID(strValue) {
			objID, err := primitive.ObjectIDFromHex(strValue)
			if err == nil {
				return objID
			}
		}
		return strValue
	}

	if arrValue, ok := value.([]interface{}); ok {
		normalizedArr := make([]interface{}, len(arrValue))
		for i, item := range arrValue {
			normalizedArr[i] = h.normalizeFilterValue(item, isIDField)
		}
		return normalizedArr
	}

	// Map (cho các operator như $in, $nin, $eq, etc.), xử lý đệ quy
	if mapValue, ok := value.(map[string]interface{}); ok {
		normalizedMap := make(map[string]interface{})
		for key, val := range mapValue {
			// $in và $nin: các giá trị trong mảng cần được chuyển đổi
			if (key == "$in" || key == "$nin") && isIDField {
				if arrVal, ok := val.([]interface{}); ok {
					normalizedArr := make([]interface{}, len(arrVal))
					for i, item := range arrVal {
						if strItem, ok := item.(string); ok && primitive.IsValidObjectID(strItem) {
							objID, err := primitive.ObjectIDFromHex(strItem)
							if err == nil {
								normalizedArr[i] = objID
							} else {
								normalizedArr[i] = item
							}
						} else {
							normalizedArr[i] = item
						}
					}
					normalizedMap[key] = normalizedArr
				} else {
					normalizedMap[key] = val
				}
			} else {
				normalizedMap[key] = h.normalizeFilterValue(val, isIDField)
			}
		}
		return normalizedMap
	}

	return value
}

// validateFilter kiểm tra tính hợp lệ của filter
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilter(filter map[string]interface{}) error {
	deniedFields := h.filterOptions.DeniedFields
	if len(deniedFields) == 0 {
		deniedFields = []string{"password", "token", "secret", "key", "hash"}
	}

	allowedOperators := h.filterOptions.AllowedOperators
	if len(allowedOperators) == 0 {
		allowedOperators = []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"}
	}

	maxFields := h.filterOptions.MaxFields
	if maxFields == 0 {
		maxFields = 10
	}

	if len(filter) > maxFields {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter vượt quá số lượng trường cho phép. Tối đa %d trường, hiện tại có %d trường. Vui lòng giảm số lượng trường trong filter.", maxFields, len(filter)),
			common.StatusBadRequest,
			nil,
		)
	}

	for field, value := range filter {
		if utility.Contains(deniedFields, field) {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Trường '%s' không được phép sử dụng trong filter vì lý do bảo mật. Vui lòng sử dụng các trường khác.", field),
				common.StatusBadRequest,
				nil,
			)
		}

		if mapValue, ok := value.(map[string]interface{}); ok {
			for op := range mapValue {
				if strings.HasPrefix(op, "$") && !utility.Contains(allowedOperators, op) {
					return common.NewError(
						common.ErrCodeValidationFormat,
						fmt.Sprintf("Toán tử MongoDB '%s' không được phép sử dụng. Các toán tử được phép: %v", op, allowedOperators),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}

	return nil
}

// processMongoOptions xử lý options từ query string và chuyển đổi sang MongoDB options
func (h *BaseHandler[T, CreateInput, UpdateInput]) processMongoOptions(c fiber.Ctx, isFindOne bool) (interface{}, error) {
	var rawOptions map[string]interface{}

	optionsStr := c.Query("options", "{}")
	if err := json.Unmarshal([]byte(optionsStr), &rawOptions); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Options không đúng định dạng JSON. Chi tiết lỗi: %v. Giá trị options nhận được: %s", err, optionsStr),
			common.StatusBadRequest,
			err,
		)
	}

	if err := h.validateMongoOptions(rawOptions); err != nil {
		return nil, err
	}

	// Fallback: parse sort map không giữ thứ tự key
	parseSortMap := func(sortMap map[string]interface{}) bson.D {
		sortBson := bson.D{}
		for field, value := range sortMap {
			var sortValue int
			if v, ok := value.(float64); ok {
				sortValue = int(v)
			} else if v, ok := value.(int); ok {
				sortValue = v
			} else {
				continue
			}
			if sortValue != 1 && sortValue != -1 {
				continue
			}
			sortBson = append(sortBson, bson.E{Key: field, Value: sortValue})
		}
		return sortBson
	}

	// Parse sort với thứ tự được giữ nguyên từ JSON string gốc.
	// json.Unmarshal vào map sẽ mất thứ tự key nên phải đọc lại bằng Decoder.Token().
	parseSortWithOrder := func(sortMap map[string]interface{}, optionsJSON string) (bson.D, error) {
		sortBson := bson.D{}

		var tempOptions map[string]json.RawMessage
		if err := json.Unmarshal([]byte(optionsJSON), &tempOptions); err != nil {
			return parseSortMap(sortMap), nil
		}

		sortRaw, ok := tempOptions["sort"]
		if !ok {
			return sortBson, nil
		}

		decoder := json.NewDecoder(bytes.NewReader(sortRaw))
		decoder.UseNumber()

		token, err := decoder.Token()
		if err != nil || token != json.Delim('{') {
			return parseSortMap(sortMap), nil
		}

		for decoder.More() {
			keyToken, err := decoder.Token()
			if err != nil {
				break
			}
			field, ok := keyToken.(string)
			if !ok {
				continue
			}

			valueToken, err := decoder.Token()
			if err != nil {
				break
			}

			var sortValue int
			switch v := valueToken.(type) {
			case json.Number:
				intVal, err := v.Int64()
				if err != nil {
					floatVal, err := v.Float64()
					if err != nil {
						continue
					}
					intVal = int64(floatVal)
				}
				sortValue = int(intVal)
			case float64:
				sortValue = int(v)
			case int:
				sortValue = v
			default:
				continue
			}

			if sortValue != 1 && sortValue != -1 {
				continue
			}

			sortBson = append(sortBson, bson.E{Key: field, Value: sortValue})
		}

		_, _ = decoder.Token()

		if len(sortBson) == 0 {
			return parseSortMap(sortMap), nil
		}

		return sortBson, nil
	}

	if isFindOne {
		opts := mongoopts.FindOne()
		if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
			opts.SetProjection(projection)
		}
		if sort, ok := rawOptions["sort"].(map[string]interface{}); ok {
			sortBson, err := parseSortWithOrder(sort, optionsStr)
			if err != nil {
				return nil, common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Lỗi khi parse sort options: %v", err),
					common.StatusBadRequest,
					err,
				)
			}
			opts.SetSort(sortBson)
		}
		return opts, nil
	}

	opts := mongoopts.Find()
	if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
		opts.SetProjection(projection)
	}
	if sort, ok := rawOptions["sort"].(map[string]interface{}); ok {
		sortBson, err := parseSortWithOrder(sort, optionsStr)
		if err != nil {
			return nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Lỗi khi parse sort options: %v", err),
				common.StatusBadRequest,
				err,
			)
		}
		opts.SetSort(sortBson)
	}
	if limit, ok := rawOptions["limit"].(float64); ok {
		opts.SetLimit(int64(limit))
	}
	if skip, ok := rawOptions["skip"].(float64); ok {
		opts.SetSkip(int64(skip))
	}
	return opts, nil
}

// validateMongoOptions kiểm tra tính hợp lệ của các options
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateMongoOptions(options map[string]interface{}) error {
	deniedFields := h.filterOptions.DeniedFields
	if len(deniedFields) == 0 {
		deniedFields = []string{"password", "token", "secret", "key", "hash"}
	}

	allowedOptions := map[string]bool{
		"projection": true,
		"sort":       true,
		"limit":      true,
		"skip":       true,
	}

	for key := range options {
		if !allowedOptions[key] {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Option '%s' không được hỗ trợ. Các options được phép: projection, sort, limit, skip", key),
				common.StatusBadRequest,
				nil,
			)
		}
	}

	if projection, ok := options["projection"].(map[string]interface{}); ok {
		for field := range projection {
			if utility.Contains(deniedFields, field) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Trường '%s' không được phép sử dụng trong projection vì lý do bảo mật", field),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	if sort, ok := options["sort"].(map[string]interface{}); ok {
		for field, value := range sort {
			if utility.Contains(deniedFields, field) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Trường '%s' không được phép sử dụng trong sort vì lý do bảo mật", field),
					common.StatusBadRequest,
					nil,
				)
			}
			if v, ok := value.(float64); !ok || (v != 1 && v != -1) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Giá trị sort cho trường '%s' phải là 1 (tăng dần) hoặc -1 (giảm dần), giá trị hiện tại: %v", field, value),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	if limit, ok := options["limit"].(float64); ok {
		if limit <= 0 {
			return common.NewError(common.ErrCodeValidationFormat, "Giá trị limit phải lớn hơn 0", common.StatusBadRequest, nil)
		}
		if limit > 1000 {
			return common.NewError(common.ErrCodeValidationFormat, "Giá trị limit không được vượt quá 1000 để đảm bảo hiệu năng hệ thống", common.StatusBadRequest, nil)
		}
	}

	if skip, ok := options["skip"].(float64); ok {
		if skip < 0 {
			return common.NewError(common.ErrCodeValidationFormat, "Giá trị skip không được âm", common.StatusBadRequest, nil)
		}
	}

	return nil
}

// ParsePagination xử lý việc parse thông tin phân trang từ request.
// Hỗ trợ các tham số:
// - page: Số trang (mặc định: 1)
// - limit: Số lượng item trên một trang (mặc định: 10)
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParsePagination(c fiber.Ctx) (int64, int64) {
	page := utility.P2Int64(c.Query("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit := utility.P2Int64(c.Query("limit", "10"))
	if limit <= 0 {
		limit = 10
	}

	return page, limit
}

// GetIDFromContext lấy ID từ URI params của request.
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetIDFromContext(c fiber.Ctx) string {
	return c.Params("id")
}

// ====================================
// DTO → MODEL TRANSFORM
// ====================================

// TransformCreateInputToModel transform CreateInput (DTO) sang Model (T).
// Sử dụng struct tag `transform` để tự động convert các field (ví dụ: string → ObjectID).
// Hỗ trợ map field từ DTO sang Model với tên khác nhau thông qua option `map=<field_name>`.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformCreateInputToModel(input *CreateInput) (*T, error) {
	model := new(T)
	if err := transformInputToModel(input, model); err != nil {
		return nil, err
	}
	return model, nil
}

// TransformUpdateInputToModel transform UpdateInput (DTO) sang Model (T).
// Logic transform giống TransformCreateInputToModel, dùng chung struct tag `transform`.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformUpdateInputToModel(input *UpdateInput) (*T, error) {
	model := new(T)
	if err := transformInputToModel(input, model); err != nil {
		return nil, err
	}
	return model, nil
}

// transformInputToModel copy và transform field từ DTO sang Model theo struct tag `transform`
func transformInputToModel(input interface{}, model interface{}) error {
	inputVal := reflect.ValueOf(input)
	if inputVal.Kind() == reflect.Ptr {
		inputVal = inputVal.Elem()
	}
	if inputVal.Kind() != reflect.Struct {
		return fmt.Errorf("input phải là struct hoặc pointer đến struct")
	}

	modelVal := reflect.ValueOf(model)
	if modelVal.Kind() == reflect.Ptr {
		modelVal = modelVal.Elem()
	}
	if modelVal.Kind() != reflect.Struct {
		return fmt.Errorf("model phải là struct hoặc pointer đến struct")
	}

	inputType := inputVal.Type()
	modelType := modelVal.Type()

	for i := 0; i < inputVal.NumField(); i++ {
		inputField := inputVal.Field(i)
		inputFieldType := inputType.Field(i)

		if !inputField.CanInterface() {
			continue
		}

		fieldValue := inputField.Interface()

		transformTag := inputFieldType.Tag.Get("transform")
		if transformTag != "" {
			transformConfig, err := utility.ParseTransformTag(transformTag)
			if err != nil {
				return fmt.Errorf("lỗi parse transform tag cho field %s: %w", inputFieldType.Name, err)
			}

			// Xác định field target trong Model (mặc định: cùng tên)
			targetFieldName := inputFieldType.Name
			if transformConfig.MapTo != "" {
				targetFieldName = transformConfig.MapTo
			}

			modelField, found := modelType.FieldByName(targetFieldName)
			if !found {
				if transformConfig.Optional {
					continue
				}
				return fmt.Errorf("không tìm thấy field '%s' trong Model (map từ field '%s' trong DTO)", targetFieldName, inputFieldType.Name)
			}

			transformedValue, err := utility.TransformFieldValue(fieldValue, transformConfig, modelField.Type)
			if err != nil {
				if transformConfig.Optional {
					continue
				}
				return fmt.Errorf("lỗi transform field '%s' sang '%s': %w", inputFieldType.Name, targetFieldName, err)
			}

			modelFieldVal := modelVal.FieldByName(targetFieldName)
			if !modelFieldVal.IsValid() || !modelFieldVal.CanSet() {
				return fmt.Errorf("không thể set giá trị vào field '%s' trong Model", targetFieldName)
			}

			if transformedValue != nil {
				transformedVal := reflect.ValueOf(transformedValue)
				if transformedVal.Type().AssignableTo(modelFieldVal.Type()) {
					modelFieldVal.Set(transformedVal)
				} else if transformedVal.Type().ConvertibleTo(modelFieldVal.Type()) {
					modelFieldVal.Set(transformedVal.Convert(modelFieldVal.Type()))
				} else {
					return fmt.Errorf("không thể convert giá trị từ type %v sang type %v cho field '%s'", transformedVal.Type(), modelFieldVal.Type(), targetFieldName)
				}
			}
		} else {
			// Không có transform tag: copy trực tiếp nếu field cùng tên và type tương thích
			targetFieldName := inputFieldType.Name
			if _, found := modelType.FieldByName(targetFieldName); !found {
				continue
			}

			modelFieldVal := modelVal.FieldByName(targetFieldName)
			if !modelFieldVal.IsValid() || !modelFieldVal.CanSet() {
				continue
			}

			inputValReflect := reflect.ValueOf(fieldValue)
			if inputValReflect.Type().AssignableTo(modelFieldVal.Type()) {
				modelFieldVal.Set(inputValReflect)
			} else if inputValReflect.Type().ConvertibleTo(modelFieldVal.Type()) {
				modelFieldVal.Set(inputValReflect.Convert(modelFieldVal.Type()))
			}
		}
	}

	return nil
}

// getCreateInputBSONKeySet trả về tập các bson/json key của CreateInput.
// Dùng trong Upsert để phân biệt field có trong input và field không gửi lên.
func (h *BaseHandler[T, CreateInput, UpdateInput]) getCreateInputBSONKeySet() map[string]bool {
	var zero CreateInput
	val := reflect.ValueOf(zero)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()
	keySet := make(map[string]bool, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		fieldType := typ.Field(i)

		key := fieldType.Tag.Get("bson")
		if key == "" {
			key = fieldType.Tag.Get("json")
		}
		if idx := strings.Index(key, ","); idx >= 0 {
			key = key[:idx]
		}
		if key == "" || key == "-" {
			continue
		}

		// Transform tag có thể map sang field khác trong Model, key trong $set vẫn theo bson key của Model
		keySet[key] = true
	}

	return keySet
}
