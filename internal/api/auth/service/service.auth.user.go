// Package authsvc - service người dùng (User).
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	authdto "meta_market/internal/api/auth/dto"
	models "meta_market/internal/api/auth/models"
	basesvc "meta_market/internal/api/base/service"
	"meta_market/internal/common"
	"meta_market/internal/global"
	"meta_market/internal/utility"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
	userRoleService *basesvc.BaseServiceMongoImpl[models.UserRole]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}
	userRoleCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.UserRoles)
	if !exist {
		return nil, fmt.Errorf("failed to get user_roles collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
		userRoleService:      basesvc.NewBaseServiceMongo[models.UserRole](userRoleCollection),
	}, nil
}

// Register đăng ký người dùng mới bằng email và mật khẩu
func (s *UserService) Register(ctx context.Context, input *authdto.UserRegisterInput) (*models.User, error) {
	emailFilter := bson.M{"email": input.Email}
	_, err := s.BaseServiceMongoImpl.FindOne(ctx, emailFilter, nil)
	if err == nil {
		return nil, common.NewError(common.ErrCodeDatabaseQuery, fmt.Sprintf("Email '%s' đã được sử dụng", input.Email), common.StatusConflict, nil)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể mã hóa mật khẩu", common.StatusInternalServerError, err)
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Tokens:   []models.Token{},
	}
	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": created.ID.Hex(), "email": created.Email}).Info("Register: Đăng ký thành công")
	return &created, nil
}

// Login đăng nhập bằng email và mật khẩu, trả về user kèm token mới theo hwid
func (s *UserService) Login(ctx context.Context, input *authdto.UserLoginInput) (*models.User, error) {
	emailFilter := bson.M{"email": input.Email}
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, emailFilter, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logrus.WithFields(logrus.Fields{"email": input.Email}).Warn("Login: Sai mật khẩu")
		return nil, common.ErrInvalidCredentials
	}

	if user.IsBlock {
		return nil, common.NewError(common.ErrCodeAuth, "Tài khoản đã bị khóa", common.StatusForbidden, nil)
	}

	updatedUser, err := s.issueToken(ctx, &user, input.Hwid)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": updatedUser.ID.Hex(), "email": updatedUser.Email}).Info("Login: Đăng nhập thành công")
	return updatedUser, nil
}

// issueToken sinh JWT token mới cho thiết bị (hwid) và lưu vào user
func (s *UserService) issueToken(ctx context.Context, user *models.User, hwid string) (*models.User, error) {
	rdNumber := rand.Intn(100)
	currentTime := time.Now().Unix()
	tokenMap, err := utility.CreateToken(global.MongoDB_ServerConfig.JwtSecret, user.ID.Hex(), strconv.FormatInt(currentTime, 16), strconv.Itoa(rdNumber))
	if err != nil {
		return nil, err
	}

	user.Token = tokenMap["token"]
	var idTokenExist int = -1
	for i, _token := range user.Tokens {
		if _token.Hwid == hwid {
			idTokenExist = i
			break
		}
	}
	if idTokenExist == -1 {
		user.Tokens = append(user.Tokens, models.Token{Hwid: hwid, JwtToken: tokenMap["token"]})
	} else {
		user.Tokens[idTokenExist].JwtToken = tokenMap["token"]
	}

	tokenUpdateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"token":  user.Token,
			"tokens": user.Tokens,
		},
	}
	updatedUser, err := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, tokenUpdateData)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex(), "error": err.Error()}).Error("issueToken: Lỗi khi cập nhật token vào user")
		return nil, err
	}
	return &updatedUser, nil
}

// ChangePassword đổi mật khẩu người dùng, yêu cầu mật khẩu cũ đúng.
// Đổi mật khẩu thành công sẽ thu hồi toàn bộ token đã cấp.
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input *authdto.UserChangePasswordInput) error {
	user, err := s.BaseServiceMongoImpl.FindOneById(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		return common.NewError(common.ErrCodeAuthCredentials, "Mật khẩu cũ không đúng", common.StatusUnauthorized, nil)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Không thể mã hóa mật khẩu", common.StatusInternalServerError, err)
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"password": string(hashed),
			"token":    "",
			"tokens":   []models.Token{},
		},
	}
	_, err = s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData)
	return err
}

// Logout đăng xuất người dùng (xóa token theo hwid)
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID, input *authdto.UserLogoutInput) error {
	user, err := s.BaseServiceMongoImpl.FindOneById(ctx, userID)
	if err != nil {
		return err
	}
	newTokens := make([]models.Token, 0)
	for _, t := range user.Tokens {
		if t.Hwid != input.Hwid {
			newTokens = append(newTokens, t)
		}
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"tokens": newTokens,
			"token":  "",
		},
	}
	_, err = s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData)
	return err
}
