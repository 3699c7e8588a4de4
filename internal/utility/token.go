package utility

import (
	"fmt"

	"github.com/dgrijalva/jwt-go"
)

// jwtClaims là claims được mã hóa trong token xác thực.
// Time và RandomNumber đảm bảo mỗi lần đăng nhập sinh ra token khác nhau.
type jwtClaims struct {
	UserID       string `json:"userId"`
	Time         string `json:"time"`
	RandomNumber string `json:"randomNumber"`
	jwt.StandardClaims
}

// CreateToken tạo JWT token chứa userID, ký bằng secret (HS256).
func CreateToken(secret string, userID string, timeStr string, randomNumber string) (map[string]string, error) {
	claims := jwtClaims{
		UserID:       userID,
		Time:         timeStr,
		RandomNumber: randomNumber,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("không thể ký token: %v", err)
	}
	return map[string]string{"token": tokenString}, nil
}
