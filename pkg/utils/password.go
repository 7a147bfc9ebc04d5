package utils

import "golang.org/x/crypto/bcrypt"

// bcrypt 成本因子，比 DefaultCost 更保守
const passwordCost = 12

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), passwordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword 不匹配返回 false，不报错
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
