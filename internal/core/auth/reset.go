package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// NewResetToken 生成一次性重置令牌：返回明文（发邮件用）和
// sha256 哈希（入库用）。明文永不落库。
func NewResetToken() (plain, hash string, err error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	plain = hex.EncodeToString(buf)
	return plain, HashResetToken(plain), nil
}

// HashResetToken 对客户端提交的令牌做同样的单向哈希，
// 可直接与库中摘要比较
func HashResetToken(candidate string) string {
	sum := sha256.Sum256([]byte(candidate))
	return hex.EncodeToString(sum[:])
}
