package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// secretKey 是一个全局变量，用于存储服务器在启动时生成的32字节密钥。
var secretKey []byte

// TokenPayload 定义了需要被签名的数据结构。
// 它在登录响应中签发，并由管理接口的中间件验证。
type TokenPayload struct {
	UserID   uint   `json:"u"`
	Role     string `json:"r"`
	Nonce    string `json:"n"`
	IssuedAt int64  `json:"t"`
}

// GenerateSecretKey 生成一个密码学安全的32字节随机密钥。
// 重启后旧令牌全部失效，这对本系统是可接受的。
func GenerateSecretKey() {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	if err != nil {
		panic("无法生成安全的密钥: " + err.Error())
	}
	secretKey = key
	fmt.Println("HMAC密钥已成功生成。")
}

// Sign 为一个给定的TokenPayload生成完整的令牌字符串。
// 格式为 base64(payload JSON) + "." + base64(HMAC-SHA256签名)。
func Sign(payload TokenPayload) (string, error) {
	// 1. 将payload序列化为JSON字符串
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", errors.New("无法序列化Token payload")
	}

	// 2. 使用HMAC-SHA256和密钥对payload进行签名
	mac := hmac.New(sha256.New, secretKey)
	mac.Write(payloadBytes)
	signature := mac.Sum(nil)

	// 3. 对两部分分别进行Base64编码并拼接
	encodedPayload := base64.RawURLEncoding.EncodeToString(payloadBytes)
	encodedSignature := base64.RawURLEncoding.EncodeToString(signature)
	return encodedPayload + "." + encodedSignature, nil
}

// Parse 验证令牌的签名并返回其中的payload。
// 签名不匹配或格式非法时返回错误。
func Parse(tokenStr string) (*TokenPayload, error) {
	parts := strings.SplitN(tokenStr, ".", 2)
	if len(parts) != 2 {
		return nil, errors.New("令牌格式非法")
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, errors.New("令牌payload解码失败")
	}
	actualSignature, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errors.New("令牌签名解码失败")
	}

	// 重新计算预期的签名
	mac := hmac.New(sha256.New, secretKey)
	mac.Write(payloadBytes)
	expectedSignature := mac.Sum(nil)

	// 使用 hmac.Equal 进行安全的、时间恒定的比较，防止时序攻击
	if !hmac.Equal(expectedSignature, actualSignature) {
		return nil, errors.New("令牌签名不匹配")
	}

	var payload TokenPayload
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return nil, errors.New("令牌payload解析失败")
	}
	return &payload, nil
}

// Age 返回令牌从签发到现在经过的时长。
func (p *TokenPayload) Age() time.Duration {
	return time.Since(time.Unix(p.IssuedAt, 0))
}
