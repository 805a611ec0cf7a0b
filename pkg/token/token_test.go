package token_test

import (
	"strings"
	"testing"

	"github.com/MoguBox/blindbox-backend/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse_RoundTrip(t *testing.T) {
	token.GenerateSecretKey()

	payload := token.TokenPayload{UserID: 42, Role: "admin", Nonce: "n-1", IssuedAt: 1700000000}
	tokenStr, err := token.Sign(payload)
	require.NoError(t, err)

	parsed, err := token.Parse(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, payload, *parsed)
}

func TestParse_RejectsTamperedPayload(t *testing.T) {
	token.GenerateSecretKey()

	tokenStr, err := token.Sign(token.TokenPayload{UserID: 1, Role: "user"})
	require.NoError(t, err)

	// 把payload部分换成另一个用户签发的内容
	other, err := token.Sign(token.TokenPayload{UserID: 1, Role: "admin"})
	require.NoError(t, err)

	forged := strings.SplitN(other, ".", 2)[0] + "." + strings.SplitN(tokenStr, ".", 2)[1]
	_, err = token.Parse(forged)
	assert.Error(t, err)
}

func TestParse_RejectsMalformedToken(t *testing.T) {
	token.GenerateSecretKey()

	for _, bad := range []string{"", "no-dot", "!!!.###", "a.b.c"} {
		_, err := token.Parse(bad)
		assert.Error(t, err, "token=%q", bad)
	}
}

func TestParse_RejectsTokenFromOldKey(t *testing.T) {
	token.GenerateSecretKey()
	tokenStr, err := token.Sign(token.TokenPayload{UserID: 7, Role: "user"})
	require.NoError(t, err)

	// 密钥轮换后，旧令牌全部失效
	token.GenerateSecretKey()
	_, err = token.Parse(tokenStr)
	assert.Error(t, err)
}
