package ranking_test

import (
	"testing"

	"github.com/MoguBox/blindbox-backend/internal/ranking"
	"github.com/stretchr/testify/assert"
)

func TestCalculateLuckScore(t *testing.T) {
	// 1次隐藏款 + 9次普通款，共10次：(1*100 + 9*5) / 10 = 14.5
	assert.InDelta(t, 14.5, ranking.CalculateLuckScore(1, 9, 10), 1e-9)

	// 没有抽取记录时运气值为0
	assert.Zero(t, ranking.CalculateLuckScore(0, 0, 0))

	// 全是隐藏款时触发100分上限
	assert.Equal(t, 100.0, ranking.CalculateLuckScore(5, 0, 5))

	// 物品已删除的订单计入总数但不计入任何档位，会拉低分数
	assert.InDelta(t, 52.5, ranking.CalculateLuckScore(1, 1, 2), 1e-9)
	assert.InDelta(t, 35.0, ranking.CalculateLuckScore(1, 1, 3), 1e-9)
}

func TestLuckLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "欧皇"},
		{80, "欧皇"},
		{79.99, "欧洲人"},
		{60, "欧洲人"},
		{59.99, "平民"},
		{40, "平民"},
		{39.99, "非洲人"},
		{20, "非洲人"},
		{19.99, "非酋"},
		{0, "非酋"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ranking.LuckLevelFor(tt.score), "score=%v", tt.score)
	}
}
