package draw_test

import (
	"testing"

	"github.com/MoguBox/blindbox-backend/internal/draw"
	"github.com/stretchr/testify/assert"
)

func TestSelectIndex_FixedSamples(t *testing.T) {
	// A=0.5, B=0.3, C=0.2
	probs := []float64{0.5, 0.3, 0.2}

	tests := []struct {
		sample float64
		want   int
	}{
		{0.0, 0},
		{0.1, 0},
		{0.499999, 0},
		{0.5, 1},
		{0.55, 1},
		{0.799999, 1},
		{0.8, 2},
		{0.85, 2},
		{0.999999, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, draw.SelectIndex(probs, tt.sample), "sample=%v", tt.sample)
	}
}

func TestSelectIndex_TailFallback(t *testing.T) {
	// 浮点累加可能略小于1，极靠近1的sample必须落到最后一个物品
	probs := []float64{0.1, 0.2, 0.3, 0.4}
	assert.Equal(t, 3, draw.SelectIndex(probs, 0.9999999999999999))

	// 即使概率和因误差达不到sample，也要有明确归属
	tiny := []float64{0.3333333333333333, 0.3333333333333333, 0.3333333333333333}
	assert.Equal(t, 2, draw.SelectIndex(tiny, 0.99999999999999999))
}

func TestSelectIndex_Deterministic(t *testing.T) {
	probs := []float64{0.25, 0.25, 0.25, 0.25}
	for i := 0; i < 100; i++ {
		assert.Equal(t, draw.SelectIndex(probs, 0.62), draw.SelectIndex(probs, 0.62))
	}
}

func TestSelectIndex_ReproducesDistribution(t *testing.T) {
	// 用均匀分布的sample扫一遍[0,1)，各物品的命中次数应与概率成正比
	probs := []float64{0.5, 0.3, 0.2}
	const n = 10000

	counts := make([]int, len(probs))
	for i := 0; i < n; i++ {
		sample := float64(i) / n
		counts[draw.SelectIndex(probs, sample)]++
	}

	assert.InDelta(t, 5000, counts[0], 1)
	assert.InDelta(t, 3000, counts[1], 1)
	assert.InDelta(t, 2000, counts[2], 1)
}

func TestSelectIndex_ZeroProbabilityNeverChosenMidSequence(t *testing.T) {
	// 中间有零概率物品时，sample落在边界上应跳过它
	probs := []float64{0.5, 0.0, 0.5}
	assert.Equal(t, 0, draw.SelectIndex(probs, 0.499999))
	assert.Equal(t, 2, draw.SelectIndex(probs, 0.5))
}
