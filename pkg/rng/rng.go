package rng

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source 是抽取流程使用的均匀随机源。
// 抽取引擎本身是纯函数，随机样本总是由调用方通过Source提供，
// 因此测试可以注入固定样本而完全绕开随机数。
type Source interface {
	Float64() float64 // [0, 1)
}

// cryptoSource 使用操作系统的密码学随机数生成[0,1)的均匀样本。
type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// 读取失败时退回math/rand/v2
		return rand.Float64()
	}

	// 取53个随机位，映射到[0,1)
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// Default 返回生产环境使用的默认随机源。
func Default() Source { return cryptoSource{} }

// seededSource 是可复现的随机源，用于统计类测试。
type seededSource struct{ r *rand.Rand }

// NewSeeded 返回一个以给定种子初始化的可复现随机源。
func NewSeeded(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }
