package draw

import (
	"errors"
	"sort"

	"github.com/MoguBox/blindbox-backend/internal/pool"
)

// ErrEmptyPool 表示盲盒池内没有任何物品，无法抽取
var ErrEmptyPool = errors.New("盲盒池内没有可抽取的物品")

// Distribution 是一次归一化的产物：按物品ID升序排列的物品序列，
// 以及与之一一对应、总和为1的概率序列。
// 它只在单次抽取内有效，抽取结束即丢弃，任何地方都不缓存。
type Distribution struct {
	Items []pool.Item
	Probs []float64
}

// Normalize 把管理员声明的相对权重转换为概率分布。
//
// 输入顺序不影响结果：物品先按ID升序排序，保证同一份目录数据
// 总是产出同一份分布。校验失败时不产出任何部分结果：
//   - 空池返回ErrEmptyPool；
//   - 出现负权重返回pool.ErrInvalidWeight（这是目录配置错误，
//     应当在管理员录入时就被拦下）；
//   - 全部权重为零时退化为均匀分布，每个物品各占1/N；
//   - 其余情况按真实权重总和缩放，不假设声明值加起来恰好是1。
func Normalize(items []pool.Item) (*Distribution, error) {
	if len(items) == 0 {
		return nil, ErrEmptyPool
	}

	sorted := make([]pool.Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var sum float64
	for _, it := range sorted {
		if it.DropRate < 0 {
			return nil, pool.ErrInvalidWeight
		}
		sum += it.DropRate
	}

	probs := make([]float64, len(sorted))
	if sum == 0 {
		// 全零权重：视为管理员未配置概率，均匀分布兜底
		uniform := 1.0 / float64(len(sorted))
		for i := range probs {
			probs[i] = uniform
		}
	} else {
		for i, it := range sorted {
			probs[i] = it.DropRate / sum
		}
	}

	return &Distribution{Items: sorted, Probs: probs}, nil
}
