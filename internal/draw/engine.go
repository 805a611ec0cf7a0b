package draw

// SelectIndex 在归一化后的概率序列上做一次加权选择。
//
// sample必须落在[0,1)区间。算法沿概率序列累加，返回第一个使
// 累计和超过sample的下标；由于浮点累加误差，累计和可能略小于1，
// 此时兜底返回最后一个下标，保证任何sample都有明确归属。
//
// 这是一个纯函数：同一份分布和同一个sample永远返回同一个下标。
func SelectIndex(probs []float64, sample float64) int {
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if sample < cumulative {
			return i
		}
	}
	return len(probs) - 1
}
