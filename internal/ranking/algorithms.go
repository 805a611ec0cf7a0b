package ranking

import "github.com/MoguBox/blindbox-backend/internal/platform/config"

// 运气值权重和榜单参数。启动时由Configure从配置覆盖，
// 这里的默认值与配置文件的默认值保持一致。
var (
	// hiddenWeight 是每次隐藏款抽取计入运气值的权重
	hiddenWeight = 100.0
	// normalWeight 是每次普通款抽取计入运气值的权重
	normalWeight = 5.0
	// luckMinDraws 是进入欧皇榜的最低抽取次数
	luckMinDraws = 3
	// unluckMinDraws 是进入非酋榜的最低抽取次数
	unluckMinDraws = 5
	// listLimit 是榜单长度上限
	listLimit = 50
	// recentLimit 是全服最新隐藏款动态的条数上限
	recentLimit = 20
)

// Configure 用配置文件中的命名参数覆盖运气值权重和榜单参数。
func Configure(cfg config.RankingConfig) {
	hiddenWeight = cfg.HiddenWeight
	normalWeight = cfg.NormalWeight
	luckMinDraws = cfg.LuckMinDraws
	unluckMinDraws = cfg.UnluckMinDraws
	listLimit = cfg.ListLimit
	recentLimit = cfg.RecentLimit
}

// CalculateLuckScore 计算一个用户的运气值。
//
// 运气值 = (隐藏款次数×隐藏款权重 + 普通款次数×普通款权重) / 总抽取次数，
// 上限100分。没有抽取记录时为0分。
func CalculateLuckScore(hidden, normal, total int64) float64 {
	if total == 0 {
		return 0
	}
	score := (float64(hidden)*hiddenWeight + float64(normal)*normalWeight) / float64(total)
	if score > 100 {
		score = 100
	}
	return score
}

// LuckLevelFor 把运气值映射到运气段位。
func LuckLevelFor(score float64) string {
	switch {
	case score >= 80:
		return "欧皇"
	case score >= 60:
		return "欧洲人"
	case score >= 40:
		return "平民"
	case score >= 20:
		return "非洲人"
	default:
		return "非酋"
	}
}
