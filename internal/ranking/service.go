package ranking

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// userStat 是单个用户从订单账本聚合出的原始计数
type userStat struct {
	UserID      uint   `json:"-"`
	Username    string `json:"-"`
	TotalDraws  int64  `json:"-"`
	HiddenCount int64  `json:"-"`
	NormalCount int64  `json:"-"`
}

// Entry 是榜单中的一行
type Entry struct {
	Rank        int     `json:"rank"`
	UserID      uint    `json:"userId"`
	Username    string  `json:"username"`
	TotalDraws  int64   `json:"totalDraws"`
	HiddenCount int64   `json:"hiddenCount"`
	NormalCount int64   `json:"normalCount"`
	HiddenRate  float64 `json:"hiddenRate"`
	LuckScore   float64 `json:"luckScore"`
	LuckLevel   string  `json:"luckLevel"`
}

// aggregateStats 从订单账本聚合所有非管理员用户的抽取计数。
// 管理员的测试性抽取不进入任何榜单和统计。
// 榜单每次请求都重新聚合，不存在任何缓存快照。
func aggregateStats(db *gorm.DB, minDraws int) ([]userStat, error) {
	var stats []userStat
	err := db.Raw(`
		SELECT u.id AS user_id, u.username AS username,
			COUNT(o.id) AS total_draws,
			COUNT(CASE WHEN i.rarity = 'hidden' THEN 1 END) AS hidden_count,
			COUNT(CASE WHEN i.rarity = 'normal' THEN 1 END) AS normal_count
		FROM users u
		JOIN orders o ON o.user_id = u.id
		LEFT JOIN items i ON i.id = o.item_id
		WHERE u.role != 'admin' AND u.deleted_at IS NULL
		GROUP BY u.id, u.username
		HAVING COUNT(o.id) >= ?`, minDraws).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("聚合用户抽取统计失败: %w", err)
	}
	return stats, nil
}

// toEntry 把原始计数换算成榜单行（不含名次）。
func toEntry(s userStat) Entry {
	score := CalculateLuckScore(s.HiddenCount, s.NormalCount, s.TotalDraws)
	hiddenRate := 0.0
	if s.TotalDraws > 0 {
		hiddenRate = float64(s.HiddenCount) / float64(s.TotalDraws) * 100
	}
	return Entry{
		UserID:      s.UserID,
		Username:    s.Username,
		TotalDraws:  s.TotalDraws,
		HiddenCount: s.HiddenCount,
		NormalCount: s.NormalCount,
		HiddenRate:  hiddenRate,
		LuckScore:   score,
		LuckLevel:   LuckLevelFor(score),
	}
}

// sortEntries 按运气值排序并编号。
// ascending为false时是欧皇榜（高分在前），为true时是非酋榜。
// 同分用户按ID升序，保证两次聚合产出完全一致的榜单。
func sortEntries(entries []Entry, ascending bool) []Entry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].LuckScore != entries[j].LuckScore {
			if ascending {
				return entries[i].LuckScore < entries[j].LuckScore
			}
			return entries[i].LuckScore > entries[j].LuckScore
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// LuckLeaderboard 返回欧皇榜：达到最低抽取次数的用户按运气值降序。
func LuckLeaderboard(db *gorm.DB) ([]Entry, error) {
	stats, err := aggregateStats(db, luckMinDraws)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(stats))
	for _, s := range stats {
		entries = append(entries, toEntry(s))
	}
	entries = sortEntries(entries, false)
	if len(entries) > listLimit {
		entries = entries[:listLimit]
	}
	return entries, nil
}

// UnluckLeaderboard 返回非酋榜：达到最低抽取次数的用户按运气值升序。
func UnluckLeaderboard(db *gorm.DB) ([]Entry, error) {
	stats, err := aggregateStats(db, unluckMinDraws)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(stats))
	for _, s := range stats {
		entries = append(entries, toEntry(s))
	}
	entries = sortEntries(entries, true)
	if len(entries) > listLimit {
		entries = entries[:listLimit]
	}
	return entries, nil
}

// PersonalRank 是单个用户在两张榜单上的位置
type PersonalRank struct {
	IsAdmin bool `json:"isAdmin"`

	Entry *Entry `json:"stats"`
	// LuckRank 是欧皇榜名次；未达到榜单门槛时为nil
	LuckRank *int `json:"luckRank"`
	// UnluckRank 是非酋榜名次；未达到榜单门槛时为nil
	UnluckRank *int `json:"unluckRank"`
}

// MyRank 返回指定用户的个人统计和在两张榜单上的名次。
// 管理员不参与排名，只返回isAdmin标记。
func MyRank(db *gorm.DB, userID uint) (*PersonalRank, error) {
	var role string
	err := db.Raw(`SELECT role FROM users WHERE id = ? AND deleted_at IS NULL`, userID).Scan(&role).Error
	if err != nil {
		return nil, fmt.Errorf("查询用户角色失败: %w", err)
	}
	if role == "admin" {
		return &PersonalRank{IsAdmin: true}, nil
	}

	result := &PersonalRank{}

	// 个人统计不设门槛：有抽取记录就返回
	stats, err := aggregateStats(db, 1)
	if err != nil {
		return nil, err
	}
	for _, s := range stats {
		if s.UserID == userID {
			e := toEntry(s)
			result.Entry = &e
			break
		}
	}

	luckList, err := LuckLeaderboard(db)
	if err != nil {
		return nil, err
	}
	for _, e := range luckList {
		if e.UserID == userID {
			rank := e.Rank
			result.LuckRank = &rank
			break
		}
	}

	unluckList, err := UnluckLeaderboard(db)
	if err != nil {
		return nil, err
	}
	for _, e := range unluckList {
		if e.UserID == userID {
			rank := e.Rank
			result.UnluckRank = &rank
			break
		}
	}

	return result, nil
}

// GlobalStats 是全服运气统计
type GlobalStats struct {
	TotalUsers  int64 `json:"totalUsers"`
	TotalOrders int64 `json:"totalOrders"`
	TotalHidden int64 `json:"totalHidden"`
	// HiddenRate 是全服隐藏款出货率（百分比）
	HiddenRate float64 `json:"hiddenRate"`
	// LuckLevels 是各运气段位的人数分布
	LuckLevels map[string]int64 `json:"luckLevels"`
}

// Stats 从订单账本现场聚合全服统计。
// 同一份账本两次调用的结果逐字节一致。
func Stats(db *gorm.DB) (*GlobalStats, error) {
	result := &GlobalStats{
		LuckLevels: map[string]int64{
			"欧皇": 0, "欧洲人": 0, "平民": 0, "非洲人": 0, "非酋": 0,
		},
	}

	err := db.Raw(`
		SELECT COUNT(*) FROM users
		WHERE role != 'admin' AND deleted_at IS NULL`).Scan(&result.TotalUsers).Error
	if err != nil {
		return nil, fmt.Errorf("统计用户总数失败: %w", err)
	}

	stats, err := aggregateStats(db, 1)
	if err != nil {
		return nil, err
	}
	for _, s := range stats {
		result.TotalOrders += s.TotalDraws
		result.TotalHidden += s.HiddenCount
		score := CalculateLuckScore(s.HiddenCount, s.NormalCount, s.TotalDraws)
		result.LuckLevels[LuckLevelFor(score)]++
	}
	if result.TotalOrders > 0 {
		result.HiddenRate = float64(result.TotalHidden) / float64(result.TotalOrders) * 100
	}

	return result, nil
}

// LuckyEvent 是全服最新隐藏款动态中的一条
type LuckyEvent struct {
	Username  string    `json:"username"`
	PoolName  string    `json:"poolName"`
	ItemName  string    `json:"itemName"`
	ItemImage string    `json:"itemImage"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecentLucky 返回全服最新的隐藏款抽取动态。
func RecentLucky(db *gorm.DB) ([]LuckyEvent, error) {
	var events []LuckyEvent
	err := db.Raw(`
		SELECT u.username AS username,
			p.name AS pool_name,
			i.name AS item_name,
			i.image_url AS item_image,
			o.created_at AS created_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		JOIN items i ON i.id = o.item_id
		JOIN pools p ON p.id = o.pool_id
		WHERE i.rarity = 'hidden' AND u.role != 'admin' AND u.deleted_at IS NULL
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT ?`, recentLimit).Scan(&events).Error
	if err != nil {
		return nil, fmt.Errorf("查询最新隐藏款动态失败: %w", err)
	}
	return events, nil
}
