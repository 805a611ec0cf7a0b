package user

// --- Redis 键名常量 ---

const (
	// KnownUsersKey 是一个 Redis Set 的键，缓存所有已注册用户的ID。
	// 抽取路径用它做存在性校验，避免每次抽取都查SQLite。
	// Redis不可用时校验逻辑降级为直查SQLite，因此它只是加速缓存，
	// 不是用户数据的数据源。
	KnownUsersKey = "user:known"
)
