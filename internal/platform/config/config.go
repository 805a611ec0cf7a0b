package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Draw     DrawConfig     `mapstructure:"draw"`
	Ranking  RankingConfig  `mapstructure:"ranking"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	Redis  RedisConfig  `mapstructure:"redis"`
	Sqlite SqliteConfig `mapstructure:"sqlite"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SqliteConfig 定义了SQLite数据库文件的配置
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// DrawConfig 定义了抽取流程相关的配置
type DrawConfig struct {
	// RecentLimit 是订单统计接口返回的"最近抽取"条数
	RecentLimit int `mapstructure:"recentLimit"`
}

// RankingConfig 定义了运气排行榜的权重表和门槛
// 运气值 = (隐藏款数量*HiddenWeight + 普通款数量*NormalWeight) / 总抽取数，上限100
type RankingConfig struct {
	HiddenWeight   float64 `mapstructure:"hiddenWeight"`
	NormalWeight   float64 `mapstructure:"normalWeight"`
	LuckMinDraws   int     `mapstructure:"luckMinDraws"`
	UnluckMinDraws int     `mapstructure:"unluckMinDraws"`
	ListLimit      int     `mapstructure:"listLimit"`
	RecentLimit    int     `mapstructure:"recentLimit"`
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config") // 文件名 (不带扩展名)
	v.SetConfigType("yaml")   // 文件类型

	// 2. 添加配置文件搜索路径
	v.AddConfigPath("./config") // `config/config.yaml`
	v.AddConfigPath(".")        // `./config.yaml` (如果在根目录)

	// 3. 未在配置文件中出现的键使用默认值
	setDefaults(v)

	// 4. 设置环境变量支持
	// 允许通过环境变量覆盖配置，例如 SERVER_ADDRESS=:8888
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 5. 读取配置文件；文件不存在时退回默认值运行
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// 6. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 7. 将加载的配置赋值给全局变量
	Cfg = &cfg

	return Cfg, nil
}

// setDefaults 集中声明所有带默认值的配置项。
// 运气值权重表是命名配置而不是散落在代码里的魔法数字。
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("database.sqlite.path", "blindbox.db")
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("database.redis.db", 0)
	v.SetDefault("draw.recentLimit", 5)
	v.SetDefault("ranking.hiddenWeight", 100.0)
	v.SetDefault("ranking.normalWeight", 5.0)
	v.SetDefault("ranking.luckMinDraws", 3)
	v.SetDefault("ranking.unluckMinDraws", 5)
	v.SetDefault("ranking.listLimit", 50)
	v.SetDefault("ranking.recentLimit", 20)
}
