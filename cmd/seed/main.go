package main

import (
	"os"

	"github.com/MoguBox/blindbox-backend/internal/platform/config"
	"github.com/MoguBox/blindbox-backend/internal/platform/database"
	"github.com/MoguBox/blindbox-backend/internal/platform/migration"
	"github.com/MoguBox/blindbox-backend/internal/platform/startup"
	"github.com/MoguBox/blindbox-backend/internal/pool"
	"github.com/MoguBox/blindbox-backend/internal/user"
	"github.com/google/logger"
	"golang.org/x/crypto/bcrypt"
)

// seedItem 是种子数据中的一个物品，掉落权重由稀有度自动推算
type seedItem struct {
	Name        string
	Description string
	ImageURL    string
	Hidden      bool
}

// seedSeries 是种子数据中的一个盲盒系列
type seedSeries struct {
	Pool  pool.PoolInput
	Items []seedItem
}

// 隐藏款整体占5%，普通款平分剩下的95%
const (
	hiddenTotalRate = 0.05
	normalTotalRate = 0.95
)

var series = []seedSeries{
	{
		Pool: pool.PoolInput{
			Name:        "忙碌的芙芙官",
			Description: "芙芙官每天早八比鬼还重的怨气，除非带着加班费",
			ImageURL:    "/images/pools/fufu.jpg",
			Price:       59,
		},
		Items: []seedItem{
			{Name: "立正芙芙", Description: "呼好险，早上打卡差点就要迟到了", ImageURL: "/images/items/lizhengfufu.jpg"},
			{Name: "查账芙芙", Description: "嗯，今天的账目很齐整，下班下班", ImageURL: "/images/items/chazhangfufu.jpg"},
			{Name: "开会芙芙", Description: "坐在会议室里装认真，其实在想午饭吃什么", ImageURL: "/images/items/kaihuifufu.jpg"},
			{Name: "记账芙芙", Description: "胭脂、糯米和竹筒，这些都要报销，记下来", ImageURL: "/images/items/jizhangfufu.jpg"},
			{Name: "开心芙芙", Description: "想到什么好事了呢？开心得冒泡泡啦", ImageURL: "/images/items/kaixinfufu.jpg"},
			{Name: "生气芙芙", Description: "不要摸鱼！不要把鱼放在地上！", ImageURL: "/images/items/shengqifufu.jpg"},
			{Name: "发呆芙芙", Description: "灵魂已经飞到九霄云外，晚上要不要去夜市？", ImageURL: "/images/items/fadaifufu.jpg"},
			{Name: "午睡芙芙", Description: "好困好困，工作什么的下午再说吧", ImageURL: "/images/items/wushuifufu.jpg"},
			{Name: "巫子芙芙", Description: "梦一般的晚上，芙芙被装扮成巫子的样子，仅此一夜哦", ImageURL: "/images/items/wuzifufu.jpg", Hidden: true},
		},
	},
	{
		Pool: pool.PoolInput{
			Name:        "龙猫系列",
			Description: "超可爱的龙猫公仔盲盒",
			ImageURL:    "/images/pools/totoro.jpg",
			Price:       49,
		},
		Items: []seedItem{
			{Name: "打伞龙猫", Description: "雨天车站的经典一幕", ImageURL: "/images/items/totoro-umbrella.jpg"},
			{Name: "吹埙龙猫", Description: "月夜树顶的演奏会", ImageURL: "/images/items/totoro-ocarina.jpg"},
			{Name: "午睡龙猫", Description: "肚皮是最好的床垫", ImageURL: "/images/items/totoro-nap.jpg"},
			{Name: "橡果龙猫", Description: "抱着一大袋橡果，今天也是丰收的一天", ImageURL: "/images/items/totoro-acorn.jpg"},
			{Name: "猫巴士", Description: "十二条腿的末班车，仅限好孩子乘坐", ImageURL: "/images/items/catbus.jpg", Hidden: true},
		},
	},
}

// seedAdmin 创建默认管理员账号（已存在时跳过）。
func seedAdmin() error {
	var count int64
	if err := database.DB.Model(&user.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("管理员账号已存在，跳过创建。")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := user.User{Username: "admin", Password: string(hash), Role: user.RoleAdmin}
	if err := database.DB.Create(&admin).Error; err != nil {
		return err
	}
	logger.Info("管理员账号创建成功: admin / admin123")
	return nil
}

// seedSeriesData 写入演示用的盲盒系列（已有数据时跳过）。
func seedSeriesData() error {
	var count int64
	if err := database.DB.Model(&pool.Pool{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("盲盒池数据已存在，跳过种子数据。")
		return nil
	}

	for i, s := range series {
		input := s.Pool
		input.DisplayOrder = i
		p, err := pool.CreatePool(database.DB, input)
		if err != nil {
			return err
		}

		normalCount := 0
		hiddenCount := 0
		for _, it := range s.Items {
			if it.Hidden {
				hiddenCount++
			} else {
				normalCount++
			}
		}

		for _, it := range s.Items {
			rate := normalTotalRate / float64(normalCount)
			if it.Hidden {
				rate = hiddenTotalRate / float64(hiddenCount)
			}
			_, err := pool.CreateItem(database.DB, p.ID, pool.ItemInput{
				Name:        it.Name,
				Description: it.Description,
				ImageURL:    it.ImageURL,
				DropRate:    rate,
			})
			if err != nil {
				return err
			}
		}
		logger.Infof("系列 [%s] 写入成功: %d个普通款 + %d个隐藏款", p.Name, normalCount, hiddenCount)
	}
	return nil
}

func main() {
	defer logger.Init("blindbox-seed", true, false, os.Stderr).Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("加载配置失败: %v", err)
	}
	database.InitDB(cfg.Database.Sqlite)

	if err := migration.Apply(database.DB, startup.Migrations); err != nil {
		logger.Fatalf("数据库迁移失败: %v", err)
	}
	if err := seedAdmin(); err != nil {
		logger.Fatalf("创建管理员失败: %v", err)
	}
	if err := seedSeriesData(); err != nil {
		logger.Fatalf("写入种子数据失败: %v", err)
	}

	logger.Info("初始化数据成功")
}
