package draw

import (
	"time"

	"github.com/MoguBox/blindbox-backend/internal/order"
	"github.com/MoguBox/blindbox-backend/internal/pool"
	"github.com/MoguBox/blindbox-backend/internal/user"
	"github.com/MoguBox/blindbox-backend/pkg/rng"
)

// Catalog 是抽取流程对盲盒目录的只读依赖
type Catalog interface {
	GetPool(id uint) (*pool.Pool, error)
	PoolItems(poolID uint) ([]pool.Item, error)
}

// Ledger 是抽取流程对订单账本的追加依赖
type Ledger interface {
	RecordDraw(userID, poolID, itemID uint) (*order.Order, error)
}

// Directory 是抽取流程对用户目录的存在性校验依赖
type Directory interface {
	Exists(id uint) (bool, error)
}

// Service 串起一次完整的抽取流程。
// 依赖通过接口注入，测试时可以换成内存实现和固定随机源。
type Service struct {
	catalog Catalog
	ledger  Ledger
	users   Directory
	random  rng.Source
}

// NewService 创建一个抽取服务。
func NewService(catalog Catalog, ledger Ledger, users Directory, random rng.Source) *Service {
	return &Service{catalog: catalog, ledger: ledger, users: users, random: random}
}

// Result 是一次成功抽取的完整结果
type Result struct {
	OrderID   uint       `json:"order_id"`
	Pool      *pool.Pool `json:"pool"`
	Item      pool.Item  `json:"item"`
	IsHidden  bool       `json:"is_hidden"`
	CreatedAt time.Time  `json:"created_at"`
}

// Draw 为指定用户在指定盲盒池里抽取一次。
//
// 流程是一条直线：校验用户 → 校验盲盒池 → 读取物品 → 归一化 →
// 取样 → 选择 → 写入账本。所有校验都发生在账本写入之前，
// 任何一步失败整次抽取都不产生订单。
func (s *Service) Draw(userID, poolID uint) (*Result, error) {
	exists, err := s.users.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	p, err := s.catalog.GetPool(poolID)
	if err != nil {
		return nil, err
	}

	items, err := s.catalog.PoolItems(poolID)
	if err != nil {
		return nil, err
	}

	dist, err := Normalize(items)
	if err != nil {
		return nil, err
	}

	sample := s.random.Float64()
	selected := dist.Items[SelectIndex(dist.Probs, sample)]

	o, err := s.ledger.RecordDraw(userID, poolID, selected.ID)
	if err != nil {
		return nil, err
	}

	return &Result{
		OrderID:   o.ID,
		Pool:      p,
		Item:      selected,
		IsHidden:  selected.Rarity == pool.RarityHidden,
		CreatedAt: o.CreatedAt,
	}, nil
}
