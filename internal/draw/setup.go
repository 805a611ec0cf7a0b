package draw

import (
	"github.com/MoguBox/blindbox-backend/internal/order"
	"github.com/MoguBox/blindbox-backend/internal/platform/database"
	"github.com/MoguBox/blindbox-backend/internal/pool"
	"github.com/MoguBox/blindbox-backend/internal/user"
	"github.com/MoguBox/blindbox-backend/pkg/rng"
)

// defaultService 是HTTP层使用的抽取服务单例
var defaultService *Service

// directoryFunc 把普通函数适配成Directory接口
type directoryFunc func(id uint) (bool, error)

func (f directoryFunc) Exists(id uint) (bool, error) { return f(id) }

// PrimeModule 用生产依赖组装默认的抽取服务：
// GORM目录、GORM账本、带Redis加速的用户目录和加密级随机源。
func PrimeModule() error {
	defaultService = NewService(
		pool.NewCatalog(database.DB),
		order.NewLedger(database.DB),
		directoryFunc(user.Exists),
		rng.Default(),
	)
	return nil
}
