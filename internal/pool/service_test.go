package pool_test

import (
	"testing"

	"github.com/MoguBox/blindbox-backend/internal/order"
	"github.com/MoguBox/blindbox-backend/internal/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&pool.Pool{}, &pool.Item{}, &order.Order{}))
	return db
}

func TestCreateItem_RarityDerivedFromDropRate(t *testing.T) {
	db := newTestDB(t)
	p, err := pool.CreatePool(db, pool.PoolInput{Name: "测试系列"})
	require.NoError(t, err)

	normal, err := pool.CreateItem(db, p.ID, pool.ItemInput{Name: "普通款", DropRate: 0.5})
	require.NoError(t, err)
	assert.Equal(t, pool.RarityNormal, normal.Rarity)

	hidden, err := pool.CreateItem(db, p.ID, pool.ItemInput{Name: "隐藏款", DropRate: 0.05})
	require.NoError(t, err)
	assert.Equal(t, pool.RarityHidden, hidden.Rarity)

	// 阈值边界：恰好等于阈值的算普通款
	boundary, err := pool.CreateItem(db, p.ID, pool.ItemInput{Name: "边界款", DropRate: pool.HiddenDropRateThreshold})
	require.NoError(t, err)
	assert.Equal(t, pool.RarityNormal, boundary.Rarity)
}

func TestCreateItem_NegativeWeightRejected(t *testing.T) {
	db := newTestDB(t)
	p, err := pool.CreatePool(db, pool.PoolInput{Name: "测试系列"})
	require.NoError(t, err)

	_, err = pool.CreateItem(db, p.ID, pool.ItemInput{Name: "坏数据", DropRate: -0.1})
	assert.ErrorIs(t, err, pool.ErrInvalidWeight)

	// 校验失败不应写入任何数据
	items, err := pool.PoolItems(db, p.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateItem_RarityFollowsNewWeight(t *testing.T) {
	db := newTestDB(t)
	p, err := pool.CreatePool(db, pool.PoolInput{Name: "测试系列"})
	require.NoError(t, err)
	it, err := pool.CreateItem(db, p.ID, pool.ItemInput{Name: "某款", DropRate: 0.5})
	require.NoError(t, err)
	require.Equal(t, pool.RarityNormal, it.Rarity)

	updated, err := pool.UpdateItem(db, it.ID, pool.ItemInput{Name: "某款", DropRate: 0.01})
	require.NoError(t, err)
	assert.Equal(t, pool.RarityHidden, updated.Rarity)
}

func TestActivePools_OrderedAndFiltered(t *testing.T) {
	db := newTestDB(t)
	inactive := false

	_, err := pool.CreatePool(db, pool.PoolInput{Name: "第三", DisplayOrder: 3})
	require.NoError(t, err)
	_, err = pool.CreatePool(db, pool.PoolInput{Name: "第一", DisplayOrder: 1})
	require.NoError(t, err)
	_, err = pool.CreatePool(db, pool.PoolInput{Name: "停用", DisplayOrder: 2, IsActive: &inactive})
	require.NoError(t, err)

	pools, err := pool.ActivePools(db)
	require.NoError(t, err)
	require.Len(t, pools, 2)
	assert.Equal(t, "第一", pools[0].Name)
	assert.Equal(t, "第三", pools[1].Name)
}

func TestDeletePool_GuardedByOrderReferences(t *testing.T) {
	db := newTestDB(t)
	p, err := pool.CreatePool(db, pool.PoolInput{Name: "测试系列"})
	require.NoError(t, err)
	it, err := pool.CreateItem(db, p.ID, pool.ItemInput{Name: "某款", DropRate: 1})
	require.NoError(t, err)

	// 有订单引用时拒绝删除
	ledger := order.NewLedger(db)
	o, err := ledger.RecordDraw(1, p.ID, it.ID)
	require.NoError(t, err)

	err = pool.DeletePool(db, p.ID)
	assert.ErrorIs(t, err, pool.ErrPoolReferenced)
	_, err = pool.GetPool(db, p.ID)
	require.NoError(t, err)

	// 引用清空后允许删除，池和物品一起消失
	require.NoError(t, order.AdminDelete(db, o.ID))
	require.NoError(t, pool.DeletePool(db, p.ID))

	_, err = pool.GetPool(db, p.ID)
	assert.ErrorIs(t, err, pool.ErrPoolNotFound)
	items, err := pool.PoolItems(db, p.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteItem_AllowedWithOrderReferences(t *testing.T) {
	db := newTestDB(t)
	p, err := pool.CreatePool(db, pool.PoolInput{Name: "测试系列"})
	require.NoError(t, err)
	it, err := pool.CreateItem(db, p.ID, pool.ItemInput{Name: "某款", DropRate: 1})
	require.NoError(t, err)

	ledger := order.NewLedger(db)
	_, err = ledger.RecordDraw(1, p.ID, it.ID)
	require.NoError(t, err)

	// 物品删除不受订单引用限制
	require.NoError(t, pool.DeleteItem(db, it.ID))
	_, err = pool.GetItem(db, it.ID)
	assert.ErrorIs(t, err, pool.ErrItemNotFound)
}
