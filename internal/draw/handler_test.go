package draw

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MoguBox/blindbox-backend/internal/order"
	"github.com/MoguBox/blindbox-backend/internal/pool"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCatalog struct {
	pools map[uint]*pool.Pool
	items map[uint][]pool.Item
}

func (c *stubCatalog) GetPool(id uint) (*pool.Pool, error) {
	p, ok := c.pools[id]
	if !ok {
		return nil, pool.ErrPoolNotFound
	}
	return p, nil
}

func (c *stubCatalog) PoolItems(poolID uint) ([]pool.Item, error) {
	return c.items[poolID], nil
}

type stubLedger struct {
	records int
}

func (l *stubLedger) RecordDraw(userID, poolID, itemID uint) (*order.Order, error) {
	l.records++
	return &order.Order{ID: uint(l.records), UserID: userID, PoolID: poolID, ItemID: itemID}, nil
}

type stubDirectory map[uint]bool

func (d stubDirectory) Exists(id uint) (bool, error) { return d[id], nil }

type constSource float64

func (s constSource) Float64() float64 { return float64(s) }

func newHandlerRouter(sample float64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := NewService(
		&stubCatalog{
			pools: map[uint]*pool.Pool{
				1: {Model: gorm.Model{ID: 1}, Name: "测试系列", Description: "描述"},
				2: {Model: gorm.Model{ID: 2}, Name: "空系列"},
			},
			items: map[uint][]pool.Item{
				1: {
					{Model: gorm.Model{ID: 1}, PoolID: 1, Name: "普通款", Rarity: pool.RarityNormal, DropRate: 0.95},
					{Model: gorm.Model{ID: 2}, PoolID: 1, Name: "隐藏款", Rarity: pool.RarityHidden, DropRate: 0.05},
				},
			},
		},
		&stubLedger{},
		stubDirectory{10: true},
		constSource(sample),
	)

	r := gin.New()
	r.POST("/api/pools/:poolId/draw", func(c *gin.Context) { handleDraw(c, svc) })
	return r
}

func postDraw(t *testing.T, r *gin.Engine, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestHandleDraw_FlatSuccessPayload(t *testing.T) {
	r := newHandlerRouter(0.3)
	w, resp := postDraw(t, r, "/api/pools/1/draw", `{"userId":10}`)
	require.Equal(t, http.StatusOK, w.Code)

	// 响应是平铺结构，不嵌套在result里
	assert.NotContains(t, resp, "result")
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "获得新物品！", resp["message"])
	assert.Equal(t, false, resp["isHidden"])
	assert.Equal(t, float64(1), resp["orderId"])
	assert.Contains(t, resp, "created_at")

	p, ok := resp["pool"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), p["id"])
	assert.Equal(t, "测试系列", p["name"])
	assert.Equal(t, "描述", p["description"])

	item, ok := resp["item"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), item["id"])
	assert.Equal(t, "普通款", item["name"])
	assert.Equal(t, "normal", item["rarity"])
	assert.Equal(t, 0.95, item["drop_rate"])
}

func TestHandleDraw_HiddenPayload(t *testing.T) {
	// sample=0.99落在隐藏款区间
	r := newHandlerRouter(0.99)
	w, resp := postDraw(t, r, "/api/pools/1/draw", `{"userId":10}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, true, resp["isHidden"])
	assert.Equal(t, "恭喜获得隐藏款！", resp["message"])
	item := resp["item"].(map[string]interface{})
	assert.Equal(t, "hidden", item["rarity"])
}

func TestHandleDraw_ValidationErrors(t *testing.T) {
	r := newHandlerRouter(0.3)

	w, _ := postDraw(t, r, "/api/pools/1/draw", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = postDraw(t, r, "/api/pools/42/draw", `{"userId":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = postDraw(t, r, "/api/pools/1/draw", `{"userId":999}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = postDraw(t, r, "/api/pools/2/draw", `{"userId":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
