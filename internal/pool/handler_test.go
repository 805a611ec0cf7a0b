package pool_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MoguBox/blindbox-backend/internal/platform/database"
	"github.com/MoguBox/blindbox-backend/internal/pool"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPreviewRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	database.DB = newTestDB(t)

	r := gin.New()
	r.GET("/api/pools/:poolId/preview", pool.PreviewHandler)
	return r
}

func getPreview(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestPreviewHandler_MasksHiddenItems(t *testing.T) {
	r := newPreviewRouter(t)

	p, err := pool.CreatePool(database.DB, pool.PoolInput{Name: "测试系列"})
	require.NoError(t, err)
	_, err = pool.CreateItem(database.DB, p.ID, pool.ItemInput{Name: "普通A", Description: "公开描述", DropRate: 0.475})
	require.NoError(t, err)
	_, err = pool.CreateItem(database.DB, p.ID, pool.ItemInput{Name: "普通B", DropRate: 0.475})
	require.NoError(t, err)
	hidden, err := pool.CreateItem(database.DB, p.ID, pool.ItemInput{Name: "绝密款", Description: "绝密描述", DropRate: 0.05})
	require.NoError(t, err)

	w, resp := getPreview(t, r, "/api/pools/1/preview")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	preview, ok := resp["preview"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), preview["totalItems"])
	assert.InDelta(t, 5.0, preview["hiddenProbability"].(float64), 1e-9)

	normal := preview["normalItems"].([]interface{})
	require.Len(t, normal, 2)

	// 隐藏款的名称、描述和图片全部打码，真实信息不外泄
	hiddenList := preview["hiddenItems"].([]interface{})
	require.Len(t, hiddenList, 1)
	masked := hiddenList[0].(map[string]interface{})
	assert.Equal(t, float64(hidden.ID), masked["id"])
	assert.Equal(t, "神秘隐藏款", masked["name"])
	assert.Equal(t, "？？？", masked["description"])
	assert.Equal(t, "hidden", masked["rarity"])
}

func TestPreviewHandler_UnknownPoolReturns404(t *testing.T) {
	r := newPreviewRouter(t)

	w, resp := getPreview(t, r, "/api/pools/42/preview")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, pool.ErrPoolNotFound.Error(), resp["error"])
}
