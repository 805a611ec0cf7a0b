package api

import (
	"github.com/MoguBox/blindbox-backend/internal/draw"
	"github.com/MoguBox/blindbox-backend/internal/order"
	"github.com/MoguBox/blindbox-backend/internal/pool"
	"github.com/MoguBox/blindbox-backend/internal/ranking"
	"github.com/MoguBox/blindbox-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 认证相关的路由组 /api/auth
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", user.RegisterHandler)
			authRoutes.POST("/login", user.LoginHandler)
		}

		// 盲盒池相关的路由组 /api/pools
		poolRoutes := api.Group("/pools")
		{
			poolRoutes.GET("", pool.ListPoolsHandler)
			poolRoutes.GET("/:poolId/preview", pool.PreviewHandler)
			poolRoutes.POST("/:poolId/draw", draw.DrawHandler)
		}

		// 订单相关的路由组 /api/orders
		orderRoutes := api.Group("/orders")
		{
			orderRoutes.GET("/user/:userId", order.UserOrdersHandler)
			orderRoutes.GET("/stats/:userId", order.UserStatsHandler)
			orderRoutes.GET("/lucky/:userId", order.UserLuckyHandler)
		}

		// 排行榜相关的路由组 /api/rankings
		rankingRoutes := api.Group("/rankings")
		{
			rankingRoutes.GET("/luck", ranking.LuckHandler)
			rankingRoutes.GET("/unluck", ranking.UnluckHandler)
			rankingRoutes.GET("/my-rank/:userId", ranking.MyRankHandler)
			rankingRoutes.GET("/stats", ranking.StatsHandler)
			rankingRoutes.GET("/recent-luck", ranking.RecentLuckyHandler)
		}

		// 管理后台路由组 /api/admin，全部要求管理员令牌
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(user.RequireAdminMiddleware())
		{
			adminRoutes.GET("/pools", pool.AdminListPoolsHandler)
			adminRoutes.POST("/pools", pool.AdminCreatePoolHandler)
			adminRoutes.PUT("/pools/:poolId", pool.AdminUpdatePoolHandler)
			adminRoutes.DELETE("/pools/:poolId", pool.AdminDeletePoolHandler)

			adminRoutes.GET("/pools/:poolId/items", pool.AdminListItemsHandler)
			adminRoutes.POST("/pools/:poolId/items", pool.AdminCreateItemHandler)
			adminRoutes.PUT("/items/:itemId", pool.AdminUpdateItemHandler)
			adminRoutes.DELETE("/items/:itemId", pool.AdminDeleteItemHandler)

			adminRoutes.DELETE("/orders/:orderId", order.AdminDeleteOrderHandler)
		}
	}
}
