package routes

import (
	"restohub-api/handlers"
	"restohub-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Auth routes ────────────────────────────────────────────────
	auth := r.Group("/auth")
	{
		auth.POST("/signup", handlers.Signup)
		auth.POST("/login", handlers.Login)
		auth.POST("/adminLogin", handlers.AdminLogin)
		auth.POST("/logout", handlers.Logout)
		auth.POST("/sendOTP", handlers.SendOTP)
		auth.POST("/verifyOTP", handlers.VerifyOTP)
		auth.POST("/resetPassword", handlers.ResetPassword)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.POST("/createResto", handlers.CreateRestaurant)
		admin.GET("/allResto", handlers.ListAllRestaurants)
		admin.POST("/resto/:id/changeStatus", handlers.ChangeRestaurantStatus)
		admin.GET("/resto/:id/getMenuVersion", handlers.GetMenuVersion)

		admin.POST("/resto/:id/addMenu", handlers.AddMenuItem)
		admin.POST("/resto/:id/editMenu", handlers.EditMenuItem)
		admin.DELETE("/resto/:id/menu/:menuId", handlers.DeleteMenuItem)

		admin.POST("/order/changestatus", handlers.ChangeOrderStatus)

		admin.GET("/dashboard/stats", handlers.DashboardStats)
		admin.GET("/analytics", handlers.Analytics)
		admin.GET("/resto/:id/analytics", handlers.RestaurantAnalytics)

		admin.POST("/resto/:id/addAds", handlers.AddAd)
		admin.GET("/resto/:id/getAds", handlers.ListAds)
		admin.DELETE("/resto/:id/deleteAds/:adId", handlers.DeleteAd)
	}

	// ── User routes ────────────────────────────────────────────────
	user := r.Group("/user")
	user.Use(middleware.AuthRequired(), middleware.UserRequired())
	{
		user.GET("/restaurants", handlers.ListRestaurants)
		user.GET("/resto/:id/menu", handlers.GetMenu)
		user.POST("/resto/:id/order", handlers.PlaceOrder)
		user.GET("/orderHistory", handlers.OrderHistory)
		user.GET("/userInfo", handlers.UserInfo)
		user.POST("/addWalletBalance", handlers.AddWalletBalance)
		user.GET("/getWalletBalance", handlers.GetWalletBalance)
		user.GET("/walletHistory", handlers.WalletHistory)
	}
}
