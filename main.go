package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/buttcoder420/FinalYear-backend/cache"
	"github.com/buttcoder420/FinalYear-backend/config"
	"github.com/buttcoder420/FinalYear-backend/consumers"
	"github.com/buttcoder420/FinalYear-backend/controllers"
	"github.com/buttcoder420/FinalYear-backend/database"
	"github.com/buttcoder420/FinalYear-backend/mailer"
	"github.com/buttcoder420/FinalYear-backend/middlewares"
	"github.com/buttcoder420/FinalYear-backend/rabbitmq"
	"github.com/buttcoder420/FinalYear-backend/services"
	"github.com/buttcoder420/FinalYear-backend/store"
)

func main() {
	cfg := config.LoadConfig()

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	defer database.Close(client)
	db := client.Database(cfg.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Printf("Warning: index bootstrap failed: %v", err)
	}
	cancel()

	st := store.NewMongo(db)

	rmq, err := rabbitmq.New(cfg.RabbitMQURL, cfg.NotificationExchange, cfg.NotificationQueue)
	if err != nil {
		log.Fatalf("RabbitMQ initialization failed: %v", err)
	}
	defer rmq.Close()
	if err := rmq.SetupQueues(); err != nil {
		log.Fatalf("Failed to setup RabbitMQ queues: %v", err)
	}

	smtp := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass, cfg.EmailFrom)
	if err := consumers.StartNotificationConsumer(rmq.Channel, cfg.NotificationQueue, smtp); err != nil {
		log.Fatalf("Failed to start notification consumer: %v", err)
	}

	secret := []byte(cfg.JWTSecret)
	pending := cache.NewRegistrationCache(cfg.RegistrationTTL)

	userCtl := controllers.NewUserController(services.NewUserService(st, pending, smtp, secret, cfg.TokenTTL))
	shopCtl := controllers.NewShopController(services.NewShopService(st))
	productCtl := controllers.NewProductController(services.NewProductService(st))
	orderCtl := controllers.NewOrderController(services.NewOrderService(st, rmq))
	ratingCtl := controllers.NewRatingController(services.NewRatingService(st))

	auth := &middlewares.Auth{Secret: secret, Users: st.Users}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middlewares.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := r.Group("/api/v1/users")
	{
		users.POST("/register", userCtl.Register)
		users.POST("/verify-email", userCtl.VerifyEmail)
		users.POST("/login", userCtl.Login)

		signed := users.Group("", auth.RequireSign())
		signed.GET("/me", userCtl.GetLoggedInUser)
		signed.PUT("/update-profile", userCtl.UpdateProfile)

		admin := signed.Group("", auth.RequireAdmin())
		admin.GET("/all-users", userCtl.GetAllUsers)
		admin.DELETE("/delete-user/:id", userCtl.DeleteUser)
		admin.PUT("/update-user/:id", userCtl.UpdateUser)
	}

	shop := r.Group("/api/v1/shop")
	{
		shop.GET("/all-shops", shopCtl.GetAllShops)

		signed := shop.Group("", auth.RequireSign())
		signed.GET("/my-shop", shopCtl.GetUserShop)

		seller := signed.Group("", auth.RequireSeller())
		seller.POST("/create-shop", shopCtl.CreateShop)
		seller.PUT("/update-shop", shopCtl.UpdateShop)
		seller.DELETE("/delete-shop", shopCtl.DeleteShop)
		seller.GET("/status", shopCtl.GetShopStatus)
		seller.PUT("/status", shopCtl.UpdateShopStatus)
	}

	product := r.Group("/api/v1/product", auth.RequireSign())
	{
		product.GET("/single-product/:id", productCtl.GetProductByID)

		seller := product.Group("", auth.RequireSeller())
		seller.POST("/create", productCtl.CreateProduct)
		seller.GET("/my-product", productCtl.GetMyProducts)
		seller.PUT("/update/:id", productCtl.UpdateProduct)
		seller.DELETE("/delete/:id", productCtl.DeleteProduct)
	}

	order := r.Group("/api/v1/order", auth.RequireSign())
	{
		order.GET("/ShopOrder/:shopId", orderCtl.GetShopDetails)
		order.POST("/place-order", orderCtl.PlaceOrder)
		order.GET("/get-order", orderCtl.GetUserOrders)
		order.PUT("/cancel-order/:orderId", orderCtl.CancelOrder)
		order.PUT("/notification-order/:orderId", orderCtl.UpdateOrderStatusWithNotification)

		seller := order.Group("", auth.RequireSeller())
		seller.GET("/seller/orders", orderCtl.GetSellerOrders)
		seller.PUT("/update-order/:orderId", orderCtl.UpdateOrderStatus)
	}

	rating := r.Group("/api/v1/rating")
	{
		rating.GET("/product/:productId", ratingCtl.GetRatingsForProduct)
		rating.GET("/average/:shopId", ratingCtl.GetAverageRatingByShop)

		signed := rating.Group("", auth.RequireSign())
		signed.POST("/create-rating", ratingCtl.CreateRating)
		signed.GET("/my-ratings", ratingCtl.GetMyRatings)
		signed.GET("/rated-products", ratingCtl.GetUserRatedProducts)
	}

	log.Printf("Server is running on %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
