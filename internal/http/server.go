package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"attar/internal/repository"
	"attar/internal/service"
	"attar/internal/session"
)

type Server struct {
	engine    *gin.Engine
	sessions  *session.Store
	products  *service.ProductService
	cart      *service.CartService
	orders    *service.OrderService
	customers *service.CustomerService
	reviews   *service.ReviewService
	auth      *service.AuthService
}

type Services struct {
	Products  *service.ProductService
	Cart      *service.CartService
	Orders    *service.OrderService
	Customers *service.CustomerService
	Reviews   *service.ReviewService
	Auth      *service.AuthService
}

func NewServer(sessions *session.Store, svc Services) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{
		engine:    r,
		sessions:  sessions,
		products:  svc.Products,
		cart:      svc.Cart,
		orders:    svc.Orders,
		customers: svc.Customers,
		reviews:   svc.Reviews,
		auth:      svc.Auth,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	shop := s.engine.Group("/", s.sessionMiddleware())
	{
		shop.GET("/home", s.listProducts)
		shop.GET("/product/:id", s.productDetail)
		shop.POST("/add_to_cart/:id", s.addToCart)
		shop.GET("/cart", s.viewCart)
		shop.POST("/register", s.register)
		shop.POST("/login", s.login)
		shop.POST("/logout", s.logout)
		shop.POST("/adlogin", s.adminLogin)
		shop.POST("/adlogout", s.adminLogout)

		authed := shop.Group("/", s.requireCustomer())
		authed.POST("/checkout", s.checkout)
		authed.GET("/orders", s.myOrders)
		authed.POST("/reviews/:id", s.createReview)
	}

	admin := s.engine.Group("/api/v1/admin", s.sessionMiddleware(), s.requireAdmin())
	{
		products := admin.Group("/products")
		products.POST("", s.adminCreateProduct)
		products.GET(":id", s.adminGetProduct)
		products.PUT(":id", s.adminUpdateProduct)
		products.DELETE(":id", s.adminDeleteProduct)
		products.GET("", s.adminListProducts)

		customers := admin.Group("/customers")
		customers.GET("", s.adminListCustomers)
		customers.GET(":id", s.adminGetCustomer)
		customers.PUT(":id", s.adminUpdateCustomer)
		customers.DELETE(":id", s.adminDeleteCustomer)

		orders := admin.Group("/orders")
		orders.GET("", s.adminListOrders)
		orders.GET(":id", s.adminGetOrder)
		orders.PUT(":id/status", s.adminUpdateOrderStatus)

		reviews := admin.Group("/reviews")
		reviews.GET("", s.adminListReviews)
		reviews.DELETE(":id", s.adminDeleteReview)
	}
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, repository.ErrDuplicateEmail):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnknownCustomer):
		return http.StatusUnauthorized
	default:
		// storage unavailable and anything unexpected
		return http.StatusInternalServerError
	}
}
