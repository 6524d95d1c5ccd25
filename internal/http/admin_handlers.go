package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"attar/internal/domain"
	"attar/internal/repository"
)

// Админские CRUD-экраны поверх тех же сервисов, что и витрина.
// Доступ закрыт requireAdmin в server.go.

type productReq struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
	Size     string `json:"size"`
	Gender   string `json:"gender"`
	Stock    int64  `json:"stock"`
	Rating   int    `json:"rating"`
	Notes    string `json:"notes"`
	ImageURL string `json:"image_url"`
}

func (r productReq) toDomain(id string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     r.Name,
		Brand:    r.Brand,
		Price:    r.Price,
		Category: r.Category,
		Size:     r.Size,
		Gender:   r.Gender,
		Stock:    r.Stock,
		Rating:   r.Rating,
		Notes:    r.Notes,
		ImageURL: r.ImageURL,
	}
}

// @Summary Create product
// @Tags admin
// @Accept json
// @Produce json
// @Param input body productReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Router /api/v1/admin/products [post]
func (s *Server) adminCreateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.products.Create(c, req.toDomain(""))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Get product by id
// @Tags admin
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/products/{id} [get]
func (s *Server) adminGetProduct(c *gin.Context) {
	p, err := s.products.GetByID(c, c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Update product
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body productReq true "Update"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/products/{id} [put]
func (s *Server) adminUpdateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.products.Update(c, req.toDomain(c.Param("id")))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Delete product
// @Tags admin
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/products/{id} [delete]
func (s *Server) adminDeleteProduct(c *gin.Context) {
	if err := s.products.Delete(c, c.Param("id")); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List products
// @Tags admin
// @Produce json
// @Success 200 {array} domain.Product
// @Router /api/v1/admin/products [get]
func (s *Server) adminListProducts(c *gin.Context) {
	list, err := s.products.List(c, repository.ProductFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary List customers
// @Tags admin
// @Produce json
// @Success 200 {array} domain.Customer
// @Router /api/v1/admin/customers [get]
func (s *Server) adminListCustomers(c *gin.Context) {
	list, err := s.customers.List(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get customer by id
// @Tags admin
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/customers/{id} [get]
func (s *Server) adminGetCustomer(c *gin.Context) {
	cust, err := s.customers.GetByID(c, c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cust)
}

type customerUpdateReq struct {
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Address       domain.Address `json:"address"`
	LoyaltyPoints int64          `json:"loyalty_points"`
}

// @Summary Update customer
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param input body customerUpdateReq true "Update"
// @Success 200 {object} domain.Customer
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/customers/{id} [put]
func (s *Server) adminUpdateCustomer(c *gin.Context) {
	var req customerUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	// credential and registration date are not editable from the panel
	current, err := s.customers.GetByID(c, c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	current.Name = req.Name
	current.Email = req.Email
	current.Address = req.Address
	current.LoyaltyPoints = req.LoyaltyPoints

	cust, err := s.customers.Update(c, *current)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cust)
}

// @Summary Delete customer
// @Tags admin
// @Param id path string true "Customer ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/customers/{id} [delete]
func (s *Server) adminDeleteCustomer(c *gin.Context) {
	if err := s.customers.Delete(c, c.Param("id")); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List orders
// @Tags admin
// @Produce json
// @Success 200 {array} domain.Order
// @Router /api/v1/admin/orders [get]
func (s *Server) adminListOrders(c *gin.Context) {
	list, err := s.orders.ListOrders(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get order by id
// @Tags admin
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/orders/{id} [get]
func (s *Server) adminGetOrder(c *gin.Context) {
	o, err := s.orders.GetOrder(c, c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}

type orderStatusReq struct {
	Status domain.OrderStatus `json:"status"`
}

// @Summary Update order status
// @Tags admin
// @Accept json
// @Param id path string true "Order ID"
// @Param input body orderStatusReq true "New status"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/orders/{id}/status [put]
func (s *Server) adminUpdateOrderStatus(c *gin.Context) {
	var req orderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.orders.UpdateStatus(c, c.Param("id"), req.Status); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List reviews
// @Tags admin
// @Produce json
// @Success 200 {array} domain.Review
// @Router /api/v1/admin/reviews [get]
func (s *Server) adminListReviews(c *gin.Context) {
	list, err := s.reviews.List(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Delete review
// @Tags admin
// @Param id path string true "Review ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/reviews/{id} [delete]
func (s *Server) adminDeleteReview(c *gin.Context) {
	if err := s.reviews.Delete(c, c.Param("id")); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
