package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"attar/internal/repository"
	"attar/internal/service"
)

// @Summary List catalog
// @Tags shop
// @Produce json
// @Param q query string false "Name contains"
// @Param brand query string false "Brand"
// @Param category query string false "Category"
// @Param gender query string false "Gender"
// @Param min_price query int false "Min price, minor units"
// @Param max_price query int false "Max price, minor units"
// @Success 200 {array} domain.Product
// @Router /home [get]
func (s *Server) listProducts(c *gin.Context) {
	var f repository.ProductFilter
	f.NameSubstring = c.Query("q")
	f.Brand = c.Query("brand")
	f.Category = c.Query("category")
	f.Gender = c.Query("gender")
	if v, ok := parsePrice(c.Query("min_price")); ok {
		f.MinPrice = &v
	}
	if v, ok := parsePrice(c.Query("max_price")); ok {
		f.MaxPrice = &v
	}
	list, err := s.products.List(c, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Product detail with reviews
// @Tags shop
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /product/{id} [get]
func (s *Server) productDetail(c *gin.Context) {
	p, err := s.products.GetByID(c, c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	reviews, err := s.reviews.ListByProduct(c, p.ID)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p, "reviews": reviews})
}

type addToCartReq struct {
	Quantity int64 `form:"quantity" json:"quantity"`
}

// @Summary Add product to session cart
// @Tags cart
// @Accept x-www-form-urlencoded
// @Accept json
// @Param id path string true "Product ID"
// @Param quantity formData int true "Quantity"
// @Success 303
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /add_to_cart/{id} [post]
func (s *Server) addToCart(c *gin.Context) {
	var req addToCartReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity"})
		return
	}

	sess := s.sess(c)
	lines, err := s.cart.AddLine(c, sess.Cart, c.Param("id"), req.Quantity)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	sess.Cart = lines
	if err := s.saveSess(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/home")
}

// @Summary View session cart
// @Tags cart
// @Produce json
// @Success 200 {object} domain.CartView
// @Router /cart [get]
func (s *Server) viewCart(c *gin.Context) {
	view, err := s.cart.Resolve(c, s.sess(c).Cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Checkout session cart into an order
// @Tags cart
// @Param Idempotency-Key header string false "Dedupes retried checkouts"
// @Success 303
// @Failure 401 {object} map[string]string
// @Router /checkout [post]
func (s *Server) checkout(c *gin.Context) {
	sess := s.sess(c)
	idemKey := c.GetHeader("Idempotency-Key")

	o, err := s.orders.Checkout(c, sess.Cart, sess.CustomerID, idemKey)
	if errors.Is(err, service.ErrEmptyCart) {
		// пустая корзина не ошибка: назад в каталог
		c.Redirect(http.StatusSeeOther, "/home")
		return
	}
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}

	// заказ уже записан; если очистка корзины не дойдёт до Redis,
	// повтор с тем же Idempotency-Key вернёт существующий заказ
	sess.Cart = s.cart.Clear(sess.Cart)
	if err := s.saveSess(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("X-Order-Id", o.ID)
	c.Redirect(http.StatusSeeOther, "/home")
}

// @Summary My orders
// @Tags shop
// @Produce json
// @Success 200 {array} domain.Order
// @Router /orders [get]
func (s *Server) myOrders(c *gin.Context) {
	list, err := s.orders.ListCustomerOrders(c, s.sess(c).CustomerID)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

type registerReq struct {
	Name  string `form:"name" json:"name"`
	Email string `form:"email" json:"email"`
	Phone string `form:"phone" json:"phone"`
}

// @Summary Register customer
// @Tags auth
// @Accept x-www-form-urlencoded
// @Accept json
// @Success 303
// @Failure 400 {object} map[string]string
// @Router /register [post]
func (s *Server) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}
	if _, err := s.customers.Register(c, req.Name, req.Email, req.Phone); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

type loginReq struct {
	Email string `form:"email" json:"email"`
	Phone string `form:"phone" json:"phone"`
}

// @Summary Customer login
// @Tags auth
// @Accept x-www-form-urlencoded
// @Accept json
// @Success 303
// @Failure 401 {object} map[string]string
// @Router /login [post]
func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}
	cust, err := s.customers.Login(c, req.Email, req.Phone)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	sess := s.sess(c)
	sess.CustomerID = cust.ID
	if err := s.saveSess(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/home")
}

// @Summary Customer logout
// @Tags auth
// @Success 303
// @Router /logout [post]
func (s *Server) logout(c *gin.Context) {
	sess := s.sess(c)
	sess.CustomerID = ""
	if err := s.saveSess(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

type createReviewReq struct {
	Rating  int    `form:"rating" json:"rating"`
	Comment string `form:"comment" json:"comment"`
}

// @Summary Leave a review
// @Tags shop
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 201 {object} domain.Review
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reviews/{id} [post]
func (s *Server) createReview(c *gin.Context) {
	var req createReviewReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}
	r, err := s.reviews.Create(c, c.Param("id"), s.sess(c).CustomerID, req.Rating, req.Comment)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, r)
}

type adminLoginReq struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// @Summary Admin login
// @Tags auth
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /adlogin [post]
func (s *Server) adminLogin(c *gin.Context) {
	var req adminLoginReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}
	a, err := s.auth.Login(c, req.Username, req.Password)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	sess := s.sess(c)
	sess.AdminID = a.ID
	if err := s.saveSess(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": a.ID, "username": a.Username})
}

// @Summary Admin logout
// @Tags auth
// @Success 204
// @Router /adlogout [post]
func (s *Server) adminLogout(c *gin.Context) {
	sess := s.sess(c)
	sess.AdminID = ""
	if err := s.saveSess(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func parsePrice(v string) (int64, bool) {
	if v == "" {
		return 0, false
	}
	x, err := strconv.ParseInt(v, 10, 64)
	if err != nil || x < 0 {
		return 0, false
	}
	return x, true
}
