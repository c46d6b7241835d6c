package http

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"storefront-service/internal/domain"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	catalog  *services.CatalogService
	cart     *services.CartService
	checkout *services.CheckoutService
}

func NewHandler(catalog *services.CatalogService, cart *services.CartService, checkout *services.CheckoutService) *Handler {
	return &Handler{catalog: catalog, cart: cart, checkout: checkout}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	r.GET("/", h.Home)
	r.GET("/products/", h.ProductList)
	r.GET("/category/:slug/", h.ProductList)
	r.GET("/product/:slug/", h.ProductDetail)
	r.POST("/add-to-cart/", CartIdentity(jwtSecret), h.AddToCart)

	auth := r.Group("/", RequireAuth(jwtSecret))
	auth.GET("/cart/", h.CartView)
	auth.GET("/checkout/", h.CheckoutView)
	auth.POST("/process-paypal-payment/", h.ProcessPayPalPayment)
	auth.POST("/process-card-payment/", h.ProcessCardPayment)
	auth.GET("/order-success/", h.OrderSuccess)
	auth.GET("/order-history/", h.OrderHistory)
}

func redirectWithError(ctx *gin.Context, target, message string) {
	ctx.Redirect(http.StatusFound, target+"?error="+url.QueryEscape(message))
}

func (h *Handler) Home(ctx *gin.Context) {
	featured, err := h.catalog.FeaturedProducts(ctx.Request.Context())
	if err != nil {
		log.Printf("home: featured products: %v", err)
		featured = []domain.Product{}
	}
	categories, err := h.catalog.ListCategories(ctx.Request.Context())
	if err != nil {
		log.Printf("home: categories: %v", err)
		categories = []domain.Category{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"featured_products": featured,
		"categories":        categories,
	})
}

func (h *Handler) ProductList(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	categories, err := h.catalog.ListCategories(reqCtx)
	if err != nil {
		log.Printf("product list: categories: %v", err)
		categories = []domain.Category{}
	}

	slug := ctx.Param("slug")
	if slug != "" {
		products, category, err := h.catalog.ProductsByCategory(reqCtx, slug)
		if err != nil {
			if errors.Is(err, services.ErrCategoryNotFound) {
				redirectWithError(ctx, "/products/", "Category not found")
				return
			}
			log.Printf("product list: category %s: %v", slug, err)
			redirectWithError(ctx, "/products/", "Error loading products")
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"products":   products,
			"category":   category,
			"categories": categories,
		})
		return
	}

	products, err := h.catalog.ListProducts(reqCtx)
	if err != nil {
		log.Printf("product list: %v", err)
		products = []domain.Product{}
	}
	ctx.JSON(http.StatusOK, gin.H{
		"products":   products,
		"categories": categories,
	})
}

func (h *Handler) ProductDetail(ctx *gin.Context) {
	product, err := h.catalog.ProductBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		if !errors.Is(err, services.ErrProductNotFound) {
			log.Printf("product detail: %v", err)
		}
		redirectWithError(ctx, "/products/", "Product not found")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// AddToCart maps every input or stock problem onto a 200 with
// {success:false}; a 5xx never surfaces for a user mistake.
func (h *Handler) AddToCart(ctx *gin.Context) {
	var req AddToCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"success": false, "error": "Missing required fields"})
		return
	}

	identity := identityFromContext(ctx)
	err := h.cart.AddItem(ctx.Request.Context(), identity, req.ProductID, req.Size, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields),
			errors.Is(err, services.ErrInvalidQuantity),
			errors.Is(err, services.ErrInvalidSize),
			errors.Is(err, services.ErrProductNotFound),
			errors.Is(err, services.ErrOutOfStock):
			ctx.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		default:
			log.Printf("add to cart: %v", err)
			ctx.JSON(http.StatusOK, gin.H{"success": false, "error": "Error adding to cart"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) CartView(ctx *gin.Context) {
	cart, err := h.cart.GetCart(ctx.Request.Context(), identityFromContext(ctx))
	if err != nil {
		log.Printf("cart view: %v", err)
		ctx.JSON(http.StatusOK, gin.H{"cart": nil, "total": decimal.Zero})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"cart":  cart,
		"total": h.cart.CartTotal(cart),
	})
}

func (h *Handler) CheckoutView(ctx *gin.Context) {
	cart, err := h.cart.GetCart(ctx.Request.Context(), identityFromContext(ctx))
	if err != nil {
		log.Printf("checkout view: %v", err)
		redirectWithError(ctx, "/cart/", "Error loading checkout")
		return
	}
	if cart == nil || len(cart.Items) == 0 {
		redirectWithError(ctx, "/cart/", "Your cart is empty")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"cart":  cart,
		"total": h.cart.CartTotal(cart),
	})
}

func (h *Handler) ProcessPayPalPayment(ctx *gin.Context) {
	h.processPayment(ctx, domain.PaymentPayPal)
}

func (h *Handler) ProcessCardPayment(ctx *gin.Context) {
	h.processPayment(ctx, domain.PaymentCard)
}

func (h *Handler) processPayment(ctx *gin.Context, method domain.PaymentMethod) {
	var req ProcessPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if req.Amount.Sign() <= 0 {
		ctx.JSON(http.StatusOK, gin.H{"success": false, "error": "Invalid amount"})
		return
	}

	userID := ctx.GetUint(userIDKey)
	order, err := h.checkout.PlaceOrder(ctx.Request.Context(), userID, services.CheckoutInput{
		Method:    method,
		OrderRef:  req.OrderID,
		PaymentID: req.PaymentID,
		Amount:    req.Amount,
		Shipping:  req.ShippingData.toDetails(),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart), errors.Is(err, services.ErrPaymentFailed):
			ctx.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		default:
			log.Printf("process %s payment: %v", method, err)
			ctx.JSON(http.StatusOK, gin.H{"success": false, "error": "Error processing payment"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "order_id": order.ID})
}

func (h *Handler) OrderSuccess(ctx *gin.Context) {
	orderID, err := strconv.ParseUint(ctx.Query("order_id"), 10, 64)
	if err != nil {
		redirectWithError(ctx, "/order-history/", "Order not found")
		return
	}

	userID := ctx.GetUint(userIDKey)
	order, err := h.checkout.OrderForUser(ctx.Request.Context(), userID, uint(orderID))
	if err != nil {
		if !errors.Is(err, services.ErrOrderNotFound) {
			log.Printf("order success: %v", err)
		}
		redirectWithError(ctx, "/order-history/", "Order not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *Handler) OrderHistory(ctx *gin.Context) {
	userID := ctx.GetUint(userIDKey)
	orders, err := h.checkout.OrderHistory(ctx.Request.Context(), userID)
	if err != nil {
		log.Printf("order history: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch orders"})
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": orders})
}
