package core

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs the Gin engine with routes wired. All storage access
// objects are passed in explicitly; the router holds no globals.
func NewRouter(cfg Config, authService AuthService, products ProductRepository, cart CartRepository, catalogCache CatalogCache) *gin.Engine {
	r := gin.Default()

	r.Use(OriginMiddleware(cfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Product images referenced by the catalog rows.
	if cfg.StaticDir != "" {
		r.Static("/images", cfg.StaticDir)
	}

	secret := []byte(cfg.JWTSecret)
	api := r.Group("/api")
	{
		api.POST("/register", func(c *gin.Context) {
			var req struct {
				Username string `json:"username"`
				Password string `json:"password"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
				return
			}

			id, err := authService.Register(req.Username, req.Password)
			if err != nil {
				switch {
				case errors.Is(err, ErrEmptyCredentials):
					respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "username and password are required")
				case errors.Is(err, ErrDuplicateUsername):
					// Same generic rejection as any other storage failure so
					// the response does not reveal which usernames are taken.
					log.Printf("register rejected: duplicate username")
					respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "username already taken")
				default:
					log.Printf("register failed: %v", err)
					respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to register user")
				}
				return
			}

			c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "userId": id})
		})

		api.POST("/login", func(c *gin.Context) {
			var req struct {
				Username string `json:"username"`
				Password string `json:"password"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
				return
			}

			token, _, err := authService.Login(req.Username, req.Password)
			if err != nil {
				if errors.Is(err, ErrInvalidCredentials) {
					respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password")
					return
				}
				log.Printf("login failed: %v", err)
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to log in")
				return
			}

			c.JSON(http.StatusOK, gin.H{"auth": true, "token": token})
		})

		api.GET("/products", func(c *gin.Context) {
			ctx := c.Request.Context()

			if catalogCache != nil {
				if cached, err := catalogCache.Get(ctx); err == nil {
					c.JSON(http.StatusOK, cached)
					return
				} else if !errors.Is(err, ErrCacheMiss) {
					log.Printf("catalog cache read failed: %v", err)
				}
			}

			list, err := products.List(ctx)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "error fetching products")
				return
			}

			if catalogCache != nil {
				if err := catalogCache.Set(ctx, list); err != nil {
					log.Printf("catalog cache write failed: %v", err)
				}
			}
			c.JSON(http.StatusOK, list)
		})

		api.GET("/products/search", func(c *gin.Context) {
			name := c.Query("name")
			list, err := products.Search(c.Request.Context(), name)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "error in search")
				return
			}
			c.JSON(http.StatusOK, list)
		})

		protected := api.Group("")
		protected.Use(AuthRequired(secret))
		{
			protected.GET("/cart", func(c *gin.Context) {
				userID, _, ok := currentUser(c)
				if !ok {
					respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
					return
				}

				items, err := cart.ListByUser(c.Request.Context(), userID)
				if err != nil {
					respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "error fetching cart")
					return
				}
				c.JSON(http.StatusOK, items)
			})

			protected.POST("/cart/add", func(c *gin.Context) {
				userID, _, ok := currentUser(c)
				if !ok {
					respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "login required")
					return
				}

				var req struct {
					ProductID int64 `json:"productId"`
					Quantity  int32 `json:"quantity"`
				}
				if err := c.ShouldBindJSON(&req); err != nil {
					respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
					return
				}
				if req.ProductID <= 0 || req.Quantity <= 0 {
					respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid product data")
					return
				}

				created, err := cart.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
				if err != nil {
					if errors.Is(err, ErrInvalidProduct) {
						log.Printf("cart add rejected: user=%d product=%d does not exist", userID, req.ProductID)
						respondError(c, http.StatusInternalServerError, "INVALID_PRODUCT", "error adding to cart")
						return
					}
					log.Printf("cart add failed: %v", err)
					respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "error adding to cart")
					return
				}

				if created {
					c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart"})
					return
				}
				c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
			})
		}
	}

	return r
}
