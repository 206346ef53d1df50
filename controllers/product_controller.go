package controllers

import (
	"errors"
	"math"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/QuaKeyz/reselling-store/models"
	"github.com/QuaKeyz/reselling-store/repository"
)

const (
	MaxPageSize = 100
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ProductPayload is the admin create/update body.
type ProductPayload struct {
	ID        string `json:"id" validate:"omitempty,min=2,max=64"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Price     int64  `json:"price" validate:"required,gte=50"`
	Inventory int    `json:"inventory" validate:"gte=0"`
	Active    *bool  `json:"active"`
}

type ProductController struct {
	Repo     repository.ProductRepository
	Logger   *zap.Logger
	validate *validator.Validate
}

func NewProductController(repo repository.ProductRepository, logger *zap.Logger) *ProductController {
	return &ProductController{
		Repo:     repo,
		Logger:   logger,
		validate: validator.New(),
	}
}

// GetProducts retrieves paginated active products.
func (pc *ProductController) GetProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("perPage", "20"))
	if err != nil || perPage < 1 {
		perPage = 20
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	products, total, err := pc.Repo.FindActive(c.Request.Context(), page, perPage)
	if err != nil {
		pc.Logger.Error("Failed to fetch products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"meta": gin.H{
			"page":       page,
			"perPage":    perPage,
			"total":      total,
			"totalPages": int(math.Ceil(float64(total) / float64(perPage))),
		},
	})
}

// GetProductByID retrieves a single visible product.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	id := c.Param("id")

	product, err := pc.Repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		pc.Logger.Error("Failed to fetch product", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if !product.Active {
		// Inactive products are invisible on the public surface.
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a new catalog entry (admin only).
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var payload ProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := pc.validate.Struct(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !slugPattern.MatchString(payload.ID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a lowercase slug"})
		return
	}

	active := true
	if payload.Active != nil {
		active = *payload.Active
	}
	product := &models.Product{
		ID:        payload.ID,
		Name:      payload.Name,
		Price:     payload.Price,
		Inventory: payload.Inventory,
		Active:    active,
	}
	if err := pc.Repo.Create(c.Request.Context(), product); err != nil {
		pc.Logger.Error("Failed to create product", zap.String("id", payload.ID), zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create product"})
		return
	}

	pc.Logger.Info("Product created", zap.String("id", product.ID))
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct updates an existing catalog entry (admin only).
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var payload ProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := pc.validate.Struct(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if payload.Active != nil {
		active = *payload.Active
	}
	product := &models.Product{
		ID:        id,
		Name:      payload.Name,
		Price:     payload.Price,
		Inventory: payload.Inventory,
		Active:    active,
	}
	if err := pc.Repo.Update(c.Request.Context(), product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		pc.Logger.Error("Failed to update product", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	pc.Logger.Info("Product updated", zap.String("id", id))
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a catalog entry (admin only). Order history keeps
// its snapshots, so deleting a product never touches past orders.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := pc.Repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		pc.Logger.Error("Failed to delete product", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	pc.Logger.Info("Product deleted", zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
