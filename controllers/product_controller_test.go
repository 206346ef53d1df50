package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/QuaKeyz/reselling-store/controllers"
	"github.com/QuaKeyz/reselling-store/models"
	"github.com/QuaKeyz/reselling-store/repository"
)

func newProductRouter(repo repository.ProductRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	pc := controllers.NewProductController(repo, zap.NewNop())

	r := gin.New()
	r.GET("/products", pc.GetProducts)
	r.GET("/products/:id", pc.GetProductByID)
	r.POST("/admin/products", pc.CreateProduct)
	r.PUT("/admin/products/:id", pc.UpdateProduct)
	r.DELETE("/admin/products/:id", pc.DeleteProduct)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGetProducts_ListsOnlyActive(t *testing.T) {
	_, repo := newTestStores(t)
	seedProduct(t, repo, "shoe-1", "Shoe", 2000, 5)
	require.NoError(t, repo.Create(context.Background(), &models.Product{
		ID: "retired-1", Name: "Retired", Price: 1000, Inventory: 3, Active: false,
	}))
	r := newProductRouter(repo)

	w := doJSON(r, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products []models.Product `json:"products"`
		Meta     struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "shoe-1", resp.Products[0].ID)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestGetProductByID_InactiveIsNotFound(t *testing.T) {
	_, repo := newTestStores(t)
	require.NoError(t, repo.Create(context.Background(), &models.Product{
		ID: "retired-1", Name: "Retired", Price: 1000, Inventory: 3, Active: false,
	}))
	r := newProductRouter(repo)

	w := doJSON(r, http.MethodGet, "/products/retired-1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/products/ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProduct_PersistsAndReturns201(t *testing.T) {
	_, repo := newTestStores(t)
	r := newProductRouter(repo)

	w := doJSON(r, http.MethodPost, "/admin/products", `{"id":"vintage-tee","name":"Vintage Tee","price":2500,"inventory":10}`)
	require.Equal(t, http.StatusCreated, w.Code)

	product, err := repo.FindByID(context.Background(), "vintage-tee")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), product.Price)
	assert.True(t, product.Active)
}

func TestCreateProduct_RejectsBadInput(t *testing.T) {
	_, repo := newTestStores(t)
	r := newProductRouter(repo)

	// Price below the processor minimum.
	w := doJSON(r, http.MethodPost, "/admin/products", `{"id":"cheap","name":"Cheap","price":10,"inventory":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Uppercase is not a slug.
	w = doJSON(r, http.MethodPost, "/admin/products", `{"id":"Not-A-Slug","name":"Bad ID","price":2000,"inventory":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProduct_DuplicateSlugConflicts(t *testing.T) {
	_, repo := newTestStores(t)
	seedProduct(t, repo, "shoe-1", "Shoe", 2000, 5)
	r := newProductRouter(repo)

	w := doJSON(r, http.MethodPost, "/admin/products", `{"id":"shoe-1","name":"Another Shoe","price":3000,"inventory":2}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateProduct_UnknownIDReturns404(t *testing.T) {
	_, repo := newTestStores(t)
	r := newProductRouter(repo)

	w := doJSON(r, http.MethodPut, "/admin/products/ghost", `{"name":"Ghost","price":2000,"inventory":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct_RemovesFromCatalog(t *testing.T) {
	_, repo := newTestStores(t)
	seedProduct(t, repo, "shoe-1", "Shoe", 2000, 5)
	r := newProductRouter(repo)

	w := doJSON(r, http.MethodDelete, "/admin/products/shoe-1", "")
	require.Equal(t, http.StatusOK, w.Code)

	_, err := repo.FindByID(context.Background(), "shoe-1")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}
