package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"freshtracker/internal/products"

	"github.com/gin-gonic/gin"
)

type ProductService interface {
	Create(ctx context.Context, body products.RawBody) (products.Product, error)
	Get(ctx context.Context, id int64) (products.Product, error)
	List(ctx context.Context) ([]products.Product, error)
	Update(ctx context.Context, id int64, body products.RawBody) (products.Product, error)
	SoftDelete(ctx context.Context, id int64) error
}

type Handler struct {
	service ProductService
}

func NewHandler(svc ProductService) *Handler {
	return &Handler{service: svc}
}

// envelope wraps every non-resource response. Failures carry error=true and
// the message; the delete confirmation reuses it with error=false.
type envelope struct {
	Error   bool   `json:"error" example:"true"`
	Message string `json:"message" example:"product not found"`
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Error: true, Message: message})
}

// decodeBody reads the request body into a raw field map. An absent or empty
// body decodes to an empty map; malformed JSON is an error.
func decodeBody(c *gin.Context) (products.RawBody, error) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return products.RawBody{}, nil
	}

	var body products.RawBody
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	return body, nil
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var vErr *products.ValidationError
	switch {
	case errors.As(err, &vErr):
		fail(c, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, products.ErrDateNotParseable):
		fail(c, http.StatusBadRequest, products.ErrDateNotParseable.Error())
	case errors.Is(err, products.ErrNoFieldsToUpdate):
		fail(c, http.StatusBadRequest, products.ErrNoFieldsToUpdate.Error())
	case errors.Is(err, products.ErrNotFound):
		fail(c, http.StatusNotFound, products.ErrNotFound.Error())
	default:
		fail(c, http.StatusInternalServerError, "storage failure")
	}
}

// CreateProduct godoc
// @Summary      Create a new product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      map[string]interface{}  true  "Product fields: name, weight, expiry_date, type, threshold_days"
// @Success      201   {object}  products.Product
// @Failure      400   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	body, err := decodeBody(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.service.Create(c.Request.Context(), body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProduct godoc
// @Summary      Get a product by ID
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  products.Product
// @Failure      400  {object}  envelope
// @Failure      404  {object}  envelope
// @Failure      500  {object}  envelope
// @Router       /products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListProducts godoc
// @Summary      List all live products, soonest-expiring first
// @Tags         products
// @Produce      json
// @Success      200  {array}   products.Product
// @Failure      500  {object}  envelope
// @Router       /products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// UpdateProduct godoc
// @Summary      Partially update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Product ID"
// @Param        body  body      map[string]interface{}  true  "Fields to change"
// @Success      200   {object}  products.Product
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /products/{id} [put]
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	body, err := decodeBody(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary      Soft-delete a product by ID
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Failure      404  {object}  envelope
// @Failure      500  {object}  envelope
// @Router       /products/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	if err := h.service.SoftDelete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, envelope{Error: false, Message: "product deleted"})
}

func productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}
