package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "catgw/internal/errors"
	"catgw/internal/service"
)

const defaultImageLimit = 10

// CatHandler relays breed and image lookups to the upstream API.
type CatHandler struct {
	svc service.CatService
}

// NewCatHandler creates a cat handler.
func NewCatHandler(svc service.CatService) *CatHandler {
	return &CatHandler{svc: svc}
}

// ListBreeds godoc
// @Summary List all cat breeds
// @Tags cats
// @Produce json
// @Security BearerAuth
// @Success 200 {array} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /cats/breeds [get]
func (h *CatHandler) ListBreeds(c echo.Context) error {
	breeds, err := h.svc.Breeds(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, breeds)
}

// GetBreed godoc
// @Summary Get a breed by id
// @Tags cats
// @Produce json
// @Security BearerAuth
// @Param breed_id path string true "Breed ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cats/breeds/{breed_id} [get]
func (h *CatHandler) GetBreed(c echo.Context) error {
	breedID := c.Param("breed_id")
	if breedID == "" {
		return apperrors.NewValidation("El parámetro breed_id es requerido")
	}

	breed, err := h.svc.BreedByID(c.Request().Context(), breedID)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, breed)
}

// SearchBreeds godoc
// @Summary Search breeds by name
// @Tags cats
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search term"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /cats/breeds/search [get]
func (h *CatHandler) SearchBreeds(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return apperrors.NewValidation("El parámetro q es requerido")
	}

	breeds, err := h.svc.SearchBreeds(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, breeds)
}

// ImagesByBreed godoc
// @Summary List images for a breed
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param breed_id query string true "Breed ID"
// @Param limit query int false "Maximum number of images"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /images/imagesbybreedid [get]
func (h *CatHandler) ImagesByBreed(c echo.Context) error {
	breedID := c.QueryParam("breed_id")
	if breedID == "" {
		return apperrors.NewValidation("El parámetro breed_id es requerido")
	}

	limit := defaultImageLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return apperrors.NewValidation("El parámetro limit debe ser un entero positivo")
		}
		limit = parsed
	}

	images, err := h.svc.ImagesByBreed(c.Request().Context(), breedID, limit)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, images)
}
