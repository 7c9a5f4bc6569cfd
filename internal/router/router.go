package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"catgw/internal/handler"
	"catgw/internal/middleware"
	"catgw/internal/model"
)

// Register wires routes and middleware. The breed and image routes sit behind
// the access gate; the user listing additionally behind the admin role gate.
func Register(
	e *echo.Echo,
	verifier middleware.TokenVerifier,
	userHandler *handler.UserHandler,
	catHandler *handler.CatHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	users := api.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.POST("/refresh", userHandler.Refresh)
	users.POST("/logout", userHandler.Logout)
	users.GET("", userHandler.ListUsers,
		middleware.Authenticate(verifier), middleware.RequireRoles(model.RoleAdmin))

	cats := api.Group("/cats", middleware.Authenticate(verifier))
	cats.GET("/breeds", catHandler.ListBreeds)
	cats.GET("/breeds/search", catHandler.SearchBreeds)
	cats.GET("/breeds/:breed_id", catHandler.GetBreed)

	images := api.Group("/images", middleware.Authenticate(verifier))
	images.GET("/imagesbybreedid", catHandler.ImagesByBreed)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
