package controller

import (
	"booksland-be/internal/constant"
	"booksland-be/internal/pkg/serverutils"
	"booksland-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	GetBooks(ctx *fiber.Ctx) error
	GetRecommended(ctx *fiber.Ctx) error
}

type catalogController struct {
	service service.ICatalogService
}

func NewCatalogController(service service.ICatalogService) ICatalogController {
	return &catalogController{service: service}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Get("/books", c.GetBooks)
	h.Get("/recommended", c.GetRecommended)
}

func (c *catalogController) GetBooks(ctx *fiber.Ctx) error {
	res, err := c.service.GetBooks(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Catalog", res))
}

func (c *catalogController) GetRecommended(ctx *fiber.Ctx) error {
	n := ctx.QueryInt("limit", constant.RecommendedSampleSize)
	if n <= 0 {
		n = constant.RecommendedSampleSize
	}

	res, err := c.service.GetRecommended(ctx.Context(), n)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Recommended books", res))
}
