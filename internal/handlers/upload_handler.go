package handlers

import (
	"io"
	"log"

	"freshcart/internal/apperr"
	"freshcart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler stores products submitted as multipart forms with an image file.
type UploadHandler struct {
	service *services.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{
		service: service,
	}
}

// RegisterRoutes registers the upload route. It is public.
func (h *UploadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/upload", h.HandleUpload)
}

// HandleUpload reads the "image" file and the product form fields and stores
// the product with the image embedded as a data URI.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	var req ProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apperr.Validation("no image uploaded")
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file %s: %v", fileHeader.Filename, err)
		return apperr.Validation("could not read uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading uploaded file %s: %v", fileHeader.Filename, err)
		return apperr.Validation("could not read uploaded image")
	}

	product := req.product()
	if err := h.service.CreateFromUpload(c.UserContext(), product, data); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}
