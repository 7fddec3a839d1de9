package handlers

import (
	"freshcart/internal/middleware"
	"freshcart/internal/models"
	"freshcart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for accounts and authentication.
type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, userService *services.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

// RegisterRoutes registers the user routes. protect must authenticate the caller.
func (h *UserHandler) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/register", h.HandleRegister)
	userRoutes.Post("/login", h.HandleLogin)

	userRoutes.Get("/me", protect, h.HandleGetProfile)
	userRoutes.Put("/me", protect, h.HandleUpdateProfile)

	admin := middleware.AdminOnly()
	userRoutes.Get("/admin", protect, admin, h.HandleListUsers)
	userRoutes.Get("/:id", protect, admin, h.HandleGetUser)
	userRoutes.Put("/:id", protect, admin, h.HandleUpdateUser)
	userRoutes.Delete("/:id", protect, admin, h.HandleDeleteUser)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister creates an account and signs the new user in.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.authService.RegisterUser(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandleLogin verifies credentials and issues a JWT token.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.authService.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// HandleGetProfile returns the caller's own account.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleUpdateProfile applies the present fields to the caller's account.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var upd models.ProfileUpdate
	if err := parseBody(c, &upd); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), middleware.CurrentUser(c).ID, upd)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleListUsers lists every account.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// HandleGetUser returns one account.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.userService.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleUpdateUser changes name, email or admin flag of an account.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var upd models.AdminUserUpdate
	if err := parseBody(c, &upd); err != nil {
		return err
	}

	user, err := h.userService.UpdateUser(c.UserContext(), c.Params("id"), upd)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleDeleteUser removes an account.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return message(c, fiber.StatusOK, "User removed")
}
