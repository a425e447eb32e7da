package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"delight/internal/models"
	"delight/internal/services"
	"delight/pkg/discord"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/send-order", h.HandleSendOrder)
	router.Post("/update-order-status", h.HandleUpdateOrderStatus)
}

// RegisterProtectedRoutes registers the authenticated order read API.
func (h *OrderHandler) RegisterProtectedRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:number", h.HandleGetOrderByNumber)
}

// HandleSendOrder prices a submission and posts the order notification.
func (h *OrderHandler) HandleSendOrder(c *fiber.Ctx) error {
	var submission models.OrderSubmission
	if err := c.BodyParser(&submission); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if err := h.validate.Struct(submission); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Validation failed",
			"errors":  errorMessages,
		})
	}

	order, err := h.service.SubmitOrder(submission)
	if err != nil {
		log.Printf("Error submitting order: %v", err)
		if errors.Is(err, services.ErrNoMenuSelected) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		if errors.Is(err, discord.ErrWebhookNotConfigured) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Une erreur est survenue",
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"orderNumber": order.Number,
	})
}

// UpdateStatusRequest represents the request body for a status update.
type UpdateStatusRequest struct {
	OrderNumber string `json:"orderNumber"`
	NewStatus   string `json:"newStatus"`
}

// HandleUpdateOrderStatus posts an independent status notification.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.OrderNumber == "" || req.NewStatus == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Numéro de commande et nouveau statut requis",
		})
	}

	if err := h.service.UpdateOrderStatus(req.OrderNumber, req.NewStatus); err != nil {
		log.Printf("Error updating order status for order %s: %v", req.OrderNumber, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Une erreur est survenue",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// HandleGetOrders retrieves all stored orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByNumber retrieves a single order by its number.
func (h *OrderHandler) HandleGetOrderByNumber(c *fiber.Ctx) error {
	number, err := strconv.ParseUint(c.Params("number"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Order number must be numeric",
		})
	}

	order, err := h.service.GetOrderByNumber(uint(number))
	if err != nil {
		log.Printf("Error getting order #%d: %v", number, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Order #%d not found", number),
		})
	}
	return c.JSON(order)
}
