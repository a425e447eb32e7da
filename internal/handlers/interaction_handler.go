package handlers

import (
	"encoding/json"
	"log"

	"delight/internal/services"
	"delight/pkg/discord"

	"github.com/gofiber/fiber/v2"
)

// Signature headers Discord attaches to every interaction callback.
const (
	HeaderSignature = "X-Signature-Ed25519"
	HeaderTimestamp = "X-Signature-Timestamp"
)

// InteractionHandler handles the Discord interaction callback endpoint.
type InteractionHandler struct {
	service   *services.InteractionService
	publicKey string // hex-encoded ed25519 verification key
}

// NewInteractionHandler creates a new InteractionHandler.
func NewInteractionHandler(service *services.InteractionService, publicKey string) *InteractionHandler {
	return &InteractionHandler{
		service:   service,
		publicKey: publicKey,
	}
}

// RegisterRoutes registers the interaction routes with the Fiber app.
func (h *InteractionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/discord-webhook", h.HandleInteraction)
	router.Get("/discord-webhook", h.HandleLiveness)
}

// HandleInteraction verifies the request signature over the raw body, then
// dispatches the interaction. The signature check runs before any payload
// parsing; a failed or unverifiable request never reaches business logic.
func (h *InteractionHandler) HandleInteraction(c *fiber.Ctx) error {
	signature := c.Get(HeaderSignature)
	timestamp := c.Get(HeaderTimestamp)
	body := c.Body()

	if signature == "" || timestamp == "" || h.publicKey == "" {
		log.Printf("Interaction rejected: missing signature headers or public key")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Missing required headers or environment variables",
		})
	}

	if !discord.VerifyInteraction(h.publicKey, signature, timestamp, body) {
		log.Printf("Interaction rejected: invalid request signature")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid request signature",
		})
	}

	var interaction discord.Interaction
	if err := json.Unmarshal(body, &interaction); err != nil {
		log.Printf("Error parsing interaction payload: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Error processing request",
		})
	}

	response, err := h.service.Handle(interaction)
	if err != nil {
		log.Printf("Error processing interaction %s: %v", interaction.Data.CustomID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Error processing request",
		})
	}
	if response == nil {
		// Interaction types outside the order workflow get a generic ack.
		return c.JSON(fiber.Map{
			"message": "Received",
		})
	}

	return c.JSON(response)
}

// HandleLiveness answers the plain-text probe on the callback path.
func (h *InteractionHandler) HandleLiveness(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString("Discord webhook endpoint is running")
}
