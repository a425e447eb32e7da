package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"delight/internal/models"
	"delight/internal/repositories"
	"delight/pkg/discord"
	"delight/pkg/rabbitmq"

	"github.com/shopspring/decimal"
)

// Button identifiers attached to order notifications.
const (
	ActionProcessOrder  = "process_order"
	ActionMarkProcessed = "mark_as_processed"
)

// Embed field labels shared between the intake message and the
// interaction edits.
const (
	fieldCompany = "🏢 Entreprise"
	fieldPhone   = "☎️ Téléphone"
	fieldWindow  = "🕒 Tranche horaire de disponibilité"
	fieldMenus   = "🍴 Menus commandés"
	fieldTotal   = "💰 Prix total"
	fieldNotes   = "📝 Informations supplémentaires"

	// FieldStatus is the embed field the interaction callbacks rewrite.
	FieldStatus = "📊 Statut"
)

// ErrNoMenuSelected rejects submissions where every line has quantity zero.
var ErrNoMenuSelected = errors.New("veuillez sélectionner au moins un menu")

// Notifier abstracts the Discord client so tests can substitute fakes.
type Notifier interface {
	ExecuteWebhook(msg discord.WebhookMessage) (*discord.Message, error)
	EditMessage(channelID, messageID string, edit discord.WebhookMessage) error
}

// OrderService handles business logic related to orders: pricing against
// the catalog, posting the Discord notification, and keeping the durable
// order record.
type OrderService struct {
	orderRepo repositories.OrderRepository
	menuRepo  repositories.MenuRepository
	notifier  Notifier
	mqClient  *rabbitmq.Client
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, menuRepo repositories.MenuRepository, notifier Notifier, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		notifier:  notifier,
		mqClient:  mqClient,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByNumber retrieves a single order by its number.
func (s *OrderService) GetOrderByNumber(number uint) (*models.Order, error) {
	return s.orderRepo.GetByNumber(number)
}

// SubmitOrder prices the submission against the catalog, posts the order
// notification to the Discord webhook, and persists the order record.
// Unknown menu ids price at zero rather than failing the order.
func (s *OrderService) SubmitOrder(submission models.OrderSubmission) (*models.Order, error) {
	if !submission.HasSelection() {
		return nil, ErrNoMenuSelected
	}

	var (
		totalPrice decimal.Decimal
		items      []models.OrderItem
		menuLines  []string
	)

	for _, selection := range submission.Menus {
		if selection.Quantity <= 0 {
			continue
		}
		menuInfo, err := s.menuRepo.GetByID(selection.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up menu %s: %w", selection.ID, err)
		}

		lineTotal := menuInfo.Price.Mul(decimal.NewFromInt(int64(selection.Quantity)))
		totalPrice = totalPrice.Add(lineTotal)

		items = append(items, models.OrderItem{
			MenuID:    selection.ID,
			Name:      menuInfo.Name,
			Quantity:  selection.Quantity,
			UnitPrice: menuInfo.Price,
		})
		menuLines = append(menuLines, fmt.Sprintf("• **%s** (x%d)\n  %s\n  Prix: %s$",
			menuInfo.Name, selection.Quantity, menuInfo.Description, lineTotal.StringFixed(2)))
	}

	menuDescription := strings.Join(menuLines, "\n\n")
	if menuDescription == "" {
		menuDescription = "Aucun menu sélectionné"
	}

	embed := discord.Embed{
		Title: "🍽️ Nouvelle Commande Delight",
		Color: discord.ColorYellow,
		Fields: []discord.EmbedField{
			{Name: fieldCompany, Value: submission.CompanyName},
			{Name: fieldPhone, Value: submission.Phone},
			{Name: fieldWindow, Value: fmt.Sprintf("%s - %s", submission.AvailabilityStart, submission.AvailabilityEnd)},
			{Name: fieldMenus, Value: menuDescription},
			{Name: fieldTotal, Value: totalPrice.StringFixed(2) + "$"},
			{Name: FieldStatus, Value: models.StatusNew},
		},
		Footer:    &discord.EmbedFooter{Text: "Commande Delight"},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if submission.Notes != "" {
		embed.Fields = append(embed.Fields, discord.EmbedField{Name: fieldNotes, Value: submission.Notes})
	}

	message, err := s.notifier.ExecuteWebhook(discord.WebhookMessage{
		Embeds: []discord.Embed{embed},
		Components: []discord.Component{
			discord.ActionRow(discord.Button("Traiter la commande", ActionProcessOrder)),
		},
	})
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		CompanyName:       submission.CompanyName,
		Phone:             submission.Phone,
		AvailabilityStart: submission.AvailabilityStart,
		AvailabilityEnd:   submission.AvailabilityEnd,
		Items:             items,
		Notes:             submission.Notes,
		TotalPrice:        totalPrice,
		Status:            models.StatusNew,
		MessageID:         message.ID,
		ChannelID:         message.ChannelID,
	}
	if err := s.orderRepo.Create(order); err != nil {
		// The notification is already out; the record is bookkeeping.
		log.Printf("Warning: failed to persist order for message %s: %v", message.ID, err)
	}

	s.publishEvent("order.created", map[string]interface{}{
		"orderNumber": order.Number,
		"company":     order.CompanyName,
		"total":       order.TotalPrice.StringFixed(2),
		"status":      order.Status,
	})

	return order, nil
}

// UpdateOrderStatus posts an independent status notification referencing
// the order number and updates the stored record when one matches. The
// order number is free text; it correlates with a record only when it
// parses as a known number.
func (s *OrderService) UpdateOrderStatus(orderNumber, newStatus string) error {
	embed := discord.Embed{
		Title: fmt.Sprintf("🔄 Mise à jour de la Commande #%s", orderNumber),
		Color: discord.ColorBlue,
		Fields: []discord.EmbedField{
			{Name: "📊 Nouveau Statut", Value: newStatus},
		},
		Footer:    &discord.EmbedFooter{Text: fmt.Sprintf("Commande Delight #%s", orderNumber)},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := s.notifier.ExecuteWebhook(discord.WebhookMessage{
		Embeds:     []discord.Embed{embed},
		Components: []discord.Component{},
	}); err != nil {
		return err
	}

	if number, err := strconv.ParseUint(orderNumber, 10, 32); err == nil {
		if err := s.orderRepo.UpdateStatus(uint(number), newStatus); err != nil {
			log.Printf("No stored order matched status update #%s: %v", orderNumber, err)
		}
	}

	s.publishEvent("order.status_changed", map[string]interface{}{
		"orderNumber": orderNumber,
		"status":      newStatus,
	})

	return nil
}

// MarkStatusByMessage records a status transition driven by an interaction
// callback, which only knows the Discord message id.
func (s *OrderService) MarkStatusByMessage(messageID, status string) {
	if err := s.orderRepo.UpdateStatusByMessageID(messageID, status); err != nil {
		log.Printf("No stored order matched message %s: %v", messageID, err)
		return
	}
	s.publishEvent("order.status_changed", map[string]interface{}{
		"messageID": messageID,
		"status":    status,
	})
}

// publishEvent sends an order event to RabbitMQ when a client is wired.
// Publication failures are logged, never surfaced to the caller.
func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
