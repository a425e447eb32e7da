package services_test

import (
	"log"
	"os"
	"testing"

	"delight/internal/models"
	"delight/internal/repositories"
	"delight/internal/services"
	"delight/pkg/discord"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockNotifier is a mock implementation of services.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ExecuteWebhook(msg discord.WebhookMessage) (*discord.Message, error) {
	args := m.Called(msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discord.Message), args.Error(1)
}

func (m *MockNotifier) EditMessage(channelID, messageID string, edit discord.WebhookMessage) error {
	args := m.Called(channelID, messageID, edit)
	return args.Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func testCatalog() *repositories.StaticMenuRepository {
	return repositories.NewStaticMenuRepository([]models.MenuItem{
		{ID: "classique", Name: "Le classique", Description: "1 Burger + 1 coca + 1 cookie", Price: decimal.RequireFromString("12.99")},
		{ID: "festin", Name: "Le festin", Description: "1 Pizza Jambon + 1 Frite patate douce + 2 Pain perdu + 3 Limonade", Price: decimal.RequireFromString("24.99")},
	})
}

func validSubmission() models.OrderSubmission {
	return models.OrderSubmission{
		CompanyName:       "Acme SARL",
		Phone:             "0612345678",
		AvailabilityStart: "11:30",
		AvailabilityEnd:   "13:00",
		Menus: []models.MenuSelection{
			{ID: "classique", Quantity: 2},
			{ID: "festin", Quantity: 1},
		},
	}
}

func fieldValue(embed discord.Embed, name string) string {
	for _, field := range embed.Fields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}

func TestOrderService_SubmitOrder(t *testing.T) {
	notifier := new(MockNotifier)
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(orderRepo, testCatalog(), notifier, nil)

	notifier.On("ExecuteWebhook", mock.AnythingOfType("discord.WebhookMessage")).
		Return(&discord.Message{ID: "msg-1", ChannelID: "chan-1"}, nil).Once()

	order, err := service.SubmitOrder(validSubmission())
	require.NoError(t, err)
	notifier.AssertExpectations(t)

	// 2 × 12.99 + 1 × 24.99
	assert.Equal(t, "50.97", order.TotalPrice.StringFixed(2))
	assert.Equal(t, models.StatusNew, order.Status)
	assert.Equal(t, "msg-1", order.MessageID)
	assert.Equal(t, "chan-1", order.ChannelID)
	assert.Len(t, order.Items, 2)

	// The record must be retrievable by the assigned number.
	stored, err := orderRepo.GetByNumber(order.Number)
	require.NoError(t, err)
	assert.Equal(t, "Acme SARL", stored.CompanyName)

	// Inspect the posted notification.
	msg := notifier.Calls[0].Arguments.Get(0).(discord.WebhookMessage)
	require.Len(t, msg.Embeds, 1)
	embed := msg.Embeds[0]
	assert.Equal(t, "🍽️ Nouvelle Commande Delight", embed.Title)
	assert.Equal(t, discord.ColorYellow, embed.Color)
	assert.Equal(t, "Acme SARL", fieldValue(embed, "🏢 Entreprise"))
	assert.Equal(t, "11:30 - 13:00", fieldValue(embed, "🕒 Tranche horaire de disponibilité"))
	assert.Equal(t, "50.97$", fieldValue(embed, "💰 Prix total"))
	assert.Equal(t, models.StatusNew, fieldValue(embed, services.FieldStatus))
	assert.Contains(t, fieldValue(embed, "🍴 Menus commandés"), "**Le classique** (x2)")
	assert.Contains(t, fieldValue(embed, "🍴 Menus commandés"), "Prix: 25.98$")

	// One action row with the single processing button.
	require.Len(t, msg.Components, 1)
	require.Len(t, msg.Components[0].Components, 1)
	assert.Equal(t, services.ActionProcessOrder, msg.Components[0].Components[0].CustomID)
}

func TestOrderService_SubmitOrder_NoSelection(t *testing.T) {
	notifier := new(MockNotifier)
	service := services.NewOrderService(repositories.NewMockOrderRepository(), testCatalog(), notifier, nil)

	submission := validSubmission()
	submission.Menus = []models.MenuSelection{
		{ID: "classique", Quantity: 0},
		{ID: "festin", Quantity: 0},
	}

	_, err := service.SubmitOrder(submission)
	assert.ErrorIs(t, err, services.ErrNoMenuSelected)
	// The webhook must never be called for a rejected submission.
	notifier.AssertNotCalled(t, "ExecuteWebhook", mock.Anything)
}

func TestOrderService_SubmitOrder_UnknownMenuContributesZero(t *testing.T) {
	notifier := new(MockNotifier)
	service := services.NewOrderService(repositories.NewMockOrderRepository(), testCatalog(), notifier, nil)

	notifier.On("ExecuteWebhook", mock.AnythingOfType("discord.WebhookMessage")).
		Return(&discord.Message{ID: "msg-2", ChannelID: "chan-1"}, nil).Once()

	submission := validSubmission()
	submission.Menus = []models.MenuSelection{
		{ID: "classique", Quantity: 1},
		{ID: "does-not-exist", Quantity: 3},
	}

	order, err := service.SubmitOrder(submission)
	require.NoError(t, err)
	assert.Equal(t, "12.99", order.TotalPrice.StringFixed(2))

	msg := notifier.Calls[0].Arguments.Get(0).(discord.WebhookMessage)
	assert.Contains(t, fieldValue(msg.Embeds[0], "🍴 Menus commandés"), "Menu inconnu")
}

func TestOrderService_SubmitOrder_WebhookNotConfigured(t *testing.T) {
	notifier := new(MockNotifier)
	service := services.NewOrderService(repositories.NewMockOrderRepository(), testCatalog(), notifier, nil)

	notifier.On("ExecuteWebhook", mock.AnythingOfType("discord.WebhookMessage")).
		Return(nil, discord.ErrWebhookNotConfigured).Once()

	_, err := service.SubmitOrder(validSubmission())
	assert.ErrorIs(t, err, discord.ErrWebhookNotConfigured)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	notifier := new(MockNotifier)
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(orderRepo, testCatalog(), notifier, nil)

	require.NoError(t, orderRepo.Create(&models.Order{
		CompanyName: "Acme SARL",
		Status:      models.StatusNew,
	}))

	notifier.On("ExecuteWebhook", mock.AnythingOfType("discord.WebhookMessage")).
		Return(&discord.Message{ID: "msg-3", ChannelID: "chan-1"}, nil).Once()

	err := service.UpdateOrderStatus("1", "En livraison")
	require.NoError(t, err)

	msg := notifier.Calls[0].Arguments.Get(0).(discord.WebhookMessage)
	embed := msg.Embeds[0]
	assert.Equal(t, "🔄 Mise à jour de la Commande #1", embed.Title)
	assert.Equal(t, discord.ColorBlue, embed.Color)
	assert.Equal(t, "En livraison", fieldValue(embed, "📊 Nouveau Statut"))
	assert.Equal(t, "Commande Delight #1", embed.Footer.Text)
	assert.Empty(t, msg.Components)

	// The stored record follows the notification.
	stored, err := orderRepo.GetByNumber(1)
	require.NoError(t, err)
	assert.Equal(t, "En livraison", stored.Status)
}

func TestOrderService_UpdateOrderStatus_FreeTextNumber(t *testing.T) {
	notifier := new(MockNotifier)
	service := services.NewOrderService(repositories.NewMockOrderRepository(), testCatalog(), notifier, nil)

	notifier.On("ExecuteWebhook", mock.AnythingOfType("discord.WebhookMessage")).
		Return(&discord.Message{ID: "msg-4", ChannelID: "chan-1"}, nil).Once()

	// A number that matches no stored order still posts the notification.
	err := service.UpdateOrderStatus("CMD-42", "Traitée")
	assert.NoError(t, err)
}
