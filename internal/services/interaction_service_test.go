package services_test

import (
	"fmt"
	"testing"

	"delight/internal/models"
	"delight/internal/repositories"
	"delight/internal/services"
	"delight/pkg/discord"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newInteractionService(notifier *MockNotifier, orderRepo repositories.OrderRepository) *services.InteractionService {
	orders := services.NewOrderService(orderRepo, testCatalog(), notifier, nil)
	return services.NewInteractionService(notifier, orders)
}

func orderMessage(status string) discord.Message {
	return discord.Message{
		ID: "msg-1",
		Embeds: []discord.Embed{
			{
				Title: "🍽️ Nouvelle Commande Delight",
				Color: discord.ColorYellow,
				Fields: []discord.EmbedField{
					{Name: "🏢 Entreprise", Value: "Acme SARL"},
					{Name: services.FieldStatus, Value: status},
				},
			},
		},
	}
}

func buttonPress(customID string, message discord.Message) discord.Interaction {
	return discord.Interaction{
		Type:      discord.InteractionTypeComponent,
		Data:      discord.InteractionData{CustomID: customID},
		Message:   message,
		ChannelID: "chan-1",
	}
}

func TestInteractionService_Ping(t *testing.T) {
	notifier := new(MockNotifier)
	service := newInteractionService(notifier, repositories.NewMockOrderRepository())

	// A PING is answered regardless of any other payload field.
	response, err := service.Handle(discord.Interaction{
		Type: discord.InteractionTypePing,
		Data: discord.InteractionData{CustomID: services.ActionProcessOrder},
	})
	require.NoError(t, err)
	require.NotNil(t, response)
	assert.Equal(t, discord.ResponseTypePong, response.Type)
	notifier.AssertNotCalled(t, "EditMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestInteractionService_ProcessOrder(t *testing.T) {
	notifier := new(MockNotifier)
	orderRepo := repositories.NewMockOrderRepository()
	require.NoError(t, orderRepo.Create(&models.Order{
		CompanyName: "Acme SARL",
		Status:      models.StatusNew,
		MessageID:   "msg-1",
	}))
	service := newInteractionService(notifier, orderRepo)

	notifier.On("EditMessage", "chan-1", "msg-1", mock.AnythingOfType("discord.WebhookMessage")).
		Return(nil).Once()

	response, err := service.Handle(buttonPress(services.ActionProcessOrder, orderMessage(models.StatusNew)))
	require.NoError(t, err)
	notifier.AssertExpectations(t)

	edit := notifier.Calls[0].Arguments.Get(2).(discord.WebhookMessage)
	require.Len(t, edit.Embeds, 1)
	assert.Equal(t, discord.ColorOrange, edit.Embeds[0].Color)
	assert.Equal(t, models.StatusProcessing, fieldValue(edit.Embeds[0], services.FieldStatus))
	// Exactly one control remains: the terminal transition button.
	require.Len(t, edit.Components, 1)
	require.Len(t, edit.Components[0].Components, 1)
	assert.Equal(t, services.ActionMarkProcessed, edit.Components[0].Components[0].CustomID)

	require.NotNil(t, response)
	assert.Equal(t, discord.ResponseTypeMessage, response.Type)
	assert.Equal(t, "La commande est en cours de traitement.", response.Data.Content)
	assert.Equal(t, discord.FlagEphemeral, response.Data.Flags)

	stored, err := orderRepo.GetByNumber(1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, stored.Status)
}

func TestInteractionService_MarkAsProcessed(t *testing.T) {
	notifier := new(MockNotifier)
	orderRepo := repositories.NewMockOrderRepository()
	require.NoError(t, orderRepo.Create(&models.Order{
		CompanyName: "Acme SARL",
		Status:      models.StatusProcessing,
		MessageID:   "msg-1",
	}))
	service := newInteractionService(notifier, orderRepo)

	notifier.On("EditMessage", "chan-1", "msg-1", mock.AnythingOfType("discord.WebhookMessage")).
		Return(nil).Once()

	response, err := service.Handle(buttonPress(services.ActionMarkProcessed, orderMessage(models.StatusProcessing)))
	require.NoError(t, err)

	edit := notifier.Calls[0].Arguments.Get(2).(discord.WebhookMessage)
	assert.Equal(t, discord.ColorGreen, edit.Embeds[0].Color)
	assert.Equal(t, models.StatusProcessed, fieldValue(edit.Embeds[0], services.FieldStatus))
	// Terminal state: every control is stripped.
	assert.Empty(t, edit.Components)
	assert.NotNil(t, edit.Components, "components must be present (empty) so the edit removes the buttons")

	require.NotNil(t, response)
	assert.Equal(t, "La commande a été marquée comme traitée.", response.Data.Content)

	stored, err := orderRepo.GetByNumber(1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessed, stored.Status)
}

func TestInteractionService_EditFailurePropagates(t *testing.T) {
	notifier := new(MockNotifier)
	orderRepo := repositories.NewMockOrderRepository()
	service := newInteractionService(notifier, orderRepo)

	notifier.On("EditMessage", "chan-1", "msg-1", mock.AnythingOfType("discord.WebhookMessage")).
		Return(fmt.Errorf("failed to update message: 403")).Once()

	_, err := service.Handle(buttonPress(services.ActionProcessOrder, orderMessage(models.StatusNew)))
	assert.Error(t, err)
}

func TestInteractionService_UnknownInteraction(t *testing.T) {
	notifier := new(MockNotifier)
	service := newInteractionService(notifier, repositories.NewMockOrderRepository())

	response, err := service.Handle(buttonPress("some_other_button", orderMessage(models.StatusNew)))
	require.NoError(t, err)
	assert.Nil(t, response)

	// Unknown interaction types fall through the same way.
	response, err = service.Handle(discord.Interaction{Type: 5})
	require.NoError(t, err)
	assert.Nil(t, response)
	notifier.AssertNotCalled(t, "EditMessage", mock.Anything, mock.Anything, mock.Anything)
}
