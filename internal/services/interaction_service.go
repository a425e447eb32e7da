package services

import (
	"fmt"

	"delight/internal/models"
	"delight/pkg/discord"
)

// InteractionService reacts to Discord button callbacks by editing the
// order notification in place. Two reachable transitions exist: new →
// processing (one control left) and processing → processed (terminal, no
// controls).
type InteractionService struct {
	notifier Notifier
	orders   *OrderService
}

// NewInteractionService creates a new InteractionService.
func NewInteractionService(notifier Notifier, orders *OrderService) *InteractionService {
	return &InteractionService{
		notifier: notifier,
		orders:   orders,
	}
}

// Handle dispatches one interaction. PING gets an immediate pong. Known
// button actions edit the invoking message and answer with an ephemeral
// confirmation. Anything else returns (nil, nil) and the handler sends a
// generic acknowledgement.
func (s *InteractionService) Handle(interaction discord.Interaction) (*discord.InteractionResponse, error) {
	if interaction.Type == discord.InteractionTypePing {
		return &discord.InteractionResponse{Type: discord.ResponseTypePong}, nil
	}

	if interaction.Type != discord.InteractionTypeComponent {
		return nil, nil
	}

	switch interaction.Data.CustomID {
	case ActionProcessOrder:
		err := s.editStatus(interaction, models.StatusProcessing, discord.ColorOrange, []discord.Component{
			discord.ActionRow(discord.Button("Marquer comme traitée", ActionMarkProcessed)),
		})
		if err != nil {
			return nil, err
		}
		return ephemeral("La commande est en cours de traitement."), nil

	case ActionMarkProcessed:
		// Terminal state: strip every control so no further transition
		// can be triggered from this message.
		err := s.editStatus(interaction, models.StatusProcessed, discord.ColorGreen, []discord.Component{})
		if err != nil {
			return nil, err
		}
		return ephemeral("La commande a été marquée comme traitée."), nil
	}

	return nil, nil
}

// editStatus rewrites the status field and color of the invoking message's
// embed, swaps its controls, and pushes the edit back to Discord. A failed
// edit leaves the message as-is; there is no compensating action.
func (s *InteractionService) editStatus(interaction discord.Interaction, status string, color int, components []discord.Component) error {
	if len(interaction.Message.Embeds) == 0 {
		return fmt.Errorf("interaction message %s carries no embed", interaction.Message.ID)
	}

	edited := interaction.Message.Embeds[0]
	edited.Color = color

	fields := make([]discord.EmbedField, len(edited.Fields))
	copy(fields, edited.Fields)
	for i := range fields {
		if fields[i].Name == FieldStatus {
			fields[i].Value = status
		}
	}
	edited.Fields = fields

	err := s.notifier.EditMessage(interaction.ChannelID, interaction.Message.ID, discord.WebhookMessage{
		Embeds:     []discord.Embed{edited},
		Components: components,
	})
	if err != nil {
		return err
	}

	s.orders.MarkStatusByMessage(interaction.Message.ID, status)
	return nil
}

func ephemeral(content string) *discord.InteractionResponse {
	return &discord.InteractionResponse{
		Type: discord.ResponseTypeMessage,
		Data: &discord.ResponseData{
			Content: content,
			Flags:   discord.FlagEphemeral,
		},
	}
}
