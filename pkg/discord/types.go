package discord

// Embed colors used by the order workflow.
const (
	ColorYellow = 16776960 // new order
	ColorBlue   = 5793266  // status update
	ColorOrange = 15105570 // processing
	ColorGreen  = 5763719  // processed
)

// Interaction types (subset of the Discord gateway values).
const (
	InteractionTypePing      = 1
	InteractionTypeComponent = 3
)

// Interaction response types.
const (
	ResponseTypePong    = 1
	ResponseTypeMessage = 4
)

// FlagEphemeral marks an interaction reply as visible only to the invoker.
const FlagEphemeral = 64

// Component types and button styles.
const (
	ComponentTypeActionRow = 1
	ComponentTypeButton    = 2

	ButtonStyleSuccess = 3
)

// EmbedField is one labelled value inside an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedFooter is the footer line of an embed.
type EmbedFooter struct {
	Text string `json:"text"`
}

// Embed is a rich message block as Discord renders it.
type Embed struct {
	Title     string       `json:"title,omitempty"`
	Color     int          `json:"color,omitempty"`
	Fields    []EmbedField `json:"fields,omitempty"`
	Footer    *EmbedFooter `json:"footer,omitempty"`
	Timestamp string       `json:"timestamp,omitempty"`
}

// Component is an action row or a button. Discord nests buttons inside
// action rows, so the same struct serves both levels.
type Component struct {
	Type       int         `json:"type"`
	Style      int         `json:"style,omitempty"`
	Label      string      `json:"label,omitempty"`
	CustomID   string      `json:"custom_id,omitempty"`
	Components []Component `json:"components,omitempty"`
}

// WebhookMessage is the payload for executing a webhook or editing a
// previously posted message. Components must be non-nil (may be empty)
// on edits that strip all controls.
type WebhookMessage struct {
	Embeds     []Embed     `json:"embeds"`
	Components []Component `json:"components"`
}

// Message is the subset of a Discord message the service reads back.
type Message struct {
	ID        string  `json:"id"`
	ChannelID string  `json:"channel_id"`
	Embeds    []Embed `json:"embeds"`
}

// InteractionData carries the identifier of the activated control.
type InteractionData struct {
	CustomID string `json:"custom_id"`
}

// Interaction is the inbound callback payload delivered by Discord.
type Interaction struct {
	Type      int             `json:"type"`
	Data      InteractionData `json:"data"`
	Message   Message         `json:"message"`
	ChannelID string          `json:"channel_id"`
}

// ResponseData is the body of a type-4 interaction reply.
type ResponseData struct {
	Content string `json:"content,omitempty"`
	Flags   int    `json:"flags,omitempty"`
}

// InteractionResponse is the object returned to Discord for a callback.
type InteractionResponse struct {
	Type int           `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

// ActionRow wraps buttons in a single action row.
func ActionRow(buttons ...Component) Component {
	return Component{Type: ComponentTypeActionRow, Components: buttons}
}

// Button builds a success-style button component.
func Button(label, customID string) Component {
	return Component{
		Type:     ComponentTypeButton,
		Style:    ButtonStyleSuccess,
		Label:    label,
		CustomID: customID,
	}
}
