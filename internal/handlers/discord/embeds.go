package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/dado-bot/internal/rolls"
	"github.com/bwmarrin/discordgo"
)

const (
	rollComponentPrefix = "roll"
	actionReroll        = "reroll"
	actionReset         = "reset"
	actionHistory       = "history"

	promptColor         = 0x95a5a6 // Grey
	maxEmbedDescription = 4096
)

// rollCustomID builds "roll:<action>:<owner>" so only the roller can press the buttons
func rollCustomID(action, ownerID string) string {
	return fmt.Sprintf("%s:%s:%s", rollComponentPrefix, action, ownerID)
}

// BuildRollEmbed renders an outcome, coloured by its critical class
func BuildRollEmbed(out *rolls.Outcome) *discordgo.MessageEmbed {
	title := fmt.Sprintf("🎲 %s", out.Request.Label())
	if out.Request.Modifier != 0 {
		title += fmt.Sprintf(" %+d", out.Request.Modifier)
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: out.DisplayText,
		Color:       out.Critical.Color(),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Modo: %s", out.Mode),
		},
	}
}

// BuildPromptEmbed shows the idle prompt after a reset
func BuildPromptEmbed(text string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎲 Dados",
		Description: text,
		Color:       promptColor,
	}
}

// BuildHistoryEmbed lists entries most recent first, dropping the oldest when the embed is full
func BuildHistoryEmbed(entries []rolls.HistoryEntry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📜 Histórico de Lançamentos",
		Color: promptColor,
	}
	if len(entries) == 0 {
		embed.Description = rolls.EmptyHistoryMessage
		return embed
	}

	var b strings.Builder
	for _, entry := range entries {
		line := entry.String()
		if b.Len()+len(line)+1 > maxEmbedDescription {
			break
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	embed.Description = b.String()
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d lançamento(s)", len(entries)),
	}
	return embed
}

// BuildRollComponents renders the reroll, reset and history buttons for one owner
func BuildRollComponents(ownerID string, rerollAvailable bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Rerolar (Desvantagem)",
					Style:    discordgo.PrimaryButton,
					CustomID: rollCustomID(actionReroll, ownerID),
					Disabled: !rerollAvailable,
					Emoji:    &discordgo.ComponentEmoji{Name: "🔁"},
				},
				discordgo.Button{
					Label:    "Resetar",
					Style:    discordgo.SecondaryButton,
					CustomID: rollCustomID(actionReset, ownerID),
					Emoji:    &discordgo.ComponentEmoji{Name: "🧹"},
				},
				discordgo.Button{
					Label:    "Histórico",
					Style:    discordgo.SecondaryButton,
					CustomID: rollCustomID(actionHistory, ownerID),
					Emoji:    &discordgo.ComponentEmoji{Name: "📜"},
				},
			},
		},
	}
}
