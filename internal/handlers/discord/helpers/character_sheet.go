package helpers

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dado-bot/internal/entities"
	"github.com/bwmarrin/discordgo"
)

const (
	sheetColor     = 0x3498db // Blue
	maxFieldValue  = 1024
	maxEmbedFields = 25
	emptyList      = "*vazio*"
)

// BuildCharacterSheetEmbed renders every field of a sheet. Objects list their
// keys, lists are numbered from 0 so entries can be removed by index.
func BuildCharacterSheetEmbed(record *entities.CharacterRecord) *discordgo.MessageEmbed {
	keys := make([]string, 0, len(record.Fields))
	for key := range record.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var scalars []string
	var fields []*discordgo.MessageEmbedField
	for _, key := range keys {
		switch v := record.Fields[key].(type) {
		case map[string]any:
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   key,
				Value:  truncate(formatObject(v)),
				Inline: true,
			})
		case []any:
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   key,
				Value:  truncate(formatList(v)),
				Inline: true,
			})
		default:
			scalars = append(scalars, fmt.Sprintf("**%s:** %s", key, FormatValue(v)))
		}
	}
	if len(fields) > maxEmbedFields {
		fields = fields[:maxEmbedFields]
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s (%s)", record.Name, record.System.Title()),
		Description: strings.Join(scalars, "\n"),
		Color:       sheetColor,
		Fields:      fields,
	}
}

// FormatValue renders a scalar field; whole numbers drop the decimal point
func FormatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return "-"
	case string:
		if value == "" {
			return "-"
		}
		return value
	case bool:
		if value {
			return "✅"
		}
		return "❌"
	case float64:
		if value == math.Trunc(value) {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	default:
		return fmt.Sprint(value)
	}
}

func formatObject(obj map[string]any) string {
	if len(obj) == 0 {
		return emptyList
	}

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", key, FormatValue(obj[key])))
	}
	return strings.Join(lines, "\n")
}

func formatList(list []any) string {
	if len(list) == 0 {
		return emptyList
	}

	lines := make([]string, 0, len(list))
	for i, item := range list {
		lines = append(lines, fmt.Sprintf("`%d` %s", i, FormatValue(item)))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string) string {
	if len(s) <= maxFieldValue {
		return s
	}
	cut := maxFieldValue - len("…")
	for cut > 0 && !utf8RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
