package notify

import (
	"fmt"
	"strconv"
	"strings"

	"beryllium.app/bot/common"
	"beryllium.app/bot/internal/model"
	"beryllium.app/bot/internal/platform"
)

const (
	colorGoldenrod = 0xDAA520
	colorDarkRed   = 0x8B0000
	colorDarkGreen = 0x006400
)

func accentColor(t model.InfractionType) int {
	switch t {
	case model.InfractionTypeWarning:
		return colorGoldenrod
	case model.InfractionTypeKick, model.InfractionTypeBan, model.InfractionTypeMute:
		return colorDarkRed
	default:
		return colorDarkGreen
	}
}

func headline(t model.InfractionType, guildName string) string {
	guild := common.Bold(guildName)
	switch t {
	case model.InfractionTypeKick:
		return fmt.Sprintf("You have been **kicked** from %s!", guild)
	case model.InfractionTypeBan:
		return fmt.Sprintf("You have been **banned** from %s!", guild)
	case model.InfractionTypeMute:
		return fmt.Sprintf("You have been **muted** in %s!", guild)
	case model.InfractionTypeWarning:
		return fmt.Sprintf("You have been **warned** in %s!", guild)
	case model.InfractionTypePardon:
		return fmt.Sprintf("You have been **pardoned** in %s!", guild)
	case model.InfractionTypeUnban:
		return fmt.Sprintf("You have been **unbanned** from %s!", guild)
	case model.InfractionTypeUnmute:
		return fmt.Sprintf("You have been **unmuted** in %s!", guild)
	default:
		return fmt.Sprintf("A moderator took action on your account in %s.", guild)
	}
}

func additionalInfo(s model.InfractionSnapshot) string {
	switch {
	case s.Type == model.InfractionTypeBan && s.ExpiresAt == nil:
		return "This ban is permanent. You may not rejoin the server unless unbanned."
	case s.Type == model.InfractionTypeBan:
		return fmt.Sprintf("You may rejoin the server %s (%s)",
			common.Timestamp(*s.ExpiresAt, common.TimestampLongDateTime),
			common.Timestamp(*s.ExpiresAt, common.TimestampRelative))
	case s.Type == model.InfractionTypeMute && s.ExpiresAt != nil:
		return fmt.Sprintf("Your mute ends %s.", common.Timestamp(*s.ExpiresAt, common.TimestampRelative))
	case s.Type == model.InfractionTypeWarning:
		return "Future warnings may entail further consequences."
	default:
		return "N/A"
	}
}

// memberMessage is the direct message sent to the member an infraction targets.
func memberMessage(s model.InfractionSnapshot, guild platform.Guild) platform.Message {
	var b strings.Builder
	b.WriteString(headline(s.Type, guild.Name))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "**Moderator**: %s\n", common.UserMention(s.ModeratorID))
	fmt.Fprintf(&b, "**Reason**: %s\n", s.Reason)
	fmt.Fprintf(&b, "**Additional information**: %s", additionalInfo(s))

	return platform.Message{Embeds: []platform.Embed{{
		Description: b.String(),
		Color:       accentColor(s.Type),
	}}}
}

// auditEmbed is the case summary posted to a guild's log channel.
func auditEmbed(s model.InfractionSnapshot) platform.Embed {
	fields := []platform.EmbedField{
		{Name: "Moderator", Value: common.UserMention(s.ModeratorID), Inline: true},
		{Name: "Target", Value: common.UserMention(s.UserID), Inline: true},
		{Name: "Type", Value: s.Type.DisplayName(), Inline: true},
		{Name: "Automatic?", Value: yesNo(s.IsAutomated()), Inline: true},
	}
	if s.ExpiresAt != nil {
		fields = append(fields, platform.EmbedField{
			Name:   "Expires",
			Value:  common.Timestamp(*s.ExpiresAt, common.TimestampRelative),
			Inline: true,
		})
	}
	if s.PardonID != nil {
		fields = append(fields, platform.EmbedField{
			Name:   "Pardons",
			Value:  "Case #" + strconv.FormatInt(*s.PardonID, 10),
			Inline: true,
		})
	}

	created := s.CreatedAt
	return platform.Embed{
		Title:       "Case #" + strconv.FormatInt(s.CaseID, 10),
		Description: s.Reason,
		Color:       accentColor(s.Type),
		Fields:      fields,
		Timestamp:   &created,
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
