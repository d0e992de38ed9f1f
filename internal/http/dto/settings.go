package dto

import (
	"time"

	"beryllium.app/bot/internal/model"
	"github.com/disgoorg/snowflake/v2"
)

// SetLogChannelRequest disables audit logging when channel_id is null or absent.
type SetLogChannelRequest struct {
	ChannelID *snowflake.ID `json:"channel_id" jsonschema:"type=string"`
}

type GuildSettingsResponse struct {
	GuildID      snowflake.ID  `json:"guild_id"`
	LogChannelID *snowflake.ID `json:"log_channel_id"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func ToGuildSettingsResponse(s *model.GuildSettings) *GuildSettingsResponse {
	return &GuildSettingsResponse{
		GuildID:      s.GuildID,
		LogChannelID: s.LogChannelID,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
