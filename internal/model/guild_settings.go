package model

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

type GuildSettings struct {
	GuildID      snowflake.ID  `json:"guild_id"`
	LogChannelID *snowflake.ID `json:"log_channel_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (s *GuildSettings) HasLogChannel() bool {
	return s.LogChannelID != nil && *s.LogChannelID != 0
}
