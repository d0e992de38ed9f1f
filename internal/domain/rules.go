package domain

import (
	"strings"
	"time"

	"beryllium.app/bot/internal/validation"
	"github.com/disgoorg/snowflake/v2"
)

const (
	// MaxDeleteMessageTime bounds the ban message-deletion window accepted from callers.
	MaxDeleteMessageTime = 14 * 24 * time.Hour
	// MaxMuteDuration is the longest timeout Discord accepts.
	MaxMuteDuration = 28 * 24 * time.Hour

	SelfModerationMessage = "Moderators cannot invoke commands on themselves!"
)

// SubjectRules is the identity rule set every issue command includes.
var SubjectRules = validation.NewRuleSet[Subject]("identity").Add(
	validation.Snowflake("guild_id", func(s Subject) snowflake.ID { return s.GuildID }),
	validation.Snowflake("moderator_id", func(s Subject) snowflake.ID { return s.ModeratorID }),
	validation.Snowflake("user_id", func(s Subject) snowflake.ID { return s.UserID }),
	validation.Check("user_id", SelfModerationMessage, func(s Subject) bool {
		return s.ModeratorID != s.UserID
	}),
)

var (
	IssueWarningRules = validation.NewRuleSet[IssueWarning]("issue_warning").Add(
		validation.Include(SubjectRules, func(c IssueWarning) Subject { return c.Subject }),
		validation.PositiveDuration("duration", func(c IssueWarning) *time.Duration { return c.Duration }),
	)

	IssueMuteRules = validation.NewRuleSet[IssueMute]("issue_mute").Add(
		validation.Include(SubjectRules, func(c IssueMute) Subject { return c.Subject }),
		validation.Check("duration", "duration is required for a mute.", func(c IssueMute) bool {
			return c.Duration != nil
		}),
		validation.PositiveDuration("duration", func(c IssueMute) *time.Duration { return c.Duration }),
		validation.Check("duration", "duration must not exceed 28 days.", func(c IssueMute) bool {
			return c.Duration == nil || *c.Duration <= MaxMuteDuration
		}),
	)

	IssueKickRules = validation.NewRuleSet[IssueKick]("issue_kick").Add(
		validation.Include(SubjectRules, func(c IssueKick) Subject { return c.Subject }),
	)

	IssueBanRules = validation.NewRuleSet[IssueBan]("issue_ban").Add(
		validation.Include(SubjectRules, func(c IssueBan) Subject { return c.Subject }),
		validation.PositiveDuration("duration", func(c IssueBan) *time.Duration { return c.Duration }),
		validation.DurationBetween("delete_message_time", func(c IssueBan) *time.Duration {
			return c.DeleteMessageTime
		}, 0, MaxDeleteMessageTime),
	)

	IssueUnbanRules = validation.NewRuleSet[IssueUnban]("issue_unban").Add(
		validation.Include(SubjectRules, func(c IssueUnban) Subject { return c.Subject }),
	)

	IssueUnmuteRules = validation.NewRuleSet[IssueUnmute]("issue_unmute").Add(
		validation.Include(SubjectRules, func(c IssueUnmute) Subject { return c.Subject }),
	)

	IssuePardonRules = validation.NewRuleSet[IssuePardon]("issue_pardon").Add(
		validation.Include(SubjectRules, func(c IssuePardon) Subject { return c.Subject }),
		validation.Check("case_id", "case_id must be a positive case number.", func(c IssuePardon) bool {
			return c.CaseID > 0
		}),
	)
)

// caseRef is the common shape of the case commands.
type caseRef struct {
	GuildID     snowflake.ID
	ModeratorID snowflake.ID
	CaseID      int64
}

var caseRefRules = validation.NewRuleSet[caseRef]("case").Add(
	validation.Snowflake("guild_id", func(c caseRef) snowflake.ID { return c.GuildID }),
	validation.Snowflake("moderator_id", func(c caseRef) snowflake.ID { return c.ModeratorID }),
	validation.Check("case_id", "case_id must be a positive case number.", func(c caseRef) bool {
		return c.CaseID > 0
	}),
)

var (
	HideInfractionRules = validation.NewRuleSet[HideInfraction]("hide_infraction").Add(
		validation.Include(caseRefRules, func(c HideInfraction) caseRef {
			return caseRef{GuildID: c.GuildID, ModeratorID: c.ModeratorID, CaseID: c.CaseID}
		}),
	)

	PardonInfractionRules = validation.NewRuleSet[PardonInfraction]("pardon_infraction").Add(
		validation.Include(caseRefRules, func(c PardonInfraction) caseRef {
			return caseRef{GuildID: c.GuildID, ModeratorID: c.ModeratorID, CaseID: c.CaseID}
		}),
	)

	UpdateInfractionExpirationRules = validation.NewRuleSet[UpdateInfractionExpiration]("update_infraction_expiration").Add(
		validation.Include(caseRefRules, func(c UpdateInfractionExpiration) caseRef {
			return caseRef{GuildID: c.GuildID, ModeratorID: c.ModeratorID, CaseID: c.CaseID}
		}),
		validation.InFuture("expires_at", func(c UpdateInfractionExpiration) *time.Time { return c.ExpiresAt }),
	)
)

var NotifyUserOfInfractionRules = validation.NewRuleSet[NotifyUserOfInfraction]("notify_user_of_infraction").Add(
	validation.Include(SubjectRules, func(c NotifyUserOfInfraction) Subject {
		return Subject{
			GuildID:     c.Infraction.GuildID,
			ModeratorID: c.Infraction.ModeratorID,
			UserID:      c.Infraction.UserID,
		}
	}),
	validation.Check("reason", "reason must not be empty.", func(c NotifyUserOfInfraction) bool {
		return strings.TrimSpace(c.Infraction.Reason) != ""
	}),
	validation.Check("type", "type is not a known infraction type.", func(c NotifyUserOfInfraction) bool {
		return c.Infraction.Type.IsValid()
	}),
	validation.InFuture("expires_at", func(c NotifyUserOfInfraction) *time.Time { return c.Infraction.ExpiresAt }),
)

var SetLogChannelRules = validation.NewRuleSet[SetLogChannel]("set_log_channel").Add(
	validation.Snowflake("guild_id", func(c SetLogChannel) snowflake.ID { return c.GuildID }),
	validation.When(func(c SetLogChannel) bool { return c.ChannelID != nil },
		validation.Snowflake("channel_id", func(c SetLogChannel) snowflake.ID { return *c.ChannelID }),
	),
)
