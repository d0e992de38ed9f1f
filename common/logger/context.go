package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// The moderation pipeline enriches the context once per action so every log line
// emitted by stores, subscribers and the platform adapter carries the case identity.
type LogFields struct {
	GuildID     *string // Discord guild snowflake
	CaseID      *int64  // Infraction case id, once persisted
	ModeratorID *string // Acting moderator snowflake
	TargetID    *string // Target member snowflake
	Action      *string // Moderation action (e.g., "ban", "pardon_infraction")
	EventID     *int64  // Id of the published infraction event
	Component   string  // Component name (OTel semantic convention style, e.g., "beryllium.service.moderation")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.GuildID != nil {
		result.GuildID = next.GuildID
	}
	if next.CaseID != nil {
		result.CaseID = next.CaseID
	}
	if next.ModeratorID != nil {
		result.ModeratorID = next.ModeratorID
	}
	if next.TargetID != nil {
		result.TargetID = next.TargetID
	}
	if next.Action != nil {
		result.Action = next.Action
	}
	if next.EventID != nil {
		result.EventID = next.EventID
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{CaseID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}
