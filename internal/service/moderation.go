package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"beryllium.app/bot/common"
	"beryllium.app/bot/common/logger"
	"beryllium.app/bot/internal/domain"
	"beryllium.app/bot/internal/events"
	"beryllium.app/bot/internal/model"
	"beryllium.app/bot/internal/platform"
	"beryllium.app/bot/internal/store"
	"beryllium.app/bot/internal/validation"
	"github.com/disgoorg/snowflake/v2"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultHistoryLimit = 25
	MaxHistoryLimit     = 100
)

// InfractionResult is what a successful (or partially successful) command reports.
type InfractionResult struct {
	CaseID       int64                `json:"case_id"`
	Type         model.InfractionType `json:"type"`
	UserID       snowflake.ID         `json:"user_id"`
	ModeratorID  snowflake.ID         `json:"moderator_id"`
	ExpiresAt    *time.Time           `json:"expires_at,omitempty"`
	Reason       string               `json:"reason"`
	UserNotified bool                 `json:"user_notified"`
}

// MemberNotifier tells a member about an infraction against them.
type MemberNotifier interface {
	Notify(ctx context.Context, cmd domain.NotifyUserOfInfraction) error
}

// ModerationService runs moderation commands through the pipeline:
// validate, sanitize, mutate, persist, notify, then apply the platform effect.
//
// Once an infraction is persisted it stands. If the platform effect then
// fails, the result is returned together with a platform_action_failed error.
type ModerationService interface {
	IssueWarning(ctx context.Context, cmd domain.IssueWarning) (*InfractionResult, error)
	IssueMute(ctx context.Context, cmd domain.IssueMute) (*InfractionResult, error)
	IssueKick(ctx context.Context, cmd domain.IssueKick) (*InfractionResult, error)
	IssueBan(ctx context.Context, cmd domain.IssueBan) (*InfractionResult, error)
	IssueUnban(ctx context.Context, cmd domain.IssueUnban) (*InfractionResult, error)
	IssueUnmute(ctx context.Context, cmd domain.IssueUnmute) (*InfractionResult, error)
	IssuePardon(ctx context.Context, cmd domain.IssuePardon) (*InfractionResult, error)

	HideInfraction(ctx context.Context, cmd domain.HideInfraction) (*InfractionResult, error)
	PardonInfraction(ctx context.Context, cmd domain.PardonInfraction) (*InfractionResult, error)
	UpdateInfractionExpiration(ctx context.Context, cmd domain.UpdateInfractionExpiration) (*InfractionResult, error)

	GetInfraction(ctx context.Context, guildID snowflake.ID, caseID int64) (*model.InfractionSnapshot, error)
	ListInfractions(ctx context.Context, guildID, userID snowflake.ID, limit int32) ([]model.InfractionSnapshot, error)
}

type moderationService struct {
	infractions store.InfractionStore
	txRunner    TxRunner
	publisher   events.Publisher
	notifier    MemberNotifier
	client      platform.Client
}

func NewModerationService(
	infractions store.InfractionStore,
	txRunner TxRunner,
	publisher events.Publisher,
	notifier MemberNotifier,
	client platform.Client,
) ModerationService {
	return &moderationService{
		infractions: infractions,
		txRunner:    txRunner,
		publisher:   publisher,
		notifier:    notifier,
		client:      client,
	}
}

// platformEffect applies an issued infraction on Discord. reason is already truncated.
type platformEffect func(ctx context.Context, inf *model.Infraction, reason string) error

type issueRequest struct {
	action  string
	subject domain.Subject
	result  validation.Result
	params  model.Params
	create  func(p model.Params) (*model.Infraction, error)
	effect  platformEffect
}

func params(s domain.Subject, reason string, automated bool) model.Params {
	return model.Params{
		GuildID:     s.GuildID,
		UserID:      s.UserID,
		ModeratorID: s.ModeratorID,
		Reason:      reason,
		Automated:   automated,
	}
}

func (s *moderationService) IssueWarning(ctx context.Context, cmd domain.IssueWarning) (*InfractionResult, error) {
	return s.issue(ctx, issueRequest{
		action:  "warn",
		subject: cmd.Subject,
		result:  domain.IssueWarningRules.Validate(cmd),
		params:  params(cmd.Subject, cmd.Reason, cmd.IsAutomated),
		create: func(p model.Params) (*model.Infraction, error) {
			return model.CreateWarning(p, cmd.Duration)
		},
	})
}

func (s *moderationService) IssueMute(ctx context.Context, cmd domain.IssueMute) (*InfractionResult, error) {
	return s.issue(ctx, issueRequest{
		action:  "mute",
		subject: cmd.Subject,
		result:  domain.IssueMuteRules.Validate(cmd),
		params:  params(cmd.Subject, cmd.Reason, cmd.IsAutomated),
		create: func(p model.Params) (*model.Infraction, error) {
			return model.CreateMute(p, cmd.Duration)
		},
		effect: func(ctx context.Context, inf *model.Infraction, reason string) error {
			return s.client.TimeoutMember(ctx, inf.GuildID(), inf.UserID(), inf.ExpiresAt(), reason)
		},
	})
}

func (s *moderationService) IssueKick(ctx context.Context, cmd domain.IssueKick) (*InfractionResult, error) {
	return s.issue(ctx, issueRequest{
		action:  "kick",
		subject: cmd.Subject,
		result:  domain.IssueKickRules.Validate(cmd),
		params:  params(cmd.Subject, cmd.Reason, cmd.IsAutomated),
		create:  model.CreateKick,
		effect: func(ctx context.Context, inf *model.Infraction, reason string) error {
			return s.client.RemoveMember(ctx, inf.GuildID(), inf.UserID(), reason)
		},
	})
}

func (s *moderationService) IssueBan(ctx context.Context, cmd domain.IssueBan) (*InfractionResult, error) {
	return s.issue(ctx, issueRequest{
		action:  "ban",
		subject: cmd.Subject,
		result:  domain.IssueBanRules.Validate(cmd),
		params:  params(cmd.Subject, cmd.Reason, cmd.IsAutomated),
		create: func(p model.Params) (*model.Infraction, error) {
			return model.CreateBan(p, cmd.Duration)
		},
		effect: func(ctx context.Context, inf *model.Infraction, reason string) error {
			var deleteSeconds *int
			if cmd.DeleteMessageTime != nil {
				seconds := int(cmd.DeleteMessageTime.Seconds())
				deleteSeconds = &seconds
			}
			return s.client.CreateBan(ctx, inf.GuildID(), inf.UserID(), deleteSeconds, reason)
		},
	})
}

func (s *moderationService) IssueUnban(ctx context.Context, cmd domain.IssueUnban) (*InfractionResult, error) {
	return s.issue(ctx, issueRequest{
		action:  "unban",
		subject: cmd.Subject,
		result:  domain.IssueUnbanRules.Validate(cmd),
		params:  params(cmd.Subject, cmd.Reason, cmd.IsAutomated),
		create:  model.CreateUnban,
		effect: func(ctx context.Context, inf *model.Infraction, reason string) error {
			return s.client.RemoveBan(ctx, inf.GuildID(), inf.UserID(), reason)
		},
	})
}

func (s *moderationService) IssueUnmute(ctx context.Context, cmd domain.IssueUnmute) (*InfractionResult, error) {
	return s.issue(ctx, issueRequest{
		action:  "unmute",
		subject: cmd.Subject,
		result:  domain.IssueUnmuteRules.Validate(cmd),
		params:  params(cmd.Subject, cmd.Reason, cmd.IsAutomated),
		create:  model.CreateUnmute,
		effect: func(ctx context.Context, inf *model.Infraction, reason string) error {
			return s.client.TimeoutMember(ctx, inf.GuildID(), inf.UserID(), nil, reason)
		},
	})
}

// IssuePardon records a pardon of cmd.CaseID. The referenced case is not
// checked for existence; use PardonInfraction to flag an existing case.
func (s *moderationService) IssuePardon(ctx context.Context, cmd domain.IssuePardon) (*InfractionResult, error) {
	return s.issue(ctx, issueRequest{
		action:  "pardon",
		subject: cmd.Subject,
		result:  domain.IssuePardonRules.Validate(cmd),
		params:  params(cmd.Subject, cmd.Reason, cmd.IsAutomated),
		create: func(p model.Params) (*model.Infraction, error) {
			return model.CreatePardon(p, cmd.CaseID), nil
		},
	})
}

func (s *moderationService) issue(ctx context.Context, req issueRequest) (*InfractionResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		GuildID:     logger.Ptr(req.subject.GuildID.String()),
		ModeratorID: logger.Ptr(req.subject.ModeratorID.String()),
		TargetID:    logger.Ptr(req.subject.UserID.String()),
		Action:      logger.Ptr(req.action),
		Component:   "beryllium.service.moderation",
	})

	sc := logger.StartSpan(ctx, "moderation."+req.action)
	defer sc.End()
	ctx = sc.Context()

	result, err := s.runIssue(ctx, req)
	if err != nil {
		sc.RecordError(err)
		s.recordFailure(ctx, req.action, err)
	}
	return result, err
}

func (s *moderationService) runIssue(ctx context.Context, req issueRequest) (*InfractionResult, error) {
	if err := req.result.Err(); err != nil {
		return nil, validationFailed(err)
	}

	req.params.Reason = sanitizeReason(req.params.Reason)

	inf, err := req.create(req.params)
	if err != nil {
		return nil, domainRuleViolation(err)
	}

	if err := s.infractions.Create(ctx, inf); err != nil {
		slog.ErrorContext(ctx, "failed to persist infraction", "error", err)
		return nil, persistenceFailed(fmt.Errorf("creating infraction: %w", err))
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{CaseID: logger.Ptr(inf.ID())})
	infractionsIssued.WithLabelValues(string(inf.Type())).Inc()
	slog.InfoContext(ctx, "infraction recorded",
		"type", inf.Type(),
		"automated", inf.IsAutomated(),
		"expires_at", inf.ExpiresAt())

	snapshot := inf.ToSnapshot()
	result := toResult(snapshot)
	result.UserNotified = s.notifyMember(ctx, snapshot)

	s.publisher.Publish(ctx, events.InfractionCreated(snapshot))

	if req.effect == nil {
		return result, nil
	}

	reason := common.TruncateEscaped(inf.Reason(), platform.MaxReasonLength)
	if err := req.effect(ctx, inf, reason); err != nil {
		slog.ErrorContext(ctx, "platform action failed after infraction was recorded", "error", err)
		return result, &ModerationError{
			Kind: KindPlatformActionFailed,
			Message: fmt.Sprintf("Case #%d was recorded, but Discord rejected the %s. The member may be unaffected.",
				inf.ID(), req.action),
			Err: err,
		}
	}

	return result, nil
}

// notifyMember reports whether the member was reached. Failures never abort the command.
func (s *moderationService) notifyMember(ctx context.Context, snapshot model.InfractionSnapshot) bool {
	if s.notifier == nil {
		return false
	}
	if err := s.notifier.Notify(ctx, domain.NotifyUserOfInfraction{Infraction: snapshot}); err != nil {
		slog.InfoContext(ctx, "member could not be notified", "error", err)
		return false
	}
	return true
}

func (s *moderationService) HideInfraction(ctx context.Context, cmd domain.HideInfraction) (*InfractionResult, error) {
	return s.mutate(ctx, caseMutation{
		action:      "hide_infraction",
		guildID:     cmd.GuildID,
		moderatorID: cmd.ModeratorID,
		caseID:      cmd.CaseID,
		result:      domain.HideInfractionRules.Validate(cmd),
		apply: func(inf *model.Infraction) error {
			return inf.Hide(cmd.Hidden)
		},
	})
}

func (s *moderationService) PardonInfraction(ctx context.Context, cmd domain.PardonInfraction) (*InfractionResult, error) {
	return s.mutate(ctx, caseMutation{
		action:      "pardon_infraction",
		guildID:     cmd.GuildID,
		moderatorID: cmd.ModeratorID,
		caseID:      cmd.CaseID,
		result:      domain.PardonInfractionRules.Validate(cmd),
		apply: func(inf *model.Infraction) error {
			return inf.Pardon(cmd.ModeratorID)
		},
	})
}

func (s *moderationService) UpdateInfractionExpiration(ctx context.Context, cmd domain.UpdateInfractionExpiration) (*InfractionResult, error) {
	return s.mutate(ctx, caseMutation{
		action:      "update_infraction_expiration",
		guildID:     cmd.GuildID,
		moderatorID: cmd.ModeratorID,
		caseID:      cmd.CaseID,
		result:      domain.UpdateInfractionExpirationRules.Validate(cmd),
		apply: func(inf *model.Infraction) error {
			return inf.UpdateExpiration(cmd.ExpiresAt)
		},
	})
}

type caseMutation struct {
	action      string
	guildID     snowflake.ID
	moderatorID snowflake.ID
	caseID      int64
	result      validation.Result
	apply       func(inf *model.Infraction) error
}

func (s *moderationService) mutate(ctx context.Context, m caseMutation) (*InfractionResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		GuildID:     logger.Ptr(m.guildID.String()),
		ModeratorID: logger.Ptr(m.moderatorID.String()),
		CaseID:      logger.Ptr(m.caseID),
		Action:      logger.Ptr(m.action),
		Component:   "beryllium.service.moderation",
	})

	sc := logger.StartSpan(ctx, "moderation."+m.action)
	defer sc.End()
	sc.SetAttributes(attribute.Int64("moderation.case_id", m.caseID))
	ctx = sc.Context()

	result, err := s.runMutation(ctx, m)
	if err != nil {
		sc.RecordError(err)
		s.recordFailure(ctx, m.action, err)
	}
	return result, err
}

func (s *moderationService) runMutation(ctx context.Context, m caseMutation) (*InfractionResult, error) {
	if err := m.result.Err(); err != nil {
		return nil, validationFailed(err)
	}

	var snapshot model.InfractionSnapshot
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		inf, err := stores.Infractions().GetByCaseForUpdate(ctx, m.guildID, m.caseID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return dependencyNotFound(fmt.Sprintf("Case #%d does not exist in this server.", m.caseID), err)
			}
			return persistenceFailed(fmt.Errorf("loading case: %w", err))
		}

		if err := m.apply(inf); err != nil {
			return domainRuleViolation(err)
		}

		if err := stores.Infractions().Update(ctx, inf); err != nil {
			return persistenceFailed(fmt.Errorf("updating case: %w", err))
		}

		snapshot = inf.ToSnapshot()
		return nil
	})
	if err != nil {
		var merr *ModerationError
		if errors.As(err, &merr) {
			return nil, merr
		}
		slog.ErrorContext(ctx, "case update transaction failed", "error", err)
		return nil, persistenceFailed(err)
	}

	infractionsUpdated.WithLabelValues(m.action).Inc()
	slog.InfoContext(ctx, "infraction updated",
		"hidden", snapshot.Status.Has(model.StatusHidden),
		"pardoned", snapshot.Status.Has(model.StatusPardoned),
		"expires_at", snapshot.ExpiresAt)

	s.publisher.Publish(ctx, events.InfractionUpdated(snapshot))

	return toResult(snapshot), nil
}

func (s *moderationService) GetInfraction(ctx context.Context, guildID snowflake.ID, caseID int64) (*model.InfractionSnapshot, error) {
	inf, err := s.infractions.GetByCase(ctx, guildID, caseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, dependencyNotFound(fmt.Sprintf("Case #%d does not exist in this server.", caseID), err)
		}
		return nil, fmt.Errorf("getting case: %w", err)
	}
	snapshot := inf.ToSnapshot()
	return &snapshot, nil
}

func (s *moderationService) ListInfractions(ctx context.Context, guildID, userID snowflake.ID, limit int32) ([]model.InfractionSnapshot, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	infractions, err := s.infractions.ListByUser(ctx, guildID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing infractions: %w", err)
	}

	snapshots := make([]model.InfractionSnapshot, len(infractions))
	for i, inf := range infractions {
		snapshots[i] = inf.ToSnapshot()
	}
	return snapshots, nil
}

func (s *moderationService) recordFailure(ctx context.Context, action string, err error) {
	kind := "unknown"
	var merr *ModerationError
	if errors.As(err, &merr) {
		kind = string(merr.Kind)
	}
	pipelineFailures.WithLabelValues(action, kind).Inc()
	slog.WarnContext(ctx, "moderation command failed", "kind", kind, "error", err)
}

func sanitizeReason(reason string) string {
	return common.SanitizeMarkdown(strings.TrimSpace(reason))
}

func toResult(s model.InfractionSnapshot) *InfractionResult {
	return &InfractionResult{
		CaseID:      s.CaseID,
		Type:        s.Type,
		UserID:      s.UserID,
		ModeratorID: s.ModeratorID,
		ExpiresAt:   s.ExpiresAt,
		Reason:      s.Reason,
	}
}
