package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"beryllium.app/bot/internal/domain"
	"beryllium.app/bot/internal/http/handler"
	"beryllium.app/bot/internal/http/router"
	"beryllium.app/bot/internal/model"
	"beryllium.app/bot/internal/service"
	"beryllium.app/bot/internal/validation"
	"github.com/disgoorg/snowflake/v2"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ModerationHandler", func() {
	var (
		engine *gin.Engine
		svc    *mockModerationService
	)

	const guildPath = "/guilds/1100"

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		engine = gin.New()
		svc = &mockModerationService{}
		h := handler.NewModerationHandler(svc)

		guild := engine.Group("/guilds/:guild_id")
		router.InfractionRouter(guild.Group("/infractions"), h)
		guild.GET("/users/:user_id/infractions", h.ListByUser)
	})

	do := func(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		return w, resp
	}

	Describe("Ban", func() {
		It("returns 201 and maps the request onto the command", func() {
			var got domain.IssueBan
			svc.issueBanFn = func(_ context.Context, cmd domain.IssueBan) (*service.InfractionResult, error) {
				got = cmd
				return &service.InfractionResult{
					CaseID:       42,
					Type:         model.InfractionTypeBan,
					UserID:       cmd.UserID,
					ModeratorID:  cmd.ModeratorID,
					Reason:       cmd.Reason,
					UserNotified: true,
				}, nil
			}

			w, resp := do(http.MethodPost, guildPath+"/infractions/bans", map[string]any{
				"user_id":                "3300",
				"moderator_id":           "2200",
				"reason":                 "spam",
				"duration_seconds":       604800,
				"delete_message_seconds": 3600,
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(resp["case_id"]).To(BeNumerically("==", 42))
			Expect(resp["user_id"]).To(Equal("3300"))
			Expect(resp["user_notified"]).To(BeTrue())

			Expect(got.GuildID).To(Equal(snowflake.ID(1100)))
			Expect(got.UserID).To(Equal(snowflake.ID(3300)))
			Expect(*got.Duration).To(Equal(7 * 24 * time.Hour))
			Expect(*got.DeleteMessageTime).To(Equal(time.Hour))
		})

		It("returns 400 when ids are missing", func() {
			w, _ := do(http.MethodPost, guildPath+"/infractions/bans", map[string]any{"reason": "spam"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 for a malformed guild id", func() {
			w, resp := do(http.MethodPost, "/guilds/abc/infractions/bans", map[string]any{
				"user_id": "3300", "moderator_id": "2200",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(resp["error"]).To(Equal("invalid guild_id"))
		})

		It("returns 502 with the recorded case when Discord rejects the ban", func() {
			svc.issueBanFn = func(_ context.Context, cmd domain.IssueBan) (*service.InfractionResult, error) {
				return &service.InfractionResult{CaseID: 7, Type: model.InfractionTypeBan},
					&service.ModerationError{Kind: service.KindPlatformActionFailed, Message: "Case #7 was recorded, but Discord rejected the ban."}
			}

			w, resp := do(http.MethodPost, guildPath+"/infractions/bans", map[string]any{
				"user_id": "3300", "moderator_id": "2200",
			})

			Expect(w.Code).To(Equal(http.StatusBadGateway))
			Expect(resp["kind"]).To(Equal("platform_action_failed"))
			Expect(resp["infraction"]).To(HaveKeyWithValue("case_id", BeNumerically("==", 7)))
		})
	})

	Describe("Kick", func() {
		It("returns 400 with failures on validation errors", func() {
			svc.issueKickFn = func(context.Context, domain.IssueKick) (*service.InfractionResult, error) {
				return nil, &service.ModerationError{
					Kind:     service.KindValidationFailed,
					Message:  domain.SelfModerationMessage,
					Failures: []validation.Failure{{Field: "user_id", Message: domain.SelfModerationMessage}},
				}
			}

			w, resp := do(http.MethodPost, guildPath+"/infractions/kicks", map[string]any{
				"user_id": "2200", "moderator_id": "2200",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(resp["error"]).To(Equal(domain.SelfModerationMessage))
			Expect(resp["failures"]).To(HaveLen(1))
		})

		It("hides unexpected errors", func() {
			svc.issueKickFn = func(context.Context, domain.IssueKick) (*service.InfractionResult, error) {
				return nil, errors.New("pq: connection reset")
			}

			w, resp := do(http.MethodPost, guildPath+"/infractions/kicks", map[string]any{
				"user_id": "3300", "moderator_id": "2200",
			})

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(resp["error"]).To(Equal("failed to issue infraction"))
		})
	})

	Describe("Mute", func() {
		It("passes an absent duration through as nil", func() {
			var got domain.IssueMute
			svc.issueMuteFn = func(_ context.Context, cmd domain.IssueMute) (*service.InfractionResult, error) {
				got = cmd
				return &service.InfractionResult{CaseID: 1, Type: model.InfractionTypeMute}, nil
			}

			w, _ := do(http.MethodPost, guildPath+"/infractions/mutes", map[string]any{
				"user_id": "3300", "moderator_id": "2200", "automated": true,
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(got.Duration).To(BeNil())
			Expect(got.IsAutomated).To(BeTrue())
		})
	})

	Describe("Pardon", func() {
		It("records a pardon referencing the case", func() {
			var got domain.IssuePardon
			svc.issuePardonFn = func(_ context.Context, cmd domain.IssuePardon) (*service.InfractionResult, error) {
				got = cmd
				return &service.InfractionResult{CaseID: 9, Type: model.InfractionTypePardon}, nil
			}

			w, _ := do(http.MethodPost, guildPath+"/infractions/pardons", map[string]any{
				"user_id": "3300", "moderator_id": "2200", "case_id": 4,
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(got.CaseID).To(Equal(int64(4)))
		})
	})

	Describe("case updates", func() {
		It("returns 409 on a domain violation", func() {
			svc.pardonFn = func(context.Context, domain.PardonInfraction) (*service.InfractionResult, error) {
				return nil, &service.ModerationError{Kind: service.KindDomainRuleViolation, Message: "This infraction has already been pardoned."}
			}

			w, resp := do(http.MethodPatch, guildPath+"/infractions/12/pardon", map[string]any{"moderator_id": "2200"})

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(resp["kind"]).To(Equal("domain_rule_violation"))
		})

		It("requires the hidden flag", func() {
			w, _ := do(http.MethodPatch, guildPath+"/infractions/12/hidden", map[string]any{"moderator_id": "2200"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("hides a case", func() {
			var got domain.HideInfraction
			svc.hideFn = func(_ context.Context, cmd domain.HideInfraction) (*service.InfractionResult, error) {
				got = cmd
				return &service.InfractionResult{CaseID: cmd.CaseID, Type: model.InfractionTypeWarning}, nil
			}

			w, _ := do(http.MethodPatch, guildPath+"/infractions/12/hidden", map[string]any{"moderator_id": "2200", "hidden": false})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(got.CaseID).To(Equal(int64(12)))
			Expect(got.Hidden).To(BeFalse())
		})

		It("clears the expiration when expires_at is null", func() {
			called := false
			svc.updateExpirationFn = func(_ context.Context, cmd domain.UpdateInfractionExpiration) (*service.InfractionResult, error) {
				called = true
				Expect(cmd.ExpiresAt).To(BeNil())
				return &service.InfractionResult{CaseID: cmd.CaseID, Type: model.InfractionTypeBan}, nil
			}

			w, _ := do(http.MethodPatch, guildPath+"/infractions/12/expiration", map[string]any{"moderator_id": "2200", "expires_at": nil})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(called).To(BeTrue())
		})

		It("rejects a non-numeric case id", func() {
			w, resp := do(http.MethodPatch, guildPath+"/infractions/latest/pardon", map[string]any{"moderator_id": "2200"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(resp["error"]).To(Equal("invalid case_id"))
		})
	})

	Describe("queries", func() {
		It("returns 404 for a missing case", func() {
			svc.getFn = func(context.Context, snowflake.ID, int64) (*model.InfractionSnapshot, error) {
				return nil, &service.ModerationError{Kind: service.KindDependencyNotFound, Message: "Case #5 does not exist in this server."}
			}

			w, resp := do(http.MethodGet, guildPath+"/infractions/5", nil)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(resp["error"]).To(Equal("Case #5 does not exist in this server."))
		})

		It("renders a case", func() {
			svc.getFn = func(_ context.Context, guildID snowflake.ID, caseID int64) (*model.InfractionSnapshot, error) {
				return &model.InfractionSnapshot{
					CaseID:  caseID,
					Type:    model.InfractionTypeMute,
					GuildID: guildID,
					Status:  model.StatusHidden,
					Reason:  "flood",
				}, nil
			}

			w, resp := do(http.MethodGet, guildPath+"/infractions/5", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(resp["hidden"]).To(BeTrue())
			Expect(resp["pardoned"]).To(BeFalse())
			Expect(resp["guild_id"]).To(Equal("1100"))
		})

		It("lists a member's history with the requested limit", func() {
			var gotLimit int32
			svc.listFn = func(_ context.Context, _, userID snowflake.ID, limit int32) ([]model.InfractionSnapshot, error) {
				gotLimit = limit
				return []model.InfractionSnapshot{
					{CaseID: 2, UserID: userID, Type: model.InfractionTypeBan},
					{CaseID: 1, UserID: userID, Type: model.InfractionTypeWarning},
				}, nil
			}

			w, resp := do(http.MethodGet, guildPath+"/users/3300/infractions?limit=10", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotLimit).To(Equal(int32(10)))
			Expect(resp["infractions"]).To(HaveLen(2))
		})

		It("rejects a bad limit", func() {
			w, _ := do(http.MethodGet, guildPath+"/users/3300/infractions?limit=-1", nil)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
