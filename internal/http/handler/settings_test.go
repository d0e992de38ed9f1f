package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"beryllium.app/bot/internal/domain"
	"beryllium.app/bot/internal/http/handler"
	"beryllium.app/bot/internal/http/router"
	"beryllium.app/bot/internal/model"
	"beryllium.app/bot/internal/service"
	"github.com/disgoorg/snowflake/v2"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SettingsHandler", func() {
	var (
		engine *gin.Engine
		svc    *mockGuildSettingsService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		engine = gin.New()
		svc = &mockGuildSettingsService{}
		router.SettingsRouter(engine.Group("/guilds/:guild_id/settings"), handler.NewSettingsHandler(svc))
	})

	serve := func(method string, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/guilds/1100/settings", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	It("returns 404 for an unregistered guild", func() {
		svc.getFn = func(context.Context, snowflake.ID) (*model.GuildSettings, error) {
			return nil, &service.ModerationError{Kind: service.KindDependencyNotFound, Message: "This server has not been set up yet."}
		}

		Expect(serve(http.MethodGet, "").Code).To(Equal(http.StatusNotFound))
	})

	It("registers a guild", func() {
		svc.registerFn = func(_ context.Context, guildID snowflake.ID) (*model.GuildSettings, error) {
			return &model.GuildSettings{GuildID: guildID}, nil
		}

		w := serve(http.MethodPost, "")

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["guild_id"]).To(Equal("1100"))
		Expect(resp["log_channel_id"]).To(BeNil())
	})

	It("sets the log channel", func() {
		var got domain.SetLogChannel
		svc.setLogChannelFn = func(_ context.Context, cmd domain.SetLogChannel) (*model.GuildSettings, error) {
			got = cmd
			return &model.GuildSettings{GuildID: cmd.GuildID, LogChannelID: cmd.ChannelID}, nil
		}

		w := serve(http.MethodPut, `{"channel_id":"9000"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(got.GuildID).To(Equal(snowflake.ID(1100)))
		Expect(*got.ChannelID).To(Equal(snowflake.ID(9000)))
		Expect(w.Body.String()).To(ContainSubstring(`"log_channel_id":"9000"`))
	})

	It("clears the log channel", func() {
		var got domain.SetLogChannel
		svc.setLogChannelFn = func(_ context.Context, cmd domain.SetLogChannel) (*model.GuildSettings, error) {
			got = cmd
			return &model.GuildSettings{GuildID: cmd.GuildID}, nil
		}

		Expect(serve(http.MethodPut, `{"channel_id":null}`).Code).To(Equal(http.StatusOK))
		Expect(got.ChannelID).To(BeNil())
	})

	It("rejects malformed bodies", func() {
		Expect(serve(http.MethodPut, `{"channel_id":`).Code).To(Equal(http.StatusBadRequest))
	})
})
