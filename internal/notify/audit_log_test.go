package notify_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"beryllium.app/bot/common/id"
	"beryllium.app/bot/internal/events"
	"beryllium.app/bot/internal/model"
	"beryllium.app/bot/internal/notify"
	"beryllium.app/bot/internal/platform"
	"beryllium.app/bot/internal/store"
	"github.com/disgoorg/snowflake/v2"
)

var _ = Describe("AuditLog", func() {
	var (
		ctx        context.Context
		client     *mockPlatformClient
		settings   *mockSettingsReader
		subscriber *notify.AuditLog
		snapshot   model.InfractionSnapshot
		logChannel snowflake.ID
	)

	BeforeEach(func() {
		ctx = context.Background()
		Expect(id.Init(1)).To(Succeed())

		logChannel = snowflake.ID(555)
		client = &mockPlatformClient{}
		settings = &mockSettingsReader{
			getByGuildIDFn: func(_ context.Context, guildID snowflake.ID) (*model.GuildSettings, error) {
				return &model.GuildSettings{GuildID: guildID, LogChannelID: &logChannel}, nil
			},
		}
		subscriber = notify.NewAuditLog(settings, client)

		expires := time.Now().Add(7 * 24 * time.Hour)
		snapshot = model.InfractionSnapshot{
			CaseID:      42,
			Type:        model.InfractionTypeBan,
			GuildID:     100,
			UserID:      200,
			ModeratorID: 300,
			Reason:      "spam",
			ExpiresAt:   &expires,
			CreatedAt:   time.Now(),
		}
	})

	It("posts the case to the configured log channel", func() {
		err := subscriber.HandleEvent(ctx, events.InfractionCreated(snapshot))

		Expect(err).NotTo(HaveOccurred())
		Expect(client.posted).To(HaveLen(1))
		Expect(client.posted[0].channelID).To(Equal(logChannel))

		embed := client.posted[0].msg.Embeds[0]
		Expect(embed.Title).To(Equal("Case #42"))
		Expect(embed.Description).To(Equal("spam"))

		values := map[string]string{}
		for _, f := range embed.Fields {
			values[f.Name] = f.Value
		}
		Expect(values).To(HaveKeyWithValue("Moderator", "<@300>"))
		Expect(values).To(HaveKeyWithValue("Target", "<@200>"))
		Expect(values).To(HaveKeyWithValue("Type", "Ban"))
		Expect(values).To(HaveKeyWithValue("Automatic?", "No"))
		Expect(values).To(HaveKey("Expires"))
	})

	It("omits the expiry field for permanent infractions", func() {
		snapshot.ExpiresAt = nil
		Expect(subscriber.HandleEvent(ctx, events.InfractionCreated(snapshot))).To(Succeed())

		for _, f := range client.posted[0].msg.Embeds[0].Fields {
			Expect(f.Name).NotTo(Equal("Expires"))
		}
	})

	It("does nothing when no log channel is configured", func() {
		settings.getByGuildIDFn = func(_ context.Context, guildID snowflake.ID) (*model.GuildSettings, error) {
			return &model.GuildSettings{GuildID: guildID}, nil
		}

		Expect(subscriber.HandleEvent(ctx, events.InfractionCreated(snapshot))).To(Succeed())
		Expect(client.posted).To(BeEmpty())
	})

	It("reports a missing guild configuration", func() {
		settings.getByGuildIDFn = func(context.Context, snowflake.ID) (*model.GuildSettings, error) {
			return nil, store.ErrNotFound
		}

		err := subscriber.HandleEvent(ctx, events.InfractionCreated(snapshot))
		Expect(err).To(MatchError(notify.ErrGuildNotConfigured))
		Expect(client.posted).To(BeEmpty())
	})

	It("swallows an unreachable log channel", func() {
		client.postMessageFn = func(context.Context, snowflake.ID, platform.Message) error {
			return errors.New("missing access")
		}

		Expect(subscriber.HandleEvent(ctx, events.InfractionCreated(snapshot))).To(Succeed())
		Expect(client.posted).To(HaveLen(1))
	})

	It("accepts update events without posting", func() {
		Expect(subscriber.HandleEvent(ctx, events.InfractionUpdated(snapshot))).To(Succeed())
		Expect(client.posted).To(BeEmpty())
	})
})
