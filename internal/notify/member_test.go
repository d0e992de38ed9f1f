package notify_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"beryllium.app/bot/internal/domain"
	"beryllium.app/bot/internal/model"
	"beryllium.app/bot/internal/notify"
	"beryllium.app/bot/internal/platform"
	"beryllium.app/bot/internal/validation"
	"github.com/disgoorg/snowflake/v2"
)

var _ = Describe("MemberNotifier", func() {
	var (
		ctx      context.Context
		client   *mockPlatformClient
		notifier *notify.MemberNotifier
		snapshot model.InfractionSnapshot
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = &mockPlatformClient{}
		notifier = notify.NewMemberNotifier(client)
		snapshot = model.InfractionSnapshot{
			CaseID:      7,
			Type:        model.InfractionTypeBan,
			GuildID:     100,
			UserID:      200,
			ModeratorID: 300,
			Reason:      "spam",
		}
	})

	It("direct messages the member with the case details", func() {
		err := notifier.Notify(ctx, domain.NotifyUserOfInfraction{Infraction: snapshot})

		Expect(err).NotTo(HaveOccurred())
		Expect(client.posted).To(HaveLen(1))
		Expect(client.posted[0].channelID).To(Equal(snowflake.ID(201)))

		embed := client.posted[0].msg.Embeds[0]
		Expect(embed.Description).To(ContainSubstring("You have been **banned** from **Test Guild**!"))
		Expect(embed.Description).To(ContainSubstring("**Moderator**: <@300>"))
		Expect(embed.Description).To(ContainSubstring("**Reason**: spam"))
		Expect(embed.Description).To(ContainSubstring("This ban is permanent."))
		Expect(embed.Color).To(Equal(0x8B0000))
	})

	DescribeTable("frames each infraction type",
		func(kind model.InfractionType, headline, info string, color int) {
			snapshot.Type = kind
			Expect(notifier.Notify(ctx, domain.NotifyUserOfInfraction{Infraction: snapshot})).To(Succeed())

			embed := client.posted[0].msg.Embeds[0]
			Expect(embed.Description).To(ContainSubstring(headline))
			Expect(embed.Description).To(ContainSubstring(info))
			Expect(embed.Color).To(Equal(color))
		},
		Entry("warning", model.InfractionTypeWarning, "**warned** in", "Future warnings may entail further consequences.", 0xDAA520),
		Entry("kick", model.InfractionTypeKick, "**kicked** from", "N/A", 0x8B0000),
		Entry("unban", model.InfractionTypeUnban, "**unbanned** from", "N/A", 0x006400),
		Entry("pardon", model.InfractionTypePardon, "**pardoned** in", "N/A", 0x006400),
	)

	It("tells a temporarily banned member when they may return", func() {
		expires := time.Now().Add(48 * time.Hour)
		snapshot.ExpiresAt = &expires

		Expect(notifier.Notify(ctx, domain.NotifyUserOfInfraction{Infraction: snapshot})).To(Succeed())
		Expect(client.posted[0].msg.Embeds[0].Description).To(
			ContainSubstring(fmt.Sprintf("You may rejoin the server <t:%d:F>", expires.Unix())))
	})

	It("rejects an already expired infraction without contacting Discord", func() {
		expired := time.Now().Add(-time.Minute)
		snapshot.ExpiresAt = &expired

		err := notifier.Notify(ctx, domain.NotifyUserOfInfraction{Infraction: snapshot})

		var verr *validation.Error
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(client.posted).To(BeEmpty())
	})

	It("reports closed direct messages", func() {
		client.postMessageFn = func(context.Context, snowflake.ID, platform.Message) error {
			return platform.ErrDirectMessagesClosed
		}

		err := notifier.Notify(ctx, domain.NotifyUserOfInfraction{Infraction: snapshot})
		Expect(err).To(MatchError(platform.ErrDirectMessagesClosed))
	})

	It("reports a guild lookup failure before opening a channel", func() {
		opened := false
		client.getGuildFn = func(context.Context, snowflake.ID) (platform.Guild, error) {
			return platform.Guild{}, errors.New("discord unavailable")
		}
		client.createDirectChannelFn = func(_ context.Context, userID snowflake.ID) (platform.Channel, error) {
			opened = true
			return platform.Channel{ID: userID}, nil
		}

		Expect(notifier.Notify(ctx, domain.NotifyUserOfInfraction{Infraction: snapshot})).NotTo(Succeed())
		Expect(opened).To(BeFalse())
	})
})
