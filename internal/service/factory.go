package service

import (
	"beryllium.app/bot/internal/events"
	"beryllium.app/bot/internal/platform"
	"beryllium.app/bot/internal/store"
)

type Services struct {
	stores    *store.Stores
	txRunner  TxRunner
	publisher events.Publisher
	notifier  MemberNotifier
	client    platform.Client
}

func NewServices(stores *store.Stores, txRunner TxRunner, publisher events.Publisher, notifier MemberNotifier, client platform.Client) *Services {
	return &Services{
		stores:    stores,
		txRunner:  txRunner,
		publisher: publisher,
		notifier:  notifier,
		client:    client,
	}
}

func (s *Services) Moderation() ModerationService {
	return NewModerationService(s.stores.Infractions(), s.txRunner, s.publisher, s.notifier, s.client)
}

func (s *Services) GuildSettings() GuildSettingsService {
	return NewGuildSettingsService(s.stores.GuildSettings(), s.txRunner)
}
