package service_test

import (
	"context"
	"sync"
	"time"

	"beryllium.app/bot/internal/domain"
	"beryllium.app/bot/internal/events"
	"beryllium.app/bot/internal/model"
	"beryllium.app/bot/internal/platform"
	"beryllium.app/bot/internal/service"
	"beryllium.app/bot/internal/store"
	"github.com/disgoorg/snowflake/v2"
)

type mockInfractionStore struct {
	getByCaseFn          func(ctx context.Context, guildID snowflake.ID, caseID int64) (*model.Infraction, error)
	getByCaseForUpdateFn func(ctx context.Context, guildID snowflake.ID, caseID int64) (*model.Infraction, error)
	createFn             func(ctx context.Context, infraction *model.Infraction) error
	updateFn             func(ctx context.Context, infraction *model.Infraction) error
	listByUserFn         func(ctx context.Context, guildID, userID snowflake.ID, limit int32) ([]*model.Infraction, error)

	created []*model.Infraction
	updated []*model.Infraction
}

func (m *mockInfractionStore) GetByCase(ctx context.Context, guildID snowflake.ID, caseID int64) (*model.Infraction, error) {
	if m.getByCaseFn != nil {
		return m.getByCaseFn(ctx, guildID, caseID)
	}
	return nil, store.ErrNotFound
}

func (m *mockInfractionStore) GetByCaseForUpdate(ctx context.Context, guildID snowflake.ID, caseID int64) (*model.Infraction, error) {
	if m.getByCaseForUpdateFn != nil {
		return m.getByCaseForUpdateFn(ctx, guildID, caseID)
	}
	return nil, store.ErrNotFound
}

func (m *mockInfractionStore) Create(ctx context.Context, infraction *model.Infraction) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, infraction); err != nil {
			return err
		}
	} else {
		infraction.AssignID(int64(len(m.created) + 1))
	}
	m.created = append(m.created, infraction)
	return nil
}

func (m *mockInfractionStore) Update(ctx context.Context, infraction *model.Infraction) error {
	if m.updateFn != nil {
		if err := m.updateFn(ctx, infraction); err != nil {
			return err
		}
	}
	m.updated = append(m.updated, infraction)
	return nil
}

func (m *mockInfractionStore) ListByUser(ctx context.Context, guildID, userID snowflake.ID, limit int32) ([]*model.Infraction, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, guildID, userID, limit)
	}
	return nil, nil
}

type mockGuildSettingsStore struct {
	getByGuildIDFn func(ctx context.Context, guildID snowflake.ID) (*model.GuildSettings, error)
	upsertFn       func(ctx context.Context, settings *model.GuildSettings) error
}

func (m *mockGuildSettingsStore) GetByGuildID(ctx context.Context, guildID snowflake.ID) (*model.GuildSettings, error) {
	if m.getByGuildIDFn != nil {
		return m.getByGuildIDFn(ctx, guildID)
	}
	return nil, store.ErrNotFound
}

func (m *mockGuildSettingsStore) Upsert(ctx context.Context, settings *model.GuildSettings) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, settings)
	}
	return nil
}

type mockStoreProvider struct {
	infractions store.InfractionStore
	settings    store.GuildSettingsStore
}

func (m *mockStoreProvider) Infractions() store.InfractionStore {
	return m.infractions
}

func (m *mockStoreProvider) GuildSettings() store.GuildSettingsStore {
	return m.settings
}

type mockTxRunner struct {
	stores service.StoreProvider
	calls  int
}

func (m *mockTxRunner) WithTx(_ context.Context, fn func(stores service.StoreProvider) error) error {
	m.calls++
	return fn(m.stores)
}

type mockPublisher struct {
	mu        sync.Mutex
	published []events.Event
}

func (m *mockPublisher) Publish(_ context.Context, ev events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, ev)
}

type mockNotifier struct {
	notifyFn func(ctx context.Context, cmd domain.NotifyUserOfInfraction) error
	calls    []domain.NotifyUserOfInfraction
}

func (m *mockNotifier) Notify(ctx context.Context, cmd domain.NotifyUserOfInfraction) error {
	m.calls = append(m.calls, cmd)
	if m.notifyFn != nil {
		return m.notifyFn(ctx, cmd)
	}
	return nil
}

type banCall struct {
	guildID, userID snowflake.ID
	deleteSeconds   *int
	reason          string
}

type memberCall struct {
	guildID, userID snowflake.ID
	until           *time.Time
	reason          string
}

type mockPlatformClient struct {
	mu sync.Mutex

	createBanFn     func(ctx context.Context, guildID, userID snowflake.ID, deleteMessageSeconds *int, reason string) error
	removeMemberFn  func(ctx context.Context, guildID, userID snowflake.ID, reason string) error
	timeoutMemberFn func(ctx context.Context, guildID, userID snowflake.ID, until *time.Time, reason string) error
	postMessageFn   func(ctx context.Context, channelID snowflake.ID, msg platform.Message) error

	bans        []banCall
	unbans      []memberCall
	removals    []memberCall
	timeouts    []memberCall
	dmChannels  []snowflake.ID
	posted      map[snowflake.ID][]platform.Message
	guildLookup int
}

func (m *mockPlatformClient) CreateBan(ctx context.Context, guildID, userID snowflake.ID, deleteMessageSeconds *int, reason string) error {
	m.mu.Lock()
	m.bans = append(m.bans, banCall{guildID: guildID, userID: userID, deleteSeconds: deleteMessageSeconds, reason: reason})
	m.mu.Unlock()
	if m.createBanFn != nil {
		return m.createBanFn(ctx, guildID, userID, deleteMessageSeconds, reason)
	}
	return nil
}

func (m *mockPlatformClient) RemoveBan(_ context.Context, guildID, userID snowflake.ID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unbans = append(m.unbans, memberCall{guildID: guildID, userID: userID, reason: reason})
	return nil
}

func (m *mockPlatformClient) RemoveMember(ctx context.Context, guildID, userID snowflake.ID, reason string) error {
	m.mu.Lock()
	m.removals = append(m.removals, memberCall{guildID: guildID, userID: userID, reason: reason})
	m.mu.Unlock()
	if m.removeMemberFn != nil {
		return m.removeMemberFn(ctx, guildID, userID, reason)
	}
	return nil
}

func (m *mockPlatformClient) TimeoutMember(ctx context.Context, guildID, userID snowflake.ID, until *time.Time, reason string) error {
	m.mu.Lock()
	m.timeouts = append(m.timeouts, memberCall{guildID: guildID, userID: userID, until: until, reason: reason})
	m.mu.Unlock()
	if m.timeoutMemberFn != nil {
		return m.timeoutMemberFn(ctx, guildID, userID, until, reason)
	}
	return nil
}

func (m *mockPlatformClient) CreateDirectChannel(_ context.Context, userID snowflake.ID) (platform.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dmChannels = append(m.dmChannels, userID)
	return platform.Channel{ID: userID + 1}, nil
}

func (m *mockPlatformClient) GetGuild(_ context.Context, guildID snowflake.ID) (platform.Guild, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guildLookup++
	return platform.Guild{ID: guildID, Name: "Test Guild"}, nil
}

func (m *mockPlatformClient) PostMessage(ctx context.Context, channelID snowflake.ID, msg platform.Message) error {
	m.mu.Lock()
	if m.posted == nil {
		m.posted = map[snowflake.ID][]platform.Message{}
	}
	m.posted[channelID] = append(m.posted[channelID], msg)
	m.mu.Unlock()
	if m.postMessageFn != nil {
		return m.postMessageFn(ctx, channelID, msg)
	}
	return nil
}

func (m *mockPlatformClient) platformCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bans) + len(m.unbans) + len(m.removals) + len(m.timeouts) + len(m.dmChannels) + m.guildLookup
}
