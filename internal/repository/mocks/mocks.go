package mocks

import (
	"context"

	"github.com/ganot/pomodoom/internal/domain/session"
	"github.com/ganot/pomodoom/internal/domain/settings"
	"github.com/ganot/pomodoom/internal/repository"
	"github.com/stretchr/testify/mock"
)

// SettingsRepository is a mock for settings.Repository.
type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) Load(ctx context.Context) (*settings.Settings, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*settings.Settings); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SettingsRepository) Save(ctx context.Context, s *settings.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// FlagRepository is a mock for onboarding.Repository.
type FlagRepository struct {
	mock.Mock
}

func (m *FlagRepository) Get(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *FlagRepository) Set(ctx context.Context, key string, value bool) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *FlagRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// SessionRepository is a mock for focus.Archive.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Append(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *SessionRepository) List(ctx context.Context, opts repository.ListSessionsOptions) ([]session.Session, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]session.Session); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// SearchRepository is a mock for focus.Searcher.
type SearchRepository struct {
	mock.Mock
}

func (m *SearchRepository) Search(ctx context.Context, query string, opts repository.SearchOptions) ([]session.Match, error) {
	args := m.Called(ctx, query, opts)
	if matches, ok := args.Get(0).([]session.Match); ok {
		return matches, args.Error(1)
	}
	return nil, args.Error(1)
}
