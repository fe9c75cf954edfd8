package server

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/lporras/gedeon/internal/app"
	"github.com/lporras/gedeon/internal/bible"
	"github.com/lporras/gedeon/internal/broadcast"
	"github.com/lporras/gedeon/internal/config"
	"github.com/lporras/gedeon/internal/domain"
)

// --- Mock implementations ---

type mockAppService struct {
	getScheduleFn          func(ctx context.Context, scheduleID uuid.UUID) (*domain.Schedule, error)
	listEntriesFn          func(ctx context.Context, scheduleID uuid.UUID) ([]app.EntrySummary, error)
	addEntryFn             func(ctx context.Context, scheduleID uuid.UUID, kind string, itemID uuid.UUID) (*app.EntrySummary, error)
	removeEntryFn          func(ctx context.Context, scheduleID, entryID uuid.UUID) error
	reorderFn              func(ctx context.Context, scheduleID uuid.UUID, orderedIDs []uuid.UUID) error
	presentEntryFn         func(ctx context.Context, scheduleID, entryID uuid.UUID) (any, error)
	navigateFn             func(ctx context.Context, scheduleID uuid.UUID, slideIndex int) (*domain.NavigateCommand, error)
	blackScreenFn          func(ctx context.Context, scheduleID uuid.UUID) *domain.BlackCommand
	presenterStateFn       func(scheduleID uuid.UUID) (domain.PresentationState, bool)
	searchSongsFn          func(ctx context.Context, query string) ([]domain.Song, error)
	searchScripturesFn     func(ctx context.Context, query string) ([]domain.Scripture, error)
	bibleBooksFn           func(version string) ([]string, error)
	bibleChaptersFn        func(version, bookTitle string) ([]int, error)
	bibleVersesFn          func(version, bookTitle string, chapterNum int) ([]bible.Verse, error)
	createScriptureEntryFn func(ctx context.Context, scheduleID uuid.UUID, version, bookTitle string, chapterNum int, verseNums []int) (*app.EntrySummary, error)
}

func (m *mockAppService) GetSchedule(ctx context.Context, scheduleID uuid.UUID) (*domain.Schedule, error) {
	if m.getScheduleFn != nil {
		return m.getScheduleFn(ctx, scheduleID)
	}
	return &domain.Schedule{ID: scheduleID}, nil
}

func (m *mockAppService) ListEntries(ctx context.Context, scheduleID uuid.UUID) ([]app.EntrySummary, error) {
	if m.listEntriesFn != nil {
		return m.listEntriesFn(ctx, scheduleID)
	}
	return []app.EntrySummary{}, nil
}

func (m *mockAppService) AddEntry(ctx context.Context, scheduleID uuid.UUID, kind string, itemID uuid.UUID) (*app.EntrySummary, error) {
	if m.addEntryFn != nil {
		return m.addEntryFn(ctx, scheduleID, kind, itemID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) RemoveEntry(ctx context.Context, scheduleID, entryID uuid.UUID) error {
	if m.removeEntryFn != nil {
		return m.removeEntryFn(ctx, scheduleID, entryID)
	}
	return nil
}

func (m *mockAppService) Reorder(ctx context.Context, scheduleID uuid.UUID, orderedIDs []uuid.UUID) error {
	if m.reorderFn != nil {
		return m.reorderFn(ctx, scheduleID, orderedIDs)
	}
	return nil
}

func (m *mockAppService) PresentEntry(ctx context.Context, scheduleID, entryID uuid.UUID) (any, error) {
	if m.presentEntryFn != nil {
		return m.presentEntryFn(ctx, scheduleID, entryID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) Navigate(ctx context.Context, scheduleID uuid.UUID, slideIndex int) (*domain.NavigateCommand, error) {
	if m.navigateFn != nil {
		return m.navigateFn(ctx, scheduleID, slideIndex)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) BlackScreen(ctx context.Context, scheduleID uuid.UUID) *domain.BlackCommand {
	if m.blackScreenFn != nil {
		return m.blackScreenFn(ctx, scheduleID)
	}
	return &domain.BlackCommand{Action: domain.ActionBlack}
}

func (m *mockAppService) PresenterState(scheduleID uuid.UUID) (domain.PresentationState, bool) {
	if m.presenterStateFn != nil {
		return m.presenterStateFn(scheduleID)
	}
	return domain.PresentationState{}, false
}

func (m *mockAppService) SearchSongs(ctx context.Context, query string) ([]domain.Song, error) {
	if m.searchSongsFn != nil {
		return m.searchSongsFn(ctx, query)
	}
	return []domain.Song{}, nil
}

func (m *mockAppService) SearchScriptures(ctx context.Context, query string) ([]domain.Scripture, error) {
	if m.searchScripturesFn != nil {
		return m.searchScripturesFn(ctx, query)
	}
	return []domain.Scripture{}, nil
}

func (m *mockAppService) BibleBooks(version string) ([]string, error) {
	if m.bibleBooksFn != nil {
		return m.bibleBooksFn(version)
	}
	return []string{}, nil
}

func (m *mockAppService) BibleChapters(version, bookTitle string) ([]int, error) {
	if m.bibleChaptersFn != nil {
		return m.bibleChaptersFn(version, bookTitle)
	}
	return []int{}, nil
}

func (m *mockAppService) BibleVerses(version, bookTitle string, chapterNum int) ([]bible.Verse, error) {
	if m.bibleVersesFn != nil {
		return m.bibleVersesFn(version, bookTitle, chapterNum)
	}
	return []bible.Verse{}, nil
}

func (m *mockAppService) CreateScriptureEntry(ctx context.Context, scheduleID uuid.UUID, version, bookTitle string, chapterNum int, verseNums []int) (*app.EntrySummary, error) {
	if m.createScriptureEntryFn != nil {
		return m.createScriptureEntryFn(ctx, scheduleID, version, bookTitle, chapterNum, verseNums)
	}
	return nil, errors.New("not implemented")
}

// --- Test helpers ---

// newTestServer builds a Server with all routes and middleware registered, so
// requests exercise the same error rendering production sees.
func newTestServer(t *testing.T, svc appService) *Server {
	t.Helper()

	hub := broadcast.NewHub(clockwork.NewRealClock(), 10, nil, nil)
	t.Cleanup(hub.Stop)

	srv := NewServer(&config.Config{Port: "0"}, svc, hub, nil)
	return srv
}
