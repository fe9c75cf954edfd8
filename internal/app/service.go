package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/lporras/gedeon/internal/bible"
	"github.com/lporras/gedeon/internal/domain"
	"github.com/lporras/gedeon/internal/metrics"
	"github.com/lporras/gedeon/internal/presenter"
	"github.com/lporras/gedeon/internal/slides"
)

const searchLimit = 20

// EntrySummary is the resolved view of a schedule entry returned to the
// control UI: the entry plus its item's display title and content.
type EntrySummary struct {
	ID       uuid.UUID       `json:"id"`
	Kind     domain.ItemKind `json:"item_kind"`
	ItemID   uuid.UUID       `json:"item_id"`
	Position int             `json:"position"`
	Title    string          `json:"title"`
	Content  string          `json:"content,omitempty"`
	ImageURL string          `json:"image_url,omitempty"`
}

// Service is the control plane: it owns entry ordering and is the sole
// mutator of presentation state. Every presentation command follows
// broadcast-after-commit: the state store is updated first, then the command
// is published fire-and-forget.
type Service struct {
	schedules   domain.ScheduleRepository
	songs       domain.SongRepository
	scriptures  domain.ScriptureRepository
	images      domain.ImageRepository
	states      *presenter.Store
	broadcaster domain.Broadcaster
	bibles      *bible.Loader
}

func NewService(
	schedules domain.ScheduleRepository,
	songs domain.SongRepository,
	scriptures domain.ScriptureRepository,
	images domain.ImageRepository,
	states *presenter.Store,
	broadcaster domain.Broadcaster,
	bibles *bible.Loader,
) *Service {
	return &Service{
		schedules:   schedules,
		songs:       songs,
		scriptures:  scriptures,
		images:      images,
		states:      states,
		broadcaster: broadcaster,
		bibles:      bibles,
	}
}

// resolve loads the presentable content behind an item reference. The switch
// is the single place the polymorphic kind is dispatched; adding a kind means
// the compiler-visible default below fails loudly rather than silently.
func (s *Service) resolve(ctx context.Context, kind domain.ItemKind, itemID uuid.UUID) (domain.Presentable, error) {
	switch kind {
	case domain.KindSong:
		song, err := s.songs.GetSong(ctx, itemID)
		if err != nil {
			return domain.Presentable{}, err
		}
		return domain.Presentable{Kind: kind, Title: song.Title, Body: song.Content}, nil
	case domain.KindScripture:
		scripture, err := s.scriptures.GetScripture(ctx, itemID)
		if err != nil {
			return domain.Presentable{}, err
		}
		return domain.Presentable{Kind: kind, Title: scripture.Reference(), Body: scripture.Content}, nil
	case domain.KindImage:
		img, err := s.images.GetImage(ctx, itemID)
		if err != nil {
			return domain.Presentable{}, err
		}
		return domain.Presentable{Kind: kind, Title: img.Title, ImageURL: img.URL}, nil
	default:
		return domain.Presentable{}, fmt.Errorf("%w: %q", domain.ErrUnknownItemKind, kind)
	}
}

func summarize(entry *domain.Entry, item domain.Presentable) *EntrySummary {
	return &EntrySummary{
		ID:       entry.ID,
		Kind:     entry.Kind,
		ItemID:   entry.ItemID,
		Position: entry.Position,
		Title:    item.Title,
		Content:  item.Body,
		ImageURL: item.ImageURL,
	}
}

// GetSchedule returns the schedule, or domain.ErrScheduleNotFound.
func (s *Service) GetSchedule(ctx context.Context, scheduleID uuid.UUID) (*domain.Schedule, error) {
	return s.schedules.GetSchedule(ctx, scheduleID)
}

// ListEntries returns the schedule's entries in presentation order with
// resolved titles and content.
func (s *Service) ListEntries(ctx context.Context, scheduleID uuid.UUID) ([]EntrySummary, error) {
	if _, err := s.schedules.GetSchedule(ctx, scheduleID); err != nil {
		return nil, err
	}

	entries, err := s.schedules.ListEntries(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	summaries := make([]EntrySummary, 0, len(entries))
	for i := range entries {
		item, err := s.resolve(ctx, entries[i].Kind, entries[i].ItemID)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", entries[i].ID, err)
		}
		summaries = append(summaries, *summarize(&entries[i], item))
	}
	return summaries, nil
}

// AddEntry appends an item to the schedule. The item is resolved before
// anything is written, so a dangling reference can never be created.
func (s *Service) AddEntry(ctx context.Context, scheduleID uuid.UUID, kindStr string, itemID uuid.UUID) (*EntrySummary, error) {
	kind, err := domain.ParseItemKind(kindStr)
	if err != nil {
		return nil, err
	}

	item, err := s.resolve(ctx, kind, itemID)
	if err != nil {
		return nil, err
	}

	entry, err := s.schedules.AddEntry(ctx, scheduleID, kind, itemID)
	if err != nil {
		return nil, err
	}
	return summarize(entry, item), nil
}

// RemoveEntry deletes an entry; an ephemeral scripture item goes with it.
func (s *Service) RemoveEntry(ctx context.Context, scheduleID, entryID uuid.UUID) error {
	return s.schedules.RemoveEntry(ctx, scheduleID, entryID)
}

// Reorder rewrites the positions of the given entries, atomically.
func (s *Service) Reorder(ctx context.Context, scheduleID uuid.UUID, orderedIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateReorder, id)
		}
		seen[id] = struct{}{}
	}
	return s.schedules.Reorder(ctx, scheduleID, orderedIDs)
}

// PresentEntry makes the entry live: it resolves the content, commits the new
// presentation state, broadcasts the command, and returns the payload that
// was put on the wire.
func (s *Service) PresentEntry(ctx context.Context, scheduleID, entryID uuid.UUID) (any, error) {
	entry, err := s.schedules.GetEntry(ctx, scheduleID, entryID)
	if err != nil {
		return nil, err
	}

	item, err := s.resolve(ctx, entry.Kind, entry.ItemID)
	if err != nil {
		return nil, err
	}

	var payload any
	var chunkCount int
	if item.IsImage() {
		payload = domain.PresentImageCommand{
			Action:   domain.ActionPresentImage,
			ImageURL: item.ImageURL,
		}
	} else {
		verses := slides.Chunk(item.Body, slides.DefaultMaxLines)
		chunkCount = len(verses)
		payload = domain.PresentCommand{
			Action: domain.ActionPresent,
			Type:   string(item.Kind),
			Title:  item.Title,
			Verses: verses,
		}
	}

	s.states.Present(scheduleID, entryID, chunkCount)
	s.publish(ctx, scheduleID, payload)
	return payload, nil
}

// Navigate moves the live item to a zero-based slide index. Out-of-range
// indices are rejected before anything is broadcast. On the wire the index is
// shifted to the 1-based verse numbering displays use (0 is the title
// sub-slide).
func (s *Service) Navigate(ctx context.Context, scheduleID uuid.UUID, slideIndex int) (*domain.NavigateCommand, error) {
	state, err := s.states.NavigateTo(scheduleID, slideIndex)
	if err != nil {
		return nil, err
	}

	payload := &domain.NavigateCommand{
		Action:     domain.ActionNavigateTo,
		VerseIndex: state.SlideIndex + 1,
	}
	s.publish(ctx, scheduleID, payload)
	return payload, nil
}

// BlackScreen blanks every display on the schedule.
func (s *Service) BlackScreen(ctx context.Context, scheduleID uuid.UUID) *domain.BlackCommand {
	s.states.Black(scheduleID)

	payload := &domain.BlackCommand{Action: domain.ActionBlack}
	s.publish(ctx, scheduleID, payload)
	return payload
}

// PresenterState exposes the current state as a read model, for displays
// reconnecting mid-service.
func (s *Service) PresenterState(scheduleID uuid.UUID) (domain.PresentationState, bool) {
	return s.states.Snapshot(scheduleID)
}

// publish marshals and broadcasts a command. Broadcast is fire-and-forget:
// the state is already committed, so a publish failure is logged, never
// surfaced, and displays catch up on the next command.
func (s *Service) publish(ctx context.Context, scheduleID uuid.UUID, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal broadcast payload", "schedule_id", scheduleID.String(), "error", err)
		return
	}

	topic := domain.TopicFor(scheduleID)
	if err := s.broadcaster.Publish(ctx, topic, data); err != nil {
		slog.Warn("Failed to publish presentation command", "topic", topic, "error", err)
		return
	}

	action, _ := payloadAction(payload)
	metrics.BroadcastMessagesTotal.WithLabelValues(action).Inc()
}

func payloadAction(payload any) (string, bool) {
	switch p := payload.(type) {
	case domain.PresentCommand:
		return p.Action, true
	case domain.PresentImageCommand:
		return p.Action, true
	case *domain.NavigateCommand:
		return p.Action, true
	case *domain.BlackCommand:
		return p.Action, true
	default:
		return "unknown", false
	}
}

// SearchSongs finds catalog songs by title.
func (s *Service) SearchSongs(ctx context.Context, query string) ([]domain.Song, error) {
	return s.songs.SearchSongs(ctx, query, searchLimit)
}

// SearchScriptures finds stored passages by book or content.
func (s *Service) SearchScriptures(ctx context.Context, query string) ([]domain.Scripture, error) {
	return s.scriptures.SearchScriptures(ctx, query, searchLimit)
}

// BibleBooks lists book titles for a translation.
func (s *Service) BibleBooks(version string) ([]string, error) {
	b, err := s.bibles.Load(version)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(b.Books))
	for _, book := range b.Books {
		titles = append(titles, book.Title)
	}
	return titles, nil
}

// BibleChapters lists chapter numbers of a book.
func (s *Service) BibleChapters(version, bookTitle string) ([]int, error) {
	book, err := s.findBook(version, bookTitle)
	if err != nil {
		return nil, err
	}
	nums := make([]int, 0, len(book.Chapters))
	for _, ch := range book.Chapters {
		nums = append(nums, ch.Num)
	}
	return nums, nil
}

// BibleVerses lists the verses of one chapter.
func (s *Service) BibleVerses(version, bookTitle string, chapterNum int) ([]bible.Verse, error) {
	book, err := s.findBook(version, bookTitle)
	if err != nil {
		return nil, err
	}
	chapter := book.FindChapter(chapterNum)
	if chapter == nil {
		return nil, fmt.Errorf("chapter %d of %s: %w", chapterNum, bookTitle, domain.ErrScriptureNotFound)
	}
	return chapter.Verses, nil
}

func (s *Service) findBook(version, bookTitle string) (*bible.Book, error) {
	b, err := s.bibles.Load(version)
	if err != nil {
		return nil, err
	}
	book := b.FindBook(bookTitle)
	if book == nil {
		return nil, fmt.Errorf("book %s: %w", bookTitle, domain.ErrScriptureNotFound)
	}
	return book, nil
}

// CreateScriptureEntry builds an ephemeral scripture from selected verses and
// appends it to the schedule. The scripture is owned by the entry and dies
// with it.
func (s *Service) CreateScriptureEntry(ctx context.Context, scheduleID uuid.UUID, version, bookTitle string, chapterNum int, verseNums []int) (*EntrySummary, error) {
	if len(verseNums) == 0 {
		return nil, fmt.Errorf("%w: no verses selected", domain.ErrScriptureNotFound)
	}

	book, err := s.findBook(version, bookTitle)
	if err != nil {
		return nil, err
	}
	chapter := book.FindChapter(chapterNum)
	if chapter == nil {
		return nil, fmt.Errorf("chapter %d of %s: %w", chapterNum, bookTitle, domain.ErrScriptureNotFound)
	}

	nums := append([]int(nil), verseNums...)
	sort.Ints(nums)

	selected := make([]bible.Verse, 0, len(nums))
	want := make(map[int]struct{}, len(nums))
	for _, n := range nums {
		want[n] = struct{}{}
	}
	for _, v := range chapter.Verses {
		if _, ok := want[v.Num]; ok {
			selected = append(selected, v)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("verses %v of %s %d: %w", nums, bookTitle, chapterNum, domain.ErrScriptureNotFound)
	}

	from := nums[0]
	to := nums[len(nums)-1]
	if to == from {
		to = 0
	}
	if version == "" {
		version = bible.DefaultVersion
	}

	scripture, err := s.scriptures.CreateScripture(ctx, &domain.Scripture{
		BookID:       bookTitle,
		ChapterNum:   chapterNum,
		VerseFrom:    from,
		VerseTo:      to,
		BibleVersion: version,
		Content:      bible.PassageContent(selected),
	})
	if err != nil {
		return nil, err
	}

	entry, err := s.schedules.AddEntry(ctx, scheduleID, domain.KindScripture, scripture.ID)
	if err != nil {
		return nil, err
	}

	return summarize(entry, domain.Presentable{
		Kind:  domain.KindScripture,
		Title: scripture.Reference(),
		Body:  scripture.Content,
	}), nil
}
