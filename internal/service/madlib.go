package service

import (
	"context"
	"fmt"

	"github.com/tannerdj/wokelens/internal/domain"
	"github.com/tannerdj/wokelens/internal/repository"
)

// MadLibService assembles the fixed narrative shown after a successful
// analysis: the stored description interpolated into template text alongside
// one random row per trivia category.
type MadLibService struct {
	trivia *repository.TriviaRepository
}

// NewMadLibService creates a new MadLibService.
func NewMadLibService(trivia *repository.TriviaRepository) *MadLibService {
	return &MadLibService{trivia: trivia}
}

// RandomMadLib returns one random row per reference category.
func (s *MadLibService) RandomMadLib(ctx context.Context) (*domain.MadLib, error) {
	return s.trivia.RandomMadLib(ctx)
}

// narrativeTemplate is the fixed mad-lib text. Placeholders are filled with
// the photo description and the trivia picks, in template order.
const narrativeTemplate = `%s

To do the work, start by listening to %q by %s (%d). Then watch %q (%d, rated %s) and follow it with every episode of %q on %s. Read %q by %s — all %d pages — and balance it with %q by %s. Subscribe to %q from %s, make a pilgrimage to the %s (%s, completed %d), and finally sit with %q by %s until it speaks to you.`

// RenderNarrative interpolates the description and trivia picks into the
// fixed template text.
func RenderNarrative(description string, m *domain.MadLib) string {
	return fmt.Sprintf(narrativeTemplate,
		description,
		m.Music.Title, m.Music.Artist, m.Music.Year,
		m.Film.Title, m.Film.Year, m.Film.MPAARating,
		m.TVShow.Title, m.TVShow.Network,
		m.Fiction.Title, m.Fiction.Author, m.Fiction.PageCount,
		m.NonFiction.Title, m.NonFiction.Author,
		m.Podcast.Title, m.Podcast.PodcastNetwork,
		m.Architecture.Title, m.Architecture.Architect, m.Architecture.YearCompleted,
		m.VisualArt.Title, m.VisualArt.Artist,
	)
}
