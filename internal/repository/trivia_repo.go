package repository

import (
	"context"
	"fmt"

	"github.com/tannerdj/wokelens/internal/domain"
	"gorm.io/gorm"
)

// TriviaRepository reads the static mad-lib reference tables. Rows are seeded
// once at startup; reads pick one random row per table.
type TriviaRepository struct {
	db *gorm.DB
}

// NewTriviaRepository creates a new TriviaRepository.
func NewTriviaRepository(db *gorm.DB) *TriviaRepository {
	return &TriviaRepository{db: db}
}

// Seed inserts the reference dataset when the tables are empty. Parsing the
// dataset happens at compile time, not per request.
func (r *TriviaRepository) Seed(ctx context.Context) error {
	if err := seedTable(r.db.WithContext(ctx), seedMusic); err != nil {
		return fmt.Errorf("failed to seed music trivia: %w", err)
	}
	if err := seedTable(r.db.WithContext(ctx), seedFilms); err != nil {
		return fmt.Errorf("failed to seed film trivia: %w", err)
	}
	if err := seedTable(r.db.WithContext(ctx), seedTVShows); err != nil {
		return fmt.Errorf("failed to seed tv trivia: %w", err)
	}
	if err := seedTable(r.db.WithContext(ctx), seedFiction); err != nil {
		return fmt.Errorf("failed to seed fiction trivia: %w", err)
	}
	if err := seedTable(r.db.WithContext(ctx), seedNonFiction); err != nil {
		return fmt.Errorf("failed to seed non-fiction trivia: %w", err)
	}
	if err := seedTable(r.db.WithContext(ctx), seedPodcasts); err != nil {
		return fmt.Errorf("failed to seed podcast trivia: %w", err)
	}
	if err := seedTable(r.db.WithContext(ctx), seedArchitecture); err != nil {
		return fmt.Errorf("failed to seed architecture trivia: %w", err)
	}
	if err := seedTable(r.db.WithContext(ctx), seedVisualArt); err != nil {
		return fmt.Errorf("failed to seed visual art trivia: %w", err)
	}
	return nil
}

func seedTable[T any](db *gorm.DB, rows []T) error {
	var model T
	var count int64
	if err := db.Model(&model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&rows).Error
}

// RandomMadLib selects one random row from every reference category.
func (r *TriviaRepository) RandomMadLib(ctx context.Context) (*domain.MadLib, error) {
	var madlib domain.MadLib
	db := r.db.WithContext(ctx)

	if err := randomRow(db, &madlib.Music); err != nil {
		return nil, err
	}
	if err := randomRow(db, &madlib.Film); err != nil {
		return nil, err
	}
	if err := randomRow(db, &madlib.TVShow); err != nil {
		return nil, err
	}
	if err := randomRow(db, &madlib.Fiction); err != nil {
		return nil, err
	}
	if err := randomRow(db, &madlib.NonFiction); err != nil {
		return nil, err
	}
	if err := randomRow(db, &madlib.Podcast); err != nil {
		return nil, err
	}
	if err := randomRow(db, &madlib.Architecture); err != nil {
		return nil, err
	}
	if err := randomRow(db, &madlib.VisualArt); err != nil {
		return nil, err
	}

	return &madlib, nil
}

// randomRow picks one row at random. RANDOM() is understood by both SQLite
// and PostgreSQL. An empty table is an error; the dataset is seeded at
// startup, so an empty table means startup was skipped.
func randomRow(db *gorm.DB, dest interface{}) error {
	if err := db.Order("RANDOM()").First(dest).Error; err != nil {
		return fmt.Errorf("failed to pick trivia row: %w", err)
	}
	return nil
}
