package domain

// Static reference tables backing the mad-lib narrative. Rows are seeded once
// at startup and only ever read back one random row at a time.

// MusicEntry is an album row in the music reference table.
type MusicEntry struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	Title         string `gorm:"type:text;not null" json:"title"`
	Artist        string `gorm:"type:text;not null" json:"artist"`
	Year          int    `json:"year"`
	Runtime       string `gorm:"type:text" json:"runtime"`
	WikipediaLink string `gorm:"type:text" json:"wikipedia_link"`
}

func (MusicEntry) TableName() string { return "trivia_music" }

// FilmEntry is a film row in the film reference table.
type FilmEntry struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	Title         string `gorm:"type:text;not null" json:"title"`
	Year          int    `json:"year"`
	MPAARating    string `gorm:"column:mpaa_rating;type:text" json:"mpaa_rating"`
	Runtime       string `gorm:"type:text" json:"runtime"`
	WikipediaLink string `gorm:"type:text" json:"wikipedia_link"`
}

func (FilmEntry) TableName() string { return "trivia_films" }

// TVShowEntry is a television row in the TV reference table.
type TVShowEntry struct {
	ID               uint   `gorm:"primaryKey" json:"-"`
	Title            string `gorm:"type:text;not null" json:"title"`
	Network          string `gorm:"type:text" json:"network"`
	InitialYearAired int    `json:"initial_year_aired"`
	Genre            string `gorm:"type:text" json:"genre"`
	WikipediaLink    string `gorm:"type:text" json:"wikipedia_link"`
}

func (TVShowEntry) TableName() string { return "trivia_tv_shows" }

// FictionEntry is a novel row in the fiction reference table.
type FictionEntry struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	Title         string `gorm:"type:text;not null" json:"title"`
	Author        string `gorm:"type:text" json:"author"`
	YearReleased  int    `json:"year_released"`
	PageCount     int    `json:"page_count"`
	WikipediaLink string `gorm:"type:text" json:"wikipedia_link"`
}

func (FictionEntry) TableName() string { return "trivia_fiction" }

// NonFictionEntry is a non-fiction row in the reference table.
type NonFictionEntry struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	Title         string `gorm:"type:text;not null" json:"title"`
	Author        string `gorm:"type:text" json:"author"`
	YearReleased  int    `json:"year_released"`
	PageCount     int    `json:"page_count"`
	WikipediaLink string `gorm:"type:text" json:"wikipedia_link"`
}

func (NonFictionEntry) TableName() string { return "trivia_non_fiction" }

// PodcastEntry is a podcast row in the reference table.
type PodcastEntry struct {
	ID                    uint   `gorm:"primaryKey" json:"-"`
	Title                 string `gorm:"type:text;not null" json:"title"`
	PodcastNetwork        string `gorm:"type:text" json:"podcast_network"`
	YearInitiallyReleased int    `json:"year_initially_released"`
	Genre                 string `gorm:"type:text" json:"genre"`
	PodcastLink           string `gorm:"type:text" json:"podcast_link"`
}

func (PodcastEntry) TableName() string { return "trivia_podcasts" }

// ArchitectureEntry is a building row in the reference table.
type ArchitectureEntry struct {
	ID               uint   `gorm:"primaryKey" json:"-"`
	Title            string `gorm:"type:text;not null" json:"title"`
	Architect        string `gorm:"type:text" json:"architect"`
	YearCompleted    int    `json:"year_completed"`
	ConstructionCost string `gorm:"type:text" json:"construction_cost"`
	WikipediaLink    string `gorm:"type:text" json:"wikipedia_link"`
}

func (ArchitectureEntry) TableName() string { return "trivia_architecture" }

// VisualArtEntry is an artwork row in the reference table.
type VisualArtEntry struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	Title         string `gorm:"type:text;not null" json:"title"`
	Artist        string `gorm:"type:text" json:"artist"`
	YearCompleted int    `json:"year_completed"`
	Genre         string `gorm:"type:text" json:"genre"`
	WikipediaLink string `gorm:"type:text" json:"wikipedia_link"`
}

func (VisualArtEntry) TableName() string { return "trivia_visual_art" }

// MadLib holds one randomly selected row per reference category.
type MadLib struct {
	Music        MusicEntry        `json:"music"`
	Film         FilmEntry         `json:"film"`
	TVShow       TVShowEntry       `json:"tv_show"`
	Fiction      FictionEntry      `json:"fiction"`
	NonFiction   NonFictionEntry   `json:"non_fiction"`
	Podcast      PodcastEntry      `json:"podcast"`
	Architecture ArchitectureEntry `json:"architecture"`
	VisualArt    VisualArtEntry    `json:"visual_art"`
}
