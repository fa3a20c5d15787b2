package repository

import "github.com/tannerdj/wokelens/internal/domain"

// Reference rows for the mad-lib narrative. One table per category; random
// single-row selection at read time is the only access pattern.

var seedMusic = []domain.MusicEntry{
	{Title: "The Book of Mormon: Original Broadway Cast Recording", Artist: "Original Broadway Cast", Year: 2011, Runtime: "1:04:00", WikipediaLink: "https://en.wikipedia.org/wiki/The_Book_of_Mormon_(musical)"},
	{Title: "Come, Come, Ye Saints", Artist: "The Tabernacle Choir", Year: 1997, Runtime: "3:45", WikipediaLink: "https://en.wikipedia.org/wiki/Come,_Come,_Ye_Saints"},
	{Title: "Hie to Kolob", Artist: "The Tabernacle Choir", Year: 2003, Runtime: "4:12", WikipediaLink: "https://en.wikipedia.org/wiki/If_You_Could_Hie_to_Kolob"},
	{Title: "The Spirit of God", Artist: "The Tabernacle Choir", Year: 1987, Runtime: "3:30", WikipediaLink: "https://en.wikipedia.org/wiki/The_Spirit_of_God_(hymn)"},
	{Title: "Popcorn Popping", Artist: "Primary Children's Chorus", Year: 1989, Runtime: "1:05", WikipediaLink: "https://en.wikipedia.org/wiki/Children%27s_Songbook"},
}

var seedFilms = []domain.FilmEntry{
	{Title: "Napoleon Dynamite", Year: 2004, MPAARating: "PG", Runtime: "1:36", WikipediaLink: "https://en.wikipedia.org/wiki/Napoleon_Dynamite"},
	{Title: "The Other Side of Heaven", Year: 2001, MPAARating: "PG", Runtime: "1:53", WikipediaLink: "https://en.wikipedia.org/wiki/The_Other_Side_of_Heaven"},
	{Title: "The Best Two Years", Year: 2004, MPAARating: "PG", Runtime: "1:52", WikipediaLink: "https://en.wikipedia.org/wiki/The_Best_Two_Years"},
	{Title: "Saturday's Warrior", Year: 2016, MPAARating: "PG", Runtime: "1:58", WikipediaLink: "https://en.wikipedia.org/wiki/Saturday%27s_Warrior"},
	{Title: "Singles Ward", Year: 2002, MPAARating: "PG", Runtime: "1:42", WikipediaLink: "https://en.wikipedia.org/wiki/The_Singles_Ward"},
}

var seedTVShows = []domain.TVShowEntry{
	{Title: "Studio C", Network: "BYUtv", InitialYearAired: 2012, Genre: "Sketch comedy", WikipediaLink: "https://en.wikipedia.org/wiki/Studio_C"},
	{Title: "Granite Flats", Network: "BYUtv", InitialYearAired: 2013, Genre: "Drama", WikipediaLink: "https://en.wikipedia.org/wiki/Granite_Flats"},
	{Title: "Music and the Spoken Word", Network: "KSL", InitialYearAired: 1929, Genre: "Music", WikipediaLink: "https://en.wikipedia.org/wiki/Music_%26_the_Spoken_Word"},
	{Title: "Relative Race", Network: "BYUtv", InitialYearAired: 2016, Genre: "Reality", WikipediaLink: "https://en.wikipedia.org/wiki/Relative_Race"},
}

var seedFiction = []domain.FictionEntry{
	{Title: "The Work and the Glory", Author: "Gerald N. Lund", YearReleased: 1990, PageCount: 400, WikipediaLink: "https://en.wikipedia.org/wiki/The_Work_and_the_Glory"},
	{Title: "Charly", Author: "Jack Weyland", YearReleased: 1980, PageCount: 160, WikipediaLink: "https://en.wikipedia.org/wiki/Jack_Weyland"},
	{Title: "Tennis Shoes Among the Nephites", Author: "Chris Heimerdinger", YearReleased: 1989, PageCount: 217, WikipediaLink: "https://en.wikipedia.org/wiki/Chris_Heimerdinger"},
	{Title: "The Alliance", Author: "Gerald N. Lund", YearReleased: 1983, PageCount: 291, WikipediaLink: "https://en.wikipedia.org/wiki/Gerald_N._Lund"},
}

var seedNonFiction = []domain.NonFictionEntry{
	{Title: "Jesus the Christ", Author: "James E. Talmage", YearReleased: 1915, PageCount: 804, WikipediaLink: "https://en.wikipedia.org/wiki/Jesus_the_Christ_(book)"},
	{Title: "A Marvelous Work and a Wonder", Author: "LeGrand Richards", YearReleased: 1950, PageCount: 424, WikipediaLink: "https://en.wikipedia.org/wiki/A_Marvelous_Work_and_a_Wonder"},
	{Title: "Rough Stone Rolling", Author: "Richard Bushman", YearReleased: 2005, PageCount: 740, WikipediaLink: "https://en.wikipedia.org/wiki/Joseph_Smith:_Rough_Stone_Rolling"},
	{Title: "The Miracle of Forgiveness", Author: "Spencer W. Kimball", YearReleased: 1969, PageCount: 376, WikipediaLink: "https://en.wikipedia.org/wiki/The_Miracle_of_Forgiveness"},
}

var seedPodcasts = []domain.PodcastEntry{
	{Title: "Mormon Stories", PodcastNetwork: "Independent", YearInitiallyReleased: 2005, Genre: "Interview", PodcastLink: "https://www.mormonstories.org/"},
	{Title: "All In", PodcastNetwork: "LDS Living", YearInitiallyReleased: 2018, Genre: "Faith", PodcastLink: "https://www.ldsliving.com/podcasts/all-in"},
	{Title: "Sunday on Monday", PodcastNetwork: "Deseret Book", YearInitiallyReleased: 2019, Genre: "Scripture study", PodcastLink: "https://www.ldsliving.com/podcasts/sunday-on-monday"},
	{Title: "Follow Him", PodcastNetwork: "Independent", YearInitiallyReleased: 2021, Genre: "Scripture study", PodcastLink: "https://followhim.co/"},
}

var seedArchitecture = []domain.ArchitectureEntry{
	{Title: "Salt Lake Temple", Architect: "Truman O. Angell", YearCompleted: 1893, ConstructionCost: "$3.5 million", WikipediaLink: "https://en.wikipedia.org/wiki/Salt_Lake_Temple"},
	{Title: "Provo City Center Temple", Architect: "FFKR Architects", YearCompleted: 2016, ConstructionCost: "Undisclosed", WikipediaLink: "https://en.wikipedia.org/wiki/Provo_City_Center_Temple"},
	{Title: "Conference Center", Architect: "ZGF Partnership", YearCompleted: 2000, ConstructionCost: "$240 million", WikipediaLink: "https://en.wikipedia.org/wiki/Conference_Center_(LDS_Church)"},
	{Title: "Kirtland Temple", Architect: "Joseph Smith", YearCompleted: 1836, ConstructionCost: "$40,000", WikipediaLink: "https://en.wikipedia.org/wiki/Kirtland_Temple"},
}

var seedVisualArt = []domain.VisualArtEntry{
	{Title: "Christus", Artist: "Bertel Thorvaldsen", YearCompleted: 1838, Genre: "Sculpture", WikipediaLink: "https://en.wikipedia.org/wiki/Christus_(statue)"},
	{Title: "First Vision", Artist: "Del Parson", YearCompleted: 1987, Genre: "Oil painting", WikipediaLink: "https://en.wikipedia.org/wiki/Del_Parson"},
	{Title: "Tree of Life", Artist: "Kazuto Uota", YearCompleted: 2003, Genre: "Mural", WikipediaLink: "https://en.wikipedia.org/wiki/Tree_of_life_vision"},
	{Title: "Handcart Pioneers", Artist: "Torleif S. Knaphus", YearCompleted: 1926, Genre: "Sculpture", WikipediaLink: "https://en.wikipedia.org/wiki/Torleif_S._Knaphus"},
}
