package catalog

import "github.com/reelrent/reelrent/database"

// Built-in catalog data. This doubles as the seed for an empty store and as
// the read fallback when the store is unreachable, so browsing keeps working
// without a database.

func seedMovies() []database.Movie {
	return []database.Movie{
		{
			ID:               1,
			Title:            "Duna: Parte Dois",
			Overview:         "Paul Atreides se une a Chani e aos Fremen em uma guerra de vingança contra os conspiradores que destruíram sua família.",
			PosterPath:       "/8xV47NDrjdZDpkVcCFqkdHa3T0C.jpg",
			BackdropPath:     "/1pdfLvkbY9ohJlCjQH2CZjjYVvJ.jpg",
			ReleaseDate:      "2024-03-01",
			VoteAverage:      8.2,
			VoteCount:        3245,
			GenreIDs:         database.IntList{28, 12, 878},
			OriginalLanguage: "en",
			OriginalTitle:    "Dune: Part Two",
			Popularity:       8956.7,
		},
		{
			ID:               2,
			Title:            "Avatar: O Caminho da Água",
			Overview:         "Após formar uma família, Jake Sully e Ney'tiri fazem de tudo para ficarem juntos. No entanto, eles devem sair de casa e explorar as regiões de Pandora.",
			PosterPath:       "/t6HIqrRAclMCA60NsSmeqe9RmNV.jpg",
			BackdropPath:     "/s16H6tpK2utvwDtzZ8Qy4qm5Emw.jpg",
			ReleaseDate:      "2022-12-16",
			VoteAverage:      7.6,
			VoteCount:        8567,
			GenreIDs:         database.IntList{878, 12, 28},
			OriginalLanguage: "en",
			OriginalTitle:    "Avatar: The Way of Water",
			Popularity:       7432.1,
		},
		{
			ID:               3,
			Title:            "Spider-Man: Sem Volta para Casa",
			Overview:         "Peter Parker tem sua identidade secreta revelada e pede ajuda ao Doutor Estranho para tornar isso um segredo novamente.",
			PosterPath:       "/fVzXp3NwovUlLe7fvoRynCmBPNc.jpg",
			BackdropPath:     "/14QbnygCuTO0vl7CAFmPf1fgZfV.jpg",
			ReleaseDate:      "2021-12-17",
			VoteAverage:      8.4,
			VoteCount:        15234,
			GenreIDs:         database.IntList{28, 12, 878},
			OriginalLanguage: "en",
			OriginalTitle:    "Spider-Man: No Way Home",
			Popularity:       9823.4,
		},
		{
			ID:               4,
			Title:            "Top Gun: Maverick",
			Overview:         "Depois de mais de trinta anos de serviço como um dos melhores aviadores da Marinha, Pete Mitchell está onde pertence.",
			PosterPath:       "/jMLiTgCo0vXJuwMzZGoNOUPfuj7.jpg",
			BackdropPath:     "/odJ4hx6g6vBt4lBWKFD1tI8WS4x.jpg",
			ReleaseDate:      "2022-05-27",
			VoteAverage:      8.3,
			VoteCount:        6789,
			GenreIDs:         database.IntList{28, 18},
			OriginalLanguage: "en",
			OriginalTitle:    "Top Gun: Maverick",
			Popularity:       5678.9,
		},
		{
			ID:               5,
			Title:            "Oppenheimer",
			Overview:         "A história do físico americano J. Robert Oppenheimer e seu papel no desenvolvimento da bomba atômica.",
			PosterPath:       "/8Gxv8gSFCU0XGDykEGv7zR1n2ua.jpg",
			BackdropPath:     "/fm6KqXpk3M2HVveHwCrBSSBaO0V.jpg",
			ReleaseDate:      "2023-07-21",
			VoteAverage:      8.1,
			VoteCount:        4567,
			GenreIDs:         database.IntList{18, 36},
			OriginalLanguage: "en",
			OriginalTitle:    "Oppenheimer",
			Popularity:       3456.7,
		},
		{
			ID:               6,
			Title:            "Barbie",
			Overview:         "Barbie e Ken estão tendo o momento das suas vidas no colorido e aparentemente perfeito mundo da Barbie Land.",
			PosterPath:       "/iuFNMS8U5cb6xfzi51Dbkovj7vM.jpg",
			BackdropPath:     "/nHf61UzkfFno5X1ofIhugCPus2R.jpg",
			ReleaseDate:      "2023-07-21",
			VoteAverage:      6.9,
			VoteCount:        7890,
			GenreIDs:         database.IntList{35, 12, 14},
			OriginalLanguage: "en",
			OriginalTitle:    "Barbie",
			Popularity:       4567.8,
		},
	}
}

func seedShows() []database.TVShow {
	return []database.TVShow{
		{
			ID:               1,
			Name:             "Stranger Things",
			Overview:         "Quando um garoto desaparece, a cidade toda participa nas buscas. Mas o que encontram são segredos, forças sobrenaturais e uma menina.",
			PosterPath:       "/49WJfeN0moxb9IPfGn8AIqMGskD.jpg",
			BackdropPath:     "/56v2KjBlU4XaOv9rVYEQypROD7P.jpg",
			FirstAirDate:     "2016-07-15",
			VoteAverage:      8.7,
			VoteCount:        9876,
			GenreIDs:         database.IntList{18, 14, 27},
			OriginalLanguage: "en",
			OriginalName:     "Stranger Things",
			Popularity:       8765.4,
			OriginCountry:    database.StringList{"US"},
		},
		{
			ID:               2,
			Name:             "The Last of Us",
			Overview:         "Vinte anos depois da destruição da civilização causada por um surto global, Joel e Ellie começam uma jornada através dos EUA devastados.",
			PosterPath:       "/uKvVjHNqB5VmOrdxqAt2F7J78ED.jpg",
			BackdropPath:     "/2OMB0ynKlyIenMJWI2Dy9IWT4c.jpg",
			FirstAirDate:     "2023-01-15",
			VoteAverage:      8.8,
			VoteCount:        5432,
			GenreIDs:         database.IntList{18, 27, 53},
			OriginalLanguage: "en",
			OriginalName:     "The Last of Us",
			Popularity:       7654.3,
			OriginCountry:    database.StringList{"US"},
		},
		{
			ID:               3,
			Name:             "House of the Dragon",
			Overview:         "A história da Casa Targaryen acontece 200 anos antes dos eventos de Game of Thrones.",
			PosterPath:       "/z2yahl2uefxDCl0nogcRBstwruJ.jpg",
			BackdropPath:     "/1M876Kj8Vqwtr6vw8yH2SxVv1uK.jpg",
			FirstAirDate:     "2022-08-21",
			VoteAverage:      8.5,
			VoteCount:        4321,
			GenreIDs:         database.IntList{10759, 18, 14},
			OriginalLanguage: "en",
			OriginalName:     "House of the Dragon",
			Popularity:       6543.2,
			OriginCountry:    database.StringList{"US"},
		},
	}
}

func seedGenres() []database.Genre {
	return []database.Genre{
		{ID: 28, Name: "Ação"},
		{ID: 12, Name: "Aventura"},
		{ID: 16, Name: "Animação"},
		{ID: 35, Name: "Comédia"},
		{ID: 80, Name: "Crime"},
		{ID: 99, Name: "Documentário"},
		{ID: 18, Name: "Drama"},
		{ID: 10751, Name: "Família"},
		{ID: 14, Name: "Fantasia"},
		{ID: 36, Name: "História"},
		{ID: 27, Name: "Terror"},
		{ID: 10402, Name: "Música"},
		{ID: 9648, Name: "Mistério"},
		{ID: 10749, Name: "Romance"},
		{ID: 878, Name: "Ficção Científica"},
		{ID: 10770, Name: "Cinema TV"},
		{ID: 53, Name: "Thriller"},
		{ID: 10752, Name: "Guerra"},
		{ID: 37, Name: "Faroeste"},
	}
}
