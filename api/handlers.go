package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/reelrent/reelrent/auth"
	"github.com/reelrent/reelrent/database"
	"github.com/reelrent/reelrent/userdata"
)

func parseKind(raw string) (database.MediaType, bool) {
	switch database.MediaType(raw) {
	case database.MediaTypeMovie:
		return database.MediaTypeMovie, true
	case database.MediaTypeTV:
		return database.MediaTypeTV, true
	}
	return "", false
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNotLoggedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrEmailTaken), errors.Is(err, database.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *Server) popular(c *gin.Context) {
	kind, ok := parseKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown media kind"})
		return
	}
	if kind == database.MediaTypeTV {
		shows, err := s.catalog.PopularShows(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": shows})
		return
	}
	movies, err := s.catalog.PopularMovies(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": movies})
}

func (s *Server) contentDetails(c *gin.Context) {
	kind, ok := parseKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown media kind"})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if kind == database.MediaTypeTV {
		show, err := s.catalog.ShowDetails(c.Request.Context(), id)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, show)
		return
	}
	movie, err := s.catalog.MovieDetails(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

func (s *Server) toggleFavorite(c *gin.Context) {
	kind, ok := parseKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown media kind"})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	favorite, err := s.catalog.ToggleFavorite(c.Request.Context(), kind, id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isFavorite": favorite})
}

func (s *Server) setWatched(c *gin.Context) {
	kind, ok := parseKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown media kind"})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Watched bool `json:"watched"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.catalog.SetWatched(c.Request.Context(), kind, id, req.Watched); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isWatched": req.Watched})
}

func (s *Server) favorites(c *gin.Context) {
	favorites, err := s.catalog.Favorites(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (s *Server) search(c *gin.Context) {
	filters := database.SearchFilters{Query: c.Query("q")}
	if raw := c.Query("genre"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid genre"})
			return
		}
		filters.GenreID = id
	}
	if raw := c.Query("minRating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minRating"})
			return
		}
		filters.MinRating = rating
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		filters.Year = year
	}
	if raw := c.Query("kind"); raw != "" {
		kind, ok := parseKind(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown media kind"})
			return
		}
		filters.Kind = kind
	}

	result, err := s.catalog.Search(c.Request.Context(), filters)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) searchHistory(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}
	queries, err := s.catalog.RecentSearches(c.Request.Context(), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"queries": queries})
}

func (s *Server) clearSearchHistory(c *gin.Context) {
	if err := s.catalog.ClearSearchHistory(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) genres(c *gin.Context) {
	genres, err := s.catalog.Genres(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"genres": genres})
}

func (s *Server) stats(c *gin.Context) {
	stats, err := s.catalog.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := s.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) logout(c *gin.Context) {
	if err := s.auth.Logout(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) currentUser(c *gin.Context) {
	user, err := s.auth.CurrentUser(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) updateProfile(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	current, err := s.auth.CurrentUser(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	user, err := s.auth.UpdateProfile(c.Request.Context(), current.ID, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) || errors.Is(err, database.ErrNotFound) {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) scope(c *gin.Context) *userdata.Scope {
	return s.auth.Scope(c.Param("userID"))
}

// contentRef resolves a content id to a catalog row and builds the reference
// stored in the per-user ledgers.
func (s *Server) contentRef(c *gin.Context, kind database.MediaType, id int) (*userdata.ContentRef, error) {
	if kind == database.MediaTypeTV {
		show, err := s.catalog.ShowDetails(c.Request.Context(), id)
		if err != nil {
			return nil, err
		}
		ref := userdata.ShowRef(*show)
		return &ref, nil
	}
	movie, err := s.catalog.MovieDetails(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	ref := userdata.MovieRef(*movie)
	return &ref, nil
}

func (s *Server) listRentals(c *gin.Context) {
	scope := s.scope(c)
	active, err := scope.Rentals.Active(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	expired, err := scope.Rentals.Expired(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active, "expired": expired})
}

func (s *Server) addRental(c *gin.Context) {
	var req struct {
		ContentID  int                `json:"contentId"`
		Kind       database.MediaType `json:"kind"`
		PriceCents int64              `json:"priceCents"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ref, err := s.contentRef(c, req.Kind, req.ContentID)
	if err != nil {
		handleError(c, err)
		return
	}
	rental, err := s.scope(c).Rentals.Add(c.Request.Context(), *ref, req.PriceCents, nil)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rental)
}

func (s *Server) removeRental(c *gin.Context) {
	if err := s.scope(c).Rentals.Remove(c.Request.Context(), c.Param("rentalID")); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) cart(c *gin.Context) {
	scope := s.scope(c)
	lines, err := scope.Cart.Lines(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	total, err := scope.Cart.TotalCents(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": lines, "totalCents": total})
}

func (s *Server) addCartLine(c *gin.Context) {
	var req struct {
		ContentID  int                `json:"contentId"`
		Kind       database.MediaType `json:"kind"`
		LineType   userdata.LineType  `json:"lineType"`
		PriceCents int64              `json:"priceCents"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ref, err := s.contentRef(c, req.Kind, req.ContentID)
	if err != nil {
		handleError(c, err)
		return
	}
	line, err := s.scope(c).Cart.Add(c.Request.Context(), userdata.CartLine{
		ContentID:  ref.ID,
		Title:      ref.Title,
		PosterPath: ref.PosterPath,
		PriceCents: req.PriceCents,
		LineType:   req.LineType,
		Kind:       ref.Kind,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (s *Server) removeCartLine(c *gin.Context) {
	if err := s.scope(c).Cart.Remove(c.Request.Context(), c.Param("lineID")); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// checkout turns the rent lines of the cart into rental records and empties
// the cart. Buy lines are acknowledged but leave no record; purchases have no
// ledger of their own.
func (s *Server) checkout(c *gin.Context) {
	ctx := c.Request.Context()
	scope := s.scope(c)

	lines, err := scope.Cart.Lines(ctx)
	if err != nil {
		handleError(c, err)
		return
	}
	rentals := make([]userdata.Rental, 0, len(lines))
	for _, line := range lines {
		if line.LineType != userdata.LineTypeRent {
			continue
		}
		ref := userdata.ContentRef{
			ID:         line.ContentID,
			Title:      line.Title,
			PosterPath: line.PosterPath,
			Kind:       line.Kind,
		}
		rental, err := scope.Rentals.Add(ctx, ref, line.PriceCents, nil)
		if err != nil {
			handleError(c, err)
			return
		}
		rentals = append(rentals, *rental)
	}
	if err := scope.Cart.Clear(ctx); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rentals": rentals})
}

func (s *Server) history(c *gin.Context) {
	scope := s.scope(c)
	ctx := c.Request.Context()
	entries, err := scope.History.Entries(ctx)
	if err != nil {
		handleError(c, err)
		return
	}
	minutes, err := scope.History.WatchedMinutes(ctx)
	if err != nil {
		handleError(c, err)
		return
	}
	movies, err := scope.History.MoviesWatched(ctx)
	if err != nil {
		handleError(c, err)
		return
	}
	series, err := scope.History.SeriesWatched(ctx)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entries":        entries,
		"watchedMinutes": minutes,
		"moviesWatched":  movies,
		"seriesWatched":  series,
	})
}

func (s *Server) addHistory(c *gin.Context) {
	var req struct {
		ContentID int                `json:"contentId"`
		Kind      database.MediaType `json:"kind"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ref, err := s.contentRef(c, req.Kind, req.ContentID)
	if err != nil {
		handleError(c, err)
		return
	}
	entry, err := s.scope(c).History.Add(c.Request.Context(), *ref)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) removeHistory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("contentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.scope(c).History.Remove(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) userFavorites(c *gin.Context) {
	favorites, err := s.scope(c).Favorites.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (s *Server) addUserFavorite(c *gin.Context) {
	var req struct {
		ContentID int                `json:"contentId"`
		Kind      database.MediaType `json:"kind"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ref, err := s.contentRef(c, req.Kind, req.ContentID)
	if err != nil {
		handleError(c, err)
		return
	}
	if err := s.scope(c).Favorites.Add(c.Request.Context(), *ref); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (s *Server) removeUserFavorite(c *gin.Context) {
	kind, ok := parseKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown media kind"})
		return
	}
	id, err := strconv.Atoi(c.Param("contentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.scope(c).Favorites.Remove(c.Request.Context(), id, kind); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
