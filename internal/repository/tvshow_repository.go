package repository

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/shelftrack/shelftrack/internal/models"
)

type TVShowRepository struct {
	db *sql.DB
}

func NewTVShowRepository(db *sql.DB) *TVShowRepository {
	return &TVShowRepository{db: db}
}

const tvshowColumns = `id, user_id, title, poster_url, backdrop_url, description,
	first_air_date, last_air_date, number_of_seasons, number_of_episodes, genres,
	created_by, networks, status, current_season, current_episode, times_watched,
	rating, created_at, updated_at`

func scanTVShow(row interface{ Scan(...interface{}) error }) (*models.TVShow, error) {
	s := &models.TVShow{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.Title, &s.PosterURL, &s.BackdropURL, &s.Description,
		&s.FirstAirDate, &s.LastAirDate, &s.NumberOfSeasons, &s.NumberOfEpisodes, &s.Genres,
		&s.CreatedBy, &s.Networks, &s.Status, &s.CurrentSeason, &s.CurrentEpisode,
		&s.TimesWatched, &s.Rating, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *TVShowRepository) Create(s *models.TVShow) error {
	s.ID = uuid.New()
	query := `
		INSERT INTO tvshows (id, user_id, title, poster_url, backdrop_url, description,
		                     first_air_date, last_air_date, number_of_seasons, number_of_episodes,
		                     genres, created_by, networks, status, current_season, current_episode,
		                     times_watched, rating)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING created_at, updated_at`

	return r.db.QueryRow(query, s.ID, s.UserID, s.Title, s.PosterURL, s.BackdropURL, s.Description,
		s.FirstAirDate, s.LastAirDate, s.NumberOfSeasons, s.NumberOfEpisodes, s.Genres,
		s.CreatedBy, s.Networks, s.Status, s.CurrentSeason, s.CurrentEpisode, s.TimesWatched,
		s.Rating).
		Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *TVShowRepository) GetByID(userID, id uuid.UUID) (*models.TVShow, error) {
	query := `SELECT ` + tvshowColumns + ` FROM tvshows WHERE id = $1 AND user_id = $2`
	s, err := scanTVShow(r.db.QueryRow(query, id, userID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *TVShowRepository) ListByUser(userID uuid.UUID) ([]*models.TVShow, error) {
	query := `SELECT ` + tvshowColumns + ` FROM tvshows WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := []*models.TVShow{}
	for rows.Next() {
		s, err := scanTVShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, s)
	}
	return shows, rows.Err()
}

func (r *TVShowRepository) Update(s *models.TVShow) error {
	query := `
		UPDATE tvshows SET title=$1, poster_url=$2, backdrop_url=$3, description=$4,
		       first_air_date=$5, last_air_date=$6, number_of_seasons=$7, number_of_episodes=$8,
		       genres=$9, created_by=$10, networks=$11, status=$12, current_season=$13,
		       current_episode=$14, times_watched=$15, rating=$16, updated_at=now()
		WHERE id = $17 AND user_id = $18
		RETURNING updated_at`

	err := r.db.QueryRow(query, s.Title, s.PosterURL, s.BackdropURL, s.Description,
		s.FirstAirDate, s.LastAirDate, s.NumberOfSeasons, s.NumberOfEpisodes, s.Genres,
		s.CreatedBy, s.Networks, s.Status, s.CurrentSeason, s.CurrentEpisode, s.TimesWatched,
		s.Rating, s.ID, s.UserID).
		Scan(&s.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

func (r *TVShowRepository) Delete(userID, id uuid.UUID) error {
	res, err := r.db.Exec(`DELETE FROM tvshows WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TVShowRepository) ListMissingArtwork(limit int) ([]*models.TVShow, error) {
	query := `SELECT ` + tvshowColumns + ` FROM tvshows WHERE poster_url = '' ORDER BY created_at ASC LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := []*models.TVShow{}
	for rows.Next() {
		s, err := scanTVShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, s)
	}
	return shows, rows.Err()
}
