package repository

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/shelftrack/shelftrack/internal/models"
)

type MovieRepository struct {
	db *sql.DB
}

func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

const movieColumns = `id, user_id, title, director, poster_url, backdrop_url, description,
	release_date, runtime, genres, cast_names, status, current_time_min, times_watched,
	rating, created_at, updated_at`

func scanMovie(row interface{ Scan(...interface{}) error }) (*models.Movie, error) {
	m := &models.Movie{}
	err := row.Scan(
		&m.ID, &m.UserID, &m.Title, &m.Director, &m.PosterURL, &m.BackdropURL, &m.Description,
		&m.ReleaseDate, &m.Runtime, &m.Genres, &m.Cast, &m.Status, &m.CurrentTime,
		&m.TimesWatched, &m.Rating, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func (r *MovieRepository) Create(m *models.Movie) error {
	m.ID = uuid.New()
	query := `
		INSERT INTO movies (id, user_id, title, director, poster_url, backdrop_url, description,
		                    release_date, runtime, genres, cast_names, status, current_time_min,
		                    times_watched, rating)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING created_at, updated_at`

	return r.db.QueryRow(query, m.ID, m.UserID, m.Title, m.Director, m.PosterURL, m.BackdropURL,
		m.Description, m.ReleaseDate, m.Runtime, m.Genres, m.Cast, m.Status, m.CurrentTime,
		m.TimesWatched, m.Rating).
		Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (r *MovieRepository) GetByID(userID, id uuid.UUID) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1 AND user_id = $2`
	m, err := scanMovie(r.db.QueryRow(query, id, userID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MovieRepository) ListByUser(userID uuid.UUID) ([]*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (r *MovieRepository) Update(m *models.Movie) error {
	query := `
		UPDATE movies SET title=$1, director=$2, poster_url=$3, backdrop_url=$4, description=$5,
		       release_date=$6, runtime=$7, genres=$8, cast_names=$9, status=$10,
		       current_time_min=$11, times_watched=$12, rating=$13, updated_at=now()
		WHERE id = $14 AND user_id = $15
		RETURNING updated_at`

	err := r.db.QueryRow(query, m.Title, m.Director, m.PosterURL, m.BackdropURL, m.Description,
		m.ReleaseDate, m.Runtime, m.Genres, m.Cast, m.Status, m.CurrentTime, m.TimesWatched,
		m.Rating, m.ID, m.UserID).
		Scan(&m.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

func (r *MovieRepository) Delete(userID, id uuid.UUID) error {
	res, err := r.db.Exec(`DELETE FROM movies WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MovieRepository) ListMissingArtwork(limit int) ([]*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE poster_url = '' ORDER BY created_at ASC LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}
