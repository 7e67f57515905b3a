package repository

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/shelftrack/shelftrack/internal/models"
)

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

const bookColumns = `id, user_id, title, author, cover_url, description, published_date,
	page_count, genres, isbn, status, current_page, times_read, rating,
	start_date, completion_date, notes, created_at, updated_at`

func scanBook(row interface{ Scan(...interface{}) error }) (*models.Book, error) {
	b := &models.Book{}
	err := row.Scan(
		&b.ID, &b.UserID, &b.Title, &b.Author, &b.CoverURL, &b.Description, &b.PublishedDate,
		&b.PageCount, &b.Genres, &b.ISBN, &b.Status, &b.CurrentPage, &b.TimesRead, &b.Rating,
		&b.StartDate, &b.CompletionDate, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// Create inserts a book. The id is assigned here, never by the caller.
func (r *BookRepository) Create(b *models.Book) error {
	b.ID = uuid.New()
	query := `
		INSERT INTO books (id, user_id, title, author, cover_url, description, published_date,
		                   page_count, genres, isbn, status, current_page, times_read, rating,
		                   start_date, completion_date, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING created_at, updated_at`

	return r.db.QueryRow(query, b.ID, b.UserID, b.Title, b.Author, b.CoverURL, b.Description,
		b.PublishedDate, b.PageCount, b.Genres, b.ISBN, b.Status, b.CurrentPage, b.TimesRead,
		b.Rating, b.StartDate, b.CompletionDate, b.Notes).
		Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (r *BookRepository) GetByID(userID, id uuid.UUID) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1 AND user_id = $2`
	b, err := scanBook(r.db.QueryRow(query, id, userID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BookRepository) ListByUser(userID uuid.UUID) ([]*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*models.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *BookRepository) Update(b *models.Book) error {
	query := `
		UPDATE books SET title=$1, author=$2, cover_url=$3, description=$4, published_date=$5,
		       page_count=$6, genres=$7, isbn=$8, status=$9, current_page=$10, times_read=$11,
		       rating=$12, start_date=$13, completion_date=$14, notes=$15, updated_at=now()
		WHERE id = $16 AND user_id = $17
		RETURNING updated_at`

	err := r.db.QueryRow(query, b.Title, b.Author, b.CoverURL, b.Description, b.PublishedDate,
		b.PageCount, b.Genres, b.ISBN, b.Status, b.CurrentPage, b.TimesRead, b.Rating,
		b.StartDate, b.CompletionDate, b.Notes, b.ID, b.UserID).
		Scan(&b.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

func (r *BookRepository) Delete(userID, id uuid.UUID) error {
	res, err := r.db.Exec(`DELETE FROM books WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListMissingArtwork returns books without a cover, for the background
// metadata sweep.
func (r *BookRepository) ListMissingArtwork(limit int) ([]*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE cover_url = '' ORDER BY created_at ASC LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*models.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
