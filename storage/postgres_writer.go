package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"daraz-scraper/models"
)

// PostgresWriter mirrors output rows into a reviews table. Unlike the CSV
// sink it is a secondary store: inserts are append-only and never rewrite
// previously captured rows.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS reviews (
			id                     SERIAL PRIMARY KEY,
			reviewer               TEXT         NOT NULL DEFAULT '',
			star_count             SMALLINT     NOT NULL,
			review_text            TEXT         NOT NULL DEFAULT '',
			review_images          TEXT         NOT NULL DEFAULT '',
			review_date            TEXT         NOT NULL DEFAULT '',
			review_likes           INTEGER      NOT NULL DEFAULT 0,
			product_name           TEXT         NOT NULL DEFAULT '',
			product_categories     TEXT         NOT NULL DEFAULT '',
			product_price          NUMERIC(12,2),
			total_sold             INTEGER,
			total_rating           INTEGER,
			overall_rating         TEXT         NOT NULL DEFAULT '',
			rating_summary         TEXT         NOT NULL DEFAULT '',
			product_images         TEXT         NOT NULL DEFAULT '',
			seller_name            TEXT         NOT NULL DEFAULT '',
			positive_seller_rating TEXT         NOT NULL DEFAULT '',
			seller_location        TEXT         NOT NULL DEFAULT '',
			source_url             TEXT         NOT NULL,
			captured_at            TIMESTAMPTZ  NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_reviews_source_url ON reviews(source_url);
		CREATE INDEX IF NOT EXISTS idx_reviews_star_count ON reviews(star_count);
	`)
	return err
}

// Append batch-inserts one product's review rows.
func (pw *PostgresWriter) Append(rows []*models.OutputRow) error {
	if len(rows) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := pw.insertBatch(rows[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.OutputRow) error {
	const cols = 19
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, r := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := 0; j < cols; j++ {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			r.Reviewer,
			r.StarCount,
			r.ReviewText,
			strings.Join(r.ReviewImageURLs, ", "),
			r.ReviewDate,
			r.ReviewLikeCount,
			r.ProductName,
			strings.Join(r.ProductCategories, ", "),
			nullFloat(r.ProductPrice),
			nullInt(r.TotalSold),
			nullInt(r.TotalRating),
			r.OverallRating,
			models.FormatHistogram(r.RatingHistogram),
			strings.Join(r.ProductImageURLs, ", "),
			r.SellerName,
			r.PositiveSellerRating,
			r.SellerLocation,
			r.SourceURL,
			r.CapturedAt,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO reviews (
			reviewer, star_count, review_text, review_images, review_date,
			review_likes, product_name, product_categories, product_price,
			total_sold, total_rating, overall_rating, rating_summary,
			product_images, seller_name, positive_seller_rating,
			seller_location, source_url, captured_at
		)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
