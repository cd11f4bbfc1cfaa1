package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/voyago/voyago/internal/travel"
	_ "modernc.org/sqlite"
)

// SQLite implements Bookings using a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at dbPath and initializes the schema.
func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode for better concurrency between the serve and chat commands.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS bookings (
		booking_id TEXT PRIMARY KEY,
		pnr TEXT NOT NULL,
		hotel_code TEXT,
		request_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_bookings_created ON bookings(created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Save persists a booking confirmation.
func (s *SQLite) Save(ctx context.Context, b Booking) error {
	reqJSON, err := json.Marshal(b.Request)
	if err != nil {
		return fmt.Errorf("marshal booking request: %w", err)
	}

	query := `
		INSERT INTO bookings (booking_id, pnr, hotel_code, request_json, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		b.Confirmation.BookingID,
		b.Confirmation.PNR,
		b.Confirmation.HotelReservationCode,
		string(reqJSON),
		b.Confirmation.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// Get returns the booking with the given booking ID.
func (s *SQLite) Get(ctx context.Context, bookingID string) (Booking, error) {
	query := `
		SELECT booking_id, pnr, hotel_code, request_json, created_at
		FROM bookings WHERE booking_id = ?`

	row := s.db.QueryRowContext(ctx, query, bookingID)

	b, err := scanBooking(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return Booking{}, fmt.Errorf("scan booking row: %w", err)
	}
	return b, nil
}

// List returns all bookings, newest first.
func (s *SQLite) List(ctx context.Context) ([]Booking, error) {
	query := `
		SELECT booking_id, pnr, hotel_code, request_json, created_at
		FROM bookings ORDER BY created_at DESC, booking_id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return out, nil
}

// Close closes the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func scanBooking(scan func(dest ...any) error) (Booking, error) {
	var (
		b         Booking
		hotelCode sql.NullString
		reqJSON   string
		createdAt int64
	)
	if err := scan(&b.Confirmation.BookingID, &b.Confirmation.PNR, &hotelCode, &reqJSON, &createdAt); err != nil {
		return Booking{}, err
	}
	b.Confirmation.HotelReservationCode = hotelCode.String
	b.Confirmation.CreatedAt = time.Unix(createdAt, 0).UTC()

	var req travel.BookingRequest
	if err := json.Unmarshal([]byte(reqJSON), &req); err != nil {
		return Booking{}, fmt.Errorf("unmarshal booking request: %w", err)
	}
	b.Request = req
	return b, nil
}
