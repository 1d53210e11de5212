package store

import (
	"context"
	"log"
)

// Schema and seed management.  Both operations are idempotent and safe to
// run on every startup: tables are created with IF NOT EXISTS and seed rows
// are only inserted when the events table is empty.
//
// The DDL below is the one place the two backends need different SQL text
// for the same semantic operation (key generation, column types), so each
// table carries a twin fragment per dialect instead of conditionals spread
// through the codebase.

var sqliteDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		email TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		category TEXT NOT NULL,
		venue TEXT NOT NULL,
		event_date DATETIME NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		available_tickets INTEGER NOT NULL,
		total_tickets INTEGER NOT NULL,
		image_url TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		event_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		total_amount DECIMAL(10,2) NOT NULL,
		booking_date DATETIME NOT NULL,
		status TEXT NOT NULL DEFAULT 'confirmed',
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (event_id) REFERENCES events(id)
	)`,
}

var mysqlDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT PRIMARY KEY AUTO_INCREMENT,
		username VARCHAR(50) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		email VARCHAR(100),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id INT PRIMARY KEY AUTO_INCREMENT,
		title VARCHAR(200) NOT NULL,
		description TEXT,
		category VARCHAR(50) NOT NULL,
		venue VARCHAR(200) NOT NULL,
		event_date DATETIME NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		available_tickets INT NOT NULL,
		total_tickets INT NOT NULL,
		image_url VARCHAR(500),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id INT PRIMARY KEY AUTO_INCREMENT,
		user_id INT NOT NULL,
		event_id INT NOT NULL,
		quantity INT NOT NULL,
		total_amount DECIMAL(10,2) NOT NULL,
		booking_date DATETIME NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'confirmed',
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (event_id) REFERENCES events(id)
	)`,
}

// CreateSchema creates the three tables if they do not exist yet.
func (s *Store) CreateSchema(ctx context.Context) error {
	ddl := sqliteDDL
	if s.backend == MySQL {
		ddl = mysqlDDL
	}
	for _, stmt := range ddl {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// seedUser is one sample account inserted at first startup.  The hash is
// bcrypt("password123").
type seedUser struct {
	username string
	hash     string
	email    string
}

// seedEvent is one sample event inserted at first startup.
type seedEvent struct {
	title       string
	description string
	category    string
	venue       string
	date        string // UTC, "2006-01-02 15:04:05"
	price       float64
	available   int
	total       int
	imageURL    string
}

const seedPasswordHash = "$2a$10$sNapAUQLnhCfwC3Lz1WQkO3LhRPjEkcaokhx15AqDQa2Ul0jqN2p2"

var seedUsers = []seedUser{
	{"testuser1", seedPasswordHash, "test1@example.com"},
	{"testuser2", seedPasswordHash, "test2@example.com"},
	{"admin", seedPasswordHash, "admin@example.com"},
}

var seedEvents = []seedEvent{
	{"Rock Concert: The Thunder", "An electrifying rock concert featuring local and international artists", "performance", "Madison Square Garden", "2024-03-15 19:00:00", 89.99, 500, 500, "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=800"},
	{"Jazz Night Live", "Smooth jazz evening with renowned musicians", "performance", "Blue Note Club", "2024-03-20 20:00:00", 65.00, 150, 150, "https://images.unsplash.com/photo-1415201364774-f6f0bb35f28f?w=800"},
	{"Classical Symphony", "Beautiful classical music performed by the city orchestra", "performance", "Concert Hall", "2024-03-25 19:30:00", 75.50, 300, 300, "https://images.unsplash.com/photo-1465847899084-d164df4dedc6?w=800"},
	{"Web Development Workshop", "Learn modern web development with React and Node.js", "workshop", "Tech Hub", "2024-03-18 10:00:00", 299.00, 30, 30, "https://images.unsplash.com/photo-1517180102446-f3ece451e9d8?w=800"},
	{"Photography Masterclass", "Master the art of photography with professional tips", "workshop", "Creative Studios", "2024-03-22 14:00:00", 199.00, 25, 25, "https://images.unsplash.com/photo-1502920917128-1aa500764cbd?w=800"},
	{"Digital Marketing Summit", "Learn the latest digital marketing strategies", "workshop", "Business Center", "2024-03-28 09:00:00", 399.00, 50, 50, "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800"},
	{"Pop Concert: City Lights", "Popular music concert with chart-topping hits", "performance", "Arena Stadium", "2024-04-05 18:00:00", 95.00, 800, 800, "https://images.unsplash.com/photo-1506157786151-b8491531f063?w=800"},
	{"Cooking Workshop: Italian Cuisine", "Learn to cook authentic Italian dishes", "workshop", "Culinary Institute", "2024-04-10 11:00:00", 149.00, 20, 20, "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=800"},
}

// SeedIfEmpty inserts the sample users and events on first startup.  The
// guard is a row count on the events table: when any event exists the whole
// insertion is skipped, so re-running startup never duplicates seed rows.
// Positional placeholders are used here on purpose; the adapter sits below
// the query translation layer and both drivers accept '?'.
func (s *Store) SeedIfEmpty(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Printf("store: seed data already present, skipping insertion")
		return nil
	}

	for _, u := range seedUsers {
		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO users (username, password_hash, email) VALUES (?, ?, ?)",
			u.username, u.hash, u.email); err != nil {
			return err
		}
	}
	for _, e := range seedEvents {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO events (title, description, category, venue, event_date, price, available_tickets, total_tickets, image_url)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.title, e.description, e.category, e.venue, e.date, e.price, e.available, e.total, e.imageURL); err != nil {
			return err
		}
	}
	log.Printf("store: inserted %d seed users and %d seed events", len(seedUsers), len(seedEvents))
	return nil
}
