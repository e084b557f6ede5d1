package store

import (
	"database/sql"
	"errors"

	"github.com/ademenev/booktrack/internal/models"
)

// GetOrCreateUser resolves an external chat identity to an internal user,
// creating the row on first contact. Repeated and concurrent calls with the
// same external id converge to one row: the insert relies on the unique
// constraint on external_id rather than a check-then-insert.
func (s *Store) GetOrCreateUser(externalID string, hints *models.ProfileHints) (*models.User, error) {
	var username, fullName string
	if hints != nil {
		username = hints.Username
		fullName = hints.FullName
	}

	_, err := s.db.Exec(
		"INSERT INTO users (external_id, username, full_name) VALUES (?, ?, ?) ON CONFLICT(external_id) DO NOTHING",
		externalID, username, fullName,
	)
	if err != nil {
		return nil, err
	}

	return s.GetUserByExternalID(externalID)
}

// GetUserByExternalID retrieves a user by their unique external identity.
func (s *Store) GetUserByExternalID(externalID string) (*models.User, error) {
	var user models.User
	var username, fullName sql.NullString
	query := "SELECT id, external_id, username, full_name, created_at FROM users WHERE external_id = ?"
	err := s.db.QueryRow(query, externalID).Scan(&user.ID, &user.ExternalID, &username, &fullName, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.Username = username.String
	user.FullName = fullName.String
	return &user, nil
}

// GetUserByID retrieves a user by their primary key.
func (s *Store) GetUserByID(id int64) (*models.User, error) {
	var user models.User
	var username, fullName sql.NullString
	query := "SELECT id, external_id, username, full_name, created_at FROM users WHERE id = ?"
	err := s.db.QueryRow(query, id).Scan(&user.ID, &user.ExternalID, &username, &fullName, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.Username = username.String
	user.FullName = fullName.String
	return &user, nil
}

// CountUsers returns the total number of users in the database.
func (s *Store) CountUsers() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
