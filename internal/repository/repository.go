package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/finlytic/ccfm-service/internal/models"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO ccfm.users (username, name, email, branch, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Name, user.Email, user.Branch, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UserExists reports whether a user with the given username, name or email
// already exists. Used to keep registration conflicts distinguishable.
func (r *Repository) UserExists(username, name, email string) (bool, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM ccfm.users
		WHERE username = $1 OR name = $2 OR email = $3`
	if err := r.db.QueryRow(query, username, name, email).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check existing users: %w", err)
	}
	return count > 0, nil
}

// FindUserByUsername retrieves a user by their login id
func (r *Repository) FindUserByUsername(username string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, name, email, branch, password_hash, created_at
		FROM ccfm.users
		WHERE username = $1`
	err := r.db.QueryRow(query, username).
		Scan(&user.ID, &user.Username, &user.Name, &user.Email, &user.Branch, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by primary key
func (r *Repository) FindUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, name, email, branch, password_hash, created_at
		FROM ccfm.users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Username, &user.Name, &user.Email, &user.Branch, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// SaveAnalysis persists one analysis. Inputs, metrics and alerts are
// stored as JSONB documents; rows are never updated afterwards.
func (r *Repository) SaveAnalysis(analysis *models.Analysis) error {
	inputs, err := json.Marshal(analysis.Inputs)
	if err != nil {
		return fmt.Errorf("failed to encode inputs: %w", err)
	}
	metrics, err := json.Marshal(analysis.Metrics)
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	alerts, err := json.Marshal(analysis.Alerts)
	if err != nil {
		return fmt.Errorf("failed to encode alerts: %w", err)
	}

	query := `
		INSERT INTO ccfm.analyses (user_id, inputs, metrics, alerts, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err = r.db.QueryRow(query, analysis.UserID, inputs, metrics, alerts).
		Scan(&analysis.ID, &analysis.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// FindRecentAnalyses returns the user's analyses, most recent first
func (r *Repository) FindRecentAnalyses(userID int64, limit int) ([]models.Analysis, error) {
	query := `
		SELECT id, user_id, inputs, metrics, alerts, created_at
		FROM ccfm.analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	analyses, err := scanAnalyses(rows)
	if err != nil {
		return nil, err
	}
	return analyses, nil
}

// LatestAnalysisPerUser returns each user's newest analysis together with
// their email address. Feeds the scheduled alert digest.
func (r *Repository) LatestAnalysisPerUser() ([]models.Analysis, map[int64]*models.User, error) {
	query := `
		SELECT DISTINCT ON (a.user_id)
			a.id, a.user_id, a.inputs, a.metrics, a.alerts, a.created_at,
			u.username, u.name, u.email
		FROM ccfm.analyses a
		JOIN ccfm.users u ON u.id = a.user_id
		ORDER BY a.user_id, a.created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query latest analyses: %w", err)
	}
	defer rows.Close()

	var analyses []models.Analysis
	users := make(map[int64]*models.User)
	for rows.Next() {
		var a models.Analysis
		var inputs, metrics, alerts []byte
		user := &models.User{}
		if err := rows.Scan(&a.ID, &a.UserID, &inputs, &metrics, &alerts, &a.CreatedAt,
			&user.Username, &user.Name, &user.Email); err != nil {
			return nil, nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		if err := decodeAnalysis(&a, inputs, metrics, alerts); err != nil {
			return nil, nil, err
		}
		user.ID = a.UserID
		analyses = append(analyses, a)
		users[a.UserID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read analyses: %w", err)
	}
	return analyses, users, nil
}

func scanAnalyses(rows *sql.Rows) ([]models.Analysis, error) {
	var analyses []models.Analysis
	for rows.Next() {
		var a models.Analysis
		var inputs, metrics, alerts []byte
		if err := rows.Scan(&a.ID, &a.UserID, &inputs, &metrics, &alerts, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		if err := decodeAnalysis(&a, inputs, metrics, alerts); err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analyses: %w", err)
	}
	return analyses, nil
}

func decodeAnalysis(a *models.Analysis, inputs, metrics, alerts []byte) error {
	if err := json.Unmarshal(inputs, &a.Inputs); err != nil {
		return fmt.Errorf("failed to decode inputs: %w", err)
	}
	if err := json.Unmarshal(metrics, &a.Metrics); err != nil {
		return fmt.Errorf("failed to decode metrics: %w", err)
	}
	if err := json.Unmarshal(alerts, &a.Alerts); err != nil {
		return fmt.Errorf("failed to decode alerts: %w", err)
	}
	return nil
}
