package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/finlytic/ccfm-service/internal/ccfm"
	"github.com/finlytic/ccfm-service/internal/config"
	"github.com/finlytic/ccfm-service/internal/middleware"
	"github.com/finlytic/ccfm-service/internal/models"
	"github.com/finlytic/ccfm-service/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Trend history is bounded to the ten most recent analyses.
const historyLimit = 10

const tokenTTL = time.Hour

// Sentinel errors the handler maps onto HTTP statuses
var (
	ErrUnauthenticated    = errors.New("user not authenticated")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPersistence        = errors.New("persistence failure")
)

// Branches a user may register under
var branches = []string{
	"Risk Management and Compliance",
	"Corporate Finance",
	"Payroll Management",
	"Financial Planning and Analysis",
	"Accounting and Bookkeeping",
	"Treasury and Cash Management",
	"Taxation",
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Password policy: one lower, one upper, one digit, one special, length >= 8.
	// Go's regexp has no lookahead, so each class is checked separately.
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	digitPattern   = regexp.MustCompile(`\d`)
	specialPattern = regexp.MustCompile(`[@$!%*?&]`)
)

// Repository is the persistence surface the service depends on
type Repository interface {
	CreateUser(user *models.User) error
	UserExists(username, name, email string) (bool, error)
	FindUserByUsername(username string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)
	SaveAnalysis(analysis *models.Analysis) error
	FindRecentAnalyses(userID int64, limit int) ([]models.Analysis, error)
}

// AnalysisResult is the full payload returned for one analyze call
type AnalysisResult struct {
	Metrics         models.MetricSet        `json:"metrics"`
	Alerts          models.AlertSet         `json:"alerts"`
	Recommendations []models.Recommendation `json:"recommendations"`
	Statuses        []models.MetricStatus   `json:"statuses"`
}

// Service handles business logic
type Service struct {
	repo   Repository
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo Repository, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, log: log, config: cfg}
}

// Register creates a new user with a hashed password
func (s *Service) Register(name, username, email, password, branch string) (*models.User, error) {
	if name == "" || username == "" || email == "" || password == "" || branch == "" {
		return nil, fmt.Errorf("all fields are required")
	}
	if !validBranch(branch) {
		return nil, fmt.Errorf("invalid branch selected")
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("invalid email format")
	}
	if !validPassword(password) {
		return nil, fmt.Errorf("password must be at least 8 characters long, include an uppercase letter, a lowercase letter, a number, and a special character")
	}

	exists, err := s.repo.UserExists(username, name, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if exists {
		return nil, fmt.Errorf("user already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Name:         name,
		Email:        email,
		Branch:       branch,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.log.Infof("User registered: %s", user.Username)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(username, password string) (string, *models.User, error) {
	user, err := s.repo.FindUserByUsername(username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Username)
	return tokenString, user, nil
}

// Analyze runs the full pipeline for the authenticated user: validate the
// raw payload, derive metrics, evaluate alerts, generate recommendations,
// and persist the analysis. Validation violations come back as the second
// return value, batched, with nothing computed or stored.
func (s *Service) Analyze(ctx context.Context, raw map[string]any) (*AnalysisResult, []ccfm.FieldError, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, nil, err
	}

	snapshot, fieldErrs := ccfm.Validate(raw)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	metrics := ccfm.Calculate(snapshot)
	alerts := ccfm.Evaluate(metrics)

	analysis := &models.Analysis{
		UserID:  user.ID,
		Inputs:  snapshot,
		Metrics: metrics,
		Alerts:  alerts,
	}
	if err := s.repo.SaveAnalysis(analysis); err != nil {
		s.log.Errorf("Failed to save analysis for user %d: %v", user.ID, err)
		return nil, nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.log.Infof("Analysis %d stored for user %d", analysis.ID, user.ID)
	return &AnalysisResult{
		Metrics:         metrics,
		Alerts:          alerts,
		Recommendations: ccfm.Recommend(alerts),
		Statuses:        ccfm.Statuses(metrics, alerts),
	}, nil, nil
}

// History returns the user's recent analyses projected into trend points,
// most recent first.
func (s *Service) History(ctx context.Context) ([]models.TrendPoint, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	analyses, err := s.repo.FindRecentAnalyses(user.ID, historyLimit)
	if err != nil {
		s.log.Errorf("Failed to load history for user %d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return ccfm.TrendView(analyses), nil
}

// currentUser resolves the token subject from the request context to a
// stored user. A missing subject is an authentication failure; a subject
// that resolves to no row is reported as not-found, which is distinct.
func (s *Service) currentUser(ctx context.Context) (*models.User, error) {
	idStr, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.FindUserByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}

func validBranch(branch string) bool {
	for _, b := range branches {
		if b == branch {
			return true
		}
	}
	return false
}

func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	return lowerPattern.MatchString(password) &&
		upperPattern.MatchString(password) &&
		digitPattern.MatchString(password) &&
		specialPattern.MatchString(password)
}
