package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"lilypay/internal/database"
	"lilypay/internal/logger"
	"lilypay/internal/models"
)

// ErrInvalidCredentials is returned for an unknown username, an inactive
// account, or a wrong password. Callers get no hint which one it was.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Service authenticates users and manages user accounts.
type Service struct {
	db         *database.DB
	logger     *logger.Logger
	bcryptCost int
}

// NewService creates an authentication service.
func NewService(db *database.DB, log *logger.Logger, bcryptCost int) *Service {
	return &Service{
		db:         db,
		logger:     log,
		bcryptCost: bcryptCost,
	}
}

// Authenticate validates a username/password pair against the users table.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(ctx, database.GetUserByUsernameSQL, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.FullName,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// CreateUser inserts a new user with a freshly hashed password.
func (s *Service) CreateUser(ctx context.Context, username, password string, role models.Role, fullName string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	if fullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Role:     role,
		FullName: fullName,
		IsActive: true,
	}

	err = s.db.QueryRow(ctx, database.InsertUserSQL, username, string(hash), role, fullName).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

// EnsureDefaultUsers seeds the default admin and cashier accounts on a
// fresh database so a new terminal is usable out of the box.
func (s *Service) EnsureDefaultUsers(ctx context.Context) error {
	var count int
	if err := s.db.QueryRow(ctx, database.CountUsersSQL).Scan(&count); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		username string
		password string
		role     models.Role
		fullName string
	}{
		{"admin", "admin123", models.RoleAdmin, "System Administrator"},
		{"cashier", "cashier123", models.RoleCashier, "Default Cashier"},
	}

	for _, d := range defaults {
		if _, err := s.CreateUser(ctx, d.username, d.password, d.role, d.fullName); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", d.username, err)
		}
		s.logger.Info("default_user_created", fmt.Sprintf("Seeded default user %s", d.username), "startup", map[string]interface{}{
			"username": d.username,
			"role":     string(d.role),
		})
	}

	return nil
}
