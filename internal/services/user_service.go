package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "marketbook/internal/errors"
	"marketbook/internal/ledger"
	"marketbook/internal/models"
)

const (
	maxFailedLogins = 5
	lockoutDuration = 15 * time.Minute
)

// userService handles tenant registration and user authentication.
type userService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, audit AuditServicer) UserServicer {
	return &userService{db: db, audit: audit}
}

// RegisterTenant creates a tenant organization and its first (owner) user
// atomically.
func (s *userService) RegisterTenant(tenantName, email, password, firstName, lastName string, req *ledger.RequestContext) (*models.Tenant, *models.User, error) {
	if tenantName == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tenant name is required")
	}
	if email == "" || password == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, nil, apperrors.ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	tenant := &models.Tenant{
		Name:         tenantName,
		ContactEmail: email,
		IsActive:     true,
	}
	user := &models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: firstName,
		LastName:  lastName,
		Role:      "owner",
		IsActive:  true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenant).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		user.TenantID = tenant.ID
		if err := tx.Create(user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// The tenant's chain starts with its own creation.
	if _, err := s.audit.RecordAction(ActionRecord{
		TenantID:     tenant.ID,
		ActorEmail:   user.Email,
		Action:       models.AuditActionCreate,
		ResourceType: "tenant",
		ResourceID:   tenant.ID,
		AfterState:   map[string]string{"name": tenant.Name, "contact_email": tenant.ContactEmail},
		Request:      req,
	}); err != nil {
		return nil, nil, err
	}

	return tenant, user, nil
}

// GetUserByEmail retrieves a user by email.
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

// AttemptLogin validates credentials, maintains the lockout counter, and
// records a LOGIN entry in the tenant's audit chain on success.
func (s *userService) AttemptLogin(email, password string, req *ledger.RequestContext) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		// Do not reveal whether the account exists.
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.LockedUntil != nil && user.LockedUntil.After(time.Now()) {
		return nil, apperrors.ErrAccountLocked
	}

	if !s.VerifyPassword(user, password) {
		attempts := user.FailedLoginAttempts + 1
		updates := map[string]interface{}{"failed_login_attempts": attempts}
		if attempts >= maxFailedLogins {
			lockedUntil := time.Now().Add(lockoutDuration)
			updates["locked_until"] = lockedUntil
		}
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.Model(user).Updates(map[string]interface{}{
		"failed_login_attempts": 0,
		"locked_until":          nil,
		"last_login_at":         now,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.audit.RecordAction(ActionRecord{
		TenantID:     user.TenantID,
		ActorEmail:   user.Email,
		Action:       models.AuditActionLogin,
		ResourceType: "user",
		ResourceID:   user.ID,
		Request:      req,
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// StoreRefreshTokenHash persists the SHA-256 hash of the user's current
// refresh token.
func (s *userService) StoreRefreshTokenHash(userID string, tokenHash string) error {
	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token_hash", tokenHash)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetRefreshTokenHash returns the stored refresh token hash for a user.
func (s *userService) GetRefreshTokenHash(userID string) (string, error) {
	var user models.User
	if err := s.db.Select("refresh_token_hash").Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user.RefreshTokenHash, nil
}
