package doctor

import (
	"context"
	"fmt"
	"time"

	"medicore/models"
	"medicore/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// RegisterDoctor creates a new doctor account and signs it in. Accounts start
// unapproved and stay out of the patient-facing directory until an admin
// approves them.
func (s *DefaultDoctorService) RegisterDoctor(req models.DoctorRegistrationRequest) (*AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("registration failed, please try again")
	}

	d := &models.Doctor{
		ID:              uuid.New().String(),
		FullName:        req.FullName,
		Email:           req.Email,
		PasswordHash:    string(hash),
		PhoneNumber:     req.PhoneNumber,
		Specialization:  req.Specialization,
		Qualification:   req.Qualification,
		ExperienceYears: req.ExperienceYears,
		ConsultationFee: req.ConsultationFee,
		Approved:        false,
	}
	if err := s.Repo.Create(d); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	return s.issueToken(d)
}

// AuthenticateDoctor verifies credentials and issues a fresh token. Any
// previously issued token for the account is invalidated.
func (s *DefaultDoctorService) AuthenticateDoctor(email, password string) (*AuthResponse, error) {
	d, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("AuthenticateDoctor: failed to fetch doctor", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if d == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueToken(d)
}

func (s *DefaultDoctorService) issueToken(d *models.Doctor) (*AuthResponse, error) {
	token, err := utils.GenerateToken(d.ID, d.Email, utils.RoleDoctor, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateSetDocument(d.ID, bson.M{"token_hash": tokenHash, "updated_at": time.Now()}); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	d.TokenHash = tokenHash

	cacheKey := utils.AuthCachePrefix + utils.RoleDoctor + ":" + d.ID
	if err := utils.GetAuthCacheClient().Set(context.Background(), cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to prime auth cache", zap.Error(err))
	}

	return &AuthResponse{Doctor: d, Token: token}, nil
}

// RevokeAuthToken signs the doctor out everywhere.
func (s *DefaultDoctorService) RevokeAuthToken(id string) error {
	if err := s.Repo.UpdateSetDocument(id, bson.M{"token_hash": "", "updated_at": time.Now()}); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	cacheKey := utils.AuthCachePrefix + utils.RoleDoctor + ":" + id
	if err := utils.GetAuthCacheClient().Del(context.Background(), cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("Failed to clear auth cache", zap.Error(err))
	}
	return nil
}

// UpdatePassword verifies the current password before setting a new one and
// revokes the active session.
func (s *DefaultDoctorService) UpdatePassword(id, currentPassword, newPassword string) error {
	d, err := s.Repo.GetByID(id)
	if err != nil || d == nil {
		return fmt.Errorf("doctor not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to update password")
	}
	if err := s.Repo.UpdateSetDocument(id, bson.M{"password_hash": string(hash), "updated_at": time.Now()}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return s.RevokeAuthToken(id)
}

// InitiatePasswordReset sends a reset OTP to the account's phone number.
func (s *DefaultDoctorService) InitiatePasswordReset(email string) error {
	d, err := s.Repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to initiate password reset")
	}
	if d == nil {
		// Do not reveal whether the account exists.
		return nil
	}
	return utils.InitiatePasswordResetOTP(d.ID, d.PhoneNumber)
}

// CompletePasswordReset verifies the OTP and sets the new password.
func (s *DefaultDoctorService) CompletePasswordReset(email, otp, newPassword string) error {
	d, err := s.Repo.GetByEmail(email)
	if err != nil || d == nil {
		return fmt.Errorf("password reset failed")
	}
	if err := utils.VerifyPasswordResetOTP(d.ID, otp); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to reset password")
	}
	if err := s.Repo.UpdateSetDocument(d.ID, bson.M{"password_hash": string(hash), "updated_at": time.Now()}); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return s.RevokeAuthToken(d.ID)
}
