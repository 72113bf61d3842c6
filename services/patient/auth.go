package patient

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

// RegisterPatient creates a new patient account and signs it in.
func (s *DefaultPatientService) RegisterPatient(req models.PatientRegistrationRequest) (*AuthResponse, error) {
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

	p := &models.Patient{
		ID:           uuid.New().String(),
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		PhoneNumber:  req.PhoneNumber,
		DateOfBirth:  req.DateOfBirth,
		Gender:       req.Gender,
		Address:      req.Address,
		BloodGroup:   req.BloodGroup,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	return s.issueToken(p)
}

// AuthenticatePatient verifies credentials and issues a fresh token. Any
// previously issued token for the account is invalidated.
func (s *DefaultPatientService) AuthenticatePatient(email, password string) (*AuthResponse, error) {
	p, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("AuthenticatePatient: failed to fetch patient", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if p == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueToken(p)
}

// issueToken generates a JWT, stores its hash on the record and primes the
// auth cache so the middleware can validate without a DB round trip.
func (s *DefaultPatientService) issueToken(p *models.Patient) (*AuthResponse, error) {
	token, err := utils.GenerateToken(p.ID, p.Email, utils.RolePatient, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateSetDocument(p.ID, bson.M{"token_hash": tokenHash, "updated_at": time.Now()}); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	p.TokenHash = tokenHash

	cacheKey := utils.AuthCachePrefix + utils.RolePatient + ":" + p.ID
	if err := utils.GetAuthCacheClient().Set(context.Background(), cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to prime auth cache", zap.Error(err))
	}

	return &AuthResponse{Patient: p, Token: token}, nil
}

// RevokeAuthToken signs the patient out everywhere.
func (s *DefaultPatientService) RevokeAuthToken(id string) error {
	if err := s.Repo.UpdateSetDocument(id, bson.M{"token_hash": "", "updated_at": time.Now()}); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	cacheKey := utils.AuthCachePrefix + utils.RolePatient + ":" + id
	if err := utils.GetAuthCacheClient().Del(context.Background(), cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("Failed to clear auth cache", zap.Error(err))
	}
	return nil
}

// UpdatePassword verifies the current password before setting a new one and
// revokes the active session.
func (s *DefaultPatientService) UpdatePassword(id, currentPassword, newPassword string) error {
	p, err := s.Repo.GetByID(id)
	if err != nil || p == nil {
		return fmt.Errorf("patient not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(currentPassword)); err != nil {
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
func (s *DefaultPatientService) InitiatePasswordReset(email string) error {
	p, err := s.Repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to initiate password reset")
	}
	if p == nil {
		// Do not reveal whether the account exists.
		return nil
	}
	return utils.InitiatePasswordResetOTP(p.ID, p.PhoneNumber)
}

// CompletePasswordReset verifies the OTP and sets the new password.
func (s *DefaultPatientService) CompletePasswordReset(email, otp, newPassword string) error {
	p, err := s.Repo.GetByEmail(email)
	if err != nil || p == nil {
		return fmt.Errorf("password reset failed")
	}
	if err := utils.VerifyPasswordResetOTP(p.ID, otp); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to reset password")
	}
	if err := s.Repo.UpdateSetDocument(p.ID, bson.M{"password_hash": string(hash), "updated_at": time.Now()}); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return s.RevokeAuthToken(p.ID)
}
