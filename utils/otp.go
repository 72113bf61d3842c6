package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const otpTTL = 5 * time.Minute

// generateSecureOTP generates a secure random OTP of the specified length.
// It returns a base32 encoded string (without padding) truncated to the desired length.
func generateSecureOTP(length int) (string, error) {
	numBytes := (length*5 + 7) / 8 // Calculate the required number of bytes.
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	otp := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(otp) > length {
		otp = otp[:length]
	}
	return otp, nil
}

// SendSMSMessage sends a text message to the given phone number.
// Replace the body of this function with your actual SMS gateway integration.
// For now, we log the outgoing message.
func SendSMSMessage(phoneNumber, message string) error {
	GetLogger().Sugar().Infof("Sending SMS to %s: %s", phoneNumber, message)
	return nil
}

// InitiatePasswordResetOTP generates an OTP, stores it in Redis with a 5-minute TTL,
// and sends it to the account's phone number.
func InitiatePasswordResetOTP(accountID, phoneNumber string) error {
	// Generate a secure 6-character OTP.
	otp, err := generateSecureOTP(6)
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}
	otpKey := fmt.Sprintf("otp:reset:%s", accountID)

	ctx := context.Background()
	client := GetOTPCacheClient()
	if client == nil {
		return fmt.Errorf("OTP cache client not initialized")
	}

	if err := client.Set(ctx, otpKey, otp, otpTTL).Err(); err != nil {
		GetLogger().Error("Failed to cache OTP", zap.Error(err))
		return fmt.Errorf("failed to initiate password reset OTP")
	}

	message := fmt.Sprintf("Your MediCore verification code is: %s. It expires in 5 minutes.", otp)
	if err := SendSMSMessage(phoneNumber, message); err != nil {
		GetLogger().Error("Failed to send OTP", zap.Error(err))
		return fmt.Errorf("failed to send OTP")
	}
	return nil
}

// VerifyPasswordResetOTP checks the provided OTP against the cached one and
// consumes it on success.
func VerifyPasswordResetOTP(accountID, otp string) error {
	otpKey := fmt.Sprintf("otp:reset:%s", accountID)
	ctx := context.Background()
	client := GetOTPCacheClient()
	if client == nil {
		return fmt.Errorf("OTP cache client not initialized")
	}

	stored, err := client.Get(ctx, otpKey).Result()
	if err == redis.Nil {
		return fmt.Errorf("OTP expired or not found")
	}
	if err != nil {
		return fmt.Errorf("failed to look up OTP: %w", err)
	}
	if stored != otp {
		return fmt.Errorf("invalid OTP")
	}
	return client.Del(ctx, otpKey).Err()
}
