package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/terraincognita07/mahwari/internal/models"
	"github.com/terraincognita07/mahwari/internal/security"
)

const PinLength = 4

var (
	ErrPinFormat            = errors.New("pin must be exactly 4 digits")
	ErrPinInvalid           = errors.New("invalid pin")
	ErrPinNotConfigured     = errors.New("pin is not configured")
	ErrPinAlreadyConfigured = errors.New("pin is already configured")
	ErrPinMustDiffer        = errors.New("new pin must differ from current pin")
)

type PinSettingsRepository interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Delete(key string) error
}

type PinService struct {
	settings PinSettingsRepository
}

func NewPinService(settings PinSettingsRepository) *PinService {
	return &PinService{settings: settings}
}

func ValidatePinFormat(pin string) error {
	if len(pin) != PinLength {
		return ErrPinFormat
	}
	for index := 0; index < len(pin); index++ {
		if pin[index] < '0' || pin[index] > '9' {
			return ErrPinFormat
		}
	}
	return nil
}

func NormalizePin(raw string) (string, error) {
	pin := strings.TrimSpace(raw)
	if err := ValidatePinFormat(pin); err != nil {
		return "", err
	}
	return pin, nil
}

func (service *PinService) IsConfigured() (bool, error) {
	_, found, err := service.loadHash()
	if err != nil {
		return false, err
	}
	return found, nil
}

// Setup stores the first PIN. It refuses to overwrite an existing one.
func (service *PinService) Setup(rawPin string) error {
	pin, err := NormalizePin(rawPin)
	if err != nil {
		return err
	}

	configured, err := service.IsConfigured()
	if err != nil {
		return err
	}
	if configured {
		return ErrPinAlreadyConfigured
	}
	return service.store(pin)
}

func (service *PinService) Verify(rawPin string) error {
	hash, found, err := service.loadHash()
	if err != nil {
		return err
	}
	if !found {
		return ErrPinNotConfigured
	}

	pin, err := NormalizePin(rawPin)
	if err != nil {
		return ErrPinInvalid
	}
	if !security.PINMatches(hash, pin) {
		return ErrPinInvalid
	}
	return nil
}

func (service *PinService) Change(currentPin string, newPin string) error {
	normalizedNew, err := NormalizePin(newPin)
	if err != nil {
		return err
	}
	if err := service.Verify(currentPin); err != nil {
		return err
	}
	if strings.TrimSpace(currentPin) == normalizedNew {
		return ErrPinMustDiffer
	}
	return service.store(normalizedNew)
}

// Set replaces the PIN without checking the current one. Only the local CLI uses it.
func (service *PinService) Set(rawPin string) error {
	pin, err := NormalizePin(rawPin)
	if err != nil {
		return err
	}
	return service.store(pin)
}

// Reset replaces the PIN with a random one and returns it in clear text.
func (service *PinService) Reset() (string, error) {
	pin, err := security.RandomDigits(PinLength)
	if err != nil {
		return "", fmt.Errorf("generate pin: %w", err)
	}
	if err := service.store(pin); err != nil {
		return "", err
	}
	return pin, nil
}

func (service *PinService) Clear() error {
	if err := service.settings.Delete(models.SettingUserPIN); err != nil {
		return fmt.Errorf("clear pin: %w", err)
	}
	return nil
}

// Fingerprint identifies the stored hash and the current session epoch without
// exposing either. It changes whenever the PIN changes or sessions are revoked.
func (service *PinService) Fingerprint() (string, error) {
	hash, found, err := service.loadHash()
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrPinNotConfigured
	}
	epoch, _, err := service.settings.Get(models.SettingSessionEpoch)
	if err != nil {
		return "", fmt.Errorf("load session epoch: %w", err)
	}

	sum := sha256.Sum256([]byte(hash + "\x00" + epoch))
	return hex.EncodeToString(sum[:8]), nil
}

// RevokeSessions invalidates every session issued so far.
func (service *PinService) RevokeSessions() error {
	if err := service.settings.Set(models.SettingSessionEpoch, uuid.NewString()); err != nil {
		return fmt.Errorf("rotate session epoch: %w", err)
	}
	return nil
}

func (service *PinService) store(pin string) error {
	hash, err := security.HashPIN(pin)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}
	if err := service.settings.Set(models.SettingUserPIN, hash); err != nil {
		return fmt.Errorf("store pin: %w", err)
	}
	return nil
}

func (service *PinService) loadHash() (string, bool, error) {
	hash, found, err := service.settings.Get(models.SettingUserPIN)
	if err != nil {
		return "", false, fmt.Errorf("load pin: %w", err)
	}
	hash = strings.TrimSpace(hash)
	if !found || hash == "" {
		return "", false, nil
	}
	return hash, true, nil
}
