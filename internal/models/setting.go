package models

// SettingUserPIN stores the bcrypt hash of the unlock PIN.
const SettingUserPIN = "user_pin"

// SettingSessionEpoch is rotated to revoke every issued session at once.
const SettingSessionEpoch = "session_epoch"

type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}
