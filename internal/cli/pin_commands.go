package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/mahwari/internal/db"
	"github.com/terraincognita07/mahwari/internal/services"
	"go.uber.org/zap"
)

type PinResetter interface {
	Reset() (string, error)
}

type PinClearer interface {
	Clear() error
}

type PinSetter interface {
	Set(pin string) error
}

// RunResetPinCommand replaces the PIN with a random one and prints it. Every
// browser session is locked as a side effect.
func RunResetPinCommand(dbPath string, out io.Writer, logger *zap.Logger) error {
	return withPinService(dbPath, logger, func(pins *services.PinService) error {
		return ResetPin(pins, out)
	})
}

// RunClearPinCommand removes the PIN so the next browser visit starts setup again.
func RunClearPinCommand(dbPath string, out io.Writer, logger *zap.Logger) error {
	return withPinService(dbPath, logger, func(pins *services.PinService) error {
		return ClearPin(pins, out)
	})
}

func RunSetPinCommand(dbPath string, pin string, out io.Writer, logger *zap.Logger) error {
	return withPinService(dbPath, logger, func(pins *services.PinService) error {
		return SetPin(pins, pin, out)
	})
}

func ResetPin(pins PinResetter, out io.Writer) error {
	pin, err := pins.Reset()
	if err != nil {
		return fmt.Errorf("reset pin: %w", err)
	}

	fmt.Fprintln(out, "PIN reset successful")
	fmt.Fprintf(out, "Temporary PIN: %s\n", pin)
	fmt.Fprintln(out, "Change it from the settings screen after unlocking.")
	return nil
}

func ClearPin(pins PinClearer, out io.Writer) error {
	if err := pins.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(out, "PIN removed. Open the app to choose a new one.")
	return nil
}

func SetPin(pins PinSetter, pin string, out io.Writer) error {
	if err := pins.Set(pin); err != nil {
		return fmt.Errorf("set pin: %w", err)
	}
	fmt.Fprintln(out, "PIN updated. Existing sessions are locked.")
	return nil
}

func withPinService(dbPath string, logger *zap.Logger, run func(pins *services.PinService) error) error {
	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		_ = db.CloseSQLite(database)
	}()

	repositories := db.NewRepositories(database)
	return run(services.NewPinService(repositories.Settings))
}
