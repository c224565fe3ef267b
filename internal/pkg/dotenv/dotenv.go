package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

var ErrNoFile = errors.New("env file not found")

var portFlag = flag.String("port", "", "Server port (overrides PORT environment variable)")

// LoadIfExists подгружает переменные из файла, не перетирая уже заданные в окружении.
// Флаг -port переопределяет PORT.
func LoadIfExists(path string) error {
	err := parsePortFlag()
	if err != nil {
		return err
	}

	_, err = os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNoFile
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	err = godotenv.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func parsePortFlag() error {
	if !flag.Parsed() {
		flag.Parse()
	}

	if *portFlag != "" {
		err := os.Setenv("PORT", *portFlag)
		if err != nil {
			return fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return nil
}
