package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DEV_ENV_FILENAME = ".env.development"
const PROD_ENV_FILENAME = ".env.production"

// InitEnvironmentVariables loads the .env file for goEnv from envDir. Variables
// already present in the environment win over the file.
func InitEnvironmentVariables(envDir, goEnv string) error {
	if os.Getenv("ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	envFile := filepath.Join(envDir, DEV_ENV_FILENAME)
	if goEnv == "production" {
		envFile = filepath.Join(envDir, PROD_ENV_FILENAME)
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s file: %v", envFile, err)
	}

	log.Debugf("Loaded environment from %s", envFile)

	return nil
}

func GetEnv(name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", fmt.Errorf("%s environment variable not set", name)
	}

	return v, nil
}

func GetEnvOrDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}

	return fallback
}
