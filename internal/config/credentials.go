package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Credentials are the login name and password sent to the server.
type Credentials struct {
	Username string
	Password string
}

// LoadCredentials reads the login credentials from the environment,
// loading a .env file first when one is present.
func LoadCredentials() Credentials {
	_ = godotenv.Load()

	creds := Credentials{
		Username: os.Getenv("POKERCLI_USERNAME"),
		Password: os.Getenv("POKERCLI_PASSWORD"),
	}
	if creds.Username == "" {
		creds.Username = "testuser"
	}
	if creds.Password == "" {
		creds.Password = "testpass"
	}
	return creds
}
