package config

import "github.com/caarlos0/env/v6"

type Config struct {
	Server struct {
		// Port the HTTP API listens on
		Port string `env:"PORT" envDefault:"5250"`

		// Allowed CORS origins, comma separated
		CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	}

	Dataset struct {
		// Path to the static listing dataset
		Path string `env:"DATASET_PATH" envDefault:"data/properties.json"`
	}

	Storage struct {
		// Favorites backend: "file" or "sqlite"
		Backend string `env:"FAVORITES_BACKEND" envDefault:"file"`

		// Path for the file backend
		FilePath string `env:"FAVORITES_FILE" envDefault:"data/favorites.json"`

		// Path for the sqlite backend
		SQLitePath string `env:"FAVORITES_DB" envDefault:"data/homescape.db"`

		// Path for the enquiry database
		EnquiryDBPath string `env:"ENQUIRY_DB" envDefault:"data/enquiries.db"`
	}

	Twilio struct {
		AccountSID string `env:"TWILIO_ACCOUNT_SID"`
		AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
		FromNumber string `env:"TWILIO_PHONE_NUMBER"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
