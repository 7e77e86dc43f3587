package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the shared application logger
var Logger = logrus.New()

// InitLogger configures the shared logger from the given level string
// ("debug", "info", "warn", "error"). Unknown levels fall back to info.
func InitLogger(level string) {
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Logger.SetLevel(parsed)
}
