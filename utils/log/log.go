package log

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/AndriiIshchenko/social-media-api/utils/dotenv"
	"github.com/AndriiIshchenko/social-media-api/utils/flag"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()

	// Structured JSON in production, plain text to stderr for readability
	// everywhere else.
	logger.SetOutput(os.Stderr)
	if dotenv.IsProdEnv() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	Log = logger.WithFields(
		logrus.Fields{"service": flag.ServiceName, "is_development": !dotenv.IsProdEnv()},
	)
}
