package launcher

import (
	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

// DefaultConfig returns the launcher defaults before any flag overrides.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Verbosity: 3, // info
			Format:    "text",
		},
	}
}

// verbosityLevels maps the numeric --log.verbosity scale onto logrus levels.
var verbosityLevels = []logrus.Level{
	logrus.FatalLevel,
	logrus.ErrorLevel,
	logrus.WarnLevel,
	logrus.InfoLevel,
	logrus.DebugLevel,
	logrus.TraceLevel,
}

// setupLogger configures the process-wide logger from the logging config and
// attaches the optional Sentry hook for error-and-above reporting.
func setupLogger(cfg LoggingConfig) error {
	log := logrus.StandardLogger()

	v := cfg.Verbosity
	if v < 0 {
		v = 0
	}
	if v >= len(verbosityLevels) {
		v = len(verbosityLevels) - 1
	}
	log.SetLevel(verbosityLevels[v])

	if cfg.Format == "json" {
		log.SetFormatter(new(logrus.JSONFormatter))
	} else {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: cfg.Color})
	}

	if cfg.SentryDSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.SentryDSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return err
		}
		log.AddHook(hook)
	}
	return nil
}
