package main

import (
	"fmt"
	"os"

	"github.com/lshigami/vocabtest/config"
	"github.com/lshigami/vocabtest/internal/i18n"
	"github.com/lshigami/vocabtest/internal/logger"
	"github.com/spf13/cobra"
)

// @title Vocabulary Test API
// @version 1.0
// @description Image-to-word vocabulary tests for classrooms: teachers manage classes, students and word categories; students answer randomized multiple choice questions and teachers review the results.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "vocabtest",
		Short:        "Vocabulary test backend",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.String("db-driver", "", "Database driver (postgres, sqlite)")
	pf.String("db-path", "", "SQLite database path")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.Bool("log-pretty", false, "Human readable console logs")
	pf.StringP("lang", "l", "", "Fallback language for messages (en, uz)")

	serve := serveCmd()
	root.AddCommand(serve, migrateCmd(), exportCmd(), tokenCmd())

	// "serve" is the default when no subcommand is given.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"port":        "SERVER_PORT",
	"gin-mode":    "GIN_MODE",
	"db-driver":   "DATABASE_DRIVER",
	"db-path":     "DATABASE_PATH",
	"answer-mode": "QUIZ_ANSWER_MODE",
	"log-level":   "LOG_LEVEL",
	"log-pretty":  "LOG_PRETTY",
	"lang":        "APP_LANG",
}

// loadConfig reads .env and the environment, applies any flags the user set,
// then initialises logging and localization from the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.NewViper()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
	if err := i18n.Init(cfg.Lang); err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	return cfg, nil
}
