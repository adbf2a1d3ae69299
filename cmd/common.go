package cmd

import (
	"fmt"
	"os"

	"github.com/cwru-rcci/metarootbus/internal/activity"
	"github.com/cwru-rcci/metarootbus/internal/config"
	"github.com/cwru-rcci/metarootbus/internal/reactions"
	"github.com/cwru-rcci/metarootbus/internal/router"
	"github.com/cwru-rcci/metarootbus/internal/transport"
	"github.com/cwru-rcci/metarootbus/pkg/logging"
)

const postmarkServerTokenEnvVar = "POSTMARK_SERVER_TOKEN"

// loadConfig loads the layered configuration for roleKey, honoring an
// explicit --config override before falling back to discovery.
func loadConfig(roleKey string) (config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile, roleKey)
	}
	return config.Load(roleKey)
}

// configureLogging wires pkg/logging's console+file sinks from the
// SCREEN_VERBOSITY/FILE_VERBOSITY/LOG_FILE configuration keys.
func configureLogging(cfg config.Config) error {
	screen := logging.ParseLevel(cfg.GetDefault(config.KeyScreenVerbosity, "INFO"))
	file := logging.ParseLevel(cfg.GetDefault(config.KeyFileVerbosity, "INFO"))

	if cfg.LogFileDisabled() {
		logging.Configure(os.Stdout, nil, screen, file)
		return nil
	}

	path := cfg.GetDefault(config.KeyLogFile, "metarootbus.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	logging.Configure(os.Stdout, f, screen, file)
	return nil
}

// buildJournal returns a no-op journal when ACTIVITY_STREAM_CLASS is absent
// or $NONE. Any other ACTIVITY_STREAM_CLASS value selects the SQLite
// journal at ACTIVITY_STREAM_DATABASE; the class name itself does not
// choose among implementations.
func buildJournal(cfg config.Config) (activity.Journal, error) {
	if cfg.ActivityStreamDisabled() {
		return activity.Null{}, nil
	}
	path := cfg.GetDefault(config.KeyActivityStreamDB, "metarootbus-activity.db")
	return activity.NewSQLiteJournal(path)
}

// buildReactions constructs the e-mail notification reaction when both
// REACTION_HANDLER and METAROOT_REACTION_NOTIFY are present in the
// configuration, or a no-op otherwise.
func buildReactions(cfg config.Config) reactions.Reactions {
	if !cfg.ReactionHandlerEnabled() {
		return reactions.Noop{}
	}
	notify, ok := cfg.Get(config.KeyReactionNotify)
	if !ok {
		return reactions.Noop{}
	}
	from := cfg.GetDefault(config.KeyReactionFrom, notify)
	token := os.Getenv(postmarkServerTokenEnvVar)
	return reactions.NewDefaultReactions(token, from, notify)
}

// buildRouter assembles a Router from the HOOKS list, activity journal,
// reactions, and read-only gate declared in cfg.
func buildRouter(cfg config.Config) (*router.Router, error) {
	journal, err := buildJournal(cfg)
	if err != nil {
		return nil, fmt.Errorf("build activity journal: %w", err)
	}
	react := buildReactions(cfg)
	return router.New(cfg.Hooks(), journal, react, cfg.ReadOnlyEnabled())
}

// buildEndpoint assembles a transport.Endpoint from the broker connection
// keys and MQNAME queue name in cfg.
func buildEndpoint(cfg config.Config) (transport.Endpoint, error) {
	url, err := cfg.BrokerURL()
	if err != nil {
		return transport.Endpoint{}, err
	}
	queue, err := cfg.QueueName()
	if err != nil {
		return transport.Endpoint{}, err
	}
	return transport.Endpoint{URL: url, Queue: queue}, nil
}
