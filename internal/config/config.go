// Package config loads the layered METAROOT configuration file: a GLOBAL
// section overridden by a role-key section, discovered by the search
// order in the configuration file spec and with four broker variables
// overridable from the process environment.
package config

import (
	"fmt"
	"strconv"
)

// Recognized keys, per the configuration schema.
const (
	KeyMQUser              = "MQUSER"
	KeyMQPass              = "MQPASS"
	KeyMQHost              = "MQHOST"
	KeyMQPort              = "MQPORT"
	KeyMQName              = "MQNAME"
	KeyMQHdlr              = "MQHDLR"
	KeyLogFile             = "LOG_FILE"
	KeyScreenVerbosity     = "SCREEN_VERBOSITY"
	KeyFileVerbosity       = "FILE_VERBOSITY"
	KeyHooks               = "HOOKS"
	KeyActivityStreamClass = "ACTIVITY_STREAM_CLASS"
	KeyActivityStreamDB    = "ACTIVITY_STREAM_DATABASE"
	KeyReadOnlyEnabled     = "READ_ONLY_ENABLED"
	KeySSL                 = "SSL"
	KeySSLVerifyMode       = "SSL_VERIFY_MODE"
	KeySSLNoCheckHostname  = "SSL_NOCHECK_HOSTNAME"
	KeyReactionHandler     = "REACTION_HANDLER"
	KeyReactionNotify      = "METAROOT_REACTION_NOTIFY"
	KeyReactionFrom        = "METAROOT_REACTION_FROM"
)

// NoneSentinel is the literal value meaning "disabled" for LOG_FILE and
// ACTIVITY_STREAM_CLASS.
const NoneSentinel = "$NONE"

// Config is a read-only view of a layered GLOBAL+role key/value map. All
// values are stored as strings; HOOKS is stored pre-split since it is the
// one key whose value is a list rather than a scalar.
type Config struct {
	values map[string]string
	hooks  []string
}

// Get returns the string value for key and whether it was present.
func (c Config) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetDefault returns the string value for key, or def if absent.
func (c Config) GetDefault(key, def string) string {
	if v, ok := c.values[key]; ok {
		return v
	}
	return def
}

// Has reports whether key is present, used for presence-only keys like
// READ_ONLY_ENABLED.
func (c Config) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// MQPort returns MQPORT parsed as an integer.
func (c Config) MQPort() (int, error) {
	raw, ok := c.values[KeyMQPort]
	if !ok {
		return 0, fmt.Errorf("config: %s not set", KeyMQPort)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", KeyMQPort, err)
	}
	return n, nil
}

// BrokerURL assembles the amqp[s]:// connection string from MQUSER,
// MQPASS, MQHOST, and MQPORT, using the SSL scheme when SSL is set.
func (c Config) BrokerURL() (string, error) {
	user, ok := c.values[KeyMQUser]
	if !ok {
		return "", fmt.Errorf("config: %s not set", KeyMQUser)
	}
	pass, ok := c.values[KeyMQPass]
	if !ok {
		return "", fmt.Errorf("config: %s not set", KeyMQPass)
	}
	host, ok := c.values[KeyMQHost]
	if !ok {
		return "", fmt.Errorf("config: %s not set", KeyMQHost)
	}
	port, err := c.MQPort()
	if err != nil {
		return "", err
	}
	scheme := "amqp"
	if c.SSLEnabled() {
		scheme = "amqps"
	}
	return fmt.Sprintf("%s://%s:%s@%s:%d/", scheme, user, pass, host, port), nil
}

// QueueName returns MQNAME, the durable queue this role binds to.
func (c Config) QueueName() (string, error) {
	name, ok := c.values[KeyMQName]
	if !ok {
		return "", fmt.Errorf("config: %s not set", KeyMQName)
	}
	return name, nil
}

// ReadOnlyEnabled reports whether the read-only gate is enabled: presence
// of READ_ONLY_ENABLED with any value turns it on.
func (c Config) ReadOnlyEnabled() bool {
	return c.Has(KeyReadOnlyEnabled)
}

// ActivityStreamDisabled reports whether ACTIVITY_STREAM_CLASS is the
// $NONE sentinel (or absent, which is treated the same way).
func (c Config) ActivityStreamDisabled() bool {
	v, ok := c.values[KeyActivityStreamClass]
	return !ok || v == NoneSentinel
}

// LogFileDisabled reports whether LOG_FILE is the $NONE sentinel or
// absent.
func (c Config) LogFileDisabled() bool {
	v, ok := c.values[KeyLogFile]
	return !ok || v == NoneSentinel
}

// SSLEnabled reports whether the SSL key is present.
func (c Config) SSLEnabled() bool {
	return c.Has(KeySSL)
}

// ReactionHandlerEnabled reports whether REACTION_HANDLER is present,
// turning on the e-mail notification reaction for failed actions.
func (c Config) ReactionHandlerEnabled() bool {
	return c.Has(KeyReactionHandler)
}

// Hooks returns the ordered list of manager plug-in registry keys.
func (c Config) Hooks() []string {
	out := make([]string, len(c.hooks))
	copy(out, c.hooks)
	return out
}
