// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// MyAnimeList Credentials & Token Handling - these keys manage the OAuth2 client registration and token storage.
const (
	MalClientID     = "mal.client_id"
	MalClientSecret = "mal.client_secret"
	MalRedirectPort = "mal.redirect_port"
	MalTokenKeyring = "mal.token_keyring"
)

// Date Fixer - these keys configure the interactive list repair loop.
const (
	FixerWaitTime    = "fixer.wait_time"
	FixerAutoSkip    = "fixer.auto_skip"
	FixerListLimit   = "fixer.list_limit"
	FixerShowHistory = "fixer.show_history"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern general CLI behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
