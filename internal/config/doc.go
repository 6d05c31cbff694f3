// Package config handles loading and validation of cattree configuration.
//
// Configuration is read from ~/.config/cattree/config.toml (or the file named
// by CATTREE_CONFIG). A .env file in the working directory is loaded first so
// its variables take part in the overrides below.
//
// # Configuration Sources (highest priority first)
//
//   - command-line flags (crawl --root, --max-depth, --output)
//   - CATTREE_ROOT, CATTREE_MAX_DEPTH, CATTREE_OUTPUT, CATTREE_API_URL, CATTREE_HISTORY_DB
//   - Config file settings
//   - Default values
//
// # Example
//
//	root_category = "Orkney Islands"
//	max_depth = 10
//	output = "data/orkney-categories.json"
//	delay = "100ms"
//	timeout = "30s"
//	user_agent = "my-inventory-bot/1.0 (me@example.org)"
//	history = true
package config
