// Package config loads aperture's settings.
//
// # Resolution Order
//
//  1. Built-in defaults (Default)
//  2. ~/.config/aperture/config.toml, or the path passed to Load
//  3. Environment: APERTURE_API_URL, APERTURE_TOKEN_FILE, APERTURE_LOG_LEVEL
//
// LoadEnvFile reads a .env file into the environment first, so values there
// take part in step 3 without overriding variables already exported. The
// -api flag in cmd/aperture is applied after Load and wins over everything.
//
// # File Format
//
//	api_url = "https://backend.jayaphotography.in/api/v1"
//	token_file = "~/.config/aperture/token"
//	request_timeout = "10s"
//
//	[log]
//	level = "info"
//	format = "text"
//	file = "~/.local/state/aperture/aperture.log"
//
//	[log.fluent]
//	enabled = false
//	host = "127.0.0.1"
//	port = 24224
//
// A missing file yields defaults. Empty values fall back to defaults. Paths
// beginning with ~ are expanded against the home directory and made
// absolute. Malformed TOML, a non-positive request_timeout or an unknown
// log.format fail with an error mentioning "parse config".
package config
