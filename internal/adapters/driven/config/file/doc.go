// Package file persists configuration in a TOML file under the user's
// home directory (~/.invoicename/config.toml).
package file
