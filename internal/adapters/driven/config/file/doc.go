// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML configuration at ~/.pardis/config.toml, exposed as
//     flattened dot-notation keys ("sources.relay_url")
package file
