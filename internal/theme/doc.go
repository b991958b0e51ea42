// Package theme manages the client color theme and its on-disk settings file.
//
// Settings live under the user config dir as YAML. Unknown theme names
// degrade silently to the default.
package theme
