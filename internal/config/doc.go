// Package config loads model definitions from yaml and assembles them
// into runnable systems.
package config
