// Package viz renders computed systems for the terminal: ascii time
// series charts and styled balance reports.
package viz
