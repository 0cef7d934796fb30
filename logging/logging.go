// Package logging contains the structured logger used by the importer and its command line host.
// Entries are zap entries fanned out to appenders; named loggers take their level from pattern
// configuration.
package logging

// NewBlankLogger returns a debug level logger in UTC with no appenders.
func NewBlankLogger(name string) Logger {
	return newImpl(name, DEBUG, true)
}
