// Package timezone holds the application time zone.
//
// Call Init once at startup with APP_TIMEZONE. Until then, and when the name
// cannot be loaded, every helper works in UTC. Names must come from the IANA
// database, for example "Asia/Jakarta" or "Europe/London".
package timezone
