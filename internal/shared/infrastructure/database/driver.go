// Package database opens the SQL database behind the table task store.
package database

import (
	"strconv"
	"strings"
)

// Driver names a SQL backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

func (d Driver) String() string {
	return string(d)
}

// Supported reports whether a backend package exists for d.
func (d Driver) Supported() bool {
	return d == DriverPostgres || d == DriverSQLite
}

// Rebind rewrites '?' placeholders into the form the driver expects.
// Queries must not contain literal question marks.
func Rebind(d Driver, query string) string {
	if d != DriverPostgres || !strings.Contains(query, "?") {
		return query
	}

	parts := strings.Split(query, "?")
	var b strings.Builder
	b.WriteString(parts[0])
	for i, part := range parts[1:] {
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(part)
	}
	return b.String()
}
