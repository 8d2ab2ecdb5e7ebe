package db

import (
	"net/url"
	"strings"
)

const preparedBinaryResultParam = "disable_prepared_binary_result"

// PrepareDSN applies connection options to a postgres URL or key/value DSN.
// An explicit disable_prepared_binary_result value in raw always wins.
func PrepareDSN(raw string, disablePreparedBinaryResult bool) string {
	raw = strings.TrimSpace(raw)
	if !disablePreparedBinaryResult || raw == "" {
		return raw
	}

	if isURLDSN(raw) {
		parsed, err := url.Parse(raw)
		if err != nil {
			return raw
		}
		query := parsed.Query()
		if query.Get(preparedBinaryResultParam) == "" {
			query.Set(preparedBinaryResultParam, "yes")
			parsed.RawQuery = query.Encode()
		}
		return parsed.String()
	}

	if _, ok := keyValueDSNParam(raw, preparedBinaryResultParam); ok {
		return raw
	}
	return raw + " " + preparedBinaryResultParam + "=yes"
}

// Name returns the database name of a DSN, or "" when it names none.
func Name(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if isURLDSN(dsn) {
		parsed, err := url.Parse(dsn)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	name, _ := keyValueDSNParam(dsn, "dbname")
	return name
}

func isURLDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func keyValueDSNParam(dsn, key string) (string, bool) {
	for _, token := range strings.Fields(dsn) {
		k, v, ok := strings.Cut(token, "=")
		if !ok || k != key {
			continue
		}
		return strings.Trim(v, `"'`), true
	}
	return "", false
}
