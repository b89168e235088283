// Package envfile parses .env files used to supply default parameters.
package envfile

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/conn-castle/iotprov/internal/messages"
)

// Parse reads .env content into a key-value map.
// Blank lines and # comments are skipped; values may be single- or
// double-quoted; an optional "export " prefix is tolerated.
func Parse(content string) (map[string]string, error) {
	env := make(map[string]string)
	if content == "" {
		return env, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.EnvfileLineErrorFmt, lineNo, err)
		}
		if !ok {
			continue
		}
		env[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.EnvfileReadFailedFmt, err)
	}

	return env, nil
}

// parseLine parses a single .env line and returns key/value when present.
func parseLine(line string) (string, string, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}
	if strings.HasPrefix(trimmed, "export ") {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))
	}
	idx := strings.Index(trimmed, "=")
	if idx <= 0 {
		return "", "", false, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	key := strings.TrimSpace(trimmed[:idx])
	if key == "" {
		return "", "", false, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	value := strings.TrimSpace(trimmed[idx+1:])
	if strings.HasPrefix(value, `"`) || strings.HasPrefix(value, `'`) {
		parsed, err := unquote(value)
		if err != nil {
			return "", "", false, err
		}
		value = parsed
	}
	return key, value, true, nil
}

// unquote strips a matching pair of quotes and rejects trailing content.
func unquote(value string) (string, error) {
	quote := value[0]
	end := strings.IndexByte(value[1:], quote)
	if end < 0 {
		return "", fmt.Errorf(messages.EnvfileUnterminated)
	}
	rest := strings.TrimSpace(value[end+2:])
	if rest != "" && !strings.HasPrefix(rest, "#") {
		return "", fmt.Errorf(messages.EnvfileTrailingContent)
	}
	return value[1 : end+1], nil
}
