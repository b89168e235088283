package messages

// Configuration loading and validation messages.
const (
	ConfigReadFileFmt    = "failed to read config file %s: %v"
	ConfigParseFileFmt   = "failed to parse config file %s: %v"
	ConfigExpandPathFmt  = "failed to expand path %q: %v"
	ConfigInvalidIPFmt   = "invalid IP address format for %q, expecting something like: 192.168.0.1"
	ConfigInvalidHostFmt = "invalid IOT host format for %q, expecting something like: 192.168.0.1:22"

	EnvfileLineErrorFmt     = "line %d: %v"
	EnvfileReadFailedFmt    = "failed to read env content: %v"
	EnvfileExpectedKeyValue = "expected KEY=VALUE"
	EnvfileUnterminated     = "unterminated quoted value"
	EnvfileTrailingContent  = "unexpected content after quoted value"
)
