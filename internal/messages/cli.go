package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "iotprov"
	// RootShort is the short description for the root command.
	RootShort = "Generate and ship Telegraf configs for IOT2050 gateways"
	RootLong  = "iotprov converts OPC-UA address-space XML exports into a Telegraf\nconfiguration, optionally sends it to an IOT2050 gateway over SSH and\nrestarts Telegraf there, and can back up the gateway's InfluxDB data and\nGrafana configuration."

	// VersionTemplate renders the --version output.
	VersionTemplate = "{{.Version}}\n"
	VersionFullFmt  = "%s (commit %s, built %s)"

	FlagFolder        = "Folder containing the OPC-UA XML files"
	FlagIP            = "OPC-UA server IP address"
	FlagUsername      = "OPC-UA username"
	FlagPassword      = "OPC-UA password"
	FlagIOTPassword   = "IOT2050 root password"
	FlagIOTHost       = "IOT2050 host address and port (host:port)"
	FlagTokenFolder   = "Folder containing the InfluxDB token.txt"
	FlagSend          = "Send the existing telegraf.conf to the IOT2050 and exit"
	FlagBackupInflux  = "Back up the InfluxDB database from the IOT2050 and exit"
	FlagBackupGrafana = "Back up the Grafana configuration from the IOT2050 and exit"
	FlagConfig        = "Path to the iotprov config file"

	SummaryHeader      = "Current configuration:"
	SummaryRule        = "====================="
	SummaryFolderFmt   = "Folder: %s"
	SummaryIPFmt       = "IP: %s"
	SummaryUsernameFmt = "Username: %s"
	SummaryIOTHostFmt  = "IOT host: %s"
	SummaryTokenFmt    = "Token folder: %s"
	SummarySendFmt     = "Send config: %t"
	SummaryInfluxFmt   = "Backup InfluxDB: %t"
	SummaryGrafanaFmt  = "Backup Grafana: %t"

	GenerateFoundFilesHeader = "Found the following XML files in the folder:"
	GenerateFileEntryFmt     = "%d. %s"
	GenerateNoXMLFmt         = "no XML files found in %s"
	GenerateWrittenFmt       = "Config file written to %s"
	GenerateManualCopy       = "Config file generated. Copy it to the gateway and restart Telegraf manually."
	GenerateDiffHeaderFmt    = "telegraf.conf already exists in %s; changes to be written:"
	GenerateDiffTruncated    = "(diff truncated)"

	SendMissingConfigFmt = "telegraf.conf does not exist in %s"

	CheckUse         = "check"
	CheckShort       = "Run offline preflight checks on folder, XML files and parameters"
	CheckOKFmt       = "ok: %s"
	CheckFailFmt     = "fail: %s"
	CheckFailed      = "preflight checks failed"
	CheckFolderFmt   = "folder %s is readable"
	CheckXMLCountFmt = "%d XML file(s) found"
	CheckParseFmt    = "%s parses (%d nodes)"
	CheckTokenFmt    = "token file %s present"
	CheckNoTokenFmt  = "no token file at %s (token will be prompted for)"
	CheckIPFmt       = "OPC IP %s"
	CheckTargetFmt   = "IOT host %s"
	CheckConfFmt     = "existing %s is valid TOML"
)
