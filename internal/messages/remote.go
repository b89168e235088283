package messages

// Remote session, provisioning and backup status lines.
const (
	ProvisionUploading       = "Sending telegraf.conf to the gateway .."
	ProvisionRestarting      = "Restarting the telegraf service on the gateway .."
	ProvisionSettling        = "Waiting for the service to start .."
	ProvisionActiveFmt       = "Telegraf service restarted successfully. Current status: %s"
	ProvisionNotActiveFmt    = "Telegraf service restarted, but it's not active. Current status: %s"
	ProvisionDetailHeader    = "Detailed Telegraf status:"
	ProvisionLogsHeader      = "Recent Telegraf logs:"
	ProvisionErrorLogsHeader = "Latest Telegraf error logs:"
	ProvisionNoErrorLogs     = "No recent error logs found for Telegraf."
	ProvisionDiagFailedFmt   = "diagnostic step failed: %v"

	BackupInfluxStartFmt = "Backing up InfluxDB to %s"
	BackupCopiedFmt      = "Copied %s (%d bytes)"
	BackupInfluxDoneFmt  = "Backup completed successfully. Files are located at: %s"
	BackupGrafanaDoneFmt = "Grafana configuration backed up to %s"
)
