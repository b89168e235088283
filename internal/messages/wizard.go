package messages

// Interactive wizard prompts.
const (
	WizardRequiresTerminal = "this step requires an interactive terminal"

	WizardUseFilesPrompt = "Use these files?"
	WizardModeNoteTitle  = "Poll vs listener"
	WizardModeNoteBody   = "OPC clients can be active (standard), pulling data every interval, or passive (listeners), subscribing to change notifications."
	WizardListenerPrompt = "Select the files that should be listeners"

	WizardNamespaceFmt        = "Namespace number for %s"
	WizardIntervalFmt         = "Interval in ms for %s (default 1000ms)"
	WizardSamplingIntervalFmt = "Sampling interval in ms for %s (default 1000ms)"

	WizardTokenReadFmt      = "InfluxDB token read from %s"
	WizardTokenPrompt       = "No token.txt found, enter the InfluxDB token"
	WizardTokenReadErrorFmt = "failed to read InfluxDB token from %s: %v"

	WizardSendPrompt = "Send the config file to the IOT box now?"
	WizardAborted    = "aborted"

	WizardGroupNameFmt = "Group name for %s: %s"
)
