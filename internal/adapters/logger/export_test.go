package logger

// Exported for white-box testing of the error chain rendering.
var (
	CollectErrorEntriesExported = collectErrorEntries
	FormatErrorEntriesExported  = formatErrorEntries
)
