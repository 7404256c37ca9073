package utils

// ApplicationName is the binary name used in usage text and the configuration file name.
const ApplicationName = "ai"

// ConfigFileName is the name of the per-user configuration file stored in the home directory.
const ConfigFileName = ".ai_config"

// ErrorLogFormat defines the formatting string for error log messages.
const ErrorLogFormat = "Error: %v"

// LoggerInitializationFailedMessageFormat reports a logger that could not be constructed.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
