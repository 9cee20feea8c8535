package placard

import "errors"

var (
	ErrReadConfigurationFailure = errors.New("failed to read configuration")
	ErrLoadConfigurationFailure = errors.New("failed to load configuration")

	ErrConfigurationMissingToken = errors.New("configuration missing bot token")
	ErrConfigurationMissingGuild = errors.New("configuration missing guild id")
)
