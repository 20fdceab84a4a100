package keywordset

import "errors"

var (
	ErrEmptyTaxonomy        = errors.New("keyword taxonomy has no sets")
	ErrUnsupportedFormat    = errors.New("unsupported taxonomy file format")
	ErrFailedToParse        = errors.New("failed to parse keyword taxonomy")
	ErrFailedToReadFile     = errors.New("failed to read keyword taxonomy file")
	ErrTaxonomyNotFound     = errors.New("keyword taxonomy not found")
	ErrFailedToStore        = errors.New("failed to store keyword taxonomy")
	ErrWatcherAlreadyActive = errors.New("taxonomy watcher already running")

	ErrSchedulerAlreadyActive = errors.New("taxonomy refresh already scheduled")
	ErrInvalidSchedule        = errors.New("invalid taxonomy refresh schedule")
)
