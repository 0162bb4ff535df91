package catalog

import "errors"

var (
	ErrNetwork      = errors.New("network error")
	ErrTimeout      = errors.New("request timed out")
	ErrParse        = errors.New("cannot parse tabular data")
	ErrEmptyDataset = errors.New("no valid rows in dataset")
	ErrNoCachedData = errors.New("no cached data available")
)
