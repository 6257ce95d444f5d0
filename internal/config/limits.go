package config

const (
	// MaxContentBytes is the maximum byte length of analyze content.
	MaxContentBytes = 100000

	// MaxContentWords is the maximum word count of analyze content.
	MaxContentWords = 10000

	// MaxTitleLength is the maximum length for analyze titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxTitleLength = 255

	// MaxAPIKeyLength is the maximum accepted length of a presented API key.
	// Anything longer is rejected before it reaches hashing or lookup.
	MaxAPIKeyLength = 256

	// DocumentListLimit is the hard ceiling on documents returned by the
	// list endpoint. Not a page size; there is no pagination cursor.
	DocumentListLimit = 100

	// WordsPerMinute is the reading speed used for reading time estimates.
	WordsPerMinute = 200

	// FallbackSummaryLength caps the summary extracted from a raw model
	// reply when its JSON cannot be parsed.
	FallbackSummaryLength = 1000
)
