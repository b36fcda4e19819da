package model

// ChangelogRecord is one row of the document's change history, extracted
// from the delimited changelog region independently of the main parse.
type ChangelogRecord struct {
	Version     string
	Date        string
	Description string
}
