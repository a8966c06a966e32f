package domain

// Article is a single feed entry collected for the current run.
type Article struct {
	Title   string
	Link    string
	Summary string
	Source  string
	// Date is the publication date as "YYYY-MM-DD", or empty when the
	// entry carried no resolvable timestamp.
	Date string
}

// Digest describes one persisted digest page, derived from its file name.
type Digest struct {
	Filename    string
	Date        string
	DisplayDate string
}
