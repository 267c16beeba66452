package domain

// Summary counts what a run did.
type Summary struct {
	Directories int
	MissingDirs int
	ListFailed  int
	Files       int
	Folders     int
	Changed     int
	Skipped     int
	Failed      int
	DryRun      bool
}

// Entries is the number of matched files and folders visited.
func (s Summary) Entries() int {
	return s.Files + s.Folders
}

// HasFailures reports whether any write failed or any directory could not
// be read.
func (s Summary) HasFailures() bool {
	return s.Failed > 0 || s.ListFailed > 0
}
