package database

// Preparer sets up the test database before a run
type Preparer interface {
	Prepare(fresh bool) error
}
