package domain

// Migration is a SQL script identified by its file name. Nothing records
// whether it has been applied before.
type Migration struct {
	Name string
	Path string
	SQL  string
}
