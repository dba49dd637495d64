package db

// Migrations is the ordered schema history for the science database.
//
// The list is append-only: a released entry is never edited or reordered,
// because its index is what the migrations table records. To change the
// schema, append a new entry at the end.
var Migrations = []Migration{
	{
		Name:      "create_migrations",
		Statement: `CREATE TABLE migrations(id INTEGER)`,
	},
	{
		Name:      "create_experiments",
		Statement: `CREATE TABLE experiments(id INTEGER PRIMARY KEY)`,
	},
	{
		Name: "create_datapoints",
		Statement: `CREATE TABLE datapoints(
	id INTEGER PRIMARY KEY,
	experiment_id INTEGER NOT NULL,
	sha VARCHAR(255) NOT NULL,
	description TEXT NOT NULL,
	status VARCHAR(255) NOT NULL
)`,
	},
	{
		Name:      "create_current_experiment",
		Statement: `CREATE TABLE current_experiment(id INTEGER)`,
	},
	{
		// The legacy pointer table relied on callers to keep it at one row.
		// Rebuild it so a second row is rejected by the database itself, and
		// keep at most one legacy pointer that still names a real experiment.
		Name: "enforce_single_current_experiment",
		Statement: `CREATE TABLE current_experiment_next(
	singleton INTEGER NOT NULL DEFAULT 1 UNIQUE CHECK (singleton = 1),
	id INTEGER NOT NULL REFERENCES experiments(id)
);
INSERT INTO current_experiment_next (id)
	SELECT id FROM current_experiment
	WHERE id IN (SELECT id FROM experiments)
	ORDER BY rowid LIMIT 1;
DROP TABLE current_experiment;
ALTER TABLE current_experiment_next RENAME TO current_experiment`,
	},
	{
		Name:      "index_datapoints_experiment",
		Statement: `CREATE INDEX idx_datapoints_experiment ON datapoints(experiment_id)`,
	},
}

// LatestVersion is the highest migration index known to this binary.
func LatestVersion() int {
	return len(Migrations) - 1
}
