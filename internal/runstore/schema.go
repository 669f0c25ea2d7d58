package runstore

// Schema DDL for the runs table. The store keeps the database across
// opens, so every statement tolerates existing objects.
const createRuns = `CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    molecule TEXT NOT NULL,
    geometry TEXT NOT NULL DEFAULT '',
    basis TEXT NOT NULL DEFAULT '',
    method TEXT NOT NULL,
    encoding TEXT NOT NULL DEFAULT '',
    electronic_energy REAL NOT NULL,
    nuclear_repulsion REAL NOT NULL,
    total_energy REAL NOT NULL,
    energy_shift REAL NOT NULL DEFAULT 0,
    iterations INTEGER NOT NULL DEFAULT 0,
    evaluations INTEGER NOT NULL DEFAULT 0,
    parameters TEXT NOT NULL DEFAULT 'null'
);`

// schemaDDL lists the schema statements in apply order.
var schemaDDL = []string{
	createRuns,
	`CREATE INDEX IF NOT EXISTS idx_runs_molecule ON runs(molecule);`,
	`CREATE INDEX IF NOT EXISTS idx_runs_method ON runs(method);`,
	`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
}
