package storage

import "fmt"

// createTableSQL is the DDL for one entity table. Each row holds the JSON
// document of an entity next to its identity and timestamps. The statement
// is valid for both SQLite and PostgreSQL.
const createTableSQL = `CREATE TABLE IF NOT EXISTS %s (
    id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

// schemaStatements returns the DDL for the given tables in order.
func schemaStatements(tables []string) []string {
	stmts := make([]string, len(tables))
	for i, name := range tables {
		stmts[i] = fmt.Sprintf(createTableSQL, name)
	}
	return stmts
}
