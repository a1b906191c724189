package store

// migration moves the documents schema to version.
type migration struct {
	version int
	sql     string
}

// migrations run in order; versions start at 1 and have no gaps.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS documents (
	name       TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_documents_updated_at ON documents(updated_at);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
