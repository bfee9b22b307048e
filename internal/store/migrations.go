package store

type migration struct {
	version int
	stmt    string
}

// migrations are applied in order inside transactions. Never edit an
// applied migration; append a new one.
var migrations = []migration{
	{
		version: 1,
		stmt: `
CREATE TABLE sessions (
    id             TEXT PRIMARY KEY,
    state          TEXT NOT NULL,
    current_intent TEXT NOT NULL DEFAULT '',
    slots          TEXT NOT NULL DEFAULT '{}',
    history        TEXT NOT NULL DEFAULT '[]',
    turn_count     INTEGER NOT NULL DEFAULT 0,
    created_at     TIMESTAMP NOT NULL,
    last_active_at TIMESTAMP NOT NULL
);
CREATE INDEX idx_sessions_last_active ON sessions (last_active_at);
`,
	},
	{
		version: 2,
		stmt: `
CREATE TABLE knowledge_entries (
    id         TEXT PRIMARY KEY,
    topic      TEXT NOT NULL,
    answer     TEXT NOT NULL,
    keywords   TEXT NOT NULL DEFAULT '[]',
    category   TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX idx_knowledge_topic ON knowledge_entries (topic);
`,
	},
}
