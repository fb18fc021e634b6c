package postgres

// Migrations returns the embedded schema migrations in version order.
func Migrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_catalog",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE CATALOG
// ═══════════════════════════════════════════════════════════════════════════

const migration001Up = `
CREATE TABLE IF NOT EXISTS catalog_modules (
    id VARCHAR(64) PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    duration VARCHAR(32) NOT NULL DEFAULT '',
    difficulty VARCHAR(16) NOT NULL DEFAULT 'beginner',
    age_groups TEXT[] NOT NULL,
    content JSONB NOT NULL DEFAULT '{}'::jsonb,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_difficulty CHECK (difficulty IN ('beginner', 'intermediate', 'advanced')),
    CONSTRAINT has_age_groups CHECK (cardinality(age_groups) > 0)
);

CREATE TABLE IF NOT EXISTS catalog_scenarios (
    id VARCHAR(64) PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    situation TEXT NOT NULL DEFAULT '',
    money INTEGER NOT NULL DEFAULT 0,
    age_groups TEXT[] NOT NULL,
    options JSONB NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT has_age_groups CHECK (cardinality(age_groups) > 0)
);

CREATE INDEX IF NOT EXISTS idx_catalog_modules_position ON catalog_modules(position);
CREATE INDEX IF NOT EXISTS idx_catalog_scenarios_position ON catalog_scenarios(position);
`

const migration001Down = `
DROP TABLE IF EXISTS catalog_scenarios;
DROP TABLE IF EXISTS catalog_modules;
`
