package store

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS scans (
				id TEXT PRIMARY KEY,
				created_at TEXT NOT NULL,
				mailbox_user TEXT NOT NULL,
				criteria TEXT NOT NULL,
				candidates TEXT NOT NULL,
				scanned_count INTEGER NOT NULL DEFAULT 0,
				last_uid INTEGER NOT NULL DEFAULT 0
			);

			CREATE INDEX IF NOT EXISTS idx_scans_user_created
				ON scans (mailbox_user, created_at DESC);

			INSERT INTO schema_version (version, applied_at)
				VALUES (1, datetime('now'));
		`,
	},
}
