package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Analyses table - one row per completed analysis run. The full
		// result and the source landmark frames are stored as JSON so a
		// re-analysis with different options can rerun from the same frames.
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			video_id TEXT NOT NULL,
			camera_angle TEXT NOT NULL,
			club_type TEXT NOT NULL,
			club_overridden INTEGER NOT NULL DEFAULT 0,
			overall_score REAL NOT NULL,
			result TEXT NOT NULL,
			frames TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_analyses_video_id ON analyses(video_id)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
