package database

import (
	"fmt"
	"time"
)

// Prune deletes raw samples of sessions that ended before now minus
// retention. Session rows and outages are kept.
func (db *DB) Prune(retention time.Duration, now time.Time) (int64, error) {
	cutoff := now.Add(-retention).UTC()

	var removed int64
	for _, table := range []string{"ping_results", "speed_samples"} {
		res, err := db.Exec(`
            DELETE FROM `+table+`
            WHERE session_id IN (SELECT id FROM sessions WHERE end_time < ?)
        `, cutoff)
		if err != nil {
			return removed, fmt.Errorf("prune %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		removed += n
	}

	// Vacuum to reclaim space (run occasionally)
	if removed > 0 && now.Day() == 1 {
		if _, err := db.Exec("VACUUM"); err != nil {
			return removed, err
		}
	}

	return removed, nil
}
