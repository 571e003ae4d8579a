package database

import (
	"fmt"

	"github.com/guregu/null/v5"

	"connectivity-monitor/internal/models"
)

// SaveSession stores a finished session and its raw samples. Saving the same
// session again replaces the earlier copy.
func (db *DB) SaveSession(s models.SessionSummary) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"ping_results", "speed_samples", "outages"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE session_id = ?`, s.ID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	_, err = tx.Exec(`
        INSERT OR REPLACE INTO sessions (id, start_time, end_time, duration_seconds, uptime_ratio,
            interruption_count, avg_rtt_ms, min_rtt_ms, max_rtt_ms, total_pings, successful_pings, failed_pings)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `,
		s.ID, s.Start, s.End, s.DurationSeconds, s.UptimeRatio,
		s.InterruptionCount, s.AvgPingMs, s.MinPingMs, s.MaxPingMs,
		s.TotalPings, s.SuccessfulPings, s.FailedPings,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	pingStmt, err := tx.Prepare(`
        INSERT INTO ping_results (session_id, timestamp, target, success, timed_out, rtt_ms, error_message)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		return err
	}
	defer pingStmt.Close()
	for _, p := range s.Pings {
		if _, err := pingStmt.Exec(s.ID, p.Timestamp, p.Target, p.Success, p.TimedOut, p.LatencyMs, p.Error); err != nil {
			return fmt.Errorf("insert ping result: %w", err)
		}
	}

	speedStmt, err := tx.Prepare(`
        INSERT INTO speed_samples (session_id, timestamp, direction, size_bytes, duration_seconds, throughput_mbps, error_message)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		return err
	}
	defer speedStmt.Close()
	for _, sp := range s.SpeedSamples {
		if _, err := speedStmt.Exec(s.ID, sp.Timestamp, string(sp.Direction), sp.Bytes, sp.DurationSeconds, sp.ThroughputMbps, sp.Error); err != nil {
			return fmt.Errorf("insert speed sample: %w", err)
		}
	}

	for _, o := range s.Outages {
		var duration null.Float
		if o.End.Valid {
			duration = null.FloatFrom(o.Duration().Seconds())
		}
		_, err := tx.Exec(`
            INSERT INTO outages (session_id, start_time, end_time, duration_seconds, checks_failed)
            VALUES (?, ?, ?, ?, ?)
        `, s.ID, o.Start, o.End, duration, o.FailureCount)
		if err != nil {
			return fmt.Errorf("insert outage: %w", err)
		}
	}

	return tx.Commit()
}

// GetSessions retrieves the most recent archived sessions
func (db *DB) GetSessions(limit int) ([]models.ArchivedSession, error) {
	query := `
        SELECT id, start_time, end_time, duration_seconds, uptime_ratio,
               interruption_count, total_pings, avg_rtt_ms
        FROM sessions
        ORDER BY start_time DESC
        LIMIT ?
    `

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.ArchivedSession
	for rows.Next() {
		var s models.ArchivedSession
		err := rows.Scan(&s.ID, &s.Start, &s.End, &s.DurationSeconds, &s.UptimeRatio,
			&s.InterruptionCount, &s.TotalPings, &s.AvgPingMs)
		if err != nil {
			continue
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// GetOutages retrieves the outages archived for one session
func (db *DB) GetOutages(sessionID string) ([]models.OutageEvent, error) {
	query := `
        SELECT start_time, end_time, checks_failed
        FROM outages
        WHERE session_id = ?
        ORDER BY start_time
    `

	rows, err := db.Query(query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outages []models.OutageEvent
	for rows.Next() {
		var o models.OutageEvent
		if err := rows.Scan(&o.Start, &o.End, &o.FailureCount); err != nil {
			continue
		}
		outages = append(outages, o)
	}

	return outages, rows.Err()
}
