package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"kunlun/internal/domain"
)

type StatusRepository struct {
	db *sql.DB
}

func NewStatusRepository(db *sql.DB) domain.StatusRepository {
	return &StatusRepository{db: db}
}

// UpsertClient registers machineID or refreshes its display name, and
// returns the client id either way.
func (r *StatusRepository) UpsertClient(ctx context.Context, machineID, name string) (int64, error) {
	query := `
		INSERT INTO client (machine_id, name) VALUES (?, ?)
		ON CONFLICT(machine_id) DO UPDATE SET name = excluded.name
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, machineID, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to upsert client: %w", err)
	}
	return id, nil
}

func (r *StatusRepository) Insert(ctx context.Context, s *domain.Status) error {
	query := `
		INSERT INTO status (
			client_id, insert_utc_ts, name, system, location, uptime, cpu_percent,
			net_tx, net_rx, disks_total_kb, disks_avail_kb, cpu_num_cores,
			mem_total, mem_free, mem_used, swap_total, swap_free,
			process_count, connection_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		s.ClientID, s.InsertedAt, s.Name, s.System, s.Location, s.Uptime, s.CPUPercent,
		s.NetTx, s.NetRx, s.DisksTotalKB, s.DisksAvailKB, s.CPUNumCores,
		s.MemTotal, s.MemFree, s.MemUsed, s.SwapTotal, s.SwapFree,
		s.ProcessCount, s.ConnectionCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert status: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read status id: %w", err)
	}
	s.ID = id

	return nil
}

// Latest returns the newest status of every client, ordered by client id.
func (r *StatusRepository) Latest(ctx context.Context) ([]domain.Status, error) {
	query := `
		SELECT
			s.id, s.client_id, c.machine_id, s.insert_utc_ts, s.name, s.system, s.location,
			s.uptime, s.cpu_percent, s.net_tx, s.net_rx, s.disks_total_kb, s.disks_avail_kb,
			s.cpu_num_cores, s.mem_total, s.mem_free, s.mem_used, s.swap_total, s.swap_free,
			s.process_count, s.connection_count
		FROM status s
		JOIN client c ON c.id = s.client_id
		WHERE s.id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY client_id ORDER BY insert_utc_ts DESC, id DESC
				) AS rn
				FROM status
			) WHERE rn = 1
		)
		ORDER BY s.client_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest status: %w", err)
	}
	defer rows.Close()

	statuses := []domain.Status{}
	for rows.Next() {
		var s domain.Status
		if err := rows.Scan(
			&s.ID, &s.ClientID, &s.MachineID, &s.InsertedAt, &s.Name, &s.System, &s.Location,
			&s.Uptime, &s.CPUPercent, &s.NetTx, &s.NetRx, &s.DisksTotalKB, &s.DisksAvailKB,
			&s.CPUNumCores, &s.MemTotal, &s.MemFree, &s.MemUsed, &s.SwapTotal, &s.SwapFree,
			&s.ProcessCount, &s.ConnectionCount,
		); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}

// Prune keeps the newest keep statuses of each client and drops clients
// left without any.
func (r *StatusRepository) Prune(ctx context.Context, keep int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin prune: %w", err)
	}
	defer tx.Rollback()

	pruneStatus := `
		DELETE FROM status WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY client_id ORDER BY insert_utc_ts DESC, id DESC
				) AS rn
				FROM status
			) WHERE rn > ?
		)
	`
	if _, err := tx.ExecContext(ctx, pruneStatus, keep); err != nil {
		return fmt.Errorf("failed to prune status: %w", err)
	}

	pruneClients := `DELETE FROM client WHERE id NOT IN (SELECT DISTINCT client_id FROM status)`
	if _, err := tx.ExecContext(ctx, pruneClients); err != nil {
		return fmt.Errorf("failed to prune clients: %w", err)
	}

	return tx.Commit()
}

// DeleteOlderThan removes statuses received before cutoff, a unix
// timestamp, along with clients that no longer have any.
func (r *StatusRepository) DeleteOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin cleanup: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM status WHERE insert_utc_ts < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale status: %w", err)
	}
	deleted, _ := res.RowsAffected()

	if _, err := tx.ExecContext(ctx, `DELETE FROM client WHERE id NOT IN (SELECT DISTINCT client_id FROM status)`); err != nil {
		return 0, fmt.Errorf("failed to prune clients: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return deleted, nil
}
