package sqlite

import "context"

type countersRepo struct {
	db dbtx
}

// NextSequence relies on a single UPSERT so two writers can never read the
// same value.
func (r *countersRepo) NextSequence(ctx context.Context, weekYr string) (int, error) {
	var seq int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO device_counters (week_yr, seq) VALUES (?, 1)
		ON CONFLICT (week_yr) DO UPDATE SET seq = seq + 1
		RETURNING seq`, weekYr,
	).Scan(&seq)
	if err != nil {
		return 0, mapErr(err)
	}
	return seq, nil
}
