package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/stocktake/internal/inventory/domain"
	"github.com/aussiebroadwan/stocktake/internal/inventory/store"
)

type devicesRepo struct {
	db dbtx
}

const deviceColumns = `id, week_yr, week_device, unique_id, full_id, type, subtype, code,
	description, est_value, created_by, created_at, updated_at`

var sortColumns = map[domain.SortField]string{
	domain.SortByDate:  "created_at",
	domain.SortByValue: "est_value",
	domain.SortByCode:  "code",
	domain.SortByID:    "unique_id",
}

func (r *devicesRepo) CreateDevice(ctx context.Context, d domain.Device) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO devices (`+deviceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID,
		d.WeekYr,
		d.WeekDevice,
		d.UniqueID,
		d.FullID,
		string(d.Type),
		string(d.Subtype),
		d.Code,
		d.Description,
		d.EstValue,
		d.CreatedBy,
		formatTime(d.CreatedAt),
		formatTime(d.UpdatedAt),
	)
	if err != nil {
		return mapErr(err)
	}

	for _, n := range d.Notes {
		if err := r.insertNote(ctx, d.ID, n); err != nil {
			return err
		}
	}
	return nil
}

func (r *devicesRepo) insertNote(ctx context.Context, deviceID string, n domain.Note) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO device_notes (device_id, note, code, created_at)
		VALUES (?, ?, ?, ?)`,
		deviceID, n.Note, n.Code, formatTime(n.CreatedAt),
	)
	return mapErr(err)
}

func (r *devicesRepo) GetDeviceByFullID(ctx context.Context, fullID string) (domain.Device, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+deviceColumns+` FROM devices WHERE full_id = ?`, fullID)
	d, err := scanDevice(row)
	if err != nil {
		return domain.Device{}, err
	}

	devices := []domain.Device{d}
	if err := r.loadNotes(ctx, devices); err != nil {
		return domain.Device{}, err
	}
	return devices[0], nil
}

func (r *devicesRepo) AppendNote(ctx context.Context, fullID string, n domain.Note) error {
	var deviceID string
	err := r.db.QueryRowContext(ctx, `
		UPDATE devices SET code = ?, updated_at = ?
		WHERE full_id = ?
		RETURNING id`,
		n.Code, formatTime(n.CreatedAt), fullID,
	).Scan(&deviceID)
	if err != nil {
		return mapNotFound(err)
	}
	return r.insertNote(ctx, deviceID, n)
}

func (r *devicesRepo) ListDevices(ctx context.Context, q domain.DeviceQuery) ([]domain.Device, error) {
	query, args := buildListQuery(q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	devices := make([]domain.Device, 0, q.Items)
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err)
	}
	// Release the connection before loading notes; in-memory stores only
	// have one.
	_ = rows.Close()

	if err := r.loadNotes(ctx, devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// buildListQuery turns a validated query into SQL. Only values travel as
// arguments; column names and directions come from fixed tables.
func buildListQuery(q domain.DeviceQuery) (string, []any) {
	var (
		where []string
		args  []any
	)

	if len(q.Types) > 0 {
		where = append(where, "type IN ("+placeholders(len(q.Types))+")")
		for _, t := range q.Types {
			args = append(args, string(t))
		}
	}
	if len(q.Subtypes) > 0 {
		where = append(where, "subtype IN ("+placeholders(len(q.Subtypes))+")")
		for _, s := range q.Subtypes {
			args = append(args, string(s))
		}
	}
	if len(q.Codes) > 0 {
		where = append(where, "code IN ("+placeholders(len(q.Codes))+")")
		for _, c := range q.Codes {
			args = append(args, c)
		}
	}
	if q.Date != nil {
		where = append(where, "created_at BETWEEN ? AND ?")
		args = append(args, formatTime(q.Date.Min), formatTime(q.Date.Max))
	}
	if q.Value != nil {
		where = append(where, "est_value BETWEEN ? AND ?")
		args = append(args, q.Value.Min, q.Value.Max)
	}
	if q.Search != "" {
		where = append(where, `description LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(q.Search)+"%")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(deviceColumns)
	sb.WriteString(" FROM devices")
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}

	col, ok := sortColumns[q.Sort]
	if !ok {
		col = sortColumns[domain.SortByDate]
	}
	dir := "ASC"
	if q.Order == domain.OrderDsc {
		dir = "DESC"
	}
	sb.WriteString(" ORDER BY " + col + " " + dir + ", id " + dir)

	sb.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, q.Items, q.Offset())

	return sb.String(), args
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *devicesRepo) loadNotes(ctx context.Context, devices []domain.Device) error {
	if len(devices) == 0 {
		return nil
	}

	index := make(map[string]int, len(devices))
	args := make([]any, 0, len(devices))
	for i, d := range devices {
		index[d.ID] = i
		args = append(args, d.ID)
		devices[i].Notes = []domain.Note{}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT device_id, note, code, created_at
		FROM device_notes
		WHERE device_id IN (`+placeholders(len(args))+`)
		ORDER BY id`, args...)
	if err != nil {
		return mapErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			deviceID, createdAt string
			n                   domain.Note
		)
		if err := rows.Scan(&deviceID, &n.Note, &n.Code, &createdAt); err != nil {
			return mapErr(err)
		}
		if n.CreatedAt, err = parseTime(createdAt); err != nil {
			return err
		}
		i := index[deviceID]
		devices[i].Notes = append(devices[i].Notes, n)
	}
	return mapErr(rows.Err())
}

func scanDevice(row rowScanner) (domain.Device, error) {
	var (
		d                    domain.Device
		typ, subtype         string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&d.ID,
		&d.WeekYr,
		&d.WeekDevice,
		&d.UniqueID,
		&d.FullID,
		&typ,
		&subtype,
		&d.Code,
		&d.Description,
		&d.EstValue,
		&d.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Device{}, mapNotFound(err)
	}

	d.Type = domain.DeviceType(typ)
	d.Subtype = domain.DeviceSubtype(subtype)
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Device{}, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Device{}, err
	}
	return d, nil
}

var _ store.Devices = (*devicesRepo)(nil)
