package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"bulkunit/unit"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrProjectNotFound = errors.New("project not found")

// ProjectMeta is caller-supplied project context persisted alongside
// each batch: declared location/type/status, the developer reference,
// and the identity used for audit attribution.
type ProjectMeta struct {
	Location  string
	Type      string
	Status    string
	Developer string
	CreatedBy string
}

// ProjectRecord is one stored project row.
type ProjectRecord struct {
	ID             int64
	Name           string
	Location       string
	Type           string
	Status         string
	Developer      string
	PossessionDate string
	CreatedBy      string
	UnitCount      int
}

// UnitRecord is one stored unit row. Monetary fields are numeric here;
// optional ones are nil when the source cell was absent.
type UnitRecord struct {
	ID              int64
	ProjectID       int64
	Name            string
	Floor           int
	Type            string
	Size            string
	Price           float64
	DiscountPrice   *float64
	RegistrationFee *float64
	ROIPercentage   *float64
	PaymentPlan     string
	Status          string
}

// UploadLog records one import invocation for audit purposes.
type UploadLog struct {
	ID           string
	FileName     string
	ProjectCount int
	UnitCount    int
	ErrorCount   int
	Status       string
	Message      string
	CreatedBy    string
}

// SaveSummary reports one SaveBatches call. UnitsFailed counts
// best-effort insert failures that did not roll anything back.
type SaveSummary struct {
	ProjectsCreated int
	UnitsInserted   int
	UnitsFailed     int
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT '',
	developer TEXT NOT NULL DEFAULT '',
	possession_date TEXT NOT NULL DEFAULT '',
	source_sheet TEXT NOT NULL DEFAULT '',
	created_by TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS units (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL REFERENCES projects(id),
	name TEXT NOT NULL,
	floor INTEGER NOT NULL CHECK(floor >= 0),
	type TEXT NOT NULL,
	size TEXT NOT NULL DEFAULT 'N/A',
	price REAL NOT NULL,
	discount_price REAL,
	registration_fee REAL,
	roi_percentage REAL,
	payment_plan TEXT,
	status TEXT NOT NULL DEFAULT 'Available',
	source_row INTEGER NOT NULL DEFAULT 0,
	source_file TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS upload_logs (
	id TEXT PRIMARY KEY,
	file_name TEXT NOT NULL,
	project_count INTEGER NOT NULL DEFAULT 0,
	unit_count INTEGER NOT NULL DEFAULT 0,
	error_count INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL CHECK(status IN ('success', 'failed')),
	message TEXT NOT NULL DEFAULT '',
	created_by TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertProject creates one project row from a batch and the declared
// metadata, returning the new project ID.
func (s *SQLiteStore) InsertProject(batch unit.ProjectBatch, meta ProjectMeta) (int64, error) {
	const insertStmt = `
INSERT INTO projects (name, location, type, status, developer, possession_date, source_sheet, created_by)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	res, err := s.db.Exec(
		insertStmt,
		batch.Name,
		meta.Location,
		meta.Type,
		meta.Status,
		meta.Developer,
		batch.PossessionDate,
		batch.SourceSheet,
		meta.CreatedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("insert project %q: %w", batch.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted project id: %w", err)
	}
	return id, nil
}

// InsertUnits stores the units of one batch under a project.
// Insertion is best-effort by design: a failing unit is counted and
// skipped, and neither the project row nor the other units are rolled
// back. The returned error covers systemic failures only.
func (s *SQLiteStore) InsertUnits(projectID int64, units []unit.ParsedUnit) (inserted, failed int, err error) {
	if len(units) == 0 {
		return 0, 0, nil
	}

	const insertStmt = `
INSERT INTO units (
	project_id,
	name,
	floor,
	type,
	size,
	price,
	discount_price,
	registration_fee,
	roi_percentage,
	payment_plan,
	status,
	source_row,
	source_file
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := s.db.Prepare(insertStmt)
	if err != nil {
		return 0, 0, fmt.Errorf("prepare unit insert: %w", err)
	}
	defer stmt.Close()

	for _, u := range units {
		price, priceErr := unit.ParseMoney(u.Price)
		if priceErr != nil || price < 0 {
			failed++
			continue
		}

		_, execErr := stmt.Exec(
			projectID,
			u.UnitNumber,
			u.Floor,
			u.Type,
			u.Size,
			price,
			nullMoney(u.DiscountPrice),
			nullMoney(u.RegistrationFee),
			nullMoney(u.ROIPercentage),
			nullString(u.PaymentPlan),
			u.Status.String(),
			u.SourceRow,
			u.SourceFile,
		)
		if execErr != nil {
			failed++
			continue
		}
		inserted++
	}

	return inserted, failed, nil
}

// SaveBatches persists every batch: one project row plus its units.
// A project insert failure aborts the save; unit failures within a
// project do not.
func (s *SQLiteStore) SaveBatches(batches []unit.ProjectBatch, meta ProjectMeta) (*SaveSummary, error) {
	summary := &SaveSummary{}
	for _, batch := range batches {
		projectID, err := s.InsertProject(batch, meta)
		if err != nil {
			return summary, err
		}
		summary.ProjectsCreated++

		inserted, failed, err := s.InsertUnits(projectID, batch.Units)
		if err != nil {
			return summary, err
		}
		summary.UnitsInserted += inserted
		summary.UnitsFailed += failed
	}
	return summary, nil
}

// InsertUploadLog records one import invocation. A missing ID gets a
// generated UUID; the stored ID is returned.
func (s *SQLiteStore) InsertUploadLog(log UploadLog) (string, error) {
	id := strings.TrimSpace(log.ID)
	if id == "" {
		id = uuid.NewString()
	}

	const insertStmt = `
INSERT INTO upload_logs (id, file_name, project_count, unit_count, error_count, status, message, created_by)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	_, err := s.db.Exec(
		insertStmt,
		id,
		log.FileName,
		log.ProjectCount,
		log.UnitCount,
		log.ErrorCount,
		log.Status,
		log.Message,
		log.CreatedBy,
	)
	if err != nil {
		return "", fmt.Errorf("insert upload log: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) ListProjects() ([]ProjectRecord, error) {
	const query = `
SELECT
	p.id,
	p.name,
	p.location,
	p.type,
	p.status,
	p.developer,
	p.possession_date,
	p.created_by,
	COUNT(u.id)
FROM projects p
LEFT JOIN units u ON u.project_id = p.id
GROUP BY p.id
ORDER BY p.id;
`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]ProjectRecord, 0, 16)
	for rows.Next() {
		var record ProjectRecord
		if err := rows.Scan(
			&record.ID,
			&record.Name,
			&record.Location,
			&record.Type,
			&record.Status,
			&record.Developer,
			&record.PossessionDate,
			&record.CreatedBy,
			&record.UnitCount,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func (s *SQLiteStore) ListUnitsByProject(projectID int64) ([]UnitRecord, error) {
	if projectID <= 0 {
		return nil, fmt.Errorf("project id must be > 0")
	}

	var exists int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM projects WHERE id = ?;`, projectID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("query project %d: %w", projectID, err)
	}
	if exists == 0 {
		return nil, ErrProjectNotFound
	}

	const query = `
SELECT
	id,
	project_id,
	name,
	floor,
	type,
	size,
	price,
	discount_price,
	registration_fee,
	roi_percentage,
	payment_plan,
	status
FROM units
WHERE project_id = ?
ORDER BY id;
`

	rows, err := s.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("query units for project %d: %w", projectID, err)
	}
	defer rows.Close()

	units := make([]UnitRecord, 0, 64)
	for rows.Next() {
		var (
			record          UnitRecord
			discountPrice   sql.NullFloat64
			registrationFee sql.NullFloat64
			roiPercentage   sql.NullFloat64
			paymentPlan     sql.NullString
		)
		if err := rows.Scan(
			&record.ID,
			&record.ProjectID,
			&record.Name,
			&record.Floor,
			&record.Type,
			&record.Size,
			&record.Price,
			&discountPrice,
			&registrationFee,
			&roiPercentage,
			&paymentPlan,
			&record.Status,
		); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}

		if discountPrice.Valid {
			record.DiscountPrice = &discountPrice.Float64
		}
		if registrationFee.Valid {
			record.RegistrationFee = &registrationFee.Float64
		}
		if roiPercentage.Valid {
			record.ROIPercentage = &roiPercentage.Float64
		}
		record.PaymentPlan = paymentPlan.String

		units = append(units, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate units: %w", err)
	}
	return units, nil
}

// nullMoney parses an optional currency cell for storage, mapping
// absence or unparsable values to NULL.
func nullMoney(raw string) sql.NullFloat64 {
	if strings.TrimSpace(raw) == "" {
		return sql.NullFloat64{}
	}
	value, err := unit.ParseMoney(raw)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: value, Valid: true}
}

func nullString(raw string) sql.NullString {
	if strings.TrimSpace(raw) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}
