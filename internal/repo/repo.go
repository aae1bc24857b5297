package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Repository is the persistence surface of the service: user accounts
// and saved sizing cases.
type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)

	SaveCase(ctx context.Context, c Case) error
	CaseByID(ctx context.Context, owner, id string) (*Case, error)
	ListCases(ctx context.Context, owner string, limit int) ([]CaseSummary, error)
}

// Case is one persisted sizing run. Result carries the full response
// JSON as produced at calculation time.
type Case struct {
	ID        string          `json:"id"`
	Owner     string          `json:"owner"`
	Project   string          `json:"project"`
	Status    string          `json:"status"`
	FlowM3H   float64         `json:"flow_m3h"`
	HmtM      float64         `json:"hmt_m"`
	PowerKW   float64         `json:"power_kw"`
	Result    json.RawMessage `json:"result,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// CaseSummary is a listing row, without the result payload.
type CaseSummary struct {
	ID        string    `json:"id"`
	Project   string    `json:"project"`
	Status    string    `json:"status"`
	FlowM3H   float64   `json:"flow_m3h"`
	HmtM      float64   `json:"hmt_m"`
	PowerKW   float64   `json:"power_kw"`
	CreatedAt time.Time `json:"created_at"`
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveCase(ctx context.Context, c Case) error {
	query := `INSERT INTO cases (id, owner, project, status, flow_m3h, hmt_m, power_kw, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Owner, c.Project, c.Status, c.FlowM3H, c.HmtM, c.PowerKW, []byte(c.Result), c.CreatedAt)
	return err
}

// CaseByID fetches one case scoped to its owner. A missing case returns
// (nil, nil).
func (r *PostgresRepository) CaseByID(ctx context.Context, owner, id string) (*Case, error) {
	query := `SELECT id, owner, project, status, flow_m3h, hmt_m, power_kw, result, created_at
		FROM cases WHERE id=$1 AND owner=$2`

	var c Case
	var raw []byte
	err := r.db.QueryRowContext(ctx, query, id, owner).Scan(
		&c.ID, &c.Owner, &c.Project, &c.Status, &c.FlowM3H, &c.HmtM, &c.PowerKW, &raw, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	c.Result = raw
	return &c, nil
}

func (r *PostgresRepository) ListCases(ctx context.Context, owner string, limit int) ([]CaseSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := `SELECT id, project, status, flow_m3h, hmt_m, power_kw, created_at
		FROM cases WHERE owner=$1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, owner, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CaseSummary
	for rows.Next() {
		var c CaseSummary
		if err := rows.Scan(&c.ID, &c.Project, &c.Status, &c.FlowM3H, &c.HmtM, &c.PowerKW, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// InitDB opens the connection pool from DATABASE_URL. An empty variable
// disables persistence: the service still sizes pumps, it just stops
// saving cases, so a nil handle is returned without error.
func InitDB() (*sql.DB, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return nil, nil
	}
	if !strings.Contains(connStr, "sslmode=") {
		if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
			connStr += "?sslmode=require"
		} else {
			connStr += " sslmode=require"
		}
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}
