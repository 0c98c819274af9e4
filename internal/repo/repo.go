package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

const trialDays = 7

type Profile struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Plan         string     `json:"plan"` // free, trial, pro
	PlanExpires  *time.Time `json:"plan_expires,omitempty"`
	TrialExpires *time.Time `json:"trial_expires,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type StoredCalculation struct {
	ID        int             `json:"id"`
	UserID    int             `json:"-"`
	Module    string          `json:"module"`
	Name      string          `json:"name"`
	Inputs    json.RawMessage `json:"inputs"`
	Results   json.RawMessage `json:"results"`
	CreatedAt time.Time       `json:"created_at"`
}

type UpgradeTicket struct {
	ID        int
	UserID    int
	Status    string // pending, approved, rejected
	CreatedAt time.Time
}

type Repository interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (int, error)
	GetByEmail(ctx context.Context, email string) (int, string, error)
	GetProfileByID(ctx context.Context, id int) (Profile, error)
	ClearExpiredPlan(ctx context.Context, userID int) error
	SetProUntil(ctx context.Context, userID int, until time.Time) error

	SaveCalculation(ctx context.Context, userID int, module, name string, inputs, results []byte) (int, error)
	GetCalculation(ctx context.Context, userID, id int) (StoredCalculation, error)
	ListCalculations(ctx context.Context, userID, page, perPage int) ([]StoredCalculation, error)

	CreateUpgradeTicket(ctx context.Context, userID int) (int, error)
	GetUpgradeTicket(ctx context.Context, id int) (UpgradeTicket, error)
	ListPendingUpgradeTickets(ctx context.Context) ([]UpgradeTicket, error)
	UpdateUpgradeTicketStatus(ctx context.Context, id int, status string) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateUser registers the account and starts the 7-day trial, which grants
// Pro-level access until it expires.
func (r *PostgresRepository) CreateUser(ctx context.Context, name, email, passwordHash string) (int, error) {
	var id int
	trialExpires := time.Now().UTC().Add(trialDays * 24 * time.Hour)
	query := `INSERT INTO users (name, email, password, plan, trial_expires)
	          VALUES ($1, $2, $3, 'trial', $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, name, email, passwordHash, trialExpires).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (int, string, error) {
	var id int
	var hash string
	query := "SELECT id, password FROM users WHERE email=$1"
	err := r.db.QueryRowContext(ctx, query, email).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) GetProfileByID(ctx context.Context, id int) (Profile, error) {
	var p Profile
	query := `SELECT id, name, email, plan, plan_expires, trial_expires, created_at
	          FROM users WHERE id=$1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Email, &p.Plan, &p.PlanExpires, &p.TrialExpires, &p.CreatedAt)
	return p, err
}

// ClearExpiredPlan drops an expired Pro plan back to free.
func (r *PostgresRepository) ClearExpiredPlan(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET plan='free', plan_expires=NULL WHERE id=$1", userID)
	return err
}

func (r *PostgresRepository) SetProUntil(ctx context.Context, userID int, until time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET plan='pro', plan_expires=$2 WHERE id=$1", userID, until)
	return err
}

func (r *PostgresRepository) SaveCalculation(ctx context.Context, userID int, module, name string, inputs, results []byte) (int, error) {
	var id int
	query := `INSERT INTO calculations (user_id, module, name, inputs, results)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, userID, module, name, inputs, results).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetCalculation(ctx context.Context, userID, id int) (StoredCalculation, error) {
	var c StoredCalculation
	query := `SELECT id, user_id, module, name, inputs, results, created_at
	          FROM calculations WHERE id=$1 AND user_id=$2`
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&c.ID, &c.UserID, &c.Module, &c.Name, &c.Inputs, &c.Results, &c.CreatedAt)
	return c, err
}

func (r *PostgresRepository) ListCalculations(ctx context.Context, userID, page, perPage int) ([]StoredCalculation, error) {
	if page < 1 {
		page = 1
	}
	query := `SELECT id, user_id, module, name, inputs, results, created_at
	          FROM calculations WHERE user_id=$1
	          ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredCalculation
	for rows.Next() {
		var c StoredCalculation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Module, &c.Name, &c.Inputs, &c.Results, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) CreateUpgradeTicket(ctx context.Context, userID int) (int, error) {
	var id int
	query := `INSERT INTO upgrade_tickets (user_id, status) VALUES ($1, 'pending') RETURNING id`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetUpgradeTicket(ctx context.Context, id int) (UpgradeTicket, error) {
	var t UpgradeTicket
	query := "SELECT id, user_id, status, created_at FROM upgrade_tickets WHERE id=$1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.UserID, &t.Status, &t.CreatedAt)
	return t, err
}

func (r *PostgresRepository) ListPendingUpgradeTickets(ctx context.Context) ([]UpgradeTicket, error) {
	query := `SELECT id, user_id, status, created_at FROM upgrade_tickets
	          WHERE status='pending' ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UpgradeTicket
	for rows.Next() {
		var t UpgradeTicket
		if err := rows.Scan(&t.ID, &t.UserID, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateUpgradeTicketStatus(ctx context.Context, id int, status string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE upgrade_tickets SET status=$2 WHERE id=$1", id, status)
	return err
}
