package models

import (
	"database/sql"

	"github.com/lib/pq"
)

type sqlDropOffRepo struct{ db *sql.DB }

func NewSQLDropOffRepository(db *sql.DB) DropOffRepository {
	return &sqlDropOffRepo{db}
}

// Submit inserts the ledger row and bumps the owner's balance in a single
// transaction. The increment runs inside the UPDATE itself, so two
// concurrent submissions by the same account never lose a grant.
func (r *sqlDropOffRepo) Submit(userID int64, eventID string, electronics []string, items string) (DropOff, int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return DropOff{}, 0, err
	}
	defer tx.Rollback()

	d := DropOff{
		UserID:      userID,
		EventID:     eventID,
		Electronics: electronics,
		Items:       items,
		Rewards:     RewardPerDropOff,
	}
	err = tx.QueryRow(
		`INSERT INTO dropoffs(user_id, event_id, electronics, items, rewards)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at`,
		d.UserID, d.EventID, pq.Array(d.Electronics), d.Items, d.Rewards,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return DropOff{}, 0, err
	}

	var balance int64
	err = tx.QueryRow(
		`UPDATE users SET rewards = rewards + $1 WHERE id = $2 RETURNING rewards`,
		d.Rewards, d.UserID,
	).Scan(&balance)
	if err != nil {
		return DropOff{}, 0, err
	}

	if err := tx.Commit(); err != nil {
		return DropOff{}, 0, err
	}
	return d, balance, nil
}

func (r *sqlDropOffRepo) ListByEvent(eventID string) ([]DropOff, error) {
	rows, err := r.db.Query(
		`SELECT d.id, d.user_id, u.email, d.event_id, d.electronics, d.items, d.rewards, d.created_at
		 FROM dropoffs d JOIN users u ON u.id = d.user_id
		 WHERE d.event_id = $1
		 ORDER BY d.created_at`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DropOff{}
	for rows.Next() {
		var d DropOff
		if err := rows.Scan(&d.ID, &d.UserID, &d.UserEmail, &d.EventID,
			pq.Array(&d.Electronics), &d.Items, &d.Rewards, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *sqlDropOffRepo) DeleteByEvent(eventID string) error {
	_, err := r.db.Exec(`DELETE FROM dropoffs WHERE event_id = $1`, eventID)
	return err
}
