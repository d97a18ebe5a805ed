package database

import (
	"fmt"
	"time"

	"github.com/foliotrack/portfolio-service/internal/models"
	"github.com/shopspring/decimal"
)

// CreateGoal inserts a new goal into the database
func (db *DB) CreateGoal(g *models.Goal) error {
	query := `
		INSERT INTO goals (
			goal_name, target_amount, current_amount, target_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	now := time.Now()
	err := db.conn.QueryRow(query,
		g.GoalName, g.TargetAmount, g.CurrentAmount, g.TargetDate, now, now,
	).Scan(&g.ID)

	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	g.CreatedAt = now
	g.UpdatedAt = now
	return nil
}

// GetAllGoals retrieves all goals, newest first
func (db *DB) GetAllGoals() ([]*models.Goal, error) {
	query := `
		SELECT id, goal_name, target_amount, current_amount, target_date,
		       created_at, updated_at
		FROM goals
		ORDER BY created_at DESC
	`
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}
	defer rows.Close()

	var goals []*models.Goal
	for rows.Next() {
		var g models.Goal
		err := rows.Scan(
			&g.ID, &g.GoalName, &g.TargetAmount, &g.CurrentAmount, &g.TargetDate,
			&g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, &g)
	}

	return goals, rows.Err()
}

// UpdateGoalProgress sets a goal's current amount directly. There is no
// validation against the target; the clamp to 100% happens at display
// time.
func (db *DB) UpdateGoalProgress(id int, currentAmount decimal.Decimal) error {
	query := `
		UPDATE goals SET current_amount = $2, updated_at = $3 WHERE id = $1
	`
	result, err := db.conn.Exec(query, id, currentAmount, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update goal progress: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("goal %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteGoal removes a goal by ID
func (db *DB) DeleteGoal(id int) error {
	query := `DELETE FROM goals WHERE id = $1`
	result, err := db.conn.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("goal %d: %w", id, ErrNotFound)
	}
	return nil
}
