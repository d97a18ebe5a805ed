package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/foliotrack/portfolio-service/internal/models"
	"github.com/shopspring/decimal"
)

// goalResponse decorates a goal with its display progress percentage.
type goalResponse struct {
	*models.Goal
	Progress decimal.Decimal `json:"progress"`
}

// GetAllGoals handles GET /api/goals
func (h *Handler) GetAllGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.db.GetAllGoals()
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		resp = append(resp, goalResponse{Goal: g, Progress: g.Progress()})
	}

	respondJSON(w, http.StatusOK, resp)
}

// CreateGoal handles POST /api/goals
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GoalName     string          `json:"goal_name"`
		TargetAmount decimal.Decimal `json:"target_amount"`
		TargetDate   string          `json:"target_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}

	if req.GoalName == "" {
		respondValidation(w, "goal_name is required")
		return
	}
	if !req.TargetAmount.IsPositive() {
		respondValidation(w, "target_amount must be positive")
		return
	}

	goal := &models.Goal{
		GoalName:      req.GoalName,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: decimal.Zero,
	}
	if req.TargetDate != "" {
		targetDate, ok := parseDate(req.TargetDate)
		if !ok {
			respondValidation(w, "target_date must be YYYY-MM-DD")
			return
		}
		goal.TargetDate = &targetDate
	}

	if err := h.db.CreateGoal(goal); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":        goal.ID,
		"message":   "Goal created successfully",
		"timestamp": time.Now().UnixMilli(),
	})
}

// UpdateGoalProgress handles PUT /api/goals/{id}/progress. The amount is
// stored as sent; there is no check against the target, and the clamp to
// 100% only ever applies to the displayed percentage.
func (h *Handler) UpdateGoalProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		CurrentAmount decimal.Decimal `json:"current_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	if req.CurrentAmount.IsNegative() {
		respondValidation(w, "current_amount must not be negative")
		return
	}

	if err := h.db.UpdateGoalProgress(id, req.CurrentAmount); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Goal progress updated successfully"})
}

// DeleteGoal handles DELETE /api/goals/{id}
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteGoal(id); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted successfully"})
}
