package api

import (
	"net/http"
	"time"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
	"github.com/caiorodriguesslv/planwise-backend/internal/service"
)

const dateLayout = "2006-01-02"

// apiDate is a calendar date carried as "YYYY-MM-DD" on the wire.
type apiDate struct {
	time.Time
}

func (d apiDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.UTC().Format(dateLayout) + `"`), nil
}

func (d *apiDate) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return common.Validationf("date must be a %q string", dateLayout)
	}
	t, err := time.ParseInLocation(dateLayout, s[1:len(s)-1], time.UTC)
	if err != nil {
		return common.Validationf("invalid date %s", s)
	}
	d.Time = t
	return nil
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, common.Validationf("query parameter %q is required", name)
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, common.Validationf("invalid date %q for %q", raw, name)
	}
	return t, nil
}

func parseRangeParams(r *http.Request) (*service.DateRange, error) {
	start, err := parseDateParam(r, "start")
	if err != nil {
		return nil, err
	}
	end, err := parseDateParam(r, "end")
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, common.Validationf("start date must not be after end date")
	}
	return &service.DateRange{Start: start, End: end}, nil
}

type categoryResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Type      model.CategoryKind `json:"type"`
	CreatedAt time.Time          `json:"createdAt"`
}

func toCategoryResponse(c *model.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Type: c.Kind, CreatedAt: c.CreatedAt}
}

func toCategoryResponses(cats []model.Category) []categoryResponse {
	out := make([]categoryResponse, len(cats))
	for i := range cats {
		out[i] = toCategoryResponse(&cats[i])
	}
	return out
}

type transactionResponse struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Amount      model.Money `json:"amount"`
	Date        apiDate     `json:"date"`
	CategoryID  int64       `json:"categoryId"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func toTransactionResponse(t *model.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Description: t.Description,
		Amount:      t.Amount,
		Date:        apiDate{t.Date},
		CategoryID:  t.CategoryID,
		CreatedAt:   t.CreatedAt,
	}
}

func toTransactionResponses(txns []model.Transaction) []transactionResponse {
	out := make([]transactionResponse, len(txns))
	for i := range txns {
		out[i] = toTransactionResponse(&txns[i])
	}
	return out
}

type goalResponse struct {
	ID           string           `json:"id"`
	Description  string           `json:"description"`
	TargetValue  model.Money      `json:"targetValue"`
	CurrentValue model.Money      `json:"currentValue"`
	Deadline     apiDate          `json:"deadline"`
	Status       model.GoalStatus `json:"status"`
	Progress     model.Percent    `json:"progress"`
	CreatedAt    time.Time        `json:"createdAt"`
}

func toGoalResponse(g *model.Goal) goalResponse {
	return goalResponse{
		ID:           g.ID,
		Description:  g.Description,
		TargetValue:  g.TargetValue,
		CurrentValue: g.CurrentValue,
		Deadline:     apiDate{g.Deadline},
		Status:       g.Status,
		Progress:     g.ProgressPercent(),
		CreatedAt:    g.CreatedAt,
	}
}

func toGoalResponses(goals []model.Goal) []goalResponse {
	out := make([]goalResponse, len(goals))
	for i := range goals {
		out[i] = toGoalResponse(&goals[i])
	}
	return out
}

type userResponse struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      model.UserRole `json:"role"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}
