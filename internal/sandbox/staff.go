package sandbox

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-admin-backend/internal/model"
	"rental-admin-backend/internal/parse"
	"rental-admin-backend/internal/store"
)

type staffRequest struct {
	EmployeeID     string      `json:"employee_id" binding:"required"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Email          string      `json:"email" binding:"omitempty,email"`
	JobTitle       string      `json:"job_title" binding:"required"`
	Department     string      `json:"department"`
	BranchID       int64       `json:"branch_id" binding:"required,gt=0"`
	Salary         model.Money `json:"salary" binding:"gte=0"`
	EmploymentType string      `json:"employment_type" binding:"required"`
	HireDate       string      `json:"hire_date" binding:"required"`
}

func (r staffRequest) fields() map[string]any {
	return map[string]any{
		"employee_id":     r.EmployeeID,
		"first_name":      r.FirstName,
		"last_name":       r.LastName,
		"email":           r.Email,
		"job_title":       r.JobTitle,
		"department":      r.Department,
		"branch_id":       r.BranchID,
		"salary":          r.Salary.Round(),
		"employment_type": r.EmploymentType,
		"hire_date":       parse.NormalizeDate(r.HireDate),
	}
}

func (s *Server) employeeIDTaken(c *gin.Context, employeeID string, except int64) (bool, error) {
	var n int64
	err := s.rentals.DB().WithContext(c.Request.Context()).Model(&model.StaffRecord{}).
		Where("employee_id = ? AND staff_id <> ?", employeeID, except).
		Count(&n).Error
	return n > 0, err
}

func (s *Server) listStaff(c *gin.Context) {
	q := listQuery(c, "first_name", "last_name", "employee_id", "email", "job_title")
	branch, ok := intFilter(c, "branch")
	if !ok {
		return
	}
	q.Equal["branch_id"] = branch
	q.Equal["job_title"] = c.Query("job_title")
	q.Equal["employment_type"] = c.Query("employment_type")
	if cond, ok := store.StaffStatusCond(c.Query("status")); ok {
		q.Where = append(q.Where, cond)
	}
	q.Order = "staff_id"

	items, total, err := store.List[model.StaffRecord](c.Request.Context(), s.rentals, q)
	if err != nil {
		failErr(c, err, "staff")
		return
	}
	paginated(c, items, total, q)
}

func (s *Server) getStaff(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rec, err := store.Get[model.StaffRecord](c.Request.Context(), s.rentals, id)
	if err != nil {
		failErr(c, err, "Staff member")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) createStaff(c *gin.Context) {
	var req staffRequest
	if !bindJSON(c, &req) {
		return
	}
	taken, err := s.employeeIDTaken(c, req.EmployeeID, 0)
	if err != nil {
		failErr(c, err, "staff")
		return
	}
	if taken {
		fail(c, http.StatusConflict, "Employee ID already exists")
		return
	}

	rec := model.StaffRecord{
		EmployeeID:     req.EmployeeID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		JobTitle:       req.JobTitle,
		Department:     req.Department,
		BranchID:       req.BranchID,
		Salary:         req.Salary.Round(),
		EmploymentType: req.EmploymentType,
		HireDate:       parse.NormalizeDate(req.HireDate),
	}
	if err := store.Create(c.Request.Context(), s.rentals, &rec); err != nil {
		failErr(c, err, "staff")
		return
	}
	wrapped(c, http.StatusCreated, rec, "Staff member created successfully")
}

func (s *Server) updateStaff(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req staffRequest
	if !bindJSON(c, &req) {
		return
	}
	taken, err := s.employeeIDTaken(c, req.EmployeeID, id)
	if err != nil {
		failErr(c, err, "staff")
		return
	}
	if taken {
		fail(c, http.StatusConflict, "Employee ID already exists")
		return
	}

	rec, err := store.Update[model.StaffRecord](c.Request.Context(), s.rentals, id, req.fields())
	if err != nil {
		failErr(c, err, "Staff member")
		return
	}
	wrapped(c, http.StatusOK, rec, "Staff member updated successfully")
}

func (s *Server) terminateStaff(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		TerminationDate string `json:"termination_date" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	date, err := parse.Date(req.TerminationDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid termination date")
		return
	}

	ctx := c.Request.Context()
	current, err := store.Get[model.StaffRecord](ctx, s.rentals, id)
	if err != nil {
		failErr(c, err, "Staff member")
		return
	}
	if !current.IsActive() {
		fail(c, http.StatusConflict, "Staff member is already terminated")
		return
	}
	if current.HireDate != "" && date.Format(parse.DateLayout) < parse.NormalizeDate(current.HireDate) {
		fail(c, http.StatusBadRequest, "Termination date cannot be before hire date")
		return
	}

	rec, err := store.Update[model.StaffRecord](ctx, s.rentals, id, map[string]any{
		"termination_date": date.Format(parse.DateLayout),
	})
	if err != nil {
		failErr(c, err, "Staff member")
		return
	}
	wrapped(c, http.StatusOK, rec, "Staff member terminated")
}

func (s *Server) updateStaffBranch(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		BranchID int64 `json:"branch_id" binding:"required,gt=0"`
	}
	if !bindJSON(c, &req) {
		return
	}
	rec, err := store.Update[model.StaffRecord](c.Request.Context(), s.rentals, id, map[string]any{"branch_id": req.BranchID})
	if err != nil {
		failErr(c, err, "Staff member")
		return
	}
	wrapped(c, http.StatusOK, rec, "Branch updated")
}

func (s *Server) deleteStaff(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := store.Delete[model.StaffRecord](c.Request.Context(), s.rentals, id); err != nil {
		failErr(c, err, "Staff member")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Staff member deleted"})
}

func (s *Server) staffOverview(c *gin.Context) {
	overview, err := s.rentals.StaffOverview(c.Request.Context())
	if err != nil {
		failErr(c, err, "staff overview")
		return
	}
	wrapped(c, http.StatusOK, overview, "")
}

func (s *Server) listActivityLogs(c *gin.Context) {
	q := listQuery(c, "table_name", "old_values", "new_values")
	staffID, ok := intFilter(c, "staff_id")
	if !ok {
		return
	}
	q.Equal["staff_id"] = staffID
	q.Equal["action"] = c.Query("action")
	q.Equal["table_name"] = c.Query("table_name")
	q.Order = "created_at DESC, log_id DESC"

	items, total, err := store.List[model.ActivityLogEntry](c.Request.Context(), s.rentals, q)
	if err != nil {
		failErr(c, err, "activity logs")
		return
	}
	paginated(c, items, total, q)
}
