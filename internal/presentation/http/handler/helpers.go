package handler

import (
	"time"

	"github.com/chalkboard-id/chalkboard-api/internal/domain/enum"
	"github.com/chalkboard-id/chalkboard-api/internal/presentation/http/dto/response"
	"github.com/chalkboard-id/chalkboard-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.UserRole {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	r, _ := role.(enum.UserRole)
	return r
}

// GetStaffID extracts the staff member linked to the authenticated user
func GetStaffID(c *gin.Context) *uuid.UUID {
	staffVal, exists := c.Get("staff_id")
	if !exists {
		return nil
	}
	staffID, ok := staffVal.(*uuid.UUID)
	if !ok {
		return nil
	}
	return staffID
}

// staffOrCurrent returns the explicit staff reference of a request, falling
// back to the staff member behind the token
func staffOrCurrent(c *gin.Context, explicit *uuid.UUID) *uuid.UUID {
	if explicit != nil {
		return explicit
	}
	return GetStaffID(c)
}

// paramUUID parses a path parameter, answering 400 when it is malformed
func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUID parses an optional query value, ignoring malformed input
func optionalUUID(value string) *uuid.UUID {
	if value == "" {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	return &id
}

// dateRange parses start_date and end_date (YYYY-MM-DD). The end date is
// inclusive, so it is moved to the start of the following day.
func dateRange(start, end string) (*time.Time, *time.Time) {
	var from, to *time.Time
	if t, err := time.Parse(dateLayout, start); err == nil {
		from = &t
	}
	if t, err := time.Parse(dateLayout, end); err == nil {
		next := t.AddDate(0, 0, 1)
		to = &next
	}
	return from, to
}

func pageParams(page, perPage int) *pagination.PaginationParams {
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}
