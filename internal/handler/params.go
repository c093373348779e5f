package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/filter"
	"taskboard/internal/middleware"
)

// currentUser returns the authenticated user id or writes 401.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the named path parameter or writes 400.
func pathID(c *gin.Context, param, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s ID format", what)})
		return uuid.Nil, false
	}
	return id, true
}

// parseCriteria reads labelIds, memberIds, isCompleted and dueDatePreset.
func parseCriteria(c *gin.Context) (filter.Criteria, error) {
	var criteria filter.Criteria
	var err error

	if criteria.LabelIDs, err = parseIDList(c.Query("labelIds")); err != nil {
		return criteria, fmt.Errorf("invalid labelIds: %w", err)
	}
	if criteria.MemberIDs, err = parseIDList(c.Query("memberIds")); err != nil {
		return criteria, fmt.Errorf("invalid memberIds: %w", err)
	}
	if raw := c.Query("isCompleted"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return criteria, fmt.Errorf("invalid isCompleted: %q", raw)
		}
		criteria.IsCompleted = &completed
	}
	if raw := c.Query("dueDatePreset"); raw != "" {
		preset, err := filter.ParseDueDatePreset(raw)
		if err != nil {
			return criteria, err
		}
		criteria.DueDatePreset = &preset
	}
	return criteria, nil
}

func parseIDList(raw string) ([]uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
