package validation

import (
	"errors"
	"strings"
	"time"

	"studyplanner/internal/adapter/http/dto"
	"studyplanner/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildCreateTaskInput normalizes a creation request. Either deadline or
// dueDate must carry a valid date; the trimmed title and userId must be
// non-empty.
func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	rawDeadline := req.Deadline
	if rawDeadline == nil {
		rawDeadline = req.DueDate
	}
	if rawDeadline == nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	deadline, err := time.Parse("2006-01-02", *rawDeadline)
	if err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	return domain.CreateTaskInput{
		UserID:      userID,
		Title:       title,
		Description: description,
		Deadline:    deadline,
	}, nil
}
