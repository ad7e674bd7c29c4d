package project

import (
	"strings"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/pkg/apperr"
)

type CreateProjectDTO struct {
	Title               string       `json:"title" binding:"required"`
	Description         string       `json:"description"`
	DetailedDescription string       `json:"detailed_description"`
	Image               string       `json:"image"`
	StartDate           models.Date  `json:"start_date"`
	EndDate             *models.Date `json:"end_date"`
	Status              string       `json:"status"`
	Link                string       `json:"link"`
	Featured            bool         `json:"featured"`
}

func (d *CreateProjectDTO) validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return apperr.Required("title")
	}
	if strings.TrimSpace(d.Description) == "" {
		return apperr.Required("description")
	}
	if d.StartDate.IsZero() {
		return apperr.Required("start_date")
	}
	if d.Status == "" {
		d.Status = models.ProjectOngoing
	}
	if !models.ValidChoice(d.Status, models.ProjectStatuses) {
		return apperr.Choice("status", d.Status, models.ProjectStatuses)
	}
	return nil
}

type UpdateProjectDTO struct {
	Title               *string      `json:"title"`
	Description         *string      `json:"description"`
	DetailedDescription *string      `json:"detailed_description"`
	Image               *string      `json:"image"`
	StartDate           *models.Date `json:"start_date"`
	EndDate             *models.Date `json:"end_date"`
	ClearEndDate        bool         `json:"clear_end_date"`
	Status              *string      `json:"status"`
	Link                *string      `json:"link"`
	Featured            *bool        `json:"featured"`
}

func (d *UpdateProjectDTO) updates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if d.Title != nil {
		if strings.TrimSpace(*d.Title) == "" {
			return nil, apperr.Required("title")
		}
		updates["title"] = *d.Title
	}
	if d.Description != nil {
		if strings.TrimSpace(*d.Description) == "" {
			return nil, apperr.Required("description")
		}
		updates["description"] = *d.Description
	}
	if d.DetailedDescription != nil {
		updates["detailed_description"] = *d.DetailedDescription
	}
	if d.Image != nil {
		updates["image"] = *d.Image
	}
	if d.StartDate != nil {
		if d.StartDate.IsZero() {
			return nil, apperr.Required("start_date")
		}
		updates["start_date"] = *d.StartDate
	}
	switch {
	case d.ClearEndDate:
		updates["end_date"] = nil
	case d.EndDate != nil:
		if d.EndDate.IsZero() {
			updates["end_date"] = nil
		} else {
			updates["end_date"] = *d.EndDate
		}
	}
	if d.Status != nil {
		if !models.ValidChoice(*d.Status, models.ProjectStatuses) {
			return nil, apperr.Choice("status", *d.Status, models.ProjectStatuses)
		}
		updates["status"] = *d.Status
	}
	if d.Link != nil {
		updates["link"] = *d.Link
	}
	if d.Featured != nil {
		updates["featured"] = *d.Featured
	}
	return updates, nil
}
