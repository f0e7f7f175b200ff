package handler

import (
	"github.com/agroplan/backoffice/internal/core/domain"
)

// --- Service result → HTTP response ---

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: p.StartDate.UTC(),
		CloseDate: p.CloseDate,
		State:     string(p.State),
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func toListProjectsResponse(projects []*domain.Project) listProjectsResponse {
	items := make([]projectResponse, len(projects))
	for i, p := range projects {
		items[i] = toProjectResponse(p)
	}
	return listProjectsResponse{Data: items}
}

func toLineResponse(l *domain.LedgerLine) lineResponse {
	return lineResponse{
		ID:          l.ID,
		ProjectID:   l.ProjectID,
		Activity:    l.Activity,
		SubAction:   l.SubAction,
		Responsible: l.Responsible,
		Time:        l.Time,
		Quantity:    l.Quantity,
		Hours:       l.Hours,
		UnitCost:    l.UnitCost,
		Amount:      l.Amount,
		CreatedAt:   l.CreatedAt.UTC(),
		UpdatedAt:   l.UpdatedAt.UTC(),
	}
}
