package services

import (
	"github.com/google/uuid"

	"github.com/rohitpal119/district-state-watch/internal/models"
)

/*
   Visibility filtering is the single authorization choke point for
   reads: every listing and every aggregation input goes through these
   functions before an actor sees it.

   The rules, per role:

     state_official      everything, unfiltered
     district_collector  rows whose district equals the actor's
                         assigned district (exact match)
     contractor          own projects; alerts/feedback on own projects

   All functions are pure and order-preserving. The actor is an
   explicit parameter; nothing here reads ambient session state.
*/

// FilterProjects returns the projects the actor may see.
func FilterProjects(actor *models.Profile, projects []*models.Project) []*models.Project {
	switch actor.Role {
	case models.RoleStateOfficial:
		return projects
	case models.RoleDistrictCollector:
		out := []*models.Project{}
		for _, p := range projects {
			if p.District == actor.District() {
				out = append(out, p)
			}
		}
		return out
	case models.RoleContractor:
		out := []*models.Project{}
		for _, p := range projects {
			if p.ContractorID != nil && *p.ContractorID == actor.ID {
				out = append(out, p)
			}
		}
		return out
	default:
		return []*models.Project{}
	}
}

// AvailableProjects is the contractor's claimable view: unassigned and
// ongoing. It is a separate view, not part of FilterProjects.
func AvailableProjects(projects []*models.Project) []*models.Project {
	out := []*models.Project{}
	for _, p := range projects {
		if p.IsAvailable() {
			out = append(out, p)
		}
	}
	return out
}

// FilterAlerts returns the alerts the actor may see. ownProjects must
// be the actor's visible project set (only consulted for contractors).
func FilterAlerts(actor *models.Profile, alerts []*models.Alert, ownProjects []*models.Project) []*models.Alert {
	switch actor.Role {
	case models.RoleStateOfficial:
		return alerts
	case models.RoleDistrictCollector:
		out := []*models.Alert{}
		for _, a := range alerts {
			if a.District == actor.District() {
				out = append(out, a)
			}
		}
		return out
	case models.RoleContractor:
		own := projectIDSet(ownProjects)
		out := []*models.Alert{}
		for _, a := range alerts {
			if a.ProjectID != nil && own[*a.ProjectID] {
				out = append(out, a)
			}
		}
		return out
	default:
		return []*models.Alert{}
	}
}

// FilterFeedback returns the feedback entries the actor may see.
func FilterFeedback(actor *models.Profile, feedback []*models.Feedback, ownProjects []*models.Project) []*models.Feedback {
	switch actor.Role {
	case models.RoleStateOfficial:
		return feedback
	case models.RoleDistrictCollector:
		out := []*models.Feedback{}
		for _, f := range feedback {
			if f.District == actor.District() {
				out = append(out, f)
			}
		}
		return out
	case models.RoleContractor:
		own := projectIDSet(ownProjects)
		out := []*models.Feedback{}
		for _, f := range feedback {
			if f.ProjectID != nil && own[*f.ProjectID] {
				out = append(out, f)
			}
		}
		return out
	default:
		return []*models.Feedback{}
	}
}

func projectIDSet(projects []*models.Project) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(projects))
	for _, p := range projects {
		set[p.ID] = true
	}
	return set
}
