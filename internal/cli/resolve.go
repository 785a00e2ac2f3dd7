package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveByName resolves user input against a list of entities by exact name
// (case-insensitive), exact ID, then ID prefix.
func resolveByName(input, kind string, ids, names []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s is required", kind)
	}
	for i, name := range names {
		if strings.EqualFold(name, input) {
			return ids[i], nil
		}
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}
	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveMilestoneID(ctx context.Context, app *App, input string) (string, error) {
	list, err := app.Milestones.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(list))
	names := make([]string, len(list))
	for i, m := range list {
		ids[i] = m.ID
		names[i] = m.Name
	}
	return resolveByName(input, "milestone", ids, names)
}

func resolvePhaseID(ctx context.Context, app *App, input string) (string, error) {
	list, err := app.Phases.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(list))
	names := make([]string, len(list))
	for i, p := range list {
		ids[i] = p.ID
		names[i] = p.Name
	}
	return resolveByName(input, "phase", ids, names)
}

func resolveTemplateID(ctx context.Context, app *App, input string) (string, error) {
	list, err := app.Templates.List(ctx, true)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(list))
	names := make([]string, len(list))
	for i, t := range list {
		ids[i] = t.ID
		names[i] = t.Name
	}
	return resolveByName(input, "template", ids, names)
}

func resolveProcedureID(ctx context.Context, app *App, input string) (string, error) {
	list, err := app.Procedures.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(list))
	names := make([]string, len(list))
	for i, p := range list {
		ids[i] = p.ID
		names[i] = p.Name
	}
	return resolveByName(input, "procedure type", ids, names)
}

func resolveSurgeonID(ctx context.Context, app *App, input string) (string, error) {
	list, err := app.Surgeons.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(list))
	names := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.ID
		names[i] = s.Name
	}
	return resolveByName(input, "surgeon", ids, names)
}
