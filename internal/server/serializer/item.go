package serializer

import "github.com/newsdeskhq/newsdesk/internal/model"

// Item serializes the render of an archive item.
func Item(m *model.Item) map[string]any {
	r := map[string]any{
		"uuid":       m.ID,
		"guid":       m.GUID,
		"state":      m.State,
		"created":    m.CreatedAt.UTC(),
		"updated_at": m.UpdatedAt.UTC(),
		"_links":     Links("/archive/" + m.ID),
	}

	if m.Headline != "" {
		r["headline"] = m.Headline
	}
	if m.Slugline != "" {
		r["slugline"] = m.Slugline
	}
	if m.DeskID != "" {
		r["desk"] = m.DeskID
	}
	if m.TaskID != "" {
		r["task_id"] = m.TaskID
	}
	if m.FirstCreated != nil {
		r["firstcreated"] = m.FirstCreated.UTC()
	}

	return r
}

// Items serializes the render of an archive item list.
func Items(items []*model.Item) map[string]any {
	renders := make([]map[string]any, 0, len(items))
	for _, item := range items {
		renders = append(renders, Item(item))
	}
	return Collection(renders)
}
