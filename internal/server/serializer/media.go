package serializer

import "github.com/newsdeskhq/newsdesk/internal/model"

// Media serializes the render of a stored media.
func Media(m *model.Media) map[string]any {
	r := map[string]any{
		"uuid":         m.ID,
		"name":         m.Name,
		"content_type": m.ContentType,
		"size":         m.Size,
		"created_at":   m.CreatedAt.UTC(),
		"_links":       Links("/media/" + m.ID),
	}

	if len(m.Metadata) > 0 {
		r["metadata"] = m.Metadata
	}

	return r
}
