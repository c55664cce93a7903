package serializer

import "github.com/newsdeskhq/newsdesk/internal/model"

// User serializes the render of a user.
// The password is never part of a render, whatever the representation.
func User(m *model.User) map[string]any {
	r := map[string]any{
		"uuid":       m.ID,
		"created_at": m.CreatedAt.UTC(),
		"updated_at": m.UpdatedAt.UTC(),
		"username":   m.Username,
		"_links":     Links("/users/" + m.Username),
	}

	if m.FirstName != "" {
		r["first_name"] = m.FirstName
	}

	return r
}

// Users serializes the render of a user list.
func Users(users []*model.User) map[string]any {
	renders := make([]map[string]any, 0, len(users))
	for _, u := range users {
		renders = append(renders, User(u))
	}
	return Collection(renders)
}
