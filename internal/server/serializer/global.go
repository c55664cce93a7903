package serializer

// Collection serializes the given renders to the general list response format.
func Collection(renders []map[string]any) map[string]any {
	return map[string]any{
		"_items": renders,
	}
}

// Links serializes the canonical link of a resource.
func Links(href string) map[string]any {
	return map[string]any{
		"self": map[string]any{
			"href": href,
		},
	}
}
