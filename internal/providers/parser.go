package providers

import "strings"

type ProviderRef struct {
	Raw      string
	Name     string
	KeyAlias string
}

// ParseProviderRef reads "name" or "name:alias". An empty ref selects the
// mock provider.
func ParseProviderRef(raw string) ProviderRef {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ProviderRef{Raw: "mock", Name: "mock"}
	}
	ref := ProviderRef{Raw: raw, Name: raw}
	if name, alias, ok := strings.Cut(raw, ":"); ok {
		ref.Name = strings.TrimSpace(name)
		ref.KeyAlias = strings.TrimSpace(alias)
	}
	return ref
}
