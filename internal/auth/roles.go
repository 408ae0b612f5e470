package auth

// RolesFromClaims maps Keycloak realm roles to authorities:
//
//	{"realm_access": {"roles": ["admin", "client"]}}  →  ["ROLE_admin", "ROLE_client"]
//
// A missing realm_access or roles claim yields an empty list. Entries that
// are not strings are skipped. Order is preserved and duplicates are kept.
func RolesFromClaims(claims map[string]any) []string {
	realmAccess, ok := claims["realm_access"].(map[string]any)
	if !ok {
		return []string{}
	}

	roles, ok := realmAccess["roles"].([]any)
	if !ok {
		if typed, ok := realmAccess["roles"].([]string); ok {
			out := make([]string, 0, len(typed))
			for _, r := range typed {
				out = append(out, "ROLE_"+r)
			}
			return out
		}
		return []string{}
	}

	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if s, ok := r.(string); ok {
			out = append(out, "ROLE_"+s)
		}
	}
	return out
}
