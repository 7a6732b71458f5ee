package domain

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		raw  string
		want Role
		ok   bool
	}{
		{"ADMINISTRATOR", RoleAdministrator, true},
		{"MONITOR", RoleMonitor, true},
		{"END_USER", RoleEndUser, true},
		{"ADMINISTRADOR", RoleAdministrator, true},
		{"USUARIO", RoleEndUser, true},
		{"admin", RoleAdministrator, true},
		{"monitor", RoleMonitor, true},
		{"user", RoleEndUser, true},
		{"", "", false},
		{"ROOT", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseRole(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
