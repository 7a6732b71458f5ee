package dto

import "testing"

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-05-01"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	for _, raw := range []string{"", "01/05/2024", "2024-13-01", "2024-05-01T09:00:00"} {
		if _, err := ParseDate(raw); err == nil {
			t.Errorf("ParseDate(%q) should fail", raw)
		}
	}
}

func TestParseDateTimeAcceptsLegacyLayouts(t *testing.T) {
	valid := []string{
		"2024-05-01T09:00:00Z",
		"2024-05-01T09:00:00",
		"2024-05-01T09:00",
		"2024-05-01 09:00:00",
		"2024-05-01 09:00",
	}
	for _, raw := range valid {
		ts, err := ParseDateTime(raw)
		if err != nil {
			t.Errorf("ParseDateTime(%q): %v", raw, err)
			continue
		}
		if ts.Hour() != 9 || ts.Minute() != 0 {
			t.Errorf("ParseDateTime(%q) = %v, want 09:00", raw, ts)
		}
	}

	for _, raw := range []string{"", "not-a-date", "2024-05-01"} {
		if _, err := ParseDateTime(raw); err == nil {
			t.Errorf("ParseDateTime(%q) should fail", raw)
		}
	}
}
