package config

import "testing"

func TestParseSlotCatalogue(t *testing.T) {
	slots, err := parseSlotCatalogue("09:00, 10:00,11:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(slots) != 3 || slots[0] != "09:00" || slots[2] != "11:00" {
		t.Fatalf("unexpected catalogue: %v", slots)
	}
}

func TestParseSlotCatalogueRejectsInvalid(t *testing.T) {
	for _, raw := range []string{"", "  ,  ", "9am", "25:00", "09:00,notatime"} {
		if _, err := parseSlotCatalogue(raw); err == nil {
			t.Errorf("parseSlotCatalogue(%q) should fail", raw)
		}
	}
}
