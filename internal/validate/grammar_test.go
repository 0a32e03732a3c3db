package validate

import "testing"

func TestParseModification(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
		ok    bool
	}{
		{"bare number", "24591", "24591", true},
		{"mod prefix", "mod 24591", "24591", true},
		{"mod with dot", "Mod. 24591", "24591", true},
		{"uppercase prefix", "MOD 4567", "4567", true},
		{"four digits", "1234", "1234", true},
		{"six digits", "123456", "123456", true},
		{"too short", "123", "", false},
		{"too long", "1234567", "", false},
		{"sb code", "A320-57-1089", "", false},
		{"prose", "landing gear", "", false},
		{"surrounding whitespace", "  mod 24591  ", "24591", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseModification(tt.token)
			if ok != tt.ok {
				t.Fatalf("ParseModification(%q) ok = %v, want %v", tt.token, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseModification(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseServiceBulletin(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantID  string
		wantRev int
		ok      bool
	}{
		{"bare identifier", "A320-57-1089", "A320-57-1089", 0, true},
		{"sb prefix", "SB A320-57-1089", "A320-57-1089", 0, true},
		{"with revision", "A320-57-1089 Rev 04", "A320-57-1089", 4, true},
		{"revision spelled out", "SB A320-57-1089 Revision 2", "A320-57-1089", 2, true},
		{"rev with dot", "A320-57-1089 rev. 11", "A320-57-1089", 11, true},
		{"lowercase canonicalized", "a320-57-1089", "A320-57-1089", 0, true},
		{"three-digit middle", "B737-571-0042", "B737-571-0042", 0, true},
		{"mod number", "24591", "", 0, false},
		{"missing segment", "A320-57", "", 0, false},
		{"prose", "inspect fastener", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, rev, ok := ParseServiceBulletin(tt.token)
			if ok != tt.ok {
				t.Fatalf("ParseServiceBulletin(%q) ok = %v, want %v", tt.token, ok, tt.ok)
			}
			if id != tt.wantID || rev != tt.wantRev {
				t.Errorf("ParseServiceBulletin(%q) = (%q, %d), want (%q, %d)", tt.token, id, rev, tt.wantID, tt.wantRev)
			}
		})
	}
}

func TestClassifyIdentifier(t *testing.T) {
	tests := []struct {
		token string
		want  Namespace
	}{
		{"24591", NamespaceModification},
		{"mod 24591", NamespaceModification},
		{"A320-57-1089", NamespaceServiceBulletin},
		{"SB A320-57-1089 Rev 04", NamespaceServiceBulletin},
		{"winglets installed", NamespaceUnknown},
		{"", NamespaceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			ns, err := ClassifyIdentifier(tt.token)
			if err != nil {
				t.Fatalf("ClassifyIdentifier(%q) returned error: %v", tt.token, err)
			}
			if ns != tt.want {
				t.Errorf("ClassifyIdentifier(%q) = %q, want %q", tt.token, ns, tt.want)
			}
		})
	}
}

// The two grammars must stay disjoint: no token may parse in both. This
// pins the property the evaluator's namespace routing relies on.
func TestGrammarsAreDisjoint(t *testing.T) {
	tokens := []string{
		"24591", "mod 24591", "1234", "123456",
		"A320-57-1089", "SB A320-57-1089", "A320-57-1089 Rev 04",
		"B737-571-0042", "a321-53-0100 revision 9",
	}

	for _, token := range tokens {
		_, isMod := ParseModification(token)
		_, _, isSB := ParseServiceBulletin(token)
		if isMod && isSB {
			t.Errorf("Token %q parses in both grammars", token)
		}
	}
}
