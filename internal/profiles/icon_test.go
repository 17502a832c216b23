package profiles

import (
	"encoding/json"
	"testing"
)

func TestNamedIconRoundTrip(t *testing.T) {
	icon, ok := NamedIcon("Crafting_Table")
	if !ok {
		t.Fatal("expected Crafting_Table to be a recognized built-in")
	}
	data, err := json.Marshal(icon)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"Crafting_Table"` {
		t.Errorf("marshaled = %s", data)
	}

	var round Icon
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatal(err)
	}
	if round.IsCustom() || round.AsString() != "Crafting_Table" {
		t.Errorf("round-tripped icon = %+v", round)
	}
}

func TestUnknownNameRejected(t *testing.T) {
	if _, ok := NamedIcon("Diamond_Sword"); ok {
		t.Fatal("Diamond_Sword is not a real built-in icon")
	}
}

func TestPNGIconRoundTrip(t *testing.T) {
	icon := PNGIcon([]byte{0x89, 'P', 'N', 'G'})
	data, err := json.Marshal(icon)
	if err != nil {
		t.Fatal(err)
	}

	var round Icon
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatal(err)
	}
	if !round.IsCustom() || round.String() != "Custom Png" {
		t.Errorf("round-tripped png icon = %+v", round)
	}
	if string(round.data) != string([]byte{0x89, 'P', 'N', 'G'}) {
		t.Errorf("decoded bytes = %v", round.data)
	}
}

func TestSVGIconPrefixQuirkPreserved(t *testing.T) {
	icon := SVGIcon([]byte("<svg/>"))
	encoded := icon.AsString()
	if encoded[:len(svgPrefix)] != svgPrefix {
		t.Fatalf("expected the svg data URI prefix without +xml, got %q", encoded)
	}

	var round Icon
	if err := json.Unmarshal([]byte(`"`+encoded+`"`), &round); err != nil {
		t.Fatal(err)
	}
	if string(round.data) != "<svg/>" {
		t.Errorf("decoded svg bytes = %q", round.data)
	}
}

func TestUnrecognizedIconStringRejected(t *testing.T) {
	var icon Icon
	if err := json.Unmarshal([]byte(`"not-a-valid-icon"`), &icon); err == nil {
		t.Fatal("expected an error for an unrecognized icon string")
	}
}
