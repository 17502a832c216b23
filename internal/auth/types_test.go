package auth

import (
	"encoding/json"
	"testing"
)

func TestLoggedInAccountJSONFlattensProfile(t *testing.T) {
	acc := LoggedInAccount{
		MinecraftToken: MinecraftTokenInfo{AccessToken: "tok"},
		Profile:        MinecraftAccountInfo{Name: "Steve", ID: "uuid-1"},
	}
	data, err := json.Marshal(acc)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["name"] != "Steve" || raw["id"] != "uuid-1" {
		t.Errorf("profile fields should be flattened to the top level, got %v", raw)
	}

	var round LoggedInAccount
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatal(err)
	}
	if round.Profile.Name != "Steve" || round.MinecraftAccessToken() != "tok" {
		t.Errorf("round-tripped account = %+v", round)
	}
}
