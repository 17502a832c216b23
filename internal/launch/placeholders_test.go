package launch

import (
	"testing"

	"github.com/kestrel-mc/corelaunch/internal/descriptor"
)

func TestSelectArgumentsFiltersByRule(t *testing.T) {
	args := []descriptor.Argument{
		{Values: []string{"--always"}},
		{
			Values: []string{"--demo"},
			Rules:  []descriptor.Rule{{Action: descriptor.Allow, Condition: &descriptor.RuleCondition{Kind: descriptor.CondIsDemoUser, Expected: true}}},
		},
	}
	got := selectArguments(args, descriptor.EvalContext{})
	if got != "--always" {
		t.Errorf("selectArguments = %q, want only the unconditional argument", got)
	}
}

func TestAssetsIndexNameStripsJsonSuffix(t *testing.T) {
	if got := assetsIndexName("17.json"); got != "17" {
		t.Errorf("assetsIndexName = %q", got)
	}
	if got := assetsIndexName("1.20"); got != "1.20" {
		t.Errorf("assetsIndexName = %q, want unchanged when no .json suffix", got)
	}
}

func TestPlaceholderTableSubstitutesOnlyWhenPresent(t *testing.T) {
	table := buildPlaceholderTable(placeholderValues{playerName: "Notch"})
	if got := table.substitute("hello ${auth_player_name}"); got != "hello Notch" {
		t.Errorf("substitute = %q", got)
	}
	if got := table.substitute("no placeholders here"); got != "no placeholders here" {
		t.Errorf("substitute = %q, want input returned unchanged", got)
	}
}
