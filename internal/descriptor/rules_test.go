package descriptor

import "testing"

func TestParseRuleSingleCondition(t *testing.T) {
	rules, err := parseRules([]rawRule{
		{Action: "allow", Os: map[string]string{"name": "osx"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 1 || rules[0].Condition == nil || rules[0].Condition.Kind != CondOs || rules[0].Condition.Os != "osx" {
		t.Fatalf("unexpected rule: %+v", rules)
	}
}

func TestParseRuleRejectsMultiCondition(t *testing.T) {
	_, err := parseRules([]rawRule{
		{Action: "allow", Os: map[string]string{"name": "windows", "arch": "x86"}},
	})
	if err == nil {
		t.Fatal("expected an error for a rule carrying two os conditions")
	}
}

func TestParseRuleRejectsUnknownOsKey(t *testing.T) {
	_, err := parseRules([]rawRule{
		{Action: "allow", Os: map[string]string{"bitness": "64"}},
	})
	if err == nil {
		t.Fatal("expected an error for an unknown os rule key")
	}
}

func TestParseRuleRecognizesArchAliases(t *testing.T) {
	cases := map[string]string{"x86": "x86", "x64": "x64", "x86_64": "x64", "aarch64": "aarch64", "arm64": "aarch64"}
	for in, want := range cases {
		rules, err := parseRules([]rawRule{{Action: "allow", Os: map[string]string{"arch": in}}})
		if err != nil {
			t.Fatalf("arch %q: %v", in, err)
		}
		if rules[0].Condition.Arch != want {
			t.Errorf("arch %q resolved to %q, want %q", in, rules[0].Condition.Arch, want)
		}
	}
}

func TestRuleMatchesXOR(t *testing.T) {
	ctx := EvalContext{Os: "windows"}
	allowMatch := Rule{Action: Allow, Condition: &RuleCondition{Kind: CondOs, Os: "windows"}}
	if !allowMatch.Matches(ctx) {
		t.Error("allow rule with matching condition should match")
	}
	disallowMatch := Rule{Action: Disallow, Condition: &RuleCondition{Kind: CondOs, Os: "windows"}}
	if disallowMatch.Matches(ctx) {
		t.Error("disallow rule with matching condition should not match")
	}
	disallowNoMatch := Rule{Action: Disallow, Condition: &RuleCondition{Kind: CondOs, Os: "linux"}}
	if !disallowNoMatch.Matches(ctx) {
		t.Error("disallow rule whose condition does not match should match")
	}
}

func TestRuleNoConditionMatchesIffAllow(t *testing.T) {
	ctx := EvalContext{}
	if !(Rule{Action: Allow}).Matches(ctx) {
		t.Error("unconditional allow rule should always match")
	}
	if (Rule{Action: Disallow}).Matches(ctx) {
		t.Error("unconditional disallow rule should never match")
	}
}
