package auth

import "testing"

func acct(uuid string) LoggedInAccount {
	return LoggedInAccount{Profile: MinecraftAccountInfo{ID: uuid}}
}

func TestAddAccountAndSetActive(t *testing.T) {
	var d AccountData
	d.AddAccountAndSetActive(acct("a"))
	d.AddAccountAndSetActive(acct("b"))

	active, ok := d.ActiveAccount()
	if !ok || active.Profile.ID != "b" {
		t.Fatalf("expected b to be active, got %+v ok=%v", active, ok)
	}
}

func TestAddAccountOnlyFirstBecomesActive(t *testing.T) {
	var d AccountData
	d.AddAccount(acct("a"))
	d.AddAccount(acct("b"))

	active, ok := d.ActiveAccount()
	if !ok || active.Profile.ID != "a" {
		t.Fatalf("expected a to remain active, got %+v ok=%v", active, ok)
	}
}

func TestRemoveByUUIDClearsActiveWhenActiveRemoved(t *testing.T) {
	var d AccountData
	d.AddAccountAndSetActive(acct("a"))
	d.RemoveByUUID("a")
	if _, ok := d.ActiveAccount(); ok {
		t.Fatal("expected no active account after removing the only (active) account")
	}
}

func TestRemoveByUUIDDecrementsActiveWhenLowerIndexRemoved(t *testing.T) {
	var d AccountData
	d.AddAccountAndSetActive(acct("a"))
	d.AddAccountAndSetActive(acct("b"))
	d.AddAccountAndSetActive(acct("c")) // active = c, index 2

	d.RemoveByUUID("a") // removes index 0, active should become 1
	active, ok := d.ActiveAccount()
	if !ok || active.Profile.ID != "c" {
		t.Fatalf("expected c to remain active after removing a lower-indexed account, got %+v ok=%v", active, ok)
	}
}

func TestRemoveByUUIDLeavesActiveUntouchedWhenHigherIndexRemoved(t *testing.T) {
	var d AccountData
	d.AddAccountAndSetActive(acct("a"))
	d.SetActiveByUUID("a")
	d.AddAccount(acct("b"))

	d.RemoveByUUID("b")
	active, ok := d.ActiveAccount()
	if !ok || active.Profile.ID != "a" {
		t.Fatalf("expected a to remain active, got %+v ok=%v", active, ok)
	}
}

func TestGetByUUIDAndSetActiveByUUID(t *testing.T) {
	var d AccountData
	d.AddAccount(acct("a"))
	d.AddAccount(acct("b"))

	if _, ok := d.GetByUUID("missing"); ok {
		t.Fatal("expected no match for an unknown uuid")
	}
	d.SetActiveByUUID("b")
	active, ok := d.ActiveAccount()
	if !ok || active.Profile.ID != "b" {
		t.Fatalf("expected b active after SetActiveByUUID, got %+v ok=%v", active, ok)
	}
}

func TestLogoutAll(t *testing.T) {
	var d AccountData
	d.AddAccountAndSetActive(acct("a"))
	d.LogoutAll()
	if !d.IsEmpty() {
		t.Fatal("expected an empty roster after LogoutAll")
	}
	if _, ok := d.ActiveAccount(); ok {
		t.Fatal("expected no active account after LogoutAll")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore(AccountData{})
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			s.AddAccountAndSetActive(acct("x"))
		}
		close(done)
	}()
	for i := 0; i < 100; i++ {
		s.Snapshot()
	}
	<-done
}
