package team

import "testing"

func TestTeamValidate(t *testing.T) {
	valid := Team{ID: "t1", Name: "Hawks", LeagueID: "L1", OwnerUserID: "u1"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid team, got %v", err)
	}

	missingLeague := valid
	missingLeague.LeagueID = " "
	if err := missingLeague.Validate(); err == nil {
		t.Fatalf("expected league id to be required")
	}
}

func TestTeamOwnedBy(t *testing.T) {
	tm := Team{ID: "t1", OwnerUserID: "u1"}
	if !tm.OwnedBy("u1") {
		t.Fatalf("expected u1 to own team")
	}
	if tm.OwnedBy("u2") || tm.OwnedBy("") {
		t.Fatalf("expected only u1 to own team")
	}
}
