package systems

import (
	"testing"

	"rival-server/internal/domain"
)

func TestNewReputationStartsNeutral(t *testing.T) {
	rep := NewReputation()
	for _, f := range domain.DefaultFactions {
		if rep.Values[f] != domain.ReputationNeutral {
			t.Errorf("%s must start at %d, got %d", f, domain.ReputationNeutral, rep.Values[f])
		}
		if FactionLevel(rep, f) != RepNeutral {
			t.Errorf("%s must start Neutral", f)
		}
	}
}

func TestLevelForThresholds(t *testing.T) {
	cases := map[int]ReputationLevel{
		0:   RepHated,
		10:  RepHated,
		11:  RepHostile,
		25:  RepHostile,
		26:  RepUnfriendly,
		40:  RepUnfriendly,
		41:  RepNeutral,
		60:  RepNeutral,
		61:  RepFriendly,
		75:  RepFriendly,
		76:  RepHonored,
		90:  RepHonored,
		91:  RepRevered,
		100: RepRevered,
	}
	for value, want := range cases {
		if got := LevelFor(value); got != want {
			t.Errorf("LevelFor(%d) = %s, want %s", value, got, want)
		}
	}
}

func TestApplyChangeBoundsOverArbitrarySequence(t *testing.T) {
	rep := NewReputation()

	// Произвольная последовательность изменений: стендинг никогда
	// не покидает [0,100]
	deltas := []int{30, 30, 30, 30, -500, 7, -3, 1000, -1, 0, -50, 200}
	for _, d := range deltas {
		value := ApplyChange(rep, ReputationChange{Faction: domain.FactionSeiran, Amount: d})
		if value < domain.ReputationMin || value > domain.ReputationMax {
			t.Fatalf("standing escaped bounds: %d after delta %d", value, d)
		}
		if rep.Values[domain.FactionSeiran] != value {
			t.Fatal("returned value must match stored standing")
		}
	}

	if rep.Values[domain.FactionKurogane] != domain.ReputationNeutral {
		t.Error("changes to one faction must not leak into another")
	}
}

func TestApplyChangeUnknownFactionIgnored(t *testing.T) {
	rep := NewReputation()

	value := ApplyChange(rep, ReputationChange{Faction: "ghost_academy", Amount: 40})
	if value != domain.ReputationNeutral {
		t.Errorf("unknown faction must report neutral, got %d", value)
	}
	if _, ok := rep.Values["ghost_academy"]; ok {
		t.Error("unknown faction must not be created")
	}
}

func TestAggressionMultiplier(t *testing.T) {
	cases := map[ReputationLevel]float64{
		RepHated:      2.0,
		RepHostile:    2.0,
		RepUnfriendly: 1.5,
		RepNeutral:    1.0,
		RepFriendly:   0.75,
		RepHonored:    0.5,
		RepRevered:    0.5,
	}
	for level, want := range cases {
		if got := AggressionMultiplier(level); got != want {
			t.Errorf("AggressionMultiplier(%s) = %.2f, want %.2f", level, got, want)
		}
	}
}

func TestDialogueOptionsGating(t *testing.T) {
	hostile := DialogueOptions(RepHostile)
	if !containsOption(hostile, DialogueThreat) {
		t.Errorf("hostile tier must offer %q, got %v", DialogueThreat, hostile)
	}
	if containsOption(hostile, DialogueTrade) {
		t.Error("hostile tier must not offer trade")
	}

	neutral := DialogueOptions(RepNeutral)
	if len(neutral) != 2 {
		t.Errorf("neutral tier offers only talk/leave, got %v", neutral)
	}

	honored := DialogueOptions(RepHonored)
	if !containsOption(honored, DialogueAskHelp) || !containsOption(honored, DialogueTrade) {
		t.Errorf("honored tier must offer help and trade, got %v", honored)
	}
	if !containsOption(honored, DialogueTalk) || !containsOption(honored, DialogueLeave) {
		t.Error("talk and leave are always available")
	}
}

func TestIsQuestUnlocked(t *testing.T) {
	rep := NewReputation()
	ApplyChange(rep, ReputationChange{Faction: domain.FactionSeiran, Amount: 30}) // 80

	reqs := []QuestRequirement{
		{Faction: domain.FactionSeiran, MinRep: 76},
		{Faction: domain.FactionKurogane, MinRep: 40},
	}
	if !IsQuestUnlocked(rep, reqs) {
		t.Error("both requirements met, quest must unlock")
	}

	reqs[1].MinRep = 60
	if IsQuestUnlocked(rep, reqs) {
		t.Error("one requirement short, quest must stay locked")
	}

	if !IsQuestUnlocked(rep, nil) {
		t.Error("quest with no requirements is always unlocked")
	}
}

func containsOption(options []string, want string) bool {
	for _, o := range options {
		if o == want {
			return true
		}
	}
	return false
}
