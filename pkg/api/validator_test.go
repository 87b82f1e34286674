package api

import "testing"

func TestContactsPayloadValidate(t *testing.T) {
	ok := ContactsPayload{
		DeltaTime: 0.016,
		Contacts:  []ContactView{{A: "1", B: "2"}},
	}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}

	if err := (ContactsPayload{DeltaTime: 0}).Validate(); err != nil {
		t.Errorf("empty quiet frame must be valid: %v", err)
	}
	if err := (ContactsPayload{DeltaTime: -0.1}).Validate(); err == nil {
		t.Error("negative deltaTime must be rejected")
	}
	if err := (ContactsPayload{Contacts: []ContactView{{A: "1", B: "1"}}}).Validate(); err == nil {
		t.Error("self-contact must be rejected")
	}
	if err := (ContactsPayload{Contacts: []ContactView{{A: "1"}}}).Validate(); err == nil {
		t.Error("half-empty pair must be rejected")
	}
}

func TestAllocatePayloadValidate(t *testing.T) {
	if err := (AllocatePayload{Structure: 1, Flow: 2}).Validate(); err != nil {
		t.Errorf("explicit split rejected: %v", err)
	}
	if err := (AllocatePayload{Role: "tank"}).Validate(); err != nil {
		t.Errorf("role-only payload rejected: %v", err)
	}
	if err := (AllocatePayload{Role: "tank", Ignition: 1}).Validate(); err == nil {
		t.Error("role plus explicit split must be rejected")
	}
	if err := (AllocatePayload{}).Validate(); err == nil {
		t.Error("empty allocation must be rejected")
	}
	if err := (AllocatePayload{Logic: -1, Flow: 2}).Validate(); err == nil {
		t.Error("negative component must be rejected")
	}
}

func TestAbilityAndDialogueValidate(t *testing.T) {
	if err := (AbilityPayload{AbilityID: "kinetic_strike"}).Validate(); err != nil {
		t.Errorf("self-cast ability rejected: %v", err)
	}
	if err := (AbilityPayload{}).Validate(); err == nil {
		t.Error("ability without id must be rejected")
	}
	if err := (DialoguePayload{TargetID: "42"}).Validate(); err != nil {
		t.Errorf("dialogue request rejected: %v", err)
	}
	if err := (DialoguePayload{OptionID: "talk"}).Validate(); err == nil {
		t.Error("dialogue without target must be rejected")
	}
}
