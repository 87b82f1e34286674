package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p InitPayload) Validate() error {
	if p.CharacterID == "" {
		return errors.New("characterId is required")
	}
	return nil
}

func (p LoadPayload) Validate() error {
	if p.StageID == "" {
		return errors.New("stageId is required")
	}
	return nil
}

func (p ContactsPayload) Validate() error {
	if p.DeltaTime < 0 {
		return errors.New("deltaTime cannot be negative")
	}
	for _, c := range p.Contacts {
		if c.A == "" || c.B == "" {
			return errors.New("contact pair must name both entities")
		}
		if c.A == c.B {
			return errors.New("entity cannot contact itself")
		}
	}
	return nil
}

func (p AllocatePayload) Validate() error {
	if p.Role != "" {
		if p.Structure != 0 || p.Ignition != 0 || p.Logic != 0 || p.Flow != 0 {
			return errors.New("role and explicit split are mutually exclusive")
		}
		return nil
	}
	if p.Structure < 0 || p.Ignition < 0 || p.Logic < 0 || p.Flow < 0 {
		return errors.New("allocation cannot be negative")
	}
	if p.Structure+p.Ignition+p.Logic+p.Flow == 0 {
		return errors.New("allocation cannot be empty")
	}
	return nil
}

func (p AbilityPayload) Validate() error {
	if p.AbilityID == "" {
		return errors.New("abilityId is required")
	}
	return nil
}

func (p DialoguePayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	return nil
}
