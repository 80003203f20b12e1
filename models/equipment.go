package models

// ChecklistItem is one line of an equipment checklist definition.
type ChecklistItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Equipment is a piece of equipment with its ordered checklist items. Loaded
// from static configuration once per process; never mutated at runtime.
type Equipment struct {
	Name  string          `json:"name"`
	Items []ChecklistItem `json:"items"`
}

// ChecklistConfig holds every configured equipment definition.
type ChecklistConfig struct {
	Equipment []Equipment `json:"equipment"`
}

// Names returns the configured equipment names in definition order.
func (c *ChecklistConfig) Names() []string {
	names := make([]string, 0, len(c.Equipment))
	for _, e := range c.Equipment {
		names = append(names, e.Name)
	}
	return names
}

// ItemsFor returns the checklist items for the named equipment.
func (c *ChecklistConfig) ItemsFor(name string) ([]ChecklistItem, bool) {
	for _, e := range c.Equipment {
		if e.Name == name {
			return e.Items, true
		}
	}
	return nil, false
}
