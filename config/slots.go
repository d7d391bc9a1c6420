package config

// SlotCatalog is the ordered list of slot labels the forms offer.
type SlotCatalog []string

// NewSlotCatalog builds "<day> - <hour>" labels, days outermost.
func NewSlotCatalog(days, hours []string) SlotCatalog {
	slots := make(SlotCatalog, 0, len(days)*len(hours))
	for _, d := range days {
		for _, h := range hours {
			slots = append(slots, d+" - "+h)
		}
	}
	return slots
}

func (c SlotCatalog) Contains(slot string) bool {
	for _, s := range c {
		if s == slot {
			return true
		}
	}
	return false
}

// Default returns the value an edit form preselects for slot: the slot itself
// when it is in the catalog, the first catalog entry otherwise.
func (c SlotCatalog) Default(slot string) string {
	if c.Contains(slot) || len(c) == 0 {
		return slot
	}
	return c[0]
}
