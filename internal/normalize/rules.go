package normalize

import (
	"errors"
	"fmt"
	"strings"
)

// Slot is the meaning a header cell can be given.
type Slot int

const (
	SlotNone Slot = iota
	SlotDate
	SlotDescription
	SlotPrimaryAmount   // "caja de ahorro" style column
	SlotSecondaryAmount // "cuenta corriente" style column
	// SlotAmount stands for either amount column when reporting a header
	// that has neither. No rule classifies a cell as SlotAmount.
	SlotAmount
)

func (s Slot) String() string {
	switch s {
	case SlotDate:
		return "date"
	case SlotDescription:
		return "description"
	case SlotPrimaryAmount:
		return "primary amount"
	case SlotSecondaryAmount:
		return "secondary amount"
	case SlotAmount:
		return "amount"
	default:
		return "none"
	}
}

// IsAmount reports whether s is one of the amount slots.
func (s Slot) IsAmount() bool {
	return s == SlotPrimaryAmount || s == SlotSecondaryAmount
}

// Rule assigns Slot to any normalized header text containing one of
// Keywords. Keywords must already be in NormalizeHeader form.
type Rule struct {
	Slot     Slot
	Keywords []string
}

// Matches reports whether normalized contains any of the rule's keywords.
func (r Rule) Matches(normalized string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// Rules is an ordered rule table. The first matching rule classifies a
// cell, so a header such as "Fecha Importe" is a date column.
type Rules []Rule

// DefaultRules returns the rule table for Santander movement exports.
func DefaultRules() Rules {
	return Rules{
		{Slot: SlotDate, Keywords: []string{"fecha"}},
		{Slot: SlotDescription, Keywords: []string{"descrip", "concepto"}},
		{Slot: SlotPrimaryAmount, Keywords: []string{"caja", "ahorro", "importe"}},
		{Slot: SlotSecondaryAmount, Keywords: []string{"cuenta", "corriente"}},
	}
}

// Classify normalizes header and returns the slot of the first matching
// rule, or SlotNone.
func (rs Rules) Classify(header string) Slot {
	t := NormalizeHeader(header)
	if t == "" {
		return SlotNone
	}
	for _, r := range rs {
		if r.Matches(t) {
			return r.Slot
		}
	}
	return SlotNone
}

// Keywords returns the keywords of every rule for slot, in table order.
func (rs Rules) Keywords(slot Slot) []string {
	var kws []string
	for _, r := range rs {
		if r.Slot == slot {
			kws = append(kws, r.Keywords...)
		}
	}
	return kws
}

// Validate checks that the table can resolve a complete header.
func (rs Rules) Validate() error {
	var missing []string
	if len(rs.Keywords(SlotDate)) == 0 {
		missing = append(missing, SlotDate.String())
	}
	if len(rs.Keywords(SlotDescription)) == 0 {
		missing = append(missing, SlotDescription.String())
	}
	if len(rs.Keywords(SlotPrimaryAmount)) == 0 && len(rs.Keywords(SlotSecondaryAmount)) == 0 {
		missing = append(missing, SlotAmount.String())
	}
	if len(missing) > 0 {
		return fmt.Errorf("rules have no keywords for %s", strings.Join(missing, ", "))
	}
	for _, r := range rs {
		if r.Slot == SlotNone {
			return errors.New("rule with no slot")
		}
		if r.Slot == SlotAmount {
			return errors.New("rules must name the primary or secondary amount slot")
		}
		for _, kw := range r.Keywords {
			if kw == "" {
				return fmt.Errorf("empty keyword in %s rule", r.Slot)
			}
		}
	}
	return nil
}
