package numwords

// Slots within a group below one thousand, highest first.
const (
	slotNone = iota
	slotUnits
	slotTens
	slotHundreds
)

// number accumulates one literal word by word. A word may only fill a slot
// below the last one filled, and a scale word must be smaller than the
// previous scale; anything else starts a new literal.
type number struct {
	total int64 // closed scale groups
	group int64 // current group below one thousand
	slot  int
	scale int64
	words int
	zero  bool
}

func (n number) value() int64 {
	return n.total + n.group
}

func (n number) extendAll(ws []word) (number, bool) {
	for _, w := range ws {
		var ok bool
		if n, ok = n.extend(w); !ok {
			return n, false
		}
	}
	return n, true
}

func (n number) extend(w word) (number, bool) {
	if n.zero {
		return n, false
	}
	switch w.kind {
	case kindZero:
		if n.words > 0 {
			return n, false
		}
		n.zero = true
	case kindUnit:
		if n.slot == slotUnits {
			return n, false
		}
		n.group += w.value
		n.slot = slotUnits
	case kindTeen:
		if n.slot != slotNone && n.slot != slotHundreds {
			return n, false
		}
		n.group += w.value
		n.slot = slotUnits
	case kindTen:
		if n.slot != slotNone && n.slot != slotHundreds {
			return n, false
		}
		n.group += w.value
		n.slot = slotTens
	case kindHundred:
		if n.slot != slotNone || n.group != 0 {
			return n, false
		}
		n.group = w.value
		n.slot = slotHundreds
	case kindHundredMul:
		switch {
		case n.slot == slotNone && n.group == 0 && n.words == 0:
			n.group = w.value
		case n.slot == slotUnits && n.group > 0 && (n.group < 10 || (n.group < 20 && n.total == 0)):
			// "three hundred"; a teen only leads: "twelve hundred" is 1200.
			n.group *= w.value
		default:
			return n, false
		}
		n.slot = slotHundreds
	case kindScale:
		if n.scale != 0 && w.value >= n.scale {
			return n, false
		}
		mult := n.group
		if mult == 0 {
			if n.words > 0 {
				return n, false
			}
			mult = 1
		}
		n.total += mult * w.value
		n.group = 0
		n.slot = slotNone
		n.scale = w.value
	default:
		return n, false
	}
	n.words++
	return n, true
}
