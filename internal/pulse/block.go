package pulse

import "fmt"

// Block is a named, ordered list of Elements. All elements of a block must
// drive exactly the same channel set; the first element inserted into an
// empty block establishes that set. The block maintains two derived totals:
// the summed nominal duration of its elements and the summed per-repetition
// increment.
type Block struct {
	name            string
	elements        []Element
	totalDurationS  float64
	totalIncrementS float64
	channels        ChannelSet
}

// NewBlock builds a block from zero or more elements. Elements with differing
// channel sets make the construction fail.
func NewBlock(name string, elements ...Element) (*Block, error) {
	b := &Block{name: name, channels: make(ChannelSet)}
	for _, el := range elements {
		if err := b.Append(el); err != nil {
			return nil, fmt.Errorf("building block %q: %w", name, err)
		}
	}
	return b, nil
}

// Name returns the block name.
func (b *Block) Name() string { return b.name }

// Len returns the number of elements.
func (b *Block) Len() int { return len(b.elements) }

// ElementAt returns the element at the given position.
func (b *Block) ElementAt(position int) (Element, error) {
	if position < 0 || position >= len(b.elements) {
		return Element{}, fmt.Errorf("%w: element %d of block %q (len %d)",
			ErrPositionOutOfRange, position, b.name, len(b.elements))
	}
	return b.elements[position], nil
}

// Elements returns a copy of the element list.
func (b *Block) Elements() []Element {
	copied := make([]Element, len(b.elements))
	copy(copied, b.elements)
	return copied
}

// Channels returns the channel set shared by all elements. An emptied block
// keeps the set it once had.
func (b *Block) Channels() ChannelSet { return b.channels.Clone() }

// AnalogChannels returns the analog subset of the block's channel set.
func (b *Block) AnalogChannels() ChannelSet { return b.channels.Analog() }

// DigitalChannels returns the digital subset of the block's channel set.
func (b *Block) DigitalChannels() ChannelSet { return b.channels.Digital() }

// TotalDuration returns the sum of all element durations in seconds.
func (b *Block) TotalDuration() float64 { return b.totalDurationS }

// TotalIncrement returns the sum of all element increments in seconds.
func (b *Block) TotalIncrement() float64 { return b.totalIncrementS }

// Insert places an element at the given position, shifting the element at
// that position and all following ones to higher indices. Position len(block)
// appends. Inserting into an empty block adopts the element's channel set;
// otherwise the element's set must match the block's.
func (b *Block) Insert(position int, el Element) error {
	if position < 0 || position > len(b.elements) {
		return fmt.Errorf("%w: insert at %d in block %q (len %d)",
			ErrPositionOutOfRange, position, b.name, len(b.elements))
	}
	if err := b.admit(el); err != nil {
		return err
	}
	b.elements = append(b.elements, Element{})
	copy(b.elements[position+1:], b.elements[position:])
	b.elements[position] = el
	b.refreshTotals()
	return nil
}

// Replace swaps the element at the given position. The incoming element must
// match the block's channel set even when it replaces the only element.
func (b *Block) Replace(position int, el Element) error {
	if position < 0 || position >= len(b.elements) {
		return fmt.Errorf("%w: replace at %d in block %q (len %d)",
			ErrPositionOutOfRange, position, b.name, len(b.elements))
	}
	if !el.channels.Equal(b.channels) {
		return fmt.Errorf("%w: block %q uses %s, element uses %s",
			ErrChannelSetMismatch, b.name, b.channels, el.channels)
	}
	b.elements[position] = el
	b.refreshTotals()
	return nil
}

// Delete removes the element at the given position. Deleting the last element
// leaves an empty block that still remembers its channel set.
func (b *Block) Delete(position int) error {
	if position < 0 || position >= len(b.elements) {
		return fmt.Errorf("%w: delete at %d in block %q (len %d)",
			ErrPositionOutOfRange, position, b.name, len(b.elements))
	}
	b.elements = append(b.elements[:position], b.elements[position+1:]...)
	b.refreshTotals()
	return nil
}

// Append adds an element at the end of the block.
func (b *Block) Append(el Element) error {
	return b.Insert(len(b.elements), el)
}

// Prepend adds an element at the beginning of the block.
func (b *Block) Prepend(el Element) error {
	return b.Insert(0, el)
}

// Equal reports whether both blocks have the same name and element lists.
func (b *Block) Equal(other *Block) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.name != other.name || len(b.elements) != len(other.elements) {
		return false
	}
	if !b.channels.Equal(other.channels) {
		return false
	}
	for i, el := range b.elements {
		if !el.Equal(other.elements[i]) {
			return false
		}
	}
	return true
}

// admit checks an incoming element against the block's channel set, adopting
// the set if the block has never held one.
func (b *Block) admit(el Element) error {
	if len(b.channels) == 0 && len(b.elements) == 0 {
		b.channels = el.channels.Clone()
		return nil
	}
	if !el.channels.Equal(b.channels) {
		return fmt.Errorf("%w: block %q uses %s, element uses %s",
			ErrChannelSetMismatch, b.name, b.channels, el.channels)
	}
	return nil
}

// refreshTotals recomputes the derived duration totals from the element list.
// The channel set is deliberately left alone so an emptied block keeps it.
func (b *Block) refreshTotals() {
	b.totalDurationS = 0
	b.totalIncrementS = 0
	for _, el := range b.elements {
		b.totalDurationS += el.durationS
		b.totalIncrementS += el.incrementS
	}
}
