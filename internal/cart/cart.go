// Package cart implements the in-memory working order for the terminal.
//
// The cart is non-persistent by design: it is destroyed on a new bill or a
// process restart. Lines merge by item name, which doubles as the display
// label; two rooms of the same type therefore collapse into one line, with
// quantity counting days instead of units.
package cart

import (
	"strings"
	"sync"

	"github.com/maykapos/hotelpos/internal/models"
)

// Line is one entry of the working order. TotalPrice is recomputed on every
// quantity change and always equals Quantity * UnitPrice.
type Line struct {
	ItemName   string  `json:"item_name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// Cart aggregates the order currently being built. All methods are safe for
// concurrent use; change subscribers are notified after every mutation.
type Cart struct {
	mu    sync.Mutex
	lines []Line
	subs  []func()
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Subscribe registers a callback invoked after every cart mutation. The
// presentation layer uses this instead of observing the line slice itself.
func (c *Cart) Subscribe(fn func()) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

func (c *Cart) notify() {
	c.mu.Lock()
	subs := make([]func(), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// AddFood adds one unit of a menu item, merging into an existing line with
// the same name.
func (c *Cart) AddFood(f models.FoodItem) {
	c.add(f.Name, f.Price)
}

// AddRoomCharge adds one day of a room charge. The line name is synthesized
// from the room type, so repeated calls for rooms of the same type extend
// the same line by a day each.
func (c *Cart) AddRoomCharge(r models.Room) {
	c.add("Room: "+r.Type, r.PricePerDay)
}

func (c *Cart) add(name string, unitPrice float64) {
	c.mu.Lock()
	if i := c.index(name); i >= 0 {
		c.lines[i].Quantity++
		c.lines[i].TotalPrice = float64(c.lines[i].Quantity) * c.lines[i].UnitPrice
	} else {
		c.lines = append(c.lines, Line{
			ItemName:   name,
			Quantity:   1,
			UnitPrice:  unitPrice,
			TotalPrice: unitPrice,
		})
	}
	c.mu.Unlock()
	c.notify()
}

// ChangeQuantity adjusts a line's quantity by delta, clamped at a minimum
// of 1: removal is a separate explicit action. Reports whether the line
// exists.
func (c *Cart) ChangeQuantity(itemName string, delta int) bool {
	c.mu.Lock()
	i := c.index(itemName)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	next := c.lines[i].Quantity + delta
	if next < 1 {
		next = 1
	}
	c.lines[i].Quantity = next
	c.lines[i].TotalPrice = float64(next) * c.lines[i].UnitPrice
	c.mu.Unlock()
	c.notify()
	return true
}

// Remove deletes a line entirely. Reports whether the line existed.
func (c *Cart) Remove(itemName string) bool {
	c.mu.Lock()
	i := c.index(itemName)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.mu.Unlock()
	c.notify()
	return true
}

// Clear empties the cart (the "new bill" action).
func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
	c.notify()
}

// Total returns the sum of all line totals, recomputed from the lines so it
// is always internally consistent.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, ln := range c.lines {
		total += ln.TotalPrice
	}
	return total
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Lines returns a snapshot copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// BillLines converts the current lines into ledger line snapshots, in order.
func (c *Cart) BillLines() []models.BillLine {
	lines := c.Lines()
	out := make([]models.BillLine, len(lines))
	for i, ln := range lines {
		out[i] = models.BillLine{
			ItemName:   ln.ItemName,
			Quantity:   ln.Quantity,
			UnitPrice:  ln.UnitPrice,
			TotalPrice: ln.TotalPrice,
		}
	}
	return out
}

// index returns the position of the line with the given name, or -1.
// Callers must hold the lock. Name matching is exact apart from surrounding
// whitespace.
func (c *Cart) index(name string) int {
	name = strings.TrimSpace(name)
	for i, ln := range c.lines {
		if ln.ItemName == name {
			return i
		}
	}
	return -1
}
