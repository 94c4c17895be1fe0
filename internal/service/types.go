package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Storage keys shared by every persistent backend.
const (
	ListsKey    = "shoppingLists"
	itemsPrefix = "items_"
)

// MaxListNameLen is the longest list name accepted, in characters.
const MaxListNameLen = 20

// ItemsKey returns the key holding the items of listID.
func ItemsKey(listID string) string {
	return itemsPrefix + listID
}

// ListIDFromKey reports the list id of an items key.
func ListIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, itemsPrefix) || len(key) == len(itemsPrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, itemsPrefix), true
}

// List is a shopping list. Items is derived from the list's items on every
// read and is never stored with the list.
type List struct {
	ID    string
	Name  string
	Items []ItemSummary
}

// ItemSummary is the per-item projection carried by a List.
type ItemSummary struct {
	ID        string
	Purchased bool
}

// Item is a single entry of a shopping list.
// Quantity is a decimal number kept as text; empty means unspecified.
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  string `json:"quantity,omitempty"`
	Unit      string `json:"unit,omitempty"`
	Purchased bool   `json:"purchased"`
}

// Label renders the item as "Milk (2 l)", "Milk (2)" or "Milk".
func (it Item) Label() string {
	qty := strings.TrimSpace(strings.TrimSpace(it.Quantity) + " " + strings.TrimSpace(it.Unit))
	if qty == "" {
		return it.Name
	}
	return fmt.Sprintf("%s (%s)", it.Name, qty)
}

// Summarize projects items to their summaries, preserving order.
func Summarize(items []Item) []ItemSummary {
	out := make([]ItemSummary, len(items))
	for i, it := range items {
		out[i] = ItemSummary{ID: it.ID, Purchased: it.Purchased}
	}
	return out
}

// Counts returns the number of purchased items and the total.
func Counts(summaries []ItemSummary) (done, total int) {
	for _, s := range summaries {
		if s.Purchased {
			done++
		}
	}
	return done, len(summaries)
}

// Progress returns the purchased fraction in [0,1]; 0 for an empty list.
func Progress(summaries []ItemSummary) float64 {
	done, total := Counts(summaries)
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// ValidateListName trims name and checks it is non-empty and at most
// MaxListNameLen characters.
func ValidateListName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: list name required", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxListNameLen {
		return "", fmt.Errorf("%w: list name longer than %d characters", ErrInvalidName, MaxListNameLen)
	}
	return name, nil
}

// ValidateItem trims the text fields of item and checks name and quantity.
func ValidateItem(item Item) (Item, error) {
	item.Name = strings.TrimSpace(item.Name)
	item.Quantity = strings.TrimSpace(item.Quantity)
	item.Unit = strings.TrimSpace(item.Unit)
	if item.Name == "" {
		return Item{}, fmt.Errorf("%w: item name required", ErrInvalidName)
	}
	if err := ValidateQuantity(item.Quantity); err != nil {
		return Item{}, err
	}
	return item, nil
}

// decimalRe matches plain decimal numbers such as "2", "-1", "0.5" or ".5".
var decimalRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ValidateQuantity accepts an empty string or a plain decimal number.
// Exponents, hex floats, NaN and infinities are rejected.
func ValidateQuantity(q string) error {
	if q == "" {
		return nil
	}
	if !decimalRe.MatchString(q) {
		return fmt.Errorf("%w: %s", ErrInvalidQuantity, q)
	}
	f, err := strconv.ParseFloat(q, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %s", ErrInvalidQuantity, q)
	}
	return nil
}
