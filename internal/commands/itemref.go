package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"ezshop/internal/exitcode"
	"ezshop/internal/service"
)

// ItemRef represents a parsed item reference.
type ItemRef struct {
	Letter    rune // 0 if no letter, 'a'-'z' otherwise
	Num       int  // 1-based item number
	HasLetter bool // true if a list letter was provided
}

// ErrItemRefRequired indicates no item reference was provided.
var ErrItemRefRequired error = userError("item reference required")

// ErrListRequired is returned when an item reference names no list and there
// is more than one to choose from.
var ErrListRequired error = userError("list required (use --list or a list letter)")

// ParseItemRef parses an item reference from args.
//
// Accepted forms:
//   - "3": item 3 of the list given by --list, or of the only list
//   - "b3": item 3 of list b
//   - "b 3": same as b3
func ParseItemRef(args []string) (ItemRef, error) {
	if len(args) == 0 {
		return ItemRef{}, ErrItemRefRequired
	}

	first := args[0]

	if isAllDigits(first) {
		num, err := strconv.Atoi(first)
		if err != nil {
			return ItemRef{}, userErrorf("invalid item reference: %s", first)
		}
		return ItemRef{Num: num}, nil
	}

	if len(first) > 0 && isLetter(rune(first[0])) {
		letter := rune(first[0])

		if len(first) > 1 && isAllDigits(first[1:]) {
			num, err := strconv.Atoi(first[1:])
			if err != nil {
				return ItemRef{}, userErrorf("invalid item reference: %s", first)
			}
			return ItemRef{Letter: letter, Num: num, HasLetter: true}, nil
		}

		if len(first) == 1 {
			if len(args) < 2 {
				return ItemRef{}, ErrItemRefRequired
			}
			if isAllDigits(args[1]) {
				num, err := strconv.Atoi(args[1])
				if err != nil {
					return ItemRef{}, userErrorf("invalid item reference: %s", args[1])
				}
				return ItemRef{Letter: letter, Num: num, HasLetter: true}, nil
			}
			return ItemRef{}, userErrorf("invalid item reference: %s", first)
		}
	}

	return ItemRef{}, userErrorf("invalid item reference: %s", first)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isLetter returns true if r is a lowercase letter a-z.
func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// letterFor returns the letter of the i-th list (0-based), or 0 past 'z'.
func letterFor(i int) rune {
	if i < 0 || i >= 26 {
		return 0
	}
	return 'a' + rune(i)
}

// ResolveListByLetter returns the list a letter refers to. Letters are
// assigned to lists in creation order.
func ResolveListByLetter(ctx context.Context, svc service.Service, letter rune) (service.List, error) {
	lists, err := svc.ListLists(ctx)
	if err != nil {
		return service.List{}, err
	}
	idx := int(letter - 'a')
	if idx < 0 || idx >= len(lists) || idx >= 26 {
		return service.List{}, fmt.Errorf("list letter %w: %c", service.ErrNotFound, letter)
	}
	return lists[idx], nil
}

// resolveTarget picks the list an item command operates on: --list, then the
// reference's letter, then the only existing list.
func resolveTarget(ctx context.Context, svc service.Service, listName string, ref ItemRef) (service.List, error) {
	if listName != "" && ref.HasLetter {
		return service.List{}, userError("cannot use both --list and list letter")
	}
	switch {
	case listName != "":
		return svc.ResolveList(ctx, listName)
	case ref.HasLetter:
		return ResolveListByLetter(ctx, svc, ref.Letter)
	}
	return onlyList(ctx, svc)
}

// onlyList returns the single existing list or ErrListRequired.
func onlyList(ctx context.Context, svc service.Service) (service.List, error) {
	lists, err := svc.ListLists(ctx)
	if err != nil {
		return service.List{}, err
	}
	switch len(lists) {
	case 0:
		return service.List{}, fmt.Errorf("%w: no lists (run: ezshop addlist <name>)", service.ErrNotFound)
	case 1:
		return lists[0], nil
	}
	return service.List{}, ErrListRequired
}

// findItemByNumber returns the num-th (1-based) item of a list.
func findItemByNumber(ctx context.Context, svc service.Service, listID string, num int) (service.Item, error) {
	items, err := svc.ListItems(ctx, listID)
	if err != nil {
		return service.Item{}, err
	}
	if num < 1 || num > len(items) {
		return service.Item{}, userErrorf("item number out of range: %d", num)
	}
	return items[num-1], nil
}

// lookupItem parses an item reference and resolves it to its list and item.
// On failure the error has been printed and the exit code is returned.
func lookupItem(ctx context.Context, svc service.Service, listName string, args []string, errOut io.Writer) (service.List, service.Item, int) {
	ref, err := ParseItemRef(args)
	if err != nil {
		return service.List{}, service.Item{}, fail(errOut, err)
	}
	if ref.Num < 1 {
		return service.List{}, service.Item{}, fail(errOut, userErrorf("item number out of range: %d", ref.Num))
	}

	list, err := resolveTarget(ctx, svc, listName, ref)
	if err != nil {
		return service.List{}, service.Item{}, fail(errOut, err)
	}

	item, err := findItemByNumber(ctx, svc, list.ID, ref.Num)
	if err != nil {
		return service.List{}, service.Item{}, fail(errOut, err)
	}
	return list, item, exitcode.Success
}
