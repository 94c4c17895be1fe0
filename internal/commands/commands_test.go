package commands_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ezshop/internal/backend/googletasks"
	"ezshop/internal/commands"
	"ezshop/internal/config"
	"ezshop/internal/exitcode"
	"ezshop/internal/logging"
	"ezshop/internal/service"
	"ezshop/internal/settings"
	"ezshop/internal/testutil"
)

var errDisk = errors.New("disk I/O error")

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.Quiet = quiet

	var s service.Service
	if svc != nil {
		s = svc
	}
	code = cmd.Run(context.Background(), cfg, s, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// groceries returns a service with two lists:
//
//	a Groceries: Milk (2 l) purchased, Bread
//	b Hardware:  Nails
func groceries() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddList("g", "Groceries")
	svc.AddItemTo("g", service.Item{ID: "milk", Name: "Milk", Quantity: "2", Unit: "l", Purchased: true})
	svc.AddItemTo("g", service.Item{ID: "bread", Name: "Bread"})
	svc.AddList("h", "Hardware")
	svc.AddItemTo("h", service.Item{ID: "nails", Name: "Nails"})
	return svc
}

func singleList() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddList("g", "Groceries")
	svc.AddItemTo("g", service.Item{ID: "milk", Name: "Milk"})
	return svc
}

func expectResult(t *testing.T, gotOut, gotErr string, gotCode int, wantOut, wantErr string, wantCode int) {
	t.Helper()
	if gotCode != wantCode {
		t.Errorf("expected exit code %d, got %d", wantCode, gotCode)
	}
	if gotOut != wantOut {
		t.Errorf("expected stdout %q, got %q", wantOut, gotOut)
	}
	if gotErr != wantErr {
		t.Errorf("expected stderr %q, got %q", wantErr, gotErr)
	}
}

func strPtr(s string) *string { return &s }

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)
	expectResult(t, stdout, stderr, code, "ezshop 0.1.0\n", "", exitcode.Success)
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "addlist", "doctor", "Item references:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

func TestHelpCommand_ForCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, []string{"createlist"}, false)
	expectResult(t, stdout, stderr, code,
		"ezshop addlist [common flags] <list-name>\n\n  Create a new list\n\nAliases: createlist\n",
		"", exitcode.Success)
}

func TestHelpCommand_UnknownCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, []string{"frobnicate"}, false)
	expectResult(t, stdout, stderr, code, "", "error: unknown command: frobnicate\n", exitcode.UserError)
}

// Tests for lists command
func TestListsCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListsCmd{}, groceries(), nil, false)
	expectResult(t, stdout, stderr, code, "a  Groceries  1/2\nb  Hardware  0/1\n", "", exitcode.Success)
}

func TestListsCommand_Empty(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListsCmd{}, testutil.NewFakeService(), nil, false)
	expectResult(t, stdout, stderr, code, "no lists found\n", "", exitcode.Success)

	stdout, stderr, code = runCommand(t, &commands.ListsCmd{}, testutil.NewFakeService(), nil, true)
	expectResult(t, stdout, stderr, code, "", "", exitcode.Success)
}

func TestListsCommand_StorageError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListListsErr = errDisk

	stdout, stderr, code := runCommand(t, &commands.ListsCmd{}, svc, nil, false)
	expectResult(t, stdout, stderr, code, "", "error: storage error: disk I/O error\n", exitcode.StorageError)
}

// Tests for list command
func TestListCommand_All(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, groceries(), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list_all", stdout)
}

func TestListCommand_AllOpenOnly(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetOpenOnly(true)
	stdout, _, code := runCommand(t, cmd, groceries(), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if strings.Contains(stdout, "Milk") {
		t.Errorf("purchased item shown with --open: %q", stdout)
	}
	// Numbers stay stable so refs printed here still work.
	if !strings.Contains(stdout, "    a2   [ ] Bread\n") {
		t.Errorf("expected Bread as a2, got %q", stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), nil, false)
	expectResult(t, stdout, stderr, code, "no lists found\n", "", exitcode.Success)
}

func TestListCommand_SpecificList(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, groceries(), []string{"groceries"}, false)

	expected := "------------\n" +
		"Groceries  █████░░░░░  50%  1/2\n" +
		"------------\n" +
		"   1  [x] Milk (2 l)\n" +
		"   2  [ ] Bread\n"
	expectResult(t, stdout, stderr, code, expected, "", exitcode.Success)
}

func TestListCommand_ListNotFound(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, groceries(), []string{"Nope"}, false)
	expectResult(t, stdout, stderr, code, "", "error: list not found: Nope\n", exitcode.UserError)
}

func TestListCommand_ItemsError(t *testing.T) {
	svc := groceries()
	svc.ListItemsErr["h"] = errDisk

	_, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	if code != exitcode.StorageError {
		t.Errorf("expected exit code %d, got %d", exitcode.StorageError, code)
	}
	if stderr != "error: storage error: failed to read list: Hardware: disk I/O error\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for add command
func TestAddCommand_Success(t *testing.T) {
	svc := singleList()
	cmd := &commands.AddCmd{}
	cmd.SetQuantity("2", "l")

	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Orange", "juice"}, false)
	expectResult(t, stdout, stderr, code, "ok\n", "", exitcode.Success)

	items := svc.Items("g")
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	got := items[1]
	if got.Name != "Orange juice" || got.Quantity != "2" || got.Unit != "l" || got.Purchased {
		t.Errorf("unexpected item %+v", got)
	}
	if got.ID == "" {
		t.Error("expected an id to be assigned")
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, singleList(), []string{"Eggs"}, true)
	expectResult(t, stdout, stderr, code, "", "", exitcode.Success)
}

func TestAddCommand_NoName(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, singleList(), []string{"  "}, false)
	expectResult(t, stdout, stderr, code, "", "error: item name required\n", exitcode.UserError)
}

func TestAddCommand_BadQuantity(t *testing.T) {
	for _, qty := range []string{"two", "NaN", "Inf", "0x1p3"} {
		t.Run(qty, func(t *testing.T) {
			svc := singleList()
			cmd := &commands.AddCmd{}
			cmd.SetQuantity(qty, "")

			stdout, stderr, code := runCommand(t, cmd, svc, []string{"Eggs"}, false)
			expectResult(t, stdout, stderr, code, "", "error: quantity must be a number: "+qty+"\n", exitcode.UserError)
			if n := len(svc.Items("g")); n != 1 {
				t.Errorf("expected no item to be added, got %d items", n)
			}
		})
	}
}

func TestAddCommand_ToSpecificList(t *testing.T) {
	svc := groceries()
	cmd := &commands.AddCmd{}
	cmd.SetListName("hardware")

	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Screws"}, false)
	expectResult(t, stdout, stderr, code, "ok\n", "", exitcode.Success)

	items := svc.Items("h")
	if len(items) != 2 || items[1].Name != "Screws" {
		t.Errorf("expected Screws appended to Hardware, got %+v", items)
	}
}

func TestAddCommand_ListRequired(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, groceries(), []string{"Screws"}, false)
	expectResult(t, stdout, stderr, code, "", "error: list required (use --list or a list letter)\n", exitcode.UserError)
}

func TestAddCommand_NoLists(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, testutil.NewFakeService(), []string{"Eggs"}, false)
	expectResult(t, stdout, stderr, code, "", "error: not found: no lists (run: ezshop addlist <name>)\n", exitcode.UserError)
}

func TestAddCommand_StorageError(t *testing.T) {
	svc := singleList()
	svc.AddItemErr = errDisk

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Eggs"}, false)
	expectResult(t, stdout, stderr, code, "", "error: storage error: disk I/O error\n", exitcode.StorageError)
}

// Tests for done and toggle commands
func TestDoneCommand_Refs(t *testing.T) {
	tests := []struct {
		name   string
		list   string
		args   []string
		listID string
		itemID string
	}{
		{"letter and number", "", []string{"b1"}, "h", "nails"},
		{"split letter", "", []string{"a", "2"}, "g", "bread"},
		{"number with --list", "Groceries", []string{"2"}, "g", "bread"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := groceries()
			cmd := &commands.DoneCmd{}
			cmd.SetListName(tt.list)

			stdout, stderr, code := runCommand(t, cmd, svc, tt.args, false)
			expectResult(t, stdout, stderr, code, "ok\n", "", exitcode.Success)

			for _, it := range svc.Items(tt.listID) {
				if it.ID == tt.itemID && !it.Purchased {
					t.Errorf("expected %s to be purchased", it.Name)
				}
			}
		})
	}
}

func TestDoneCommand_AlreadyPurchasedStays(t *testing.T) {
	svc := groceries()
	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"a1"}, false)
	expectResult(t, stdout, stderr, code, "ok\n", "", exitcode.Success)
	if !svc.Items("g")[0].Purchased {
		t.Error("done must not unmark a purchased item")
	}
}

func TestDoneCommand_OnlyList(t *testing.T) {
	svc := singleList()
	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"1"}, false)
	expectResult(t, stdout, stderr, code, "ok\n", "", exitcode.Success)
	if !svc.Items("g")[0].Purchased {
		t.Error("expected Milk to be purchased")
	}
}

func TestDoneCommand_Errors(t *testing.T) {
	tests := []struct {
		name   string
		list   string
		args   []string
		stderr string
	}{
		{"no ref", "", nil, "error: item reference required\n"},
		{"invalid ref", "", []string{"xyz"}, "error: invalid item reference: xyz\n"},
		{"letter without number", "", []string{"a"}, "error: item reference required\n"},
		{"out of range", "", []string{"a9"}, "error: item number out of range: 9\n"},
		{"zero", "", []string{"a0"}, "error: item number out of range: 0\n"},
		{"unknown letter", "", []string{"c1"}, "error: list letter not found: c\n"},
		{"number needs list", "", []string{"1"}, "error: list required (use --list or a list letter)\n"},
		{"list and letter", "Groceries", []string{"a1"}, "error: cannot use both --list and list letter\n"},
		{"unknown list", "Nope", []string{"1"}, "error: list not found: Nope\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &commands.DoneCmd{}
			cmd.SetListName(tt.list)
			stdout, stderr, code := runCommand(t, cmd, groceries(), tt.args, false)
			expectResult(t, stdout, stderr, code, "", tt.stderr, exitcode.UserError)
		})
	}
}

func TestDoneCommand_StorageError(t *testing.T) {
	svc := groceries()
	svc.UpdateItemErr = errDisk

	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"a2"}, false)
	expectResult(t, stdout, stderr, code, "", "error: storage error: disk I/O error\n", exitcode.StorageError)
}

func TestToggleCommand(t *testing.T) {
	svc := groceries()

	for i, want := range []bool{false, true} {
		stdout, stderr, code := runCommand(t, &commands.ToggleCmd{}, svc, []string{"a1"}, true)
		expectResult(t, stdout, stderr, code, "", "", exitcode.Success)
		if got := svc.Items("g")[0].Purchased; got != want {
			t.Errorf("toggle %d: purchased = %v, want %v", i+1, got, want)
		}
	}
}

// Tests for edit command
func TestEditCommand(t *testing.T) {
	tests := []struct {
		name             string
		newName, qty, un *string
		ref              string
		want             service.Item
	}{
		{"quantity", nil, strPtr("3"), nil, "a2",
			service.Item{ID: "bread", Name: "Bread", Quantity: "3"}},
		{"rename keeps quantity", strPtr("Oat milk"), nil, nil, "a1",
			service.Item{ID: "milk", Name: "Oat milk", Quantity: "2", Unit: "l", Purchased: true}},
		{"clear unit", nil, nil, strPtr(""), "a1",
			service.Item{ID: "milk", Name: "Milk", Quantity: "2", Purchased: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := groceries()
			cmd := &commands.EditCmd{}
			cmd.SetFields(tt.newName, tt.qty, tt.un)

			stdout, stderr, code := runCommand(t, cmd, svc, []string{tt.ref}, false)
			expectResult(t, stdout, stderr, code, "ok\n", "", exitcode.Success)

			for _, it := range svc.Items("g") {
				if it.ID == tt.want.ID && it != tt.want {
					t.Errorf("expected %+v, got %+v", tt.want, it)
				}
			}
		})
	}
}

func TestEditCommand_NothingToChange(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.EditCmd{}, groceries(), []string{"a1"}, false)
	expectResult(t, stdout, stderr, code, "", "error: nothing to change (use --name, --qty or --unit)\n", exitcode.UserError)
}

func TestEditCommand_BadQuantity(t *testing.T) {
	cmd := &commands.EditCmd{}
	cmd.SetFields(nil, strPtr("lots"), nil)

	stdout, stderr, code := runCommand(t, cmd, groceries(), []string{"a1"}, false)
	expectResult(t, stdout, stderr, code, "", "error: quantity must be a number: lots\n", exitcode.UserError)
}

// Tests for rm command
func TestRmCommand_Success(t *testing.T) {
	svc := groceries()

	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"a1"}, false)
	expectResult(t, stdout, stderr, code, "ok\n", "", exitcode.Success)

	items := svc.Items("g")
	if len(items) != 1 || items[0].ID != "bread" {
		t.Errorf("expected only Bread to remain, got %+v", items)
	}
}

func TestRmCommand_NoRef(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, groceries(), nil, false)
	expectResult(t, stdout, stderr, code, "", "error: item reference required\n", exitcode.UserError)
}

// Tests for addlist and rename commands
func TestAddListCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddListCmd{}, svc, []string{"Weekend", "party"}, false)
	expectResult(t, stdout, stderr, code, "ok\n", "", exitcode.Success)

	lists, _ := svc.ListLists(context.Background())
	if len(lists) != 1 || lists[0].Name != "Weekend party" {
		t.Errorf("expected list 'Weekend party', got %+v", lists)
	}
}

func TestAddListCommand_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"no name", nil, "error: list name required\n"},
		{"duplicate", []string{"groceries"}, "error: list already exists: groceries\n"},
		{"too long", []string{"a very long shopping list"}, "error: invalid name: list name longer than 20 characters\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := runCommand(t, &commands.AddListCmd{}, groceries(), tt.args, false)
			expectResult(t, stdout, stderr, code, "", tt.stderr, exitcode.UserError)
		})
	}
}

func TestRenameCommand(t *testing.T) {
	svc := groceries()
	cmd := &commands.RenameCmd{}
	cmd.SetTo("Food")

	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Groceries"}, false)
	expectResult(t, stdout, stderr, code, "ok\n", "", exitcode.Success)

	if _, err := svc.ResolveList(context.Background(), "Food"); err != nil {
		t.Errorf("expected renamed list, got %v", err)
	}
}

func TestRenameCommand_NoTo(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.RenameCmd{}, groceries(), []string{"Groceries"}, false)
	expectResult(t, stdout, stderr, code, "", "error: new name required (use --to)\n", exitcode.UserError)
}

// Tests for rmlist command
func TestRmListCommand_AllPurchased(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("done", "Done")
	svc.AddItemTo("done", service.Item{ID: "x", Name: "X", Purchased: true})

	stdout, stderr, code := runCommand(t, &commands.RmListCmd{}, svc, []string{"Done"}, false)
	expectResult(t, stdout, stderr, code, "ok\n", "", exitcode.Success)

	if lists, _ := svc.ListLists(context.Background()); len(lists) != 0 {
		t.Errorf("expected no lists, got %+v", lists)
	}
	if items := svc.Items("done"); len(items) != 0 {
		t.Errorf("expected items to be removed with the list, got %+v", items)
	}
}

func TestRmListCommand_OpenItemsNoForce(t *testing.T) {
	svc := groceries()

	stdout, stderr, code := runCommand(t, &commands.RmListCmd{}, svc, []string{"Groceries"}, false)
	expectResult(t, stdout, stderr, code, "", "error: list has open items (use --force)\n", exitcode.UserError)

	if lists, _ := svc.ListLists(context.Background()); len(lists) != 2 {
		t.Error("list should not have been deleted")
	}
}

func TestRmListCommand_OpenItemsWithForce(t *testing.T) {
	svc := groceries()
	cmd := &commands.RmListCmd{}
	cmd.SetForce(true)

	stdout, stderr, code := runCommand(t, cmd, svc, []string{"Groceries"}, false)
	expectResult(t, stdout, stderr, code, "ok\n", "", exitcode.Success)

	lists, _ := svc.ListLists(context.Background())
	if len(lists) != 1 || lists[0].ID != "h" {
		t.Errorf("expected only Hardware to remain, got %+v", lists)
	}
}

func TestRmListCommand_Errors(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.RmListCmd{}, groceries(), []string{"Nope"}, false)
	expectResult(t, stdout, stderr, code, "", "error: list not found: Nope\n", exitcode.UserError)

	stdout, stderr, code = runCommand(t, &commands.RmListCmd{}, groceries(), nil, false)
	expectResult(t, stdout, stderr, code, "", "error: list name required\n", exitcode.UserError)

	svc := groceries()
	svc.DeleteListErr = errDisk
	cmd := &commands.RmListCmd{}
	cmd.SetForce(true)
	stdout, stderr, code = runCommand(t, cmd, svc, []string{"Groceries"}, false)
	expectResult(t, stdout, stderr, code, "", "error: storage error: disk I/O error\n", exitcode.StorageError)
}

// Tests for theme, lang and settings commands
func TestThemeCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.ThemeCmd{}, svc, nil, false)
	expectResult(t, stdout, stderr, code, "light\n", "", exitcode.Success)

	stdout, stderr, code = runCommand(t, &commands.ThemeCmd{}, svc, []string{"Dark"}, false)
	expectResult(t, stdout, stderr, code, "ok\n", "", exitcode.Success)
	if got := svc.Settings().Theme; got != settings.Dark {
		t.Errorf("theme = %q, want dark", got)
	}

	stdout, stderr, code = runCommand(t, &commands.ThemeCmd{}, svc, []string{"toggle"}, true)
	expectResult(t, stdout, stderr, code, "", "", exitcode.Success)
	if got := svc.Settings().Theme; got != settings.Light {
		t.Errorf("theme = %q, want light", got)
	}
}

func TestThemeCommand_Invalid(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ThemeCmd{}, testutil.NewFakeService(), []string{"blue"}, false)
	expectResult(t, stdout, stderr, code, "", "error: unknown theme: blue\n", exitcode.UserError)
}

func TestThemeCommand_SaveError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SaveSettingsErr = errDisk

	stdout, stderr, code := runCommand(t, &commands.ThemeCmd{}, svc, []string{"dark"}, false)
	expectResult(t, stdout, stderr, code, "", "error: storage error: disk I/O error\n", exitcode.StorageError)
}

func TestLangCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.LangCmd{}, svc, nil, false)
	expectResult(t, stdout, stderr, code, "en\navailable: en, cs, de\n", "", exitcode.Success)

	stdout, stderr, code = runCommand(t, &commands.LangCmd{}, svc, []string{"cs_CZ.UTF-8"}, false)
	expectResult(t, stdout, stderr, code, "ok\n", "", exitcode.Success)
	if got := svc.Settings().Language; got != "cs-CZ" {
		t.Errorf("language = %q, want cs-CZ", got)
	}
}

func TestLangCommand_Invalid(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.LangCmd{}, testutil.NewFakeService(), []string{"!!"}, false)
	expectResult(t, stdout, stderr, code, "", "error: unknown language: !!\n", exitcode.UserError)
}

func TestSettingsCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SetSettings(settings.Settings{Theme: settings.Dark, Language: "de-AT"})

	var outBuf, errBuf bytes.Buffer
	cfg, _ := config.New(t.TempDir())
	code := (&commands.SettingsCmd{}).Run(context.Background(), cfg, svc, nil, &outBuf, &errBuf)

	want := "theme: dark\nlanguage: de-AT (de)\nstorage: sqlite " + filepath.Join(cfg.Dir, "ezshop.db") + "\n"
	expectResult(t, outBuf.String(), errBuf.String(), code, want, "", exitcode.Success)
}

// Tests for doctor command
func TestDoctorCommand_Clean(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.DoctorCmd{}, groceries(), nil, false)
	expectResult(t, stdout, stderr, code, "no problems found\n", "", exitcode.Success)
}

func TestDoctorCommand_ReportsOrphans(t *testing.T) {
	svc := groceries()
	svc.AddOrphan("gone", service.Item{ID: "1", Name: "Old"}, service.Item{ID: "2", Name: "Older"})

	stdout, stderr, code := runCommand(t, &commands.DoctorCmd{}, svc, nil, false)
	expectResult(t, stdout, stderr, code, "orphaned items: items_gone (2)\n", "run: ezshop doctor --fix\n", exitcode.UserError)

	if ids, _ := svc.OrphanedLedgers(context.Background()); len(ids) != 1 {
		t.Error("report must not remove anything")
	}
}

func TestDoctorCommand_Fix(t *testing.T) {
	svc := groceries()
	svc.AddOrphan("gone", service.Item{ID: "1", Name: "Old"})
	cmd := &commands.DoctorCmd{}
	cmd.SetFix(true)

	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)
	expectResult(t, stdout, stderr, code, "removed: items_gone (1)\n", "", exitcode.Success)

	if ids, _ := svc.OrphanedLedgers(context.Background()); len(ids) != 0 {
		t.Errorf("expected no orphans after fix, got %v", ids)
	}
}

// Tests for export command
type fakeExporter struct {
	list  service.List
	items []service.Item
	err   error
}

func (f *fakeExporter) ExportList(ctx context.Context, list service.List, items []service.Item) (googletasks.ExportResult, error) {
	if f.err != nil {
		return googletasks.ExportResult{}, f.err
	}
	f.list, f.items = list, items
	return googletasks.ExportResult{TaskListID: "tl1", Title: list.Name, Tasks: len(items)}, nil
}

func exporterFactory(exp *fakeExporter, err error) commands.ExporterFactory {
	return func(ctx context.Context, cfg *config.Config) (commands.Exporter, error) {
		if err != nil {
			return nil, err
		}
		return exp, nil
	}
}

func TestExportCommand_Success(t *testing.T) {
	exp := &fakeExporter{}
	cmd := &commands.ExportCmd{}
	cmd.SetExporterFactory(exporterFactory(exp, nil))

	stdout, stderr, code := runCommand(t, cmd, groceries(), []string{"groceries"}, false)
	expectResult(t, stdout, stderr, code, "exported 2 items to Groceries\n", "", exitcode.Success)

	if exp.list.ID != "g" || len(exp.items) != 2 {
		t.Errorf("exporter got list %+v with %d items", exp.list, len(exp.items))
	}
}

func TestExportCommand_Errors(t *testing.T) {
	t.Run("auth", func(t *testing.T) {
		cmd := &commands.ExportCmd{}
		cmd.SetExporterFactory(exporterFactory(nil, errors.New("token expired")))
		stdout, stderr, code := runCommand(t, cmd, groceries(), []string{"Groceries"}, false)
		expectResult(t, stdout, stderr, code, "", "error: auth error: token expired\n", exitcode.AuthError)
	})
	t.Run("remote", func(t *testing.T) {
		cmd := &commands.ExportCmd{}
		cmd.SetExporterFactory(exporterFactory(&fakeExporter{err: errors.New("quota exceeded")}, nil))
		stdout, stderr, code := runCommand(t, cmd, groceries(), []string{"Groceries"}, false)
		expectResult(t, stdout, stderr, code, "", "error: remote error: quota exceeded\n", exitcode.RemoteError)
	})
	t.Run("not configured", func(t *testing.T) {
		var outBuf, errBuf bytes.Buffer
		cfg, _ := config.New(t.TempDir())
		code := (&commands.ExportCmd{}).Run(context.Background(), cfg, groceries(), []string{"Groceries"}, &outBuf, &errBuf)
		expectResult(t, outBuf.String(), errBuf.String(), code, "",
			"error: oauth_client.json not found in "+cfg.Dir+"\n", exitcode.AuthError)
	})
	t.Run("unknown list", func(t *testing.T) {
		stdout, stderr, code := runCommand(t, &commands.ExportCmd{}, groceries(), []string{"Nope"}, false)
		expectResult(t, stdout, stderr, code, "", "error: list not found: Nope\n", exitcode.UserError)
	})
}

// Tests for ui command
func TestUICommand(t *testing.T) {
	svc := groceries()
	var got service.Service
	cmd := &commands.UICmd{}
	cmd.SetRunner(func(ctx context.Context, s service.Service, cfg *config.Config) error {
		got = s
		return nil
	})

	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)
	expectResult(t, stdout, stderr, code, "", "", exitcode.Success)
	if got != service.Service(svc) {
		t.Error("runner did not receive the service")
	}
}

func TestUICommand_LogsToFile(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	cfg, err := config.New(filepath.Join(t.TempDir(), "conf"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log, err = logging.New("", &errBuf); err != nil {
		t.Fatal(err)
	}

	cmd := &commands.UICmd{}
	cmd.SetRunner(func(ctx context.Context, s service.Service, c *config.Config) error {
		c.Logger().Warn("tui: save items failed")
		return nil
	})

	code := cmd.Run(context.Background(), cfg, groceries(), nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errBuf.Len() != 0 {
		t.Errorf("nothing should be written to the terminal, got %q", errBuf.String())
	}
	b, err := os.ReadFile(cfg.LogPath())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), "tui: save items failed") {
		t.Errorf("expected warning in log file, got %q", b)
	}
}

func TestUICommand_Errors(t *testing.T) {
	cmd := &commands.UICmd{}
	cmd.SetRunner(func(ctx context.Context, s service.Service, cfg *config.Config) error { return errDisk })

	stdout, stderr, code := runCommand(t, cmd, groceries(), nil, false)
	expectResult(t, stdout, stderr, code, "", "error: storage error: disk I/O error\n", exitcode.StorageError)

	stdout, stderr, code = runCommand(t, cmd, groceries(), []string{"extra"}, false)
	expectResult(t, stdout, stderr, code, "", "error: unexpected argument: extra\n", exitcode.UserError)
}

func TestVersionCommand_Verbose(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir()}
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	cmd := &commands.VersionCmd{}
	cmd.RegisterFlags(fs)
	if err := fs.Parse([]string{"-v"}); err != nil {
		t.Fatal(err)
	}

	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(outBuf.String(), "ezshop 0.1.0\n") || !strings.HasSuffix(outBuf.String(), "config: "+cfg.Dir+"\n") {
		t.Errorf("unexpected verbose output %q", outBuf.String())
	}
}
