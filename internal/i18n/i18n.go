// Package i18n holds the translated user-facing strings.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	HomeTitle           = "home.title"
	HomeNewListButton   = "home.newListButton"
	HomeEditList        = "home.editList"
	HomeAddList         = "home.addList"
	HomeRenameButton    = "home.renameButton"
	HomeAddListButton   = "home.addListButton"
	HomeDeleteButton    = "home.deleteButton"
	HomeCancelButton    = "home.cancelButton"
	HomeNamePlaceholder = "home.namePlaceholder"

	ListAddItemButton       = "list.addItemButton"
	ListEditItem            = "list.editItem"
	ListAddItem             = "list.addItem"
	ListSaveButton          = "list.saveButton"
	ListDeleteButton        = "list.deleteButton"
	ListCancelButton        = "list.cancelButton"
	ListNamePlaceholder     = "list.namePlaceholder"
	ListQuantityPlaceholder = "list.quantityPlaceholder"
	ListUnitPlaceholder     = "list.unitPlaceholder"

	SettingsTitle    = "settings.title"
	SettingsDarkMode = "settings.darkMode"
	SettingsLanguage = "settings.language"
)

var (
	// Supported lists the languages with a full catalog. The first entry is
	// the fallback.
	Supported = []language.Tag{language.English, language.Czech, language.German}

	matcher = language.NewMatcher(Supported)
	cat     = mustBuild()
)

var messages = map[language.Tag]map[string]string{
	language.English: {
		HomeTitle:               "My Shopping Lists",
		HomeNewListButton:       "+ New List",
		HomeEditList:            "Edit List",
		HomeAddList:             "Add new List",
		HomeRenameButton:        "Rename",
		HomeAddListButton:       "Add List",
		HomeDeleteButton:        "Delete",
		HomeCancelButton:        "Cancel",
		HomeNamePlaceholder:     "Name",
		ListAddItemButton:       "+ Add Item",
		ListEditItem:            "Edit Item",
		ListAddItem:             "Add Item",
		ListSaveButton:          "Save",
		ListDeleteButton:        "Delete",
		ListCancelButton:        "Cancel",
		ListNamePlaceholder:     "Name",
		ListQuantityPlaceholder: "Quantity",
		ListUnitPlaceholder:     "Unit",
		SettingsTitle:           "Settings",
		SettingsDarkMode:        "Dark Mode",
		SettingsLanguage:        "Language",
	},
	language.Czech: {
		HomeTitle:               "Moje nákupní seznamy",
		HomeNewListButton:       "+ Nový seznam",
		HomeEditList:            "Upravit seznam",
		HomeAddList:             "Přidat nový seznam",
		HomeRenameButton:        "Přejmenovat",
		HomeAddListButton:       "Přidat seznam",
		HomeDeleteButton:        "Smazat",
		HomeCancelButton:        "Zrušit",
		HomeNamePlaceholder:     "Název",
		ListAddItemButton:       "+ Přidat položku",
		ListEditItem:            "Upravit položku",
		ListAddItem:             "Přidat položku",
		ListSaveButton:          "Uložit",
		ListDeleteButton:        "Smazat",
		ListCancelButton:        "Zrušit",
		ListNamePlaceholder:     "Název",
		ListQuantityPlaceholder: "Množství",
		ListUnitPlaceholder:     "Jednotka",
		SettingsTitle:           "Nastavení",
		SettingsDarkMode:        "Tmavý režim",
		SettingsLanguage:        "Jazyk",
	},
	language.German: {
		HomeTitle:               "Meine Einkaufslisten",
		HomeNewListButton:       "+ Neue Liste",
		HomeEditList:            "Liste bearbeiten",
		HomeAddList:             "Neue Liste hinzufügen",
		HomeRenameButton:        "Umbenennen",
		HomeAddListButton:       "Liste hinzufügen",
		HomeDeleteButton:        "Löschen",
		HomeCancelButton:        "Abbrechen",
		HomeNamePlaceholder:     "Name",
		ListAddItemButton:       "+ Artikel hinzufügen",
		ListEditItem:            "Artikel bearbeiten",
		ListAddItem:             "Artikel hinzufügen",
		ListSaveButton:          "Speichern",
		ListDeleteButton:        "Löschen",
		ListCancelButton:        "Abbrechen",
		ListNamePlaceholder:     "Name",
		ListQuantityPlaceholder: "Menge",
		ListUnitPlaceholder:     "Einheit",
		SettingsTitle:           "Einstellungen",
		SettingsDarkMode:        "Dunkler Modus",
		SettingsLanguage:        "Sprache",
	},
}

func mustBuild() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Match returns the supported language closest to tag, or English.
func Match(tag string) language.Tag {
	t, err := language.Parse(tag)
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return language.English
	}
	return Supported[idx]
}

// Printer returns a printer for the supported language closest to tag.
func Printer(tag string) *message.Printer {
	return message.NewPrinter(Match(tag), message.Catalog(cat))
}

// T translates key for tag.
func T(tag, key string) string {
	return Printer(tag).Sprintf(key)
}

// Names returns the supported language tags as strings, in Supported order.
func Names() []string {
	out := make([]string, len(Supported))
	for i, t := range Supported {
		out[i] = t.String()
	}
	return out
}
